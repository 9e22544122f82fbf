package domain

import "time"

type AssignmentStatus string

const (
	AssignmentUpcoming  AssignmentStatus = "upcoming"
	AssignmentActive    AssignmentStatus = "active"
	AssignmentCompleted AssignmentStatus = "completed"
	AssignmentCancelled AssignmentStatus = "cancelled"
)

// OccupiesCapacity reports whether an assignment in this status counts
// against the position's numberOfPositions.
func (s AssignmentStatus) OccupiesCapacity() bool {
	return s == AssignmentUpcoming || s == AssignmentActive
}

type Assignment struct {
	ID          int64            `json:"id"`
	PositionID  int64            `json:"positionID"`
	JobseekerID int64            `json:"jobseekerID"`
	Status      AssignmentStatus `json:"status"`
	StartDate   time.Time        `json:"startDate"`
	EndDate     time.Time        `json:"endDate"`
	CreatedAt   time.Time        `json:"createdAt"`
	Version     int32            `json:"-"`
}
