package domain

import "time"

type PositionStatus string

const (
	PositionOpen   PositionStatus = "open"
	PositionFilled PositionStatus = "filled"
	PositionClosed PositionStatus = "closed"
)

// DefaultOvertimeThreshold is the weekly hour count beyond which hours are
// paid and billed at the overtime rates.
const DefaultOvertimeThreshold = 40.0

type Position struct {
	ID                int64          `json:"id"`
	ClientID          int64          `json:"clientID"`
	Title             string         `json:"title"`
	Description       string         `json:"description"`
	Skills            []string       `json:"skills"`
	PayRate           float64        `json:"payRate"`
	OvertimePayRate   float64        `json:"overtimePayRate"`
	BillRate          float64        `json:"billRate"`
	OvertimeBillRate  float64        `json:"overtimeBillRate"`
	OvertimeThreshold float64        `json:"overtimeThreshold"`
	NumberOfPositions int32          `json:"numberOfPositions"`
	StartDate         time.Time      `json:"startDate"`
	EndDate           time.Time      `json:"endDate"`
	Status            PositionStatus `json:"status"`

	// AssignedJobseekerIDs is denormalized from the assignments table. It is
	// refreshed inside every assignment transaction and on list fetches, so
	// it always mirrors the set of jobseekers with upcoming or active rows.
	AssignedJobseekerIDs []int64 `json:"assignedJobseekerIDs"`

	CreatedAt time.Time `json:"createdAt"`
	Version   int32     `json:"-"`
}
