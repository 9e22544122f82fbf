package domain

import "time"

type TimesheetStatus string

const (
	TimesheetPending  TimesheetStatus = "pending"
	TimesheetApproved TimesheetStatus = "approved"
	TimesheetRejected TimesheetStatus = "rejected"
)

type TimesheetEntry struct {
	Date          time.Time `json:"date"`
	Hours         float64   `json:"hours"`
	RegularHours  float64   `json:"regularHours"`
	OvertimeHours float64   `json:"overtimeHours"`
}

type Timesheet struct {
	ID           int64            `json:"id"`
	Number       string           `json:"number"`
	AssignmentID int64            `json:"assignmentID"`
	WeekStart    time.Time        `json:"weekStart"`
	Entries      []TimesheetEntry `json:"entries"`
	Bonus        float64          `json:"bonus"`
	Deduction    float64          `json:"deduction"`

	// Computed server-side from the entries and the position rates.
	TotalHours    float64 `json:"totalHours"`
	RegularHours  float64 `json:"regularHours"`
	OvertimeHours float64 `json:"overtimeHours"`
	TotalPay      float64 `json:"totalPay"`
	TotalBill     float64 `json:"totalBill"`

	Status    TimesheetStatus `json:"status"`
	CreatedAt time.Time       `json:"createdAt"`
	Version   int32           `json:"-"`
}
