package domain

import "time"

type BulkTimesheetItem struct {
	ID          int64            `json:"id"`
	JobseekerID int64            `json:"jobseekerID"`
	Entries     []TimesheetEntry `json:"entries"`
	Bonus       float64          `json:"bonus"`
	Deduction   float64          `json:"deduction"`

	TotalHours    float64 `json:"totalHours"`
	RegularHours  float64 `json:"regularHours"`
	OvertimeHours float64 `json:"overtimeHours"`
	TotalPay      float64 `json:"totalPay"`
	TotalBill     float64 `json:"totalBill"`
}

type BulkTimesheet struct {
	ID         int64               `json:"id"`
	Number     string              `json:"number"`
	PositionID int64               `json:"positionID"`
	WeekStart  time.Time           `json:"weekStart"`
	Items      []BulkTimesheetItem `json:"items"`

	TotalPay  float64 `json:"totalPay"`
	TotalBill float64 `json:"totalBill"`

	Status    TimesheetStatus `json:"status"`
	CreatedAt time.Time       `json:"createdAt"`
	Version   int32           `json:"-"`
}
