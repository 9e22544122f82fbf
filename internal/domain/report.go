package domain

// PayrollSummaryRow aggregates approved timesheets and bulk-timesheet items
// per jobseeker over a date range.
type PayrollSummaryRow struct {
	JobseekerID   int64   `json:"jobseekerID"`
	JobseekerName string  `json:"jobseekerName"`
	TotalHours    float64 `json:"totalHours"`
	RegularHours  float64 `json:"regularHours"`
	OvertimeHours float64 `json:"overtimeHours"`
	TotalPay      float64 `json:"totalPay"`
}

// BillingSummaryRow aggregates approved timesheets and bulk-timesheet items
// per client over a date range.
type BillingSummaryRow struct {
	ClientID   int64   `json:"clientID"`
	ClientName string  `json:"clientName"`
	TotalHours float64 `json:"totalHours"`
	TotalBill  float64 `json:"totalBill"`
}
