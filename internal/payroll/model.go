package payroll

// DaysPerWeek is fixed: a timesheet week always carries seven daily entries,
// Monday first.
const DaysPerWeek = 7

// MaxWeeklyThreshold bounds the configurable overtime threshold (hours in a
// week).
const MaxWeeklyThreshold = 168.0

type Rates struct {
	Pay          float64
	OvertimePay  float64
	Bill         float64
	OvertimeBill float64
}

// WeekInput is one person's week against one position's rates.
type WeekInput struct {
	DailyHours [DaysPerWeek]float64
	Threshold  float64
	Rates      Rates
	Bonus      float64
	Deduction  float64
}

// DayBreakdown splits one day's hours into their regular and overtime parts
// after the weekly overtime has been distributed proportionally.
type DayBreakdown struct {
	Hours         float64
	RegularHours  float64
	OvertimeHours float64
}

type WeekResult struct {
	TotalHours    float64
	RegularHours  float64
	OvertimeHours float64
	Days          [DaysPerWeek]DayBreakdown
	Pay           float64
	Bill          float64
}
