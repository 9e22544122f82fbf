package payroll

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrInvalidThreshold = errors.New("overtime threshold must be greater than 0 and at most 168")
	ErrNegativeRate     = errors.New("rates must not be negative")
	ErrNegativeAmount   = errors.New("bonus and deduction must not be negative")
)

func validate(in *WeekInput) error {
	if in.Threshold <= 0 || in.Threshold > MaxWeeklyThreshold {
		return ErrInvalidThreshold
	}
	if in.Rates.Pay < 0 || in.Rates.OvertimePay < 0 || in.Rates.Bill < 0 || in.Rates.OvertimeBill < 0 {
		return ErrNegativeRate
	}
	if in.Bonus < 0 || in.Deduction < 0 {
		return ErrNegativeAmount
	}
	for i, hours := range in.DailyHours {
		if hours < 0 || hours > 24 {
			return fmt.Errorf("day %d: hours must be between 0 and 24", i+1)
		}
	}
	return nil
}

// Calculate splits a week's hours at the overtime threshold, distributes the
// overtime across the days in proportion to each day's share of the total,
// and prices the result with the given rates. Bonus and deduction adjust pay
// only; the client bill is unaffected by them.
func Calculate(in *WeekInput) (*WeekResult, error) {
	if err := validate(in); err != nil {
		return nil, err
	}

	result := &WeekResult{}

	for _, hours := range in.DailyHours {
		result.TotalHours += hours
	}
	result.TotalHours = roundHours(result.TotalHours)

	result.RegularHours = math.Min(result.TotalHours, in.Threshold)
	result.OvertimeHours = roundHours(math.Max(0, result.TotalHours-in.Threshold))

	// Distribute the weekly overtime across the days proportionally to each
	// day's share of the total. Every share is rounded to two decimals, so
	// the shares can miss the weekly overtime by a few hundredths. Settle the
	// residual walking back from the last day, but only within each day's
	// headroom: a day's overtime never exceeds its hours and never goes
	// negative. The shares always sum exactly to the weekly overtime.
	if result.OvertimeHours > 0 {
		distributed := 0.0
		for i, hours := range in.DailyHours {
			share := roundHours(hours / result.TotalHours * result.OvertimeHours)
			result.Days[i].OvertimeHours = share
			distributed += share
		}
		residual := roundHours(result.OvertimeHours - distributed)
		for i := DaysPerWeek - 1; i >= 0 && residual != 0; i-- {
			day := &result.Days[i]
			if residual > 0 {
				headroom := roundHours(in.DailyHours[i] - day.OvertimeHours)
				if headroom <= 0 {
					continue
				}
				step := math.Min(residual, headroom)
				day.OvertimeHours = roundHours(day.OvertimeHours + step)
				residual = roundHours(residual - step)
			} else {
				if day.OvertimeHours <= 0 {
					continue
				}
				step := math.Min(-residual, day.OvertimeHours)
				day.OvertimeHours = roundHours(day.OvertimeHours - step)
				residual = roundHours(residual + step)
			}
		}
	}

	for i, hours := range in.DailyHours {
		result.Days[i].Hours = hours
		result.Days[i].RegularHours = roundHours(hours - result.Days[i].OvertimeHours)
	}

	result.Pay = RoundCents(result.RegularHours*in.Rates.Pay + result.OvertimeHours*in.Rates.OvertimePay + in.Bonus - in.Deduction)
	result.Bill = RoundCents(result.RegularHours*in.Rates.Bill + result.OvertimeHours*in.Rates.OvertimeBill)

	return result, nil
}

func roundHours(v float64) float64 {
	return math.Round(v*100) / 100
}

// RoundCents rounds a money amount to two decimals. Callers that sum several
// already-rounded amounts use it to clear the float accumulation noise.
func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
