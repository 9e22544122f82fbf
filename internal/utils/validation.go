package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/crewdesk-dev/back-office/backend/internal/domain"
	"github.com/crewdesk-dev/back-office/backend/internal/payroll"
)

func ValidatePositionRates(position *domain.Position) error {
	if position.PayRate <= 0 || position.BillRate <= 0 {
		return errors.New("pay rate and bill rate must be greater than 0")
	}
	if position.OvertimePayRate < position.PayRate {
		return errors.New("overtime pay rate must not be lower than the regular pay rate")
	}
	if position.OvertimeBillRate < position.BillRate {
		return errors.New("overtime bill rate must not be lower than the regular bill rate")
	}
	if position.OvertimeThreshold <= 0 || position.OvertimeThreshold > payroll.MaxWeeklyThreshold {
		return errors.New("overtime threshold must be greater than 0 and at most 168")
	}
	if position.NumberOfPositions < 1 {
		return errors.New("number of positions must be at least 1")
	}
	return nil
}

func ValidatePositionDates(position *domain.Position) error {
	if !position.EndDate.After(position.StartDate) {
		return errors.New("position end date must be after the start date")
	}
	return nil
}

// ValidateAssignmentWithinPosition checks that the assignment's date range
// lies inside the position's date range.
func ValidateAssignmentWithinPosition(assignment *domain.Assignment, position *domain.Position) error {
	if !assignment.EndDate.After(assignment.StartDate) {
		return errors.New("assignment end date must be after the start date")
	}
	if assignment.StartDate.Before(position.StartDate) {
		return errors.New("assignment must not start before the position starts")
	}
	if assignment.EndDate.After(position.EndDate) {
		return errors.New("assignment must not end after the position ends")
	}
	return nil
}

// ValidateWeekStart requires a Monday with no time-of-day component; every
// timesheet week is keyed by such a date.
func ValidateWeekStart(weekStart time.Time) error {
	if weekStart.Weekday() != time.Monday {
		return errors.New("week start must be a Monday")
	}
	hour, minute, sec := weekStart.Clock()
	if hour != 0 || minute != 0 || sec != 0 {
		return errors.New("week start must not have a time-of-day component")
	}
	return nil
}

// ValidateTimesheetEntries requires exactly one entry per day of the week, in
// order, starting at weekStart.
func ValidateTimesheetEntries(weekStart time.Time, entries []domain.TimesheetEntry) error {
	if len(entries) != payroll.DaysPerWeek {
		return fmt.Errorf("a timesheet week must contain exactly %d entries", payroll.DaysPerWeek)
	}

	for i, entry := range entries {
		expected := weekStart.AddDate(0, 0, i)
		if !sameDate(entry.Date, expected) {
			return fmt.Errorf("entry %d must be dated %s", i+1, expected.Format("2006-01-02"))
		}
		if entry.Hours < 0 || entry.Hours > 24 {
			return fmt.Errorf("entry %d: hours must be between 0 and 24", i+1)
		}
	}

	return nil
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// ValidateBulkItemsAgainstAssignments checks that every bulk-timesheet item
// belongs to a jobseeker who currently occupies capacity on the position, and
// that no jobseeker appears twice.
func ValidateBulkItemsAgainstAssignments(items []domain.BulkTimesheetItem, assignments []*domain.Assignment) error {
	occupying := make(map[int64]bool)
	for _, assignment := range assignments {
		if assignment.Status.OccupiesCapacity() {
			occupying[assignment.JobseekerID] = true
		}
	}

	seen := make(map[int64]bool)
	for i, item := range items {
		if seen[item.JobseekerID] {
			return fmt.Errorf("item %d: jobseeker %d appears more than once", i+1, item.JobseekerID)
		}
		seen[item.JobseekerID] = true

		if !occupying[item.JobseekerID] {
			return fmt.Errorf("item %d: jobseeker %d is not assigned to this position", i+1, item.JobseekerID)
		}
	}

	return nil
}
