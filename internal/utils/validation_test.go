package utils

import (
	"testing"
	"time"

	"github.com/crewdesk-dev/back-office/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPosition() *domain.Position {
	return &domain.Position{
		PayRate:           20,
		OvertimePayRate:   30,
		BillRate:          35,
		OvertimeBillRate:  52.5,
		OvertimeThreshold: 40,
		NumberOfPositions: 3,
		StartDate:         time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		EndDate:           time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC),
	}
}

func TestValidatePositionRates(t *testing.T) {
	require.NoError(t, ValidatePositionRates(validPosition()))

	p := validPosition()
	p.PayRate = 0
	assert.Error(t, ValidatePositionRates(p))

	p = validPosition()
	p.OvertimePayRate = 19
	assert.Error(t, ValidatePositionRates(p))

	p = validPosition()
	p.OvertimeBillRate = 34
	assert.Error(t, ValidatePositionRates(p))

	p = validPosition()
	p.OvertimeThreshold = 0
	assert.Error(t, ValidatePositionRates(p))

	p = validPosition()
	p.OvertimeThreshold = 169
	assert.Error(t, ValidatePositionRates(p))

	p = validPosition()
	p.NumberOfPositions = 0
	assert.Error(t, ValidatePositionRates(p))
}

func TestValidateAssignmentWithinPosition(t *testing.T) {
	position := validPosition()

	assignment := &domain.Assignment{
		StartDate: time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, ValidateAssignmentWithinPosition(assignment, position))

	early := &domain.Assignment{
		StartDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
	}
	assert.Error(t, ValidateAssignmentWithinPosition(early, position))

	late := &domain.Assignment{
		StartDate: time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
	}
	assert.Error(t, ValidateAssignmentWithinPosition(late, position))

	inverted := &domain.Assignment{
		StartDate: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	assert.Error(t, ValidateAssignmentWithinPosition(inverted, position))
}

func TestValidateWeekStart(t *testing.T) {
	monday := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	require.NoError(t, ValidateWeekStart(monday))

	tuesday := monday.AddDate(0, 0, 1)
	assert.Error(t, ValidateWeekStart(tuesday))

	mondayNoon := time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC)
	assert.Error(t, ValidateWeekStart(mondayNoon))
}

func TestValidateTimesheetEntries(t *testing.T) {
	weekStart := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

	entries := make([]domain.TimesheetEntry, 7)
	for i := range entries {
		entries[i] = domain.TimesheetEntry{Date: weekStart.AddDate(0, 0, i), Hours: 8}
	}
	require.NoError(t, ValidateTimesheetEntries(weekStart, entries))

	assert.Error(t, ValidateTimesheetEntries(weekStart, entries[:6]), "too few entries")

	wrongDate := make([]domain.TimesheetEntry, 7)
	copy(wrongDate, entries)
	wrongDate[3].Date = weekStart.AddDate(0, 0, 10)
	assert.Error(t, ValidateTimesheetEntries(weekStart, wrongDate))

	badHours := make([]domain.TimesheetEntry, 7)
	copy(badHours, entries)
	badHours[0].Hours = 25
	assert.Error(t, ValidateTimesheetEntries(weekStart, badHours))
}

func TestValidateBulkItemsAgainstAssignments(t *testing.T) {
	assignments := []*domain.Assignment{
		{JobseekerID: 1, Status: domain.AssignmentActive},
		{JobseekerID: 2, Status: domain.AssignmentUpcoming},
		{JobseekerID: 3, Status: domain.AssignmentCancelled},
	}

	ok := []domain.BulkTimesheetItem{
		{JobseekerID: 1},
		{JobseekerID: 2},
	}
	require.NoError(t, ValidateBulkItemsAgainstAssignments(ok, assignments))

	cancelled := []domain.BulkTimesheetItem{{JobseekerID: 3}}
	assert.Error(t, ValidateBulkItemsAgainstAssignments(cancelled, assignments))

	unknown := []domain.BulkTimesheetItem{{JobseekerID: 9}}
	assert.Error(t, ValidateBulkItemsAgainstAssignments(unknown, assignments))

	duplicated := []domain.BulkTimesheetItem{{JobseekerID: 1}, {JobseekerID: 1}}
	assert.Error(t, ValidateBulkItemsAgainstAssignments(duplicated, assignments))
}
