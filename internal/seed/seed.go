package seed

import (
	"errors"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/crewdesk-dev/back-office/backend/internal/domain"
	"github.com/crewdesk-dev/back-office/backend/internal/payroll"
	"github.com/crewdesk-dev/back-office/backend/internal/repository"
	"github.com/crewdesk-dev/back-office/backend/internal/utils"
)

// SeedDemoData fills the database with a small, coherent demo data set:
// clients with positions, jobseekers assigned to them, and an approved
// timesheet week per assignment so the reports have something to show.
func SeedDemoData(repo *repository.Repository) {
	clients := make([]*domain.Client, 0, 3)
	for i := 0; i < 3; i++ {
		client := utils.GenerateRandomClient()
		if err := repo.CreateClient(client); err != nil {
			slog.Error("unable to insert client", slog.String("error", err.Error()))
			continue
		}
		clients = append(clients, client)
	}

	jobseekers := make([]*domain.Jobseeker, 0, 12)
	for i := 0; i < 12; i++ {
		jobseeker := utils.GenerateRandomJobseeker()
		if err := repo.CreateJobseeker(jobseeker); err != nil {
			slog.Error("unable to insert jobseeker", slog.String("error", err.Error()))
			continue
		}
		jobseekers = append(jobseekers, jobseeker)
	}

	if len(clients) == 0 || len(jobseekers) == 0 {
		slog.Error("nothing to assign, aborting")
		return
	}

	positions := make([]*domain.Position, 0, 6)
	for i := 0; i < 6; i++ {
		position := utils.GenerateRandomPosition(clients[rand.Intn(len(clients))].ID)
		if err := repo.CreatePosition(position); err != nil {
			slog.Error("unable to insert position", slog.String("error", err.Error()))
			continue
		}
		positions = append(positions, position)
	}

	assignments := make([]*domain.Assignment, 0)
	for _, position := range positions {
		for _, jobseeker := range pick(jobseekers, int(position.NumberOfPositions)) {
			assignment := &domain.Assignment{
				PositionID:  position.ID,
				JobseekerID: jobseeker.ID,
				Status:      domain.AssignmentUpcoming,
				StartDate:   position.StartDate,
				EndDate:     position.EndDate,
			}
			if err := repo.CreateAssignment(assignment); err != nil {
				switch {
				case errors.Is(err, repository.ErrPositionAtCapacity),
					errors.Is(err, repository.ErrDuplicateAssignment):
					// fine for random data, just move on
				default:
					slog.Error("unable to insert assignment", slog.String("error", err.Error()))
				}
				continue
			}
			assignments = append(assignments, assignment)
		}
	}

	weekStart := lastMonday(time.Now().UTC())
	created := 0
	for _, assignment := range assignments {
		position, err := repo.GetPositionByID(assignment.PositionID)
		if err != nil {
			slog.Error("unable to load position", slog.String("error", err.Error()))
			continue
		}

		timesheet, err := buildTimesheet(assignment, position, weekStart)
		if err != nil {
			slog.Error("unable to build timesheet", slog.String("error", err.Error()))
			continue
		}
		if err := repo.CreateTimesheet(timesheet); err != nil {
			slog.Error("unable to insert timesheet", slog.String("error", err.Error()))
			continue
		}
		if err := repo.UpdateTimesheetStatus(timesheet, domain.TimesheetApproved); err != nil {
			slog.Error("unable to approve timesheet", slog.String("error", err.Error()))
			continue
		}
		created++
	}

	slog.Info("demo data inserted",
		slog.Int("clients", len(clients)),
		slog.Int("jobseekers", len(jobseekers)),
		slog.Int("positions", len(positions)),
		slog.Int("assignments", len(assignments)),
		slog.Int("timesheets", created),
	)
}

func buildTimesheet(assignment *domain.Assignment, position *domain.Position, weekStart time.Time) (*domain.Timesheet, error) {
	input := &payroll.WeekInput{
		DailyHours: utils.GenerateRandomWeekHours(),
		Threshold:  position.OvertimeThreshold,
		Rates: payroll.Rates{
			Pay:          position.PayRate,
			OvertimePay:  position.OvertimePayRate,
			Bill:         position.BillRate,
			OvertimeBill: position.OvertimeBillRate,
		},
	}

	result, err := payroll.Calculate(input)
	if err != nil {
		return nil, err
	}

	timesheet := &domain.Timesheet{
		Number:        uuid.NewString(),
		AssignmentID:  assignment.ID,
		WeekStart:     weekStart,
		Entries:       make([]domain.TimesheetEntry, 0, payroll.DaysPerWeek),
		TotalHours:    result.TotalHours,
		RegularHours:  result.RegularHours,
		OvertimeHours: result.OvertimeHours,
		TotalPay:      result.Pay,
		TotalBill:     result.Bill,
	}
	for i, day := range result.Days {
		timesheet.Entries = append(timesheet.Entries, domain.TimesheetEntry{
			Date:          weekStart.AddDate(0, 0, i),
			Hours:         day.Hours,
			RegularHours:  day.RegularHours,
			OvertimeHours: day.OvertimeHours,
		})
	}

	return timesheet, nil
}

// pick returns up to n distinct random elements.
func pick(jobseekers []*domain.Jobseeker, n int) []*domain.Jobseeker {
	shuffled := append([]*domain.Jobseeker{}, jobseekers...)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if n > len(shuffled) {
		n = len(shuffled)
	}
	return shuffled[:n]
}

func lastMonday(now time.Time) time.Time {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	for day.Weekday() != time.Monday {
		day = day.AddDate(0, 0, -1)
	}
	return day
}
