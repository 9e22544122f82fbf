package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/crewdesk-dev/back-office/backend/internal/domain"
)

func (r *Repository) CreateTimesheet(timesheet *domain.Timesheet) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		INSERT INTO timesheets (
			number,
			assignment_id,
			week_start,
			bonus,
			deduction,
			total_hours,
			regular_hours,
			overtime_hours,
			total_pay,
			total_bill
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, status, created_at, version
	`

	args := []any{
		timesheet.Number,
		timesheet.AssignmentID,
		timesheet.WeekStart,
		timesheet.Bonus,
		timesheet.Deduction,
		timesheet.TotalHours,
		timesheet.RegularHours,
		timesheet.OvertimeHours,
		timesheet.TotalPay,
		timesheet.TotalBill,
	}
	dst := []any{&timesheet.ID, &timesheet.Status, &timesheet.CreatedAt, &timesheet.Version}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(dst...); err != nil {
		return err
	}

	for _, entry := range timesheet.Entries {
		query := `
			INSERT INTO timesheet_entries (timesheet_id, work_date, hours, regular_hours, overtime_hours)
			VALUES ($1, $2, $3, $4, $5)
		`
		if _, err := tx.ExecContext(ctx, query, timesheet.ID, entry.Date, entry.Hours, entry.RegularHours, entry.OvertimeHours); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetTimesheetByID(id int64) (*domain.Timesheet, error) {
	query := `
		SELECT
			t.number,
			t.assignment_id,
			t.week_start,
			t.bonus,
			t.deduction,
			t.total_hours,
			t.regular_hours,
			t.overtime_hours,
			t.total_pay,
			t.total_bill,
			t.status,
			t.created_at,
			t.version,
			te.work_date,
			te.hours,
			te.regular_hours,
			te.overtime_hours
		FROM timesheets t
		LEFT JOIN timesheet_entries te ON t.id = te.timesheet_id
		WHERE t.id = $1
		ORDER BY te.work_date
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var timesheet *domain.Timesheet
	for rows.Next() {
		if timesheet == nil {
			timesheet = &domain.Timesheet{
				ID:      id,
				Entries: make([]domain.TimesheetEntry, 0),
			}
		}

		var workDate sql.NullTime
		var hours, regularHours, overtimeHours sql.NullFloat64
		dst := []any{
			&timesheet.Number,
			&timesheet.AssignmentID,
			&timesheet.WeekStart,
			&timesheet.Bonus,
			&timesheet.Deduction,
			&timesheet.TotalHours,
			&timesheet.RegularHours,
			&timesheet.OvertimeHours,
			&timesheet.TotalPay,
			&timesheet.TotalBill,
			&timesheet.Status,
			&timesheet.CreatedAt,
			&timesheet.Version,
			&workDate,
			&hours,
			&regularHours,
			&overtimeHours,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		if !workDate.Valid {
			continue
		}

		timesheet.Entries = append(timesheet.Entries, domain.TimesheetEntry{
			Date:          workDate.Time,
			Hours:         hours.Float64,
			RegularHours:  regularHours.Float64,
			OvertimeHours: overtimeHours.Float64,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if timesheet == nil {
		return nil, sql.ErrNoRows
	}

	return timesheet, nil
}

// GetTimesheets returns one page of timesheet headers (entries are loaded on
// the detail fetch) plus the unpaginated total.
func (r *Repository) GetTimesheets(assignmentID int64, status string, limit int, offset int) ([]*domain.Timesheet, int64, error) {
	query := `
		SELECT
			id, number, assignment_id, week_start, bonus, deduction,
			total_hours, regular_hours, overtime_hours, total_pay, total_bill,
			status, created_at, version,
			COUNT(*) OVER() AS total
		FROM timesheets
		WHERE ($1 = 0 OR assignment_id = $1)
		  AND ($2 = '' OR status = $2)
		ORDER BY week_start DESC, id DESC
		LIMIT $3 OFFSET $4
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, assignmentID, status, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	timesheets := make([]*domain.Timesheet, 0)
	var total int64
	for rows.Next() {
		timesheet := &domain.Timesheet{}
		dst := []any{
			&timesheet.ID,
			&timesheet.Number,
			&timesheet.AssignmentID,
			&timesheet.WeekStart,
			&timesheet.Bonus,
			&timesheet.Deduction,
			&timesheet.TotalHours,
			&timesheet.RegularHours,
			&timesheet.OvertimeHours,
			&timesheet.TotalPay,
			&timesheet.TotalBill,
			&timesheet.Status,
			&timesheet.CreatedAt,
			&timesheet.Version,
			&total,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, 0, err
		}
		timesheets = append(timesheets, timesheet)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return timesheets, total, nil
}

func (r *Repository) UpdateTimesheetStatus(timesheet *domain.Timesheet, status domain.TimesheetStatus) error {
	query := `
		UPDATE timesheets
		SET status = $1, version = version + 1
		WHERE id = $2 AND version = $3
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if err := r.dbpool.QueryRowContext(ctx, query, status, timesheet.ID, timesheet.Version).Scan(&timesheet.Version); err != nil {
		return err
	}
	timesheet.Status = status

	return nil
}

func (r *Repository) DeleteTimesheet(id int64) error {
	query := `
		DELETE FROM timesheets WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}
