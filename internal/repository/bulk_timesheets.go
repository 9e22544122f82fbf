package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/crewdesk-dev/back-office/backend/internal/domain"
)

func (r *Repository) CreateBulkTimesheet(bulk *domain.BulkTimesheet) error {
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
		INSERT INTO bulk_timesheets (number, position_id, week_start, total_pay, total_bill)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, status, created_at, version
	`

	args := []any{bulk.Number, bulk.PositionID, bulk.WeekStart, bulk.TotalPay, bulk.TotalBill}
	dst := []any{&bulk.ID, &bulk.Status, &bulk.CreatedAt, &bulk.Version}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(dst...); err != nil {
		return err
	}

	for i := range bulk.Items {
		item := &bulk.Items[i]

		query := `
			INSERT INTO bulk_timesheet_items (
				bulk_timesheet_id, jobseeker_id, bonus, deduction,
				total_hours, regular_hours, overtime_hours, total_pay, total_bill
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING id
		`

		args := []any{
			bulk.ID,
			item.JobseekerID,
			item.Bonus,
			item.Deduction,
			item.TotalHours,
			item.RegularHours,
			item.OvertimeHours,
			item.TotalPay,
			item.TotalBill,
		}
		if err := tx.QueryRowContext(ctx, query, args...).Scan(&item.ID); err != nil {
			return err
		}

		for _, entry := range item.Entries {
			query := `
				INSERT INTO bulk_timesheet_item_entries (item_id, work_date, hours, regular_hours, overtime_hours)
				VALUES ($1, $2, $3, $4, $5)
			`
			if _, err := tx.ExecContext(ctx, query, item.ID, entry.Date, entry.Hours, entry.RegularHours, entry.OvertimeHours); err != nil {
				return err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetBulkTimesheetByID(id int64) (*domain.BulkTimesheet, error) {
	query := `
		SELECT
			b.number,
			b.position_id,
			b.week_start,
			b.total_pay,
			b.total_bill,
			b.status,
			b.created_at,
			b.version,
			i.id,
			i.jobseeker_id,
			i.bonus,
			i.deduction,
			i.total_hours,
			i.regular_hours,
			i.overtime_hours,
			i.total_pay,
			i.total_bill,
			ie.work_date,
			ie.hours,
			ie.regular_hours,
			ie.overtime_hours
		FROM bulk_timesheets b
		LEFT JOIN bulk_timesheet_items i ON b.id = i.bulk_timesheet_id
		LEFT JOIN bulk_timesheet_item_entries ie ON i.id = ie.item_id
		WHERE b.id = $1
		ORDER BY i.id, ie.work_date
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bulk *domain.BulkTimesheet
	itemsMap := make(map[int64]*domain.BulkTimesheetItem)
	itemOrder := make([]int64, 0)

	for rows.Next() {
		if bulk == nil {
			bulk = &domain.BulkTimesheet{
				ID:    id,
				Items: make([]domain.BulkTimesheetItem, 0),
			}
		}

		var row struct {
			ItemID        sql.NullInt64
			JobseekerID   sql.NullInt64
			Bonus         sql.NullFloat64
			Deduction     sql.NullFloat64
			TotalHours    sql.NullFloat64
			RegularHours  sql.NullFloat64
			OvertimeHours sql.NullFloat64
			TotalPay      sql.NullFloat64
			TotalBill     sql.NullFloat64

			WorkDate           sql.NullTime
			Hours              sql.NullFloat64
			EntryRegularHours  sql.NullFloat64
			EntryOvertimeHours sql.NullFloat64
		}

		dst := []any{
			&bulk.Number,
			&bulk.PositionID,
			&bulk.WeekStart,
			&bulk.TotalPay,
			&bulk.TotalBill,
			&bulk.Status,
			&bulk.CreatedAt,
			&bulk.Version,
			&row.ItemID,
			&row.JobseekerID,
			&row.Bonus,
			&row.Deduction,
			&row.TotalHours,
			&row.RegularHours,
			&row.OvertimeHours,
			&row.TotalPay,
			&row.TotalBill,
			&row.WorkDate,
			&row.Hours,
			&row.EntryRegularHours,
			&row.EntryOvertimeHours,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		if !row.ItemID.Valid {
			continue
		}

		item, exists := itemsMap[row.ItemID.Int64]
		if !exists {
			item = &domain.BulkTimesheetItem{
				ID:            row.ItemID.Int64,
				JobseekerID:   row.JobseekerID.Int64,
				Entries:       make([]domain.TimesheetEntry, 0),
				Bonus:         row.Bonus.Float64,
				Deduction:     row.Deduction.Float64,
				TotalHours:    row.TotalHours.Float64,
				RegularHours:  row.RegularHours.Float64,
				OvertimeHours: row.OvertimeHours.Float64,
				TotalPay:      row.TotalPay.Float64,
				TotalBill:     row.TotalBill.Float64,
			}
			itemsMap[row.ItemID.Int64] = item
			itemOrder = append(itemOrder, row.ItemID.Int64)
		}

		if !row.WorkDate.Valid {
			continue
		}

		item.Entries = append(item.Entries, domain.TimesheetEntry{
			Date:          row.WorkDate.Time,
			Hours:         row.Hours.Float64,
			RegularHours:  row.EntryRegularHours.Float64,
			OvertimeHours: row.EntryOvertimeHours.Float64,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if bulk == nil {
		return nil, sql.ErrNoRows
	}

	for _, itemID := range itemOrder {
		bulk.Items = append(bulk.Items, *itemsMap[itemID])
	}

	return bulk, nil
}

// GetBulkTimesheets returns one page of headers plus the unpaginated total.
func (r *Repository) GetBulkTimesheets(positionID int64, status string, limit int, offset int) ([]*domain.BulkTimesheet, int64, error) {
	query := `
		SELECT
			id, number, position_id, week_start, total_pay, total_bill, status, created_at, version,
			COUNT(*) OVER() AS total
		FROM bulk_timesheets
		WHERE ($1 = 0 OR position_id = $1)
		  AND ($2 = '' OR status = $2)
		ORDER BY week_start DESC, id DESC
		LIMIT $3 OFFSET $4
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, positionID, status, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	bulks := make([]*domain.BulkTimesheet, 0)
	var total int64
	for rows.Next() {
		bulk := &domain.BulkTimesheet{}
		dst := []any{&bulk.ID, &bulk.Number, &bulk.PositionID, &bulk.WeekStart, &bulk.TotalPay, &bulk.TotalBill, &bulk.Status, &bulk.CreatedAt, &bulk.Version, &total}
		if err := rows.Scan(dst...); err != nil {
			return nil, 0, err
		}
		bulks = append(bulks, bulk)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return bulks, total, nil
}

func (r *Repository) UpdateBulkTimesheetStatus(bulk *domain.BulkTimesheet, status domain.TimesheetStatus) error {
	query := `
		UPDATE bulk_timesheets
		SET status = $1, version = version + 1
		WHERE id = $2 AND version = $3
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if err := r.dbpool.QueryRowContext(ctx, query, status, bulk.ID, bulk.Version).Scan(&bulk.Version); err != nil {
		return err
	}
	bulk.Status = status

	return nil
}

func (r *Repository) DeleteBulkTimesheet(id int64) error {
	query := `
		DELETE FROM bulk_timesheets WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}
