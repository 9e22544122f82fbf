package repository

import (
	"context"
	"time"

	"github.com/crewdesk-dev/back-office/backend/internal/domain"
)

// GetPayrollSummary aggregates approved timesheets and bulk-timesheet items
// per jobseeker for weeks starting within [from, to].
func (r *Repository) GetPayrollSummary(from time.Time, to time.Time) ([]*domain.PayrollSummaryRow, error) {
	query := `
		SELECT
			j.id,
			j.full_name,
			SUM(x.total_hours),
			SUM(x.regular_hours),
			SUM(x.overtime_hours),
			SUM(x.total_pay)
		FROM (
			SELECT a.jobseeker_id, t.total_hours, t.regular_hours, t.overtime_hours, t.total_pay
			FROM timesheets t
			JOIN assignments a ON a.id = t.assignment_id
			WHERE t.status = 'approved' AND t.week_start BETWEEN $1 AND $2
			UNION ALL
			SELECT i.jobseeker_id, i.total_hours, i.regular_hours, i.overtime_hours, i.total_pay
			FROM bulk_timesheet_items i
			JOIN bulk_timesheets b ON b.id = i.bulk_timesheet_id
			WHERE b.status = 'approved' AND b.week_start BETWEEN $1 AND $2
		) x
		JOIN jobseekers j ON j.id = x.jobseeker_id
		GROUP BY j.id, j.full_name
		ORDER BY j.full_name
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summary := make([]*domain.PayrollSummaryRow, 0)
	for rows.Next() {
		row := &domain.PayrollSummaryRow{}
		dst := []any{&row.JobseekerID, &row.JobseekerName, &row.TotalHours, &row.RegularHours, &row.OvertimeHours, &row.TotalPay}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		summary = append(summary, row)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return summary, nil
}

// GetBillingSummary aggregates approved timesheets and bulk-timesheet items
// per client for weeks starting within [from, to].
func (r *Repository) GetBillingSummary(from time.Time, to time.Time) ([]*domain.BillingSummaryRow, error) {
	query := `
		SELECT
			c.id,
			c.name,
			SUM(x.total_hours),
			SUM(x.total_bill)
		FROM (
			SELECT p.client_id, t.total_hours, t.total_bill
			FROM timesheets t
			JOIN assignments a ON a.id = t.assignment_id
			JOIN positions p ON p.id = a.position_id
			WHERE t.status = 'approved' AND t.week_start BETWEEN $1 AND $2
			UNION ALL
			SELECT p.client_id, i.total_hours, i.total_bill
			FROM bulk_timesheet_items i
			JOIN bulk_timesheets b ON b.id = i.bulk_timesheet_id
			JOIN positions p ON p.id = b.position_id
			WHERE b.status = 'approved' AND b.week_start BETWEEN $1 AND $2
		) x
		JOIN clients c ON c.id = x.client_id
		GROUP BY c.id, c.name
		ORDER BY c.name
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summary := make([]*domain.BillingSummaryRow, 0)
	for rows.Next() {
		row := &domain.BillingSummaryRow{}
		dst := []any{&row.ClientID, &row.ClientName, &row.TotalHours, &row.TotalBill}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		summary = append(summary, row)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return summary, nil
}
