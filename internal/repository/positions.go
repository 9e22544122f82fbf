package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/crewdesk-dev/back-office/backend/internal/domain"
)

func (r *Repository) CreatePosition(position *domain.Position) error {
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
		INSERT INTO positions (
			client_id,
			title,
			description,
			pay_rate,
			overtime_pay_rate,
			bill_rate,
			overtime_bill_rate,
			overtime_threshold,
			number_of_positions,
			start_date,
			end_date
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, status, created_at, version
	`

	args := []any{
		position.ClientID,
		position.Title,
		position.Description,
		position.PayRate,
		position.OvertimePayRate,
		position.BillRate,
		position.OvertimeBillRate,
		position.OvertimeThreshold,
		position.NumberOfPositions,
		position.StartDate,
		position.EndDate,
	}
	dst := []any{&position.ID, &position.Status, &position.CreatedAt, &position.Version}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(dst...); err != nil {
		return err
	}

	for _, skill := range position.Skills {
		query := `INSERT INTO position_skills (position_id, skill) VALUES ($1, $2)`
		if _, err := tx.ExecContext(ctx, query, position.ID, skill); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	position.AssignedJobseekerIDs = []int64{}

	return nil
}

func (r *Repository) GetPositionByID(id int64) (*domain.Position, error) {
	query := `
		SELECT
			p.client_id,
			p.title,
			p.description,
			p.pay_rate,
			p.overtime_pay_rate,
			p.bill_rate,
			p.overtime_bill_rate,
			p.overtime_threshold,
			p.number_of_positions,
			p.start_date,
			p.end_date,
			p.status,
			COALESCE(array_to_json(p.assigned_jobseeker_ids)::text, '[]'),
			p.created_at,
			p.version,
			ps.skill
		FROM positions p
		LEFT JOIN position_skills ps ON p.id = ps.position_id
		WHERE p.id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var position *domain.Position
	for rows.Next() {
		if position == nil {
			position = &domain.Position{
				ID:     id,
				Skills: make([]string, 0),
			}
		}

		var assigned string
		var skill sql.NullString
		dst := []any{
			&position.ClientID,
			&position.Title,
			&position.Description,
			&position.PayRate,
			&position.OvertimePayRate,
			&position.BillRate,
			&position.OvertimeBillRate,
			&position.OvertimeThreshold,
			&position.NumberOfPositions,
			&position.StartDate,
			&position.EndDate,
			&position.Status,
			&assigned,
			&position.CreatedAt,
			&position.Version,
			&skill,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		if err := scanInt64Array(assigned, &position.AssignedJobseekerIDs); err != nil {
			return nil, err
		}

		if skill.Valid {
			position.Skills = append(position.Skills, skill.String)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if position == nil {
		return nil, sql.ErrNoRows
	}

	return position, nil
}

// RefreshAssignedJobseekers re-derives the denormalized
// assigned_jobseeker_ids array of every position from the assignments table.
// List fetches call this so the array can never drift for long even if a
// historical write skipped it.
func (r *Repository) RefreshAssignedJobseekers() error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, refreshAssignedQuery); err != nil {
		return err
	}

	return nil
}

const refreshAssignedQuery = `
	UPDATE positions p
	SET assigned_jobseeker_ids = COALESCE(
		(
			SELECT array_agg(a.jobseeker_id ORDER BY a.jobseeker_id)
			FROM assignments a
			WHERE a.position_id = p.id AND a.status IN ('upcoming', 'active')
		),
		'{}'
	)
`

// refreshAssignedJobseekersTx is the single-position variant used inside
// assignment transactions.
func refreshAssignedJobseekersTx(ctx context.Context, tx *sql.Tx, positionID int64) error {
	query := refreshAssignedQuery + ` WHERE p.id = $1`
	_, err := tx.ExecContext(ctx, query, positionID)
	return err
}

// GetPositions returns one page plus the unpaginated total. clientID 0 and
// an empty status match everything.
func (r *Repository) GetPositions(clientID int64, status string, limit int, offset int) ([]*domain.Position, int64, error) {
	query := `
		SELECT
			p.id,
			p.client_id,
			p.title,
			p.description,
			p.pay_rate,
			p.overtime_pay_rate,
			p.bill_rate,
			p.overtime_bill_rate,
			p.overtime_threshold,
			p.number_of_positions,
			p.start_date,
			p.end_date,
			p.status,
			COALESCE(array_to_json(p.assigned_jobseeker_ids)::text, '[]'),
			p.created_at,
			p.version,
			COUNT(*) OVER() AS total
		FROM positions p
		WHERE ($1 = 0 OR p.client_id = $1)
		  AND ($2 = '' OR p.status = $2)
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT $3 OFFSET $4
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, clientID, status, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	positions := make([]*domain.Position, 0)
	var total int64
	for rows.Next() {
		position := &domain.Position{}
		var assigned string
		dst := []any{
			&position.ID,
			&position.ClientID,
			&position.Title,
			&position.Description,
			&position.PayRate,
			&position.OvertimePayRate,
			&position.BillRate,
			&position.OvertimeBillRate,
			&position.OvertimeThreshold,
			&position.NumberOfPositions,
			&position.StartDate,
			&position.EndDate,
			&position.Status,
			&assigned,
			&position.CreatedAt,
			&position.Version,
			&total,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, 0, err
		}

		if err := scanInt64Array(assigned, &position.AssignedJobseekerIDs); err != nil {
			return nil, 0, err
		}

		positions = append(positions, position)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if err := r.loadPositionSkills(ctx, positions); err != nil {
		return nil, 0, err
	}

	return positions, total, nil
}

func (r *Repository) loadPositionSkills(ctx context.Context, positions []*domain.Position) error {
	byID := make(map[int64]*domain.Position, len(positions))
	for _, position := range positions {
		position.Skills = make([]string, 0)
		byID[position.ID] = position
	}

	if len(byID) == 0 {
		return nil
	}

	query := `SELECT position_id, skill FROM position_skills ORDER BY position_id, skill`
	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var positionID int64
		var skill string
		if err := rows.Scan(&positionID, &skill); err != nil {
			return err
		}
		if position, exists := byID[positionID]; exists {
			position.Skills = append(position.Skills, skill)
		}
	}

	return rows.Err()
}

// UpdatePosition rewrites the mutable position fields. The capacity check
// runs under a row lock so numberOfPositions can never drop below the number
// of jobseekers currently occupying it.
func (r *Repository) UpdatePosition(position *domain.Position) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `SELECT 1 FROM positions WHERE id = $1 FOR UPDATE`, position.ID); err != nil {
		return err
	}

	var occupying int32
	query := `
		SELECT COUNT(*) FROM assignments
		WHERE position_id = $1 AND status IN ('upcoming', 'active')
	`
	if err := tx.QueryRowContext(ctx, query, position.ID).Scan(&occupying); err != nil {
		return err
	}

	if position.NumberOfPositions < occupying {
		return ErrCapacityBelowAssigned
	}

	query = `
		UPDATE positions
		SET
			title = $1,
			description = $2,
			pay_rate = $3,
			overtime_pay_rate = $4,
			bill_rate = $5,
			overtime_bill_rate = $6,
			overtime_threshold = $7,
			number_of_positions = $8,
			start_date = $9,
			end_date = $10,
			status = $11,
			version = version + 1
		WHERE id = $12 AND version = $13
		RETURNING created_at, version
	`

	args := []any{
		position.Title,
		position.Description,
		position.PayRate,
		position.OvertimePayRate,
		position.BillRate,
		position.OvertimeBillRate,
		position.OvertimeThreshold,
		position.NumberOfPositions,
		position.StartDate,
		position.EndDate,
		position.Status,
		position.ID,
		position.Version,
	}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&position.CreatedAt, &position.Version); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM position_skills WHERE position_id = $1`, position.ID); err != nil {
		return err
	}
	for _, skill := range position.Skills {
		query := `INSERT INTO position_skills (position_id, skill) VALUES ($1, $2)`
		if _, err := tx.ExecContext(ctx, query, position.ID, skill); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeletePosition(id int64) error {
	query := `
		DELETE FROM positions WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}
