package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/crewdesk-dev/back-office/backend/internal/domain"
)

// CreateAssignment inserts an assignment under the position's row lock so the
// capacity check and the insert are one atomic step. The denormalized
// assigned-jobseekers array and the position status are brought in line
// inside the same transaction.
func (r *Repository) CreateAssignment(assignment *domain.Assignment) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var capacity int32
	var status domain.PositionStatus
	query := `SELECT number_of_positions, status FROM positions WHERE id = $1 FOR UPDATE`
	if err := tx.QueryRowContext(ctx, query, assignment.PositionID).Scan(&capacity, &status); err != nil {
		return err
	}

	if status == domain.PositionClosed {
		return ErrPositionClosed
	}

	var duplicate bool
	query = `
		SELECT EXISTS (
			SELECT 1 FROM assignments
			WHERE position_id = $1 AND jobseeker_id = $2 AND status IN ('upcoming', 'active')
		)
	`
	if err := tx.QueryRowContext(ctx, query, assignment.PositionID, assignment.JobseekerID).Scan(&duplicate); err != nil {
		return err
	}
	if duplicate {
		return ErrDuplicateAssignment
	}

	var occupying int32
	query = `
		SELECT COUNT(*) FROM assignments
		WHERE position_id = $1 AND status IN ('upcoming', 'active')
	`
	if err := tx.QueryRowContext(ctx, query, assignment.PositionID).Scan(&occupying); err != nil {
		return err
	}
	if occupying >= capacity {
		return ErrPositionAtCapacity
	}

	query = `
		INSERT INTO assignments (position_id, jobseeker_id, status, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, version
	`

	args := []any{assignment.PositionID, assignment.JobseekerID, assignment.Status, assignment.StartDate, assignment.EndDate}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&assignment.ID, &assignment.CreatedAt, &assignment.Version); err != nil {
		return err
	}

	if err := refreshAssignedJobseekersTx(ctx, tx, assignment.PositionID); err != nil {
		return err
	}
	if err := syncPositionStatusTx(ctx, tx, assignment.PositionID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

// UpdateAssignmentStatus moves an assignment to a new status. Terminal
// statuses free capacity, so the array and the position status are refreshed
// in the same transaction.
func (r *Repository) UpdateAssignmentStatus(assignment *domain.Assignment, status domain.AssignmentStatus) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `SELECT 1 FROM positions WHERE id = $1 FOR UPDATE`, assignment.PositionID); err != nil {
		return err
	}

	query := `
		UPDATE assignments
		SET status = $1, version = version + 1
		WHERE id = $2 AND version = $3
		RETURNING version
	`
	if err := tx.QueryRowContext(ctx, query, status, assignment.ID, assignment.Version).Scan(&assignment.Version); err != nil {
		return err
	}
	assignment.Status = status

	if err := refreshAssignedJobseekersTx(ctx, tx, assignment.PositionID); err != nil {
		return err
	}
	if err := syncPositionStatusTx(ctx, tx, assignment.PositionID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

// syncPositionStatusTx flips a position between open and filled based on how
// many assignments occupy it. Closed positions are left alone.
func syncPositionStatusTx(ctx context.Context, tx *sql.Tx, positionID int64) error {
	query := `
		UPDATE positions p
		SET status = CASE
			WHEN p.status = 'closed' THEN p.status
			WHEN (
				SELECT COUNT(*) FROM assignments a
				WHERE a.position_id = p.id AND a.status IN ('upcoming', 'active')
			) >= p.number_of_positions THEN 'filled'
			ELSE 'open'
		END
		WHERE p.id = $1
	`
	_, err := tx.ExecContext(ctx, query, positionID)
	return err
}

func (r *Repository) GetAssignmentByID(id int64) (*domain.Assignment, error) {
	query := `
		SELECT position_id, jobseeker_id, status, start_date, end_date, created_at, version
		FROM assignments WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	assignment := &domain.Assignment{
		ID: id,
	}

	dst := []any{&assignment.PositionID, &assignment.JobseekerID, &assignment.Status, &assignment.StartDate, &assignment.EndDate, &assignment.CreatedAt, &assignment.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return assignment, nil
}

// GetAssignments filters by position and/or jobseeker; zero matches
// everything.
func (r *Repository) GetAssignments(positionID int64, jobseekerID int64) ([]*domain.Assignment, error) {
	query := `
		SELECT id, position_id, jobseeker_id, status, start_date, end_date, created_at, version
		FROM assignments
		WHERE ($1 = 0 OR position_id = $1)
		  AND ($2 = 0 OR jobseeker_id = $2)
		ORDER BY created_at DESC, id DESC
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, positionID, jobseekerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assignments := make([]*domain.Assignment, 0)
	for rows.Next() {
		assignment := &domain.Assignment{}
		dst := []any{&assignment.ID, &assignment.PositionID, &assignment.JobseekerID, &assignment.Status, &assignment.StartDate, &assignment.EndDate, &assignment.CreatedAt, &assignment.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		assignments = append(assignments, assignment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return assignments, nil
}
