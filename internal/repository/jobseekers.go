package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/crewdesk-dev/back-office/backend/internal/domain"
)

func (r *Repository) CreateJobseeker(jobseeker *domain.Jobseeker) error {
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
		INSERT INTO jobseekers (full_name, email, phone, desired_pay_rate)
		VALUES ($1, $2, $3, $4)
		RETURNING id, is_active, created_at, version
	`

	args := []any{jobseeker.FullName, jobseeker.Email, jobseeker.Phone, jobseeker.DesiredPayRate}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&jobseeker.ID, &jobseeker.IsActive, &jobseeker.CreatedAt, &jobseeker.Version); err != nil {
		return err
	}

	for _, skill := range jobseeker.Skills {
		query := `INSERT INTO jobseeker_skills (jobseeker_id, skill) VALUES ($1, $2)`
		if _, err := tx.ExecContext(ctx, query, jobseeker.ID, skill); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetJobseekerByID(id int64) (*domain.Jobseeker, error) {
	query := `
		SELECT
			j.full_name, j.email, j.phone, j.desired_pay_rate, j.is_active, j.created_at, j.version,
			js.skill
		FROM jobseekers j
		LEFT JOIN jobseeker_skills js ON j.id = js.jobseeker_id
		WHERE j.id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobseeker *domain.Jobseeker
	for rows.Next() {
		if jobseeker == nil {
			jobseeker = &domain.Jobseeker{
				ID:     id,
				Skills: make([]string, 0),
			}
		}

		var skill sql.NullString
		dst := []any{&jobseeker.FullName, &jobseeker.Email, &jobseeker.Phone, &jobseeker.DesiredPayRate, &jobseeker.IsActive, &jobseeker.CreatedAt, &jobseeker.Version, &skill}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		if skill.Valid {
			jobseeker.Skills = append(jobseeker.Skills, skill.String)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if jobseeker == nil {
		return nil, sql.ErrNoRows
	}

	return jobseeker, nil
}

// GetJobseekers returns one page plus the unpaginated total. search matches
// name or email; skill filters to jobseekers carrying that skill.
func (r *Repository) GetJobseekers(search string, skill string, limit int, offset int) ([]*domain.Jobseeker, int64, error) {
	query := `
		SELECT
			j.id, j.full_name, j.email, j.phone, j.desired_pay_rate, j.is_active, j.created_at, j.version,
			COUNT(*) OVER() AS total
		FROM jobseekers j
		WHERE ($1 = '' OR j.full_name ILIKE '%' || $1 || '%' OR j.email ILIKE '%' || $1 || '%')
		  AND ($2 = '' OR EXISTS (SELECT 1 FROM jobseeker_skills js WHERE js.jobseeker_id = j.id AND js.skill = $2))
		ORDER BY j.full_name
		LIMIT $3 OFFSET $4
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, search, skill, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	jobseekers := make([]*domain.Jobseeker, 0)
	var total int64
	for rows.Next() {
		jobseeker := &domain.Jobseeker{}
		dst := []any{&jobseeker.ID, &jobseeker.FullName, &jobseeker.Email, &jobseeker.Phone, &jobseeker.DesiredPayRate, &jobseeker.IsActive, &jobseeker.CreatedAt, &jobseeker.Version, &total}
		if err := rows.Scan(dst...); err != nil {
			return nil, 0, err
		}
		jobseekers = append(jobseekers, jobseeker)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if err := r.loadJobseekerSkills(ctx, jobseekers); err != nil {
		return nil, 0, err
	}

	return jobseekers, total, nil
}

// GetAllActiveJobseekers loads every active jobseeker with skills; used by
// the matching endpoint.
func (r *Repository) GetAllActiveJobseekers() ([]*domain.Jobseeker, error) {
	query := `
		SELECT id, full_name, email, phone, desired_pay_rate, is_active, created_at, version
		FROM jobseekers
		WHERE is_active
		ORDER BY full_name
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobseekers := make([]*domain.Jobseeker, 0)
	for rows.Next() {
		jobseeker := &domain.Jobseeker{}
		dst := []any{&jobseeker.ID, &jobseeker.FullName, &jobseeker.Email, &jobseeker.Phone, &jobseeker.DesiredPayRate, &jobseeker.IsActive, &jobseeker.CreatedAt, &jobseeker.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		jobseekers = append(jobseekers, jobseeker)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.loadJobseekerSkills(ctx, jobseekers); err != nil {
		return nil, err
	}

	return jobseekers, nil
}

func (r *Repository) loadJobseekerSkills(ctx context.Context, jobseekers []*domain.Jobseeker) error {
	byID := make(map[int64]*domain.Jobseeker, len(jobseekers))
	for _, jobseeker := range jobseekers {
		jobseeker.Skills = make([]string, 0)
		byID[jobseeker.ID] = jobseeker
	}

	if len(byID) == 0 {
		return nil
	}

	query := `SELECT jobseeker_id, skill FROM jobseeker_skills ORDER BY jobseeker_id, skill`
	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var jobseekerID int64
		var skill string
		if err := rows.Scan(&jobseekerID, &skill); err != nil {
			return err
		}
		if jobseeker, exists := byID[jobseekerID]; exists {
			jobseeker.Skills = append(jobseeker.Skills, skill)
		}
	}

	return rows.Err()
}

func (r *Repository) UpdateJobseeker(jobseeker *domain.Jobseeker) error {
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
		UPDATE jobseekers
		SET
			full_name = $1,
			email = $2,
			phone = $3,
			desired_pay_rate = $4,
			is_active = $5,
			version = version + 1
		WHERE id = $6 AND version = $7
		RETURNING created_at, version
	`

	args := []any{jobseeker.FullName, jobseeker.Email, jobseeker.Phone, jobseeker.DesiredPayRate, jobseeker.IsActive, jobseeker.ID, jobseeker.Version}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&jobseeker.CreatedAt, &jobseeker.Version); err != nil {
		return err
	}

	// Replace the skill rows rather than diffing them.
	if _, err := tx.ExecContext(ctx, `DELETE FROM jobseeker_skills WHERE jobseeker_id = $1`, jobseeker.ID); err != nil {
		return err
	}
	for _, skill := range jobseeker.Skills {
		query := `INSERT INTO jobseeker_skills (jobseeker_id, skill) VALUES ($1, $2)`
		if _, err := tx.ExecContext(ctx, query, jobseeker.ID, skill); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteJobseeker(id int64) error {
	query := `
		DELETE FROM jobseekers WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}
