package repository

import (
	"context"
	"time"

	"github.com/crewdesk-dev/back-office/backend/internal/domain"
)

func (r *Repository) InsertActivity(activity *domain.Activity) error {
	query := `
		INSERT INTO activities (user_id, action, entity_type, entity_id, detail)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{activity.UserID, activity.Action, activity.EntityType, activity.EntityID, activity.Detail}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&activity.ID, &activity.CreatedAt); err != nil {
		return err
	}

	return nil
}

// GetActivities returns one page, newest first, plus the unpaginated total.
func (r *Repository) GetActivities(limit int, offset int) ([]*domain.Activity, int64, error) {
	query := `
		SELECT id, user_id, action, entity_type, entity_id, detail, created_at,
			COUNT(*) OVER() AS total
		FROM activities
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	activities := make([]*domain.Activity, 0)
	var total int64
	for rows.Next() {
		activity := &domain.Activity{}
		dst := []any{&activity.ID, &activity.UserID, &activity.Action, &activity.EntityType, &activity.EntityID, &activity.Detail, &activity.CreatedAt, &total}
		if err := rows.Scan(dst...); err != nil {
			return nil, 0, err
		}
		activities = append(activities, activity)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return activities, total, nil
}
