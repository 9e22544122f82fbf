package repository

import (
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/crewdesk-dev/back-office/backend/internal/config"
)

// Domain errors surfaced from inside assignment/position transactions so the
// handler layer can map them to user-facing messages.
var (
	ErrPositionAtCapacity    = errors.New("position is already at capacity")
	ErrPositionClosed        = errors.New("position is closed")
	ErrDuplicateAssignment   = errors.New("jobseeker already holds an open assignment on this position")
	ErrCapacityBelowAssigned = errors.New("number of positions cannot drop below the current assignment count")
)

type Repository struct {
	cfg    *config.Config
	dbpool *sql.DB
}

func NewRepository(cfg *config.Config, dbpool *sql.DB) *Repository {
	return &Repository{
		cfg:    cfg,
		dbpool: dbpool,
	}
}

// scanInt64Array decodes a bigint[] column selected as
// array_to_json(col)::text.
func scanInt64Array(src string, dst *[]int64) error {
	*dst = []int64{}
	if src == "" {
		return nil
	}
	return json.Unmarshal([]byte(src), dst)
}
