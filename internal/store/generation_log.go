package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// GenerationLog is the metadata recorded for one generated one-pager.
type GenerationLog struct {
	ID         uuid.UUID `json:"id"`
	RequestID  string    `json:"request_id"`
	Template   string    `json:"template"`
	Strategy   string    `json:"strategy"`
	ATSScore   int       `json:"ats_score"`
	Forced     bool      `json:"forced"`
	Attempts   int       `json:"attempts"`
	Pages      int       `json:"pages"`
	DurationMs int64     `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}

// PGStore reads and writes generation logs.
type PGStore struct {
	DB  *sql.DB
	now func() time.Time
}

// NewPGStore wraps an open database.
func NewPGStore(db *sql.DB) *PGStore {
	return &PGStore{DB: db, now: time.Now}
}

// Insert stores entry, assigning an ID and timestamp when they are unset.
func (s *PGStore) Insert(ctx context.Context, entry *GenerationLog) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = s.now().UTC()
	}

	const query = `
INSERT INTO generation_logs (id, request_id, template, strategy, ats_score, forced, attempts, pages, duration_ms, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := s.DB.ExecContext(ctx, query,
		entry.ID,
		entry.RequestID,
		entry.Template,
		entry.Strategy,
		entry.ATSScore,
		entry.Forced,
		entry.Attempts,
		entry.Pages,
		entry.DurationMs,
		entry.CreatedAt,
	)
	if err != nil {
		return &StoreError{Message: "insert generation log", Cause: err}
	}
	return nil
}

// Recent lists the newest generation logs first.
func (s *PGStore) Recent(ctx context.Context, limit int) ([]GenerationLog, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	const query = `
SELECT id, request_id, template, strategy, ats_score, forced, attempts, pages, duration_ms, created_at
FROM generation_logs
ORDER BY created_at DESC
LIMIT $1`

	rows, err := s.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, &StoreError{Message: "list generation logs", Cause: err}
	}
	defer rows.Close()

	out := []GenerationLog{}
	for rows.Next() {
		var entry GenerationLog
		if err := rows.Scan(
			&entry.ID,
			&entry.RequestID,
			&entry.Template,
			&entry.Strategy,
			&entry.ATSScore,
			&entry.Forced,
			&entry.Attempts,
			&entry.Pages,
			&entry.DurationMs,
			&entry.CreatedAt,
		); err != nil {
			return nil, &StoreError{Message: "scan generation log", Cause: err}
		}
		out = append(out, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, &StoreError{Message: "list generation logs", Cause: err}
	}
	return out, nil
}
