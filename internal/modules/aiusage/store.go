package aiusage

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store handles ai_usage persistence.
type Store struct {
	db *pgxpool.Pool
}

// NewStore returns a Store backed by the given connection pool.
func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// UseToken atomically checks the daily quota and deducts one token.
// It resets the counter to DefaultTokens when last_reset_day is behind the
// current day. Returns ErrInsufficientTokens when 0 rows are updated (quota
// exhausted or session absent).
func (s *Store) UseToken(ctx context.Context, sessionID string) error {
	today := time.Now().UTC().Format("2006-01-02")

	tag, err := s.db.Exec(ctx, `
		UPDATE ai_usage SET
			tokens_remaining = CASE WHEN last_reset_day != $1 THEN $2 - 1 ELSE tokens_remaining - 1 END,
			last_reset_day = $1
		WHERE session_id = $3 AND (last_reset_day < $1 OR tokens_remaining > 0)
	`, today, DefaultTokens, sessionID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrInsufficientTokens
	}
	return nil
}

// EnsureSession inserts a new ai_usage row for the session with the default
// token allowance. If the row already exists the insert is silently skipped
// (ON CONFLICT DO NOTHING).
func (s *Store) EnsureSession(ctx context.Context, sessionID string) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO ai_usage (session_id, tokens_remaining, last_reset_day)
		VALUES ($1, $2, $3)
		ON CONFLICT (session_id) DO NOTHING
	`, sessionID, DefaultTokens, time.Now().UTC().Format("2006-01-02"))
	return err
}
