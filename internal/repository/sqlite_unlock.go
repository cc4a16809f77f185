package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/honphysics/portal/internal/db"
	"github.com/honphysics/portal/internal/domain"
)

// SQLiteUnlockRepo implements UnlockRepo using a SQLite database.
type SQLiteUnlockRepo struct {
	db db.DBTX
}

// NewSQLiteUnlockRepo creates a new SQLiteUnlockRepo.
func NewSQLiteUnlockRepo(conn db.DBTX) *SQLiteUnlockRepo {
	return &SQLiteUnlockRepo{db: conn}
}

// Unlock records access to a gated target. Unlocking twice keeps the first
// timestamp.
func (r *SQLiteUnlockRepo) Unlock(ctx context.Context, scope domain.UnlockScope, targetID string, at time.Time) error {
	query := `INSERT INTO unlocks (scope, target_id, unlocked_at) VALUES (?, ?, ?)
		ON CONFLICT(scope, target_id) DO NOTHING`
	if _, err := r.db.ExecContext(ctx, query, string(scope), targetID, formatTime(at)); err != nil {
		return fmt.Errorf("recording unlock: %w", err)
	}
	return nil
}

func (r *SQLiteUnlockRepo) IsUnlocked(ctx context.Context, scope domain.UnlockScope, targetID string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM unlocks WHERE scope = ? AND target_id = ?`, string(scope), targetID).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("checking unlock: %w", err)
	}
	return n > 0, nil
}

func (r *SQLiteUnlockRepo) List(ctx context.Context) ([]domain.Unlock, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT scope, target_id, unlocked_at FROM unlocks ORDER BY unlocked_at, target_id`)
	if err != nil {
		return nil, fmt.Errorf("listing unlocks: %w", err)
	}
	defer rows.Close()

	var out []domain.Unlock
	for rows.Next() {
		var u domain.Unlock
		var scope, at string
		if err := rows.Scan(&scope, &u.TargetID, &at); err != nil {
			return nil, fmt.Errorf("scanning unlock: %w", err)
		}
		u.Scope = domain.UnlockScope(scope)
		u.UnlockedAt = parseTime(at)
		out = append(out, u)
	}
	return out, rows.Err()
}

// Clear forgets every unlock (the "lock again" action).
func (r *SQLiteUnlockRepo) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM unlocks`); err != nil {
		return fmt.Errorf("clearing unlocks: %w", err)
	}
	return nil
}
