package repository

import (
	"context"
	"fmt"

	"github.com/honphysics/portal/internal/db"
	"github.com/honphysics/portal/internal/domain"
)

// SQLiteVisitRepo implements VisitRepo using a SQLite database.
type SQLiteVisitRepo struct {
	db db.DBTX
}

// NewSQLiteVisitRepo creates a new SQLiteVisitRepo.
func NewSQLiteVisitRepo(conn db.DBTX) *SQLiteVisitRepo {
	return &SQLiteVisitRepo{db: conn}
}

func (r *SQLiteVisitRepo) Record(ctx context.Context, v *domain.Visit) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO visits (id, lesson_id, view, opened_at) VALUES (?, ?, ?, ?)`,
		v.ID, v.LessonID, string(v.View), formatTime(v.OpenedAt))
	if err != nil {
		return fmt.Errorf("inserting visit: %w", err)
	}
	return nil
}

// ListRecent returns the newest visits first. A non-positive limit returns
// every visit.
func (r *SQLiteVisitRepo) ListRecent(ctx context.Context, limit int) ([]*domain.Visit, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, lesson_id, view, opened_at FROM visits ORDER BY opened_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing visits: %w", err)
	}
	defer rows.Close()

	var visits []*domain.Visit
	for rows.Next() {
		var v domain.Visit
		var view, at string
		if err := rows.Scan(&v.ID, &v.LessonID, &view, &at); err != nil {
			return nil, fmt.Errorf("scanning visit: %w", err)
		}
		v.View = domain.ViewName(view)
		v.OpenedAt = parseTime(at)
		visits = append(visits, &v)
	}
	return visits, rows.Err()
}
