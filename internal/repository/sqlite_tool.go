package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/honphysics/portal/internal/db"
	"github.com/honphysics/portal/internal/domain"
)

// SQLiteToolRepo implements ToolRepo using a SQLite database.
type SQLiteToolRepo struct {
	db db.DBTX
}

// NewSQLiteToolRepo creates a new SQLiteToolRepo.
func NewSQLiteToolRepo(conn db.DBTX) *SQLiteToolRepo {
	return &SQLiteToolRepo{db: conn}
}

func (r *SQLiteToolRepo) Upsert(ctx context.Context, t *domain.Tool) error {
	query := `INSERT INTO tools (id, name, href, password) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, href = excluded.href, password = excluded.password`
	if _, err := r.db.ExecContext(ctx, query, t.ID, t.Name, t.Href, t.Password); err != nil {
		return fmt.Errorf("upserting tool %q: %w", t.Name, err)
	}
	return nil
}

// ReplaceAll deletes every tool and inserts the given ones.
func (r *SQLiteToolRepo) ReplaceAll(ctx context.Context, tools []*domain.Tool) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM tools`); err != nil {
		return fmt.Errorf("clearing tools: %w", err)
	}
	for _, t := range tools {
		if err := r.Upsert(ctx, t); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteToolRepo) Get(ctx context.Context, id string) (*domain.Tool, error) {
	var t domain.Tool
	err := r.db.QueryRowContext(ctx, `SELECT id, name, href, password FROM tools WHERE id = ?`, id).
		Scan(&t.ID, &t.Name, &t.Href, &t.Password)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("tool %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scanning tool: %w", err)
	}
	return &t, nil
}

// List returns the toolkit catalog sorted by name.
func (r *SQLiteToolRepo) List(ctx context.Context) ([]*domain.Tool, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, href, password FROM tools ORDER BY name COLLATE NOCASE, id`)
	if err != nil {
		return nil, fmt.Errorf("listing tools: %w", err)
	}
	defer rows.Close()

	var tools []*domain.Tool
	for rows.Next() {
		var t domain.Tool
		if err := rows.Scan(&t.ID, &t.Name, &t.Href, &t.Password); err != nil {
			return nil, fmt.Errorf("scanning tool: %w", err)
		}
		tools = append(tools, &t)
	}
	return tools, rows.Err()
}
