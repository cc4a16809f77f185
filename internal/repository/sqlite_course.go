package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/honphysics/portal/internal/db"
	"github.com/honphysics/portal/internal/domain"
)

// SQLiteCourseRepo implements CourseRepo using a SQLite database.
type SQLiteCourseRepo struct {
	db db.DBTX
}

// NewSQLiteCourseRepo creates a new SQLiteCourseRepo.
func NewSQLiteCourseRepo(conn db.DBTX) *SQLiteCourseRepo {
	return &SQLiteCourseRepo{db: conn}
}

const itemColumns = `id, unit_id, name, href, lesson_id, password, order_index`

// ReplaceCatalog deletes every unit and item and inserts the given ones.
// Run it inside a unit of work to make the swap atomic.
func (r *SQLiteCourseRepo) ReplaceCatalog(ctx context.Context, units []*domain.CourseUnit) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM course_items`); err != nil {
		return fmt.Errorf("clearing course items: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM course_units`); err != nil {
		return fmt.Errorf("clearing course units: %w", err)
	}

	for _, u := range units {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO course_units (id, title, order_index) VALUES (?, ?, ?)`,
			u.ID, u.Title, u.OrderIndex)
		if err != nil {
			return fmt.Errorf("inserting unit %d: %w", u.ID, err)
		}
		for _, it := range u.Items {
			_, err := r.db.ExecContext(ctx,
				`INSERT INTO course_items (`+itemColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
				it.ID, u.ID, it.Name, it.Href, it.LessonID, it.Password, it.OrderIndex)
			if err != nil {
				return fmt.Errorf("inserting item %q: %w", it.Name, err)
			}
		}
	}
	return nil
}

// ListUnits returns every unit in catalog order with its items attached.
func (r *SQLiteCourseRepo) ListUnits(ctx context.Context) ([]*domain.CourseUnit, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, order_index FROM course_units ORDER BY order_index, id`)
	if err != nil {
		return nil, fmt.Errorf("listing units: %w", err)
	}
	var units []*domain.CourseUnit
	byID := make(map[int]*domain.CourseUnit)
	for rows.Next() {
		u := &domain.CourseUnit{}
		if err := rows.Scan(&u.ID, &u.Title, &u.OrderIndex); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning unit: %w", err)
		}
		units = append(units, u)
		byID[u.ID] = u
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	itemRows, err := r.db.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM course_items ORDER BY unit_id, order_index`)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer itemRows.Close()
	for itemRows.Next() {
		it, err := scanItem(itemRows)
		if err != nil {
			return nil, err
		}
		if u, ok := byID[it.UnitID]; ok {
			u.Items = append(u.Items, it)
		}
	}
	return units, itemRows.Err()
}

func (r *SQLiteCourseRepo) GetItem(ctx context.Context, id string) (*domain.CourseItem, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM course_items WHERE id = ?`, id)
	it, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("course item %s: %w", id, ErrNotFound)
	}
	return it, err
}

// FindItemByLesson returns the first catalog item linking to lessonID.
func (r *SQLiteCourseRepo) FindItemByLesson(ctx context.Context, lessonID string) (*domain.CourseItem, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM course_items WHERE lesson_id = ? ORDER BY unit_id, order_index LIMIT 1`, lessonID)
	it, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("course item for lesson %s: %w", lessonID, ErrNotFound)
	}
	return it, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(s scanner) (*domain.CourseItem, error) {
	var it domain.CourseItem
	err := s.Scan(&it.ID, &it.UnitID, &it.Name, &it.Href, &it.LessonID, &it.Password, &it.OrderIndex)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scanning course item: %w", err)
	}
	return &it, nil
}
