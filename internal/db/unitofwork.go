package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// DBTX is what repositories query: the shared *sql.DB, or the *sql.Tx of a
// catalog import so units, items and tools are replaced together.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)

// TxFunc is the body of a unit of work. Repositories it needs must be built
// on tx: the in-memory store has a single connection, so going through the
// outer *sql.DB from inside fn deadlocks.
type TxFunc func(ctx context.Context, tx DBTX) error

// UnitOfWork commits everything fn wrote, or nothing.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn TxFunc) error
}

type txUnitOfWork struct {
	store *sql.DB
}

// NewUnitOfWork returns a UnitOfWork running on store.
func NewUnitOfWork(store *sql.DB) UnitOfWork {
	return txUnitOfWork{store: store}
}

// WithinTx rolls back when fn fails or panics. A failed rollback is joined
// to fn's error rather than hiding it.
func (u txUnitOfWork) WithinTx(ctx context.Context, fn TxFunc) (err error) {
	tx, err := u.store.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	done := false
	defer func() {
		if done {
			return
		}
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			err = errors.Join(err, fmt.Errorf("rolling back: %w", rbErr))
		}
	}()

	if err = fn(ctx, tx); err != nil {
		return err
	}
	done = true
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}
