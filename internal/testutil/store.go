package testutil

import (
	"context"
	"database/sql"
	"sync/atomic"
	"testing"

	"github.com/honphysics/portal/internal/db"
	"github.com/stretchr/testify/require"
)

// NewTestDB opens a migrated in-memory portal store that is closed with
// the test.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	store, err := db.Open(db.MemoryPath)
	require.NoError(t, err, "opening test store")
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// FailingExecUoW wraps a unit of work and makes write number FailAt (from
// 1) inside the transaction return Err. Reads pass through. Import tests use
// it to break a catalog replace partway and check nothing was kept.
type FailingExecUoW struct {
	db.UnitOfWork
	FailAt int32
	Err    error

	// Execs counts the writes attempted in the last transaction.
	Execs atomic.Int32
}

// NewFailingExecUoW fails write failAt on store with err.
func NewFailingExecUoW(store *sql.DB, failAt int32, err error) *FailingExecUoW {
	return &FailingExecUoW{UnitOfWork: db.NewUnitOfWork(store), FailAt: failAt, Err: err}
}

func (u *FailingExecUoW) WithinTx(ctx context.Context, fn db.TxFunc) error {
	u.Execs.Store(0)
	return u.UnitOfWork.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, failingExec{DBTX: tx, u: u})
	})
}

type failingExec struct {
	db.DBTX
	u *FailingExecUoW
}

func (f failingExec) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if f.u.Execs.Add(1) == f.u.FailAt {
		return nil, f.u.Err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
