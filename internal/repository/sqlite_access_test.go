package repository

import (
	"context"
	"testing"
	"time"

	"github.com/honphysics/portal/internal/domain"
	"github.com/honphysics/portal/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToolRepo_ListSortedByName(t *testing.T) {
	repo := NewSQLiteToolRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, testutil.NewTestTool("Vector Adder", "./tools/vector-adder/")))
	require.NoError(t, repo.Upsert(ctx, testutil.NewTestTool("average Acceleration Explorer", "./tools/avg-acc/")))
	require.NoError(t, repo.Upsert(ctx, testutil.NewTestTool("Sig Fig Calculator", "./tools/sigfig/")))

	tools, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, tools, 3)
	assert.Equal(t, "average Acceleration Explorer", tools[0].Name)
	assert.Equal(t, "Sig Fig Calculator", tools[1].Name)
	assert.Equal(t, "Vector Adder", tools[2].Name)
}

func TestToolRepo_UpsertAndGet(t *testing.T) {
	repo := NewSQLiteToolRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	tool := &domain.Tool{ID: "sigfig", Name: "Sig Fig Calculator", Href: "./tools/sigfig/"}
	require.NoError(t, repo.Upsert(ctx, tool))

	tool.Password = "physics"
	require.NoError(t, repo.Upsert(ctx, tool))

	got, err := repo.Get(ctx, "sigfig")
	require.NoError(t, err)
	assert.Equal(t, "physics", got.Password)

	_, err = repo.Get(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestToolRepo_ReplaceAll(t *testing.T) {
	repo := NewSQLiteToolRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, testutil.NewTestTool("Old Tool", "./old/")))
	require.NoError(t, repo.ReplaceAll(ctx, []*domain.Tool{testutil.NewTestTool("New Tool", "./new/")}))

	tools, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, tools, 1)
	assert.Equal(t, "New Tool", tools[0].Name)
}

func TestUnlockRepo_Lifecycle(t *testing.T) {
	repo := NewSQLiteUnlockRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	ok, err := repo.IsUnlocked(ctx, domain.UnlockItem, "1-3")
	require.NoError(t, err)
	assert.False(t, ok)

	first := time.Date(2025, 9, 2, 8, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Unlock(ctx, domain.UnlockItem, "1-3", first))
	require.NoError(t, repo.Unlock(ctx, domain.UnlockItem, "1-3", first.Add(time.Hour)))

	ok, err = repo.IsUnlocked(ctx, domain.UnlockItem, "1-3")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.IsUnlocked(ctx, domain.UnlockTool, "1-3")
	require.NoError(t, err)
	assert.False(t, ok, "scopes are independent")

	unlocks, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, unlocks, 1)
	assert.Equal(t, first, unlocks[0].UnlockedAt, "first unlock time is kept")
	assert.Equal(t, domain.UnlockItem, unlocks[0].Scope)

	require.NoError(t, repo.Clear(ctx))
	ok, err = repo.IsUnlocked(ctx, domain.UnlockItem, "1-3")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVisitRepo_ListRecent(t *testing.T) {
	repo := NewSQLiteVisitRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	base := time.Date(2025, 9, 2, 8, 0, 0, 0, time.UTC)
	visits := []*domain.Visit{
		{ID: "v1", LessonID: "1-3", View: domain.ViewNotes, OpenedAt: base},
		{ID: "v2", LessonID: "2-1", View: domain.ViewExamples, OpenedAt: base.Add(500 * time.Millisecond)},
		{ID: "v3", LessonID: "2-1", View: domain.ViewPractice, OpenedAt: base.Add(2 * time.Second)},
	}
	for _, v := range visits {
		require.NoError(t, repo.Record(ctx, v))
	}

	got, err := repo.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "v3", got[0].ID)
	assert.Equal(t, "v2", got[1].ID)
	assert.Equal(t, domain.ViewExamples, got[1].View)
	assert.Equal(t, base.Add(500*time.Millisecond), got[1].OpenedAt)

	all, err := repo.ListRecent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestParseTime(t *testing.T) {
	at := time.Date(2025, 9, 2, 8, 0, 0, 123, time.UTC)
	assert.Equal(t, at, parseTime(formatTime(at)))
	assert.Equal(t, time.Date(2025, 9, 2, 8, 0, 0, 0, time.UTC), parseTime("2025-09-02T08:00:00Z"))
	assert.True(t, parseTime("yesterday").IsZero())
}
