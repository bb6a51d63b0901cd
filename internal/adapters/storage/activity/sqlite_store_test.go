package activity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"planner/internal/adapters/storage"
	domain "planner/internal/domain/activity"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	db, err := storage.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, storage.InitDB(db))
	return NewSQLiteStore(db)
}

func sample(id, date, start, end string) domain.Activity {
	return domain.Activity{
		ID:         id,
		Title:      "Standup " + id,
		StartTime:  start,
		EndTime:    end,
		CategoryID: "work",
		Date:       date,
	}
}

func TestSQLiteStore_CreateAndList(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	a := sample("a1", "2024-01-01", "09:00", "10:00")
	require.NoError(t, store.Create(ctx, a))

	got, err := store.ListByDateRange(ctx, "2024-01-01", "2024-01-01")
	require.NoError(t, err)
	require.Equal(t, []domain.Activity{a}, got)
}

func TestSQLiteStore_ListByDateRangeBoundsAndOrder(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	for _, a := range []domain.Activity{
		sample("late", "2024-01-02", "18:00", "19:00"),
		sample("early", "2024-01-02", "08:00", "09:00"),
		sample("first", "2024-01-01", "12:00", "13:00"),
		sample("outside", "2024-01-08", "08:00", "09:00"),
	} {
		require.NoError(t, store.Create(ctx, a))
	}

	got, err := store.ListByDateRange(ctx, "2024-01-01", "2024-01-07")
	require.NoError(t, err)

	ids := make([]string, len(got))
	for i, a := range got {
		ids[i] = a.ID
	}
	require.Equal(t, []string{"first", "early", "late"}, ids)
}

func TestSQLiteStore_ListEmptyRange(t *testing.T) {
	store := newTestStore(t)
	got, err := store.ListByDateRange(context.Background(), "2030-01-01", "2030-01-07")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Empty(t, got)
}

func TestSQLiteStore_Update(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	a := sample("a1", "2024-01-01", "09:00", "10:00")
	require.NoError(t, store.Create(ctx, a))

	a.Title = "Review"
	a.EndTime = "11:30"
	a.Completed = true
	require.NoError(t, store.Update(ctx, a))

	got, err := store.GetByID(ctx, "a1")
	require.NoError(t, err)
	require.Equal(t, a, got)
}

func TestSQLiteStore_UpdateUnknown(t *testing.T) {
	store := newTestStore(t)
	err := store.Update(context.Background(), sample("missing", "2024-01-01", "09:00", "10:00"))
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSQLiteStore_SetCompletedTwiceRestores(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	require.NoError(t, store.Create(ctx, sample("a1", "2024-01-01", "09:00", "10:00")))

	require.NoError(t, store.SetCompleted(ctx, "a1", true))
	got, err := store.GetByID(ctx, "a1")
	require.NoError(t, err)
	require.True(t, got.Completed)

	require.NoError(t, store.SetCompleted(ctx, "a1", false))
	got, err = store.GetByID(ctx, "a1")
	require.NoError(t, err)
	require.False(t, got.Completed)
}

func TestSQLiteStore_SetCompletedUnknown(t *testing.T) {
	store := newTestStore(t)
	require.ErrorIs(t, store.SetCompleted(context.Background(), "missing", true), domain.ErrNotFound)
}

func TestSQLiteStore_Delete(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	require.NoError(t, store.Create(ctx, sample("a1", "2024-01-01", "09:00", "10:00")))

	require.NoError(t, store.Delete(ctx, "a1"))

	_, err := store.GetByID(ctx, "a1")
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.ErrorIs(t, store.Delete(ctx, "a1"), domain.ErrNotFound)
}

func TestSQLiteStore_OrphanedCategoryTolerated(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	a := sample("a1", "2024-01-01", "09:00", "10:00")
	a.CategoryID = "no-such-category"
	require.NoError(t, store.Create(ctx, a))

	got, err := store.GetByID(ctx, "a1")
	require.NoError(t, err)
	require.Equal(t, "no-such-category", got.CategoryID)
}
