package category

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"planner/internal/adapters/storage"
	domain "planner/internal/domain/category"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	db, err := storage.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, storage.InitDB(db))
	return NewSQLiteStore(db)
}

func TestSQLiteStore_SeedDefaultsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.SeedDefaults(ctx, domain.Defaults))
	require.NoError(t, store.SeedDefaults(ctx, domain.Defaults))

	got, err := store.List(ctx)
	require.NoError(t, err)
	require.Equal(t, domain.Defaults, got)
}

func TestSQLiteStore_SeedKeepsExistingRow(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.Create(ctx, domain.Category{ID: domain.WorkID, Name: "Job", Color: "bg-red-500"}))
	require.NoError(t, store.SeedDefaults(ctx, domain.Defaults))

	got, err := store.GetByID(ctx, domain.WorkID)
	require.NoError(t, err)
	require.Equal(t, "Job", got.Name)
}

func TestSQLiteStore_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	c := domain.Category{ID: "c1", Name: "Reading", Color: "bg-indigo-500"}
	require.NoError(t, store.Create(ctx, c))

	got, err := store.GetByID(ctx, "c1")
	require.NoError(t, err)
	require.Equal(t, c, got)
}

func TestSQLiteStore_GetUnknown(t *testing.T) {
	store := newTestStore(t)
	_, err := store.GetByID(context.Background(), "missing")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSQLiteStore_ListEmpty(t *testing.T) {
	store := newTestStore(t)
	got, err := store.List(context.Background())
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Empty(t, got)
}
