package category

import (
	"context"
	"database/sql"
	"errors"

	"planner/internal/adapters/storage"
	domain "planner/internal/domain/category"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new SQLiteStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// List returns every category.
// POST: Returns categories in insertion order; empty when none exist
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Category, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, color FROM categories ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Color); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// GetByID retrieves a category by ID.
// PRE: id is non-empty
// POST: Returns the category or domain.ErrNotFound
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Category, error) {
	var c domain.Category
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, color FROM categories WHERE id = ?`, id).Scan(&c.ID, &c.Name, &c.Color)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Category{}, domain.ErrNotFound
	}
	return c, err
}

// Create inserts a new category.
// PRE: value has been validated and carries a fresh ID
// POST: Category is persisted
func (s *SQLiteStore) Create(ctx context.Context, c domain.Category) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO categories (id, name, color) VALUES (?, ?, ?)`, c.ID, c.Name, c.Color)
	return err
}

// SeedDefaults inserts each category that does not already exist.
// POST: Existing rows are untouched; running twice is a no-op
func (s *SQLiteStore) SeedDefaults(ctx context.Context, defaults []domain.Category) error {
	for _, c := range defaults {
		if _, err := s.db.ExecContext(ctx,
			`INSERT OR IGNORE INTO categories (id, name, color) VALUES (?, ?, ?)`,
			c.ID, c.Name, c.Color); err != nil {
			return err
		}
	}
	return nil
}
