package activity

import (
	"context"
	"database/sql"
	"errors"

	"planner/internal/adapters/storage"
	domain "planner/internal/domain/activity"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new SQLiteStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const activityColumns = `id, title, start_time, end_time, category_id, completed, date`

// Create inserts a new activity.
// PRE: value has been validated and carries a fresh ID
// POST: Activity is persisted
func (s *SQLiteStore) Create(ctx context.Context, a domain.Activity) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO activities (`+activityColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Title, a.StartTime, a.EndTime, a.CategoryID, boolToInt(a.Completed), a.Date)
	return err
}

// GetByID retrieves an activity by ID.
// PRE: id is non-empty
// POST: Returns the activity or domain.ErrNotFound
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Activity, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+activityColumns+` FROM activities WHERE id = ?`, id)

	a, err := scanActivity(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Activity{}, domain.ErrNotFound
	}
	return a, err
}

// ListByDateRange returns activities whose date lies in [startDate, endDate].
// PRE: startDate and endDate are YYYY-MM-DD
// POST: Returns activities ordered by date then start time; empty when none match
func (s *SQLiteStore) ListByDateRange(ctx context.Context, startDate, endDate string) ([]domain.Activity, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+activityColumns+` FROM activities
		 WHERE date BETWEEN ? AND ?
		 ORDER BY date, start_time`,
		startDate, endDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanActivities(rows)
}

// Update overwrites every field of an existing activity.
// PRE: value has been validated
// POST: Row is updated, or domain.ErrNotFound when no row has the ID
func (s *SQLiteStore) Update(ctx context.Context, a domain.Activity) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE activities
		 SET title = ?, start_time = ?, end_time = ?, category_id = ?, completed = ?, date = ?
		 WHERE id = ?`,
		a.Title, a.StartTime, a.EndTime, a.CategoryID, boolToInt(a.Completed), a.Date, a.ID)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

// SetCompleted sets the completion flag.
// PRE: id is non-empty
// POST: completed is stored, or domain.ErrNotFound when no row has the ID
func (s *SQLiteStore) SetCompleted(ctx context.Context, id string, completed bool) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE activities SET completed = ? WHERE id = ?`, boolToInt(completed), id)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

// Delete removes an activity by ID.
// PRE: id is non-empty
// POST: Row is removed, or domain.ErrNotFound when no row has the ID
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM activities WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanActivity(row rowScanner) (domain.Activity, error) {
	var a domain.Activity
	var completed int
	var categoryID sql.NullString
	if err := row.Scan(&a.ID, &a.Title, &a.StartTime, &a.EndTime, &categoryID, &completed, &a.Date); err != nil {
		return domain.Activity{}, err
	}
	a.CategoryID = categoryID.String
	a.Completed = completed != 0
	return a, nil
}

func scanActivities(rows *sql.Rows) ([]domain.Activity, error) {
	activities := []domain.Activity{}
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}

func requireAffected(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
