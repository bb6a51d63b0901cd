package activity

import (
	"context"

	domain "planner/internal/domain/activity"
)

// Store persists Activity state.
type Store interface {
	Create(ctx context.Context, value domain.Activity) error
	GetByID(ctx context.Context, id string) (domain.Activity, error)
	ListByDateRange(ctx context.Context, startDate, endDate string) ([]domain.Activity, error)
	Update(ctx context.Context, value domain.Activity) error
	SetCompleted(ctx context.Context, id string, completed bool) error
	Delete(ctx context.Context, id string) error
}
