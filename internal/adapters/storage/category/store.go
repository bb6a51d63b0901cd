package category

import (
	"context"

	domain "planner/internal/domain/category"
)

// Store persists Category state.
type Store interface {
	List(ctx context.Context) ([]domain.Category, error)
	GetByID(ctx context.Context, id string) (domain.Category, error)
	Create(ctx context.Context, value domain.Category) error
	SeedDefaults(ctx context.Context, defaults []domain.Category) error
}
