package orchestrators

import (
	"context"
	"log/slog"

	"planner/internal/domain/category"
	"planner/internal/observability"
)

// CategoryStoreForOrchestrator defines the store interface needed by category orchestrators.
type CategoryStoreForOrchestrator interface {
	Create(ctx context.Context, c category.Category) error
	SeedDefaults(ctx context.Context, defaults []category.Category) error
}

// CreateCategoryInput carries input for the create category orchestrator.
type CreateCategoryInput struct {
	Name  string
	Color string
}

// CreateCategoryDeps holds dependencies for CreateCategory.
type CreateCategoryDeps struct {
	CategoryStore CategoryStoreForOrchestrator
	GenerateID    func() string
}

// ExecuteCreateCategory stores a user-defined category.
// PRE: Name is non-empty
// POST: Category persisted with a generated ID; an empty color becomes category.DefaultColor
func ExecuteCreateCategory(ctx context.Context, input CreateCategoryInput, deps CreateCategoryDeps) (category.Category, error) {
	c := category.Category{
		ID:    deps.GenerateID(),
		Name:  input.Name,
		Color: input.Color,
	}
	c.SetDefaultColor()
	if err := c.Validate(); err != nil {
		return category.Category{}, err
	}

	if err := deps.CategoryStore.Create(ctx, c); err != nil {
		return category.Category{}, err
	}

	observability.CategoriesCreated.Inc()
	slog.Info("category_event", "event", "category_created", "category_id", c.ID, "name", c.Name)
	return c, nil
}

// ExecuteSeedCategories inserts the default categories that are missing.
// POST: Every entry of category.Defaults exists; existing rows keep their values
func ExecuteSeedCategories(ctx context.Context, store CategoryStoreForOrchestrator) error {
	if err := store.SeedDefaults(ctx, category.Defaults); err != nil {
		return err
	}
	slog.Info("category_event", "event", "categories_seeded", "count", len(category.Defaults))
	return nil
}
