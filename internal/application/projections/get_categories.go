package projections

import (
	"context"

	"planner/internal/domain/category"
)

// QueryGetCategories returns every category.
func QueryGetCategories(ctx context.Context, store CategoryStore) ([]category.Category, error) {
	return store.List(ctx)
}

// categoryNames indexes category names by ID.
func categoryNames(categories []category.Category) map[string]string {
	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}
	return names
}
