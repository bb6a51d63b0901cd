package projections

import (
	"context"

	"planner/internal/domain/activity"
	"planner/internal/domain/category"
)

// ActivityStore is the read access projections need over activities.
type ActivityStore interface {
	ListByDateRange(ctx context.Context, startDate, endDate string) ([]activity.Activity, error)
}

// CategoryStore is the read access projections need over categories.
type CategoryStore interface {
	List(ctx context.Context) ([]category.Category, error)
}

// Open bounds used when every stored activity is needed.
const (
	firstDate = "0000-01-01"
	lastDate  = "9999-12-31"
)
