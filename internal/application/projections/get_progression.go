package projections

import (
	"context"
	"fmt"
	"time"

	"planner/internal/domain/activity"
	"planner/internal/domain/stats"
)

// GetProgressionDeps holds dependencies for the progression projection.
type GetProgressionDeps struct {
	ActivityStore ActivityStore
	CategoryStore CategoryStore
}

// QueryGetProgression summarises the last three calendar months, oldest first.
// PRE: now is the reference instant; zero means time.Now()
// POST: Returns stats.ProgressionMonths entries
func QueryGetProgression(ctx context.Context, now time.Time, deps GetProgressionDeps) ([]stats.MonthProgress, error) {
	if now.IsZero() {
		now = time.Now()
	}

	current := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	from := current.AddDate(0, 1-stats.ProgressionMonths, 0).Format(activity.DateLayout)
	to := current.AddDate(0, 1, -1).Format(activity.DateLayout)

	activities, err := deps.ActivityStore.ListByDateRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	categories, err := deps.CategoryStore.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return stats.ComputeProgression(activities, categories, now), nil
}
