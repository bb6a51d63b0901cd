package projections

import (
	"context"
	"errors"
	"time"

	"planner/internal/domain/activity"
)

// ErrMissingDateRange is returned when either bound of a date range is absent.
var ErrMissingDateRange = errors.New("startDate and endDate are required")

// GetActivitiesQuery carries input for the activities projection.
type GetActivitiesQuery struct {
	StartDate string // YYYY-MM-DD, inclusive
	EndDate   string // YYYY-MM-DD, inclusive
}

// GetActivitiesDeps holds dependencies for the activities projection.
type GetActivitiesDeps struct {
	ActivityStore ActivityStore
}

// QueryGetActivities lists the activities dated within [StartDate, EndDate].
// PRE: both bounds are YYYY-MM-DD
// POST: Returns activities ordered by date then start time; empty slice when none match
func QueryGetActivities(ctx context.Context, query GetActivitiesQuery, deps GetActivitiesDeps) ([]activity.Activity, error) {
	if query.StartDate == "" || query.EndDate == "" {
		return nil, ErrMissingDateRange
	}
	for _, d := range []string{query.StartDate, query.EndDate} {
		if _, err := time.Parse(activity.DateLayout, d); err != nil {
			return nil, activity.ErrInvalidDate
		}
	}
	return deps.ActivityStore.ListByDateRange(ctx, query.StartDate, query.EndDate)
}
