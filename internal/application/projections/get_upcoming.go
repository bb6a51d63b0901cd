package projections

import (
	"context"
	"time"

	"planner/internal/domain/activity"
	"planner/internal/domain/reminder"
)

// GetUpcomingQuery carries input for the upcoming activities projection.
type GetUpcomingQuery struct {
	Lead time.Duration // window after Now; zero means reminder.DefaultLead
	Now  time.Time     // optional: if zero, time.Now() is used
}

// QueryUpcomingActivities lists today's open activities starting within the lead window.
// POST: Reminders sorted by start time; empty slice when nothing is due
func QueryUpcomingActivities(ctx context.Context, query GetUpcomingQuery, store ActivityStore) ([]reminder.Reminder, error) {
	now := query.Now
	if now.IsZero() {
		now = time.Now()
	}
	lead := query.Lead
	if lead <= 0 {
		lead = reminder.DefaultLead
	}

	today := now.Format(activity.DateLayout)
	activities, err := store.ListByDateRange(ctx, today, today)
	if err != nil {
		return nil, err
	}
	upcoming := reminder.Upcoming(activities, now, lead)
	if upcoming == nil {
		upcoming = []reminder.Reminder{}
	}
	return upcoming, nil
}
