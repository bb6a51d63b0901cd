package reminder

import (
	"fmt"
	"sort"
	"time"

	"planner/internal/domain/activity"
)

// DefaultLead is how far ahead of its start an activity is announced.
const DefaultLead = 15 * time.Minute

// Reminder announces one activity that starts soon.
type Reminder struct {
	Activity activity.Activity `json:"activity"`
	StartsAt time.Time         `json:"startsAt"`
	StartsIn time.Duration     `json:"startsIn"`
}

// Subject is the one-line notification title.
func (r Reminder) Subject() string {
	return fmt.Sprintf("Upcoming activity: %s", r.Activity.Title)
}

// Body is the notification text.
func (r Reminder) Body() string {
	return fmt.Sprintf("Starts at %s", r.Activity.StartTime)
}

// Upcoming returns the incomplete activities dated today that start within (now, now+lead].
// PRE: lead > 0
// POST: reminders sorted by start time
func Upcoming(activities []activity.Activity, now time.Time, lead time.Duration) []Reminder {
	today := now.Format(activity.DateLayout)
	var out []Reminder
	for _, a := range activities {
		if a.Completed || a.Date != today {
			continue
		}
		startsAt, err := a.StartsAt(now.Location())
		if err != nil {
			continue
		}
		diff := startsAt.Sub(now)
		if diff <= 0 || diff > lead {
			continue
		}
		out = append(out, Reminder{Activity: a, StartsAt: startsAt, StartsIn: diff})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartsAt.Before(out[j].StartsAt) })
	return out
}
