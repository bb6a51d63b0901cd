// Package stats derives aggregate metrics from the in-memory activity list.
// Every function is pure and recomputes from scratch; nothing is cached between calls.
package stats

import (
	"fmt"

	"planner/internal/domain/activity"
	"planner/internal/domain/category"
)

// CategoryStats holds totals for one category.
type CategoryStats struct {
	Category            category.Category `json:"category"`
	TotalActivities     int               `json:"totalActivities"`
	CompletedActivities int               `json:"completedActivities"`
	CompletionRate      float64           `json:"completionRate"` // percentage
	TotalMinutes        int               `json:"totalMinutes"`
	CompletedMinutes    int               `json:"completedMinutes"`
	AverageSleepMinutes *float64          `json:"averageSleepMinutes,omitempty"`
}

// ComputeCategoryStats counts activities, completion and durations per category.
// Activities whose category is not in categories are ignored.
// PRE: none
// POST: one entry per category, in the order given
func ComputeCategoryStats(activities []activity.Activity, categories []category.Category) []CategoryStats {
	byCategory := groupByCategory(activities)

	out := make([]CategoryStats, 0, len(categories))
	for _, c := range categories {
		acts := byCategory[c.ID]
		s := CategoryStats{Category: c, TotalActivities: len(acts)}

		for _, a := range acts {
			if a.Completed {
				s.CompletedActivities++
			}
			if c.IsSleep() {
				if a.Completed {
					s.CompletedMinutes += sleepEventMinutes(a)
				}
				continue
			}
			d := a.DurationMinutes()
			s.TotalMinutes += d
			if a.Completed {
				s.CompletedMinutes += d
			}
		}
		s.CompletionRate = CompletionRate(s.CompletedActivities, s.TotalActivities)

		if c.IsSleep() {
			sleep := ReconstructSleep(acts)
			s.TotalMinutes = sleep.TotalMinutes
			avg := sleep.AverageMinutes
			s.AverageSleepMinutes = &avg
		}
		out = append(out, s)
	}
	return out
}

// CompletionRate returns completed/total as a percentage, or 0 when total is 0.
func CompletionRate(completed, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(completed) / float64(total) * 100
}

// CompletedMinutes returns the completed time of one activity under its category's rules.
func CompletedMinutes(a activity.Activity) int {
	if !a.Completed {
		return 0
	}
	if a.CategoryID == category.SleepID {
		return sleepEventMinutes(a)
	}
	return a.DurationMinutes()
}

// FormatMinutes renders a duration as "7h" or "7h 30min".
func FormatMinutes(minutes int) string {
	h := minutes / 60
	m := minutes % 60
	if m > 0 {
		return fmt.Sprintf("%dh %dmin", h, m)
	}
	return fmt.Sprintf("%dh", h)
}

func groupByCategory(activities []activity.Activity) map[string][]activity.Activity {
	out := make(map[string][]activity.Activity)
	for _, a := range activities {
		out[a.CategoryID] = append(out[a.CategoryID], a)
	}
	return out
}
