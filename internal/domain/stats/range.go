package stats

import (
	"errors"
	"time"

	"planner/internal/domain/activity"
	"planner/internal/domain/calendar"
)

// Range selects which activities feed the statistics.
type Range string

const (
	RangeWeek  Range = "week"
	RangeMonth Range = "month"
	RangeAll   Range = "all"
)

// ErrInvalidRange is returned for an unknown range name.
var ErrInvalidRange = errors.New("range must be one of: week, month, all")

// ParseRange validates a range name. Empty means week.
func ParseRange(s string) (Range, error) {
	switch Range(s) {
	case "":
		return RangeWeek, nil
	case RangeWeek, RangeMonth, RangeAll:
		return Range(s), nil
	}
	return "", ErrInvalidRange
}

// Bounds returns the inclusive YYYY-MM-DD bounds of r around now.
// RangeAll has no bounds and returns empty strings.
func (r Range) Bounds(now time.Time, weekStart time.Weekday) (string, string) {
	switch r {
	case RangeWeek:
		dates := calendar.WeekDates(now, weekStart)
		return dates[0], dates[len(dates)-1]
	case RangeMonth:
		return calendar.MonthBounds(now)
	}
	return "", ""
}

// FilterRange keeps the activities whose date falls inside r.
func FilterRange(activities []activity.Activity, r Range, now time.Time, weekStart time.Weekday) []activity.Activity {
	from, to := r.Bounds(now, weekStart)
	if from == "" {
		return activities
	}
	out := make([]activity.Activity, 0, len(activities))
	for _, a := range activities {
		if a.Date >= from && a.Date <= to {
			out = append(out, a)
		}
	}
	return out
}
