package calendar

import (
	"errors"
	"strings"
	"time"

	"planner/internal/domain/activity"
)

// ErrInvalidWeekday is returned for an unknown week-start name.
var ErrInvalidWeekday = errors.New("week start must be a day of the week")

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ParseWeekday converts a lowercase or capitalised day name to a time.Weekday.
func ParseWeekday(s string) (time.Weekday, error) {
	d, ok := weekdays[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return time.Sunday, ErrInvalidWeekday
	}
	return d, nil
}

// WeekStart returns local midnight of the first day of the week containing t.
func WeekStart(t time.Time, first time.Weekday) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := (int(day.Weekday()) - int(first) + 7) % 7
	return day.AddDate(0, 0, -offset)
}

// WeekDates returns the seven YYYY-MM-DD dates of the week containing t.
func WeekDates(t time.Time, first time.Weekday) []string {
	start := WeekStart(t, first)
	dates := make([]string, 7)
	for i := range dates {
		dates[i] = start.AddDate(0, 0, i).Format(activity.DateLayout)
	}
	return dates
}

// MonthBounds returns the first and last YYYY-MM-DD dates of the month containing t.
func MonthBounds(t time.Time) (string, string) {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	end := start.AddDate(0, 1, -1)
	return start.Format(activity.DateLayout), end.Format(activity.DateLayout)
}

// MonthKey returns the "YYYY-MM" prefix shared by every date in t's month.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}
