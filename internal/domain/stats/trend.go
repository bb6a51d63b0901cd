package stats

import (
	"math"
	"strings"
	"time"

	"planner/internal/domain/activity"
	"planner/internal/domain/calendar"
	"planner/internal/domain/category"
)

// Trend is the direction of a completion rate between two months.
type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// TrendThreshold is the relative change below which a rate is considered stable.
const TrendThreshold = 0.1

// ProgressionMonths is how many calendar months the progression covers.
const ProgressionMonths = 3

// ComputeTrend compares current to previous with a 10% relative threshold.
// A zero previous rate has no relative change: 0 -> 0 is stable and 0 -> N is up.
func ComputeTrend(current, previous float64) Trend {
	diff := current - previous
	if previous == 0 {
		if current == 0 {
			return TrendStable
		}
		if diff > 0 {
			return TrendUp
		}
		return TrendDown
	}
	if math.Abs(diff)/previous < TrendThreshold {
		return TrendStable
	}
	if diff > 0 {
		return TrendUp
	}
	return TrendDown
}

// CategoryProgress is one category's completed time within a month.
type CategoryProgress struct {
	CategoryID       string `json:"categoryId"`
	Name             string `json:"name"`
	CompletedMinutes int    `json:"completedMinutes"`
	CompletedHours   int    `json:"completedHours"`
}

// MonthProgress summarises one calendar month.
type MonthProgress struct {
	Month           string             `json:"month"` // YYYY-MM
	Label           string             `json:"label"` // "January 2024"
	TotalActivities int                `json:"totalActivities"`
	CompletionRate  float64            `json:"completionRate"`
	Categories      []CategoryProgress `json:"categories"`
}

// ComputeProgression buckets the last three calendar months ending with now's month, oldest first.
func ComputeProgression(activities []activity.Activity, categories []category.Category, now time.Time) []MonthProgress {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	out := make([]MonthProgress, 0, ProgressionMonths)
	for i := ProgressionMonths - 1; i >= 0; i-- {
		month := first.AddDate(0, -i, 0)
		acts := inMonth(activities, month)

		completed := 0
		for _, a := range acts {
			if a.Completed {
				completed++
			}
		}

		p := MonthProgress{
			Month:           calendar.MonthKey(month),
			Label:           month.Format("January 2006"),
			TotalActivities: len(acts),
			CompletionRate:  CompletionRate(completed, len(acts)),
			Categories:      make([]CategoryProgress, 0, len(categories)),
		}
		for _, c := range categories {
			minutes := 0
			for _, a := range acts {
				if a.CategoryID == c.ID {
					minutes += CompletedMinutes(a)
				}
			}
			p.Categories = append(p.Categories, CategoryProgress{
				CategoryID:       c.ID,
				Name:             c.Name,
				CompletedMinutes: minutes,
				CompletedHours:   minutes / 60,
			})
		}
		out = append(out, p)
	}
	return out
}

// CategoryDetail holds the per-category efficiency breakdown.
type CategoryDetail struct {
	Category          category.Category `json:"category"`
	PlannedMinutes    int               `json:"plannedMinutes"`
	CompletedMinutes  int               `json:"completedMinutes"`
	AverageStartTime  string            `json:"averageStartTime,omitempty"` // HH:MM, empty when nothing completed
	AverageEndTime    string            `json:"averageEndTime,omitempty"`
	EfficiencyRatio   float64           `json:"efficiencyRatio"` // percentage of planned time completed
	CurrentMonthRate  float64           `json:"currentMonthRate"`
	PreviousMonthRate float64           `json:"previousMonthRate"`
	Trend             Trend             `json:"trend"`
}

// ComputeDetails builds per-category planned/completed time, average completed times,
// and the month-over-month completion trend.
func ComputeDetails(activities []activity.Activity, categories []category.Category, now time.Time) []CategoryDetail {
	byCategory := groupByCategory(activities)
	current := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	previous := current.AddDate(0, -1, 0)

	out := make([]CategoryDetail, 0, len(categories))
	for _, c := range categories {
		acts := byCategory[c.ID]
		d := CategoryDetail{Category: c}

		var startSum, endSum, n int
		for _, a := range acts {
			dur := a.DurationMinutes()
			d.PlannedMinutes += dur
			if !a.Completed {
				continue
			}
			d.CompletedMinutes += dur
			start, err1 := activity.ParseClock(a.StartTime)
			end, err2 := activity.ParseClock(a.EndTime)
			if err1 != nil || err2 != nil {
				continue
			}
			startSum += start
			endSum += end
			n++
		}
		if n > 0 {
			d.AverageStartTime = activity.FormatClock(startSum / n)
			d.AverageEndTime = activity.FormatClock(endSum / n)
		}
		if d.PlannedMinutes > 0 {
			d.EfficiencyRatio = float64(d.CompletedMinutes) / float64(d.PlannedMinutes) * 100
		}

		d.CurrentMonthRate = monthRate(acts, current)
		d.PreviousMonthRate = monthRate(acts, previous)
		d.Trend = ComputeTrend(d.CurrentMonthRate, d.PreviousMonthRate)
		out = append(out, d)
	}
	return out
}

func monthRate(activities []activity.Activity, month time.Time) float64 {
	acts := inMonth(activities, month)
	completed := 0
	for _, a := range acts {
		if a.Completed {
			completed++
		}
	}
	return CompletionRate(completed, len(acts))
}

func inMonth(activities []activity.Activity, month time.Time) []activity.Activity {
	prefix := calendar.MonthKey(month) + "-"
	var out []activity.Activity
	for _, a := range activities {
		if strings.HasPrefix(a.Date, prefix) {
			out = append(out, a)
		}
	}
	return out
}
