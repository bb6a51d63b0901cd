package projections

import (
	"context"
	"fmt"
	"time"

	"planner/internal/domain/stats"
)

// GetStatisticsQuery carries input for the statistics projection.
type GetStatisticsQuery struct {
	Range     string       // week, month or all; empty means week
	WeekStart time.Weekday // used by the week range
	Now       time.Time    // optional: if zero, time.Now() is used
}

// GetStatisticsResult carries the output of the statistics projection.
type GetStatisticsResult struct {
	Range      stats.Range            `json:"range"`
	StartDate  string                 `json:"startDate,omitempty"`
	EndDate    string                 `json:"endDate,omitempty"`
	Categories []stats.CategoryStats  `json:"categories"`
	Sleep      stats.SleepSummary     `json:"sleep"`
	Bar        stats.BarChart         `json:"bar"`
	Pie        stats.PieChart         `json:"pie"`
	Details    []stats.CategoryDetail `json:"details"`
}

// GetStatisticsDeps holds dependencies for the statistics projection.
type GetStatisticsDeps struct {
	ActivityStore ActivityStore
	CategoryStore CategoryStore
}

// QueryGetStatistics recomputes every category metric from the stored activities.
// Totals, sleep and charts cover the selected range; details compare the current and previous month.
// PRE: query.Range is empty or a valid stats.Range
// POST: One stats entry and one detail entry per category
func QueryGetStatistics(ctx context.Context, query GetStatisticsQuery, deps GetStatisticsDeps) (GetStatisticsResult, error) {
	now := query.Now
	if now.IsZero() {
		now = time.Now()
	}

	r, err := stats.ParseRange(query.Range)
	if err != nil {
		return GetStatisticsResult{}, err
	}

	activities, err := deps.ActivityStore.ListByDateRange(ctx, firstDate, lastDate)
	if err != nil {
		return GetStatisticsResult{}, fmt.Errorf("list activities: %w", err)
	}
	categories, err := deps.CategoryStore.List(ctx)
	if err != nil {
		return GetStatisticsResult{}, fmt.Errorf("list categories: %w", err)
	}

	inRange := stats.FilterRange(activities, r, now, query.WeekStart)
	categoryStats := stats.ComputeCategoryStats(inRange, categories)
	bar, pie := stats.BuildCharts(categoryStats)
	from, to := r.Bounds(now, query.WeekStart)

	return GetStatisticsResult{
		Range:      r,
		StartDate:  from,
		EndDate:    to,
		Categories: categoryStats,
		Sleep:      stats.ReconstructSleep(inRange),
		Bar:        bar,
		Pie:        pie,
		Details:    stats.ComputeDetails(activities, categories, now),
	}, nil
}
