package projections

import (
	"context"
	"fmt"
	"time"

	"planner/internal/domain/activity"
	"planner/internal/domain/calendar"
	"planner/internal/domain/category"
)

// GetWeekQuery carries input for the week projection.
type GetWeekQuery struct {
	Date      string       // any YYYY-MM-DD inside the wanted week; empty means Now
	WeekStart time.Weekday // first column of the grid
	Now       time.Time    // optional: if zero, time.Now() is used
}

// WeekDay is one column of the week grid.
type WeekDay struct {
	Date       string              `json:"date"`
	Weekday    string              `json:"weekday"`
	IsToday    bool                `json:"isToday"`
	Activities []activity.Activity `json:"activities"`
}

// GetWeekResult carries the output of the week projection.
type GetWeekResult struct {
	StartDate  string              `json:"startDate"`
	EndDate    string              `json:"endDate"`
	PrevDate   string              `json:"prevDate"`
	NextDate   string              `json:"nextDate"`
	Days       []WeekDay           `json:"days"`
	Categories []category.Category `json:"categories"`
}

// GetWeekDeps holds dependencies for the week projection.
type GetWeekDeps struct {
	ActivityStore ActivityStore
	CategoryStore CategoryStore
}

// QueryGetWeek builds the seven-day grid for the week containing query.Date.
// PRE: query.Date is empty or YYYY-MM-DD
// POST: Exactly seven days starting on WeekStart, each with its activities in start order
func QueryGetWeek(ctx context.Context, query GetWeekQuery, deps GetWeekDeps) (GetWeekResult, error) {
	now := query.Now
	if now.IsZero() {
		now = time.Now()
	}

	anchor := now
	if query.Date != "" {
		d, err := time.ParseInLocation(activity.DateLayout, query.Date, now.Location())
		if err != nil {
			return GetWeekResult{}, activity.ErrInvalidDate
		}
		anchor = d
	}

	dates := calendar.WeekDates(anchor, query.WeekStart)
	activities, err := deps.ActivityStore.ListByDateRange(ctx, dates[0], dates[6])
	if err != nil {
		return GetWeekResult{}, fmt.Errorf("list week activities: %w", err)
	}
	categories, err := deps.CategoryStore.List(ctx)
	if err != nil {
		return GetWeekResult{}, fmt.Errorf("list categories: %w", err)
	}

	byDate := make(map[string][]activity.Activity, len(dates))
	for _, a := range activities {
		byDate[a.Date] = append(byDate[a.Date], a)
	}

	today := now.Format(activity.DateLayout)
	start := calendar.WeekStart(anchor, query.WeekStart)
	result := GetWeekResult{
		StartDate:  dates[0],
		EndDate:    dates[6],
		PrevDate:   start.AddDate(0, 0, -7).Format(activity.DateLayout),
		NextDate:   start.AddDate(0, 0, 7).Format(activity.DateLayout),
		Days:       make([]WeekDay, len(dates)),
		Categories: categories,
	}
	for i, d := range dates {
		dayActivities := byDate[d]
		if dayActivities == nil {
			dayActivities = []activity.Activity{}
		}
		result.Days[i] = WeekDay{
			Date:       d,
			Weekday:    start.AddDate(0, 0, i).Weekday().String(),
			IsToday:    d == today,
			Activities: dayActivities,
		}
	}
	return result, nil
}
