package stats

import (
	"sort"

	"planner/internal/domain/activity"
	"planner/internal/domain/category"
)

const minutesPerDay = 24 * 60

// SleepDay is the reconstructed sleep for one calendar date.
type SleepDay struct {
	Date    string `json:"date"`
	Minutes int    `json:"minutes"`
}

// SleepSummary aggregates reconstructed sleep over the days that had any.
type SleepSummary struct {
	Days           []SleepDay `json:"days"`
	TotalMinutes   int        `json:"totalMinutes"`
	AverageMinutes float64    `json:"averageMinutes"`
}

type sleepEvent struct {
	kind  activity.SleepKind
	start int
	end   int
}

// ReconstructSleep derives sleep duration from the wake/bed/nap activities of the sleep category.
// Activities from other categories are ignored.
//
// Per date: each wake pairs with the nearest earlier bed that no earlier wake already used.
// The first wake without such a bed counts from midnight. A bed with no later wake counts
// until the next midnight. Naps add their own interval. Days with zero minutes are dropped
// from the average.
func ReconstructSleep(activities []activity.Activity) SleepSummary {
	byDate := make(map[string][]sleepEvent)
	for _, a := range activities {
		if a.CategoryID != category.SleepID {
			continue
		}
		kind := a.SleepKind()
		if kind == activity.SleepNone {
			continue
		}
		start, err := activity.ParseClock(a.StartTime)
		if err != nil {
			continue
		}
		end, err := activity.ParseClock(a.EndTime)
		if err != nil {
			end = start
		}
		byDate[a.Date] = append(byDate[a.Date], sleepEvent{kind: kind, start: start, end: end})
	}

	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	summary := SleepSummary{Days: []SleepDay{}}
	for _, d := range dates {
		minutes := sleepMinutesForDay(byDate[d])
		if minutes <= 0 {
			continue
		}
		summary.Days = append(summary.Days, SleepDay{Date: d, Minutes: minutes})
		summary.TotalMinutes += minutes
	}
	if len(summary.Days) > 0 {
		summary.AverageMinutes = float64(summary.TotalMinutes) / float64(len(summary.Days))
	}
	return summary
}

func sleepMinutesForDay(events []sleepEvent) int {
	sort.SliceStable(events, func(i, j int) bool { return events[i].start < events[j].start })

	var wakes, beds []int
	total := 0
	for _, e := range events {
		switch e.kind {
		case activity.SleepWake:
			wakes = append(wakes, e.start)
		case activity.SleepBed:
			beds = append(beds, e.start)
		case activity.SleepNap:
			if e.end > e.start {
				total += e.end - e.start
			}
		}
	}

	// A bed may pair with several wakes; only the first wake falls back to midnight.
	for i, wake := range wakes {
		bed := -1
		for j := len(beds) - 1; j >= 0; j-- {
			if beds[j] < wake {
				bed = beds[j]
				break
			}
		}
		switch {
		case bed >= 0:
			total += wake - bed
		case i == 0:
			total += wake
		}
	}

	if len(beds) > 0 {
		lastBed := beds[len(beds)-1]
		woke := false
		for _, wake := range wakes {
			if wake > lastBed {
				woke = true
				break
			}
		}
		if !woke {
			total += minutesPerDay - lastBed
		}
	}

	return total
}

// sleepEventMinutes is the per-activity heuristic used for completed sleep time:
// a wake counts from midnight, a bed until the next midnight, a nap its own interval.
func sleepEventMinutes(a activity.Activity) int {
	start, err := activity.ParseClock(a.StartTime)
	if err != nil {
		return 0
	}
	switch a.SleepKind() {
	case activity.SleepWake:
		return start
	case activity.SleepBed:
		return minutesPerDay - start
	case activity.SleepNap:
		return a.DurationMinutes()
	}
	return 0
}
