package calendar_test

import (
	"testing"
	"time"

	"planner/internal/domain/calendar"
)

func TestWeekStart(t *testing.T) {
	// Wednesday 2024-01-03
	wed := time.Date(2024, 1, 3, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name  string
		first time.Weekday
		want  string
	}{
		{"monday start", time.Monday, "2024-01-01"},
		{"sunday start", time.Sunday, "2023-12-31"},
		{"wednesday start", time.Wednesday, "2024-01-03"},
		{"thursday start", time.Thursday, "2023-12-28"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calendar.WeekStart(wed, tt.first).Format("2006-01-02")
			if got != tt.want {
				t.Errorf("WeekStart = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestWeekDates(t *testing.T) {
	dates := calendar.WeekDates(time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC), time.Monday)
	want := []string{"2024-02-26", "2024-02-27", "2024-02-28", "2024-02-29", "2024-03-01", "2024-03-02", "2024-03-03"}
	if len(dates) != len(want) {
		t.Fatalf("len = %d, want %d", len(dates), len(want))
	}
	for i := range want {
		if dates[i] != want[i] {
			t.Errorf("dates[%d] = %s, want %s", i, dates[i], want[i])
		}
	}
}

func TestParseWeekday(t *testing.T) {
	d, err := calendar.ParseWeekday("Monday")
	if err != nil || d != time.Monday {
		t.Errorf("ParseWeekday(Monday) = %v, %v", d, err)
	}
	if _, err := calendar.ParseWeekday("funday"); err != calendar.ErrInvalidWeekday {
		t.Errorf("expected ErrInvalidWeekday, got %v", err)
	}
}

func TestMonthBounds(t *testing.T) {
	start, end := calendar.MonthBounds(time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC))
	if start != "2024-02-01" || end != "2024-02-29" {
		t.Errorf("MonthBounds = %s..%s, want 2024-02-01..2024-02-29", start, end)
	}
}
