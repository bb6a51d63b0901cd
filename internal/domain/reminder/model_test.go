package reminder_test

import (
	"testing"
	"time"

	"planner/internal/domain/activity"
	"planner/internal/domain/reminder"
)

func TestUpcoming(t *testing.T) {
	now := time.Date(2024, 1, 1, 8, 50, 0, 0, time.UTC)
	acts := []activity.Activity{
		{ID: "soon", Title: "Standup", Date: "2024-01-01", StartTime: "09:00", EndTime: "09:15"},
		{ID: "edge", Title: "Review", Date: "2024-01-01", StartTime: "09:05", EndTime: "09:30"},
		{ID: "late", Title: "Lunch", Date: "2024-01-01", StartTime: "12:00", EndTime: "13:00"},
		{ID: "done", Title: "Email", Date: "2024-01-01", StartTime: "08:55", EndTime: "09:00", Completed: true},
		{ID: "past", Title: "Coffee", Date: "2024-01-01", StartTime: "08:50", EndTime: "09:00"},
		{ID: "tomorrow", Title: "Standup", Date: "2024-01-02", StartTime: "09:00", EndTime: "09:15"},
	}

	got := reminder.Upcoming(acts, now, reminder.DefaultLead)
	if len(got) != 2 {
		t.Fatalf("expected 2 reminders, got %d", len(got))
	}
	if got[0].Activity.ID != "soon" || got[1].Activity.ID != "edge" {
		t.Errorf("unexpected order: %s, %s", got[0].Activity.ID, got[1].Activity.ID)
	}
	if got[0].StartsIn != 10*time.Minute {
		t.Errorf("StartsIn = %v, want 10m", got[0].StartsIn)
	}
	if got[1].Subject() != "Upcoming activity: Review" {
		t.Errorf("Subject = %q", got[1].Subject())
	}
	if got[1].Body() != "Starts at 09:05" {
		t.Errorf("Body = %q", got[1].Body())
	}
}
