package orchestrators

import (
	"context"
	"errors"
	"testing"
	"time"

	"planner/internal/adapters/email"
	"planner/internal/domain/activity"
)

type listOnlyStore struct {
	activities []activity.Activity
	err        error
}

func (s *listOnlyStore) ListByDateRange(_ context.Context, start, end string) ([]activity.Activity, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []activity.Activity
	for _, a := range s.activities {
		if a.Date >= start && a.Date <= end {
			out = append(out, a)
		}
	}
	return out, nil
}

type recordingSender struct {
	batches [][]email.SendRequest
}

func (r *recordingSender) Send(_ context.Context, req email.SendRequest) (email.SendResult, error) {
	r.batches = append(r.batches, []email.SendRequest{req})
	return email.SendResult{MessageID: "m"}, nil
}

func (r *recordingSender) SendBatch(_ context.Context, reqs []email.SendRequest) ([]email.SendResult, error) {
	r.batches = append(r.batches, reqs)
	out := make([]email.SendResult, len(reqs))
	for i := range out {
		out[i] = email.SendResult{MessageID: "m"}
	}
	return out, nil
}

func reminderFixture(now time.Time) *listOnlyStore {
	today := now.Format(activity.DateLayout)
	return &listOnlyStore{activities: []activity.Activity{
		{ID: "soon", Title: "Run", StartTime: "09:10", EndTime: "10:00", CategoryID: "sport", Date: today},
		{ID: "later", Title: "Lunch", StartTime: "12:00", EndTime: "13:00", CategoryID: "family", Date: today},
		{ID: "done", Title: "Call", StartTime: "09:05", EndTime: "09:30", CategoryID: "work", Date: today, Completed: true},
		{ID: "tomorrow", Title: "Run", StartTime: "09:10", EndTime: "10:00", CategoryID: "sport", Date: now.AddDate(0, 0, 1).Format(activity.DateLayout)},
	}}
}

func TestReminderWorker_SendsOncePerActivity(t *testing.T) {
	now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.Local)
	sender := &recordingSender{}
	w := NewReminderWorker(ReminderWorkerDeps{
		ActivityStore: reminderFixture(now),
		Sender:        sender,
		To:            []string{"me@example.com"},
		Now:           func() time.Time { return now },
	})

	n, err := w.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("RunOnce: %v", err)
	}
	if n != 1 {
		t.Fatalf("sent = %d, want 1", n)
	}
	if got := sender.batches[0][0].Subject; got != "Upcoming activity: Run" {
		t.Errorf("subject = %q", got)
	}

	n, err = w.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("second RunOnce: %v", err)
	}
	if n != 0 || len(sender.batches) != 1 {
		t.Errorf("second run sent %d (batches %d), want nothing new", n, len(sender.batches))
	}
}

func TestReminderWorker_ResetsOnNewDay(t *testing.T) {
	now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.Local)
	store := reminderFixture(now)
	sender := &recordingSender{}
	w := NewReminderWorker(ReminderWorkerDeps{
		ActivityStore: store,
		Sender:        sender,
		Now:           func() time.Time { return now },
	})
	if _, err := w.RunOnce(context.Background()); err != nil {
		t.Fatalf("RunOnce: %v", err)
	}

	now = now.AddDate(0, 0, 1)
	n, err := w.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("RunOnce next day: %v", err)
	}
	if n != 1 {
		t.Errorf("next day sent = %d, want 1", n)
	}
}

func TestReminderWorker_StoreError(t *testing.T) {
	w := NewReminderWorker(ReminderWorkerDeps{
		ActivityStore: &listOnlyStore{err: errors.New("locked")},
		Sender:        &recordingSender{},
	})
	if _, err := w.RunOnce(context.Background()); err == nil {
		t.Fatal("expected error from store")
	}
}

func TestStartReminderWorker_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	w := NewReminderWorker(ReminderWorkerDeps{
		ActivityStore: &listOnlyStore{},
		Sender:        &recordingSender{},
	})
	done := StartReminderWorker(ctx, w, time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop after cancel")
	}
}
