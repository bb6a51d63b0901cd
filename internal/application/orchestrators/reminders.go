package orchestrators

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"sync"
	"time"

	"planner/internal/adapters/email"
	"planner/internal/domain/activity"
	"planner/internal/domain/reminder"
	"planner/internal/observability"
)

// ReminderActivityStore is the read access the reminder worker needs.
type ReminderActivityStore interface {
	ListByDateRange(ctx context.Context, startDate, endDate string) ([]activity.Activity, error)
}

// ReminderWorkerDeps holds dependencies for the reminder worker.
type ReminderWorkerDeps struct {
	ActivityStore ReminderActivityStore
	Sender        email.Sender
	To            []string
	Lead          time.Duration
	Now           func() time.Time
}

// ReminderWorker emails a notice shortly before each of today's open activities starts.
// Each activity is announced at most once per day.
type ReminderWorker struct {
	deps ReminderWorkerDeps

	mu   sync.Mutex
	day  string
	sent map[string]bool
}

// NewReminderWorker creates a ReminderWorker.
// PRE: ActivityStore and Sender are non-nil
// POST: Lead defaults to reminder.DefaultLead and Now to time.Now
func NewReminderWorker(deps ReminderWorkerDeps) *ReminderWorker {
	if deps.Lead <= 0 {
		deps.Lead = reminder.DefaultLead
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &ReminderWorker{deps: deps, sent: make(map[string]bool)}
}

// RunOnce sends reminders for activities starting within the lead window.
// PRE: ctx is live
// POST: Returns the number of reminders delivered; delivered IDs are not sent again today
func (w *ReminderWorker) RunOnce(ctx context.Context) (int, error) {
	now := w.deps.Now()
	today := now.Format(activity.DateLayout)

	activities, err := w.deps.ActivityStore.ListByDateRange(ctx, today, today)
	if err != nil {
		return 0, fmt.Errorf("list today's activities: %w", err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.day != today {
		w.day = today
		w.sent = make(map[string]bool)
	}

	var due []reminder.Reminder
	for _, r := range reminder.Upcoming(activities, now, w.deps.Lead) {
		if !w.sent[r.Activity.ID] {
			due = append(due, r)
		}
	}
	if len(due) == 0 {
		return 0, nil
	}

	reqs := make([]email.SendRequest, len(due))
	for i, r := range due {
		reqs[i] = email.SendRequest{
			To:      w.deps.To,
			Subject: r.Subject(),
			HTML:    "<p>" + html.EscapeString(r.Body()) + "</p>",
			Text:    r.Body(),
		}
	}

	results, err := w.deps.Sender.SendBatch(ctx, reqs)
	// Results arrive in request order; a partial batch marks only the delivered prefix.
	for i := range results {
		if i < len(due) {
			w.sent[due[i].Activity.ID] = true
		}
	}
	observability.RemindersSent.WithLabelValues("ok").Add(float64(len(results)))
	if err != nil {
		observability.RemindersSent.WithLabelValues("error").Add(float64(len(due) - len(results)))
		return len(results), fmt.Errorf("send reminders: %w", err)
	}

	slog.Info("reminder_event", "event", "reminders_sent", "count", len(results))
	return len(results), nil
}

// StartReminderWorker runs the worker on a ticker until ctx is cancelled.
// PRE: interval > 0
// POST: The returned channel is closed once the goroutine has exited
func StartReminderWorker(ctx context.Context, w *ReminderWorker, interval time.Duration) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				runCtx, cancel := context.WithTimeout(ctx, interval)
				if _, err := w.RunOnce(runCtx); err != nil {
					slog.Error("reminder_worker_run_failed", "error", err.Error())
				}
				cancel()
			case <-ctx.Done():
				slog.Info("reminder_worker_stopped")
				return
			}
		}
	}()
	return done
}
