package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// HTTPRequestDuration observes request latency.
	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "planner",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Duration of HTTP requests by method, route and status.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	// QueryDuration observes SQL statement latency.
	QueryDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "planner",
		Subsystem: "storage",
		Name:      "query_duration_seconds",
		Help:      "Duration of SQL statements by operation.",
		Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5},
	}, []string{"op"})

	// ActivityEvents counts activity mutations by event name.
	ActivityEvents = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "planner",
		Subsystem: "activities",
		Name:      "events_total",
		Help:      "Activity mutations by event (created, updated, completed, reopened, deleted).",
	}, []string{"event"})

	// CategoriesCreated counts user-created categories.
	CategoriesCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "planner",
		Subsystem: "categories",
		Name:      "created_total",
		Help:      "Categories created through the API.",
	})

	// RemindersSent counts reminder deliveries by outcome.
	RemindersSent = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "planner",
		Subsystem: "reminders",
		Name:      "sent_total",
		Help:      "Reminder deliveries by outcome (ok, error).",
	}, []string{"outcome"})
)

func init() {
	prometheus.MustRegister(HTTPRequestDuration, QueryDuration, ActivityEvents, CategoriesCreated, RemindersSent)
}

// ObserveRequest records one HTTP request.
func ObserveRequest(method, path string, status int, d time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, strconv.Itoa(status)).Observe(d.Seconds())
}

// ObserveQuery records one SQL statement.
func ObserveQuery(op string, d time.Duration) {
	QueryDuration.WithLabelValues(op).Observe(d.Seconds())
}

// RecordActivityEvent bumps the counter for an activity mutation.
func RecordActivityEvent(event string) {
	ActivityEvents.WithLabelValues(event).Inc()
}
