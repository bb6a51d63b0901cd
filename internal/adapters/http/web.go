package web

import (
	"context"
	"embed"
	"io/fs"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"planner/internal/adapters/http/middleware"
	activityStore "planner/internal/adapters/storage/activity"
	categoryStore "planner/internal/adapters/storage/category"
	"planner/internal/domain/reminder"
)

//go:embed templates/*.html static/*
var assets embed.FS

// Stores holds all storage dependencies.
type Stores struct {
	ActivityStore activityStore.Store
	CategoryStore categoryStore.Store
}

// Options carries the runtime settings handlers and middleware need.
type Options struct {
	WeekStart          time.Weekday
	ReminderLead       time.Duration
	CSRF               middleware.CSRFOptions
	SlowRequest        time.Duration
	RateLimitPerSecond int                             // zero disables rate limiting
	Ping               func(ctx context.Context) error // liveness probe for /healthz; nil reports ok
}

// Global stores instance (set by NewMux)
var stores *Stores

// Global options (set by NewMux)
var options Options

// timeNow is a variable for testability.
var timeNow = time.Now

// NewMux wires HTTP handlers for the app.
func NewMux(s *Stores, o Options) http.Handler {
	stores = s
	if o.ReminderLead <= 0 {
		o.ReminderLead = reminder.DefaultLead
	}
	options = o

	mux := http.NewServeMux()
	static, _ := fs.Sub(assets, "static")
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServerFS(static)))
	mux.Handle("/metrics", promhttp.Handler())
	registerRoutes(mux)

	chain := []func(http.Handler) http.Handler{
		// Timing wraps the mux directly so it can read the matched pattern.
		middleware.Timing(o.SlowRequest),
		middleware.SecurityHeaders,
		middleware.CSRF(o.CSRF),
	}
	if o.RateLimitPerSecond > 0 {
		chain = append(chain, middleware.RateLimit(middleware.NewRateLimiter(o.RateLimitPerSecond, time.Second)))
	}
	chain = append(chain, middleware.Recover)

	return middleware.Chain(mux, chain...)
}

// registerRoutes maps every page and API path to its handler.
func registerRoutes(mux *http.ServeMux) {
	// Pages
	mux.HandleFunc("/", handleWeekPage)
	mux.HandleFunc("/activities/new", handleActivityForm)
	mux.HandleFunc("/activities", handleActivityFormSubmit)
	mux.HandleFunc("/activities/toggle", handleToggleForm)
	mux.HandleFunc("/activities/delete", handleDeleteForm)
	mux.HandleFunc("/statistics", handleStatisticsPage)

	// JSON API
	mux.HandleFunc("/api/activities", handleActivities)
	mux.HandleFunc("/api/activities/toggle", handleToggleActivity)
	mux.HandleFunc("/api/categories", handleCategories)
	mux.HandleFunc("/api/week", handleWeek)
	mux.HandleFunc("/api/statistics", handleStatistics)
	mux.HandleFunc("/api/statistics/progression", handleProgression)
	mux.HandleFunc("/api/export", handleExport)
	mux.HandleFunc("/api/reminders/upcoming", handleUpcoming)
	mux.HandleFunc("/healthz", handleHealthz)
}
