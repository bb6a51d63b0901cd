package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	emailPkg "planner/internal/adapters/email"
	web "planner/internal/adapters/http"
	"planner/internal/adapters/http/middleware"
	"planner/internal/adapters/storage"
	activityStore "planner/internal/adapters/storage/activity"
	categoryStore "planner/internal/adapters/storage/category"
	"planner/internal/application/orchestrators"
	"planner/internal/config"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

// shutdownTimeout bounds how long in-flight requests may finish after a signal.
const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	slog.SetDefault(newLogger(cfg))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Open the database with WAL mode and busy timeout, then apply the schema
	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}
	if err := storage.InitDB(db); err != nil {
		log.Fatalf("failed to initialise database: %v", err)
	}

	// Every statement goes through the timed wrapper for slow-query logs and metrics
	timedDB := storage.NewTimedDB(db, cfg.SlowQuery)
	stores := &web.Stores{
		ActivityStore: activityStore.NewSQLiteStore(timedDB),
		CategoryStore: categoryStore.NewSQLiteStore(timedDB),
	}

	if err := orchestrators.ExecuteSeedCategories(ctx, stores.CategoryStore); err != nil {
		log.Fatalf("failed to seed categories: %v", err)
	}

	// Configure email sender and the reminder worker
	sender := emailPkg.NewSender(cfg.ResendKey, cfg.ResendFrom)
	var reminderDone <-chan struct{}
	if len(cfg.ReminderTo) > 0 {
		if cfg.ResendKey == "" {
			slog.Warn("reminders_disabled_delivery", "reason", "PLANNER_RESEND_KEY is not set; reminders are logged only")
		}
		worker := orchestrators.NewReminderWorker(orchestrators.ReminderWorkerDeps{
			ActivityStore: stores.ActivityStore,
			Sender:        sender,
			To:            cfg.ReminderTo,
			Lead:          cfg.ReminderLead,
		})
		reminderDone = orchestrators.StartReminderWorker(ctx, worker, cfg.ReminderInterval)
		slog.Info("reminder_worker_started", "recipients", len(cfg.ReminderTo), "interval", cfg.ReminderInterval.String(), "lead", cfg.ReminderLead.String())
	}

	handler := web.NewMux(stores, web.Options{
		WeekStart:    cfg.WeekStart,
		ReminderLead: cfg.ReminderLead,
		CSRF: middleware.CSRFOptions{
			Key:            cfg.CSRFKey,
			Secure:         cfg.IsProduction(),
			TrustedOrigins: trustedOrigins(cfg.Addr),
		},
		SlowRequest:        cfg.SlowRequest,
		RateLimitPerSecond: cfg.RateLimit,
		Ping:               timedDB.Ping,
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("server_shutdown_failed", "error", err.Error())
		}
	}()

	slog.Info("server_starting", "version", version, "addr", cfg.Addr, "env", cfg.Env, "db", cfg.DBPath, "week_start", cfg.WeekStart.String())
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server failed: %v", err)
	}

	if reminderDone != nil {
		<-reminderDone
	}
	slog.Info("server_stopped")
}

// newLogger logs JSON in production and human-readable text elsewhere.
func newLogger(cfg config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	if cfg.IsProduction() {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

// trustedOrigins lists the hosts allowed to post forms for a listen address such as ":8080".
func trustedOrigins(addr string) []string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return nil
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		return []string{"localhost:" + port, "127.0.0.1:" + port}
	}
	return []string{net.JoinHostPort(host, port)}
}
