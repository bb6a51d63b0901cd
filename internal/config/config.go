// Package config centralises configuration parsing for the planner server.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"planner/internal/domain/calendar"
)

// ErrMissingCSRFKey is returned when production runs without a stable CSRF key.
var ErrMissingCSRFKey = errors.New("PLANNER_CSRF_KEY is required in production")

// csrfKeyLen is the key length gorilla/csrf expects.
const csrfKeyLen = 32

// Config captures runtime configuration values for the planner server.
type Config struct {
	Addr             string
	DBPath           string
	Env              string
	LogLevel         slog.Level
	WeekStart        time.Weekday
	CSRFKey          []byte
	ResendKey        string
	ResendFrom       string
	ReminderTo       []string
	ReminderInterval time.Duration
	ReminderLead     time.Duration
	SlowQuery        time.Duration
	SlowRequest      time.Duration
	RateLimit        int // requests per second per client; 0 disables
}

// IsProduction reports whether the server runs with production settings.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads an optional .env file then environment variables into Config,
// applying defaults for local development.
// POST: Returns an error for malformed week start, log level or CSRF key
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Config{
		Addr:             getEnv("PLANNER_ADDR", ":8080"),
		DBPath:           getEnv("PLANNER_DB_PATH", "planner.db"),
		Env:              getEnv("PLANNER_ENV", "development"),
		ResendKey:        getEnv("PLANNER_RESEND_KEY", ""),
		ResendFrom:       getEnv("PLANNER_RESEND_FROM", "Planner <reminders@localhost>"),
		ReminderTo:       splitAndTrim(getEnv("PLANNER_REMINDER_TO", "")),
		ReminderInterval: getDurationEnv("PLANNER_REMINDER_INTERVAL", time.Minute),
		ReminderLead:     getDurationEnv("PLANNER_REMINDER_LEAD", 15*time.Minute),
		SlowQuery:        time.Duration(getIntEnv("PLANNER_SLOW_QUERY_MS", 50)) * time.Millisecond,
		SlowRequest:      time.Duration(getIntEnv("PLANNER_SLOW_REQUEST_MS", 200)) * time.Millisecond,
		RateLimit:        getNonNegativeIntEnv("PLANNER_RATE_LIMIT", 20),
	}

	var err error
	if cfg.LogLevel, err = parseLevel(getEnv("PLANNER_LOG_LEVEL", "info")); err != nil {
		return Config{}, err
	}
	if cfg.WeekStart, err = calendar.ParseWeekday(getEnv("PLANNER_WEEK_START", "monday")); err != nil {
		return Config{}, fmt.Errorf("PLANNER_WEEK_START: %w", err)
	}
	if cfg.CSRFKey, err = csrfKey(getEnv("PLANNER_CSRF_KEY", ""), cfg.IsProduction()); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// csrfKey decodes a hex key, or generates an ephemeral one outside production.
func csrfKey(raw string, production bool) ([]byte, error) {
	if raw == "" {
		if production {
			return nil, ErrMissingCSRFKey
		}
		key := make([]byte, csrfKeyLen)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("generate csrf key: %w", err)
		}
		return key, nil
	}
	key, err := hex.DecodeString(raw)
	if err != nil || len(key) != csrfKeyLen {
		return nil, fmt.Errorf("PLANNER_CSRF_KEY must be %d hex-encoded bytes", csrfKeyLen)
	}
	return key, nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("PLANNER_LOG_LEVEL: %w", err)
	}
	return level, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func splitAndTrim(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := time.ParseDuration(value); err == nil && parsed > 0 {
			return parsed
		}
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return parsed
		}
	}
	return fallback
}

// getNonNegativeIntEnv is getIntEnv for settings where 0 is meaningful.
func getNonNegativeIntEnv(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed >= 0 {
			return parsed
		}
	}
	return fallback
}
