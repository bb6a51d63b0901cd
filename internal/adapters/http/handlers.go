package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"planner/internal/application/orchestrators"
	"planner/internal/application/projections"
	"planner/internal/domain/activity"
	"planner/internal/domain/category"
	"planner/internal/domain/stats"
)

// generateID creates a new UUID string.
func generateID() string {
	return uuid.New().String()
}

// errorBody is the JSON shape of every API error.
type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("response_encode_failed", "error", err.Error())
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

// internalError logs the real error and returns a generic message to the client.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	writeError(w, http.StatusInternalServerError, "internal server error")
}

// methodNotAllowed answers a request whose method the route does not serve.
func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// badRequestErrors are the domain errors caused by client input.
var badRequestErrors = []error{
	activity.ErrEmptyTitle,
	activity.ErrEmptyCategoryID,
	activity.ErrInvalidDate,
	activity.ErrInvalidStartTime,
	activity.ErrInvalidEndTime,
	category.ErrEmptyName,
	category.ErrEmptyColor,
	orchestrators.ErrMissingID,
	projections.ErrMissingDateRange,
	projections.ErrInvalidFormat,
	stats.ErrInvalidRange,
}

// writeDomainError maps a command or query error to its HTTP status.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, activity.ErrNotFound), errors.Is(err, category.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if isBadRequest(err) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	internalError(w, err)
}

// handleHealthz reports liveness and database reachability.
func handleHealthz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		methodNotAllowed(w, http.MethodGet, http.MethodHead)
		return
	}
	if options.Ping != nil {
		if err := options.Ping(r.Context()); err != nil {
			slog.Error("healthz_failed", "error", err.Error())
			writeError(w, http.StatusServiceUnavailable, "database unreachable")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
