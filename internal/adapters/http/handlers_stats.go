package web

import (
	"fmt"
	"net/http"

	"planner/internal/application/projections"
)

// handleStatistics handles GET /api/statistics?range=week|month|all
func handleStatistics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	result, err := projections.QueryGetStatistics(r.Context(), projections.GetStatisticsQuery{
		Range:     r.URL.Query().Get("range"),
		WeekStart: options.WeekStart,
		Now:       timeNow(),
	}, projections.GetStatisticsDeps{ActivityStore: stores.ActivityStore, CategoryStore: stores.CategoryStore})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleProgression handles GET /api/statistics/progression
func handleProgression(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	months, err := projections.QueryGetProgression(r.Context(), timeNow(), projections.GetProgressionDeps{
		ActivityStore: stores.ActivityStore,
		CategoryStore: stores.CategoryStore,
	})
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, months)
}

// handleExport handles GET /api/export?date=&format=markdown|html
// The body is a download; a matching If-None-Match answers 304.
func handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	q := r.URL.Query()
	doc, err := projections.QueryExportWeek(r.Context(), projections.ExportWeekQuery{
		Date:      q.Get("date"),
		Format:    q.Get("format"),
		WeekStart: options.WeekStart,
		Now:       timeNow(),
	}, projections.ExportWeekDeps{ActivityStore: stores.ActivityStore, CategoryStore: stores.CategoryStore})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	w.Header().Set("ETag", doc.ETag)
	w.Header().Set("Cache-Control", "no-cache")
	if r.Header.Get("If-None-Match") == doc.ETag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
	w.WriteHeader(http.StatusOK)
	w.Write(doc.Body)
}
