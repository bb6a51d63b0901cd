package web

import (
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"math"
	"net/http"
	"net/url"

	"github.com/gorilla/csrf"

	"planner/internal/application/orchestrators"
	"planner/internal/application/projections"
	"planner/internal/domain/activity"
	"planner/internal/domain/category"
	"planner/internal/domain/stats"
)

// Chart bar opacities, matching the JSON chart series.
const (
	plannedOpacity   = 0.3
	completedOpacity = 0.8
)

func renderTemplate(w http.ResponseWriter, r *http.Request, templateName string, status int, data any) {
	funcMap := template.FuncMap{
		"csrfToken":     func() string { return csrf.Token(r) },
		"formatMinutes": stats.FormatMinutes,
		"percent":       func(v float64) string { return fmt.Sprintf("%.0f%%", v) },
		// RGBA only emits palette values, so the results are safe in a style attribute.
		"plannedColor": func(token string) template.CSS {
			return template.CSS(category.RGBA(token, plannedOpacity))
		},
		"completedColor": func(token string) template.CSS {
			return template.CSS(category.RGBA(token, completedOpacity))
		},
		"width": func(v float64) template.CSS {
			return template.CSS(fmt.Sprintf("%.1f%%", v))
		},
	}

	tpl, err := template.New("layout.html").Funcs(funcMap).ParseFS(assets, "templates/layout.html", "templates/"+templateName)
	if err != nil {
		slog.Error("template_parse_failed", "template", templateName, "error", err.Error())
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tpl.Execute(w, data); err != nil {
		slog.Error("template_render_failed", "template", templateName, "error", err.Error())
	}
}

// pageError logs unexpected failures and answers with a plain-text status.
func pageError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, activity.ErrNotFound):
		http.Error(w, "activity not found", http.StatusNotFound)
	case errors.Is(err, activity.ErrInvalidDate), errors.Is(err, stats.ErrInvalidRange), errors.Is(err, orchestrators.ErrMissingID):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		slog.Error("internal_error", "error", err.Error())
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

func weekURL(date string) string {
	if date == "" {
		return "/"
	}
	return "/?date=" + url.QueryEscape(date)
}

// weekPageData feeds templates/week.html.
type weekPageData struct {
	Week       projections.GetWeekResult
	Categories map[string]category.Category
}

// Category returns the category for id, or a neutral placeholder when it no longer exists.
func (d weekPageData) Category(id string) category.Category {
	if c, ok := d.Categories[id]; ok {
		return c
	}
	return category.Category{ID: id, Name: id, Color: category.DefaultColor}
}

// handleWeekPage renders the week grid at /
func handleWeekPage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	week, err := projections.QueryGetWeek(r.Context(), projections.GetWeekQuery{
		Date:      r.URL.Query().Get("date"),
		WeekStart: options.WeekStart,
		Now:       timeNow(),
	}, projections.GetWeekDeps{ActivityStore: stores.ActivityStore, CategoryStore: stores.CategoryStore})
	if err != nil {
		pageError(w, err)
		return
	}

	byID := make(map[string]category.Category, len(week.Categories))
	for _, c := range week.Categories {
		byID[c.ID] = c
	}
	renderTemplate(w, r, "week.html", http.StatusOK, weekPageData{Week: week, Categories: byID})
}

// activityFormData feeds templates/activity_form.html.
type activityFormData struct {
	Date       string
	CategoryID string
	Title      string
	StartTime  string
	EndTime    string
	Categories []category.Category
	Presets    []activity.Preset
	Error      string
}

// handleActivityForm renders the add form at /activities/new?date=&category=&preset=
// Choosing the sleep category offers wake, bed and nap presets.
func handleActivityForm(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	q := r.URL.Query()
	data := activityFormData{
		Date:       q.Get("date"),
		CategoryID: q.Get("category"),
		StartTime:  "09:00",
		EndTime:    "10:00",
	}
	if data.Date == "" {
		data.Date = timeNow().Format(activity.DateLayout)
	}
	if data.CategoryID == category.SleepID {
		data.Presets = activity.SleepPresets
		for _, p := range activity.SleepPresets {
			if p.Title == q.Get("preset") {
				data.Title, data.StartTime, data.EndTime = p.Title, p.StartTime, p.EndTime
			}
		}
	}
	renderActivityForm(w, r, http.StatusOK, data)
}

func renderActivityForm(w http.ResponseWriter, r *http.Request, status int, data activityFormData) {
	categories, err := projections.QueryGetCategories(r.Context(), stores.CategoryStore)
	if err != nil {
		pageError(w, err)
		return
	}
	data.Categories = categories
	renderTemplate(w, r, "activity_form.html", status, data)
}

// handleActivityFormSubmit handles the POST /activities form
func handleActivityFormSubmit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	input := orchestrators.ActivityInput{
		Title:      r.PostFormValue("title"),
		StartTime:  r.PostFormValue("startTime"),
		EndTime:    r.PostFormValue("endTime"),
		CategoryID: r.PostFormValue("categoryId"),
		Date:       r.PostFormValue("date"),
	}
	a, err := orchestrators.ExecuteCreateActivity(r.Context(), input, orchestrators.CreateActivityDeps{
		ActivityStore: stores.ActivityStore,
		GenerateID:    generateID,
	})
	if err != nil {
		if isBadRequest(err) {
			renderActivityForm(w, r, http.StatusBadRequest, activityFormData{
				Date:       input.Date,
				CategoryID: input.CategoryID,
				Title:      input.Title,
				StartTime:  input.StartTime,
				EndTime:    input.EndTime,
				Error:      err.Error(),
			})
			return
		}
		pageError(w, err)
		return
	}
	http.Redirect(w, r, weekURL(a.Date), http.StatusSeeOther)
}

// handleToggleForm handles the POST /activities/toggle form
func handleToggleForm(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	a, err := orchestrators.ExecuteToggleCompletion(r.Context(), r.PostFormValue("id"), orchestrators.CompletionDeps{
		ActivityStore: stores.ActivityStore,
	})
	if err != nil {
		pageError(w, err)
		return
	}
	http.Redirect(w, r, weekURL(a.Date), http.StatusSeeOther)
}

// handleDeleteForm handles the POST /activities/delete form
func handleDeleteForm(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := orchestrators.ExecuteDeleteActivity(r.Context(), r.PostFormValue("id"), orchestrators.DeleteActivityDeps{
		ActivityStore: stores.ActivityStore,
	}); err != nil {
		pageError(w, err)
		return
	}
	http.Redirect(w, r, weekURL(r.PostFormValue("date")), http.StatusSeeOther)
}

// statsRow is one category line of the statistics page.
type statsRow struct {
	Stats          stats.CategoryStats
	Detail         stats.CategoryDetail
	PlannedWidth   float64 // percent of the widest planned bar
	CompletedWidth float64
}

// statisticsPageData feeds templates/statistics.html.
type statisticsPageData struct {
	Range        stats.Range
	Ranges       []stats.Range
	Result       projections.GetStatisticsResult
	Rows         []statsRow
	SleepAverage int // minutes, rounded
	Progression  []stats.MonthProgress
}

// handleStatisticsPage renders /statistics?range=
func handleStatisticsPage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	ctx := r.Context()
	now := timeNow()

	result, err := projections.QueryGetStatistics(ctx, projections.GetStatisticsQuery{
		Range:     r.URL.Query().Get("range"),
		WeekStart: options.WeekStart,
		Now:       now,
	}, projections.GetStatisticsDeps{ActivityStore: stores.ActivityStore, CategoryStore: stores.CategoryStore})
	if err != nil {
		pageError(w, err)
		return
	}
	progression, err := projections.QueryGetProgression(ctx, now, projections.GetProgressionDeps{
		ActivityStore: stores.ActivityStore,
		CategoryStore: stores.CategoryStore,
	})
	if err != nil {
		pageError(w, err)
		return
	}

	maxMinutes := 0
	for _, s := range result.Categories {
		maxMinutes = max(maxMinutes, s.TotalMinutes)
	}
	rows := make([]statsRow, len(result.Categories))
	for i, s := range result.Categories {
		rows[i] = statsRow{Stats: s, Detail: result.Details[i]}
		if maxMinutes > 0 {
			rows[i].PlannedWidth = float64(s.TotalMinutes) / float64(maxMinutes) * 100
			rows[i].CompletedWidth = float64(min(s.CompletedMinutes, s.TotalMinutes)) / float64(maxMinutes) * 100
		}
	}

	renderTemplate(w, r, "statistics.html", http.StatusOK, statisticsPageData{
		Range:        result.Range,
		Ranges:       []stats.Range{stats.RangeWeek, stats.RangeMonth, stats.RangeAll},
		Result:       result,
		Rows:         rows,
		SleepAverage: int(math.Round(result.Sleep.AverageMinutes)),
		Progression:  progression,
	})
}

// isBadRequest reports whether err was caused by client input.
func isBadRequest(err error) bool {
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
