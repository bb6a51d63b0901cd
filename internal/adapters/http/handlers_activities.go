package web

import (
	"net/http"
	"time"

	"planner/internal/application/orchestrators"
	"planner/internal/application/projections"
	"planner/internal/domain/activity"
)

// activityRequest is the JSON body accepted by POST and PUT /api/activities.
type activityRequest struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
	CategoryID string `json:"categoryId"`
	Completed  bool   `json:"completed"`
	Date       string `json:"date"`
}

func (req activityRequest) input() orchestrators.ActivityInput {
	return orchestrators.ActivityInput{
		ID:         req.ID,
		Title:      req.Title,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		CategoryID: req.CategoryID,
		Completed:  req.Completed,
		Date:       req.Date,
	}
}

// completionRequest is the JSON body accepted by PATCH /api/activities.
type completionRequest struct {
	ID        string `json:"id"`
	Completed *bool  `json:"completed"`
}

// idRequest is the optional JSON body accepted by DELETE /api/activities.
type idRequest struct {
	ID string `json:"id"`
}

// handleActivities handles GET/POST/PUT/PATCH/DELETE for /api/activities
func handleActivities(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch r.Method {
	case http.MethodGet:
		q := r.URL.Query()
		list, err := projections.QueryGetActivities(ctx, projections.GetActivitiesQuery{
			StartDate: q.Get("startDate"),
			EndDate:   q.Get("endDate"),
		}, projections.GetActivitiesDeps{ActivityStore: stores.ActivityStore})
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, list)

	case http.MethodPost:
		var req activityRequest
		if err := strictDecode(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON")
			return
		}
		a, err := orchestrators.ExecuteCreateActivity(ctx, req.input(), orchestrators.CreateActivityDeps{
			ActivityStore: stores.ActivityStore,
			GenerateID:    generateID,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, a)

	case http.MethodPut:
		var req activityRequest
		if err := strictDecode(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON")
			return
		}
		a, err := orchestrators.ExecuteUpdateActivity(ctx, req.input(), orchestrators.UpdateActivityDeps{
			ActivityStore: stores.ActivityStore,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, a)

	case http.MethodPatch:
		var req completionRequest
		if err := strictDecode(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON")
			return
		}
		if req.Completed == nil {
			writeError(w, http.StatusBadRequest, "completed is required")
			return
		}
		err := orchestrators.ExecuteSetCompletion(ctx, orchestrators.SetCompletionInput{
			ID:        req.ID,
			Completed: *req.Completed,
		}, orchestrators.CompletionDeps{ActivityStore: stores.ActivityStore})
		if err != nil {
			writeDomainError(w, err)
			return
		}
		a, err := stores.ActivityStore.GetByID(ctx, req.ID)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, a)

	case http.MethodDelete:
		id := r.URL.Query().Get("id")
		if id == "" && r.ContentLength != 0 {
			var req idRequest
			if err := strictDecode(r, &req); err != nil {
				writeError(w, http.StatusBadRequest, "invalid JSON")
				return
			}
			id = req.ID
		}
		if err := orchestrators.ExecuteDeleteActivity(ctx, id, orchestrators.DeleteActivityDeps{
			ActivityStore: stores.ActivityStore,
		}); err != nil {
			writeDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete)
	}
}

// handleToggleActivity handles POST /api/activities/toggle?id=
func handleToggleActivity(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}
	a, err := orchestrators.ExecuteToggleCompletion(r.Context(), r.URL.Query().Get("id"), orchestrators.CompletionDeps{
		ActivityStore: stores.ActivityStore,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// handleWeek handles GET /api/week?date=
func handleWeek(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	week, err := projections.QueryGetWeek(r.Context(), projections.GetWeekQuery{
		Date:      r.URL.Query().Get("date"),
		WeekStart: options.WeekStart,
		Now:       timeNow(),
	}, projections.GetWeekDeps{ActivityStore: stores.ActivityStore, CategoryStore: stores.CategoryStore})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, week)
}

// upcomingResponse is one entry of GET /api/reminders/upcoming.
type upcomingResponse struct {
	Activity        activity.Activity `json:"activity"`
	StartsAt        string            `json:"startsAt"`
	StartsInMinutes int               `json:"startsInMinutes"`
}

// handleUpcoming handles GET /api/reminders/upcoming
func handleUpcoming(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	reminders, err := projections.QueryUpcomingActivities(r.Context(), projections.GetUpcomingQuery{
		Lead: options.ReminderLead,
		Now:  timeNow(),
	}, stores.ActivityStore)
	if err != nil {
		internalError(w, err)
		return
	}

	out := make([]upcomingResponse, len(reminders))
	for i, rem := range reminders {
		out[i] = upcomingResponse{
			Activity:        rem.Activity,
			StartsAt:        rem.StartsAt.Format(time.RFC3339),
			StartsInMinutes: int(rem.StartsIn.Round(time.Minute).Minutes()),
		}
	}
	writeJSON(w, http.StatusOK, out)
}
