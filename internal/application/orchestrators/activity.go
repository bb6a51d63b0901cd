package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	"planner/internal/domain/activity"
	"planner/internal/observability"
)

// ActivityStoreForOrchestrator defines the store interface needed by activity orchestrators.
type ActivityStoreForOrchestrator interface {
	Create(ctx context.Context, a activity.Activity) error
	GetByID(ctx context.Context, id string) (activity.Activity, error)
	Update(ctx context.Context, a activity.Activity) error
	SetCompleted(ctx context.Context, id string, completed bool) error
	Delete(ctx context.Context, id string) error
}

// ErrMissingID is returned when a command needs an activity ID and none was given.
var ErrMissingID = errors.New("activity id is required")

// --- Create Activity ---

// ActivityInput carries the user-editable fields of an activity.
type ActivityInput struct {
	ID         string
	Title      string
	StartTime  string
	EndTime    string
	CategoryID string
	Completed  bool
	Date       string
}

func (in ActivityInput) toActivity(id string) activity.Activity {
	return activity.Activity{
		ID:         id,
		Title:      in.Title,
		StartTime:  in.StartTime,
		EndTime:    in.EndTime,
		CategoryID: in.CategoryID,
		Completed:  in.Completed,
		Date:       in.Date,
	}
}

// CreateActivityDeps holds dependencies for CreateActivity.
type CreateActivityDeps struct {
	ActivityStore ActivityStoreForOrchestrator
	GenerateID    func() string
}

// ExecuteCreateActivity stores a new activity under a freshly generated ID.
// Wake and bed markers get their end time synced to the start time.
// PRE: input carries title, category, date and HH:MM times
// POST: Activity persisted; retried calls create duplicates
func ExecuteCreateActivity(ctx context.Context, input ActivityInput, deps CreateActivityDeps) (activity.Activity, error) {
	a := input.toActivity(deps.GenerateID())
	a.NormalizeMarker()
	if err := a.Validate(); err != nil {
		return activity.Activity{}, err
	}

	if err := deps.ActivityStore.Create(ctx, a); err != nil {
		return activity.Activity{}, err
	}

	observability.RecordActivityEvent("created")
	slog.Info("activity_event", "event", "activity_created", "activity_id", a.ID, "category_id", a.CategoryID, "date", a.Date)
	return a, nil
}

// --- Update Activity ---

// UpdateActivityDeps holds dependencies for UpdateActivity.
type UpdateActivityDeps struct {
	ActivityStore ActivityStoreForOrchestrator
}

// ExecuteUpdateActivity overwrites every field of an existing activity.
// PRE: input.ID is non-empty
// POST: Activity updated, or activity.ErrNotFound
func ExecuteUpdateActivity(ctx context.Context, input ActivityInput, deps UpdateActivityDeps) (activity.Activity, error) {
	if input.ID == "" {
		return activity.Activity{}, ErrMissingID
	}

	a := input.toActivity(input.ID)
	a.NormalizeMarker()
	if err := a.Validate(); err != nil {
		return activity.Activity{}, err
	}

	if err := deps.ActivityStore.Update(ctx, a); err != nil {
		return activity.Activity{}, err
	}

	observability.RecordActivityEvent("updated")
	slog.Info("activity_event", "event", "activity_updated", "activity_id", a.ID)
	return a, nil
}

// --- Completion ---

// SetCompletionInput carries input for the set completion orchestrator.
type SetCompletionInput struct {
	ID        string
	Completed bool
}

// CompletionDeps holds dependencies for SetCompletion and ToggleCompletion.
type CompletionDeps struct {
	ActivityStore ActivityStoreForOrchestrator
}

// ExecuteSetCompletion sets the completed flag without touching other fields.
// PRE: input.ID is non-empty
// POST: completed stored, or activity.ErrNotFound
func ExecuteSetCompletion(ctx context.Context, input SetCompletionInput, deps CompletionDeps) error {
	if input.ID == "" {
		return ErrMissingID
	}
	if err := deps.ActivityStore.SetCompleted(ctx, input.ID, input.Completed); err != nil {
		return err
	}
	recordCompletion(input.ID, input.Completed)
	return nil
}

// ExecuteToggleCompletion flips the completed flag of an activity.
// PRE: id is non-empty
// POST: Returns the activity with its new state; toggling twice restores the original
func ExecuteToggleCompletion(ctx context.Context, id string, deps CompletionDeps) (activity.Activity, error) {
	if id == "" {
		return activity.Activity{}, ErrMissingID
	}

	a, err := deps.ActivityStore.GetByID(ctx, id)
	if err != nil {
		return activity.Activity{}, err
	}

	a.Completed = !a.Completed
	if err := deps.ActivityStore.SetCompleted(ctx, id, a.Completed); err != nil {
		return activity.Activity{}, err
	}
	recordCompletion(id, a.Completed)
	return a, nil
}

func recordCompletion(id string, completed bool) {
	event := "reopened"
	if completed {
		event = "completed"
	}
	observability.RecordActivityEvent(event)
	slog.Info("activity_event", "event", "activity_"+event, "activity_id", id)
}

// --- Delete Activity ---

// DeleteActivityDeps holds dependencies for DeleteActivity.
type DeleteActivityDeps struct {
	ActivityStore ActivityStoreForOrchestrator
}

// ExecuteDeleteActivity removes an activity.
// PRE: id is non-empty
// POST: Row removed, or activity.ErrNotFound
func ExecuteDeleteActivity(ctx context.Context, id string, deps DeleteActivityDeps) error {
	if id == "" {
		return ErrMissingID
	}
	if err := deps.ActivityStore.Delete(ctx, id); err != nil {
		return err
	}
	observability.RecordActivityEvent("deleted")
	slog.Info("activity_event", "event", "activity_deleted", "activity_id", id)
	return nil
}
