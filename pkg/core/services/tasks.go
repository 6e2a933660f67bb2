package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/communityserve/volunteerhub/pkg/core/model"
	"github.com/communityserve/volunteerhub/pkg/db"
)

// TaskLedgerStore defines the database operations needed for task management
type TaskLedgerStore interface {
	GetEvent(ctx context.Context, id string) (*model.Event, error)
	GetVolunteer(ctx context.Context, id string) (*model.Volunteer, error)
	CreateTask(ctx context.Context, task *model.Task) error
	GetTask(ctx context.Context, id string) (*model.Task, error)
	ListTasksByEvent(ctx context.Context, eventID string) ([]model.Task, error)
	ListUnassignedTasksByEvent(ctx context.Context, eventID string) ([]model.Task, error)
	ListTasksByVolunteer(ctx context.Context, volunteerID string) ([]model.Task, error)
	UpdateTask(ctx context.Context, task *model.Task) error
	DeleteTask(ctx context.Context, id string) error
	AssignTask(ctx context.Context, taskID, volunteerID string) (*model.Task, error)
	RateTask(ctx context.Context, taskID string, ratingPercent int) (*model.Task, error)
	TotalPoints(ctx context.Context, volunteerID string) (int, error)
}

// CreateTask adds an unassigned, incomplete task to an event's catalog.
// Score must be non-negative; it is recorded as both the live score and the
// original score the rating pipeline later derives from.
func CreateTask(
	ctx context.Context,
	store TaskLedgerStore,
	logger *zap.Logger,
	eventID, name string,
	score int,
) (*model.Task, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("task name is required: %w", model.ErrInvalidArgument)
	}
	if score < 0 {
		return nil, fmt.Errorf("score must be non-negative, got %d: %w", score, model.ErrInvalidArgument)
	}

	event, err := store.GetEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch event %s: %w", eventID, err)
	}

	task := &model.Task{
		ID:            uuid.New().String(),
		EventID:       event.ID,
		Name:          name,
		Score:         score,
		OriginalScore: score,
	}

	if err := store.CreateTask(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	logger.Info("Task created",
		zap.String("task_id", task.ID),
		zap.String("event_id", event.ID),
		zap.Int("score", score))

	return task, nil
}

// UpdateTask edits a task's catalog entry. Renames are always allowed; a
// score change is only legal while the task is unrated, because a completed
// task's earned value derives from the score it carried when rated.
func UpdateTask(
	ctx context.Context,
	store TaskLedgerStore,
	logger *zap.Logger,
	taskID, name string,
	score int,
) (*model.Task, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("task name is required: %w", model.ErrInvalidArgument)
	}
	if score < 0 {
		return nil, fmt.Errorf("score must be non-negative, got %d: %w", score, model.ErrInvalidArgument)
	}

	task, err := store.GetTask(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch task %s: %w", taskID, err)
	}

	if task.Completed && score != task.OriginalScore {
		return nil, fmt.Errorf("cannot change the score of a completed task: %w", model.ErrInvalidArgument)
	}

	task.Name = name
	if !task.Completed {
		task.Score = score
		task.OriginalScore = score
	}

	if err := store.UpdateTask(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task %s: %w", taskID, err)
	}

	logger.Info("Task updated",
		zap.String("task_id", taskID),
		zap.Int("score", task.OriginalScore))

	return task, nil
}

// DeleteTask removes a task from its event's catalog
func DeleteTask(ctx context.Context, store TaskLedgerStore, logger *zap.Logger, taskID string) error {
	if err := store.DeleteTask(ctx, taskID); err != nil {
		return fmt.Errorf("failed to delete task %s: %w", taskID, err)
	}
	logger.Info("Task deleted", zap.String("task_id", taskID))
	return nil
}

// AssignTask claims a task for a volunteer. Claiming is one-way and single
// occupancy: a task that already has a claimant stays with them and the
// second claim fails with a conflict. The event owner is notified on success.
func AssignTask(
	ctx context.Context,
	store TaskLedgerStore,
	sink db.NotificationSink,
	logger *zap.Logger,
	taskID, volunteerID string,
) (*model.Task, error) {
	if _, err := store.GetTask(ctx, taskID); err != nil {
		return nil, fmt.Errorf("failed to fetch task %s: %w", taskID, err)
	}
	volunteer, err := store.GetVolunteer(ctx, volunteerID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch volunteer %s: %w", volunteerID, err)
	}

	task, err := store.AssignTask(ctx, taskID, volunteerID)
	if err != nil {
		return nil, fmt.Errorf("failed to assign task %s: %w", taskID, err)
	}

	logger.Info("Task assigned",
		zap.String("task_id", taskID),
		zap.String("volunteer_id", volunteerID))

	event, err := store.GetEvent(ctx, task.EventID)
	if err != nil {
		logger.Warn("Could not resolve event owner for claim notice",
			zap.String("event_id", task.EventID),
			zap.Error(err))
		return task, nil
	}

	notify(ctx, sink, logger, model.Notification{
		RecipientUserID: event.OwnerID,
		Type:            NotificationTaskClaimed,
		Message:         fmt.Sprintf("%s has claimed the task '%s' for your event.", volunteer.Name, task.Name),
	})

	return task, nil
}

// RateTask completes a task at a 0-100 percent rating. The earned score is
// floor(originalScore * rating / 100); rating always derives from the
// original score, so re-rating replaces rather than compounds.
func RateTask(
	ctx context.Context,
	store TaskLedgerStore,
	logger *zap.Logger,
	taskID string,
	ratingPercent int,
) (*model.Task, error) {
	if ratingPercent < 0 || ratingPercent > 100 {
		return nil, fmt.Errorf("rating must be in [0,100], got %d: %w", ratingPercent, model.ErrInvalidArgument)
	}

	task, err := store.RateTask(ctx, taskID, ratingPercent)
	if err != nil {
		return nil, fmt.Errorf("failed to rate task %s: %w", taskID, err)
	}

	logger.Info("Task rated",
		zap.String("task_id", taskID),
		zap.Int("rating_percent", ratingPercent),
		zap.Int("earned_score", task.Score))

	return task, nil
}

// TotalPoints sums the earned scores of a volunteer's completed tasks.
// Volunteers with no completed tasks, and unknown volunteers, total 0.
func TotalPoints(ctx context.Context, store TaskLedgerStore, volunteerID string) (int, error) {
	total, err := store.TotalPoints(ctx, volunteerID)
	if err != nil {
		return 0, fmt.Errorf("failed to total points for volunteer %s: %w", volunteerID, err)
	}
	return total, nil
}

// ListTasksByEvent returns every task in an event's catalog
func ListTasksByEvent(ctx context.Context, store TaskLedgerStore, eventID string) ([]model.Task, error) {
	tasks, err := store.ListTasksByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks for event %s: %w", eventID, err)
	}
	return tasks, nil
}

// ListUnassignedTasksByEvent returns the tasks in an event still open to claim
func ListUnassignedTasksByEvent(ctx context.Context, store TaskLedgerStore, eventID string) ([]model.Task, error) {
	tasks, err := store.ListUnassignedTasksByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list unassigned tasks for event %s: %w", eventID, err)
	}
	return tasks, nil
}

// ListTasksByVolunteer returns a volunteer's task history, claimed and completed
func ListTasksByVolunteer(ctx context.Context, store TaskLedgerStore, volunteerID string) ([]model.Task, error) {
	if _, err := store.GetVolunteer(ctx, volunteerID); err != nil {
		return nil, fmt.Errorf("failed to fetch volunteer %s: %w", volunteerID, err)
	}
	tasks, err := store.ListTasksByVolunteer(ctx, volunteerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks for volunteer %s: %w", volunteerID, err)
	}
	return tasks, nil
}
