package postgres

import (
	"context"
	"fmt"

	"github.com/communityserve/volunteerhub/pkg/core/model"
)

// CreateTask inserts a task into an event's catalog
func (d *DB) CreateTask(ctx context.Context, task *model.Task) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO history_tasks (id, event_id, name, score, original_score, completed, volunteer_id)
		VALUES ($1, $2, $3, $4, $5, FALSE, NULL)
	`, task.ID, task.EventID, task.Name, task.Score, task.OriginalScore)
	if err != nil {
		return fmt.Errorf("failed to insert task: %w", mapError(err))
	}
	return nil
}

// GetTask retrieves one task
func (d *DB) GetTask(ctx context.Context, id string) (*model.Task, error) {
	row := d.pool.QueryRow(ctx, `
		SELECT id, event_id, name, score, original_score, completed, volunteer_id
		FROM history_tasks
		WHERE id = $1
	`, id)

	var task model.Task
	if err := row.Scan(&task.ID, &task.EventID, &task.Name, &task.Score,
		&task.OriginalScore, &task.Completed, &task.VolunteerID); err != nil {
		return nil, fmt.Errorf("failed to scan task: %w", mapError(err))
	}
	return &task, nil
}

// ListTasksByEvent retrieves every task under an event
func (d *DB) ListTasksByEvent(ctx context.Context, eventID string) ([]model.Task, error) {
	return d.queryTasks(ctx, `
		SELECT id, event_id, name, score, original_score, completed, volunteer_id
		FROM history_tasks
		WHERE event_id = $1
		ORDER BY id
	`, eventID)
}

// ListUnassignedTasksByEvent retrieves the tasks under an event with no claimant
func (d *DB) ListUnassignedTasksByEvent(ctx context.Context, eventID string) ([]model.Task, error) {
	return d.queryTasks(ctx, `
		SELECT id, event_id, name, score, original_score, completed, volunteer_id
		FROM history_tasks
		WHERE event_id = $1 AND volunteer_id IS NULL
		ORDER BY id
	`, eventID)
}

// UpdateTask persists catalog edits to a task
func (d *DB) UpdateTask(ctx context.Context, task *model.Task) error {
	tag, err := d.pool.Exec(ctx, `
		UPDATE history_tasks
		SET name = $2, score = $3, original_score = $4
		WHERE id = $1
	`, task.ID, task.Name, task.Score, task.OriginalScore)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", mapError(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("task %s: %w", task.ID, model.ErrNotFound)
	}
	return nil
}

// DeleteTask removes a task from its event's catalog
func (d *DB) DeleteTask(ctx context.Context, id string) error {
	tag, err := d.pool.Exec(ctx, `DELETE FROM history_tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("task %s: %w", id, model.ErrNotFound)
	}
	return nil
}

// ListTasksByVolunteer retrieves a volunteer's claimed and completed tasks
func (d *DB) ListTasksByVolunteer(ctx context.Context, volunteerID string) ([]model.Task, error) {
	return d.queryTasks(ctx, `
		SELECT id, event_id, name, score, original_score, completed, volunteer_id
		FROM history_tasks
		WHERE volunteer_id = $1
		ORDER BY id
	`, volunteerID)
}

func (d *DB) queryTasks(ctx context.Context, query string, args ...any) ([]model.Task, error) {
	rows, err := d.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		var task model.Task
		if err := rows.Scan(&task.ID, &task.EventID, &task.Name, &task.Score,
			&task.OriginalScore, &task.Completed, &task.VolunteerID); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tasks: %w", err)
	}
	return tasks, nil
}

// AssignTask claims a task for a volunteer. The task row is locked while the
// single-claimant invariant is re-checked, so two concurrent claims on the
// same task serialize and the loser sees a conflict.
func (d *DB) AssignTask(ctx context.Context, taskID, volunteerID string) (*model.Task, error) {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var claimant *string
	err = tx.QueryRow(ctx, `
		SELECT volunteer_id FROM history_tasks WHERE id = $1 FOR UPDATE
	`, taskID).Scan(&claimant)
	if err != nil {
		return nil, fmt.Errorf("failed to lock task %s: %w", taskID, mapError(err))
	}
	if claimant != nil {
		return nil, fmt.Errorf("task %s already assigned: %w", taskID, model.ErrConflict)
	}

	var volunteerExists bool
	err = tx.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM volunteers WHERE id = $1)
	`, volunteerID).Scan(&volunteerExists)
	if err != nil {
		return nil, fmt.Errorf("failed to check volunteer %s: %w", volunteerID, err)
	}
	if !volunteerExists {
		return nil, fmt.Errorf("volunteer %s: %w", volunteerID, model.ErrNotFound)
	}

	if _, err := tx.Exec(ctx, `
		UPDATE history_tasks SET volunteer_id = $2 WHERE id = $1
	`, taskID, volunteerID); err != nil {
		return nil, fmt.Errorf("failed to assign task: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return d.GetTask(ctx, taskID)
}

// RateTask completes a task at a percentage rating. The earned score is
// always derived from original_score under the row lock, so re-rating
// replaces the previous result instead of compounding on it.
func (d *DB) RateTask(ctx context.Context, taskID string, ratingPercent int) (*model.Task, error) {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var originalScore int
	err = tx.QueryRow(ctx, `
		SELECT original_score FROM history_tasks WHERE id = $1 FOR UPDATE
	`, taskID).Scan(&originalScore)
	if err != nil {
		return nil, fmt.Errorf("failed to lock task %s: %w", taskID, mapError(err))
	}

	earned := originalScore * ratingPercent / 100

	if _, err := tx.Exec(ctx, `
		UPDATE history_tasks SET score = $2, completed = TRUE WHERE id = $1
	`, taskID, earned); err != nil {
		return nil, fmt.Errorf("failed to rate task: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return d.GetTask(ctx, taskID)
}

// TotalPoints sums the earned scores of a volunteer's completed tasks.
// Unknown volunteers sum to zero.
func (d *DB) TotalPoints(ctx context.Context, volunteerID string) (int, error) {
	var total int
	err := d.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(score), 0)
		FROM history_tasks
		WHERE volunteer_id = $1 AND completed
	`, volunteerID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to total points: %w", err)
	}
	return total, nil
}
