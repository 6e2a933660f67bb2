package db

import (
	"context"

	"github.com/communityserve/volunteerhub/pkg/core/model"
)

// VolunteerStore defines the interface for volunteer database operations
type VolunteerStore interface {
	CreateVolunteer(ctx context.Context, volunteer *model.Volunteer) error
	GetVolunteer(ctx context.Context, id string) (*model.Volunteer, error)
	ListVolunteers(ctx context.Context) ([]model.Volunteer, error)
	UpdateVolunteer(ctx context.Context, volunteer *model.Volunteer) error
	DeleteVolunteer(ctx context.Context, id string) error
}

// EventStore defines the interface for event database operations.
// Reads populate CurrentVolunteers with the pending+confirmed match count.
type EventStore interface {
	CreateEvent(ctx context.Context, event *model.Event) error
	GetEvent(ctx context.Context, id string) (*model.Event, error)
	ListEvents(ctx context.Context) ([]model.Event, error)
	UpdateEvent(ctx context.Context, event *model.Event) error
	DeleteEvent(ctx context.Context, id string) error
}

// MatchStore defines the interface for match database operations.
//
// CreateMatch performs the duplicate and capacity checks inside the same
// transaction as the insert, holding a row lock on the event, so concurrent
// registrations can never over-admit. UpdateMatchStatus locks the match row
// while checking transition legality. Both return the taxonomy sentinels from
// the model package wrapped with backend detail.
type MatchStore interface {
	CreateMatch(ctx context.Context, match *model.Match) error
	GetMatch(ctx context.Context, id string) (*model.Match, error)
	ListMatches(ctx context.Context) ([]model.Match, error)
	ListMatchesByVolunteer(ctx context.Context, volunteerID string) ([]model.Match, error)
	ListMatchesByEvent(ctx context.Context, eventID string) ([]model.Match, error)
	UpdateMatchStatus(ctx context.Context, id string, status model.MatchStatus) (*model.Match, error)
	DeleteMatch(ctx context.Context, id string) (*model.Match, error)
}

// TaskStore defines the interface for task database operations.
//
// AssignTask locks the task row for the claim check; RateTask locks it while
// deriving the earned score from original_score.
type TaskStore interface {
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

// LeaderboardStore defines the read-only aggregation over completed tasks
type LeaderboardStore interface {
	TopVolunteers(ctx context.Context, limit int) ([]model.LeaderboardEntry, error)
}

// NotificationSink receives structured side-effect events. Delivery is
// best-effort: callers log failures and never fail the triggering operation.
type NotificationSink interface {
	Send(ctx context.Context, notification model.Notification) error
}

// Store defines the interface for all database operations.
// The postgres-backed store implements this interface.
type Store interface {
	VolunteerStore
	EventStore
	MatchStore
	TaskStore
	LeaderboardStore
}
