package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/communityserve/volunteerhub/pkg/core/model"
)

// EventCatalogStore defines the database operations for event records
type EventCatalogStore interface {
	CreateEvent(ctx context.Context, event *model.Event) error
	GetEvent(ctx context.Context, id string) (*model.Event, error)
	ListEvents(ctx context.Context) ([]model.Event, error)
	UpdateEvent(ctx context.Context, event *model.Event) error
	DeleteEvent(ctx context.Context, id string) error
}

// EventParams carries the caller-supplied fields for creating or updating an event
type EventParams struct {
	Name          string
	Description   string
	Location      string
	Date          string
	Urgency       model.Urgency
	Requirements  []string
	MaxVolunteers int
}

func (p *EventParams) validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("event name is required: %w", model.ErrInvalidArgument)
	}
	if len(p.Requirements) == 0 {
		return fmt.Errorf("at least one requirement is required: %w", model.ErrInvalidArgument)
	}
	if strings.TrimSpace(p.Date) == "" {
		return fmt.Errorf("event date is required: %w", model.ErrInvalidArgument)
	}
	if p.MaxVolunteers < 0 {
		return fmt.Errorf("max volunteers must be non-negative, got %d: %w", p.MaxVolunteers, model.ErrInvalidArgument)
	}
	if p.Urgency != "" && !model.ValidUrgency(p.Urgency) {
		return fmt.Errorf("urgency %q: %w", p.Urgency, model.ErrInvalidArgument)
	}
	return nil
}

// CreateEvent adds an event to the catalog on behalf of its owner
func CreateEvent(
	ctx context.Context,
	store EventCatalogStore,
	logger *zap.Logger,
	ownerID string,
	params EventParams,
) (*model.Event, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	urgency := params.Urgency
	if urgency == "" {
		urgency = model.UrgencyMedium
	}

	event := &model.Event{
		ID:            uuid.New().String(),
		OwnerID:       ownerID,
		Name:          params.Name,
		Description:   params.Description,
		Location:      params.Location,
		Date:          params.Date,
		Urgency:       urgency,
		Requirements:  params.Requirements,
		MaxVolunteers: params.MaxVolunteers,
	}

	if err := store.CreateEvent(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	logger.Info("Event created",
		zap.String("event_id", event.ID),
		zap.String("owner_id", ownerID),
		zap.Int("max_volunteers", event.MaxVolunteers))

	return event, nil
}

// UpdateEvent replaces an event's mutable fields: requirements, capacity,
// urgency, date and descriptive text
func UpdateEvent(
	ctx context.Context,
	store EventCatalogStore,
	logger *zap.Logger,
	id string,
	params EventParams,
) (*model.Event, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	event, err := store.GetEvent(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch event %s: %w", id, err)
	}

	event.Name = params.Name
	event.Description = params.Description
	event.Location = params.Location
	event.Date = params.Date
	if params.Urgency != "" {
		event.Urgency = params.Urgency
	}
	event.Requirements = params.Requirements
	event.MaxVolunteers = params.MaxVolunteers

	if err := store.UpdateEvent(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to update event %s: %w", id, err)
	}

	logger.Info("Event updated", zap.String("event_id", id))

	return event, nil
}

// RemoveEvent deletes an event along with its matches and tasks
func RemoveEvent(ctx context.Context, store EventCatalogStore, logger *zap.Logger, id string) error {
	if err := store.DeleteEvent(ctx, id); err != nil {
		return fmt.Errorf("failed to delete event %s: %w", id, err)
	}
	logger.Info("Event removed", zap.String("event_id", id))
	return nil
}

// GetEvent fetches one event with its current occupancy count
func GetEvent(ctx context.Context, store EventCatalogStore, id string) (*model.Event, error) {
	event, err := store.GetEvent(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch event %s: %w", id, err)
	}
	return event, nil
}

// ListEvents returns all events with occupancy counts
func ListEvents(ctx context.Context, store EventCatalogStore) ([]model.Event, error) {
	events, err := store.ListEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}
