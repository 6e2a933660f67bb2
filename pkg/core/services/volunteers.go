package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/communityserve/volunteerhub/pkg/core/model"
)

// VolunteerRegistryStore defines the database operations for volunteer records
type VolunteerRegistryStore interface {
	CreateVolunteer(ctx context.Context, volunteer *model.Volunteer) error
	GetVolunteer(ctx context.Context, id string) (*model.Volunteer, error)
	ListVolunteers(ctx context.Context) ([]model.Volunteer, error)
	UpdateVolunteer(ctx context.Context, volunteer *model.Volunteer) error
	DeleteVolunteer(ctx context.Context, id string) error
}

// RegisterVolunteer creates a volunteer record with a skill profile and an
// availability label
func RegisterVolunteer(
	ctx context.Context,
	store VolunteerRegistryStore,
	logger *zap.Logger,
	userID, name string,
	skills []string,
	availability string,
) (*model.Volunteer, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("name is required: %w", model.ErrInvalidArgument)
	}
	if len(skills) == 0 {
		return nil, fmt.Errorf("at least one skill is required: %w", model.ErrInvalidArgument)
	}
	if strings.TrimSpace(availability) == "" {
		return nil, fmt.Errorf("availability is required: %w", model.ErrInvalidArgument)
	}

	volunteer := &model.Volunteer{
		ID:           uuid.New().String(),
		UserID:       userID,
		Name:         name,
		Skills:       skills,
		Availability: availability,
	}

	if err := store.CreateVolunteer(ctx, volunteer); err != nil {
		return nil, fmt.Errorf("failed to create volunteer: %w", err)
	}

	logger.Info("Volunteer registered",
		zap.String("volunteer_id", volunteer.ID),
		zap.Int("skill_count", len(skills)))

	return volunteer, nil
}

// UpdateVolunteer replaces a volunteer's skills and availability
func UpdateVolunteer(
	ctx context.Context,
	store VolunteerRegistryStore,
	logger *zap.Logger,
	id string,
	skills []string,
	availability string,
) (*model.Volunteer, error) {
	if len(skills) == 0 {
		return nil, fmt.Errorf("at least one skill is required: %w", model.ErrInvalidArgument)
	}
	if strings.TrimSpace(availability) == "" {
		return nil, fmt.Errorf("availability is required: %w", model.ErrInvalidArgument)
	}

	volunteer, err := store.GetVolunteer(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch volunteer %s: %w", id, err)
	}

	volunteer.Skills = skills
	volunteer.Availability = availability

	if err := store.UpdateVolunteer(ctx, volunteer); err != nil {
		return nil, fmt.Errorf("failed to update volunteer %s: %w", id, err)
	}

	logger.Info("Volunteer updated", zap.String("volunteer_id", id))

	return volunteer, nil
}

// RemoveVolunteer deletes a volunteer. Their matches cascade away and any
// task claims are nulled out; completed task history stays with the event.
func RemoveVolunteer(ctx context.Context, store VolunteerRegistryStore, logger *zap.Logger, id string) error {
	if err := store.DeleteVolunteer(ctx, id); err != nil {
		return fmt.Errorf("failed to delete volunteer %s: %w", id, err)
	}
	logger.Info("Volunteer removed", zap.String("volunteer_id", id))
	return nil
}

// GetVolunteer fetches one volunteer by id
func GetVolunteer(ctx context.Context, store VolunteerRegistryStore, id string) (*model.Volunteer, error) {
	volunteer, err := store.GetVolunteer(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch volunteer %s: %w", id, err)
	}
	return volunteer, nil
}

// ListVolunteers returns all volunteer records
func ListVolunteers(ctx context.Context, store VolunteerRegistryStore) ([]model.Volunteer, error) {
	volunteers, err := store.ListVolunteers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list volunteers: %w", err)
	}
	return volunteers, nil
}
