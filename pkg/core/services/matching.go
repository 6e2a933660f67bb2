package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/communityserve/volunteerhub/pkg/core/matching"
	"github.com/communityserve/volunteerhub/pkg/core/model"
	"github.com/communityserve/volunteerhub/pkg/db"
)

// MatchingStore defines the database operations needed for match management
type MatchingStore interface {
	GetVolunteer(ctx context.Context, id string) (*model.Volunteer, error)
	GetEvent(ctx context.Context, id string) (*model.Event, error)
	ListEvents(ctx context.Context) ([]model.Event, error)
	GetMatch(ctx context.Context, id string) (*model.Match, error)
	ListMatches(ctx context.Context) ([]model.Match, error)
	ListMatchesByVolunteer(ctx context.Context, volunteerID string) ([]model.Match, error)
	ListMatchesByEvent(ctx context.Context, eventID string) ([]model.Match, error)
	CreateMatch(ctx context.Context, match *model.Match) error
	UpdateMatchStatus(ctx context.Context, id string, status model.MatchStatus) (*model.Match, error)
	DeleteMatch(ctx context.Context, id string) (*model.Match, error)
}

// BestMatchResult is the top-scoring open event for a volunteer
type BestMatchResult struct {
	Event model.Event
	Score float64
}

// FindBestMatch scores every open event the volunteer is not already matched
// to and returns the one with the strictly highest compatibility score.
// Events are evaluated in ascending id order and only a strictly higher score
// displaces the incumbent, so ties resolve to the lowest event id.
//
// Returns model.ErrNotFound if the volunteer does not exist and
// model.ErrNoMatch if no event qualifies.
func FindBestMatch(
	ctx context.Context,
	store MatchingStore,
	logger *zap.Logger,
	volunteerID string,
) (*BestMatchResult, error) {
	volunteer, err := store.GetVolunteer(ctx, volunteerID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch volunteer %s: %w", volunteerID, err)
	}

	events, err := store.ListEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch events: %w", err)
	}
	logger.Debug("Scoring events for volunteer",
		zap.String("volunteer_id", volunteerID),
		zap.Int("event_count", len(events)))

	existing, err := store.ListMatchesByVolunteer(ctx, volunteerID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch matches for volunteer %s: %w", volunteerID, err)
	}
	matchedEvents := make(map[string]bool, len(existing))
	for _, match := range existing {
		matchedEvents[match.EventID] = true
	}

	var best *model.Event
	bestScore := 0.0

	for i := range events {
		event := &events[i]
		if matchedEvents[event.ID] {
			continue
		}
		if event.CurrentVolunteers >= event.MaxVolunteers {
			continue
		}

		score := matching.ScoreWithAvailability(
			volunteer.Skills,
			event.Requirements,
			volunteer.Availability,
			event.Date,
		)
		logger.Debug("Scored event",
			zap.String("event_id", event.ID),
			zap.Float64("score", score))

		if score > bestScore {
			bestScore = score
			best = event
		}
	}

	if best == nil {
		logger.Info("No qualifying event for volunteer", zap.String("volunteer_id", volunteerID))
		return nil, model.ErrNoMatch
	}

	logger.Info("Found best match",
		zap.String("volunteer_id", volunteerID),
		zap.String("event_id", best.ID),
		zap.Float64("score", bestScore))

	return &BestMatchResult{Event: *best, Score: bestScore}, nil
}

// CreateMatch registers a volunteer for an event. Self-service registrations
// create the match confirmed; administrator assignments create it pending.
// The duplicate and capacity checks run atomically with the insert in the
// store. On success the event owner is notified with both display names.
func CreateMatch(
	ctx context.Context,
	store MatchingStore,
	sink db.NotificationSink,
	logger *zap.Logger,
	volunteerID, eventID string,
	initialStatus model.MatchStatus,
) (*model.Match, error) {
	if initialStatus != model.MatchPending && initialStatus != model.MatchConfirmed {
		return nil, fmt.Errorf("initial status %q: %w", initialStatus, model.ErrInvalidArgument)
	}

	volunteer, err := store.GetVolunteer(ctx, volunteerID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch volunteer %s: %w", volunteerID, err)
	}
	event, err := store.GetEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch event %s: %w", eventID, err)
	}

	match := &model.Match{
		ID:            uuid.New().String(),
		VolunteerID:   volunteer.ID,
		VolunteerName: volunteer.Name,
		EventID:       event.ID,
		EventName:     event.Name,
		Status:        initialStatus,
		MatchedAt:     time.Now().UTC(),
	}

	if err := store.CreateMatch(ctx, match); err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}

	logger.Info("Match created",
		zap.String("match_id", match.ID),
		zap.String("volunteer_id", volunteer.ID),
		zap.String("event_id", event.ID),
		zap.String("status", string(initialStatus)))

	notify(ctx, sink, logger, model.Notification{
		RecipientUserID: event.OwnerID,
		Type:            NotificationMatchCreated,
		Message:         fmt.Sprintf("%s has registered for your event '%s'.", volunteer.Name, event.Name),
	})

	return match, nil
}

// UpdateMatchStatus moves a match through its lifecycle. Only the known
// statuses are accepted and only forward transitions are legal: pending may
// become confirmed or cancelled, confirmed may only be cancelled.
func UpdateMatchStatus(
	ctx context.Context,
	store MatchingStore,
	logger *zap.Logger,
	matchID string,
	newStatus model.MatchStatus,
) (*model.Match, error) {
	if !model.ValidMatchStatus(newStatus) {
		return nil, fmt.Errorf("status %q: %w", newStatus, model.ErrInvalidArgument)
	}

	match, err := store.UpdateMatchStatus(ctx, matchID, newStatus)
	if err != nil {
		return nil, fmt.Errorf("failed to update match %s: %w", matchID, err)
	}

	logger.Info("Match status updated",
		zap.String("match_id", matchID),
		zap.String("status", string(newStatus)))

	return match, nil
}

// DeleteMatch removes a match (unregistration) and notifies the event owner
func DeleteMatch(
	ctx context.Context,
	store MatchingStore,
	sink db.NotificationSink,
	logger *zap.Logger,
	matchID string,
) error {
	match, err := store.DeleteMatch(ctx, matchID)
	if err != nil {
		return fmt.Errorf("failed to delete match %s: %w", matchID, err)
	}

	logger.Info("Match deleted",
		zap.String("match_id", matchID),
		zap.String("volunteer_id", match.VolunteerID),
		zap.String("event_id", match.EventID))

	// Owner lookup is only needed for the notification; the deletion stands
	// even if the event vanished concurrently.
	event, err := store.GetEvent(ctx, match.EventID)
	if err != nil {
		logger.Warn("Could not resolve event owner for unregistration notice",
			zap.String("event_id", match.EventID),
			zap.Error(err))
		return nil
	}

	notify(ctx, sink, logger, model.Notification{
		RecipientUserID: event.OwnerID,
		Type:            NotificationMatchCancelled,
		Message:         fmt.Sprintf("%s has unregistered from your event '%s'.", match.VolunteerName, match.EventName),
	})

	return nil
}

// ListMatches returns all matches
func ListMatches(ctx context.Context, store MatchingStore) ([]model.Match, error) {
	matches, err := store.ListMatches(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	return matches, nil
}

// ListMatchesByVolunteer returns all matches for one volunteer
func ListMatchesByVolunteer(ctx context.Context, store MatchingStore, volunteerID string) ([]model.Match, error) {
	matches, err := store.ListMatchesByVolunteer(ctx, volunteerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches for volunteer %s: %w", volunteerID, err)
	}
	return matches, nil
}

// ListMatchesByEvent returns all matches for one event
func ListMatchesByEvent(ctx context.Context, store MatchingStore, eventID string) ([]model.Match, error) {
	matches, err := store.ListMatchesByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches for event %s: %w", eventID, err)
	}
	return matches, nil
}
