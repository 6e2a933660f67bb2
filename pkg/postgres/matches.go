package postgres

import (
	"context"
	"fmt"

	"github.com/communityserve/volunteerhub/pkg/core/model"
)

const matchSelect = `
	SELECT m.id, m.volunteer_id, u.name, m.event_id, e.name, m.status, m.matched_at
	FROM matches m
	JOIN volunteers v ON v.id = m.volunteer_id
	JOIN users u ON u.id = v.user_id
	JOIN events e ON e.id = m.event_id
`

// CreateMatch inserts a match after re-checking the duplicate and capacity
// invariants inside one transaction. The event row is locked for the duration
// of the check-and-insert so concurrent registrations against a near-full
// event serialize instead of double-admitting.
func (d *DB) CreateMatch(ctx context.Context, match *model.Match) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var maxVolunteers int
	err = tx.QueryRow(ctx, `
		SELECT max_volunteers FROM events WHERE id = $1 FOR UPDATE
	`, match.EventID).Scan(&maxVolunteers)
	if err != nil {
		return fmt.Errorf("failed to lock event %s: %w", match.EventID, mapError(err))
	}

	var volunteerExists bool
	err = tx.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM volunteers WHERE id = $1)
	`, match.VolunteerID).Scan(&volunteerExists)
	if err != nil {
		return fmt.Errorf("failed to check volunteer %s: %w", match.VolunteerID, err)
	}
	if !volunteerExists {
		return fmt.Errorf("volunteer %s: %w", match.VolunteerID, model.ErrNotFound)
	}

	var alreadyMatched bool
	err = tx.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM matches WHERE volunteer_id = $1 AND event_id = $2)
	`, match.VolunteerID, match.EventID).Scan(&alreadyMatched)
	if err != nil {
		return fmt.Errorf("failed to check existing match: %w", err)
	}
	if alreadyMatched {
		return fmt.Errorf("volunteer %s already matched to event %s: %w",
			match.VolunteerID, match.EventID, model.ErrConflict)
	}

	var occupancy int
	err = tx.QueryRow(ctx, `
		SELECT COUNT(*) FROM matches
		WHERE event_id = $1 AND status IN ('pending', 'confirmed')
	`, match.EventID).Scan(&occupancy)
	if err != nil {
		return fmt.Errorf("failed to count matches for event %s: %w", match.EventID, err)
	}
	if occupancy >= maxVolunteers {
		return fmt.Errorf("event %s is at capacity (%d/%d): %w",
			match.EventID, occupancy, maxVolunteers, model.ErrCapacityExceeded)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO matches (id, volunteer_id, event_id, status, matched_at)
		VALUES ($1, $2, $3, $4, $5)
	`, match.ID, match.VolunteerID, match.EventID, string(match.Status), match.MatchedAt)
	if err != nil {
		return fmt.Errorf("failed to insert match: %w", mapError(err))
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetMatch retrieves one match with display names
func (d *DB) GetMatch(ctx context.Context, id string) (*model.Match, error) {
	row := d.pool.QueryRow(ctx, matchSelect+` WHERE m.id = $1`, id)

	var match model.Match
	if err := row.Scan(&match.ID, &match.VolunteerID, &match.VolunteerName,
		&match.EventID, &match.EventName, &match.Status, &match.MatchedAt); err != nil {
		return nil, fmt.Errorf("failed to scan match: %w", mapError(err))
	}
	return &match, nil
}

// ListMatches retrieves all matches
func (d *DB) ListMatches(ctx context.Context) ([]model.Match, error) {
	return d.queryMatches(ctx, matchSelect+` ORDER BY m.matched_at, m.id`)
}

// ListMatchesByVolunteer retrieves all matches for one volunteer
func (d *DB) ListMatchesByVolunteer(ctx context.Context, volunteerID string) ([]model.Match, error) {
	return d.queryMatches(ctx,
		matchSelect+` WHERE m.volunteer_id = $1 ORDER BY m.matched_at, m.id`, volunteerID)
}

// ListMatchesByEvent retrieves all matches for one event
func (d *DB) ListMatchesByEvent(ctx context.Context, eventID string) ([]model.Match, error) {
	return d.queryMatches(ctx,
		matchSelect+` WHERE m.event_id = $1 ORDER BY m.matched_at, m.id`, eventID)
}

func (d *DB) queryMatches(ctx context.Context, query string, args ...any) ([]model.Match, error) {
	rows, err := d.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	var matches []model.Match
	for rows.Next() {
		var match model.Match
		if err := rows.Scan(&match.ID, &match.VolunteerID, &match.VolunteerName,
			&match.EventID, &match.EventName, &match.Status, &match.MatchedAt); err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		matches = append(matches, match)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating matches: %w", err)
	}
	return matches, nil
}

// UpdateMatchStatus moves a match to a new status, holding the match row lock
// while checking transition legality against the current status
func (d *DB) UpdateMatchStatus(ctx context.Context, id string, status model.MatchStatus) (*model.Match, error) {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var current model.MatchStatus
	err = tx.QueryRow(ctx, `
		SELECT status FROM matches WHERE id = $1 FOR UPDATE
	`, id).Scan(&current)
	if err != nil {
		return nil, fmt.Errorf("failed to lock match %s: %w", id, mapError(err))
	}

	if !model.CanTransition(current, status) {
		return nil, fmt.Errorf("transition %s -> %s: %w", current, status, model.ErrInvalidArgument)
	}

	if _, err := tx.Exec(ctx, `
		UPDATE matches SET status = $2 WHERE id = $1
	`, id, string(status)); err != nil {
		return nil, fmt.Errorf("failed to update match status: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return d.GetMatch(ctx, id)
}

// DeleteMatch removes a match and returns the deleted record so callers can
// address the unregistration notification. The match row stays locked from
// read to delete so a concurrent deletion sees NotFound instead of a stale
// record.
func (d *DB) DeleteMatch(ctx context.Context, id string) (*model.Match, error) {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, matchSelect+` WHERE m.id = $1 FOR UPDATE OF m`, id)

	var match model.Match
	if err := row.Scan(&match.ID, &match.VolunteerID, &match.VolunteerName,
		&match.EventID, &match.EventName, &match.Status, &match.MatchedAt); err != nil {
		return nil, fmt.Errorf("failed to lock match %s: %w", id, mapError(err))
	}

	if _, err := tx.Exec(ctx, `DELETE FROM matches WHERE id = $1`, id); err != nil {
		return nil, fmt.Errorf("failed to delete match: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return &match, nil
}
