package postgres

import (
	"context"
	"fmt"

	"github.com/communityserve/volunteerhub/pkg/core/model"
)

const eventColumns = `
	e.id, e.owner_id, e.name, e.description, e.location, e.date, e.urgency,
	e.max_volunteers,
	COALESCE(array_agg(s.name ORDER BY s.name) FILTER (WHERE s.name IS NOT NULL), '{}'),
	(SELECT COUNT(*) FROM matches m
	 WHERE m.event_id = e.id AND m.status IN ('pending', 'confirmed'))
`

// CreateEvent inserts an event and its requirement links
func (d *DB) CreateEvent(ctx context.Context, event *model.Event) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO events (id, owner_id, name, description, location, date, urgency, max_volunteers)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, event.ID, event.OwnerID, event.Name, event.Description, event.Location,
		event.Date, string(event.Urgency), event.MaxVolunteers)
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", mapError(err))
	}

	if err := linkSkills(ctx, tx, "event_requirements", "event_id", event.ID, event.Requirements); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetEvent retrieves one event with requirements and current occupancy
func (d *DB) GetEvent(ctx context.Context, id string) (*model.Event, error) {
	row := d.pool.QueryRow(ctx, `
		SELECT `+eventColumns+`
		FROM events e
		LEFT JOIN event_requirements er ON er.event_id = e.id
		LEFT JOIN skills s ON s.id = er.skill_id
		WHERE e.id = $1
		GROUP BY e.id
	`, id)

	var event model.Event
	if err := row.Scan(&event.ID, &event.OwnerID, &event.Name, &event.Description,
		&event.Location, &event.Date, &event.Urgency, &event.MaxVolunteers,
		&event.Requirements, &event.CurrentVolunteers); err != nil {
		return nil, fmt.Errorf("failed to scan event: %w", mapError(err))
	}
	return &event, nil
}

// ListEvents retrieves all events with requirements and occupancy, ordered by
// id so best-match evaluation order is deterministic
func (d *DB) ListEvents(ctx context.Context) ([]model.Event, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT `+eventColumns+`
		FROM events e
		LEFT JOIN event_requirements er ON er.event_id = e.id
		LEFT JOIN skills s ON s.id = er.skill_id
		GROUP BY e.id
		ORDER BY e.id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		var event model.Event
		if err := rows.Scan(&event.ID, &event.OwnerID, &event.Name, &event.Description,
			&event.Location, &event.Date, &event.Urgency, &event.MaxVolunteers,
			&event.Requirements, &event.CurrentVolunteers); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating events: %w", err)
	}
	return events, nil
}

// UpdateEvent replaces an event's mutable fields and requirement links
func (d *DB) UpdateEvent(ctx context.Context, event *model.Event) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		UPDATE events
		SET name = $2, description = $3, location = $4, date = $5,
		    urgency = $6, max_volunteers = $7
		WHERE id = $1
	`, event.ID, event.Name, event.Description, event.Location, event.Date,
		string(event.Urgency), event.MaxVolunteers)
	if err != nil {
		return fmt.Errorf("failed to update event: %w", mapError(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("event %s: %w", event.ID, model.ErrNotFound)
	}

	if _, err := tx.Exec(ctx, `
		DELETE FROM event_requirements WHERE event_id = $1
	`, event.ID); err != nil {
		return fmt.Errorf("failed to clear event requirements: %w", err)
	}

	if err := linkSkills(ctx, tx, "event_requirements", "event_id", event.ID, event.Requirements); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DeleteEvent removes an event; matches and tasks cascade away
func (d *DB) DeleteEvent(ctx context.Context, id string) error {
	tag, err := d.pool.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("event %s: %w", id, model.ErrNotFound)
	}
	return nil
}
