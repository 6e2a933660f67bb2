package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/communityserve/volunteerhub/pkg/core/model"
)

const volunteerColumns = `
	v.id, v.user_id, u.name, v.availability,
	COALESCE(array_agg(s.name ORDER BY s.name) FILTER (WHERE s.name IS NOT NULL), '{}')
`

// CreateVolunteer inserts a volunteer along with their user record and skill
// links. Skill names are interned into the shared skills table.
func (d *DB) CreateVolunteer(ctx context.Context, volunteer *model.Volunteer) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO users (id, name, role)
		VALUES ($1, $2, 'volunteer')
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name
	`, volunteer.UserID, volunteer.Name)
	if err != nil {
		return fmt.Errorf("failed to upsert user: %w", mapError(err))
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO volunteers (id, user_id, availability)
		VALUES ($1, $2, $3)
	`, volunteer.ID, volunteer.UserID, volunteer.Availability)
	if err != nil {
		return fmt.Errorf("failed to insert volunteer: %w", mapError(err))
	}

	if err := linkSkills(ctx, tx, "volunteer_skills", "volunteer_id", volunteer.ID, volunteer.Skills); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetVolunteer retrieves one volunteer with their aggregated skill names
func (d *DB) GetVolunteer(ctx context.Context, id string) (*model.Volunteer, error) {
	row := d.pool.QueryRow(ctx, `
		SELECT `+volunteerColumns+`
		FROM volunteers v
		JOIN users u ON u.id = v.user_id
		LEFT JOIN volunteer_skills vs ON vs.volunteer_id = v.id
		LEFT JOIN skills s ON s.id = vs.skill_id
		WHERE v.id = $1
		GROUP BY v.id, v.user_id, u.name, v.availability
	`, id)

	var volunteer model.Volunteer
	if err := row.Scan(&volunteer.ID, &volunteer.UserID, &volunteer.Name,
		&volunteer.Availability, &volunteer.Skills); err != nil {
		return nil, fmt.Errorf("failed to scan volunteer: %w", mapError(err))
	}
	return &volunteer, nil
}

// ListVolunteers retrieves all volunteers ordered by id
func (d *DB) ListVolunteers(ctx context.Context) ([]model.Volunteer, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT `+volunteerColumns+`
		FROM volunteers v
		JOIN users u ON u.id = v.user_id
		LEFT JOIN volunteer_skills vs ON vs.volunteer_id = v.id
		LEFT JOIN skills s ON s.id = vs.skill_id
		GROUP BY v.id, v.user_id, u.name, v.availability
		ORDER BY v.id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query volunteers: %w", err)
	}
	defer rows.Close()

	var volunteers []model.Volunteer
	for rows.Next() {
		var volunteer model.Volunteer
		if err := rows.Scan(&volunteer.ID, &volunteer.UserID, &volunteer.Name,
			&volunteer.Availability, &volunteer.Skills); err != nil {
			return nil, fmt.Errorf("failed to scan volunteer: %w", err)
		}
		volunteers = append(volunteers, volunteer)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating volunteers: %w", err)
	}
	return volunteers, nil
}

// UpdateVolunteer replaces a volunteer's availability and skill links
func (d *DB) UpdateVolunteer(ctx context.Context, volunteer *model.Volunteer) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		UPDATE volunteers SET availability = $2 WHERE id = $1
	`, volunteer.ID, volunteer.Availability)
	if err != nil {
		return fmt.Errorf("failed to update volunteer: %w", mapError(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("volunteer %s: %w", volunteer.ID, model.ErrNotFound)
	}

	if _, err := tx.Exec(ctx, `
		DELETE FROM volunteer_skills WHERE volunteer_id = $1
	`, volunteer.ID); err != nil {
		return fmt.Errorf("failed to clear volunteer skills: %w", err)
	}

	if err := linkSkills(ctx, tx, "volunteer_skills", "volunteer_id", volunteer.ID, volunteer.Skills); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DeleteVolunteer removes a volunteer. Matches cascade away via foreign keys
// and task claims revert to unassigned.
func (d *DB) DeleteVolunteer(ctx context.Context, id string) error {
	tag, err := d.pool.Exec(ctx, `DELETE FROM volunteers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete volunteer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("volunteer %s: %w", id, model.ErrNotFound)
	}
	return nil
}

// linkSkills interns skill names and links them to a volunteer or event row
func linkSkills(ctx context.Context, tx pgx.Tx, table, column, ownerID string, names []string) error {
	for _, name := range names {
		var skillID string
		err := tx.QueryRow(ctx, `
			INSERT INTO skills (id, name)
			VALUES ($1, $2)
			ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
			RETURNING id
		`, uuid.New().String(), name).Scan(&skillID)
		if err != nil {
			return fmt.Errorf("failed to intern skill %q: %w", name, err)
		}

		_, err = tx.Exec(ctx, fmt.Sprintf(`
			INSERT INTO %s (%s, skill_id)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, table, column), ownerID, skillID)
		if err != nil {
			return fmt.Errorf("failed to link skill %q: %w", name, err)
		}
	}
	return nil
}
