package postgres

import (
	"context"
	"fmt"

	"github.com/communityserve/volunteerhub/pkg/core/model"
)

// TopVolunteers ranks volunteers by total earned points over their completed
// tasks, highest first. Every volunteer with a record appears, so newcomers
// show up with zero. Equal totals order by volunteer id for stable output.
func (d *DB) TopVolunteers(ctx context.Context, limit int) ([]model.LeaderboardEntry, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT v.id, u.name,
		       COALESCE(SUM(t.score) FILTER (WHERE t.completed), 0) AS total_points
		FROM volunteers v
		JOIN users u ON u.id = v.user_id
		LEFT JOIN history_tasks t ON t.volunteer_id = v.id
		GROUP BY v.id, u.name
		ORDER BY total_points DESC, v.id
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []model.LeaderboardEntry
	for rows.Next() {
		var entry model.LeaderboardEntry
		if err := rows.Scan(&entry.VolunteerID, &entry.VolunteerName, &entry.TotalPoints); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard entry: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating leaderboard: %w", err)
	}
	return entries, nil
}
