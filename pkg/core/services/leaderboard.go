package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/communityserve/volunteerhub/pkg/core/model"
)

// LeaderboardStore defines the aggregation query backing the leaderboard
type LeaderboardStore interface {
	TopVolunteers(ctx context.Context, limit int) ([]model.LeaderboardEntry, error)
}

// Leaderboard returns up to limit volunteers ranked by total earned points,
// highest first. Volunteers with no completed tasks rank with 0 points.
// Equal totals order by volunteer id ascending so results are stable.
func Leaderboard(
	ctx context.Context,
	store LeaderboardStore,
	logger *zap.Logger,
	limit int,
) ([]model.LeaderboardEntry, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive, got %d: %w", limit, model.ErrInvalidArgument)
	}

	entries, err := store.TopVolunteers(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch leaderboard: %w", err)
	}

	logger.Debug("Leaderboard computed",
		zap.Int("limit", limit),
		zap.Int("entry_count", len(entries)))

	return entries, nil
}
