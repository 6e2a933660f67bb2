package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/communityserve/volunteerhub/pkg/core/model"
	"github.com/communityserve/volunteerhub/pkg/db"
)

// Notification type tags emitted by the services
const (
	NotificationMatchCreated   = "match_created"
	NotificationMatchCancelled = "match_cancelled"
	NotificationTaskClaimed    = "task_claimed"
)

// notify delivers a notification best-effort. Delivery problems are logged
// and swallowed so the primary operation never fails on the sink.
func notify(ctx context.Context, sink db.NotificationSink, logger *zap.Logger, notification model.Notification) {
	if sink == nil {
		return
	}
	if err := sink.Send(ctx, notification); err != nil {
		logger.Warn("Failed to deliver notification",
			zap.String("type", notification.Type),
			zap.String("recipient", notification.RecipientUserID),
			zap.Error(err))
	}
}
