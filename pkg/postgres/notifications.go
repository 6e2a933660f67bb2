package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/communityserve/volunteerhub/pkg/core/model"
)

// NotificationSink writes notifications to the notifications table. Delivery
// happens outside the transaction that triggered it; callers treat failures
// as best-effort.
type NotificationSink struct {
	db *DB
}

// NewNotificationSink creates a sink backed by the given database
func NewNotificationSink(db *DB) *NotificationSink {
	return &NotificationSink{db: db}
}

// Send records a notification for its recipient
func (s *NotificationSink) Send(ctx context.Context, notification model.Notification) error {
	_, err := s.db.pool.Exec(ctx, `
		INSERT INTO notifications (id, user_id, type, message)
		VALUES ($1, $2, $3, $4)
	`, uuid.New().String(), notification.RecipientUserID, notification.Type, notification.Message)
	if err != nil {
		return fmt.Errorf("failed to insert notification: %w", err)
	}
	return nil
}
