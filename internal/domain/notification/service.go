package notification

import (
	"context"
	"time"
)

type NotificationService interface {
	Notify(ctx context.Context, req CreateNotificationRequest) (NotificationResponse, error)
	NotifyMany(ctx context.Context, userIDs []string, req CreateNotificationRequest) error
	List(ctx context.Context, userID string, filter ListFilter) ([]NotificationResponse, error)
	UnreadCount(ctx context.Context, userID string) (int, error)
	MarkAsRead(ctx context.Context, userID string, id string) error
	MarkAllAsRead(ctx context.Context, userID string) error
	Subscribe(ctx context.Context, userID string) (<-chan SSEEvent, func())
	CleanupRead(ctx context.Context, olderThan time.Duration) (int64, error)
}
