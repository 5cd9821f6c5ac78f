package notification

import (
	"context"
	"time"
)

type NotificationRepository interface {
	Create(ctx context.Context, n Notification) (Notification, error)
	// CreateBatch inserts all notifications in one statement.
	CreateBatch(ctx context.Context, notifications []Notification) ([]Notification, error)
	ListByUser(ctx context.Context, userID string, filter ListFilter) ([]Notification, error)
	CountUnread(ctx context.Context, userID string) (int, error)
	// MarkAsRead returns ErrNotificationNotFound when id does not belong to userID.
	MarkAsRead(ctx context.Context, id string, userID string) error
	MarkAllAsRead(ctx context.Context, userID string) (int64, error)
	DeleteReadBefore(ctx context.Context, before time.Time) (int64, error)
}
