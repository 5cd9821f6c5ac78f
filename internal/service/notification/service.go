package notification

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/leavehub/leave-backend-go/internal/domain/notification"
	"github.com/leavehub/leave-backend-go/internal/pkg/metrics"
	"github.com/leavehub/leave-backend-go/internal/pkg/sse"
)

const (
	defaultListLimit = 50
	eventName        = "notification"
)

type service struct {
	repo notification.NotificationRepository
	hub  *sse.Hub
	now  func() time.Time
}

func NewNotificationService(repo notification.NotificationRepository, hub *sse.Hub) notification.NotificationService {
	return &service{
		repo: repo,
		hub:  hub,
		now:  time.Now,
	}
}

func (s *service) build(userID string, req notification.CreateNotificationRequest) (notification.Notification, error) {
	notifType := req.Type
	if notifType == "" {
		notifType = notification.TypeInfo
	}
	if !notifType.IsValid() {
		return notification.Notification{}, notification.ErrInvalidNotificationType
	}
	return notification.Notification{
		UserID:   userID,
		Title:    req.Title,
		Message:  req.Message,
		Type:     notifType,
		Metadata: req.Metadata,
	}, nil
}

func (s *service) publish(created []notification.Notification) {
	for _, n := range created {
		metrics.NotificationsCreatedTotal.WithLabelValues(string(n.Type)).Inc()
		s.hub.Publish(n.UserID, sse.Event{
			UserID: n.UserID,
			Event:  eventName,
			Data:   notification.ToResponse(n),
		})
	}
}

// Notify stores a notification and pushes it to the user's open streams
func (s *service) Notify(ctx context.Context, req notification.CreateNotificationRequest) (notification.NotificationResponse, error) {
	n, err := s.build(req.UserID, req)
	if err != nil {
		return notification.NotificationResponse{}, err
	}

	created, err := s.repo.Create(ctx, n)
	if err != nil {
		return notification.NotificationResponse{}, fmt.Errorf("failed to create notification: %w", err)
	}

	s.publish([]notification.Notification{created})
	return notification.ToResponse(created), nil
}

// NotifyMany sends the same notification to every user in one insert
func (s *service) NotifyMany(ctx context.Context, userIDs []string, req notification.CreateNotificationRequest) error {
	if len(userIDs) == 0 {
		return nil
	}

	batch := make([]notification.Notification, 0, len(userIDs))
	for _, id := range userIDs {
		n, err := s.build(id, req)
		if err != nil {
			return err
		}
		batch = append(batch, n)
	}

	created, err := s.repo.CreateBatch(ctx, batch)
	if err != nil {
		return fmt.Errorf("failed to create notifications: %w", err)
	}

	s.publish(created)
	return nil
}

func (s *service) List(ctx context.Context, userID string, filter notification.ListFilter) ([]notification.NotificationResponse, error) {
	if filter.Limit <= 0 || filter.Limit > defaultListLimit {
		filter.Limit = defaultListLimit
	}

	notifications, err := s.repo.ListByUser(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	result := make([]notification.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		result = append(result, notification.ToResponse(n))
	}
	return result, nil
}

func (s *service) UnreadCount(ctx context.Context, userID string) (int, error) {
	count, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

func (s *service) MarkAsRead(ctx context.Context, userID string, id string) error {
	return s.repo.MarkAsRead(ctx, id, userID)
}

func (s *service) MarkAllAsRead(ctx context.Context, userID string) error {
	if _, err := s.repo.MarkAllAsRead(ctx, userID); err != nil {
		return err
	}
	return nil
}

// Subscribe creates an SSE subscription for a user
func (s *service) Subscribe(ctx context.Context, userID string) (<-chan notification.SSEEvent, func()) {
	src, unsubscribe := s.hub.Subscribe(userID)
	metrics.SSESubscribers.Inc()

	out := make(chan notification.SSEEvent, 10)
	go func() {
		defer close(out)
		for ev := range src {
			data, ok := ev.Data.(notification.NotificationResponse)
			if !ok {
				continue
			}
			select {
			case out <- notification.SSEEvent{Event: ev.Event, Data: data}:
			case <-ctx.Done():
			}
		}
	}()

	var once sync.Once
	cleanup := func() {
		once.Do(func() {
			unsubscribe()
			metrics.SSESubscribers.Dec()
		})
	}
	return out, cleanup
}

// CleanupRead deletes read notifications created before now minus olderThan
func (s *service) CleanupRead(ctx context.Context, olderThan time.Duration) (int64, error) {
	deleted, err := s.repo.DeleteReadBefore(ctx, s.now().Add(-olderThan))
	if err != nil {
		return 0, fmt.Errorf("failed to cleanup notifications: %w", err)
	}
	return deleted, nil
}
