package memory

import (
	"context"
	"sort"
	"time"

	"github.com/leavehub/leave-backend-go/internal/domain/notification"
)

type notificationRepository struct {
	s *Store
}

func (s *Store) Notifications() notification.NotificationRepository {
	return &notificationRepository{s: s}
}

func (r *notificationRepository) Create(ctx context.Context, n notification.Notification) (notification.Notification, error) {
	created, err := r.CreateBatch(ctx, []notification.Notification{n})
	if err != nil {
		return notification.Notification{}, err
	}
	return created[0], nil
}

func (r *notificationRepository) CreateBatch(ctx context.Context, notifications []notification.Notification) ([]notification.Notification, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]notification.Notification, 0, len(notifications))
	for _, n := range notifications {
		n.ID = newID()
		n.IsRead = false
		n.ReadAt = nil
		n.CreatedAt = r.s.now()
		if n.Metadata == nil {
			n.Metadata = map[string]interface{}{}
		}
		r.s.data.notifications[n.ID] = n
		out = append(out, n)
	}
	return out, nil
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID string, filter notification.ListFilter) ([]notification.Notification, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]notification.Notification, 0)
	for _, n := range r.s.data.notifications {
		if n.UserID != userID || (filter.UnreadOnly && n.IsRead) {
			continue
		}
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *notificationRepository) CountUnread(ctx context.Context, userID string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	count := 0
	for _, n := range r.s.data.notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, id string, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	n, ok := r.s.data.notifications[id]
	if !ok || n.UserID != userID {
		return notification.ErrNotificationNotFound
	}
	if !n.IsRead {
		now := r.s.now()
		n.IsRead, n.ReadAt = true, &now
		r.s.data.notifications[id] = n
	}
	return nil
}

func (r *notificationRepository) MarkAllAsRead(ctx context.Context, userID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var updated int64
	now := r.s.now()
	for id, n := range r.s.data.notifications {
		if n.UserID == userID && !n.IsRead {
			n.IsRead, n.ReadAt = true, &now
			r.s.data.notifications[id] = n
			updated++
		}
	}
	return updated, nil
}

func (r *notificationRepository) DeleteReadBefore(ctx context.Context, before time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var deleted int64
	for id, n := range r.s.data.notifications {
		if n.IsRead && n.CreatedAt.Before(before) {
			delete(r.s.data.notifications, id)
			deleted++
		}
	}
	return deleted, nil
}
