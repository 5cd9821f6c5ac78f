package notification

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/leavehub/leave-backend-go/internal/domain/notification"
	"github.com/leavehub/leave-backend-go/internal/pkg/sse"
	"github.com/leavehub/leave-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifyAndList(t *testing.T) {
	ctx := context.Background()
	svc := NewNotificationService(memory.NewStore().Notifications(), sse.NewHub())

	created, err := svc.Notify(ctx, notification.CreateNotificationRequest{
		UserID:  "user-1",
		Title:   "Hello",
		Message: "first",
	})
	require.NoError(t, err)
	assert.Equal(t, notification.TypeInfo, created.Type)
	assert.NotNil(t, created.Metadata)

	_, err = svc.Notify(ctx, notification.CreateNotificationRequest{UserID: "user-1", Title: "Bad", Type: "loud"})
	assert.ErrorIs(t, err, notification.ErrInvalidNotificationType)

	for i := 0; i < 55; i++ {
		_, err := svc.Notify(ctx, notification.CreateNotificationRequest{
			UserID:  "user-1",
			Title:   fmt.Sprintf("n%d", i),
			Message: "bulk",
			Type:    notification.TypeSuccess,
		})
		require.NoError(t, err)
	}

	list, err := svc.List(ctx, "user-1", notification.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, list, 50)
	assert.Equal(t, "n54", list[0].Title)

	count, err := svc.UnreadCount(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 56, count)
}

func TestMarkAsRead(t *testing.T) {
	ctx := context.Background()
	svc := NewNotificationService(memory.NewStore().Notifications(), sse.NewHub())

	mine, err := svc.Notify(ctx, notification.CreateNotificationRequest{UserID: "alice", Title: "a"})
	require.NoError(t, err)
	_, err = svc.Notify(ctx, notification.CreateNotificationRequest{UserID: "alice", Title: "b"})
	require.NoError(t, err)

	t.Run("someone else's notification is not found", func(t *testing.T) {
		err := svc.MarkAsRead(ctx, "bob", mine.ID)
		assert.ErrorIs(t, err, notification.ErrNotificationNotFound)
	})

	t.Run("own notification", func(t *testing.T) {
		require.NoError(t, svc.MarkAsRead(ctx, "alice", mine.ID))

		unread, err := svc.List(ctx, "alice", notification.ListFilter{UnreadOnly: true})
		require.NoError(t, err)
		require.Len(t, unread, 1)
		assert.Equal(t, "b", unread[0].Title)
	})

	t.Run("all", func(t *testing.T) {
		require.NoError(t, svc.MarkAllAsRead(ctx, "alice"))

		count, err := svc.UnreadCount(ctx, "alice")
		require.NoError(t, err)
		assert.Zero(t, count)
	})
}

func TestNotifyManyPublishesToSubscribers(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := sse.NewHub()
	svc := NewNotificationService(memory.NewStore().Notifications(), hub)

	events, cleanup := svc.Subscribe(ctx, "admin-1")
	defer cleanup()
	assert.Equal(t, 1, hub.SubscriberCount("admin-1"))

	err := svc.NotifyMany(ctx, []string{"admin-1", "admin-2"}, notification.CreateNotificationRequest{
		Title:    "New Leave Request",
		Message:  "Jane requested leave",
		Metadata: map[string]interface{}{"leaveId": "l-1"},
	})
	require.NoError(t, err)

	select {
	case ev := <-events:
		assert.Equal(t, "notification", ev.Event)
		assert.Equal(t, "New Leave Request", ev.Data.Title)
		assert.Equal(t, "l-1", ev.Data.Metadata["leaveId"])
	case <-time.After(time.Second):
		t.Fatal("expected a notification event")
	}

	other, err := svc.List(ctx, "admin-2", notification.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, other, 1)

	cleanup()
	assert.Equal(t, 0, hub.SubscriberCount("admin-1"))
	_, open := <-events
	assert.False(t, open)
}

func TestCleanupRead(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := NewNotificationService(store.Notifications(), sse.NewHub())

	old := time.Now().AddDate(0, 0, -60)
	store.Now = func() time.Time { return old }

	readOld, err := svc.Notify(ctx, notification.CreateNotificationRequest{UserID: "u", Title: "read old"})
	require.NoError(t, err)
	require.NoError(t, svc.MarkAsRead(ctx, "u", readOld.ID))
	_, err = svc.Notify(ctx, notification.CreateNotificationRequest{UserID: "u", Title: "unread old"})
	require.NoError(t, err)

	store.Now = time.Now
	recent, err := svc.Notify(ctx, notification.CreateNotificationRequest{UserID: "u", Title: "read recent"})
	require.NoError(t, err)
	require.NoError(t, svc.MarkAsRead(ctx, "u", recent.ID))

	deleted, err := svc.CleanupRead(ctx, 30*24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	remaining, err := svc.List(ctx, "u", notification.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, remaining, 2)
}
