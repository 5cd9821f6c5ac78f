package notice

import (
	"context"
	"testing"

	"github.com/leavehub/leave-backend-go/internal/domain/notice"
	"github.com/leavehub/leave-backend-go/internal/domain/user"
	"github.com/leavehub/leave-backend-go/internal/pkg/validator"
	"github.com/leavehub/leave-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoticeLifecycle(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := NewNoticeService(store.Notices())

	admin, err := store.Users().Create(ctx, user.User{Name: "Boss", Email: "boss@example.com", Role: user.RoleAdmin})
	require.NoError(t, err)

	first, err := svc.Create(ctx, admin.ID, notice.CreateNoticeRequest{Title: "Holiday", Content: "Office closed Friday"})
	require.NoError(t, err)
	assert.True(t, first.IsActive)

	second, err := svc.Create(ctx, admin.ID, notice.CreateNoticeRequest{Title: "Party", Content: "Friday 5pm"})
	require.NoError(t, err)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	require.NotNil(t, list[0].PosterName)
	assert.Equal(t, "Boss", *list[0].PosterName)

	newTitle := "Holiday update"
	updated, err := svc.Update(ctx, first.ID, notice.UpdateNoticeRequest{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, "Holiday update", updated.Title)
	assert.Equal(t, "Office closed Friday", updated.Content)

	require.NoError(t, svc.Delete(ctx, second.ID))

	list, err = svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, first.ID, list[0].ID)

	t.Run("soft deleted notice can be reactivated", func(t *testing.T) {
		active := true
		restored, err := svc.Update(ctx, second.ID, notice.UpdateNoticeRequest{IsActive: &active})
		require.NoError(t, err)
		assert.True(t, restored.IsActive)
	})

	t.Run("errors", func(t *testing.T) {
		_, err := svc.Create(ctx, admin.ID, notice.CreateNoticeRequest{Content: "no title"})
		var verrs validator.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Contains(t, verrs.ToMap(), "title")

		_, err = svc.Update(ctx, "0190c0de-0000-7000-8000-000000000000", notice.UpdateNoticeRequest{})
		assert.ErrorIs(t, err, notice.ErrNoticeNotFound)

		err = svc.Delete(ctx, "0190c0de-0000-7000-8000-000000000000")
		assert.ErrorIs(t, err, notice.ErrNoticeNotFound)
	})
}
