package wellness

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/leavehub/leave-backend-go/internal/domain/notification"
	"github.com/leavehub/leave-backend-go/internal/domain/user"
	"github.com/leavehub/leave-backend-go/internal/domain/wellness"
	"github.com/leavehub/leave-backend-go/internal/pkg/email/emailtest"
	"github.com/leavehub/leave-backend-go/internal/pkg/sse"
	"github.com/leavehub/leave-backend-go/internal/pkg/validator"
	"github.com/leavehub/leave-backend-go/internal/repository/memory"
	notificationsvc "github.com/leavehub/leave-backend-go/internal/service/notification"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

func intPtr(v int) *int { return &v }

func seedUser(t *testing.T, store *memory.Store, name string, role user.Role) user.User {
	t.Helper()
	u, err := store.Users().Create(context.Background(), user.User{Name: name, Email: name + "@example.com", Role: role})
	require.NoError(t, err)
	return u
}

func TestArticles(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := NewArticleService(store.Articles())
	author := seedUser(t, store, "writer", user.RoleAdmin)

	create := func(title, category string, tags ...string) wellness.ArticleResponse {
		t.Helper()
		a, err := svc.Create(ctx, author.ID, wellness.CreateArticleRequest{
			Title:    title,
			Content:  "Body of " + title,
			Excerpt:  "Short",
			Category: category,
			Tags:     wellness.Tags(tags),
		})
		require.NoError(t, err)
		return a
	}

	sleep := create("Sleep better", "Mental Health", "rest", "Night")
	create("Desk stretches", "Physical Fitness", "office")
	create("Meal prep", "Nutrition")

	assert.Equal(t, 5, sleep.ReadTime)
	assert.True(t, sleep.IsPublished)

	t.Run("all category means no filter", func(t *testing.T) {
		list, err := svc.List(ctx, wellness.ArticleFilter{Category: "all"})
		require.NoError(t, err)
		assert.Equal(t, int64(3), list.Total)
		assert.Equal(t, 1, list.CurrentPage)
		assert.Equal(t, 1, list.TotalPages)
		assert.Equal(t, "Meal prep", list.Articles[0].Title)
		require.NotNil(t, list.Articles[0].AuthorName)
		assert.Equal(t, "writer", *list.Articles[0].AuthorName)
	})

	t.Run("search matches tags case-insensitively", func(t *testing.T) {
		list, err := svc.List(ctx, wellness.ArticleFilter{Search: "night"})
		require.NoError(t, err)
		require.Len(t, list.Articles, 1)
		assert.Equal(t, sleep.ID, list.Articles[0].ID)
	})

	t.Run("pagination", func(t *testing.T) {
		list, err := svc.List(ctx, wellness.ArticleFilter{Pagination: wellness.Pagination{Page: 2, Limit: 2}})
		require.NoError(t, err)
		assert.Len(t, list.Articles, 1)
		assert.Equal(t, 2, list.TotalPages)
		assert.Equal(t, 2, list.CurrentPage)
	})

	t.Run("get counts views", func(t *testing.T) {
		_, err := svc.Get(ctx, sleep.ID)
		require.NoError(t, err)
		got, err := svc.Get(ctx, sleep.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, got.Views)
	})

	t.Run("unpublished article is hidden", func(t *testing.T) {
		published := false
		_, err := svc.Update(ctx, sleep.ID, wellness.UpdateArticleRequest{IsPublished: &published})
		require.NoError(t, err)

		_, err = svc.Get(ctx, sleep.ID)
		assert.ErrorIs(t, err, wellness.ErrArticleNotFound)

		list, err := svc.List(ctx, wellness.ArticleFilter{})
		require.NoError(t, err)
		assert.Equal(t, int64(2), list.Total)
	})

	t.Run("validation and delete", func(t *testing.T) {
		_, err := svc.Create(ctx, author.ID, wellness.CreateArticleRequest{Title: "x", Content: "y", Excerpt: "z", Category: "Gardening"})
		var verrs validator.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Contains(t, verrs.ToMap(), "category")

		require.NoError(t, svc.Delete(ctx, sleep.ID))
		assert.ErrorIs(t, svc.Delete(ctx, sleep.ID), wellness.ErrArticleNotFound)
	})
}

type eventFixture struct {
	svc       *EventServiceImpl
	store     *memory.Store
	notifier  notification.NotificationService
	mailer    *emailtest.Recorder
	organizer user.User
}

func newEventFixture(t *testing.T) *eventFixture {
	t.Helper()
	store := memory.NewStore()
	store.Now = func() time.Time { return fixedNow }
	notifier := notificationsvc.NewNotificationService(store.Notifications(), sse.NewHub())
	mailer := &emailtest.Recorder{}

	svc := NewEventService(store.Transactor(), store.Events(), store.Users(), notifier, mailer).(*EventServiceImpl)
	svc.now = func() time.Time { return fixedNow }

	return &eventFixture{
		svc:       svc,
		store:     store,
		notifier:  notifier,
		mailer:    mailer,
		organizer: seedUser(t, store, "organizer", user.RoleAdmin),
	}
}

func (f *eventFixture) createEvent(t *testing.T, date string, max *int) wellness.EventResponse {
	t.Helper()
	e, err := f.svc.Create(context.Background(), f.organizer.ID, wellness.CreateEventRequest{
		Title:           "Morning Yoga",
		Description:     "Stretch and breathe",
		Category:        "Fitness",
		Date:            date,
		StartTime:       "08:00",
		EndTime:         "09:00",
		Location:        "Rooftop",
		MaxParticipants: max,
	})
	require.NoError(t, err)
	return e
}

func TestEventRegistration(t *testing.T) {
	ctx := context.Background()

	t.Run("register, unregister and re-register", func(t *testing.T) {
		f := newEventFixture(t)
		jane := seedUser(t, f.store, "jane", user.RoleEmployee)
		event := f.createEvent(t, "2026-05-20", intPtr(10))

		registered, err := f.svc.Register(ctx, jane.ID, event.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, registered.CurrentParticipants)

		sent := f.mailer.Sent()
		require.Len(t, sent, 1)
		assert.Equal(t, "jane@example.com", sent[0].To)

		notes, err := f.notifier.List(ctx, jane.ID, notification.ListFilter{})
		require.NoError(t, err)
		require.Len(t, notes, 1)
		assert.Equal(t, event.ID, notes[0].Metadata["eventId"])

		_, err = f.svc.Register(ctx, jane.ID, event.ID)
		assert.ErrorIs(t, err, wellness.ErrAlreadyRegistered)

		mine, err := f.svc.ListMine(ctx, jane.ID)
		require.NoError(t, err)
		assert.Len(t, mine, 1)

		cancelled, err := f.svc.Unregister(ctx, jane.ID, event.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, cancelled.CurrentParticipants)
		require.Len(t, cancelled.Registrations, 1)
		assert.Equal(t, wellness.RegistrationCancelled, cancelled.Registrations[0].Status)

		_, err = f.svc.Unregister(ctx, jane.ID, event.ID)
		assert.ErrorIs(t, err, wellness.ErrNotRegistered)

		mine, err = f.svc.ListMine(ctx, jane.ID)
		require.NoError(t, err)
		assert.Empty(t, mine)

		again, err := f.svc.Register(ctx, jane.ID, event.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, again.CurrentParticipants)
		require.Len(t, again.Registrations, 1)
		assert.Equal(t, wellness.RegistrationRegistered, again.Registrations[0].Status)
	})

	t.Run("attended registration is kept", func(t *testing.T) {
		f := newEventFixture(t)
		jane := seedUser(t, f.store, "jane", user.RoleEmployee)
		event := f.createEvent(t, "2026-05-20", nil)

		_, err := f.store.Events().SaveRegistration(ctx, wellness.Registration{
			EventID:      event.ID,
			UserID:       jane.ID,
			Status:       wellness.RegistrationAttended,
			RegisteredAt: fixedNow,
		})
		require.NoError(t, err)

		_, err = f.svc.Register(ctx, jane.ID, event.ID)
		assert.ErrorIs(t, err, wellness.ErrAlreadyAttended)

		got, err := f.svc.Get(ctx, event.ID)
		require.NoError(t, err)
		require.Len(t, got.Registrations, 1)
		assert.Equal(t, wellness.RegistrationAttended, got.Registrations[0].Status)
	})

	t.Run("event happening today is still open", func(t *testing.T) {
		f := newEventFixture(t)
		jane := seedUser(t, f.store, "jane", user.RoleEmployee)
		event := f.createEvent(t, fixedNow.Format("2006-01-02"), nil)

		_, err := f.svc.Register(ctx, jane.ID, event.ID)
		assert.NoError(t, err)
	})

	t.Run("past event", func(t *testing.T) {
		f := newEventFixture(t)
		jane := seedUser(t, f.store, "jane", user.RoleEmployee)
		event := f.createEvent(t, "2026-05-03", nil)

		_, err := f.svc.Register(ctx, jane.ID, event.ID)
		assert.ErrorIs(t, err, wellness.ErrEventInPast)
	})

	t.Run("full event", func(t *testing.T) {
		f := newEventFixture(t)
		jane := seedUser(t, f.store, "jane", user.RoleEmployee)
		sam := seedUser(t, f.store, "sam", user.RoleEmployee)
		event := f.createEvent(t, "2026-06-01", intPtr(1))

		_, err := f.svc.Register(ctx, jane.ID, event.ID)
		require.NoError(t, err)
		_, err = f.svc.Register(ctx, sam.ID, event.ID)
		assert.ErrorIs(t, err, wellness.ErrEventFull)
	})

	t.Run("inactive or missing event is not found", func(t *testing.T) {
		f := newEventFixture(t)
		jane := seedUser(t, f.store, "jane", user.RoleEmployee)
		event := f.createEvent(t, "2026-06-01", nil)

		inactive := false
		_, err := f.svc.Update(ctx, event.ID, wellness.UpdateEventRequest{IsActive: &inactive})
		require.NoError(t, err)

		_, err = f.svc.Register(ctx, jane.ID, event.ID)
		assert.ErrorIs(t, err, wellness.ErrEventNotFound)
		_, err = f.svc.Get(ctx, event.ID)
		assert.ErrorIs(t, err, wellness.ErrEventNotFound)
		_, err = f.svc.Register(ctx, jane.ID, "0190c0de-0000-7000-8000-000000000000")
		assert.ErrorIs(t, err, wellness.ErrEventNotFound)
	})

	t.Run("capacity holds under concurrent registration", func(t *testing.T) {
		f := newEventFixture(t)
		event := f.createEvent(t, "2026-06-01", intPtr(3))

		users := make([]user.User, 8)
		for i := range users {
			users[i] = seedUser(t, f.store, "user"+string(rune('a'+i)), user.RoleEmployee)
		}

		var wg sync.WaitGroup
		for _, u := range users {
			wg.Add(1)
			go func(id string) {
				defer wg.Done()
				_, _ = f.svc.Register(ctx, id, event.ID)
			}(u.ID)
		}
		wg.Wait()

		got, err := f.svc.Get(ctx, event.ID)
		require.NoError(t, err)
		assert.Equal(t, 3, got.CurrentParticipants)
	})
}

func TestEventListing(t *testing.T) {
	ctx := context.Background()
	f := newEventFixture(t)

	f.createEvent(t, "2026-07-01", nil)
	f.createEvent(t, "2026-04-01", nil)
	workshop, err := f.svc.Create(ctx, f.organizer.ID, wellness.CreateEventRequest{
		Title:       "Budgeting",
		Description: "Money basics",
		Category:    "Workshop",
		Date:        "2026-06-01T14:00:00Z",
		StartTime:   "14:00",
		EndTime:     "15:30",
		Location:    "Room 4",
	})
	require.NoError(t, err)

	all, err := f.svc.List(ctx, wellness.EventFilter{})
	require.NoError(t, err)
	require.Len(t, all.Events, 3)
	assert.True(t, all.Events[0].Date.Before(all.Events[1].Date))

	upcoming, err := f.svc.List(ctx, wellness.EventFilter{Upcoming: true})
	require.NoError(t, err)
	assert.Equal(t, int64(2), upcoming.Total)
	assert.Equal(t, workshop.ID, upcoming.Events[0].ID)

	workshops, err := f.svc.List(ctx, wellness.EventFilter{Category: "Workshop"})
	require.NoError(t, err)
	require.Len(t, workshops.Events, 1)

	newTitle := "Budgeting 101"
	updated, err := f.svc.Update(ctx, workshop.ID, wellness.UpdateEventRequest{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, "Budgeting 101", updated.Title)
	assert.Equal(t, "Room 4", updated.Location)

	require.NoError(t, f.svc.Delete(ctx, workshop.ID))
	assert.ErrorIs(t, f.svc.Delete(ctx, workshop.ID), wellness.ErrEventNotFound)

	_, err = f.svc.Create(ctx, f.organizer.ID, wellness.CreateEventRequest{Title: "x", Category: "Party", Date: "soon"})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "date")
}
