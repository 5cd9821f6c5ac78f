package wellness

import "context"

type ArticleRepository interface {
	Create(ctx context.Context, a Article) (Article, error)
	GetByID(ctx context.Context, id string) (Article, error)
	// List returns published articles matching filter, newest first, and the total match count.
	List(ctx context.Context, filter ArticleFilter) ([]Article, int64, error)
	Update(ctx context.Context, a Article) (Article, error)
	Delete(ctx context.Context, id string) error
	// IncrementViews bumps the counter of a published article and returns it.
	IncrementViews(ctx context.Context, id string) (Article, error)
}

type EventRepository interface {
	Create(ctx context.Context, e Event) (Event, error)
	// GetByID loads the event with its registrations.
	GetByID(ctx context.Context, id string) (Event, error)
	// GetByIDForUpdate is GetByID holding a row lock until the surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, id string) (Event, error)
	// List returns active events matching filter ordered by date, and the total match count.
	List(ctx context.Context, filter EventFilter) ([]Event, int64, error)
	// ListByParticipant returns active events where userID is Registered, ordered by date.
	ListByParticipant(ctx context.Context, userID string) ([]Event, error)
	Update(ctx context.Context, e Event) (Event, error)
	Delete(ctx context.Context, id string) error
	// SaveRegistration inserts or replaces the (event, user) registration.
	SaveRegistration(ctx context.Context, r Registration) (Registration, error)
}
