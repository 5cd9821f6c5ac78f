package wellness

import "context"

type ArticleService interface {
	List(ctx context.Context, filter ArticleFilter) (ArticleListResponse, error)
	Get(ctx context.Context, id string) (ArticleResponse, error)
	Create(ctx context.Context, authorID string, req CreateArticleRequest) (ArticleResponse, error)
	Update(ctx context.Context, id string, req UpdateArticleRequest) (ArticleResponse, error)
	Delete(ctx context.Context, id string) error
}

type EventService interface {
	List(ctx context.Context, filter EventFilter) (EventListResponse, error)
	Get(ctx context.Context, id string) (EventResponse, error)
	Create(ctx context.Context, organizerID string, req CreateEventRequest) (EventResponse, error)
	Update(ctx context.Context, id string, req UpdateEventRequest) (EventResponse, error)
	Delete(ctx context.Context, id string) error
	Register(ctx context.Context, userID string, eventID string) (EventResponse, error)
	Unregister(ctx context.Context, userID string, eventID string) (EventResponse, error)
	ListMine(ctx context.Context, userID string) ([]EventResponse, error)
}
