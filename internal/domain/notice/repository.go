package notice

import "context"

type NoticeRepository interface {
	Create(ctx context.Context, n Notice) (Notice, error)
	GetByID(ctx context.Context, id string) (Notice, error)
	// ListActive returns active notices, newest first, with the poster's name.
	ListActive(ctx context.Context) ([]Notice, error)
	Update(ctx context.Context, n Notice) (Notice, error)
	Deactivate(ctx context.Context, id string) error
}
