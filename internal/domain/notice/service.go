package notice

import "context"

type NoticeService interface {
	Create(ctx context.Context, posterID string, req CreateNoticeRequest) (NoticeResponse, error)
	List(ctx context.Context) ([]NoticeResponse, error)
	Update(ctx context.Context, id string, req UpdateNoticeRequest) (NoticeResponse, error)
	Delete(ctx context.Context, id string) error
}
