package notice

import (
	"context"
	"fmt"
	"strings"

	"github.com/leavehub/leave-backend-go/internal/domain/notice"
)

type NoticeServiceImpl struct {
	noticeRepo notice.NoticeRepository
}

func NewNoticeService(noticeRepo notice.NoticeRepository) notice.NoticeService {
	return &NoticeServiceImpl{noticeRepo: noticeRepo}
}

// Create implements notice.NoticeService.
func (s *NoticeServiceImpl) Create(ctx context.Context, posterID string, req notice.CreateNoticeRequest) (notice.NoticeResponse, error) {
	if err := req.Validate(); err != nil {
		return notice.NoticeResponse{}, err
	}

	created, err := s.noticeRepo.Create(ctx, notice.Notice{
		Title:    strings.TrimSpace(req.Title),
		Content:  req.Content,
		PostedBy: posterID,
		IsActive: true,
	})
	if err != nil {
		return notice.NoticeResponse{}, fmt.Errorf("failed to create notice: %w", err)
	}
	return notice.ToResponse(created), nil
}

// List implements notice.NoticeService.
func (s *NoticeServiceImpl) List(ctx context.Context) ([]notice.NoticeResponse, error) {
	notices, err := s.noticeRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list notices: %w", err)
	}

	result := make([]notice.NoticeResponse, 0, len(notices))
	for _, n := range notices {
		result = append(result, notice.ToResponse(n))
	}
	return result, nil
}

// Update implements notice.NoticeService.
func (s *NoticeServiceImpl) Update(ctx context.Context, id string, req notice.UpdateNoticeRequest) (notice.NoticeResponse, error) {
	if err := req.Validate(); err != nil {
		return notice.NoticeResponse{}, err
	}

	existing, err := s.noticeRepo.GetByID(ctx, id)
	if err != nil {
		return notice.NoticeResponse{}, err
	}

	if req.Title != nil && strings.TrimSpace(*req.Title) != "" {
		existing.Title = strings.TrimSpace(*req.Title)
	}
	if req.Content != nil && strings.TrimSpace(*req.Content) != "" {
		existing.Content = *req.Content
	}
	if req.IsActive != nil {
		existing.IsActive = *req.IsActive
	}

	updated, err := s.noticeRepo.Update(ctx, existing)
	if err != nil {
		return notice.NoticeResponse{}, err
	}
	return notice.ToResponse(updated), nil
}

// Delete implements notice.NoticeService.
func (s *NoticeServiceImpl) Delete(ctx context.Context, id string) error {
	return s.noticeRepo.Deactivate(ctx, id)
}
