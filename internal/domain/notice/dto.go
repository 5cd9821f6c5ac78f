package notice

import (
	"time"

	"github.com/leavehub/leave-backend-go/internal/pkg/validator"
)

type CreateNoticeRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (r *CreateNoticeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Title) {
		errs.Add("title", "title is required")
	} else if validator.ExceedsLength(r.Title, 200) {
		errs.Add("title", "title must not exceed 200 characters")
	}
	if validator.IsEmpty(r.Content) {
		errs.Add("content", "content is required")
	}

	return errs.Err()
}

type UpdateNoticeRequest struct {
	Title    *string `json:"title,omitempty"`
	Content  *string `json:"content,omitempty"`
	IsActive *bool   `json:"isActive,omitempty"`
}

func (r *UpdateNoticeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Title != nil && validator.ExceedsLength(*r.Title, 200) {
		errs.Add("title", "title must not exceed 200 characters")
	}

	return errs.Err()
}

type NoticeResponse struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	PostedBy   string    `json:"postedBy"`
	PosterName *string   `json:"posterName,omitempty"`
	PostedDate time.Time `json:"postedDate"`
	IsActive   bool      `json:"isActive"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func ToResponse(n Notice) NoticeResponse {
	return NoticeResponse{
		ID:         n.ID,
		Title:      n.Title,
		Content:    n.Content,
		PostedBy:   n.PostedBy,
		PosterName: n.PosterName,
		PostedDate: n.PostedDate,
		IsActive:   n.IsActive,
		CreatedAt:  n.CreatedAt,
		UpdatedAt:  n.UpdatedAt,
	}
}
