package notification

import (
	"time"
)

// CreateNotificationRequest is used by other services; users never create notifications directly.
type CreateNotificationRequest struct {
	UserID   string
	Title    string
	Message  string
	Type     Type
	Metadata map[string]interface{}
}

// NotificationResponse represents a notification in API responses
type NotificationResponse struct {
	ID        string                 `json:"id"`
	Title     string                 `json:"title"`
	Message   string                 `json:"message"`
	Type      Type                   `json:"type"`
	IsRead    bool                   `json:"isRead"`
	ReadAt    *time.Time             `json:"readAt,omitempty"`
	Metadata  map[string]interface{} `json:"metadata"`
	CreatedAt time.Time              `json:"createdAt"`
}

func ToResponse(n Notification) NotificationResponse {
	metadata := n.Metadata
	if metadata == nil {
		metadata = map[string]interface{}{}
	}
	return NotificationResponse{
		ID:        n.ID,
		Title:     n.Title,
		Message:   n.Message,
		Type:      n.Type,
		IsRead:    n.IsRead,
		ReadAt:    n.ReadAt,
		Metadata:  metadata,
		CreatedAt: n.CreatedAt,
	}
}

// UnreadCountResponse represents the unread count response
type UnreadCountResponse struct {
	Count int `json:"count"`
}

// ListFilter narrows GET /notifications
type ListFilter struct {
	UnreadOnly bool
	Limit      int
}

// SSEEvent represents an event sent via SSE
type SSEEvent struct {
	Event string               `json:"event"`
	Data  NotificationResponse `json:"data"`
}
