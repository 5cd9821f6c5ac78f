package notification

import (
	"time"
)

// Type is the severity shown by clients.
type Type string

const (
	TypeInfo    Type = "info"
	TypeSuccess Type = "success"
	TypeWarning Type = "warning"
	TypeError   Type = "error"
)

func (t Type) IsValid() bool {
	switch t {
	case TypeInfo, TypeSuccess, TypeWarning, TypeError:
		return true
	}
	return false
}

// Notification represents an in-app message for a single user
type Notification struct {
	ID        string
	UserID    string
	Title     string
	Message   string
	Type      Type
	IsRead    bool
	ReadAt    *time.Time
	Metadata  map[string]interface{}
	CreatedAt time.Time
}
