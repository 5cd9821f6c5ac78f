package notice

import "time"

// Notice is an admin announcement. Deleting one only clears IsActive.
type Notice struct {
	ID         string
	Title      string
	Content    string
	PostedBy   string
	PostedDate time.Time
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Join
	PosterName *string
}
