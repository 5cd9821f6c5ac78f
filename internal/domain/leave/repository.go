package leave

import (
	"context"
	"time"
)

type LeaveRepository interface {
	Create(ctx context.Context, l Leave) (Leave, error)
	GetByID(ctx context.Context, id string) (Leave, error)
	// ListByEmployee returns the employee's leaves, newest first.
	ListByEmployee(ctx context.Context, employeeID string) ([]Leave, error)
	// ListAll returns every leave, newest first, with employee name and email joined.
	ListAll(ctx context.Context) ([]Leave, error)
	ListRecent(ctx context.Context, limit int) ([]Leave, error)
	ListApprovedSince(ctx context.Context, employeeID string, since time.Time, limit int) ([]Leave, error)
	// Decide moves a Pending leave to its final status. It returns
	// ErrLeaveAlreadyProcessed if the row is no longer Pending.
	Decide(ctx context.Context, l Leave) (Leave, error)
	// BackfillRequestedDays fills requested_days on legacy rows and returns the number updated.
	BackfillRequestedDays(ctx context.Context) (int64, error)
}
