package balance

import (
	"context"

	"github.com/leavehub/leave-backend-go/internal/domain/leave"
)

type BalanceRepository interface {
	// InitializeDefaults inserts the default allowance for every leave type
	// the employee does not hold yet. Existing rows are left untouched.
	InitializeDefaults(ctx context.Context, employeeID string) error
	GetByEmployee(ctx context.Context, employeeID string) ([]Balance, error)
	GetByEmployees(ctx context.Context, employeeIDs []string) (map[string][]Balance, error)
	Get(ctx context.Context, employeeID string, leaveType leave.Type) (Balance, error)
	// Set overwrites (or creates) a balance with an absolute value.
	Set(ctx context.Context, employeeID string, leaveType leave.Type, value int) (Balance, error)
	// Credit adds amount to a balance, creating the row if absent.
	Credit(ctx context.Context, employeeID string, leaveType leave.Type, amount int) (Balance, error)
	// Deduct subtracts days only if enough remain. It returns
	// ErrInsufficientBalance (or ErrBalanceNotFound) without modifying anything otherwise.
	Deduct(ctx context.Context, employeeID string, leaveType leave.Type, days int) (Balance, error)
}

type RequestRepository interface {
	Create(ctx context.Context, req Request) (Request, error)
	GetByID(ctx context.Context, id string) (Request, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]Request, error)
	// ListAll returns every request, newest first, with employee name and email joined.
	ListAll(ctx context.Context) ([]Request, error)
	// Decide moves a Pending request to its final status. It returns
	// ErrBalanceRequestAlreadyProcessed if the row is no longer Pending.
	Decide(ctx context.Context, req Request) (Request, error)
}
