package balance

import (
	"errors"
	"fmt"

	"github.com/leavehub/leave-backend-go/internal/domain/leave"
)

var (
	ErrBalanceNotFound                = errors.New("balance not found")
	ErrInvalidLeaveType               = errors.New("invalid leave type")
	ErrNegativeBalance                = errors.New("balance cannot be negative")
	ErrInvalidAmount                  = errors.New("requested amount must be greater than 0")
	ErrInsufficientBalance            = errors.New("insufficient leave balance")
	ErrBalanceRequestNotFound         = errors.New("balance request not found")
	ErrBalanceRequestAlreadyProcessed = errors.New("balance request has already been processed")
)

// InsufficientBalanceError reports how far short a balance is of a request.
type InsufficientBalanceError struct {
	LeaveType leave.Type
	Available int
	Requested int
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient %s balance: requested %d days but only %d days available",
		e.LeaveType, e.Requested, e.Available)
}

func (e *InsufficientBalanceError) Unwrap() error {
	return ErrInsufficientBalance
}

// Shortfall is the number of days missing.
func (e *InsufficientBalanceError) Shortfall() int {
	return e.Requested - e.Available
}
