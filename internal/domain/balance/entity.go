package balance

import (
	"time"

	"github.com/leavehub/leave-backend-go/internal/domain/leave"
)

type Balance struct {
	ID         string
	EmployeeID string
	LeaveType  leave.Type
	Balance    int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Summary is the fixed-shape view of an employee's three balances.
type Summary struct {
	Sick     int `json:"sick"`
	Vacation int `json:"vacation"`
	Personal int `json:"personal"`
}

// Summarize folds balance rows into a Summary; missing types read as zero.
func Summarize(balances []Balance) Summary {
	var s Summary
	for _, b := range balances {
		switch b.LeaveType {
		case leave.TypeSick:
			s.Sick = b.Balance
		case leave.TypeVacation:
			s.Vacation = b.Balance
		case leave.TypePersonal:
			s.Personal = b.Balance
		}
	}
	return s
}

// DefaultSummary is what a freshly initialised employee holds.
func DefaultSummary() Summary {
	return Summary{
		Sick:     leave.DefaultAllowance[leave.TypeSick],
		Vacation: leave.DefaultAllowance[leave.TypeVacation],
		Personal: leave.DefaultAllowance[leave.TypePersonal],
	}
}

type RequestStatus string

const (
	RequestPending  RequestStatus = "Pending"
	RequestApproved RequestStatus = "Approved"
	RequestRejected RequestStatus = "Rejected"
)

func (s RequestStatus) IsDecision() bool {
	return s == RequestApproved || s == RequestRejected
}

// Request is an employee's ask for extra days outside the normal allotment.
type Request struct {
	ID              string
	EmployeeID      string
	LeaveType       leave.Type
	RequestedAmount int
	Reason          string
	Status          RequestStatus
	Notes           *string
	ApprovedBy      *string
	ApprovedAt      *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Join
	EmployeeName  *string
	EmployeeEmail *string
}
