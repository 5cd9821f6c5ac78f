package leave

import (
	"math"
	"time"
)

// Type is a leave category; each one carries its own balance.
type Type string

const (
	TypeSick     Type = "Sick"
	TypeVacation Type = "Vacation"
	TypePersonal Type = "Personal"
)

// AllTypes returns every leave type in display order.
func AllTypes() []Type {
	return []Type{TypeSick, TypeVacation, TypePersonal}
}

// DefaultAllowance is the starting balance granted to every employee.
var DefaultAllowance = map[Type]int{
	TypeSick:     10,
	TypeVacation: 15,
	TypePersonal: 5,
}

func (t Type) IsValid() bool {
	_, ok := DefaultAllowance[t]
	return ok
}

type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)

// IsDecision reports whether s is a valid target of a status update.
func (s Status) IsDecision() bool {
	return s == StatusApproved || s == StatusRejected
}

type Leave struct {
	ID            string
	EmployeeID    string
	StartDate     time.Time
	EndDate       time.Time
	LeaveType     Type
	Description   string
	Status        Status
	RequestedDays *int
	Document      *string
	Notes         *string
	ApprovedBy    *string
	ApprovedAt    *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Join
	EmployeeName  *string
	EmployeeEmail *string
}

// CountDays returns the inclusive number of days between start and end.
func CountDays(start, end time.Time) int {
	return int(math.Ceil(end.Sub(start).Hours()/24)) + 1
}

// Days returns the stored day count, falling back to the date range for
// records created before requested_days existed.
func (l *Leave) Days() int {
	if l.RequestedDays != nil && *l.RequestedDays > 0 {
		return *l.RequestedDays
	}
	return CountDays(l.StartDate, l.EndDate)
}

func (l *Leave) IsPending() bool {
	return l.Status == StatusPending
}
