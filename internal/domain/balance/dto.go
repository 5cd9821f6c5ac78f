package balance

import (
	"time"

	"github.com/leavehub/leave-backend-go/internal/domain/leave"
	"github.com/leavehub/leave-backend-go/internal/pkg/validator"
)

type UpdateBalanceRequest struct {
	LeaveType string `json:"leaveType"`
	Balance   *int   `json:"balance"`
}

func (r *UpdateBalanceRequest) Validate() error {
	if !leave.Type(r.LeaveType).IsValid() {
		return ErrInvalidLeaveType
	}
	if r.Balance == nil {
		return validator.ValidationErrors{{Field: "balance", Message: "balance is required"}}
	}
	if *r.Balance < 0 {
		return ErrNegativeBalance
	}
	return nil
}

type BalanceResponse struct {
	EmployeeID string     `json:"employeeId"`
	LeaveType  leave.Type `json:"leaveType"`
	Balance    int        `json:"balance"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

func ToResponse(b Balance) BalanceResponse {
	return BalanceResponse{
		EmployeeID: b.EmployeeID,
		LeaveType:  b.LeaveType,
		Balance:    b.Balance,
		UpdatedAt:  b.UpdatedAt,
	}
}

type EmployeeBalanceResponse struct {
	EmployeeID string  `json:"employeeId"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Balances   Summary `json:"balances"`
}

type UsageResponse struct {
	Balances    Summary               `json:"balances"`
	RecentUsage []leave.LeaveResponse `json:"recentUsage"`
	LastUpdated time.Time             `json:"lastUpdated"`
}

type IncreaseRequest struct {
	LeaveType       string `json:"leaveType"`
	RequestedAmount int    `json:"requestedAmount"`
	Reason          string `json:"reason"`
}

func (r *IncreaseRequest) Validate() error {
	if !leave.Type(r.LeaveType).IsValid() {
		return ErrInvalidLeaveType
	}
	if r.RequestedAmount <= 0 {
		return ErrInvalidAmount
	}
	if validator.IsEmpty(r.Reason) {
		return validator.ValidationErrors{{Field: "reason", Message: "reason is required"}}
	}
	return nil
}

type UpdateRequestStatusRequest struct {
	Status string  `json:"status"`
	Notes  *string `json:"notes,omitempty"`
}

func (r *UpdateRequestStatusRequest) Validate() error {
	var errs validator.ValidationErrors
	if !RequestStatus(r.Status).IsDecision() {
		errs.Add("status", "invalid status, must be Approved or Rejected")
	}
	return errs.Err()
}

type RequestResponse struct {
	ID              string        `json:"id"`
	EmployeeID      string        `json:"employeeId"`
	EmployeeName    *string       `json:"employeeName,omitempty"`
	EmployeeEmail   *string       `json:"employeeEmail,omitempty"`
	LeaveType       leave.Type    `json:"leaveType"`
	RequestedAmount int           `json:"requestedAmount"`
	Reason          string        `json:"reason"`
	Status          RequestStatus `json:"status"`
	Notes           *string       `json:"notes,omitempty"`
	ApprovedBy      *string       `json:"approvedBy,omitempty"`
	ApprovedAt      *time.Time    `json:"approvedAt,omitempty"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
}

func ToRequestResponse(r Request) RequestResponse {
	return RequestResponse{
		ID:              r.ID,
		EmployeeID:      r.EmployeeID,
		EmployeeName:    r.EmployeeName,
		EmployeeEmail:   r.EmployeeEmail,
		LeaveType:       r.LeaveType,
		RequestedAmount: r.RequestedAmount,
		Reason:          r.Reason,
		Status:          r.Status,
		Notes:           r.Notes,
		ApprovedBy:      r.ApprovedBy,
		ApprovedAt:      r.ApprovedAt,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

func ToRequestResponses(reqs []Request) []RequestResponse {
	out := make([]RequestResponse, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, ToRequestResponse(r))
	}
	return out
}
