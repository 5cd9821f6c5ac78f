package leave

import (
	"time"

	"github.com/leavehub/leave-backend-go/internal/pkg/validator"
)

type ApplyLeaveRequest struct {
	StartDate   string  `json:"startDate"`
	EndDate     string  `json:"endDate"`
	LeaveType   string  `json:"leaveType"`
	Description string  `json:"description"`
	Document    *string `json:"document,omitempty"`

	start time.Time
	end   time.Time
}

func (r *ApplyLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	start, startOK := validator.ParseDay(r.StartDate)
	if validator.IsEmpty(r.StartDate) {
		errs.Add("startDate", "startDate is required")
	} else if !startOK {
		errs.Add("startDate", "startDate must be a date in YYYY-MM-DD format")
	}

	end, endOK := validator.ParseDay(r.EndDate)
	if validator.IsEmpty(r.EndDate) {
		errs.Add("endDate", "endDate is required")
	} else if !endOK {
		errs.Add("endDate", "endDate must be a date in YYYY-MM-DD format")
	}

	if !Type(r.LeaveType).IsValid() {
		errs.Add("leaveType", "leaveType must be one of: Sick, Vacation, Personal")
	}
	if validator.IsEmpty(r.Description) {
		errs.Add("description", "description is required")
	}

	if err := errs.Err(); err != nil {
		return err
	}

	r.start, r.end = start, end
	return nil
}

// Dates returns the parsed range; only meaningful after Validate succeeds.
func (r *ApplyLeaveRequest) Dates() (start, end time.Time) {
	return r.start, r.end
}

type UpdateStatusRequest struct {
	Status string  `json:"status"`
	Notes  *string `json:"notes,omitempty"`
}

func (r *UpdateStatusRequest) Validate() error {
	var errs validator.ValidationErrors
	if !Status(r.Status).IsDecision() {
		errs.Add("status", "invalid status, must be Approved or Rejected")
	}
	return errs.Err()
}

type LeaveResponse struct {
	ID            string     `json:"id"`
	EmployeeID    string     `json:"employeeId"`
	EmployeeName  *string    `json:"employeeName,omitempty"`
	EmployeeEmail *string    `json:"employeeEmail,omitempty"`
	StartDate     string     `json:"startDate"`
	EndDate       string     `json:"endDate"`
	LeaveType     Type       `json:"leaveType"`
	Description   string     `json:"description"`
	Status        Status     `json:"status"`
	RequestedDays int        `json:"requestedDays"`
	Document      *string    `json:"document,omitempty"`
	Notes         *string    `json:"notes,omitempty"`
	ApprovedBy    *string    `json:"approvedBy,omitempty"`
	ApprovedAt    *time.Time `json:"approvedAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

func ToResponse(l Leave) LeaveResponse {
	return LeaveResponse{
		ID:            l.ID,
		EmployeeID:    l.EmployeeID,
		EmployeeName:  l.EmployeeName,
		EmployeeEmail: l.EmployeeEmail,
		StartDate:     l.StartDate.Format("2006-01-02"),
		EndDate:       l.EndDate.Format("2006-01-02"),
		LeaveType:     l.LeaveType,
		Description:   l.Description,
		Status:        l.Status,
		RequestedDays: l.Days(),
		Document:      l.Document,
		Notes:         l.Notes,
		ApprovedBy:    l.ApprovedBy,
		ApprovedAt:    l.ApprovedAt,
		CreatedAt:     l.CreatedAt,
		UpdatedAt:     l.UpdatedAt,
	}
}

func ToResponses(leaves []Leave) []LeaveResponse {
	out := make([]LeaveResponse, 0, len(leaves))
	for _, l := range leaves {
		out = append(out, ToResponse(l))
	}
	return out
}

type ApplyLeaveResponse struct {
	Leave         LeaveResponse `json:"leave"`
	RequestedDays int           `json:"requestedDays"`
}

type UpdateStatusResponse struct {
	Leave        LeaveResponse `json:"leave"`
	DaysDeducted int           `json:"daysDeducted"`
}
