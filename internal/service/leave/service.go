package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/leavehub/leave-backend-go/internal/domain/balance"
	"github.com/leavehub/leave-backend-go/internal/domain/leave"
	"github.com/leavehub/leave-backend-go/internal/domain/notification"
	"github.com/leavehub/leave-backend-go/internal/domain/user"
	"github.com/leavehub/leave-backend-go/internal/pkg/database"
	"github.com/leavehub/leave-backend-go/internal/pkg/email"
	"github.com/leavehub/leave-backend-go/internal/pkg/metrics"
	"github.com/leavehub/leave-backend-go/internal/pkg/validator"
)

const dateLayout = "2006-01-02"

type LeaveServiceImpl struct {
	tx                  database.Transactor
	leaveRepo           leave.LeaveRepository
	balanceRepo         balance.BalanceRepository
	userRepo            user.UserRepository
	notificationService notification.NotificationService
	emailService        email.EmailService
	now                 func() time.Time
}

func NewLeaveService(
	tx database.Transactor,
	leaveRepo leave.LeaveRepository,
	balanceRepo balance.BalanceRepository,
	userRepo user.UserRepository,
	notificationService notification.NotificationService,
	emailService email.EmailService,
) leave.LeaveService {
	return &LeaveServiceImpl{
		tx:                  tx,
		leaveRepo:           leaveRepo,
		balanceRepo:         balanceRepo,
		userRepo:            userRepo,
		notificationService: notificationService,
		emailService:        emailService,
		now:                 time.Now,
	}
}

// Apply implements leave.LeaveService.
func (s *LeaveServiceImpl) Apply(ctx context.Context, employeeID string, req leave.ApplyLeaveRequest) (leave.ApplyLeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.ApplyLeaveResponse{}, err
	}

	start, end := req.Dates()
	today := validator.TruncateDay(s.now())
	if start.Before(today) {
		return leave.ApplyLeaveResponse{}, leave.ErrStartDateInPast
	}
	if end.Before(start) {
		return leave.ApplyLeaveResponse{}, leave.ErrEndBeforeStart
	}

	leaveType := leave.Type(req.LeaveType)
	days := leave.CountDays(start, end)

	current, err := s.balanceRepo.Get(ctx, employeeID, leaveType)
	switch {
	case errors.Is(err, balance.ErrBalanceNotFound):
		return leave.ApplyLeaveResponse{}, &balance.InsufficientBalanceError{LeaveType: leaveType, Available: 0, Requested: days}
	case err != nil:
		return leave.ApplyLeaveResponse{}, fmt.Errorf("failed to get balance: %w", err)
	case current.Balance < days:
		return leave.ApplyLeaveResponse{}, &balance.InsufficientBalanceError{LeaveType: leaveType, Available: current.Balance, Requested: days}
	}

	created, err := s.leaveRepo.Create(ctx, leave.Leave{
		EmployeeID:    employeeID,
		StartDate:     start,
		EndDate:       end,
		LeaveType:     leaveType,
		Description:   strings.TrimSpace(req.Description),
		Status:        leave.StatusPending,
		RequestedDays: &days,
		Document:      req.Document,
	})
	if err != nil {
		return leave.ApplyLeaveResponse{}, fmt.Errorf("failed to create leave: %w", err)
	}

	s.announceRequest(ctx, created)

	return leave.ApplyLeaveResponse{
		Leave:         leave.ToResponse(created),
		RequestedDays: days,
	}, nil
}

// announceRequest emails the admin mailbox and notifies every admin in-app.
func (s *LeaveServiceImpl) announceRequest(ctx context.Context, l leave.Leave) {
	employee, err := s.userRepo.GetByID(ctx, l.EmployeeID)
	if err != nil {
		slog.Error("Failed to load employee for leave announcement", "leave_id", l.ID, "error", err)
		return
	}

	err = s.emailService.SendLeaveRequest(email.LeaveRequestData{
		EmployeeName:  employee.Name,
		EmployeeEmail: employee.Email,
		LeaveType:     string(l.LeaveType),
		StartDate:     l.StartDate.Format(dateLayout),
		EndDate:       l.EndDate.Format(dateLayout),
		Days:          l.Days(),
		Description:   l.Description,
	})
	if err != nil {
		slog.Error("Failed to send leave request email", "leave_id", l.ID, "error", err)
	}

	admins, err := s.userRepo.ListByRole(ctx, user.RoleAdmin)
	if err != nil {
		slog.Error("Failed to list admins for leave notification", "leave_id", l.ID, "error", err)
		return
	}
	adminIDs := make([]string, 0, len(admins))
	for _, a := range admins {
		adminIDs = append(adminIDs, a.ID)
	}

	err = s.notificationService.NotifyMany(ctx, adminIDs, notification.CreateNotificationRequest{
		Title: "New Leave Request",
		Message: fmt.Sprintf("%s requested %d day(s) of %s leave from %s to %s.",
			employee.Name, l.Days(), l.LeaveType, l.StartDate.Format(dateLayout), l.EndDate.Format(dateLayout)),
		Type: notification.TypeInfo,
		Metadata: map[string]interface{}{
			"leaveId":    l.ID,
			"employeeId": l.EmployeeID,
		},
	})
	if err != nil {
		slog.Error("Failed to notify admins of leave request", "leave_id", l.ID, "error", err)
	}
}

// UpdateStatus implements leave.LeaveService.
func (s *LeaveServiceImpl) UpdateStatus(ctx context.Context, approverID string, leaveID string, req leave.UpdateStatusRequest) (leave.UpdateStatusResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.UpdateStatusResponse{}, err
	}

	var (
		decided      leave.Leave
		daysDeducted int
	)
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		current, err := s.leaveRepo.GetByID(ctx, leaveID)
		if err != nil {
			return err
		}
		if !current.IsPending() {
			return leave.ErrLeaveAlreadyProcessed
		}

		days := current.Days()
		approvedAt := s.now()
		current.RequestedDays = &days
		current.Status = leave.Status(req.Status)
		current.Notes = req.Notes
		current.ApprovedBy = &approverID
		current.ApprovedAt = &approvedAt

		decided, err = s.leaveRepo.Decide(ctx, current)
		if err != nil {
			return err
		}

		if decided.Status != leave.StatusApproved {
			return nil
		}

		if _, err := s.balanceRepo.Deduct(ctx, decided.EmployeeID, decided.LeaveType, days); err != nil {
			return s.shortfall(ctx, decided, days, err)
		}
		daysDeducted = days
		return nil
	})
	if err != nil {
		return leave.UpdateStatusResponse{}, err
	}

	metrics.LeaveDecisionsTotal.WithLabelValues(string(decided.Status)).Inc()
	if daysDeducted > 0 {
		metrics.LeaveDaysDeductedTotal.WithLabelValues(string(decided.LeaveType)).Add(float64(daysDeducted))
	}

	s.announceDecision(ctx, decided)

	return leave.UpdateStatusResponse{
		Leave:        leave.ToResponse(decided),
		DaysDeducted: daysDeducted,
	}, nil
}

// shortfall turns a failed deduction into an InsufficientBalanceError carrying the current balance.
func (s *LeaveServiceImpl) shortfall(ctx context.Context, l leave.Leave, days int, deductErr error) error {
	switch {
	case errors.Is(deductErr, balance.ErrBalanceNotFound):
		return &balance.InsufficientBalanceError{LeaveType: l.LeaveType, Available: 0, Requested: days}
	case !errors.Is(deductErr, balance.ErrInsufficientBalance):
		return fmt.Errorf("failed to deduct balance: %w", deductErr)
	}

	current, err := s.balanceRepo.Get(ctx, l.EmployeeID, l.LeaveType)
	if err != nil {
		return fmt.Errorf("failed to get balance: %w", err)
	}
	return &balance.InsufficientBalanceError{LeaveType: l.LeaveType, Available: current.Balance, Requested: days}
}

func (s *LeaveServiceImpl) announceDecision(ctx context.Context, l leave.Leave) {
	notes := ""
	if l.Notes != nil {
		notes = *l.Notes
	}

	if l.EmployeeEmail != nil && *l.EmployeeEmail != "" {
		name := ""
		if l.EmployeeName != nil {
			name = *l.EmployeeName
		}
		err := s.emailService.SendLeaveStatusUpdate(*l.EmployeeEmail, email.LeaveStatusData{
			EmployeeName: name,
			LeaveType:    string(l.LeaveType),
			StartDate:    l.StartDate.Format(dateLayout),
			EndDate:      l.EndDate.Format(dateLayout),
			Status:       string(l.Status),
			Days:         l.Days(),
			Notes:        notes,
		})
		if err != nil {
			slog.Error("Failed to send leave status email", "leave_id", l.ID, "error", err)
		}
	}

	notifType := notification.TypeSuccess
	if l.Status == leave.StatusRejected {
		notifType = notification.TypeWarning
	}

	message := fmt.Sprintf("Your %s leave from %s to %s has been %s.",
		l.LeaveType, l.StartDate.Format(dateLayout), l.EndDate.Format(dateLayout), strings.ToLower(string(l.Status)))
	if notes != "" {
		message += " Notes: " + notes
	}

	_, err := s.notificationService.Notify(ctx, notification.CreateNotificationRequest{
		UserID:  l.EmployeeID,
		Title:   fmt.Sprintf("Leave Request %s", l.Status),
		Message: message,
		Type:    notifType,
		Metadata: map[string]interface{}{
			"leaveId": l.ID,
			"status":  string(l.Status),
		},
	})
	if err != nil {
		slog.Error("Failed to notify leave decision", "leave_id", l.ID, "error", err)
	}
}

// ListMine implements leave.LeaveService.
func (s *LeaveServiceImpl) ListMine(ctx context.Context, employeeID string) ([]leave.LeaveResponse, error) {
	leaves, err := s.leaveRepo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leaves: %w", err)
	}
	return leave.ToResponses(leaves), nil
}

// ListAll implements leave.LeaveService.
func (s *LeaveServiceImpl) ListAll(ctx context.Context) ([]leave.LeaveResponse, error) {
	leaves, err := s.leaveRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list leaves: %w", err)
	}
	return leave.ToResponses(leaves), nil
}

// BackfillRequestedDays implements leave.LeaveService.
func (s *LeaveServiceImpl) BackfillRequestedDays(ctx context.Context) (int64, error) {
	updated, err := s.leaveRepo.BackfillRequestedDays(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to backfill requested days: %w", err)
	}
	return updated, nil
}
