package balance

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/leavehub/leave-backend-go/internal/domain/balance"
	"github.com/leavehub/leave-backend-go/internal/domain/leave"
	"github.com/leavehub/leave-backend-go/internal/domain/notification"
	"github.com/leavehub/leave-backend-go/internal/pkg/database"
	"github.com/leavehub/leave-backend-go/internal/pkg/metrics"
)

type RequestServiceImpl struct {
	tx                  database.Transactor
	requestRepo         balance.RequestRepository
	balanceRepo         balance.BalanceRepository
	notificationService notification.NotificationService
	now                 func() time.Time
}

func NewRequestService(tx database.Transactor, requestRepo balance.RequestRepository, balanceRepo balance.BalanceRepository, notificationService notification.NotificationService) balance.RequestService {
	return &RequestServiceImpl{
		tx:                  tx,
		requestRepo:         requestRepo,
		balanceRepo:         balanceRepo,
		notificationService: notificationService,
		now:                 time.Now,
	}
}

// RequestIncrease implements balance.RequestService.
func (s *RequestServiceImpl) RequestIncrease(ctx context.Context, employeeID string, req balance.IncreaseRequest) (balance.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return balance.RequestResponse{}, err
	}

	created, err := s.requestRepo.Create(ctx, balance.Request{
		EmployeeID:      employeeID,
		LeaveType:       leave.Type(req.LeaveType),
		RequestedAmount: req.RequestedAmount,
		Reason:          strings.TrimSpace(req.Reason),
		Status:          balance.RequestPending,
	})
	if err != nil {
		return balance.RequestResponse{}, fmt.Errorf("failed to create balance request: %w", err)
	}
	return balance.ToRequestResponse(created), nil
}

// UpdateStatus implements balance.RequestService.
func (s *RequestServiceImpl) UpdateStatus(ctx context.Context, approverID string, requestID string, req balance.UpdateRequestStatusRequest) (balance.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return balance.RequestResponse{}, err
	}

	var decided balance.Request
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		current, err := s.requestRepo.GetByID(ctx, requestID)
		if err != nil {
			return err
		}
		if current.Status != balance.RequestPending {
			return balance.ErrBalanceRequestAlreadyProcessed
		}

		approvedAt := s.now()
		current.Status = balance.RequestStatus(req.Status)
		current.Notes = req.Notes
		current.ApprovedBy = &approverID
		current.ApprovedAt = &approvedAt

		decided, err = s.requestRepo.Decide(ctx, current)
		if err != nil {
			return err
		}

		if decided.Status == balance.RequestApproved {
			if _, err := s.balanceRepo.Credit(ctx, decided.EmployeeID, decided.LeaveType, decided.RequestedAmount); err != nil {
				return fmt.Errorf("failed to credit balance: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return balance.RequestResponse{}, err
	}

	metrics.BalanceRequestDecisionsTotal.WithLabelValues(string(decided.Status)).Inc()
	s.notifyDecision(ctx, decided)

	return balance.ToRequestResponse(decided), nil
}

func (s *RequestServiceImpl) notifyDecision(ctx context.Context, r balance.Request) {
	notifType := notification.TypeSuccess
	if r.Status == balance.RequestRejected {
		notifType = notification.TypeWarning
	}

	message := fmt.Sprintf("Your request for %d additional %s leave days has been %s.",
		r.RequestedAmount, r.LeaveType, strings.ToLower(string(r.Status)))
	if r.Notes != nil && *r.Notes != "" {
		message += " Notes: " + *r.Notes
	}

	_, err := s.notificationService.Notify(ctx, notification.CreateNotificationRequest{
		UserID:  r.EmployeeID,
		Title:   fmt.Sprintf("Balance Request %s", r.Status),
		Message: message,
		Type:    notifType,
		Metadata: map[string]interface{}{
			"balanceRequestId": r.ID,
			"leaveType":        string(r.LeaveType),
			"amount":           r.RequestedAmount,
		},
	})
	if err != nil {
		slog.Error("Failed to notify balance request decision", "request_id", r.ID, "error", err)
	}
}

// ListMine implements balance.RequestService.
func (s *RequestServiceImpl) ListMine(ctx context.Context, employeeID string) ([]balance.RequestResponse, error) {
	requests, err := s.requestRepo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list balance requests: %w", err)
	}
	return balance.ToRequestResponses(requests), nil
}

// ListAll implements balance.RequestService.
func (s *RequestServiceImpl) ListAll(ctx context.Context) ([]balance.RequestResponse, error) {
	requests, err := s.requestRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list balance requests: %w", err)
	}
	return balance.ToRequestResponses(requests), nil
}
