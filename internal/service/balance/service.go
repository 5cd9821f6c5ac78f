package balance

import (
	"context"
	"fmt"
	"time"

	"github.com/leavehub/leave-backend-go/internal/domain/balance"
	"github.com/leavehub/leave-backend-go/internal/domain/leave"
	"github.com/leavehub/leave-backend-go/internal/domain/user"
	"golang.org/x/sync/singleflight"
)

const (
	recentUsageWindow = 30 * 24 * time.Hour
	recentUsageLimit  = 5
)

type BalanceServiceImpl struct {
	userRepo    user.UserRepository
	balanceRepo balance.BalanceRepository
	leaveRepo   leave.LeaveRepository

	// init deduplicates concurrent lazy initialisation per employee
	init singleflight.Group
	now  func() time.Time
}

func NewBalanceService(userRepo user.UserRepository, balanceRepo balance.BalanceRepository, leaveRepo leave.LeaveRepository) balance.BalanceService {
	return &BalanceServiceImpl{
		userRepo:    userRepo,
		balanceRepo: balanceRepo,
		leaveRepo:   leaveRepo,
		now:         time.Now,
	}
}

// EnsureDefaults implements balance.BalanceService.
func (s *BalanceServiceImpl) EnsureDefaults(ctx context.Context, employeeID string) error {
	// Callers joining the flight must not inherit the leader's cancellation
	shared := context.WithoutCancel(ctx)
	_, err, _ := s.init.Do(employeeID, func() (interface{}, error) {
		return nil, s.balanceRepo.InitializeDefaults(shared, employeeID)
	})
	if err != nil {
		return fmt.Errorf("failed to initialize default balances: %w", err)
	}
	return nil
}

func (s *BalanceServiceImpl) load(ctx context.Context, employeeID string) ([]balance.Balance, error) {
	balances, err := s.balanceRepo.GetByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get balances: %w", err)
	}
	if len(balances) >= len(leave.AllTypes()) {
		return balances, nil
	}

	if err := s.EnsureDefaults(ctx, employeeID); err != nil {
		return nil, err
	}
	balances, err = s.balanceRepo.GetByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get balances: %w", err)
	}
	return balances, nil
}

// GetMyBalance implements balance.BalanceService.
func (s *BalanceServiceImpl) GetMyBalance(ctx context.Context, employeeID string) (balance.Summary, error) {
	balances, err := s.load(ctx, employeeID)
	if err != nil {
		return balance.Summary{}, err
	}
	return balance.Summarize(balances), nil
}

// GetMyBalanceWithUsage implements balance.BalanceService.
func (s *BalanceServiceImpl) GetMyBalanceWithUsage(ctx context.Context, employeeID string) (balance.UsageResponse, error) {
	balances, err := s.load(ctx, employeeID)
	if err != nil {
		return balance.UsageResponse{}, err
	}

	now := s.now()
	recent, err := s.leaveRepo.ListApprovedSince(ctx, employeeID, now.Add(-recentUsageWindow), recentUsageLimit)
	if err != nil {
		return balance.UsageResponse{}, fmt.Errorf("failed to get recent leave usage: %w", err)
	}

	lastUpdated := now
	if len(balances) > 0 {
		lastUpdated = balances[0].UpdatedAt
		for _, b := range balances[1:] {
			if b.UpdatedAt.After(lastUpdated) {
				lastUpdated = b.UpdatedAt
			}
		}
	}

	return balance.UsageResponse{
		Balances:    balance.Summarize(balances),
		RecentUsage: leave.ToResponses(recent),
		LastUpdated: lastUpdated,
	}, nil
}

// GetAllBalances implements balance.BalanceService.
func (s *BalanceServiceImpl) GetAllBalances(ctx context.Context) ([]balance.EmployeeBalanceResponse, error) {
	employees, err := s.userRepo.ListByRole(ctx, user.RoleEmployee)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	ids := make([]string, 0, len(employees))
	for _, e := range employees {
		ids = append(ids, e.ID)
	}

	byEmployee, err := s.balanceRepo.GetByEmployees(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get balances: %w", err)
	}

	result := make([]balance.EmployeeBalanceResponse, 0, len(employees))
	for _, e := range employees {
		balances := byEmployee[e.ID]
		if len(balances) < len(leave.AllTypes()) {
			if balances, err = s.load(ctx, e.ID); err != nil {
				return nil, err
			}
		}
		result = append(result, balance.EmployeeBalanceResponse{
			EmployeeID: e.ID,
			Name:       e.Name,
			Email:      e.Email,
			Balances:   balance.Summarize(balances),
		})
	}
	return result, nil
}

// UpdateBalance implements balance.BalanceService.
func (s *BalanceServiceImpl) UpdateBalance(ctx context.Context, employeeID string, req balance.UpdateBalanceRequest) (balance.BalanceResponse, error) {
	if err := req.Validate(); err != nil {
		return balance.BalanceResponse{}, err
	}

	if _, err := s.userRepo.GetByID(ctx, employeeID); err != nil {
		return balance.BalanceResponse{}, err
	}

	updated, err := s.balanceRepo.Set(ctx, employeeID, leave.Type(req.LeaveType), *req.Balance)
	if err != nil {
		return balance.BalanceResponse{}, fmt.Errorf("failed to update balance: %w", err)
	}
	return balance.ToResponse(updated), nil
}
