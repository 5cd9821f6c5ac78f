package memory

import (
	"context"
	"sort"

	"github.com/leavehub/leave-backend-go/internal/domain/balance"
	"github.com/leavehub/leave-backend-go/internal/domain/leave"
	"github.com/leavehub/leave-backend-go/internal/domain/user"
)

type balanceRepository struct {
	s *Store
}

func (s *Store) Balances() balance.BalanceRepository {
	return &balanceRepository{s: s}
}

// upsert must be called with s.mu held.
func (r *balanceRepository) upsert(employeeID string, leaveType leave.Type, apply func(current int, exists bool) int) (balance.Balance, error) {
	if _, ok := r.s.data.users[employeeID]; !ok {
		return balance.Balance{}, user.ErrUserNotFound
	}
	key := balanceKey{employeeID, leaveType}
	now := r.s.now()
	b, exists := r.s.data.balances[key]
	if !exists {
		b = balance.Balance{ID: newID(), EmployeeID: employeeID, LeaveType: leaveType, CreatedAt: now}
	}
	b.Balance = apply(b.Balance, exists)
	b.UpdatedAt = now
	r.s.data.balances[key] = b
	return b, nil
}

func (r *balanceRepository) InitializeDefaults(ctx context.Context, employeeID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, t := range leave.AllTypes() {
		allowance := leave.DefaultAllowance[t]
		if _, err := r.upsert(employeeID, t, func(current int, exists bool) int {
			if exists {
				return current
			}
			return allowance
		}); err != nil {
			return err
		}
	}
	return nil
}

func (r *balanceRepository) GetByEmployee(ctx context.Context, employeeID string) ([]balance.Balance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]balance.Balance, 0, 3)
	for k, b := range r.s.data.balances {
		if k.employeeID == employeeID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LeaveType < out[j].LeaveType })
	return out, nil
}

func (r *balanceRepository) GetByEmployees(ctx context.Context, employeeIDs []string) (map[string][]balance.Balance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	wanted := make(map[string]bool, len(employeeIDs))
	for _, id := range employeeIDs {
		wanted[id] = true
	}
	out := make(map[string][]balance.Balance, len(employeeIDs))
	for k, b := range r.s.data.balances {
		if wanted[k.employeeID] {
			out[k.employeeID] = append(out[k.employeeID], b)
		}
	}
	return out, nil
}

func (r *balanceRepository) Get(ctx context.Context, employeeID string, leaveType leave.Type) (balance.Balance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	b, ok := r.s.data.balances[balanceKey{employeeID, leaveType}]
	if !ok {
		return balance.Balance{}, balance.ErrBalanceNotFound
	}
	return b, nil
}

func (r *balanceRepository) Set(ctx context.Context, employeeID string, leaveType leave.Type, value int) (balance.Balance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	return r.upsert(employeeID, leaveType, func(int, bool) int { return value })
}

func (r *balanceRepository) Credit(ctx context.Context, employeeID string, leaveType leave.Type, amount int) (balance.Balance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	return r.upsert(employeeID, leaveType, func(current int, _ bool) int { return current + amount })
}

func (r *balanceRepository) Deduct(ctx context.Context, employeeID string, leaveType leave.Type, days int) (balance.Balance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := balanceKey{employeeID, leaveType}
	b, ok := r.s.data.balances[key]
	if !ok {
		return balance.Balance{}, balance.ErrBalanceNotFound
	}
	if b.Balance < days {
		return balance.Balance{}, balance.ErrInsufficientBalance
	}
	b.Balance -= days
	b.UpdatedAt = r.s.now()
	r.s.data.balances[key] = b
	return b, nil
}

type balanceRequestRepository struct {
	s *Store
}

func (s *Store) BalanceRequests() balance.RequestRepository {
	return &balanceRequestRepository{s: s}
}

func (r *balanceRequestRepository) Create(ctx context.Context, req balance.Request) (balance.Request, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.data.users[req.EmployeeID]; !ok {
		return balance.Request{}, user.ErrUserNotFound
	}
	now := r.s.now()
	req.ID = newID()
	req.Status = balance.RequestPending
	req.CreatedAt, req.UpdatedAt = now, now
	r.s.data.balanceRequests[req.ID] = req
	return req, nil
}

func (r *balanceRequestRepository) GetByID(ctx context.Context, id string) (balance.Request, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	req, ok := r.s.data.balanceRequests[id]
	if !ok {
		return balance.Request{}, balance.ErrBalanceRequestNotFound
	}
	return req, nil
}

func (r *balanceRequestRepository) list(filter func(balance.Request) bool, withEmployee bool) []balance.Request {
	out := make([]balance.Request, 0)
	for _, req := range r.s.data.balanceRequests {
		if filter != nil && !filter(req) {
			continue
		}
		if withEmployee {
			u := r.s.data.users[req.EmployeeID]
			req.EmployeeName, req.EmployeeEmail = strPtr(u.Name), strPtr(u.Email)
		}
		out = append(out, req)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *balanceRequestRepository) ListByEmployee(ctx context.Context, employeeID string) ([]balance.Request, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.list(func(req balance.Request) bool { return req.EmployeeID == employeeID }, false), nil
}

func (r *balanceRequestRepository) ListAll(ctx context.Context) ([]balance.Request, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.list(nil, true), nil
}

func (r *balanceRequestRepository) Decide(ctx context.Context, req balance.Request) (balance.Request, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.data.balanceRequests[req.ID]
	if !ok {
		return balance.Request{}, balance.ErrBalanceRequestNotFound
	}
	if existing.Status != balance.RequestPending {
		return balance.Request{}, balance.ErrBalanceRequestAlreadyProcessed
	}
	existing.Status = req.Status
	existing.Notes = req.Notes
	existing.ApprovedBy = req.ApprovedBy
	existing.ApprovedAt = req.ApprovedAt
	existing.UpdatedAt = r.s.now()
	r.s.data.balanceRequests[req.ID] = existing
	return existing, nil
}
