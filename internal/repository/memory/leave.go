package memory

import (
	"context"
	"sort"
	"time"

	"github.com/leavehub/leave-backend-go/internal/domain/leave"
	"github.com/leavehub/leave-backend-go/internal/domain/user"
)

type leaveRepository struct {
	s *Store
}

func (s *Store) Leaves() leave.LeaveRepository {
	return &leaveRepository{s: s}
}

func (r *leaveRepository) withEmployee(l leave.Leave) leave.Leave {
	if u, ok := r.s.data.users[l.EmployeeID]; ok {
		l.EmployeeName, l.EmployeeEmail = strPtr(u.Name), strPtr(u.Email)
	}
	return l
}

func (r *leaveRepository) list(filter func(leave.Leave) bool, withEmployee bool, limit int) []leave.Leave {
	out := make([]leave.Leave, 0)
	for _, l := range r.s.data.leaves {
		if filter != nil && !filter(l) {
			continue
		}
		if withEmployee {
			l = r.withEmployee(l)
		}
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (r *leaveRepository) Create(ctx context.Context, l leave.Leave) (leave.Leave, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.data.users[l.EmployeeID]; !ok {
		return leave.Leave{}, user.ErrUserNotFound
	}
	now := r.s.now()
	l.ID = newID()
	l.Status = leave.StatusPending
	l.CreatedAt, l.UpdatedAt = now, now
	l.EmployeeName, l.EmployeeEmail = nil, nil
	r.s.data.leaves[l.ID] = l
	return l, nil
}

func (r *leaveRepository) GetByID(ctx context.Context, id string) (leave.Leave, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	l, ok := r.s.data.leaves[id]
	if !ok {
		return leave.Leave{}, leave.ErrLeaveNotFound
	}
	return r.withEmployee(l), nil
}

func (r *leaveRepository) ListByEmployee(ctx context.Context, employeeID string) ([]leave.Leave, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.list(func(l leave.Leave) bool { return l.EmployeeID == employeeID }, false, 0), nil
}

func (r *leaveRepository) ListAll(ctx context.Context) ([]leave.Leave, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.list(nil, true, 0), nil
}

func (r *leaveRepository) ListRecent(ctx context.Context, limit int) ([]leave.Leave, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.list(nil, true, limit), nil
}

func (r *leaveRepository) ListApprovedSince(ctx context.Context, employeeID string, since time.Time, limit int) ([]leave.Leave, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.list(func(l leave.Leave) bool {
		return l.EmployeeID == employeeID && l.Status == leave.StatusApproved && !l.CreatedAt.Before(since)
	}, false, limit), nil
}

func (r *leaveRepository) Decide(ctx context.Context, l leave.Leave) (leave.Leave, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.data.leaves[l.ID]
	if !ok {
		return leave.Leave{}, leave.ErrLeaveNotFound
	}
	if existing.Status != leave.StatusPending {
		return leave.Leave{}, leave.ErrLeaveAlreadyProcessed
	}
	existing.Status = l.Status
	existing.RequestedDays = l.RequestedDays
	existing.Notes = l.Notes
	existing.ApprovedBy = l.ApprovedBy
	existing.ApprovedAt = l.ApprovedAt
	existing.UpdatedAt = r.s.now()
	r.s.data.leaves[l.ID] = existing
	return r.withEmployee(existing), nil
}

func (r *leaveRepository) BackfillRequestedDays(ctx context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var updated int64
	for id, l := range r.s.data.leaves {
		if l.RequestedDays != nil && *l.RequestedDays > 0 {
			continue
		}
		l.RequestedDays = intPtr(leave.CountDays(l.StartDate, l.EndDate))
		l.UpdatedAt = r.s.now()
		r.s.data.leaves[id] = l
		updated++
	}
	return updated, nil
}

// PutLeave stores l as-is, bypassing Create. Tests use it to seed legacy rows.
func (s *Store) PutLeave(l leave.Leave) leave.Leave {
	s.mu.Lock()
	defer s.mu.Unlock()

	if l.ID == "" {
		l.ID = newID()
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = s.now()
		l.UpdatedAt = l.CreatedAt
	}
	s.data.leaves[l.ID] = l
	return l
}
