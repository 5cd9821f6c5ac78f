package memory

import (
	"context"
	"time"

	"github.com/leavehub/leave-backend-go/internal/domain/dashboard"
	"github.com/leavehub/leave-backend-go/internal/domain/leave"
	"github.com/leavehub/leave-backend-go/internal/domain/user"
)

type statsRepository struct {
	s *Store
}

func (s *Store) Stats() dashboard.StatsRepository {
	return &statsRepository{s: s}
}

func (r *statsRepository) LeaveStats(ctx context.Context, monthStart time.Time) (dashboard.LeaveStats, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var st dashboard.LeaveStats
	for _, l := range r.s.data.leaves {
		st.Total++
		switch l.Status {
		case leave.StatusPending:
			st.Pending++
		case leave.StatusApproved:
			st.Approved++
			if l.ApprovedAt != nil && !l.ApprovedAt.Before(monthStart) {
				st.ApprovedThisMonth++
			}
		case leave.StatusRejected:
			st.Rejected++
		}
		if !l.CreatedAt.Before(monthStart) {
			st.CreatedThisMonth++
		}
	}
	return st, nil
}

func (r *statsRepository) UserStats(ctx context.Context) (dashboard.UserStats, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var st dashboard.UserStats
	for _, u := range r.s.data.users {
		st.Total++
		switch u.Role {
		case user.RoleEmployee:
			st.Employees++
		case user.RoleAdmin:
			st.Admins++
		}
	}
	return st, nil
}

func (r *statsRepository) WellnessStats(ctx context.Context, now time.Time) (dashboard.WellnessStats, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var st dashboard.WellnessStats
	for _, a := range r.s.data.articles {
		if a.IsPublished {
			st.PublishedArticles++
		}
	}
	for _, e := range r.s.data.events {
		if !e.IsActive {
			continue
		}
		st.ActiveEvents++
		if !e.Date.Before(now) {
			st.UpcomingEvents++
		}
	}
	return st, nil
}
