package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/leavehub/leave-backend-go/internal/domain/dashboard"
	"github.com/leavehub/leave-backend-go/internal/domain/leave"
	"github.com/leavehub/leave-backend-go/internal/domain/user"
	"golang.org/x/sync/errgroup"
)

const (
	recentLeavesLimit = 10
	recentUsersLimit  = 5
)

type DashboardServiceImpl struct {
	statsRepo dashboard.StatsRepository
	leaveRepo leave.LeaveRepository
	userRepo  user.UserRepository
	now       func() time.Time
}

func NewDashboardService(statsRepo dashboard.StatsRepository, leaveRepo leave.LeaveRepository, userRepo user.UserRepository) dashboard.DashboardService {
	return &DashboardServiceImpl{
		statsRepo: statsRepo,
		leaveRepo: leaveRepo,
		userRepo:  userRepo,
		now:       time.Now,
	}
}

// GetStats returns all counters using parallel goroutines, one query each
func (s *DashboardServiceImpl) GetStats(ctx context.Context) (dashboard.StatsResponse, error) {
	now := s.now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	var (
		leaveStats    dashboard.LeaveStats
		userStats     dashboard.UserStats
		wellnessStats dashboard.WellnessStats
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		stats, err := s.statsRepo.LeaveStats(gCtx, monthStart)
		if err != nil {
			return fmt.Errorf("leave stats: %w", err)
		}
		leaveStats = stats
		return nil
	})

	g.Go(func() error {
		stats, err := s.statsRepo.UserStats(gCtx)
		if err != nil {
			return fmt.Errorf("user stats: %w", err)
		}
		userStats = stats
		return nil
	})

	g.Go(func() error {
		stats, err := s.statsRepo.WellnessStats(gCtx, now)
		if err != nil {
			return fmt.Errorf("wellness stats: %w", err)
		}
		wellnessStats = stats
		return nil
	})

	if err := g.Wait(); err != nil {
		return dashboard.StatsResponse{}, fmt.Errorf("failed to get dashboard stats: %w", err)
	}

	return dashboard.StatsResponse{
		Leaves:   leaveStats,
		Users:    userStats,
		Wellness: wellnessStats,
	}, nil
}

// GetActivities returns the latest leaves and sign-ups
func (s *DashboardServiceImpl) GetActivities(ctx context.Context) (dashboard.ActivitiesResponse, error) {
	var (
		leaves []leave.Leave
		users  []user.User
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		leaves, err = s.leaveRepo.ListRecent(gCtx, recentLeavesLimit)
		return err
	})

	g.Go(func() error {
		var err error
		users, err = s.userRepo.ListRecent(gCtx, recentUsersLimit)
		return err
	})

	if err := g.Wait(); err != nil {
		return dashboard.ActivitiesResponse{}, fmt.Errorf("failed to get recent activities: %w", err)
	}

	return dashboard.ActivitiesResponse{
		RecentLeaves: leave.ToResponses(leaves),
		RecentUsers:  user.ToResponses(users),
	}, nil
}
