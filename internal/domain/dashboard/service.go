package dashboard

import "context"

// DashboardService defines the admin dashboard operations
type DashboardService interface {
	// GetStats gathers leave, user and wellness counters concurrently
	GetStats(ctx context.Context) (StatsResponse, error)

	// GetActivities returns the 10 latest leaves and the 5 latest users
	GetActivities(ctx context.Context) (ActivitiesResponse, error)
}
