package dashboard

import (
	"context"
	"time"
)

// StatsRepository aggregates counts across tables. Each method is a single query.
type StatsRepository interface {
	// LeaveStats counts leaves by status; monthStart bounds the "this month" counters
	LeaveStats(ctx context.Context, monthStart time.Time) (LeaveStats, error)
	UserStats(ctx context.Context) (UserStats, error)
	// WellnessStats counts published articles and active events; events dated at or after now are upcoming
	WellnessStats(ctx context.Context, now time.Time) (WellnessStats, error)
}
