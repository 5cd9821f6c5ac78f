package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/leavehub/leave-backend-go/internal/domain/dashboard"
	"github.com/leavehub/leave-backend-go/internal/pkg/database"
)

type statsRepositoryImpl struct {
	db *database.DB
}

func NewStatsRepository(db *database.DB) dashboard.StatsRepository {
	return &statsRepositoryImpl{db: db}
}

// LeaveStats implements dashboard.StatsRepository.
func (r *statsRepositoryImpl) LeaveStats(ctx context.Context, monthStart time.Time) (dashboard.LeaveStats, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*) FILTER (WHERE status = 'Pending'),
			COUNT(*) FILTER (WHERE status = 'Approved'),
			COUNT(*) FILTER (WHERE status = 'Rejected'),
			COUNT(*),
			COUNT(*) FILTER (WHERE created_at >= $1),
			COUNT(*) FILTER (WHERE status = 'Approved' AND approved_at >= $1)
		FROM leaves
	`

	var s dashboard.LeaveStats
	err := q.QueryRow(ctx, query, monthStart).Scan(
		&s.Pending,
		&s.Approved,
		&s.Rejected,
		&s.Total,
		&s.CreatedThisMonth,
		&s.ApprovedThisMonth,
	)
	if err != nil {
		return dashboard.LeaveStats{}, fmt.Errorf("failed to get leave stats: %w", err)
	}
	return s, nil
}

// UserStats implements dashboard.StatsRepository.
func (r *statsRepositoryImpl) UserStats(ctx context.Context) (dashboard.UserStats, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE role = 'Employee'),
			COUNT(*) FILTER (WHERE role = 'Admin')
		FROM users
	`

	var s dashboard.UserStats
	if err := q.QueryRow(ctx, query).Scan(&s.Total, &s.Employees, &s.Admins); err != nil {
		return dashboard.UserStats{}, fmt.Errorf("failed to get user stats: %w", err)
	}
	return s, nil
}

// WellnessStats implements dashboard.StatsRepository.
func (r *statsRepositoryImpl) WellnessStats(ctx context.Context, now time.Time) (dashboard.WellnessStats, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			(SELECT COUNT(*) FROM wellness_articles WHERE is_published = TRUE),
			COUNT(*),
			COUNT(*) FILTER (WHERE date >= $1)
		FROM wellness_events
		WHERE is_active = TRUE
	`

	var s dashboard.WellnessStats
	if err := q.QueryRow(ctx, query, now).Scan(&s.PublishedArticles, &s.ActiveEvents, &s.UpcomingEvents); err != nil {
		return dashboard.WellnessStats{}, fmt.Errorf("failed to get wellness stats: %w", err)
	}
	return s, nil
}
