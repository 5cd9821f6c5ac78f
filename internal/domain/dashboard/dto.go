package dashboard

import (
	"github.com/leavehub/leave-backend-go/internal/domain/leave"
	"github.com/leavehub/leave-backend-go/internal/domain/user"
)

// StatsResponse is the admin overview returned by GET /admin/stats
type StatsResponse struct {
	Leaves   LeaveStats    `json:"leaves"`
	Users    UserStats     `json:"users"`
	Wellness WellnessStats `json:"wellness"`
}

type LeaveStats struct {
	Pending           int64 `json:"pending"`
	Approved          int64 `json:"approved"`
	Rejected          int64 `json:"rejected"`
	Total             int64 `json:"total"`
	CreatedThisMonth  int64 `json:"createdThisMonth"`
	ApprovedThisMonth int64 `json:"approvedThisMonth"`
}

type UserStats struct {
	Total     int64 `json:"total"`
	Employees int64 `json:"employees"`
	Admins    int64 `json:"admins"`
}

type WellnessStats struct {
	PublishedArticles int64 `json:"publishedArticles"`
	ActiveEvents      int64 `json:"activeEvents"`
	UpcomingEvents    int64 `json:"upcomingEvents"`
}

// ActivitiesResponse lists the latest leaves and sign-ups
type ActivitiesResponse struct {
	RecentLeaves []leave.LeaveResponse `json:"recentLeaves"`
	RecentUsers  []user.UserResponse   `json:"recentUsers"`
}
