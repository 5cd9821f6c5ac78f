package http

import (
	"net/http"

	"github.com/leavehub/leave-backend-go/internal/domain/dashboard"
	"github.com/leavehub/leave-backend-go/internal/handler/http/response"
)

type DashboardHandler interface {
	// GetStats returns leave, user and wellness counters
	GetStats(w http.ResponseWriter, r *http.Request)
	// GetActivities returns the latest leaves and sign-ups
	GetActivities(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &dashboardHandlerImpl{dashboardService: dashboardService}
}

// GetStats handles GET /admin/stats
func (h *dashboardHandlerImpl) GetStats(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboardService.GetStats(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetActivities handles GET /admin/activities
func (h *dashboardHandlerImpl) GetActivities(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboardService.GetActivities(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
