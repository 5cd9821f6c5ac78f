package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/leavehub/leave-backend-go/internal/domain/leave"
	"github.com/leavehub/leave-backend-go/internal/handler/http/response"
)

type LeaveHandler interface {
	Apply(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	ListAll(w http.ResponseWriter, r *http.Request)
	UpdateStatus(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &LeaveHandlerImpl{leaveService: leaveService}
}

// Apply implements LeaveHandler.
func (h *LeaveHandlerImpl) Apply(w http.ResponseWriter, r *http.Request) {
	u, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req leave.ApplyLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("ApplyLeave decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		slog.Error("ApplyLeave validate error", "error", err)
		response.HandleError(w, err)
		return
	}

	result, err := h.leaveService.Apply(r.Context(), u.ID, req)
	if err != nil {
		slog.Error("ApplyLeave service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted successfully", result)
}

// ListMine implements LeaveHandler.
func (h *LeaveHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	u, ok := currentUser(w, r)
	if !ok {
		return
	}

	leaves, err := h.leaveService.ListMine(r.Context(), u.ID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, leaves)
}

// ListAll implements LeaveHandler.
func (h *LeaveHandlerImpl) ListAll(w http.ResponseWriter, r *http.Request) {
	leaves, err := h.leaveService.ListAll(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, leaves)
}

// UpdateStatus implements LeaveHandler.
func (h *LeaveHandlerImpl) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	approver, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	var req leave.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateLeaveStatus decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		slog.Error("UpdateLeaveStatus validate error", "error", err)
		response.HandleError(w, err)
		return
	}

	result, err := h.leaveService.UpdateStatus(r.Context(), approver.ID, id, req)
	if err != nil {
		slog.Error("UpdateLeaveStatus service error", "leave_id", id, "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request "+string(result.Leave.Status), result)
}
