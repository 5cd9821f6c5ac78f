package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/leavehub/leave-backend-go/internal/domain/balance"
	"github.com/leavehub/leave-backend-go/internal/handler/http/response"
)

type BalanceHandler interface {
	GetMyBalance(w http.ResponseWriter, r *http.Request)
	GetMyBalanceWithUsage(w http.ResponseWriter, r *http.Request)
	GetAllBalances(w http.ResponseWriter, r *http.Request)
	UpdateBalance(w http.ResponseWriter, r *http.Request)
	RequestIncrease(w http.ResponseWriter, r *http.Request)
	ListMyRequests(w http.ResponseWriter, r *http.Request)
	ListAllRequests(w http.ResponseWriter, r *http.Request)
	UpdateRequestStatus(w http.ResponseWriter, r *http.Request)
}

type balanceHandlerImpl struct {
	balanceService balance.BalanceService
	requestService balance.RequestService
}

func NewBalanceHandler(balanceService balance.BalanceService, requestService balance.RequestService) BalanceHandler {
	return &balanceHandlerImpl{
		balanceService: balanceService,
		requestService: requestService,
	}
}

func (h *balanceHandlerImpl) GetMyBalance(w http.ResponseWriter, r *http.Request) {
	u, ok := currentUser(w, r)
	if !ok {
		return
	}

	summary, err := h.balanceService.GetMyBalance(r.Context(), u.ID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, summary)
}

func (h *balanceHandlerImpl) GetMyBalanceWithUsage(w http.ResponseWriter, r *http.Request) {
	u, ok := currentUser(w, r)
	if !ok {
		return
	}

	usage, err := h.balanceService.GetMyBalanceWithUsage(r.Context(), u.ID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, usage)
}

func (h *balanceHandlerImpl) GetAllBalances(w http.ResponseWriter, r *http.Request) {
	balances, err := h.balanceService.GetAllBalances(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, balances)
}

func (h *balanceHandlerImpl) UpdateBalance(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := uuidParam(w, r, "employeeId")
	if !ok {
		return
	}

	var req balance.UpdateBalanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateBalance decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		slog.Error("UpdateBalance validate error", "error", err)
		response.HandleError(w, err)
		return
	}

	updated, err := h.balanceService.UpdateBalance(r.Context(), employeeID, req)
	if err != nil {
		slog.Error("UpdateBalance service error", "employee_id", employeeID, "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Balance updated successfully", updated)
}

func (h *balanceHandlerImpl) RequestIncrease(w http.ResponseWriter, r *http.Request) {
	u, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req balance.IncreaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("RequestIncrease decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		slog.Error("RequestIncrease validate error", "error", err)
		response.HandleError(w, err)
		return
	}

	created, err := h.requestService.RequestIncrease(r.Context(), u.ID, req)
	if err != nil {
		slog.Error("RequestIncrease service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Balance increase request submitted successfully", created)
}

func (h *balanceHandlerImpl) ListMyRequests(w http.ResponseWriter, r *http.Request) {
	u, ok := currentUser(w, r)
	if !ok {
		return
	}

	requests, err := h.requestService.ListMine(r.Context(), u.ID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, requests)
}

func (h *balanceHandlerImpl) ListAllRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.requestService.ListAll(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, requests)
}

func (h *balanceHandlerImpl) UpdateRequestStatus(w http.ResponseWriter, r *http.Request) {
	approver, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	var req balance.UpdateRequestStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateRequestStatus decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		slog.Error("UpdateRequestStatus validate error", "error", err)
		response.HandleError(w, err)
		return
	}

	updated, err := h.requestService.UpdateStatus(r.Context(), approver.ID, id, req)
	if err != nil {
		slog.Error("UpdateRequestStatus service error", "request_id", id, "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Balance request "+string(updated.Status), updated)
}
