package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/leavehub/leave-backend-go/internal/domain/notice"
	"github.com/leavehub/leave-backend-go/internal/handler/http/response"
)

type NoticeHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type noticeHandlerImpl struct {
	noticeService notice.NoticeService
}

func NewNoticeHandler(noticeService notice.NoticeService) NoticeHandler {
	return &noticeHandlerImpl{noticeService: noticeService}
}

func (h *noticeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	notices, err := h.noticeService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, notices)
}

func (h *noticeHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	u, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req notice.CreateNoticeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateNotice decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.noticeService.Create(r.Context(), u.ID, req)
	if err != nil {
		slog.Error("CreateNotice service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Notice created successfully", created)
}

func (h *noticeHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	var req notice.UpdateNoticeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateNotice decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	updated, err := h.noticeService.Update(r.Context(), id, req)
	if err != nil {
		slog.Error("UpdateNotice service error", "notice_id", id, "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Notice updated successfully", updated)
}

func (h *noticeHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.noticeService.Delete(r.Context(), id); err != nil {
		slog.Error("DeleteNotice service error", "notice_id", id, "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Notice deleted successfully", nil)
}
