package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/leavehub/leave-backend-go/internal/domain/wellness"
	"github.com/leavehub/leave-backend-go/internal/handler/http/response"
)

type WellnessHandler interface {
	ListArticles(w http.ResponseWriter, r *http.Request)
	GetArticle(w http.ResponseWriter, r *http.Request)
	CreateArticle(w http.ResponseWriter, r *http.Request)
	UpdateArticle(w http.ResponseWriter, r *http.Request)
	DeleteArticle(w http.ResponseWriter, r *http.Request)

	ListEvents(w http.ResponseWriter, r *http.Request)
	GetEvent(w http.ResponseWriter, r *http.Request)
	CreateEvent(w http.ResponseWriter, r *http.Request)
	UpdateEvent(w http.ResponseWriter, r *http.Request)
	DeleteEvent(w http.ResponseWriter, r *http.Request)
	RegisterForEvent(w http.ResponseWriter, r *http.Request)
	UnregisterFromEvent(w http.ResponseWriter, r *http.Request)
	ListMyEvents(w http.ResponseWriter, r *http.Request)
}

type wellnessHandlerImpl struct {
	articleService wellness.ArticleService
	eventService   wellness.EventService
}

func NewWellnessHandler(articleService wellness.ArticleService, eventService wellness.EventService) WellnessHandler {
	return &wellnessHandlerImpl{
		articleService: articleService,
		eventService:   eventService,
	}
}

func pagination(r *http.Request) wellness.Pagination {
	return wellness.Pagination{
		Page:  getIntQueryParam(r, "page", 1),
		Limit: getIntQueryParam(r, "limit", 10),
	}
}

// Articles

func (h *wellnessHandlerImpl) ListArticles(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	result, err := h.articleService.List(r.Context(), wellness.ArticleFilter{
		Category:   query.Get("category"),
		Search:     query.Get("search"),
		Pagination: pagination(r),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *wellnessHandlerImpl) GetArticle(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	article, err := h.articleService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, article)
}

func (h *wellnessHandlerImpl) CreateArticle(w http.ResponseWriter, r *http.Request) {
	u, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req wellness.CreateArticleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateArticle decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.articleService.Create(r.Context(), u.ID, req)
	if err != nil {
		slog.Error("CreateArticle service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Article created successfully", created)
}

func (h *wellnessHandlerImpl) UpdateArticle(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	var req wellness.UpdateArticleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateArticle decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	updated, err := h.articleService.Update(r.Context(), id, req)
	if err != nil {
		slog.Error("UpdateArticle service error", "article_id", id, "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Article updated successfully", updated)
}

func (h *wellnessHandlerImpl) DeleteArticle(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.articleService.Delete(r.Context(), id); err != nil {
		slog.Error("DeleteArticle service error", "article_id", id, "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Article deleted successfully", nil)
}

// Events

func (h *wellnessHandlerImpl) ListEvents(w http.ResponseWriter, r *http.Request) {
	result, err := h.eventService.List(r.Context(), wellness.EventFilter{
		Category:   r.URL.Query().Get("category"),
		Upcoming:   getBoolQueryParam(r, "upcoming", false),
		Pagination: pagination(r),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *wellnessHandlerImpl) GetEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	event, err := h.eventService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, event)
}

func (h *wellnessHandlerImpl) CreateEvent(w http.ResponseWriter, r *http.Request) {
	u, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req wellness.CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateEvent decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.eventService.Create(r.Context(), u.ID, req)
	if err != nil {
		slog.Error("CreateEvent service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Event created successfully", created)
}

func (h *wellnessHandlerImpl) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	var req wellness.UpdateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateEvent decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	updated, err := h.eventService.Update(r.Context(), id, req)
	if err != nil {
		slog.Error("UpdateEvent service error", "event_id", id, "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Event updated successfully", updated)
}

func (h *wellnessHandlerImpl) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.eventService.Delete(r.Context(), id); err != nil {
		slog.Error("DeleteEvent service error", "event_id", id, "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Event deleted successfully", nil)
}

func (h *wellnessHandlerImpl) RegisterForEvent(w http.ResponseWriter, r *http.Request) {
	u, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	event, err := h.eventService.Register(r.Context(), u.ID, id)
	if err != nil {
		slog.Error("RegisterForEvent service error", "event_id", id, "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Successfully registered for event", event)
}

func (h *wellnessHandlerImpl) UnregisterFromEvent(w http.ResponseWriter, r *http.Request) {
	u, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	event, err := h.eventService.Unregister(r.Context(), u.ID, id)
	if err != nil {
		slog.Error("UnregisterFromEvent service error", "event_id", id, "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Successfully unregistered from event", event)
}

func (h *wellnessHandlerImpl) ListMyEvents(w http.ResponseWriter, r *http.Request) {
	u, ok := currentUser(w, r)
	if !ok {
		return
	}

	events, err := h.eventService.ListMine(r.Context(), u.ID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, events)
}
