package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/leavehub/leave-backend-go/internal/domain/user"
	"github.com/leavehub/leave-backend-go/internal/handler/http/middleware"
	"github.com/leavehub/leave-backend-go/internal/handler/http/response"
	"github.com/leavehub/leave-backend-go/internal/pkg/validator"
)

// currentUser writes 401 when the request carries no authenticated user.
func currentUser(w http.ResponseWriter, r *http.Request) (user.User, bool) {
	u, ok := middleware.CurrentUser(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
	}
	return u, ok
}

// uuidParam reads a UUID path parameter, answering 400 when it is malformed.
func uuidParam(w http.ResponseWriter, r *http.Request, key string) (string, bool) {
	id := chi.URLParam(r, key)
	if !validator.IsValidUUID(id) {
		response.BadRequest(w, "Invalid "+key, map[string]interface{}{key: "must be a valid UUID"})
		return "", false
	}
	return id, true
}

// getIntQueryParam gets an int query parameter with a default value
func getIntQueryParam(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}
	intVal, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return intVal
}

// getBoolQueryParam gets a bool query parameter with a default value
func getBoolQueryParam(r *http.Request, key string, defaultVal bool) bool {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}
	return val == "true" || val == "1"
}
