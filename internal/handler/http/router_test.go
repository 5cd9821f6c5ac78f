package http

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/leavehub/leave-backend-go/internal/domain/auth"
	"github.com/leavehub/leave-backend-go/internal/domain/balance"
	"github.com/leavehub/leave-backend-go/internal/domain/dashboard"
	"github.com/leavehub/leave-backend-go/internal/domain/leave"
	"github.com/leavehub/leave-backend-go/internal/domain/notification"
	"github.com/leavehub/leave-backend-go/internal/domain/wellness"
	"github.com/leavehub/leave-backend-go/internal/handler/http/middleware"
	"github.com/leavehub/leave-backend-go/internal/handler/http/response"
	"github.com/leavehub/leave-backend-go/internal/pkg/email/emailtest"
	"github.com/leavehub/leave-backend-go/internal/pkg/jwt"
	"github.com/leavehub/leave-backend-go/internal/pkg/sse"
	"github.com/leavehub/leave-backend-go/internal/repository/memory"
	authService "github.com/leavehub/leave-backend-go/internal/service/auth"
	balanceService "github.com/leavehub/leave-backend-go/internal/service/balance"
	dashboardService "github.com/leavehub/leave-backend-go/internal/service/dashboard"
	leaveService "github.com/leavehub/leave-backend-go/internal/service/leave"
	noticeService "github.com/leavehub/leave-backend-go/internal/service/notice"
	notificationService "github.com/leavehub/leave-backend-go/internal/service/notification"
	userService "github.com/leavehub/leave-backend-go/internal/service/user"
	wellnessService "github.com/leavehub/leave-backend-go/internal/service/wellness"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	handlerTestSecret = "test-secret-key-for-jwt"
	handlerTestExp    = "1h"
	handlerTestPrefix = "/api"
)

type testServer struct {
	router http.Handler
	store  *memory.Store
	mailer *emailtest.Recorder
	hub    *sse.Hub
}

type envelope[T any] struct {
	Success bool                  `json:"success"`
	Message string                `json:"message"`
	Data    T                     `json:"data"`
	Error   *response.ErrorDetail `json:"error"`
}

func newTestServer(t *testing.T, limiter *middleware.RateLimiter) *testServer {
	t.Helper()

	store := memory.NewStore()
	jwtService, err := jwt.NewJWTService(handlerTestSecret, handlerTestExp)
	require.NoError(t, err)

	hub := sse.NewHub()
	mailer := &emailtest.Recorder{}
	notifSvc := notificationService.NewNotificationService(store.Notifications(), hub)

	handlers := Handlers{
		Auth:    NewAuthHandler(authService.NewAuthService(store.Transactor(), store.Users(), store.Balances(), jwtService), nil, "http://localhost:3000", handlerTestPrefix+"/auth/google/callback", false),
		User:    NewUserHandler(userService.NewUserService(store.Users())),
		Leave:   NewLeaveHandler(leaveService.NewLeaveService(store.Transactor(), store.Leaves(), store.Balances(), store.Users(), notifSvc, mailer)),
		Balance: NewBalanceHandler(
			balanceService.NewBalanceService(store.Users(), store.Balances(), store.Leaves()),
			balanceService.NewRequestService(store.Transactor(), store.BalanceRequests(), store.Balances(), notifSvc),
		),
		Notice:       NewNoticeHandler(noticeService.NewNoticeService(store.Notices())),
		Notification: NewNotificationHandler(notifSvc),
		Wellness: NewWellnessHandler(
			wellnessService.NewArticleService(store.Articles()),
			wellnessService.NewEventService(store.Transactor(), store.Events(), store.Users(), notifSvc, mailer),
		),
		Dashboard: NewDashboardHandler(dashboardService.NewDashboardService(store.Stats(), store.Leaves(), store.Users())),
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := NewRouter(logger, RouterOptions{
		APIPrefix:          handlerTestPrefix,
		CORSAllowedOrigins: []string{"http://localhost:3000"},
		LogLevel:           slog.LevelError,
		AuthRateLimiter:    limiter,
	}, jwtService, store.Users(), handlers)

	return &testServer{router: router, store: store, mailer: mailer, hub: hub}
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, handlerTestPrefix+path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) envelope[T] {
	t.Helper()
	var env envelope[T]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env
}

func (s *testServer) register(t *testing.T, name, email, role string) auth.AuthResponse {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/auth/register", "", auth.RegisterRequest{
		Name:     name,
		Email:    email,
		Password: "password123",
		Role:     role,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[auth.AuthResponse](t, rec).Data
}

func tomorrow(offset int) string {
	return time.Now().AddDate(0, 0, 1+offset).Format("2006-01-02")
}

func TestRouter_LeaveLifecycle(t *testing.T) {
	s := newTestServer(t, nil)
	employee := s.register(t, "Jane Doe", "jane@example.com", "")
	admin := s.register(t, "Boss", "boss@example.com", "Admin")

	rec := s.do(t, http.MethodGet, "/balances", employee.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, balance.Summary{Sick: 10, Vacation: 15, Personal: 5}, decode[balance.Summary](t, rec).Data)

	rec = s.do(t, http.MethodPost, "/leaves", employee.Token, leave.ApplyLeaveRequest{
		StartDate:   tomorrow(0),
		EndDate:     tomorrow(2),
		LeaveType:   "Vacation",
		Description: "Family trip",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	applied := decode[leave.ApplyLeaveResponse](t, rec).Data
	assert.Equal(t, 3, applied.RequestedDays)
	assert.Equal(t, leave.StatusPending, applied.Leave.Status)

	// Pending requests do not touch the balance
	rec = s.do(t, http.MethodGet, "/balances", employee.Token, nil)
	assert.Equal(t, 15, decode[balance.Summary](t, rec).Data.Vacation)

	rec = s.do(t, http.MethodPut, "/leaves/"+applied.Leave.ID, admin.Token, leave.UpdateStatusRequest{Status: "Approved"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	approved := decode[leave.UpdateStatusResponse](t, rec)
	assert.Equal(t, "Leave request Approved", approved.Message)
	assert.Equal(t, 3, approved.Data.DaysDeducted)

	rec = s.do(t, http.MethodGet, "/balances", employee.Token, nil)
	assert.Equal(t, 12, decode[balance.Summary](t, rec).Data.Vacation)

	rec = s.do(t, http.MethodGet, "/leaves", employee.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	mine := decode[[]leave.LeaveResponse](t, rec).Data
	require.Len(t, mine, 1)
	assert.Equal(t, leave.StatusApproved, mine[0].Status)
	assert.Equal(t, 3, mine[0].RequestedDays)

	rec = s.do(t, http.MethodPut, "/leaves/"+applied.Leave.ID, admin.Token, leave.UpdateStatusRequest{Status: "Rejected"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodGet, "/notifications/unread-count", employee.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, decode[notification.UnreadCountResponse](t, rec).Data.Count)
}

func TestRouter_AuthenticationGates(t *testing.T) {
	s := newTestServer(t, nil)
	employee := s.register(t, "Jane Doe", "jane@example.com", "")

	tests := []struct {
		name       string
		method     string
		path       string
		token      string
		wantStatus int
		wantCode   string
	}{
		{"missing token", http.MethodGet, "/leaves", "", http.StatusUnauthorized, "UNAUTHORIZED"},
		{"garbage token", http.MethodGet, "/leaves", "not-a-jwt", http.StatusUnauthorized, "UNAUTHORIZED"},
		{"employee on admin route", http.MethodGet, "/leaves/all", employee.Token, http.StatusForbidden, "FORBIDDEN"},
		{"employee on stats", http.MethodGet, "/admin/stats", employee.Token, http.StatusForbidden, "FORBIDDEN"},
		{"unknown route", http.MethodGet, "/nope", employee.Token, http.StatusNotFound, "NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(t, tt.method, tt.path, tt.token, nil)
			assert.Equal(t, tt.wantStatus, rec.Code)
			env := decode[json.RawMessage](t, rec)
			assert.False(t, env.Success)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.wantCode, env.Error.Code)
		})
	}
}

func TestRouter_TokenOfDeletedUserIsRejected(t *testing.T) {
	s := newTestServer(t, nil)
	employee := s.register(t, "Jane Doe", "jane@example.com", "")
	admin := s.register(t, "Boss", "boss@example.com", "Admin")

	rec := s.do(t, http.MethodDelete, "/users/"+employee.User.ID, admin.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodGet, "/users/me", employee.Token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_ValidationAndFormatErrors(t *testing.T) {
	s := newTestServer(t, nil)
	employee := s.register(t, "Jane Doe", "jane@example.com", "")
	admin := s.register(t, "Boss", "boss@example.com", "Admin")

	t.Run("malformed json", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/auth/login", "", "{not json")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid request format", decode[json.RawMessage](t, rec).Error.Message)
	})

	t.Run("field errors", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/auth/register", "", auth.RegisterRequest{Email: "nope"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		env := decode[json.RawMessage](t, rec)
		require.NotNil(t, env.Error)
		assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
		assert.Contains(t, env.Error.Details, "name")
		assert.Contains(t, env.Error.Details, "email")
		assert.Contains(t, env.Error.Details, "password")
	})

	t.Run("wrong password", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/auth/login", "", auth.LoginRequest{Email: "jane@example.com", Password: "wrong-password"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("duplicate email", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/auth/register", "", auth.RegisterRequest{Name: "Other", Email: "JANE@example.com", Password: "password123"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed id", func(t *testing.T) {
		rec := s.do(t, http.MethodPut, "/leaves/not-a-uuid", admin.Token, leave.UpdateStatusRequest{Status: "Approved"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		env := decode[json.RawMessage](t, rec)
		require.NotNil(t, env.Error)
		assert.Contains(t, env.Error.Details, "id")
	})

	t.Run("end before start", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/leaves", employee.Token, leave.ApplyLeaveRequest{
			StartDate:   tomorrow(3),
			EndDate:     tomorrow(1),
			LeaveType:   "Sick",
			Description: "Flu",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestRouter_InsufficientBalanceDetails(t *testing.T) {
	s := newTestServer(t, nil)
	employee := s.register(t, "Jane Doe", "jane@example.com", "")

	rec := s.do(t, http.MethodPost, "/leaves", employee.Token, leave.ApplyLeaveRequest{
		StartDate:   tomorrow(0),
		EndDate:     tomorrow(19),
		LeaveType:   "Personal",
		Description: "Sabbatical",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	env := decode[json.RawMessage](t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, "Personal", env.Error.Details["leaveType"])
	assert.EqualValues(t, 5, env.Error.Details["available"])
	assert.EqualValues(t, 20, env.Error.Details["requested"])
	assert.EqualValues(t, 15, env.Error.Details["shortfall"])
}

func TestRouter_BalanceRequestApproval(t *testing.T) {
	s := newTestServer(t, nil)
	employee := s.register(t, "Jane Doe", "jane@example.com", "")
	admin := s.register(t, "Boss", "boss@example.com", "Admin")

	rec := s.do(t, http.MethodPost, "/balances/request-increase", employee.Token, balance.IncreaseRequest{
		LeaveType:       "Sick",
		RequestedAmount: 4,
		Reason:          "Surgery recovery",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[balance.RequestResponse](t, rec).Data

	rec = s.do(t, http.MethodGet, "/balance-requests/all", admin.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]balance.RequestResponse](t, rec).Data, 1)

	rec = s.do(t, http.MethodPut, "/balance-requests/update-status/"+created.ID, admin.Token, balance.UpdateRequestStatusRequest{Status: "Approved"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, balance.RequestApproved, decode[balance.RequestResponse](t, rec).Data.Status)

	rec = s.do(t, http.MethodGet, "/balances", employee.Token, nil)
	assert.Equal(t, 14, decode[balance.Summary](t, rec).Data.Sick)

	rec = s.do(t, http.MethodPut, "/balance-requests/update-status/"+created.ID, admin.Token, balance.UpdateRequestStatusRequest{Status: "Rejected"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_NoticesAreAdminManaged(t *testing.T) {
	s := newTestServer(t, nil)
	employee := s.register(t, "Jane Doe", "jane@example.com", "")
	admin := s.register(t, "Boss", "boss@example.com", "Admin")

	payload := map[string]string{"title": "Office closed", "content": "Friday is a holiday"}

	rec := s.do(t, http.MethodPost, "/notices", employee.Token, payload)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodPost, "/notices", admin.Token, payload)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodGet, "/notices", employee.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	notices := decode[[]map[string]interface{}](t, rec).Data
	require.Len(t, notices, 1)
	assert.Equal(t, "Office closed", notices[0]["title"])
	assert.Equal(t, "Boss", notices[0]["posterName"])
}

func TestRouter_EventCapacity(t *testing.T) {
	s := newTestServer(t, nil)
	first := s.register(t, "Jane Doe", "jane@example.com", "")
	second := s.register(t, "John Roe", "john@example.com", "")
	admin := s.register(t, "Boss", "boss@example.com", "Admin")

	limit := 1
	rec := s.do(t, http.MethodPost, "/wellness/events", admin.Token, wellness.CreateEventRequest{
		Title:           "Morning yoga",
		Description:     "Stretch before standup",
		Category:        "Fitness",
		Date:            tomorrow(6),
		StartTime:       "08:00",
		EndTime:         "09:00",
		Location:        "Roof terrace",
		MaxParticipants: &limit,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	eventID := decode[wellness.EventResponse](t, rec).Data.ID

	rec = s.do(t, http.MethodPost, "/wellness/events/"+eventID+"/register", first.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 1, decode[wellness.EventResponse](t, rec).Data.CurrentParticipants)

	rec = s.do(t, http.MethodPost, "/wellness/events/"+eventID+"/register", first.Token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, "/wellness/events/"+eventID+"/register", second.Token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodGet, "/wellness/my-events", first.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]json.RawMessage](t, rec).Data, 1)

	rec = s.do(t, http.MethodPost, "/wellness/events/"+eventID+"/unregister", first.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodPost, "/wellness/events/"+eventID+"/register", second.Token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	assert.NotEmpty(t, s.mailer.Sent())
}

func TestRouter_AdminStats(t *testing.T) {
	s := newTestServer(t, nil)
	employee := s.register(t, "Jane Doe", "jane@example.com", "")
	admin := s.register(t, "Boss", "boss@example.com", "Admin")

	rec := s.do(t, http.MethodPost, "/leaves", employee.Token, leave.ApplyLeaveRequest{
		StartDate:   tomorrow(0),
		EndDate:     tomorrow(0),
		LeaveType:   "Sick",
		Description: "Dentist",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodGet, "/admin/stats", admin.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	stats := decode[dashboard.StatsResponse](t, rec).Data
	assert.EqualValues(t, 1, stats.Leaves.Pending)
	assert.EqualValues(t, 2, stats.Users.Total)
	assert.EqualValues(t, 1, stats.Users.Admins)

	rec = s.do(t, http.MethodGet, "/admin/activities", admin.Token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	s := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec = httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
}

func TestRouter_AuthRateLimit(t *testing.T) {
	s := newTestServer(t, middleware.NewRateLimiter(0.01, 2))
	login := auth.LoginRequest{Email: "nobody@example.com", Password: "password123"}

	for i := 0; i < 2; i++ {
		rec := s.do(t, http.MethodPost, "/auth/login", "", login)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	}

	rec := s.do(t, http.MethodPost, "/auth/login", "", login)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.Equal(t, "RATE_LIMITED", decode[json.RawMessage](t, rec).Error.Code)
}

func TestRouter_GoogleDisabled(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodGet, "/auth/google", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_NotificationStream(t *testing.T) {
	s := newTestServer(t, nil)
	employee := s.register(t, "Jane Doe", "jane@example.com", "")
	admin := s.register(t, "Boss", "boss@example.com", "Admin")

	srv := httptest.NewServer(s.router)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+handlerTestPrefix+"/notifications/stream?jwt="+employee.Token, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	assert.Equal(t, "connected", readEventName(t, reader))

	rec := s.do(t, http.MethodPost, "/balances/request-increase", employee.Token, balance.IncreaseRequest{
		LeaveType:       "Vacation",
		RequestedAmount: 2,
		Reason:          "Wedding",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	requestID := decode[balance.RequestResponse](t, rec).Data.ID

	rec = s.do(t, http.MethodPut, "/balance-requests/update-status/"+requestID, admin.Token, balance.UpdateRequestStatusRequest{Status: "Rejected"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	assert.Equal(t, "notification", readEventName(t, reader))
}

// readEventName returns the event name of the next SSE frame, skipping pings.
func readEventName(t *testing.T, r *bufio.Reader) string {
	t.Helper()
	for {
		line, err := r.ReadString('\n')
		require.NoError(t, err)
		name, ok := strings.CutPrefix(strings.TrimSpace(line), "event: ")
		if ok && name != "ping" {
			return name
		}
	}
}

func TestRouter_StreamRejectsMissingToken(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodGet, "/notifications/stream", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
