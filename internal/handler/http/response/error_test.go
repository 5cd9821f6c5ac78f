package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/leavehub/leave-backend-go/internal/domain/auth"
	"github.com/leavehub/leave-backend-go/internal/domain/balance"
	"github.com/leavehub/leave-backend-go/internal/domain/leave"
	"github.com/leavehub/leave-backend-go/internal/domain/notice"
	"github.com/leavehub/leave-backend-go/internal/domain/notification"
	"github.com/leavehub/leave-backend-go/internal/domain/user"
	"github.com/leavehub/leave-backend-go/internal/domain/wellness"
	"github.com/leavehub/leave-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestHandleError_StatusMapping(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantCode   string
	}{
		{auth.ErrInvalidCredentials, http.StatusBadRequest, "BAD_REQUEST"},
		{auth.ErrTokenExpired, http.StatusUnauthorized, "UNAUTHORIZED"},
		{auth.ErrMissingToken, http.StatusUnauthorized, "UNAUTHORIZED"},
		{auth.ErrGoogleSignInDisabled, http.StatusNotFound, "NOT_FOUND"},
		{user.ErrUserNotFound, http.StatusNotFound, "NOT_FOUND"},
		{user.ErrAdminAccessRequired, http.StatusForbidden, "FORBIDDEN"},
		{user.ErrEmailAlreadyExists, http.StatusBadRequest, "BAD_REQUEST"},
		{leave.ErrLeaveNotFound, http.StatusNotFound, "NOT_FOUND"},
		{leave.ErrLeaveAlreadyProcessed, http.StatusBadRequest, "BAD_REQUEST"},
		{balance.ErrBalanceRequestNotFound, http.StatusNotFound, "NOT_FOUND"},
		{balance.ErrNegativeBalance, http.StatusBadRequest, "BAD_REQUEST"},
		{notice.ErrNoticeNotFound, http.StatusNotFound, "NOT_FOUND"},
		{notification.ErrNotificationNotFound, http.StatusNotFound, "NOT_FOUND"},
		{wellness.ErrEventFull, http.StatusBadRequest, "BAD_REQUEST"},
		{wellness.ErrArticleNotFound, http.StatusNotFound, "NOT_FOUND"},
		{wellness.ErrAlreadyAttended, http.StatusBadRequest, "BAD_REQUEST"},
		{user.ErrEmployeeAccessRequired, http.StatusForbidden, "FORBIDDEN"},
		{fmt.Errorf("update leave: %w", leave.ErrLeaveNotFound), http.StatusNotFound, "NOT_FOUND"},
		{errors.New("connection reset"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleError(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			resp := decodeResponse(t, rec)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
		})
	}
}

func TestHandleError_ValidationDetails(t *testing.T) {
	var errs validator.ValidationErrors
	errs.Add("email", "email is required")
	errs.Add("password", "password is required")

	rec := httptest.NewRecorder()
	HandleError(rec, errs.Err())

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	assert.Equal(t, "email is required", resp.Error.Details["email"])
	assert.Equal(t, "password is required", resp.Error.Details["password"])
}

func TestHandleError_InsufficientBalance(t *testing.T) {
	err := fmt.Errorf("apply leave: %w", &balance.InsufficientBalanceError{
		LeaveType: leave.TypeVacation,
		Available: 2,
		Requested: 5,
	})

	rec := httptest.NewRecorder()
	HandleError(rec, err)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Contains(t, resp.Error.Message, "insufficient Vacation balance")
	assert.Equal(t, "Vacation", resp.Error.Details["leaveType"])
	assert.EqualValues(t, 2, resp.Error.Details["available"])
	assert.EqualValues(t, 5, resp.Error.Details["requested"])
	assert.EqualValues(t, 3, resp.Error.Details["shortfall"])
}

func TestInternalServerError_DebugDetails(t *testing.T) {
	t.Cleanup(func() { SetDebug(false) })

	rec := httptest.NewRecorder()
	InternalServerError(rec, "An unexpected error occurred", errors.New("pool exhausted"))
	assert.NotContains(t, rec.Body.String(), "pool exhausted")

	SetDebug(true)
	rec = httptest.NewRecorder()
	InternalServerError(rec, "An unexpected error occurred", errors.New("pool exhausted"))
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "pool exhausted", resp.Error.Details["debug"])
}

func TestTooManyRequests(t *testing.T) {
	rec := httptest.NewRecorder()
	TooManyRequests(rec, 7)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "7", rec.Header().Get("Retry-After"))
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}
