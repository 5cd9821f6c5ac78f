package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/leavehub/leave-backend-go/internal/domain/auth"
	"github.com/leavehub/leave-backend-go/internal/domain/balance"
	"github.com/leavehub/leave-backend-go/internal/domain/leave"
	"github.com/leavehub/leave-backend-go/internal/domain/notice"
	"github.com/leavehub/leave-backend-go/internal/domain/notification"
	"github.com/leavehub/leave-backend-go/internal/domain/user"
	"github.com/leavehub/leave-backend-go/internal/domain/wellness"
	"github.com/leavehub/leave-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	var shortfall *balance.InsufficientBalanceError
	if errors.As(err, &shortfall) {
		BadRequest(w, shortfall.Error(), map[string]interface{}{
			"leaveType": shortfall.LeaveType,
			"available": shortfall.Available,
			"requested": shortfall.Requested,
			"shortfall": shortfall.Shortfall(),
		})
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrGoogleEmailNotVerified),
		errors.Is(err, auth.ErrGoogleAccessDenied),
		errors.Is(err, auth.ErrStateMismatch):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenExpired),
		errors.Is(err, auth.ErrMissingToken):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrGoogleSignInDisabled):
		NotFound(w, err.Error())

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrAdminAccessRequired),
		errors.Is(err, user.ErrEmployeeAccessRequired),
		errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, err.Error())
	case errors.Is(err, user.ErrEmailAlreadyExists),
		errors.Is(err, user.ErrCannotDeleteSelf),
		errors.Is(err, user.ErrCannotUpdateSelf):
		BadRequest(w, err.Error(), nil)

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrLeaveAlreadyProcessed),
		errors.Is(err, leave.ErrStartDateInPast),
		errors.Is(err, leave.ErrEndBeforeStart):
		BadRequest(w, err.Error(), nil)

	// Balance domain errors
	case errors.Is(err, balance.ErrBalanceNotFound):
		NotFound(w, "Balance not found")
	case errors.Is(err, balance.ErrBalanceRequestNotFound):
		NotFound(w, "Balance request not found")
	case errors.Is(err, balance.ErrInvalidLeaveType),
		errors.Is(err, balance.ErrNegativeBalance),
		errors.Is(err, balance.ErrInvalidAmount),
		errors.Is(err, balance.ErrInsufficientBalance),
		errors.Is(err, balance.ErrBalanceRequestAlreadyProcessed):
		BadRequest(w, err.Error(), nil)

	// Notice and notification errors
	case errors.Is(err, notice.ErrNoticeNotFound):
		NotFound(w, "Notice not found")
	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, "Notification not found")
	case errors.Is(err, notification.ErrInvalidNotificationType):
		BadRequest(w, err.Error(), nil)

	// Wellness domain errors
	case errors.Is(err, wellness.ErrArticleNotFound):
		NotFound(w, "Article not found")
	case errors.Is(err, wellness.ErrEventNotFound):
		NotFound(w, "Event not found")
	case errors.Is(err, wellness.ErrEventInPast),
		errors.Is(err, wellness.ErrAlreadyRegistered),
		errors.Is(err, wellness.ErrEventFull),
		errors.Is(err, wellness.ErrNotRegistered),
		errors.Is(err, wellness.ErrAlreadyAttended):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred", err)
	}
}
