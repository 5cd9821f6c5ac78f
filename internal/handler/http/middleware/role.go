package middleware

import (
	"net/http"
	"slices"

	"github.com/leavehub/leave-backend-go/internal/domain/auth"
	"github.com/leavehub/leave-backend-go/internal/domain/user"
	"github.com/leavehub/leave-backend-go/internal/handler/http/response"
)

// RequireRole admits only users holding one of roles. It must run after Authenticate.
func RequireRole(roles ...user.Role) func(http.Handler) http.Handler {
	denied := user.ErrInsufficientPermissions
	if len(roles) == 1 {
		switch roles[0] {
		case user.RoleAdmin:
			denied = user.ErrAdminAccessRequired
		case user.RoleEmployee:
			denied = user.ErrEmployeeAccessRequired
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := CurrentUser(r.Context())
			if !ok {
				response.HandleError(w, auth.ErrMissingToken)
				return
			}

			if !slices.Contains(roles, u.Role) {
				response.HandleError(w, denied)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin requires admin role
func RequireAdmin(next http.Handler) http.Handler {
	return RequireRole(user.RoleAdmin)(next)
}
