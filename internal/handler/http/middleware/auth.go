package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/leavehub/leave-backend-go/internal/domain/auth"
	"github.com/leavehub/leave-backend-go/internal/domain/user"
	"github.com/leavehub/leave-backend-go/internal/handler/http/response"
	"github.com/leavehub/leave-backend-go/internal/pkg/jwt"
)

type userContextKey struct{}

// WithUser stores the authenticated user on ctx.
func WithUser(ctx context.Context, u user.User) context.Context {
	return context.WithValue(ctx, userContextKey{}, u)
}

// CurrentUser returns the user loaded by Authenticate.
func CurrentUser(ctx context.Context) (user.User, bool) {
	u, ok := ctx.Value(userContextKey{}).(user.User)
	return u, ok
}

// Authenticate verifies the access token and loads its user. Tokens are read
// from the Authorization header unless other finders are given.
func Authenticate(jwtService jwt.Service, users user.UserRepository, findTokenFns ...func(r *http.Request) string) func(http.Handler) http.Handler {
	if len(findTokenFns) == 0 {
		findTokenFns = []func(r *http.Request) string{jwtauth.TokenFromHeader}
	}
	verify := jwtauth.Verify(jwtService.JWTAuth(), findTokenFns...)

	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil || token == nil {
				response.HandleError(w, tokenError(err))
				return
			}

			userID, err := jwtService.UserIDFromClaims(claims)
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			u, err := users.GetByID(r.Context(), userID)
			if err != nil {
				if errors.Is(err, user.ErrUserNotFound) {
					response.Unauthorized(w, "User not found")
					return
				}
				slog.Error("Authenticate user lookup error", "user_id", userID, "error", err)
				response.HandleError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u)))
		}
		return verify(http.HandlerFunc(hfn))
	}
}

func tokenError(err error) error {
	switch {
	case err == nil, errors.Is(err, jwtauth.ErrNoTokenFound):
		return auth.ErrMissingToken
	case errors.Is(err, jwtauth.ErrExpired):
		return auth.ErrTokenExpired
	default:
		return auth.ErrInvalidToken
	}
}
