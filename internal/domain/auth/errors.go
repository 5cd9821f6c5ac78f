package auth

import "errors"

var (
	ErrInvalidCredentials     = errors.New("invalid email or password")
	ErrInvalidToken           = errors.New("invalid or expired token")
	ErrTokenExpired           = errors.New("token has expired")
	ErrMissingToken           = errors.New("no token, authorization denied")
	ErrGoogleSignInDisabled   = errors.New("google sign-in is not configured")
	ErrGoogleEmailNotVerified = errors.New("google account email is not verified")
	ErrGoogleAccessDenied     = errors.New("google access denied by user")
	ErrStateMismatch          = errors.New("oauth state mismatch")
)
