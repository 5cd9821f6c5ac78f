package auth

import (
	"strings"

	"github.com/leavehub/leave-backend-go/internal/domain/user"
	"github.com/leavehub/leave-backend-go/internal/pkg/validator"
)

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

func (r *RegisterRequest) Validate() error {
	var errs validator.ValidationErrors

	// Name
	if validator.IsEmpty(r.Name) {
		errs.Add("name", "name is required")
	} else if validator.ExceedsLength(r.Name, 255) {
		errs.Add("name", "name must not exceed 255 characters")
	}

	// Email
	email := strings.TrimSpace(r.Email)
	if validator.IsEmpty(email) {
		errs.Add("email", "email is required")
	} else if len(email) > 254 {
		errs.Add("email", "email must not exceed 254 characters")
	} else if !validator.IsValidEmail(email) {
		errs.Add("email", "email must be a valid email address, e.g. user@example.com")
	}

	// Password
	if validator.IsEmpty(r.Password) {
		errs.Add("password", "password is required")
	} else if len(r.Password) < 6 {
		errs.Add("password", "password must be at least 6 characters long")
	} else if len(r.Password) > 72 {
		errs.Add("password", "password must not exceed 72 characters")
	}

	if r.Role != "" && !user.Role(r.Role).IsValid() {
		errs.Add("role", "role must be one of: Employee, Admin")
	}

	return errs.Err()
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Email) {
		errs.Add("email", "email is required")
	}
	if validator.IsEmpty(r.Password) {
		errs.Add("password", "password is required")
	}

	return errs.Err()
}

// AuthResponse is returned by register, login and Google sign-in.
type AuthResponse struct {
	Token     string            `json:"token"`
	ExpiresAt int64             `json:"expiresAt"`
	User      user.UserResponse `json:"user"`
}

// GoogleProfile is the subset of the Google userinfo payload used for sign-in.
type GoogleProfile struct {
	GoogleID      string
	Email         string
	Name          string
	VerifiedEmail bool
}
