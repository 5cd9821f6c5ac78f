package user

import (
	"strings"
	"time"

	"github.com/leavehub/leave-backend-go/internal/pkg/validator"
)

// UserResponse is the public projection of a user; the password hash never leaves the service layer.
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func ToResponse(u User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func ToResponses(users []User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, ToResponse(u))
	}
	return out
}

// NormalizeEmail lower-cases and trims an address before storage or lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// UpdateProfileRequest changes the caller's own name or email. Empty fields are left untouched.
type UpdateProfileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (r *UpdateProfileRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.ExceedsLength(r.Name, 255) {
		errs.Add("name", "name must not exceed 255 characters")
	}
	if !validator.IsEmpty(r.Email) && !validator.IsValidEmail(strings.TrimSpace(r.Email)) {
		errs.Add("email", "email must be a valid email address")
	}

	return errs.Err()
}

// UpdateUserRequest is the admin edit of another account.
type UpdateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (r *UpdateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.ExceedsLength(r.Name, 255) {
		errs.Add("name", "name must not exceed 255 characters")
	}
	if !validator.IsEmpty(r.Email) && !validator.IsValidEmail(strings.TrimSpace(r.Email)) {
		errs.Add("email", "email must be a valid email address")
	}
	if r.Role != "" && !Role(r.Role).IsValid() {
		errs.Add("role", "role must be one of: Employee, Admin")
	}

	return errs.Err()
}
