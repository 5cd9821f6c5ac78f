package user

import "time"

type Role string

const (
	RoleEmployee Role = "Employee"
	RoleAdmin    Role = "Admin"
)

// IsValid reports whether r is a known role.
func (r Role) IsValid() bool {
	return r == RoleEmployee || r == RoleAdmin
}

type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash *string
	Role         Role
	GoogleID     *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin checks if user has the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// HasPassword is false for accounts created through Google sign-in.
func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}
