package user

import "errors"

var (
	ErrUserNotFound            = errors.New("user not found")
	ErrEmailAlreadyExists      = errors.New("user already exists with this email")
	ErrCannotDeleteSelf        = errors.New("cannot delete your own account")
	ErrCannotUpdateSelf        = errors.New("cannot update your own account from this interface")
	ErrAdminAccessRequired     = errors.New("access denied: admin role required")
	ErrEmployeeAccessRequired  = errors.New("access denied: employee role required")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
)
