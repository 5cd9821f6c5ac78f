package user

import "context"

type UserRepository interface {
	Create(ctx context.Context, newUser User) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	// List returns all users, newest first.
	List(ctx context.Context) ([]User, error)
	ListByRole(ctx context.Context, role Role) ([]User, error)
	ListRecent(ctx context.Context, limit int) ([]User, error)
	Update(ctx context.Context, u User) (User, error)
	LinkGoogleAccount(ctx context.Context, id string, googleID string) error
	Delete(ctx context.Context, id string) error
}
