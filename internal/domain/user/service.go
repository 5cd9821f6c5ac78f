package user

import "context"

type UserService interface {
	GetProfile(ctx context.Context, userID string) (UserResponse, error)
	UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest) (UserResponse, error)
	List(ctx context.Context) ([]UserResponse, error)
	GetByID(ctx context.Context, id string) (UserResponse, error)
	Update(ctx context.Context, actorID string, id string, req UpdateUserRequest) (UserResponse, error)
	Delete(ctx context.Context, actorID string, id string) error
}
