package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/leavehub/leave-backend-go/internal/domain/user"
)

type UserServiceImpl struct {
	userRepo user.UserRepository
}

func NewUserService(userRepo user.UserRepository) user.UserService {
	return &UserServiceImpl{userRepo: userRepo}
}

// GetProfile implements user.UserService.
func (s *UserServiceImpl) GetProfile(ctx context.Context, userID string) (user.UserResponse, error) {
	return s.GetByID(ctx, userID)
}

// UpdateProfile implements user.UserService.
func (s *UserServiceImpl) UpdateProfile(ctx context.Context, userID string, req user.UpdateProfileRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return user.UserResponse{}, err
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		u.Name = name
	}
	if email := user.NormalizeEmail(req.Email); email != "" {
		u.Email = email
	}

	updated, err := s.userRepo.Update(ctx, u)
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.ToResponse(updated), nil
}

// List implements user.UserService.
func (s *UserServiceImpl) List(ctx context.Context) ([]user.UserResponse, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return user.ToResponses(users), nil
}

// GetByID implements user.UserService.
func (s *UserServiceImpl) GetByID(ctx context.Context, id string) (user.UserResponse, error) {
	u, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.ToResponse(u), nil
}

// Update implements user.UserService.
func (s *UserServiceImpl) Update(ctx context.Context, actorID string, id string, req user.UpdateUserRequest) (user.UserResponse, error) {
	if actorID == id {
		return user.UserResponse{}, user.ErrCannotUpdateSelf
	}
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	u, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return user.UserResponse{}, err
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		u.Name = name
	}
	if email := user.NormalizeEmail(req.Email); email != "" {
		u.Email = email
	}
	if req.Role != "" {
		u.Role = user.Role(req.Role)
	}

	updated, err := s.userRepo.Update(ctx, u)
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.ToResponse(updated), nil
}

// Delete implements user.UserService.
func (s *UserServiceImpl) Delete(ctx context.Context, actorID string, id string) error {
	if actorID == id {
		return user.ErrCannotDeleteSelf
	}
	return s.userRepo.Delete(ctx, id)
}
