package auth

import "context"

type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (AuthResponse, error)
	Login(ctx context.Context, req LoginRequest) (AuthResponse, error)
	LoginWithGoogle(ctx context.Context, profile GoogleProfile) (AuthResponse, error)
}
