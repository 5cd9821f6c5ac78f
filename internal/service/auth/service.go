package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/leavehub/leave-backend-go/internal/domain/auth"
	"github.com/leavehub/leave-backend-go/internal/domain/balance"
	"github.com/leavehub/leave-backend-go/internal/domain/user"
	"github.com/leavehub/leave-backend-go/internal/pkg/database"
	"github.com/leavehub/leave-backend-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	tx          database.Transactor
	userRepo    user.UserRepository
	balanceRepo balance.BalanceRepository
	jwtService  jwt.Service
}

func NewAuthService(tx database.Transactor, userRepo user.UserRepository, balanceRepo balance.BalanceRepository, jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		tx:          tx,
		userRepo:    userRepo,
		balanceRepo: balanceRepo,
		jwtService:  jwtService,
	}
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Register implements auth.AuthService.
func (a *AuthServiceImpl) Register(ctx context.Context, req auth.RegisterRequest) (auth.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.AuthResponse{}, err
	}

	hashed, err := hashPassword(req.Password)
	if err != nil {
		return auth.AuthResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	role := user.RoleEmployee
	if req.Role != "" {
		role = user.Role(req.Role)
	}

	newUser := user.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        user.NormalizeEmail(req.Email),
		PasswordHash: &hashed,
		Role:         role,
	}

	created, err := a.createWithDefaults(ctx, newUser)
	if err != nil {
		return auth.AuthResponse{}, err
	}

	return a.issue(created)
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.AuthResponse{}, err
	}

	userData, err := a.userRepo.GetByEmail(ctx, user.NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.AuthResponse{}, auth.ErrInvalidCredentials
		}
		return auth.AuthResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if !userData.HasPassword() {
		return auth.AuthResponse{}, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*userData.PasswordHash), []byte(req.Password)); err != nil {
		return auth.AuthResponse{}, auth.ErrInvalidCredentials
	}

	// Accounts created before balances existed get their defaults here
	if err := a.balanceRepo.InitializeDefaults(ctx, userData.ID); err != nil {
		slog.Warn("Failed to backfill default balances on login", "user_id", userData.ID, "error", err)
	}

	return a.issue(userData)
}

// LoginWithGoogle implements auth.AuthService.
func (a *AuthServiceImpl) LoginWithGoogle(ctx context.Context, profile auth.GoogleProfile) (auth.AuthResponse, error) {
	if !profile.VerifiedEmail {
		return auth.AuthResponse{}, auth.ErrGoogleEmailNotVerified
	}

	email := user.NormalizeEmail(profile.Email)
	existing, err := a.userRepo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if existing.GoogleID == nil || *existing.GoogleID != profile.GoogleID {
			if err := a.userRepo.LinkGoogleAccount(ctx, existing.ID, profile.GoogleID); err != nil {
				return auth.AuthResponse{}, fmt.Errorf("failed to link google account: %w", err)
			}
			existing.GoogleID = &profile.GoogleID
		}
		if err := a.balanceRepo.InitializeDefaults(ctx, existing.ID); err != nil {
			slog.Warn("Failed to backfill default balances on google login", "user_id", existing.ID, "error", err)
		}
		return a.issue(existing)
	case !errors.Is(err, user.ErrUserNotFound):
		return auth.AuthResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	name := strings.TrimSpace(profile.Name)
	if name == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}

	googleID := profile.GoogleID
	created, err := a.createWithDefaults(ctx, user.User{
		Name:     name,
		Email:    email,
		Role:     user.RoleEmployee,
		GoogleID: &googleID,
	})
	if err != nil {
		return auth.AuthResponse{}, err
	}

	slog.Info("Created user from google sign-in", "user_id", created.ID)
	return a.issue(created)
}

// createWithDefaults inserts the user and its default balances atomically.
func (a *AuthServiceImpl) createWithDefaults(ctx context.Context, newUser user.User) (user.User, error) {
	var created user.User
	err := a.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		created, err = a.userRepo.Create(ctx, newUser)
		if err != nil {
			return err
		}
		if err := a.balanceRepo.InitializeDefaults(ctx, created.ID); err != nil {
			return fmt.Errorf("failed to initialize balances: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, user.ErrEmailAlreadyExists) {
			return user.User{}, err
		}
		return user.User{}, fmt.Errorf("failed to create user: %w", err)
	}
	return created, nil
}

func (a *AuthServiceImpl) issue(u user.User) (auth.AuthResponse, error) {
	token, expiresAt, err := a.jwtService.GenerateAccessToken(u.ID, u.Email, u.Role)
	if err != nil {
		return auth.AuthResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}
	return auth.AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user.ToResponse(u),
	}, nil
}
