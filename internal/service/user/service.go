package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/trainee-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/trainee-attendance-go/internal/pkg/database"
	"github.com/cmlabs-hris/trainee-attendance-go/internal/pkg/validator"
	"github.com/cmlabs-hris/trainee-attendance-go/internal/repository/postgresql"
	"golang.org/x/crypto/bcrypt"
)

type UserServiceImpl struct {
	tx            database.Transactor
	userRepo      user.UserRepository
	refreshTokens postgresql.RefreshTokenRepository
}

func NewUserService(tx database.Transactor, userRepo user.UserRepository, refreshTokens postgresql.RefreshTokenRepository) user.UserService {
	return &UserServiceImpl{
		tx:            tx,
		userRepo:      userRepo,
		refreshTokens: refreshTokens,
	}
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Create implements user.UserService.
func (s *UserServiceImpl) Create(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return user.UserResponse{}, err
	}

	created, err := s.userRepo.Create(ctx, user.User{
		Email:        req.Email,
		FullName:     req.FullName,
		PasswordHash: hash,
		Role:         user.Role(req.Role),
		IsActive:     true,
	})
	if err != nil {
		return user.UserResponse{}, err
	}

	slog.Info("user created", "user_id", created.ID, "role", created.Role)
	return user.NewUserResponse(created), nil
}

// List implements user.UserService.
func (s *UserServiceImpl) List(ctx context.Context) ([]user.UserResponse, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	responses := make([]user.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, user.NewUserResponse(u))
	}
	return responses, nil
}

// SetActive implements user.UserService. Deactivating a user also revokes their refresh tokens.
func (s *UserServiceImpl) SetActive(ctx context.Context, id string, active bool) error {
	if !validator.IsValidUUID(id) {
		return validator.ValidationErrors{{Field: "id", Message: "id must be a valid UUID"}}
	}

	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.userRepo.SetActive(ctx, id, active); err != nil {
			return err
		}
		if active {
			return nil
		}
		revoked, err := s.refreshTokens.RevokeAllForUser(ctx, id)
		if err != nil {
			return err
		}
		slog.Info("user deactivated", "user_id", id, "revoked_refresh_tokens", revoked)
		return nil
	})
}

// EnsureAdmin implements user.UserService.
func (s *UserServiceImpl) EnsureAdmin(ctx context.Context, email, password string) (bool, error) {
	count, err := s.userRepo.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	_, err = s.Create(ctx, user.CreateUserRequest{
		Email:    email,
		FullName: "Administrator",
		Password: password,
		Role:     string(user.RoleAdmin),
	})
	if errors.Is(err, user.ErrUserEmailExists) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
