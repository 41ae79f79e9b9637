package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/trainee-attendance-go/internal/domain/auth"
	"github.com/cmlabs-hris/trainee-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/trainee-attendance-go/internal/pkg/database"
	"github.com/cmlabs-hris/trainee-attendance-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/trainee-attendance-go/internal/pkg/tokenstore"
	"github.com/cmlabs-hris/trainee-attendance-go/internal/repository/postgresql"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	tx            database.Transactor
	userRepo      user.UserRepository
	refreshTokens postgresql.RefreshTokenRepository
	jwtService    jwt.Service
	revoked       tokenstore.Store
}

func NewAuthService(tx database.Transactor, userRepo user.UserRepository, refreshTokens postgresql.RefreshTokenRepository, jwtService jwt.Service, revoked tokenstore.Store) auth.AuthService {
	return &AuthServiceImpl{
		tx:            tx,
		userRepo:      userRepo,
		refreshTokens: refreshTokens,
		jwtService:    jwtService,
		revoked:       revoked,
	}
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest, session auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	userData, err := a.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(userData.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	if !userData.IsActive {
		return auth.TokenResponse{}, user.ErrUserInactive
	}

	access, err := a.jwtService.GenerateAccessToken(userData)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}
	refresh, refreshExpiresAt, err := a.jwtService.GenerateRefreshToken(userData.ID)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create refresh token: %w", err)
	}

	err = a.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := a.refreshTokens.Create(ctx, userData.ID, refresh, time.Unix(refreshExpiresAt, 0), session); err != nil {
			return fmt.Errorf("failed to save refresh token to database: %w", err)
		}
		return a.userRepo.UpdateLastLogin(ctx, userData.ID)
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}

	slog.Info("user logged in", "user_id", userData.ID, "role", userData.Role, "ip", session.IPAddress)

	return auth.TokenResponse{
		AccessToken:           access.Token,
		AccessTokenExpiresIn:  access.ExpiresAt,
		RefreshToken:          refresh,
		RefreshTokenExpiresIn: refreshExpiresAt,
		User:                  user.NewUserResponse(userData),
	}, nil
}

// RefreshToken implements auth.AuthService.
func (a *AuthServiceImpl) RefreshToken(ctx context.Context, refreshToken string) (auth.AccessTokenResponse, error) {
	userID, err := a.jwtService.ParseRefreshToken(refreshToken)
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}

	isRevoked, err := a.refreshTokens.IsRevoked(ctx, refreshToken)
	if err != nil {
		return auth.AccessTokenResponse{}, err
	}
	if isRevoked {
		return auth.AccessTokenResponse{}, auth.ErrRefreshTokenRevoked
	}

	userData, err := a.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.AccessTokenResponse{}, auth.ErrInvalidToken
		}
		return auth.AccessTokenResponse{}, err
	}
	if !userData.IsActive {
		return auth.AccessTokenResponse{}, user.ErrUserInactive
	}

	access, err := a.jwtService.GenerateAccessToken(userData)
	if err != nil {
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	return auth.AccessTokenResponse{
		AccessToken:          access.Token,
		AccessTokenExpiresIn: access.ExpiresAt,
	}, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	claims, err := auth.ClaimsFromContext(ctx)
	if err != nil {
		return err
	}

	if err := a.revoked.Revoke(ctx, claims.TokenID, claims.ExpiresAt); err != nil {
		return fmt.Errorf("failed to blacklist access token: %w", err)
	}

	if refreshToken != "" {
		if err := a.refreshTokens.Revoke(ctx, refreshToken); err != nil {
			return err
		}
	}

	slog.Info("user logged out", "user_id", claims.UserID)
	return nil
}

// Me implements auth.AuthService.
func (a *AuthServiceImpl) Me(ctx context.Context) (auth.MeResponse, error) {
	claims, err := auth.ClaimsFromContext(ctx)
	if err != nil {
		return auth.MeResponse{}, err
	}

	userData, err := a.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return auth.MeResponse{}, err
	}

	permissions := user.RolePermissions[userData.Role]
	if permissions == nil {
		permissions = []user.Permission{}
	}

	return auth.MeResponse{
		UserResponse: user.NewUserResponse(userData),
		Permissions:  permissions,
	}, nil
}

// IssueSSEToken implements auth.AuthService.
func (a *AuthServiceImpl) IssueSSEToken(ctx context.Context) (auth.SSETokenResponse, error) {
	claims, err := auth.ClaimsFromContext(ctx)
	if err != nil {
		return auth.SSETokenResponse{}, err
	}

	token, expiresIn, err := a.jwtService.GenerateSSEToken(claims.UserID, claims.Role)
	if err != nil {
		return auth.SSETokenResponse{}, fmt.Errorf("failed to generate sse token: %w", err)
	}
	return auth.SSETokenResponse{Token: token, ExpiresIn: expiresIn}, nil
}
