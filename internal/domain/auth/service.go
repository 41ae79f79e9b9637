package auth

import (
	"context"
)

type AuthService interface {
	Login(ctx context.Context, req LoginRequest, session SessionTrackingRequest) (TokenResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (AccessTokenResponse, error)

	// Logout revokes the refresh token and blacklists the access token of the caller.
	Logout(ctx context.Context, refreshToken string) error

	Me(ctx context.Context) (MeResponse, error)
	IssueSSEToken(ctx context.Context) (SSETokenResponse, error)
}
