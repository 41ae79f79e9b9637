package auth

import (
	"context"
	"time"

	"github.com/cmlabs-hris/trainee-attendance-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
)

// Claims is the authenticated session carried by an access token.
type Claims struct {
	UserID    string
	Email     string
	Role      user.Role
	TokenID   string
	ExpiresAt time.Time
}

// ClaimsFromContext reads the access token verified by jwtauth.Verifier.
func ClaimsFromContext(ctx context.Context) (Claims, error) {
	token, claims, err := jwtauth.FromContext(ctx)
	if err != nil || token == nil {
		return Claims{}, ErrMissingClaims
	}

	userID, _ := claims["user_id"].(string)
	role, _ := claims["role"].(string)
	if userID == "" || role == "" {
		return Claims{}, ErrMissingClaims
	}
	email, _ := claims["email"].(string)

	return Claims{
		UserID:    userID,
		Email:     email,
		Role:      user.Role(role),
		TokenID:   token.JwtID(),
		ExpiresAt: token.Expiration(),
	}, nil
}
