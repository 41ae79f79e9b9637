package jwt

import (
	"errors"
	"net/http"
	"time"

	"github.com/cmlabs-hris/trainee-attendance-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
	TypeSSE     = "sse"

	sseTokenTTL = 5 * time.Minute
)

var ErrWrongTokenType = errors.New("unexpected token type")

// AccessToken is a freshly signed access token together with its revocation handle.
type AccessToken struct {
	Token     string
	ID        string
	ExpiresAt int64
}

type Service interface {
	GenerateAccessToken(u user.User) (AccessToken, error)
	GenerateRefreshToken(userID string) (token string, expiresAt int64, err error)
	ParseRefreshToken(tokenString string) (userID string, err error)
	GenerateSSEToken(userID string, role user.Role) (token string, expiresIn int, err error)
	ValidateSSEToken(tokenString string) (userID string, role user.Role, err error)
	JWTAuth() *jwtauth.JWTAuth
	RefreshTokenCookie(token string, expiresAt int64) *http.Cookie
	ClearRefreshTokenCookie() *http.Cookie
}

type JWTService struct {
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
	secureCookie    bool
	tokenAuth       *jwtauth.JWTAuth
	now             func() time.Time
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenTTL, refreshTokenTTL time.Duration, secureCookie bool) *JWTService {
	return &JWTService{
		accessTokenTTL:  accessTokenTTL,
		refreshTokenTTL: refreshTokenTTL,
		secureCookie:    secureCookie,
		tokenAuth:       jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		now:             time.Now,
	}
}

func (j *JWTService) GenerateAccessToken(u user.User) (AccessToken, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return AccessToken{}, err
	}
	now := j.now()
	expiresAt := now.Add(j.accessTokenTTL).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"jti":     id.String(),
		"user_id": u.ID,
		"email":   u.Email,
		"role":    string(u.Role),
		"type":    TypeAccess,
		"iat":     now.Unix(),
		"exp":     expiresAt,
	})
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: tokenString, ID: id.String(), ExpiresAt: expiresAt}, nil
}

func (j *JWTService) GenerateRefreshToken(userID string) (token string, expiresAt int64, err error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", 0, err
	}
	expiresAt = j.now().Add(j.refreshTokenTTL).Unix()
	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"jti":     id.String(),
		"user_id": userID,
		"exp":     expiresAt,
		"type":    TypeRefresh,
	})
	return tokenString, expiresAt, err
}

// ParseRefreshToken verifies signature, expiry and type of a refresh token.
func (j *JWTService) ParseRefreshToken(tokenString string) (string, error) {
	token, err := jwtauth.VerifyToken(j.tokenAuth, tokenString)
	if err != nil {
		return "", err
	}
	if tokenType, _ := token.Get("type"); tokenType != TypeRefresh {
		return "", ErrWrongTokenType
	}
	userID, _ := token.Get("user_id")
	id, ok := userID.(string)
	if !ok || id == "" {
		return "", jwt.ErrInvalidJWT()
	}
	return id, nil
}

func (j *JWTService) RefreshTokenCookie(token string, expiresAt int64) *http.Cookie {
	return &http.Cookie{
		Name:     "refresh_token",
		Value:    token,
		Path:     "/api/v1/auth",
		Expires:  time.Unix(expiresAt, 0),
		HttpOnly: true,
		Secure:   j.secureCookie,
		SameSite: http.SameSiteStrictMode,
	}
}

func (j *JWTService) ClearRefreshTokenCookie() *http.Cookie {
	return &http.Cookie{
		Name:     "refresh_token",
		Value:    "",
		Path:     "/api/v1/auth",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   j.secureCookie,
		SameSite: http.SameSiteStrictMode,
	}
}

// GenerateSSEToken generates a short-lived token for EventSource clients, which cannot set headers.
func (j *JWTService) GenerateSSEToken(userID string, role user.Role) (token string, expiresIn int, err error) {
	expiresAt := j.now().Add(sseTokenTTL).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"user_id": userID,
		"role":    string(role),
		"type":    TypeSSE,
		"exp":     expiresAt,
	})
	if err != nil {
		return "", 0, err
	}

	return tokenString, int(sseTokenTTL.Seconds()), nil
}

// ValidateSSEToken validates an SSE token and returns its subject.
func (j *JWTService) ValidateSSEToken(tokenString string) (string, user.Role, error) {
	token, err := jwtauth.VerifyToken(j.tokenAuth, tokenString)
	if err != nil {
		return "", "", err
	}

	if tokenType, ok := token.Get("type"); !ok || tokenType != TypeSSE {
		return "", "", ErrWrongTokenType
	}

	userIDVal, _ := token.Get("user_id")
	userID, ok := userIDVal.(string)
	if !ok || userID == "" {
		return "", "", jwt.ErrInvalidJWT()
	}
	roleVal, _ := token.Get("role")
	role, _ := roleVal.(string)

	return userID, user.Role(role), nil
}
