package auth

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/trainee-attendance-go/internal/domain/auth"
	"github.com/cmlabs-hris/trainee-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/trainee-attendance-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/trainee-attendance-go/internal/pkg/tokenstore"
	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret-key-for-jwt"

type passthroughTx struct{}

func (passthroughTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type memUserRepo struct {
	users map[string]user.User
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (r *memUserRepo) Create(_ context.Context, u user.User) (user.User, error) {
	r.users[u.ID] = u
	return u, nil
}

func (r *memUserRepo) List(context.Context) ([]user.User, error) { return nil, nil }

func (r *memUserRepo) Count(context.Context) (int64, error) { return int64(len(r.users)), nil }

func (r *memUserRepo) UpdateLastLogin(_ context.Context, id string) error {
	u := r.users[id]
	now := time.Now()
	u.LastLoginAt = &now
	r.users[id] = u
	return nil
}

func (r *memUserRepo) SetActive(_ context.Context, id string, active bool) error {
	u := r.users[id]
	u.IsActive = active
	r.users[id] = u
	return nil
}

type storedRefresh struct {
	userID  string
	revoked bool
	session auth.SessionTrackingRequest
}

type memRefreshTokens struct {
	mu     sync.Mutex
	tokens map[string]*storedRefresh
}

func (m *memRefreshTokens) Create(_ context.Context, userID, token string, _ time.Time, session auth.SessionTrackingRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens[token] = &storedRefresh{userID: userID, session: session}
	return nil
}

func (m *memRefreshTokens) IsRevoked(_ context.Context, token string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.tokens[token]
	return !ok || st.revoked, nil
}

func (m *memRefreshTokens) Revoke(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if st, ok := m.tokens[token]; ok {
		st.revoked = true
	}
	return nil
}

func (m *memRefreshTokens) RevokeAllForUser(_ context.Context, userID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, st := range m.tokens {
		if st.userID == userID && !st.revoked {
			st.revoked = true
			n++
		}
	}
	return n, nil
}

func (m *memRefreshTokens) DeleteExpired(context.Context, time.Time) (int64, error) { return 0, nil }

type fixture struct {
	svc     auth.AuthService
	users   *memUserRepo
	tokens  *memRefreshTokens
	jwt     *jwt.JWTService
	revoked *tokenstore.MemoryStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		users:   &memUserRepo{users: make(map[string]user.User)},
		tokens:  &memRefreshTokens{tokens: make(map[string]*storedRefresh)},
		jwt:     jwt.NewJWTService(testSecret, time.Hour, 24*time.Hour, false),
		revoked: tokenstore.NewMemoryStore(),
	}
	f.svc = NewAuthService(passthroughTx{}, f.users, f.tokens, f.jwt, f.revoked)
	return f
}

func (f *fixture) addUser(t *testing.T, email, password string, role user.Role, active bool) user.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := user.User{
		ID:           uuid.Must(uuid.NewV7()).String(),
		Email:        email,
		FullName:     "Test User",
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     active,
	}
	f.users.users[u.ID] = u
	return u
}

// authedContext mimics jwtauth.Verifier for the given access token.
func (f *fixture) authedContext(t *testing.T, accessToken string) context.Context {
	t.Helper()
	token, err := jwtauth.VerifyToken(f.jwt.JWTAuth(), accessToken)
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	u := f.addUser(t, "admin@example.com", "password123", user.RoleAdmin, true)
	session := auth.SessionTrackingRequest{UserAgent: "test-agent", IPAddress: "10.0.0.5"}

	resp, err := f.svc.Login(context.Background(), auth.LoginRequest{Email: " Admin@Example.com", Password: "password123"}, session)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, u.ID, resp.User.ID)

	stored := f.tokens.tokens[resp.RefreshToken]
	require.NotNil(t, stored)
	assert.Equal(t, u.ID, stored.userID)
	assert.Equal(t, session, stored.session)
	assert.NotNil(t, f.users.users[u.ID].LastLoginAt)
}

func TestLoginFailures(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, "sup@example.com", "password123", user.RoleSupervisor, true)
	f.addUser(t, "gone@example.com", "password123", user.RoleSupervisor, false)
	ctx := context.Background()

	_, err := f.svc.Login(ctx, auth.LoginRequest{Email: "sup@example.com", Password: "wrong-password"}, auth.SessionTrackingRequest{})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = f.svc.Login(ctx, auth.LoginRequest{Email: "nobody@example.com", Password: "password123"}, auth.SessionTrackingRequest{})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = f.svc.Login(ctx, auth.LoginRequest{Email: "gone@example.com", Password: "password123"}, auth.SessionTrackingRequest{})
	assert.ErrorIs(t, err, user.ErrUserInactive)

	_, err = f.svc.Login(ctx, auth.LoginRequest{Email: "", Password: ""}, auth.SessionTrackingRequest{})
	assert.Error(t, err)
	assert.Empty(t, f.tokens.tokens)
}

func TestRefreshToken(t *testing.T) {
	f := newFixture(t)
	u := f.addUser(t, "kiosk@example.com", "password123", user.RoleKiosk, true)
	ctx := context.Background()

	login, err := f.svc.Login(ctx, auth.LoginRequest{Email: u.Email, Password: "password123"}, auth.SessionTrackingRequest{})
	require.NoError(t, err)

	refreshed, err := f.svc.RefreshToken(ctx, login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.NotEqual(t, login.AccessToken, refreshed.AccessToken)

	_, err = f.svc.RefreshToken(ctx, login.AccessToken)
	assert.ErrorIs(t, err, auth.ErrInvalidToken, "access tokens cannot refresh")

	_, err = f.svc.RefreshToken(ctx, "garbage")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	require.NoError(t, f.tokens.Revoke(ctx, login.RefreshToken))
	_, err = f.svc.RefreshToken(ctx, login.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)
}

func TestLogout(t *testing.T) {
	f := newFixture(t)
	u := f.addUser(t, "admin@example.com", "password123", user.RoleAdmin, true)

	login, err := f.svc.Login(context.Background(), auth.LoginRequest{Email: u.Email, Password: "password123"}, auth.SessionTrackingRequest{})
	require.NoError(t, err)

	ctx := f.authedContext(t, login.AccessToken)
	claims, err := auth.ClaimsFromContext(ctx)
	require.NoError(t, err)

	require.NoError(t, f.svc.Logout(ctx, login.RefreshToken))

	revoked, err := f.revoked.IsRevoked(ctx, claims.TokenID)
	require.NoError(t, err)
	assert.True(t, revoked)
	assert.True(t, f.tokens.tokens[login.RefreshToken].revoked)

	_, err = f.svc.RefreshToken(context.Background(), login.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)

	assert.ErrorIs(t, f.svc.Logout(context.Background(), ""), auth.ErrMissingClaims)
}

func TestMeAndSSEToken(t *testing.T) {
	f := newFixture(t)
	u := f.addUser(t, "sup@example.com", "password123", user.RoleSupervisor, true)

	login, err := f.svc.Login(context.Background(), auth.LoginRequest{Email: u.Email, Password: "password123"}, auth.SessionTrackingRequest{})
	require.NoError(t, err)
	ctx := f.authedContext(t, login.AccessToken)

	me, err := f.svc.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, u.Email, me.Email)
	assert.Contains(t, me.Permissions, user.PermissionReportsView)
	assert.NotContains(t, me.Permissions, user.PermissionUsersManage)

	sse, err := f.svc.IssueSSEToken(ctx)
	require.NoError(t, err)
	userID, role, err := f.jwt.ValidateSSEToken(sse.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, userID)
	assert.Equal(t, user.RoleSupervisor, role)
}
