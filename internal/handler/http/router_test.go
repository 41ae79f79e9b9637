package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cmlabs-hris/trainee-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/trainee-attendance-go/internal/domain/auth"
	"github.com/cmlabs-hris/trainee-attendance-go/internal/domain/group"
	"github.com/cmlabs-hris/trainee-attendance-go/internal/domain/report"
	"github.com/cmlabs-hris/trainee-attendance-go/internal/domain/shift"
	"github.com/cmlabs-hris/trainee-attendance-go/internal/domain/trainee"
	"github.com/cmlabs-hris/trainee-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/trainee-attendance-go/internal/handler/http/response"
	"github.com/cmlabs-hris/trainee-attendance-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/trainee-attendance-go/internal/pkg/sse"
	"github.com/cmlabs-hris/trainee-attendance-go/internal/pkg/tokenstore"
	"github.com/cmlabs-hris/trainee-attendance-go/internal/service/master"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const handlerTestSecret = "test-secret-key-for-jwt"

type stubAuthService struct {
	jwt     *jwt.JWTService
	revoked tokenstore.Store
	account user.User
}

func (s *stubAuthService) Login(_ context.Context, req auth.LoginRequest, _ auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	if req.Password != "password123" {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	access, err := s.jwt.GenerateAccessToken(s.account)
	if err != nil {
		return auth.TokenResponse{}, err
	}
	refresh, refreshExp, err := s.jwt.GenerateRefreshToken(s.account.ID)
	if err != nil {
		return auth.TokenResponse{}, err
	}
	return auth.TokenResponse{
		AccessToken:           access.Token,
		AccessTokenExpiresIn:  access.ExpiresAt,
		RefreshToken:          refresh,
		RefreshTokenExpiresIn: refreshExp,
		User:                  user.NewUserResponse(s.account),
	}, nil
}

func (s *stubAuthService) RefreshToken(context.Context, string) (auth.AccessTokenResponse, error) {
	return auth.AccessTokenResponse{}, auth.ErrRefreshTokenRevoked
}

func (s *stubAuthService) Logout(ctx context.Context, _ string) error {
	claims, err := auth.ClaimsFromContext(ctx)
	if err != nil {
		return err
	}
	return s.revoked.Revoke(ctx, claims.TokenID, claims.ExpiresAt)
}

func (s *stubAuthService) Me(ctx context.Context) (auth.MeResponse, error) {
	claims, err := auth.ClaimsFromContext(ctx)
	if err != nil {
		return auth.MeResponse{}, err
	}
	return auth.MeResponse{
		UserResponse: user.UserResponse{ID: claims.UserID, Role: claims.Role},
		Permissions:  user.RolePermissions[claims.Role],
	}, nil
}

func (s *stubAuthService) IssueSSEToken(ctx context.Context) (auth.SSETokenResponse, error) {
	claims, err := auth.ClaimsFromContext(ctx)
	if err != nil {
		return auth.SSETokenResponse{}, err
	}
	token, expiresIn, err := s.jwt.GenerateSSEToken(claims.UserID, claims.Role)
	return auth.SSETokenResponse{Token: token, ExpiresIn: expiresIn}, err
}

type stubAttendanceService struct {
	attendance.AttendanceService
	scanErr error
}

func (s *stubAttendanceService) Scan(_ context.Context, req attendance.ScanRequest) (attendance.ScanResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.ScanResponse{}, err
	}
	if s.scanErr != nil {
		return attendance.ScanResponse{}, s.scanErr
	}
	return attendance.ScanResponse{Mode: req.Mode, TraineeName: "Ali", Message: "Checked in on time"}, nil
}

type stubTraineeService struct {
	trainee.TraineeService
}

func (stubTraineeService) List(context.Context, trainee.TraineeFilter) (trainee.ListTraineeResponse, error) {
	return trainee.ListTraineeResponse{TotalCount: 1, Page: 1, Limit: 20, TotalPages: 1, Trainees: []trainee.TraineeResponse{{FullName: "Ali"}}}, nil
}

type stubReportService struct {
	report.ReportService
}

func (stubReportService) ExportDaily(_ context.Context, req report.DailyReportRequest) (*bytes.Buffer, string, error) {
	if err := req.Validate(); err != nil {
		return nil, "", err
	}
	return bytes.NewBufferString("PK-fake-xlsx"), "attendance_" + req.Date + ".xlsx", nil
}

type routerFixture struct {
	router  *chi.Mux
	jwt     *jwt.JWTService
	revoked *tokenstore.MemoryStore
	scan    *stubAttendanceService
	hub     *sse.Hub
}

func newRouterFixture(t *testing.T, role user.Role) *routerFixture {
	t.Helper()
	f := &routerFixture{
		jwt:     jwt.NewJWTService(handlerTestSecret, time.Hour, 24*time.Hour, false),
		revoked: tokenstore.NewMemoryStore(),
		scan:    &stubAttendanceService{},
		hub:     sse.NewHub(),
	}
	authSvc := &stubAuthService{
		jwt:     f.jwt,
		revoked: f.revoked,
		account: user.User{ID: "0199a1b2-0000-7000-8000-000000000001", Email: "u@example.com", Role: role, IsActive: true},
	}

	var groupSvc group.GroupService
	var shiftSvc shift.ShiftService
	var masterSvc master.MasterService
	var userSvc user.UserService

	f.router = NewRouter(RouterConfig{CORSOrigins: []string{"http://localhost:3000"}}, f.jwt, f.revoked, Handlers{
		Auth:       NewAuthHandler(f.jwt, authSvc),
		User:       NewUserHandler(userSvc),
		Master:     NewMasterHandler(masterSvc),
		Shift:      NewShiftHandler(shiftSvc),
		Trainee:    NewTraineeHandler(stubTraineeService{}),
		Group:      NewGroupHandler(groupSvc),
		Attendance: NewAttendanceHandler(f.scan, f.jwt, f.hub),
		Report:     NewReportHandler(stubReportService{}),
	})
	return f
}

func (f *routerFixture) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func (f *routerFixture) login(t *testing.T) string {
	t.Helper()
	rec := f.do(t, http.MethodPost, "/api/v1/auth/login", "", auth.LoginRequest{Email: "u@example.com", Password: "password123"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var cookieFound bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == "refresh_token" && c.HttpOnly {
			cookieFound = true
		}
	}
	assert.True(t, cookieFound, "refresh token cookie is set")

	var resp struct {
		Data auth.TokenResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Data.AccessToken
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) response.ErrorDetail {
	t.Helper()
	var resp response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.False(t, resp.Success)
	return *resp.Error
}

func TestHealth(t *testing.T) {
	f := newRouterFixture(t, user.RoleAdmin)
	rec := f.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLoginRejectsBadPassword(t *testing.T) {
	f := newRouterFixture(t, user.RoleAdmin)
	rec := f.do(t, http.MethodPost, "/api/v1/auth/login", "", auth.LoginRequest{Email: "u@example.com", Password: "nope"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "UNAUTHORIZED", decodeError(t, rec).Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	f := newRouterFixture(t, user.RoleAdmin)

	rec := f.do(t, http.MethodGet, "/api/v1/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	refresh, _, err := f.jwt.GenerateRefreshToken("someone")
	require.NoError(t, err)
	rec = f.do(t, http.MethodGet, "/api/v1/auth/me", refresh, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code, "refresh tokens are not access tokens")
}

func TestLogoutRevokesAccessToken(t *testing.T) {
	f := newRouterFixture(t, user.RoleSupervisor)
	token := f.login(t)

	rec := f.do(t, http.MethodGet, "/api/v1/auth/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/v1/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = f.do(t, http.MethodGet, "/api/v1/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestKioskPermissions(t *testing.T) {
	f := newRouterFixture(t, user.RoleKiosk)
	token := f.login(t)

	rec := f.do(t, http.MethodPost, "/api/v1/kiosk/scan", token, attendance.ScanRequest{Code: "TR-1", Mode: "in"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = f.do(t, http.MethodGet, "/api/v1/trainees", token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/v1/reports/daily/export?date=2025-03-10", token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestScanErrorMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{attendance.ErrNoActiveCheckIn, http.StatusUnprocessableEntity, "NO_ACTIVE_CHECK_IN"},
		{attendance.ErrClockSkew, http.StatusUnprocessableEntity, "CLOCK_SKEW"},
		{attendance.ErrNoShiftToday, http.StatusUnprocessableEntity, "NO_SHIFT_TODAY"},
		{trainee.ErrTraineeNotFound, http.StatusNotFound, "NOT_FOUND"},
		{attendance.ErrTraineeNotActive, http.StatusNotFound, "NOT_FOUND"},
	}

	f := newRouterFixture(t, user.RoleAdmin)
	token := f.login(t)

	for _, tc := range cases {
		t.Run(tc.code+"/"+tc.err.Error(), func(t *testing.T) {
			f.scan.scanErr = tc.err
			rec := f.do(t, http.MethodPost, "/api/v1/kiosk/scan", token, attendance.ScanRequest{Code: "TR-1", Mode: "OUT"})
			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, tc.code, decodeError(t, rec).Code)
		})
	}

	f.scan.scanErr = nil
	rec := f.do(t, http.MethodPost, "/api/v1/kiosk/scan", token, attendance.ScanRequest{Code: "", Mode: "SIDEWAYS"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	detail := decodeError(t, rec)
	assert.Equal(t, "VALIDATION_ERROR", detail.Code)
	assert.Contains(t, detail.Details, "code")
	assert.Contains(t, detail.Details, "mode")
}

func TestTraineeListMeta(t *testing.T) {
	f := newRouterFixture(t, user.RoleSupervisor)
	token := f.login(t)

	rec := f.do(t, http.MethodGet, "/api/v1/trainees?page=1&limit=20", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(1), resp.Meta.TotalItems)

	rec = f.do(t, http.MethodGet, "/api/v1/trainees?page=abc", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExportDaily(t *testing.T) {
	f := newRouterFixture(t, user.RoleSupervisor)
	token := f.login(t)

	rec := f.do(t, http.MethodGet, "/api/v1/reports/daily/export?date=2025-03-10", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attendance_2025-03-10.xlsx")

	rec = f.do(t, http.MethodGet, "/api/v1/reports/daily/export?date=yesterday", token, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestStreamRejectsBadTokens(t *testing.T) {
	f := newRouterFixture(t, user.RoleKiosk)

	rec := f.do(t, http.MethodGet, "/api/v1/attendance/stream", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/v1/attendance/stream?token=garbage", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	kioskSSE, _, err := f.jwt.GenerateSSEToken("kiosk-1", user.RoleKiosk)
	require.NoError(t, err)
	rec = f.do(t, http.MethodGet, "/api/v1/attendance/stream?token="+kioskSSE, "", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code, "kiosk accounts cannot watch the stream")
}

func TestStreamDeliversEvents(t *testing.T) {
	f := newRouterFixture(t, user.RoleSupervisor)
	sseToken, _, err := f.jwt.GenerateSSEToken("sup-1", user.RoleSupervisor)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/attendance/stream?token="+sseToken, nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		f.router.ServeHTTP(rec, req)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return f.hub.SubscriberCount(sse.TopicAttendance) == 1
	}, 2*time.Second, 10*time.Millisecond)

	f.hub.Publish(sse.TopicAttendance, "scan", map[string]string{"trainee_name": "Ali"})
	time.Sleep(50 * time.Millisecond)
	cancel()
	<-done

	body := rec.Body.String()
	assert.Contains(t, body, "event: connected")
	assert.Contains(t, body, "event: scan")
	assert.Contains(t, body, `"trainee_name":"Ali"`)
	assert.Equal(t, 0, f.hub.SubscriberCount(sse.TopicAttendance))
}
