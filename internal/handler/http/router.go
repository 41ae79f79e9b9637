package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/trainee-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/trainee-attendance-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/trainee-attendance-go/internal/handler/http/response"
	"github.com/cmlabs-hris/trainee-attendance-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/trainee-attendance-go/internal/pkg/tokenstore"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterConfig struct {
	Logger      *slog.Logger
	CORSOrigins []string
}

type Handlers struct {
	Auth       AuthHandler
	User       UserHandler
	Master     MasterHandler
	Shift      ShiftHandler
	Trainee    TraineeHandler
	Group      GroupHandler
	Attendance AttendanceHandler
	Report     ReportHandler
}

func NewRouter(cfg RouterConfig, JWTService jwt.Service, revoked tokenstore.Store, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	if cfg.Logger != nil {
		r.Use(httplog.RequestLogger(cfg.Logger, &httplog.Options{
			Level:  slog.LevelInfo,
			Schema: httplog.SchemaECS,
		}))
	}

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.RefreshToken)
		})

		// EventSource clients authenticate with the SSE token query parameter.
		r.Get("/attendance/stream", h.Attendance.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(revoked))

			r.Post("/auth/logout", h.Auth.Logout)
			r.Get("/auth/me", h.Auth.Me)
			r.Post("/auth/sse-token", h.Auth.SSEToken)

			r.With(middleware.RequirePermission(user.PermissionAttendanceScan)).
				Post("/kiosk/scan", h.Attendance.Scan)

			r.Route("/users", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionUsersManage))
				r.Get("/", h.User.List)
				r.Post("/", h.User.Create)
				r.Post("/{id}/activate", h.User.Activate)
				r.Post("/{id}/deactivate", h.User.Deactivate)
			})

			r.Route("/ranks", func(r chi.Router) {
				r.Get("/", h.Master.ListRanks)
				r.Get("/{id}", h.Master.GetRank)
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionSettingsManage))
					r.Post("/", h.Master.CreateRank)
					r.Put("/{id}", h.Master.UpdateRank)
					r.Delete("/{id}", h.Master.DeleteRank)
				})
			})

			r.Route("/specializations", func(r chi.Router) {
				r.Get("/", h.Master.ListSpecializations)
				r.Get("/{id}", h.Master.GetSpecialization)
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionSettingsManage))
					r.Post("/", h.Master.CreateSpecialization)
					r.Put("/{id}", h.Master.UpdateSpecialization)
					r.Delete("/{id}", h.Master.DeleteSpecialization)
				})
			})

			r.Route("/shifts", func(r chi.Router) {
				r.Get("/", h.Shift.List)
				r.Get("/{id}", h.Shift.Get)
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionSettingsManage))
					r.Post("/", h.Shift.Create)
					r.Put("/{id}", h.Shift.Update)
					r.Delete("/{id}", h.Shift.Delete)
				})
			})

			r.Route("/trainees", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionTraineesView)).Get("/", h.Trainee.List)
				r.With(middleware.RequirePermission(user.PermissionTraineesView)).Get("/{id}", h.Trainee.Get)
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionTraineesManage))
					r.Post("/", h.Trainee.Create)
					r.Put("/{id}", h.Trainee.Update)
					r.Delete("/{id}", h.Trainee.Delete)
				})
			})

			r.Route("/groups", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionTraineesView)).Get("/", h.Group.List)
				r.With(middleware.RequirePermission(user.PermissionTraineesView)).Get("/{id}", h.Group.Get)
				r.With(middleware.RequirePermission(user.PermissionTraineesView)).Get("/{id}/schedules", h.Group.ListSchedules)
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionSettingsManage))
					r.Post("/", h.Group.Create)
					r.Put("/{id}", h.Group.Update)
					r.Delete("/{id}", h.Group.Delete)
					r.Post("/{id}/schedules", h.Group.AssignShift)
					r.Delete("/{id}/schedules/{scheduleID}", h.Group.DeleteSchedule)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionAttendanceView)).Get("/", h.Attendance.List)
				r.With(middleware.RequirePermission(user.PermissionAttendanceView)).Get("/{id}", h.Attendance.Get)
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionAttendanceEdit))
					r.Patch("/{id}/status", h.Attendance.UpdateStatus)
					r.Post("/check-in", h.Attendance.CheckIn)
					r.Post("/check-out", h.Attendance.CheckOut)
				})
			})

			r.Route("/reports", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionReportsView))
				r.Get("/daily", h.Report.Daily)
				r.Get("/daily/export", h.Report.ExportDaily)
				r.Get("/period", h.Report.Period)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Route not found")
	})

	return r
}
