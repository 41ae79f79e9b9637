package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/trainee-attendance-go/internal/config"
	appHTTP "github.com/cmlabs-hris/trainee-attendance-go/internal/handler/http"
	"github.com/cmlabs-hris/trainee-attendance-go/internal/pkg/cron"
	"github.com/cmlabs-hris/trainee-attendance-go/internal/pkg/database"
	"github.com/cmlabs-hris/trainee-attendance-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/trainee-attendance-go/internal/pkg/logger"
	"github.com/cmlabs-hris/trainee-attendance-go/internal/pkg/sse"
	"github.com/cmlabs-hris/trainee-attendance-go/internal/pkg/tokenstore"
	"github.com/cmlabs-hris/trainee-attendance-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/trainee-attendance-go/internal/service/attendance"
	serviceAuth "github.com/cmlabs-hris/trainee-attendance-go/internal/service/auth"
	groupService "github.com/cmlabs-hris/trainee-attendance-go/internal/service/group"
	"github.com/cmlabs-hris/trainee-attendance-go/internal/service/master"
	reportService "github.com/cmlabs-hris/trainee-attendance-go/internal/service/report"
	shiftService "github.com/cmlabs-hris/trainee-attendance-go/internal/service/shift"
	traineeService "github.com/cmlabs-hris/trainee-attendance-go/internal/service/trainee"
	userService "github.com/cmlabs-hris/trainee-attendance-go/internal/service/user"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(os.Stdout, cfg.LogLevel(), "trainee-attendance", cfg.App.Version, cfg.App.Env)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dsn := cfg.DatabaseURL()
	if cfg.Database.AutoMigrate {
		if err := database.RunMigrations(dsn); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
	}

	db, err := database.NewPostgreSQLDB(ctx, dsn, database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	tx := postgresql.NewTransactor(db)
	userRepo := postgresql.NewUserRepository(db)
	refreshTokenRepo := postgresql.NewRefreshTokenRepository(db)
	rankRepo := postgresql.NewRankRepository(db)
	specializationRepo := postgresql.NewSpecializationRepository(db)
	shiftRepo := postgresql.NewShiftRepository(db)
	traineeRepo := postgresql.NewTraineeRepository(db)
	groupRepo := postgresql.NewGroupRepository(db)
	scheduleRepo := postgresql.NewScheduleRepository(db)
	sessionRepo := postgresql.NewAttendanceRepository(db)
	reportRepo := postgresql.NewReportRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration, cfg.IsProduction())

	var revoked tokenstore.Store
	if cfg.Redis.Addr != "" {
		redisStore, err := tokenstore.NewRedisStore(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		defer redisStore.Close()
		revoked = redisStore
	} else {
		slog.Warn("REDIS_ADDR not set, access token revocations are kept in memory")
		revoked = tokenstore.NewMemoryStore()
	}

	hub := sse.NewHub()
	loc := cfg.Location()

	authSvc := serviceAuth.NewAuthService(tx, userRepo, refreshTokenRepo, JWTService, revoked)
	userSvc := userService.NewUserService(tx, userRepo, refreshTokenRepo)
	masterSvc := master.NewMasterService(rankRepo, specializationRepo)
	shiftSvc := shiftService.NewShiftService(shiftRepo)
	traineeSvc := traineeService.NewTraineeService(traineeRepo)
	groupSvc := groupService.NewGroupService(tx, groupRepo, scheduleRepo)
	resolver := groupService.NewShiftResolver(scheduleRepo, shiftRepo)
	attendanceSvc := attendanceService.NewAttendanceService(
		tx,
		sessionRepo,
		traineeRepo,
		resolver,
		attendanceService.NewCalculator(loc),
		hub,
	)
	reportSvc := reportService.NewReportService(reportRepo, loc)

	if cfg.Admin.Email != "" {
		created, err := userSvc.EnsureAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password)
		if err != nil {
			return fmt.Errorf("bootstrap admin: %w", err)
		}
		if created {
			slog.Info("bootstrap admin account created", "email", cfg.Admin.Email)
		}
	}

	scheduler := cron.NewScheduler()
	if cfg.Jobs.Enabled {
		cron.NewAttendanceJobs(attendanceSvc, refreshTokenRepo, loc, cfg.Jobs.AbsenceInterval).RegisterJobs(scheduler)
		scheduler.Start(ctx)
	}

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{Logger: log, CORSOrigins: cfg.App.CORSOrigins},
		JWTService,
		revoked,
		appHTTP.Handlers{
			Auth:       appHTTP.NewAuthHandler(JWTService, authSvc),
			User:       appHTTP.NewUserHandler(userSvc),
			Master:     appHTTP.NewMasterHandler(masterSvc),
			Shift:      appHTTP.NewShiftHandler(shiftSvc),
			Trainee:    appHTTP.NewTraineeHandler(traineeSvc),
			Group:      appHTTP.NewGroupHandler(groupSvc),
			Attendance: appHTTP.NewAttendanceHandler(attendanceSvc, JWTService, hub),
			Report:     appHTTP.NewReportHandler(reportSvc),
		},
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", server.Addr, "timezone", loc.String())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	if cfg.Jobs.Enabled {
		scheduler.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
