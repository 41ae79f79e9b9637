package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/cmlabs-hris/trainee-attendance-go/internal/config"
	"github.com/cmlabs-hris/trainee-attendance-go/internal/domain/shift"
	"github.com/cmlabs-hris/trainee-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/trainee-attendance-go/internal/pkg/database"
	"github.com/cmlabs-hris/trainee-attendance-go/internal/pkg/logger"
	"github.com/cmlabs-hris/trainee-attendance-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/trainee-attendance-go/internal/service/attendance"
	groupService "github.com/cmlabs-hris/trainee-attendance-go/internal/service/group"
	userService "github.com/cmlabs-hris/trainee-attendance-go/internal/service/user"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "attendancectl",
		Short:         "Maintenance commands for the trainee attendance service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newMigrateCmd(), newUserCmd(), newMarkAbsentCmd(), newEffectiveStartCmd())
	return root
}

// loadConfig reads .env and the environment, then installs the default logger.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger.New(os.Stderr, cfg.LogLevel(), "attendancectl", cfg.App.Version, cfg.App.Env))
	return cfg, nil
}

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return database.RunMigrations(cfg.DatabaseURL())
		},
	})

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if steps < 1 {
				return fmt.Errorf("--steps must be at least 1")
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return database.RollbackMigrations(cfg.DatabaseURL(), steps)
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "Number of migrations to roll back")
	cmd.AddCommand(down)

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			version, dirty, err := database.MigrationVersion(cfg.DatabaseURL())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "version=%d dirty=%t\n", version, dirty)
			return nil
		},
	})

	return cmd
}

func newUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage dashboard accounts",
	}

	var req user.CreateUserRequest
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a dashboard or kiosk account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if req.Password == "" {
				req.Password = os.Getenv("ATTENDANCECTL_PASSWORD")
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return withDB(cmd.Context(), cfg, func(ctx context.Context, db *database.DB) error {
				svc := userService.NewUserService(
					postgresql.NewTransactor(db),
					postgresql.NewUserRepository(db),
					postgresql.NewRefreshTokenRepository(db),
				)
				created, err := svc.Create(ctx, req)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "created %s user %s (%s)\n", created.Role, created.Email, created.ID)
				return nil
			})
		},
	}
	create.Flags().StringVar(&req.Email, "email", "", "Login email")
	create.Flags().StringVar(&req.FullName, "name", "", "Display name")
	create.Flags().StringVar(&req.Role, "role", string(user.RoleSupervisor), "admin, supervisor or kiosk")
	create.Flags().StringVar(&req.Password, "password", "", "Password (defaults to $ATTENDANCECTL_PASSWORD)")
	_ = create.MarkFlagRequired("email")
	cmd.AddCommand(create)

	return cmd
}

func newMarkAbsentCmd() *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "mark-absent",
		Short: "Record absent sessions for trainees who never checked in on a day",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			loc := cfg.Location()

			day, err := parseDay(date, time.Now(), loc)
			if err != nil {
				return err
			}

			return withDB(cmd.Context(), cfg, func(ctx context.Context, db *database.DB) error {
				scheduleRepo := postgresql.NewScheduleRepository(db)
				shiftRepo := postgresql.NewShiftRepository(db)
				svc := attendanceService.NewAttendanceService(
					postgresql.NewTransactor(db),
					postgresql.NewAttendanceRepository(db),
					postgresql.NewTraineeRepository(db),
					groupService.NewShiftResolver(scheduleRepo, shiftRepo),
					attendanceService.NewCalculator(loc),
					nil,
				)
				marked, err := svc.MarkAbsent(ctx, day)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "marked %d trainees absent on %s\n", marked, day.Format(time.DateOnly))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "Day to close, YYYY-MM-DD (defaults to yesterday)")
	return cmd
}

func newEffectiveStartCmd() *cobra.Command {
	var (
		start string
		grace int
	)
	cmd := &cobra.Command{
		Use:   "effective-start",
		Short: "Print the latest on-time check-in for a shift start and grace period",
		RunE: func(cmd *cobra.Command, args []string) error {
			tod, err := shift.ParseTimeOfDay(start)
			if err != nil {
				return err
			}
			effective, err := shift.EffectiveStartTime(tod, grace)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), effective.String())
			return nil
		},
	}
	cmd.Flags().StringVar(&start, "start", "", "Shift start, HH:MM")
	cmd.Flags().IntVar(&grace, "grace", 0, "Grace period in minutes")
	_ = cmd.MarkFlagRequired("start")
	return cmd
}

// parseDay returns the attendance day as UTC midnight. An empty value means the
// local day before now.
func parseDay(value string, now time.Time, loc *time.Location) (time.Time, error) {
	if value == "" {
		y, m, d := now.In(loc).AddDate(0, 0, -1).Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}
	day, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date %q: expected YYYY-MM-DD", value)
	}
	return day, nil
}

func withDB(ctx context.Context, cfg *config.Config, fn func(ctx context.Context, db *database.DB) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{MaxConns: 4, MinConns: 1})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()
	return fn(ctx, db)
}
