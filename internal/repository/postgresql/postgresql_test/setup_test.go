package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/cmlabs-hris/trainee-attendance-go/internal/domain/shift"
	"github.com/cmlabs-hris/trainee-attendance-go/internal/domain/trainee"
	"github.com/cmlabs-hris/trainee-attendance-go/internal/pkg/database"
	"github.com/cmlabs-hris/trainee-attendance-go/internal/repository/postgresql"
	"github.com/stretchr/testify/require"
)

var (
	setupOnce sync.Once
	testDB    *database.DB
	setupErr  error
)

// openTestDB connects to TEST_DATABASE_URL and migrates it once per run.
// Tests are skipped when the variable is unset.
func openTestDB(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	setupOnce.Do(func() {
		if err := database.RunMigrations(dsn); err != nil {
			setupErr = fmt.Errorf("migrate test database: %w", err)
			return
		}
		testDB, setupErr = database.NewPostgreSQLDB(context.Background(), dsn)
	})
	require.NoError(t, setupErr)

	truncateAll(t)
	return testDB
}

func truncateAll(t *testing.T) {
	t.Helper()
	_, err := testDB.Exec(context.Background(), `
		TRUNCATE TABLE attendance_sessions, trainees, group_schedules, groups,
			shifts, specializations, ranks, refresh_tokens, users CASCADE
	`)
	require.NoError(t, err)
}

type seed struct {
	RankID           string
	SpecializationID string
	Shift            shift.Shift
}

func seedMasterData(t *testing.T, ctx context.Context, db *database.DB) seed {
	t.Helper()

	r, err := postgresql.NewRankRepository(db).Create(ctx, "Private")
	require.NoError(t, err)
	sp, err := postgresql.NewSpecializationRepository(db).Create(ctx, "Signals")
	require.NoError(t, err)

	def, err := shift.NewShift("Morning", shift.MustParseTimeOfDay("08:00"), shift.MustParseTimeOfDay("14:00"), 15)
	require.NoError(t, err)
	sh, err := postgresql.NewShiftRepository(db).Create(ctx, def)
	require.NoError(t, err)

	return seed{RankID: r.ID, SpecializationID: sp.ID, Shift: sh}
}

func createTrainee(t *testing.T, ctx context.Context, db *database.DB, s seed, civilID, militaryID, barcode string) trainee.Trainee {
	t.Helper()

	created, err := postgresql.NewTraineeRepository(db).Create(ctx, trainee.Trainee{
		CivilID:          civilID,
		MilitaryID:       militaryID,
		FullName:         "Trainee " + militaryID,
		RankID:           s.RankID,
		SpecializationID: s.SpecializationID,
		ShiftID:          s.Shift.ID,
		BarcodeValue:     barcode,
		Status:           trainee.StatusActive,
	})
	require.NoError(t, err)
	return created
}
