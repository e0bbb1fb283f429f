package repository

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	return db, mock
}

// The seat claim must be a single conditional UPDATE whose affected-row count
// decides the outcome, and it must run before the membership check so joins
// on the same ride serialize on the ride row. A full ride means zero rows
// touched, never a partial increment.
func TestRideRepository_JoinFullRide(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewRideRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "rides" SET "current_passengers"=current_passengers \+ 1 WHERE id = \$1 AND status = \$2 AND current_passengers < max_passengers`).
		WithArgs(int64(7), "active").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT \* FROM "rides"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "status", "current_passengers", "max_passengers"}).
			AddRow(7, "active", 2, 2))
	mock.ExpectQuery(`SELECT \* FROM "ride_memberships" WHERE ride_id = \$1 AND passenger_id = \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"ride_id", "passenger_id"}))
	mock.ExpectRollback()

	err := repo.Join(7, 3)
	require.ErrorIs(t, err, ErrRideFull)
	require.NoError(t, mock.ExpectationsWereMet())
}

// A full ride where the caller already holds the seat reports the duplicate,
// not capacity.
func TestRideRepository_JoinFullRideAsMember(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewRideRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "rides" SET "current_passengers"=current_passengers \+ 1`).
		WithArgs(int64(7), "active").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT \* FROM "rides"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "status", "current_passengers", "max_passengers"}).
			AddRow(7, "active", 2, 2))
	mock.ExpectQuery(`SELECT \* FROM "ride_memberships" WHERE ride_id = \$1 AND passenger_id = \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"ride_id", "passenger_id", "joined_at"}).
			AddRow(7, 3, time.Now()))
	mock.ExpectRollback()

	err := repo.Join(7, 3)
	require.ErrorIs(t, err, ErrAlreadyJoined)
	require.NoError(t, mock.ExpectationsWereMet())
}

// Two joins by the same passenger racing on a ride with free seats: the
// second transaction claims a seat, then sees the committed membership and
// must roll the increment back. Success here would leave a phantom occupied
// seat.
func TestRideRepository_JoinDuplicateReleasesSeat(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewRideRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "rides" SET "current_passengers"=current_passengers \+ 1 WHERE id = \$1 AND status = \$2 AND current_passengers < max_passengers`).
		WithArgs(int64(7), "active").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT \* FROM "ride_memberships" WHERE ride_id = \$1 AND passenger_id = \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"ride_id", "passenger_id", "joined_at"}).
			AddRow(7, 3, time.Now()))
	mock.ExpectRollback()

	err := repo.Join(7, 3)
	require.ErrorIs(t, err, ErrAlreadyJoined)
	require.NoError(t, mock.ExpectationsWereMet())
}

// Status transitions out of active are guarded by the status condition, so a
// second cancel or complete cannot overwrite a terminal state.
func TestRideRepository_UpdateStatusGuard(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewRideRepository(db)

	mock.ExpectExec(`UPDATE "rides" SET .* WHERE id = \$\d+ AND status = \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(7, "cancelled")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
