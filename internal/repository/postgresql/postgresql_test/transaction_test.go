package postgresql_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/campushr/attendance-backend-go/internal/domain/attendance"
	"github.com/campushr/attendance-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithTransaction_RollsBackEveryWriteOnError(t *testing.T) {
	db := testDatabase(t)
	defer cleanupTestData(t, db)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(db)

	boom := errors.New("boom")
	err := postgresql.WithTransaction(ctx, db, func(ctx context.Context) error {
		checkIn := time.Date(2025, 4, 1, 0, 5, 0, 0, time.UTC)
		if _, err := repo.UpsertEvent(ctx, checkInWrite(checkIn)); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	rec, err := repo.GetByEmployeeAndDate(ctx, "emp-1", testDay())
	require.NoError(t, err)
	assert.Nil(t, rec, "rolled-back write must not be visible")
}

func TestWithTransaction_CommitsOnSuccess(t *testing.T) {
	db := testDatabase(t)
	defer cleanupTestData(t, db)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(db)

	checkIn := time.Date(2025, 4, 1, 0, 5, 0, 0, time.UTC)
	checkOut := checkIn.Add(9 * time.Hour)
	outImage := "attendance/2025-04-01/emp-1-check_out.jpg"

	err := postgresql.WithTransaction(ctx, db, func(ctx context.Context) error {
		if _, err := repo.UpsertEvent(ctx, checkInWrite(checkIn)); err != nil {
			return err
		}
		_, err := repo.UpsertEvent(ctx, attendance.EventWrite{
			EmployeeID:   "emp-1",
			EmployeeName: "Ana Cruz",
			Date:         testDay(),
			Kind:         attendance.EventCheckOut,
			Time:         checkOut,
			ImageRef:     &outImage,
			Status:       attendance.StatusPresent,
		})
		return err
	})
	require.NoError(t, err)

	rec, err := repo.GetByEmployeeAndDate(ctx, "emp-1", testDay())
	require.NoError(t, err)
	require.NotNil(t, rec)
	require.NotNil(t, rec.CheckIn)
	require.NotNil(t, rec.CheckOut)
	assert.True(t, rec.CheckOut.Equal(checkOut))
}
