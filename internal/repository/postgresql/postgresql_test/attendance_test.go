package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/campushr/attendance-backend-go/internal/domain/attendance"
	"github.com/campushr/attendance-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDay() time.Time {
	return time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
}

func checkInWrite(at time.Time) attendance.EventWrite {
	image := "attendance/2025-04-01/emp-1-check_in.jpg"
	return attendance.EventWrite{
		EmployeeID:   "emp-1",
		EmployeeName: "Ana Cruz",
		Date:         testDay(),
		Kind:         attendance.EventCheckIn,
		Time:         at,
		ImageRef:     &image,
		Status:       attendance.StatusPresent,
	}
}

func TestAttendanceRepository_UpsertEvent_CreatesOneRowPerDay(t *testing.T) {
	db := testDatabase(t)
	defer cleanupTestData(t, db)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(db)

	checkIn := time.Date(2025, 4, 1, 0, 5, 0, 0, time.UTC)
	first, err := repo.UpsertEvent(ctx, checkInWrite(checkIn))
	require.NoError(t, err)
	require.NotEmpty(t, first.ID)
	require.NotNil(t, first.CheckIn)

	// A repeated check-in lands on the same row.
	later := checkIn.Add(10 * time.Minute)
	second, err := repo.UpsertEvent(ctx, checkInWrite(later))
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.True(t, second.CheckIn.Equal(later))

	var count int
	err = db.QueryRow(ctx,
		`SELECT COUNT(*) FROM attendance_records WHERE employee_id = $1 AND date = $2`,
		"emp-1", testDay(),
	).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestAttendanceRepository_UpsertEvent_CheckOutPreservesCheckIn(t *testing.T) {
	db := testDatabase(t)
	defer cleanupTestData(t, db)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(db)

	checkIn := time.Date(2025, 4, 1, 0, 5, 0, 0, time.UTC)
	created, err := repo.UpsertEvent(ctx, checkInWrite(checkIn))
	require.NoError(t, err)

	checkOut := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)
	outImage := "attendance/2025-04-01/emp-1-check_out.jpg"
	updated, err := repo.UpsertEvent(ctx, attendance.EventWrite{
		EmployeeID:   "emp-1",
		EmployeeName: "Ana Cruz",
		Date:         testDay(),
		Kind:         attendance.EventCheckOut,
		Time:         checkOut,
		ImageRef:     &outImage,
		Status:       attendance.StatusAbsent,
	})
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	require.NotNil(t, updated.CheckIn)
	assert.True(t, updated.CheckIn.Equal(checkIn), "check-out must not blank the stored check-in")
	require.NotNil(t, updated.CheckOut)
	assert.True(t, updated.CheckOut.Equal(checkOut))
	// The check-out write carries no status for an existing record.
	assert.Equal(t, attendance.StatusPresent, updated.Status)
}

func TestAttendanceRepository_UpsertStatus(t *testing.T) {
	db := testDatabase(t)
	defer cleanupTestData(t, db)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(db)

	notes := "medical leave"
	rec, err := repo.UpsertStatus(ctx, "emp-2", "Ben Reyes", testDay(), attendance.StatusOnLeave, &notes)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusOnLeave, rec.Status)
	require.NotNil(t, rec.Notes)
	assert.Equal(t, "medical leave", *rec.Notes)
	assert.Nil(t, rec.CheckIn)

	// Status change without notes keeps the existing notes.
	rec, err = repo.UpsertStatus(ctx, "emp-2", "Ben Reyes", testDay(), attendance.StatusHalfDay, nil)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusHalfDay, rec.Status)
	require.NotNil(t, rec.Notes)
	assert.Equal(t, "medical leave", *rec.Notes)
}

func TestAttendanceRepository_GetByEmployeeAndDate_NoRecord(t *testing.T) {
	db := testDatabase(t)
	defer cleanupTestData(t, db)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(db)

	rec, err := repo.GetByEmployeeAndDate(ctx, "nobody", testDay())
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestAttendanceRepository_List_Filters(t *testing.T) {
	db := testDatabase(t)
	defer cleanupTestData(t, db)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(db)

	checkIn := time.Date(2025, 4, 1, 0, 5, 0, 0, time.UTC)
	_, err := repo.UpsertEvent(ctx, checkInWrite(checkIn))
	require.NoError(t, err)
	_, err = repo.UpsertStatus(ctx, "emp-2", "Ben Reyes", testDay(), attendance.StatusAbsent, nil)
	require.NoError(t, err)

	employeeID := "emp-1"
	records, err := repo.List(ctx, attendance.Filter{EmployeeID: &employeeID})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "emp-1", records[0].EmployeeID)

	status := string(attendance.StatusAbsent)
	records, err = repo.List(ctx, attendance.Filter{Status: &status})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "emp-2", records[0].EmployeeID)
}

func TestAttendanceRepository_UpdateAndDelete(t *testing.T) {
	db := testDatabase(t)
	defer cleanupTestData(t, db)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(db)

	checkIn := time.Date(2025, 4, 1, 0, 5, 0, 0, time.UTC)
	rec, err := repo.UpsertEvent(ctx, checkInWrite(checkIn))
	require.NoError(t, err)

	status := attendance.StatusHalfDay
	notes := "left early, approved"
	patched, err := repo.Update(ctx, rec.ID, attendance.AdminPatch{
		Status: &status,
		Notes:  &notes,
	})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusHalfDay, patched.Status)
	require.NotNil(t, patched.Notes)
	assert.Equal(t, notes, *patched.Notes)
	require.NotNil(t, patched.CheckIn, "patch must not touch unnamed fields")

	require.NoError(t, repo.Delete(ctx, rec.ID))
	assert.ErrorIs(t, repo.Delete(ctx, rec.ID), attendance.ErrRecordNotFound)

	_, err = repo.GetByID(ctx, rec.ID)
	assert.ErrorIs(t, err, attendance.ErrRecordNotFound)
}
