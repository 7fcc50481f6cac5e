package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/campushr/attendance-backend-go/internal/domain/attendance"
	"github.com/campushr/attendance-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const recordColumns = `
	id, employee_id, employee_name, date, check_in, check_out,
	status, check_in_image, check_out_image, notes, created_at, updated_at`

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.Repository {
	return &attendanceRepository{db: db}
}

// UpsertEvent implements attendance.Repository. The write is a single
// INSERT ... ON CONFLICT keyed by the (employee_id, date) unique pair, so
// concurrent first-events for the same employee and day serialize into one
// row instead of racing a read-then-write. Each event kind touches only
// its own columns; a check-out can never blank a stored check-in.
func (a *attendanceRepository) UpsertEvent(ctx context.Context, write attendance.EventWrite) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	var query string
	if write.Kind == attendance.EventCheckIn {
		query = `
			INSERT INTO attendance_records (
				id, employee_id, employee_name, date,
				check_in, check_in_image, status
			) VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (employee_id, date) DO UPDATE SET
				check_in       = EXCLUDED.check_in,
				check_in_image = EXCLUDED.check_in_image,
				status         = EXCLUDED.status,
				updated_at     = now()
			RETURNING` + recordColumns
	} else {
		query = `
			INSERT INTO attendance_records (
				id, employee_id, employee_name, date,
				check_out, check_out_image, status
			) VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (employee_id, date) DO UPDATE SET
				check_out       = EXCLUDED.check_out,
				check_out_image = EXCLUDED.check_out_image,
				updated_at      = now()
			RETURNING` + recordColumns
	}

	row := q.QueryRow(ctx, query,
		uuid.NewString(),
		write.EmployeeID,
		write.EmployeeName,
		write.Date,
		write.Time,
		write.ImageRef,
		write.Status,
	)

	rec, err := scanRecord(row)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to upsert attendance event: %w", err)
	}
	return rec, nil
}

// UpsertStatus implements attendance.Repository.
func (a *attendanceRepository) UpsertStatus(ctx context.Context, employeeID, employeeName string, date time.Time, status attendance.Status, notes *string) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendance_records (
			id, employee_id, employee_name, date, status, notes
		) VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (employee_id, date) DO UPDATE SET
			status     = EXCLUDED.status,
			notes      = COALESCE(EXCLUDED.notes, attendance_records.notes),
			updated_at = now()
		RETURNING` + recordColumns

	row := q.QueryRow(ctx, query,
		uuid.NewString(), employeeID, employeeName, date, status, notes,
	)

	rec, err := scanRecord(row)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to upsert attendance status: %w", err)
	}
	return rec, nil
}

// GetByEmployeeAndDate implements attendance.Repository.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT` + recordColumns + `
		FROM attendance_records
		WHERE employee_id = $1 AND date = $2
		LIMIT 1`

	rec, err := scanRecord(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance by employee and date: %w", err)
	}
	return &rec, nil
}

// GetByID implements attendance.Repository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT` + recordColumns + `
		FROM attendance_records
		WHERE id = $1`

	rec, err := scanRecord(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrRecordNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to get attendance by ID: %w", err)
	}
	return rec, nil
}

// List implements attendance.Repository. Results come back newest day
// first, then newest write first within a day.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.Filter) ([]attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	where := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		where = append(where, fmt.Sprintf("employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Date != nil && *filter.Date != "" {
		where = append(where, fmt.Sprintf("date = $%d", argIdx))
		args = append(args, *filter.Date)
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		where = append(where, fmt.Sprintf("date >= $%d", argIdx))
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		where = append(where, fmt.Sprintf("date <= $%d", argIdx))
		args = append(args, *filter.EndDate)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		where = append(where, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}

	query := `
		SELECT` + recordColumns + `
		FROM attendance_records
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY date DESC, created_at DESC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance records: %w", err)
	}
	defer rows.Close()

	return collectRecords(rows)
}

// ListRange implements attendance.Repository.
func (a *attendanceRepository) ListRange(ctx context.Context, start, end time.Time) ([]attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT` + recordColumns + `
		FROM attendance_records
		WHERE date >= $1 AND date <= $2
		ORDER BY date DESC, created_at ASC`

	rows, err := q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance range: %w", err)
	}
	defer rows.Close()

	return collectRecords(rows)
}

// Update implements attendance.Repository. Only non-nil patch fields are
// written; this is the administrative path and does not classify.
func (a *attendanceRepository) Update(ctx context.Context, id string, patch attendance.AdminPatch) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	updates := make([]string, 0)
	args := make([]interface{}, 0)
	argIdx := 1

	if patch.Date != nil {
		updates = append(updates, fmt.Sprintf("date = $%d", argIdx))
		args = append(args, *patch.Date)
		argIdx++
	}
	if patch.CheckIn != nil {
		updates = append(updates, fmt.Sprintf("check_in = $%d", argIdx))
		args = append(args, *patch.CheckIn)
		argIdx++
	}
	if patch.CheckOut != nil {
		updates = append(updates, fmt.Sprintf("check_out = $%d", argIdx))
		args = append(args, *patch.CheckOut)
		argIdx++
	}
	if patch.Status != nil {
		updates = append(updates, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, *patch.Status)
		argIdx++
	}
	if patch.Notes != nil {
		updates = append(updates, fmt.Sprintf("notes = $%d", argIdx))
		args = append(args, *patch.Notes)
		argIdx++
	}

	if len(updates) == 0 {
		return attendance.Record{}, fmt.Errorf("no updatable fields provided for attendance update")
	}

	updates = append(updates, "updated_at = now()")
	args = append(args, id)

	query := "UPDATE attendance_records SET " + strings.Join(updates, ", ") +
		fmt.Sprintf(" WHERE id = $%d RETURNING", argIdx) + recordColumns

	rec, err := scanRecord(q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrRecordNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to update attendance record: %w", err)
	}
	return rec, nil
}

// Delete implements attendance.Repository.
func (a *attendanceRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, a.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM attendance_records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete attendance record: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return attendance.ErrRecordNotFound
	}
	return nil
}

func scanRecord(row pgx.Row) (attendance.Record, error) {
	var rec attendance.Record
	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.EmployeeName, &rec.Date,
		&rec.CheckIn, &rec.CheckOut, &rec.Status,
		&rec.CheckInImage, &rec.CheckOutImage, &rec.Notes,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	return rec, err
}

func collectRecords(rows pgx.Rows) ([]attendance.Record, error) {
	var records []attendance.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read attendance rows: %w", err)
	}
	return records, nil
}
