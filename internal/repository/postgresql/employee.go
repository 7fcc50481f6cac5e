package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/campushr/attendance-backend-go/internal/domain/employee"
	"github.com/campushr/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

// employeeDirectory reads the employee master table maintained by the HR
// subsystem. This side only ever selects from it.
type employeeDirectory struct {
	db *database.DB
}

func NewEmployeeDirectory(db *database.DB) employee.Directory {
	return &employeeDirectory{db: db}
}

// GetByID implements employee.Directory.
func (d *employeeDirectory) GetByID(ctx context.Context, employeeID string) (employee.Ref, error) {
	q := GetQuerier(ctx, d.db)

	query := `
		SELECT employee_id, full_name, department, employment_type
		FROM employees
		WHERE employee_id = $1`

	var ref employee.Ref
	err := q.QueryRow(ctx, query, employeeID).Scan(
		&ref.EmployeeID, &ref.FullName, &ref.Department, &ref.EmploymentType,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Ref{}, employee.ErrEmployeeNotFound
		}
		return employee.Ref{}, fmt.Errorf("failed to look up employee: %w", err)
	}
	return ref, nil
}

// List implements employee.Directory.
func (d *employeeDirectory) List(ctx context.Context) ([]employee.Ref, error) {
	q := GetQuerier(ctx, d.db)

	query := `
		SELECT employee_id, full_name, department, employment_type
		FROM employees
		ORDER BY full_name`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var refs []employee.Ref
	for rows.Next() {
		var ref employee.Ref
		if err := rows.Scan(&ref.EmployeeID, &ref.FullName, &ref.Department, &ref.EmploymentType); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read employee rows: %w", err)
	}
	return refs, nil
}
