package report

import (
	"github.com/campushr/attendance-backend-go/internal/pkg/validator"
)

// ========================================
// DAILY ATTENDANCE REPORT
// ========================================

// Request selects either one date or an inclusive [StartDate, EndDate]
// range, with an optional case-insensitive search over employee name/id.
type Request struct {
	Date       string `json:"date,omitempty"`       // YYYY-MM-DD
	StartDate  string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate    string `json:"end_date,omitempty"`   // YYYY-MM-DD
	SearchTerm string `json:"search,omitempty"`
}

func (r *Request) Validate() error {
	var errs validator.ValidationErrors

	hasSingle := r.Date != ""
	hasRange := r.StartDate != "" || r.EndDate != ""

	if !hasSingle && !hasRange {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "either date or start_date/end_date is required",
		})
	}
	if hasSingle && hasRange {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date and start_date/end_date are mutually exclusive",
		})
	}
	if hasRange && (r.StartDate == "" || r.EndDate == "") {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date and end_date must both be provided",
		})
	}

	for field, value := range map[string]string{
		"date":       r.Date,
		"start_date": r.StartDate,
		"end_date":   r.EndDate,
	} {
		if value != "" {
			if _, ok := validator.IsValidDate(value); !ok {
				errs = append(errs, validator.ValidationError{
					Field:   field,
					Message: field + " must be in YYYY-MM-DD format",
				})
			}
		}
	}

	if r.StartDate != "" && r.EndDate != "" {
		start, okS := validator.IsValidDate(r.StartDate)
		end, okE := validator.IsValidDate(r.EndDate)
		if okS && okE && end.Before(start) {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must not be before start_date",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Row is one formatted (employee, date) line. Times are 12-hour clock
// strings; StatusDisplay renders "Late (N mins)" from the live arrival
// recomputation, never a second source of truth for the stored status.
type Row struct {
	EmployeeName   string `json:"employee_name"`
	EmployeeID     string `json:"employee_id"`
	EmploymentType string `json:"employment_type"`
	Date           string `json:"date"`
	SignIn         string `json:"sign_in"`
	SignOut        string `json:"sign_out"`
	StatusDisplay  string `json:"status"`
}

// Section groups rows for one department on one date.
type Section struct {
	Department string `json:"department"`
	Date       string `json:"date"`
	Rows       []Row  `json:"rows"`
}

// Result is the full report plus any data-integrity warnings raised while
// joining records to the employee directory.
type Result struct {
	Sections    []Section `json:"sections"`
	GeneratedAt string    `json:"generated_at"`
	Warnings    []string  `json:"warnings,omitempty"`
}
