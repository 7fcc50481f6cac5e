package attendance

import (
	"strings"

	"github.com/campushr/attendance-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

// UpsertRequest is the manual create/upsert payload. Times are
// institution-local HH:MM strings; date is YYYY-MM-DD.
type UpsertRequest struct {
	EmployeeID    string  `json:"employee_id"`
	EmployeeName  string  `json:"employee_name"`
	Date          string  `json:"date"`
	Status        *string `json:"status,omitempty"`
	CheckIn       *string `json:"check_in,omitempty"`
	CheckOut      *string `json:"check_out,omitempty"`
	CheckInImage  *string `json:"check_in_image,omitempty"`
	CheckOutImage *string `json:"check_out_image,omitempty"`
	Notes         *string `json:"notes,omitempty"`
}

func (r *UpsertRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	} else if !validator.IsValidEmployeeID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id has an invalid format",
		})
	}

	if validator.IsEmpty(r.EmployeeName) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_name",
			Message: "employee_name is required",
		})
	}

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if r.Status != nil && !validator.IsInSlice(strings.ToLower(*r.Status), ValidStatuses) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: present, absent, late, half_day, on_leave",
		})
	}

	if r.CheckIn != nil {
		if _, ok := validator.IsValidTimeOfDay(*r.CheckIn); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "check_in",
				Message: "check_in must be in HH:MM format",
			})
		}
	}

	if r.CheckOut != nil {
		if _, ok := validator.IsValidTimeOfDay(*r.CheckOut); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "check_out",
				Message: "check_out must be in HH:MM format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Filter narrows List results. All fields are optional.
type Filter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	Date       *string `json:"date,omitempty"`       // YYYY-MM-DD
	StartDate  *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate    *string `json:"end_date,omitempty"`   // YYYY-MM-DD
	Status     *string `json:"status,omitempty"`
}

func (f *Filter) Validate() error {
	var errs validator.ValidationErrors

	if f.Status != nil && !validator.IsInSlice(*f.Status, ValidStatuses) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: present, absent, late, half_day, on_leave",
		})
	}

	for field, value := range map[string]*string{
		"date":       f.Date,
		"start_date": f.StartDate,
		"end_date":   f.EndDate,
	} {
		if value != nil && *value != "" {
			if _, ok := validator.IsValidDate(*value); !ok {
				errs = append(errs, validator.ValidationError{
					Field:   field,
					Message: field + " must be in YYYY-MM-DD format",
				})
			}
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateRequest is the administrative correction payload. It bypasses the
// classifier: the caller supplies status explicitly.
type UpdateRequest struct {
	ID       string  `json:"-"`
	Date     *string `json:"date,omitempty"`      // YYYY-MM-DD
	CheckIn  *string `json:"check_in,omitempty"`  // HH:MM
	CheckOut *string `json:"check_out,omitempty"` // HH:MM
	Status   *string `json:"status,omitempty"`
	Notes    *string `json:"notes,omitempty"`
}

func (r *UpdateRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Date != nil && *r.Date != "" {
		if _, ok := validator.IsValidDate(*r.Date); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	if r.Status != nil && !validator.IsInSlice(strings.ToLower(*r.Status), ValidStatuses) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: present, absent, late, half_day, on_leave",
		})
	}

	if r.CheckIn != nil {
		if _, ok := validator.IsValidTimeOfDay(*r.CheckIn); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "check_in",
				Message: "check_in must be in HH:MM format",
			})
		}
	}

	if r.CheckOut != nil {
		if _, ok := validator.IsValidTimeOfDay(*r.CheckOut); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "check_out",
				Message: "check_out must be in HH:MM format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// RecordResponse is the wire shape of a record.
type RecordResponse struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employee_id"`
	EmployeeName  string  `json:"employee_name"`
	Date          string  `json:"date"`
	CheckIn       *string `json:"check_in,omitempty"`
	CheckOut      *string `json:"check_out,omitempty"`
	Status        string  `json:"status"`
	CheckInImage  *string `json:"check_in_image,omitempty"`
	CheckOutImage *string `json:"check_out_image,omitempty"`
	Notes         *string `json:"notes,omitempty"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

// TodayResponse backs the read-only today poll.
type TodayResponse struct {
	HasRecord   bool            `json:"has_record"`
	Record      *RecordResponse `json:"record,omitempty"`
	CanCheckIn  bool            `json:"can_check_in"`
	CanCheckOut bool            `json:"can_check_out"`
}
