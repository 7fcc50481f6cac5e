package response

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/campushr/attendance-backend-go/internal/domain/attendance"
	"github.com/campushr/attendance-backend-go/internal/domain/capture"
	"github.com/campushr/attendance-backend-go/internal/domain/employee"
	"github.com/campushr/attendance-backend-go/internal/domain/report"
	"github.com/campushr/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	var outside *capture.OutsideGeofenceError
	if errors.As(err, &outside) {
		Forbidden(w, fmt.Sprintf(
			"Outside the allowed sign-in area: %.3f km from campus (allowed %.3f km)",
			outside.DistanceKm, outside.RadiusKm,
		))
		return
	}

	switch {
	// Attendance domain errors
	case errors.Is(err, attendance.ErrDuplicateEvent):
		Conflict(w, "Attendance event already recorded for today")
	case errors.Is(err, attendance.ErrOutOfOrderEvent):
		BadRequest(w, "Cannot sign out before signing in", nil)
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrEmployeeRequired):
		BadRequest(w, "Employee identity is required", nil)

	// Capture domain errors
	case errors.Is(err, capture.ErrLocationUnavailable):
		ServiceUnavailable(w, "Could not determine device location")
	case errors.Is(err, capture.ErrCameraUnavailable):
		ServiceUnavailable(w, "Camera is not available")
	case errors.Is(err, capture.ErrNoActiveCapture):
		BadRequest(w, "No capture in progress", nil)
	case errors.Is(err, capture.ErrNotCaptured):
		BadRequest(w, "No photo captured yet", nil)

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Report domain errors
	case errors.Is(err, report.ErrUnsupportedFormat):
		BadRequest(w, "Unsupported export format", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
