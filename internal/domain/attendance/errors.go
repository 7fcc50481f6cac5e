package attendance

import "errors"

// Attendance domain errors
var (
	// Capture-time guard errors
	ErrDuplicateEvent  = errors.New("this event is already recorded for today")
	ErrOutOfOrderEvent = errors.New("cannot check out before checking in")

	// General errors
	ErrRecordNotFound   = errors.New("attendance record not found")
	ErrEmployeeRequired = errors.New("employee id is required")
)
