package attendance

import (
	"time"
)

type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusLate    Status = "late"
	StatusHalfDay Status = "half_day"
	StatusOnLeave Status = "on_leave"
)

// ValidStatuses lists every status the administrative path may set.
// half_day and on_leave are never produced by the classifier.
var ValidStatuses = []string{
	string(StatusPresent),
	string(StatusAbsent),
	string(StatusLate),
	string(StatusHalfDay),
	string(StatusOnLeave),
}

// EventKind names the two capture events that mutate a daily record.
type EventKind string

const (
	EventCheckIn  EventKind = "check_in"
	EventCheckOut EventKind = "check_out"
)

// Record is the per-(employee, day) attendance row. Exactly one record
// exists per pair; the database enforces this with a unique constraint.
// CheckIn set with CheckOut unset means signed in, not yet out. No record
// at all means implicitly absent.
type Record struct {
	ID            string
	EmployeeID    string
	EmployeeName  string
	Date          time.Time
	CheckIn       *time.Time
	CheckOut      *time.Time
	Status        Status
	CheckInImage  *string
	CheckOutImage *string
	Notes         *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// HasEvent reports whether the record already carries the given event.
func (r *Record) HasEvent(kind EventKind) bool {
	if kind == EventCheckIn {
		return r.CheckIn != nil
	}
	return r.CheckOut != nil
}
