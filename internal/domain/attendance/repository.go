package attendance

import (
	"context"
	"time"
)

// Repository defines data access for attendance records. The store owns
// record identity and the one-record-per-(employee, date) invariant; event
// writes go through UpsertEvent, which must be a single atomic conditional
// write, never a read-then-write pair.
type Repository interface {
	// UpsertEvent inserts the record for (employeeID, date) or, if it
	// already exists, sets only the named event field, its image and
	// updated_at. Status is written only for check-in events.
	UpsertEvent(ctx context.Context, write EventWrite) (Record, error)

	// UpsertStatus creates or updates the record's status and notes
	// without touching event fields. Backs the manual path for leave and
	// half-day marks.
	UpsertStatus(ctx context.Context, employeeID, employeeName string, date time.Time, status Status, notes *string) (Record, error)

	// GetByEmployeeAndDate returns nil without error when no record exists.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Record, error)

	GetByID(ctx context.Context, id string) (Record, error)

	// List returns matching records most-recent-first.
	List(ctx context.Context, filter Filter) ([]Record, error)

	// ListRange returns all records with date in [start, end] inclusive,
	// used by the report aggregator.
	ListRange(ctx context.Context, start, end time.Time) ([]Record, error)

	// Update applies an administrative correction; only non-nil fields
	// are written. The classifier is bypassed.
	Update(ctx context.Context, id string, patch AdminPatch) (Record, error)

	Delete(ctx context.Context, id string) error
}

// EventWrite carries one capture event into the atomic upsert.
type EventWrite struct {
	EmployeeID   string
	EmployeeName string
	Date         time.Time
	Kind         EventKind
	Time         time.Time
	ImageRef     *string
	// Status to persist when the write creates the record or records a
	// check-in. Computed by the classifier before the write.
	Status Status
}

// AdminPatch is the administrative update payload. Nil means untouched.
type AdminPatch struct {
	Date     *time.Time
	CheckIn  *time.Time
	CheckOut *time.Time
	Status   *Status
	Notes    *string
}
