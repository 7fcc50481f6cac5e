package attendance

import (
	"context"
	"time"
)

// Service defines the record store operations. RecordEvent is the only
// path the capture workflow uses; the rest back the administrative and
// read-only HTTP surface.
type Service interface {
	// RecordEvent performs the idempotent event upsert for one capture
	// event, classifying status internally for check-ins.
	RecordEvent(ctx context.Context, employeeID, employeeName string, date time.Time, kind EventKind, at time.Time, imageRef *string) (Record, error)

	// Upsert handles the manual create/upsert payload.
	Upsert(ctx context.Context, req UpsertRequest) (RecordResponse, error)

	// List returns matching records, most-recent-first.
	List(ctx context.Context, filter Filter) ([]RecordResponse, error)

	// Today returns the caller's record for the current day, if any.
	// Idempotent and side-effect-free; safe to poll.
	Today(ctx context.Context, employeeID string) (TodayResponse, error)

	Get(ctx context.Context, id string) (RecordResponse, error)

	// Update applies an administrative correction, bypassing the classifier.
	Update(ctx context.Context, req UpdateRequest) (RecordResponse, error)

	Delete(ctx context.Context, id string) error
}
