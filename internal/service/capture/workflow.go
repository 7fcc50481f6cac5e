package capture

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/campushr/attendance-backend-go/internal/domain/attendance"
	"github.com/campushr/attendance-backend-go/internal/domain/capture"
	"github.com/campushr/attendance-backend-go/internal/pkg/geo"
)

// FrameStore persists a captured frame and returns its opaque reference.
// The image is stored evidence only; nothing downstream inspects it.
type FrameStore interface {
	SaveFrame(ctx context.Context, employeeID string, day time.Time, kind attendance.EventKind, frame []byte) (string, error)
}

// Workflow drives one sign-in/out capture per employee:
//
//	Idle -> LocationCheck -> CameraOpen -> Captured -> Idle
//
// A geofence or location failure aborts before any camera access. Cancel
// at any point releases the camera and discards the frame with no
// persisted side effect. A store failure at submit keeps the attempt in
// Captured so the caller can resubmit without recapturing.
type Workflow struct {
	anchor          geo.Coordinate
	radiusKm        float64
	locationTimeout time.Duration
	store           attendance.Service
	frames          FrameStore
	loc             *time.Location
	now             func() time.Time

	mu       sync.Mutex
	attempts map[string]*attempt
}

type attempt struct {
	kind         attendance.EventKind
	employeeName string
	state        capture.State
	session      capture.Session
	frame        []byte
}

type Option func(*Workflow)

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(w *Workflow) { w.now = now }
}

func NewWorkflow(anchor geo.Coordinate, radiusKm float64, locationTimeout time.Duration, store attendance.Service, frames FrameStore, loc *time.Location, opts ...Option) *Workflow {
	w := &Workflow{
		anchor:          anchor,
		radiusKm:        radiusKm,
		locationTimeout: locationTimeout,
		store:           store,
		frames:          frames,
		loc:             loc,
		now:             time.Now,
		attempts:        make(map[string]*attempt),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start begins a capture attempt: acquire the device position under the
// configured timeout, evaluate the geofence, then open a camera session.
// Any prior open attempt for the employee is released first. The camera
// is never touched when the location gate fails.
func (w *Workflow) Start(ctx context.Context, employeeID, employeeName string, kind attendance.EventKind, location capture.LocationProvider, camera capture.ImageCaptureDevice) error {
	w.Cancel(employeeID)

	att := &attempt{
		kind:         kind,
		employeeName: employeeName,
		state:        capture.StateLocationCheck,
	}
	w.mu.Lock()
	w.attempts[employeeID] = att
	w.mu.Unlock()

	locCtx, cancel := context.WithTimeout(ctx, w.locationTimeout)
	defer cancel()

	position, err := location.Acquire(locCtx)
	if err != nil {
		w.Cancel(employeeID)
		return fmt.Errorf("%w: %v", capture.ErrLocationUnavailable, err)
	}

	presence := geo.VerifyPresence(w.anchor, position, w.radiusKm)
	if !presence.Allowed {
		w.Cancel(employeeID)
		return &capture.OutsideGeofenceError{
			DistanceKm: presence.DistanceKm,
			RadiusKm:   w.radiusKm,
		}
	}

	session, err := camera.Open(ctx)
	if err != nil {
		w.Cancel(employeeID)
		return fmt.Errorf("%w: %v", capture.ErrCameraUnavailable, err)
	}

	w.mu.Lock()
	att.session = session
	att.state = capture.StateCameraOpen
	w.mu.Unlock()
	return nil
}

// Capture takes one still frame and releases the camera session
// immediately; the device is one-shot, not streaming.
func (w *Workflow) Capture(ctx context.Context, employeeID string) error {
	w.mu.Lock()
	att, ok := w.attempts[employeeID]
	w.mu.Unlock()
	if !ok || att.state != capture.StateCameraOpen {
		return capture.ErrNoActiveCapture
	}

	frame, err := att.session.Capture(ctx)
	closeErr := att.session.Close()
	if err != nil {
		w.Cancel(employeeID)
		return fmt.Errorf("%w: %v", capture.ErrCameraUnavailable, err)
	}
	if closeErr != nil {
		slog.Warn("failed to release capture session", "employee_id", employeeID, "error", closeErr)
	}

	w.mu.Lock()
	att.session = nil
	att.frame = frame
	att.state = capture.StateCaptured
	w.mu.Unlock()
	return nil
}

// Cancel aborts the employee's attempt, if any, releasing the camera and
// discarding any captured frame. Nothing is persisted.
func (w *Workflow) Cancel(employeeID string) {
	w.mu.Lock()
	att, ok := w.attempts[employeeID]
	delete(w.attempts, employeeID)
	w.mu.Unlock()

	if ok && att.session != nil {
		if err := att.session.Close(); err != nil {
			slog.Warn("failed to release capture session", "employee_id", employeeID, "error", err)
		}
	}
}

// State reports the employee's current position in the state machine.
func (w *Workflow) State(employeeID string) capture.State {
	w.mu.Lock()
	defer w.mu.Unlock()
	if att, ok := w.attempts[employeeID]; ok {
		return att.state
	}
	return capture.StateIdle
}

// Submit validates ordering and duplication for today, stores the frame
// and writes the event through the record store. Business-rule rejections
// end the attempt; a persistence failure leaves it in Captured so the
// caller retries without recapturing.
func (w *Workflow) Submit(ctx context.Context, employeeID string) (attendance.Record, error) {
	w.mu.Lock()
	att, ok := w.attempts[employeeID]
	w.mu.Unlock()
	if !ok {
		return attendance.Record{}, capture.ErrNoActiveCapture
	}
	if att.state != capture.StateCaptured {
		return attendance.Record{}, capture.ErrNotCaptured
	}

	now := w.now().In(w.loc)
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	if err := w.guard(ctx, employeeID, day, att.kind); err != nil {
		// Rejections are final for this attempt; retrying the same frame
		// cannot change the outcome.
		w.Cancel(employeeID)
		return attendance.Record{}, err
	}

	imageRef, err := w.frames.SaveFrame(ctx, employeeID, day, att.kind, att.frame)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to store capture frame: %w", err)
	}

	rec, err := w.store.RecordEvent(ctx, employeeID, att.employeeName, day, att.kind, now, &imageRef)
	if err != nil {
		// Frame retained; the attempt stays in Captured for resubmission.
		return attendance.Record{}, fmt.Errorf("failed to record %s: %w", att.kind, err)
	}

	w.mu.Lock()
	delete(w.attempts, employeeID)
	w.mu.Unlock()
	return rec, nil
}

// Run drives the full attempt in one call, for callers that deliver the
// position and the photo together (the HTTP check-in endpoints).
func (w *Workflow) Run(ctx context.Context, employeeID, employeeName string, kind attendance.EventKind, location capture.LocationProvider, camera capture.ImageCaptureDevice) (attendance.Record, error) {
	if err := w.Start(ctx, employeeID, employeeName, kind, location, camera); err != nil {
		return attendance.Record{}, err
	}
	if err := w.Capture(ctx, employeeID); err != nil {
		return attendance.Record{}, err
	}
	rec, err := w.Submit(ctx, employeeID)
	if err != nil {
		w.Cancel(employeeID)
		return attendance.Record{}, err
	}
	return rec, nil
}

// guard enforces the submit-level ordering rules. They live here, not in
// the record store, so the store stays usable for corrective writes.
func (w *Workflow) guard(ctx context.Context, employeeID string, day time.Time, kind attendance.EventKind) error {
	today, err := w.store.Today(ctx, employeeID)
	if err != nil {
		return fmt.Errorf("failed to load today's record: %w", err)
	}

	switch kind {
	case attendance.EventCheckOut:
		if !today.HasRecord || today.Record.CheckIn == nil {
			return attendance.ErrOutOfOrderEvent
		}
		if today.Record.CheckOut != nil {
			return attendance.ErrDuplicateEvent
		}
	default:
		if today.HasRecord && today.Record.CheckIn != nil {
			return attendance.ErrDuplicateEvent
		}
	}
	return nil
}
