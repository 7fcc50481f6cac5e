package capture

import (
	"context"

	"github.com/campushr/attendance-backend-go/internal/pkg/geo"
)

// State names one position in the capture workflow state machine.
type State string

const (
	StateIdle          State = "idle"
	StateLocationCheck State = "location_check"
	StateCameraOpen    State = "camera_open"
	StateCaptured      State = "captured"
)

// LocationProvider acquires the device position. Implementations must
// honor ctx cancellation; the workflow bounds the call with a timeout.
type LocationProvider interface {
	Acquire(ctx context.Context) (geo.Coordinate, error)
}

// ImageCaptureDevice opens a capture session against the platform camera.
// Sessions are one-shot: a single frame is taken and the session is
// released immediately after.
type ImageCaptureDevice interface {
	Open(ctx context.Context) (Session, error)
}

// Session is an open camera session.
type Session interface {
	// Capture takes one still frame as an opaque encoded image.
	Capture(ctx context.Context) ([]byte, error)

	// Close releases the session. Safe to call more than once.
	Close() error
}
