package capture

import (
	"errors"
	"fmt"
)

// Capture workflow errors. Geofence and device failures abort the attempt;
// duplicate and out-of-order guards live in the attendance domain because
// the same rules apply to any submitter.
var (
	ErrLocationUnavailable = errors.New("could not determine device location")
	ErrCameraUnavailable   = errors.New("camera is unavailable or access was denied")
	ErrNoActiveCapture     = errors.New("no capture in progress")
	ErrNotCaptured         = errors.New("no frame captured yet")
)

// OutsideGeofenceError reports a fix that landed outside the campus
// radius, carrying the measured distance for the user-facing message.
type OutsideGeofenceError struct {
	DistanceKm float64
	RadiusKm   float64
}

func (e *OutsideGeofenceError) Error() string {
	return fmt.Sprintf("outside campus geofence: %.3f km from campus (allowed %.3f km)", e.DistanceKm, e.RadiusKm)
}

// IsOutsideGeofence reports whether err is a geofence rejection.
func IsOutsideGeofence(err error) bool {
	var oge *OutsideGeofenceError
	return errors.As(err, &oge)
}
