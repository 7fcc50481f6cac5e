package geo

import "math"

// earthRadiusKm is the mean Earth radius used by the haversine formula.
const earthRadiusKm = 6371

// Coordinate is a WGS84 latitude/longitude pair. It is used both for the
// fixed campus anchor and for caller-supplied device positions.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Valid reports whether the coordinate lies inside the WGS84 range.
func (c Coordinate) Valid() bool {
	return c.Latitude >= -90 && c.Latitude <= 90 &&
		c.Longitude >= -180 && c.Longitude <= 180
}

// PresenceResult is the outcome of a geofence check.
type PresenceResult struct {
	Allowed    bool
	DistanceKm float64
}

// DistanceKm computes the great-circle distance between two coordinates in
// kilometers via the haversine formula.
func DistanceKm(a, b Coordinate) float64 {
	dLat := (b.Latitude - a.Latitude) * (math.Pi / 180.0)
	dLon := (b.Longitude - a.Longitude) * (math.Pi / 180.0)

	lat1Rad := a.Latitude * (math.Pi / 180.0)
	lat2Rad := b.Latitude * (math.Pi / 180.0)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

// VerifyPresence decides whether a device position is inside the circular
// geofence around anchor. The boundary itself counts as inside.
func VerifyPresence(anchor, device Coordinate, radiusKm float64) PresenceResult {
	distance := DistanceKm(anchor, device)
	return PresenceResult{
		Allowed:    distance <= radiusKm,
		DistanceKm: distance,
	}
}
