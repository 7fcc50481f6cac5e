package geo

import (
	"math"
	"testing"
)

var campusAnchor = Coordinate{Latitude: 14.5995, Longitude: 120.9842}

func TestVerifyPresence(t *testing.T) {
	cases := []struct {
		name    string
		device  Coordinate
		radius  float64
		allowed bool
	}{
		{"at anchor", campusAnchor, 0.1, true},
		{"just outside radius", Coordinate{Latitude: 14.6014, Longitude: 120.9842}, 0.1, false},
		{"wider radius accepts", Coordinate{Latitude: 14.6014, Longitude: 120.9842}, 0.5, true},
	}
	for _, c := range cases {
		got := VerifyPresence(campusAnchor, c.device, c.radius)
		if got.Allowed != c.allowed {
			t.Errorf("%s: VerifyPresence allowed = %v, want %v (distance %.4f km)",
				c.name, got.Allowed, c.allowed, got.DistanceKm)
		}
	}
}

func TestDistanceKmZeroAtSamePoint(t *testing.T) {
	if d := DistanceKm(campusAnchor, campusAnchor); d != 0 {
		t.Errorf("DistanceKm(anchor, anchor) = %v, want 0", d)
	}
}

func TestDistanceKmSymmetric(t *testing.T) {
	other := Coordinate{Latitude: 14.6760, Longitude: 121.0437}
	ab := DistanceKm(campusAnchor, other)
	ba := DistanceKm(other, campusAnchor)
	if math.Abs(ab-ba) > 1e-9 {
		t.Errorf("distance not symmetric: %v vs %v", ab, ba)
	}
	// Quezon City is roughly 10 km from the anchor.
	if ab < 8 || ab > 13 {
		t.Errorf("DistanceKm = %v, expected ~10 km", ab)
	}
}

func TestCoordinateValid(t *testing.T) {
	cases := []struct {
		coord Coordinate
		want  bool
	}{
		{Coordinate{0, 0}, true},
		{Coordinate{-90, 180}, true},
		{Coordinate{90.1, 0}, false},
		{Coordinate{0, -180.5}, false},
	}
	for _, c := range cases {
		if got := c.coord.Valid(); got != c.want {
			t.Errorf("Valid(%+v) = %v, want %v", c.coord, got, c.want)
		}
	}
}
