package domain

import (
	"math"
	"testing"
)

func TestHaversineDistanceKmMiamiTampa(t *testing.T) {
	d := HaversineDistanceKm(25.7907, -80.2108, 27.9444, -82.4619)
	if math.Abs(d-327.41) > 0.05 {
		t.Fatalf("miami -> tampa = %.2f km, want 327.41", d)
	}
}

func TestHaversineDistanceKmSymmetric(t *testing.T) {
	cases := []struct {
		lat1, lon1, lat2, lon2 float64
	}{
		{25.7907, -80.2108, 27.9444, -82.4619},
		{30.4383, -84.2807, 24.5551, -81.7800},
		{0, 0, 0, 180},
		{-33.8688, 151.2093, 51.5074, -0.1278},
	}

	for _, c := range cases {
		ab := HaversineDistanceKm(c.lat1, c.lon1, c.lat2, c.lon2)
		ba := HaversineDistanceKm(c.lat2, c.lon2, c.lat1, c.lon1)
		if math.Abs(ab-ba) > 1e-9 {
			t.Errorf("d(A,B)=%v d(B,A)=%v, want equal", ab, ba)
		}
	}
}

func TestHaversineDistanceKmCoincidentPoints(t *testing.T) {
	if d := HaversineDistanceKm(27.9444, -82.4619, 27.9444, -82.4619); d != 0 {
		t.Fatalf("distance between identical points = %v, want 0", d)
	}

	c := Coordinates{Lon: -80.2108, Lat: 25.7907}
	if d := c.DistanceTo(c); d != 0 {
		t.Fatalf("DistanceTo(self) = %v, want 0", d)
	}
}
