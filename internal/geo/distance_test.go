package geo

import (
	"math"
	"testing"
)

var (
	yunusobod    = Coordinate{Latitude: 41.311081, Longitude: 69.240562}
	mirzoUlugbek = Coordinate{Latitude: 41.338133, Longitude: 69.332839}
)

func TestDistanceBetweenStores(t *testing.T) {
	d := Distance(yunusobod, mirzoUlugbek)

	if d.Km <= 0 {
		t.Fatalf("expected positive distance, got %v", d.Km)
	}
	// The two Tashkent reference points are roughly 8.2km apart.
	if d.Km < 7 || d.Km > 9 {
		t.Errorf("distance out of expected range: %v km", d.Km)
	}
	// Meters derive from the unrounded distance, so they can differ from
	// km*1000 by up to half the km rounding step.
	if math.Abs(d.Meters-d.Km*1000) > 5 {
		t.Errorf("meters %v not consistent with km %v", d.Meters, d.Km)
	}
	// At 60 km/h the minute estimate is numerically close to the km value.
	if math.Abs(d.CarMinutes-d.Km) > 0.1 {
		t.Errorf("car minutes %v should approximate km %v", d.CarMinutes, d.Km)
	}
	if d.WalkMinutes <= d.CarMinutes {
		t.Errorf("walking should take longer than driving: %v vs %v", d.WalkMinutes, d.CarMinutes)
	}
}

func TestDistanceSymmetric(t *testing.T) {
	ab := Distance(yunusobod, mirzoUlugbek)
	ba := Distance(mirzoUlugbek, yunusobod)
	if ab != ba {
		t.Errorf("distance not symmetric: %+v vs %+v", ab, ba)
	}
}

func TestDistanceZeroForSamePoint(t *testing.T) {
	d := Distance(yunusobod, yunusobod)
	if d.Km != 0 || d.Meters != 0 || d.CarMinutes != 0 || d.WalkMinutes != 0 {
		t.Errorf("expected all-zero report for identical points, got %+v", d)
	}
}

func TestDistanceRounding(t *testing.T) {
	d := Distance(yunusobod, mirzoUlugbek)
	if d.Km != round(d.Km, 2) {
		t.Errorf("km not rounded to 2 decimals: %v", d.Km)
	}
	if d.CarMinutes != round(d.CarMinutes, 1) {
		t.Errorf("car minutes not rounded to 1 decimal: %v", d.CarMinutes)
	}
	if d.WalkMinutes != round(d.WalkMinutes, 1) {
		t.Errorf("walk minutes not rounded to 1 decimal: %v", d.WalkMinutes)
	}
}

func TestDistanceNaNPropagates(t *testing.T) {
	d := Distance(Coordinate{Latitude: math.NaN(), Longitude: 0}, yunusobod)
	if !math.IsNaN(d.Km) {
		t.Errorf("expected NaN to propagate, got %v", d.Km)
	}
}
