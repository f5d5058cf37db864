package core

import (
	"math"
	"testing"
)

func TestDistance(t *testing.T) {
	if d := Distance(0, 0, 3, 4); math.Abs(d-5) > 1e-9 {
		t.Errorf("Distance(0,0,3,4) = %v, expected 5", d)
	}
	if d := Distance(2, 2, 2, 2); d != 0 {
		t.Errorf("Distance of a point to itself = %v, expected 0", d)
	}
}

func TestTouching(t *testing.T) {
	tests := []struct {
		name     string
		x1, y1   float64
		r1       float64
		x2, y2   float64
		r2       float64
		expected bool
	}{
		{"overlapping", 100, 100, 10, 105, 100, 5, true},
		{"exactly touching edges", 0, 0, 5, 10, 0, 5, false},
		{"far apart", 0, 0, 1, 100, 100, 1, false},
		{"concentric", 50, 50, 2, 50, 50, 1, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Touching(tc.x1, tc.y1, tc.r1, tc.x2, tc.y2, tc.r2)
			if got != tc.expected {
				t.Errorf("Touching() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	if Clamp(5, 0, 10) != 5 {
		t.Error("Clamp should keep in-range value")
	}
	if Clamp(-3, 0, 10) != 0 {
		t.Error("Clamp should raise to min")
	}
	if Clamp(42, 0, 10) != 10 {
		t.Error("Clamp should lower to max")
	}
	if ClampF(1.5, 2, 3) != 2 {
		t.Error("ClampF should raise to min")
	}
	if ClampF(3.5, 2, 3) != 3 {
		t.Error("ClampF should lower to max")
	}
}
