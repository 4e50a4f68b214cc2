package physics

import (
	"math"
	"testing"
)

func TestCirclesOverlapIsStrict(t *testing.T) {
	cases := []struct {
		name string
		dist float64
		want bool
	}{
		{"clearly apart", 25, false},
		{"touching exactly", 20, false},
		{"just inside", 19.999, true},
		{"concentric", 0, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CirclesOverlap(0, 0, 12, tc.dist, 0, 8); got != tc.want {
				t.Errorf("distance %.3f with radius sum 20: overlap = %v, want %v", tc.dist, got, tc.want)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(-3, 0, 10); got != 0 {
		t.Errorf("Clamp(-3) = %.1f, want 0", got)
	}
	if got := Clamp(42, 0, 10); got != 10 {
		t.Errorf("Clamp(42) = %.1f, want 10", got)
	}
	if got := Clamp(7, 0, 10); got != 7 {
		t.Errorf("Clamp(7) = %.1f, want 7", got)
	}
}

func TestNormalize(t *testing.T) {
	nx, ny, mag := Normalize(3, 4)
	if mag != 5 || math.Abs(nx-0.6) > 1e-12 || math.Abs(ny-0.8) > 1e-12 {
		t.Errorf("Normalize(3, 4) = (%.4f, %.4f, %.4f), want (0.6, 0.8, 5)", nx, ny, mag)
	}

	nx, ny, mag = Normalize(0, 0)
	if nx != 0 || ny != 0 || mag != 0 {
		t.Errorf("Normalize(0, 0) = (%.4f, %.4f, %.4f), want zeros", nx, ny, mag)
	}
}

func TestDistance(t *testing.T) {
	if got := Distance(1, 1, 4, 5); got != 5 {
		t.Errorf("Distance = %.4f, want 5", got)
	}
	if got := DistanceSquared(1, 1, 4, 5); got != 25 {
		t.Errorf("DistanceSquared = %.4f, want 25", got)
	}
}
