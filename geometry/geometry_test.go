package geometry

import (
	"math"
	"testing"
)

func TestShortAngleWrapsAcrossZero(t *testing.T) {
	got := ShortAngle(Angle(0.1), Angle(2*math.Pi-0.1))
	if got.Radians() >= 0 {
		t.Errorf("expected a negative short rotation wrapping backward, got %v", got)
	}
}

func TestShortAngleDirectPath(t *testing.T) {
	got := ShortAngle(0, math.Pi/4)
	if math.Abs(got.Radians()-math.Pi/4) > 1e-9 {
		t.Errorf("expected pi/4, got %v", got)
	}
}

func TestDistanceBetweenAppliesMetersCoefficient(t *testing.T) {
	d := DistanceBetween(NewWorldPoint(0, 0), NewWorldPoint(10, 0))
	if d.Meters() != 3 {
		t.Errorf("expected 3 meters (10 * 0.3), got %d", d.Meters())
	}
}

func TestWorldPathsPopsAcrossSegments(t *testing.T) {
	paths := NewWorldPaths([]WorldPath{
		NewWorldPath([]WorldPoint{NewWorldPoint(0, 0)}),
		NewWorldPath([]WorldPoint{NewWorldPoint(1, 1), NewWorldPoint(2, 2)}),
	})

	first, ok := paths.RemoveNextPoint()
	if !ok || first != NewWorldPoint(0, 0) {
		t.Fatalf("expected first point (0,0), got %v ok=%v", first, ok)
	}
	second, ok := paths.RemoveNextPoint()
	if !ok || second != NewWorldPoint(1, 1) {
		t.Fatalf("expected second point (1,1), got %v ok=%v", second, ok)
	}
	if paths.Empty() {
		t.Fatal("expected one point left in the second segment")
	}
}

func TestGridFromWorldRoundTrip(t *testing.T) {
	g := GridFromWorld(NewWorldPoint(105, 42), 32, 32)
	if g != (GridPoint{X: 3, Y: 1}) {
		t.Errorf("expected grid (3,1), got %v", g)
	}
}
