package battle

import "testing"

func TestUnderFireThresholds(t *testing.T) {
	f := UnderFire{Value: 0}
	if f.Exist() || f.Warning() || f.Danger() || f.Max() {
		t.Fatal("fresh feeling should have no threshold set")
	}

	f.Increase(100)
	if !f.Warning() {
		t.Errorf("expected warning at 100, got value %d", f.Value)
	}

	f.Increase(60)
	if !f.Danger() {
		t.Errorf("expected danger at 160, got value %d", f.Value)
	}

	f.Increase(1000)
	if f.Value != UnderFireMax {
		t.Errorf("expected clamp to %d, got %d", UnderFireMax, f.Value)
	}
	if !f.Max() {
		t.Error("expected max at clamp")
	}
}

func TestUnderFireDecreaseFloorsAtZero(t *testing.T) {
	f := UnderFire{Value: 5}
	f.Decrease()
	if f.Value != 0 {
		t.Errorf("expected 0, got %d", f.Value)
	}
	f.Decrease()
	if f.Value != 0 {
		t.Errorf("expected decrease below zero to stay clamped at 0, got %d", f.Value)
	}
}
