package battle

import "github.com/nstehr/vimy/vimy-core/geometry"

// UnderFire tick/threshold constants, ported from the original engine's
// Feeling model: a per-soldier gauge in [0, UnderFireMax] that drives
// hide/sneak downgrades in the behavior resolver and feeds morale.
const (
	UnderFireTick    = 10
	UnderFireMax     = 200
	UnderFireDanger  = 150
	UnderFireWarning = 100
)

// UnderFire is a soldier's "under fire" feeling gauge, clamped to
// [0, UnderFireMax].
type UnderFire struct {
	Value int
}

// Decrease lowers the gauge by UnderFireTick per call (never below zero);
// the scheduler calls this at the feeling-decrement frequency (§4.9).
func (f *UnderFire) Decrease() {
	if f.Value < UnderFireTick {
		f.Value = 0
		return
	}
	f.Value -= UnderFireTick
}

// Increase raises the gauge by add, clamped to UnderFireMax.
func (f *UnderFire) Increase(add int) {
	f.Value += add
	if f.Value > UnderFireMax {
		f.Value = UnderFireMax
	}
}

func (f UnderFire) Exist() bool   { return f.Value > 0 }
func (f UnderFire) Warning() bool { return f.Value >= UnderFireWarning && f.Value < UnderFireDanger }
func (f UnderFire) Danger() bool  { return f.Value >= UnderFireDanger && f.Value < UnderFireMax }
func (f UnderFire) Max() bool     { return f.Value >= UnderFireMax }

// BlastIncreaseValue is how much an explosion at the given distance adds to
// a nearby soldier's under-fire feeling.
func BlastIncreaseValue(d geometry.Distance) int {
	switch {
	case d.Meters() < 5:
		return 150
	case d.Meters() < 10:
		return 100
	default:
		return 50
	}
}

// ProximityBulletIncreaseValue would raise a soldier's under-fire feeling
// for a bullet fire passing nearby. No subsystem calls it yet — preserved
// as a documented extension point, matching the source engine's own
// partially-wired state (the table exists, the call site doesn't).
func ProximityBulletIncreaseValue(d geometry.Distance) int {
	switch {
	case d.Meters() < 3:
		return 100
	case d.Meters() < 10:
		return 35
	default:
		return 1
	}
}
