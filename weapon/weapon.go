// Package weapon models magazine/weapon families, reload and fire
// semantics, and the shot/ammunition data carried on bullet fires — ported
// from the source engine's battle_core::game::weapon.
package weapon

// Family identifies a magazine/weapon family. A weapon only accepts
// magazines of its own family (§3, "Magazine & Weapon").
type Family int

const (
	FamilyMosinNagant Family = iota
	FamilyMauser
)

func (f Family) String() string {
	switch f {
	case FamilyMosinNagant:
		return "Mosin Nagant"
	case FamilyMauser:
		return "Mauser"
	default:
		return "Unknown"
	}
}

// Ammunition is the caliber a magazine/weapon fires.
type Ammunition int

const (
	Ammunition762x54R Ammunition = iota
	Ammunition792x57
)

func (f Family) Ammunition() Ammunition {
	switch f {
	case FamilyMosinNagant:
		return Ammunition762x54R
	default:
		return Ammunition792x57
	}
}

// Magazine holds a family tag and a fill count in [0, capacity].
type Magazine struct {
	Family Family
	Fill   int
}

// FullMagazine returns a new magazine of the given family at capacity.
//
// NB: every family's capacity is hardcoded to 5 here, exactly as the source
// engine's Magazine::full does — it ignores the family entirely and
// clamps to the same constant regardless of weapon type. §9 flags this as
// "likely a design placeholder"; it is preserved rather than fixed.
func FullMagazine(family Family) Magazine {
	return Magazine{Family: family, Fill: 5}
}

func (m Magazine) Filled() bool { return m.Fill > 0 }

func (m *Magazine) removeOne() {
	if m.Fill > 0 {
		m.Fill--
	}
}

// Weapon is a soldier's firearm: a ready-bullet bit plus an optional
// mounted magazine of the weapon's own family.
type Weapon struct {
	Family      Family
	ReadyBullet bool
	Magazine    *Magazine
}

func NewWeapon(family Family) Weapon { return Weapon{Family: family} }

// AcceptsMagazine reports whether m matches this weapon's family.
func (w Weapon) AcceptsMagazine(m Magazine) bool { return m.Family == w.Family }

func (w Weapon) AmmunitionKind() Ammunition {
	if w.Magazine != nil {
		return w.Magazine.Family.Ammunition()
	}
	return w.Family.Ammunition()
}

// CanFire is true exactly when the ready-bullet bit is set (§8 invariant:
// can_fire ⇒ ready_bullet).
func (w Weapon) CanFire() bool { return w.ReadyBullet }

// CanReload is true when the mounted magazine has at least one round.
func (w Weapon) CanReload() bool {
	return w.Magazine != nil && w.Magazine.Filled()
}

// Shot marks the ready bullet as spent.
func (w *Weapon) Shot() { w.ReadyBullet = false }

// Reload implements §3's reload semantics: if there is no ready bullet and
// the mounted magazine is non-empty, decrement it and chamber a round; if
// the mounted magazine becomes empty in the process, unset it.
func (w *Weapon) Reload() {
	if w.ReadyBullet {
		return
	}
	if w.Magazine == nil {
		return
	}
	if w.Magazine.Filled() {
		w.Magazine.removeOne()
		w.ReadyBullet = true
	}
	if !w.Magazine.Filled() {
		w.Magazine = nil
	}
}

// Mount replaces the weapon's magazine with m — only ever called after
// validating AcceptsMagazine, or popping a matching loose magazine.
func (w *Weapon) Mount(m Magazine) { w.Magazine = &m }

func (w *Weapon) MountPtr(m *Magazine) { w.Magazine = m }

// PopMatchingLoose removes and returns the first loose magazine matching
// the weapon's family, or nil if none match.
func PopMatchingLoose(loose []Magazine, family Family) ([]Magazine, *Magazine) {
	for i, m := range loose {
		if m.Family == family {
			picked := m
			remaining := append(append([]Magazine{}, loose[:i]...), loose[i+1:]...)
			return remaining, &picked
		}
	}
	return loose, nil
}

// Shot describes a single firing event: how many bullets leave the weapon
// in a burst, and the inter-bullet frame offset within that burst.
type Shot struct {
	Count           int
	FrameOffset     uint64
}

// ShotType derives whether the weapon fires single-shot or a burst based on
// the number of enemy soldiers found near the impact point (§4.6).
func (w Weapon) ShotType(opponentsAround int) Shot {
	if opponentsAround >= 2 {
		return Shot{Count: 3, FrameOffset: w.FrameOffsetOnBurst()}
	}
	return Shot{Count: 1, FrameOffset: w.FrameOffsetOnBurst()}
}

// FrameOffsetOnBurst is the number of frames separating each bullet within
// a burst shot.
func (w Weapon) FrameOffsetOnBurst() uint64 { return 3 }

// RangeOnBurst multiplies the per-meter inaccuracy factor used to jitter
// every bullet of a shot, the first one included.
func (w Weapon) RangeOnBurst() float64 { return 1.5 }

// GunFireSoundKind names the class of gunfire sound to emit (no audio asset
// is played here — only the identifier crosses the wire, per the Non-goals
// on audio playback).
type GunFireSoundKind int

const (
	SoundMosinNagantFire GunFireSoundKind = iota
	SoundMauserFire
)

func (f Family) GunFireSoundKind() GunFireSoundKind {
	switch f {
	case FamilyMosinNagant:
		return SoundMosinNagantFire
	default:
		return SoundMauserFire
	}
}

// ReloadSoundKind names the class of reload sound to emit.
type ReloadSoundKind int

const (
	SoundMosinNagantReload ReloadSoundKind = iota
	SoundMauserReload
)

func (f Family) ReloadSoundKind() ReloadSoundKind {
	switch f {
	case FamilyMosinNagant:
		return SoundMosinNagantReload
	default:
		return SoundMauserReload
	}
}
