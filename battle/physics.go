package battle

import (
	"github.com/nstehr/vimy/vimy-core/geometry"
	"github.com/nstehr/vimy/vimy-core/weapon"
)

// Precision is how tightly a bullet fire targets a specific soldier: the
// gesture resolver sets it and the physics sweep uses it to pick the hit
// chance.
type Precision int

const (
	PrecisionNormal Precision = iota
	PrecisionImprecise
)

// Target pairs a targeted soldier with the precision the shot was taken at.
type Target struct {
	Soldier   SoldierIndex
	Precision Precision
}

// BulletFire is a single traced shot: the frame window it is "in flight"
// for, its endpoints, optional target, the ammunition it carries, an
// optional gun-fire sound id (only the first bullet of a burst carries
// one), and the shot descriptor it was emitted under.
type BulletFire struct {
	Index      BulletFireIndex
	StartFrame uint64
	EndFrame   uint64
	From       geometry.WorldPoint
	To         geometry.WorldPoint
	Target     *Target
	Ammunition weapon.Ammunition
	Sound      *weapon.GunFireSoundKind
	Shot       weapon.Shot
}

// BulletFireDurationFrames is how many frames a bullet fire remains
// "in flight" after its start frame — the scheduler retires it once
// frame_i > EndFrame (§3, "Lifecycles").
const BulletFireDurationFrames = 10

// NewBulletFire builds a bullet fire starting frameOffset frames after now,
// consistent with a burst's per-bullet stagger (weapon.FrameOffsetOnBurst).
func NewBulletFire(index BulletFireIndex, now uint64, frameOffset uint64, from, to geometry.WorldPoint, target *Target, ammo weapon.Ammunition, sound *weapon.GunFireSoundKind, shot weapon.Shot) BulletFire {
	start := now + frameOffset
	return BulletFire{
		Index:      index,
		StartFrame: start,
		EndFrame:   start + BulletFireDurationFrames,
		From:       from,
		To:         to,
		Target:     target,
		Ammunition: ammo,
		Sound:      sound,
		Shot:       shot,
	}
}

// EffectiveFrame is the single frame at which this bullet fire's hit/miss
// outcome is computed — always its start frame, per §3 ("Effective at
// exactly one frame, computed at emission").
func (b BulletFire) EffectiveFrame() uint64 { return b.StartFrame }

func (b BulletFire) Expired(frame uint64) bool { return frame > b.EndFrame }

// ExplosiveType names a class of explosive, each with its own three
// configurable radii (§3 "Explosion").
type ExplosiveType int

const (
	ExplosiveGrenade ExplosiveType = iota
	ExplosiveArtilleryShell
)

// Radii holds the three distances that bound an explosion's lethality: any
// soldier within DirectDeath dies outright; within RegressiveDeath the
// chance of death falls off with distance; within RegressiveInjured the
// chance of injury falls off with distance.
type Radii struct {
	DirectDeath       geometry.Distance
	RegressiveDeath   geometry.Distance
	RegressiveInjured geometry.Distance
}

func (t ExplosiveType) Radii() Radii {
	switch t {
	case ExplosiveGrenade:
		return Radii{
			DirectDeath:       geometry.DistanceFromMeters(2),
			RegressiveDeath:   geometry.DistanceFromMeters(5),
			RegressiveInjured: geometry.DistanceFromMeters(10),
		}
	case ExplosiveArtilleryShell:
		return Radii{
			DirectDeath:       geometry.DistanceFromMeters(5),
			RegressiveDeath:   geometry.DistanceFromMeters(12),
			RegressiveInjured: geometry.DistanceFromMeters(25),
		}
	default:
		return Radii{}
	}
}

// ExplosionDurationFrames is how long an explosion's animation/effect
// window lasts after it starts.
const ExplosionDurationFrames = 30

// Explosion is a point detonation with a start/end frame window and the
// explosive type's three radii.
type Explosion struct {
	Index      ExplosionIndex
	Point      geometry.WorldPoint
	Type       ExplosiveType
	StartFrame uint64
	EndFrame   uint64
}

func NewExplosion(index ExplosionIndex, point geometry.WorldPoint, t ExplosiveType, now uint64) Explosion {
	return Explosion{Index: index, Point: point, Type: t, StartFrame: now, EndFrame: now + ExplosionDurationFrames}
}

func (e Explosion) Expired(frame uint64) bool { return frame > e.EndFrame }

// CannonBlast is the muzzle-flash/cannon-fire visual event emitted every
// time a weapon discharges; it carries no state used by later ticks — it
// exists purely to be broadcast and rendered once.
type CannonBlast struct {
	Point   geometry.WorldPoint
	Angle   geometry.Angle
	Ammo    weapon.Ammunition
}

func NewCannonBlast(point geometry.WorldPoint, angle geometry.Angle, ammo weapon.Ammunition) CannonBlast {
	return CannonBlast{Point: point, Angle: angle, Ammo: ammo}
}
