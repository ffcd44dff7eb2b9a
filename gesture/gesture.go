// Package gesture implements the within-behavior sub-state machine
// described in spec.md §4.6: idle/aiming/reloading/firing, producing the
// bullet fire and cannon blast physics events a weapon discharge emits.
package gesture

import (
	"math/rand"

	"github.com/nstehr/vimy/vimy-core/battle"
	"github.com/nstehr/vimy/vimy-core/config"
	"github.com/nstehr/vimy/vimy-core/geometry"
	"github.com/nstehr/vimy/vimy-core/weapon"
)

// ProximityRadiusMeters is the radius, in meters, used to count nearby
// enemies around an impact point when deriving single-shot vs. burst fire
// (§4.6, "the shot type is derived from the number of enemy soldiers
// within 5 m of the impact point").
const ProximityRadiusMeters = 5

// Resolve advances one soldier's gesture by one tick. Only Idle/Engage/
// Suppress behaviors produce non-idle gestures (§4.6); any other behavior
// resets the gesture to Idle. The optional fallback return value signals
// that the caller should re-resolve the soldier's behavior (e.g. an
// EngageSoldier with no ammunition falls back to Hide).
func Resolve(s *battle.Soldier, state *battle.State, now uint64, cfg *config.Config) (battle.Gesture, []battle.BattleStateMessage, *battle.Behavior) {
	if !producesGesture(s.Behavior.Kind) {
		return battle.IdleGesture(), nil, nil
	}

	// Still mid-gesture: keep it running.
	if s.Gesture.Kind != battle.GestureIdle && s.Gesture.Until > now {
		return s.Gesture, nil, nil
	}

	class := battle.WeaponClassMain
	w := s.Weapon(class)
	if w == nil {
		fallback := battle.HideBehavior(0)
		return battle.IdleGesture(), nil, &fallback
	}

	// The aiming window just elapsed: commit to firing.
	if s.Gesture.Kind == battle.GestureAiming {
		return enterFiring(s, state, now, cfg, class, w)
	}

	if w.CanFire() {
		return battle.AimingGesture(now+cfg.AimDurationFrames, class), nil, nil
	}

	if w.CanReload() || hasLooseMagazine(s, w) {
		msgs := []battle.BattleStateMessage{
			battle.SoldierMsg(s.Index, battle.ReloadWeaponMessage(class)),
		}
		return battle.ReloadingGesture(now+cfg.ReloadDurationFrames, class), msgs, nil
	}

	// No ammunition anywhere: fall back per §4.6 point 4.
	fallback := battle.HideBehavior(0)
	return battle.IdleGesture(), nil, &fallback
}

func producesGesture(k battle.BehaviorKind) bool {
	switch k {
	case battle.BehaviorIdle, battle.BehaviorEngageSoldier, battle.BehaviorSuppressFire:
		return true
	default:
		return false
	}
}

func hasLooseMagazine(s *battle.Soldier, w *weapon.Weapon) bool {
	for _, m := range s.Magazines {
		if w.AcceptsMagazine(m) && m.Filled() {
			return true
		}
	}
	return false
}

// enterFiring implements §4.6's "On entry into Firing" emission: a weapon
// shot, the last-shoot-frame stamp, one cannon blast, and shot.count
// bullet fires staggered by the weapon's burst frame offset, each jittered
// by the per-meter inaccuracy factor; only the first bullet carries the
// fire-sound id.
func enterFiring(s *battle.Soldier, state *battle.State, now uint64, cfg *config.Config, class battle.WeaponClass, w *weapon.Weapon) (battle.Gesture, []battle.BattleStateMessage, *battle.Behavior) {
	target, targetPoint, ok := impactPoint(s, state)
	if !ok {
		fallback := battle.HideBehavior(0)
		return battle.IdleGesture(), nil, &fallback
	}

	opponentsAround := countEnemiesNear(state, s.Side, targetPoint)
	shot := w.ShotType(opponentsAround)
	ammo := w.AmmunitionKind()

	msgs := []battle.BattleStateMessage{
		battle.SoldierMsg(s.Index, battle.WeaponShotMessage(class, shot)),
		battle.SoldierMsg(s.Index, battle.SetLastShootFrameMessage(now)),
		battle.PushCannonBlastMessage(battle.NewCannonBlast(s.WorldPoint, s.Angle, ammo)),
	}

	distMeters := float64(geometry.DistanceBetween(s.WorldPoint, targetPoint).Meters())
	jitterRange := distMeters * cfg.InaccurateFireFactor * w.RangeOnBurst()

	var sound *weapon.GunFireSoundKind
	for i := 0; i < shot.Count; i++ {
		frameOffset := uint64(i) * w.FrameOffsetOnBurst()
		var soundForThisBullet *weapon.GunFireSoundKind
		if i == 0 {
			kind := w.Family.GunFireSoundKind()
			sound = &kind
			soundForThisBullet = sound
		}
		to := applyJitter(targetPoint, jitterRange)
		var bulletTarget *battle.Target
		if target != nil {
			precision := battle.PrecisionNormal
			if jitterRange > 0 {
				precision = battle.PrecisionImprecise
			}
			bulletTarget = &battle.Target{Soldier: *target, Precision: precision}
		}
		bf := battle.NewBulletFire(0, now+1, frameOffset, s.WorldPoint, to, bulletTarget, ammo, soundForThisBullet, shot)
		msgs = append(msgs, battle.PushBulletFireMessage(bf))
	}

	return battle.FiringGesture(now+cfg.FireDurationFrames, class), msgs, nil
}

// impactPoint returns the aim point for the current behavior (an engaged
// soldier's position, or a suppress-fire point) and, if engaging a
// soldier, its index.
func impactPoint(s *battle.Soldier, state *battle.State) (*battle.SoldierIndex, geometry.WorldPoint, bool) {
	switch s.Behavior.Kind {
	case battle.BehaviorEngageSoldier:
		opp, ok := s.Behavior.OpponentIndex()
		if !ok {
			return nil, geometry.WorldPoint{}, false
		}
		target := state.Soldier(opp)
		point := target.WorldPoint
		if v, ok := state.Visibilities[battle.VisibilityKey{From: s.Index, To: opp}]; ok {
			point = v.AlteredTo
		}
		return &opp, point, true
	case battle.BehaviorSuppressFire:
		return nil, s.Behavior.Point, true
	default:
		return nil, geometry.WorldPoint{}, false
	}
}

func countEnemiesNear(state *battle.State, side battle.Side, point geometry.WorldPoint) int {
	count := 0
	for _, other := range state.Soldiers {
		if other.Side == side || !other.CanBeDesignedAsTarget() {
			continue
		}
		if geometry.DistanceBetween(other.WorldPoint, point).Meters() <= ProximityRadiusMeters {
			count++
		}
	}
	return count
}

func applyJitter(p geometry.WorldPoint, r float64) geometry.WorldPoint {
	if r <= 0 {
		return p
	}
	return p.Apply(uniform(r), uniform(r))
}

// uniform draws from U(-r, r); isolated for the same reason as
// visibility.jitter — the stream is intentionally non-deterministic
// (§9 "random inaccuracy").
func uniform(r float64) float64 {
	return (rand.Float64()*2 - 1) * r
}
