// Package physics applies the effects of in-flight bullet fires and live
// explosions to nearby soldiers — the "physics sweep" the tick scheduler
// runs every frame (§4.9). Bullet fires resolve their hit/miss outcome at
// exactly their EffectiveFrame; explosions apply their direct-death,
// regressive-death, and regressive-injury radii continuously while live.
// Like every other resolver, Sweep is pure: it returns messages, never
// mutates state directly.
package physics

import (
	"math/rand"

	"github.com/nstehr/vimy/vimy-core/battle"
	"github.com/nstehr/vimy/vimy-core/geometry"
)

// hitChance is the probability a bullet fire with a target connects,
// keyed by the precision the shot was taken at (§3 "Precision on bullet
// targets"; no behavior previously branched on this value, this is its
// first consumer).
func hitChance(p battle.Precision) float64 {
	if p == battle.PrecisionImprecise {
		return 0.35
	}
	return 0.8
}

// Sweep resolves every bullet fire due this frame and applies every live
// explosion's radii, returning the soldier effect messages.
func Sweep(state *battle.State, now uint64) []battle.BattleStateMessage {
	var msgs []battle.BattleStateMessage
	for _, b := range state.BulletFires {
		if b.EffectiveFrame() != now || b.Target == nil {
			continue
		}
		msgs = append(msgs, resolveBulletHit(state, b)...)
	}
	for _, e := range state.Explosions {
		if e.Expired(now) || now < e.StartFrame {
			continue
		}
		msgs = append(msgs, resolveExplosion(state, e)...)
	}
	return msgs
}

func resolveBulletHit(state *battle.State, b battle.BulletFire) []battle.BattleStateMessage {
	target := state.Soldier(b.Target.Soldier)
	if !target.CanBeDesignedAsTarget() {
		return nil
	}
	if rand.Float64() > hitChance(b.Target.Precision) {
		return nil
	}
	return []battle.BattleStateMessage{
		battle.SoldierMsg(target.Index, battle.SetAliveMessage(false)),
	}
}

func resolveExplosion(state *battle.State, e battle.Explosion) []battle.BattleStateMessage {
	radii := e.Type.Radii()
	var msgs []battle.BattleStateMessage
	for _, s := range state.Soldiers {
		if !s.CanFeelExplosion() {
			continue
		}
		d := geometry.DistanceBetween(e.Point, s.WorldPoint)
		switch {
		case d.Millimeters <= radii.DirectDeath.Millimeters:
			msgs = append(msgs, battle.SoldierMsg(s.Index, battle.SetAliveMessage(false)))
			continue
		case d.Millimeters <= radii.RegressiveDeath.Millimeters:
			if rand.Float64() < regressiveChance(d, radii.DirectDeath, radii.RegressiveDeath) {
				msgs = append(msgs, battle.SoldierMsg(s.Index, battle.SetAliveMessage(false)))
				continue
			}
		case d.Millimeters <= radii.RegressiveInjured.Millimeters:
			if !s.Unconscious && rand.Float64() < regressiveChance(d, radii.RegressiveDeath, radii.RegressiveInjured) {
				msgs = append(msgs, battle.SoldierMsg(s.Index, battle.SetUnconsciousMessage(true)))
			}
		default:
			continue
		}
		if d.Millimeters <= radii.RegressiveInjured.Millimeters {
			msgs = append(msgs, battle.SoldierMsg(s.Index, battle.IncreaseUnderFireMessage(battle.BlastIncreaseValue(d))))
		}
	}
	return msgs
}

// regressiveChance falls off linearly from 1.0 at the inner radius to 0.0
// at the outer radius (§3 Explosion: "the chance of death/injury falls off
// with distance").
func regressiveChance(d, inner, outer geometry.Distance) float64 {
	span := outer.Millimeters - inner.Millimeters
	if span <= 0 {
		return 0
	}
	return 1 - float64(d.Millimeters-inner.Millimeters)/float64(span)
}
