// Package visibility computes the pairwise soldier visibility map described
// in spec.md §4.4: a Bresenham terrain raytrace with accumulating opacity,
// a behavior modifier on the target, a last-shot muzzle-flash bonus, and a
// jittered "altered" target point used to seed shot inaccuracy.
package visibility

import (
	"math/rand"

	"github.com/nstehr/vimy/vimy-core/battle"
	"github.com/nstehr/vimy/vimy-core/config"
	"github.com/nstehr/vimy/vimy-core/geometry"
	"github.com/nstehr/vimy/vimy-core/worldmap"
)

// ComputeAll recomputes the full observer→target map from scratch — the
// map is always replaced atomically, never patched (§3 "Lifecycles") — for
// every ordered pair of can-seek soldiers on opposite sides.
func ComputeAll(state *battle.State, m *worldmap.Map, cfg *config.Config) map[battle.VisibilityKey]battle.Visibility {
	out := make(map[battle.VisibilityKey]battle.Visibility)
	for _, observer := range state.Soldiers {
		if !observer.CanSeek() {
			continue
		}
		for _, target := range state.Soldiers {
			if target.Side == observer.Side {
				continue
			}
			if !target.CanBeDesignedAsTarget() {
				continue
			}
			out[battle.VisibilityKey{From: observer.Index, To: target.Index}] = trace(observer, target, state.FrameI, m, cfg)
		}
	}
	return out
}

// trace rasterizes the observer→target segment and accumulates terrain
// opacity along it, per the six-step algorithm in spec.md §4.4.
func trace(observer, target *battle.Soldier, now uint64, m *worldmap.Map, cfg *config.Config) battle.Visibility {
	from := observer.WorldPoint
	to := target.WorldPoint

	step := cfg.VisibilityPixelStep
	if step < 1 {
		step = 1
	}
	x0, y0 := int(from.X)/step, int(from.Y)/step
	x1, y1 := int(to.X)/step, int(to.Y)/step
	pixels := geometry.BresenhamLine(x0, y0, x1, y1)

	var seen geometry.GridPath
	var contributions []float64
	var breakPoint *geometry.WorldPoint
	blocked := false
	cumulative := 0.0
	newCells := 0

	for _, px := range pixels {
		worldPt := geometry.WorldPoint{X: float64(px.X * step), Y: float64(px.Y * step)}
		cell := m.GridFromWorld(worldPt)
		if seen.Contains(cell) {
			continue
		}
		seen.Push(cell)
		newCells++

		tile, ok := m.TileAt(cell)
		if !ok {
			continue
		}

		// The soldier "sees through" its own cell: drop the contribution of
		// the first VisibilityExclusionCells distinct cells on the ray.
		if newCells <= cfg.VisibilityExclusionCells {
			continue
		}

		opacity := cfg.Opacity(tile.Type)
		contributions = append(contributions, opacity)
		cumulative += opacity
		if tile.BlocksBullet() {
			blocked = true
		}
		if breakPoint == nil && cumulative >= cfg.VisibleStartsAt {
			pt := worldPt
			breakPoint = &pt
		}
	}

	pathFinalOpacity := sum(contributions)

	// Muzzle flash reveals a recently-firing target: zero the opacity of
	// the last VisibilityLastShotRevealCells cells along the ray.
	if target.LastShootFrame > 0 && now >= target.LastShootFrame &&
		now-target.LastShootFrame <= cfg.VisibilityByLastFrameShootFrames {
		n := cfg.VisibilityLastShotRevealCells
		for i := len(contributions) - 1; i >= 0 && n > 0; i-- {
			contributions[i] = 0
			n--
		}
	}
	toSceneOpacity := sum(contributions)

	// Behavior modifier: positive makes the target easier to see (e.g.
	// MoveFast), negative makes it harder (Sneak/Hide).
	toSceneOpacity -= cfg.BehaviorVisibilityModifier[int(target.Behavior.Kind)]

	visible := toSceneOpacity < cfg.VisibleStartsAt

	distance := geometry.DistanceBetween(from, to)
	r := pathFinalOpacity * cfg.TargetAlterationFactor
	altered := to.Apply(jitter(r), jitter(r))

	return battle.Visibility{
		From:             from,
		To:               to,
		PathFinalOpacity: pathFinalOpacity,
		ToSceneOpacity:   toSceneOpacity,
		Visible:          visible,
		Blocked:          blocked,
		Distance:         distance,
		BreakPoint:       breakPoint,
		AlteredTo:        altered,
	}
}

func sum(vs []float64) float64 {
	total := 0.0
	for _, v := range vs {
		total += v
	}
	return total
}

// jitter returns a uniform random value in [-r, r]; isolated behind a
// function so tests can observe it's bounded without pinning an exact
// value (§9 "random inaccuracy" — the stream is not seeded deterministically,
// matching the original's non-reproducible dispersion).
func jitter(r float64) float64 {
	if r <= 0 {
		return 0
	}
	return (rand.Float64()*2 - 1) * r
}

// SquadVisible reports whether any member of the given squad is visible
// from any can-seek member of the observing squad — the "point visibility
// from a squad" extension spec.md §4.4 describes.
func SquadVisible(visibilities map[battle.VisibilityKey]battle.Visibility, observers, targets []battle.SoldierIndex) bool {
	for _, from := range observers {
		for _, to := range targets {
			if v, ok := visibilities[battle.VisibilityKey{From: from, To: to}]; ok && v.Visible {
				return true
			}
		}
	}
	return false
}

// FirstVisibleOpponent returns the first can-be-targeted soldier on the
// opposing side visible to observer, used by the behavior resolver's Idle
// and MoveTo engagement checks (§4.5).
func FirstVisibleOpponent(visibilities map[battle.VisibilityKey]battle.Visibility, observer battle.SoldierIndex, state *battle.State) (battle.SoldierIndex, bool) {
	for _, target := range state.Soldiers {
		if !target.CanBeDesignedAsTarget() {
			continue
		}
		if v, ok := visibilities[battle.VisibilityKey{From: observer, To: target.Index}]; ok && v.Visible {
			return target.Index, true
		}
	}
	return 0, false
}

// InvalidateEngageSquadOrders implements §4.4's order-invalidation pass:
// after a visibility recompute, any EngageSquad order whose target squad
// has no member still visible to the ordering side is downgraded to Idle,
// and an interface sound is queued for that side's client.
func InvalidateEngageSquadOrders(state *battle.State, visibilities map[battle.VisibilityKey]battle.Visibility) ([]battle.BattleStateMessage, []battle.ClientStateMessage) {
	var stateMsgs []battle.BattleStateMessage
	var clientMsgs []battle.ClientStateMessage

	for i := range state.Squads {
		squad := state.Squads[i]
		leader := state.Soldier(squad.Leader)
		if leader.Order.Kind != battle.OrderEngageSquad {
			continue
		}
		target := state.Squad(leader.Order.Squad)
		if SquadVisible(visibilities, squad.Members, target.Members) {
			continue
		}
		stateMsgs = append(stateMsgs, battle.SoldierMsg(squad.Leader, battle.SetOrderMessage(battle.IdleOrder())))
		clientMsgs = append(clientMsgs, battle.PlayInterfaceSoundMessage(leader.Side, battle.SoundBip1))
	}
	return stateMsgs, clientMsgs
}

// ApplyInteriorVisibility runs the interiors-visibility pass (§4.4, §2
// C2's "interiors" share): a soldier standing inside an interior zone can
// only be seen by an observer standing in that same interior, regardless
// of what the terrain raytrace found, mirroring CanSeeInterior's gate on
// the observer rather than a separate opacity model.
func ApplyInteriorVisibility(vis map[battle.VisibilityKey]battle.Visibility, state *battle.State, m *worldmap.Map) map[battle.VisibilityKey]battle.Visibility {
	for key, v := range vis {
		if !v.Visible {
			continue
		}
		target := state.Soldier(key.To)
		zone, inside := interiorAt(m, target.WorldPoint)
		if !inside {
			continue
		}
		observer := state.Soldier(key.From)
		if !observer.CanSeeInterior() || !zone.Shape.Contains(observer.WorldPoint) {
			v.Visible = false
			vis[key] = v
		}
	}
	return vis
}

func interiorAt(m *worldmap.Map, p geometry.WorldPoint) (worldmap.Interior, bool) {
	for _, zone := range m.Interiors {
		if zone.Shape.Contains(p) {
			return zone, true
		}
	}
	return worldmap.Interior{}, false
}
