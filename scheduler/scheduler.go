// Package scheduler runs the authoritative per-tick subsystem pass described
// in spec.md §4.9: a monotonic frame counter, a fixed subsystem order, and a
// frequency table gating which subsystems run on a given frame. It is the
// generalization of the teacher's rule Engine (rules/engine.go) — same
// shape (a struct holding compiled/static dependencies, a single per-tick
// entry point, slog diagnostics at Debug/Info level) applied to the fixed
// resolver pipeline this domain uses instead of a priority-ordered rule list.
package scheduler

import (
	"log/slog"

	"github.com/nstehr/vimy/vimy-core/battle"
	"github.com/nstehr/vimy/vimy-core/behavior"
	"github.com/nstehr/vimy/vimy-core/config"
	"github.com/nstehr/vimy/vimy-core/gesture"
	"github.com/nstehr/vimy/vimy-core/movement"
	"github.com/nstehr/vimy/vimy-core/physics"
	"github.com/nstehr/vimy/vimy-core/victory"
	"github.com/nstehr/vimy/vimy-core/visibility"
	"github.com/nstehr/vimy/vimy-core/worldmap"

	"github.com/expr-lang/expr/vm"
)

// Outcome is everything a tick produces: the battle-state messages the
// reducer already applied (kept so the caller can rebroadcast them, per
// §4.10's replication envelope) and the client-only messages (interface
// sounds, etc.) that never touch State at all.
type Outcome struct {
	BattleMessages []battle.BattleStateMessage
	ClientMessages []battle.ClientStateMessage
}

// Engine owns the static dependencies a tick needs beyond the state it's
// given: the map (for visibility/victory) and the config (for every
// subsystem's tunables and frequencies), plus the compiled flag-weight
// formula victory.EvaluateMorale needs every morale tick.
type Engine struct {
	Map    *worldmap.Map
	Config *config.Config

	weightFormula *vm.Program
}

// NewEngine compiles the flag-weight formula once, exactly as
// rules.NewEngine compiles its rule set once at construction rather than
// per tick.
func NewEngine(m *worldmap.Map, cfg *config.Config) (*Engine, error) {
	prog, err := victory.CompileWeightFormula(cfg.FlagWeightFormula)
	if err != nil {
		return nil, err
	}
	return &Engine{Map: m, Config: cfg, weightFormula: prog}, nil
}

// Tick advances state by exactly one frame, running every subsystem whose
// period divides the new frame number, in the fixed order spec.md §4.9
// documents. The frame counter is incremented first, so every subsystem
// invoked this call sees the post-increment frame as "current". This
// tick's Physics sweep runs before the Animate pass, so a bullet fire the
// gesture resolver pushes starts one frame later (it passes now+1 to
// NewBulletFire), per §4.9's "init'd with start frame = current+1" note,
// and is resolved by a later tick's sweep on its EffectiveFrame.
func (e *Engine) Tick(state *battle.State) Outcome {
	var out Outcome
	// record appends already-applied messages to the outbound batch without
	// reducing them again.
	record := func(msgs []battle.BattleStateMessage) {
		out.BattleMessages = append(out.BattleMessages, msgs...)
	}
	// apply reduces msgs against state and records them.
	apply := func(msgs []battle.BattleStateMessage) {
		if len(msgs) == 0 {
			return
		}
		battle.ReduceAll(state, msgs)
		record(msgs)
	}

	apply([]battle.BattleStateMessage{battle.IncrementFrameIMessage()})
	now := state.FrameI

	due := func(period int) bool { return period > 0 && now%uint64(period) == 0 }

	if due(e.Config.SoldierUpdatePeriod) {
		apply(e.soldierUpdate(state))
	}

	if due(e.Config.PhysicsSweepPeriod) {
		apply(physics.Sweep(state, now))
	}

	if due(e.Config.AnimatePeriod) && state.Phase == battle.PhaseBattle {
		// animatePass reduces its own messages as it goes (behavior must
		// commit before gesture resolution reads it), so only record here —
		// reducing again would double-apply non-idempotent messages like
		// WeaponShotMessage's magazine decrement.
		msgs, clientMsgs := e.animatePass(state, now)
		record(msgs)
		out.ClientMessages = append(out.ClientMessages, clientMsgs...)
	}

	if due(e.Config.VisibilityPeriod) && state.Phase == battle.PhaseBattle {
		vis := visibility.ComputeAll(state, e.Map, e.Config)
		apply([]battle.BattleStateMessage{battle.SetVisibilitiesMessage(vis)})
		invMsgs, invClientMsgs := visibility.InvalidateEngageSquadOrders(state, vis)
		apply(invMsgs)
		out.ClientMessages = append(out.ClientMessages, invClientMsgs...)
	}

	if due(e.Config.InteriorsVisibilityPeriod) && state.Phase == battle.PhaseBattle {
		updated := visibility.ApplyInteriorVisibility(state.Visibilities, state, e.Map)
		apply([]battle.BattleStateMessage{battle.SetVisibilitiesMessage(updated)})
	}

	if due(e.Config.SquadLeadersPeriod) {
		state.UpdateSquads()
	}

	if due(e.Config.FlagsOwnershipPeriod) {
		apply(victory.EvaluateOwnership(state, e.Map))
	}

	if due(e.Config.FeelingsDecrementPeriod) {
		apply(feelingsDecrement(state))
	}

	if due(e.Config.MoralePeriod) && state.Phase == battle.PhaseBattle {
		msgs, err := victory.EvaluateMorale(state, e.Map, e.weightFormula)
		if err != nil {
			slog.Error("morale evaluation failed", "frame", now, "error", err)
		} else {
			apply(msgs)
		}
	}

	if due(e.Config.VictoryCheckPeriod) && state.Phase == battle.PhaseBattle {
		apply(victory.CheckEnd(state, e.Config))
	}

	state.Clean()

	slog.Debug("tick", "frame", now, "battleMessages", len(out.BattleMessages), "clientMessages", len(out.ClientMessages))
	return out
}

// soldierUpdate is §4.9's "Soldier update (movement, orientation, behavior
// transitions)" row: it drives the movement executor every frame against
// whatever Behavior the last Animate pass resolved, without re-resolving
// that behavior itself.
func (e *Engine) soldierUpdate(state *battle.State) []battle.BattleStateMessage {
	var msgs []battle.BattleStateMessage
	for _, s := range state.Soldiers {
		if !s.CanBeAnimated() {
			continue
		}
		msgs = append(msgs, movement.Resolve(s, state, modeOf(s, state), e.Config)...)
	}
	return msgs
}

// animatePass is §4.9's "Animate pass (behavior/gesture resolve)" row.
// Every soldier's behavior is resolved from a stable read of its current
// Order before any squad leader's propagation is applied, so a subordinate
// that receives a new Order from its leader this same pass only acts on it
// starting next pass — matching §4.5's "members re-resolve locally next
// tick" — and gesture resolution always sees this pass's freshly committed
// behaviors, never a stale one.
func (e *Engine) animatePass(state *battle.State, now uint64) ([]battle.BattleStateMessage, []battle.ClientStateMessage) {
	resolved := make(map[battle.SoldierIndex]battle.Behavior, len(state.Soldiers))
	for _, s := range state.Soldiers {
		if !s.CanBeAnimated() {
			continue
		}
		resolved[s.Index] = behavior.Resolve(s, state, modeOf(s, state), e.Config)
	}

	var behaviorMsgs []battle.BattleStateMessage
	for i := range state.Squads {
		squad := &state.Squads[i]
		leader := state.Soldier(squad.Leader)
		if !leader.CanBeAnimated() {
			continue
		}
		behaviorMsgs = append(behaviorMsgs, behavior.Propagate(state, squad, resolved[leader.Index], leader.Behavior)...)
		for _, member := range squad.Subordinates() {
			s := state.Soldier(member)
			if !s.CanBeAnimated() {
				continue
			}
			behaviorMsgs = append(behaviorMsgs, battle.SoldierMsg(s.Index, battle.SetBehaviorMessage(resolved[s.Index])))
		}
	}
	battle.ReduceAll(state, behaviorMsgs)

	var gestureMsgs []battle.BattleStateMessage
	var clientMsgs []battle.ClientStateMessage
	for _, s := range state.Soldiers {
		if !s.CanBeAnimated() {
			continue
		}
		g, msgs, fallback := gesture.Resolve(s, state, now, e.Config)
		step := []battle.BattleStateMessage{battle.SoldierMsg(s.Index, battle.SetGestureMessage(g))}
		step = append(step, msgs...)
		if fallback != nil {
			step = append(step, battle.SoldierMsg(s.Index, battle.SetBehaviorMessage(*fallback)))
		}
		battle.ReduceAll(state, step)
		gestureMsgs = append(gestureMsgs, step...)
	}

	return append(behaviorMsgs, gestureMsgs...), clientMsgs
}

// feelingsDecrement is §4.9's "Feelings decrement" row: every living
// soldier's under-fire feeling cools down a step every FeelingsDecrementPeriod
// frames, per battle.UnderFire's own decay table.
func feelingsDecrement(state *battle.State) []battle.BattleStateMessage {
	var msgs []battle.BattleStateMessage
	for _, s := range state.Soldiers {
		if !s.Alive {
			continue
		}
		msgs = append(msgs, battle.SoldierMsg(s.Index, battle.DecreaseUnderFireMessage()))
	}
	return msgs
}

// modeOf reports whether a soldier is being driven as a vehicle occupant
// (driver or passenger) or as a pedestrian, the same distinction
// behavior.Resolve and movement.Resolve branch their per-tick logic on.
func modeOf(s *battle.Soldier, state *battle.State) battle.BehaviorMode {
	if _, boarded := state.SoldiersOnBoard[s.Index]; boarded {
		return battle.BehaviorModeVehicle
	}
	return battle.BehaviorModeGround
}
