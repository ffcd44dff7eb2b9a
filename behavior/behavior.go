// Package behavior implements the order→behavior derivation described in
// spec.md §4.5: a pure function of (soldier, state) that also knows how to
// propagate a squad leader's resolved behavior to its members.
package behavior

import (
	"github.com/nstehr/vimy/vimy-core/battle"
	"github.com/nstehr/vimy/vimy-core/config"
	"github.com/nstehr/vimy/vimy-core/geometry"
	"github.com/nstehr/vimy/vimy-core/visibility"
)

// Mode distinguishes a ground soldier from vehicle crew; Defend/Hide/Move
// resolve differently depending on it (§4.5).
type Mode = battle.BehaviorMode

const (
	ModeGround  = battle.BehaviorModeGround
	ModeVehicle = battle.BehaviorModeVehicle
)

// ChassisAngleTolerance is how close a vehicle's chassis must be to a
// target bearing before Defend/Hide consider it "aligned" rather than
// issuing RotateTo.
const ChassisAngleTolerance = geometry.Angle(0.05)

// Resolve derives a soldier's Behavior from its Order and the current
// battle context, per §4.5's per-order-kind rules. It is a pure function:
// callers apply the result via a SetBehavior message, never mutate state
// directly here.
func Resolve(s *battle.Soldier, state *battle.State, mode Mode, cfg *config.Config) battle.Behavior {
	if !s.Alive {
		return battle.DeadBehavior()
	}
	if s.Unconscious {
		return battle.UnconsciousBehavior()
	}

	opponent, hasOpponent := visibility.FirstVisibleOpponent(state.Visibilities, s.Index, state)

	switch s.Order.Kind {
	case battle.OrderIdle:
		if hasOpponent {
			return battle.EngageSoldierBehavior(opponent)
		}
		if s.UnderFire.Exist() {
			return battle.HideBehavior(0)
		}
		return battle.IdleBehavior(battle.BodyCrouched)

	case battle.OrderMoveTo:
		if hasOpponent {
			return battle.EngageSoldierBehavior(opponent)
		}
		if mode == ModeVehicle {
			return battle.DriveToBehavior(s.Order.Paths)
		}
		if s.UnderFire.Warning() || s.UnderFire.Danger() || s.UnderFire.Max() {
			return battle.SneakToBehavior(s.Order.Paths)
		}
		return battle.MoveToBehavior(s.Order.Paths)

	case battle.OrderMoveFastTo:
		if s.UnderFire.Danger() || s.UnderFire.Max() {
			return battle.SneakToBehavior(s.Order.Paths)
		}
		return battle.MoveFastToBehavior(s.Order.Paths)

	case battle.OrderSneakTo:
		return battle.SneakToBehavior(s.Order.Paths)

	case battle.OrderDefend:
		return resolveStance(s, state, mode, hasOpponent, opponent, battle.DefendBehavior(s.Order.Angle), s.Order.Angle)

	case battle.OrderHide:
		return resolveStance(s, state, mode, hasOpponent, opponent, battle.HideBehavior(s.Order.Angle), s.Order.Angle)

	case battle.OrderEngageSquad:
		return resolveEngageSquad(s, state)

	case battle.OrderSuppressFire:
		return battle.SuppressFireBehavior(s.Order.Point)

	default:
		return battle.IdleBehavior(battle.BodyCrouched)
	}
}

// resolveStance implements Defend/Hide's shared rule (§4.5): ground units
// engage if an opponent is visible, else echo the order; vehicle crews
// rotate the chassis to the ordered angle before settling idle.
func resolveStance(s *battle.Soldier, state *battle.State, mode Mode, hasOpponent bool, opponent battle.SoldierIndex, echo battle.Behavior, angle geometry.Angle) battle.Behavior {
	if mode == ModeGround {
		if hasOpponent {
			return battle.EngageSoldierBehavior(opponent)
		}
		return echo
	}
	if placement, boarded := state.SoldiersOnBoard[s.Index]; boarded {
		vehicle := state.Vehicle(placement.Vehicle)
		if vehicle.ChassisOrientationMatch(angle, ChassisAngleTolerance) {
			return VehicleStanceReached()
		}
	}
	return battle.RotateToBehavior(angle)
}

// VehicleStanceReached is the behavior resolveStance returns once a
// vehicle's chassis has reached the ordered Defend/Hide angle, completing the
// RotateTo → Idle(Crouched) transition §4.5 describes.
func VehicleStanceReached() battle.Behavior {
	return battle.IdleBehavior(battle.BodyCrouched)
}

// resolveEngageSquad implements §4.5's EngageSquad rule: keep the current
// opponent if it is still a valid target in the ordered squad; otherwise
// pick a fresh one by the standard visible-opponent selection restricted to
// that squad's members, falling back to Idle if none remain.
func resolveEngageSquad(s *battle.Soldier, state *battle.State) battle.Behavior {
	target := state.Squad(s.Order.Squad)

	if current, ok := s.Target(); ok && memberOf(target.Members, current) {
		if state.Soldier(current).CanBeDesignedAsTarget() {
			return battle.EngageSoldierBehavior(current)
		}
	}

	for _, member := range target.Members {
		if v, ok := state.Visibilities[battle.VisibilityKey{From: s.Index, To: member}]; ok && v.Visible {
			return battle.EngageSoldierBehavior(member)
		}
	}
	return battle.IdleBehavior(battle.BodyCrouched)
}

func memberOf(members []battle.SoldierIndex, idx battle.SoldierIndex) bool {
	for _, m := range members {
		if m == idx {
			return true
		}
	}
	return false
}

// Propagate implements §4.5's leader-to-member broadcast: depending on the
// leader's resolved behavior's Propagation tag, it emits SetOrder messages
// for every subordinate (Regularly: every tick; OnChange: only when the
// leader's behavior differs from its previous one) plus a SetBehavior
// message for the leader itself.
func Propagate(state *battle.State, squad *battle.Squad, resolved battle.Behavior, previous battle.Behavior) []battle.BattleStateMessage {
	msgs := []battle.BattleStateMessage{battle.SoldierMsg(squad.Leader, battle.SetBehaviorMessage(resolved))}

	switch resolved.Propagation() {
	case battle.PropagationRegularly:
		msgs = append(msgs, propagateOrders(state, squad, resolved)...)
	case battle.PropagationOnChange:
		if !resolved.Equal(previous) {
			msgs = append(msgs, propagateOrders(state, squad, resolved)...)
		}
	}
	return msgs
}

// propagateOrders derives each subordinate's per-member order from the
// leader's resolved behavior: movement becomes movement to a formation
// slot, rotation/stance echoes verbatim, and Engage propagates with a
// per-member target pick via EngageSquad (so each member re-resolves its
// own opponent locally next tick).
func propagateOrders(state *battle.State, squad *battle.Squad, resolved battle.Behavior) []battle.BattleStateMessage {
	leader := state.Soldier(squad.Leader)
	var msgs []battle.BattleStateMessage

	switch resolved.Kind {
	case battle.BehaviorMoveTo, battle.BehaviorMoveFastTo, battle.BehaviorSneakTo, battle.BehaviorDriveTo:
		positions := battle.Positions(squad.Members, squad.Leader, leader.WorldPoint, leader.Angle, nil)
		for _, member := range squad.Subordinates() {
			dest, ok := positions[member]
			if !ok {
				continue
			}
			order := orderForMoveKind(resolved.Kind, dest)
			msgs = append(msgs, battle.SoldierMsg(member, battle.SetOrderMessage(order)))
		}
	case battle.BehaviorRotateTo, battle.BehaviorDefend, battle.BehaviorHide:
		order := orderForStanceKind(resolved.Kind, resolved.Angle)
		for _, member := range squad.Subordinates() {
			msgs = append(msgs, battle.SoldierMsg(member, battle.SetOrderMessage(order)))
		}
	case battle.BehaviorEngageSoldier:
		for _, member := range squad.Subordinates() {
			msgs = append(msgs, battle.SoldierMsg(member, battle.SetOrderMessage(battle.EngageSquadOrder(squad.Index))))
		}
	case battle.BehaviorSuppressFire:
		for _, member := range squad.Subordinates() {
			msgs = append(msgs, battle.SoldierMsg(member, battle.SetOrderMessage(battle.SuppressFireOrder(resolved.Point))))
		}
	}
	return msgs
}

func orderForMoveKind(kind battle.BehaviorKind, dest geometry.WorldPoint) battle.Order {
	path := geometry.NewWorldPaths([]geometry.WorldPath{geometry.NewWorldPath([]geometry.WorldPoint{dest})})
	switch kind {
	case battle.BehaviorMoveFastTo:
		return battle.MoveFastToOrder(path, nil)
	case battle.BehaviorSneakTo:
		return battle.SneakToOrder(path, nil)
	default:
		return battle.MoveToOrder(path, nil)
	}
}

func orderForStanceKind(kind battle.BehaviorKind, angle geometry.Angle) battle.Order {
	if kind == battle.BehaviorHide {
		return battle.HideOrder(angle)
	}
	return battle.DefendOrder(angle)
}
