// Package movement implements the per-tick position/chassis integration
// described in spec.md §4.7: pedestrian waypoint-following for ground
// behaviors, and the rotate-then-drive executor for vehicle crews.
package movement

import (
	"math"

	"github.com/nstehr/vimy/vimy-core/battle"
	"github.com/nstehr/vimy/vimy-core/behavior"
	"github.com/nstehr/vimy/vimy-core/config"
	"github.com/nstehr/vimy/vimy-core/geometry"
)

// Mode distinguishes a ground soldier from vehicle crew — only the driver
// seat of a boarded squad actually moves the vehicle (§4.7).
type Mode = battle.BehaviorMode

const (
	ModeGround  = battle.BehaviorModeGround
	ModeVehicle = battle.BehaviorModeVehicle
)

// Resolve advances one soldier's position (or, if it drives, its vehicle's
// position/chassis) by one tick according to its resolved Behavior. It is
// pure: every effect is returned as a message, never applied directly, so
// the scheduler's broadcast envelope always reflects exactly what moved.
func Resolve(s *battle.Soldier, state *battle.State, mode Mode, cfg *config.Config) []battle.BattleStateMessage {
	switch s.Behavior.Kind {
	case battle.BehaviorMoveTo:
		return stepPedestrian(s, cfg.WalkVelocity, cfg)
	case battle.BehaviorMoveFastTo:
		return stepPedestrian(s, cfg.MoveFastVelocity, cfg)
	case battle.BehaviorSneakTo:
		return stepPedestrian(s, cfg.SneakVelocity, cfg)
	case battle.BehaviorDefend, battle.BehaviorHide:
		// Ground units settle into a stance instantly; only vehicle chassis
		// rotation is rate-limited, and resolveStance never hands a vehicle
		// crew a Defend/Hide behavior directly (it returns RotateTo/Idle).
		return snapOrientation(s)
	case battle.BehaviorRotateTo:
		return stepVehicleRotate(s, state)
	case battle.BehaviorDriveTo:
		return stepVehicleDrive(s, state, cfg)
	default:
		return nil
	}
}

func stepPedestrian(s *battle.Soldier, velocity float64, cfg *config.Config) []battle.BattleStateMessage {
	waypoint, ok := s.Order.Paths.NextPoint()
	if !ok {
		return nil
	}
	isLast, _ := s.Order.Paths.IsLastPoint()

	vec := waypoint.Sub(s.WorldPoint)
	dist := vec.Length()
	angle := geometry.AngleFromPoints(waypoint, s.WorldPoint)

	if dist <= velocity || dist <= cfg.AdvanceToleranceDiff {
		return arriveAtWaypoint(s, waypoint, angle, isLast)
	}

	step := vec.Normalize().Scale(velocity)
	next := s.WorldPoint.Add(step)
	return []battle.BattleStateMessage{
		battle.SoldierMsg(s.Index, battle.SetWorldPositionMessage(next)),
		battle.SoldierMsg(s.Index, battle.SetOrientationMessage(angle)),
	}
}

// arriveAtWaypoint snaps the soldier onto the waypoint and either pops it
// (ReachBehaviorStepMessage, more waypoints remain) or adopts the order's
// continuation — Then, or Idle if there is none (§9 "Then" chaining).
func arriveAtWaypoint(s *battle.Soldier, waypoint geometry.WorldPoint, angle geometry.Angle, isLast bool) []battle.BattleStateMessage {
	msgs := []battle.BattleStateMessage{
		battle.SoldierMsg(s.Index, battle.SetWorldPositionMessage(waypoint)),
		battle.SoldierMsg(s.Index, battle.SetOrientationMessage(angle)),
	}
	if isLast {
		msgs = append(msgs, battle.SoldierMsg(s.Index, battle.SetOrderMessage(nextOrder(s.Order))))
	} else {
		msgs = append(msgs, battle.SoldierMsg(s.Index, battle.ReachBehaviorStepMessage()))
	}
	return msgs
}

func nextOrder(o battle.Order) battle.Order {
	if o.Then != nil {
		return *o.Then
	}
	return battle.IdleOrder()
}

func snapOrientation(s *battle.Soldier) []battle.BattleStateMessage {
	if s.Angle == s.Behavior.Angle {
		return nil
	}
	return []battle.BattleStateMessage{
		battle.SoldierMsg(s.Index, battle.SetOrientationMessage(s.Behavior.Angle)),
	}
}

// driverSeat returns the vehicle a soldier drives, or ok=false if the
// soldier isn't the driver of a vehicle it's boarding — only the driver
// seat's resolved behavior moves the vehicle (§4.7).
func driverSeat(s *battle.Soldier, state *battle.State) (*battle.Vehicle, bool) {
	placement, boarded := state.SoldiersOnBoard[s.Index]
	if !boarded || placement.Place != battle.PlaceDriver {
		return nil, false
	}
	return state.Vehicle(placement.Vehicle), true
}

func stepVehicleRotate(s *battle.Soldier, state *battle.State) []battle.BattleStateMessage {
	vehicle, ok := driverSeat(s, state)
	if !ok {
		return nil
	}
	target := s.Behavior.Angle
	if vehicle.ChassisOrientationMatch(target, behavior.ChassisAngleTolerance) {
		return nil
	}
	newAngle := rotateStep(vehicle.Angle, target, vehicle.Type.ChassisRotationSpeed())
	return []battle.BattleStateMessage{
		battle.VehicleMsg(vehicle.Index, battle.SetVehicleOrientationMessage(newAngle)),
	}
}

func stepVehicleDrive(s *battle.Soldier, state *battle.State, cfg *config.Config) []battle.BattleStateMessage {
	vehicle, ok := driverSeat(s, state)
	if !ok {
		return nil
	}
	waypoint, ok := s.Order.Paths.NextPoint()
	if !ok {
		return nil
	}

	// A vehicle must align its chassis with the bearing to the next
	// waypoint before it may advance (§4.5/§4.7, §8 scenario "Vehicle
	// rotates then drives").
	bearing := geometry.AngleFromPoints(waypoint, vehicle.Point)
	if !vehicle.ChassisOrientationMatch(bearing, behavior.ChassisAngleTolerance) {
		newAngle := rotateStep(vehicle.Angle, bearing, vehicle.Type.ChassisRotationSpeed())
		return []battle.BattleStateMessage{
			battle.VehicleMsg(vehicle.Index, battle.SetVehicleOrientationMessage(newAngle)),
		}
	}

	isLast, _ := s.Order.Paths.IsLastPoint()
	speed := vehicle.Type.DriveSpeed()
	dist := geometry.DistanceBetween(vehicle.Point, waypoint)

	if dist.Millimeters <= speed.Millimeters || float64(dist.Meters()) <= cfg.AdvanceToleranceDiff {
		msgs := []battle.BattleStateMessage{
			battle.VehicleMsg(vehicle.Index, battle.SetVehiclePositionMessage(waypoint)),
		}
		if isLast {
			msgs = append(msgs, battle.SoldierMsg(s.Index, battle.SetOrderMessage(nextOrder(s.Order))))
		} else {
			msgs = append(msgs, battle.SoldierMsg(s.Index, battle.ReachBehaviorStepMessage()))
		}
		return msgs
	}

	next := vehicle.Point.Add(forwardVector(vehicle.Angle).Scale(float64(speed.Meters())))
	return []battle.BattleStateMessage{
		battle.VehicleMsg(vehicle.Index, battle.SetVehiclePositionMessage(next)),
	}
}

// rotateStep turns by at most speed toward target, never overshooting —
// mirrors Vehicle.RotateToward's math but returns the result instead of
// mutating, so movement stays message-driven.
func rotateStep(current, target, speed geometry.Angle) geometry.Angle {
	diff := geometry.ShortAngle(current, target)
	if diff >= 0 {
		if diff < speed {
			return target
		}
		return (current + speed).Normalize()
	}
	if -diff < speed {
		return target
	}
	return (current - speed).Normalize()
}

// forwardVector mirrors Vehicle.DriveForward's heading convention.
func forwardVector(angle geometry.Angle) geometry.WorldPoint {
	return geometry.WorldPoint{X: math.Sin(float64(angle)), Y: -math.Cos(float64(angle))}
}
