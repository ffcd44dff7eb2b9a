package battle

// Reduce applies a single BattleStateMessage to state. It is total: every
// Kind has a defined effect and it never panics on a well-formed message
// (§4.10, "the server reducer is total"). Messages within one envelope
// must be applied in the order they were produced — callers apply a slice
// with ReduceAll, never concurrently.
func Reduce(state *State, msg BattleStateMessage) {
	switch msg.Kind {
	case MsgIncrementFrameI:
		state.FrameI++
	case MsgSoldier:
		reduceSoldier(state.Soldier(msg.SoldierIdx), msg.Soldier)
	case MsgVehicle:
		reduceVehicle(state.Vehicle(msg.VehicleIdx), msg.Vehicle)
	case MsgPushBulletFire:
		state.BulletFires = append(state.BulletFires, msg.BulletFire)
	case MsgPushExplosion:
		state.Explosions = append(state.Explosions, msg.Explosion)
	case MsgPushCannonBlast:
		// Cannon blasts carry no persisted state — they exist only to be
		// broadcast to clients for one-shot rendering (§3 "Lifecycles").
	case MsgSetVisibilities:
		state.Visibilities = msg.Visibilities
	case MsgSetPhase:
		state.Phase = msg.Phase
		if msg.Phase == PhaseEnded && msg.Victor != nil {
			state.Victor = msg.Victor
		}
	case MsgSetAConnected:
		state.AConnected = msg.Bool
	case MsgSetBConnected:
		state.BConnected = msg.Bool
	case MsgSetAReady:
		state.AReady = msg.Bool
	case MsgSetBReady:
		state.BReady = msg.Bool
	case MsgSetFlagsOwnership:
		state.FlagsOwnership = msg.FlagsOwnership
	case MsgSetAMorale:
		state.AMorale = msg.Morale
	case MsgSetBMorale:
		state.BMorale = msg.Morale
	case MsgSetSquadLeader:
		state.Squad(msg.SquadIdx).Leader = msg.SquadLeader
	}
}

// ReduceAll applies an ordered batch of messages, as produced by one tick's
// subsystem pass.
func ReduceAll(state *State, msgs []BattleStateMessage) {
	for _, m := range msgs {
		Reduce(state, m)
	}
}

func reduceSoldier(s *Soldier, msg SoldierMessage) {
	switch msg.Kind {
	case SoldierSetWorldPosition:
		s.WorldPoint = msg.WorldPoint
	case SoldierSetBehavior:
		s.Behavior = msg.Behavior
	case SoldierSetGesture:
		s.Gesture = msg.Gesture
	case SoldierSetOrder:
		s.Order = msg.Order
	case SoldierSetOrientation:
		s.Angle = msg.Angle
	case SoldierSetAlive:
		s.Alive = msg.Alive
	case SoldierSetUnconscious:
		s.Unconscious = msg.Unconscious
	case SoldierReachBehaviorStep:
		s.Order.ReachStep()
	case SoldierIncreaseUnderFire:
		s.IncreaseUnderFire(msg.UnderFireDelta)
	case SoldierDecreaseUnderFire:
		s.DecreaseUnderFire()
	case SoldierReloadWeapon:
		s.ReloadWeapon(msg.WeaponClass)
	case SoldierWeaponShot:
		s.WeaponShot(msg.WeaponClass)
	case SoldierSetLastShootFrameI:
		s.LastShootFrame = msg.LastShootFrame
	}
}

func reduceVehicle(v *Vehicle, msg VehicleMessage) {
	switch msg.Kind {
	case VehicleSetWorldPosition:
		v.Point = msg.WorldPoint
	case VehicleSetChassisOrientation:
		v.Angle = msg.Angle
	}
}
