package battle

import (
	"github.com/nstehr/vimy/vimy-core/geometry"
	"github.com/nstehr/vimy/vimy-core/weapon"
)

// SoldierMessageKind tags the closed set of per-soldier state mutations the
// reducer understands (§4.10).
type SoldierMessageKind int

const (
	SoldierSetWorldPosition SoldierMessageKind = iota
	SoldierSetBehavior
	SoldierSetGesture
	SoldierSetOrder
	SoldierSetOrientation
	SoldierSetAlive
	SoldierSetUnconscious
	SoldierReachBehaviorStep
	SoldierIncreaseUnderFire
	SoldierDecreaseUnderFire
	SoldierReloadWeapon
	SoldierWeaponShot
	SoldierSetLastShootFrameI
)

// SoldierMessage is a tagged union of soldier mutations, carried as one
// struct (not a Go interface) so the reducer can exhaustively switch on
// Kind. Only the fields relevant to Kind are populated.
type SoldierMessage struct {
	Kind           SoldierMessageKind
	WorldPoint     geometry.WorldPoint
	Behavior       Behavior
	Gesture        Gesture
	Order          Order
	Angle          geometry.Angle
	Alive          bool
	Unconscious    bool
	UnderFireDelta int
	WeaponClass    WeaponClass
	Shot           weapon.Shot
	LastShootFrame uint64
}

func SetWorldPositionMessage(p geometry.WorldPoint) SoldierMessage {
	return SoldierMessage{Kind: SoldierSetWorldPosition, WorldPoint: p}
}
func SetBehaviorMessage(b Behavior) SoldierMessage {
	return SoldierMessage{Kind: SoldierSetBehavior, Behavior: b}
}
func SetGestureMessage(g Gesture) SoldierMessage {
	return SoldierMessage{Kind: SoldierSetGesture, Gesture: g}
}
func SetOrderMessage(o Order) SoldierMessage {
	return SoldierMessage{Kind: SoldierSetOrder, Order: o}
}
func SetOrientationMessage(a geometry.Angle) SoldierMessage {
	return SoldierMessage{Kind: SoldierSetOrientation, Angle: a}
}
func SetAliveMessage(alive bool) SoldierMessage {
	return SoldierMessage{Kind: SoldierSetAlive, Alive: alive}
}
func SetUnconsciousMessage(unconscious bool) SoldierMessage {
	return SoldierMessage{Kind: SoldierSetUnconscious, Unconscious: unconscious}
}
func ReachBehaviorStepMessage() SoldierMessage {
	return SoldierMessage{Kind: SoldierReachBehaviorStep}
}
func IncreaseUnderFireMessage(n int) SoldierMessage {
	return SoldierMessage{Kind: SoldierIncreaseUnderFire, UnderFireDelta: n}
}
func DecreaseUnderFireMessage() SoldierMessage {
	return SoldierMessage{Kind: SoldierDecreaseUnderFire}
}
func ReloadWeaponMessage(class WeaponClass) SoldierMessage {
	return SoldierMessage{Kind: SoldierReloadWeapon, WeaponClass: class}
}
func WeaponShotMessage(class WeaponClass, shot weapon.Shot) SoldierMessage {
	return SoldierMessage{Kind: SoldierWeaponShot, WeaponClass: class, Shot: shot}
}
func SetLastShootFrameMessage(frame uint64) SoldierMessage {
	return SoldierMessage{Kind: SoldierSetLastShootFrameI, LastShootFrame: frame}
}

// VehicleMessageKind tags the closed set of per-vehicle state mutations.
type VehicleMessageKind int

const (
	VehicleSetWorldPosition VehicleMessageKind = iota
	VehicleSetChassisOrientation
)

type VehicleMessage struct {
	Kind       VehicleMessageKind
	WorldPoint geometry.WorldPoint
	Angle      geometry.Angle
}

func SetVehiclePositionMessage(p geometry.WorldPoint) VehicleMessage {
	return VehicleMessage{Kind: VehicleSetWorldPosition, WorldPoint: p}
}
func SetVehicleOrientationMessage(a geometry.Angle) VehicleMessage {
	return VehicleMessage{Kind: VehicleSetChassisOrientation, Angle: a}
}

// BattleStateMessageKind tags the closed set of battle-wide mutations a
// single tick can produce.
type BattleStateMessageKind int

const (
	MsgIncrementFrameI BattleStateMessageKind = iota
	MsgSoldier
	MsgVehicle
	MsgPushBulletFire
	MsgPushExplosion
	MsgPushCannonBlast
	MsgSetVisibilities
	MsgSetPhase
	MsgSetAConnected
	MsgSetBConnected
	MsgSetAReady
	MsgSetBReady
	MsgSetFlagsOwnership
	MsgSetAMorale
	MsgSetBMorale
	MsgSetSquadLeader
)

// BattleStateMessage is the single message type the reducer consumes; one
// struct with a Kind tag (§9 "dynamic dispatch") rather than an interface
// hierarchy, exactly like Order/Behavior/Gesture.
type BattleStateMessage struct {
	Kind BattleStateMessageKind

	SoldierIdx SoldierIndex
	Soldier    SoldierMessage

	VehicleIdx VehicleIndex
	Vehicle    VehicleMessage

	BulletFire  BulletFire
	Explosion   Explosion
	CannonBlast CannonBlast

	Visibilities map[VisibilityKey]Visibility

	Phase  Phase
	Victor *Side

	Bool bool

	FlagsOwnership map[string]FlagOwner

	Morale float64

	SquadIdx   SquadIndex
	SquadLeader SoldierIndex
}

func IncrementFrameIMessage() BattleStateMessage {
	return BattleStateMessage{Kind: MsgIncrementFrameI}
}
func SoldierMsg(idx SoldierIndex, m SoldierMessage) BattleStateMessage {
	return BattleStateMessage{Kind: MsgSoldier, SoldierIdx: idx, Soldier: m}
}
func VehicleMsg(idx VehicleIndex, m VehicleMessage) BattleStateMessage {
	return BattleStateMessage{Kind: MsgVehicle, VehicleIdx: idx, Vehicle: m}
}
func PushBulletFireMessage(b BulletFire) BattleStateMessage {
	return BattleStateMessage{Kind: MsgPushBulletFire, BulletFire: b}
}
func PushExplosionMessage(e Explosion) BattleStateMessage {
	return BattleStateMessage{Kind: MsgPushExplosion, Explosion: e}
}
func PushCannonBlastMessage(c CannonBlast) BattleStateMessage {
	return BattleStateMessage{Kind: MsgPushCannonBlast, CannonBlast: c}
}
func SetVisibilitiesMessage(v map[VisibilityKey]Visibility) BattleStateMessage {
	return BattleStateMessage{Kind: MsgSetVisibilities, Visibilities: v}
}
func SetPhaseMessage(p Phase) BattleStateMessage {
	return BattleStateMessage{Kind: MsgSetPhase, Phase: p}
}

// SetPhaseEndedMessage transitions to Phase::Ended carrying the winning
// side, so a resyncing client's LoadFromCopy can report who won (§3
// "Ended(Victor)").
func SetPhaseEndedMessage(victor Side) BattleStateMessage {
	return BattleStateMessage{Kind: MsgSetPhase, Phase: PhaseEnded, Victor: &victor}
}
func SetAConnectedMessage(v bool) BattleStateMessage {
	return BattleStateMessage{Kind: MsgSetAConnected, Bool: v}
}
func SetBConnectedMessage(v bool) BattleStateMessage {
	return BattleStateMessage{Kind: MsgSetBConnected, Bool: v}
}
func SetAReadyMessage(v bool) BattleStateMessage {
	return BattleStateMessage{Kind: MsgSetAReady, Bool: v}
}
func SetBReadyMessage(v bool) BattleStateMessage {
	return BattleStateMessage{Kind: MsgSetBReady, Bool: v}
}
func SetFlagsOwnershipMessage(o map[string]FlagOwner) BattleStateMessage {
	return BattleStateMessage{Kind: MsgSetFlagsOwnership, FlagsOwnership: o}
}
func SetAMoraleMessage(v float64) BattleStateMessage {
	return BattleStateMessage{Kind: MsgSetAMorale, Morale: v}
}
func SetBMoraleMessage(v float64) BattleStateMessage {
	return BattleStateMessage{Kind: MsgSetBMorale, Morale: v}
}
func SetSquadLeaderMessage(squad SquadIndex, leader SoldierIndex) BattleStateMessage {
	return BattleStateMessage{Kind: MsgSetSquadLeader, SquadIdx: squad, SquadLeader: leader}
}
