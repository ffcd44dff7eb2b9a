// Package battle holds the authoritative simulation state: soldiers,
// vehicles, squads, bullet fires, explosions, flag ownership, and the phase
// of the battle, plus the reducer that applies replicated messages to it.
//
// Every cross-reference between entities is a dense integer index into the
// owning slice, never a pointer — soldier/vehicle/squad form a reference
// graph, and indices keep it serializable and free of aliasing concerns
// (see DESIGN.md, "cyclic references").
package battle

import "fmt"

// SoldierIndex is a soldier's position in State.Soldiers.
type SoldierIndex int

func (i SoldierIndex) String() string { return fmt.Sprintf("soldier#%d", int(i)) }

// VehicleIndex is a vehicle's position in State.Vehicles.
type VehicleIndex int

func (i VehicleIndex) String() string { return fmt.Sprintf("vehicle#%d", int(i)) }

// SquadIndex identifies a squad by its position in State.Squads; new
// indices come from the dense int counter State.NextSquadIndex. Leader
// re-election leaves a squad at the same index.
type SquadIndex int

// BulletFireIndex is a bullet fire's position in State.BulletFires.
type BulletFireIndex int

// ExplosionIndex is an explosion's position in State.Explosions.
type ExplosionIndex int

// OrderMarkerIndex identifies a pending order marker placed by a client but
// not yet resolved into a behavior (ground units walking to a destination).
type OrderMarkerIndex int

// VehicleSize is the side length, in tiles, of a vehicle's footprint.
type VehicleSize int

// Side is one of the two belligerents.
type Side int

const (
	SideA Side = iota
	SideB
)

func (s Side) String() string {
	if s == SideA {
		return "A"
	}
	return "B"
}

// Opposite returns the other side.
func (s Side) Opposite() Side {
	if s == SideA {
		return SideB
	}
	return SideA
}

// FlagOwner is a flag's current ownership, distinct from Side because a
// flag can also be contested (Both in the zone) or unclaimed (Nobody)
// (§4.11).
type FlagOwner int

const (
	FlagOwnerNobody FlagOwner = iota
	FlagOwnerA
	FlagOwnerB
	FlagOwnerBoth
)

func (o FlagOwner) String() string {
	switch o {
	case FlagOwnerA:
		return "A"
	case FlagOwnerB:
		return "B"
	case FlagOwnerBoth:
		return "Both"
	default:
		return "Nobody"
	}
}

// Phase is the battle's current lifecycle stage.
type Phase int

const (
	PhasePlacement Phase = iota
	PhaseBattle
	PhaseEnded
)

func (p Phase) String() string {
	switch p {
	case PhasePlacement:
		return "Placement"
	case PhaseBattle:
		return "Battle"
	case PhaseEnded:
		return "Ended"
	default:
		return "Unknown"
	}
}
