// Package deployment decodes a deployment file (§6 "Deployment format") —
// soldiers, vehicles, and a boarding map, identified by UUID — into a
// freshly built battle.State. UUIDs exist only at this file boundary: once
// loaded, every cross-reference inside the engine is the dense integer
// index battle/ids.go defines (§9 "cyclic references" — stable identity at
// the edge, array-position identity internally).
package deployment

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/nstehr/vimy/vimy-core/battle"
	"github.com/nstehr/vimy/vimy-core/geometry"
	"github.com/nstehr/vimy/vimy-core/weapon"
)

// File is the on-disk/wire shape of a deployment (§6): every soldier and
// vehicle keeps its own squad/side/loadout, and boarding is a separate map
// keyed by soldier UUID so a soldier can be placed in a vehicle seat
// without the vehicle needing to know about it up front.
type File struct {
	Soldiers []SoldierSpec  `json:"soldiers"`
	Vehicles []VehicleSpec  `json:"vehicles"`
	Boarding []BoardingSpec `json:"boarding"`
}

type WorldPointSpec struct {
	X, Y float64
}

type WeaponSpec struct {
	Family string `json:"family"`
}

type MagazineSpec struct {
	Family string `json:"family"`
	Fill   int    `json:"fill"`
}

type SoldierSpec struct {
	UUID       uuid.UUID      `json:"uuid"`
	WorldPoint WorldPointSpec `json:"world_point"`
	SquadUUID  uuid.UUID      `json:"squad_uuid"`
	Side       string         `json:"side"`
	MainWeapon *WeaponSpec    `json:"main_weapon,omitempty"`
	Magazines  []MagazineSpec `json:"magazines,omitempty"`
}

type VehicleSpec struct {
	UUID       uuid.UUID      `json:"uuid"`
	Type       string         `json:"type"`
	WorldPoint WorldPointSpec `json:"world_point"`
	Angle      float64        `json:"angle"`
}

type BoardingSpec struct {
	SoldierUUID uuid.UUID `json:"soldier_uuid"`
	VehicleUUID uuid.UUID `json:"vehicle_uuid"`
	Place       string    `json:"place"`
}

// LoadError reports a deployment load failure — fatal at startup per §7's
// "Map/deployment load error" row.
type LoadError struct {
	Reason string
}

func (e *LoadError) Error() string { return "deployment load: " + e.Reason }

// Decode parses a deployment file's JSON body.
func Decode(r io.Reader) (File, error) {
	var f File
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return File{}, &LoadError{Reason: fmt.Sprintf("invalid deployment file: %v", err)}
	}
	return f, nil
}

var weaponFamilyByName = map[string]weapon.Family{
	"MosinNagant": weapon.FamilyMosinNagant,
	"Mauser":      weapon.FamilyMauser,
}

var vehicleTypeByName = map[string]battle.VehicleType{
	"LightCar": battle.VehicleTypeLightCar,
	"Truck":    battle.VehicleTypeTruck,
	"Tank":     battle.VehicleTypeTank,
}

var boardingPlaceByName = map[string]battle.BoardingPlace{
	"Driver":      battle.PlaceDriver,
	"Passenger1":  battle.PlacePassenger1,
	"Passenger2":  battle.PlacePassenger2,
	"Passenger3":  battle.PlacePassenger3,
}

func parseSide(s string) (battle.Side, error) {
	switch s {
	case "A":
		return battle.SideA, nil
	case "B":
		return battle.SideB, nil
	default:
		return 0, &LoadError{Reason: fmt.Sprintf("unknown side %q", s)}
	}
}

func parseWeaponFamily(s string) (weapon.Family, error) {
	f, ok := weaponFamilyByName[s]
	if !ok {
		return 0, &LoadError{Reason: fmt.Sprintf("unknown weapon family %q", s)}
	}
	return f, nil
}

func parseVehicleType(s string) (battle.VehicleType, error) {
	t, ok := vehicleTypeByName[s]
	if !ok {
		return 0, &LoadError{Reason: fmt.Sprintf("unknown vehicle type %q", s)}
	}
	return t, nil
}

func parseBoardingPlace(s string) (battle.BoardingPlace, error) {
	p, ok := boardingPlaceByName[s]
	if !ok {
		return 0, &LoadError{Reason: fmt.Sprintf("unknown boarding place %q", s)}
	}
	return p, nil
}

// Load builds a fresh battle.State from f, minting a dense SquadIndex for
// every distinct squad UUID encountered (in file order) and resolving
// every soldier/vehicle UUID reference to its freshly assigned index.
// Squad leadership defaults to each squad's first-listed member, matching
// State.UpdateSquads's "first surviving member" election rule applied to
// an as-yet-undamaged squad.
func Load(f File) (*battle.State, error) {
	state := battle.NewState()
	state.Phase = battle.PhasePlacement

	squadIndexByUUID := make(map[uuid.UUID]battle.SquadIndex)
	squadMembers := make(map[battle.SquadIndex][]battle.SoldierIndex)
	var squadOrder []uuid.UUID

	soldierIndexByUUID := make(map[uuid.UUID]battle.SoldierIndex)

	for i, spec := range f.Soldiers {
		side, err := parseSide(spec.Side)
		if err != nil {
			return nil, err
		}

		squadIdx, ok := squadIndexByUUID[spec.SquadUUID]
		if !ok {
			squadIdx = state.NextSquadIndex()
			squadIndexByUUID[spec.SquadUUID] = squadIdx
			squadOrder = append(squadOrder, spec.SquadUUID)
		}

		var mainWeapon *weapon.Weapon
		if spec.MainWeapon != nil {
			family, err := parseWeaponFamily(spec.MainWeapon.Family)
			if err != nil {
				return nil, err
			}
			w := weapon.NewWeapon(family)
			mainWeapon = &w
		}

		magazines := make([]weapon.Magazine, 0, len(spec.Magazines))
		for _, m := range spec.Magazines {
			family, err := parseWeaponFamily(m.Family)
			if err != nil {
				return nil, err
			}
			magazines = append(magazines, weapon.Magazine{Family: family, Fill: m.Fill})
		}

		idx := battle.SoldierIndex(i)
		point := geometry.NewWorldPoint(spec.WorldPoint.X, spec.WorldPoint.Y)
		soldier := battle.NewSoldier(idx, side, squadIdx, point, mainWeapon, magazines)
		state.Soldiers = append(state.Soldiers, soldier)

		soldierIndexByUUID[spec.UUID] = idx
		squadMembers[squadIdx] = append(squadMembers[squadIdx], idx)
	}

	state.Squads = make([]battle.Squad, len(squadOrder))
	for _, squadUUID := range squadOrder {
		squadIdx := squadIndexByUUID[squadUUID]
		members := squadMembers[squadIdx]
		if len(members) == 0 {
			return nil, &LoadError{Reason: fmt.Sprintf("squad %s has no members", squadUUID)}
		}
		state.Squads[squadIdx] = battle.NewSquad(squadIdx, members[0], members)
	}

	vehicleIndexByUUID := make(map[uuid.UUID]battle.VehicleIndex)
	for i, spec := range f.Vehicles {
		vt, err := parseVehicleType(spec.Type)
		if err != nil {
			return nil, err
		}
		point := geometry.NewWorldPoint(spec.WorldPoint.X, spec.WorldPoint.Y)
		idx := battle.VehicleIndex(i)
		state.Vehicles = append(state.Vehicles, battle.NewVehicle(idx, vt, point, geometry.Angle(spec.Angle)))
		vehicleIndexByUUID[spec.UUID] = idx
	}

	for _, b := range f.Boarding {
		soldierIdx, ok := soldierIndexByUUID[b.SoldierUUID]
		if !ok {
			return nil, &LoadError{Reason: fmt.Sprintf("boarding references unknown soldier %s", b.SoldierUUID)}
		}
		vehicleIdx, ok := vehicleIndexByUUID[b.VehicleUUID]
		if !ok {
			return nil, &LoadError{Reason: fmt.Sprintf("boarding references unknown vehicle %s", b.VehicleUUID)}
		}
		place, err := parseBoardingPlace(b.Place)
		if err != nil {
			return nil, err
		}
		state.SoldiersOnBoard[soldierIdx] = battle.BoardPlacement{Vehicle: vehicleIdx, Place: place}
	}
	state.RebuildVehicleBoard()

	return state, nil
}
