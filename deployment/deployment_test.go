package deployment

import (
	"strings"
	"testing"

	"github.com/nstehr/vimy/vimy-core/battle"
)

const sampleDeployment = `{
  "soldiers": [
    {"uuid": "11111111-1111-1111-1111-111111111111", "world_point": {"X": 1, "Y": 2}, "squad_uuid": "aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa", "side": "A",
     "main_weapon": {"family": "MosinNagant"}, "magazines": [{"family": "MosinNagant", "fill": 5}]},
    {"uuid": "22222222-2222-2222-2222-222222222222", "world_point": {"X": 3, "Y": 4}, "squad_uuid": "aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa", "side": "A"},
    {"uuid": "33333333-3333-3333-3333-333333333333", "world_point": {"X": 5, "Y": 6}, "squad_uuid": "bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbbb", "side": "B"}
  ],
  "vehicles": [
    {"uuid": "44444444-4444-4444-4444-444444444444", "type": "Truck", "world_point": {"X": 0, "Y": 0}, "angle": 0}
  ],
  "boarding": [
    {"soldier_uuid": "22222222-2222-2222-2222-222222222222", "vehicle_uuid": "44444444-4444-4444-4444-444444444444", "place": "Passenger1"}
  ]
}`

func TestDecodeAndLoad(t *testing.T) {
	f, err := Decode(strings.NewReader(sampleDeployment))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	state, err := Load(f)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(state.Soldiers) != 3 {
		t.Fatalf("expected 3 soldiers, got %d", len(state.Soldiers))
	}
	if len(state.Squads) != 2 {
		t.Fatalf("expected 2 squads, got %d", len(state.Squads))
	}
	if len(state.Squads[0].Members) != 2 {
		t.Fatalf("expected squad 0 to have 2 members, got %d", len(state.Squads[0].Members))
	}
	if state.Soldiers[0].MainWeapon == nil || len(state.Soldiers[0].Magazines) != 1 {
		t.Fatalf("expected soldier 0's loadout to be preserved")
	}

	placement, boarded := state.SoldiersOnBoard[1]
	if !boarded || placement.Vehicle != 0 || placement.Place != battle.PlacePassenger1 {
		t.Fatalf("expected soldier 1 boarded in vehicle 0 passenger1, got %+v (boarded=%v)", placement, boarded)
	}
	if seats := state.VehicleBoard[0]; len(seats) != 1 {
		t.Fatalf("expected VehicleBoard rebuilt with 1 seat, got %d", len(seats))
	}
}

func TestLoadRejectsUnknownSide(t *testing.T) {
	bad := strings.Replace(sampleDeployment, `"side": "A"`, `"side": "C"`, 1)
	f, err := Decode(strings.NewReader(bad))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if _, err := Load(f); err == nil {
		t.Fatalf("expected Load to reject unknown side")
	}
}

func TestLoadRejectsUnknownBoardingVehicle(t *testing.T) {
	withBadVehicle := strings.Replace(sampleDeployment, `"vehicle_uuid": "44444444-4444-4444-4444-444444444444"`,
		`"vehicle_uuid": "99999999-9999-9999-9999-999999999999"`, 1)
	f, err := Decode(strings.NewReader(withBadVehicle))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if _, err := Load(f); err == nil {
		t.Fatalf("expected Load to reject an unknown vehicle reference")
	}
}
