package victory

import (
	"testing"

	"github.com/nstehr/vimy/vimy-core/battle"
	"github.com/nstehr/vimy/vimy-core/config"
	"github.com/nstehr/vimy/vimy-core/geometry"
	"github.com/nstehr/vimy/vimy-core/worldmap"
)

func mapWithFlag(name string) *worldmap.Map {
	tiles := make([]worldmap.Tile, 10*10)
	m := worldmap.NewMap(10, 10, 1, 1, tiles)
	m.Flags[name] = worldmap.Flag{
		Name: name,
		Shape: worldmap.Shape{
			Min: geometry.NewWorldPoint(0, 0),
			Max: geometry.NewWorldPoint(4, 4),
		},
	}
	return m
}

func TestEvaluateOwnershipBothWhenContested(t *testing.T) {
	m := mapWithFlag("church")
	state := battle.NewState()
	a := battle.NewSoldier(0, battle.SideA, 0, geometry.NewWorldPoint(1, 1), nil, nil)
	b := battle.NewSoldier(1, battle.SideB, 1, geometry.NewWorldPoint(2, 2), nil, nil)
	state.Soldiers = []*battle.Soldier{a, b}

	msgs := EvaluateOwnership(state, m)
	battle.ReduceAll(state, msgs)

	if state.FlagsOwnership["church"] != battle.FlagOwnerBoth {
		t.Fatalf("expected Both when both sides are present, got %v", state.FlagsOwnership["church"])
	}
}

func TestEvaluateOwnershipKeepsPreviousWhenEmpty(t *testing.T) {
	m := mapWithFlag("church")
	state := battle.NewState()
	state.FlagsOwnership["church"] = battle.FlagOwnerA
	a := battle.NewSoldier(0, battle.SideA, 0, geometry.NewWorldPoint(100, 100), nil, nil)
	state.Soldiers = []*battle.Soldier{a}

	msgs := EvaluateOwnership(state, m)
	battle.ReduceAll(state, msgs)

	if state.FlagsOwnership["church"] != battle.FlagOwnerA {
		t.Fatalf("expected ownership to persist with no one present, got %v", state.FlagsOwnership["church"])
	}
}

func TestEvaluateOwnershipSingleSide(t *testing.T) {
	m := mapWithFlag("church")
	state := battle.NewState()
	a := battle.NewSoldier(0, battle.SideA, 0, geometry.NewWorldPoint(1, 1), nil, nil)
	b := battle.NewSoldier(1, battle.SideB, 1, geometry.NewWorldPoint(100, 100), nil, nil)
	state.Soldiers = []*battle.Soldier{a, b}

	msgs := EvaluateOwnership(state, m)
	battle.ReduceAll(state, msgs)

	if state.FlagsOwnership["church"] != battle.FlagOwnerA {
		t.Fatalf("expected A ownership when only A is present, got %v", state.FlagsOwnership["church"])
	}
}

func TestEvaluateMoraleSplitsEquallyAcrossOwnedFlags(t *testing.T) {
	m := mapWithFlag("church")
	other := worldmap.Flag{
		Name: "depot",
		Shape: worldmap.Shape{
			Min: geometry.NewWorldPoint(6, 6),
			Max: geometry.NewWorldPoint(9, 9),
		},
	}
	m.Flags["depot"] = other

	state := battle.NewState()
	state.FlagsOwnership["church"] = battle.FlagOwnerA
	state.FlagsOwnership["depot"] = battle.FlagOwnerB

	prog, err := CompileWeightFormula("1.0")
	if err != nil {
		t.Fatalf("compile weight formula: %v", err)
	}
	msgs, err := EvaluateMorale(state, m, prog)
	if err != nil {
		t.Fatalf("evaluate morale: %v", err)
	}
	battle.ReduceAll(state, msgs)

	if state.AMorale != 0.5 || state.BMorale != 0.5 {
		t.Fatalf("expected morale split evenly across one flag each, got A=%v B=%v", state.AMorale, state.BMorale)
	}
}

func TestCheckEndTriggersWhenMoraleCollapses(t *testing.T) {
	state := battle.NewState()
	state.AMorale = 0.1
	cfg := config.Default()

	msgs := CheckEnd(state, cfg)
	if len(msgs) != 1 || msgs[0].Kind != battle.MsgSetPhase || msgs[0].Phase != battle.PhaseEnded {
		t.Fatalf("expected a phase-ended message, got %v", msgs)
	}
	if msgs[0].Victor == nil || *msgs[0].Victor != battle.SideB {
		t.Fatalf("expected side B to be recorded as victor when A's morale collapses, got %v", msgs[0].Victor)
	}
}

func TestCheckEndLeavesBattleRunningAboveFloor(t *testing.T) {
	state := battle.NewState()
	cfg := config.Default()

	msgs := CheckEnd(state, cfg)
	if len(msgs) != 0 {
		t.Fatalf("expected no messages while morale is healthy, got %v", msgs)
	}
}
