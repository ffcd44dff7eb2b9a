package scheduler

import (
	"testing"

	"github.com/nstehr/vimy/vimy-core/battle"
	"github.com/nstehr/vimy/vimy-core/config"
	"github.com/nstehr/vimy/vimy-core/geometry"
	"github.com/nstehr/vimy/vimy-core/weapon"
	"github.com/nstehr/vimy/vimy-core/worldmap"
)

func newTestMap() *worldmap.Map {
	tiles := make([]worldmap.Tile, 16*16)
	for i := range tiles {
		tiles[i] = worldmap.Tile{Type: worldmap.ShortGrass}
	}
	return worldmap.NewMap(16, 16, 32, 32, tiles)
}

func newTestState() *battle.State {
	state := battle.NewState()

	w := weapon.NewWeapon(weapon.FamilyMosinNagant)
	leader := battle.NewSoldier(0, battle.SideA, 0, geometry.NewWorldPoint(10, 10), &w, nil)
	member := battle.NewSoldier(1, battle.SideA, 0, geometry.NewWorldPoint(20, 10), &w, nil)
	state.Soldiers = append(state.Soldiers, leader, member)
	state.Squads = append(state.Squads, battle.NewSquad(0, 0, []battle.SoldierIndex{0, 1}))

	w2 := weapon.NewWeapon(weapon.FamilyMauser)
	enemy := battle.NewSoldier(2, battle.SideB, 1, geometry.NewWorldPoint(200, 200), &w2, nil)
	state.Soldiers = append(state.Soldiers, enemy)
	state.Squads = append(state.Squads, battle.NewSquad(1, 2, []battle.SoldierIndex{2}))

	return state
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	cfg := config.Default()
	e, err := NewEngine(newTestMap(), cfg)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e
}

func TestTickIncrementsFrame(t *testing.T) {
	e := newTestEngine(t)
	state := newTestState()

	e.Tick(state)
	if state.FrameI != 1 {
		t.Fatalf("FrameI = %d, want 1", state.FrameI)
	}
	e.Tick(state)
	if state.FrameI != 2 {
		t.Fatalf("FrameI = %d, want 2", state.FrameI)
	}
}

// Every subsystem gated behind Battle phase must stay dormant during
// Placement — in particular the Animate pass must never fire a soldier's
// gesture/weapon while squads are still being positioned.
func TestTickSkipsBattleOnlySubsystemsDuringPlacement(t *testing.T) {
	e := newTestEngine(t)
	state := newTestState()
	state.Phase = battle.PhasePlacement

	for i := 0; i < e.Config.AnimatePeriod; i++ {
		e.Tick(state)
	}

	for _, s := range state.Soldiers {
		if s.Gesture.Kind != battle.GestureIdle {
			t.Fatalf("soldier %d gesture resolved during placement: %+v", s.Index, s.Gesture)
		}
	}
}

// A bullet fire pushed during an Animate pass must not be swept by this
// same tick's Physics sweep (which already ran earlier in the subsystem
// order) — it has to survive to be picked up on its own EffectiveFrame.
func TestBulletFireStartsAfterThisTicksSweep(t *testing.T) {
	e := newTestEngine(t)
	state := newTestState()
	state.Phase = battle.PhaseBattle

	state.Soldier(2).Order = battle.SuppressFireOrder(geometry.NewWorldPoint(10, 10))

	e.Tick(state)

	for _, b := range state.BulletFires {
		if b.EffectiveFrame() <= state.FrameI {
			t.Fatalf("bullet fire %d effective at %d, a frame this tick's sweep has already passed (frame %d)", b.Index, b.EffectiveFrame(), state.FrameI)
		}
	}
}

// The frame counter must be broadcast like any other state change — a
// client Mirror only ever sees FrameI advance through a published envelope
// (never a full LoadFromCopy) once the battle is underway, so every tick's
// Outcome has to carry the increment, not just apply it locally.
func TestTickRecordsFrameIncrementInOutcome(t *testing.T) {
	e := newTestEngine(t)
	state := newTestState()

	out := e.Tick(state)

	found := false
	for _, msg := range out.BattleMessages {
		if msg.Kind == battle.MsgIncrementFrameI {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("expected BattleMessages to include IncrementFrameI, got %+v", out.BattleMessages)
	}
}

func TestFeelingsDecrementRunsOnlyOnItsPeriod(t *testing.T) {
	e := newTestEngine(t)
	state := newTestState()
	state.Soldier(0).UnderFire.Increase(10)
	before := state.Soldier(0).UnderFire.Value

	for i := 0; i < e.Config.FeelingsDecrementPeriod-1; i++ {
		e.Tick(state)
	}
	if state.Soldier(0).UnderFire.Value != before {
		t.Fatalf("under-fire decremented before its period elapsed: got %v, want %v", state.Soldier(0).UnderFire.Value, before)
	}

	e.Tick(state)
	if state.Soldier(0).UnderFire.Value >= before {
		t.Fatalf("under-fire did not decrement on its period: got %v, want < %v", state.Soldier(0).UnderFire.Value, before)
	}
}
