package visibility

import (
	"testing"

	"github.com/nstehr/vimy/vimy-core/battle"
	"github.com/nstehr/vimy/vimy-core/config"
	"github.com/nstehr/vimy/vimy-core/geometry"
	"github.com/nstehr/vimy/vimy-core/worldmap"
)

func flatMap(w, h int, t worldmap.TerrainType) *worldmap.Map {
	tiles := make([]worldmap.Tile, w*h)
	for i := range tiles {
		tiles[i] = worldmap.Tile{Type: t}
	}
	return worldmap.NewMap(w, h, 32, 32, tiles)
}

func newSoldier(idx battle.SoldierIndex, side battle.Side, point geometry.WorldPoint) *battle.Soldier {
	s := battle.NewSoldier(idx, side, 0, point, nil, nil)
	return s
}

func TestOpenGroundIsVisible(t *testing.T) {
	m := flatMap(20, 20, worldmap.ShortGrass)
	cfg := config.Default()

	a := newSoldier(0, battle.SideA, geometry.NewWorldPoint(0, 0))
	b := newSoldier(1, battle.SideB, geometry.NewWorldPoint(64, 0))

	v := trace(a, b, 0, m, cfg)
	if !v.Visible {
		t.Errorf("expected open ground to be visible, got opacity %f", v.ToSceneOpacity)
	}
	if v.Blocked {
		t.Error("expected open ground not to be blocked")
	}
}

func TestBrickWallBlocksVisibility(t *testing.T) {
	w, h := 40, 5
	tiles := make([]worldmap.Tile, w*h)
	for i := range tiles {
		tiles[i] = worldmap.Tile{Type: worldmap.ShortGrass}
	}
	for x := 10; x < 20; x++ {
		tiles[2*w+x] = worldmap.Tile{Type: worldmap.BrickWall}
	}
	m := worldmap.NewMap(w, h, 32, 32, tiles)
	cfg := config.Default()

	a := newSoldier(0, battle.SideA, geometry.NewWorldPoint(0, 64))
	b := newSoldier(1, battle.SideB, geometry.NewWorldPoint(39*32, 64))

	v := trace(a, b, 0, m, cfg)
	if v.Visible {
		t.Error("expected target behind brick wall not to be visible")
	}
	if !v.Blocked {
		t.Error("expected a brick wall to set blocked=true")
	}
}

func TestInvalidateEngageSquadOrdersDowngradesWhenTargetHidden(t *testing.T) {
	state := battle.NewState()
	leaderA := newSoldier(0, battle.SideA, geometry.NewWorldPoint(0, 0))
	leaderB := newSoldier(1, battle.SideB, geometry.NewWorldPoint(1000, 1000))
	state.Soldiers = []*battle.Soldier{leaderA, leaderB}
	state.Squads = []battle.Squad{
		battle.NewSquad(0, 0, []battle.SoldierIndex{0}),
		battle.NewSquad(1, 1, []battle.SoldierIndex{1}),
	}
	leaderA.Order = battle.EngageSquadOrder(1)

	visibilities := map[battle.VisibilityKey]battle.Visibility{}
	stateMsgs, clientMsgs := InvalidateEngageSquadOrders(state, visibilities)

	if len(stateMsgs) != 1 {
		t.Fatalf("expected one downgrade message, got %d", len(stateMsgs))
	}
	if stateMsgs[0].Soldier.Order.Kind != battle.OrderIdle {
		t.Errorf("expected order downgraded to Idle, got %v", stateMsgs[0].Soldier.Order.Kind)
	}
	if len(clientMsgs) != 1 || clientMsgs[0].Side != battle.SideA {
		t.Fatalf("expected one interface sound to side A, got %v", clientMsgs)
	}
}

func TestApplyInteriorVisibilityHidesObserverOutsideTheZone(t *testing.T) {
	m := flatMap(20, 20, worldmap.ShortGrass)
	m.Interiors = []worldmap.Interior{{Shape: worldmap.Shape{
		Min: geometry.NewWorldPoint(0, 0),
		Max: geometry.NewWorldPoint(64, 64),
	}}}

	state := battle.NewState()
	outside := newSoldier(0, battle.SideA, geometry.NewWorldPoint(1000, 1000))
	inside := newSoldier(1, battle.SideB, geometry.NewWorldPoint(10, 10))
	state.Soldiers = []*battle.Soldier{outside, inside}

	vis := map[battle.VisibilityKey]battle.Visibility{
		{From: 0, To: 1}: {Visible: true},
	}
	vis = ApplyInteriorVisibility(vis, state, m)
	if vis[battle.VisibilityKey{From: 0, To: 1}].Visible {
		t.Error("expected an observer outside the interior to lose visibility of a target inside it")
	}
}

func TestApplyInteriorVisibilityKeepsObserverInsideTheZone(t *testing.T) {
	m := flatMap(20, 20, worldmap.ShortGrass)
	m.Interiors = []worldmap.Interior{{Shape: worldmap.Shape{
		Min: geometry.NewWorldPoint(0, 0),
		Max: geometry.NewWorldPoint(64, 64),
	}}}

	state := battle.NewState()
	observer := newSoldier(0, battle.SideA, geometry.NewWorldPoint(5, 5))
	target := newSoldier(1, battle.SideB, geometry.NewWorldPoint(10, 10))
	state.Soldiers = []*battle.Soldier{observer, target}

	vis := map[battle.VisibilityKey]battle.Visibility{
		{From: 0, To: 1}: {Visible: true},
	}
	vis = ApplyInteriorVisibility(vis, state, m)
	if !vis[battle.VisibilityKey{From: 0, To: 1}].Visible {
		t.Error("expected an observer inside the same interior to keep visibility")
	}
}
