package pathfind

import (
	"testing"

	"github.com/nstehr/vimy/vimy-core/config"
	"github.com/nstehr/vimy/vimy-core/geometry"
	"github.com/nstehr/vimy/vimy-core/worldmap"
)

func flatMap(w, h int) *worldmap.Map {
	tiles := make([]worldmap.Tile, w*h)
	for i := range tiles {
		tiles[i] = worldmap.Tile{Type: worldmap.ShortGrass}
	}
	return worldmap.NewMap(w, h, 32, 32, tiles)
}

func TestFindStraightLineWalk(t *testing.T) {
	m := flatMap(10, 10)
	cfg := config.Default()
	path, ok := Find(m, geometry.GridPoint{X: 0, Y: 0}, worldmap.East, geometry.GridPoint{X: 5, Y: 0}, worldmap.WalkMode(), cfg)
	if !ok {
		t.Fatal("expected a path")
	}
	if path[0] != (geometry.GridPoint{X: 0, Y: 0}) {
		t.Errorf("expected path to start at origin, got %v", path[0])
	}
	if path[len(path)-1] != (geometry.GridPoint{X: 5, Y: 0}) {
		t.Errorf("expected path to end at goal, got %v", path[len(path)-1])
	}
}

func TestFindSameStartAndGoal(t *testing.T) {
	m := flatMap(10, 10)
	cfg := config.Default()
	path, ok := Find(m, geometry.GridPoint{X: 2, Y: 2}, worldmap.North, geometry.GridPoint{X: 2, Y: 2}, worldmap.WalkMode(), cfg)
	if !ok || len(path) != 1 {
		t.Fatalf("expected a single-point path, got %v (ok=%v)", path, ok)
	}
}

func TestFindOutOfMapGoalReturnsNoPath(t *testing.T) {
	m := flatMap(10, 10)
	cfg := config.Default()
	_, ok := Find(m, geometry.GridPoint{X: 0, Y: 0}, worldmap.East, geometry.GridPoint{X: 99, Y: 99}, worldmap.WalkMode(), cfg)
	if ok {
		t.Fatal("expected no path for an out-of-map goal")
	}
}

func TestFindUnreachableVehicleGoalBounded(t *testing.T) {
	w, h := 10, 10
	tiles := make([]worldmap.Tile, w*h)
	for i := range tiles {
		tiles[i] = worldmap.Tile{Type: worldmap.ShortGrass}
	}
	// Wall off the goal tile completely so no vehicle footprint can reach it.
	for x := 0; x < w; x++ {
		tiles[5*w+x] = worldmap.Tile{Type: worldmap.BrickWall}
	}
	m := worldmap.NewMap(w, h, 32, 32, tiles)
	cfg := config.Default()
	cfg.PathfindMaxExpansions = 50
	_, ok := Find(m, geometry.GridPoint{X: 0, Y: 0}, worldmap.East, geometry.GridPoint{X: 0, Y: 9}, worldmap.DriveMode(1), cfg)
	if ok {
		t.Fatal("expected no path across a fully blocked row")
	}
}

func TestFindDriveModePrefersForwardCost(t *testing.T) {
	m := flatMap(10, 10)
	cfg := config.Default()
	path, ok := Find(m, geometry.GridPoint{X: 0, Y: 0}, worldmap.East, geometry.GridPoint{X: 5, Y: 0}, worldmap.DriveMode(1), cfg)
	if !ok {
		t.Fatal("expected a path")
	}
	for _, p := range path {
		if p.Y != 0 {
			t.Errorf("expected a straight forward path along y=0, found %v", p)
		}
	}
}
