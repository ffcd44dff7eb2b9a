// Package worldmap holds the tile grid, terrain types, flags, spawn zones,
// and interiors that the pathfinder and visibility engine read. Modeled
// after the teacher's model.TerrainGrid, generalized from a coarse 32x32
// zone grid to a per-cell tile grid carrying the full terrain type set.
package worldmap

// TerrainType classifies a grid cell. Names match the tile-map tileset's
// `ID` property values recognized on import (§6).
type TerrainType int

const (
	ShortGrass TerrainType = iota
	MiddleGrass
	HighGrass
	Dirt
	Concrete
	Mud
	BrickWall
	Trunk
	Water
	DeepWater
	Underbrush
	LightUnderbrush
	MiddleWoodLogs
	Hedge
	MiddleRock
)

func (t TerrainType) String() string {
	switch t {
	case ShortGrass:
		return "ShortGrass"
	case MiddleGrass:
		return "MiddleGrass"
	case HighGrass:
		return "HighGrass"
	case Dirt:
		return "Dirt"
	case Concrete:
		return "Concrete"
	case Mud:
		return "Mud"
	case BrickWall:
		return "BrickWall"
	case Trunk:
		return "Trunk"
	case Water:
		return "Water"
	case DeepWater:
		return "DeepWater"
	case Underbrush:
		return "Underbrush"
	case LightUnderbrush:
		return "LightUnderbrush"
	case MiddleWoodLogs:
		return "MiddleWoodLogs"
	case Hedge:
		return "Hedge"
	case MiddleRock:
		return "MiddleRock"
	default:
		return "Unknown"
	}
}

// PedestrianCost is the A* tile-entry cost for a soldier on foot (§4.3,
// "Walk mode uses the tile's pedestrian cost").
func (t TerrainType) PedestrianCost() int {
	switch t {
	case Mud:
		return 4
	case HighGrass, Underbrush, MiddleWoodLogs:
		return 2
	case Water:
		return 3
	default:
		return 1
	}
}

// BlocksVehicle reports whether this terrain type blocks vehicle movement
// entirely (§3 "Terrain tile").
func (t TerrainType) BlocksVehicle() bool {
	switch t {
	case BrickWall, Trunk, DeepWater, MiddleWoodLogs, MiddleRock, Hedge:
		return true
	default:
		return false
	}
}

// BlocksBullet reports whether this terrain type stops bullet line-of-sight
// traces (used by the visibility engine's `blocked` flag, §4.4).
func (t TerrainType) BlocksBullet() bool {
	switch t {
	case BrickWall, Trunk, MiddleRock:
		return true
	default:
		return false
	}
}

// Tile is one grid cell's terrain classification plus its per-tile
// metrics, derived entirely from its TerrainType.
type Tile struct {
	Type TerrainType
}

func (t Tile) PedestrianCost() int    { return t.Type.PedestrianCost() }
func (t Tile) BlocksVehicle() bool    { return t.Type.BlocksVehicle() }
func (t Tile) BlocksBullet() bool     { return t.Type.BlocksBullet() }
