package worldmap

import (
	"math"

	"github.com/nstehr/vimy/vimy-core/battle"
	"github.com/nstehr/vimy/vimy-core/geometry"
)

// Direction is one of the 8 compass headings a soldier or vehicle can face
// or step toward.
type Direction int

const (
	North Direction = iota
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
)

var allDirections = [8]Direction{North, NorthEast, East, SouthEast, South, SouthWest, West, NorthWest}

// Modifier returns the (dx, dy) grid step for this direction.
func (d Direction) Modifier() (int, int) {
	switch d {
	case North:
		return 0, -1
	case NorthEast:
		return 1, -1
	case East:
		return 1, 0
	case SouthEast:
		return 1, 1
	case South:
		return 0, 1
	case SouthWest:
		return -1, 1
	case West:
		return -1, 0
	case NorthWest:
		return -1, -1
	default:
		return 0, 0
	}
}

// FromAngle buckets a world-space angle into the nearest compass direction.
func FromAngle(angle geometry.Angle) Direction {
	degrees := math.Mod(angle.Degrees(), 360)
	if degrees < 0 {
		degrees += 360
	}
	switch {
	case degrees >= 337.5 || degrees <= 22.5:
		return North
	case degrees > 22.5 && degrees <= 67.5:
		return NorthEast
	case degrees > 67.5 && degrees <= 112.5:
		return East
	case degrees > 112.5 && degrees <= 157.5:
		return SouthEast
	case degrees > 157.5 && degrees <= 202.5:
		return South
	case degrees > 202.5 && degrees <= 247.5:
		return SouthWest
	case degrees > 247.5 && degrees <= 292.5:
		return West
	default:
		return NorthWest
	}
}

// Direction cost constants driving vehicles toward forward motion (§4.3).
const (
	CostAhead      = 0
	CostDiagonal   = 10
	CostCorner     = 20
	CostBackCorner = 30
	CostBack       = 50
)

// AngleCost is the drive-mode successor cost of turning from this
// direction (the vehicle's current heading) toward the candidate
// direction, favoring forward and penalizing reversing.
func (d Direction) AngleCost(candidate Direction) int {
	offset := (int(candidate) - int(d) + 8) % 8
	switch offset {
	case 0:
		return CostAhead
	case 1, 7:
		return CostDiagonal
	case 2, 6:
		return CostCorner
	case 3, 5:
		return CostBackCorner
	default: // 4
		return CostBack
	}
}

// PathMode selects whether successors are generated for a soldier on foot
// (terrain pedestrian cost) or a vehicle of a given footprint size (angle
// cost, favoring forward motion, and blocked by any tile whose size×size
// footprint collides).
type PathMode struct {
	Vehicle bool
	Size    battle.VehicleSize
}

func WalkMode() PathMode                             { return PathMode{} }
func DriveMode(size battle.VehicleSize) PathMode { return PathMode{Vehicle: true, Size: size} }

func (m PathMode) IncludeVehicles() bool { return m.Vehicle }
