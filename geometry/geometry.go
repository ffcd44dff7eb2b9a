// Package geometry holds the coordinate types and angle/distance math shared
// by every other package: world-space points, grid-space points, the
// client-facing window point, and the millimeter-precision distance type
// used to keep config comparisons free of float drift.
package geometry

import (
	"fmt"
	"math"
)

// DistanceToMetersCoefficient converts a world-space unit into meters.
const DistanceToMetersCoefficient = 0.3

// WorldPoint is a continuous position in world space.
type WorldPoint struct {
	X float64
	Y float64
}

func NewWorldPoint(x, y float64) WorldPoint { return WorldPoint{X: x, Y: y} }

// Apply returns the point translated by (dx, dy).
func (p WorldPoint) Apply(dx, dy float64) WorldPoint {
	return WorldPoint{X: p.X + dx, Y: p.Y + dy}
}

func (p WorldPoint) Sub(o WorldPoint) WorldPoint { return WorldPoint{X: p.X - o.X, Y: p.Y - o.Y} }
func (p WorldPoint) Add(o WorldPoint) WorldPoint { return WorldPoint{X: p.X + o.X, Y: p.Y + o.Y} }

func (p WorldPoint) Length() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y)
}

// Normalize returns a unit vector in the direction of p, or the zero vector
// if p has zero length.
func (p WorldPoint) Normalize() WorldPoint {
	l := p.Length()
	if l == 0 {
		return WorldPoint{}
	}
	return WorldPoint{X: p.X / l, Y: p.Y / l}
}

func (p WorldPoint) Scale(factor float64) WorldPoint {
	return WorldPoint{X: p.X * factor, Y: p.Y * factor}
}

// GridPoint is an integer tile coordinate.
type GridPoint struct {
	X int
	Y int
}

func NewGridPoint(x, y int) GridPoint { return GridPoint{X: x, Y: y} }

func (p GridPoint) String() string { return fmt.Sprintf("%d,%d", p.X, p.Y) }

// WindowPoint is a client-only screen coordinate. It is kept here only as a
// type other client-facing code can reference; nothing in the core engine
// produces or consumes it.
type WindowPoint struct {
	X float64
	Y float64
}

// GridFromWorld floors a world point into the tile it falls within.
func GridFromWorld(p WorldPoint, tileW, tileH float64) GridPoint {
	return GridPoint{
		X: int(math.Floor(p.X / tileW)),
		Y: int(math.Floor(p.Y / tileH)),
	}
}

// WorldFromGrid returns the center of the given tile.
func WorldFromGrid(g GridPoint, tileW, tileH float64) WorldPoint {
	return WorldPoint{
		X: float64(g.X)*tileW + tileW/2,
		Y: float64(g.Y)*tileH + tileH/2,
	}
}

// Angle is expressed in radians. The sprite convention is north-oriented:
// AngleFromPoints adds pi/2 to the raw atan2 result so that 0 points north.
type Angle float64

func AngleFromPoints(to, from WorldPoint) Angle {
	return Angle(math.Atan2(to.Y-from.Y, to.X-from.X) + math.Pi/2)
}

func (a Angle) Radians() float64 { return float64(a) }

func (a Angle) Degrees() float64 { return float64(a) * 180 / math.Pi }

// Normalize wraps the angle into [0, 2*pi).
func (a Angle) Normalize() Angle {
	v := math.Mod(float64(a), 2*math.Pi)
	if v < 0 {
		v += 2 * math.Pi
	}
	return Angle(v)
}

// ShortAngle returns the signed minimal rotation from current to target,
// picking the smallest-magnitude candidate among {delta, delta+2pi, delta-2pi}.
func ShortAngle(current, target Angle) Angle {
	delta := float64(target - current)
	candidates := [3]float64{delta, delta + 2*math.Pi, delta - 2*math.Pi}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if math.Abs(c) < math.Abs(best) {
			best = c
		}
	}
	return Angle(best)
}

// ShortAngleWay returns +1 or -1, the rotation direction of ShortAngle.
func ShortAngleWay(current, target Angle) float64 {
	if ShortAngle(current, target) >= 0 {
		return 1
	}
	return -1
}

// Distance is stored in millimeters to avoid float drift in config
// comparisons (e.g. range thresholds compared tick after tick).
type Distance struct {
	Millimeters int64
}

func DistanceFromMeters(meters int64) Distance { return Distance{Millimeters: meters * 1000} }

func DistanceFromMillimeters(mm int64) Distance { return Distance{Millimeters: mm} }

func (d Distance) Meters() int64 { return d.Millimeters / 1000 }

// DistanceBetween computes the straight-line distance between two world
// points, in millimeters, via the world-to-meters coefficient.
func DistanceBetween(a, b WorldPoint) Distance {
	dx := a.X - b.X
	dy := a.Y - b.Y
	worldDist := math.Sqrt(dx*dx + dy*dy)
	meters := worldDist * DistanceToMetersCoefficient
	return Distance{Millimeters: int64(meters * 1000)}
}

// WorldPath is an ordered list of waypoints a soldier or vehicle walks.
type WorldPath struct {
	Points []WorldPoint
}

func NewWorldPath(points []WorldPoint) WorldPath { return WorldPath{Points: points} }

func (p WorldPath) NextPoint() (WorldPoint, bool) {
	if len(p.Points) == 0 {
		return WorldPoint{}, false
	}
	return p.Points[0], true
}

func (p *WorldPath) RemoveNextPoint() (WorldPoint, bool) {
	if len(p.Points) == 0 {
		return WorldPoint{}, false
	}
	pt := p.Points[0]
	p.Points = p.Points[1:]
	return pt, true
}

func (p WorldPath) LastPoint() (WorldPoint, bool) {
	if len(p.Points) == 0 {
		return WorldPoint{}, false
	}
	return p.Points[len(p.Points)-1], true
}

func (p WorldPath) Len() int { return len(p.Points) }

// WorldPaths is a queue of WorldPath segments; a soldier consumes points from
// the first segment before moving to the next.
type WorldPaths struct {
	Paths []WorldPath
}

func NewWorldPaths(paths []WorldPath) WorldPaths { return WorldPaths{Paths: paths} }

func (p WorldPaths) NextPoint() (WorldPoint, bool) {
	if len(p.Paths) == 0 {
		return WorldPoint{}, false
	}
	return p.Paths[0].NextPoint()
}

// RemoveNextPoint pops the next waypoint, dropping exhausted path segments.
func (p *WorldPaths) RemoveNextPoint() (WorldPoint, bool) {
	for len(p.Paths) > 0 {
		pt, ok := p.Paths[0].RemoveNextPoint()
		if !ok {
			p.Paths = p.Paths[1:]
			continue
		}
		if p.Paths[0].Len() == 0 {
			p.Paths = p.Paths[1:]
		}
		return pt, true
	}
	return WorldPoint{}, false
}

// IsLastPoint reports whether exactly one waypoint remains across all
// segments. The second return value is false if there are no points at all.
func (p WorldPaths) IsLastPoint() (bool, bool) {
	if len(p.Paths) == 0 {
		return false, false
	}
	if len(p.Paths) > 1 {
		return false, true
	}
	return p.Paths[0].Len() == 1, true
}

func (p WorldPaths) Empty() bool { return len(p.Paths) == 0 }

// GridPath accumulates the distinct grid cells visited while rasterizing a
// line of sight ray; Contains is a small linear scan since rays only cover a
// few dozen cells.
type GridPath struct {
	Points []GridPoint
}

func (p *GridPath) Contains(g GridPoint) bool {
	for _, existing := range p.Points {
		if existing == g {
			return true
		}
	}
	return false
}

func (p *GridPath) Push(g GridPoint) { p.Points = append(p.Points, g) }

func (p *GridPath) Len() int { return len(p.Points) }
