package worldmap

import "github.com/nstehr/vimy/vimy-core/geometry"

// Flag is a named victory-condition zone; flags are looked up by name key,
// never by index, and an unknown name is a programmatic invariant
// violation (§9).
type Flag struct {
	Name  string
	Shape Shape
}

// Shape is an axis-aligned rectangle in world space, used for flag zones,
// interior zones, and spawn zones.
type Shape struct {
	Min geometry.WorldPoint
	Max geometry.WorldPoint
}

func (s Shape) Contains(p geometry.WorldPoint) bool {
	return p.X >= s.Min.X && p.X <= s.Max.X && p.Y >= s.Min.Y && p.Y <= s.Max.Y
}

// Intersects reports whether two axis-aligned shapes overlap.
func (s Shape) Intersects(other Shape) bool {
	return s.Min.X <= other.Max.X && s.Max.X >= other.Min.X &&
		s.Min.Y <= other.Max.Y && s.Max.Y >= other.Min.Y
}

// SpawnZoneName identifies a named deployment zone, or the wildcard "All".
type SpawnZoneName string

const SpawnZoneAll SpawnZoneName = "All"

type SpawnZone struct {
	Name  SpawnZoneName
	Shape Shape
}

func (z SpawnZone) Contains(s Shape) bool { return z.Shape.Intersects(s) }

// Interior is an axis-aligned zone (imported from the map's
// `interiors_zones` object layer, §6) inside which soldiers get separate
// interiors-visibility treatment (§4.4, "Interiors visibility").
type Interior struct {
	Shape Shape
}

// Map is the tile grid plus its flags, spawn zones, and interiors.
type Map struct {
	Width, Height int
	TileWidth     float64
	TileHeight    float64
	Tiles         []Tile

	Flags      map[string]Flag
	SpawnZones []SpawnZone
	Interiors  []Interior
}

func NewMap(width, height int, tileWidth, tileHeight float64, tiles []Tile) *Map {
	return &Map{
		Width:      width,
		Height:     height,
		TileWidth:  tileWidth,
		TileHeight: tileHeight,
		Tiles:      tiles,
		Flags:      make(map[string]Flag),
	}
}

func (m *Map) Contains(p geometry.GridPoint) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < m.Width && p.Y < m.Height
}

func (m *Map) TileAt(p geometry.GridPoint) (Tile, bool) {
	if !m.Contains(p) {
		return Tile{}, false
	}
	return m.Tiles[p.Y*m.Width+p.X], true
}

func (m *Map) GridFromWorld(p geometry.WorldPoint) geometry.GridPoint {
	return geometry.GridFromWorld(p, m.TileWidth, m.TileHeight)
}

func (m *Map) WorldFromGrid(p geometry.GridPoint) geometry.WorldPoint {
	return geometry.WorldFromGrid(p, m.TileWidth, m.TileHeight)
}

// Flag looks up a flag by its name key. Per §9, an unknown name is a
// programmatic invariant violation, not a recoverable error — callers that
// reach this with a bad name have a bug.
func (m *Map) Flag(name string) Flag {
	f, ok := m.Flags[name]
	if !ok {
		panic("worldmap: unknown flag name " + name)
	}
	return f
}

// PointAllowVehicle reports whether a size×size square centered on point
// contains no vehicle-blocking tile (§4.3).
func (m *Map) PointAllowVehicle(point geometry.GridPoint, size int) bool {
	half := size / 2
	for x := point.X - half; x < point.X+half; x++ {
		for y := point.Y - half; y < point.Y+half; y++ {
			tile, ok := m.TileAt(geometry.GridPoint{X: x, Y: y})
			if ok && tile.BlocksVehicle() {
				return false
			}
		}
	}
	return true
}

// Successor is one step reachable from a (position, heading) pair, along
// with its traversal cost.
type Successor struct {
	Point     geometry.GridPoint
	Direction Direction
	Cost      int
}

// Successors enumerates every compass-direction step reachable from
// (from, heading) under the given path mode, ported from Map::successors.
func (m *Map) Successors(from geometry.GridPoint, heading Direction, mode PathMode) []Successor {
	var out []Successor
	for _, direction := range allDirections {
		dx, dy := direction.Modifier()
		next := geometry.GridPoint{X: from.X + dx, Y: from.Y + dy}
		tile, ok := m.TileAt(next)
		if !ok {
			continue
		}
		if mode.IncludeVehicles() {
			if tile.BlocksVehicle() {
				continue
			}
			if !m.PointAllowVehicle(next, int(mode.Size)) {
				continue
			}
		}
		var cost int
		if mode.IncludeVehicles() {
			cost = heading.AngleCost(direction)
		} else {
			cost = tile.PedestrianCost()
		}
		out = append(out, Successor{Point: next, Direction: direction, Cost: cost})
	}
	return out
}

// FindSpawnZones returns every spawn zone matching one of the given names,
// or all zones if SpawnZoneAll is among them.
func (m *Map) FindSpawnZones(names []SpawnZoneName) []SpawnZone {
	wantsAll := false
	set := make(map[SpawnZoneName]bool, len(names))
	for _, n := range names {
		if n == SpawnZoneAll {
			wantsAll = true
		}
		set[n] = true
	}
	var out []SpawnZone
	for _, z := range m.SpawnZones {
		if wantsAll || set[z.Name] {
			out = append(out, z)
		}
	}
	return out
}

// OneOfSpawnZoneContainsFlag reports whether any of the named spawn zones
// overlaps the given flag's shape — used to decide whether a side can
// contest a flag from its own deployment zone.
func (m *Map) OneOfSpawnZoneContainsFlag(names []SpawnZoneName, flag Flag) bool {
	for _, name := range names {
		for _, z := range m.FindSpawnZones([]SpawnZoneName{name}) {
			if z.Contains(flag.Shape) {
				return true
			}
		}
	}
	return false
}
