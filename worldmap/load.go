package worldmap

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/nstehr/vimy/vimy-core/geometry"
)

// The map file format below is a deliberately small JSON rendering of the
// layer scheme documented in §6 and mirrored by the original engine's Tiled
// reader (battle_core::map::reader::MapReader): a `terrain` tile layer
// whose cells carry one of the recognized TerrainType names, and object
// layers for `interiors_zones`, `spawn_zones`, and `flags`. Everything the
// original reader does beyond that — resolving tileset images, decor
// sprite atlases, background/interiors image paths — is GUI/asset loading
// explicitly out of scope (§1), so this decoder only ever reads the layers
// the simulation core itself consumes.
type mapFile struct {
	Width     int            `json:"width"`
	Height    int            `json:"height"`
	TileWidth float64        `json:"tile_width"`
	TileHeight float64       `json:"tile_height"`
	Terrain   []string       `json:"terrain"`
	Interiors []rectZone     `json:"interiors_zones"`
	SpawnZones []namedZone   `json:"spawn_zones"`
	Flags     []namedZone    `json:"flags"`
}

type rectZone struct {
	MinX, MinY, MaxX, MaxY float64
}

func (r *rectZone) UnmarshalJSON(b []byte) error {
	var raw struct {
		X, Y, Width, Height float64
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	r.MinX, r.MinY = raw.X, raw.Y
	r.MaxX, r.MaxY = raw.X+raw.Width, raw.Y+raw.Height
	return nil
}

func (r rectZone) shape() Shape {
	return Shape{Min: geometry.NewWorldPoint(r.MinX, r.MinY), Max: geometry.NewWorldPoint(r.MaxX, r.MaxY)}
}

type namedZone struct {
	Name string   `json:"name"`
	Rect rectZone `json:"rect"`
}

// terrainTypeByName mirrors the §6 "Terrain type names recognized" list
// and the original's TerrainTile::from_str_id match.
var terrainTypeByName = map[string]TerrainType{
	"ShortGrass":      ShortGrass,
	"MiddleGrass":     MiddleGrass,
	"HighGrass":       HighGrass,
	"Dirt":            Dirt,
	"Concrete":        Concrete,
	"Mud":             Mud,
	"BrickWall":       BrickWall,
	"Trunk":           Trunk,
	"Water":           Water,
	"DeepWater":       DeepWater,
	"Underbrush":      Underbrush,
	"LightUnderbrush": LightUnderbrush,
	"MiddleWoodLogs":  MiddleWoodLogs,
	"Hedge":           Hedge,
	"MiddleRock":      MiddleRock,
}

// LoadError reports a map/load failure (§7 "Map/deployment load error":
// file missing, layer missing, tile has no ID, non-rect interior, unknown
// terrain ID — all fatal at startup).
type LoadError struct {
	Reason string
}

func (e *LoadError) Error() string { return "map load: " + e.Reason }

// Decode parses a map file per §6's layer scheme into a Map. Every failure
// path returns a *LoadError, matching §7's fatal-at-startup taxonomy for
// map load errors — callers (cmd/vimy-server) wrap it once more with the
// file path before aborting.
func Decode(r io.Reader) (*Map, error) {
	var mf mapFile
	if err := json.NewDecoder(r).Decode(&mf); err != nil {
		return nil, &LoadError{Reason: fmt.Sprintf("invalid map file: %v", err)}
	}

	if mf.Width <= 0 || mf.Height <= 0 {
		return nil, &LoadError{Reason: "terrain layer missing or empty"}
	}
	if len(mf.Terrain) != mf.Width*mf.Height {
		return nil, &LoadError{Reason: fmt.Sprintf(
			"terrain layer has %d cells, expected %d (%dx%d)", len(mf.Terrain), mf.Width*mf.Height, mf.Width, mf.Height)}
	}

	tiles := make([]Tile, len(mf.Terrain))
	for i, name := range mf.Terrain {
		t, ok := terrainTypeByName[name]
		if !ok {
			return nil, &LoadError{Reason: fmt.Sprintf("tile %d has unknown terrain ID %q", i, name)}
		}
		tiles[i] = Tile{Type: t}
	}

	m := NewMap(mf.Width, mf.Height, mf.TileWidth, mf.TileHeight, tiles)

	for _, iz := range mf.Interiors {
		m.Interiors = append(m.Interiors, Interior{Shape: iz.shape()})
	}

	for _, sz := range mf.SpawnZones {
		if sz.Name == "" {
			return nil, &LoadError{Reason: "spawn zone missing name"}
		}
		m.SpawnZones = append(m.SpawnZones, SpawnZone{Name: SpawnZoneName(sz.Name), Shape: sz.Rect.shape()})
	}

	for _, f := range mf.Flags {
		if f.Name == "" {
			return nil, &LoadError{Reason: "flag missing name"}
		}
		m.Flags[f.Name] = Flag{Name: f.Name, Shape: f.Rect.shape()}
	}

	return m, nil
}
