package battle

import (
	"fmt"

	"github.com/nstehr/vimy/vimy-core/geometry"
)

// VisibilityKey identifies a directed observer→target pair. Kept as a
// plain struct (not a map of maps) so it can be a Go map key directly.
type VisibilityKey struct {
	From SoldierIndex
	To   SoldierIndex
}

// MarshalText renders the key as "from:to" so a map keyed by VisibilityKey
// can round-trip through encoding/json, which requires struct map keys to
// implement encoding.TextMarshaler.
func (k VisibilityKey) MarshalText() ([]byte, error) {
	return []byte(fmt.Sprintf("%d:%d", int(k.From), int(k.To))), nil
}

// UnmarshalText parses the "from:to" form MarshalText produces.
func (k *VisibilityKey) UnmarshalText(text []byte) error {
	var from, to int
	if _, err := fmt.Sscanf(string(text), "%d:%d", &from, &to); err != nil {
		return fmt.Errorf("parse visibility key %q: %w", text, err)
	}
	k.From = SoldierIndex(from)
	k.To = SoldierIndex(to)
	return nil
}

// Visibility is the result of tracing one observer→target ray (§4.4). It is
// defined in battle rather than the visibility engine package so the
// engine can depend on battle's entity model without battle depending back
// on the engine.
type Visibility struct {
	From             geometry.WorldPoint
	To               geometry.WorldPoint
	PathFinalOpacity float64
	ToSceneOpacity   float64
	Visible          bool
	Blocked          bool
	Distance         geometry.Distance
	BreakPoint       *geometry.WorldPoint
	AlteredTo        geometry.WorldPoint
}
