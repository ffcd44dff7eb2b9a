package battle

import (
	"encoding/json"
	"testing"

	"github.com/nstehr/vimy/vimy-core/geometry"
)

func TestVisibilityKeyTextRoundTrip(t *testing.T) {
	key := VisibilityKey{From: 3, To: 7}
	text, err := key.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText: %v", err)
	}

	var got VisibilityKey
	if err := got.UnmarshalText(text); err != nil {
		t.Fatalf("UnmarshalText: %v", err)
	}
	if got != key {
		t.Fatalf("expected %+v, got %+v", key, got)
	}
}

// A BattleStateMessage carrying SetVisibilities must survive encoding/json
// round trip — a struct map key without TextMarshaler fails every message,
// not just this one, since the struct encoder walks every field (§8
// "Encode/decode of every message kind is a round trip").
func TestSetVisibilitiesMessageJSONRoundTrip(t *testing.T) {
	vis := map[VisibilityKey]Visibility{
		{From: 0, To: 1}: {Visible: true, Distance: geometry.DistanceFromMillimeters(1500)},
	}
	msg := SetVisibilitiesMessage(vis)

	encoded, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded BattleStateMessage
	if err := json.Unmarshal(encoded, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	got, ok := decoded.Visibilities[VisibilityKey{From: 0, To: 1}]
	if !ok {
		t.Fatalf("expected visibility entry to survive round trip, got %+v", decoded.Visibilities)
	}
	if !got.Visible || got.Distance != geometry.DistanceFromMillimeters(1500) {
		t.Fatalf("unexpected round-tripped visibility: %+v", got)
	}
}
