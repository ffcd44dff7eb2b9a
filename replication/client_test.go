package replication

import (
	"testing"

	"github.com/nstehr/vimy/vimy-core/battle"
	"github.com/nstehr/vimy/vimy-core/config"
)

func TestMirrorAppliesInOrder(t *testing.T) {
	m := NewMirror(config.Default())

	full := Envelope{ID: 1, Messages: []OutputMessage{{Kind: OutLoadFromCopy, Copy: copyPtr(Snapshot(battle.NewState()))}}}
	m.ApplyEnvelope(full)
	if m.NeedsResync {
		t.Fatalf("resync flag should clear after a full sync")
	}

	next := Envelope{ID: 2, Messages: []OutputMessage{{Kind: OutBattleState, Battle: ptrMsg(battle.IncrementFrameIMessage())}}}
	m.ApplyEnvelope(next)

	if m.State.FrameI != 1 {
		t.Fatalf("expected frame 1 after one increment, got %d", m.State.FrameI)
	}
}

func TestMirrorDetectsSequenceGap(t *testing.T) {
	m := NewMirror(config.Default())

	m.ApplyEnvelope(Envelope{ID: 1, Messages: []OutputMessage{{Kind: OutLoadFromCopy, Copy: copyPtr(Snapshot(battle.NewState()))}}})
	if m.NeedsResync {
		t.Fatalf("resync flag should clear after a full sync")
	}

	// Skip straight from 1 to 3: the client must notice the gap rather
	// than silently applying envelope 3 against stale state.
	m.ApplyEnvelope(Envelope{ID: 3, Messages: []OutputMessage{{Kind: OutBattleState, Battle: ptrMsg(battle.IncrementFrameIMessage())}}})

	if !m.NeedsResync {
		t.Fatalf("expected NeedsResync after a sequence gap")
	}
	if m.State.FrameI != 0 {
		t.Fatalf("gapped envelope must not be applied, got frame %d", m.State.FrameI)
	}
}

func TestMirrorRecoversAfterResync(t *testing.T) {
	m := NewMirror(config.Default())
	m.ApplyEnvelope(Envelope{ID: 5, Messages: []OutputMessage{{Kind: OutBattleState, Battle: ptrMsg(battle.IncrementFrameIMessage())}}})
	if !m.NeedsResync {
		t.Fatalf("expected resync requested before any full sync has been seen")
	}

	snap := battle.NewState()
	snap.FrameI = 100
	m.ApplyEnvelope(Envelope{ID: 6, Messages: []OutputMessage{{Kind: OutLoadFromCopy, Copy: copyPtr(Snapshot(snap))}}})

	if m.NeedsResync {
		t.Fatalf("resync flag should clear once a LoadFromCopy is applied")
	}
	if m.State.FrameI != 100 {
		t.Fatalf("expected state restored to snapshot frame, got %d", m.State.FrameI)
	}
}

func ptrMsg(m battle.BattleStateMessage) *battle.BattleStateMessage { return &m }
