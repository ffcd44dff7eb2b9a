package replication

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/nstehr/vimy/vimy-core/battle"
	"github.com/nstehr/vimy/vimy-core/config"
)

// Mirror is the client side of the broadcast channel: a local copy of
// State kept in lockstep with the server by applying every published
// Envelope in order, plus the gap-detection rule that asks for a resync
// the moment a sequence number is skipped (§4.10 scenario 4, §8).
type Mirror struct {
	State  *battle.State
	Config *config.Config

	lastSeenID uint64
	// NeedsResync is set the instant a gap is detected or before the first
	// envelope arrives, and cleared only by applying an OutLoadFromCopy
	// message — callers poll it to decide whether to send
	// RequireCompleteSyncMessage on the command channel.
	NeedsResync bool
}

// NewMirror starts a Mirror with an empty battle; it begins in the
// needs-resync state until the first envelope (necessarily a full sync)
// arrives.
func NewMirror(cfg *config.Config) *Mirror {
	return &Mirror{
		State:       battle.NewState(),
		Config:      cfg,
		NeedsResync: true,
	}
}

// ApplyEnvelope processes one published Envelope. A gap in the sequence —
// env.ID not immediately following the last one applied — is logged and
// flips NeedsResync without applying the envelope's messages, since a
// partial application against stale state would compound the
// divergence (§4.10 scenario 4: "the client detects the gap ... and
// requests a full resync").
func (m *Mirror) ApplyEnvelope(env Envelope) {
	if m.lastSeenID != 0 && m.lastSeenID+1 != env.ID {
		slog.Warn("replication: sequence gap detected, requesting resync",
			"expected", m.lastSeenID+1, "got", env.ID)
		m.NeedsResync = true
		return
	}
	m.lastSeenID = env.ID

	for _, msg := range env.Messages {
		m.applyOne(msg)
	}
}

func (m *Mirror) applyOne(msg OutputMessage) {
	switch msg.Kind {
	case OutLoadFromCopy:
		if msg.Copy != nil {
			Restore(m.State, *msg.Copy)
			m.NeedsResync = false
		}
	case OutBattleState:
		if msg.Battle != nil {
			battle.Reduce(m.State, *msg.Battle)
		}
	case OutClientState:
		// Client-only messages (interface sounds, etc.) never touch
		// State — a caller wanting to react to them should inspect
		// env.Messages directly rather than through Mirror, which only
		// keeps State synchronized.
	case OutChangeConfig:
		if msg.Config != nil {
			m.Config.Apply(*msg.Config)
		}
	}
}

// DecodePublish unmarshals the Data payload of an ipc.Envelope tagged
// TypePublish into a replication Envelope.
func DecodePublish(data []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return Envelope{}, fmt.Errorf("decode publish envelope: %w", err)
	}
	return env, nil
}
