package replication

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/nstehr/vimy/vimy-core/battle"
	"github.com/nstehr/vimy/vimy-core/config"
	"github.com/nstehr/vimy/vimy-core/ipc"
	"github.com/nstehr/vimy/vimy-core/scheduler"
)

// Server is the authoritative side of replication: it owns the one battle
// State, applies every InputMessage against it (via the REQ/REP command
// channel), and turns each tick's Outcome into a sequenced Envelope handed
// to the PUB/SUB broadcaster (§4.10, §5 — "the simulation thread is the
// only writer of State").
//
// Tick, HandleInput, SetControl, Control and FullSync all hold mu while
// they run, so calls from different goroutines are serialized against one
// another.
type Server struct {
	mu sync.Mutex

	State  *battle.State
	Config *config.Config
	engine *scheduler.Engine

	broadcaster *ipc.Broadcaster
	nextEnvID   uint64

	control LoadControl
}

// NewServer wires a fresh Server around an already-loaded battle state and
// scheduler engine — deployment loading happens one layer up, in the
// deployment package and cmd/vimy-server's main.
func NewServer(state *battle.State, cfg *config.Config, engine *scheduler.Engine, broadcaster *ipc.Broadcaster) *Server {
	return &Server{
		State:       state,
		Config:      cfg,
		engine:      engine,
		broadcaster: broadcaster,
	}
}

// HandleInput is registered as the REQ/REP handler for TypeInput (§4.10):
// it decodes one InputMessage, applies it, and always replies with an
// empty TypeAck envelope — the command channel never reports gameplay
// "cannot" outcomes as transport-level errors (§7).
func (s *Server) HandleInput(env ipc.Envelope) (*ipc.Envelope, error) {
	var msg InputMessage
	if err := json.Unmarshal(env.Data, &msg); err != nil {
		return nil, fmt.Errorf("decode input message: %w", err)
	}

	s.mu.Lock()
	s.apply(msg)
	s.mu.Unlock()

	ack, err := ipc.NewEnvelope(TypeAck, struct{}{})
	if err != nil {
		return nil, err
	}
	return &ack, nil
}

// SetControl assigns which spawn zones each side may deploy into and
// contest, bypassing the command channel — used once at process startup
// from CLI flags (§6 `--side-a-control`/`--side-b-control`), as opposed to
// InLoadControl which a connected client sends mid-session.
func (s *Server) SetControl(c LoadControl) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.control = c
}

// Control returns the currently configured spawn-zone control, read by the
// placement-phase cover search (§4.8) to know which zones a side may place
// soldiers into.
func (s *Server) Control() LoadControl {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.control
}

// apply resolves one InputMessage against the authoritative state. Callers
// hold s.mu.
func (s *Server) apply(msg InputMessage) {
	switch msg.Kind {
	case InLoadControl:
		if msg.Control != nil {
			s.control = *msg.Control
		}
	case InSetBattleState:
		if msg.Copy != nil {
			Restore(s.State, *msg.Copy)
		}
	case InBattleState:
		if msg.Battle != nil {
			battle.Reduce(s.State, *msg.Battle)
		}
	case InChangeConfig:
		if msg.Config != nil {
			s.Config.Apply(*msg.Config)
		}
	case InRequireCompleteSync:
		// Handled by the caller driving the publish loop: a
		// RequireCompleteSync input doesn't mutate state, it only flags
		// that the next Publish must carry a full LoadFromCopy. See
		// Tick's forceSync parameter.
	case InLoadDeployment:
		// Deployment loading builds a brand new State via the deployment
		// package and is wired in by cmd/vimy-server before the server
		// loop starts; there is nothing for the running server to do
		// here beyond acknowledging the request.
	}
}

// Tick advances the simulation by one frame and publishes the resulting
// Outcome as the next sequenced Envelope. forceSync, when true, prefixes
// the envelope with a full LoadFromCopy snapshot — used after a
// RequireCompleteSync input or a newly subscribed client (§4.10, §8).
func (s *Server) Tick(forceSync bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	outcome := s.engine.Tick(s.State)

	var out []OutputMessage
	if forceSync {
		out = append(out, OutputMessage{Kind: OutLoadFromCopy, Copy: copyPtr(Snapshot(s.State))})
	}
	for _, m := range outcome.BattleMessages {
		m := m
		out = append(out, OutputMessage{Kind: OutBattleState, Battle: &m})
	}
	for _, m := range outcome.ClientMessages {
		m := m
		out = append(out, OutputMessage{Kind: OutClientState, Client: &m})
	}

	if len(out) == 0 && !forceSync {
		return
	}

	s.nextEnvID++
	env := Envelope{ID: s.nextEnvID, Messages: out}

	wireEnv, err := ipc.NewEnvelope(TypePublish, env)
	if err != nil {
		slog.Error("publish: failed to encode envelope", "error", err)
		return
	}
	s.broadcaster.Publish(wireEnv)
}

// FullSync builds a standalone resync Envelope without advancing the
// simulation — used to answer a newly subscribed client (§8's "the server
// may push a LoadFromCopy at any time").
func (s *Server) FullSync() Envelope {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextEnvID++
	return Envelope{
		ID:       s.nextEnvID,
		Messages: []OutputMessage{{Kind: OutLoadFromCopy, Copy: copyPtr(Snapshot(s.State))}},
	}
}

func copyPtr(c StateCopy) *StateCopy { return &c }
