package replication

import (
	"net"
	"testing"

	"github.com/nstehr/vimy/vimy-core/battle"
	"github.com/nstehr/vimy/vimy-core/config"
	"github.com/nstehr/vimy/vimy-core/ipc"
	"github.com/nstehr/vimy/vimy-core/scheduler"
	"github.com/nstehr/vimy/vimy-core/worldmap"
)

func newTestServer(t *testing.T) (*Server, net.Conn) {
	t.Helper()
	cfg := config.Default()
	m := worldmap.NewMap(10, 10, 1, 1, make([]worldmap.Tile, 100))
	engine, err := scheduler.NewEngine(m, cfg)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	broadcaster := ipc.NewBroadcaster()
	serverConn, clientConn := net.Pipe()
	broadcaster.Subscribe(serverConn)

	srv := NewServer(battle.NewState(), cfg, engine, broadcaster)
	return srv, clientConn
}

func TestServerTicksPublishMonotonicIDs(t *testing.T) {
	srv, clientConn := newTestServer(t)
	defer clientConn.Close()

	done := make(chan uint64, 2)
	go func() {
		for i := 0; i < 2; i++ {
			wireEnv, err := ipc.ReadEnvelope(clientConn)
			if err != nil {
				return
			}
			env, err := DecodePublish(wireEnv.Data)
			if err != nil {
				return
			}
			done <- env.ID
		}
	}()

	srv.Tick(true)
	srv.Tick(true)

	first := <-done
	second := <-done
	if first != 1 || second != 2 {
		t.Fatalf("expected envelope ids 1 then 2, got %d then %d", first, second)
	}
}

func TestServerHandleInputAcksBattleMessage(t *testing.T) {
	srv, clientConn := newTestServer(t)
	defer clientConn.Close()

	msg := BattleStateInput(battle.IncrementFrameIMessage())
	env, err := ipc.NewEnvelope(TypeInput, msg)
	if err != nil {
		t.Fatalf("NewEnvelope: %v", err)
	}

	resp, err := srv.HandleInput(env)
	if err != nil {
		t.Fatalf("HandleInput: %v", err)
	}
	if resp == nil || resp.Type != TypeAck {
		t.Fatalf("expected ack envelope, got %+v", resp)
	}
	if srv.State.FrameI != 1 {
		t.Fatalf("expected frame incremented via input, got %d", srv.State.FrameI)
	}
}
