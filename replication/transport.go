package replication

import (
	"context"
	"fmt"
	"log/slog"
	"net"

	"github.com/nstehr/vimy/vimy-core/ipc"
)

// ServeCommands accepts REQ/REP connections on listener until ctx is
// cancelled, dispatching every TypeInput envelope to srv.HandleInput. Each
// connection gets its own Connection/ReadLoop, matching the teacher's
// accept-loop shape in the original main.go.
func ServeCommands(ctx context.Context, listener net.Listener, srv *Server) {
	for {
		conn, err := listener.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return
			default:
				slog.Error("rep: accept failed", "error", err)
				continue
			}
		}

		c := ipc.NewConnection(conn, nil)
		c.Label = conn.RemoteAddr().String()
		c.RegisterHandler(TypeInput, srv.HandleInput)
		go c.ReadLoop()
	}
}

// SendInput opens a REQ connection, sends msg framed as TypeInput, and
// blocks for the server's acknowledgement envelope — the one-request,
// one-reply exchange §4.10 specifies for the command channel. It leaves
// conn open after the round trip, so several inputs can be sent over the
// same connection.
func SendInput(conn net.Conn, msg InputMessage) error {
	env, err := ipc.NewEnvelope(TypeInput, msg)
	if err != nil {
		return fmt.Errorf("encode input: %w", err)
	}
	if err := ipc.WriteEnvelope(conn, env); err != nil {
		return fmt.Errorf("send input: %w", err)
	}
	ack, err := ipc.ReadEnvelope(conn)
	if err != nil {
		return fmt.Errorf("read ack: %w", err)
	}
	if ack.Type != TypeAck {
		return fmt.Errorf("unexpected reply type %q", ack.Type)
	}
	return nil
}

// SubscribeLoop dials the PUB address, reads every published envelope, and
// applies it to m until the connection closes or ctx is cancelled. A
// client that wants to recover after NeedsResync flips true still must
// send RequireCompleteSyncMessage on its own command connection — this
// loop only consumes the broadcast side.
func SubscribeLoop(ctx context.Context, conn net.Conn, m *Mirror) error {
	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	for {
		wireEnv, err := ipc.ReadEnvelope(conn)
		if err != nil {
			return fmt.Errorf("subscribe: read envelope: %w", err)
		}
		if wireEnv.Type != TypePublish {
			slog.Warn("subscribe: ignoring unexpected envelope type", "type", wireEnv.Type)
			continue
		}
		env, err := DecodePublish(wireEnv.Data)
		if err != nil {
			slog.Error("subscribe: failed to decode publish envelope", "error", err)
			continue
		}
		m.ApplyEnvelope(env)
	}
}
