package ipc

import (
	"context"
	"log/slog"
	"net"
	"sync"
)

// Broadcaster is the PUB side of the broadcast channel (§4.10/§5): it fans
// out every published Envelope to all currently subscribed connections.
// Unlike Connection it never reads from a subscriber — publication is
// one-directional, and a subscriber that errors on write is dropped rather
// than retried.
type Broadcaster struct {
	mu   sync.Mutex
	subs map[net.Conn]struct{}
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[net.Conn]struct{})}
}

// Subscribe registers conn to receive every future Publish call.
func (b *Broadcaster) Subscribe(conn net.Conn) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs[conn] = struct{}{}
}

func (b *Broadcaster) unsubscribe(conn net.Conn) {
	b.mu.Lock()
	delete(b.subs, conn)
	b.mu.Unlock()
	conn.Close()
}

// Publish writes env to every current subscriber. A write failure drops
// that subscriber — it does not abort the fan-out to the rest (§7
// "Transport error": logged, skipped, the channel continues).
func (b *Broadcaster) Publish(env Envelope) {
	b.mu.Lock()
	conns := make([]net.Conn, 0, len(b.subs))
	for c := range b.subs {
		conns = append(conns, c)
	}
	b.mu.Unlock()

	for _, c := range conns {
		if err := WriteEnvelope(c, env); err != nil {
			slog.Warn("pub: dropping subscriber after write error", "remote", c.RemoteAddr(), "error", err)
			b.unsubscribe(c)
		}
	}
}

// AcceptSubscribers runs the PUB task's accept loop: every incoming
// connection is registered as a subscriber immediately, with no
// handshake — the broadcast channel has no inbound message of its own.
// It returns once ctx is cancelled and the listener is closed by the
// caller.
func (b *Broadcaster) AcceptSubscribers(ctx context.Context, listener net.Listener) {
	for {
		conn, err := listener.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return
			default:
				slog.Error("pub: accept failed", "error", err)
				continue
			}
		}
		slog.Info("subscriber connected", "remote", conn.RemoteAddr())
		b.Subscribe(conn)
	}
}
