// Package lobby implements the lobby service: the in-memory session,
// room and invite tables, the action dispatch for authenticated and
// pre-auth clients, and the match launcher.
package lobby

import (
	"net"
	"sync"

	"github.com/udisondev/gamehub/internal/wire"
)

// clientConn serializes writes to one client socket. A handler's direct
// reply and an unrelated broadcast (room update, invite, game start) can
// both target the same connection from different goroutines; without
// this the two framed messages could interleave on the wire.
type clientConn struct {
	conn net.Conn
	mu   sync.Mutex
}

func newClientConn(conn net.Conn) *clientConn {
	return &clientConn{conn: conn}
}

// Send writes one JSON value as a framed message.
func (c *clientConn) Send(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return wire.SendJSON(c.conn, v)
}

func (c *clientConn) Close() error {
	return c.conn.Close()
}
