// Package lobbyclient is the client the match service uses to notify
// the lobby when a match ends: one TCP connection per call, the same
// request/response framing storageclient uses for the storage service.
package lobbyclient

import (
	"net"
	"time"

	"github.com/udisondev/gamehub/internal/wire"
)

// Client dials the lobby service fresh for every call.
type Client struct {
	addr    string
	timeout time.Duration
}

// New returns a Client targeting addr ("host:port").
func New(addr string) *Client {
	return &Client{addr: addr, timeout: 5 * time.Second}
}

// Call sends one action request and returns the decoded response. A
// connection failure is reported as the "lobby_unreachable" reason
// rather than as a Go error, matching storageclient's convention.
func (c *Client) Call(action string, data map[string]any) wire.Response {
	conn, err := net.DialTimeout("tcp", c.addr, c.timeout)
	if err != nil {
		return wire.Err("lobby_unreachable")
	}
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(c.timeout))

	if err := wire.SendJSON(conn, wire.Request{Action: action, Data: data}); err != nil {
		return wire.Err("lobby_unreachable")
	}

	var resp wire.Response
	if err := wire.ReadJSON(conn, &resp); err != nil {
		return wire.Err("lobby_unreachable")
	}
	return resp
}

// GameOver tells the lobby a room's match has ended, so it can reset
// the room and both sessions to online.
func (c *Client) GameOver(roomID int) wire.Response {
	return c.Call("game_over", map[string]any{"room_id": roomID})
}
