// Package storageclient is the client the lobby and match services use
// to talk to the storage service: one TCP connection per request,
// mirroring the original forward_to_db helper.
package storageclient

import (
	"fmt"
	"net"
	"time"

	"github.com/udisondev/gamehub/internal/wire"
)

// Client dials the storage service fresh for every call.
type Client struct {
	addr    string
	timeout time.Duration
}

// New returns a Client targeting addr ("host:port").
func New(addr string) *Client {
	return &Client{addr: addr, timeout: 5 * time.Second}
}

type request struct {
	Collection string         `json:"collection"`
	Action     string         `json:"action"`
	Data       map[string]any `json:"data"`
}

// Call sends one (collection, action, data) request and returns the
// decoded response. A connection failure is reported as the
// "storage_unreachable" reason rather than as a Go error, since callers
// treat storage failures as ordinary error responses.
func (c *Client) Call(collection, action string, data map[string]any) wire.Response {
	conn, err := net.DialTimeout("tcp", c.addr, c.timeout)
	if err != nil {
		return wire.Err("storage_unreachable")
	}
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(c.timeout))

	if err := wire.SendJSON(conn, request{Collection: collection, Action: action, Data: data}); err != nil {
		return wire.Err("storage_unreachable")
	}

	var resp wire.Response
	if err := wire.ReadJSON(conn, &resp); err != nil {
		return wire.Err("storage_unreachable")
	}
	return resp
}

// Err wraps a Response whose status is not "ok" as a Go error, for
// callers that want the errors.Is/fmt.Errorf idiom instead of checking
// IsOK manually.
func Err(resp wire.Response) error {
	if resp.IsOK() {
		return nil
	}
	return fmt.Errorf("storageclient: %s", resp.Reason)
}
