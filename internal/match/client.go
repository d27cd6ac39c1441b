package match

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/udisondev/gamehub/internal/wire"
)

// ClientConfig configures one player's connection to a running match.
type ClientConfig struct {
	Host string
	Port int
}

// Client is the CLI player endpoint: it keeps one connection to a match
// server, forwards typed commands as INPUT/FORFEIT messages, and prints
// every SNAPSHOT/GAME_OVER it receives. Gameplay rendering is left to a
// terminal text dump — a graphical client is explicitly out of scope.
type Client struct {
	cfg ClientConfig
}

// NewClient builds a player client for the match listening at
// cfg.Host:cfg.Port.
func NewClient(cfg ClientConfig) *Client {
	return &Client{cfg: cfg}
}

// actionForCommand maps a line of player input to the wire action token,
// matching the prototype's key bindings.
var actionForCommand = map[string]string{
	"a": "MOVE_LEFT", "left": "MOVE_LEFT",
	"d": "MOVE_RIGHT", "right": "MOVE_RIGHT",
	"w": "ROTATE", "rotate": "ROTATE",
	"s": "SOFT_DROP", "down": "SOFT_DROP",
	"space": "HARD_DROP", "drop": "HARD_DROP",
}

// Run dials the match server (retrying with backoff, matching the
// prototype's reconnect behavior) and relays stdin commands until the
// match ends or the connection is lost.
func (c *Client) Run(ctx context.Context, stdin io.Reader, stdout io.Writer) error {
	conn, err := c.dial(ctx)
	if err != nil {
		return fmt.Errorf("match client: %w", err)
	}
	defer conn.Close()

	var welcome Welcome
	if err := wire.ReadJSON(conn, &welcome); err != nil {
		return fmt.Errorf("match client: reading WELCOME: %w", err)
	}
	fmt.Fprintf(stdout, "connected as %s (game=%s, seed=%d)\n", welcome.Role, welcome.Game, welcome.Seed)

	errCh := make(chan error, 2)
	go c.readLoop(conn, stdout, errCh)
	go c.inputLoop(conn, stdin, errCh)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// dial connects to the match server, making at most 5 attempts with an
// exponential backoff starting at 0.5s and a 1.5x multiplier, matching
// the prototype's reconnect policy.
func (c *Client) dial(ctx context.Context) (net.Conn, error) {
	addr := fmt.Sprintf("%s:%d", c.cfg.Host, c.cfg.Port)

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 500 * time.Millisecond
	bo.Multiplier = 1.5
	retrying := backoff.WithMaxRetries(bo, 4) // first attempt + 4 retries

	var conn net.Conn
	operation := func() error {
		c, err := net.DialTimeout("tcp", addr, 2*time.Second)
		if err != nil {
			slog.Warn("match client: dial failed, retrying", "address", addr, "error", err)
			return err
		}
		conn = c
		return nil
	}
	if err := backoff.Retry(operation, backoff.WithContext(retrying, ctx)); err != nil {
		return nil, fmt.Errorf("dialing %s: %w", addr, err)
	}
	return conn, nil
}

// readLoop prints every SNAPSHOT and the terminal GAME_OVER message.
func (c *Client) readLoop(conn net.Conn, stdout io.Writer, errCh chan<- error) {
	for {
		body, err := wire.ReadMessage(conn)
		if err != nil {
			errCh <- fmt.Errorf("match client: connection closed: %w", err)
			return
		}
		switch {
		case strings.Contains(string(body), `"type":"GAME_OVER"`):
			fmt.Fprintf(stdout, "%s\n", body)
			errCh <- nil
			return
		default:
			fmt.Fprintf(stdout, "%s\n", body)
		}
	}
}

// inputLoop reads newline-delimited commands from stdin and forwards
// them as INPUT/FORFEIT messages.
func (c *Client) inputLoop(conn net.Conn, stdin io.Reader, errCh chan<- error) {
	scanner := bufio.NewScanner(stdin)
	for scanner.Scan() {
		line := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if line == "" {
			continue
		}
		if line == "quit" || line == "forfeit" {
			wire.SendJSON(conn, Input{Type: TypeForfeit})
			continue
		}
		action, ok := actionForCommand[line]
		if !ok {
			continue
		}
		if err := wire.SendJSON(conn, Input{Type: TypeInput, Action: action}); err != nil {
			errCh <- fmt.Errorf("match client: sending input: %w", err)
			return
		}
	}
}
