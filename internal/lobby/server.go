package lobby

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/gamehub/internal/wire"
)

// Server is the lobby's TCP listener: one long-lived worker goroutine
// per connection, multiplexing request/response and unsolicited push
// traffic on the same socket.
type Server struct {
	hub *Hub

	mu       sync.Mutex
	listener net.Listener
}

// NewServer wraps a Hub as a TCP service.
func NewServer(hub *Hub) *Server {
	return &Server{hub: hub}
}

func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Run listens on addr and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("lobby: listening on %s: %w", addr, err)
	}
	s.mu.Lock()
	s.listener = ln
	s.mu.Unlock()
	return s.Serve(ctx, ln)
}

// Serve accepts connections on an already-bound listener. An errgroup
// supervises the listener-closer and every per-connection worker, so a
// cancelled ctx (SIGINT/SIGTERM) closes the listener and every open
// client connection, which ends each worker's read loop.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		<-gctx.Done()
		ln.Close()
		return nil
	})

	slog.Info("lobby service listening", "address", ln.Addr())
	for {
		conn, err := ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				break
			}
			select {
			case <-gctx.Done():
			default:
				slog.Error("lobby: accept failed", "error", err)
			}
			continue
		}
		g.Go(func() error {
			stop := context.AfterFunc(gctx, func() { conn.Close() })
			defer stop()
			s.handleConn(conn)
			return nil
		})
	}
	return g.Wait()
}

// handleConn runs the pre-auth/authenticated state machine for one
// client connection until it disconnects, then cleans up its session.
func (s *Server) handleConn(conn net.Conn) {
	cc := newClientConn(conn)
	defer cc.Close()

	var username string
	defer func() {
		if username != "" {
			s.hub.logout(username)
		}
	}()

	for {
		var req wire.Request
		if err := wire.ReadJSON(conn, &req); err != nil {
			return
		}

		// game_over is reachable before and after login: the match
		// service is trusted infrastructure, not a player endpoint.
		if req.Action == "game_over" {
			cc.Send(s.hub.gameOver(req.Data))
			continue
		}

		if username == "" {
			switch req.Action {
			case "register":
				cc.Send(s.hub.register(req.Data))
			case "login":
				username, _ = s.hub.login(cc, req.Data)
			case "logout":
				cc.Send(wire.Response{Status: "ok", Reason: "logout_successful"})
				return
			default:
				cc.Send(wire.Err("must_be_logged_in"))
			}
			continue
		}

		switch req.Action {
		case "login":
			cc.Send(wire.Err("already_logged_in"))
		case "logout":
			cc.Send(wire.Response{Status: "ok", Reason: "logout_successful"})
			return
		default:
			handler, ok := actions[req.Action]
			if !ok {
				cc.Send(wire.Err("unknown_action: " + req.Action))
				continue
			}
			if resp := handler(s.hub, cc, username, req.Data); resp != nil {
				cc.Send(*resp)
			}
		}
	}
}
