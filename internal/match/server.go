package match

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"net"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/udisondev/gamehub/internal/lobbyclient"
	"github.com/udisondev/gamehub/internal/model"
	"github.com/udisondev/gamehub/internal/storageclient"
	"github.com/udisondev/gamehub/internal/wire"
)

// gravityInterval mirrors the prototype's GRAVITY_INTERVAL_MS.
const gravityInterval = 400 * time.Millisecond

// broadcastInterval mirrors "Broadcast every 100ms".
const broadcastInterval = 100 * time.Millisecond

// matchDuration mirrors the prototype's 60-second "Lines Over Time" mode.
const matchDuration = 60 * time.Second

// ServerConfig configures one authoritative match run.
type ServerConfig struct {
	Port        int
	Player1     string
	Player2     string
	RoomID      int
	LobbyAddr   string
	StorageAddr string
	GameName    string
}

// inputEvent is what a client reader goroutine pushes onto the shared
// input channel, mirroring the prototype's (player_id, action) tuple
// queue.
type inputEvent struct {
	seat   Seat
	action string // "DISCONNECT", "FORFEIT", or an engine action token
}

// Server runs one match: accepts exactly two connections, drives the
// game loop, and reports the result.
type Server struct {
	cfg      ServerConfig
	engineP1 Engine
	engineP2 Engine

	conns  [2]net.Conn
	inputs chan inputEvent
}

// NewServer resolves the engine for cfg.GameName (falling back to the
// compiled-in default) and prepares a match run.
func NewServer(cfg ServerConfig) *Server {
	factory, resolved := Resolve(cfg.GameName)
	cfg.GameName = resolved
	p1, p2 := factory(), factory()
	if aware, ok := p1.(SeatAware); ok {
		aware.SetSeat(SeatP1)
	}
	if aware, ok := p2.(SeatAware); ok {
		aware.SetSeat(SeatP2)
	}
	if aware, ok := p1.(OpponentAware); ok {
		aware.SetOpponent(p2)
	}
	if aware, ok := p2.(OpponentAware); ok {
		aware.SetOpponent(p1)
	}
	return &Server{
		cfg:      cfg,
		engineP1: p1,
		engineP2: p2,
		inputs:   make(chan inputEvent, 64),
	}
}

// Run listens on cfg.Port, waits for both players, then drives the match
// to completion. It returns once the match has ended and been reported.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", fmt.Sprintf("0.0.0.0:%d", s.cfg.Port))
	if err != nil {
		return fmt.Errorf("match: listening on port %d: %w", s.cfg.Port, err)
	}
	defer ln.Close()
	slog.Info("match server listening", "port", s.cfg.Port, "game", s.cfg.GameName, "room_id", s.cfg.RoomID)

	seed := rand.Int63()

	for seat := SeatP1; seat <= SeatP2; seat++ {
		conn, err := ln.Accept()
		if err != nil {
			return fmt.Errorf("match: accepting seat %s: %w", seat, err)
		}
		welcome := Welcome{Type: TypeWelcome, Role: seat.String(), Seed: seed, Game: s.cfg.GameName}
		if err := wire.SendJSON(conn, welcome); err != nil {
			slog.Error("match: failed to send WELCOME", "seat", seat, "error", err)
			conn.Close()
			seat--
			continue
		}
		s.conns[seat] = conn
		slog.Info("player connected", "seat", seat, "remote", conn.RemoteAddr())
	}

	s.engineP1.Reset(seed)
	s.engineP2.Reset(seed)

	g, gctx := errgroup.WithContext(ctx)
	for _, seat := range []Seat{SeatP1, SeatP2} {
		seat := seat
		g.Go(func() error {
			s.readClient(gctx, seat)
			return nil
		})
	}
	g.Go(func() error {
		return s.gameLoop(gctx)
	})
	return g.Wait()
}

// readClient runs for one connection's lifetime, decoding INPUT/FORFEIT
// messages and pushing them onto the shared input channel. It never
// returns an error: a read failure is reported as a DISCONNECT input,
// exactly as the prototype's handle_client thread does.
func (s *Server) readClient(ctx context.Context, seat Seat) {
	conn := s.conns[seat]
	for {
		var msg Input
		if err := wire.ReadJSON(conn, &msg); err != nil {
			select {
			case s.inputs <- inputEvent{seat: seat, action: "DISCONNECT"}:
			case <-ctx.Done():
			}
			return
		}
		switch msg.Type {
		case TypeInput:
			if msg.Action != "" {
				select {
				case s.inputs <- inputEvent{seat: seat, action: msg.Action}:
				case <-ctx.Done():
					return
				}
			}
		case TypeForfeit:
			select {
			case s.inputs <- inputEvent{seat: seat, action: "FORFEIT"}:
			case <-ctx.Done():
			}
			return
		}
	}
}

// outcome describes why and how the match ended, filled in by gameLoop
// as soon as an end condition is detected.
type outcome struct {
	winner Seat
	tie    bool
	reason string // "time_up", "board_full", "forfeit", "tie"
	loser  string
}

// gameLoop is the tick-driven main task: gravity on a fixed interval,
// input draining, periodic snapshot broadcast, and end-of-match
// detection, mirroring the prototype's game_loop almost line for line.
func (s *Server) gameLoop(ctx context.Context) error {
	start := time.Now()
	var out *outcome

	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()
	lastGravity := start
	lastBroadcast := time.Time{}

	for out == nil {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-s.inputs:
			switch ev.action {
			case "DISCONNECT":
				out = &outcome{winner: ev.seat.Opponent(), reason: "forfeit", loser: s.username(ev.seat)}
			case "FORFEIT":
				out = &outcome{winner: ev.seat.Opponent(), reason: "forfeit", loser: s.username(ev.seat)}
			default:
				s.engineFor(ev.seat).Apply(ev.action)
			}
		case now := <-ticker.C:
			if s.engineP1.Over() {
				out = &outcome{winner: SeatP2, reason: "board_full", loser: s.cfg.Player1}
				break
			}
			if s.engineP2.Over() {
				out = &outcome{winner: SeatP1, reason: "board_full", loser: s.cfg.Player2}
				break
			}
			elapsed := now.Sub(start)
			if elapsed >= matchDuration {
				out = s.timeUpOutcome()
				break
			}
			if now.Sub(lastGravity) >= gravityInterval {
				s.engineP1.Tick()
				s.engineP2.Tick()
				lastGravity = now
			}
			if now.Sub(lastBroadcast) >= broadcastInterval {
				remaining := int((matchDuration - elapsed).Seconds())
				if remaining < 0 {
					remaining = 0
				}
				s.broadcastSnapshot(remaining)
				lastBroadcast = now
			}
		}
	}

	s.reportAndAnnounce(ctx, *out, start)
	return nil
}

func (s *Server) engineFor(seat Seat) Engine {
	if seat == SeatP1 {
		return s.engineP1
	}
	return s.engineP2
}

func (s *Server) username(seat Seat) string {
	if seat == SeatP1 {
		return s.cfg.Player1
	}
	return s.cfg.Player2
}

// timeUpOutcome breaks a "time up" match by score, matching the
// prototype's final comparison.
func (s *Server) timeUpOutcome() *outcome {
	p1, p2 := s.engineP1.Stats(), s.engineP2.Stats()
	switch {
	case p1.Score > p2.Score:
		return &outcome{winner: SeatP1, reason: "time_up", loser: s.cfg.Player2}
	case p2.Score > p1.Score:
		return &outcome{winner: SeatP2, reason: "time_up", loser: s.cfg.Player1}
	default:
		return &outcome{tie: true, reason: "tie"}
	}
}

func (s *Server) broadcastSnapshot(remaining int) {
	snap := Snapshot{
		Type:          TypeSnapshot,
		P1State:       s.engineP1.Snapshot(),
		P2State:       s.engineP2.Snapshot(),
		RemainingTime: remaining,
	}
	for _, conn := range s.conns {
		if conn == nil {
			continue
		}
		if err := wire.SendJSON(conn, snap); err != nil {
			slog.Warn("match: failed to broadcast snapshot", "error", err)
		}
	}
}

// reportAndAnnounce builds the GameLog, reports it to storage, sends the
// final GAME_OVER to both clients, and notifies the lobby — the four
// steps of the prototype's handle_game_end, in order. start is the
// match's real start time, captured by gameLoop, so the GameLog's
// duration reflects matches that end early (forfeit, disconnect,
// board-full) instead of assuming a full-length match.
func (s *Server) reportAndAnnounce(ctx context.Context, out outcome, start time.Time) {
	p1Stats, p2Stats := s.engineP1.Stats(), s.engineP2.Stats()
	p1Result := model.PlayerResult{Username: s.cfg.Player1, Score: p1Stats.Score, Lines: p1Stats.Lines}
	p2Result := model.PlayerResult{Username: s.cfg.Player2, Score: p2Stats.Score, Lines: p2Stats.Lines}

	winnerToken := "TIE"
	winnerUsername := "TIE"
	if !out.tie {
		winnerToken = out.winner.String()
		if out.winner == SeatP1 {
			winnerUsername = s.cfg.Player1
		} else {
			winnerUsername = s.cfg.Player2
		}
	}

	log := model.GameLog{
		MatchID:   "match_" + uuid.NewString(),
		Users:     []string{s.cfg.Player1, s.cfg.Player2},
		Results:   []model.PlayerResult{p1Result, p2Result},
		Winner:    winnerToken,
		Reason:    out.reason,
		StartTime: start,
		EndTime:   time.Now(),
	}

	if s.cfg.StorageAddr != "" {
		client := storageclient.New(s.cfg.StorageAddr)
		if resp := client.CreateGameLog(log); resp.IsOK() {
			slog.Info("game log saved to storage")
		} else {
			slog.Warn("failed to save game log", "reason", resp.Reason)
		}
	}

	over := GameOver{
		Type:           TypeGameOver,
		Winner:         winnerToken,
		Reason:         out.reason,
		LoserUsername:  out.loser,
		WinnerUsername: winnerUsername,
		P1Results:      p1Result,
		P2Results:      p2Result,
		RoomID:         s.cfg.RoomID,
	}
	for _, conn := range s.conns {
		if conn == nil {
			continue
		}
		if err := wire.SendJSON(conn, over); err != nil {
			slog.Warn("match: failed to send GAME_OVER", "error", err)
		}
	}

	s.notifyLobby(ctx)
}

// notifyLobby tells the lobby the room's match has ended so it can reset
// the room and both sessions to online. Failure is logged and otherwise
// ignored, matching the prototype's best-effort notification.
func (s *Server) notifyLobby(_ context.Context) {
	if s.cfg.LobbyAddr == "" {
		return
	}
	resp := lobbyclient.New(s.cfg.LobbyAddr).GameOver(s.cfg.RoomID)
	if resp.IsOK() {
		slog.Info("lobby notified of game end")
	} else {
		slog.Warn("lobby rejected game_over notification", "reason", resp.Reason)
	}
}
