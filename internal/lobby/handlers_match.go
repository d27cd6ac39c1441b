package lobby

import (
	"log/slog"

	"github.com/udisondev/gamehub/internal/wire"
)

// startGame requires the caller to be the host of a full, idle room.
// It flips the room to "playing" before releasing the room lock, then
// launches the match subprocess and notifies both players.
func (h *Hub) startGame(conn *clientConn, username string) {
	session, ok := h.sessions.get(username)
	if !ok {
		conn.Send(wire.Err("not_in_a_room"))
		return
	}
	roomID, ok := roomIDFromStatus(session.Status)
	if !ok {
		conn.Send(wire.Err("not_in_a_room"))
		return
	}

	var player1, player2 string
	var gameID int
	launched := false

	h.rooms.withRoom(roomID, func(r *Room) {
		if r.Host != username {
			conn.Send(wire.Err("not_room_host"))
			return
		}
		if len(r.Players) != 2 {
			conn.Send(wire.Err("room_not_full"))
			return
		}
		r.Status = roomStatusPlaying
		player1, player2 = r.Players[0], r.Players[1]
		gameID = r.GameID
		launched = true
	})
	if !launched {
		return
	}

	h.sessions.setStatus(player1, statusPlaying)
	h.sessions.setStatus(player2, statusPlaying)

	artifactPath, gameName, _ := h.resolveArtifact(gameID)
	port, err := h.launchMatch(roomID, gameID, player1, player2, artifactPath, gameName)
	if err != nil {
		slog.Error("failed to start game", "room_id", roomID, "error", err)
		return
	}

	start := wire.Push{Type: "GAME_START", Extra: map[string]any{
		"host": h.cfg.BindAddress, "port": port, "room_id": roomID,
	}}
	if s, ok := h.sessions.get(player1); ok {
		s.Conn.Send(start)
	}
	if s, ok := h.sessions.get(player2); ok {
		s.Conn.Send(start)
	}
}
