package lobby

import (
	"log/slog"

	"github.com/udisondev/gamehub/internal/wire"
)

// register forwards a new-account request straight to storage.
func (h *Hub) register(data map[string]any) wire.Response {
	username, password := str(data, "user"), str(data, "pass")
	if username == "" || password == "" {
		return wire.Err("missing_fields")
	}
	return h.storage.CreateUser(username, password, boolean(data, "is_developer", false))
}

// login validates credentials against storage and, on success, adds the
// connection to the session table and returns the now-logged-in
// username. On failure it sends the error response itself and returns
// ("", false), matching handle_login's "sends its own responses"
// contract.
func (h *Hub) login(conn *clientConn, data map[string]any) (string, bool) {
	username, password := str(data, "user"), str(data, "pass")
	if username == "" || password == "" {
		conn.Send(wire.Err("missing_fields"))
		return "", false
	}

	if _, ok := h.sessions.get(username); ok {
		conn.Send(wire.Err("already_logged_in"))
		return "", false
	}

	user, resp := h.storage.Authenticate(username, password)
	if !resp.IsOK() {
		reason := resp.Reason
		if reason == "" {
			reason = "invalid_credentials"
		}
		conn.Send(wire.Err(reason))
		return "", false
	}

	h.sessions.put(&Session{Username: username, Conn: conn, Status: statusOnline})

	if updateResp := h.storage.UpdateUserStatus(username, statusOnline); !updateResp.IsOK() {
		slog.Warn("failed to set online status", "user", username, "reason", updateResp.Reason)
	}

	conn.Send(wire.Response{Status: "ok", Reason: "login_successful", Extra: map[string]any{"user": user.Public()}})
	return username, true
}

// logout tears down a session on disconnect: updates storage status,
// drops the user's pending invites, and if the user was host/sole member
// of an idle room, cleans it up. A playing room is left alone — its
// match service owns that lifecycle.
func (h *Hub) logout(username string) {
	if username == "" {
		return
	}
	session, ok := h.sessions.remove(username)
	if !ok {
		return
	}

	h.invites.mu.Lock()
	delete(h.invites.pending, username)
	h.invites.mu.Unlock()

	if resp := h.storage.UpdateUserStatus(username, "offline"); !resp.IsOK() {
		slog.Warn("failed to set offline status", "user", username, "reason", resp.Reason)
	}

	if roomID, ok := roomIDFromStatus(session.Status); ok {
		h.rooms.withRoom(roomID, func(r *Room) {
			if r.Status != roomStatusIdle {
				return
			}
			r.Players = removeString(r.Players, username)
			if len(r.Players) == 0 {
				h.rooms.delete(roomID)
				return
			}
			if r.Host == username {
				r.Host = r.Players[0]
			}
		})
	}
}

// gameOver is reachable before login: a match service reports the
// outcome of a room without authenticating, since it is trusted
// infrastructure rather than a player-facing endpoint.
func (h *Hub) gameOver(data map[string]any) wire.Response {
	roomID, ok := number(data, "room_id")
	if !ok {
		return wire.Err("missing_room_id")
	}
	h.endRoom(roomID)
	return wire.Response{Status: "ok", Reason: "game_over_processed"}
}

// endRoom deletes a playing room and returns its players to "online",
// then broadcasts the refreshed room and user lists to everyone.
func (h *Hub) endRoom(roomID int) {
	var players []string
	h.rooms.withRoom(roomID, func(r *Room) {
		if r.Status != roomStatusPlaying {
			return
		}
		players = append(players, r.Players...)
	})
	if players == nil {
		return
	}
	h.rooms.delete(roomID)

	for _, p := range players {
		h.sessions.setStatus(p, statusOnline)
	}
	h.broadcastRoomsAndUsers()
}

func removeString(list []string, s string) []string {
	out := list[:0]
	for _, v := range list {
		if v != s {
			out = append(out, v)
		}
	}
	return out
}
