package lobby

import (
	"fmt"
	"log/slog"

	"github.com/udisondev/gamehub/internal/wire"
)

func (h *Hub) listRooms(conn *clientConn) {
	conn.Send(wire.OKWith(map[string]any{"rooms": h.rooms.publicIdleSummaries()}))
}

func (h *Hub) listUsers(conn *clientConn) {
	sessions := h.sessions.snapshot()
	users := make([]userSummary, 0, len(sessions))
	for _, s := range sessions {
		users = append(users, userSummary{Username: s.Username, Status: s.Status})
	}
	conn.Send(wire.OKWith(map[string]any{"users": users}))
}

func (h *Hub) createRoom(conn *clientConn, username string, data map[string]any) {
	session, ok := h.sessions.get(username)
	if !ok {
		conn.Send(wire.Err("session_not_found"))
		return
	}
	if session.Status != statusOnline {
		conn.Send(wire.Err("already_in_a_room"))
		return
	}

	name := str(data, "name")
	if name == "" {
		name = fmt.Sprintf("%s's Room", username)
	}
	isPublic := boolean(data, "is_public", true)

	gameID, hasGame := number(data, "game_id")
	var gameName string
	if hasGame {
		if game, resp := h.storage.GetGame(gameID); resp.IsOK() {
			gameName = game.Name
		} else {
			slog.Warn("game not found, creating room without game name", "game_id", gameID)
		}
	}

	room := h.rooms.create(name, username, gameID, gameName, isPublic)
	h.sessions.setStatus(username, inRoomStatus(room.ID))

	conn.Send(wire.Push{Type: "ROOM_UPDATE", Extra: map[string]any{
		"room_id": room.ID, "name": room.Name, "players": room.Players, "host": room.Host,
		"game_id": room.GameID, "game_name": room.GameName, "is_public": room.IsPublic, "status": room.Status,
	}})

	if isPublic {
		h.broadcastRoomList()
	}
}

func (h *Hub) joinRoom(conn *clientConn, username string, data map[string]any) {
	roomID, ok := number(data, "room_id")
	if !ok {
		conn.Send(wire.Err("invalid_room_id"))
		return
	}

	if session, ok := h.sessions.get(username); ok && session.Status != statusOnline {
		conn.Send(wire.Err("already_in_a_room"))
		return
	}

	var joined bool
	var errReason string
	var players []string
	var room Room

	h.rooms.withRoom(roomID, func(r *Room) {
		if r.Status != roomStatusIdle {
			errReason = "room_is_playing"
			return
		}
		if len(r.Players) >= 2 {
			errReason = "room_is_full"
			return
		}
		if !r.IsPublic {
			invited := h.invites.hasInvite(username, roomID)
			if !invited && !contains(r.Players, username) {
				errReason = "room_is_private_not_invited"
				return
			}
			if invited {
				h.invites.consume(username, roomID)
			}
		}
		r.Players = append(r.Players, username)
		players = append([]string(nil), r.Players...)
		room = *r
		joined = true
	})

	if !joined {
		if errReason == "" {
			errReason = "room_not_found"
		}
		conn.Send(wire.Err(errReason))
		return
	}

	h.sessions.setStatus(username, inRoomStatus(roomID))

	update := wire.Push{Type: "ROOM_UPDATE", Extra: map[string]any{
		"room_id": roomID, "players": players, "host": room.Host,
		"game_id": room.GameID, "game_name": room.GameName, "is_public": room.IsPublic, "status": room.Status,
	}}
	for _, p := range players {
		if s, ok := h.sessions.get(p); ok {
			s.Conn.Send(update)
		}
	}
}

func (h *Hub) leaveRoom(username string) {
	session, ok := h.sessions.get(username)
	if !ok {
		return
	}
	roomID, ok := roomIDFromStatus(session.Status)
	if !ok {
		return
	}

	var hostLeftOrEmpty bool
	var remaining []string
	var room Room

	h.rooms.withRoom(roomID, func(r *Room) {
		r.Players = removeString(r.Players, username)
		if r.Host == username || len(r.Players) == 0 {
			hostLeftOrEmpty = true
			remaining = append([]string(nil), r.Players...)
		} else {
			room = *r
		}
	})

	if hostLeftOrEmpty {
		kick := wire.Push{Type: "KICKED_FROM_ROOM", Extra: map[string]any{"reason": "The host has left the room."}}
		h.sessions.setStatus(username, statusOnline)
		for _, p := range remaining {
			if s, ok := h.sessions.get(p); ok {
				s.Conn.Send(kick)
			}
			h.sessions.setStatus(p, statusOnline)
		}
		h.rooms.delete(roomID)
		return
	}

	h.sessions.setStatus(username, statusOnline)
	update := wire.Push{Type: "ROOM_UPDATE", Extra: map[string]any{
		"room_id": roomID, "players": room.Players, "host": room.Host,
		"game_id": room.GameID, "game_name": room.GameName, "is_public": room.IsPublic, "status": room.Status,
	}}
	for _, p := range room.Players {
		if s, ok := h.sessions.get(p); ok {
			s.Conn.Send(update)
		}
	}
}

func (h *Hub) invite(conn *clientConn, inviter string, data map[string]any) {
	target := str(data, "target_user")
	if target == "" {
		conn.Send(wire.Err("no_target_user"))
		return
	}
	if target == inviter {
		conn.Send(wire.Err("cannot_invite_self"))
		return
	}

	session, ok := h.sessions.get(inviter)
	if !ok {
		conn.Send(wire.Err("not_in_a_room"))
		return
	}
	roomID, ok := roomIDFromStatus(session.Status)
	if !ok {
		conn.Send(wire.Err("not_in_a_room"))
		return
	}

	var gameName string
	if r, ok := h.rooms.get(roomID); ok {
		gameName = r.GameName
	}

	targetSession, ok := h.sessions.get(target)
	if !ok {
		conn.Send(wire.Err("user_not_online"))
		return
	}
	if targetSession.Status != statusOnline {
		conn.Send(wire.Err("user_is_busy"))
		return
	}

	h.invites.add(target, Invite{From: inviter, RoomID: roomID, GameName: gameName})

	targetSession.Conn.Send(wire.Push{Type: "INVITE_RECEIVED", Extra: map[string]any{
		"from_user": inviter, "room_id": roomID, "game_name": gameName,
	}})
	conn.Send(wire.Response{Status: "ok", Reason: "invite_sent"})
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
