package lobby

import "github.com/udisondev/gamehub/internal/wire"

// actionFunc is an authenticated action handler. It returns the
// response to send the caller, or nil if the handler already sent one
// or more messages itself (broadcasts, pushes).
type actionFunc func(h *Hub, conn *clientConn, username string, data map[string]any) *wire.Response

// actions is the dispatch table for every action available once a
// connection has logged in. Matching the prototype's explicit
// if/elif chain, this is a flat map keyed on the action string — no
// hierarchical namespacing.
var actions = map[string]actionFunc{
	"list_rooms": func(h *Hub, conn *clientConn, _ string, _ map[string]any) *wire.Response {
		h.listRooms(conn)
		return nil
	},
	"list_users": func(h *Hub, conn *clientConn, _ string, _ map[string]any) *wire.Response {
		h.listUsers(conn)
		return nil
	},
	"create_room": func(h *Hub, conn *clientConn, username string, data map[string]any) *wire.Response {
		h.createRoom(conn, username, data)
		return nil
	},
	"join_room": func(h *Hub, conn *clientConn, username string, data map[string]any) *wire.Response {
		h.joinRoom(conn, username, data)
		return nil
	},
	"leave_room": func(h *Hub, _ *clientConn, username string, _ map[string]any) *wire.Response {
		h.leaveRoom(username)
		return nil
	},
	"start_game": func(h *Hub, conn *clientConn, username string, _ map[string]any) *wire.Response {
		h.startGame(conn, username)
		return nil
	},
	"invite": func(h *Hub, conn *clientConn, username string, data map[string]any) *wire.Response {
		h.invite(conn, username, data)
		return nil
	},
	"query_gamelogs": func(h *Hub, _ *clientConn, _ string, data map[string]any) *wire.Response {
		resp := h.queryGameLogs(data)
		return &resp
	},
	"upload_game": func(h *Hub, _ *clientConn, username string, data map[string]any) *wire.Response {
		resp := h.uploadGame(username, data)
		return &resp
	},
	"update_game": func(h *Hub, _ *clientConn, username string, data map[string]any) *wire.Response {
		resp := h.updateGame(username, data)
		return &resp
	},
	"remove_game": func(h *Hub, _ *clientConn, username string, data map[string]any) *wire.Response {
		resp := h.removeGame(username, data)
		return &resp
	},
	"list_my_games": func(h *Hub, _ *clientConn, username string, _ map[string]any) *wire.Response {
		resp := h.listMyGames(username)
		return &resp
	},
	"list_games": func(h *Hub, _ *clientConn, _ string, _ map[string]any) *wire.Response {
		resp := h.listGames()
		return &resp
	},
	"search_games": func(h *Hub, _ *clientConn, _ string, data map[string]any) *wire.Response {
		resp := h.searchGames(data)
		return &resp
	},
	"get_game_info": func(h *Hub, _ *clientConn, _ string, data map[string]any) *wire.Response {
		resp := h.getGameInfo(data)
		return &resp
	},
	"download_game": func(h *Hub, _ *clientConn, _ string, data map[string]any) *wire.Response {
		resp := h.downloadGame(data)
		return &resp
	},
}
