package lobby

import (
	"github.com/udisondev/gamehub/internal/config"
	"github.com/udisondev/gamehub/internal/storageclient"
	"github.com/udisondev/gamehub/internal/wire"
)

// Hub owns the three process-local tables and the storage client. It is
// shared read-mostly across every connection's worker goroutine.
type Hub struct {
	cfg     config.Lobby
	storage *storageclient.Client

	sessions *sessionTable
	rooms    *roomTable
	invites  *inviteTable
}

// NewHub builds an empty Hub for cfg.
func NewHub(cfg config.Lobby) *Hub {
	return &Hub{
		cfg:      cfg,
		storage:  storageclient.New(cfg.StorageAddr()),
		sessions: newSessionTable(),
		rooms:    newRoomTable(),
		invites:  newInviteTable(),
	}
}

// broadcastRoomsAndUsers sends the current public room list and user
// list to every connected session, matching handle_game_over's
// broadcast of both views after a match ends.
func (h *Hub) broadcastRoomsAndUsers() {
	rooms := h.rooms.publicIdleSummaries()
	sessions := h.sessions.snapshot()
	users := make([]userSummary, 0, len(sessions))
	for _, s := range sessions {
		users = append(users, userSummary{Username: s.Username, Status: s.Status})
	}
	for _, s := range sessions {
		s.Conn.Send(wire.OKWith(map[string]any{"rooms": rooms}))
		s.Conn.Send(wire.OKWith(map[string]any{"users": users}))
	}
}

type userSummary struct {
	Username string `json:"username"`
	Status   string `json:"status"`
}

// broadcastRoomList sends list_rooms's result to every session; used
// after creating a public room, matching the prototype's
// handle_list_rooms(None) broadcast call.
func (h *Hub) broadcastRoomList() {
	rooms := h.rooms.publicIdleSummaries()
	for _, s := range h.sessions.snapshot() {
		s.Conn.Send(wire.OKWith(map[string]any{"rooms": rooms}))
	}
}
