package lobby

import (
	"net"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/udisondev/gamehub/internal/config"
	"github.com/udisondev/gamehub/internal/storage"
	"github.com/udisondev/gamehub/internal/wire"
)

// newTestConnPair returns a clientConn backed by an in-memory net.Pipe,
// plus a channel of every wire.Response the handler side writes to it —
// the same net.Pipe technique the teacher's test helpers use to drive a
// handler without a real socket.
func newTestConnPair(t *testing.T) (*clientConn, <-chan wire.Response) {
	t.Helper()
	serverSide, clientSide := net.Pipe()
	t.Cleanup(func() {
		serverSide.Close()
		clientSide.Close()
	})

	respCh := make(chan wire.Response, 16)
	go func() {
		for {
			var resp wire.Response
			if err := wire.ReadJSON(clientSide, &resp); err != nil {
				close(respCh)
				return
			}
			respCh <- resp
		}
	}()

	return newClientConn(serverSide), respCh
}

func recvResponse(t *testing.T, ch <-chan wire.Response) wire.Response {
	t.Helper()
	select {
	case resp, ok := <-ch:
		if !ok {
			t.Fatal("connection closed before a response arrived")
		}
		return resp
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a response")
		return wire.Response{}
	}
}

// recvPush drains ch until it sees a push of the given type, skipping
// over any interleaved broadcast (e.g. broadcastRoomList's room-list
// OKWith) that a handler fires as a side effect.
func recvPush(t *testing.T, ch <-chan wire.Response, wantType string) wire.Response {
	t.Helper()
	for i := 0; i < 10; i++ {
		resp := recvResponse(t, ch)
		if resp.Extra["type"] == wantType {
			return resp
		}
	}
	t.Fatalf("never saw a %q push", wantType)
	return wire.Response{}
}

// newTestHub wires a Hub to a real, temporary storage service, the way
// the lobby process itself talks to storage over TCP.
func newTestHub(t *testing.T) *Hub {
	t.Helper()
	dir := t.TempDir()
	st, err := storage.Open(filepath.Join(dir, "data"), filepath.Join(dir, "games"), bcrypt.MinCost)
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })

	go storage.NewServer(st).Serve(t.Context(), ln)

	host, port, err := net.SplitHostPort(ln.Addr().String())
	require.NoError(t, err)
	portNum, err := strconv.Atoi(port)
	require.NoError(t, err)

	cfg := config.DefaultLobby()
	cfg.StorageHost = host
	cfg.StoragePort = portNum

	return NewHub(cfg)
}

func TestHub_RegisterAndLogin(t *testing.T) {
	h := newTestHub(t)
	cc, respCh := newTestConnPair(t)

	resp := h.register(map[string]any{"user": "alice", "pass": "hunter2"})
	require.True(t, resp.IsOK())

	username, ok := h.login(cc, map[string]any{"user": "alice", "pass": "hunter2"})
	require.True(t, ok)
	require.Equal(t, "alice", username)

	loginResp := recvResponse(t, respCh)
	require.True(t, loginResp.IsOK())
	require.Equal(t, "login_successful", loginResp.Reason)

	session, ok := h.sessions.get("alice")
	require.True(t, ok)
	require.Equal(t, statusOnline, session.Status)
}

func TestHub_Login_WrongPasswordSendsError(t *testing.T) {
	h := newTestHub(t)
	cc, respCh := newTestConnPair(t)

	require.True(t, h.register(map[string]any{"user": "bob", "pass": "correct"}).IsOK())

	_, ok := h.login(cc, map[string]any{"user": "bob", "pass": "wrong"})
	require.False(t, ok)

	resp := recvResponse(t, respCh)
	require.False(t, resp.IsOK())
}

// TestHub_Logout_SendsLogoutSuccessful drives the real Server.handleConn
// loop end to end over an in-memory socket pair, so it exercises the
// exact "logout" case handleConn dispatches on, not a hand-rolled
// stand-in for it.
func TestHub_Logout_SendsLogoutSuccessful(t *testing.T) {
	h := newTestHub(t)
	srv := NewServer(h)

	serverSide, clientSide := net.Pipe()
	t.Cleanup(func() {
		serverSide.Close()
		clientSide.Close()
	})
	go srv.handleConn(serverSide)

	require.NoError(t, wire.SendJSON(clientSide, wire.Request{
		Action: "register", Data: map[string]any{"user": "carol", "pass": "pw"},
	}))
	var registerResp wire.Response
	require.NoError(t, wire.ReadJSON(clientSide, &registerResp))
	require.True(t, registerResp.IsOK())

	require.NoError(t, wire.SendJSON(clientSide, wire.Request{
		Action: "login", Data: map[string]any{"user": "carol", "pass": "pw"},
	}))
	var loginResp wire.Response
	require.NoError(t, wire.ReadJSON(clientSide, &loginResp))
	require.True(t, loginResp.IsOK())

	require.NoError(t, wire.SendJSON(clientSide, wire.Request{Action: "logout"}))
	var logoutResp wire.Response
	require.NoError(t, wire.ReadJSON(clientSide, &logoutResp))
	require.True(t, logoutResp.IsOK())
	require.Equal(t, "logout_successful", logoutResp.Reason)
}

func TestHub_CreateJoinAndLeaveRoom(t *testing.T) {
	h := newTestHub(t)
	hostConn, hostCh := newTestConnPair(t)
	guestConn, guestCh := newTestConnPair(t)

	h.sessions.put(&Session{Username: "host", Conn: hostConn, Status: statusOnline})
	h.sessions.put(&Session{Username: "guest", Conn: guestConn, Status: statusOnline})

	h.createRoom(hostConn, "host", map[string]any{"name": "Room", "is_public": true})
	recvPush(t, hostCh, "ROOM_UPDATE")

	hostSession, _ := h.sessions.get("host")
	roomID, ok := roomIDFromStatus(hostSession.Status)
	require.True(t, ok)

	h.joinRoom(guestConn, "guest", map[string]any{"room_id": roomID})
	recvPush(t, hostCh, "ROOM_UPDATE")
	recvPush(t, guestCh, "ROOM_UPDATE")

	room, ok := h.rooms.get(roomID)
	require.True(t, ok)
	require.ElementsMatch(t, []string{"host", "guest"}, room.Players)

	h.leaveRoom("guest")
	recvPush(t, hostCh, "ROOM_UPDATE")

	guestSession, _ := h.sessions.get("guest")
	require.Equal(t, statusOnline, guestSession.Status)
}

func TestHub_Invite_RejectsUnknownTarget(t *testing.T) {
	h := newTestHub(t)
	hostConn, hostCh := newTestConnPair(t)

	h.sessions.put(&Session{Username: "host", Conn: hostConn, Status: statusOnline})
	h.createRoom(hostConn, "host", map[string]any{"name": "Room", "is_public": false})
	recvResponse(t, hostCh)

	h.invite(hostConn, "host", map[string]any{"target_user": "nobody"})
	resp := recvResponse(t, hostCh)
	require.False(t, resp.IsOK())
	require.Equal(t, "user_not_online", resp.Reason)
}

func TestHub_UpdateGame_RejectsNonOwnerEvenWithoutFileData(t *testing.T) {
	h := newTestHub(t)

	gameID, resp := h.storage.CreateGame("tetris", "author", "a game", "1.0.0")
	require.True(t, resp.IsOK())

	h.storage.CreateUser("author", "pw", true)
	h.storage.CreateUser("mallory", "pw", true)

	// mallory is a developer but does not own the game; a metadata-only
	// update (no file_data) must still be rejected.
	resp = h.updateGame("mallory", map[string]any{
		"game_id": gameID, "version": "1.0.0", "name": "hijacked", "description": "nope",
	})
	require.False(t, resp.IsOK())
	require.Equal(t, "not_game_owner", resp.Reason)

	game, getResp := h.storage.GetGame(gameID)
	require.True(t, getResp.IsOK())
	require.Equal(t, "tetris", game.Name)
}

func TestHub_UpdateGame_OwnerCanUpdateMetadataOnly(t *testing.T) {
	h := newTestHub(t)

	gameID, resp := h.storage.CreateGame("tetris", "author", "a game", "1.0.0")
	require.True(t, resp.IsOK())
	h.storage.CreateUser("author", "pw", true)

	resp = h.updateGame("author", map[string]any{
		"game_id": gameID, "version": "1.0.0", "name": "tetris-deluxe", "description": "now with hold queue",
	})
	require.True(t, resp.IsOK())

	game, getResp := h.storage.GetGame(gameID)
	require.True(t, getResp.IsOK())
	require.Equal(t, "tetris-deluxe", game.Name)
}

func TestHub_RemoveGame_RejectsNonOwner(t *testing.T) {
	h := newTestHub(t)

	gameID, resp := h.storage.CreateGame("tetris", "author", "a game", "1.0.0")
	require.True(t, resp.IsOK())
	h.storage.CreateUser("mallory", "pw", true)

	resp = h.removeGame("mallory", map[string]any{"game_id": gameID})
	require.False(t, resp.IsOK())
	require.Equal(t, "not_game_owner", resp.Reason)
}
