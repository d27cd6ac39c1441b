package storageclient_test

import (
	"context"
	"net"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/udisondev/gamehub/internal/storage"
	"github.com/udisondev/gamehub/internal/storageclient"
)

func startTestStorage(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	st, err := storage.Open(filepath.Join(dir, "data"), filepath.Join(dir, "games"), bcrypt.MinCost)
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := storage.NewServer(st)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	go srv.Serve(ctx, ln)

	return ln.Addr().String()
}

func TestClient_RegisterAndAuthenticateRoundTrip(t *testing.T) {
	addr := startTestStorage(t)
	client := storageclient.New(addr)

	resp := client.CreateUser("alice", "hunter2", false)
	require.True(t, resp.IsOK())

	user, resp := client.Authenticate("alice", "hunter2")
	require.True(t, resp.IsOK())
	require.Equal(t, "alice", user.Username)

	_, resp = client.Authenticate("alice", "wrongpass")
	require.False(t, resp.IsOK())
	require.Equal(t, "invalid_credentials", resp.Reason)
}

func TestClient_GameCreateAndListRoundTrip(t *testing.T) {
	addr := startTestStorage(t)
	client := storageclient.New(addr)

	gameID, resp := client.CreateGame("tetris", "dev1", "falling blocks", "1")
	require.True(t, resp.IsOK())
	require.NotZero(t, gameID)

	game, resp := client.GetGame(gameID)
	require.True(t, resp.IsOK())
	require.Equal(t, "tetris", game.Name)

	games, resp := client.ListGames()
	require.True(t, resp.IsOK())
	require.Len(t, games, 1)

	resp = client.DeleteGame(gameID)
	require.True(t, resp.IsOK())

	games, resp = client.ListGames()
	require.True(t, resp.IsOK())
	require.Empty(t, games)
}
