package lobbyclient_test

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/udisondev/gamehub/internal/config"
	"github.com/udisondev/gamehub/internal/lobby"
	"github.com/udisondev/gamehub/internal/lobbyclient"
)

func startTestLobby(t *testing.T) string {
	t.Helper()
	hub := lobby.NewHub(config.DefaultLobby())
	srv := lobby.NewServer(hub)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go srv.Serve(ctx, ln)

	return ln.Addr().String()
}

func TestGameOver_RoundTrip(t *testing.T) {
	addr := startTestLobby(t)
	client := lobbyclient.New(addr)

	resp := client.GameOver(7)
	require.True(t, resp.IsOK())
}

func TestGameOver_UnreachableLobby(t *testing.T) {
	client := lobbyclient.New("127.0.0.1:1")
	resp := client.GameOver(1)
	require.False(t, resp.IsOK())
	require.Equal(t, "lobby_unreachable", resp.Reason)
}
