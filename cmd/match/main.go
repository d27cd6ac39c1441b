// match is the per-room game session binary: the lobby spawns it in
// server mode for the room's two players, and players run it in client
// mode to connect and play.
//
// Usage:
//
//	match server --port 9200 --p1 alice --p2 bob --room-id 7 --game-name tetris
//	match client --host 127.0.0.1 --port 9200
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/udisondev/gamehub/internal/match"

	// Blank-imported so their init() registers with the engine registry.
	_ "github.com/udisondev/gamehub/internal/match/snake"
	_ "github.com/udisondev/gamehub/internal/match/tetris"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "match",
	Short: "Run or join a single two-player match session",
}

var (
	flagPort        int
	flagPlayer1     string
	flagPlayer2     string
	flagRoomID      int
	flagGamePath    string
	flagGameName    string
	flagLobbyAddr   string
	flagStorageAddr string
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Host one authoritative match and wait for both players to connect",
	RunE:  runServer,
}

func init() {
	serverCmd.Flags().IntVar(&flagPort, "port", 9200, "TCP port to listen on")
	serverCmd.Flags().StringVar(&flagPlayer1, "p1", "", "player one's username")
	serverCmd.Flags().StringVar(&flagPlayer2, "p2", "", "player two's username")
	serverCmd.Flags().IntVar(&flagRoomID, "room-id", 0, "lobby room ID this match belongs to")
	serverCmd.Flags().StringVar(&flagGamePath, "game", "", "path to the game artifact on disk (informational; gameplay runs the compiled-in engine)")
	serverCmd.Flags().StringVar(&flagGameName, "game-name", match.DefaultGame, "registered engine name to run, falling back to the built-in default if unrecognized")
	serverCmd.Flags().StringVar(&flagLobbyAddr, "lobby-addr", "", "lobby service address, notified when the match ends")
	serverCmd.Flags().StringVar(&flagStorageAddr, "storage-addr", "", "storage service address, sent the completed game log")
	cobra.CheckErr(serverCmd.MarkFlagRequired("p1"))
	cobra.CheckErr(serverCmd.MarkFlagRequired("p2"))

	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(clientCmd)
}

func runServer(cmd *cobra.Command, args []string) error {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, nil)))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("match server shutting down", "signal", sig)
		cancel()
	}()

	srv := match.NewServer(match.ServerConfig{
		Port:        flagPort,
		Player1:     flagPlayer1,
		Player2:     flagPlayer2,
		RoomID:      flagRoomID,
		LobbyAddr:   flagLobbyAddr,
		StorageAddr: flagStorageAddr,
		GameName:    flagGameName,
	})
	return srv.Run(ctx)
}

var (
	flagHost string
)

var clientCmd = &cobra.Command{
	Use:   "client",
	Short: "Connect to a running match as a player",
	RunE:  runClient,
}

func init() {
	clientCmd.Flags().StringVar(&flagHost, "host", "127.0.0.1", "match server host")
	clientCmd.Flags().IntVar(&flagPort, "port", 9200, "match server port")
	clientCmd.Flags().IntVar(&flagRoomID, "room-id", 0, "room ID; accepted but not used by the client")
}

func runClient(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	cl := match.NewClient(match.ClientConfig{Host: flagHost, Port: flagPort})
	return cl.Run(ctx, os.Stdin, os.Stdout)
}
