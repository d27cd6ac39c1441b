package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/udisondev/gamehub/internal/config"
	"github.com/udisondev/gamehub/internal/lobby"
)

const defaultConfigPath = "config/lobbyserver.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	path := defaultConfigPath
	if p := os.Getenv("GAMEHUB_LOBBY_CONFIG"); p != "" {
		path = p
	}
	cfg, err := config.LoadLobby(path)
	if err != nil {
		return fmt.Errorf("loading lobby config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))
	slog.Info("lobby service starting", "storage_addr", cfg.StorageAddr(), "match_binary", cfg.MatchBinaryPath)

	hub := lobby.NewHub(cfg)
	srv := lobby.NewServer(hub)
	if err := srv.Run(ctx, cfg.Addr()); err != nil {
		return fmt.Errorf("lobby server: %w", err)
	}
	return nil
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
