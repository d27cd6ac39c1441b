package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/udisondev/gamehub/internal/config"
	"github.com/udisondev/gamehub/internal/storage"
)

const defaultConfigPath = "config/storageserver.yaml"

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
	if p := os.Getenv("GAMEHUB_STORAGE_CONFIG"); p != "" {
		path = p
	}
	cfg, err := config.LoadStorage(path)
	if err != nil {
		return fmt.Errorf("loading storage config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))
	slog.Info("storage service starting", "data_dir", cfg.DataDir, "games_dir", cfg.GamesDir)

	store, err := storage.Open(cfg.DataDir, cfg.GamesDir, cfg.BcryptCost)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}

	srv := storage.NewServer(store)
	if err := srv.Run(ctx, cfg.Addr()); err != nil {
		return fmt.Errorf("storage server: %w", err)
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
