package lobby

import (
	"fmt"
	"net"
	"os/exec"
	"strconv"
	"time"

	"log/slog"
)

const (
	readyPollInterval = 200 * time.Millisecond
	readyPollTimeout  = 5 * time.Second
)

// findFreePort trial-binds ports starting at start until one succeeds,
// mirroring the prototype's find_free_port. There is an inherent
// bind/release/re-bind race (another process could grab the port before
// the match subprocess binds it); the spec tolerates this as acceptable
// for a single-host deployment.
func findFreePort(start int) (int, error) {
	for port := start; port < 65535; port++ {
		ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
		if err != nil {
			continue
		}
		ln.Close()
		return port, nil
	}
	return 0, fmt.Errorf("lobby: no free port found starting at %d", start)
}

// resolveArtifact finds the on-disk path and registered engine name for
// a room's game, falling back to the built-in default game when
// unresolved (no game_id, the game row, or its current version's file
// cannot be found). The Game's own Name doubles as the match service's
// engine registry key — a developer names their upload after the engine
// it runs on ("tetris", "snake").
func (h *Hub) resolveArtifact(gameID int) (path, name string, ok bool) {
	if gameID == 0 {
		return "", "", false
	}
	game, resp := h.storage.GetGame(gameID)
	if !resp.IsOK() {
		slog.Warn("game not found, falling back to default", "game_id", gameID)
		return "", "", false
	}
	version, resp := h.storage.GetGameVersion(gameID, game.CurrentVersion)
	if !resp.IsOK() || version.FilePath == "" {
		slog.Warn("version info not found, falling back to default", "game_id", gameID)
		return "", "", false
	}
	return version.FilePath, game.Name, true
}

// launchMatch spawns the match binary in server mode for a room and
// waits for it to start accepting connections. It returns the port the
// match is listening on.
func (h *Hub) launchMatch(roomID, gameID int, player1, player2, artifactPath, gameName string) (int, error) {
	port, err := findFreePort(h.cfg.MatchBasePort)
	if err != nil {
		return 0, err
	}

	args := []string{
		"server",
		"--port", strconv.Itoa(port),
		"--p1", player1,
		"--p2", player2,
		"--room-id", strconv.Itoa(roomID),
		"--lobby-addr", h.cfg.Addr(),
		"--storage-addr", h.cfg.StorageAddr(),
	}
	if artifactPath != "" {
		args = append(args, "--game", artifactPath)
	}
	if gameName != "" {
		args = append(args, "--game-name", gameName)
	}

	cmd := exec.Command(h.cfg.MatchBinaryPath, args...)
	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("lobby: launching match: %w", err)
	}
	slog.Info("launched match", "room_id", roomID, "game_id", gameID, "port", port, "pid", cmd.Process.Pid)

	waitForMatchReady("127.0.0.1", port)
	return port, nil
}

func waitForMatchReady(host string, port int) {
	deadline := time.Now().Add(readyPollTimeout)
	addr := fmt.Sprintf("%s:%d", host, port)
	for time.Now().Before(deadline) {
		conn, err := net.DialTimeout("tcp", addr, readyPollInterval)
		if err == nil {
			conn.Close()
			return
		}
		time.Sleep(readyPollInterval)
	}
	slog.Warn("match server may not be ready, proceeding anyway", "address", addr)
}
