package storage

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// GamesDir returns the root of the game artifact directory layout.
func (s *Store) GamesDir() string {
	return s.gamesDir
}

// ArtifactPath returns the conventional on-disk path for a game
// artifact: games/<game-id>/v<version>/game.py. The game directory is
// single-writer (the owning developer) and multi-reader.
func ArtifactPath(gamesDir string, gameID int, version string) string {
	return filepath.Join(gamesDir, strconv.Itoa(gameID), "v"+version, "game.py")
}

// WriteArtifact writes data to the conventional path for (gameID,
// version), creating directories as needed, and returns the path and its
// content hash.
func WriteArtifact(gamesDir string, gameID int, version string, data []byte) (path, hash string, err error) {
	path = ArtifactPath(gamesDir, gameID, version)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", "", fmt.Errorf("storage: creating artifact dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", "", fmt.Errorf("storage: writing artifact: %w", err)
	}
	return path, HashBytes(data), nil
}

// ReadArtifact reads the bytes at path. Callers translate a missing file
// into the "file_not_found" wire reason.
func ReadArtifact(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// HashBytes returns the hex-encoded SHA-256 content hash used for
// GameVersion.FileHash.
func HashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
