package storage

import (
	"time"

	"github.com/udisondev/gamehub/internal/model"
)

// CreateGameVersion appends an immutable GameVersion row.
func (s *Store) CreateGameVersion(gameID int, version, filePath, fileHash string) (int, error) {
	s.gameVersions.mu.Lock()
	defer s.gameVersions.mu.Unlock()

	id := s.gameVersions.allocateIDLocked()
	s.gameVersions.rows[id] = model.GameVersion{
		ID:         id,
		GameID:     gameID,
		Version:    version,
		FilePath:   filePath,
		FileHash:   fileHash,
		UploadedAt: time.Now().UTC(),
	}
	if err := s.gameVersions.persistLocked(); err != nil {
		return 0, err
	}
	return id, nil
}

// GetGameVersion returns the version row matching (gameID, version), or
// the most recently uploaded row for gameID if version is empty.
func (s *Store) GetGameVersion(gameID int, version string) (model.GameVersion, error) {
	s.gameVersions.mu.RLock()
	defer s.gameVersions.mu.RUnlock()

	if version != "" {
		for _, v := range s.gameVersions.rows {
			if v.GameID == gameID && v.Version == version {
				return v, nil
			}
		}
		return model.GameVersion{}, errNotFound
	}

	var latest model.GameVersion
	found := false
	for _, v := range s.gameVersions.rows {
		if v.GameID != gameID {
			continue
		}
		if !found || v.UploadedAt.After(latest.UploadedAt) {
			latest = v
			found = true
		}
	}
	if !found {
		return model.GameVersion{}, errNotFound
	}
	return latest, nil
}
