package storage

import (
	"path/filepath"

	"golang.org/x/crypto/bcrypt"

	"github.com/udisondev/gamehub/internal/model"
)

// Store owns the four persistent collections. Each collection has its
// own lock; no Store method holds more than one collection lock at a
// time.
type Store struct {
	users        *collection[string, model.User]
	games        *collection[int, model.Game]
	gameVersions *collection[int, model.GameVersion]
	gameLogs     *collection[int, model.GameLog]

	gamesDir   string
	bcryptCost int
}

// Open loads (or creates) the four collection files under dataDir and
// returns a ready Store. gamesDir is the root of the game artifact
// directory layout (games/<game-id>/v<version>/game.py). bcryptCost
// configures password hashing cost; 0 means bcrypt.DefaultCost.
func Open(dataDir, gamesDir string, bcryptCost int) (*Store, error) {
	users, err := newCollection(filepath.Join(dataDir, "users.json"), func(u model.User) string { return u.Username })
	if err != nil {
		return nil, err
	}
	games, err := newCollection(filepath.Join(dataDir, "games.json"), func(g model.Game) int { return g.ID })
	if err != nil {
		return nil, err
	}
	gameVersions, err := newCollection(filepath.Join(dataDir, "game_versions.json"), func(v model.GameVersion) int { return v.ID })
	if err != nil {
		return nil, err
	}
	gameLogs, err := newCollection(filepath.Join(dataDir, "game_logs.json"), func(l model.GameLog) int { return l.ID })
	if err != nil {
		return nil, err
	}

	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}

	return &Store{
		users:        users,
		games:        games,
		gameVersions: gameVersions,
		gameLogs:     gameLogs,
		gamesDir:     gamesDir,
		bcryptCost:   bcryptCost,
	}, nil
}
