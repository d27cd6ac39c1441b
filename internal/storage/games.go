package storage

import (
	"strings"
	"time"

	"github.com/udisondev/gamehub/internal/model"
)

// CreateGame inserts a new Game row owned by author and returns its id.
func (s *Store) CreateGame(name, author, description, version string) (int, error) {
	s.games.mu.Lock()
	defer s.games.mu.Unlock()

	id := s.games.allocateIDLocked()
	now := time.Now().UTC()
	s.games.rows[id] = model.Game{
		ID:             id,
		Name:           name,
		Author:         author,
		Description:    description,
		CurrentVersion: version,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.games.persistLocked(); err != nil {
		return 0, err
	}
	return id, nil
}

// GetGame returns a game by id, including soft-deleted ones.
func (s *Store) GetGame(id int) (model.Game, error) {
	s.games.mu.RLock()
	defer s.games.mu.RUnlock()
	g, ok := s.games.rows[id]
	if !ok {
		return model.Game{}, errNotFound
	}
	return g, nil
}

// ListGames returns all non-deleted games.
func (s *Store) ListGames() []model.Game {
	s.games.mu.RLock()
	defer s.games.mu.RUnlock()
	out := make([]model.Game, 0, len(s.games.rows))
	for _, g := range s.games.rows {
		if !g.Deleted {
			out = append(out, g)
		}
	}
	return out
}

// ListGamesByAuthor returns every game (including soft-deleted) owned by
// author, for the developer's own "list_my_games" view.
func (s *Store) ListGamesByAuthor(author string) []model.Game {
	s.games.mu.RLock()
	defer s.games.mu.RUnlock()
	out := make([]model.Game, 0)
	for _, g := range s.games.rows {
		if g.Author == author {
			out = append(out, g)
		}
	}
	return out
}

// SearchGames performs a case-insensitive substring match over name,
// author and description, excluding soft-deleted games.
func (s *Store) SearchGames(query string) []model.Game {
	needle := strings.ToLower(query)
	s.games.mu.RLock()
	defer s.games.mu.RUnlock()
	out := make([]model.Game, 0)
	for _, g := range s.games.rows {
		if g.Deleted {
			continue
		}
		if strings.Contains(strings.ToLower(g.Name), needle) ||
			strings.Contains(strings.ToLower(g.Author), needle) ||
			strings.Contains(strings.ToLower(g.Description), needle) {
			out = append(out, g)
		}
	}
	return out
}

// UpdateGame applies non-empty fields to the game identified by id.
func (s *Store) UpdateGame(id int, name, description, currentVersion string) error {
	s.games.mu.Lock()
	defer s.games.mu.Unlock()

	g, ok := s.games.rows[id]
	if !ok {
		return errNotFound
	}
	if name != "" {
		g.Name = name
	}
	if description != "" {
		g.Description = description
	}
	if currentVersion != "" {
		g.CurrentVersion = currentVersion
	}
	g.UpdatedAt = time.Now().UTC()
	s.games.rows[id] = g
	return s.games.persistLocked()
}

// DeleteGame soft-deletes a game: the row, its GameVersions and its
// on-disk files remain in place and addressable by id.
func (s *Store) DeleteGame(id int) error {
	s.games.mu.Lock()
	defer s.games.mu.Unlock()

	g, ok := s.games.rows[id]
	if !ok {
		return errNotFound
	}
	g.Deleted = true
	g.UpdatedAt = time.Now().UTC()
	s.games.rows[id] = g
	return s.games.persistLocked()
}
