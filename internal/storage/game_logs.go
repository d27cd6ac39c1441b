package storage

import (
	"github.com/udisondev/gamehub/internal/model"
)

// CreateGameLog appends an immutable match record. Returns errExists if
// matchID already has a log (a match reports its result exactly once).
func (s *Store) CreateGameLog(log model.GameLog) (int, error) {
	s.gameLogs.mu.Lock()
	defer s.gameLogs.mu.Unlock()

	for _, existing := range s.gameLogs.rows {
		if existing.MatchID == log.MatchID {
			return 0, errExists
		}
	}

	id := s.gameLogs.allocateIDLocked()
	log.ID = id
	s.gameLogs.rows[id] = log
	if err := s.gameLogs.persistLocked(); err != nil {
		return 0, err
	}
	return id, nil
}

// QueryGameLogs returns every log, or only those mentioning username
// when it is non-empty.
func (s *Store) QueryGameLogs(username string) []model.GameLog {
	s.gameLogs.mu.RLock()
	defer s.gameLogs.mu.RUnlock()

	out := make([]model.GameLog, 0)
	for _, log := range s.gameLogs.rows {
		if username == "" || containsUser(log.Users, username) {
			out = append(out, log)
		}
	}
	return out
}

func containsUser(users []string, username string) bool {
	for _, u := range users {
		if u == username {
			return true
		}
	}
	return false
}
