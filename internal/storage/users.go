package storage

import (
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/udisondev/gamehub/internal/model"
)

// CreateUser registers a new account, hashing the password with bcrypt.
// Returns errExists if the username is taken.
func (s *Store) CreateUser(username, password string, isDeveloper bool) error {
	if username == "" || password == "" {
		return fmt.Errorf("%w: %s", errNotFound, ReasonMissingFields)
	}

	s.users.mu.Lock()
	defer s.users.mu.Unlock()

	if _, ok := s.users.rows[username]; ok {
		return errExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("storage: hashing password: %w", err)
	}

	s.users.rows[username] = model.User{
		Username:     username,
		PasswordHash: string(hash),
		IsDeveloper:  isDeveloper,
		Status:       "offline",
		CreatedAt:    time.Now().UTC(),
	}
	return s.users.persistLocked()
}

// Authenticate verifies a username/password pair in constant time via
// bcrypt and returns the matching user on success.
func (s *Store) Authenticate(username, password string) (model.User, error) {
	s.users.mu.RLock()
	user, ok := s.users.rows[username]
	s.users.mu.RUnlock()
	if !ok {
		return model.User{}, errNotFound
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return model.User{}, errNotFound
	}
	return user, nil
}

// GetUser returns a user by username without checking a password.
func (s *Store) GetUser(username string) (model.User, error) {
	s.users.mu.RLock()
	defer s.users.mu.RUnlock()
	user, ok := s.users.rows[username]
	if !ok {
		return model.User{}, errNotFound
	}
	return user, nil
}

// UpdateUserStatus sets a user's status field (e.g. "online", "offline").
func (s *Store) UpdateUserStatus(username, status string) error {
	s.users.mu.Lock()
	defer s.users.mu.Unlock()

	user, ok := s.users.rows[username]
	if !ok {
		return errNotFound
	}
	user.Status = status
	s.users.rows[username] = user
	return s.users.persistLocked()
}
