// Package model holds the entities owned by the storage service: User,
// Game, GameVersion and GameLog. Session, Room and Invite are process-local
// to the lobby and live in package lobby instead.
package model

import "time"

// User is an authenticated account. PasswordHash never leaves the storage
// service's process boundary.
type User struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"password_hash"`
	IsDeveloper  bool      `json:"is_developer"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// Public returns the projection of a User that is safe to send to clients:
// no password hash.
func (u User) Public() map[string]any {
	return map[string]any{
		"username":     u.Username,
		"is_developer": u.IsDeveloper,
	}
}
