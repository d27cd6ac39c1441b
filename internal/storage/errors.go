package storage

import "errors"

// Reason tokens returned to callers alongside {"status":"error"}. These
// mirror the reason strings the storage service puts on the wire, so
// callers in package lobby and package match can compare against them.
const (
	ReasonMissingFields      = "missing_fields"
	ReasonUserExists         = "user_exists"
	ReasonUserNotFound       = "user_not_found"
	ReasonInvalidCredentials = "invalid_credentials"
	ReasonGameNotFound       = "game_not_found"
	ReasonMissingGameID      = "missing_game_id"
	ReasonVersionNotFound    = "version_not_found"
	ReasonGameLogExists      = "gamelog_already_exists"
)

var (
	errNotFound = errors.New("storage: not found")
	errExists   = errors.New("storage: already exists")
)
