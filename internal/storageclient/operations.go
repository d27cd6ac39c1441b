package storageclient

import (
	"encoding/json"
	"fmt"

	"github.com/udisondev/gamehub/internal/model"
	"github.com/udisondev/gamehub/internal/wire"
)

func decode[T any](v any) (T, error) {
	var out T
	b, err := json.Marshal(v)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(b, &out); err != nil {
		return out, err
	}
	return out, nil
}

// CreateUser registers a new account.
func (c *Client) CreateUser(username, password string, isDeveloper bool) wire.Response {
	return c.Call("User", "create", map[string]any{
		"username": username, "password": password, "is_developer": isDeveloper,
	})
}

// Authenticate verifies credentials and returns the public user view.
func (c *Client) Authenticate(username, password string) (model.User, wire.Response) {
	resp := c.Call("User", "query", map[string]any{"username": username, "password": password})
	if !resp.IsOK() {
		return model.User{}, resp
	}
	user, err := decode[model.User](resp.Extra["user"])
	if err != nil {
		return model.User{}, wire.Err("storage_bad_response")
	}
	return user, resp
}

// GetUser fetches a user by username, without a password check.
func (c *Client) GetUser(username string) (model.User, wire.Response) {
	resp := c.Call("User", "get", map[string]any{"username": username})
	if !resp.IsOK() {
		return model.User{}, resp
	}
	user, err := decode[model.User](resp.Extra["user"])
	if err != nil {
		return model.User{}, wire.Err("storage_bad_response")
	}
	return user, resp
}

// UpdateUserStatus sets a user's status.
func (c *Client) UpdateUserStatus(username, status string) wire.Response {
	return c.Call("User", "update", map[string]any{"username": username, "status": status})
}

// CreateGame inserts a new game row and returns its id.
func (c *Client) CreateGame(name, author, description, version string) (int, wire.Response) {
	resp := c.Call("Game", "create", map[string]any{
		"name": name, "author": author, "description": description, "version": version,
	})
	if !resp.IsOK() {
		return 0, resp
	}
	id, _ := decode[float64](resp.Extra["game_id"])
	return int(id), resp
}

// GetGame fetches one game by id.
func (c *Client) GetGame(gameID int) (model.Game, wire.Response) {
	resp := c.Call("Game", "query", map[string]any{"game_id": gameID})
	if !resp.IsOK() {
		return model.Game{}, resp
	}
	game, err := decode[model.Game](resp.Extra["game"])
	if err != nil {
		return model.Game{}, wire.Err("storage_bad_response")
	}
	return game, resp
}

// ListGames returns all non-deleted games.
func (c *Client) ListGames() ([]model.Game, wire.Response) {
	resp := c.Call("Game", "list", nil)
	return decodeGameList(resp)
}

// ListGamesByAuthor returns every game owned by author.
func (c *Client) ListGamesByAuthor(author string) ([]model.Game, wire.Response) {
	resp := c.Call("Game", "list_by_author", map[string]any{"author": author})
	return decodeGameList(resp)
}

// SearchGames performs a case-insensitive substring search.
func (c *Client) SearchGames(query string) ([]model.Game, wire.Response) {
	resp := c.Call("Game", "search", map[string]any{"query": query})
	return decodeGameList(resp)
}

func decodeGameList(resp wire.Response) ([]model.Game, wire.Response) {
	if !resp.IsOK() {
		return nil, resp
	}
	games, err := decode[[]model.Game](resp.Extra["games"])
	if err != nil {
		return nil, wire.Err("storage_bad_response")
	}
	return games, resp
}

// UpdateGame applies a metadata-only update.
func (c *Client) UpdateGame(gameID int, name, description, currentVersion string) wire.Response {
	return c.Call("Game", "update", map[string]any{
		"game_id": gameID, "name": name, "description": description, "current_version": currentVersion,
	})
}

// DeleteGame soft-deletes a game.
func (c *Client) DeleteGame(gameID int) wire.Response {
	return c.Call("Game", "delete", map[string]any{"game_id": gameID})
}

// CreateGameVersion appends a new version row and returns its id.
func (c *Client) CreateGameVersion(gameID int, version, filePath, fileHash string) (int, wire.Response) {
	resp := c.Call("GameVersion", "create", map[string]any{
		"game_id": gameID, "version": version, "file_path": filePath, "file_hash": fileHash,
	})
	if !resp.IsOK() {
		return 0, resp
	}
	id, _ := decode[float64](resp.Extra["version_id"])
	return int(id), resp
}

// GetGameVersion fetches a version row, defaulting to the latest when
// version is empty.
func (c *Client) GetGameVersion(gameID int, version string) (model.GameVersion, wire.Response) {
	resp := c.Call("GameVersion", "query", map[string]any{"game_id": gameID, "version": version})
	if !resp.IsOK() {
		return model.GameVersion{}, resp
	}
	v, err := decode[model.GameVersion](resp.Extra["version"])
	if err != nil {
		return model.GameVersion{}, wire.Err("storage_bad_response")
	}
	return v, resp
}

// CreateGameLog reports a completed match's result.
func (c *Client) CreateGameLog(log model.GameLog) wire.Response {
	data, err := decode[map[string]any](log)
	if err != nil {
		return wire.Err(fmt.Sprintf("marshal_gamelog: %v", err))
	}
	return c.Call("GameLog", "create", data)
}

// QueryGameLogs returns logs, optionally filtered by username.
func (c *Client) QueryGameLogs(username string) ([]model.GameLog, wire.Response) {
	resp := c.Call("GameLog", "query", map[string]any{"userId": username})
	if !resp.IsOK() {
		return nil, resp
	}
	logs, err := decode[[]model.GameLog](resp.Extra["logs"])
	if err != nil {
		return nil, wire.Err("storage_bad_response")
	}
	return logs, resp
}
