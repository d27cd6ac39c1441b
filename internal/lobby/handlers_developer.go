package lobby

import (
	"encoding/base64"

	"github.com/udisondev/gamehub/internal/storage"
	"github.com/udisondev/gamehub/internal/wire"
)

func (h *Hub) checkDeveloper(username string) bool {
	user, resp := h.storage.GetUser(username)
	return resp.IsOK() && user.IsDeveloper
}

// uploadGame decodes base64 file_data, creates the Game row, writes the
// artifact to games/<game-id>/v<version>/game.py, then appends the
// GameVersion row. Partial failure between these steps is tolerated:
// the orphaned rows are not rolled back.
func (h *Hub) uploadGame(username string, data map[string]any) wire.Response {
	if !h.checkDeveloper(username) {
		return wire.Err("not_developer")
	}

	name := str(data, "name")
	if name == "" {
		return wire.Err("missing_name")
	}
	version := str(data, "version")
	if version == "" {
		version = "1.0.0"
	}

	fileData, err := decodeFileData(data)
	if err != nil {
		return wire.Err("invalid_file_data")
	}
	if fileData == nil {
		return wire.Err("missing_file_data")
	}

	gameID, resp := h.storage.CreateGame(name, username, str(data, "description"), version)
	if !resp.IsOK() {
		return wire.Err("failed_to_create_game")
	}

	path, hash, err := storage.WriteArtifact(h.cfg.GamesDir(), gameID, version, fileData)
	if err != nil {
		return wire.Err("failed_to_save_file")
	}

	if _, resp := h.storage.CreateGameVersion(gameID, version, path, hash); !resp.IsOK() {
		return wire.Err("failed_to_create_version")
	}

	return wire.OKWith(map[string]any{"game_id": gameID, "version": version})
}

// updateGame replaces a game's metadata, and optionally appends a new
// version when file_data is present.
func (h *Hub) updateGame(username string, data map[string]any) wire.Response {
	if !h.checkDeveloper(username) {
		return wire.Err("not_developer")
	}

	gameID, ok := number(data, "game_id")
	version := str(data, "version")
	if !ok || version == "" {
		return wire.Err("missing_game_id_or_version")
	}
	name := str(data, "name")
	if name == "" {
		return wire.Err("missing_game_name")
	}
	description := str(data, "description")

	fileData, err := decodeFileData(data)
	if err != nil {
		return wire.Err("invalid_file_data")
	}

	game, resp := h.storage.GetGame(gameID)
	if !resp.IsOK() {
		return wire.Err("game_not_found")
	}
	if game.Author != username {
		return wire.Err("not_game_owner")
	}

	if fileData == nil {
		if resp := h.storage.UpdateGame(gameID, name, description, version); !resp.IsOK() {
			return resp
		}
		return wire.OKWith(map[string]any{"game_id": gameID, "version": version})
	}

	path, hash, err := storage.WriteArtifact(h.cfg.GamesDir(), gameID, version, fileData)
	if err != nil {
		return wire.Err("failed_to_save_file")
	}
	if _, resp := h.storage.CreateGameVersion(gameID, version, path, hash); !resp.IsOK() {
		return wire.Err("failed_to_create_version")
	}
	if resp := h.storage.UpdateGame(gameID, name, description, version); !resp.IsOK() {
		return wire.Err("failed_to_update_metadata")
	}

	return wire.OKWith(map[string]any{"game_id": gameID, "version": version})
}

// removeGame soft-deletes a game the caller owns, and broadcasts
// GAME_DELETED so connected clients can purge local copies.
func (h *Hub) removeGame(username string, data map[string]any) wire.Response {
	if !h.checkDeveloper(username) {
		return wire.Err("not_developer")
	}
	gameID, ok := number(data, "game_id")
	if !ok {
		return wire.Err("missing_game_id")
	}

	game, resp := h.storage.GetGame(gameID)
	if !resp.IsOK() {
		return wire.Err("game_not_found")
	}
	if game.Author != username {
		return wire.Err("not_game_owner")
	}

	if resp := h.storage.DeleteGame(gameID); !resp.IsOK() {
		return wire.Err("failed_to_delete_game")
	}

	for _, s := range h.sessions.snapshot() {
		s.Conn.Send(wire.Push{Type: "GAME_DELETED", Extra: map[string]any{"game_id": gameID}})
	}
	return wire.OK()
}

func (h *Hub) listMyGames(username string) wire.Response {
	games, resp := h.storage.ListGamesByAuthor(username)
	if !resp.IsOK() {
		return wire.Err("failed_to_list_games")
	}
	return wire.OKWith(map[string]any{"games": games})
}

func decodeFileData(data map[string]any) ([]byte, error) {
	encoded := str(data, "file_data")
	if encoded == "" {
		return nil, nil
	}
	return base64.StdEncoding.DecodeString(encoded)
}
