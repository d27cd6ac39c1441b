package lobby

import (
	"encoding/base64"

	"github.com/udisondev/gamehub/internal/storage"
	"github.com/udisondev/gamehub/internal/wire"
)

func (h *Hub) listGames() wire.Response {
	games, resp := h.storage.ListGames()
	if !resp.IsOK() {
		return wire.Err("failed_to_list_games")
	}
	return wire.OKWith(map[string]any{"games": games})
}

func (h *Hub) searchGames(data map[string]any) wire.Response {
	query := str(data, "query")
	if query == "" {
		return wire.Err("missing_query")
	}
	games, resp := h.storage.SearchGames(query)
	if !resp.IsOK() {
		return wire.Err("failed_to_search_games")
	}
	return wire.OKWith(map[string]any{"games": games})
}

func (h *Hub) getGameInfo(data map[string]any) wire.Response {
	gameID, ok := number(data, "game_id")
	if !ok {
		return wire.Err("missing_game_id")
	}
	game, resp := h.storage.GetGame(gameID)
	if !resp.IsOK() {
		return wire.Err("game_not_found")
	}
	return wire.OKWith(map[string]any{"game": game})
}

// downloadGame resolves game -> version (default current_version) ->
// on-disk file, and replies with the base64-encoded bytes and content
// hash.
func (h *Hub) downloadGame(data map[string]any) wire.Response {
	gameID, ok := number(data, "game_id")
	if !ok {
		return wire.Err("missing_game_id")
	}
	game, resp := h.storage.GetGame(gameID)
	if !resp.IsOK() {
		return wire.Err("game_not_found")
	}

	version := str(data, "version")
	if version == "" {
		version = game.CurrentVersion
	}

	v, resp := h.storage.GetGameVersion(gameID, version)
	if !resp.IsOK() {
		return wire.Err("version_not_found")
	}

	fileData, err := storage.ReadArtifact(v.FilePath)
	if err != nil {
		return wire.Err("file_not_found")
	}

	return wire.OKWith(map[string]any{
		"action":    "download_game",
		"game_id":   gameID,
		"game_name": game.Name,
		"version":   v.Version,
		"file_data": base64.StdEncoding.EncodeToString(fileData),
		"file_hash": v.FileHash,
	})
}

func (h *Hub) queryGameLogs(data map[string]any) wire.Response {
	logs, resp := h.storage.QueryGameLogs(str(data, "userId"))
	if !resp.IsOK() {
		return wire.Err("failed_to_fetch_gamelogs")
	}
	return wire.Response{Status: "ok", Extra: map[string]any{"type": "gamelog_response", "logs": logs}}
}
