package storage

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"time"

	"github.com/udisondev/gamehub/internal/model"
	"github.com/udisondev/gamehub/internal/wire"
)

// request is the storage service's wire shape: {collection, action, data}.
// It is distinct from wire.Request (which carries lobby/client traffic)
// because storage dispatch keys on a (collection, action) pair.
type request struct {
	Collection string         `json:"collection"`
	Action     string         `json:"action"`
	Data       map[string]any `json:"data"`
}

func (s *Server) handleConn(conn net.Conn) {
	defer conn.Close()

	var req request
	if err := wire.ReadJSON(conn, &req); err != nil {
		slog.Warn("storage: failed to read request", "remote", conn.RemoteAddr(), "error", err)
		return
	}

	resp := s.process(req)

	if err := wire.SendJSON(conn, resp); err != nil {
		slog.Warn("storage: failed to send response", "remote", conn.RemoteAddr(), "error", err)
	}
}

func (s *Server) process(req request) wire.Response {
	switch req.Collection {
	case "User":
		return s.handleUser(req.Action, req.Data)
	case "Game":
		return s.handleGame(req.Action, req.Data)
	case "GameVersion":
		return s.handleGameVersion(req.Action, req.Data)
	case "GameLog":
		return s.handleGameLog(req.Action, req.Data)
	default:
		return wire.Err("unknown_collection")
	}
}

func str(data map[string]any, key string) string {
	v, _ := data[key].(string)
	return v
}

func boolean(data map[string]any, key string) bool {
	v, _ := data[key].(bool)
	return v
}

// number extracts an int from a JSON-decoded field, which arrives as
// float64.
func number(data map[string]any, key string) (int, bool) {
	switch v := data[key].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	default:
		return 0, false
	}
}

// timeField parses a time.Time that was marshaled into a request as its
// default RFC3339Nano JSON encoding.
func timeField(data map[string]any, key string) time.Time {
	s, _ := data[key].(string)
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func (s *Server) handleUser(action string, data map[string]any) wire.Response {
	switch action {
	case "create":
		username, password := str(data, "username"), str(data, "password")
		if username == "" || password == "" {
			return wire.Err(ReasonMissingFields)
		}
		if err := s.store.CreateUser(username, password, boolean(data, "is_developer")); err != nil {
			if errors.Is(err, errExists) {
				return wire.Err(ReasonUserExists)
			}
			slog.Error("storage: create user", "error", err)
			return wire.Err(ReasonUserExists)
		}
		return wire.OK()

	case "query":
		username, password := str(data, "username"), str(data, "password")
		if username == "" || password == "" {
			return wire.Err(ReasonMissingFields)
		}
		user, err := s.store.Authenticate(username, password)
		if err != nil {
			return wire.Err(ReasonInvalidCredentials)
		}
		return wire.OKWith(map[string]any{"user": user.Public()})

	case "get":
		username := str(data, "username")
		if username == "" {
			return wire.Err(ReasonMissingFields)
		}
		user, err := s.store.GetUser(username)
		if err != nil {
			return wire.Err(ReasonUserNotFound)
		}
		return wire.OKWith(map[string]any{"user": user.Public()})

	case "update":
		username, status := str(data, "username"), str(data, "status")
		if username == "" || status == "" {
			return wire.Err("missing_fields_for_update")
		}
		if err := s.store.UpdateUserStatus(username, status); err != nil {
			return wire.Err(ReasonUserNotFound)
		}
		return wire.OK()

	default:
		return wire.Err("unknown_action")
	}
}

func (s *Server) handleGame(action string, data map[string]any) wire.Response {
	switch action {
	case "create":
		name, author := str(data, "name"), str(data, "author")
		if name == "" || author == "" {
			return wire.Err(ReasonMissingFields)
		}
		id, err := s.store.CreateGame(name, author, str(data, "description"), str(data, "version"))
		if err != nil {
			return wire.Err("failed_to_create_game")
		}
		return wire.OKWith(map[string]any{"game_id": id})

	case "query":
		id, ok := number(data, "game_id")
		if !ok {
			return wire.Err(ReasonMissingGameID)
		}
		game, err := s.store.GetGame(id)
		if err != nil {
			return wire.Err(ReasonGameNotFound)
		}
		return wire.OKWith(map[string]any{"game": game})

	case "list":
		return wire.OKWith(map[string]any{"games": s.store.ListGames()})

	case "list_by_author":
		author := str(data, "author")
		if author == "" {
			return wire.Err("missing_author")
		}
		return wire.OKWith(map[string]any{"games": s.store.ListGamesByAuthor(author)})

	case "search":
		query := str(data, "query")
		if query == "" {
			return wire.Err("missing_query")
		}
		return wire.OKWith(map[string]any{"games": s.store.SearchGames(query)})

	case "update":
		id, ok := number(data, "game_id")
		if !ok {
			return wire.Err(ReasonMissingGameID)
		}
		if err := s.store.UpdateGame(id, str(data, "name"), str(data, "description"), str(data, "current_version")); err != nil {
			return wire.Err("failed_to_update_game")
		}
		return wire.OK()

	case "delete":
		id, ok := number(data, "game_id")
		if !ok {
			return wire.Err(ReasonMissingGameID)
		}
		if err := s.store.DeleteGame(id); err != nil {
			return wire.Err("failed_to_delete_game")
		}
		return wire.OK()

	default:
		return wire.Err("unknown_action")
	}
}

func (s *Server) handleGameVersion(action string, data map[string]any) wire.Response {
	switch action {
	case "create":
		gameID, ok := number(data, "game_id")
		version, filePath := str(data, "version"), str(data, "file_path")
		if !ok || version == "" || filePath == "" {
			return wire.Err(ReasonMissingFields)
		}
		id, err := s.store.CreateGameVersion(gameID, version, filePath, str(data, "file_hash"))
		if err != nil {
			return wire.Err("failed_to_create_version")
		}
		return wire.OKWith(map[string]any{"version_id": id})

	case "query":
		gameID, ok := number(data, "game_id")
		if !ok {
			return wire.Err(ReasonMissingGameID)
		}
		v, err := s.store.GetGameVersion(gameID, str(data, "version"))
		if err != nil {
			return wire.Err(ReasonVersionNotFound)
		}
		return wire.OKWith(map[string]any{"version": v})

	default:
		return wire.Err("unknown_action")
	}
}

func (s *Server) handleGameLog(action string, data map[string]any) wire.Response {
	switch action {
	case "create":
		if len(data) == 0 {
			return wire.Err("missing_gamelog_data")
		}
		gameID, _ := number(data, "game_id")
		log := model.GameLog{
			MatchID:   str(data, "matchid"),
			GameID:    gameID,
			Winner:    str(data, "winner"),
			Reason:    str(data, "reason"),
			StartTime: timeField(data, "start_time"),
			EndTime:   timeField(data, "end_time"),
		}
		if users, ok := data["users"].([]any); ok {
			for _, u := range users {
				if s, ok := u.(string); ok {
					log.Users = append(log.Users, s)
				}
			}
		}
		if results, ok := data["results"].([]any); ok {
			for _, r := range results {
				b, err := json.Marshal(r)
				if err != nil {
					continue
				}
				var pr model.PlayerResult
				if json.Unmarshal(b, &pr) == nil {
					log.Results = append(log.Results, pr)
				}
			}
		}
		if _, err := s.store.CreateGameLog(log); err != nil {
			return wire.Err(ReasonGameLogExists)
		}
		return wire.OK()

	case "query":
		logs := s.store.QueryGameLogs(str(data, "userId"))
		return wire.OKWith(map[string]any{"logs": logs})

	default:
		return wire.Err("unknown_action")
	}
}
