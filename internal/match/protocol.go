package match

import "github.com/udisondev/gamehub/internal/model"

// Message type tokens, exactly as MSG_TYPE_* in the prototype's
// common/message_types.py.
const (
	TypeWelcome  = "WELCOME"
	TypeInput    = "INPUT"
	TypeForfeit  = "FORFEIT"
	TypeSnapshot = "SNAPSHOT"
	TypeGameOver = "GAME_OVER"
)

// Welcome is the first message a connecting client receives: its seat
// assignment and the shared RNG seed for deterministic gameplay.
type Welcome struct {
	Type string `json:"type"`
	Role string `json:"role"` // "P1" or "P2"
	Seed int64  `json:"seed"`
	Game string `json:"game"`
}

// Input is a client->server action. Both INPUT and FORFEIT share this
// shape; Action is empty for FORFEIT.
type Input struct {
	Type   string `json:"type"`
	Action string `json:"action,omitempty"`
}

// Snapshot is broadcast periodically with both seats' current board
// state, identical to both clients.
type Snapshot struct {
	Type          string `json:"type"`
	P1State       any    `json:"p1_state"`
	P2State       any    `json:"p2_state"`
	RemainingTime int    `json:"remaining_time"`
}

// GameOver is the terminal message sent once to both clients when the
// match concludes.
type GameOver struct {
	Type            string              `json:"type"`
	Winner          string              `json:"winner"` // "P1", "P2" or "TIE"
	Reason          string              `json:"reason"` // "time_up", "board_full", "forfeit", "tie"
	LoserUsername   string              `json:"loser_username,omitempty"`
	WinnerUsername  string              `json:"winner_username"`
	P1Results       model.PlayerResult  `json:"p1_results"`
	P2Results       model.PlayerResult  `json:"p2_results"`
	RoomID          int                 `json:"room_id"`
}
