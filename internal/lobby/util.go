package lobby

import (
	"strconv"
	"strings"
)

const inRoomPrefix = "in_room_"

func inRoomStatus(roomID int) string {
	return inRoomPrefix + strconv.Itoa(roomID)
}

// roomIDFromStatus extracts the room id encoded in a session's status
// string, e.g. "in_room_102" -> 102.
func roomIDFromStatus(status string) (int, bool) {
	if !strings.HasPrefix(status, inRoomPrefix) {
		return 0, false
	}
	id, err := strconv.Atoi(strings.TrimPrefix(status, inRoomPrefix))
	if err != nil {
		return 0, false
	}
	return id, true
}

func str(data map[string]any, key string) string {
	v, _ := data[key].(string)
	return v
}

func boolean(data map[string]any, key string, def bool) bool {
	v, ok := data[key].(bool)
	if !ok {
		return def
	}
	return v
}

func number(data map[string]any, key string) (int, bool) {
	switch v := data[key].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}
