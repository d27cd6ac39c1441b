package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// TestHandleGameLog_Create_PersistsStartAndEndTime exercises the wire path
// storageclient.CreateGameLog actually drives: a GameLog marshaled to a
// map[string]any with start_time/end_time as RFC3339Nano strings, the way
// json.Marshal renders a time.Time. handleGameLog must parse them back
// rather than leaving the persisted log at the zero time.
func TestHandleGameLog_Create_PersistsStartAndEndTime(t *testing.T) {
	st, err := Open(t.TempDir()+"/data", t.TempDir()+"/games", bcrypt.MinCost)
	require.NoError(t, err)
	srv := NewServer(st)

	start := time.Date(2026, 7, 30, 10, 0, 0, 0, time.UTC)
	end := start.Add(47 * time.Second)

	resp := srv.process(request{
		Collection: "GameLog",
		Action:     "create",
		Data: map[string]any{
			"matchid":    "match-42",
			"game_id":    1,
			"users":      []any{"alice", "bob"},
			"winner":     "alice",
			"reason":     "score",
			"start_time": start.Format(time.RFC3339Nano),
			"end_time":   end.Format(time.RFC3339Nano),
		},
	})
	require.True(t, resp.IsOK())

	logs := st.QueryGameLogs("alice")
	require.Len(t, logs, 1)
	require.True(t, start.Equal(logs[0].StartTime), "want %s, got %s", start, logs[0].StartTime)
	require.True(t, end.Equal(logs[0].EndTime), "want %s, got %s", end, logs[0].EndTime)
	require.Equal(t, end.Sub(start), logs[0].EndTime.Sub(logs[0].StartTime))
}

// TestHandleGameLog_Create_MissingTimestampsDefaultToZero documents the
// fallback for malformed/absent timestamps rather than failing the whole
// write, matching timeField's parse-or-zero contract.
func TestHandleGameLog_Create_MissingTimestampsDefaultToZero(t *testing.T) {
	st, err := Open(t.TempDir()+"/data", t.TempDir()+"/games", bcrypt.MinCost)
	require.NoError(t, err)
	srv := NewServer(st)

	resp := srv.process(request{
		Collection: "GameLog",
		Action:     "create",
		Data: map[string]any{
			"matchid": "match-7",
			"users":   []any{"carol"},
			"winner":  "carol",
			"reason":  "forfeit",
		},
	})
	require.True(t, resp.IsOK())

	logs := st.QueryGameLogs("carol")
	require.Len(t, logs, 1)
	require.True(t, logs[0].StartTime.IsZero())
	require.True(t, logs[0].EndTime.IsZero())
}
