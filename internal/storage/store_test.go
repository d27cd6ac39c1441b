package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/udisondev/gamehub/internal/model"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	st, err := Open(filepath.Join(dir, "data"), filepath.Join(dir, "games"), bcrypt.MinCost)
	require.NoError(t, err)
	return st, dir
}

func TestCreateUser_RejectsDuplicateAndWrongPassword(t *testing.T) {
	st, _ := newTestStore(t)

	require.NoError(t, st.CreateUser("alice", "hunter2", false))
	require.ErrorIs(t, st.CreateUser("alice", "other", false), errExists)

	user, err := st.Authenticate("alice", "hunter2")
	require.NoError(t, err)
	require.Equal(t, "alice", user.Username)
	require.NotEqual(t, "hunter2", user.PasswordHash)

	_, err = st.Authenticate("alice", "wrong")
	require.Error(t, err)
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	dataDir := filepath.Join(dir, "data")
	gamesDir := filepath.Join(dir, "games")

	st, err := Open(dataDir, gamesDir, bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, st.CreateUser("bob", "secret", true))
	id, err := st.CreateGame("tetris", "bob", "falling blocks", "1")
	require.NoError(t, err)

	reopened, err := Open(dataDir, gamesDir, bcrypt.MinCost)
	require.NoError(t, err)

	user, err := reopened.GetUser("bob")
	require.NoError(t, err)
	require.True(t, user.IsDeveloper)

	game, err := reopened.GetGame(id)
	require.NoError(t, err)
	require.Equal(t, "tetris", game.Name)
}

func TestDeleteGame_SoftDeleteExcludesFromListAndSearch(t *testing.T) {
	st, _ := newTestStore(t)
	id, err := st.CreateGame("snake", "carol", "classic snake", "1")
	require.NoError(t, err)

	require.NoError(t, st.DeleteGame(id))

	require.Empty(t, st.ListGames())
	require.Empty(t, st.SearchGames("snake"))

	game, err := st.GetGame(id)
	require.NoError(t, err)
	require.True(t, game.Deleted)
}

func TestGetGameVersion_DefaultsToLatest(t *testing.T) {
	st, _ := newTestStore(t)
	gameID, err := st.CreateGame("tetris", "dev", "", "1")
	require.NoError(t, err)

	_, err = st.CreateGameVersion(gameID, "1", "games/1/v1/game.py", "hash1")
	require.NoError(t, err)
	time.Sleep(time.Millisecond)
	_, err = st.CreateGameVersion(gameID, "2", "games/1/v2/game.py", "hash2")
	require.NoError(t, err)

	latest, err := st.GetGameVersion(gameID, "")
	require.NoError(t, err)
	require.Equal(t, "2", latest.Version)

	specific, err := st.GetGameVersion(gameID, "1")
	require.NoError(t, err)
	require.Equal(t, "hash1", specific.FileHash)
}

func TestCreateGameLog_RejectsDuplicateMatchID(t *testing.T) {
	st, _ := newTestStore(t)
	log := model.GameLog{
		MatchID: "match-1",
		Users:   []string{"alice", "bob"},
		Winner:  "alice",
		Reason:  "score",
	}
	_, err := st.CreateGameLog(log)
	require.NoError(t, err)

	_, err = st.CreateGameLog(log)
	require.ErrorIs(t, err, errExists)

	logs := st.QueryGameLogs("alice")
	require.Len(t, logs, 1)
	require.Empty(t, st.QueryGameLogs("carol"))
}

func TestWriteArtifact_HashMatchesReadBytes(t *testing.T) {
	dir := t.TempDir()
	data := []byte("print('hello')")

	path, hash, err := WriteArtifact(dir, 1, "1.0.0", data)
	require.NoError(t, err)
	require.Equal(t, HashBytes(data), hash)

	got, err := ReadArtifact(path)
	require.NoError(t, err)
	require.Equal(t, data, got)
}
