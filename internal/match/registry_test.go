package match

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type stubEngine struct{}

func (stubEngine) Reset(seed int64)  {}
func (stubEngine) Apply(action string) {}
func (stubEngine) Tick()             {}
func (stubEngine) Over() bool        { return false }
func (stubEngine) Snapshot() any     { return nil }
func (stubEngine) Stats() PlayerStats { return PlayerStats{} }

func TestSeat_Opponent(t *testing.T) {
	require.Equal(t, SeatP2, SeatP1.Opponent())
	require.Equal(t, SeatP1, SeatP2.Opponent())
}

func TestSeat_String(t *testing.T) {
	require.Equal(t, "P1", SeatP1.String())
	require.Equal(t, "P2", SeatP2.String())
}

func TestRegistry_ResolveKnown(t *testing.T) {
	Register("stub-known", func() Engine { return stubEngine{} })

	f, name := Resolve("stub-known")
	require.Equal(t, "stub-known", name)
	require.NotNil(t, f)
	require.IsType(t, stubEngine{}, f())
}

func TestRegistry_ResolveUnknownFallsBackToDefault(t *testing.T) {
	Register(DefaultGame, func() Engine { return stubEngine{} })

	f, name := Resolve("no-such-engine")
	require.Equal(t, DefaultGame, name)
	require.NotNil(t, f)
}

func TestRegistry_ResolveEmptyFallsBackToDefault(t *testing.T) {
	Register(DefaultGame, func() Engine { return stubEngine{} })

	_, name := Resolve("")
	require.Equal(t, DefaultGame, name)
}

func TestRegistry_Names(t *testing.T) {
	Register("stub-names-a", func() Engine { return stubEngine{} })
	Register("stub-names-b", func() Engine { return stubEngine{} })

	names := Names()
	require.Contains(t, names, "stub-names-a")
	require.Contains(t, names, "stub-names-b")
}
