package snake

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/udisondev/gamehub/internal/match"
)

func TestReset_SeatsStartOnOppositeSidesFacingEachOther(t *testing.T) {
	p1 := &Engine{}
	p1.SetSeat(match.SeatP1)
	p1.Reset(1)

	p2 := &Engine{}
	p2.SetSeat(match.SeatP2)
	p2.Reset(1)

	require.Equal(t, dirRight, p1.dir)
	require.Equal(t, dirLeft, p2.dir)
	require.Less(t, p1.body[0].X, p2.body[0].X)
}

func TestApply_IgnoresReversal(t *testing.T) {
	e := &Engine{}
	e.SetSeat(match.SeatP1)
	e.Reset(1)
	require.Equal(t, dirRight, e.dir)

	e.Apply("MOVE_LEFT")
	require.Equal(t, dirRight, e.nextDir, "reversal onto the snake's own body must be rejected")
}

func TestTick_MovesHeadAndShrinksTail(t *testing.T) {
	e := &Engine{}
	e.SetSeat(match.SeatP1)
	e.Reset(2)
	e.food = point{X: -5, Y: -5} // keep the snake from eating this tick

	head0 := e.body[0]
	lenBefore := len(e.body)
	e.Tick()

	require.Equal(t, head0.X+1, e.body[0].X)
	require.Len(t, e.body, lenBefore)
}

func TestTick_WallCollisionEndsGame(t *testing.T) {
	e := &Engine{}
	e.SetSeat(match.SeatP1)
	e.Reset(1)
	e.body = []point{{X: gridWidth - 1, Y: 5}}
	e.dir, e.nextDir = dirRight, dirRight
	e.food = point{X: -5, Y: -5}

	e.Tick()
	require.True(t, e.Over())
}

func TestTick_EatingFoodGrowsAndScores(t *testing.T) {
	e := &Engine{}
	e.SetSeat(match.SeatP1)
	e.Reset(3)
	lenBefore := len(e.body)
	e.food = point{X: e.body[0].X + 1, Y: e.body[0].Y}

	e.Tick()
	require.Equal(t, 1, e.score)
	require.Len(t, e.body, lenBefore+1)
}

func TestOpponentCollision_EndsGame(t *testing.T) {
	p1 := &Engine{}
	p1.SetSeat(match.SeatP1)
	p2 := &Engine{}
	p2.SetSeat(match.SeatP2)
	p1.SetOpponent(p2)
	p2.SetOpponent(p1)
	p1.Reset(1)
	p2.Reset(1)

	p1.food = point{X: -5, Y: -5}
	next := point{X: p1.body[0].X + 1, Y: p1.body[0].Y}
	p2.body = []point{next}

	p1.Tick()
	require.True(t, p1.Over())
}

func TestStats_ReportsScore(t *testing.T) {
	e := &Engine{}
	e.SetSeat(match.SeatP1)
	e.Reset(1)
	e.score = 4
	require.Equal(t, 4, e.Stats().Score)
}
