package tetris

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReset_SpawnsCurrentAndNextPiece(t *testing.T) {
	e := &Engine{}
	e.Reset(1)

	require.False(t, e.Over())
	require.NotNil(t, e.current)
	require.Equal(t, 0, e.score)
	require.Equal(t, 0, e.lines)
}

func TestDrawFromBag_SevenPiecesAreAPermutation(t *testing.T) {
	e := &Engine{}
	e.Reset(42)

	seen := make(map[shapeID]bool)
	// Reset already drew two pieces from the first bag ("current" and
	// "next"); draw the remaining five, confirming every shape 0-6 is
	// present exactly once per seven draws.
	seen[e.current.shape] = true
	seen[e.next] = true
	for i := 0; i < 5; i++ {
		seen[e.drawFromBag()] = true
	}
	require.Len(t, seen, numShapes)
}

func TestDeterminism_SameSeedSameSequence(t *testing.T) {
	e1, e2 := &Engine{}, &Engine{}
	e1.Reset(7)
	e2.Reset(7)

	for i := 0; i < 50; i++ {
		e1.Apply("SOFT_DROP")
		e2.Apply("SOFT_DROP")
		require.Equal(t, e1.score, e2.score)
		require.Equal(t, e1.board, e2.board)
	}
}

func TestMove_BlockedAtLeftWall(t *testing.T) {
	e := &Engine{}
	e.Reset(1)
	for i := 0; i < boardWidth; i++ {
		e.move(-1)
	}
	for _, b := range e.current.blocks() {
		require.GreaterOrEqual(t, b.Col, 0)
	}
}

func TestRotate_NoOpWhenColliding(t *testing.T) {
	e := &Engine{}
	e.Reset(1)
	// Push the piece hard against the left wall, then rotating must never
	// push any block out of bounds.
	for i := 0; i < boardWidth; i++ {
		e.move(-1)
	}
	e.rotate()
	for _, b := range e.current.blocks() {
		require.GreaterOrEqual(t, b.Col, 0)
		require.Less(t, b.Col, boardWidth)
	}
}

func TestHardDrop_LocksAndSpawnsNext(t *testing.T) {
	e := &Engine{}
	e.Reset(3)
	before := e.current
	e.hardDrop()
	require.NotSame(t, before, e.current)
	// The locked piece left at least one occupied cell on the board.
	occupied := false
	for _, row := range e.board {
		for _, c := range row {
			if c != 0 {
				occupied = true
			}
		}
	}
	require.True(t, occupied)
}

func TestClearLines_AwardsScoreAndKeepsBoardHeight(t *testing.T) {
	e := &Engine{}
	e.Reset(5)
	for c := 0; c < boardWidth; c++ {
		e.board[boardHeight-1][c] = 1
	}
	e.clearLines()
	require.Equal(t, scoring[1], e.score)
	require.Equal(t, 1, e.lines)
	for c := 0; c < boardWidth; c++ {
		require.Equal(t, 0, e.board[boardHeight-1][c])
	}
}

func TestTick_IsSoftDrop(t *testing.T) {
	e := &Engine{}
	e.Reset(9)
	y0 := e.current.y
	e.Tick()
	// The piece either moved down one row, or locked and a fresh one spawned.
	require.True(t, e.current.y == y0+1 || e.current.y <= y0)
}

func TestStats_ReportsScoreAndLines(t *testing.T) {
	e := &Engine{}
	e.Reset(2)
	e.score = 300
	e.lines = 2
	stats := e.Stats()
	require.Equal(t, 300, stats.Score)
	require.Equal(t, 2, stats.Lines)
}
