// Package snake implements a two-player competitive Snake as a second
// engine behind the match service's uniform contract. The original
// prototype's own developer/games/snake.py survives only as an
// import-header stub in the retrieval pack, so the grid/collision rules
// here are grounded on a real Go snake implementation's shape
// (internal/games/snake in the arcade example) rather than ported line
// for line — adapted from single-player to a shared-grid, two-snake
// match instead.
package snake

import (
	"math/rand"

	"github.com/udisondev/gamehub/internal/match"
)

const (
	gridWidth  = 30
	gridHeight = 20
)

type direction int

const (
	dirRight direction = iota
	dirDown
	dirLeft
	dirUp
)

func (d direction) opposite(o direction) bool {
	return (d == dirUp && o == dirDown) ||
		(d == dirDown && o == dirUp) ||
		(d == dirLeft && o == dirRight) ||
		(d == dirRight && o == dirLeft)
}

type point struct{ X, Y int }

// Engine implements match.Engine for one seat's snake. Both seats share
// the same grid dimensions and the same seeded food sequence, so the two
// Engine instances must be told about each other's occupied cells before
// each tick — the match server wires this via SetOpponent.
type Engine struct {
	rng *rand.Rand

	body      []point // head at index 0
	dir       direction
	nextDir   direction
	growing   bool
	score     int
	gameOver  bool
	food      point
	opponent  *Engine
	seat      match.Seat
}

var _ match.Engine = (*Engine)(nil)
var _ match.OpponentAware = (*Engine)(nil)
var _ match.SeatAware = (*Engine)(nil)

func New() match.Engine {
	return &Engine{}
}

func init() {
	match.Register("snake", New)
}

// SetOpponent links this engine to the other seat's so collision checks
// and food placement can see both snakes' occupied cells. The match
// server calls this once after constructing both engines, before Reset.
// The other seat is always the same concrete Engine type, since both
// come from this package's Factory.
func (e *Engine) SetOpponent(o match.Engine) {
	if other, ok := o.(*Engine); ok {
		e.opponent = other
	}
}

// SetSeat records which side of the grid this snake starts on, so the
// two seats don't spawn on top of each other.
func (e *Engine) SetSeat(seat match.Seat) {
	e.seat = seat
}

func (e *Engine) Reset(seed int64) {
	e.rng = rand.New(rand.NewSource(seed))
	e.growing = false
	e.score = 0
	e.gameOver = false

	if e.seat == match.SeatP1 {
		e.dir, e.nextDir = dirRight, dirRight
		startX := gridWidth / 4
		e.body = []point{{X: startX, Y: gridHeight / 2}, {X: startX - 1, Y: gridHeight / 2}, {X: startX - 2, Y: gridHeight / 2}}
	} else {
		e.dir, e.nextDir = dirLeft, dirLeft
		startX := gridWidth - gridWidth/4
		e.body = []point{{X: startX, Y: gridHeight / 2}, {X: startX + 1, Y: gridHeight / 2}, {X: startX + 2, Y: gridHeight / 2}}
	}
	e.spawnFood()
}

func (e *Engine) occupies(p point) bool {
	for _, seg := range e.body {
		if seg == p {
			return true
		}
	}
	return false
}

func (e *Engine) spawnFood() {
	for attempt := 0; attempt < 200; attempt++ {
		p := point{X: e.rng.Intn(gridWidth), Y: e.rng.Intn(gridHeight)}
		if e.occupies(p) {
			continue
		}
		if e.opponent != nil && e.opponent.occupies(p) {
			continue
		}
		e.food = p
		return
	}
	e.food = point{X: -1, Y: -1}
}

func (e *Engine) Apply(action string) {
	var d direction
	switch action {
	case "MOVE_LEFT":
		d = dirLeft
	case "MOVE_RIGHT":
		d = dirRight
	case "ROTATE": // unused by snake; SOFT_DROP/HARD_DROP double as up/down
		return
	case "SOFT_DROP":
		d = dirDown
	case "HARD_DROP":
		d = dirUp
	default:
		return
	}
	if !d.opposite(e.dir) {
		e.nextDir = d
	}
}

func (e *Engine) Tick() {
	if e.gameOver || len(e.body) == 0 {
		return
	}
	e.dir = e.nextDir
	head := e.body[0]
	var next point
	switch e.dir {
	case dirUp:
		next = point{X: head.X, Y: head.Y - 1}
	case dirDown:
		next = point{X: head.X, Y: head.Y + 1}
	case dirLeft:
		next = point{X: head.X - 1, Y: head.Y}
	case dirRight:
		next = point{X: head.X + 1, Y: head.Y}
	}

	if next.X < 0 || next.X >= gridWidth || next.Y < 0 || next.Y >= gridHeight {
		e.gameOver = true
		return
	}

	checkLen := len(e.body)
	if !e.growing {
		checkLen--
	}
	for i := 0; i < checkLen; i++ {
		if e.body[i] == next {
			e.gameOver = true
			return
		}
	}
	if e.opponent != nil && e.opponent.occupies(next) {
		e.gameOver = true
		return
	}

	e.body = append([]point{next}, e.body...)

	if next == e.food {
		e.score++
		e.growing = true
		e.spawnFood()
	}

	if e.growing {
		e.growing = false
	} else if len(e.body) > 1 {
		e.body = e.body[:len(e.body)-1]
	}
}

func (e *Engine) Over() bool {
	return e.gameOver
}

func (e *Engine) Stats() match.PlayerStats {
	return match.PlayerStats{Score: e.score}
}

type snapshot struct {
	Body     []point `json:"body"`
	Food     point   `json:"food"`
	Score    int     `json:"score"`
	GameOver bool    `json:"game_over"`
	Width    int     `json:"width"`
	Height   int     `json:"height"`
}

func (e *Engine) Snapshot() any {
	return snapshot{
		Body:     e.body,
		Food:     e.food,
		Score:    e.score,
		GameOver: e.gameOver,
		Width:    gridWidth,
		Height:   gridHeight,
	}
}
