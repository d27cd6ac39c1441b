// Package tetris ports the prototype's common/game_rules.py TetrisGame
// into the match service's compiled-in Engine contract: a 7-bag
// randomizer, a 10x20 board, gravity, line clears and the same scoring
// table.
package tetris

import (
	"math/rand"

	"github.com/udisondev/gamehub/internal/match"
)

const (
	boardWidth  = 10
	boardHeight = 20
)

// scoring maps lines-cleared-in-one-lock to points, exactly
// game_rules.py's SCORING table.
var scoring = map[int]int{0: 0, 1: 100, 2: 300, 3: 500, 4: 800}

type point struct{ Row, Col int }

// shapeID indexes into pieceShapes: 0 I, 1 O, 2 T, 3 J, 4 L, 5 S, 6 Z.
type shapeID int

const numShapes = 7

// pieceShapes[shape][rotation] is a list of (row, col) offsets from the
// piece's pivot, transcribed directly from PIECE_SHAPES.
var pieceShapes = [numShapes][][]point{
	{ // I
		{{0, -2}, {0, -1}, {0, 0}, {0, 1}},
		{{-2, 0}, {-1, 0}, {0, 0}, {1, 0}},
	},
	{ // O
		{{0, 0}, {0, 1}, {1, 0}, {1, 1}},
	},
	{ // T
		{{0, -1}, {0, 0}, {0, 1}, {1, 0}},
		{{-1, 0}, {0, 0}, {1, 0}, {0, -1}},
		{{0, -1}, {0, 0}, {0, 1}, {-1, 0}},
		{{-1, 0}, {0, 0}, {1, 0}, {0, 1}},
	},
	{ // J
		{{0, -1}, {0, 0}, {0, 1}, {-1, 1}},
		{{-1, 0}, {0, 0}, {1, 0}, {1, 1}},
		{{0, -1}, {0, 0}, {0, 1}, {1, -1}},
		{{-1, -1}, {-1, 0}, {0, 0}, {1, 0}},
	},
	{ // L
		{{0, -1}, {0, 0}, {0, 1}, {-1, -1}},
		{{-1, 0}, {0, 0}, {1, 0}, {1, -1}},
		{{0, -1}, {0, 0}, {0, 1}, {1, 1}},
		{{-1, 1}, {-1, 0}, {0, 0}, {1, 0}},
	},
	{ // S
		{{0, -1}, {0, 0}, {1, 0}, {1, 1}},
		{{-1, 1}, {0, 0}, {0, 1}, {1, 0}},
	},
	{ // Z
		{{0, 0}, {0, 1}, {1, -1}, {1, 0}},
		{{-1, 0}, {0, 0}, {0, 1}, {1, 1}},
	},
}

// piece is a single falling tetromino.
type piece struct {
	shape    shapeID
	rotation int
	x, y     int
}

func newPiece(shape shapeID) *piece {
	y := 0
	if shape == 0 { // 'I' spawns one row lower
		y = 1
	}
	return &piece{shape: shape, x: boardWidth / 2, y: y}
}

func (p *piece) blocks() []point {
	shapes := pieceShapes[p.shape]
	shape := shapes[p.rotation%len(shapes)]
	out := make([]point, len(shape))
	for i, o := range shape {
		out[i] = point{Row: p.y + o.Row, Col: p.x + o.Col}
	}
	return out
}

func (p *piece) nextRotationBlocks() []point {
	shapes := pieceShapes[p.shape]
	next := (p.rotation + 1) % len(shapes)
	shape := shapes[next]
	out := make([]point, len(shape))
	for i, o := range shape {
		out[i] = point{Row: p.y + o.Row, Col: p.x + o.Col}
	}
	return out
}

// Engine implements match.Engine for Tetris. One instance manages one
// seat's board; the match server runs a pair seeded identically so both
// boards see the same piece sequence.
type Engine struct {
	board     [boardHeight][boardWidth]int
	score     int
	lines     int
	gameOver  bool
	rng       *rand.Rand
	bag       []shapeID
	current   *piece
	next      shapeID
}

var _ match.Engine = (*Engine)(nil)

func New() match.Engine {
	return &Engine{}
}

func init() {
	match.Register("tetris", New)
}

func (e *Engine) Reset(seed int64) {
	e.board = [boardHeight][boardWidth]int{}
	e.score = 0
	e.lines = 0
	e.gameOver = false
	e.rng = rand.New(rand.NewSource(seed))
	e.bag = nil
	e.next = e.drawFromBag()
	e.spawn()
}

// drawFromBag implements the 7-bag randomizer: refill and shuffle when
// empty, then pop one shape.
func (e *Engine) drawFromBag() shapeID {
	if len(e.bag) == 0 {
		e.bag = make([]shapeID, numShapes)
		for i := range e.bag {
			e.bag[i] = shapeID(i)
		}
		e.rng.Shuffle(len(e.bag), func(i, j int) {
			e.bag[i], e.bag[j] = e.bag[j], e.bag[i]
		})
	}
	shape := e.bag[len(e.bag)-1]
	e.bag = e.bag[:len(e.bag)-1]
	return shape
}

// spawn promotes next to current and checks for a spawn collision (top out).
func (e *Engine) spawn() {
	e.current = newPiece(e.next)
	e.next = e.drawFromBag()
	if e.collides(e.current.blocks()) {
		e.gameOver = true
		e.current = nil
	}
}

func (e *Engine) collides(blocks []point) bool {
	for _, b := range blocks {
		if b.Col < 0 || b.Col >= boardWidth {
			return true
		}
		if b.Row >= boardHeight {
			return true
		}
		if b.Row >= 0 && e.board[b.Row][b.Col] != 0 {
			return true
		}
	}
	return false
}

func (e *Engine) lock() {
	if e.current == nil {
		return
	}
	for _, b := range e.current.blocks() {
		if b.Row >= 0 && b.Row < boardHeight && b.Col >= 0 && b.Col < boardWidth {
			e.board[b.Row][b.Col] = int(e.current.shape) + 1
		}
	}
	e.clearLines()
	e.spawn()
}

func (e *Engine) clearLines() {
	var kept [][boardWidth]int
	cleared := 0
	for r := 0; r < boardHeight; r++ {
		full := true
		for c := 0; c < boardWidth; c++ {
			if e.board[r][c] == 0 {
				full = false
				break
			}
		}
		if full {
			cleared++
		} else {
			kept = append(kept, e.board[r])
		}
	}
	if cleared == 0 {
		return
	}
	e.score += scoring[cleared]
	e.lines += cleared

	var newBoard [boardHeight][boardWidth]int
	// kept rows were collected top-down; place them at the bottom of
	// the new board, in the same order, with empty rows added on top.
	for i, row := range kept {
		newBoard[boardHeight-len(kept)+i] = row
	}
	e.board = newBoard
}

func (e *Engine) Apply(action string) {
	if e.gameOver || e.current == nil {
		return
	}
	switch action {
	case "MOVE_LEFT":
		e.move(-1)
	case "MOVE_RIGHT":
		e.move(1)
	case "ROTATE":
		e.rotate()
	case "SOFT_DROP":
		e.softDrop()
	case "HARD_DROP":
		e.hardDrop()
	}
}

func (e *Engine) move(dx int) {
	blocks := e.current.blocks()
	moved := make([]point, len(blocks))
	for i, b := range blocks {
		moved[i] = point{Row: b.Row, Col: b.Col + dx}
	}
	if !e.collides(moved) {
		e.current.x += dx
	}
}

func (e *Engine) rotate() {
	if !e.collides(e.current.nextRotationBlocks()) {
		e.current.rotation++
	}
}

func (e *Engine) softDrop() {
	blocks := e.current.blocks()
	moved := make([]point, len(blocks))
	for i, b := range blocks {
		moved[i] = point{Row: b.Row + 1, Col: b.Col}
	}
	if e.collides(moved) {
		e.lock()
	} else {
		e.current.y++
	}
}

func (e *Engine) hardDrop() {
	for {
		blocks := e.current.blocks()
		moved := make([]point, len(blocks))
		for i, b := range blocks {
			moved[i] = point{Row: b.Row + 1, Col: b.Col}
		}
		if e.collides(moved) {
			break
		}
		e.current.y++
	}
	e.lock()
}

func (e *Engine) Tick() {
	if e.gameOver {
		return
	}
	e.softDrop()
}

func (e *Engine) Over() bool {
	return e.gameOver
}

func (e *Engine) Stats() match.PlayerStats {
	return match.PlayerStats{Score: e.score, Lines: e.lines}
}

// pieceSnapshot is the JSON projection of a falling or preview piece.
type pieceSnapshot struct {
	ShapeID int       `json:"shape_id"`
	Blocks  [][2]int  `json:"blocks"`
}

// stateSnapshot mirrors get_state_snapshot's dict shape exactly so the
// player client's rendering logic can stay a straight port.
type stateSnapshot struct {
	Board       [boardHeight][boardWidth]int `json:"board"`
	Score       int                          `json:"score"`
	Lines       int                          `json:"lines"`
	GameOver    bool                         `json:"game_over"`
	CurrentPiece *pieceSnapshot              `json:"current_piece"`
	NextPiece   pieceSnapshot                `json:"next_piece"`
}

func (e *Engine) Snapshot() any {
	var current *pieceSnapshot
	if e.current != nil {
		current = &pieceSnapshot{ShapeID: int(e.current.shape), Blocks: toPairs(e.current.blocks())}
	}

	nextBlocks := pieceShapes[e.next][0]
	pairs := make([][2]int, len(nextBlocks))
	for i, o := range nextBlocks {
		pairs[i] = [2]int{o.Row, o.Col + 3}
	}

	return stateSnapshot{
		Board:        e.board,
		Score:        e.score,
		Lines:        e.lines,
		GameOver:     e.gameOver,
		CurrentPiece: current,
		NextPiece:    pieceSnapshot{ShapeID: int(e.next), Blocks: pairs},
	}
}

func toPairs(blocks []point) [][2]int {
	out := make([][2]int, len(blocks))
	for i, b := range blocks {
		out[i] = [2]int{b.Row, b.Col}
	}
	return out
}
