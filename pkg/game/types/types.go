package types

import "time"

// Position addresses a single tile on the board by zero-based coordinates.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// GameState is the full state of one game of pairs. Transitions never mutate
// a GameState in place; they return a fresh copy, so a pointer handed out to
// readers stays valid.
type GameState struct {
	// BoardSize is the current grid dimension. Always even.
	BoardSize int
	// Revealed holds the tiles currently face up.
	Revealed map[Position]bool
	// FirstChoice is the pending first tile of the current turn, nil between turns.
	FirstChoice *Position
	// Solution assigns each tile its pair id. Each id appears at exactly two
	// positions. Immutable once generated.
	Solution map[Position]int
	// StartTime is when this board was generated, used to compute the
	// elapsed time on a win.
	StartTime time.Time
}

func (g *GameState) Copy() *GameState {
	next := &GameState{
		BoardSize: g.BoardSize,
		Revealed:  make(map[Position]bool, len(g.Revealed)),
		Solution:  g.Solution,
		StartTime: g.StartTime,
	}
	for pos := range g.Revealed {
		next.Revealed[pos] = true
	}
	if g.FirstChoice != nil {
		first := *g.FirstChoice
		next.FirstChoice = &first
	}
	return next
}

func (g *GameState) IsRevealed(pos Position) bool {
	return g.Revealed[pos]
}

// Won reports whether every tile on the board is face up.
func (g *GameState) Won() bool {
	return len(g.Revealed) == g.BoardSize*g.BoardSize
}
