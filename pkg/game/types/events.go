package types

import "time"

// Event is an input processed by the game state machine. Events arrive
// through the session's serialized queue, either from the player or from the
// delayed-dispatch scheduler.
type Event interface {
	event()
}

// RevealEvent is a tap on a tile.
type RevealEvent struct {
	Position Position
}

// ResizeEvent requests growing or shrinking the board by Delta rows/columns.
// Out-of-bounds requests are ignored.
type ResizeEvent struct {
	Delta int
}

// HideEvent turns two mismatched tiles face down again. It is scheduled by
// the state machine, never sent by the player.
type HideEvent struct {
	First  Position
	Second Position
}

// GameOverEvent announces a cleared board. Scheduled by the state machine
// when the last tile is revealed.
type GameOverEvent struct{}

// ResetEvent starts a new game at the default board size.
type ResetEvent struct{}

// NewGameEvent reshuffles a new game at the current board size.
type NewGameEvent struct{}

func (RevealEvent) event()   {}
func (ResizeEvent) event()   {}
func (HideEvent) event()     {}
func (GameOverEvent) event() {}
func (ResetEvent) event()    {}
func (NewGameEvent) event()  {}

// Scheduled is a request from the state machine to have Event redelivered
// after Delay. The state machine only requests scheduling; it never sleeps.
type Scheduled struct {
	Delay time.Duration
	Event Event
}
