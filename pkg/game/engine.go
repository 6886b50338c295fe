package game

import (
	"fmt"
	"time"

	"github.com/tmorrisey/pairs/pkg/game/constants"
	"github.com/tmorrisey/pairs/pkg/game/types"
)

// Config carries the tunable parameters of the state machine. The board
// bounds and delays are configuration rather than literals so tests can
// tighten them.
type Config struct {
	MinBoardSize     int
	MaxBoardSize     int
	DefaultBoardSize int
	ResizeStep       int
	HideDelay        time.Duration
	GameOverDelay    time.Duration
}

func DefaultConfig() Config {
	return Config{
		MinBoardSize:     constants.MinBoardSize,
		MaxBoardSize:     constants.MaxBoardSize,
		DefaultBoardSize: constants.DefaultBoardSize,
		ResizeStep:       constants.ResizeStep,
		HideDelay:        constants.HideDelay,
		GameOverDelay:    constants.GameOverDelay,
	}
}

// Engine holds the pure game logic: board generation and the transition
// function. It performs no I/O and owns no goroutines; the GameManager feeds
// it events one at a time.
type Engine struct {
	rng Rand
	cfg Config
	now func() time.Time
}

type NewEngineOptions struct {
	// Rand is the randomness source for board generation. Defaults to a
	// time-seeded math/rand source.
	Rand Rand
	// Config defaults to DefaultConfig().
	Config *Config
	// Now is the clock used for StartTime. Defaults to time.Now.
	Now func() time.Time
}

func NewEngine(opts NewEngineOptions) *Engine {
	rng := opts.Rand
	if rng == nil {
		rng = newTimeSeededRand()
	}
	cfg := DefaultConfig()
	if opts.Config != nil {
		cfg = *opts.Config
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Engine{
		rng: rng,
		cfg: cfg,
		now: now,
	}
}

func (e *Engine) Config() Config {
	return e.cfg
}

// NewGame constructs a fresh game at the given board size: new shuffle,
// nothing revealed, no pending choice, fresh start time.
func (e *Engine) NewGame(size int) *types.GameState {
	return &types.GameState{
		BoardSize: size,
		Revealed:  make(map[types.Position]bool),
		Solution:  Generate(e.rng, size),
		StartTime: e.now(),
	}
}

// Transition applies one event to the state and returns the resulting state
// plus at most one follow-up event to be scheduled. It is a pure function:
// the input state is never mutated, and the returned state is the input
// state itself whenever the event was a no-op.
func (e *Engine) Transition(state *types.GameState, event types.Event) (*types.GameState, *types.Scheduled) {
	switch event := event.(type) {
	case types.RevealEvent:
		return e.reveal(state, event.Position)
	case types.ResizeEvent:
		// Delta comes off the wire; anything but a single step in either
		// direction is ignored so an odd size can never reach the generator.
		if event.Delta != e.cfg.ResizeStep && event.Delta != -e.cfg.ResizeStep {
			return state, nil
		}
		size := state.BoardSize + event.Delta
		if size < e.cfg.MinBoardSize || size > e.cfg.MaxBoardSize {
			return state, nil
		}
		return e.NewGame(size), nil
	case types.HideEvent:
		// Hiding an already-hidden tile is a no-op, so a Hide that fires
		// after the tiles were re-revealed in a later turn still lands
		// safely. See the package doc for the pending-hide race.
		if !state.IsRevealed(event.First) && !state.IsRevealed(event.Second) {
			return state, nil
		}
		next := state.Copy()
		delete(next.Revealed, event.First)
		delete(next.Revealed, event.Second)
		return next, nil
	case types.GameOverEvent:
		// The win announcement is a side effect of the GameManager; the
		// state itself does not change.
		return state, nil
	case types.ResetEvent:
		return e.NewGame(e.cfg.DefaultBoardSize), nil
	case types.NewGameEvent:
		return e.NewGame(state.BoardSize), nil
	default:
		return state, nil
	}
}

func (e *Engine) reveal(state *types.GameState, pos types.Position) (*types.GameState, *types.Scheduled) {
	if pos.Row < 0 || pos.Row >= state.BoardSize || pos.Col < 0 || pos.Col >= state.BoardSize {
		return state, nil
	}
	if state.IsRevealed(pos) {
		return state, nil
	}

	if state.FirstChoice == nil {
		next := state.Copy()
		next.Revealed[pos] = true
		first := pos
		next.FirstChoice = &first
		return next, nil
	}

	first := *state.FirstChoice
	next := state.Copy()
	next.Revealed[pos] = true
	next.FirstChoice = nil

	if pairID(state, first) == pairID(state, pos) {
		if next.Won() {
			return next, &types.Scheduled{
				Delay: e.cfg.GameOverDelay,
				Event: types.GameOverEvent{},
			}
		}
		return next, nil
	}

	return next, &types.Scheduled{
		Delay: e.cfg.HideDelay,
		Event: types.HideEvent{First: first, Second: pos},
	}
}

// pairID looks up the pair id for a position inside the board. A missing
// entry means the solution map was generated wrong, which is not a state the
// engine can keep running from.
func pairID(state *types.GameState, pos types.Position) int {
	id, ok := state.Solution[pos]
	if !ok {
		panic(fmt.Sprintf("game: no pair id for position (%d,%d) on a %dx%d board",
			pos.Row, pos.Col, state.BoardSize, state.BoardSize))
	}
	return id
}
