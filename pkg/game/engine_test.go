package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmorrisey/pairs/pkg/game/types"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	return NewEngine(NewEngineOptions{
		Rand: NewMathRand(1),
	})
}

// positionsByPairID groups board positions by their pair id.
func positionsByPairID(state *types.GameState) map[int][]types.Position {
	byID := make(map[int][]types.Position)
	for row := 0; row < state.BoardSize; row++ {
		for col := 0; col < state.BoardSize; col++ {
			pos := types.Position{Row: row, Col: col}
			id := state.Solution[pos]
			byID[id] = append(byID[id], pos)
		}
	}
	return byID
}

func TestTransitionFirstReveal(t *testing.T) {
	engine := newTestEngine(t)
	state := engine.NewGame(4)
	pos := types.Position{Row: 1, Col: 2}

	next, scheduled := engine.Transition(state, types.RevealEvent{Position: pos})

	assert.Nil(t, scheduled)
	assert.True(t, next.IsRevealed(pos))
	require.NotNil(t, next.FirstChoice)
	assert.Equal(t, pos, *next.FirstChoice)

	// The input state is untouched.
	assert.Empty(t, state.Revealed)
	assert.Nil(t, state.FirstChoice)
}

func TestTransitionMatch(t *testing.T) {
	engine := newTestEngine(t)
	state := engine.NewGame(4)
	pair := positionsByPairID(state)[0]
	require.Len(t, pair, 2)

	state, scheduled := engine.Transition(state, types.RevealEvent{Position: pair[0]})
	require.Nil(t, scheduled)
	state, scheduled = engine.Transition(state, types.RevealEvent{Position: pair[1]})

	assert.Nil(t, scheduled, "a match on an unfinished board schedules nothing")
	assert.True(t, state.IsRevealed(pair[0]))
	assert.True(t, state.IsRevealed(pair[1]))
	assert.Nil(t, state.FirstChoice)
}

func TestTransitionMismatch(t *testing.T) {
	engine := newTestEngine(t)
	state := engine.NewGame(4)
	byID := positionsByPairID(state)
	first := byID[0][0]
	second := byID[1][0]

	state, _ = engine.Transition(state, types.RevealEvent{Position: first})
	state, scheduled := engine.Transition(state, types.RevealEvent{Position: second})

	require.NotNil(t, scheduled)
	assert.Equal(t, engine.Config().HideDelay, scheduled.Delay)
	hide, ok := scheduled.Event.(types.HideEvent)
	require.True(t, ok, "a mismatch schedules a HideEvent, got %T", scheduled.Event)
	assert.Equal(t, first, hide.First)
	assert.Equal(t, second, hide.Second)

	// Both stay visible until the hide fires.
	assert.True(t, state.IsRevealed(first))
	assert.True(t, state.IsRevealed(second))
	assert.Nil(t, state.FirstChoice)

	state, scheduled = engine.Transition(state, hide)
	assert.Nil(t, scheduled)
	assert.False(t, state.IsRevealed(first))
	assert.False(t, state.IsRevealed(second))
	assert.Empty(t, state.Revealed, "the hide removes exactly the two mismatched tiles")
}

func TestTransitionHideIsIdempotent(t *testing.T) {
	engine := newTestEngine(t)
	state := engine.NewGame(4)

	next, scheduled := engine.Transition(state, types.HideEvent{
		First:  types.Position{Row: 0, Col: 0},
		Second: types.Position{Row: 0, Col: 1},
	})

	assert.Nil(t, scheduled)
	assert.Empty(t, next.Revealed)
}

func TestTransitionWin(t *testing.T) {
	engine := newTestEngine(t)
	state := engine.NewGame(2)
	byID := positionsByPairID(state)
	require.Len(t, byID, 2)

	var scheduled *types.Scheduled
	state, scheduled = engine.Transition(state, types.RevealEvent{Position: byID[0][0]})
	require.Nil(t, scheduled)
	state, scheduled = engine.Transition(state, types.RevealEvent{Position: byID[0][1]})
	require.Nil(t, scheduled)
	state, scheduled = engine.Transition(state, types.RevealEvent{Position: byID[1][0]})
	require.Nil(t, scheduled)
	state, scheduled = engine.Transition(state, types.RevealEvent{Position: byID[1][1]})

	require.NotNil(t, scheduled, "revealing the final pair schedules the game over")
	assert.Equal(t, engine.Config().GameOverDelay, scheduled.Delay)
	assert.IsType(t, types.GameOverEvent{}, scheduled.Event)
	assert.True(t, state.Won())

	// GameOver itself changes nothing and schedules nothing more.
	next, scheduled := engine.Transition(state, types.GameOverEvent{})
	assert.Same(t, state, next)
	assert.Nil(t, scheduled)
}

func TestTransitionRevealAlreadyRevealed(t *testing.T) {
	engine := newTestEngine(t)
	state := engine.NewGame(4)
	pos := types.Position{Row: 0, Col: 0}

	state, _ = engine.Transition(state, types.RevealEvent{Position: pos})
	next, scheduled := engine.Transition(state, types.RevealEvent{Position: pos})

	assert.Same(t, state, next, "a tap on a revealed tile is ignored")
	assert.Nil(t, scheduled)
}

func TestTransitionRevealOutOfBounds(t *testing.T) {
	engine := newTestEngine(t)
	state := engine.NewGame(4)

	next, scheduled := engine.Transition(state, types.RevealEvent{Position: types.Position{Row: 4, Col: 0}})
	assert.Same(t, state, next)
	assert.Nil(t, scheduled)

	next, scheduled = engine.Transition(state, types.RevealEvent{Position: types.Position{Row: 0, Col: -1}})
	assert.Same(t, state, next)
	assert.Nil(t, scheduled)
}

func TestTransitionResize(t *testing.T) {
	engine := newTestEngine(t)

	t.Run("grow within bounds", func(t *testing.T) {
		state := engine.NewGame(4)
		state, _ = engine.Transition(state, types.RevealEvent{Position: types.Position{Row: 0, Col: 0}})

		next, scheduled := engine.Transition(state, types.ResizeEvent{Delta: 2})

		assert.Nil(t, scheduled)
		assert.Equal(t, 6, next.BoardSize)
		assert.Empty(t, next.Revealed)
		assert.Nil(t, next.FirstChoice)
		assert.Len(t, next.Solution, 36)
	})

	t.Run("grow past maximum is a no-op", func(t *testing.T) {
		state := engine.NewGame(6)
		next, scheduled := engine.Transition(state, types.ResizeEvent{Delta: 2})
		assert.Same(t, state, next)
		assert.Nil(t, scheduled)
	})

	t.Run("shrink past minimum is a no-op", func(t *testing.T) {
		state := engine.NewGame(2)
		next, scheduled := engine.Transition(state, types.ResizeEvent{Delta: -2})
		assert.Same(t, state, next)
		assert.Nil(t, scheduled)
	})

	t.Run("odd delta is a no-op", func(t *testing.T) {
		state := engine.NewGame(4)
		var next *types.GameState
		var scheduled *types.Scheduled
		assert.NotPanics(t, func() {
			next, scheduled = engine.Transition(state, types.ResizeEvent{Delta: 1})
		})
		assert.Same(t, state, next)
		assert.Nil(t, scheduled)
	})

	t.Run("zero delta is a no-op, not a reshuffle", func(t *testing.T) {
		state := engine.NewGame(4)
		next, scheduled := engine.Transition(state, types.ResizeEvent{Delta: 0})
		assert.Same(t, state, next)
		assert.Nil(t, scheduled)
	})

	t.Run("multi-step delta is a no-op", func(t *testing.T) {
		state := engine.NewGame(2)
		next, scheduled := engine.Transition(state, types.ResizeEvent{Delta: 4})
		assert.Same(t, state, next)
		assert.Nil(t, scheduled)
	})
}

func TestTransitionReset(t *testing.T) {
	engine := newTestEngine(t)
	state := engine.NewGame(6)

	next, scheduled := engine.Transition(state, types.ResetEvent{})

	assert.Nil(t, scheduled)
	assert.Equal(t, engine.Config().DefaultBoardSize, next.BoardSize)
	assert.Empty(t, next.Revealed)
}

func TestTransitionNewGameReshuffles(t *testing.T) {
	engine := newTestEngine(t)
	state := engine.NewGame(4)

	next, scheduled := engine.Transition(state, types.NewGameEvent{})

	assert.Nil(t, scheduled)
	assert.Equal(t, 4, next.BoardSize)
	assert.Empty(t, next.Revealed)
	assert.NotEqual(t, state.Solution, next.Solution, "a new game should be a different shuffle")
}

// TestPendingHideRace pins down the inherited behavior: a Hide that fires
// after a new turn has started still removes the tiles it was scheduled
// for, even though one of them may belong to the new turn.
func TestPendingHideRace(t *testing.T) {
	engine := newTestEngine(t)
	state := engine.NewGame(4)
	byID := positionsByPairID(state)
	first := byID[0][0]
	second := byID[1][0]
	third := byID[2][0]

	state, _ = engine.Transition(state, types.RevealEvent{Position: first})
	state, scheduled := engine.Transition(state, types.RevealEvent{Position: second})
	require.NotNil(t, scheduled)
	hide := scheduled.Event.(types.HideEvent)

	// The player taps a third tile before the hide fires.
	state, _ = engine.Transition(state, types.RevealEvent{Position: third})
	require.NotNil(t, state.FirstChoice)

	state, _ = engine.Transition(state, hide)
	assert.False(t, state.IsRevealed(first))
	assert.False(t, state.IsRevealed(second))
	assert.True(t, state.IsRevealed(third))
	assert.Equal(t, third, *state.FirstChoice, "the new turn is still in progress")
}

func TestTransitionPanicsOnCorruptSolution(t *testing.T) {
	engine := newTestEngine(t)
	state := engine.NewGame(4)
	state, _ = engine.Transition(state, types.RevealEvent{Position: types.Position{Row: 0, Col: 0}})

	corrupt := state.Copy()
	corrupt.Solution = map[types.Position]int{}

	assert.Panics(t, func() {
		engine.Transition(corrupt, types.RevealEvent{Position: types.Position{Row: 1, Col: 1}})
	})
}

func TestNewGameStartTimeUsesClock(t *testing.T) {
	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	engine := NewEngine(NewEngineOptions{
		Rand: NewMathRand(1),
		Now:  func() time.Time { return start },
	})

	state := engine.NewGame(4)
	assert.Equal(t, start, state.StartTime)
}
