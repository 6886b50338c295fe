package state

import (
	gametypes "github.com/tmorrisey/pairs/pkg/game/types"
)

// StateManager provides shared access to a session's current game state.
// Implementations must be thread-safe.
type StateManager interface {
	// Get returns a copy of the current game state.
	Get() (*gametypes.GameState, error)
	// Set sets the current game state.
	Set(gameState *gametypes.GameState) error
}
