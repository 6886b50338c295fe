package state

import (
	"fmt"
	"sync"

	gametypes "github.com/tmorrisey/pairs/pkg/game/types"
)

type InMemoryStateManager struct {
	lock      sync.RWMutex
	gameState *gametypes.GameState
}

func NewInMemoryStateManager(initial *gametypes.GameState) *InMemoryStateManager {
	return &InMemoryStateManager{
		gameState: initial,
	}
}

func (m *InMemoryStateManager) Get() (*gametypes.GameState, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()
	if m.gameState == nil {
		return nil, fmt.Errorf("no game state has been set")
	}
	return m.gameState.Copy(), nil
}

func (m *InMemoryStateManager) Set(gameState *gametypes.GameState) error {
	if gameState == nil {
		return fmt.Errorf("game state is nil")
	}
	m.lock.Lock()
	defer m.lock.Unlock()
	m.gameState = gameState
	return nil
}
