package game

import (
	"github.com/tmorrisey/pairs/pkg/game/types"
	"github.com/tmorrisey/pairs/pkg/messages"
)

// ServerStateFromState builds the client-facing board view. Face-down tiles
// do not expose their pair id.
func ServerStateFromState(state *types.GameState) *messages.ServerState {
	tiles := make([]messages.Tile, 0, state.BoardSize*state.BoardSize)
	for row := 0; row < state.BoardSize; row++ {
		for col := 0; col < state.BoardSize; col++ {
			pos := types.Position{Row: row, Col: col}
			tile := messages.Tile{
				Row: row,
				Col: col,
			}
			if state.IsRevealed(pos) {
				tile.Revealed = true
				id := pairID(state, pos)
				tile.PairID = &id
			}
			tiles = append(tiles, tile)
		}
	}
	return &messages.ServerState{
		BoardSize:     state.BoardSize,
		Tiles:         tiles,
		RevealedCount: len(state.Revealed),
		Won:           state.Won(),
	}
}
