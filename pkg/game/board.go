package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/tmorrisey/pairs/pkg/game/types"
)

// Rand is the randomness source consumed by the board generator. Tests
// substitute a deterministic implementation.
type Rand interface {
	// IntN returns a uniform random int in [0, n). Panics if n <= 0.
	IntN(n int) int
}

type mathRand struct {
	r *rand.Rand
}

func (m mathRand) IntN(n int) int {
	return m.r.Intn(n)
}

// NewMathRand returns a Rand backed by math/rand with the given seed.
func NewMathRand(seed int64) Rand {
	return mathRand{r: rand.New(rand.NewSource(seed))}
}

func newTimeSeededRand() Rand {
	return NewMathRand(time.Now().UnixNano())
}

// Generate produces a pairing assignment for a size x size board: each pair
// id in [0, size*size/2) is assigned to exactly two positions, and every
// position gets exactly one id. The id for a pair is bound to one position
// drawn without replacement from the grid and one position from the
// complement of that draw.
//
// size must be even and at least 2; anything else is a caller bug.
func Generate(rng Rand, size int) map[types.Position]int {
	if size < 2 || size%2 != 0 {
		panic(fmt.Sprintf("game: cannot pair up a %dx%d board", size, size))
	}

	cells := make([]types.Position, 0, size*size)
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			cells = append(cells, types.Position{Row: row, Col: col})
		}
	}

	// Partial Fisher-Yates: the first half of cells becomes a uniform draw
	// without replacement.
	numPairs := size * size / 2
	for i := 0; i < numPairs; i++ {
		j := i + rng.IntN(len(cells)-i)
		cells[i], cells[j] = cells[j], cells[i]
	}
	drawn := cells[:numPairs]

	inDraw := make(map[types.Position]bool, numPairs)
	for _, pos := range drawn {
		inDraw[pos] = true
	}

	// The complement keeps row-major order as its enumeration.
	rest := make([]types.Position, 0, numPairs)
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			pos := types.Position{Row: row, Col: col}
			if !inDraw[pos] {
				rest = append(rest, pos)
			}
		}
	}

	solution := make(map[types.Position]int, size*size)
	for i := 0; i < numPairs; i++ {
		solution[drawn[i]] = i
		solution[rest[i]] = i
	}
	return solution
}
