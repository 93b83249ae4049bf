package snake

import (
	"math/rand"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Spawner places food on free cells. Placement is uniform over the free
// cells and fully determined by the seed.
type Spawner struct {
	rng *rand.Rand
}

// NewSpawner creates a spawner seeded with seed.
func NewSpawner(seed int64) *Spawner {
	return &Spawner{rng: rand.New(rand.NewSource(seed))}
}

// Spawn picks a cell not occupied by the body. It returns false when the
// body covers the whole grid.
func (s *Spawner) Spawn(occupied Body, g core.Grid) (core.Cell, bool) {
	taken := occupied.Set()

	// Collect all free cells
	free := make([]core.Cell, 0, g.Cells()-len(taken))
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			c := core.Cell{X: x, Y: y}
			if _, ok := taken[c]; !ok {
				free = append(free, c)
			}
		}
	}

	if len(free) == 0 {
		return core.Cell{}, false
	}
	return free[s.rng.Intn(len(free))], true
}
