package engine

import "math/rand/v2"

// Food is the single piece of food on the grid
type Food struct {
	Position Position `json:"position"`
	Consumed bool     `json:"consumed"`
}

// NewFood places food at a fixed starting position
func NewFood(pos Position) *Food {
	return &Food{Position: pos}
}

// Clone returns a copy of f
func (f *Food) Clone() *Food {
	if f == nil {
		return nil
	}
	c := *f
	return &c
}

// RespawnIfNeeded moves consumed food to a random interior cell that the
// snake does not occupy. Sampling gives up after MaxSpawnAttempts and picks
// uniformly among the remaining free cells instead. It returns false only
// when the snake leaves no free interior cell, in which case the food stays
// consumed.
func (f *Food) RespawnIfNeeded(snake *Snake, grid *Grid, rng *rand.Rand) bool {
	if !f.Consumed {
		return true
	}

	for attempt := 0; attempt < MaxSpawnAttempts; attempt++ {
		pos := Position{
			Row: 1 + rng.IntN(grid.Height-2),
			Col: 1 + rng.IntN(grid.Width-2),
		}
		if !snake.Occupies(pos) {
			f.Position = pos
			f.Consumed = false
			return true
		}
	}

	free := FreeCells(grid, snake)
	if len(free) == 0 {
		return false
	}
	f.Position = free[rng.IntN(len(free))]
	f.Consumed = false
	return true
}

// Overlay writes the food glyph unless the food has been eaten
func (f *Food) Overlay(grid *Grid) {
	if f.Consumed {
		return
	}
	grid.Set(f.Position, CellFood)
}
