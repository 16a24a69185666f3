package engine

// FreeCells lists the interior cells the snake does not occupy, row-major
func FreeCells(grid *Grid, snake *Snake) []Position {
	free := make([]Position, 0, (grid.Width-2)*(grid.Height-2))
	for row := 1; row < grid.Height-1; row++ {
		for col := 1; col < grid.Width-1; col++ {
			pos := Position{Row: row, Col: col}
			if !snake.Occupies(pos) {
				free = append(free, pos)
			}
		}
	}
	return free
}

// ManhattanDistance calculates the Manhattan distance between two positions
func ManhattanDistance(from, to Position) int {
	dRow := from.Row - to.Row
	if dRow < 0 {
		dRow = -dRow
	}
	dCol := from.Col - to.Col
	if dCol < 0 {
		dCol = -dCol
	}
	return dRow + dCol
}

// CountCellType counts the cells of a specific type in the grid
func CountCellType(grid *Grid, cellType CellType) int {
	count := 0
	for _, row := range grid.Cells {
		for _, cell := range row {
			if cell == cellType {
				count++
			}
		}
	}
	return count
}

// WrapInterior maps a position that stepped onto the wall ring to the
// opposite interior edge. Interior positions are returned unchanged.
func WrapInterior(pos Position, grid *Grid) Position {
	switch {
	case pos.Row <= 0:
		pos.Row = grid.Height - 2
	case pos.Row >= grid.Height-1:
		pos.Row = 1
	}
	switch {
	case pos.Col <= 0:
		pos.Col = grid.Width - 2
	case pos.Col >= grid.Width-1:
		pos.Col = 1
	}
	return pos
}
