package engine

import (
	"slices"
	"strings"
)

// Grid is a fixed-size buffer of cells surrounded by a ring of walls
type Grid struct {
	Width  int          `json:"width"`
	Height int          `json:"height"`
	Cells  [][]CellType `json:"cells"`
}

// NewGrid creates a width x height grid with walls on the outer border
// and empty cells everywhere else
func NewGrid(width, height int) *Grid {
	cells := make([][]CellType, height)
	for row := range cells {
		cells[row] = make([]CellType, width)
		for col := range cells[row] {
			if row == 0 || row == height-1 || col == 0 || col == width-1 {
				cells[row][col] = CellWall
			} else {
				cells[row][col] = CellEmpty
			}
		}
	}
	return &Grid{Width: width, Height: height, Cells: cells}
}

// Clone returns a copy with its own cell rows
func (g *Grid) Clone() *Grid {
	if g == nil {
		return nil
	}
	cells := make([][]CellType, len(g.Cells))
	for row := range g.Cells {
		cells[row] = slices.Clone(g.Cells[row])
	}
	return &Grid{Width: g.Width, Height: g.Height, Cells: cells}
}

// InBounds reports whether pos lies inside the grid, wall ring included
func (g *Grid) InBounds(pos Position) bool {
	return pos.Row >= 0 && pos.Row < g.Height && pos.Col >= 0 && pos.Col < g.Width
}

// IsBorder reports whether pos is on the wall ring
func (g *Grid) IsBorder(pos Position) bool {
	return g.InBounds(pos) && (pos.Row == 0 || pos.Row == g.Height-1 || pos.Col == 0 || pos.Col == g.Width-1)
}

// IsInterior reports whether pos is a mutable, non-wall cell
func (g *Grid) IsInterior(pos Position) bool {
	return pos.Row >= 1 && pos.Row <= g.Height-2 && pos.Col >= 1 && pos.Col <= g.Width-2
}

// At returns the cell at pos; out of bounds reads as wall
func (g *Grid) At(pos Position) CellType {
	if !g.InBounds(pos) {
		return CellWall
	}
	return g.Cells[pos.Row][pos.Col]
}

// Set overwrites one cell. Callers only write interior positions.
func (g *Grid) Set(pos Position, cell CellType) {
	g.Cells[pos.Row][pos.Col] = cell
}

// ClearInterior resets every interior cell to empty
func (g *Grid) ClearInterior() {
	for row := 1; row < g.Height-1; row++ {
		for col := 1; col < g.Width-1; col++ {
			g.Cells[row][col] = CellEmpty
		}
	}
}

// Render produces one line per row with one glyph per cell and no separators
func (g *Grid) Render(glyphs Glyphs) string {
	var b strings.Builder
	b.Grow(g.Height * (g.Width + 1))
	for _, row := range g.Cells {
		for _, cell := range row {
			b.WriteString(glyphs.For(cell))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// For returns the glyph for a cell type
func (gl Glyphs) For(cell CellType) string {
	switch cell {
	case CellWall:
		return gl.Wall
	case CellHead:
		return gl.Head
	case CellBody:
		return gl.Body
	case CellFood:
		return gl.Food
	}
	return gl.Empty
}
