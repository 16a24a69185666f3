package engine

import "slices"

// Snake is the player-controlled entity. Body is ordered from the segment
// nearest the head to the tail.
type Snake struct {
	Head  Position   `json:"head"`
	Body  []Position `json:"body"`
	Speed int        `json:"speed"` // milliseconds between ticks
}

// MoveOutcome describes what a single move did
type MoveOutcome struct {
	From        Position  `json:"from"`
	To          Position  `json:"to"`
	Eaten       bool      `json:"eaten"`
	DroppedTail *Position `json:"dropped_tail,omitempty"`
}

// NewSnake creates a snake at a fixed position
func NewSnake(head Position, body []Position, speed int) *Snake {
	return &Snake{
		Head:  head,
		Body:  slices.Clone(body),
		Speed: speed,
	}
}

// Clone returns a copy that shares no memory with s
func (s *Snake) Clone() *Snake {
	if s == nil {
		return nil
	}
	return &Snake{Head: s.Head, Body: slices.Clone(s.Body), Speed: s.Speed}
}

// Length returns the number of body segments, head excluded
func (s *Snake) Length() int {
	return len(s.Body)
}

// Occupies reports whether pos is the head or any body segment
func (s *Snake) Occupies(pos Position) bool {
	return s.Head == pos || slices.Contains(s.Body, pos)
}

// IsAlive is false once the head shares a cell with a body segment
func (s *Snake) IsAlive() bool {
	return !slices.Contains(s.Body, s.Head)
}

// NextHead returns where the head lands after one step in direction
func (s *Snake) NextHead(direction Direction) Position {
	dRow, dCol := direction.Delta()
	return s.Head.Add(dRow, dCol)
}

// Move advances the snake one cell. The previous head becomes the first body
// segment; the tail is dropped unless the new head lands on the food, in
// which case the snake grows by one and the food is marked consumed.
func (s *Snake) Move(direction Direction, food *Food, grid *Grid) MoveOutcome {
	return s.MoveTo(s.NextHead(direction), food, grid)
}

// MoveTo is Move with an already resolved head position
func (s *Snake) MoveTo(newHead Position, food *Food, grid *Grid) MoveOutcome {
	previous := s.Head
	s.Head = newHead
	eaten := !food.Consumed && newHead == food.Position

	s.Body = slices.Insert(s.Body, 0, previous)

	outcome := MoveOutcome{From: previous, To: newHead, Eaten: eaten}
	if !eaten {
		tail := s.Body[len(s.Body)-1]
		s.Body = s.Body[:len(s.Body)-1]
		grid.Set(tail, CellEmpty)
		outcome.DroppedTail = &tail
	}
	if eaten {
		food.Consumed = true
	}

	grid.Set(newHead, CellHead)
	grid.Set(previous, CellBody)
	return outcome
}

// Overlay writes the head and body glyphs onto the grid
func (s *Snake) Overlay(grid *Grid) {
	for _, segment := range s.Body {
		grid.Set(segment, CellBody)
	}
	grid.Set(s.Head, CellHead)
}
