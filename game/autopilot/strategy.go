package autopilot

import (
	"github.com/wricardo/terminal-snake/game/engine"
)

// Strategy picks moves with a breadth-first search toward the food. When the
// food is unreachable it takes the safe move with the most room behind it.
type Strategy struct {
	wrapWalls bool
}

// NewStrategy creates a strategy for a board. wrapWalls is true when the
// board wraps instead of ending the game at the wall.
func NewStrategy(wrapWalls bool) *Strategy {
	return &Strategy{wrapWalls: wrapWalls}
}

// NextMove returns the direction for the next tick. It falls back to the
// current direction when every move is fatal.
func (s *Strategy) NextMove(state *engine.GameState) engine.Direction {
	if state == nil || state.Snake == nil || state.Grid == nil {
		return engine.Right
	}

	blocked := s.blockedCells(state)

	if state.Food != nil && !state.Food.Consumed {
		if dir, ok := s.pathToward(state, blocked, state.Food.Position); ok {
			return dir
		}
	}

	best, bestRoom := state.Direction, -1
	for _, dir := range engine.Directions {
		next, ok := s.step(state.Grid, state.Snake.Head, dir)
		if !ok || blocked[next] {
			continue
		}
		if room := s.reachable(state.Grid, blocked, next); room > bestRoom {
			best, bestRoom = dir, room
		}
	}
	return best
}

// blockedCells marks the body except the tail, which moves away on the
// next tick unless the snake eats
func (s *Strategy) blockedCells(state *engine.GameState) map[engine.Position]bool {
	body := state.Snake.Body
	blocked := make(map[engine.Position]bool, len(body))
	for i, pos := range body {
		if i == len(body)-1 {
			break
		}
		blocked[pos] = true
	}
	return blocked
}

// step returns the cell the head reaches moving dir from pos, and false when
// that move hits a deadly wall
func (s *Strategy) step(grid *engine.Grid, pos engine.Position, dir engine.Direction) (engine.Position, bool) {
	dRow, dCol := dir.Delta()
	next := pos.Add(dRow, dCol)
	if grid.IsInterior(next) {
		return next, true
	}
	if !s.wrapWalls {
		return next, false
	}
	return engine.WrapInterior(next, grid), true
}

// pathToward returns the first move of a shortest path from the head to target
func (s *Strategy) pathToward(state *engine.GameState, blocked map[engine.Position]bool, target engine.Position) (engine.Direction, bool) {
	type node struct {
		pos   engine.Position
		first engine.Direction
	}

	head := state.Snake.Head
	seen := map[engine.Position]bool{head: true}
	queue := make([]node, 0, 64)

	for _, dir := range engine.Directions {
		next, ok := s.step(state.Grid, head, dir)
		if !ok || blocked[next] || seen[next] {
			continue
		}
		if next == target {
			return dir, true
		}
		seen[next] = true
		queue = append(queue, node{pos: next, first: dir})
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, dir := range engine.Directions {
			next, ok := s.step(state.Grid, cur.pos, dir)
			if !ok || blocked[next] || seen[next] {
				continue
			}
			if next == target {
				return cur.first, true
			}
			seen[next] = true
			queue = append(queue, node{pos: next, first: cur.first})
		}
	}
	return "", false
}

// reachable counts the free cells connected to start
func (s *Strategy) reachable(grid *engine.Grid, blocked map[engine.Position]bool, start engine.Position) int {
	seen := map[engine.Position]bool{start: true}
	stack := []engine.Position{start}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, dir := range engine.Directions {
			next, ok := s.step(grid, cur, dir)
			if !ok || blocked[next] || seen[next] {
				continue
			}
			seen[next] = true
			stack = append(stack, next)
		}
	}
	return len(seen)
}
