package engine

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"
)

// Engine provides the main interface for game operations
type Engine interface {
	// Game state management
	GetState() *GameState
	SetState(state *GameState) error
	Reset() *GameState
	IsGameOver() bool
	GetScore() int
	GetSnake() *Snake
	GetFood() *Food
	GetDirection() Direction

	// Tick phases
	PrepareFrame()
	Render() string
	Step(direction Direction) (MoveOutcome, bool)

	// Movement operations
	Move(direction string) bool
	BulkMove(moves []string) []bool

	// Configuration
	GetConfig() *GameConfig
	SetConfig(config *GameConfig) error

	// History
	GetMoveHistory() []MoveHistoryEntry
	GetLastMove() *MoveHistoryEntry
}

// GameEngine implements the Engine interface
type GameEngine struct {
	state  *GameState
	config *GameConfig
	rng    *rand.Rand
}

// NewEngine creates a new game engine with the provided configuration
func NewEngine(config *GameConfig) (*GameEngine, error) {
	if err := ValidateGameConfig(config); err != nil {
		return nil, err
	}

	engine := &GameEngine{
		config: config,
		rng:    newRand(config.Seed),
	}
	engine.state = InitGameStateFromConfig(config)
	engine.PrepareFrame()

	return engine, nil
}

// NewEngineWithDefaults creates a new game engine on the classic board
func NewEngineWithDefaults() *GameEngine {
	engine, err := NewEngine(DefaultGameConfig())
	if err != nil {
		panic(fmt.Sprintf("default config is invalid: %v", err))
	}
	return engine
}

func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// GetState returns the current game state
func (e *GameEngine) GetState() *GameState {
	return e.state
}

// SetState sets the game state
func (e *GameEngine) SetState(state *GameState) error {
	if state == nil {
		return fmt.Errorf("state cannot be nil")
	}
	if state.Grid == nil || state.Snake == nil || state.Food == nil {
		return fmt.Errorf("state must include grid, snake and food")
	}
	if state.Grid.Width != e.config.Width || state.Grid.Height != e.config.Height {
		return fmt.Errorf("state grid is %dx%d but config expects %dx%d",
			state.Grid.Width, state.Grid.Height, e.config.Width, e.config.Height)
	}
	e.state = state
	return nil
}

// Reset starts a fresh run on the same grid, wiping the interior and
// keeping the cumulative move history
func (e *GameEngine) Reset() *GameState {
	prev := e.state

	e.state = InitGameStateFromConfig(e.config)
	e.state.MoveHistory = prev.MoveHistory
	e.state.TotalMoves = prev.TotalMoves
	if prev.Grid != nil && prev.Grid.Width == e.config.Width && prev.Grid.Height == e.config.Height {
		prev.Grid.ClearInterior()
		e.state.Grid = prev.Grid
	}
	e.PrepareFrame()

	return e.state
}

// IsGameOver returns whether the game is over
func (e *GameEngine) IsGameOver() bool {
	return e.state.GameOver
}

// GetScore returns the number of foods eaten
func (e *GameEngine) GetScore() int {
	return e.state.Score
}

// GetSnake returns the snake
func (e *GameEngine) GetSnake() *Snake {
	return e.state.Snake
}

// GetFood returns the food
func (e *GameEngine) GetFood() *Food {
	return e.state.Food
}

// GetDirection returns the direction the snake last moved in
func (e *GameEngine) GetDirection() Direction {
	return e.state.Direction
}

// PrepareFrame overlays the snake, respawns consumed food and overlays it.
// Calling it twice in a row is a no-op the second time.
func (e *GameEngine) PrepareFrame() {
	s := e.state
	s.Snake.Overlay(s.Grid)
	s.Food.RespawnIfNeeded(s.Snake, s.Grid, e.rng)
	s.Food.Overlay(s.Grid)
}

// Render returns the grid as text using the configured glyphs
func (e *GameEngine) Render() string {
	return e.state.Grid.Render(e.config.Glyphs)
}

// Step moves the snake one cell and checks for collisions. An invalid
// direction keeps the current one. The returned bool is false when the
// move was not applied: the game was already over or the head hit the wall
// with WallCrashEndsGame set.
func (e *GameEngine) Step(direction Direction) (MoveOutcome, bool) {
	s := e.state
	if s.GameOver {
		return MoveOutcome{From: s.Snake.Head, To: s.Snake.Head}, false
	}
	if !direction.Valid() {
		direction = s.Direction
	}

	next := s.Snake.NextHead(direction)
	if !s.Grid.IsInterior(next) {
		if e.config.WallCrashEndsGame {
			s.Direction = direction
			s.Ticks++
			e.endGame(ReasonWall)
			e.addMoveToHistory(direction, s.Snake.Head, next, false)
			return MoveOutcome{From: s.Snake.Head, To: next}, false
		}
		next = WrapInterior(next, s.Grid)
	}

	outcome := s.Snake.MoveTo(next, s.Food, s.Grid)
	s.Direction = direction
	s.Ticks++

	if outcome.Eaten {
		s.Score++
		s.Message = formatMessage(e.config.Messages.AteFood, s.Score)
	} else {
		s.Message = ""
	}

	if !s.Snake.IsAlive() {
		e.endGame(ReasonSelf)
	}

	e.addMoveToHistory(direction, outcome.From, outcome.To, outcome.Eaten)
	return outcome, true
}

// Move runs one full tick for callers without their own loop: it steps
// in the named direction and prepares the next frame
func (e *GameEngine) Move(direction string) bool {
	if e.state.GameOver {
		return false
	}

	dir, err := ParseDirection(direction)
	if err != nil {
		e.state.Message = fmt.Sprintf("Unknown direction %q", direction)
		return false
	}

	_, applied := e.Step(dir)
	e.PrepareFrame()
	return applied
}

// BulkMove executes multiple moves in sequence, returning success status for each
func (e *GameEngine) BulkMove(moves []string) []bool {
	results := make([]bool, 0, len(moves))

	for _, direction := range moves {
		// Stop if game is over
		if e.IsGameOver() {
			break
		}

		success := e.Move(direction)
		results = append(results, success)
	}

	return results
}

// GetConfig returns the current game configuration
func (e *GameEngine) GetConfig() *GameConfig {
	return e.config
}

// SetConfig sets a new game configuration and resets the game
func (e *GameEngine) SetConfig(config *GameConfig) error {
	if err := ValidateGameConfig(config); err != nil {
		return err
	}

	e.config = config
	e.rng = newRand(config.Seed)
	e.state = InitGameStateFromConfig(config)
	e.PrepareFrame()
	return nil
}

// GetMoveHistory returns the complete move history
func (e *GameEngine) GetMoveHistory() []MoveHistoryEntry {
	return e.state.MoveHistory
}

// GetLastMove returns the last move made, or nil if no moves
func (e *GameEngine) GetLastMove() *MoveHistoryEntry {
	if len(e.state.MoveHistory) == 0 {
		return nil
	}
	return &e.state.MoveHistory[len(e.state.MoveHistory)-1]
}

func (e *GameEngine) endGame(reason string) {
	s := e.state
	s.GameOver = true
	s.Reason = reason

	var parts []string
	switch reason {
	case ReasonSelf:
		parts = append(parts, e.config.Messages.HitSelf)
	case ReasonWall:
		parts = append(parts, e.config.Messages.HitWall)
	}
	parts = append(parts, formatMessage(e.config.Messages.GameOver, s.Score))
	s.Message = strings.TrimSpace(strings.Join(parts, " "))
}

func (e *GameEngine) addMoveToHistory(direction Direction, from, to Position, ate bool) {
	s := e.state
	s.MoveHistory = append(s.MoveHistory, MoveHistoryEntry{
		Direction:    direction,
		FromPosition: from,
		ToPosition:   to,
		Ate:          ate,
		Length:       s.Snake.Length(),
		Timestamp:    time.Now().Unix(),
		Alive:        !s.GameOver,
		MoveNumber:   s.TotalMoves + 1,
	})
	s.TotalMoves++
}

func formatMessage(tmpl string, score int) string {
	if tmpl == "" {
		return ""
	}
	if strings.Contains(tmpl, "%d") {
		return fmt.Sprintf(tmpl, score)
	}
	return tmpl
}
