package engine

import (
	"math/rand/v2"
	"strings"
	"testing"
)

func newTestEngine(t *testing.T) *GameEngine {
	t.Helper()
	engine, err := NewEngine(createTestConfig())
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}
	return engine
}

func TestNewEngine(t *testing.T) {
	engine := newTestEngine(t)
	state := engine.GetState()

	if state.GameOver {
		t.Error("New game should not be over")
	}
	if engine.GetScore() != 0 {
		t.Errorf("Expected score 0, got %d", engine.GetScore())
	}
	if engine.GetDirection() != Right {
		t.Errorf("Expected direction right, got %s", engine.GetDirection())
	}
	if state.Grid.At(Position{5, 6}) != CellHead {
		t.Error("Expected head drawn after construction")
	}
	if state.Grid.At(Position{7, 8}) != CellFood {
		t.Error("Expected food drawn after construction")
	}
	if state.Message == "" {
		t.Error("Expected welcome message")
	}
}

func TestNewEngine_InvalidConfig(t *testing.T) {
	config := createTestConfig()
	config.Width = 2
	if _, err := NewEngine(config); err == nil {
		t.Error("Expected error for invalid config")
	}
}

func TestEngine_EatFood(t *testing.T) {
	engine := newTestEngine(t)

	for _, dir := range []Direction{Down, Down, Right} {
		outcome, applied := engine.Step(dir)
		if !applied || outcome.Eaten {
			t.Fatalf("Step %s: applied=%v eaten=%v", dir, applied, outcome.Eaten)
		}
		engine.PrepareFrame()
	}

	outcome, applied := engine.Step(Right)
	if !applied {
		t.Fatal("Expected final step to apply")
	}
	if !outcome.Eaten {
		t.Fatal("Expected the snake to eat the food at (7,8)")
	}
	if engine.GetScore() != 1 {
		t.Errorf("Expected score 1, got %d", engine.GetScore())
	}
	if engine.GetSnake().Length() != 3 {
		t.Errorf("Expected length 3, got %d", engine.GetSnake().Length())
	}
	if !engine.GetFood().Consumed {
		t.Error("Expected food consumed before the next frame")
	}
	if !strings.Contains(engine.GetState().Message, "Score: 1") {
		t.Errorf("Expected ate-food message, got %q", engine.GetState().Message)
	}

	engine.PrepareFrame()
	food := engine.GetFood()
	if food.Consumed {
		t.Error("Expected food respawned")
	}
	if engine.GetSnake().Occupies(food.Position) {
		t.Errorf("Food respawned on the snake at %v", food.Position)
	}
	if engine.GetState().Grid.At(food.Position) != CellFood {
		t.Error("Expected respawned food drawn")
	}
}

func TestEngine_ReversalEndsGame(t *testing.T) {
	engine := newTestEngine(t)

	_, applied := engine.Step(Up)
	if !applied {
		t.Fatal("Expected reversal to be applied")
	}
	if !engine.IsGameOver() {
		t.Fatal("Expected game over after reversing into the body")
	}
	state := engine.GetState()
	if state.Reason != ReasonSelf {
		t.Errorf("Expected reason %q, got %q", ReasonSelf, state.Reason)
	}
	if !strings.Contains(state.Message, "Game Over! Score: 0") {
		t.Errorf("Expected game over message, got %q", state.Message)
	}

	if _, applied := engine.Step(Down); applied {
		t.Error("Steps after game over must not apply")
	}
}

func TestEngine_WallCrash(t *testing.T) {
	engine := newTestEngine(t)

	for i := 0; i < 5; i++ {
		if _, applied := engine.Step(Left); !applied {
			t.Fatalf("Step %d should apply", i+1)
		}
		engine.PrepareFrame()
	}
	if engine.GetSnake().Head != (Position{5, 1}) {
		t.Fatalf("Expected head at (5,1), got %v", engine.GetSnake().Head)
	}

	_, applied := engine.Step(Left)
	if applied {
		t.Error("Crash into the wall should not move the snake")
	}
	state := engine.GetState()
	if !state.GameOver || state.Reason != ReasonWall {
		t.Errorf("Expected wall game over, got over=%v reason=%q", state.GameOver, state.Reason)
	}
	if engine.GetSnake().Head != (Position{5, 1}) {
		t.Errorf("Head must stay put, got %v", engine.GetSnake().Head)
	}
	if state.Grid.At(Position{5, 0}) != CellWall {
		t.Error("Border cell must stay a wall")
	}
	if state.Ticks != 6 {
		t.Errorf("Expected 6 ticks, got %d", state.Ticks)
	}
}

func TestEngine_WallWrap(t *testing.T) {
	config := createTestConfig()
	config.WallCrashEndsGame = false
	engine, err := NewEngine(config)
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}

	for i := 0; i < 6; i++ {
		engine.Step(Left)
		engine.PrepareFrame()
	}

	if engine.IsGameOver() {
		t.Fatal("Wrapping must not end the game")
	}
	if engine.GetSnake().Head != (Position{5, 48}) {
		t.Errorf("Expected head wrapped to (5,48), got %v", engine.GetSnake().Head)
	}
	if engine.GetState().Grid.At(Position{5, 0}) != CellWall {
		t.Error("Border cell must stay a wall")
	}
}

func TestEngine_BorderStaysWall(t *testing.T) {
	config := createTestConfig()
	config.WallCrashEndsGame = false
	engine, err := NewEngine(config)
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}
	rng := rand.New(rand.NewPCG(99, 100))

	for tick := 0; tick < 500 && !engine.IsGameOver(); tick++ {
		dir := Directions[rng.IntN(len(Directions))]
		if snake := engine.GetSnake(); len(snake.Body) > 0 && snake.NextHead(dir) == snake.Body[0] {
			dir = engine.GetDirection()
		}
		engine.Step(dir)
		engine.PrepareFrame()

		grid := engine.GetState().Grid
		for row := 0; row < grid.Height; row++ {
			for col := 0; col < grid.Width; col++ {
				pos := Position{row, col}
				if grid.IsBorder(pos) && grid.At(pos) != CellWall {
					t.Fatalf("tick %d: border cell %v is %s", tick, pos, grid.At(pos))
				}
			}
		}
		if got := CountCellType(grid, CellHead); got != 1 {
			t.Fatalf("tick %d: expected one head cell, got %d", tick, got)
		}
		if !engine.GetFood().Consumed && grid.At(engine.GetFood().Position) != CellFood {
			t.Fatalf("tick %d: food not drawn at %v", tick, engine.GetFood().Position)
		}
	}
}

func TestEngine_Move(t *testing.T) {
	engine := newTestEngine(t)

	if !engine.Move("down") {
		t.Error("Expected valid move to succeed")
	}
	if engine.GetSnake().Head != (Position{6, 6}) {
		t.Errorf("Expected head (6,6), got %v", engine.GetSnake().Head)
	}

	if engine.Move("sideways") {
		t.Error("Expected invalid direction to fail")
	}
	if !strings.Contains(engine.GetState().Message, "Unknown direction") {
		t.Errorf("Expected unknown direction message, got %q", engine.GetState().Message)
	}
	if engine.GetState().TotalMoves != 1 {
		t.Errorf("Invalid moves must not be recorded, got %d moves", engine.GetState().TotalMoves)
	}
}

func TestEngine_BulkMove(t *testing.T) {
	engine := newTestEngine(t)

	results := engine.BulkMove([]string{"down", "up", "left", "left"})

	if len(results) != 2 {
		t.Fatalf("Expected bulk move to stop after game over, got %d results", len(results))
	}
	if !results[0] || !results[1] {
		t.Errorf("Expected both applied moves to report success, got %v", results)
	}
	if !engine.IsGameOver() {
		t.Error("Expected game over after reversing")
	}
}

func TestEngine_HistoryAndReset(t *testing.T) {
	engine := newTestEngine(t)

	if engine.GetLastMove() != nil {
		t.Error("Expected no last move on a fresh game")
	}

	engine.Move("down")
	engine.Move("right")

	last := engine.GetLastMove()
	if last == nil {
		t.Fatal("Expected a last move")
	}
	if last.Direction != Right || last.MoveNumber != 2 {
		t.Errorf("Unexpected last move %+v", last)
	}
	if last.FromPosition != (Position{6, 6}) || last.ToPosition != (Position{6, 7}) {
		t.Errorf("Unexpected last move positions %+v", last)
	}

	runID := engine.GetState().RunID
	state := engine.Reset()

	if state.RunID == runID {
		t.Error("Expected a new run ID after reset")
	}
	if state.Snake.Head != (Position{5, 6}) {
		t.Errorf("Expected head back at (5,6), got %v", state.Snake.Head)
	}
	if len(engine.GetMoveHistory()) != 2 || state.TotalMoves != 2 {
		t.Errorf("Expected history kept across reset, got %d entries", len(engine.GetMoveHistory()))
	}
	if state.Ticks != 0 || state.Score != 0 {
		t.Error("Expected ticks and score reset")
	}
}

func TestEngine_SetState(t *testing.T) {
	engine := newTestEngine(t)

	if err := engine.SetState(nil); err == nil {
		t.Error("Expected error for nil state")
	}
	if err := engine.SetState(&GameState{}); err == nil {
		t.Error("Expected error for incomplete state")
	}

	small := InitGameStateFromConfig(createTestConfig())
	small.Grid = NewGrid(10, 10)
	if err := engine.SetState(small); err == nil {
		t.Error("Expected error for mismatched grid")
	}

	fresh := InitGameStateFromConfig(createTestConfig())
	if err := engine.SetState(fresh); err != nil {
		t.Fatalf("Expected valid state to be accepted: %v", err)
	}
	if engine.GetState() != fresh {
		t.Error("Expected engine to hold the new state")
	}
}

func TestEngine_SetConfig(t *testing.T) {
	engine := newTestEngine(t)

	config := createTestConfig()
	config.Name = "small"
	config.Width = 12
	config.Height = 10
	if err := engine.SetConfig(config); err != nil {
		t.Fatalf("Failed to set config: %v", err)
	}
	if engine.GetState().Grid.Width != 12 {
		t.Errorf("Expected width 12, got %d", engine.GetState().Grid.Width)
	}
	if engine.GetState().ConfigName != "small" {
		t.Errorf("Expected config name small, got %q", engine.GetState().ConfigName)
	}

	bad := createTestConfig()
	bad.SpeedMs = 0
	if err := engine.SetConfig(bad); err == nil {
		t.Error("Expected error for invalid config")
	}
}

func TestEngine_Render(t *testing.T) {
	engine := newTestEngine(t)
	lines := strings.Split(strings.TrimSuffix(engine.Render(), "\n"), "\n")

	if len(lines) != 20 {
		t.Fatalf("Expected 20 lines, got %d", len(lines))
	}
	if got := []rune(lines[5])[6]; got != '●' {
		t.Errorf("Expected head glyph at (5,6), got %q", got)
	}
	if got := []rune(lines[4])[6]; got != '▣' {
		t.Errorf("Expected body glyph at (4,6), got %q", got)
	}
	if got := []rune(lines[7])[8]; got != '♥' {
		t.Errorf("Expected food glyph at (7,8), got %q", got)
	}
}

func TestEngine_ResetClearsGrid(t *testing.T) {
	engine := newTestEngine(t)
	grid := engine.GetState().Grid

	engine.Move("down")
	engine.Move("right")
	if grid.At(Position{6, 7}) != CellHead {
		t.Fatalf("Expected head drawn at (6,7), got %s", grid.At(Position{6, 7}))
	}

	state := engine.Reset()

	if state.Grid != grid {
		t.Error("Expected reset to reuse the grid")
	}
	if got := grid.At(Position{6, 7}); got != CellEmpty {
		t.Errorf("Expected the old head cell cleared, got %s", got)
	}
	if got := CountCellType(grid, CellHead); got != 1 {
		t.Errorf("Expected one head cell, got %d", got)
	}
	if got := CountCellType(grid, CellBody); got != 2 {
		t.Errorf("Expected two body cells, got %d", got)
	}
	if got := CountCellType(grid, CellFood); got != 1 {
		t.Errorf("Expected one food cell, got %d", got)
	}
	if grid.At(Position{5, 6}) != CellHead || grid.At(Position{7, 8}) != CellFood {
		t.Error("Expected the starting snake and food redrawn")
	}
}

func TestGameState_Clone(t *testing.T) {
	engine := newTestEngine(t)
	engine.Move("down")

	clone := engine.GetState().Clone()
	head := clone.Snake.Head
	body := append([]Position(nil), clone.Snake.Body...)

	engine.Move("down")
	engine.Move("right")
	engine.Reset()

	if clone.Snake.Head != head {
		t.Errorf("Clone head changed from %v to %v", head, clone.Snake.Head)
	}
	for i := range body {
		if clone.Snake.Body[i] != body[i] {
			t.Fatalf("Clone body changed: %v vs %v", clone.Snake.Body, body)
		}
	}
	if clone.Grid.At(head) != CellHead {
		t.Errorf("Clone grid lost its head at %v", head)
	}
	if len(clone.MoveHistory) != 1 || clone.TotalMoves != 1 {
		t.Errorf("Clone history changed: %d entries", len(clone.MoveHistory))
	}
	if clone.Grid == engine.GetState().Grid || clone.Food == engine.GetFood() {
		t.Error("Clone must not share grid or food with the engine")
	}

	var nilState *GameState
	if nilState.Clone() != nil {
		t.Error("Clone of nil state should be nil")
	}
}
