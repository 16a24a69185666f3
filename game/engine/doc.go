// Package engine provides the core game logic for terminal Snake.
//
// The engine package implements the game mechanics including:
//   - A walled grid with a ring of border cells around the playfield
//   - Snake movement, growth and self collision
//   - Food consumption and random respawn on a free cell
//   - Game state, score and move history
//   - Configuration loading (JSON or YAML) and validation
//
// Core Types:
//
// The Engine interface defines the main contract for game operations,
// implemented by GameEngine. GameState represents a single run, while
// GameConfig defines the board, the starting snake and the glyphs.
//
// Usage:
//
//	gameEngine, err := engine.NewEngine(engine.DefaultGameConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// One tick: step, then redraw
//	gameEngine.Step(engine.Down)
//	gameEngine.PrepareFrame()
//	fmt.Print(gameEngine.Render())
//
// Game Rules:
//
// Each tick the head advances one cell in the current direction. Landing on
// the food grows the snake by one segment and scores a point; otherwise the
// tail follows. The run ends when the head enters its own body, or the wall
// when wall crashes are enabled. With wall crashes disabled the head wraps
// to the opposite edge of the playfield.
package engine
