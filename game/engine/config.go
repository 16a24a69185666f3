package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// DefaultGameConfig returns the classic 50x20 board
func DefaultGameConfig() *GameConfig {
	config := &GameConfig{
		Name:              "classic",
		Description:       "Classic 50x20 board at 300ms per tick",
		Width:             50,
		Height:            20,
		SnakeHead:         Position{Row: 5, Col: 6},
		SnakeBody:         []Position{{Row: 4, Col: 6}, {Row: 3, Col: 6}},
		SpeedMs:           300,
		FoodPosition:      Position{Row: 7, Col: 8},
		StartDirection:    Right,
		WallCrashEndsGame: true,
		Glyphs: Glyphs{
			Wall:  "■",
			Empty: " ",
			Head:  "●",
			Body:  "▣",
			Food:  "♥",
		},
	}
	config.Messages = Messages{
		Welcome:  "Eat the food, avoid your tail. WASD or arrows to steer, q to quit.",
		AteFood:  "Yum! Score: %d",
		GameOver: "Game Over! Score: %d",
		HitSelf:  "You ran into yourself!",
		HitWall:  "You hit the wall!",
	}
	return config
}

// ValidateGameConfig validates a game configuration for correctness and playability
func ValidateGameConfig(config *GameConfig) error {
	if config == nil {
		return fmt.Errorf("config validation: config is nil")
	}
	if config.Name == "" {
		return fmt.Errorf("config validation: name is required")
	}

	// Validate grid size
	if config.Width < MinGridSize || config.Width > MaxGridSize {
		return fmt.Errorf("config validation: width must be between %d and %d, got %d", MinGridSize, MaxGridSize, config.Width)
	}
	if config.Height < MinGridSize || config.Height > MaxGridSize {
		return fmt.Errorf("config validation: height must be between %d and %d, got %d", MinGridSize, MaxGridSize, config.Height)
	}

	if config.SpeedMs < MinSpeedMs || config.SpeedMs > MaxSpeedMs {
		return fmt.Errorf("config validation: speed_ms must be between %d and %d, got %d", MinSpeedMs, MaxSpeedMs, config.SpeedMs)
	}

	if config.StartDirection != "" && !config.StartDirection.Valid() {
		return fmt.Errorf("config validation: start_direction %q is not one of up, down, left, right", config.StartDirection)
	}

	// Validate snake placement
	grid := NewGrid(config.Width, config.Height)
	if !grid.IsInterior(config.SnakeHead) {
		return fmt.Errorf("config validation: snake_head (%d,%d) must be an interior cell", config.SnakeHead.Row, config.SnakeHead.Col)
	}
	if len(config.SnakeBody) == 0 {
		return fmt.Errorf("config validation: snake_body must have at least one segment")
	}
	prev := config.SnakeHead
	seen := map[Position]bool{config.SnakeHead: true}
	for i, segment := range config.SnakeBody {
		if !grid.IsInterior(segment) {
			return fmt.Errorf("config validation: snake_body[%d] (%d,%d) must be an interior cell", i, segment.Row, segment.Col)
		}
		if seen[segment] {
			return fmt.Errorf("config validation: snake_body[%d] (%d,%d) overlaps the snake", i, segment.Row, segment.Col)
		}
		if ManhattanDistance(prev, segment) != 1 {
			return fmt.Errorf("config validation: snake_body[%d] (%d,%d) is not adjacent to the previous segment", i, segment.Row, segment.Col)
		}
		seen[segment] = true
		prev = segment
	}

	// Validate food placement
	if !grid.IsInterior(config.FoodPosition) {
		return fmt.Errorf("config validation: food_position (%d,%d) must be an interior cell", config.FoodPosition.Row, config.FoodPosition.Col)
	}
	if seen[config.FoodPosition] {
		return fmt.Errorf("config validation: food_position (%d,%d) overlaps the snake", config.FoodPosition.Row, config.FoodPosition.Col)
	}

	// Validate glyphs
	glyphs := map[string]string{
		"wall":  config.Glyphs.Wall,
		"empty": config.Glyphs.Empty,
		"head":  config.Glyphs.Head,
		"body":  config.Glyphs.Body,
		"food":  config.Glyphs.Food,
	}
	for name, glyph := range glyphs {
		if utf8.RuneCountInString(glyph) != 1 {
			return fmt.Errorf("config validation: glyphs.%s must be exactly one character, got %q", name, glyph)
		}
	}

	// Validate messages
	if config.Messages.GameOver == "" {
		return fmt.Errorf("config validation: messages.game_over is required")
	}
	if !strings.Contains(config.Messages.GameOver, "%d") {
		return fmt.Errorf("config validation: messages.game_over must contain %%d for score")
	}
	if config.Messages.AteFood != "" && !strings.Contains(config.Messages.AteFood, "%d") {
		return fmt.Errorf("config validation: messages.ate_food must contain %%d for score")
	}

	return nil
}

// LoadGameConfig loads a game configuration from a JSON or YAML file
func LoadGameConfig(filename string) (*GameConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	config, err := ParseGameConfig(filename, data)
	if err != nil {
		return nil, err
	}

	// Validate the loaded configuration
	if err := ValidateGameConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}

// ParseGameConfig decodes config bytes; the file extension picks the format
// and anything other than .yaml/.yml is treated as JSON
func ParseGameConfig(filename string, data []byte) (*GameConfig, error) {
	var config GameConfig
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
	}
	return &config, nil
}

// InitGameStateFromConfig creates a new game state using the provided configuration
func InitGameStateFromConfig(config *GameConfig) *GameState {
	if config == nil {
		config = DefaultGameConfig()
	}

	direction := config.StartDirection
	if direction == "" {
		direction = Right
	}

	return &GameState{
		RunID:       uuid.NewString(),
		Grid:        NewGrid(config.Width, config.Height),
		Snake:       NewSnake(config.SnakeHead, config.SnakeBody, config.SpeedMs),
		Food:        NewFood(config.FoodPosition),
		Direction:   direction,
		Score:       0,
		Ticks:       0,
		GameOver:    false,
		Message:     config.Messages.Welcome,
		ConfigName:  config.Name,
		MoveHistory: []MoveHistoryEntry{},
		TotalMoves:  0,
	}
}
