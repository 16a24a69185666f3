package engine

import "slices"

// CellType represents what occupies a single grid cell
type CellType string

const (
	CellWall  CellType = "wall"
	CellEmpty CellType = "empty"
	CellHead  CellType = "head"
	CellBody  CellType = "body"
	CellFood  CellType = "food"

	// Validation constants
	MinGridSize      = 5
	MaxGridSize      = 200
	MinSpeedMs       = 10
	MaxSpeedMs       = 5000
	MaxBulkMoves     = 50
	MaxSpawnAttempts = 1000
)

// Game over reasons
const (
	ReasonSelf = "self"
	ReasonWall = "wall"
)

// Position is a (row, col) coordinate; rows grow downward, columns rightward
type Position struct {
	Row int `json:"row" yaml:"row"`
	Col int `json:"col" yaml:"col"`
}

// Add returns the position shifted by the given deltas
func (p Position) Add(dRow, dCol int) Position {
	return Position{Row: p.Row + dRow, Col: p.Col + dCol}
}

// Glyphs maps each cell type to the character printed for it
type Glyphs struct {
	Wall  string `json:"wall" yaml:"wall"`
	Empty string `json:"empty" yaml:"empty"`
	Head  string `json:"head" yaml:"head"`
	Body  string `json:"body" yaml:"body"`
	Food  string `json:"food" yaml:"food"`
}

// GameConfig represents a game configuration loaded from JSON or YAML
type GameConfig struct {
	Name              string     `json:"name" yaml:"name"`
	Description       string     `json:"description" yaml:"description"`
	Width             int        `json:"width" yaml:"width"`
	Height            int        `json:"height" yaml:"height"`
	SnakeHead         Position   `json:"snake_head" yaml:"snake_head"`
	SnakeBody         []Position `json:"snake_body" yaml:"snake_body"`
	SpeedMs           int        `json:"speed_ms" yaml:"speed_ms"`
	FoodPosition      Position   `json:"food_position" yaml:"food_position"`
	StartDirection    Direction  `json:"start_direction" yaml:"start_direction"`
	WallCrashEndsGame bool       `json:"wall_crash_ends_game" yaml:"wall_crash_ends_game"`
	Seed              uint64     `json:"seed,omitempty" yaml:"seed,omitempty"` // 0 seeds from the clock
	Glyphs            Glyphs     `json:"glyphs" yaml:"glyphs"`
	Messages          Messages   `json:"messages" yaml:"messages"`
}

// Messages holds the player-facing text for game events.
// GameOver and AteFood take the score as their only %d verb.
type Messages struct {
	Welcome  string `json:"welcome" yaml:"welcome"`
	AteFood  string `json:"ate_food" yaml:"ate_food"`
	GameOver string `json:"game_over" yaml:"game_over"`
	HitSelf  string `json:"hit_self" yaml:"hit_self"`
	HitWall  string `json:"hit_wall" yaml:"hit_wall"`
}

// GameState represents the complete game state
type GameState struct {
	RunID       string             `json:"run_id"`
	Grid        *Grid              `json:"grid"`
	Snake       *Snake             `json:"snake"`
	Food        *Food              `json:"food"`
	Direction   Direction          `json:"direction"`
	Score       int                `json:"score"`
	Ticks       int                `json:"ticks"`
	GameOver    bool               `json:"game_over"`
	Reason      string             `json:"reason,omitempty"`
	Message     string             `json:"message"`
	ConfigName  string             `json:"config_name"`
	MoveHistory []MoveHistoryEntry `json:"move_history"`
	TotalMoves  int                `json:"total_moves"`
}

// Clone returns a deep copy of the state that stays stable while the
// engine keeps moving
func (s *GameState) Clone() *GameState {
	if s == nil {
		return nil
	}
	c := *s
	c.Grid = s.Grid.Clone()
	c.Snake = s.Snake.Clone()
	c.Food = s.Food.Clone()
	c.MoveHistory = slices.Clone(s.MoveHistory)
	return &c
}

// MoveHistoryEntry represents a single tick in the game history
type MoveHistoryEntry struct {
	Direction    Direction `json:"direction"`
	FromPosition Position  `json:"from_position"`
	ToPosition   Position  `json:"to_position"`
	Ate          bool      `json:"ate"`
	Length       int       `json:"length"`
	Timestamp    int64     `json:"timestamp"`
	Alive        bool      `json:"alive"`
	MoveNumber   int       `json:"move_number"`
}
