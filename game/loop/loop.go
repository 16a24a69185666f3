package loop

import (
	"context"
	"fmt"
	"time"

	"github.com/inconshreveable/log15"

	"github.com/wricardo/terminal-snake/game/engine"
)

// Key names reported by Terminal.PollKey besides single runes
const (
	KeyNone  = ""
	KeyUp    = "up"
	KeyDown  = "down"
	KeyLeft  = "left"
	KeyRight = "right"
	KeyEsc   = "esc"
	KeyCtrlC = "ctrl-c"
)

// Terminal is the screen the loop draws on and reads keys from
type Terminal interface {
	// Clear blanks the screen before a frame is drawn
	Clear() error
	// Draw shows a rendered frame with a status line below it
	Draw(frame, status string) error
	// PollKey returns the most recent key press, or KeyNone without blocking
	PollKey() string
	// Pause shows message and waits for any key or ctx cancellation
	Pause(ctx context.Context, message string) error
}

// Result summarises a finished game
type Result struct {
	RunID   string `json:"run_id"`
	Score   int    `json:"score"`
	Length  int    `json:"length"`
	Ticks   int    `json:"ticks"`
	Reason  string `json:"reason,omitempty"`
	Message string `json:"message"`
	Quit    bool   `json:"quit"`
}

// Loop runs the engine against a terminal until the game ends or the player quits
type Loop struct {
	engine engine.Engine
	term   Terminal
	logger log15.Logger
	sleep  func(ctx context.Context, d time.Duration) error
}

// New creates a loop for the given engine and terminal
func New(eng engine.Engine, term Terminal, logger log15.Logger) *Loop {
	if logger == nil {
		logger = log15.New()
		logger.SetHandler(log15.DiscardHandler())
	}
	return &Loop{
		engine: eng,
		term:   term,
		logger: logger.New("component", "loop", "run_id", eng.GetState().RunID),
		sleep:  sleepContext,
	}
}

// Run plays ticks until the snake dies, a quit key is pressed or ctx is
// cancelled. Terminal failures are returned as errors; a game over is not an
// error and is reported through the Result after the pause screen.
func (l *Loop) Run(ctx context.Context) (Result, error) {
	state := l.engine.GetState()
	l.logger.Info("game started", "config", state.ConfigName,
		"width", state.Grid.Width, "height", state.Grid.Height, "speed_ms", state.Snake.Speed)

	direction := l.engine.GetDirection()
	for {
		if err := l.drawFrame(); err != nil {
			return l.result(false), err
		}

		key := l.term.PollKey()
		if IsQuitKey(key) {
			l.logger.Info("player quit", "key", key, "score", l.engine.GetScore())
			return l.result(true), nil
		}
		if dir, ok := KeyDirection(key); ok {
			direction = dir
		}

		outcome, _ := l.engine.Step(direction)
		if outcome.Eaten {
			l.logger.Debug("food eaten", "score", l.engine.GetScore(), "length", l.engine.GetSnake().Length())
		}
		if l.engine.IsGameOver() {
			break
		}

		if err := l.sleep(ctx, time.Duration(l.engine.GetSnake().Speed)*time.Millisecond); err != nil {
			l.logger.Info("game cancelled", "err", err)
			return l.result(true), nil
		}
	}

	result := l.result(false)
	l.logger.Info("game over", "score", result.Score, "reason", result.Reason, "ticks", result.Ticks)

	if err := l.drawFrame(); err != nil {
		return result, err
	}
	if err := l.term.Pause(ctx, result.Message); err != nil {
		return result, fmt.Errorf("pause: %w", err)
	}
	return result, nil
}

func (l *Loop) drawFrame() error {
	if err := l.term.Clear(); err != nil {
		return fmt.Errorf("clear terminal: %w", err)
	}
	l.engine.PrepareFrame()
	if err := l.term.Draw(l.engine.Render(), StatusLine(l.engine.GetState())); err != nil {
		return fmt.Errorf("draw frame: %w", err)
	}
	return nil
}

func (l *Loop) result(quit bool) Result {
	state := l.engine.GetState()
	return Result{
		RunID:   state.RunID,
		Score:   state.Score,
		Length:  state.Snake.Length(),
		Ticks:   state.Ticks,
		Reason:  state.Reason,
		Message: state.Message,
		Quit:    quit,
	}
}

// StatusLine formats the line shown under the grid
func StatusLine(state *engine.GameState) string {
	status := fmt.Sprintf("Score: %d  Length: %d", state.Score, state.Snake.Length())
	if state.Message != "" {
		status += "  " + state.Message
	}
	return status
}

// KeyDirection maps arrow keys and WASD to a direction
func KeyDirection(key string) (engine.Direction, bool) {
	if key == KeyNone {
		return "", false
	}
	dir, err := engine.ParseDirection(key)
	if err != nil {
		return "", false
	}
	return dir, true
}

// IsQuitKey reports whether key ends the game immediately
func IsQuitKey(key string) bool {
	switch key {
	case KeyEsc, KeyCtrlC, "q", "Q":
		return true
	}
	return false
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
