package autopilot

import (
	"context"
	"fmt"
	"time"

	"github.com/inconshreveable/log15"
)

// Options control a Run
type Options struct {
	Attempts int           // runs to play, each after a reset
	MaxMoves int           // moves per run before giving up
	Delay    time.Duration // pause between moves, zero for none
}

// Attempt is the outcome of one run
type Attempt struct {
	Number int    `json:"number"`
	Moves  int    `json:"moves"`
	Score  int    `json:"score"`
	Length int    `json:"length"`
	Reason string `json:"reason,omitempty"`
}

// Report summarises every attempt of a Run
type Report struct {
	SessionID string    `json:"session_id"`
	Attempts  []Attempt `json:"attempts"`
	BestScore int       `json:"best_score"`
}

// Runner plays a session with a Strategy
type Runner struct {
	client *Client
	logger log15.Logger
}

// NewRunner creates a runner. The client must already point at a session.
func NewRunner(client *Client, logger log15.Logger) *Runner {
	if logger == nil {
		logger = log15.New()
		logger.SetHandler(log15.DiscardHandler())
	}
	return &Runner{
		client: client,
		logger: logger.New("component", "autopilot", "session", client.SessionID()),
	}
}

// Run plays opts.Attempts runs, resetting the game before each one
func (r *Runner) Run(ctx context.Context, opts Options) (*Report, error) {
	if opts.Attempts <= 0 {
		opts.Attempts = 1
	}
	if opts.MaxMoves <= 0 {
		opts.MaxMoves = 1000
	}

	session, err := r.client.Session(ctx)
	if err != nil {
		return nil, err
	}
	wrap := session.GameConfig != nil && !session.GameConfig.WallCrashEndsGame
	strategy := NewStrategy(wrap)

	report := &Report{SessionID: r.client.SessionID()}
	for n := 1; n <= opts.Attempts; n++ {
		attempt, err := r.play(ctx, strategy, n, opts)
		if err != nil {
			return report, fmt.Errorf("attempt %d: %w", n, err)
		}
		report.Attempts = append(report.Attempts, attempt)
		if attempt.Score > report.BestScore {
			report.BestScore = attempt.Score
		}
		r.logger.Info("attempt finished", "attempt", n, "moves", attempt.Moves,
			"score", attempt.Score, "length", attempt.Length, "reason", attempt.Reason)
	}
	return report, nil
}

func (r *Runner) play(ctx context.Context, strategy *Strategy, number int, opts Options) (Attempt, error) {
	attempt := Attempt{Number: number}

	state, err := r.client.Reset(ctx)
	if err != nil {
		return attempt, err
	}

	for !state.GameOver && attempt.Moves < opts.MaxMoves {
		if err := ctx.Err(); err != nil {
			return attempt, err
		}

		dir := strategy.NextMove(state)
		result, err := r.client.Move(ctx, dir)
		if err != nil {
			return attempt, err
		}
		state = result.GameState
		attempt.Moves++

		if result.Step != nil && result.Step.Ate {
			r.logger.Debug("food eaten", "score", state.Score, "move", attempt.Moves)
		}

		if opts.Delay > 0 {
			select {
			case <-ctx.Done():
				return attempt, ctx.Err()
			case <-time.After(opts.Delay):
			}
		}
	}

	attempt.Score = state.Score
	attempt.Length = state.Snake.Length()
	attempt.Reason = state.Reason
	return attempt, nil
}
