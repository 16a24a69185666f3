package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/inconshreveable/log15"

	"github.com/wricardo/terminal-snake/game/engine"
)

// Errors shared by the session and config managers so callers can match
// them with errors.Is regardless of which layer wrapped them
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrConfigNotFound  = errors.New("configuration not found")
)

// Stop reason codes for bulk moves
const (
	StopInvalidDirection = "invalid_direction"
	StopHitSelf          = "hit_self"
	StopHitWall          = "hit_wall"
	StopGameOver         = "game_over"
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	logger   log15.Logger
	mu       sync.RWMutex
}

// getConfigID returns the config_id for a given config name, used for consistent API responses
func (s *gameServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	if configName == "" {
		return "classic"
	}
	return configName
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, configs ConfigManager, logger log15.Logger) GameService {
	if logger == nil {
		logger = log15.New()
		logger.SetHandler(log15.DiscardHandler())
	}
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
		logger:   logger.New("component", "service"),
	}
}

// CreateSession creates a new game session
func (s *gameServiceImpl) CreateSession(ctx context.Context, configName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var config *engine.GameConfig
	var err error
	if configName != "" {
		config, err = s.configs.LoadConfig(configName)
		if err != nil {
			if errors.Is(err, ErrConfigNotFound) {
				availableConfigs, listErr := s.configs.ListConfigs()
				if listErr == nil && len(availableConfigs) > 0 {
					var configIDs []string
					for _, cfg := range availableConfigs {
						configIDs = append(configIDs, cfg.ConfigID)
					}
					return nil, fmt.Errorf("config '%s' not found. Available configs: %v: %w", configName, configIDs, err)
				}
				return nil, fmt.Errorf("config '%s' not found. Use /api/configs to list available configurations: %w", configName, err)
			}
			return nil, fmt.Errorf("failed to load config %s: %w", configName, err)
		}
	} else {
		config = s.configs.GetDefault()
	}

	// Let session manager generate a 4-character ID
	session, err := s.sessions.Create("", config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	configID := configName
	if configID == "" {
		configID = s.getConfigID(config.Name)
	}

	s.logger.Info("session created", "session", session.ID, "config", configID,
		"run_id", session.Engine.GetState().RunID)

	info := s.sessionInfo(session)
	info.ConfigName = configID
	return info, nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	// UpdateLastAccessed writes the session
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	s.sessions.UpdateLastAccessed(sessionID)
	return s.sessionInfo(session), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, s.sessionInfo(sess))
	}

	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sessions.Delete(sessionID); err != nil {
		return err
	}
	s.logger.Info("session deleted", "session", sessionID)
	return nil
}

// Move runs a single tick for a session
func (s *gameServiceImpl) Move(ctx context.Context, sessionID, direction string, reset bool) (*MoveResult, error) {
	dir, err := engine.ParseDirection(direction)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	s.sessions.UpdateLastAccessed(sessionID)

	events := []GameEvent{}
	if reset {
		sess.newRun()
		events = append(events, resetEvent())
	}

	eng := sess.Engine
	wasOver := eng.IsGameOver()
	success := eng.Move(string(dir))
	sess.trackScore()
	state := eng.GetState()

	result := &MoveResult{
		Success:   success,
		GameState: state.Clone(),
		Frame:     eng.Render(),
		Message:   state.Message,
		Events:    events,
	}

	if !wasOver {
		if last := eng.GetLastMove(); last != nil {
			step := stepFromHistory(1, last)
			result.Step = &step
			result.Events = append(result.Events, moveEvents(last, state)...)
		}
		if state.GameOver {
			s.logGameOver(sessionID, state)
		}
	}

	return result, nil
}

// BulkMove executes multiple ticks in sequence, stopping at the first
// unknown direction or when the game ends
func (s *gameServiceImpl) BulkMove(ctx context.Context, sessionID string, moves []string, reset bool) (*BulkMoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	s.sessions.UpdateLastAccessed(sessionID)

	eng := sess.Engine
	result := &BulkMoveResult{
		RequestedMoves: len(moves),
		Events:         make([]GameEvent, 0),
		Success:        true,
	}

	if reset {
		sess.newRun()
		result.Events = append(result.Events, resetEvent())
	}

	startState := eng.GetState()
	result.StartHead = startState.Snake.Head
	result.StartLength = startState.Snake.Length()
	startScore := startState.Score

	// Limit moves to prevent abuse
	if len(moves) > engine.MaxBulkMoves {
		result.Truncated = true
		result.Limit = engine.MaxBulkMoves
		moves = moves[:engine.MaxBulkMoves]
	}

	for i, move := range moves {
		if eng.IsGameOver() {
			result.Success = false
			result.StoppedReason = "game is over"
			result.StopReasonCode = StopGameOver
			result.StoppedOnMove = i + 1
			break
		}

		dir, err := engine.ParseDirection(move)
		if err != nil {
			result.Success = false
			result.StoppedReason = fmt.Sprintf("move %d: unknown direction %q", i+1, move)
			result.StopReasonCode = StopInvalidDirection
			result.StoppedOnMove = i + 1
			break
		}

		eng.Move(string(dir))
		sess.trackScore()
		result.MovesExecuted++

		last := eng.GetLastMove()
		state := eng.GetState()
		result.Steps = append(result.Steps, stepFromHistory(i+1, last))
		result.Events = append(result.Events, moveEvents(last, state)...)

		if state.GameOver {
			result.Success = false
			result.StoppedReason = state.Message
			result.StopReasonCode = stopCode(state.Reason)
			result.StoppedOnMove = i + 1
			s.logGameOver(sessionID, state)
			break
		}
	}

	endState := eng.GetState()
	result.GameState = endState.Clone()
	result.Frame = eng.Render()
	result.EndHead = endState.Snake.Head
	result.EndLength = endState.Snake.Length()
	result.ScoreDelta = endState.Score - startScore
	result.GameOver = endState.GameOver
	result.Message = endState.Message

	return result, nil
}

// Reset starts a fresh run in a session
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	s.sessions.UpdateLastAccessed(sessionID)
	state := sess.newRun()
	s.logger.Info("game reset", "session", sessionID, "run_id", state.RunID,
		"run", sess.Runs, "best_score", sess.BestScore)
	return state.Clone(), nil
}

// GetGameState retrieves the current game state
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	s.sessions.UpdateLastAccessed(sessionID)
	return sess.Engine.GetState().Clone(), nil
}

// GetFrame renders the session's grid as text
func (s *gameServiceImpl) GetFrame(ctx context.Context, sessionID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return "", err
	}

	s.sessions.UpdateLastAccessed(sessionID)
	return sess.Engine.Render(), nil
}

// GetMoveHistory returns paginated move history
func (s *gameServiceImpl) GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	history := sess.Engine.GetMoveHistory()
	total := len(history)

	// Apply defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order == "" {
		opts.Order = "desc"
	}

	// Calculate pagination
	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	// Pages past the end are empty; checking first keeps the offset
	// arithmetic from overflowing on huge page numbers
	var moves []engine.MoveHistoryEntry
	if opts.Page <= totalPages {
		start := (opts.Page - 1) * opts.Limit
		end := min(start+opts.Limit, total)

		if opts.Order == "desc" {
			// Most recent first
			for i := total - 1 - start; i >= 0 && i >= total-end; i-- {
				moves = append(moves, history[i])
			}
		} else if start < total {
			moves = slices.Clone(history[start:end])
		}
	}

	if moves == nil {
		moves = []engine.MoveHistoryEntry{}
	}

	return &HistoryResponse{
		Moves:       moves,
		TotalMoves:  total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}, nil
}

// ListConfigs returns available game configurations
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific game configuration
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig saves a game configuration to disk
func (s *gameServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error {
	if err := s.configs.SaveConfig(configName, config); err != nil {
		return err
	}
	s.logger.Info("config saved", "config", configName)
	return nil
}

func (s *gameServiceImpl) sessionInfo(sess *Session) *SessionInfo {
	return &SessionInfo{
		ID:             sess.ID,
		ConfigName:     s.getConfigID(sess.Config.Name),
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		GameState:      sess.Engine.GetState().Clone(),
		GameConfig:     sess.Config,
		Frame:          sess.Engine.Render(),
		Runs:           sess.Runs,
		BestScore:      sess.BestScore,
	}
}

func (s *gameServiceImpl) logGameOver(sessionID string, state *engine.GameState) {
	s.logger.Info("game over", "session", sessionID, "run_id", state.RunID,
		"score", state.Score, "reason", state.Reason, "ticks", state.Ticks)
}

func stepFromHistory(idx int, entry *engine.MoveHistoryEntry) StepInfo {
	return StepInfo{
		Idx:    idx,
		Dir:    string(entry.Direction),
		From:   entry.FromPosition,
		To:     entry.ToPosition,
		Ate:    entry.Ate,
		Length: entry.Length,
		Alive:  entry.Alive,
	}
}

// moveEvents generates events from the latest history entry
func moveEvents(entry *engine.MoveHistoryEntry, state *engine.GameState) []GameEvent {
	now := time.Now()
	events := []GameEvent{{
		Type:      EventMove,
		Message:   fmt.Sprintf("Moved %s to (%d,%d)", entry.Direction, entry.ToPosition.Row, entry.ToPosition.Col),
		Timestamp: now,
		Position:  entry.ToPosition,
	}}

	if entry.Ate {
		events = append(events, GameEvent{
			Type:      EventFoodEaten,
			Message:   fmt.Sprintf("Ate food! Score: %d", state.Score),
			Timestamp: now,
			Position:  entry.ToPosition,
		})
	}

	if !entry.Alive {
		events = append(events, GameEvent{
			Type:      EventGameOver,
			Message:   state.Message,
			Timestamp: now,
			Position:  entry.ToPosition,
		})
	}

	return events
}

func resetEvent() GameEvent {
	return GameEvent{
		Type:      EventReset,
		Message:   "Game reset to initial state",
		Timestamp: time.Now(),
	}
}

func stopCode(reason string) string {
	switch reason {
	case engine.ReasonSelf:
		return StopHitSelf
	case engine.ReasonWall:
		return StopHitWall
	default:
		return StopGameOver
	}
}
