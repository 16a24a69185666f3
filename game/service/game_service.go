package service

import (
	"context"
	"time"

	"github.com/wricardo/terminal-snake/game/engine"
)

// GameService is everything the transports need from the game layer
type GameService interface {
	SessionService
	PlayService
	ConfigService
}

// SessionService creates and looks up sessions. Each session is one
// independent single-player board.
type SessionService interface {
	CreateSession(ctx context.Context, configName string) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error
}

// PlayService advances a session tick by tick. reset starts a new run
// before the first tick.
type PlayService interface {
	Move(ctx context.Context, sessionID, direction string, reset bool) (*MoveResult, error)
	BulkMove(ctx context.Context, sessionID string, moves []string, reset bool) (*BulkMoveResult, error)
	Reset(ctx context.Context, sessionID string) (*engine.GameState, error)

	GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error)
	GetFrame(ctx context.Context, sessionID string) (string, error)
	GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error)
}

// ConfigService exposes the board configurations
type ConfigService interface {
	ListConfigs(ctx context.Context) ([]*ConfigInfo, error)
	LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error)
	SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error
}

// SessionManager stores sessions in memory
type SessionManager interface {
	Create(id string, config *engine.GameConfig) (*Session, error)
	Get(id string) (*Session, error)
	GetOrCreate(id string, config *engine.GameConfig) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
}

// ConfigManager loads and stores board configurations
type ConfigManager interface {
	LoadConfig(name string) (*engine.GameConfig, error)
	ListConfigs() ([]*ConfigInfo, error)
	GetDefault() *engine.GameConfig
	SaveConfig(name string, config *engine.GameConfig) error
}

// Session is one board and the runs played on it. Runs counts started
// runs, the first included. BestScore is the highest score any run reached.
type Session struct {
	ID             string
	Engine         *engine.GameEngine
	Config         *engine.GameConfig
	CreatedAt      time.Time
	LastAccessedAt time.Time
	Runs           int
	BestScore      int
}

// newRun resets the engine and counts the run
func (s *Session) newRun() *engine.GameState {
	s.trackScore()
	s.Runs++
	return s.Engine.Reset()
}

func (s *Session) trackScore() {
	if score := s.Engine.GetScore(); score > s.BestScore {
		s.BestScore = score
	}
}
