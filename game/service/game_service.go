package service

import (
	"context"
	"errors"
	"time"

	"github.com/wricardo/snake-game/game/engine"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrConfigNotFound  = errors.New("configuration not found")
	ErrInvalidConfig   = errors.New("invalid configuration")
)

// GameService defines all game-related operations
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, configID string, width, height int) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Game Operations
	Move(ctx context.Context, sessionID, direction string) (*MoveResult, error)
	Tick(ctx context.Context, sessionID string) (*MoveResult, error)
	TickAll(ctx context.Context) ([]*MoveResult, error)
	TogglePause(ctx context.Context, sessionID string) (*MoveResult, error)
	SetSpeed(ctx context.Context, sessionID string, seconds float64) (*MoveResult, error)
	Reset(ctx context.Context, sessionID string, width, height int) (*engine.GameState, error)

	// Game State
	GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error)
	GetBoard(ctx context.Context, sessionID string) (*BoardView, error)

	// Configuration
	ListConfigs(ctx context.Context) ([]*ConfigInfo, error)
	LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error)
	SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, config *engine.GameConfig) (*Session, error)
	Get(id string) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
}

// ConfigManager handles board preset loading
type ConfigManager interface {
	LoadConfig(name string) (*engine.GameConfig, error)
	ListConfigs() ([]*ConfigInfo, error)
	GetDefault() *engine.GameConfig
	SaveConfig(name string, config *engine.GameConfig) error
}

// Session represents an active game session
type Session struct {
	ID             string
	Engine         *engine.GameEngine
	Config         *engine.GameConfig
	HighScore      int
	CreatedAt      time.Time
	LastAccessedAt time.Time
}

// RecordScore raises the session high score to the current score if needed
func (s *Session) RecordScore() int {
	if score := s.Engine.GetScore(); score > s.HighScore {
		s.HighScore = score
	}
	return s.HighScore
}
