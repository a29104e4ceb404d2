package service

import (
	"time"

	"github.com/wricardo/snake-game/game/engine"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string             `json:"id"`
	ConfigName     string             `json:"config_name"`
	CreatedAt      time.Time          `json:"created_at"`
	LastAccessedAt time.Time          `json:"last_accessed_at"`
	HighScore      int                `json:"high_score"`
	GameState      *engine.GameState  `json:"game_state"`
	GameConfig     *engine.GameConfig `json:"game_config"`
}

// MoveResult contains the result of a move or tick
type MoveResult struct {
	SessionID string            `json:"session_id"`
	Outcome   engine.Outcome    `json:"outcome,omitempty"`
	Moved     bool              `json:"moved"`
	GameState *engine.GameState `json:"game_state"`
	HighScore int               `json:"high_score"`
	Message   string            `json:"message"`
	Events    []GameEvent       `json:"events,omitempty"`
}

// BoardView is the rendered projection of a session
type BoardView struct {
	SessionID  string       `json:"session_id"`
	Board      engine.Board `json:"board"`
	Text       string       `json:"text"`
	Status     string       `json:"status"`
	HighScore  int          `json:"high_score"`
	NextMoveIn float64      `json:"next_move_in_seconds"` // 0 once a move would be accepted
}

// GameEvent represents an event that occurred during gameplay
type GameEvent struct {
	Type      string          `json:"type"` // "move", "food_eaten", "game_over", "reset", "paused", "resumed", "speed"
	Message   string          `json:"message"`
	Timestamp time.Time       `json:"timestamp"`
	Position  engine.Position `json:"position,omitempty"`
}

// ConfigInfo provides information about a board preset
type ConfigInfo struct {
	Filename        string  `json:"filename"`
	ConfigID        string  `json:"config_id"` // The identifier to use for session creation
	Name            string  `json:"name"`      // Display name
	Description     string  `json:"description"`
	Width           int     `json:"width"`
	Height          int     `json:"height"`
	CooldownSeconds float64 `json:"movement_cooldown_seconds"`
}
