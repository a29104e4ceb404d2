package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/wricardo/snake-game/game/engine"
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	mu       sync.Mutex
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
	// Fallback: return as-is or "default"
	if configName == "" {
		return "default"
	}
	return configName
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, configs ConfigManager) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
	}
}

// CreateSession creates a new game session from a preset. A positive width
// or height overrides the preset's board size.
func (s *gameServiceImpl) CreateSession(ctx context.Context, configID string, width, height int) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Load configuration
	var config *engine.GameConfig
	var err error
	if configID != "" {
		config, err = s.configs.LoadConfig(configID)
		if err != nil {
			// Provide helpful error message with available options
			if errors.Is(err, ErrConfigNotFound) {
				availableConfigs, listErr := s.configs.ListConfigs()
				if listErr == nil && len(availableConfigs) > 0 {
					var configIDs []string
					for _, cfg := range availableConfigs {
						configIDs = append(configIDs, cfg.ConfigID)
					}
					return nil, fmt.Errorf("config '%s' not found. Available configs: %v: %w", configID, configIDs, err)
				}
				return nil, fmt.Errorf("config '%s' not found. Use /api/configs to list available configurations: %w", configID, err)
			}
			return nil, fmt.Errorf("failed to load config %s: %w", configID, err)
		}
	} else {
		config = s.configs.GetDefault()
	}

	if width > 0 || height > 0 {
		sized := *config
		if width > 0 {
			sized.Width = width
		}
		if height > 0 {
			sized.Height = height
		}
		config = &sized
	}

	// Let session manager generate a proper 4-character ID
	session, err := s.sessions.Create("", config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	// Prefer the requested config_id, otherwise look it up by display name
	if configID == "" {
		configID = s.getConfigID(config.Name)
	}

	info := s.sessionInfo(session)
	info.ConfigName = configID
	return info, nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	s.sessions.UpdateLastAccessed(sessionID)

	return s.sessionInfo(session), nil
}

// ListSessions returns all active sessions, oldest first
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))

	for _, sess := range sessions {
		result = append(result, s.sessionInfo(sess))
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})

	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessions.Delete(sessionID)
}

// Move turns the snake (unless the request reverses it) and advances one
// cell once the cooldown allows. An empty direction keeps the heading.
func (s *gameServiceImpl) Move(ctx context.Context, sessionID, direction string) (*MoveResult, error) {
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

	return s.advance(sess, func() engine.Outcome { return sess.Engine.Move(dir) }), nil
}

// Tick auto-advances a single session in its current heading
func (s *gameServiceImpl) Tick(ctx context.Context, sessionID string) (*MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	return s.advance(sess, sess.Engine.AutoMove), nil
}

// TickAll auto-advances every session and returns the ones that changed.
// Ticks do not count as access, so idle sessions still expire.
func (s *gameServiceImpl) TickAll(ctx context.Context) ([]*MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var changed []*MoveResult
	for _, sess := range s.sessions.List() {
		if err := ctx.Err(); err != nil {
			return changed, err
		}
		result := s.advance(sess, sess.Engine.AutoMove)
		if result.Outcome.Advanced() || result.Outcome.Ended() {
			changed = append(changed, result)
		}
	}

	sort.Slice(changed, func(i, j int) bool { return changed[i].SessionID < changed[j].SessionID })
	return changed, nil
}

// TogglePause flips the paused flag of a session
func (s *gameServiceImpl) TogglePause(ctx context.Context, sessionID string) (*MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	s.sessions.UpdateLastAccessed(sessionID)

	sess.Engine.TogglePause()
	event := GameEvent{Type: "resumed", Message: "Game resumed", Timestamp: time.Now()}
	if sess.Engine.IsPaused() {
		event = GameEvent{Type: "paused", Message: "Game paused", Timestamp: time.Now()}
	}

	result := s.result(sess, "")
	result.Events = []GameEvent{event}
	return result, nil
}

// SetSpeed stores a new movement cooldown, clamped to [0.1, 1.0] seconds
func (s *gameServiceImpl) SetSpeed(ctx context.Context, sessionID string, seconds float64) (*MoveResult, error) {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return nil, fmt.Errorf("%w: speed must be a finite number of seconds", engine.ErrInvalidSpeed)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	s.sessions.UpdateLastAccessed(sessionID)

	sess.Engine.SetSpeed(seconds)

	result := s.result(sess, "")
	result.Events = []GameEvent{{
		Type:      "speed",
		Message:   fmt.Sprintf("Movement cooldown set to %.1fs", sess.Engine.GetCooldown().Seconds()),
		Timestamp: time.Now(),
	}}
	return result, nil
}

// Reset starts a new game. Zero width or height keeps the current size.
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string, width, height int) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	s.sessions.UpdateLastAccessed(sessionID)

	current := sess.Engine.GetState()
	if width <= 0 {
		width = current.Width
	}
	if height <= 0 {
		height = current.Height
	}

	if err := sess.Engine.Reset(width, height); err != nil {
		return nil, err
	}

	return sess.Engine.Snapshot(), nil
}

// GetGameState returns a copy of the current game state
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	s.sessions.UpdateLastAccessed(sessionID)

	return sess.Engine.Snapshot(), nil
}

// GetBoard returns the marker grid, its text rendering and the status line
func (s *gameServiceImpl) GetBoard(ctx context.Context, sessionID string) (*BoardView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	s.sessions.UpdateLastAccessed(sessionID)

	board := sess.Engine.Board()
	return &BoardView{
		SessionID:  sess.ID,
		Board:      board,
		Text:       board.String(),
		Status:     sess.Engine.Status(),
		HighScore:  sess.HighScore,
		NextMoveIn: sess.Engine.CooldownRemaining().Seconds(),
	}, nil
}

// ListConfigs returns all available presets
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific preset
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig saves a preset
func (s *gameServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error {
	return s.configs.SaveConfig(configName, config)
}

// advance runs one engine step and describes what happened. Callers hold s.mu.
func (s *gameServiceImpl) advance(sess *Session, step func() engine.Outcome) *MoveResult {
	prevScore := sess.Engine.GetScore()
	outcome := step()
	result := s.result(sess, outcome)
	result.Events = extractMoveEvents(sess, outcome, prevScore)
	return result
}

func (s *gameServiceImpl) result(sess *Session, outcome engine.Outcome) *MoveResult {
	highScore := sess.RecordScore()
	state := sess.Engine.Snapshot()
	return &MoveResult{
		SessionID: sess.ID,
		Outcome:   outcome,
		Moved:     outcome.Advanced(),
		GameState: state,
		HighScore: highScore,
		Message:   state.Message,
	}
}

func (s *gameServiceImpl) sessionInfo(sess *Session) *SessionInfo {
	return &SessionInfo{
		ID:             sess.ID,
		ConfigName:     s.getConfigID(sess.Config.Name), // Return config_id consistently
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		HighScore:      sess.RecordScore(),
		GameState:      sess.Engine.Snapshot(),
		GameConfig:     sess.Config,
	}
}

// extractMoveEvents analyzes an outcome and generates events
func extractMoveEvents(sess *Session, outcome engine.Outcome, prevScore int) []GameEvent {
	if !outcome.Advanced() && !outcome.Ended() {
		return nil
	}

	now := time.Now()
	state := sess.Engine.GetState()
	var events []GameEvent

	if outcome.Advanced() {
		events = append(events, GameEvent{
			Type:      "move",
			Message:   fmt.Sprintf("Moved %s", state.Direction),
			Timestamp: now,
			Position:  state.Head(),
		})
	}

	if state.Score > prevScore {
		events = append(events, GameEvent{
			Type:      "food_eaten",
			Message:   fmt.Sprintf("Food eaten! Score: %d", state.Score),
			Timestamp: now,
			Position:  state.Head(),
		})
	}

	if outcome.Ended() {
		events = append(events, GameEvent{
			Type:      "game_over",
			Message:   fmt.Sprintf("%s (%s)", state.Message, state.DeathCause),
			Timestamp: now,
			Position:  state.Head(),
		})
	}

	return events
}
