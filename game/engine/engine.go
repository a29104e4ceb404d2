package engine

import (
	"fmt"
	"math/rand"
	"time"
)

// Engine provides the main interface for game operations
type Engine interface {
	// Commands
	Reset(width, height int) error
	Move(direction Direction) Outcome
	AutoMove() Outcome
	TogglePause()
	SetSpeed(seconds float64)

	// Projections
	Board() Board
	Status() string

	// Read access for display
	GetState() *GameState
	Snapshot() *GameState
	GetScore() int
	IsGameOver() bool
	IsPaused() bool
	SnakeLength() int
	GetDirection() Direction
	GetCooldown() time.Duration
	GetConfig() *GameConfig
}

// GameEngine implements the Engine interface. It performs no locking;
// callers serialize access.
type GameEngine struct {
	state  *GameState
	config *GameConfig
	clock  Clock
	rng    *rand.Rand
}

// Option configures a GameEngine
type Option func(*GameEngine)

// WithClock injects the time source used for cooldown checks
func WithClock(c Clock) Option {
	return func(e *GameEngine) {
		if c != nil {
			e.clock = c
		}
	}
}

// WithRand injects the random source used for food placement
func WithRand(r *rand.Rand) Option {
	return func(e *GameEngine) {
		if r != nil {
			e.rng = r
		}
	}
}

// NewEngine creates a new game engine sized by the provided preset.
// A nil config uses DefaultGameConfig.
func NewEngine(config *GameConfig, opts ...Option) (*GameEngine, error) {
	if config == nil {
		config = DefaultGameConfig()
	}
	if err := ValidateGameConfig(config); err != nil {
		return nil, err
	}

	e := &GameEngine{
		config: config,
		clock:  SystemClock{},
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(e.clock.Now().UnixNano()))
	}

	if err := e.Reset(config.Width, config.Height); err != nil {
		return nil, err
	}
	return e, nil
}

// NewEngineWithDefaults creates an engine on the classic 20x20 board
func NewEngineWithDefaults(opts ...Option) *GameEngine {
	e, err := NewEngine(DefaultGameConfig(), opts...)
	if err != nil {
		// The default preset is always valid.
		panic(fmt.Sprintf("engine: default config rejected: %v", err))
	}
	return e
}

// Reset replaces the state with a fresh game on a width x height board
func (e *GameEngine) Reset(width, height int) error {
	if err := ValidateBoard(width, height); err != nil {
		return err
	}

	state := &GameState{
		Width:            width,
		Height:           height,
		Snake:            initialSnake(width, height),
		Direction:        Right,
		MovementCooldown: e.config.Cooldown(),
		LastMoveAt:       e.clock.Now(),
	}
	food, ok := e.generateFood(state)
	if !ok {
		return fmt.Errorf("%w: %dx%d leaves no cell for food", ErrInvalidBoard, width, height)
	}
	state.Food = food
	state.Message = statusLine(state)

	e.state = state
	return nil
}

// GetState returns the live game state
func (e *GameEngine) GetState() *GameState {
	return e.state
}

// Snapshot returns a deep copy of the state safe to hand to other goroutines
func (e *GameEngine) Snapshot() *GameState {
	return e.state.Clone()
}

// GetScore returns the current score
func (e *GameEngine) GetScore() int {
	return e.state.Score
}

// IsGameOver returns whether the game is over
func (e *GameEngine) IsGameOver() bool {
	return e.state.GameOver
}

// IsPaused returns whether the game is paused
func (e *GameEngine) IsPaused() bool {
	return e.state.Paused
}

// SnakeLength returns the number of snake segments
func (e *GameEngine) SnakeLength() int {
	return len(e.state.Snake)
}

// GetDirection returns the current heading
func (e *GameEngine) GetDirection() Direction {
	return e.state.Direction
}

// GetCooldown returns the minimum interval between accepted moves
func (e *GameEngine) GetCooldown() time.Duration {
	return e.state.MovementCooldown
}

// GetConfig returns the preset the engine was built from
func (e *GameEngine) GetConfig() *GameConfig {
	return e.config
}

// initialSnake places a three-segment snake with its head at the board
// center and its body trailing in the negative-x direction.
func initialSnake(width, height int) []Position {
	cx, cy := width/2, height/2
	snake := make([]Position, InitialSnakeLen)
	for i := range snake {
		snake[i] = Position{X: cx - i, Y: cy}
	}
	return snake
}
