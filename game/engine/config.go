package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"
)

var (
	ErrInvalidBoard     = errors.New("invalid board")
	ErrInvalidSpeed     = errors.New("invalid speed")
	ErrInvalidDirection = errors.New("invalid direction")
)

// GameConfig is a named board preset loaded from JSON
type GameConfig struct {
	Name                    string  `json:"name"`
	Description             string  `json:"description"`
	Width                   int     `json:"width"`
	Height                  int     `json:"height"`
	MovementCooldownSeconds float64 `json:"movement_cooldown_seconds,omitempty"`
}

// DefaultGameConfig returns the classic 20x20 preset
func DefaultGameConfig() *GameConfig {
	return &GameConfig{
		Name:                    "classic",
		Description:             "Classic 20x20 board",
		Width:                   DefaultBoardSize,
		Height:                  DefaultBoardSize,
		MovementCooldownSeconds: DefaultCooldown.Seconds(),
	}
}

// Cooldown returns the preset's movement cooldown, or DefaultCooldown when unset
func (c *GameConfig) Cooldown() time.Duration {
	if c == nil || c.MovementCooldownSeconds == 0 {
		return DefaultCooldown
	}
	return time.Duration(math.Round(c.MovementCooldownSeconds * float64(time.Second)))
}

// ValidateBoard checks that a width x height board can hold the starting
// snake and at least one food cell.
func ValidateBoard(width, height int) error {
	if width < MinBoardSize || height < MinBoardSize {
		return fmt.Errorf("%w: width and height must be at least %d, got %dx%d", ErrInvalidBoard, MinBoardSize, width, height)
	}
	if width > MaxBoardSize || height > MaxBoardSize {
		return fmt.Errorf("%w: width and height must be at most %d, got %dx%d", ErrInvalidBoard, MaxBoardSize, width, height)
	}
	// The body extends InitialSnakeLen-1 cells left of the centered head.
	if width/2 < InitialSnakeLen-1 {
		return fmt.Errorf("%w: width %d is too narrow for a %d-segment snake", ErrInvalidBoard, width, InitialSnakeLen)
	}
	if countFreeFoodCells(width, height, initialSnake(width, height)) == 0 {
		return fmt.Errorf("%w: %dx%d leaves no cell for food", ErrInvalidBoard, width, height)
	}
	return nil
}

// ValidateGameConfig validates a preset for correctness and playability
func ValidateGameConfig(config *GameConfig) error {
	if config == nil {
		return fmt.Errorf("config validation: config is nil")
	}
	if config.Name == "" {
		return fmt.Errorf("config validation: name is required")
	}
	if err := ValidateBoard(config.Width, config.Height); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}
	if config.MovementCooldownSeconds != 0 {
		cd := config.Cooldown()
		if cd < MinCooldown || cd > MaxCooldown {
			return fmt.Errorf("config validation: %w: movement_cooldown_seconds must be between %.1f and %.1f, got %g",
				ErrInvalidSpeed, MinCooldown.Seconds(), MaxCooldown.Seconds(), config.MovementCooldownSeconds)
		}
	}
	return nil
}

// LoadGameConfig loads a preset from a JSON file. Read failures are
// returned unwrapped so callers can test them with fs.ErrNotExist.
func LoadGameConfig(filename string) (*GameConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var config GameConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(filename), err)
	}

	if err := ValidateGameConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
