package main

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/wricardo/snake-game/game/engine"
	"github.com/wricardo/snake-game/shell/terminal"
)

const presetDir = "../../configs"

func TestResolvePreset(t *testing.T) {
	tests := []struct {
		name       string
		size       string
		width      int
		height     int
		speed      float64
		wantWidth  int
		wantHeight int
		wantSpeed  float64
	}{
		{"classic preset", "classic", 0, 0, 0, 20, 20, 0.3},
		{"small preset", "small", 0, 0, 0, 15, 15, 0.3},
		{"large preset", "large.json", 0, 0, 0, 30, 30, 0.3},
		{"width override", "small", 12, 0, 0, 12, 15, 0.3},
		{"full override", "medium", 8, 6, 0.5, 8, 6, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := resolvePreset(presetDir, tt.size, tt.width, tt.height, tt.speed)
			if err != nil {
				t.Fatalf("resolvePreset failed: %v", err)
			}
			if cfg.Width != tt.wantWidth || cfg.Height != tt.wantHeight {
				t.Errorf("Expected %dx%d, got %dx%d", tt.wantWidth, tt.wantHeight, cfg.Width, cfg.Height)
			}
			if cfg.MovementCooldownSeconds != tt.wantSpeed {
				t.Errorf("Expected speed %v, got %v", tt.wantSpeed, cfg.MovementCooldownSeconds)
			}
		})
	}
}

func TestResolvePreset_DoesNotMutateCache(t *testing.T) {
	if _, err := resolvePreset(presetDir, "small", 9, 9, 0); err != nil {
		t.Fatalf("resolvePreset failed: %v", err)
	}
	cfg, err := resolvePreset(presetDir, "small", 0, 0, 0)
	if err != nil {
		t.Fatalf("resolvePreset failed: %v", err)
	}
	if cfg.Width != 15 {
		t.Errorf("Expected the preset to stay 15 wide, got %d", cfg.Width)
	}
}

func TestResolvePreset_Errors(t *testing.T) {
	missingDir := filepath.Join(t.TempDir(), "missing")

	tests := []struct {
		name    string
		dir     string
		size    string
		width   int
		speed   float64
		wantErr error
	}{
		{name: "unknown preset", dir: presetDir, size: "huge"},
		{name: "board too narrow", dir: presetDir, size: "classic", width: 2, wantErr: engine.ErrInvalidBoard},
		{name: "speed too fast", dir: presetDir, size: "classic", speed: 0.01, wantErr: engine.ErrInvalidSpeed},
		{name: "missing dir with named preset", dir: missingDir, size: "small"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := resolvePreset(tt.dir, tt.size, tt.width, 0, tt.speed)
			if err == nil {
				t.Fatal("Expected an error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestResolvePreset_BuiltInClassic(t *testing.T) {
	cfg, err := resolvePreset(filepath.Join(t.TempDir(), "missing"), "classic", 0, 0, 0)
	if err != nil {
		t.Fatalf("Expected the built-in classic board, got %v", err)
	}
	if cfg.Width != engine.DefaultBoardSize || cfg.Height != engine.DefaultBoardSize {
		t.Errorf("Expected %dx%d, got %dx%d", engine.DefaultBoardSize, engine.DefaultBoardSize, cfg.Width, cfg.Height)
	}
}

func TestCommand_Flags(t *testing.T) {
	var (
		got     *engine.GameConfig
		optsLen int
	)
	cmd := newCommand(func(_ context.Context, cfg *engine.GameConfig, opts ...terminal.Option) error {
		got = cfg
		optsLen = len(opts)
		return nil
	})

	args := []string{"snake-tui", "--config-dir", presetDir, "--size", "small", "--width", "12", "--speed", "0.5", "--ascii"}
	if err := cmd.Run(context.Background(), args); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if got == nil {
		t.Fatal("Expected the game to start")
	}
	if got.Name != "small" || got.Width != 12 || got.Height != 15 {
		t.Errorf("Expected small preset resized to 12x15, got %+v", got)
	}
	if got.MovementCooldownSeconds != 0.5 {
		t.Errorf("Expected speed 0.5, got %v", got.MovementCooldownSeconds)
	}
	if optsLen != 2 {
		t.Errorf("Expected tick and glyph options, got %d", optsLen)
	}
}

func TestCommand_Defaults(t *testing.T) {
	var got *engine.GameConfig
	cmd := newCommand(func(_ context.Context, cfg *engine.GameConfig, _ ...terminal.Option) error {
		got = cfg
		return nil
	})

	if err := cmd.Run(context.Background(), []string{"snake-tui", "--config-dir", presetDir}); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if got == nil || got.Name != "classic" {
		t.Errorf("Expected the classic preset by default, got %+v", got)
	}
}

func TestCommand_InvalidBoard(t *testing.T) {
	called := false
	cmd := newCommand(func(context.Context, *engine.GameConfig, ...terminal.Option) error {
		called = true
		return nil
	})

	err := cmd.Run(context.Background(), []string{"snake-tui", "--config-dir", presetDir, "--width", "1"})
	if !errors.Is(err, engine.ErrInvalidBoard) {
		t.Errorf("Expected ErrInvalidBoard, got %v", err)
	}
	if called {
		t.Error("Expected the game not to start")
	}
}
