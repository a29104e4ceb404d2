// Command snake-tui plays the snake game locally in the terminal.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	"github.com/wricardo/snake-game/game/config"
	"github.com/wricardo/snake-game/game/engine"
	"github.com/wricardo/snake-game/shell/terminal"
)

// playFunc runs one terminal session with the resolved preset
type playFunc func(ctx context.Context, cfg *engine.GameConfig, opts ...terminal.Option) error

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := newCommand(play).Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func newCommand(run playFunc) *cli.Command {
	return &cli.Command{
		Name:  "snake-tui",
		Usage: "Play snake in the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "size",
				Value: config.DefaultConfigID,
				Usage: "Board preset to start from (small, classic, medium, large)",
			},
			&cli.IntFlag{
				Name:  "width",
				Usage: "Board width, overriding the preset",
			},
			&cli.IntFlag{
				Name:  "height",
				Usage: "Board height, overriding the preset",
			},
			&cli.FloatFlag{
				Name:  "speed",
				Usage: "Seconds per move between 0.1 and 1.0, overriding the preset",
			},
			&cli.DurationFlag{
				Name:  "tick",
				Value: terminal.DefaultTick,
				Usage: "How often the game loop checks whether the snake may move",
			},
			&cli.StringFlag{
				Name:    "config-dir",
				Value:   "configs",
				Usage:   "Directory containing board presets",
				Sources: cli.EnvVars("CONFIG_DIR"),
			},
			&cli.BoolFlag{
				Name:  "ascii",
				Usage: "Draw the board with ASCII instead of emoji",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := resolvePreset(cmd.String("config-dir"), cmd.String("size"),
				int(cmd.Int("width")), int(cmd.Int("height")), cmd.Float("speed"))
			if err != nil {
				return err
			}

			opts := []terminal.Option{terminal.WithTick(cmd.Duration("tick"))}
			if cmd.Bool("ascii") {
				opts = append(opts, terminal.WithGlyphs(terminal.ASCIIGlyphs))
			}
			return run(ctx, cfg, opts...)
		},
	}
}

// resolvePreset loads the named preset and applies the size and speed
// overrides. Without a preset directory only the built-in classic board is
// available.
func resolvePreset(dir, size string, width, height int, speed float64) (*engine.GameConfig, error) {
	var base *engine.GameConfig
	manager, err := config.NewManager(dir)
	switch {
	case err == nil:
		base, err = manager.LoadConfig(size)
		if err != nil {
			return nil, fmt.Errorf("failed to load preset %q: %w", size, err)
		}
	case size == config.DefaultConfigID:
		base = engine.DefaultGameConfig()
	default:
		return nil, err
	}

	cfg := *base
	if width > 0 {
		cfg.Width = width
	}
	if height > 0 {
		cfg.Height = height
	}
	if speed > 0 {
		cfg.MovementCooldownSeconds = speed
	}
	if err := engine.ValidateGameConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func play(ctx context.Context, cfg *engine.GameConfig, opts ...terminal.Option) error {
	eng, err := engine.NewEngine(cfg)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to open terminal: %w", err)
	}

	shell := terminal.New(eng, opts...)
	start := time.Now()
	if err := shell.Run(ctx, screen); err != nil {
		return err
	}

	fmt.Printf("Final score: %d | Snake length: %d | High score: %d | Played %s\n",
		eng.GetScore(), eng.SnakeLength(), shell.HighScore(), time.Since(start).Round(time.Second))
	return nil
}
