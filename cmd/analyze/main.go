// Command analyze prints quick, human-readable heuristics about the board
// presets in the project's configs directory. It summarizes dimensions,
// movement speed, the food sub-grid and how long the starting snake has
// before it reaches the wall without any input.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/wricardo/snake-game/game/config"
	"github.com/wricardo/snake-game/game/engine"
)

// tightStart flags presets where an idle snake hits the wall this quickly
const tightStart = 2 * time.Second

// Analysis holds the derived numbers for one preset.
type Analysis struct {
	Name        string
	Description string
	Width       int
	Height      int
	Cells       int
	FoodCols    int
	FoodRows    int
	FoodCells   int
	FreeFood    int
	Start       engine.Position
	Cooldown    time.Duration
	WallAhead   int
	TimeToWall  time.Duration
	Crossing    time.Duration
	Farthest    int
}

// FoodRatio is the share of the board food can ever appear on
func (a Analysis) FoodRatio() float64 {
	if a.Cells == 0 {
		return 0
	}
	return float64(a.FoodCells) / float64(a.Cells)
}

// Tight reports whether an idle snake dies before a human can react
func (a Analysis) Tight() bool {
	return a.TimeToWall < tightStart
}

func analyzePreset(cfg *engine.GameConfig) Analysis {
	cols, rows := engine.FoodGrid(cfg.Width, cfg.Height)
	start := engine.Position{X: cfg.Width / 2, Y: cfg.Height / 2}
	cooldown := cfg.Cooldown()

	a := Analysis{
		Name:        cfg.Name,
		Description: cfg.Description,
		Width:       cfg.Width,
		Height:      cfg.Height,
		Cells:       cfg.Width * cfg.Height,
		FoodCols:    cols,
		FoodRows:    rows,
		FoodCells:   engine.FoodCellCount(cfg.Width, cfg.Height),
		Start:       start,
		Cooldown:    cooldown,
		WallAhead:   cfg.Width - 1 - start.X,
		Crossing:    time.Duration(cfg.Width) * cooldown,
	}

	// The initial snake trails left of the head
	a.FreeFood = a.FoodCells
	for i := 0; i < engine.InitialSnakeLen; i++ {
		if engine.IsFoodCell(engine.Position{X: start.X - i, Y: start.Y}) {
			a.FreeFood--
		}
	}

	// Moving into the wall is the (WallAhead+1)th step
	a.TimeToWall = time.Duration(a.WallAhead+1) * cooldown

	lastX, lastY := (cols-1)*2, (rows-1)*2
	for _, corner := range []engine.Position{{X: 0, Y: 0}, {X: lastX, Y: 0}, {X: 0, Y: lastY}, {X: lastX, Y: lastY}} {
		if d := engine.ManhattanDistance(start, corner); d > a.Farthest {
			a.Farthest = d
		}
	}
	return a
}

func printAnalysis(w io.Writer, a Analysis) {
	fmt.Fprintf(w, "Name: %s\n", a.Name)
	if a.Description != "" {
		fmt.Fprintf(w, "Description: %s\n", a.Description)
	}
	fmt.Fprintf(w, "Board: %dx%d (%d cells)\n", a.Width, a.Height, a.Cells)
	fmt.Fprintf(w, "Food grid: %dx%d = %d cells (%.0f%% of board), %d free at start\n",
		a.FoodCols, a.FoodRows, a.FoodCells, a.FoodRatio()*100, a.FreeFood)
	fmt.Fprintf(w, "Speed: %.2fs per move (%.1f moves/s), %.1fs to cross the board\n",
		a.Cooldown.Seconds(), 1/a.Cooldown.Seconds(), a.Crossing.Seconds())
	fmt.Fprintf(w, "Start: head at %s heading right, %d cells from the wall (%.1fs idle)\n",
		a.Start, a.WallAhead, a.TimeToWall.Seconds())
	fmt.Fprintf(w, "Farthest food: %d moves away\n", a.Farthest)
	if a.Tight() {
		fmt.Fprintf(w, "⚠ Tight start: an idle snake hits the wall in under %s\n", tightStart)
	}
}

// run analyzes every preset the config manager finds in dir
func run(dir string, w io.Writer) error {
	manager, err := config.NewManager(dir)
	if err != nil {
		return err
	}

	presets, err := manager.ListConfigs()
	if err != nil {
		return err
	}

	for _, info := range presets {
		cfg, err := manager.LoadConfig(info.ConfigID)
		if err != nil {
			fmt.Fprintf(w, "\n=== %s ===\nError: %v\n", info.ConfigID, err)
			continue
		}
		fmt.Fprintf(w, "\n=== Analyzing %s ===\n", info.ConfigID)
		printAnalysis(w, analyzePreset(cfg))
	}
	return nil
}

func main() {
	dir := flag.String("config-dir", "configs", "Directory containing board presets")
	flag.Parse()

	if err := run(*dir, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
