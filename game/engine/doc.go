// Package engine provides the core game logic for the Snake game.
//
// The engine package implements the game mechanics including:
//   - Grid movement with reverse-direction rejection
//   - Wall and self collision detection
//   - Food placement on the even-coordinate sub-grid and scoring
//   - Pause and speed control with a cooldown-gated auto-advance
//   - Board and status projections for rendering
//
// Core Types:
//
// The Engine interface defines the main contract for game operations,
// implemented by GameEngine. GameState holds the current game state, while
// GameConfig defines a named board preset loaded from JSON files.
//
// Usage:
//
//	eng, err := engine.NewEngine(&engine.GameConfig{Name: "mine", Width: 20, Height: 20})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Called by the shell on every tick; the cooldown decides whether it moves
//	eng.AutoMove()
//
//	// Turn and move on a key press
//	eng.Move(engine.Up)
//	fmt.Print(eng.Board())
//	fmt.Println(eng.Status())
//
// Timing:
//
// Every cooldown check reads an injected Clock. SystemClock is used by
// default; MockClock lets tests advance time without sleeping.
//
// Concurrency:
//
// GameEngine does no locking. Exactly one caller may issue commands at a
// time; the service package provides that serialization.
//
// Game Rules:
//
// The snake starts three segments long at the board center, heading right.
// Each food eaten adds 10 points and one segment. Hitting a wall or the
// snake's own body ends the game. Food only appears where both coordinates
// are even. When no such cell is free after a meal the game ends as
// board-full.
package engine
