package engine

import (
	"math"
	"time"
)

// Outcome describes what a Move or AutoMove call did
type Outcome string

const (
	OutcomeMoved     Outcome = "moved"
	OutcomeAte       Outcome = "ate"
	OutcomeTooEarly  Outcome = "too_early"
	OutcomeBlocked   Outcome = "blocked"
	OutcomeHitWall   Outcome = "hit_wall"
	OutcomeHitSelf   Outcome = "hit_self"
	OutcomeBoardFull Outcome = "board_full"
)

// Advanced reports whether the snake moved
func (o Outcome) Advanced() bool {
	return o == OutcomeMoved || o == OutcomeAte || o == OutcomeBoardFull
}

// Ended reports whether the outcome finished the game
func (o Outcome) Ended() bool {
	return o == OutcomeHitWall || o == OutcomeHitSelf || o == OutcomeBoardFull
}

// Move advances the snake one cell, optionally turning first.
// A reverse request is ignored and the snake keeps its heading.
func (e *GameEngine) Move(direction Direction) Outcome {
	gs := e.state
	if gs.GameOver || gs.Paused {
		return OutcomeBlocked
	}

	now := e.clock.Now()
	if now.Sub(gs.LastMoveAt) < gs.MovementCooldown {
		return OutcomeTooEarly
	}

	if direction.Valid() && direction != gs.Direction.Opposite() {
		gs.Direction = direction
	}

	newHead := gs.Head().Add(gs.Direction)

	if !gs.InBounds(newHead) {
		e.endGame(DeathCauseWallCollision)
		return OutcomeHitWall
	}
	if gs.Occupied(newHead) {
		e.endGame(DeathCauseSelfCollision)
		return OutcomeHitSelf
	}

	gs.Snake = append(gs.Snake, Position{})
	copy(gs.Snake[1:], gs.Snake)
	gs.Snake[0] = newHead
	gs.Moves++
	gs.LastMoveAt = now

	outcome := OutcomeMoved
	if newHead == gs.Food {
		gs.Score += FoodScore
		gs.FoodsEaten++
		outcome = OutcomeAte
		if food, ok := e.generateFood(gs); ok {
			gs.Food = food
		} else {
			e.endGame(DeathCauseBoardFull)
			return OutcomeBoardFull
		}
	} else {
		gs.Snake = gs.Snake[:len(gs.Snake)-1]
	}

	gs.Message = statusLine(gs)
	return outcome
}

// AutoMove advances in the current heading once the cooldown has elapsed.
// It is a no-op inside the cooldown window, while paused, or after game over.
func (e *GameEngine) AutoMove() Outcome {
	return e.Move(NoDirection)
}

// TogglePause flips the paused flag
func (e *GameEngine) TogglePause() {
	e.state.Paused = !e.state.Paused
	e.state.Message = statusLine(e.state)
}

// SetSpeed stores seconds, clamped to [0.1, 1.0], as the movement cooldown.
// The last move timestamp is left alone.
func (e *GameEngine) SetSpeed(seconds float64) {
	if math.IsNaN(seconds) {
		return
	}
	seconds = math.Max(MinCooldown.Seconds(), math.Min(MaxCooldown.Seconds(), seconds))
	e.state.MovementCooldown = time.Duration(math.Round(seconds * float64(time.Second)))
}

// CooldownRemaining returns how long until the next move may be accepted
func (e *GameEngine) CooldownRemaining() time.Duration {
	left := e.state.MovementCooldown - e.clock.Now().Sub(e.state.LastMoveAt)
	if left < 0 {
		return 0
	}
	return left
}

func (e *GameEngine) endGame(cause string) {
	e.state.GameOver = true
	e.state.DeathCause = cause
	e.state.Message = statusLine(e.state)
}

// generateFood samples even-coordinate cells until one is off the snake.
// It reports false when every even-coordinate cell is occupied.
func (e *GameEngine) generateFood(gs *GameState) (Position, bool) {
	if countFreeFoodCells(gs.Width, gs.Height, gs.Snake) == 0 {
		return Position{}, false
	}
	cols, rows := FoodGrid(gs.Width, gs.Height)
	for {
		candidate := Position{
			X: 2 * e.rng.Intn(cols),
			Y: 2 * e.rng.Intn(rows),
		}
		if !gs.Occupied(candidate) {
			return candidate, true
		}
	}
}
