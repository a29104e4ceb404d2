package engine

import (
	"fmt"
	"strings"
	"time"
)

// Direction is the heading of the snake
type Direction string

const (
	Up    Direction = "up"
	Down  Direction = "down"
	Left  Direction = "left"
	Right Direction = "right"

	// NoDirection keeps the current heading
	NoDirection Direction = ""
)

// Marker classifies a projected board cell
type Marker string

const (
	HeadMarker  Marker = "🐍"
	BodyMarker  Marker = "🟢"
	FoodMarker  Marker = "🍎"
	EmptyMarker Marker = " "
)

// DeathCause values recorded when a game ends
const (
	DeathCauseWallCollision = "wall-collision"
	DeathCauseSelfCollision = "self-collision"
	DeathCauseBoardFull     = "board-full"
)

const (
	// Validation constants
	MinBoardSize     = 1
	MaxBoardSize     = 100
	InitialSnakeLen  = 3
	FoodScore        = 10
	DefaultBoardSize = 20

	DefaultCooldown = 300 * time.Millisecond
	MinCooldown     = 100 * time.Millisecond
	MaxCooldown     = time.Second
)

// Position represents x,y coordinates
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns the position one step away in the given direction
func (p Position) Add(d Direction) Position {
	dx, dy := d.Delta()
	return Position{X: p.X + dx, Y: p.Y + dy}
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Board is a Height x Width grid of cell markers, indexed [y][x]
type Board [][]Marker

// GameState represents the complete game state
type GameState struct {
	Width            int           `json:"width"`
	Height           int           `json:"height"`
	Snake            []Position    `json:"snake"`
	Direction        Direction     `json:"direction"`
	Food             Position      `json:"food"`
	Score            int           `json:"score"`
	GameOver         bool          `json:"game_over"`
	Paused           bool          `json:"paused"`
	MovementCooldown time.Duration `json:"movement_cooldown"`
	LastMoveAt       time.Time     `json:"last_move_at"`

	// Counters since the last reset
	Moves      int `json:"moves"`
	FoodsEaten int `json:"foods_eaten"`

	DeathCause string `json:"death_cause,omitempty"`
	Message    string `json:"message"`
}

// Head returns the first snake segment
func (gs *GameState) Head() Position {
	return gs.Snake[0]
}

// InBounds reports whether p lies on the board
func (gs *GameState) InBounds(p Position) bool {
	return p.X >= 0 && p.X < gs.Width && p.Y >= 0 && p.Y < gs.Height
}

// Occupied reports whether any snake segment is at p
func (gs *GameState) Occupied(p Position) bool {
	for _, seg := range gs.Snake {
		if seg == p {
			return true
		}
	}
	return false
}

// CooldownSeconds returns the movement cooldown in seconds
func (gs *GameState) CooldownSeconds() float64 {
	return gs.MovementCooldown.Seconds()
}

// Clone returns a deep copy of the state
func (gs *GameState) Clone() *GameState {
	if gs == nil {
		return nil
	}
	c := *gs
	c.Snake = append([]Position(nil), gs.Snake...)
	return &c
}

// ParseDirection converts user input into a Direction.
// Empty input yields NoDirection.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return NoDirection, nil
	case "up", "u":
		return Up, nil
	case "down", "d":
		return Down, nil
	case "left", "l":
		return Left, nil
	case "right", "r":
		return Right, nil
	}
	return NoDirection, fmt.Errorf("%w: %q", ErrInvalidDirection, s)
}

// Valid reports whether d is one of the four headings
func (d Direction) Valid() bool {
	switch d {
	case Up, Down, Left, Right:
		return true
	}
	return false
}

// Opposite returns the reverse heading
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	}
	return NoDirection
}

// Delta returns the (dx, dy) step. Up decreases Y.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	}
	return 0, 0
}

// Directions lists the four headings
func Directions() []Direction {
	return []Direction{Up, Down, Left, Right}
}
