package engine

import (
	"fmt"
	"strings"
)

// Board projects the state onto a Height x Width grid of markers
func (e *GameEngine) Board() Board {
	return BuildBoard(e.state)
}

// Status returns the human-readable status line
func (e *GameEngine) Status() string {
	return statusLine(e.state)
}

// BuildBoard projects any state onto a marker grid. It is a pure function
// of its input. A playing board holds exactly one food marker; a board-full
// game holds none, since its last food lies under the head.
func BuildBoard(gs *GameState) Board {
	if gs == nil {
		return nil
	}
	board := make(Board, gs.Height)
	for y := range board {
		row := make([]Marker, gs.Width)
		for x := range row {
			row[x] = EmptyMarker
		}
		board[y] = row
	}

	for i, seg := range gs.Snake {
		if !gs.InBounds(seg) {
			continue
		}
		if i == 0 {
			board[seg.Y][seg.X] = HeadMarker
		} else {
			board[seg.Y][seg.X] = BodyMarker
		}
	}

	// A board-full game leaves the last food under the head.
	if gs.InBounds(gs.Food) && !gs.Occupied(gs.Food) {
		board[gs.Food.Y][gs.Food.X] = FoodMarker
	}
	return board
}

// Count returns how many cells hold marker m
func (b Board) Count(m Marker) int {
	n := 0
	for _, row := range b {
		for _, cell := range row {
			if cell == m {
				n++
			}
		}
	}
	return n
}

// Render joins the board into lines, drawing empty cells with emptyGlyph
func (b Board) Render(emptyGlyph string) string {
	var sb strings.Builder
	for _, row := range b {
		for _, cell := range row {
			if cell == EmptyMarker {
				sb.WriteString(emptyGlyph)
			} else {
				sb.WriteString(string(cell))
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// String renders the board the way the web page draws it
func (b Board) String() string {
	return b.Render("⬜")
}

func statusLine(gs *GameState) string {
	switch {
	case gs.GameOver:
		return fmt.Sprintf("Game Over! Final Score: %d", gs.Score)
	case gs.Paused:
		return fmt.Sprintf("Paused - Score: %d", gs.Score)
	default:
		return fmt.Sprintf("Playing - Score: %d", gs.Score)
	}
}
