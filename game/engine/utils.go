package engine

// FoodGrid returns how many even x and even y values fit on the board.
// Food only ever lands on this coarser sub-grid.
func FoodGrid(width, height int) (cols, rows int) {
	return (width-1)/2 + 1, (height-1)/2 + 1
}

// FoodCellCount returns the number of cells food can occupy on an empty board
func FoodCellCount(width, height int) int {
	cols, rows := FoodGrid(width, height)
	return cols * rows
}

// IsFoodCell reports whether p has both coordinates even
func IsFoodCell(p Position) bool {
	return p.X%2 == 0 && p.Y%2 == 0
}

func countFreeFoodCells(width, height int, snake []Position) int {
	occupied := 0
	for _, seg := range snake {
		if seg.X >= 0 && seg.X < width && seg.Y >= 0 && seg.Y < height && IsFoodCell(seg) {
			occupied++
		}
	}
	return FoodCellCount(width, height) - occupied
}

// ManhattanDistance calculates the Manhattan distance between two positions
func ManhattanDistance(from, to Position) int {
	dx := from.X - to.X
	if dx < 0 {
		dx = -dx
	}
	dy := from.Y - to.Y
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// SafeDirections returns the headings that would not end the game on the
// next step, excluding the reverse of the current heading.
func SafeDirections(gs *GameState) []Direction {
	var safe []Direction
	for _, d := range Directions() {
		if d == gs.Direction.Opposite() {
			continue
		}
		next := gs.Head().Add(d)
		if !gs.InBounds(next) || gs.Occupied(next) {
			continue
		}
		safe = append(safe, d)
	}
	return safe
}
