package engine

import (
	"math/rand"
	"testing"
	"time"
)

// placeScenario overwrites the live state with a known layout
func placeScenario(e *GameEngine, snake []Position, dir Direction, food Position) {
	e.state.Snake = append([]Position(nil), snake...)
	e.state.Direction = dir
	e.state.Food = food
}

func TestMove_AdvancesAfterCooldown(t *testing.T) {
	e, clock := newTestEngine(t, createTestConfig())
	placeScenario(e, []Position{{10, 10}, {9, 10}, {8, 10}}, Right, Position{12, 10})

	clock.Advance(300 * time.Millisecond)
	if got := e.Move(NoDirection); got != OutcomeMoved {
		t.Fatalf("Expected moved, got %s", got)
	}

	expected := []Position{{11, 10}, {10, 10}, {9, 10}}
	snake := e.GetState().Snake
	if len(snake) != 3 {
		t.Fatalf("Expected length 3, got %d", len(snake))
	}
	for i := range expected {
		if snake[i] != expected[i] {
			t.Errorf("Segment %d: expected %v, got %v", i, expected[i], snake[i])
		}
	}
	if e.GetScore() != 0 {
		t.Errorf("Expected no food eaten, score %d", e.GetScore())
	}
	if e.GetState().Food != (Position{12, 10}) {
		t.Errorf("Expected food to stay at (12,10), got %v", e.GetState().Food)
	}
	if !e.GetState().LastMoveAt.Equal(clock.Now()) {
		t.Error("Expected last move time to be updated")
	}
}

func TestMove_WallCollision(t *testing.T) {
	e, clock := newTestEngine(t, createTestConfig())
	snake := []Position{{19, 10}, {18, 10}, {17, 10}}
	placeScenario(e, snake, Right, Position{0, 0})

	clock.Advance(time.Second)
	if got := e.Move(NoDirection); got != OutcomeHitWall {
		t.Fatalf("Expected hit_wall, got %s", got)
	}

	state := e.GetState()
	if !state.GameOver {
		t.Fatal("Expected game over after hitting the wall")
	}
	if state.DeathCause != DeathCauseWallCollision {
		t.Errorf("Expected death cause %q, got %q", DeathCauseWallCollision, state.DeathCause)
	}
	for i := range snake {
		if state.Snake[i] != snake[i] {
			t.Errorf("Expected snake unchanged at %d: %v vs %v", i, snake[i], state.Snake[i])
		}
	}
}

func TestMove_WallCollisionEveryEdge(t *testing.T) {
	tests := []struct {
		name  string
		snake []Position
		dir   Direction
	}{
		{"top", []Position{{5, 0}, {5, 1}, {5, 2}}, Up},
		{"bottom", []Position{{5, 19}, {5, 18}, {5, 17}}, Down},
		{"left", []Position{{0, 5}, {1, 5}, {2, 5}}, Left},
		{"right", []Position{{19, 5}, {18, 5}, {17, 5}}, Right},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, clock := newTestEngine(t, createTestConfig())
			placeScenario(e, tt.snake, tt.dir, Position{10, 10})
			clock.Advance(time.Second)
			if got := e.Move(NoDirection); got != OutcomeHitWall {
				t.Errorf("Expected hit_wall, got %s", got)
			}
		})
	}
}

func TestMove_SelfCollision(t *testing.T) {
	e, clock := newTestEngine(t, createTestConfig())
	// Head at (5,5) heading down into its own body at (5,6)
	snake := []Position{{5, 5}, {6, 5}, {6, 6}, {5, 6}, {4, 6}}
	placeScenario(e, snake, Right, Position{0, 0})
	e.state.Direction = Left

	clock.Advance(time.Second)
	if got := e.Move(Down); got != OutcomeHitSelf {
		t.Fatalf("Expected hit_self, got %s", got)
	}
	if e.GetState().DeathCause != DeathCauseSelfCollision {
		t.Errorf("Expected self-collision cause, got %q", e.GetState().DeathCause)
	}
	if e.SnakeLength() != len(snake) {
		t.Errorf("Expected snake unchanged, length %d", e.SnakeLength())
	}
}

func TestMove_TailCellCountsAsOccupied(t *testing.T) {
	e, clock := newTestEngine(t, createTestConfig())
	// Square loop: moving up lands on the tail, which has not moved yet
	snake := []Position{{5, 5}, {6, 5}, {6, 4}, {5, 4}}
	placeScenario(e, snake, Left, Position{0, 0})

	clock.Advance(time.Second)
	if got := e.Move(Up); got != OutcomeHitSelf {
		t.Fatalf("Expected hit_self on tail cell, got %s", got)
	}
}

func TestMove_EatFood(t *testing.T) {
	e, clock := newTestEngine(t, createTestConfig())
	placeScenario(e, []Position{{11, 10}, {10, 10}, {9, 10}}, Right, Position{12, 10})

	clock.Advance(300 * time.Millisecond)
	if got := e.Move(NoDirection); got != OutcomeAte {
		t.Fatalf("Expected ate, got %s", got)
	}

	state := e.GetState()
	if state.Score != 10 {
		t.Errorf("Expected score 10, got %d", state.Score)
	}
	if len(state.Snake) != 4 {
		t.Errorf("Expected snake to grow to 4, got %d", len(state.Snake))
	}
	if state.Head() != (Position{12, 10}) {
		t.Errorf("Expected head on the old food, got %v", state.Head())
	}
	if state.Food == (Position{12, 10}) || state.Occupied(state.Food) {
		t.Errorf("Expected new food off the snake, got %v", state.Food)
	}
	if !IsFoodCell(state.Food) {
		t.Errorf("Expected new food on even coordinates, got %v", state.Food)
	}
	if state.FoodsEaten != 1 {
		t.Errorf("Expected foods eaten 1, got %d", state.FoodsEaten)
	}
}

func TestMove_Cooldown(t *testing.T) {
	e, clock := newTestEngine(t, createTestConfig())
	placeScenario(e, []Position{{10, 10}, {9, 10}, {8, 10}}, Right, Position{0, 0})

	// Construction stamped the clock; nothing has elapsed yet
	if got := e.Move(Up); got != OutcomeTooEarly {
		t.Fatalf("Expected too_early, got %s", got)
	}
	if e.GetDirection() != Right {
		t.Error("A rejected move must not change direction")
	}

	clock.Advance(299 * time.Millisecond)
	if got := e.Move(NoDirection); got != OutcomeTooEarly {
		t.Fatalf("Expected too_early at 299ms, got %s", got)
	}

	clock.Advance(time.Millisecond)
	if got := e.Move(NoDirection); got != OutcomeMoved {
		t.Fatalf("Expected moved at exactly the cooldown, got %s", got)
	}

	// Burst of inputs inside the next window advances at most once
	head := e.GetState().Head()
	for i := 0; i < 5; i++ {
		clock.Advance(50 * time.Millisecond)
		e.Move(Down)
	}
	if e.GetState().Head() != head {
		t.Errorf("Expected no movement within 250ms of the last move, head %v -> %v", head, e.GetState().Head())
	}
	clock.Advance(50 * time.Millisecond)
	if got := e.Move(Down); got != OutcomeMoved {
		t.Errorf("Expected move once the window closes, got %s", got)
	}
}

func TestMove_TwoCallsWithinCooldownProduceOneTransition(t *testing.T) {
	e, clock := newTestEngine(t, createTestConfig())
	placeScenario(e, []Position{{10, 10}, {9, 10}, {8, 10}}, Right, Position{0, 0})

	clock.Advance(time.Second)
	first := e.Move(NoDirection)
	clock.Advance(100 * time.Millisecond)
	second := e.Move(NoDirection)

	if !first.Advanced() {
		t.Fatalf("Expected first move to advance, got %s", first)
	}
	if second.Advanced() {
		t.Errorf("Expected second move inside cooldown to be rejected, got %s", second)
	}
	if e.GetState().Moves != 1 {
		t.Errorf("Expected exactly one accepted move, got %d", e.GetState().Moves)
	}
}

func TestMove_ReverseDirectionIgnored(t *testing.T) {
	tests := []struct {
		current Direction
		snake   []Position
	}{
		{Right, []Position{{10, 10}, {9, 10}, {8, 10}}},
		{Left, []Position{{10, 10}, {11, 10}, {12, 10}}},
		{Up, []Position{{10, 10}, {10, 11}, {10, 12}}},
		{Down, []Position{{10, 10}, {10, 9}, {10, 8}}},
	}

	for _, tt := range tests {
		t.Run(string(tt.current), func(t *testing.T) {
			e, clock := newTestEngine(t, createTestConfig())
			placeScenario(e, tt.snake, tt.current, Position{0, 0})

			clock.Advance(time.Second)
			got := e.Move(tt.current.Opposite())

			if e.GetDirection() != tt.current {
				t.Errorf("Expected direction to stay %s, got %s", tt.current, e.GetDirection())
			}
			if got != OutcomeMoved {
				t.Errorf("Expected the snake to keep going, got %s", got)
			}
			expected := tt.snake[0].Add(tt.current)
			if e.GetState().Head() != expected {
				t.Errorf("Expected head %v, got %v", expected, e.GetState().Head())
			}
		})
	}
}

func TestMove_Turn(t *testing.T) {
	e, clock := newTestEngine(t, createTestConfig())
	placeScenario(e, []Position{{10, 10}, {9, 10}, {8, 10}}, Right, Position{0, 0})

	clock.Advance(time.Second)
	e.Move(Up)

	if e.GetDirection() != Up {
		t.Errorf("Expected direction up, got %s", e.GetDirection())
	}
	if e.GetState().Head() != (Position{10, 9}) {
		t.Errorf("Expected head (10,9), got %v", e.GetState().Head())
	}
}

func TestMove_PausedBlocksMovement(t *testing.T) {
	e, clock := newTestEngine(t, createTestConfig())
	placeScenario(e, []Position{{10, 10}, {9, 10}, {8, 10}}, Right, Position{12, 10})
	e.TogglePause()

	for _, d := range append(Directions(), NoDirection) {
		clock.Advance(time.Second)
		if got := e.Move(d); got != OutcomeBlocked {
			t.Errorf("Move(%q) while paused: expected blocked, got %s", d, got)
		}
	}
	if got := e.AutoMove(); got != OutcomeBlocked {
		t.Errorf("AutoMove while paused: expected blocked, got %s", got)
	}

	if e.GetState().Head() != (Position{10, 10}) || e.GetScore() != 0 {
		t.Error("Expected snake and score unchanged while paused")
	}
	if e.GetDirection() != Right {
		t.Error("Expected direction unchanged while paused")
	}
}

func TestTogglePause_Twice(t *testing.T) {
	e, _ := newTestEngine(t, createTestConfig())
	before := e.Snapshot()

	e.TogglePause()
	if !e.IsPaused() {
		t.Fatal("Expected paused after first toggle")
	}
	if e.Status() != "Paused - Score: 0" {
		t.Errorf("Unexpected status %q", e.Status())
	}
	e.TogglePause()

	after := e.GetState()
	if after.Paused != before.Paused {
		t.Error("Expected paused restored")
	}
	if after.Score != before.Score || after.GameOver != before.GameOver || after.Head() != before.Head() || after.Food != before.Food {
		t.Error("Expected no other side effects from toggling pause")
	}
	if !after.LastMoveAt.Equal(before.LastMoveAt) {
		t.Error("Expected last move time untouched by pause")
	}
}

func TestTogglePause_AfterGameOver(t *testing.T) {
	e, clock := newTestEngine(t, createTestConfig())
	placeScenario(e, []Position{{19, 10}, {18, 10}, {17, 10}}, Right, Position{0, 0})
	clock.Advance(time.Second)
	e.Move(NoDirection)

	e.TogglePause()
	if !e.IsGameOver() {
		t.Error("Pause must not clear game over")
	}
	if e.Status() != "Game Over! Final Score: 0" {
		t.Errorf("Game over must outrank paused in status, got %q", e.Status())
	}
}

func TestMove_GameOverIsTerminal(t *testing.T) {
	e, clock := newTestEngine(t, createTestConfig())
	placeScenario(e, []Position{{19, 10}, {18, 10}, {17, 10}}, Right, Position{0, 0})
	e.state.Score = 30
	clock.Advance(time.Second)
	e.Move(NoDirection)

	before := e.Snapshot()
	for i := 0; i < 10; i++ {
		clock.Advance(time.Second)
		for _, d := range Directions() {
			if got := e.Move(d); got != OutcomeBlocked {
				t.Fatalf("Expected blocked after game over, got %s", got)
			}
		}
		e.AutoMove()
	}

	after := e.GetState()
	if after.Score != before.Score || after.Food != before.Food || len(after.Snake) != len(before.Snake) {
		t.Error("Expected score, food and snake frozen after game over")
	}
	for i := range before.Snake {
		if after.Snake[i] != before.Snake[i] {
			t.Fatalf("Expected snake frozen at %d", i)
		}
	}
}

func TestAutoMove(t *testing.T) {
	e, clock := newTestEngine(t, createTestConfig())
	placeScenario(e, []Position{{10, 10}, {9, 10}, {8, 10}}, Right, Position{0, 0})

	// Safe to call far more often than the cooldown
	moved := 0
	for i := 0; i < 54; i++ {
		clock.Advance(50 * time.Millisecond)
		if e.AutoMove().Advanced() {
			moved++
		}
	}
	// 2.7 seconds at a 300ms cooldown
	if moved != 9 {
		t.Errorf("Expected 9 auto moves in 2.7s, got %d", moved)
	}
	if e.GetState().Head() != (Position{19, 10}) {
		t.Errorf("Expected head at (19,10), got %v", e.GetState().Head())
	}
}

func TestSetSpeed(t *testing.T) {
	tests := []struct {
		seconds  float64
		expected time.Duration
	}{
		{5.0, time.Second},
		{0.01, 100 * time.Millisecond},
		{0.5, 500 * time.Millisecond},
		{0.1, 100 * time.Millisecond},
		{1.0, time.Second},
		{-3, 100 * time.Millisecond},
	}

	for _, tt := range tests {
		e, _ := newTestEngine(t, createTestConfig())
		e.SetSpeed(tt.seconds)
		if e.GetCooldown() != tt.expected {
			t.Errorf("SetSpeed(%v): expected %v, got %v", tt.seconds, tt.expected, e.GetCooldown())
		}
	}
}

func TestSetSpeed_DoesNotRewindLastMove(t *testing.T) {
	e, clock := newTestEngine(t, createTestConfig())
	placeScenario(e, []Position{{10, 10}, {9, 10}, {8, 10}}, Right, Position{0, 0})
	stamp := e.GetState().LastMoveAt

	clock.Advance(200 * time.Millisecond)
	e.SetSpeed(0.1)
	if !e.GetState().LastMoveAt.Equal(stamp) {
		t.Fatal("SetSpeed must not touch the last move time")
	}
	// The new cooldown applies on the next evaluation
	if got := e.Move(NoDirection); got != OutcomeMoved {
		t.Errorf("Expected the faster speed to allow a move at 200ms, got %s", got)
	}

	e.SetSpeed(1.0)
	clock.Advance(500 * time.Millisecond)
	if got := e.Move(NoDirection); got != OutcomeTooEarly {
		t.Errorf("Expected the slower speed to reject a move at 500ms, got %s", got)
	}
}

func TestCooldownRemaining(t *testing.T) {
	e, clock := newTestEngine(t, createTestConfig())

	if got := e.CooldownRemaining(); got != 300*time.Millisecond {
		t.Errorf("Expected 300ms remaining, got %v", got)
	}
	clock.Advance(100 * time.Millisecond)
	if got := e.CooldownRemaining(); got != 200*time.Millisecond {
		t.Errorf("Expected 200ms remaining, got %v", got)
	}
	clock.Advance(time.Second)
	if got := e.CooldownRemaining(); got != 0 {
		t.Errorf("Expected 0 remaining, got %v", got)
	}
}

func TestGenerateFood_EvenCoordinates(t *testing.T) {
	sizes := [][2]int{{20, 20}, {15, 15}, {25, 25}, {30, 30}, {5, 7}, {4, 3}}

	for _, size := range sizes {
		config := createTestConfig()
		config.Width, config.Height = size[0], size[1]
		e, _ := newTestEngine(t, config)

		seen := map[Position]bool{}
		for i := 0; i < 5000; i++ {
			food, ok := e.generateFood(e.state)
			if !ok {
				t.Fatalf("%dx%d: expected a free food cell", size[0], size[1])
			}
			if !IsFoodCell(food) || !e.state.InBounds(food) || e.state.Occupied(food) {
				t.Fatalf("%dx%d: invalid food %v", size[0], size[1], food)
			}
			seen[food] = true
		}
		free := countFreeFoodCells(size[0], size[1], e.state.Snake)
		if len(seen) != free {
			t.Errorf("%dx%d: expected all %d free sub-grid cells to be reachable, saw %d", size[0], size[1], free, len(seen))
		}
	}
}

func TestGenerateFood_OddDimensionsReachLastCell(t *testing.T) {
	// (width-1)/2 on a 15-wide board allows x=14
	config := createTestConfig()
	config.Width, config.Height = 15, 15
	e, _ := newTestEngine(t, config)

	maxX := 0
	for i := 0; i < 500; i++ {
		food, _ := e.generateFood(e.state)
		if food.X > maxX {
			maxX = food.X
		}
	}
	if maxX != 14 {
		t.Errorf("Expected food to reach x=14, max was %d", maxX)
	}
}

func TestMove_BoardFull(t *testing.T) {
	config := createTestConfig()
	config.Width, config.Height = 4, 3
	e, clock := newTestEngine(t, config)

	// Cover every even cell except (2,0), which holds the food
	placeScenario(e, []Position{{2, 1}, {2, 2}, {1, 2}, {0, 2}, {0, 1}, {0, 0}}, Up, Position{2, 0})

	clock.Advance(time.Second)
	if got := e.Move(Up); got != OutcomeBoardFull {
		t.Fatalf("Expected board_full, got %s", got)
	}
	state := e.GetState()
	if !state.GameOver || state.DeathCause != DeathCauseBoardFull {
		t.Errorf("Expected game over with board-full cause, got over=%v cause=%q", state.GameOver, state.DeathCause)
	}
	if state.Score != 10 {
		t.Errorf("Expected the final meal to count, score %d", state.Score)
	}

	// The last food is under the head, so the board shows none
	board := e.Board()
	if got := board.Count(FoodMarker); got != 0 {
		t.Errorf("Expected no food marker after board-full, got %d", got)
	}
	if got := board.Count(HeadMarker); got != 1 {
		t.Errorf("Expected one head marker, got %d", got)
	}
	if board[0][2] != HeadMarker {
		t.Errorf("Expected the head on the eaten food cell, got %q", board[0][2])
	}
}

// TestInvariants_RandomPlay drives the engine with random input and checks
// every reachable state.
func TestInvariants_RandomPlay(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		config := createTestConfig()
		clock := NewMockClock(testStart)
		e, err := NewEngine(config, WithClock(clock), WithRand(rand.New(rand.NewSource(seed))))
		if err != nil {
			t.Fatal(err)
		}
		input := rand.New(rand.NewSource(seed * 7))
		dirs := append(Directions(), NoDirection)

		lastScore := 0
		for step := 0; step < 2000 && !e.IsGameOver(); step++ {
			clock.Advance(time.Duration(input.Intn(400)) * time.Millisecond)
			switch input.Intn(20) {
			case 0:
				e.TogglePause()
			case 1:
				e.SetSpeed(input.Float64())
			}
			prevScore := e.GetScore()
			prevLen := e.SnakeLength()
			outcome := e.Move(dirs[input.Intn(len(dirs))])

			state := e.GetState()
			checkInvariants(t, state)

			if state.Score < lastScore {
				t.Fatalf("seed %d: score decreased %d -> %d", seed, lastScore, state.Score)
			}
			switch outcome {
			case OutcomeAte, OutcomeBoardFull:
				if state.Score != prevScore+FoodScore || len(state.Snake) != prevLen+1 {
					t.Fatalf("seed %d: meal must add 10 points and one segment", seed)
				}
			default:
				if state.Score != prevScore || len(state.Snake) != prevLen {
					t.Fatalf("seed %d: %s must not change score or length", seed, outcome)
				}
			}
			lastScore = state.Score
		}
	}
}

func checkInvariants(t *testing.T, gs *GameState) {
	t.Helper()
	seen := make(map[Position]bool, len(gs.Snake))
	for _, seg := range gs.Snake {
		if seen[seg] {
			t.Fatalf("duplicate snake segment %v", seg)
		}
		seen[seg] = true
		if !gs.InBounds(seg) {
			t.Fatalf("segment %v out of bounds", seg)
		}
	}
	if gs.DeathCause == DeathCauseBoardFull {
		return
	}
	if !IsFoodCell(gs.Food) || !gs.InBounds(gs.Food) || seen[gs.Food] {
		t.Fatalf("invalid food %v", gs.Food)
	}
	if gs.Score%FoodScore != 0 || gs.Score != gs.FoodsEaten*FoodScore {
		t.Fatalf("score %d inconsistent with %d meals", gs.Score, gs.FoodsEaten)
	}
}
