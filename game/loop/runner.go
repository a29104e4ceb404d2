package loop

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/wricardo/snake-game/game/engine"
	"github.com/wricardo/snake-game/game/service"
)

// DefaultInterval is how often the runner asks every session to auto-advance.
// It is well below the shortest movement cooldown so moves land on time.
const DefaultInterval = 50 * time.Millisecond

// Ticker auto-advances sessions and reports the ones that changed
type Ticker interface {
	TickAll(ctx context.Context) ([]*service.MoveResult, error)
}

// Publisher pushes a changed session to its watchers
type Publisher interface {
	BroadcastToSession(sessionID string, state *engine.GameState, highScore int)
}

// Runner drives the game clock for every session
type Runner struct {
	ticker    Ticker
	publisher Publisher
	interval  time.Duration
}

// NewRunner creates a runner. A nil publisher discards updates; a
// non-positive interval uses DefaultInterval.
func NewRunner(ticker Ticker, publisher Publisher, interval time.Duration) *Runner {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Runner{
		ticker:    ticker,
		publisher: publisher,
		interval:  interval,
	}
}

// Interval returns the tick period
func (r *Runner) Interval() time.Duration {
	return r.interval
}

// Step runs a single tick and publishes every changed session. It returns
// how many sessions changed.
func (r *Runner) Step(ctx context.Context) (int, error) {
	results, err := r.ticker.TickAll(ctx)
	for _, result := range results {
		if result.Outcome.Ended() {
			log.Printf("[GAME OVER] session=%s score=%d length=%d cause=%s",
				result.SessionID, result.GameState.Score, len(result.GameState.Snake), result.GameState.DeathCause)
		}
		if r.publisher != nil {
			r.publisher.BroadcastToSession(result.SessionID, result.GameState, result.HighScore)
		}
	}
	return len(results), err
}

// Run ticks until ctx is done
func (r *Runner) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	log.Printf("Game loop started (tick every %v)", r.interval)
	defer log.Println("Game loop stopped")

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := r.Step(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("Game loop tick failed: %v", err)
			}
		}
	}
}
