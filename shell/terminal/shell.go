package terminal

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/wricardo/snake-game/game/engine"
)

// DefaultTick is how often the shell gives the snake a chance to advance.
// The engine cooldown decides whether it actually moves.
const DefaultTick = 50 * time.Millisecond

// speedStep is the cooldown change per +/- key press, in seconds
const speedStep = 0.1

// Canvas is the part of tcell.Screen the renderer draws on
type Canvas interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Size() (width, height int)
}

// Glyphs selects the runes used for each board cell. CellWidth is the
// number of terminal columns one cell takes.
type Glyphs struct {
	Head      rune
	Body      rune
	Food      rune
	Empty     rune
	CellWidth int
}

var (
	// EmojiGlyphs match the markers of the web page
	EmojiGlyphs = Glyphs{Head: '🐍', Body: '🟢', Food: '🍎', Empty: '⬜', CellWidth: 2}
	// ASCIIGlyphs work on terminals without emoji fonts
	ASCIIGlyphs = Glyphs{Head: '@', Body: 'o', Food: '*', Empty: '.', CellWidth: 1}
)

var (
	textStyle  = tcell.StyleDefault
	titleStyle = tcell.StyleDefault.Bold(true)
	headStyle  = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	bodyStyle  = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	foodStyle  = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	emptyStyle = tcell.StyleDefault.Foreground(tcell.ColorGray)
	overStyle  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorMaroon).Bold(true)
)

// Shell plays one local game in a terminal
type Shell struct {
	engine    engine.Engine
	glyphs    Glyphs
	tick      time.Duration
	pending   engine.Direction
	highScore int
}

// Option configures a Shell
type Option func(*Shell)

// WithGlyphs overrides the board runes
func WithGlyphs(g Glyphs) Option {
	return func(s *Shell) {
		if g.CellWidth < 1 {
			g.CellWidth = 1
		}
		s.glyphs = g
	}
}

// WithTick overrides DefaultTick
func WithTick(d time.Duration) Option {
	return func(s *Shell) {
		if d > 0 {
			s.tick = d
		}
	}
}

// New creates a shell around eng
func New(eng engine.Engine, opts ...Option) *Shell {
	s := &Shell{
		engine: eng,
		glyphs: EmojiGlyphs,
		tick:   DefaultTick,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// HighScore returns the best score since the shell started
func (s *Shell) HighScore() int {
	return s.highScore
}

// Run initializes screen and plays until the user quits or ctx is done
func (s *Shell) Run(ctx context.Context, screen tcell.Screen) error {
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	defer screen.Fini()
	screen.HideCursor()

	events := make(chan tcell.Event, 32)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	s.render(screen)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			switch e := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
			case *tcell.EventKey:
				if !s.handleKey(e.Key(), e.Rune()) {
					return nil
				}
			}
			s.render(screen)
		case <-ticker.C:
			if s.step().Advanced() || s.engine.IsGameOver() {
				s.render(screen)
			}
		}
	}
}

func (s *Shell) render(screen tcell.Screen) {
	s.Draw(screen)
	screen.Show()
}

// handleKey applies one key press. It returns false when the user quits.
func (s *Shell) handleKey(key tcell.Key, r rune) bool {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyUp:
		s.pending = engine.Up
	case tcell.KeyDown:
		s.pending = engine.Down
	case tcell.KeyLeft:
		s.pending = engine.Left
	case tcell.KeyRight:
		s.pending = engine.Right
	case tcell.KeyRune:
		switch r {
		case 'q', 'Q':
			return false
		case 'w', 'W':
			s.pending = engine.Up
		case 's', 'S':
			s.pending = engine.Down
		case 'a', 'A':
			s.pending = engine.Left
		case 'd', 'D':
			s.pending = engine.Right
		case ' ', 'p', 'P':
			s.engine.TogglePause()
		case 'n', 'N':
			s.newGame()
		case '+', '=':
			s.engine.SetSpeed(s.engine.GetCooldown().Seconds() - speedStep)
		case '-', '_':
			s.engine.SetSpeed(s.engine.GetCooldown().Seconds() + speedStep)
		}
	}
	return true
}

// step lets the snake advance, turning toward the last requested heading.
// The request is kept until the cooldown lets a move through.
func (s *Shell) step() engine.Outcome {
	outcome := s.engine.Move(s.pending)
	if outcome != engine.OutcomeTooEarly {
		s.pending = engine.NoDirection
	}
	s.recordScore()
	return outcome
}

func (s *Shell) newGame() {
	gs := s.engine.GetState()
	// The current size was valid at the last reset
	_ = s.engine.Reset(gs.Width, gs.Height)
	s.pending = engine.NoDirection
}

func (s *Shell) recordScore() {
	if score := s.engine.GetScore(); score > s.highScore {
		s.highScore = score
	}
}

// Draw renders the full frame: status line, board, then help or final stats
func (s *Shell) Draw(c Canvas) {
	cw, ch := c.Size()
	for y := 0; y < ch; y++ {
		for x := 0; x < cw; x++ {
			c.SetContent(x, y, ' ', nil, textStyle)
		}
	}

	gs := s.engine.GetState()
	status := fmt.Sprintf("%s | Length: %d | High score: %d | Speed: %.1fs",
		s.engine.Status(), len(gs.Snake), s.highScore, gs.CooldownSeconds())
	drawText(c, 0, 0, status, titleStyle)

	top := 1
	for y, row := range s.engine.Board() {
		for x, cell := range row {
			r, style := s.glyph(cell)
			c.SetContent(x*s.glyphs.CellWidth, top+y, r, nil, style)
		}
	}

	line := top + gs.Height + 1
	if gs.GameOver {
		drawText(c, 0, line, fmt.Sprintf(" GAME OVER (%s) ", gs.DeathCause), overStyle)
		drawText(c, 0, line+1, fmt.Sprintf("Final score: %d | Snake length: %d | High score: %d",
			gs.Score, len(gs.Snake), s.highScore), textStyle)
		drawText(c, 0, line+2, "n: new game  q: quit", textStyle)
		return
	}
	drawText(c, 0, line, "arrows/WASD: move  space/p: pause  +/-: speed  n: new game  q: quit", textStyle)
}

func (s *Shell) glyph(m engine.Marker) (rune, tcell.Style) {
	switch m {
	case engine.HeadMarker:
		return s.glyphs.Head, headStyle
	case engine.BodyMarker:
		return s.glyphs.Body, bodyStyle
	case engine.FoodMarker:
		return s.glyphs.Food, foodStyle
	default:
		return s.glyphs.Empty, emptyStyle
	}
}

func drawText(c Canvas, x, y int, text string, style tcell.Style) {
	i := 0
	for _, r := range text {
		c.SetContent(x+i, y, r, nil, style)
		i++
	}
}
