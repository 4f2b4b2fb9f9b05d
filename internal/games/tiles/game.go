package tiles

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/echo-arcade/internal/core"
	"github.com/vovakirdan/echo-arcade/internal/registry"
)

const (
	tileW     = 5 // "[ ♠ ]"
	tileGapX  = 1
	tileStepY = 2
	hudHeight = 3
)

func init() {
	for _, d := range Difficulties() {
		registry.Register(d.GameID(), func() registry.Game {
			return New(d)
		})
	}
}

// Game adapts a tiles session to the arcade game loop. The flip delay runs
// on game time: every Step advances the scheduler by one tick.
type Game struct {
	difficulty Difficulty
	session    *Session
	clock      *ManualScheduler
	rng        *rand.Rand
	tick       uint64

	cursor       int
	tickInterval time.Duration
	flipDelay    time.Duration
	screenW      int
	screenH      int
	tickRate     int
	paused       bool
}

// New creates a tiles game at the given difficulty; call Reset before use.
func New(d Difficulty) *Game {
	return &Game{difficulty: d}
}

// ID returns the leaderboard variant, e.g. "tiles_medium".
func (g *Game) ID() string { return g.difficulty.GameID() }

// Title returns the display name.
func (g *Game) Title() string {
	name := g.difficulty.String()
	return fmt.Sprintf("Memory Tiles (%s)", name)
}

// Reset deals a new deck. The "flip_delay_ms" option overrides the
// resolution delay.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.Close()

	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tick = 0
	g.cursor = 0
	g.paused = false
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.tickRate = cfg.TickRate
	if g.tickRate <= 0 {
		g.tickRate = core.DefaultConfig().TickRate
	}
	g.tickInterval = time.Second / time.Duration(g.tickRate)
	g.flipDelay = time.Duration(cfg.Option("flip_delay_ms", int(DefaultFlipDelay/time.Millisecond))) * time.Millisecond

	g.clock = NewManualScheduler()
	// Difficulty comes from the registry set, so NewSession cannot fail.
	g.session, _ = NewSession(SessionConfig{
		Difficulty: g.difficulty,
		Rand:       g.rng,
		Scheduler:  g.clock,
		FlipDelay:  g.flipDelay,
	})
}

// Close cancels any pending resolution.
func (g *Game) Close() {
	if g.session != nil {
		g.session.Close()
	}
}

// Step advances game time, then applies cursor movement and flips.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	g.tick++

	if input.Has(core.ActionRestart) {
		g.Reset(core.RuntimeConfig{
			Seed:     g.rng.Int63(),
			ScreenW:  g.screenW,
			ScreenH:  g.screenH,
			TickRate: g.tickRate,
			Options:  map[string]int{"flip_delay_ms": int(g.flipDelay / time.Millisecond)},
		})
		return core.StepResult{State: g.State()}
	}

	if input.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.clock.Advance(g.tickInterval)
	g.moveCursor(input)
	if input.Has(core.ActionConfirm) {
		g.session.Click(g.cursor)
	}

	return core.StepResult{State: g.State()}
}

func (g *Game) moveCursor(input core.InputFrame) {
	w, h := g.difficulty.Dimensions()
	x, y := g.cursor%w, g.cursor/w
	switch {
	case input.Has(core.ActionUp):
		y--
	case input.Has(core.ActionDown):
		y++
	case input.Has(core.ActionLeft):
		x--
	case input.Has(core.ActionRight):
		x++
	}
	x = core.Clamp(x, 0, w-1)
	y = core.Clamp(y, 0, h-1)
	g.cursor = y*w + x
}

// Cursor returns the index of the tile under the cursor.
func (g *Game) Cursor() int { return g.cursor }

// Session exposes the underlying session.
func (g *Game) Session() *Session { return g.session }

// State reports moves as the score; lower is better.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{Paused: g.paused}
	}
	snap := g.session.Snapshot()
	return core.GameState{
		Score:    snap.Moves,
		GameOver: snap.Won,
		Paused:   g.paused,
	}
}

// Snapshot returns the session snapshot.
func (g *Game) Snapshot() Snapshot {
	if g.session == nil {
		return Snapshot{}
	}
	return g.session.Snapshot()
}

// Render draws the HUD and the tile grid.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.session == nil {
		return
	}
	snap := g.session.Snapshot()

	hud := fmt.Sprintf(" %s  Moves: %d  Pairs: %d/%d", g.Title(), snap.Moves, snap.Matches, snap.Pairs)
	dst.DrawText(0, 0, hud)
	status := " Arrows move, Enter flips"
	if snap.State == StateProcessing {
		status = " Checking..."
	}
	dst.DrawTextColored(0, 1, status, core.ColorGray)
	for x := range dst.Width() {
		dst.Set(x, 2, '─')
	}

	gridW := snap.Width*(tileW+tileGapX) - tileGapX
	gridH := snap.Height*tileStepY - 1
	if gridW > dst.Width() || gridH+hudHeight > dst.Height() {
		drawOverlay(dst, "Window too small", fmt.Sprintf("Need %dx%d", gridW, gridH+hudHeight))
		return
	}

	area := core.Rect{Y: hudHeight, W: dst.Width(), H: dst.Height() - hudHeight}.Centered(gridW, gridH)
	for y := 0; y < snap.Height; y++ {
		for x := 0; x < snap.Width; x++ {
			t, ok := snap.Tile(x, y)
			if !ok {
				continue
			}
			px := area.X + x*(tileW+tileGapX)
			py := area.Y + y*tileStepY
			g.renderTile(dst, px, py, t, y*snap.Width+x == g.cursor)
		}
	}

	switch {
	case snap.Won:
		drawOverlay(dst, "All pairs found!", fmt.Sprintf("%d moves - press R to play again", snap.Moves))
	case g.paused:
		drawOverlay(dst, "Paused", "Press P to continue")
	}
}

func (g *Game) renderTile(dst *core.Screen, x, y int, t Tile, selected bool) {
	left, right := ' ', ' '
	if selected {
		left, right = '[', ']'
	}
	dst.SetColored(x, y, left, core.ColorBrightWhite)
	dst.SetColored(x+tileW-1, y, right, core.ColorBrightWhite)

	switch {
	case t.Matched:
		dst.SetColored(x+2, y, []rune(t.Symbol)[0], core.ColorGray)
	case t.Revealed:
		color := core.PaletteColors[t.PairID%len(core.PaletteColors)]
		dst.SetColored(x+2, y, []rune(t.Symbol)[0], color)
	default:
		dst.DrawTextColored(x+1, y, "░░░", core.ColorBlue)
	}
}

// drawOverlay draws a centered two-line message box.
func drawOverlay(dst *core.Screen, line1, line2 string) {
	w := core.Max(len([]rune(line1)), len([]rune(line2))) + 4
	box := dst.Bounds().Centered(w, 5)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	dst.DrawTextCentered(box.Y+1, line1)
	dst.DrawTextCentered(box.Y+3, line2)
}
