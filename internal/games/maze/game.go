package maze

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/vovakirdan/echo-arcade/internal/core"
	"github.com/vovakirdan/echo-arcade/internal/registry"
)

const (
	// GameID is the registry and leaderboard identifier.
	GameID = "maze"

	DefaultWidth  = 15
	DefaultHeight = 15

	hudHeight = 3
	// bumpTicks is how long the wall-hit marker stays on screen.
	bumpTicks = 8
)

func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}

// Game adapts the maze engine to the arcade game loop.
type Game struct {
	rng  *rand.Rand
	maze *Maze
	err  error
	tick uint64

	width, height int
	screenW       int
	screenH       int
	tickRate      int

	paused    bool
	bumped    int // ticks left to show the bump marker
	lastBump  Direction
	cellWidth int
}

// New creates a maze game; call Reset before stepping it.
func New() *Game {
	return &Game{}
}

// ID returns the game identifier.
func (g *Game) ID() string { return GameID }

// Title returns the display name.
func (g *Game) Title() string { return "Echo Maze" }

// Reset generates a new maze. Size comes from the "width" and "height"
// options, defaulting to 15x15.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tick = 0
	g.paused = false
	g.bumped = 0
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.tickRate = cfg.TickRate
	g.width = cfg.Option("width", DefaultWidth)
	g.height = cfg.Option("height", DefaultHeight)

	g.maze, g.err = Generate(g.width, g.height, g.rng)

	g.cellWidth = 2
	if g.width*2+2 > g.screenW {
		g.cellWidth = 1
	}
}

// Step applies at most one move per tick.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	g.tick++
	if g.bumped > 0 {
		g.bumped--
	}

	if input.Has(core.ActionRestart) {
		g.Reset(core.RuntimeConfig{
			Seed:     g.rng.Int63(),
			ScreenW:  g.screenW,
			ScreenH:  g.screenH,
			TickRate: g.tickRate,
			Options:  map[string]int{"width": g.width, "height": g.height},
		})
		return core.StepResult{State: g.State()}
	}

	if input.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.maze == nil || g.maze.GameOver || g.paused {
		return core.StepResult{State: g.State()}
	}

	for _, m := range []struct {
		action core.Action
		dir    Direction
	}{
		{core.ActionUp, Up},
		{core.ActionDown, Down},
		{core.ActionLeft, Left},
		{core.ActionRight, Right},
	} {
		if !input.Has(m.action) {
			continue
		}
		if !g.maze.Move(m.dir) {
			g.bumped = bumpTicks
			g.lastBump = m.dir
		}
		break
	}

	return core.StepResult{State: g.State()}
}

// State reports moves as the score; lower is better.
func (g *Game) State() core.GameState {
	if g.maze == nil {
		return core.GameState{Paused: g.paused}
	}
	return core.GameState{
		Score:    g.maze.Moves,
		GameOver: g.maze.GameOver,
		Paused:   g.paused,
	}
}

// Maze returns a copy of the current maze, or nil if generation failed.
func (g *Game) Maze() *Maze {
	if g.maze == nil {
		return nil
	}
	return g.maze.Clone()
}

// Render draws the HUD and the maze.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.err != nil {
		dst.DrawTextCentered(dst.Height()/2, g.err.Error())
		return
	}
	if g.maze == nil {
		return
	}

	g.renderHUD(dst)

	mw := g.maze.Width*g.cellWidth + 2
	mh := g.maze.Height + 2
	if mw > dst.Width() || mh+hudHeight > dst.Height() {
		drawOverlay(dst, "Window too small", fmt.Sprintf("Need %dx%d", mw, mh+hudHeight))
		return
	}

	area := core.Rect{Y: hudHeight, W: dst.Width(), H: dst.Height() - hudHeight}.Centered(mw, mh)
	dst.DrawBox(area)
	g.renderGrid(dst, area.X+1, area.Y+1)

	switch {
	case g.maze.GameOver:
		drawOverlay(dst, "You found the exit!", fmt.Sprintf("%d moves - press R for a new maze", g.maze.Moves))
	case g.paused:
		drawOverlay(dst, "Paused", "Press P to continue")
	}
}

func (g *Game) renderHUD(dst *core.Screen) {
	hud := fmt.Sprintf(" Echo Maze  Moves: %d  Beacon: %s", g.maze.Moves, proximityBar(g.maze.Proximity(), 10))
	dst.DrawText(0, 0, hud)

	walls := g.maze.NearbyWalls()
	cue := fmt.Sprintf(" Walls: %s", wallCue(walls))
	color := core.ColorGray
	if g.bumped > 0 {
		cue += fmt.Sprintf("  *bump %s*", g.lastBump)
		color = core.ColorBrightRed
	}
	dst.DrawTextColored(0, 1, cue, color)

	for x := range dst.Width() {
		dst.Set(x, 2, '─')
	}
}

func (g *Game) renderGrid(dst *core.Screen, ox, oy int) {
	for y, row := range g.maze.Layout {
		for x, c := range row {
			r, color := ' ', core.ColorDefault
			if c == Wall {
				r, color = '█', core.ColorBlue
			}
			p := Position{X: x, Y: y}
			switch p {
			case g.maze.Player:
				r, color = '@', core.ColorBrightCyan
			case g.maze.Goal:
				r, color = '★', core.ColorBrightYellow
			}
			for i := 0; i < g.cellWidth; i++ {
				ch := r
				if i > 0 && c == Path {
					ch = ' '
				}
				dst.SetColored(ox+x*g.cellWidth+i, oy+y, ch, color)
			}
		}
	}
}

// wallCue renders blocked sides as their initials, open sides as dots.
func wallCue(w Walls) string {
	var sb strings.Builder
	for _, s := range []struct {
		blocked bool
		name    byte
	}{{w.Up, 'U'}, {w.Down, 'D'}, {w.Left, 'L'}, {w.Right, 'R'}} {
		if s.blocked {
			sb.WriteByte(s.name)
		} else {
			sb.WriteByte('.')
		}
	}
	return sb.String()
}

func proximityBar(p float64, width int) string {
	filled := int(p*float64(width) + 0.5)
	filled = core.Clamp(filled, 0, width)
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
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
