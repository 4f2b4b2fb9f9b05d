package maze

import (
	"strings"
	"testing"

	"github.com/vovakirdan/echo-arcade/internal/core"
	"github.com/vovakirdan/echo-arcade/internal/registry"
)

func newGame(seed int64) *Game {
	g := New()
	g.Reset(core.RuntimeConfig{
		Seed:     seed,
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
		Options:  map[string]int{"width": 7, "height": 7},
	})
	return g
}

func actionFor(d Direction) core.Action {
	switch d {
	case Up:
		return core.ActionUp
	case Down:
		return core.ActionDown
	case Left:
		return core.ActionLeft
	default:
		return core.ActionRight
	}
}

func TestRegistered(t *testing.T) {
	if !registry.Exists(GameID) {
		t.Fatal("maze should be registered")
	}
	g, err := registry.Create(GameID)
	if err != nil {
		t.Fatal(err)
	}
	if g.Title() != "Echo Maze" {
		t.Errorf("Title() = %q", g.Title())
	}
}

func TestGameDeterminism(t *testing.T) {
	g1 := newGame(12345)
	g2 := newGame(12345)

	inputs := []core.Action{core.ActionRight, core.ActionDown, core.ActionDown, core.ActionLeft, core.ActionRight}
	for _, a := range inputs {
		g1.Step(core.FrameOf(a))
		g2.Step(core.FrameOf(a))
	}

	s1, s2 := g1.Snapshot(), g2.Snapshot()
	if s1.Player != s2.Player || s1.Moves != s2.Moves || s1.Tick != s2.Tick {
		t.Errorf("snapshots differ: %+v vs %+v", s1.Player, s2.Player)
	}
}

func TestGameReachesGoal(t *testing.T) {
	g := newGame(8)
	path, _ := shortestPath(g.Maze())

	for _, d := range path {
		res := g.Step(core.FrameOf(actionFor(d)))
		if res.State.Score > len(path) {
			t.Fatalf("score %d exceeds path length", res.State.Score)
		}
	}

	st := g.State()
	if !st.GameOver {
		t.Fatal("following the shortest path should win")
	}
	if st.Score != len(path) {
		t.Errorf("Score = %d, expected %d moves", st.Score, len(path))
	}
	if g.Snapshot().State != StatusWon {
		t.Error("snapshot should report the win")
	}

	// Input after the win is ignored.
	g.Step(core.FrameOf(core.ActionUp))
	if g.State().Score != len(path) {
		t.Error("moves counted after the win")
	}
}

func TestGameBumpOnWall(t *testing.T) {
	g := newGame(1)
	g.Step(core.FrameOf(core.ActionUp))

	if g.bumped == 0 {
		t.Error("moving off the grid should set the bump marker")
	}
	if g.State().Score != 0 {
		t.Error("a rejected move must not count")
	}
}

func TestGamePause(t *testing.T) {
	g := newGame(1)
	g.Step(core.FrameOf(core.ActionPause))
	if !g.State().Paused {
		t.Fatal("expected paused")
	}

	before := g.Snapshot().Player
	for _, d := range Directions() {
		g.Step(core.FrameOf(actionFor(d)))
	}
	if g.Snapshot().Player != before {
		t.Error("moves applied while paused")
	}
}

func TestGameRestart(t *testing.T) {
	g := newGame(3)
	path, _ := shortestPath(g.Maze())
	g.Step(core.FrameOf(actionFor(path[0])))

	g.Step(core.FrameOf(core.ActionRestart))
	s := g.Snapshot()
	if s.Moves != 0 || s.Player != (Position{}) || s.GameOver {
		t.Errorf("restart should start a fresh maze, got %+v", s)
	}
	if s.Width != 7 || s.Height != 7 {
		t.Errorf("restart changed the size to %dx%d", s.Width, s.Height)
	}
}

func TestGameRender(t *testing.T) {
	g := newGame(1)
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	out := screen.String()
	if !strings.Contains(out, "Echo Maze") {
		t.Error("HUD missing from render")
	}
	if !strings.Contains(out, "@") || !strings.Contains(out, "★") {
		t.Error("player or goal missing from render")
	}
}

func TestGameRenderTooSmall(t *testing.T) {
	g := newGame(1)
	screen := core.NewScreen(20, 8)
	g.Render(screen)

	if !strings.Contains(screen.String(), "small") {
		t.Error("expected a too-small notice")
	}
}

func TestGameDefaultSize(t *testing.T) {
	g := New()
	g.Reset(core.DefaultConfig())

	s := g.Snapshot()
	if s.Width != DefaultWidth || s.Height != DefaultHeight {
		t.Errorf("default size = %dx%d", s.Width, s.Height)
	}
}
