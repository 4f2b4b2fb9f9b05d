package maze

import (
	"errors"
	"math/rand"
	"testing"
)

func newRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// shortestPath returns the moves from the player to the goal found by BFS.
// found is false when the goal is unreachable; a player already on the goal
// gets an empty path.
func shortestPath(m *Maze) (path []Direction, found bool) {
	type step struct {
		from Position
		dir  Direction
	}
	prev := map[Position]step{}
	seen := map[Position]bool{m.Player: true}
	queue := []Position{m.Player}

	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		if p == m.Goal {
			for p != m.Player {
				s := prev[p]
				path = append([]Direction{s.dir}, path...)
				p = s.from
			}
			return path, true
		}
		for _, d := range Directions() {
			n := Position{X: p.X + d.Delta().X, Y: p.Y + d.Delta().Y}
			if m.IsPath(n.X, n.Y) && !seen[n] {
				seen[n] = true
				prev[n] = step{from: p, dir: d}
				queue = append(queue, n)
			}
		}
	}
	return nil, false
}

// reachable counts path cells reachable from (0,0).
func reachable(m *Maze) int {
	seen := map[Position]bool{{}: true}
	stack := []Position{{}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, d := range Directions() {
			n := Position{X: p.X + d.Delta().X, Y: p.Y + d.Delta().Y}
			if m.IsPath(n.X, n.Y) && !seen[n] {
				seen[n] = true
				stack = append(stack, n)
			}
		}
	}
	return len(seen)
}

// edges counts orthogonal adjacencies between path cells.
func edges(m *Maze) int {
	n := 0
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if !m.IsPath(x, y) {
				continue
			}
			if m.IsPath(x+1, y) {
				n++
			}
			if m.IsPath(x, y+1) {
				n++
			}
		}
	}
	return n
}

func TestGenerateInvalid(t *testing.T) {
	tests := []struct {
		name string
		w, h int
		rng  Rand
		want error
	}{
		{"zero width", 0, 5, newRand(1), ErrInvalidDimensions},
		{"negative height", 5, -1, newRand(1), ErrInvalidDimensions},
		{"nil rand", 5, 5, nil, ErrNilRand},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Generate(tt.w, tt.h, tt.rng)
			if !errors.Is(err, tt.want) {
				t.Errorf("Generate error = %v, expected %v", err, tt.want)
			}
			if m != nil {
				t.Error("Generate should not return a maze on error")
			}
		})
	}
}

func TestGenerateConnectedAndPerfect(t *testing.T) {
	for w := 1; w <= 13; w++ {
		for h := 1; h <= 13; h++ {
			for seed := int64(0); seed < 5; seed++ {
				m, err := Generate(w, h, newRand(seed))
				if err != nil {
					t.Fatalf("Generate(%d, %d): %v", w, h, err)
				}

				cells := m.PathCount()
				if got := reachable(m); got != cells {
					t.Fatalf("%dx%d seed %d: %d of %d path cells reachable", w, h, seed, got, cells)
				}
				if e := edges(m); e != cells-1 {
					t.Fatalf("%dx%d seed %d: %d edges for %d cells, maze has a cycle", w, h, seed, e, cells)
				}
				if _, found := shortestPath(m); !found {
					t.Fatalf("%dx%d seed %d: goal unreachable", w, h, seed)
				}
			}
		}
	}
}

func TestSingleCellMaze(t *testing.T) {
	m, err := Generate(1, 1, newRand(0))
	if err != nil {
		t.Fatal(err)
	}
	if m.Player != m.Goal || m.PathCount() != 1 {
		t.Fatalf("1x1 maze: player %+v goal %+v, %d path cells", m.Player, m.Goal, m.PathCount())
	}

	path, found := shortestPath(m)
	if !found || len(path) != 0 {
		t.Errorf("shortestPath = %v, %v; expected an empty route", path, found)
	}
	for _, d := range Directions() {
		if m.Move(d) {
			t.Errorf("Move(%v) accepted in a 1x1 maze", d)
		}
	}
}

func TestGenerateInitialState(t *testing.T) {
	m, err := Generate(5, 5, newRand(7))
	if err != nil {
		t.Fatal(err)
	}

	if m.Player != (Position{0, 0}) {
		t.Errorf("Player = %+v, expected (0,0)", m.Player)
	}
	if m.Goal != (Position{4, 4}) {
		t.Errorf("Goal = %+v, expected (4,4)", m.Goal)
	}
	if m.GameOver || m.Moves != 0 || m.Status() != StatusPlaying {
		t.Error("new maze should be in play with no moves")
	}
	if !m.IsPath(0, 0) || !m.IsPath(4, 4) {
		t.Error("start and goal must be path cells")
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a, _ := Generate(21, 15, newRand(99))
	b, _ := Generate(21, 15, newRand(99))

	for y := range a.Layout {
		for x := range a.Layout[y] {
			if a.Layout[y][x] != b.Layout[y][x] {
				t.Fatalf("layouts differ at (%d,%d)", x, y)
			}
		}
	}
}

func TestGenerateOddMazeCarveCount(t *testing.T) {
	// On odd grids every even coordinate is a carve target and each carve
	// step opens exactly two cells.
	m, _ := Generate(9, 7, newRand(3))
	targets := 5 * 4
	if got := m.PathCount(); got != 2*(targets-1)+1 {
		t.Errorf("PathCount = %d, expected %d", got, 2*(targets-1)+1)
	}
}

func TestMoveRejections(t *testing.T) {
	m, _ := Generate(7, 7, newRand(11))

	// Leaving the grid is always rejected from the start corner.
	for _, d := range []Direction{Up, Left, Direction(42), Direction(-1)} {
		if m.Move(d) {
			t.Errorf("Move(%v) from (0,0) should be rejected", d)
		}
	}

	walls := m.NearbyWalls()
	if walls.Right && m.Move(Right) {
		t.Error("Move into a wall should be rejected")
	}
	if walls.Down && m.Move(Down) {
		t.Error("Move into a wall should be rejected")
	}
	if m.Player != (Position{}) || m.Moves != 0 {
		t.Errorf("rejected moves changed state: player %+v moves %d", m.Player, m.Moves)
	}
}

func TestMoveEveryWallAdjacentCell(t *testing.T) {
	m, _ := Generate(9, 9, newRand(5))

	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if !m.IsPath(x, y) {
				continue
			}
			for _, d := range Directions() {
				c := m.Clone()
				c.Player = Position{X: x, Y: y}
				c.GameOver = false
				target := Position{X: x + d.Delta().X, Y: y + d.Delta().Y}
				want := c.IsPath(target.X, target.Y)

				if got := c.Move(d); got != want {
					t.Fatalf("Move(%v) from (%d,%d) = %v, expected %v", d, x, y, got, want)
				}
				if !want && c.Player != (Position{X: x, Y: y}) {
					t.Fatalf("rejected move changed the player position")
				}
			}
		}
	}
}

func TestWalkToGoal(t *testing.T) {
	m, _ := Generate(5, 5, newRand(2024))
	path, _ := shortestPath(m)
	if len(path) == 0 {
		t.Fatal("expected a path to the goal")
	}

	for i, d := range path {
		if m.GameOver {
			t.Fatalf("game over before the final move (step %d)", i)
		}
		if !m.Move(d) {
			t.Fatalf("move %d (%v) rejected", i, d)
		}
	}

	if !m.GameOver || m.Status() != StatusWon {
		t.Fatal("reaching the goal should end the round")
	}
	if m.Moves != len(path) {
		t.Errorf("Moves = %d, expected %d", m.Moves, len(path))
	}
	if m.Proximity() != 1 || m.DistanceToGoal() != 0 {
		t.Errorf("at goal: proximity %v distance %v", m.Proximity(), m.DistanceToGoal())
	}

	// Further moves are no-ops.
	for _, d := range Directions() {
		if m.Move(d) {
			t.Errorf("Move(%v) after win should be rejected", d)
		}
	}
	if !m.GameOver || m.Player != m.Goal || m.Moves != len(path) {
		t.Error("state changed after the round ended")
	}
}

func TestNearbyWallsBoundary(t *testing.T) {
	m, _ := Generate(1, 1, newRand(1))
	want := Walls{Up: true, Down: true, Left: true, Right: true}
	if got := m.NearbyWalls(); got != want {
		t.Errorf("NearbyWalls on 1x1 = %+v, expected all blocked", got)
	}
	if got := m.NearbyWalls().Count(); got != 4 {
		t.Errorf("Count = %d, expected 4", got)
	}
}

func TestProximity(t *testing.T) {
	m, _ := Generate(5, 5, newRand(1))
	if p := m.Proximity(); p != 0 {
		t.Errorf("Proximity at start = %v, expected 0", p)
	}

	single, _ := Generate(1, 1, newRand(1))
	if p := single.Proximity(); p != 1 {
		t.Errorf("Proximity on a 1x1 maze = %v, expected 1", p)
	}
}

func TestCloneIsDeep(t *testing.T) {
	m, _ := Generate(5, 5, newRand(1))
	c := m.Clone()
	c.Layout[0][0] = Wall
	c.Player = Position{X: 1}

	if m.Layout[0][0] != Path || m.Player != (Position{}) {
		t.Error("Clone shares state with the original")
	}
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in      string
		want    Direction
		wantErr bool
	}{
		{"up", Up, false},
		{"DOWN", Down, false},
		{" left ", Left, false},
		{"Right", Right, false},
		{"north", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseDirection(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDirection(%q) error = %v", tt.in, err)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseDirection(%q) = %v, expected %v", tt.in, got, tt.want)
		}
	}
}
