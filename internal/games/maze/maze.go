// Package maze implements the maze engine: perfect-maze generation by
// randomized depth-first carving, and validated player movement towards
// the goal in the opposite corner.
package maze

import (
	"errors"
	"math"
)

var (
	// ErrInvalidDimensions is returned by Generate for non-positive sizes.
	ErrInvalidDimensions = errors.New("maze: width and height must be positive")
	// ErrNilRand is returned by Generate when no random source is supplied.
	ErrNilRand = errors.New("maze: random source is nil")
)

// MinPlayableSide is the smallest side a front-end should offer. Generate
// accepts 1x1, but there the player starts on the goal and no move is legal.
const MinPlayableSide = 2

// Rand is the random source used for carving. *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// Cell is a single grid square. The numeric values match the layout
// encoding used on the wire (1 = wall, 0 = path).
type Cell int

const (
	Path Cell = 0
	Wall Cell = 1
)

// Position is a grid coordinate; Y grows downwards.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Status is the state of a maze round.
type Status string

const (
	StatusPlaying Status = "playing"
	StatusWon     Status = "won"
)

// Walls reports, per direction, whether the neighbouring cell is blocked.
type Walls struct {
	Up    bool `json:"up"`
	Down  bool `json:"down"`
	Left  bool `json:"left"`
	Right bool `json:"right"`
}

// Count returns how many sides are blocked.
func (w Walls) Count() int {
	n := 0
	for _, b := range []bool{w.Up, w.Down, w.Left, w.Right} {
		if b {
			n++
		}
	}
	return n
}

// Maze is one generated maze together with the player's progress through it.
// Layout and Goal never change after Generate.
type Maze struct {
	Width    int
	Height   int
	Layout   [][]Cell
	Player   Position
	Goal     Position
	GameOver bool
	Moves    int
}

// carve step offsets in their unshuffled order: up, right, down, left.
var carveSteps = [4]Position{{0, -2}, {2, 0}, {0, 2}, {-2, 0}}

type carveFrame struct {
	at    Position
	steps [4]Position
	next  int
}

// Generate builds a width x height maze. Every path cell is reachable from
// the start and the path cells form a tree, so there is exactly one route
// between any two of them. The player starts at (0,0) and the goal is
// (width-1, height-1). Generation is deterministic for a given rng state.
func Generate(width, height int, rng Rand) (*Maze, error) {
	if width < 1 || height < 1 {
		return nil, ErrInvalidDimensions
	}
	if rng == nil {
		return nil, ErrNilRand
	}

	m := &Maze{
		Width:  width,
		Height: height,
		Layout: make([][]Cell, height),
		Goal:   Position{X: width - 1, Y: height - 1},
	}
	for y := range m.Layout {
		row := make([]Cell, width)
		for x := range row {
			row[x] = Wall
		}
		m.Layout[y] = row
	}

	m.carve(rng)
	m.patchGoal()
	return m, nil
}

// carve runs the depth-first carve from (0,0). Frames are visited, and the
// rng consumed, in the same order as the recursive formulation, which keeps
// seeded layouts stable while bounding stack growth.
func (m *Maze) carve(rng Rand) {
	enter := func(p Position) carveFrame {
		m.set(p, Path)
		f := carveFrame{at: p, steps: carveSteps}
		for i := len(f.steps) - 1; i > 0; i-- {
			j := rng.Intn(i + 1)
			f.steps[i], f.steps[j] = f.steps[j], f.steps[i]
		}
		return f
	}

	stack := []carveFrame{enter(Position{})}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next == len(top.steps) {
			stack = stack[:len(stack)-1]
			continue
		}
		step := top.steps[top.next]
		top.next++

		to := Position{X: top.at.X + step.X, Y: top.at.Y + step.Y}
		if !m.inBounds(to) || m.at(to) != Wall {
			continue
		}
		m.set(Position{X: top.at.X + step.X/2, Y: top.at.Y + step.Y/2}, Path)
		stack = append(stack, enter(to))
	}
}

// patchGoal makes sure the goal is open and attached to the carved region.
// Carving only visits even coordinates, so when both dimensions are even the
// goal corner is never reached; opening its left neighbour (or the upper one
// in a single-column maze) joins it to the tree without creating a cycle.
// Both neighbours are never opened unconditionally: in an odd-sized maze the
// goal is already carved, and a second opening would close a loop.
func (m *Maze) patchGoal() {
	m.set(m.Goal, Path)
	if m.openNeighbours(m.Goal) > 0 || m.Goal == (Position{}) {
		return
	}
	if m.Goal.X > 0 {
		m.set(Position{X: m.Goal.X - 1, Y: m.Goal.Y}, Path)
	} else {
		m.set(Position{X: m.Goal.X, Y: m.Goal.Y - 1}, Path)
	}
}

func (m *Maze) openNeighbours(p Position) int {
	n := 0
	for _, d := range directions {
		if m.IsPath(p.X+d.delta.X, p.Y+d.delta.Y) {
			n++
		}
	}
	return n
}

func (m *Maze) inBounds(p Position) bool {
	return p.X >= 0 && p.X < m.Width && p.Y >= 0 && p.Y < m.Height
}

func (m *Maze) at(p Position) Cell {
	return m.Layout[p.Y][p.X]
}

func (m *Maze) set(p Position, c Cell) {
	m.Layout[p.Y][p.X] = c
}

// IsPath reports whether (x, y) is inside the grid and open.
func (m *Maze) IsPath(x, y int) bool {
	p := Position{X: x, Y: y}
	return m.inBounds(p) && m.at(p) == Path
}

// Move tries to step the player one cell in dir. It returns false, leaving
// the maze unchanged, when the round is over, dir is not a valid direction,
// or the target is outside the grid or a wall. Reaching the goal ends the round.
func (m *Maze) Move(dir Direction) bool {
	if m.GameOver || !dir.Valid() {
		return false
	}
	d := dir.Delta()
	to := Position{X: m.Player.X + d.X, Y: m.Player.Y + d.Y}
	if !m.IsPath(to.X, to.Y) {
		return false
	}

	m.Player = to
	m.Moves++
	if to == m.Goal {
		m.GameOver = true
	}
	return true
}

// NearbyWalls reports which sides of the player are blocked.
// The grid boundary counts as a wall.
func (m *Maze) NearbyWalls() Walls {
	blocked := func(dir Direction) bool {
		d := dir.Delta()
		return !m.IsPath(m.Player.X+d.X, m.Player.Y+d.Y)
	}
	return Walls{
		Up:    blocked(Up),
		Down:  blocked(Down),
		Left:  blocked(Left),
		Right: blocked(Right),
	}
}

// Status returns StatusWon once the goal has been reached.
func (m *Maze) Status() Status {
	if m.GameOver {
		return StatusWon
	}
	return StatusPlaying
}

// DistanceToGoal is the straight-line distance from the player to the goal.
func (m *Maze) DistanceToGoal() float64 {
	return math.Hypot(float64(m.Goal.X-m.Player.X), float64(m.Goal.Y-m.Player.Y))
}

// Proximity maps the distance to the goal onto [0, 1]: 0 at the start
// corner, 1 on the goal.
func (m *Maze) Proximity() float64 {
	maxDist := math.Hypot(float64(m.Goal.X), float64(m.Goal.Y))
	if maxDist == 0 {
		return 1
	}
	p := 1 - m.DistanceToGoal()/maxDist
	return math.Max(0, math.Min(1, p))
}

// PathCount returns the number of open cells.
func (m *Maze) PathCount() int {
	n := 0
	for _, row := range m.Layout {
		for _, c := range row {
			if c == Path {
				n++
			}
		}
	}
	return n
}

// Clone returns a deep copy, safe to hand to a renderer.
func (m *Maze) Clone() *Maze {
	c := *m
	c.Layout = make([][]Cell, len(m.Layout))
	for y, row := range m.Layout {
		c.Layout[y] = append([]Cell(nil), row...)
	}
	return &c
}
