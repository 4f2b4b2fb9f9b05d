package maze

import (
	"fmt"
	"strings"
)

// Direction is one of the four moves a player can make.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

type directionInfo struct {
	name  string
	delta Position
}

var directions = [...]directionInfo{
	Up:    {"up", Position{X: 0, Y: -1}},
	Down:  {"down", Position{X: 0, Y: 1}},
	Left:  {"left", Position{X: -1, Y: 0}},
	Right: {"right", Position{X: 1, Y: 0}},
}

// Directions lists every valid direction.
func Directions() []Direction {
	return []Direction{Up, Down, Left, Right}
}

// Valid reports whether d is one of the four directions.
func (d Direction) Valid() bool {
	return d >= 0 && int(d) < len(directions)
}

// Delta returns the unit step for d, or the zero offset for an invalid value.
func (d Direction) Delta() Position {
	if !d.Valid() {
		return Position{}
	}
	return directions[d].delta
}

func (d Direction) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directions[d].name
}

// ParseDirection converts "up", "down", "left" or "right" (any case).
func ParseDirection(s string) (Direction, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, info := range directions {
		if info.name == s {
			return Direction(i), nil
		}
	}
	return 0, fmt.Errorf("maze: unknown direction %q", s)
}

// MarshalText encodes the direction by name.
func (d Direction) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("maze: invalid direction %d", int(d))
	}
	return []byte(d.String()), nil
}

// UnmarshalText decodes a direction name.
func (d *Direction) UnmarshalText(b []byte) error {
	v, err := ParseDirection(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}
