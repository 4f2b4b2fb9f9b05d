// Package tiles implements the memory-tiles engine: a shuffled deck of
// paired tiles and the reveal, compare and resolve cycle played on it.
package tiles

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidDimensions is returned by CreateDeck for non-positive sizes.
var ErrInvalidDimensions = errors.New("tiles: width and height must be positive")

// Rand is the random source used for shuffling. *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// Difficulty selects the grid size of a round.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
)

var difficulties = [...]struct {
	name          string
	width, height int
}{
	Easy:   {"easy", 3, 4},
	Medium: {"medium", 4, 4},
	Hard:   {"hard", 4, 6},
}

// Difficulties lists every difficulty from easiest to hardest.
func Difficulties() []Difficulty {
	return []Difficulty{Easy, Medium, Hard}
}

// Valid reports whether d is a known difficulty.
func (d Difficulty) Valid() bool {
	return d >= 0 && int(d) < len(difficulties)
}

func (d Difficulty) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Difficulty(%d)", int(d))
	}
	return difficulties[d].name
}

// Dimensions returns the grid width (columns) and height (rows).
func (d Difficulty) Dimensions() (width, height int) {
	if !d.Valid() {
		return 0, 0
	}
	return difficulties[d].width, difficulties[d].height
}

// Pairs returns the number of pairs dealt at this difficulty.
func (d Difficulty) Pairs() int {
	w, h := d.Dimensions()
	return w * h / 2
}

// GameID is the registry and leaderboard identifier, e.g. "tiles_easy".
func (d Difficulty) GameID() string {
	return "tiles_" + d.String()
}

// ParseDifficulty converts "easy", "medium" or "hard" (any case).
func ParseDifficulty(s string) (Difficulty, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, info := range difficulties {
		if info.name == s {
			return Difficulty(i), nil
		}
	}
	return 0, fmt.Errorf("tiles: unknown difficulty %q", s)
}

// MarshalText encodes the difficulty by name.
func (d Difficulty) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("tiles: invalid difficulty %d", int(d))
	}
	return []byte(d.String()), nil
}

// UnmarshalText decodes a difficulty name.
func (d *Difficulty) UnmarshalText(b []byte) error {
	v, err := ParseDifficulty(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// Tile is one card of the deck. Exactly two tiles share a PairID.
type Tile struct {
	Color      string `json:"color"`
	Symbol     string `json:"symbol"`
	SymbolName string `json:"symbol_name"`
	PairID     int    `json:"pair_id"`
	Revealed   bool   `json:"is_revealed"`
	Matched    bool   `json:"is_matched"`
}

// Colors is the tile background palette.
var Colors = []string{
	"#ff6b6b", // red
	"#4ecdc4", // teal
	"#45b7d1", // blue
	"#96ceb4", // green
	"#ffeaa7", // yellow
	"#dda0dd", // plum
	"#98d8c8", // mint
	"#f7dc6f", // gold
	"#bb8fce", // purple
	"#85c1e9", // light blue
	"#f8c471", // orange
	"#82e0aa", // light green
	"#f1948a", // pink
	"#85929e", // gray
	"#d7bde2", // lavender
}

// Symbol is a face glyph with a spoken name.
type Symbol struct {
	Glyph string
	Name  string
}

// Symbols is the tile face palette.
var Symbols = []Symbol{
	{"♠", "spade"},
	{"♣", "club"},
	{"♥", "heart"},
	{"♦", "diamond"},
	{"★", "star"},
	{"●", "circle"},
	{"▲", "triangle"},
	{"■", "square"},
	{"♪", "note"},
	{"☀", "sun"},
	{"☽", "moon"},
	{"❀", "flower"},
	{"⚡", "lightning"},
	{"☁", "cloud"},
	{"❄", "snowflake"},
	{"🔥", "fire"},
}

// CreateDeck deals floor(width*height/2) pairs and shuffles them.
// When width*height is odd the last grid cell stays empty, so the deck is
// one tile shorter than the grid. Pair i takes color and symbol i modulo the
// palette sizes. All tiles start face down.
func CreateDeck(width, height int, rng Rand) ([]Tile, error) {
	if width < 1 || height < 1 {
		return nil, ErrInvalidDimensions
	}
	if rng == nil {
		return nil, errors.New("tiles: random source is nil")
	}

	pairs := width * height / 2
	deck := make([]Tile, 0, pairs*2)
	for i := 0; i < pairs; i++ {
		sym := Symbols[i%len(Symbols)]
		t := Tile{
			Color:      Colors[i%len(Colors)],
			Symbol:     sym.Glyph,
			SymbolName: sym.Name,
			PairID:     i,
		}
		deck = append(deck, t, t)
	}

	for i := len(deck) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		deck[i], deck[j] = deck[j], deck[i]
	}
	return deck, nil
}
