package tiles

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// DefaultFlipDelay is how long two revealed tiles stay visible before the
// pair is resolved.
const DefaultFlipDelay = time.Second

// State is the phase of a session.
type State string

const (
	StateIdle       State = "idle"
	StateOneFlipped State = "one_flipped"
	StateProcessing State = "processing"
	StateWon        State = "won"
)

// SessionConfig configures a new session. Zero values pick defaults: a
// time-seeded rand, wall-clock scheduling and DefaultFlipDelay.
type SessionConfig struct {
	Difficulty Difficulty
	Rand       Rand
	Scheduler  Scheduler
	FlipDelay  time.Duration

	// OnResolve, if set, is called with the new state after every pair
	// resolution. It runs on the scheduler's goroutine without the
	// session lock held.
	OnResolve func(Snapshot)
}

// Session is one memory-tiles game. All methods are safe for concurrent
// use; clicks are serialized so the two-flip protocol holds.
type Session struct {
	mu sync.Mutex

	rng       Rand
	scheduler Scheduler
	delay     time.Duration
	onResolve func(Snapshot)

	difficulty Difficulty
	active     Difficulty // difficulty of the dealt deck
	tiles      []Tile
	selected   []int
	moves      int
	matches    int
	processing bool
	won        bool

	pending    Timer
	// generation changes on every deal so a stale resolution can tell it
	// belongs to a superseded deck.
	generation uint64
}

// NewSession creates a session and deals its first deck.
func NewSession(cfg SessionConfig) (*Session, error) {
	if !cfg.Difficulty.Valid() {
		return nil, fmt.Errorf("tiles: invalid difficulty %d", int(cfg.Difficulty))
	}
	s := &Session{
		rng:        cfg.Rand,
		scheduler:  cfg.Scheduler,
		delay:      cfg.FlipDelay,
		onResolve:  cfg.OnResolve,
		difficulty: cfg.Difficulty,
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if s.scheduler == nil {
		s.scheduler = RealScheduler{}
	}
	if s.delay <= 0 {
		s.delay = DefaultFlipDelay
	}
	s.Initialize()
	return s, nil
}

// Initialize deals a fresh deck for the current difficulty, zeroes every
// counter and cancels any pending resolution.
func (s *Session) Initialize() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelPending()
	w, h := s.difficulty.Dimensions()
	// Dimensions of a valid difficulty are always positive.
	deck, _ := CreateDeck(w, h, s.rng)

	s.active = s.difficulty
	s.tiles = deck
	s.selected = s.selected[:0]
	s.moves = 0
	s.matches = 0
	s.processing = false
	s.won = false
}

// SetDifficulty changes the grid used by the next Initialize.
// The current deck is left alone.
func (s *Session) SetDifficulty(d Difficulty) error {
	if !d.Valid() {
		return fmt.Errorf("tiles: invalid difficulty %d", int(d))
	}
	s.mu.Lock()
	s.difficulty = d
	s.mu.Unlock()
	return nil
}

// Click flips the tile at index. It returns false without changing anything
// when a pair is being resolved, the round is won, the index is out of
// range, or the tile is already face up or matched. The second accepted
// flip of a pair counts a move and schedules its resolution.
func (s *Session) Click(index int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.processing || s.won {
		return false
	}
	if index < 0 || index >= len(s.tiles) {
		return false
	}
	t := &s.tiles[index]
	if t.Matched || t.Revealed || len(s.selected) >= 2 {
		return false
	}
	for _, i := range s.selected {
		if i == index {
			return false
		}
	}

	t.Revealed = true
	s.selected = append(s.selected, index)
	if len(s.selected) < 2 {
		return true
	}

	s.moves++
	s.processing = true
	first, second := s.selected[0], s.selected[1]
	match := s.tiles[first].PairID == s.tiles[second].PairID
	gen := s.generation
	s.pending = s.scheduler.AfterFunc(s.delay, func() {
		s.resolve(gen, first, second, match)
	})
	return true
}

func (s *Session) resolve(gen uint64, first, second int, match bool) {
	s.mu.Lock()
	if gen != s.generation || !s.processing {
		s.mu.Unlock()
		return
	}

	if match {
		s.tiles[first].Matched = true
		s.tiles[second].Matched = true
		s.matches++
		if s.matches == len(s.tiles)/2 {
			s.won = true
		}
	} else {
		s.tiles[first].Revealed = false
		s.tiles[second].Revealed = false
	}
	s.selected = s.selected[:0]
	s.processing = false
	s.pending = nil

	snap := s.snapshotLocked()
	notify := s.onResolve
	s.mu.Unlock()

	if notify != nil {
		notify(snap)
	}
}

// cancelPending stops any scheduled resolution and invalidates it in case
// its callback is already running.
func (s *Session) cancelPending() {
	if s.pending != nil {
		s.pending.Stop()
		s.pending = nil
	}
	s.generation++
}

// Close cancels any pending resolution. The session must not be used for
// play afterwards except through Initialize.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelPending()
}

// Difficulty returns the difficulty the next Initialize will use.
func (s *Session) Difficulty() Difficulty {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.difficulty
}

// Won reports whether every pair has been found.
func (s *Session) Won() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.won
}

// State returns the current phase.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

func (s *Session) stateLocked() State {
	switch {
	case s.won:
		return StateWon
	case s.processing:
		return StateProcessing
	case len(s.selected) == 1:
		return StateOneFlipped
	default:
		return StateIdle
	}
}

// Snapshot returns a copy of the session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	w, h := s.active.Dimensions()
	return Snapshot{
		Difficulty: s.active,
		Width:      w,
		Height:     h,
		Tiles:      append([]Tile(nil), s.tiles...),
		Selected:   append([]int(nil), s.selected...),
		Moves:      s.moves,
		Matches:    s.matches,
		Pairs:      len(s.tiles) / 2,
		Processing: s.processing,
		Won:        s.won,
		State:      s.stateLocked(),
	}
}
