package web

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/echo-arcade/internal/games/maze"
	"github.com/vovakirdan/echo-arcade/internal/games/tiles"
)

// DefaultSessionTTL applies when no idle timeout is configured.
const DefaultSessionTTL = 30 * time.Minute

// MazeSession is one browser maze. Moves on it are serialized.
type MazeSession struct {
	mu   sync.Mutex
	maze *maze.Maze
}

// Move applies dir and returns whether it was accepted plus the new state.
func (s *MazeSession) Move(dir maze.Direction) (bool, maze.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ok := s.maze.Move(dir)
	return ok, s.maze.Snapshot()
}

// Snapshot returns the current state.
func (s *MazeSession) Snapshot() maze.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.maze.Snapshot()
}

// Walls returns the cues around the player.
func (s *MazeSession) Walls() WallsResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	return WallsResponse{
		Walls:     s.maze.NearbyWalls(),
		Proximity: s.maze.Proximity(),
		Distance:  s.maze.DistanceToGoal(),
		Status:    string(s.maze.Status()),
	}
}

type entry struct {
	maze     *MazeSession
	tiles    *tiles.Session
	lastSeen time.Time
}

// Sessions holds the live games of the web console, keyed by ID.
// Sessions idle for longer than the TTL are removed by Reap.
type Sessions struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[uuid.UUID]*entry

	// Now is the clock; tests replace it.
	Now func() time.Time

	// OnRemove, if set, is called with the ID of every removed session
	// after its resources are released.
	OnRemove func(id uuid.UUID)
}

// NewSessions creates an empty registry. A non-positive ttl selects
// DefaultSessionTTL.
func NewSessions(ttl time.Duration) *Sessions {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Sessions{
		ttl:     ttl,
		entries: make(map[uuid.UUID]*entry),
		Now:     time.Now,
	}
}

// AddMaze registers a maze and returns its ID.
func (s *Sessions) AddMaze(m *maze.Maze) uuid.UUID {
	id := uuid.New()
	s.mu.Lock()
	s.entries[id] = &entry{maze: &MazeSession{maze: m}, lastSeen: s.Now()}
	s.mu.Unlock()
	return id
}

// AddTiles registers a tiles session under id. The ID is chosen by the
// caller so the session's callbacks can refer to it.
func (s *Sessions) AddTiles(id uuid.UUID, t *tiles.Session) {
	s.mu.Lock()
	s.entries[id] = &entry{tiles: t, lastSeen: s.Now()}
	s.mu.Unlock()
}

// Maze looks up a maze session and marks it as used.
func (s *Sessions) Maze(id uuid.UUID) (*MazeSession, bool) {
	e, ok := s.touch(id)
	if !ok || e.maze == nil {
		return nil, false
	}
	return e.maze, true
}

// Tiles looks up a tiles session and marks it as used.
func (s *Sessions) Tiles(id uuid.UUID) (*tiles.Session, bool) {
	e, ok := s.touch(id)
	if !ok || e.tiles == nil {
		return nil, false
	}
	return e.tiles, true
}

func (s *Sessions) touch(id uuid.UUID) (*entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if ok {
		e.lastSeen = s.Now()
	}
	return e, ok
}

// Len returns the number of live sessions.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Reap removes sessions idle for longer than the TTL and returns how many
// were removed.
func (s *Sessions) Reap() int {
	cutoff := s.Now().Add(-s.ttl)

	s.mu.Lock()
	var expired []uuid.UUID
	var removed []*entry
	for id, e := range s.entries {
		if e.lastSeen.Before(cutoff) {
			expired = append(expired, id)
			removed = append(removed, e)
			delete(s.entries, id)
		}
	}
	s.mu.Unlock()

	s.release(expired, removed)
	return len(expired)
}

// Close removes every session.
func (s *Sessions) Close() {
	s.mu.Lock()
	ids := make([]uuid.UUID, 0, len(s.entries))
	removed := make([]*entry, 0, len(s.entries))
	for id, e := range s.entries {
		ids = append(ids, id)
		removed = append(removed, e)
	}
	s.entries = make(map[uuid.UUID]*entry)
	s.mu.Unlock()

	s.release(ids, removed)
}

// release runs outside the registry lock; closing a tiles session waits for
// its own lock.
func (s *Sessions) release(ids []uuid.UUID, removed []*entry) {
	for i, e := range removed {
		if e.tiles != nil {
			e.tiles.Close()
		}
		if s.OnRemove != nil {
			s.OnRemove(ids[i])
		}
	}
}

// Run reaps idle sessions every interval until ctx is cancelled.
func (s *Sessions) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Reap()
		}
	}
}
