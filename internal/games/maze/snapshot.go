package maze

// Snapshot captures the game state for determinism tests and the web API.
type Snapshot struct {
	Tick      uint64   `json:"-"`
	Width     int      `json:"width"`
	Height    int      `json:"height"`
	Layout    [][]Cell `json:"maze_layout"`
	Player    Position `json:"player_position"`
	Goal      Position `json:"goal_position"`
	GameOver  bool     `json:"game_over"`
	Moves     int      `json:"moves"`
	Walls     Walls    `json:"nearby_walls"`
	Proximity float64  `json:"proximity"`
	State     Status   `json:"status"`
}

// Snapshot returns an immutable view of m.
func (m *Maze) Snapshot() Snapshot {
	c := m.Clone()
	return Snapshot{
		Width:     c.Width,
		Height:    c.Height,
		Layout:    c.Layout,
		Player:    c.Player,
		Goal:      c.Goal,
		GameOver:  c.GameOver,
		Moves:     c.Moves,
		Walls:     c.NearbyWalls(),
		Proximity: c.Proximity(),
		State:     c.Status(),
	}
}

// Snapshot returns the game's current maze snapshot.
func (g *Game) Snapshot() Snapshot {
	if g.maze == nil {
		return Snapshot{Tick: g.tick}
	}
	s := g.maze.Snapshot()
	s.Tick = g.tick
	return s
}
