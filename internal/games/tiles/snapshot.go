package tiles

// Snapshot is an immutable copy of a session, for renderers and the web API.
type Snapshot struct {
	Difficulty Difficulty `json:"difficulty"`
	Width      int        `json:"width"`
	Height     int        `json:"height"`
	Tiles      []Tile     `json:"tiles"`
	Selected   []int      `json:"selected"`
	Moves      int        `json:"move_count"`
	Matches    int        `json:"match_count"`
	Pairs      int        `json:"total_pairs"`
	Processing bool       `json:"is_processing"`
	Won        bool       `json:"game_won"`
	State      State      `json:"state"`
}

// Tile returns the tile at grid column x, row y, and false for the empty
// cell left over on odd-sized grids.
func (s Snapshot) Tile(x, y int) (Tile, bool) {
	if x < 0 || x >= s.Width || y < 0 || y >= s.Height {
		return Tile{}, false
	}
	i := y*s.Width + x
	if i >= len(s.Tiles) {
		return Tile{}, false
	}
	return s.Tiles[i], true
}
