package config

import "fmt"

// MazePreset is a named maze size.
type MazePreset string

const (
	MazeSmall  MazePreset = "small"
	MazeMedium MazePreset = "medium"
	MazeLarge  MazePreset = "large"
)

var mazePresetSizes = map[MazePreset][2]int{
	MazeSmall:  {9, 9},
	MazeMedium: {15, 15},
	MazeLarge:  {31, 21},
}

// ApplyMazePreset sets the maze size from a preset name.
// An empty preset leaves the config unchanged.
func ApplyMazePreset(cfg *Config, preset MazePreset) error {
	if preset == "" {
		return nil
	}
	size, ok := mazePresetSizes[preset]
	if !ok {
		return fmt.Errorf("config: unknown maze preset %q (want small, medium or large)", preset)
	}
	cfg.Maze.Width, cfg.Maze.Height = size[0], size[1]
	return nil
}

// MazePresets returns the presets from smallest to largest.
func MazePresets() []MazePreset {
	return []MazePreset{MazeSmall, MazeMedium, MazeLarge}
}

// Size returns the preset's maze dimensions, or zeros for an unknown preset.
func (p MazePreset) Size() (width, height int) {
	size := mazePresetSizes[p]
	return size[0], size[1]
}
