package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/arcade.yaml
var defaultArcadeYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Maze: MazeConfig{
			Width:        15,
			Height:       15,
			MaxDimension: 101,
		},
		Tiles: TilesConfig{
			Difficulty:  "easy",
			FlipDelayMS: 1000,
		},
		Web: WebConfig{
			Address:        ":8080",
			BaseURL:        "/api",
			SessionTTL:     30 * time.Minute,
			ReapInterval:   time.Minute,
			AllowedOrigins: []string{"http://localhost:5173"},
		},
		Auth: AuthConfig{
			JWTIssuer: "echo-arcade",
			TokenTTL:  24 * time.Hour,
		},
		Leaderboard: LeaderboardConfig{
			Backend: BackendSQLite,
			Limit:   10,
		},
	}
}
