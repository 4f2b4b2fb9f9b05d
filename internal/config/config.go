// Package config loads the arcade configuration: YAML settings for the
// games, the web console and the leaderboard, plus secrets from the
// environment.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/echo-arcade/internal/games/maze"
	"github.com/vovakirdan/echo-arcade/internal/games/tiles"
)

// Config is the complete arcade configuration.
type Config struct {
	Maze        MazeConfig        `yaml:"maze"`
	Tiles       TilesConfig       `yaml:"tiles"`
	Web         WebConfig         `yaml:"web"`
	Auth        AuthConfig        `yaml:"auth"`
	Leaderboard LeaderboardConfig `yaml:"leaderboard"`
}

// MazeConfig sets the maze size. Odd sizes give the cleanest mazes.
type MazeConfig struct {
	Width        int `yaml:"width"`
	Height       int `yaml:"height"`
	MaxDimension int `yaml:"max_dimension"` // upper bound for sizes requested over the web API
}

// TilesConfig sets the memory-tiles defaults.
type TilesConfig struct {
	Difficulty  string `yaml:"difficulty"`    // easy, medium or hard
	FlipDelayMS int    `yaml:"flip_delay_ms"` // 0 means the engine default
}

// WebConfig configures the HTTP console.
type WebConfig struct {
	Address        string        `yaml:"address"`
	BaseURL        string        `yaml:"base_url"`
	SessionTTL     time.Duration `yaml:"session_ttl"`   // idle game sessions are dropped after this
	ReapInterval   time.Duration `yaml:"reap_interval"` // how often idle sessions are checked
	AllowedOrigins []string      `yaml:"allowed_origins"`
}

// AuthConfig configures login tokens. The signing secret only comes from
// the environment.
type AuthConfig struct {
	JWTIssuer string        `yaml:"jwt_issuer"`
	TokenTTL  time.Duration `yaml:"token_ttl"`
	JWTSecret string        `yaml:"-"`
}

// LeaderboardConfig selects where rankings are kept.
type LeaderboardConfig struct {
	Backend   string `yaml:"backend"` // sqlite or redis
	RedisAddr string `yaml:"redis_addr"`
	Limit     int    `yaml:"limit"` // default number of ranked entries returned
}

// Leaderboard backends.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("config: invalid")

// Validate checks the configuration for values the games cannot run with.
func (c Config) Validate() error {
	switch {
	case c.Maze.Width < maze.MinPlayableSide || c.Maze.Height < maze.MinPlayableSide:
		return fmt.Errorf("%w: maze size %dx%d, sides must be at least %d", ErrInvalid, c.Maze.Width, c.Maze.Height, maze.MinPlayableSide)
	case c.Maze.MaxDimension < 1:
		return fmt.Errorf("%w: maze max_dimension must be positive", ErrInvalid)
	case c.Maze.Width > c.Maze.MaxDimension || c.Maze.Height > c.Maze.MaxDimension:
		return fmt.Errorf("%w: maze size %dx%d exceeds max_dimension %d", ErrInvalid, c.Maze.Width, c.Maze.Height, c.Maze.MaxDimension)
	case c.Tiles.FlipDelayMS < 0:
		return fmt.Errorf("%w: tiles flip_delay_ms must not be negative", ErrInvalid)
	case c.Leaderboard.Limit < 1:
		return fmt.Errorf("%w: leaderboard limit must be positive", ErrInvalid)
	}

	if _, err := tiles.ParseDifficulty(c.Tiles.Difficulty); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	switch c.Leaderboard.Backend {
	case BackendSQLite:
	case BackendRedis:
		if c.Leaderboard.RedisAddr == "" {
			return fmt.Errorf("%w: redis leaderboard needs redis_addr", ErrInvalid)
		}
	default:
		return fmt.Errorf("%w: unknown leaderboard backend %q", ErrInvalid, c.Leaderboard.Backend)
	}
	return nil
}

// TilesDifficulty returns the configured tiles difficulty.
func (c Config) TilesDifficulty() tiles.Difficulty {
	d, err := tiles.ParseDifficulty(c.Tiles.Difficulty)
	if err != nil {
		return tiles.Easy
	}
	return d
}

// FlipDelay returns the configured resolution delay, or zero for the default.
func (c Config) FlipDelay() time.Duration {
	return time.Duration(c.Tiles.FlipDelayMS) * time.Millisecond
}

// GameOptions returns the per-game options passed to the game loop.
func (c Config) GameOptions() map[string]int {
	return map[string]int{
		"width":         c.Maze.Width,
		"height":        c.Maze.Height,
		"flip_delay_ms": c.Tiles.FlipDelayMS,
	}
}
