package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/echo-arcade/internal/games/tiles"
)

func TestEmbeddedDefaultsMatchDefault(t *testing.T) {
	cfg, err := loadFile("")
	if err != nil {
		t.Fatal(err)
	}
	def := Default()

	if cfg.Maze != def.Maze || cfg.Tiles != def.Tiles || cfg.Leaderboard != def.Leaderboard {
		t.Errorf("embedded yaml differs from Default(): %+v", cfg)
	}
	if cfg.Web.SessionTTL != 30*time.Minute || cfg.Auth.TokenTTL != 24*time.Hour {
		t.Errorf("durations not parsed: %v %v", cfg.Web.SessionTTL, cfg.Auth.TokenTTL)
	}
	if err := def.Validate(); err != nil {
		t.Errorf("Default() should be valid: %v", err)
	}
}

func TestLoadCustomPathKeepsMissingKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arcade.yaml")
	data := []byte("maze:\n  width: 21\ntiles:\n  difficulty: hard\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Maze.Width != 21 || cfg.Maze.Height != 15 {
		t.Errorf("maze = %+v, expected 21x15", cfg.Maze)
	}
	if cfg.TilesDifficulty() != tiles.Hard {
		t.Errorf("difficulty = %v", cfg.TilesDifficulty())
	}
	if cfg.Leaderboard.Limit != 10 {
		t.Errorf("unset limit should keep the default, got %d", cfg.Leaderboard.Limit)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing custom file should fail")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("maze: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("malformed yaml should fail")
	}

	invalid := filepath.Join(t.TempDir(), "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("maze:\n  width: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(invalid); !errors.Is(err, ErrInvalid) {
		t.Errorf("invalid values error = %v, expected ErrInvalid", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero width", func(c *Config) { c.Maze.Width = 0 }},
		{"negative height", func(c *Config) { c.Maze.Height = -3 }},
		{"single cell", func(c *Config) { c.Maze.Width, c.Maze.Height = 1, 1 }},
		{"single column", func(c *Config) { c.Maze.Width = 1 }},
		{"over max", func(c *Config) { c.Maze.Width = c.Maze.MaxDimension + 2 }},
		{"unknown difficulty", func(c *Config) { c.Tiles.Difficulty = "nightmare" }},
		{"negative delay", func(c *Config) { c.Tiles.FlipDelayMS = -1 }},
		{"unknown backend", func(c *Config) { c.Leaderboard.Backend = "mongo" }},
		{"redis without addr", func(c *Config) { c.Leaderboard.Backend = BackendRedis }},
		{"zero limit", func(c *Config) { c.Leaderboard.Limit = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, expected ErrInvalid", err)
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvJWTSecret, "s3cret")
	t.Setenv(EnvRedisAddr, "localhost:6380")
	t.Setenv(EnvWebAddr, ":9999")

	cfg := Default()
	cfg.ApplyEnv()

	if cfg.Auth.JWTSecret != "s3cret" || cfg.Leaderboard.RedisAddr != "localhost:6380" || cfg.Web.Address != ":9999" {
		t.Errorf("env not applied: %+v %+v %+v", cfg.Auth, cfg.Leaderboard, cfg.Web)
	}
}

func TestLoadDotEnv(t *testing.T) {
	if err := LoadDotEnv(filepath.Join(t.TempDir(), "none.env")); err != nil {
		t.Errorf("missing .env should be ignored: %v", err)
	}

	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte("ARCADE_TEST_DOTENV=loaded\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv("ARCADE_TEST_DOTENV") })

	if err := LoadDotEnv(path); err != nil {
		t.Fatal(err)
	}
	if got := os.Getenv("ARCADE_TEST_DOTENV"); got != "loaded" {
		t.Errorf("ARCADE_TEST_DOTENV = %q", got)
	}
}

func TestGameOptions(t *testing.T) {
	cfg := Default()
	cfg.Maze.Width, cfg.Maze.Height = 9, 11
	opts := cfg.GameOptions()

	if opts["width"] != 9 || opts["height"] != 11 || opts["flip_delay_ms"] != 1000 {
		t.Errorf("GameOptions() = %v", opts)
	}
	if cfg.FlipDelay() != time.Second {
		t.Errorf("FlipDelay() = %v", cfg.FlipDelay())
	}
}

func TestApplyMazePreset(t *testing.T) {
	cfg := Default()
	if err := ApplyMazePreset(&cfg, MazeLarge); err != nil {
		t.Fatal(err)
	}
	if cfg.Maze.Width != 31 || cfg.Maze.Height != 21 {
		t.Errorf("large preset = %+v", cfg.Maze)
	}
	if err := ApplyMazePreset(&cfg, ""); err != nil || cfg.Maze.Width != 31 {
		t.Error("empty preset should be a no-op")
	}
	if err := ApplyMazePreset(&cfg, "huge"); err == nil {
		t.Error("unknown preset should fail")
	}
}
