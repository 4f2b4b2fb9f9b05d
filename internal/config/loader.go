package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const fileName = "arcade.yaml"

// Environment variables read by ApplyEnv.
const (
	EnvJWTSecret = "ARCADE_JWT_SECRET"
	EnvRedisAddr = "ARCADE_REDIS_ADDR"
	EnvWebAddr   = "ARCADE_WEB_ADDR"
)

// Load reads the configuration, applies environment overrides and validates it.
// Search order: customPath -> ~/.arcade/configs/arcade.yaml ->
// ./configs/arcade.yaml -> embedded default. Keys missing from the file keep
// their default values.
func Load(customPath string) (Config, error) {
	cfg, err := loadFile(customPath)
	if err != nil {
		return cfg, err
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadFile(customPath string) (Config, error) {
	cfg := Default()

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, path := range []string{userConfigPath(fileName), filepath.Join("configs", fileName)} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		fileCfg := Default()
		if err := yaml.Unmarshal(data, &fileCfg); err == nil {
			return fileCfg, nil
		}
	}

	if err := yaml.Unmarshal(defaultArcadeYAML, &cfg); err != nil {
		return Default(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// LoadDotEnv loads variables from the given .env files (default ".env")
// into the process environment. A missing file is not an error.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

// ApplyEnv overrides settings from ARCADE_* environment variables.
func (c *Config) ApplyEnv() {
	if v, ok := os.LookupEnv(EnvJWTSecret); ok {
		c.Auth.JWTSecret = v
	}
	if v, ok := os.LookupEnv(EnvRedisAddr); ok && v != "" {
		c.Leaderboard.RedisAddr = v
	}
	if v, ok := os.LookupEnv(EnvWebAddr); ok && v != "" {
		c.Web.Address = v
	}
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}
