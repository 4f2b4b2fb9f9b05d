package main

import (
	"context"
	"fmt"
	"os"
	"os/user"

	"golang.org/x/term"

	"github.com/vovakirdan/echo-arcade/internal/config"
	"github.com/vovakirdan/echo-arcade/internal/core"
	"github.com/vovakirdan/echo-arcade/internal/storage"
	"github.com/vovakirdan/echo-arcade/internal/storage/redisboard"
)

// loadConfig reads .env and arcade.yaml, then applies --size.
func loadConfig() (config.Config, error) {
	if err := config.LoadDotEnv(); err != nil {
		return config.Config{}, err
	}
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if err := config.ApplyMazePreset(&cfg, config.MazePreset(flagSize)); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func mustLoadConfig() config.Config {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// runtimeConfig builds the game loop settings for the local terminal.
func runtimeConfig(cfg config.Config) core.RuntimeConfig {
	rc := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		rc.ScreenW = w
		rc.ScreenH = h
	}
	rc.TickRate = flagFPS
	rc.Seed = flagSeed
	rc.Options = cfg.GameOptions()
	return rc
}

// playerName is the name finished rounds are recorded under.
func playerName() string {
	if flagUser != "" {
		return flagUser
	}
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "player"
}

// openLeaderboard opens the score database and, for the redis backend, the
// ranking cache in front of it. The returned func releases both.
func openLeaderboard(ctx context.Context, cfg config.Config) (storage.Leaderboard, func(), error) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return nil, func() {}, err
	}
	if cfg.Leaderboard.Backend != config.BackendRedis {
		return store, func() { store.Close() }, nil
	}

	cache, err := redisboard.Dial(ctx, cfg.Leaderboard.RedisAddr)
	if err != nil {
		store.Close()
		return nil, func() {}, err
	}
	board := storage.Cached{Primary: store, Cache: cache}
	return board, func() {
		cache.Close()
		store.Close()
	}, nil
}

// openLeaderboardOrWarn is openLeaderboard for the games, which still run
// without a leaderboard.
func openLeaderboardOrWarn(cfg config.Config) (storage.Leaderboard, func()) {
	board, closeBoard, err := openLeaderboard(context.Background(), cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open leaderboard: %v\n", err)
		return nil, closeBoard
	}
	return board, closeBoard
}
