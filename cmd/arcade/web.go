package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/echo-arcade/internal/config"
	"github.com/vovakirdan/echo-arcade/internal/identity"
	"github.com/vovakirdan/echo-arcade/internal/platform/web"
	"github.com/vovakirdan/echo-arcade/internal/storage"
	"github.com/vovakirdan/echo-arcade/internal/storage/redisboard"
)

var (
	flagWebAddr  string
	flagWebDebug bool
)

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Start the HTTP console",
	Long: `Start the HTTP console: a JSON API for playing mazes and memory tiles,
signing in, and reading the leaderboards, plus a websocket per tiles
session that pushes every pair resolution.

Login tokens are signed with ARCADE_JWT_SECRET, read from the
environment or a .env file in the working directory.

Examples:
  arcade web
  arcade web --addr :9000
  ARCADE_JWT_SECRET=change-me arcade web --db ./scores.db`,
	RunE: runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagWebAddr, "addr", "", "Listen address (overrides web.address)")
	webCmd.Flags().BoolVar(&flagWebDebug, "debug", false, "Run gin in debug mode")
}

func runWeb(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if flagWebAddr != "" {
		cfg.Web.Address = flagWebAddr
	}
	if cfg.Auth.JWTSecret == "" {
		return fmt.Errorf("%s is not set", config.EnvJWTSecret)
	}
	if !flagWebDebug {
		gin.SetMode(gin.ReleaseMode)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "arcade-web",
	})
	if flagWebDebug {
		logger.SetLevel(log.DebugLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	var cache storage.Leaderboard
	if cfg.Leaderboard.Backend == config.BackendRedis {
		board, err := redisboard.Dial(ctx, cfg.Leaderboard.RedisAddr)
		if err != nil {
			return err
		}
		defer board.Close()
		cache = board
		logger.Info("using redis leaderboard", "address", cfg.Leaderboard.RedisAddr)
	}

	tokens := identity.NewJwtService(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer)
	server := web.NewServer(web.Options{
		Config: cfg,
		Auth:   identity.NewAuth(store, tokens, cfg.Auth.TokenTTL),
		Store:  store,
		Cache:  cache,
		Logger: logger,
	})

	cmd.SilenceUsage = true
	return server.Run(ctx)
}
