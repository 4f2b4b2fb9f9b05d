// Package web serves the browser console: a gin JSON API over the maze and
// tiles engines, login, the leaderboard, and websocket pushes of tile
// resolutions.
package web

import (
	"context"
	"errors"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/vovakirdan/echo-arcade/internal/config"
	"github.com/vovakirdan/echo-arcade/internal/identity"
	"github.com/vovakirdan/echo-arcade/internal/storage"
)

// Controller registers a group of routes. Public routes need no login;
// protected routes run behind the bearer-token middleware.
type Controller interface {
	RegisterPublic(*gin.RouterGroup)
	RegisterProtected(*gin.RouterGroup)
}

// Options are the server's collaborators.
type Options struct {
	Config config.Config
	Auth   *identity.Auth
	Store  *storage.Store

	// Cache, if set, serves and receives leaderboard standings in front of
	// the store (e.g. a redisboard.Board).
	Cache storage.Leaderboard

	// Logger defaults to a stderr logger prefixed "arcade-web".
	Logger *log.Logger
}

// Server is the HTTP console.
type Server struct {
	cfg      config.WebConfig
	engine   *gin.Engine
	sessions *Sessions
	hub      *Hub
	logger   *log.Logger

	stopHub   context.CancelFunc
	closeOnce sync.Once
}

// NewServer wires the routes and starts the websocket hub. Call Run to
// serve, or use Handler with Close when embedding the server elsewhere.
func NewServer(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "arcade-web",
		})
	}

	webCfg := opts.Config.Web
	hub := NewHub(webCfg.AllowedOrigins, logger)
	sessions := NewSessions(webCfg.SessionTTL)
	sessions.OnRemove = hub.CloseSession

	hubCtx, stopHub := context.WithCancel(context.Background())
	go hub.Run(hubCtx)

	s := &Server{
		cfg:      webCfg,
		sessions: sessions,
		hub:      hub,
		logger:   logger,
		stopHub:  stopHub,
	}

	var ranking storage.Leaderboard = opts.Store
	if opts.Cache != nil {
		ranking = opts.Cache
	}

	controllers := []Controller{
		newIdentityController(opts.Auth),
		newScoreController(opts.Store, ranking, opts.Cache, opts.Config.Leaderboard.Limit, logger),
		newMazeController(sessions, opts.Config.Maze),
		newTilesController(sessions, hub, opts.Config.TilesDifficulty(), opts.Config.FlipDelay()),
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger(logger), cors(webCfg.AllowedOrigins))
	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "sessions": sessions.Len()})
	})

	api := engine.Group(webCfg.BaseURL)
	{
		// Public routes (accessible without authentication)
		public := api.Group("/v1")
		for _, c := range controllers {
			c.RegisterPublic(public)
		}

		// Protected routes (authentication required)
		protected := api.Group("/v1")
		protected.Use(Authorize(opts.Auth))
		for _, c := range controllers {
			c.RegisterProtected(protected)
		}
	}

	s.engine = engine
	return s
}

// Handler returns the HTTP handler serving every route.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Sessions returns the live game sessions.
func (s *Server) Sessions() *Sessions {
	return s.sessions
}

// Close ends every live session and stops the websocket hub. Plain
// requests still work afterwards; websocket upgrades are refused.
func (s *Server) Close() {
	s.closeOnce.Do(func() {
		s.sessions.Close()
		s.stopHub()
	})
}

// Run serves until ctx is cancelled, then shuts down gracefully and closes
// the server.
func (s *Server) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer s.Close()

	go s.sessions.Run(ctx, s.cfg.ReapInterval)

	srv := &http.Server{
		Addr:              s.cfg.Address,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting web server", "address", s.cfg.Address, "base_url", s.cfg.BaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			s.logger.Error("server error", "error", err)
			return err
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	return srv.Shutdown(shutdownCtx)
}
