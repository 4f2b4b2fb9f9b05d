package web

import (
	"math/rand"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vovakirdan/echo-arcade/internal/games/tiles"
)

// NewTilesRequest starts a tiles session. An empty difficulty takes the
// configured default; a zero seed picks a random one.
type NewTilesRequest struct {
	Difficulty string `json:"difficulty"`
	Seed       int64  `json:"seed"`
}

// ClickRequest flips the tile at Index (row-major).
type ClickRequest struct {
	Index *int `json:"index" binding:"required"`
}

// RestartRequest deals a new deck, optionally at another difficulty.
type RestartRequest struct {
	Difficulty string `json:"difficulty"`
}

// ClickResponse reports a click. A rejected click is not an error.
type ClickResponse struct {
	Accepted bool           `json:"accepted"`
	State    tiles.Snapshot `json:"state"`
}

type tilesController struct {
	sessions   *Sessions
	hub        *Hub
	difficulty tiles.Difficulty
	flipDelay  time.Duration
}

func newTilesController(sessions *Sessions, hub *Hub, d tiles.Difficulty, flipDelay time.Duration) *tilesController {
	return &tilesController{sessions: sessions, hub: hub, difficulty: d, flipDelay: flipDelay}
}

// RegisterPublic registers public routes.
func (c *tilesController) RegisterPublic(route *gin.RouterGroup) {
	g := route.Group("/tiles")
	{
		g.POST("", c.create)
		g.GET("/:id", c.get)
		g.POST("/:id/click", c.click)
		g.POST("/:id/restart", c.restart)
		g.GET("/:id/ws", c.watch)
	}
}

// RegisterProtected registers privileged routes.
func (c *tilesController) RegisterProtected(*gin.RouterGroup) {}

// difficultyParam parses name, falling back to def when empty.
func difficultyParam(ctx *gin.Context, name string, def tiles.Difficulty) (tiles.Difficulty, bool) {
	if name == "" {
		return def, true
	}
	d, err := tiles.ParseDifficulty(name)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return 0, false
	}
	return d, true
}

func (c *tilesController) create(ctx *gin.Context) {
	var request NewTilesRequest
	if ctx.Request.ContentLength != 0 {
		if err := ctx.ShouldBindJSON(&request); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	d, ok := difficultyParam(ctx, request.Difficulty, c.difficulty)
	if !ok {
		return
	}

	seed := request.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	id := uuid.New()
	session, err := tiles.NewSession(tiles.SessionConfig{
		Difficulty: d,
		Rand:       rand.New(rand.NewSource(seed)),
		Scheduler:  tiles.RealScheduler{},
		FlipDelay:  c.flipDelay,
		OnResolve: func(s tiles.Snapshot) {
			c.hub.Broadcast(id, EventResolved, s)
		},
	})
	if err != nil {
		internalError(ctx, err)
		return
	}

	c.sessions.AddTiles(id, session)
	ctx.JSON(http.StatusCreated, gin.H{"id": id, "state": session.Snapshot()})
}

// session resolves the :id parameter, answering 404 when it is unknown.
func (c *tilesController) session(ctx *gin.Context) (uuid.UUID, *tiles.Session, bool) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err == nil {
		if s, ok := c.sessions.Tiles(id); ok {
			return id, s, true
		}
	}
	ctx.JSON(http.StatusNotFound, gin.H{"error": "tiles session not found"})
	return uuid.Nil, nil, false
}

func (c *tilesController) get(ctx *gin.Context) {
	_, s, ok := c.session(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, s.Snapshot())
}

func (c *tilesController) click(ctx *gin.Context) {
	id, s, ok := c.session(ctx)
	if !ok {
		return
	}

	var request ClickRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	accepted := s.Click(*request.Index)
	state := s.Snapshot()
	if accepted {
		c.hub.Broadcast(id, EventState, state)
	}
	ctx.JSON(http.StatusOK, ClickResponse{Accepted: accepted, State: state})
}

func (c *tilesController) restart(ctx *gin.Context) {
	id, s, ok := c.session(ctx)
	if !ok {
		return
	}

	var request RestartRequest
	if ctx.Request.ContentLength != 0 {
		if err := ctx.ShouldBindJSON(&request); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	if request.Difficulty != "" {
		d, ok := difficultyParam(ctx, request.Difficulty, c.difficulty)
		if !ok {
			return
		}
		if err := s.SetDifficulty(d); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	s.Initialize()
	state := s.Snapshot()
	c.hub.Broadcast(id, EventState, state)
	ctx.JSON(http.StatusOK, state)
}

func (c *tilesController) watch(ctx *gin.Context) {
	id, s, ok := c.session(ctx)
	if !ok {
		return
	}
	c.hub.ServeWS(ctx.Writer, ctx.Request, id, s.Snapshot())
}
