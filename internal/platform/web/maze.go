package web

import (
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vovakirdan/echo-arcade/internal/config"
	"github.com/vovakirdan/echo-arcade/internal/games/maze"
)

// NewMazeRequest creates a maze. Zero fields take the configured defaults;
// a zero seed picks a random one.
type NewMazeRequest struct {
	Width  int   `json:"width"`
	Height int   `json:"height"`
	Seed   int64 `json:"seed"`
}

// MoveRequest moves the player one cell.
type MoveRequest struct {
	Direction string `json:"direction" binding:"required"`
}

// MoveResponse reports a move. A rejected move is not an error.
type MoveResponse struct {
	Accepted bool          `json:"accepted"`
	State    maze.Snapshot `json:"state"`
}

// WallsResponse is the sensory cue around the player.
type WallsResponse struct {
	Walls     maze.Walls `json:"walls"`
	Proximity float64    `json:"proximity"`
	Distance  float64    `json:"distance"`
	Status    string     `json:"status"`
}

type mazeController struct {
	sessions *Sessions
	cfg      config.MazeConfig
}

func newMazeController(sessions *Sessions, cfg config.MazeConfig) *mazeController {
	return &mazeController{sessions: sessions, cfg: cfg}
}

// RegisterPublic registers public routes.
func (c *mazeController) RegisterPublic(route *gin.RouterGroup) {
	g := route.Group("/maze")
	{
		g.POST("", c.create)
		g.GET("/:id", c.get)
		g.POST("/:id/move", c.move)
		g.GET("/:id/walls", c.walls)
	}
}

// RegisterProtected registers privileged routes.
func (c *mazeController) RegisterProtected(*gin.RouterGroup) {}

func (c *mazeController) create(ctx *gin.Context) {
	var request NewMazeRequest
	if ctx.Request.ContentLength != 0 {
		if err := ctx.ShouldBindJSON(&request); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	w, h := request.Width, request.Height
	if w == 0 {
		w = c.cfg.Width
	}
	if h == 0 {
		h = c.cfg.Height
	}
	if w < maze.MinPlayableSide || h < maze.MinPlayableSide {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("maze sides must be at least %d", maze.MinPlayableSide)})
		return
	}
	if c.cfg.MaxDimension > 0 && (w > c.cfg.MaxDimension || h > c.cfg.MaxDimension) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("maze sides are limited to %d", c.cfg.MaxDimension)})
		return
	}

	seed := request.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	m, err := maze.Generate(w, h, rand.New(rand.NewSource(seed)))
	if errors.Is(err, maze.ErrInvalidDimensions) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		internalError(ctx, err)
		return
	}

	id := c.sessions.AddMaze(m)
	ctx.JSON(http.StatusCreated, gin.H{"id": id, "state": m.Snapshot()})
}

// session resolves the :id parameter, answering 404 when it is unknown.
func (c *mazeController) session(ctx *gin.Context) (*MazeSession, bool) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err == nil {
		if s, ok := c.sessions.Maze(id); ok {
			return s, true
		}
	}
	ctx.JSON(http.StatusNotFound, gin.H{"error": "maze not found"})
	return nil, false
}

func (c *mazeController) get(ctx *gin.Context) {
	s, ok := c.session(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, s.Snapshot())
}

func (c *mazeController) move(ctx *gin.Context) {
	s, ok := c.session(ctx)
	if !ok {
		return
	}

	var request MoveRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	dir, err := maze.ParseDirection(request.Direction)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	accepted, state := s.Move(dir)
	ctx.JSON(http.StatusOK, MoveResponse{Accepted: accepted, State: state})
}

func (c *mazeController) walls(ctx *gin.Context) {
	s, ok := c.session(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, s.Walls())
}
