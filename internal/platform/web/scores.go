package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/vovakirdan/echo-arcade/internal/registry"
	"github.com/vovakirdan/echo-arcade/internal/storage"
)

const maxLimit = 100

// ScoreRequest submits a finished round. Score is the number of moves.
type ScoreRequest struct {
	Game  string `json:"game" binding:"required"`
	Score int    `json:"score" binding:"required,gt=0"`
}

type scoreController struct {
	store   *storage.Store
	ranking storage.Leaderboard // where standings are read from
	cache   storage.Leaderboard // optional second copy kept in sync on submit
	limit   int
	logger  *log.Logger
}

func newScoreController(store *storage.Store, ranking, cache storage.Leaderboard, limit int, logger *log.Logger) *scoreController {
	if limit <= 0 {
		limit = 10
	}
	return &scoreController{store: store, ranking: ranking, cache: cache, limit: limit, logger: logger}
}

// RegisterPublic registers public routes.
func (c *scoreController) RegisterPublic(route *gin.RouterGroup) {
	route.GET("/scores/top", c.top)
	route.GET("/leaderboard/:game", c.leaderboard)
}

// RegisterProtected registers privileged routes.
func (c *scoreController) RegisterProtected(route *gin.RouterGroup) {
	route.POST("/scores", c.submit)
	route.GET("/scores/best", c.best)
}

// gameParam validates a game ID from the request.
func gameParam(ctx *gin.Context, id string) (string, bool) {
	if id == "" || !registry.Exists(id) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "unknown game " + strconv.Quote(id)})
		return "", false
	}
	return id, true
}

func (c *scoreController) limitParam(ctx *gin.Context) (int, bool) {
	raw := ctx.Query("limit")
	if raw == "" {
		return c.limit, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
		return 0, false
	}
	return min(n, maxLimit), true
}

func (c *scoreController) top(ctx *gin.Context) {
	game, ok := gameParam(ctx, ctx.Query("game"))
	if !ok {
		return
	}
	limit, ok := c.limitParam(ctx)
	if !ok {
		return
	}

	scores, err := c.store.TopScores(game, limit)
	if err != nil {
		internalError(ctx, err)
		return
	}
	if scores == nil {
		scores = []storage.ScoreEntry{}
	}
	ctx.JSON(http.StatusOK, gin.H{"game": game, "scores": scores})
}

func (c *scoreController) leaderboard(ctx *gin.Context) {
	game, ok := gameParam(ctx, ctx.Param("game"))
	if !ok {
		return
	}
	limit, ok := c.limitParam(ctx)
	if !ok {
		return
	}

	standings, err := c.ranking.Top(ctx.Request.Context(), game, limit)
	if err != nil {
		internalError(ctx, err)
		return
	}
	if standings == nil {
		standings = []storage.Standing{}
	}
	ctx.JSON(http.StatusOK, gin.H{"game": game, "standings": standings})
}

func (c *scoreController) submit(ctx *gin.Context) {
	claims, ok := claimsFrom(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "not signed in"})
		return
	}

	var request ScoreRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, ok := gameParam(ctx, request.Game); !ok {
		return
	}

	id, err := c.store.SaveScore(claims.Username, request.Game, request.Score)
	if err != nil {
		internalError(ctx, err)
		return
	}
	if c.cache != nil {
		if err := c.cache.Submit(ctx.Request.Context(), claims.Username, request.Game, request.Score); err != nil {
			c.logger.Warn("leaderboard cache update failed", "game", request.Game, "user", claims.Username, "error", err)
		}
	}

	ctx.JSON(http.StatusCreated, gin.H{"id": id, "game": request.Game, "user": claims.Username, "score": request.Score})
}

func (c *scoreController) best(ctx *gin.Context) {
	claims, ok := claimsFrom(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "not signed in"})
		return
	}
	game, ok := gameParam(ctx, ctx.Query("game"))
	if !ok {
		return
	}

	best, err := c.store.BestScore(claims.Username, game)
	if errors.Is(err, storage.ErrNoScore) {
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		internalError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"game": game, "user": claims.Username, "best": best})
}
