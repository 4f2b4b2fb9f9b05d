package web

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vovakirdan/echo-arcade/internal/identity"
)

// AuthRequest is the body of register and login.
type AuthRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse describes a player, with a token after login.
type AuthResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
	Token     string    `json:"token,omitempty"`
}

type identityController struct {
	auth *identity.Auth
}

func newIdentityController(a *identity.Auth) *identityController {
	return &identityController{auth: a}
}

// RegisterPublic registers public routes.
func (c *identityController) RegisterPublic(route *gin.RouterGroup) {
	auth := route.Group("/auth")
	{
		auth.POST("/register", c.register)
		auth.POST("/login", c.login)
	}
}

// RegisterProtected registers privileged routes.
func (c *identityController) RegisterProtected(route *gin.RouterGroup) {
	route.GET("/auth/me", c.me)
}

func (c *identityController) register(ctx *gin.Context) {
	var request AuthRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := c.auth.Register(request.Username, request.Password)
	switch {
	case errors.Is(err, identity.ErrUserExists):
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	case errors.Is(err, identity.ErrUsernameTooShort),
		errors.Is(err, identity.ErrUsernameTooLong),
		errors.Is(err, identity.ErrUsernameFormat),
		errors.Is(err, identity.ErrWeakPassword):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case err != nil:
		internalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, userResponse(user, ""))
}

func (c *identityController) login(ctx *gin.Context) {
	var request AuthRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := c.auth.SignIn(request.Username, request.Password)
	if errors.Is(err, identity.ErrInvalidCredentials) {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		internalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, userResponse(user, token))
}

func (c *identityController) me(ctx *gin.Context) {
	claims, ok := claimsFrom(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "not signed in"})
		return
	}

	user, err := c.auth.Me(claims)
	if errors.Is(err, identity.ErrUserNotFound) {
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		internalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, userResponse(user, ""))
}

func userResponse(u *identity.User, token string) *AuthResponse {
	return &AuthResponse{
		ID:        u.ID.String(),
		Username:  u.Username,
		CreatedAt: u.CreatedAt,
		Token:     token,
	}
}

// internalError hides err from the client and records it for the request log.
func internalError(ctx *gin.Context, err error) {
	_ = ctx.Error(err)
	ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
