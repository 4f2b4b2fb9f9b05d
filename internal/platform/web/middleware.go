package web

import (
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/vovakirdan/echo-arcade/internal/identity"
)

// ContextUserClaims is the key used to store user claims in the Gin context.
const ContextUserClaims = "userClaims"

// TokenVerifier turns a bearer token into the player's claims.
type TokenVerifier interface {
	Verify(token string) (identity.Claims, error)
}

// Authorize rejects requests without a valid "Authorization: Bearer" token
// and stores the claims of accepted ones.
func Authorize(v TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "malformed authorization header"})
			return
		}

		claims, err := v.Verify(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(ContextUserClaims, claims)
		c.Next()
	}
}

// claimsFrom returns the claims Authorize stored on the request.
func claimsFrom(c *gin.Context) (identity.Claims, bool) {
	v, ok := c.Get(ContextUserClaims)
	if !ok {
		return identity.Claims{}, false
	}
	claims, ok := v.(identity.Claims)
	return claims, ok
}

// requestLogger logs one line per request.
func requestLogger(logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"duration", time.Since(start),
		}
		switch {
		case status >= http.StatusInternalServerError:
			logger.Error("request", append(fields, "errors", c.Errors.String())...)
		case status >= http.StatusBadRequest:
			logger.Warn("request", fields...)
		default:
			logger.Debug("request", fields...)
		}
	}
}

// cors answers browser preflights and tags responses for allowed origins.
// A "*" entry allows every origin.
func cors(allowed []string) gin.HandlerFunc {
	allowAll := slices.Contains(allowed, "*")
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && (allowAll || slices.Contains(allowed, origin)) {
			h := c.Writer.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			h.Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
			h.Add("Vary", "Origin")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// allowOrigin reports whether a websocket upgrade from origin is accepted.
// Requests without an Origin header come from non-browser clients.
func allowOrigin(allowed []string, origin string) bool {
	return origin == "" || slices.Contains(allowed, "*") || slices.Contains(allowed, origin)
}
