package web

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/echo-arcade/internal/config"
	"github.com/vovakirdan/echo-arcade/internal/identity"
	"github.com/vovakirdan/echo-arcade/internal/storage"
)

const strongPassword = "violet-Harbor-lantern-93"

func init() {
	gin.SetMode(gin.TestMode)
}

type testEnv struct {
	server *Server
	store  *storage.Store
}

func newTestEnv(t *testing.T, cache storage.Leaderboard) *testEnv {
	t.Helper()

	store, err := storage.Open(filepath.Join(t.TempDir(), "web.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	cfg := config.Default()
	cfg.Tiles.FlipDelayMS = 20
	cfg.Maze.MaxDimension = 41

	auth := identity.NewAuth(store, identity.NewJwtService("test-secret", cfg.Auth.JWTIssuer), time.Hour)
	srv := NewServer(Options{
		Config: cfg,
		Auth:   auth,
		Store:  store,
		Cache:  cache,
		Logger: log.New(io.Discard),
	})

	t.Cleanup(srv.Close)

	return &testEnv{server: srv, store: store}
}

// do sends a JSON request and returns the recorder.
func (e *testEnv) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.server.Handler().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

// signUp registers a player and returns their token.
func (e *testEnv) signUp(t *testing.T, username string) string {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/api/v1/auth/register", AuthRequest{Username: username, Password: strongPassword}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = e.do(t, http.MethodPost, "/api/v1/auth/login", AuthRequest{Username: username, Password: strongPassword}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decode[AuthResponse](t, rec)
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestHealthz(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.do(t, http.MethodGet, "/healthz", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","sessions":0}`, rec.Body.String())
}

func TestAuthFlow(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.do(t, http.MethodPost, "/api/v1/auth/register", AuthRequest{Username: "ada", Password: strongPassword}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	registered := decode[AuthResponse](t, rec)
	assert.Equal(t, "ada", registered.Username)
	assert.Empty(t, registered.Token)

	rec = env.do(t, http.MethodPost, "/api/v1/auth/login", AuthRequest{Username: "ada", Password: strongPassword}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	login := decode[AuthResponse](t, rec)
	assert.Equal(t, registered.ID, login.ID)
	require.NotEmpty(t, login.Token)

	rec = env.do(t, http.MethodGet, "/api/v1/auth/me", nil, login.Token)
	require.Equal(t, http.StatusOK, rec.Code)
	me := decode[AuthResponse](t, rec)
	assert.Equal(t, "ada", me.Username)
	assert.Equal(t, registered.ID, me.ID)
}

func TestAuthErrors(t *testing.T) {
	env := newTestEnv(t, nil)
	env.signUp(t, "ada")

	tests := []struct {
		name   string
		path   string
		body   any
		status int
	}{
		{"duplicate username", "/api/v1/auth/register", AuthRequest{Username: "ada", Password: strongPassword}, http.StatusConflict},
		{"weak password", "/api/v1/auth/register", AuthRequest{Username: "bob", Password: "password"}, http.StatusBadRequest},
		{"bad username", "/api/v1/auth/register", AuthRequest{Username: "b!", Password: strongPassword}, http.StatusBadRequest},
		{"missing fields", "/api/v1/auth/register", map[string]string{"username": "cy"}, http.StatusBadRequest},
		{"wrong password", "/api/v1/auth/login", AuthRequest{Username: "ada", Password: "nope-nope-nope"}, http.StatusUnauthorized},
		{"unknown user", "/api/v1/auth/login", AuthRequest{Username: "ghost", Password: strongPassword}, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodPost, tt.path, tt.body, "")
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
			assert.Contains(t, rec.Body.String(), `"error"`)
		})
	}
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.do(t, http.MethodGet, "/api/v1/auth/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/v1/auth/me", nil, "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Token abc")
	w := httptest.NewRecorder()
	env.server.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCORS(t *testing.T) {
	env := newTestEnv(t, nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/maze", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	env.server.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec = httptest.NewRecorder()
	env.server.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestHandlerWithoutRun(t *testing.T) {
	env := newTestEnv(t, nil)

	// More pushes than the broadcast buffer holds; the hub drains them
	// without Run being called.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			env.server.hub.Broadcast(uuid.New(), EventState, nil)
		}
	}()
	require.Eventually(t, func() bool {
		select {
		case <-done:
			return true
		default:
			return false
		}
	}, 2*time.Second, 10*time.Millisecond)

	created := createTiles(t, env, NewTilesRequest{Seed: 1})
	env.server.Close()
	env.server.Close()

	assert.Equal(t, 0, env.server.Sessions().Len())
	id := uuid.MustParse(created.ID)
	env.server.hub.Broadcast(id, EventState, nil)
	env.server.hub.CloseSession(id)

	rec := env.do(t, http.MethodGet, "/healthz", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
