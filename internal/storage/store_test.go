package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/vovakirdan/echo-arcade/internal/identity"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreMigrationsApplied(t *testing.T) {
	store := openTestStore(t)

	version, err := store.SchemaVersion(context.Background())
	if err != nil {
		t.Fatalf("SchemaVersion() failed: %v", err)
	}
	if version != 2 {
		t.Errorf("SchemaVersion() = %d, want 2", version)
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveScore("ada", "maze", 42); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	best, err := store.BestScore("ada", "maze")
	if err != nil {
		t.Fatalf("BestScore() failed: %v", err)
	}
	if best != 42 {
		t.Errorf("BestScore() = %d, want 42", best)
	}
}

func TestStoreTopScoresAscending(t *testing.T) {
	store := openTestStore(t)

	for _, s := range []int{100, 50, 200} {
		if _, err := store.SaveScore("ada", "maze", s); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("ada", "tiles_easy", 12); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("maze", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	want := []int{50, 100, 200}
	for i, w := range want {
		if scores[i].Score != w {
			t.Errorf("scores[%d] = %d, want %d", i, scores[i].Score, w)
		}
		if scores[i].User != "ada" || scores[i].GameID != "maze" {
			t.Errorf("scores[%d] = %+v, wrong owner", i, scores[i])
		}
	}

	tiles, err := store.TopScores("tiles_easy", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(tiles) != 1 {
		t.Errorf("Expected 1 tiles score, got %d", len(tiles))
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveScore("ada", "maze", (i+1)*10)
	}

	scores, err := store.TopScores("maze", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 10 || scores[1].Score != 20 || scores[2].Score != 30 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreTopScoresTieBreak(t *testing.T) {
	store := openTestStore(t)

	first, _ := store.SaveScore("ada", "maze", 30)
	second, _ := store.SaveScore("bob", "maze", 30)

	scores, err := store.TopScores("maze", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 2 || scores[0].ID != first || scores[1].ID != second {
		t.Errorf("equal scores should keep insertion order, got %+v", scores)
	}
}

func TestStoreBestScore(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.BestScore("ada", "maze"); !errors.Is(err, ErrNoScore) {
		t.Fatalf("BestScore() on empty store = %v, want ErrNoScore", err)
	}

	store.SaveScore("ada", "maze", 100)
	store.SaveScore("ada", "maze", 30)
	store.SaveScore("ada", "maze", 200)
	store.SaveScore("bob", "maze", 5)

	best, err := store.BestScore("ada", "maze")
	if err != nil {
		t.Fatalf("BestScore() failed: %v", err)
	}
	if best != 30 {
		t.Errorf("BestScore() = %d, want 30", best)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("ada", "maze", 100)
	store.SaveScore("ada", "maze", 200)
	store.SaveScore("ada", "tiles_easy", 30)

	if err := store.ClearScores("maze"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	mazeScores, _ := store.TopScores("maze", 10)
	if len(mazeScores) != 0 {
		t.Errorf("Expected 0 maze scores after clear, got %d", len(mazeScores))
	}

	tilesScores, _ := store.TopScores("tiles_easy", 10)
	if len(tilesScores) != 1 {
		t.Errorf("tiles scores should not be affected by clearing maze")
	}
}

func TestStoreAllScores(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 20; i++ {
		store.SaveScore("ada", "maze", 100-i)
	}

	scores, err := store.AllScores("maze")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}
	if len(scores) != 20 {
		t.Fatalf("Expected 20 scores, got %d", len(scores))
	}
	if scores[0].Score != 81 {
		t.Errorf("AllScores()[0] = %d, want 81", scores[0].Score)
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("ada", "maze", 40)
	store.SaveScore("ada", "maze", 20)
	store.SaveScore("bob", "maze", 60)
	store.SaveScore("bob", "tiles_hard", 30)

	stats, err := store.GetGameStats("maze")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 3 || stats.Players != 2 {
		t.Errorf("counts = %d games / %d players, want 3 / 2", stats.GamesCount, stats.Players)
	}
	if stats.BestScore != 20 {
		t.Errorf("BestScore = %d, want 20", stats.BestScore)
	}
	if stats.AvgScore != 40 {
		t.Errorf("AvgScore = %v, want 40", stats.AvgScore)
	}
	if stats.TotalMoves != 120 {
		t.Errorf("TotalMoves = %d, want 120", stats.TotalMoves)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed should be set")
	}

	empty, err := store.GetGameStats("tiles_easy")
	if err != nil {
		t.Fatalf("GetGameStats() on unplayed game failed: %v", err)
	}
	if empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("unplayed game stats = %+v", empty)
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 2 || all["tiles_hard"] == nil || all["tiles_hard"].BestScore != 30 {
		t.Errorf("GetAllGamesStats() = %v", all)
	}
}

func TestStoreLeaderboardOneStandingPerUser(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	submissions := []struct {
		user  string
		score int
	}{
		{"ada", 40}, {"bob", 25}, {"ada", 18}, {"cy", 25}, {"bob", 90},
	}
	for _, s := range submissions {
		if err := store.Submit(ctx, s.user, "maze", s.score); err != nil {
			t.Fatalf("Submit() failed: %v", err)
		}
	}

	top, err := store.Top(ctx, "maze", 10)
	if err != nil {
		t.Fatalf("Top() failed: %v", err)
	}

	want := []Standing{
		{Rank: 1, User: "ada", Score: 18},
		{Rank: 2, User: "bob", Score: 25},
		{Rank: 3, User: "cy", Score: 25},
	}
	if len(top) != len(want) {
		t.Fatalf("Top() returned %d standings, want %d: %+v", len(top), len(want), top)
	}
	for i := range want {
		if top[i] != want[i] {
			t.Errorf("Top()[%d] = %+v, want %+v", i, top[i], want[i])
		}
	}

	limited, _ := store.Top(ctx, "maze", 1)
	if len(limited) != 1 || limited[0].User != "ada" {
		t.Errorf("Top(limit=1) = %+v", limited)
	}
}

func TestStoreUsers(t *testing.T) {
	store := openTestStore(t)

	u := &identity.User{
		ID:           uuid.New(),
		Username:     "ada",
		PasswordHash: "hash",
	}
	if err := store.SaveUser(u); err != nil {
		t.Fatalf("SaveUser() failed: %v", err)
	}

	byName, err := store.UserByUsername("ada")
	if err != nil {
		t.Fatalf("UserByUsername() failed: %v", err)
	}
	if byName.ID != u.ID || byName.PasswordHash != "hash" {
		t.Errorf("UserByUsername() = %+v", byName)
	}
	if byName.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}

	byID, err := store.UserByID(u.ID)
	if err != nil {
		t.Fatalf("UserByID() failed: %v", err)
	}
	if byID.Username != "ada" {
		t.Errorf("UserByID() username = %q", byID.Username)
	}

	dup := &identity.User{ID: uuid.New(), Username: "ada", PasswordHash: "other"}
	if err := store.SaveUser(dup); !errors.Is(err, identity.ErrUserExists) {
		t.Errorf("duplicate SaveUser() = %v, want ErrUserExists", err)
	}

	if _, err := store.UserByUsername("nobody"); !errors.Is(err, identity.ErrUserNotFound) {
		t.Errorf("UserByUsername(missing) = %v, want ErrUserNotFound", err)
	}
	if _, err := store.UserByID(uuid.New()); !errors.Is(err, identity.ErrUserNotFound) {
		t.Errorf("UserByID(missing) = %v, want ErrUserNotFound", err)
	}
}

func TestStoreWorksWithAuth(t *testing.T) {
	store := openTestStore(t)
	auth := identity.NewAuth(store, identity.NewJwtService("secret", "test"), 0)

	if _, err := auth.Register("grace", "violet-Harbor-lantern-93"); err != nil {
		t.Fatalf("Register() failed: %v", err)
	}
	user, token, err := auth.SignIn("grace", "violet-Harbor-lantern-93")
	if err != nil {
		t.Fatalf("SignIn() failed: %v", err)
	}
	claims, err := auth.Verify(token)
	if err != nil {
		t.Fatalf("Verify() failed: %v", err)
	}
	me, err := auth.Me(claims)
	if err != nil {
		t.Fatalf("Me() failed: %v", err)
	}
	if me.ID != user.ID {
		t.Errorf("Me() = %v, want %v", me.ID, user.ID)
	}
}
