package storage

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
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

func save(t *testing.T, store *Store, gameID string, score int) int64 {
	t.Helper()
	id, err := store.SaveScore(ScoreEntry{GameID: gameID, Score: score})
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	return id
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

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	save(t, store, "breakout", 100)
	save(t, store, "breakout", 50)
	save(t, store, "breakout", 200)
	save(t, store, "breakout_endless", 500)

	scores, err := store.TopScores("breakout", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending
	for i, expected := range []int{200, 100, 50} {
		if scores[i].Score != expected {
			t.Errorf("scores[%d] = %d, expected %d", i, scores[i].Score, expected)
		}
	}

	endless, err := store.TopScores("breakout_endless", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(endless) != 1 {
		t.Errorf("Expected 1 endless score, got %d", len(endless))
	}
}

func TestStoreSavesDetails(t *testing.T) {
	store := openTestStore(t)

	entry := ScoreEntry{
		GameID:  "breakout",
		Player:  "alice",
		Score:   340,
		Level:   3,
		Cleared: 2,
		Seed:    42,
	}
	if _, err := store.SaveScore(entry); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("breakout", 1)
	if err != nil || len(scores) != 1 {
		t.Fatalf("TopScores() = %v, %v", scores, err)
	}
	got := scores[0]
	if got.Player != "alice" || got.Level != 3 || got.Cleared != 2 || got.Seed != 42 {
		t.Errorf("TopScores()[0] = %+v, expected the saved details", got)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
}

func TestStoreLevelDefaultsToOne(t *testing.T) {
	store := openTestStore(t)
	save(t, store, "breakout", 10)

	scores, _ := store.TopScores("breakout", 1)
	if len(scores) != 1 || scores[0].Level != 1 {
		t.Errorf("TopScores() = %+v, expected level 1", scores)
	}
}

func TestStoreSnapshot(t *testing.T) {
	store := openTestStore(t)

	blob := []byte{0x85, 0xa5, 't', 'i', 'c', 'k', 's'}
	id, err := store.SaveScore(ScoreEntry{GameID: "breakout", Score: 10, Snapshot: blob})
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	got, err := store.Snapshot(id)
	if err != nil {
		t.Fatalf("Snapshot() failed: %v", err)
	}
	if !bytes.Equal(got, blob) {
		t.Errorf("Snapshot() = %v, expected %v", got, blob)
	}

	// A score without a snapshot
	bare := save(t, store, "breakout", 5)
	got, err = store.Snapshot(bare)
	if err != nil || got != nil {
		t.Errorf("Snapshot() = %v, %v, expected nil, nil", got, err)
	}

	if _, err := store.Snapshot(9999); !errors.Is(err, ErrNotFound) {
		t.Errorf("Snapshot() error = %v, expected ErrNotFound", err)
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		save(t, store, "test", (i+1)*100)
	}

	scores, err := store.TopScores("test", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}

	// Should be 500, 400, 300 (top 3)
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("breakout")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	save(t, store, "breakout", 100)
	save(t, store, "breakout", 300)
	save(t, store, "breakout", 200)

	high, err = store.HighScore("breakout")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	save(t, store, "breakout", 100)
	save(t, store, "breakout", 200)
	save(t, store, "breakout_endless", 300)

	if err := store.ClearScores("breakout"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	campaign, _ := store.TopScores("breakout", 10)
	if len(campaign) != 0 {
		t.Errorf("Expected 0 campaign scores after clear, got %d", len(campaign))
	}

	endless, _ := store.TopScores("breakout_endless", 10)
	if len(endless) != 1 {
		t.Errorf("Endless scores should not be affected by clearing campaign")
	}
}

func TestStoreAllScores(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 20; i++ {
		save(t, store, "test", i*10)
	}

	scores, err := store.AllScores("test")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}

	if len(scores) != 20 {
		t.Errorf("Expected 20 scores, got %d", len(scores))
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GameStats("breakout")
	if err != nil {
		t.Fatalf("GameStats() failed: %v", err)
	}
	if empty.GamesCount != 0 || empty.HighScore != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("GameStats() on empty table = %+v", empty)
	}

	for _, e := range []ScoreEntry{
		{GameID: "breakout", Score: 100, Level: 2},
		{GameID: "breakout", Score: 300, Level: 4},
	} {
		if _, err := store.SaveScore(e); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	stats, err := store.GameStats("breakout")
	if err != nil {
		t.Fatalf("GameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 300 || stats.AvgScore != 200 || stats.BestLevel != 4 {
		t.Errorf("GameStats() = %+v", stats)
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
