package storage

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-drill/internal/registry"
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

func TestStoreOpenCreatesNestedPath(t *testing.T) {
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

func TestStoreOpenUpgradesOldRunsTable(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "old.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatal(err)
	}
	_, err = db.Exec(`CREATE TABLE runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		game_id TEXT NOT NULL,
		seed INTEGER NOT NULL,
		scene TEXT NOT NULL,
		level INTEGER NOT NULL,
		randomness INTEGER NOT NULL DEFAULT 0,
		speed_divider INTEGER NOT NULL DEFAULT 1,
		scheme TEXT NOT NULL,
		token TEXT NOT NULL,
		result TEXT NOT NULL,
		pipe_length INTEGER NOT NULL DEFAULT 0,
		score INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`)
	db.Close()
	if err != nil {
		t.Fatal(err)
	}

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() on an old database failed: %v", err)
	}

	a := registry.Attempt{Seed: 3, Scene: "full", Scheme: "s4", Result: "LOSE", MaxStarts: 8}
	id, err := store.SaveRun("drill", a)
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	got, err := store.RunByID(id)
	if err != nil || got == nil {
		t.Fatalf("RunByID() = %+v, %v", got, err)
	}
	if got.Attempt.MaxStarts != 8 {
		t.Errorf("Expected max starts 8, got %d", got.Attempt.MaxStarts)
	}

	store.Close()

	// Opening again must not try to add the column twice.
	again, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Second Open() failed: %v", err)
	}
	again.Close()
}

func TestStoreScores(t *testing.T) {
	store := openTestStore(t)

	for _, sc := range []int{1500, 900, 1800} {
		if _, err := store.SaveScore("drill", sc); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	store.SaveScore("drill_classic", 1200)

	scores, err := store.TopScores("drill", 2)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 2 {
		t.Fatalf("Expected 2 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 1800 || scores[1].Score != 1500 {
		t.Errorf("Scores not in expected order: %v", scores)
	}

	high, err := store.HighScore("drill_classic")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 1200 {
		t.Errorf("Expected high score of 1200, got %d", high)
	}

	if err := store.ClearScores("drill"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}
	if scores, _ := store.TopScores("drill", 10); len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}
	if high, _ := store.HighScore("drill_classic"); high != 1200 {
		t.Error("Classic scores should not be affected by clearing drill")
	}
}

func TestStoreHighScoreEmpty(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("drill")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}
}

func TestStoreRuns(t *testing.T) {
	store := openTestStore(t)

	won := registry.Attempt{
		Seed: 42, Scene: "full", Level: 5, Randomness: 20, SpeedDivider: 1, MaxStarts: 8,
		Scheme: "s4", Token: "BQYH", Result: "WIN", PipeLength: 612, Score: 1388,
	}
	lost := won
	lost.Seed = 7
	lost.Result = "LOSE"
	lost.Score = 0

	id, err := store.SaveRun("drill", won)
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if _, err := store.SaveRun("drill", lost); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if _, err := store.SaveRun("drill_classic", lost); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	got, err := store.RunByID(id)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if got == nil {
		t.Fatal("Expected stored run")
	}
	if got.GameID != "drill" || got.Attempt != won {
		t.Errorf("Run mismatch: %+v", got)
	}

	missing, err := store.RunByID(999)
	if err != nil || missing != nil {
		t.Errorf("Expected nil for missing run, got %+v, %v", missing, err)
	}

	recent, err := store.RecentRuns("drill", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("Expected 2 drill runs, got %d", len(recent))
	}
	if recent[0].Attempt.Seed != 7 {
		t.Errorf("Expected newest run first, got seed %d", recent[0].Attempt.Seed)
	}

	all, _ := store.RecentRuns("", 10)
	if len(all) != 3 {
		t.Errorf("Expected 3 runs across games, got %d", len(all))
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	for _, a := range []registry.Attempt{
		{Seed: 1, Scene: "full", Result: "WIN", Score: 1000},
		{Seed: 2, Scene: "full", Result: "WIN", Score: 1400},
		{Seed: 3, Scene: "full", Result: "LOSE"},
	} {
		a.Scheme, a.Token = "s4", ""
		if _, err := store.SaveRun("drill", a); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	stats, err := store.GetGameStats("drill")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.Attempts != 3 || stats.Wins != 2 {
		t.Errorf("Expected 3 attempts and 2 wins, got %+v", stats)
	}
	if stats.HighScore != 1400 || stats.AvgScore != 1200 {
		t.Errorf("Expected high 1400 and average 1200, got %+v", stats)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("Expected a last played time")
	}

	empty, err := store.GetGameStats("drill_classic")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if empty.Attempts != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("Expected empty stats, got %+v", empty)
	}
}
