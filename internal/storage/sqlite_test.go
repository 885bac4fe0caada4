package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
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

func TestStoreReopenKeepsRuns(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveScore("pacman", 1200, 1); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	high, err := store.HighScore("pacman")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 1200 {
		t.Errorf("HighScore() = %d, expected 1200", high)
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{100, 50, 200} {
		if _, err := store.SaveScore("pacman", score, 1); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("pacman_marathon", 500, 3); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("pacman", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	expected := []int{200, 100, 50}
	for i, want := range expected {
		if scores[i].Score != want {
			t.Errorf("scores[%d].Score = %d, expected %d", i, scores[i].Score, want)
		}
	}

	marathon, err := store.TopScores("pacman_marathon", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(marathon) != 1 || marathon[0].Level != 3 {
		t.Errorf("marathon runs = %+v, expected one at level 3", marathon)
	}
}

func TestStoreSaveRunFields(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveRun(Run{
		GameID:     "pacman",
		Score:      4210,
		Level:      1,
		Difficulty: "hard",
		Won:        true,
		Duration:   95,
	})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	runs, err := store.TopScores("pacman", 1)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("Expected 1 run, got %d", len(runs))
	}
	r := runs[0]
	if r.ID != id || r.Score != 4210 || r.Difficulty != "hard" || !r.Won || r.Duration != 95 {
		t.Errorf("run = %+v, expected the saved fields back", r)
	}
	if r.CreatedAt.IsZero() {
		t.Error("CreatedAt was not parsed")
	}
}

func TestStoreSaveRunClampsLevel(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveRun(Run{GameID: "pacman", Score: 10}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	runs, _ := store.TopScores("pacman", 1)
	if len(runs) != 1 || runs[0].Level != 1 {
		t.Errorf("runs = %+v, expected level 1", runs)
	}
}

func TestStoreTopScoresTieBreak(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("pacman_marathon", 900, 2)
	store.SaveScore("pacman_marathon", 900, 4)
	store.SaveScore("pacman_marathon", 900, 4)

	runs, err := store.TopScores("pacman_marathon", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if runs[0].Level != 4 || runs[2].Level != 2 {
		t.Errorf("levels = %d,%d,%d, expected 4,4,2", runs[0].Level, runs[1].Level, runs[2].Level)
	}
	if runs[0].ID > runs[1].ID {
		t.Errorf("equal runs not in insertion order: %d before %d", runs[0].ID, runs[1].ID)
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveScore("test", (i+1)*100, 1)
	}

	scores, err := store.TopScores("test", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Errorf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}

	// Non-positive limits fall back to 10.
	for i := 0; i < 10; i++ {
		store.SaveScore("test", i, 1)
	}
	scores, _ = store.TopScores("test", 0)
	if len(scores) != 10 {
		t.Errorf("TopScores(0) returned %d, expected 10", len(scores))
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("pacman")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	store.SaveScore("pacman", 100, 1)
	store.SaveScore("pacman", 300, 1)
	store.SaveScore("pacman", 200, 1)

	high, err = store.HighScore("pacman")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("pacman", 100, 1)
	store.SaveScore("pacman", 200, 1)
	store.SaveScore("pacman_marathon", 300, 2)

	n, err := store.ClearScores("pacman")
	if err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}
	if n != 2 {
		t.Errorf("ClearScores() = %d, expected 2", n)
	}

	classic, _ := store.TopScores("pacman", 10)
	if len(classic) != 0 {
		t.Errorf("Expected 0 classic scores after clear, got %d", len(classic))
	}

	marathon, _ := store.TopScores("pacman_marathon", 10)
	if len(marathon) != 1 {
		t.Errorf("Marathon scores should not be affected by clearing classic")
	}
}

func TestStoreAllScores(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 20; i++ {
		store.SaveScore("test", i*10, 1)
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

	store.SaveRun(Run{GameID: "pacman_marathon", Score: 1000, Level: 2, Duration: 60})
	store.SaveRun(Run{GameID: "pacman_marathon", Score: 3000, Level: 5, Duration: 240, Won: false})
	store.SaveRun(Run{GameID: "pacman", Score: 2600, Level: 1, Duration: 120, Won: true})

	stats, err := store.GetGameStats("pacman_marathon")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 3000 || stats.BestLevel != 5 {
		t.Errorf("stats = %+v, expected 2 games, high 3000, level 5", stats)
	}
	if stats.AvgScore != 2000 || stats.TotalScore != 4000 {
		t.Errorf("avg/total = %v/%d, expected 2000/4000", stats.AvgScore, stats.TotalScore)
	}
	if stats.PlayTime != 5*time.Minute {
		t.Errorf("PlayTime = %v, expected 5m", stats.PlayTime)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed was not set")
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("GetAllGamesStats() returned %d games, expected 2", len(all))
	}
	if all["pacman"].Wins != 1 {
		t.Errorf("classic wins = %d, expected 1", all["pacman"].Wins)
	}
}

func TestStoreGameStatsEmpty(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.GetGameStats("pacman")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("stats = %+v, expected empty", stats)
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
