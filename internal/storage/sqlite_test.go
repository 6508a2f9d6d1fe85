package storage

import (
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

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Parent directories and the file are created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveScore("2048", 1024, 128); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	high, err := store.HighScore("2048")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 1024 {
		t.Errorf("HighScore() after reopen = %d, expected 1024", high)
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, s := range []struct{ score, tile int }{{100, 16}, {50, 8}, {200, 32}} {
		if _, err := store.SaveScore("2048", s.score, s.tile); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("2048_mini", 500, 64); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("2048", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	// Sorted descending
	expected := []int{200, 100, 50}
	for i, want := range expected {
		if scores[i].Score != want {
			t.Errorf("scores[%d] = %d, expected %d", i, scores[i].Score, want)
		}
	}
	if scores[0].MaxTile != 32 {
		t.Errorf("scores[0].MaxTile = %d, expected 32", scores[0].MaxTile)
	}
	if scores[0].CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}

	mini, err := store.TopScores("2048_mini", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(mini) != 1 || mini[0].Score != 500 {
		t.Errorf("mini scores = %+v, expected one score of 500", mini)
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := range 20 {
		if _, err := store.SaveScore("2048", i*10, 4); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	scores, err := store.TopScores("2048", 5)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 5 {
		t.Errorf("Expected 5 scores, got %d", len(scores))
	}
	if scores[0].Score != 190 {
		t.Errorf("top score = %d, expected 190", scores[0].Score)
	}

	// Non-positive limit falls back to 10
	scores, err = store.TopScores("2048", 0)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 10 {
		t.Errorf("Expected default limit of 10, got %d", len(scores))
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("2048")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("HighScore() with no scores = %d, expected 0", high)
	}

	store.SaveScore("2048", 300, 32)
	store.SaveScore("2048", 700, 64)

	high, err = store.HighScore("2048")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 700 {
		t.Errorf("HighScore() = %d, expected 700", high)
	}
}

func TestStoreGameRecords(t *testing.T) {
	store := openTestStore(t)

	rec := GameRecord{
		Variant: "2048",
		Seed:    -42,
		Moves:   "ulldr",
		Score:   36,
		MaxTile: 16,
		Won:     true,
	}
	id, err := store.SaveGame(rec)
	if err != nil {
		t.Fatalf("SaveGame() failed: %v", err)
	}

	got, err := store.GameByID(id)
	if err != nil {
		t.Fatalf("GameByID() failed: %v", err)
	}
	if got == nil {
		t.Fatal("GameByID() returned nil for a saved game")
	}
	if got.Variant != rec.Variant || got.Seed != rec.Seed || got.Moves != rec.Moves ||
		got.Score != rec.Score || got.MaxTile != rec.MaxTile || got.Won != rec.Won {
		t.Errorf("GameByID() = %+v, expected %+v", *got, rec)
	}

	missing, err := store.GameByID(id + 100)
	if err != nil {
		t.Fatalf("GameByID() of missing game failed: %v", err)
	}
	if missing != nil {
		t.Errorf("GameByID() of missing game = %+v, expected nil", *missing)
	}
}

func TestStoreRecentGames(t *testing.T) {
	store := openTestStore(t)

	store.SaveGame(GameRecord{Variant: "2048", Seed: 1, Moves: "l", Score: 4})
	store.SaveGame(GameRecord{Variant: "2048_mini", Seed: 2, Moves: "r", Score: 8})
	store.SaveGame(GameRecord{Variant: "2048", Seed: 3, Moves: "u", Score: 12})

	all, err := store.RecentGames("", 10)
	if err != nil {
		t.Fatalf("RecentGames() failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("Expected 3 games, got %d", len(all))
	}
	if all[0].Seed != 3 {
		t.Errorf("newest game seed = %d, expected 3", all[0].Seed)
	}

	classic, err := store.RecentGames("2048", 10)
	if err != nil {
		t.Fatalf("RecentGames() failed: %v", err)
	}
	if len(classic) != 2 {
		t.Errorf("Expected 2 classic games, got %d", len(classic))
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("2048", 100, 8)
	store.SaveScore("2048_mini", 200, 16)
	store.SaveGame(GameRecord{Variant: "2048", Moves: "l"})

	if err := store.ClearScores("2048"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	scores, _ := store.TopScores("2048", 10)
	if len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}
	games, _ := store.RecentGames("2048", 10)
	if len(games) != 0 {
		t.Errorf("Expected 0 games after clear, got %d", len(games))
	}

	// Other variants untouched
	mini, _ := store.TopScores("2048_mini", 10)
	if len(mini) != 1 {
		t.Errorf("Expected 1 mini score, got %d", len(mini))
	}
}

func TestStoreVariantStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.GetVariantStats("2048")
	if err != nil {
		t.Fatalf("GetVariantStats() failed: %v", err)
	}
	if stats.GamesCount != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", stats)
	}

	store.SaveScore("2048", 100, 16)
	store.SaveScore("2048", 300, 2048)
	store.SaveGame(GameRecord{Variant: "2048", Score: 300, MaxTile: 2048, Won: true})
	store.SaveGame(GameRecord{Variant: "2048", Score: 100, MaxTile: 16})

	stats, err = store.GetVariantStats("2048")
	if err != nil {
		t.Fatalf("GetVariantStats() failed: %v", err)
	}
	if stats.GamesCount != 2 {
		t.Errorf("GamesCount = %d, expected 2", stats.GamesCount)
	}
	if stats.HighScore != 300 {
		t.Errorf("HighScore = %d, expected 300", stats.HighScore)
	}
	if stats.AvgScore != 200 {
		t.Errorf("AvgScore = %v, expected 200", stats.AvgScore)
	}
	if stats.TotalScore != 400 {
		t.Errorf("TotalScore = %d, expected 400", stats.TotalScore)
	}
	if stats.BestTile != 2048 {
		t.Errorf("BestTile = %d, expected 2048", stats.BestTile)
	}
	if stats.Wins != 1 {
		t.Errorf("Wins = %d, expected 1", stats.Wins)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed should be set")
	}
}
