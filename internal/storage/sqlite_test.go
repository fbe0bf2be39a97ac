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
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveRun(Run{Variant: "classic", Player: "local", LevelReached: 4}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	best, err := store.BestLevel("classic")
	if err != nil {
		t.Fatalf("BestLevel() failed: %v", err)
	}
	if best != 4 {
		t.Errorf("Expected best level 4 after reopen, got %d", best)
	}
}

func TestStoreRuns(t *testing.T) {
	store := openTestStore(t)

	runs := []Run{
		{Variant: "classic", Player: "alice", LevelReached: 3, Taps: 20},
		{Variant: "classic", Player: "bob", LevelReached: 7, Taps: 51},
		{Variant: "classic", Player: "alice", LevelReached: 7, Taps: 40},
		{Variant: "wide", Player: "bob", LevelReached: 9, Taps: 80},
	}
	for _, r := range runs {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	top, err := store.TopRuns("classic", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("Expected 3 classic runs, got %d", len(top))
	}

	// Deepest first, fewer taps breaks ties
	if top[0].Player != "alice" || top[0].LevelReached != 7 {
		t.Errorf("Expected alice level 7 first, got %+v", top[0])
	}
	if top[1].Player != "bob" || top[2].LevelReached != 3 {
		t.Errorf("Unexpected order: %+v", top)
	}

	all, err := store.TopRuns("", 2)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(all) != 2 || all[0].Variant != "wide" {
		t.Errorf("Expected wide run on top of all variants, got %+v", all)
	}

	best, err := store.BestLevel("wide")
	if err != nil {
		t.Fatalf("BestLevel() failed: %v", err)
	}
	if best != 9 {
		t.Errorf("Expected best level 9, got %d", best)
	}

	none, err := store.BestLevel("unknown")
	if err != nil {
		t.Fatalf("BestLevel() failed: %v", err)
	}
	if none != 0 {
		t.Errorf("Expected 0 for variant without runs, got %d", none)
	}
}

func TestStoreLevelResults(t *testing.T) {
	store := openTestStore(t)

	results := []LevelResult{
		{Variant: "classic", Player: "alice", Level: 1, Outcome: "trapped", Taps: 8, Moves: 7, Duration: 12500 * time.Millisecond},
		{Variant: "classic", Player: "alice", Level: 2, Outcome: "escaped", Taps: 3, Moves: 3, Duration: 4 * time.Second},
		{Variant: "classic", Player: "bob", Level: 1, Outcome: "trapped", Taps: 10, Moves: 9},
	}
	for _, r := range results {
		if err := store.SaveLevelResult(r); err != nil {
			t.Fatalf("SaveLevelResult() failed: %v", err)
		}
	}

	recent, err := store.RecentLevelResults("alice", 10)
	if err != nil {
		t.Fatalf("RecentLevelResults() failed: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("Expected 2 results for alice, got %d", len(recent))
	}
	if recent[0].Level != 2 || recent[0].Outcome != "escaped" {
		t.Errorf("Expected newest result first, got %+v", recent[0])
	}
	if recent[1].Duration != 12500*time.Millisecond {
		t.Errorf("Expected duration to survive storage, got %v", recent[1].Duration)
	}

	counts, err := store.OutcomeCounts("classic")
	if err != nil {
		t.Fatalf("OutcomeCounts() failed: %v", err)
	}
	if counts["trapped"] != 2 || counts["escaped"] != 1 {
		t.Errorf("Unexpected outcome counts: %v", counts)
	}
}

func TestGetVariantStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.GetVariantStats("classic")
	if err != nil {
		t.Fatalf("GetVariantStats() failed: %v", err)
	}
	if stats.Runs != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("Expected empty stats, got %+v", stats)
	}

	for _, lvl := range []int{2, 4} {
		if _, err := store.SaveRun(Run{Variant: "classic", Player: "local", LevelReached: lvl, Taps: 10}); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	stats, err = store.GetVariantStats("classic")
	if err != nil {
		t.Fatalf("GetVariantStats() failed: %v", err)
	}
	if stats.Runs != 2 || stats.BestLevel != 4 || stats.AvgLevel != 3 || stats.TotalTaps != 20 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
}
