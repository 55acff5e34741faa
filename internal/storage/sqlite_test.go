package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
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

func TestRecordAndLookup(t *testing.T) {
	store := openTestStore(t)

	run := Run{Mode: "normal", Player: "ada", Players: 2, Seed: 4000000000, Score: 1234, Ticks: 600, Digest: "abc"}
	id, err := store.RecordRun(run)
	if err != nil {
		t.Fatalf("RecordRun() failed: %v", err)
	}
	if id == uuid.Nil {
		t.Fatal("RecordRun() returned nil id")
	}

	got, err := store.RunByDigest("abc")
	if err != nil {
		t.Fatalf("RunByDigest() failed: %v", err)
	}
	if got == nil {
		t.Fatal("RunByDigest() = nil, expected run")
	}
	if got.ID != id {
		t.Errorf("ID = %v, expected %v", got.ID, id)
	}
	if got.Seed != run.Seed || got.Ticks != run.Ticks || got.Score != run.Score || got.Players != 2 || got.Player != "ada" {
		t.Errorf("RunByDigest() = %+v, expected fields of %+v", got, run)
	}
	if got.Verified {
		t.Error("Verified = true, expected false")
	}

	missing, err := store.RunByDigest("nope")
	if err != nil || missing != nil {
		t.Errorf("RunByDigest(missing) = %v, %v, expected nil, nil", missing, err)
	}
}

func TestRecordRunDeduplicatesByDigest(t *testing.T) {
	store := openTestStore(t)

	first, err := store.RecordRun(Run{Mode: "hard", Players: 1, Score: 10, Digest: "d1"})
	if err != nil {
		t.Fatalf("RecordRun() failed: %v", err)
	}
	second, err := store.RecordRun(Run{Mode: "hard", Players: 1, Score: 10, Digest: "d1", Verified: true})
	if err != nil {
		t.Fatalf("RecordRun() failed: %v", err)
	}
	if first != second {
		t.Errorf("RecordRun() id = %v, expected existing %v", second, first)
	}

	got, err := store.RunByDigest("d1")
	if err != nil {
		t.Fatalf("RunByDigest() failed: %v", err)
	}
	if !got.Verified {
		t.Error("Verified = false, expected true after verified re-record")
	}

	runs, err := store.RecentRuns(0)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("RecentRuns() returned %d runs, expected 1", len(runs))
	}
}

func TestTopRuns(t *testing.T) {
	store := openTestStore(t)

	scores := []int64{100, 50, 200}
	for i, sc := range scores {
		if _, err := store.RecordRun(Run{Mode: "normal", Players: 1, Score: sc, Digest: fmt.Sprintf("n%d", i)}); err != nil {
			t.Fatalf("RecordRun() failed: %v", err)
		}
	}
	if _, err := store.RecordRun(Run{Mode: "fast", Players: 1, Score: 500, Digest: "f"}); err != nil {
		t.Fatalf("RecordRun() failed: %v", err)
	}

	tests := []struct {
		name     string
		mode     string
		limit    int
		expected []int64
	}{
		{"all normal", "normal", 10, []int64{200, 100, 50}},
		{"limited", "normal", 2, []int64{200, 100}},
		{"other mode", "fast", 10, []int64{500}},
		{"empty", "what", 10, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runs, err := store.TopRuns(tt.mode, tt.limit)
			if err != nil {
				t.Fatalf("TopRuns() failed: %v", err)
			}
			if len(runs) != len(tt.expected) {
				t.Fatalf("TopRuns() returned %d runs, expected %d", len(runs), len(tt.expected))
			}
			for i, r := range runs {
				if r.Score != tt.expected[i] {
					t.Errorf("TopRuns()[%d].Score = %d, expected %d", i, r.Score, tt.expected[i])
				}
			}
		})
	}
}

func TestHighScoreAndClear(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("boss")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("HighScore() = %d, expected 0 for empty ledger", high)
	}

	for i, sc := range []int64{30, 90, 60} {
		if _, err := store.RecordRun(Run{Mode: "boss", Players: 1, Score: sc, Digest: fmt.Sprintf("b%d", i)}); err != nil {
			t.Fatalf("RecordRun() failed: %v", err)
		}
	}
	if high, _ = store.HighScore("boss"); high != 90 {
		t.Errorf("HighScore() = %d, expected 90", high)
	}

	if err := store.ClearRuns("boss"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}
	if high, _ = store.HighScore("boss"); high != 0 {
		t.Errorf("HighScore() after clear = %d, expected 0", high)
	}
}

func TestAllModeStats(t *testing.T) {
	store := openTestStore(t)

	runs := []Run{
		{Mode: "normal", Players: 1, Score: 10, Ticks: 100, Digest: "a", Verified: true},
		{Mode: "normal", Players: 1, Score: 30, Ticks: 300, Digest: "b"},
		{Mode: "hard", Players: 2, Score: 5, Ticks: 50, Digest: "c"},
	}
	for _, r := range runs {
		if _, err := store.RecordRun(r); err != nil {
			t.Fatalf("RecordRun() failed: %v", err)
		}
	}

	stats, err := store.AllModeStats()
	if err != nil {
		t.Fatalf("AllModeStats() failed: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("AllModeStats() returned %d modes, expected 2", len(stats))
	}

	normal := stats["normal"]
	if normal.Runs != 2 || normal.Verified != 1 || normal.HighScore != 30 || normal.TotalTicks != 400 {
		t.Errorf("normal stats = %+v", normal)
	}
	if normal.AvgScore != 20 {
		t.Errorf("AvgScore = %v, expected 20", normal.AvgScore)
	}
	if stats["hard"].Runs != 1 {
		t.Errorf("hard Runs = %d, expected 1", stats["hard"].Runs)
	}
}
