package save

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-shooter/internal/codec"
	"github.com/vovakirdan/tui-shooter/internal/replay"
)

func TestAddScoreOrdering(t *testing.T) {
	var h HighScores
	inserts := []struct {
		name     string
		score    uint64
		expected int
	}{
		{"a", 100, 0},
		{"b", 300, 0},
		{"c", 200, 1},
		{"d", 200, 2},
		{"e", 0, -1},
	}
	for _, in := range inserts {
		if got := h.AddScore(replay.ModeNormal, 2, in.name, in.score); got != in.expected {
			t.Errorf("AddScore(%s, %d) = %d, expected %d", in.name, in.score, got, in.expected)
		}
	}
	expected := []string{"b", "c", "d", "a"}
	for i, name := range expected {
		if h.Normal[1][i].Name != name {
			t.Errorf("entry %d = %q, expected %q", i, h.Normal[1][i].Name, name)
		}
	}
	if h.Normal[0][0].Score != 0 {
		t.Error("score leaked into the one-player table")
	}
}

func TestTableFullDropsLast(t *testing.T) {
	var h HighScores
	for i := 1; i <= TableSize; i++ {
		h.AddScore(replay.ModeHard, 1, "p", uint64(i*10))
	}
	if h.IsHighScore(replay.ModeHard, 1, 10) {
		t.Error("IsHighScore(10) = true, expected false when equal to the last entry")
	}
	if !h.IsHighScore(replay.ModeHard, 1, 11) {
		t.Error("IsHighScore(11) = false, expected true")
	}
	h.AddScore(replay.ModeHard, 1, "new", 55)
	last := h.Hard[0][TableSize-1]
	if last.Score != 20 {
		t.Errorf("last entry = %d, expected 20", last.Score)
	}
}

func TestBossTableSingleEntry(t *testing.T) {
	var h HighScores
	if got := h.AddScore(replay.ModeBoss, 3, "boss", 900); got != 0 {
		t.Errorf("AddScore() = %d, expected 0", got)
	}
	if got := h.AddScore(replay.ModeBoss, 3, "worse", 800); got != -1 {
		t.Errorf("AddScore() = %d, expected -1", got)
	}
	if h.Boss[2].Name != "boss" {
		t.Errorf("Boss[2] = %+v", h.Boss[2])
	}
}

func TestClipName(t *testing.T) {
	tests := []struct {
		in, expected string
	}{
		{"short", "short"},
		{"exactly seventeen", "exactly seventeen"},
		{"this name is far too long", "this name is far "},
		{"ĀĀĀĀĀĀĀĀĀĀĀĀĀĀĀĀĀĀĀĀ", "ĀĀĀĀĀĀĀĀĀĀĀĀĀĀĀĀĀ"},
	}
	for _, tt := range tests {
		if got := ClipName(tt.in); got != tt.expected {
			t.Errorf("ClipName(%q) = %q, expected %q", tt.in, got, tt.expected)
		}
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	s := New()
	s.RecordBoss(Boss1A|Boss2C, false)
	s.RecordBoss(Boss3A, true)
	s.HighScores.AddScore(replay.ModeNormal, 1, "ace", 123456)
	s.HighScores.AddScore(replay.ModeFast, 4, "team", 42)
	s.HighScores.AddScore(replay.ModeWhat, 2, "", 7)
	s.HighScores.AddScore(replay.ModeBoss, 1, "quick", 5000)

	got, err := Decode(s.Encode())
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if *got != *s {
		t.Errorf("Decode(Encode()) = %+v, expected %+v", got, s)
	}
}

func TestDecodeCorrupt(t *testing.T) {
	tests := []struct {
		name string
		raw  []byte
	}{
		{"bad wire type", []byte{0x0f}},
		{"truncated message", []byte{0x1a, 0x05}},
		{"wrong type for bosses", []byte{0x0a, 0x00}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(codec.Crypt(tt.raw, key))
			if !errors.Is(err, ErrCorrupt) {
				t.Errorf("Decode() error = %v, expected ErrCorrupt", err)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	s, err := LoadFile(filepath.Join(dir, "missing.sav"))
	if err != nil || s.BossesKilled != 0 {
		t.Fatalf("LoadFile(missing) = %+v, %v, expected fresh save", s, err)
	}

	path := filepath.Join(dir, "shooter.sav")
	s.HighScores.AddScore(replay.ModeNormal, 1, "me", 10)
	if err := s.SaveFile(path); err != nil {
		t.Fatalf("SaveFile() error = %v", err)
	}
	got, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if got.HighScores.Normal[0][0].Name != "me" {
		t.Errorf("loaded name = %q, expected %q", got.HighScores.Normal[0][0].Name, "me")
	}

	bad := filepath.Join(dir, "bad.sav")
	if err := os.WriteFile(bad, codec.Crypt([]byte{0x0f}, key), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(bad); err == nil || !strings.Contains(err.Error(), bad) {
		t.Errorf("LoadFile(bad) error = %v, expected it to name the path", err)
	}
}

func TestUnlocked(t *testing.T) {
	s := New()
	if !s.Unlocked(replay.ModeNormal) || s.Unlocked(replay.ModeBoss) {
		t.Fatal("fresh save should unlock only normal mode")
	}
	s.RecordBoss(allMainBosses, false)
	if !s.Unlocked(replay.ModeBoss) {
		t.Error("Unlocked(boss) = false after every boss")
	}
	if s.Unlocked(replay.ModeHard) {
		t.Error("Unlocked(hard) = true before a boss-mode clear")
	}
	s.HighScores.AddScore(replay.ModeBoss, 1, "x", 1)
	if !s.Unlocked(replay.ModeHard) {
		t.Error("Unlocked(hard) = false after a boss-mode clear")
	}
	s.RecordBoss(Boss3A, true)
	if !s.Unlocked(replay.ModeWhat) || s.Unlocked(replay.ModeFast) {
		t.Error("hard-mode progress unlocked the wrong modes")
	}
}

func TestScoreDisplay(t *testing.T) {
	if got := (Score{Score: 12345678901}).Display(); got != "9999999999" {
		t.Errorf("Display() = %q, expected clamp", got)
	}
	if got := (Score{Score: 42}).Display(); got != "42" {
		t.Errorf("Display() = %q, expected 42", got)
	}
}
