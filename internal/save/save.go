// Package save persists high-score tables and boss progress.
//
// The file is the protobuf wire encoding of SaveGame passed through the same
// XOR obfuscation as replays. It is not compressed.
package save

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/vovakirdan/tui-shooter/internal/codec"
	"github.com/vovakirdan/tui-shooter/internal/core"
	"github.com/vovakirdan/tui-shooter/internal/replay"
)

const (
	// TableSize is the number of entries per player count in a ranked table.
	TableSize = 8
	// MaxNameLength is the longest name kept, in runes.
	MaxNameLength = 17
	// maxScoreDigits bounds the width of a displayed score.
	maxScoreDigits = 10
)

var key = []byte("<>")

var ErrCorrupt = errors.New("save: corrupt data")

// Boss bits recorded in BossesKilled and HardModeBossesKilled.
const (
	Boss1A uint32 = 1 << iota
	Boss1B
	Boss1C
	Boss2A
	Boss2B
	Boss2C
	Boss3A

	allMainBosses = Boss1A | Boss1B | Boss1C | Boss2A | Boss2B | Boss2C
)

type Score struct {
	Name  string
	Score uint64
}

// Display formats the score for a fixed-width column.
func (s Score) Display() string {
	v := strconv.FormatUint(s.Score, 10)
	if len(v) > maxScoreDigits {
		return "9999999999"
	}
	return v
}

// Table is a ranked list, best first.
type Table [TableSize]Score

// HighScores holds one table per mode and player count. Boss mode keeps a
// single best entry per player count.
type HighScores struct {
	Normal [core.MaxPlayers]Table
	Hard   [core.MaxPlayers]Table
	Fast   [core.MaxPlayers]Table
	What   [core.MaxPlayers]Table
	Boss   [core.MaxPlayers]Score
}

// Entries returns the table for mode and player count (1-based). Out of
// range player counts panic.
func (h *HighScores) Entries(mode replay.GameMode, players int) []Score {
	p := players - 1
	switch mode {
	case replay.ModeHard:
		return h.Hard[p][:]
	case replay.ModeFast:
		return h.Fast[p][:]
	case replay.ModeWhat:
		return h.What[p][:]
	case replay.ModeBoss:
		return h.Boss[p : p+1]
	}
	return h.Normal[p][:]
}

// IsHighScore reports whether score would enter the table.
func (h *HighScores) IsHighScore(mode replay.GameMode, players int, score uint64) bool {
	e := h.Entries(mode, players)
	return e[len(e)-1].Score < score
}

// AddScore inserts the score at its ranked position, shifting lower entries
// down and dropping the last. It reports the position, or -1 if the score
// did not place.
func (h *HighScores) AddScore(mode replay.GameMode, players int, name string, score uint64) int {
	e := h.Entries(mode, players)
	for i := range e {
		if score <= e[i].Score {
			continue
		}
		copy(e[i+1:], e[i:len(e)-1])
		e[i] = Score{Name: ClipName(name), Score: score}
		return i
	}
	return -1
}

// ClipName truncates name to MaxNameLength runes.
func ClipName(name string) string {
	r := []rune(name)
	if len(r) > MaxNameLength {
		return string(r[:MaxNameLength])
	}
	return name
}

// SaveGame is the persisted progress of a player.
type SaveGame struct {
	BossesKilled         uint32
	HardModeBossesKilled uint32
	HighScores           HighScores
}

// New returns an empty save.
func New() *SaveGame {
	return &SaveGame{}
}

// RecordBoss marks a boss as defeated.
func (s *SaveGame) RecordBoss(boss uint32, hard bool) {
	if hard {
		s.HardModeBossesKilled |= boss
		return
	}
	s.BossesKilled |= boss
}

// Unlocked reports whether mode can be selected.
func (s *SaveGame) Unlocked(mode replay.GameMode) bool {
	bossUnlocked := s.BossesKilled&allMainBosses == allMainBosses
	switch mode {
	case replay.ModeBoss:
		return bossUnlocked
	case replay.ModeHard:
		if !bossUnlocked {
			return false
		}
		for _, b := range s.HighScores.Boss {
			if b.Score > 0 {
				return true
			}
		}
		return false
	case replay.ModeFast:
		return s.HardModeBossesKilled&allMainBosses == allMainBosses
	case replay.ModeWhat:
		return s.HardModeBossesKilled&Boss3A != 0
	}
	return true
}

// Wire field numbers.
const (
	fieldBosses     protowire.Number = 1
	fieldHardBosses protowire.Number = 2
	fieldNormal     protowire.Number = 3
	fieldHard       protowire.Number = 4
	fieldFast       protowire.Number = 5
	fieldWhat       protowire.Number = 6
	fieldBoss       protowire.Number = 7

	modeTable  protowire.Number = 1
	tableScore protowire.Number = 1
	scoreName  protowire.Number = 1
	scoreValue protowire.Number = 2
)

func marshalScores(scores []Score) []byte {
	var b codec.Builder
	for _, s := range scores {
		var e codec.Builder
		e.String(scoreName, s.Name)
		e.Varint(scoreValue, s.Score)
		b.Message(tableScore, e.Bytes())
	}
	return b.Bytes()
}

func marshalMode(tables *[core.MaxPlayers]Table) []byte {
	var b codec.Builder
	for i := range tables {
		b.Message(modeTable, marshalScores(tables[i][:]))
	}
	return b.Bytes()
}

// Marshal returns the protobuf wire encoding of s.
func (s *SaveGame) Marshal() []byte {
	var b codec.Builder
	b.Varint(fieldBosses, uint64(s.BossesKilled))
	b.Varint(fieldHardBosses, uint64(s.HardModeBossesKilled))
	b.Message(fieldNormal, marshalMode(&s.HighScores.Normal))
	b.Message(fieldHard, marshalMode(&s.HighScores.Hard))
	b.Message(fieldFast, marshalMode(&s.HighScores.Fast))
	b.Message(fieldWhat, marshalMode(&s.HighScores.What))
	b.Message(fieldBoss, marshalScores(s.HighScores.Boss[:]))
	return b.Bytes()
}

// unmarshalScores fills dst in order. Extra entries are ignored.
func unmarshalScores(data []byte, dst []Score) error {
	i := 0
	return codec.Walk(data, func(f codec.Field) error {
		if f.Num != tableScore {
			return nil
		}
		if err := f.Expect(protowire.BytesType); err != nil {
			return err
		}
		var sc Score
		err := codec.Walk(f.Bytes, func(g codec.Field) error {
			switch g.Num {
			case scoreName:
				if err := g.Expect(protowire.BytesType); err != nil {
					return err
				}
				sc.Name = ClipName(string(g.Bytes))
			case scoreValue:
				if err := g.Expect(protowire.VarintType); err != nil {
					return err
				}
				sc.Score = g.Varint
			}
			return nil
		})
		if err != nil {
			return err
		}
		if i < len(dst) {
			dst[i] = sc
		}
		i++
		return nil
	})
}

func unmarshalMode(data []byte, dst *[core.MaxPlayers]Table) error {
	p := 0
	return codec.Walk(data, func(f codec.Field) error {
		if f.Num != modeTable {
			return nil
		}
		if err := f.Expect(protowire.BytesType); err != nil {
			return err
		}
		if p >= len(dst) {
			return nil
		}
		err := unmarshalScores(f.Bytes, dst[p][:])
		p++
		return err
	})
}

// Unmarshal parses the protobuf wire encoding of a save.
func Unmarshal(data []byte) (*SaveGame, error) {
	s := New()
	err := codec.Walk(data, func(f codec.Field) error {
		switch f.Num {
		case fieldBosses, fieldHardBosses:
			if err := f.Expect(protowire.VarintType); err != nil {
				return err
			}
			if f.Num == fieldBosses {
				s.BossesKilled = uint32(f.Varint)
			} else {
				s.HardModeBossesKilled = uint32(f.Varint)
			}
			return nil
		case fieldNormal, fieldHard, fieldFast, fieldWhat, fieldBoss:
			if err := f.Expect(protowire.BytesType); err != nil {
				return err
			}
		default:
			return nil
		}
		switch f.Num {
		case fieldNormal:
			return unmarshalMode(f.Bytes, &s.HighScores.Normal)
		case fieldHard:
			return unmarshalMode(f.Bytes, &s.HighScores.Hard)
		case fieldFast:
			return unmarshalMode(f.Bytes, &s.HighScores.Fast)
		case fieldWhat:
			return unmarshalMode(f.Bytes, &s.HighScores.What)
		}
		return unmarshalScores(f.Bytes, s.HighScores.Boss[:])
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	return s, nil
}

// Encode returns the obfuscated file contents.
func (s *SaveGame) Encode() []byte {
	return codec.Crypt(s.Marshal(), key)
}

// Decode parses file contents produced by Encode.
func Decode(data []byte) (*SaveGame, error) {
	return Unmarshal(codec.Crypt(data, key))
}

// LoadFile reads the save at path. A missing file yields a fresh save.
func LoadFile(path string) (*SaveGame, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("save: load %s: %w", path, err)
	}
	s, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("save: load %s: %w", path, err)
	}
	return s, nil
}

// SaveFile writes s to path atomically.
func (s *SaveGame) SaveFile(path string) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, s.Encode(), 0o644); err != nil {
		return fmt.Errorf("save: write %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("save: write %s: %w", path, err)
	}
	return nil
}
