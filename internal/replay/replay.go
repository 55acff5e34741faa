// Package replay records and plays back the per-tick input of a run.
//
// A replay file is the protobuf wire encoding of a Replay, XOR-obfuscated
// with a fixed key and then zlib compressed. Loading reverses the pipeline
// and never returns a partially decoded record.
package replay

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/crypto/sha3"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/vovakirdan/tui-shooter/internal/codec"
	"github.com/vovakirdan/tui-shooter/internal/core"
)

const (
	// Version tags replays written by this package.
	Version = "iispace"
	// LegacyVersion tags replays converted from the v1.3 text format.
	LegacyVersion = "WiiSPACE v1.3 replay"
)

var key = []byte("<>")

var (
	ErrCorrupt   = errors.New("replay: corrupt data")
	ErrFinalized = errors.New("replay: recording already finalized")
	ErrExhausted = errors.New("replay: input exhausted")
)

// Replay is a complete recorded run. Frames holds one entry per player per
// tick, players in order within a tick.
type Replay struct {
	Version    string
	Conditions Conditions
	Frames     []core.InputFrame
}

// Ticks returns the number of whole ticks recorded.
func (r *Replay) Ticks() int {
	p := max(1, r.Conditions.Players)
	return len(r.Frames) / p
}

// Wire field numbers.
const (
	fieldVersion    protowire.Number = 1
	fieldConditions protowire.Number = 2
	fieldFrame      protowire.Number = 3

	condCompat  protowire.Number = 1
	condSeed    protowire.Number = 2
	condPlayers protowire.Number = 3
	condMode    protowire.Number = 4
	condFlags   protowire.Number = 5

	frameVelX     protowire.Number = 1
	frameVelY     protowire.Number = 2
	frameTargetX  protowire.Number = 3
	frameTargetY  protowire.Number = 4
	frameRelative protowire.Number = 5
	frameKeys     protowire.Number = 6
)

const (
	flagCanFaceSecretBoss = 1 << iota
	flagStrictCollision
)

// Marshal returns the protobuf wire encoding of r.
func (r *Replay) Marshal() []byte {
	var c codec.Builder
	c.Varint(condCompat, uint64(r.Conditions.Compatibility))
	c.Varint(condSeed, uint64(r.Conditions.Seed))
	c.Varint(condPlayers, uint64(r.Conditions.Players))
	c.Varint(condMode, uint64(r.Conditions.Mode))
	var flags uint64
	if r.Conditions.CanFaceSecretBoss {
		flags |= flagCanFaceSecretBoss
	}
	if r.Conditions.StrictCollision {
		flags |= flagStrictCollision
	}
	if flags != 0 {
		c.Varint(condFlags, flags)
	}

	var b codec.Builder
	b.String(fieldVersion, r.Version)
	b.Message(fieldConditions, c.Bytes())
	for _, f := range r.Frames {
		b.Message(fieldFrame, marshalFrame(f))
	}
	return b.Bytes()
}

func marshalFrame(f core.InputFrame) []byte {
	var b codec.Builder
	b.Int64(frameVelX, f.Velocity.X.ToInternal())
	b.Int64(frameVelY, f.Velocity.Y.ToInternal())
	b.Int64(frameTargetX, f.Target.X.ToInternal())
	b.Int64(frameTargetY, f.Target.Y.ToInternal())
	b.Bool(frameRelative, f.TargetRelative)
	b.Varint(frameKeys, uint64(f.Keys))
	return b.Bytes()
}

// Unmarshal parses the protobuf wire encoding of a replay.
func Unmarshal(data []byte) (*Replay, error) {
	r := &Replay{}
	err := codec.Walk(data, func(f codec.Field) error {
		switch f.Num {
		case fieldVersion:
			if err := f.Expect(protowire.BytesType); err != nil {
				return err
			}
			r.Version = string(f.Bytes)
		case fieldConditions:
			if err := f.Expect(protowire.BytesType); err != nil {
				return err
			}
			return unmarshalConditions(f.Bytes, &r.Conditions)
		case fieldFrame:
			if err := f.Expect(protowire.BytesType); err != nil {
				return err
			}
			fr, err := unmarshalFrame(f.Bytes)
			if err != nil {
				return err
			}
			r.Frames = append(r.Frames, fr)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	return r, nil
}

func unmarshalConditions(data []byte, c *Conditions) error {
	return codec.Walk(data, func(f codec.Field) error {
		if err := f.Expect(protowire.VarintType); err != nil {
			return err
		}
		switch f.Num {
		case condCompat:
			c.Compatibility = Compatibility(f.Varint)
		case condSeed:
			c.Seed = uint32(f.Varint)
		case condPlayers:
			c.Players = int(min(f.Varint, 1<<16))
		case condMode:
			c.Mode = GameMode(f.Varint)
		case condFlags:
			c.CanFaceSecretBoss = f.Varint&flagCanFaceSecretBoss != 0
			c.StrictCollision = f.Varint&flagStrictCollision != 0
		}
		return nil
	})
}

func unmarshalFrame(data []byte) (core.InputFrame, error) {
	var fr core.InputFrame
	err := codec.Walk(data, func(f codec.Field) error {
		if err := f.Expect(protowire.VarintType); err != nil {
			return err
		}
		v := core.FromInternal(int64(f.Varint))
		switch f.Num {
		case frameVelX:
			fr.Velocity.X = v
		case frameVelY:
			fr.Velocity.Y = v
		case frameTargetX:
			fr.Target.X = v
		case frameTargetY:
			fr.Target.Y = v
		case frameRelative:
			fr.TargetRelative = f.Varint != 0
		case frameKeys:
			fr.Keys = core.Key(f.Varint)
		}
		return nil
	})
	return fr, err
}

// Encode serializes, obfuscates and compresses r.
func (r *Replay) Encode() ([]byte, error) {
	out, err := codec.Compress(codec.Crypt(r.Marshal(), key))
	if err != nil {
		return nil, fmt.Errorf("replay: encode: %w", err)
	}
	return out, nil
}

// Decode reverses Encode. Data in the v1.3 text format is also accepted.
func Decode(data []byte) (*Replay, error) {
	plain, err := codec.Decompress(data)
	if err != nil {
		r, lerr := decodeLegacy(data)
		if lerr != nil {
			return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
		}
		return r, nil
	}
	r, err := Unmarshal(codec.Crypt(plain, key))
	if err != nil {
		return nil, err
	}
	if err := r.validate(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Replay) validate() error {
	if r.Version != Version && r.Version != LegacyVersion {
		return fmt.Errorf("%w: unknown game version %q", ErrCorrupt, r.Version)
	}
	if r.Conditions.Mode > ModeWhat {
		return fmt.Errorf("%w: unknown game mode %d", ErrCorrupt, r.Conditions.Mode)
	}
	r.Conditions = r.Conditions.Normalize()
	if len(r.Frames)%r.Conditions.Players != 0 {
		return fmt.Errorf("%w: %d frames do not divide into %d players", ErrCorrupt, len(r.Frames), r.Conditions.Players)
	}
	return nil
}

// Load reads and decodes the replay at path.
func Load(path string) (*Replay, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("replay: load %s: %w", path, err)
	}
	r, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("replay: load %s: %w", path, err)
	}
	return r, nil
}

// Save encodes r and writes it to path.
func (r *Replay) Save(path string) error {
	data, err := r.Encode()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("replay: save %s: %w", path, err)
	}
	return nil
}

// Digest is the SHA3-256 of the wire encoding. Two replays with the same
// digest replay identically.
func (r *Replay) Digest() [32]byte {
	return sha3.Sum256(r.Marshal())
}

// FileName returns the conventional file name for a finished run.
func FileName(c Conditions, name string, score int64) string {
	return fmt.Sprintf("%d_%dp_%s%s_%d.wrp", c.Seed, c.Players, c.Mode.filePrefix(), name, score)
}
