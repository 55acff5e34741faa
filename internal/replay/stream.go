package replay

import (
	"fmt"

	"github.com/vovakirdan/tui-shooter/internal/core"
)

// Writer records frames for a run in progress. Once finalized it rejects
// further frames.
type Writer struct {
	replay    Replay
	finalized bool
}

// NewWriter starts a recording under the given conditions.
func NewWriter(c Conditions) *Writer {
	c = c.Normalize()
	if c.Compatibility == CompatLegacy {
		c.Compatibility = CompatCurrent
	}
	return &Writer{replay: Replay{Version: Version, Conditions: c}}
}

func (w *Writer) Conditions() Conditions {
	return w.replay.Conditions
}

// Frames returns the number of frames recorded so far.
func (w *Writer) Frames() int {
	return len(w.replay.Frames)
}

func (w *Writer) Finalized() bool {
	return w.finalized
}

// Add appends frames in player order.
func (w *Writer) Add(frames ...core.InputFrame) error {
	if w.finalized {
		return ErrFinalized
	}
	w.replay.Frames = append(w.replay.Frames, frames...)
	return nil
}

// Finalize freezes the recording and returns it. Calling it twice is an error.
func (w *Writer) Finalize() (*Replay, error) {
	if w.finalized {
		return nil, ErrFinalized
	}
	w.finalized = true
	r := w.replay
	r.Frames = append([]core.InputFrame(nil), w.replay.Frames...)
	return &r, nil
}

// Reader hands out the frames of a loaded replay in order.
type Reader struct {
	replay *Replay
	pos    int
}

func NewReader(r *Replay) *Reader {
	return &Reader{replay: r}
}

// Open loads the replay at path and returns a reader positioned at its start.
func Open(path string) (*Reader, error) {
	r, err := Load(path)
	if err != nil {
		return nil, err
	}
	return NewReader(r), nil
}

func (r *Reader) Replay() *Replay {
	return r.replay
}

func (r *Reader) Conditions() Conditions {
	return r.replay.Conditions
}

// Next returns the next single frame.
func (r *Reader) Next() (core.InputFrame, error) {
	if r.pos >= len(r.replay.Frames) {
		return core.InputFrame{}, ErrExhausted
	}
	f := r.replay.Frames[r.pos]
	r.pos++
	return f, nil
}

// NextTick returns one frame per player. A partial tick is never returned.
func (r *Reader) NextTick() ([]core.InputFrame, error) {
	n := r.replay.Conditions.Players
	if r.Remaining() < n {
		return nil, fmt.Errorf("%w after %d of %d frames", ErrExhausted, r.pos, len(r.replay.Frames))
	}
	frames := make([]core.InputFrame, n)
	copy(frames, r.replay.Frames[r.pos:r.pos+n])
	r.pos += n
	return frames, nil
}

// Remaining returns the number of frames not yet consumed.
func (r *Reader) Remaining() int {
	return len(r.replay.Frames) - r.pos
}

// Position returns the number of frames consumed.
func (r *Reader) Position() int {
	return r.pos
}

func (r *Reader) Exhausted() bool {
	return r.Remaining() == 0
}
