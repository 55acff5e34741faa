package replay

import "github.com/vovakirdan/tui-shooter/internal/core"

// Source supplies the input frames for one tick, one per player.
type Source interface {
	Frames(tick uint64) ([]core.InputFrame, error)
}

// Controller samples live input for a player.
type Controller interface {
	Sample(player int) core.InputFrame
}

// ControllerFunc adapts a function to Controller.
type ControllerFunc func(player int) core.InputFrame

func (f ControllerFunc) Sample(player int) core.InputFrame {
	return f(player)
}

// LiveSource samples a controller and records every frame it returns.
type LiveSource struct {
	ctrl   Controller
	writer *Writer
}

func NewLiveSource(ctrl Controller, w *Writer) *LiveSource {
	return &LiveSource{ctrl: ctrl, writer: w}
}

func (s *LiveSource) Writer() *Writer {
	return s.writer
}

func (s *LiveSource) Frames(uint64) ([]core.InputFrame, error) {
	frames := make([]core.InputFrame, s.writer.Conditions().Players)
	for i := range frames {
		frames[i] = s.ctrl.Sample(i)
	}
	if err := s.writer.Add(frames...); err != nil {
		return nil, err
	}
	return frames, nil
}

// PlaybackSource replays recorded frames. Running out is an error.
type PlaybackSource struct {
	reader *Reader
}

func NewPlaybackSource(r *Reader) *PlaybackSource {
	return &PlaybackSource{reader: r}
}

func (s *PlaybackSource) Reader() *Reader {
	return s.reader
}

func (s *PlaybackSource) Frames(uint64) ([]core.InputFrame, error) {
	return s.reader.NextTick()
}
