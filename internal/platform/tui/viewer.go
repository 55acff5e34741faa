package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-shooter/internal/core"
	"github.com/vovakirdan/tui-shooter/internal/replay"
	"github.com/vovakirdan/tui-shooter/internal/sim"
)

const maxSpeed = 16

// ViewerModel plays a recording back through a fresh simulation.
type ViewerModel struct {
	run      *sim.Context
	reader   *replay.Reader
	source   *replay.PlaybackSource
	total    int
	screen   *core.Screen
	progress progress.Model
	help     help.Model
	keys     KeyMap
	tickRate int
	speed    int
	paused   bool
	done     bool
	status   sim.Status
	err      error
	quitting bool
}

// NewViewerModel creates a viewer. run must be freshly created for the
// replay's conditions.
func NewViewerModel(r *replay.Replay, run *sim.Context, tickRate, width, height int) ViewerModel {
	reader := replay.NewReader(r)
	return ViewerModel{
		run:      run,
		reader:   reader,
		source:   replay.NewPlaybackSource(reader),
		total:    r.Ticks(),
		screen:   core.NewScreen(width, max(1, height-2)),
		progress: progress.New(progress.WithDefaultGradient(), progress.WithWidth(max(10, width-20))),
		help:     help.New(),
		keys:     DefaultKeyMap(),
		tickRate: tickRate,
		speed:    1,
		status:   run.Status(),
	}
}

// Init starts the playback loop.
func (m ViewerModel) Init() tea.Cmd {
	return tickCmd(m.tickRate)
}

// Update handles messages for the viewer.
func (m ViewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.Back):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Pause):
			m.paused = !m.paused
		case key.Matches(msg, m.keys.Faster):
			m.speed = min(maxSpeed, m.speed*2)
		case key.Matches(msg, m.keys.Slower):
			m.speed = max(1, m.speed/2)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, max(1, msg.Height-2))
		m.progress.Width = max(10, msg.Width-20)
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		if m.done {
			return m, nil
		}
		if !m.paused {
			m.advance()
		}
		if m.done {
			return m, nil
		}
		return m, tickCmd(m.tickRate)
	}
	return m, nil
}

// advance steps speed ticks or until the recording ends.
func (m *ViewerModel) advance() {
	for range m.speed {
		if m.reader.Exhausted() || m.status.GameOver {
			m.done = true
			return
		}
		frames, err := m.source.Frames(m.status.Tick)
		if err != nil {
			if !errors.Is(err, replay.ErrExhausted) {
				m.err = err
			}
			m.done = true
			return
		}
		if m.status, err = m.run.Step(frames); err != nil {
			m.err = err
			m.done = true
			return
		}
	}
}

// View renders the playfield, a progress bar and help.
func (m ViewerModel) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	m.run.Render(m.screen)

	var b strings.Builder
	b.WriteString(RenderScreen(m.screen))
	b.WriteString("\n")

	pct := 1.0
	if m.total > 0 {
		pct = float64(m.status.Tick) / float64(m.total)
	}
	b.WriteString(m.progress.ViewAs(min(1, pct)))
	b.WriteString(fmt.Sprintf("  %d/%d  x%d", m.status.Tick, m.total, m.speed))
	b.WriteString("\n")

	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render(m.err.Error()))
	case m.done:
		b.WriteString(statusStyle.Render(fmt.Sprintf("End of replay  score %d", m.status.Score)))
		b.WriteString(helpStyle.Render("  q: quit"))
	case m.paused:
		b.WriteString(statusStyle.Render("PAUSED  "))
		b.WriteString(helpStyle.Render(m.help.View(ViewerHelp(m.keys))))
	default:
		b.WriteString(helpStyle.Render(m.help.View(ViewerHelp(m.keys))))
	}
	return b.String()
}

// Status returns the simulation status after the latest tick.
func (m ViewerModel) Status() sim.Status {
	return m.status
}

// Done reports whether playback reached the end of the recording.
func (m ViewerModel) Done() bool {
	return m.done
}

// Err returns the error that stopped playback, if any.
func (m ViewerModel) Err() error {
	return m.err
}

// RunViewer plays r in the terminal.
func RunViewer(r *replay.Replay, run *sim.Context, tickRate, width, height int) (ViewerModel, error) {
	p := tea.NewProgram(NewViewerModel(r, run, tickRate, width, height), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return ViewerModel{}, err
	}
	m, _ := final.(ViewerModel)
	return m, nil
}
