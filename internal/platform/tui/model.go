package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-shooter/internal/core"
	"github.com/vovakirdan/tui-shooter/internal/metrics"
	"github.com/vovakirdan/tui-shooter/internal/registry"
	"github.com/vovakirdan/tui-shooter/internal/replay"
)

// PlayOptions configure a live run.
type PlayOptions struct {
	Players  int
	Seed     uint32 // Zero picks a seed from the clock
	TickRate int
	Width    int
	Height   int
	Player   string // Name used for high scores and replay files
	Archive  *Archive
	Metrics  *metrics.Metrics
}

var (
	statusStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// Model is the Bubble Tea model for playing one mode. Every run is recorded
// and handed to the archive when it ends.
type Model struct {
	game     registry.Game
	opts     PlayOptions
	keys     KeyMap
	keyboard *Keyboard
	source   *replay.LiveSource
	screen   *core.Screen
	help     help.Model
	state    core.GameState
	paused   bool
	finished bool
	outcome  Outcome
	err      error
	quitting bool
	back     bool
}

// NewModel creates a model and starts the first run.
func NewModel(game registry.Game, opts PlayOptions) Model {
	keys := DefaultKeyMap()
	m := Model{
		game:     game,
		opts:     opts,
		keys:     keys,
		keyboard: NewKeyboard(keys),
		screen:   core.NewScreen(opts.Width, max(1, opts.Height-1)),
		help:     help.New(),
	}
	m.start(opts.Seed)
	return m
}

// start resets the game and begins a new recording.
func (m *Model) start(seed uint32) {
	if seed == 0 {
		seed = uint32(time.Now().UnixNano())
	}
	m.game.Reset(core.RuntimeConfig{
		ScreenW:  m.opts.Width,
		ScreenH:  m.opts.Height,
		TickRate: m.opts.TickRate,
		Seed:     seed,
		Players:  m.opts.Players,
	})
	m.keyboard.Reset()
	m.source = replay.NewLiveSource(m.keyboard, replay.NewWriter(m.game.Conditions()))
	m.state = m.game.State()
	m.paused = false
	m.finished = false
	m.outcome = Outcome{}
	m.err = nil
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.opts.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.opts.Width = msg.Width
		m.opts.Height = msg.Height
		m.screen.Resize(msg.Width, max(1, msg.Height-1))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.finish()
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		m.finish()
		m.back = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Restart) && m.finished:
		m.start(0)
		return m, tickCmd(m.opts.TickRate)

	case key.Matches(msg, m.keys.Pause) && !m.finished:
		m.paused = !m.paused
		return m, nil
	}

	if !m.paused && !m.finished {
		m.keyboard.HandleKey(msg)
	}
	return m, nil
}

// handleTick advances the simulation one tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.finished {
		return m, nil
	}
	if m.paused {
		return m, tickCmd(m.opts.TickRate)
	}

	start := time.Now()
	frames, err := m.source.Frames(m.state.Tick)
	if err == nil {
		var res core.StepResult
		res, err = m.game.Step(frames)
		m.state = res.State
	}
	if m.opts.Metrics != nil {
		m.opts.Metrics.RecordTick(time.Since(start))
	}
	if err != nil {
		m.err = err
		m.finish()
		return m, nil
	}

	if m.state.GameOver {
		m.finish()
		return m, nil
	}
	return m, tickCmd(m.opts.TickRate)
}

// finish finalizes the recording and archives it once. Runs that never
// advanced are dropped.
func (m *Model) finish() {
	if m.finished {
		return
	}
	m.finished = true

	w := m.source.Writer()
	if w.Frames() == 0 {
		return
	}
	r, err := w.Finalize()
	if err != nil {
		m.err = err
		return
	}
	if m.opts.Archive == nil {
		return
	}
	out, err := m.opts.Archive.Finish(r, m.opts.Player, m.state)
	m.outcome = out
	if err != nil && m.err == nil {
		m.err = err
	}
}

// View renders the playfield and a status line.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	m.game.Render(m.screen)

	var b strings.Builder
	b.WriteString(RenderScreen(m.screen))
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	return b.String()
}

func (m Model) statusLine() string {
	switch {
	case m.err != nil:
		return errorStyle.Render(m.err.Error())
	case m.finished:
		msg := fmt.Sprintf("Score %d", m.state.Score)
		if m.outcome.Rank >= 0 {
			msg += fmt.Sprintf("  new high score #%d", m.outcome.Rank+1)
		}
		if m.outcome.ReplayPath != "" {
			msg += "  replay saved"
		}
		return statusStyle.Render(msg) + helpStyle.Render("  r: restart  esc: back  q: quit")
	case m.paused:
		return statusStyle.Render("PAUSED") + "  " + helpStyle.Render(m.help.View(m.keys))
	}
	return helpStyle.Render(m.help.View(m.keys))
}

// State returns the state after the latest tick.
func (m Model) State() core.GameState {
	return m.state
}

// Outcome returns where the last finished run was stored.
func (m Model) Outcome() Outcome {
	return m.outcome
}

// Err returns the error that ended the last run, if any.
func (m Model) Err() error {
	return m.err
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.back
}

// Run plays game in the terminal until the user quits.
func Run(game registry.Game, opts PlayOptions) (Model, error) {
	p := tea.NewProgram(NewModel(game, opts), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return Model{}, err
	}
	m, _ := final.(Model)
	return m, nil
}
