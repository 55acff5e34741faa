package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-shooter/internal/core"
	"github.com/vovakirdan/tui-shooter/internal/registry"
	"github.com/vovakirdan/tui-shooter/internal/replay"
	"github.com/vovakirdan/tui-shooter/internal/save"
)

// MenuItem represents a selectable mode in the menu.
type MenuItem struct {
	ModeID string
	Title  string
	Locked bool
}

type menuKeys struct {
	Up, Down, Select, More, Fewer, Scores, Quit key.Binding
}

var defaultMenuKeys = menuKeys{
	Up:     key.NewBinding(key.WithKeys("up", "w", "k")),
	Down:   key.NewBinding(key.WithKeys("down", "s", "j")),
	Select: key.NewBinding(key.WithKeys("enter", " ")),
	More:   key.NewBinding(key.WithKeys("right", "d", "+")),
	Fewer:  key.NewBinding(key.WithKeys("left", "a", "-")),
	Scores: key.NewBinding(key.WithKeys("tab")),
	Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c", "esc")),
}

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuLockedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// MenuModel is the Bubble Tea model for picking a mode and player count.
// Modes the save file has not unlocked are listed but cannot be selected.
type MenuModel struct {
	items          []MenuItem
	cursor         int
	players        int
	width          int
	height         int
	keys           menuKeys
	quitting       bool
	selected       *MenuItem
	openScoreboard bool
}

// NewMenuModel creates a new menu model. saved may be nil, which unlocks
// only the normal mode.
func NewMenuModel(saved *save.SaveGame, players, width, height int) MenuModel {
	if saved == nil {
		saved = save.New()
	}

	titles := make(map[string]string)
	for _, g := range registry.List() {
		titles[g.ID] = g.Title
	}

	items := make([]MenuItem, 0, len(titles))
	for _, mode := range replay.Modes() {
		title, ok := titles[mode.String()]
		if !ok {
			continue
		}
		items = append(items, MenuItem{
			ModeID: mode.String(),
			Title:  title,
			Locked: !saved.Unlocked(mode),
		})
	}

	return MenuModel{
		items:   items,
		players: max(1, min(core.MaxPlayers, players)),
		width:   width,
		height:  height,
		keys:    defaultMenuKeys,
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.More):
		m.players = min(core.MaxPlayers, m.players+1)

	case key.Matches(msg, m.keys.Fewer):
		m.players = max(1, m.players-1)

	case key.Matches(msg, m.keys.Select):
		if len(m.items) > 0 && !m.items[m.cursor].Locked {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit
		}

	case key.Matches(msg, m.keys.Scores):
		m.openScoreboard = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("  S H O O T E R  "), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(fmt.Sprintf("Players: < %d >", m.players), m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		line := cursor + item.Title
		if item.Locked {
			line = menuLockedStyle.Render(line + " (locked)")
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(helpStyle.Render("Up/Down: Mode  |  Left/Right: Players  |  Enter: Play  |  Tab: Scores  |  Q: Quit"), m.width))
	b.WriteString("\n")
	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// Players returns the chosen player count.
func (m MenuModel) Players() int {
	return m.players
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}
