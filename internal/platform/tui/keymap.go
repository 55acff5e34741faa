package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// PlayerKeys are the bindings of one local player.
type PlayerKeys struct {
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	Fire  key.Binding
	Bomb  key.Binding
}

// KeyMap defines the key bindings during play and replay viewing.
// Up to two players share a keyboard.
type KeyMap struct {
	Players [2]PlayerKeys
	Pause   key.Binding
	Restart key.Binding
	Back    key.Binding
	Quit    key.Binding
	Faster  key.Binding
	Slower  key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	p := k.Players[0]
	return []key.Binding{p.Up, p.Fire, p.Bomb, k.Pause, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	p1, p2 := k.Players[0], k.Players[1]
	return [][]key.Binding{
		{p1.Up, p1.Down, p1.Left, p1.Right, p1.Fire, p1.Bomb},
		{p2.Up, p2.Down, p2.Left, p2.Right, p2.Fire, p2.Bomb},
		{k.Pause, k.Restart, k.Back, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings: WASD for player one and the
// arrow keys for player two. A single player may use either set.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Players: [2]PlayerKeys{
			{
				Up:    key.NewBinding(key.WithKeys("w"), key.WithHelp("wasd", "move")),
				Down:  key.NewBinding(key.WithKeys("s")),
				Left:  key.NewBinding(key.WithKeys("a")),
				Right: key.NewBinding(key.WithKeys("d")),
				Fire:  key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "fire")),
				Bomb:  key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "bomb")),
			},
			{
				Up:    key.NewBinding(key.WithKeys("up"), key.WithHelp("arrows", "move (P2)")),
				Down:  key.NewBinding(key.WithKeys("down")),
				Left:  key.NewBinding(key.WithKeys("left")),
				Right: key.NewBinding(key.WithKeys("right")),
				Fire:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "fire (P2)")),
				Bomb:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "bomb (P2)")),
			},
		},
		Pause:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause")),
		Restart: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")),
		Back:    key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Faster:  key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "faster")),
		Slower:  key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "slower")),
	}
}

// ViewerHelp adapts the key map for the replay viewer.
type ViewerHelp KeyMap

func (k ViewerHelp) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Faster, k.Slower, k.Quit}
}

func (k ViewerHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
