package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-shooter/internal/core"
)

// holdTicks is how many ticks a key press counts as held. Terminals report
// presses and auto-repeat but never releases.
const holdTicks = 6

type heldInput struct {
	dx, dy   int32
	moveTTL  int
	aimX     int32
	aimY     int32
	fireTTL  int
	bombOnce bool
}

// Keyboard turns key presses into per-tick input frames.
// It implements replay.Controller; Sample must be called once per player per tick.
type Keyboard struct {
	keys    KeyMap
	players [2]heldInput
}

// NewKeyboard creates a keyboard controller. Ships aim up until they move.
func NewKeyboard(keys KeyMap) *Keyboard {
	k := &Keyboard{keys: keys}
	for i := range k.players {
		k.players[i].aimY = -1
	}
	return k
}

// HandleKey records a key press. It returns false if the key is not a
// movement or action binding of any player.
func (k *Keyboard) HandleKey(msg tea.KeyMsg) bool {
	for i, pk := range k.keys.Players {
		p := &k.players[i]
		switch {
		case key.Matches(msg, pk.Up):
			p.press(0, -1)
		case key.Matches(msg, pk.Down):
			p.press(0, 1)
		case key.Matches(msg, pk.Left):
			p.press(-1, 0)
		case key.Matches(msg, pk.Right):
			p.press(1, 0)
		case key.Matches(msg, pk.Fire):
			p.fireTTL = holdTicks
		case key.Matches(msg, pk.Bomb):
			p.bombOnce = true
		default:
			continue
		}
		return true
	}
	return false
}

// press sets the direction on one axis; a recent press on the other axis
// is kept so diagonals work.
func (p *heldInput) press(dx, dy int32) {
	if p.moveTTL == 0 {
		p.dx, p.dy = 0, 0
	}
	if dx != 0 {
		p.dx = dx
	}
	if dy != 0 {
		p.dy = dy
	}
	p.moveTTL = holdTicks
	p.aimX, p.aimY = p.dx, p.dy
}

// Sample returns the frame for player and ages its held keys by one tick.
func (k *Keyboard) Sample(player int) core.InputFrame {
	// Players beyond the keyboard's sets idle.
	if player < 0 || player >= len(k.players) {
		return core.InputFrame{}
	}
	p := &k.players[player]

	var f core.InputFrame
	if p.moveTTL > 0 {
		f.Velocity = core.VInt(p.dx, p.dy)
		if p.dx != 0 && p.dy != 0 {
			f.Velocity = f.Velocity.Normalised()
		}
		p.moveTTL--
	}
	f.Target = core.VInt(p.aimX, p.aimY)
	f.TargetRelative = true
	if p.fireTTL > 0 {
		f.Set(core.KeyFire)
		p.fireTTL--
	}
	if p.bombOnce {
		f.Set(core.KeyBomb)
		p.bombOnce = false
	}
	return f
}

// Reset releases every key.
func (k *Keyboard) Reset() {
	*k = *NewKeyboard(k.keys)
}
