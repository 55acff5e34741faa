package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-shooter/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestKeyboardMovementHolds(t *testing.T) {
	k := NewKeyboard(DefaultKeyMap())
	if !k.HandleKey(runeKey('d')) {
		t.Fatal("HandleKey(d) = false, expected true")
	}

	for tick := 0; tick < holdTicks; tick++ {
		f := k.Sample(0)
		if f.Velocity != core.VInt(1, 0) {
			t.Fatalf("tick %d: Velocity = %v, expected (1, 0)", tick, f.Velocity)
		}
	}
	if f := k.Sample(0); !f.Velocity.IsZero() {
		t.Errorf("Velocity after hold = %v, expected zero", f.Velocity)
	}
}

func TestKeyboardAimFollowsMovement(t *testing.T) {
	k := NewKeyboard(DefaultKeyMap())

	f := k.Sample(0)
	if !f.TargetRelative || f.Target != core.VInt(0, -1) {
		t.Errorf("initial aim = %v relative=%v, expected (0, -1) relative", f.Target, f.TargetRelative)
	}

	k.HandleKey(runeKey('a'))
	if f = k.Sample(0); f.Target != core.VInt(-1, 0) {
		t.Errorf("aim after left = %v, expected (-1, 0)", f.Target)
	}
}

func TestKeyboardPlayersAreIndependent(t *testing.T) {
	k := NewKeyboard(DefaultKeyMap())
	k.HandleKey(tea.KeyMsg{Type: tea.KeyEnter})
	k.HandleKey(tea.KeyMsg{Type: tea.KeyUp})

	p1, p2 := k.Sample(0), k.Sample(1)
	if p1.Has(core.KeyFire) || !p1.Velocity.IsZero() {
		t.Errorf("player 1 frame = %+v, expected idle", p1)
	}
	if !p2.Has(core.KeyFire) {
		t.Error("player 2 fire not held")
	}
	if p2.Velocity != core.VInt(0, -1) {
		t.Errorf("player 2 Velocity = %v, expected (0, -1)", p2.Velocity)
	}
	if f := k.Sample(3); f != (core.InputFrame{}) {
		t.Errorf("Sample(3) = %+v, expected empty frame", f)
	}
}

func TestKeyboardBombIsOneShot(t *testing.T) {
	k := NewKeyboard(DefaultKeyMap())
	k.HandleKey(runeKey('e'))

	if f := k.Sample(0); !f.Has(core.KeyBomb) {
		t.Error("first sample has no bomb")
	}
	if f := k.Sample(0); f.Has(core.KeyBomb) {
		t.Error("second sample still has bomb")
	}
}

func TestKeyboardUnboundKey(t *testing.T) {
	k := NewKeyboard(DefaultKeyMap())
	if k.HandleKey(runeKey('z')) {
		t.Error("HandleKey(z) = true, expected false")
	}
}
