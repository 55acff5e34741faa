package core

import "strings"

// MaxPlayers is the number of local players a run supports.
const MaxPlayers = 4

// Key is a bitmask of discrete buttons held during a tick.
type Key uint32

const (
	KeyFire Key = 1 << iota
	KeyBomb
	KeySuper
	KeyPower
	KeyClick

	KeyNone Key = 0
)

var keyNames = []struct {
	k    Key
	name string
}{
	{KeyFire, "fire"},
	{KeyBomb, "bomb"},
	{KeySuper, "super"},
	{KeyPower, "power"},
	{KeyClick, "click"},
}

// String returns the held keys joined with '+', or "none".
func (k Key) String() string {
	if k == KeyNone {
		return "none"
	}
	var parts []string
	for _, kn := range keyNames {
		if k&kn.k != 0 {
			parts = append(parts, kn.name)
		}
	}
	return strings.Join(parts, "+")
}

// InputFrame is one player's input for a single simulation tick.
// Velocity is the requested movement direction (length at most one), Target is
// the aim point, either absolute in playfield space or relative to the ship.
type InputFrame struct {
	Velocity       Vec2
	Target         Vec2
	TargetRelative bool
	Keys           Key
}

// Has reports whether k is held.
func (f InputFrame) Has(k Key) bool {
	return f.Keys&k != 0
}

// Set marks k as held for this frame.
func (f *InputFrame) Set(k Key) {
	f.Keys |= k
}

// AimFrom resolves the aim target for a ship at position.
func (f InputFrame) AimFrom(position Vec2) Vec2 {
	if f.TargetRelative {
		return position.Add(f.Target)
	}
	return f.Target
}
