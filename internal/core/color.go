package core

// Color is a foreground color for a screen cell, mapped to an ANSI code by the platform.
type Color uint8

// Palette used by the playfield renderer.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorOrange
	ColorGray
)

var playerColors = [MaxPlayers]Color{ColorRed, ColorOrange, ColorYellow, ColorGreen}

// PlayerColor returns the ship color for a zero-based player number.
func PlayerColor(player int) Color {
	if player < 0 || player >= MaxPlayers {
		return ColorWhite
	}
	return playerColors[player]
}
