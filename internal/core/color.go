package core

// Color represents a foreground color for a screen cell.
type Color uint8

// Palette used by the arena renderer.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorPurple
	ColorWhite
	ColorGray
)
