package core

// Color represents a foreground color for a screen cell.
// Rendered with ANSI 256-color codes by the terminal layer.
type Color uint8

// Colors used by the board and the HUD. Bright variants mark
// highlighted blocks.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)
