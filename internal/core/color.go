package core

// Color represents a foreground color for a screen glyph.
// Values map to ANSI colors in the platform renderer.
type Color uint8

// Base palette.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// Roles used by the board renderer.
const (
	ColorSnakeHead = ColorBrightGreen
	ColorSnakeBody = ColorGreen
	ColorFood      = ColorBrightRed
	ColorBorder    = ColorGray
	ColorHUD       = ColorBrightWhite
	ColorTitle     = ColorBrightYellow
	ColorAlert     = ColorOrange
)
