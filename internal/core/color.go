package core

// Color is the foreground color of a screen cell.
// Values map onto ANSI 256-color codes in the platform renderer.
type Color uint8

// Palette used by the game and its menus.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
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

// Semantic aliases so game code reads by role rather than by hue.
const (
	ColorPipeBody  = ColorGreen
	ColorPipeCap   = ColorBrightGreen
	ColorBird      = ColorBrightYellow
	ColorBirdWing  = ColorOrange
	ColorScore     = ColorBrightWhite
	ColorButton    = ColorGreen
	ColorButtonHot = ColorBrightGreen
	ColorHint      = ColorGray
)
