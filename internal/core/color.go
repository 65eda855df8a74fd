package core

// Color is a logical foreground color for a screen cell.
// The platform layer maps it to terminal colors.
type Color uint8

const (
	ColorDefault Color = iota
	ColorGray
	ColorWhite
	ColorYellow
	ColorOrange
	ColorRed
	ColorMagenta
	ColorBlue
	ColorCyan
	ColorGreen
	ColorBrightYellow
	ColorBrightWhite
)
