package t2048

import "unicode"

// Direction represents a move direction.
type Direction int

const (
	DirNone Direction = iota
	DirUp
	DirDown
	DirLeft
	DirRight
)

// String returns a human-readable name for the direction.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "none"
	}
}

// ParseDirection maps a w/a/s/d token (either case) to a direction.
// Any other token yields DirNone and false.
func ParseDirection(token rune) (Direction, bool) {
	switch unicode.ToLower(token) {
	case 'w':
		return DirUp, true
	case 'a':
		return DirLeft, true
	case 's':
		return DirDown, true
	case 'd':
		return DirRight, true
	default:
		return DirNone, false
	}
}
