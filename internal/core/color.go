package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for arena elements.
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
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
	ColorPurple
	ColorDarkRed
)

// ParseColor maps a config color name to a Color.
// Unknown names map to ColorDefault.
func ParseColor(name string) Color {
	switch name {
	case "red":
		return ColorRed
	case "green":
		return ColorGreen
	case "yellow":
		return ColorYellow
	case "blue":
		return ColorBlue
	case "magenta":
		return ColorMagenta
	case "cyan":
		return ColorCyan
	case "white":
		return ColorWhite
	case "orange":
		return ColorOrange
	case "gray":
		return ColorGray
	case "purple":
		return ColorPurple
	case "dark_red":
		return ColorDarkRed
	case "bright_yellow":
		return ColorBrightYellow
	default:
		return ColorDefault
	}
}
