package core

// Color represents a foreground color for a screen cell.
// The TUI maps each value to an ANSI 256-color code.
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
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
	ColorPurple
	ColorBrightPurple
)

// Roles of game elements. The browser client uses the same scheme: green
// snake, amber food, purple while time runs backwards.
const (
	ColorSnakeHead   = ColorBrightGreen
	ColorSnakeBody   = ColorGreen
	ColorRewindHead  = ColorBrightPurple
	ColorRewindBody  = ColorPurple
	ColorCrashHead   = ColorBrightRed
	ColorFood        = ColorOrange
	ColorPortalExit  = ColorBrightMagenta
	ColorBorder      = ColorGray
	ColorRewindFrame = ColorBrightPurple
	ColorOverlay     = ColorWhite
	ColorOverlayText = ColorBrightYellow
)

var colorNames = [...]string{
	ColorDefault:       "default",
	ColorRed:           "red",
	ColorGreen:         "green",
	ColorYellow:        "yellow",
	ColorBlue:          "blue",
	ColorMagenta:       "magenta",
	ColorCyan:          "cyan",
	ColorWhite:         "white",
	ColorBrightRed:     "bright-red",
	ColorBrightGreen:   "bright-green",
	ColorBrightYellow:  "bright-yellow",
	ColorBrightBlue:    "bright-blue",
	ColorBrightMagenta: "bright-magenta",
	ColorBrightCyan:    "bright-cyan",
	ColorBrightWhite:   "bright-white",
	ColorOrange:        "orange",
	ColorGray:          "gray",
	ColorPurple:        "purple",
	ColorBrightPurple:  "bright-purple",
}

func (c Color) String() string {
	if int(c) < len(colorNames) {
		return colorNames[c]
	}
	return "unknown"
}
