package terminal

import (
	"fmt"
	"strings"

	"github.com/muesli/termenv"
)

// ColorMode selects how palette entries reach the terminal
type ColorMode uint8

const (
	ColorModePalette   ColorMode = iota // terminal's own 16 named colors
	ColorModeTrueColor                  // exact palette RGB
)

// String returns the config spelling of the mode
func (m ColorMode) String() string {
	if m == ColorModeTrueColor {
		return "truecolor"
	}
	return "palette"
}

// DetectColorMode determines terminal color capability from environment
func DetectColorMode() ColorMode {
	if termenv.EnvColorProfile() == termenv.TrueColor {
		return ColorModeTrueColor
	}
	return ColorModePalette
}

// ParseColorMode resolves a config or flag value; "auto" and "" defer to DetectColorMode
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return DetectColorMode(), nil
	case "palette", "16", "ansi", "256":
		return ColorModePalette, nil
	case "truecolor", "true", "24bit":
		return ColorModeTrueColor, nil
	}
	return 0, fmt.Errorf("unknown color mode %q", s)
}
