package terminal

import (
	"github.com/lucasb-eyer/go-colorful"
)

// Color is an index into the fixed 16-entry console palette
type Color uint8

// Palette entries in console order
const (
	ColorBlack Color = iota
	ColorDarkBlue
	ColorDarkGreen
	ColorDarkCyan
	ColorDarkRed
	ColorDarkMagenta
	ColorDarkYellow
	ColorGrey
	ColorDarkGrey
	ColorBlue
	ColorGreen
	ColorCyan
	ColorRed
	ColorMagenta
	ColorYellow
	ColorWhite
)

// PaletteSize is the number of addressable colors
const PaletteSize = 16

// paletteHex holds the classic console RGB values, indexed by Color
var paletteHex = [PaletteSize]string{
	"#000000", "#000080", "#008000", "#008080",
	"#800000", "#800080", "#808000", "#c0c0c0",
	"#808080", "#0000ff", "#00ff00", "#00ffff",
	"#ff0000", "#ff00ff", "#ffff00", "#ffffff",
}

var colorNames = [PaletteSize]string{
	"black", "dark_blue", "dark_green", "dark_cyan",
	"dark_red", "dark_magenta", "dark_yellow", "grey",
	"dark_grey", "blue", "green", "cyan",
	"red", "magenta", "yellow", "white",
}

// palette is parsed once from paletteHex
var palette [PaletteSize]colorful.Color

func init() {
	for i, hex := range paletteHex {
		c, err := colorful.Hex(hex)
		if err != nil {
			panic("terminal: bad palette entry " + hex)
		}
		palette[i] = c
	}
}

// RGB returns the 8-bit channels of the palette entry
// Out-of-range values wrap to the low nibble
func (c Color) RGB() (r, g, b uint8) {
	return palette[c&0x0F].RGB255()
}

// String returns the snake_case palette name
func (c Color) String() string {
	return colorNames[c&0x0F]
}

// ParseColor resolves a palette name as produced by String
func ParseColor(name string) (Color, bool) {
	for i, n := range colorNames {
		if n == name {
			return Color(i), true
		}
	}
	return 0, false
}

// Attr packs a foreground palette index (low nibble) and a background palette index (high nibble)
type Attr uint8

// AttrDefault is white on black
const AttrDefault = Attr(ColorWhite)

// NewAttr packs fg and bg into an attribute
func NewAttr(fg, bg Color) Attr {
	return Attr(bg&0x0F)<<4 | Attr(fg&0x0F)
}

// Attr returns the color as a foreground on black
func (c Color) Attr() Attr {
	return NewAttr(c, ColorBlack)
}

// On returns the color as a foreground over bg
func (c Color) On(bg Color) Attr {
	return NewAttr(c, bg)
}

// Fg returns the foreground palette index
func (a Attr) Fg() Color {
	return Color(a & 0x0F)
}

// Bg returns the background palette index
func (a Attr) Bg() Color {
	return Color(a>>4) & 0x0F
}

// PackRGB builds a 12-bit console word from 4-bit channels: r in bits 8-11, g in 4-7, b in 0-3
func PackRGB(r, g, b int) uint16 {
	var word uint16
	word |= uint16(r&0xF) << 8
	word |= uint16(g&0xF) << 4
	word |= uint16(b & 0xF)
	return word
}
