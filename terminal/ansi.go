package terminal

import (
	"bufio"
)

// Pre-allocated ANSI sequence fragments (avoid allocations during present)
var (
	csi      = []byte("\x1b[")
	csiClear = []byte("\x1b[2J\x1b[H")

	csiCursorHide = []byte("\x1b[?25l")

	csiAltScreenEnter = []byte("\x1b[?1049h")
	// ?7l keeps the cursor at the right edge so writing the bottom-right corner does not scroll
	csiAutoWrapOff = []byte("\x1b[?7l")

	oscTitle = []byte("\x1b]2;")
	bel      = byte(0x07)
)

// ansiIndex maps console palette order onto ANSI SGR color numbers (0-7 normal, 8-15 bright)
var ansiIndex = [PaletteSize]uint8{
	ColorBlack:       0,
	ColorDarkRed:     1,
	ColorDarkGreen:   2,
	ColorDarkYellow:  3,
	ColorDarkBlue:    4,
	ColorDarkMagenta: 5,
	ColorDarkCyan:    6,
	ColorGrey:        7,
	ColorDarkGrey:    8,
	ColorRed:         9,
	ColorGreen:       10,
	ColorYellow:      11,
	ColorBlue:        12,
	ColorMagenta:     13,
	ColorCyan:        14,
	ColorWhite:       15,
}

// writeInt writes an integer without allocation
func writeInt(w *bufio.Writer, n int) {
	if n < 0 {
		n = 0
	}
	if n < 10 {
		w.WriteByte(byte(n) + '0')
		return
	}
	if n < 100 {
		w.WriteByte(byte(n/10) + '0')
		w.WriteByte(byte(n%10) + '0')
		return
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte(n%10) + '0'
		n /= 10
	}
	w.Write(buf[i:])
}

// writeCursorPos writes a cursor positioning sequence (0-indexed input)
func writeCursorPos(w *bufio.Writer, row, col int) {
	w.Write(csi)
	writeInt(w, row+1)
	w.WriteByte(';')
	writeInt(w, col+1)
	w.WriteByte('H')
}

// writeSGR emits one combined color sequence for attr
func writeSGR(w *bufio.Writer, attr Attr, mode ColorMode) {
	w.Write(csi)
	w.WriteByte('0')
	if mode == ColorModeTrueColor {
		r, g, b := attr.Fg().RGB()
		w.WriteString(";38;2;")
		writeRGB(w, r, g, b)
		r, g, b = attr.Bg().RGB()
		w.WriteString(";48;2;")
		writeRGB(w, r, g, b)
	} else {
		w.WriteByte(';')
		writeInt(w, sgrColor(attr.Fg(), 30, 90))
		w.WriteByte(';')
		writeInt(w, sgrColor(attr.Bg(), 40, 100))
	}
	w.WriteByte('m')
}

func writeRGB(w *bufio.Writer, r, g, b uint8) {
	writeInt(w, int(r))
	w.WriteByte(';')
	writeInt(w, int(g))
	w.WriteByte(';')
	writeInt(w, int(b))
}

// sgrColor returns the SGR parameter for c given the normal and bright bases
func sgrColor(c Color, normal, bright int) int {
	n := int(ansiIndex[c&0x0F])
	if n < 8 {
		return normal + n
	}
	return bright + n - 8
}
