package terminal

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"golang.org/x/term"
)

// AnsiSurface writes frames as raw ANSI escape sequences, redrawing only cells that changed
// Works on any io.Writer; useful for dumb terminals, pipes and recordings
type AnsiSurface struct {
	writer *bufio.Writer
	mode   ColorMode

	width  int
	height int

	front      []Cell
	frontValid bool

	cursorRow   int
	cursorCol   int
	cursorValid bool

	lastAttr  Attr
	lastValid bool

	inited bool
	closed atomic.Bool
}

// NewAnsiSurface creates a surface of fixed size writing to w
func NewAnsiSurface(w io.Writer, width, height int, mode ColorMode) *AnsiSurface {
	return &AnsiSurface{
		writer: bufio.NewWriterSize(w, 64*1024),
		mode:   mode,
		width:  max(width, 0),
		height: max(height, 0),
	}
}

// NewAnsiTTY creates a surface on stdout sized to the terminal
func NewAnsiTTY(mode ColorMode) (*AnsiSurface, error) {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("stdout is not a terminal")
	}
	w, h, err := term.GetSize(fd)
	if err != nil {
		return nil, fmt.Errorf("query terminal size: %w", err)
	}
	return NewAnsiSurface(os.Stdout, w, h, mode), nil
}

// Init switches to the alternate screen and hides the cursor
func (s *AnsiSurface) Init() error {
	if s.closed.Load() {
		return ErrSurfaceClosed
	}
	w := s.writer
	w.Write(csiAltScreenEnter)
	w.Write(csiCursorHide)
	w.Write(csiAutoWrapOff)
	w.Write(csiClear)
	if err := w.Flush(); err != nil {
		return fmt.Errorf("write terminal setup: %w", err)
	}
	s.inited = true
	return nil
}

// Fini restores the terminal. Safe to call multiple times
func (s *AnsiSurface) Fini() {
	if s.closed.Swap(true) || !s.inited {
		return
	}
	w := s.writer
	w.Write(csiSGR0)
	w.Write(csiCursorShow)
	w.Write(csiAutoWrapOn)
	w.Write(csiAltScreenExit)
	w.Flush()
}

// Size returns the configured dimensions
func (s *AnsiSurface) Size() (int, int) {
	return s.width, s.height
}

// ColorMode reports how palette entries are emitted
func (s *AnsiSurface) ColorMode() ColorMode {
	return s.mode
}

// Present diffs cells against the previous frame and writes the changes in one flush
func (s *AnsiSurface) Present(cells []Cell, width, height int) error {
	if s.closed.Load() || !s.inited {
		return ErrSurfaceClosed
	}
	if err := CheckCells(cells, width, height); err != nil {
		return err
	}
	if width > s.width || height > s.height {
		return fmt.Errorf("%w: %dx%d exceeds surface %dx%d", ErrBufferSize, width, height, s.width, s.height)
	}

	if !s.frontValid || len(s.front) != len(cells) {
		s.front = make([]Cell, len(cells))
		s.frontValid = false
	}

	w := s.writer
	for row := 0; row < height; row++ {
		rowStart := row * width
		for col := 0; col < width; col++ {
			idx := rowStart + col
			c := cells[idx]
			if s.frontValid && c == s.front[idx] {
				continue
			}

			if !s.cursorValid || row != s.cursorRow || col != s.cursorCol {
				writeCursorPos(w, row, col)
				s.cursorRow, s.cursorCol = row, col
				s.cursorValid = true
			}
			if !s.lastValid || c.Attr != s.lastAttr {
				writeSGR(w, c.Attr, s.mode)
				s.lastAttr = c.Attr
				s.lastValid = true
			}

			g := c.Glyph
			if g == 0 {
				g = GlyphEmpty
			}
			if g < 0x80 {
				w.WriteByte(byte(g))
			} else {
				w.WriteRune(g)
			}

			s.front[idx] = c
			s.cursorCol++
		}
	}
	s.frontValid = true

	w.Write(csiSGR0)
	s.lastValid = false

	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush frame: %w", err)
	}
	return nil
}

// Invalidate forces the next Present to redraw every cell
func (s *AnsiSurface) Invalidate() {
	s.frontValid = false
	s.cursorValid = false
	s.lastValid = false
}

// SetTitle writes an OSC window title sequence
func (s *AnsiSurface) SetTitle(title string) {
	if s.closed.Load() || !s.inited {
		return
	}
	w := s.writer
	w.Write(oscTitle)
	w.WriteString(title)
	w.WriteByte(bel)
	w.Flush()
}
