package render

import (
	"github.com/lixenwraith/circle-art/terminal"
)

// FrameBuffer is a fixed-size row-major grid of cells
// Backed by []terminal.Cell so present hands the slice over without copying
type FrameBuffer struct {
	cells  []terminal.Cell
	width  int
	height int
}

// NewFrameBuffer creates a buffer with the specified dimensions, cleared to the defaults
// Dimensions are validated by the caller; negative values are treated as zero
func NewFrameBuffer(width, height int) *FrameBuffer {
	width = max(width, 0)
	height = max(height, 0)
	b := &FrameBuffer{
		cells:  make([]terminal.Cell, width*height),
		width:  width,
		height: height,
	}
	b.Clear(terminal.GlyphEmpty, terminal.AttrDefault)
	return b
}

// Width returns the buffer width in cells
func (b *FrameBuffer) Width() int {
	return b.width
}

// Height returns the buffer height in cells
func (b *FrameBuffer) Height() int {
	return b.height
}

// Cells exposes the backing slice, row-major
// Callers must not retain it across frames
func (b *FrameBuffer) Cells() []terminal.Cell {
	return b.cells
}

// Cell returns the cell at row, col and whether the position is in bounds
func (b *FrameBuffer) Cell(row, col int) (terminal.Cell, bool) {
	if !b.inBounds(row, col) {
		return terminal.Cell{}, false
	}
	return b.cells[row*b.width+col], true
}

// Clear overwrites every cell using exponential copy
func (b *FrameBuffer) Clear(glyph rune, attr terminal.Attr) {
	if len(b.cells) == 0 {
		return
	}
	b.cells[0] = terminal.Cell{Glyph: glyph, Attr: attr}
	for filled := 1; filled < len(b.cells); filled *= 2 {
		copy(b.cells[filled:], b.cells[:filled])
	}
}

// inBounds returns true if in buffer bounds
func (b *FrameBuffer) inBounds(row, col int) bool {
	return row >= 0 && row < b.height && col >= 0 && col < b.width
}

// SetUnchecked writes a cell without bounds checking
// Caller guarantees 0 <= row < height and 0 <= col < width; out-of-range
// coordinates either panic or land on a neighbouring row
func (b *FrameBuffer) SetUnchecked(row, col int, glyph rune, attr terminal.Attr) {
	dst := &b.cells[row*b.width+col]
	dst.Glyph = glyph
	dst.Attr = attr
}

// SetClipped writes a cell, silently discarding out-of-range coordinates
func (b *FrameBuffer) SetClipped(row, col int, glyph rune, attr terminal.Attr) {
	if !b.inBounds(row, col) {
		return
	}
	dst := &b.cells[row*b.width+col]
	dst.Glyph = glyph
	dst.Attr = attr
}

// Present pushes the whole buffer to the surface in one update
func (b *FrameBuffer) Present(s terminal.Surface) error {
	return s.Present(b.cells, b.width, b.height)
}
