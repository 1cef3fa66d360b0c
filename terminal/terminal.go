package terminal

import (
	"errors"
)

// Default glyphs
const (
	GlyphEmpty = ' '
	GlyphFull  = '█'
)

var (
	// ErrSurfaceClosed is returned when presenting to a released surface
	ErrSurfaceClosed = errors.New("terminal: surface closed")

	// ErrBufferSize is returned when the cell slice does not match width*height
	ErrBufferSize = errors.New("terminal: cell count does not match dimensions")
)

// Cell represents a single terminal cell
type Cell struct {
	Glyph rune
	Attr  Attr
}

// Surface is the output sink the engine presents frames to
type Surface interface {
	// Init acquires the display. Must be called before any other method
	Init() error

	// Fini releases the display. Safe to call multiple times
	Fini()

	// Size returns the usable dimensions in cells
	Size() (width, height int)

	// Present writes the whole buffer in one update, anchored at the origin
	// Cells are row-major: cells[row*width + col]
	Present(cells []Cell, width, height int) error

	// SetTitle updates the window title where supported
	SetTitle(title string)
}

// CheckCells validates the cell slice against its claimed dimensions
func CheckCells(cells []Cell, width, height int) error {
	if width < 0 || height < 0 || len(cells) != width*height {
		return ErrBufferSize
	}
	return nil
}
