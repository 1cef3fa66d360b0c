package engine

import (
	"fmt"
	"log"
	"time"

	"github.com/lixenwraith/circle-art/render"
	"github.com/lixenwraith/circle-art/terminal"
)

// Config holds engine construction parameters
type Config struct {
	Title string

	// Width and Height of the frame buffer; 0 takes the surface dimension
	Width, Height int

	// FrameInterval paces the loop; 0 runs uncapped
	FrameInterval time.Duration

	// ShowFPS writes "<Title> FPS: n" to the surface title every frame
	ShowFPS bool

	// Clock drives the loop; nil uses the monotonic system clock
	Clock Clock
}

// Engine owns the frame buffer, the loop and the acquired surface
type Engine struct {
	title   string
	showFPS bool

	surface terminal.Surface
	buffer  *render.FrameBuffer
	loop    *Loop

	err    error // First present failure, fatal to the run
	closed bool
}

// New acquires the surface and allocates the frame buffer
// On error the surface has already been released
func New(surface terminal.Surface, cfg Config) (*Engine, error) {
	if cfg.Width < 0 || cfg.Height < 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, cfg.Width, cfg.Height)
	}

	if err := surface.Init(); err != nil {
		return nil, fmt.Errorf("acquire surface: %w", err)
	}

	sw, sh := surface.Size()
	width, height := cfg.Width, cfg.Height
	if width == 0 {
		width = sw
	}
	if height == 0 {
		height = sh
	}

	if width <= 0 || height <= 0 {
		surface.Fini()
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if width > sw || height > sh {
		surface.Fini()
		return nil, fmt.Errorf("%w: need %dx%d, have %dx%d", ErrSurfaceTooSmall, width, height, sw, sh)
	}

	e := &Engine{
		title:   cfg.Title,
		showFPS: cfg.ShowFPS,
		surface: surface,
		buffer:  render.NewFrameBuffer(width, height),
		loop:    NewLoop(cfg.Clock, cfg.FrameInterval),
	}
	if e.title != "" {
		surface.SetTitle(e.title)
	}
	return e, nil
}

// Run drives the scene until Update returns false or a present fails
// The surface is released when Run returns, including on panic
func (e *Engine) Run(scene Scene) error {
	defer e.Close()

	log.Printf("engine: %q running %dx%d, interval %v", e.title, e.buffer.Width(), e.buffer.Height(), e.loop.Interval())

	err := e.loop.Run(
		func() bool { return scene.Start(e) },
		func(dt float64) bool {
			ok := scene.Update(dt)
			if e.err != nil {
				return false
			}
			if e.showFPS && dt > 0 {
				e.surface.SetTitle(fmt.Sprintf("%s FPS: %3.2f", e.title, 1/dt))
			}
			return ok
		},
	)

	log.Printf("engine: stopped after %d frames, %v elapsed", e.loop.Frames(), e.loop.TotalElapsed())

	if err != nil {
		return err
	}
	return e.err
}

// Close releases the surface. Safe to call multiple times
func (e *Engine) Close() {
	if e.closed {
		return
	}
	e.closed = true
	e.surface.Fini()
}

// ===== CANVAS API =====

// ClearScreen overwrites every cell
func (e *Engine) ClearScreen(glyph rune, attr terminal.Attr) {
	e.buffer.Clear(glyph, attr)
}

// SetPixel writes a cell without bounds checking; row and col must be in range
func (e *Engine) SetPixel(row, col int, glyph rune, attr terminal.Attr) {
	e.buffer.SetUnchecked(row, col, glyph, attr)
}

// SetPixelClipped writes a cell, ignoring out-of-range coordinates
func (e *Engine) SetPixelClipped(row, col int, glyph rune, attr terminal.Attr) {
	e.buffer.SetClipped(row, col, glyph, attr)
}

// DrawEllipse plots an ellipse outline; radiusX spans columns, radiusY spans rows
func (e *Engine) DrawEllipse(radiusX, radiusY, centerRow, centerCol int, glyph rune, attr terminal.Attr) {
	render.DrawEllipse(e.buffer, radiusX, radiusY, centerRow, centerCol, glyph, attr)
}

// Render presents the buffer
// After the first failure every call returns the same error without touching the surface
func (e *Engine) Render() error {
	if e.err != nil {
		return e.err
	}
	if err := e.buffer.Present(e.surface); err != nil {
		e.err = fmt.Errorf("present frame %d: %w", e.loop.Frames(), err)
		log.Printf("engine: %v", e.err)
		return e.err
	}
	return nil
}

// Elapsed returns total frame time in seconds
func (e *Engine) Elapsed() float64 {
	return e.loop.Elapsed()
}

// TotalElapsed returns total frame time
func (e *Engine) TotalElapsed() time.Duration {
	return e.loop.TotalElapsed()
}

// Width returns the buffer width
func (e *Engine) Width() int {
	return e.buffer.Width()
}

// Height returns the buffer height
func (e *Engine) Height() int {
	return e.buffer.Height()
}

// ===== INSPECTION =====

// Title returns the configured title
func (e *Engine) Title() string {
	return e.title
}

// State returns the loop state
func (e *Engine) State() LoopState {
	return e.loop.State()
}

// Frames returns the number of updates issued
func (e *Engine) Frames() uint64 {
	return e.loop.Frames()
}

// Buffer exposes the frame buffer for read-only inspection, e.g. snapshots after Run
func (e *Engine) Buffer() *render.FrameBuffer {
	return e.buffer
}
