package engine

import (
	"github.com/lixenwraith/circle-art/terminal"
)

// Canvas is the drawing surface exposed to scenes
type Canvas interface {
	ClearScreen(glyph rune, attr terminal.Attr)
	SetPixel(row, col int, glyph rune, attr terminal.Attr)
	SetPixelClipped(row, col int, glyph rune, attr terminal.Attr)
	DrawEllipse(radiusX, radiusY, centerRow, centerCol int, glyph rune, attr terminal.Attr)
	Render() error

	// Elapsed returns total frame time in seconds, for phase-locking animation to wall time
	Elapsed() float64
	Width() int
	Height() int
}

// Scene supplies the per-run hooks the engine drives
type Scene interface {
	// Start is called exactly once before the first Update; false aborts the run
	Start(c Canvas) bool

	// Update is called every frame with dt in seconds; false stops the loop
	Update(dt float64) bool
}

// SceneFuncs adapts a pair of functions to Scene
type SceneFuncs struct {
	StartFunc  func(c Canvas) bool
	UpdateFunc func(dt float64) bool
}

// Start calls StartFunc, succeeding when it is nil
func (s SceneFuncs) Start(c Canvas) bool {
	if s.StartFunc == nil {
		return true
	}
	return s.StartFunc(c)
}

// Update calls UpdateFunc, stopping when it is nil
func (s SceneFuncs) Update(dt float64) bool {
	if s.UpdateFunc == nil {
		return false
	}
	return s.UpdateFunc(dt)
}
