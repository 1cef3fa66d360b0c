package scene

import (
	"time"

	"github.com/lixenwraith/circle-art/engine"
)

// Bounded stops the wrapped scene after Limit of elapsed time or once Stop reports true
// A zero Limit and nil Stop run until the inner scene stops itself
type Bounded struct {
	Scene engine.Scene
	Limit time.Duration
	Stop  func() bool

	canvas engine.Canvas
}

// Start records the canvas and starts the inner scene
func (b *Bounded) Start(c engine.Canvas) bool {
	b.canvas = c
	return b.Scene.Start(c)
}

// Update runs one inner frame unless a stop condition already holds
func (b *Bounded) Update(dt float64) bool {
	if b.Stop != nil && b.Stop() {
		return false
	}
	if !b.Scene.Update(dt) {
		return false
	}
	if b.Limit > 0 && b.canvas.Elapsed() >= b.Limit.Seconds() {
		return false
	}
	return true
}
