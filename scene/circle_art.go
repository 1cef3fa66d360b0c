// Package scene holds the animated scenes driven by the engine
package scene

import (
	"math"

	"github.com/lixenwraith/circle-art/constants"
	"github.com/lixenwraith/circle-art/engine"
	"github.com/lixenwraith/circle-art/terminal"
)

// Ellipse is an oscillating outline anchored at a fixed position
// Position along the column axis is anchorCol + sin((t+Offset)*Period)*Scale
type Ellipse struct {
	AnchorCol float64
	AnchorRow float64
	Period    float64
	Scale     float64
	Offset    float64
	RadiusX   int // Columns
	RadiusY   int // Rows
}

// step returns the animation phase at time t
func (e Ellipse) step(t float64) float64 {
	return (t + e.Offset) * e.Period
}

// Ball describes an orbiting ball
type Ball struct {
	Period float64
	Scale  float64
	Offset float64
	Radius int
}

// Options tunes the CircleArt scene
type Options struct {
	Rings         int     // Mirrored ring pairs
	Period        float64 // Ring oscillation frequency
	Scale         float64 // Ring oscillation amplitude in columns
	PhaseStep     float64 // Phase offset between consecutive rings
	ColorDuration float64 // Phase units per color in the cycle
	Balls         []Ball
	Glyph         rune
	Background    terminal.Attr
}

// DefaultOptions reproduces the classic CircleArt layout
func DefaultOptions() Options {
	return Options{
		Rings:         constants.DefaultRings,
		Period:        constants.DefaultPeriod,
		Scale:         constants.DefaultScale,
		PhaseStep:     constants.DefaultPhaseStep,
		ColorDuration: constants.DefaultColorDuration,
		Balls: []Ball{
			{Period: constants.DefaultBallPeriod, Scale: constants.DefaultBallScale, Offset: 0.06, Radius: 4},
			{Period: constants.DefaultBallPeriod, Scale: constants.DefaultBallScale, Offset: 0.00, Radius: 2},
		},
		Glyph:      terminal.GlyphFull,
		Background: terminal.AttrDefault,
	}
}

// ColorOrder is the cycle colors step through
var ColorOrder = []terminal.Color{
	terminal.ColorYellow, terminal.ColorDarkYellow,
	terminal.ColorRed, terminal.ColorDarkRed,
	terminal.ColorDarkMagenta, terminal.ColorMagenta,
	terminal.ColorDarkBlue, terminal.ColorBlue,
	terminal.ColorDarkCyan, terminal.ColorCyan,
	terminal.ColorGreen, terminal.ColorDarkGreen,
}

// CircleArt draws mirrored oscillating ellipse rings with balls swinging between the innermost pair
// All motion is a function of the canvas elapsed time
type CircleArt struct {
	opts     Options
	canvas   engine.Canvas
	ellipses []Ellipse
	balls    []Ellipse
}

// NewCircleArt creates the scene; layout is computed in Start from the canvas size
func NewCircleArt(opts Options) *CircleArt {
	return &CircleArt{opts: opts}
}

// Start lays out rings and balls for the canvas dimensions
func (s *CircleArt) Start(c engine.Canvas) bool {
	s.canvas = c
	w := float64(c.Width())
	h := float64(c.Height())

	s.ellipses = s.ellipses[:0]
	for i := 0; i < s.opts.Rings; i++ {
		fi := float64(i)
		left := Ellipse{
			AnchorCol: 10 + w*0.025*fi,
			AnchorRow: h * 0.5,
			Period:    s.opts.Period,
			Scale:     s.opts.Scale,
			Offset:    s.opts.PhaseStep * fi,
			RadiusX:   int(w * 0.01 * fi),
			RadiusY:   int(h * 0.05 * fi),
		}
		right := left
		right.AnchorCol = w - left.AnchorCol
		right.Offset = left.Offset + math.Pi*0.5*s.opts.Scale
		s.ellipses = append(s.ellipses, left, right)
	}

	s.balls = s.balls[:0]
	for _, b := range s.opts.Balls {
		s.balls = append(s.balls, Ellipse{
			AnchorCol: w * 0.5,
			AnchorRow: h * 0.5,
			Period:    b.Period,
			Scale:     b.Scale,
			Offset:    b.Offset,
			RadiusX:   b.Radius,
			RadiusY:   b.Radius,
		})
	}
	return true
}

// Update redraws the whole scene for the current elapsed time
func (s *CircleArt) Update(dt float64) bool {
	c := s.canvas
	t := c.Elapsed()
	c.ClearScreen(terminal.GlyphEmpty, s.opts.Background)

	for i, e := range s.ellipses {
		col := int(e.AnchorCol + math.Sin(e.step(t))*e.Scale)
		row := int(e.AnchorRow)

		// Right rings take their color from the left partner so pairs match
		partner := e
		if i%2 == 1 {
			partner = s.ellipses[i-1]
		}
		c.DrawEllipse(e.RadiusX, e.RadiusY, row, col, s.opts.Glyph, s.colorAt(partner.step(t)))
	}

	for _, b := range s.balls {
		step := b.step(t)
		col := int(math.Sin(step) * b.Scale)
		// Swing around whichever inner ring lies on that side
		if n := len(s.ellipses); n >= 2 {
			if col >= 0 {
				col += int(s.ellipses[n-2].AnchorCol)
			} else {
				col += int(s.ellipses[n-1].AnchorCol)
			}
		} else {
			col += int(b.AnchorCol)
		}
		c.DrawEllipse(b.RadiusX, b.RadiusY, int(b.AnchorRow), col, s.opts.Glyph, s.colorAt(step))
	}

	return c.Render() == nil
}

// colorAt picks the cycle color for an animation phase
func (s *CircleArt) colorAt(step float64) terminal.Attr {
	if s.opts.ColorDuration <= 0 {
		return ColorOrder[0].On(s.opts.Background.Bg())
	}
	idx := int(step/s.opts.ColorDuration) % len(ColorOrder)
	if idx < 0 {
		idx += len(ColorOrder)
	}
	return ColorOrder[idx].On(s.opts.Background.Bg())
}

// Ellipses returns the laid-out rings, left and right interleaved
func (s *CircleArt) Ellipses() []Ellipse {
	return s.ellipses
}
