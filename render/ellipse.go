package render

import (
	"github.com/lixenwraith/circle-art/terminal"
)

// DrawEllipse plots the outline of an axis-aligned ellipse using the two-region midpoint algorithm
// radiusX is the horizontal (column) radius, radiusY the vertical (row) radius
// Decision terms are float accumulators, coordinates stay integral; all writes are clipped
func DrawEllipse(b *FrameBuffer, radiusX, radiusY, centerRow, centerCol int, glyph rune, attr terminal.Attr) {
	radiusX = abs(radiusX)
	radiusY = abs(radiusY)

	// Flat ellipse: region 2 would stop after the center cell
	if radiusY == 0 && radiusX > 0 {
		for x := -radiusX; x <= radiusX; x++ {
			b.SetClipped(centerRow, centerCol+x, glyph, attr)
		}
		return
	}

	rx2 := float64(radiusX * radiusX)
	ry2 := float64(radiusY * radiusY)

	x, y := 0, radiusY

	// Region 1: |slope| <= 1, x advances every step
	d1 := ry2 - rx2*float64(radiusY) + 0.25*rx2
	dx := 2 * ry2 * float64(x)
	dy := 2 * rx2 * float64(y)

	for dx < dy {
		plotSymmetric(b, x, y, centerRow, centerCol, glyph, attr)
		x++
		dx += 2 * ry2
		if d1 < 0 {
			d1 += dx + ry2
		} else {
			y--
			dy -= 2 * rx2
			d1 += dx - dy + ry2
		}
	}

	// Region 2: y decreases every step until the horizontal vertices
	fx := float64(x) + 0.5
	fy := float64(y - 1)
	d2 := ry2*fx*fx + rx2*fy*fy - rx2*ry2

	for y >= 0 {
		plotSymmetric(b, x, y, centerRow, centerCol, glyph, attr)
		y--
		dy -= 2 * rx2
		if d2 > 0 {
			d2 += rx2 - dy
		} else {
			x++
			dx += 2 * ry2
			d2 += dx - dy + rx2
		}
	}
}

// plotSymmetric writes the four reflections of (x, y) about the center
// x offsets columns, y offsets rows
func plotSymmetric(b *FrameBuffer, x, y, centerRow, centerCol int, glyph rune, attr terminal.Attr) {
	b.SetClipped(centerRow+y, centerCol+x, glyph, attr)
	b.SetClipped(centerRow+y, centerCol-x, glyph, attr)
	b.SetClipped(centerRow-y, centerCol+x, glyph, attr)
	b.SetClipped(centerRow-y, centerCol-x, glyph, attr)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
