package render

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/lixenwraith/circle-art/terminal"
)

func TestSnapshotGeometryAndFill(t *testing.T) {
	buf := NewFrameBuffer(3, 2)
	buf.SetClipped(0, 1, terminal.GlyphFull, terminal.ColorYellow.Attr())
	buf.SetClipped(1, 2, 'A', terminal.ColorWhite.On(terminal.ColorDarkBlue))

	img := buf.Snapshot()
	bounds := img.Bounds()
	if bounds.Dx() != 3*SnapshotCellWidth || bounds.Dy() != 2*SnapshotCellHeight {
		t.Fatalf("Unexpected snapshot size %v", bounds)
	}

	yellow := color.RGBA{R: 255, G: 255, B: 0, A: 255}
	black := color.RGBA{A: 255}
	navy := color.RGBA{B: 128, A: 255}

	// Full block fills its tile with foreground
	for y := 0; y < SnapshotCellHeight; y++ {
		for x := SnapshotCellWidth; x < 2*SnapshotCellWidth; x++ {
			if got := img.RGBAAt(x, y); got != yellow {
				t.Fatalf("Block tile pixel (%d,%d) = %v", x, y, got)
			}
		}
	}

	// Empty cell is pure background
	for y := 0; y < SnapshotCellHeight; y++ {
		for x := 0; x < SnapshotCellWidth; x++ {
			if got := img.RGBAAt(x, y); got != black {
				t.Fatalf("Empty tile pixel (%d,%d) = %v", x, y, got)
			}
		}
	}

	// Text cell keeps its background at the tile corner and has some ink
	x0, y0 := 2*SnapshotCellWidth, SnapshotCellHeight
	if got := img.RGBAAt(x0, y0); got != navy {
		t.Errorf("Text tile corner = %v, want navy background", got)
	}
	ink := false
	for y := y0; y < y0+SnapshotCellHeight && !ink; y++ {
		for x := x0; x < x0+SnapshotCellWidth; x++ {
			if img.RGBAAt(x, y) != navy {
				ink = true
				break
			}
		}
	}
	if !ink {
		t.Error("Expected glyph pixels in text tile")
	}
}

func TestWritePNG(t *testing.T) {
	buf := NewFrameBuffer(4, 4)
	DrawEllipse(buf, 1, 1, 2, 2, terminal.GlyphFull, terminal.ColorRed.Attr())

	var out bytes.Buffer
	if err := buf.WritePNG(&out); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}

	img, err := png.Decode(&out)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if img.Bounds().Dx() != 4*SnapshotCellWidth {
		t.Errorf("Unexpected decoded width %d", img.Bounds().Dx())
	}
}
