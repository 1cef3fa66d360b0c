package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/lixenwraith/circle-art/terminal"
)

// Snapshot cell geometry, matches basicfont.Face7x13
const (
	SnapshotCellWidth  = 7
	SnapshotCellHeight = 13
)

// Snapshot rasterizes the buffer into an RGBA image, one 7x13 tile per cell
// Block glyphs are filled solid; other glyphs are drawn with basicfont
func (b *FrameBuffer) Snapshot() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, b.width*SnapshotCellWidth, b.height*SnapshotCellHeight))
	face := basicfont.Face7x13

	drawer := &font.Drawer{
		Dst:  img,
		Face: face,
	}

	for row := 0; row < b.height; row++ {
		for col := 0; col < b.width; col++ {
			c := b.cells[row*b.width+col]
			tile := image.Rect(
				col*SnapshotCellWidth, row*SnapshotCellHeight,
				(col+1)*SnapshotCellWidth, (row+1)*SnapshotCellHeight,
			)

			bg := paletteRGBA(c.Attr.Bg())
			fg := paletteRGBA(c.Attr.Fg())

			if isBlockGlyph(c.Glyph) {
				draw.Draw(img, tile, image.NewUniform(fg), image.Point{}, draw.Src)
				continue
			}
			draw.Draw(img, tile, image.NewUniform(bg), image.Point{}, draw.Src)

			if c.Glyph == terminal.GlyphEmpty || c.Glyph == 0 {
				continue
			}
			drawer.Src = image.NewUniform(fg)
			drawer.Dot = fixed.P(tile.Min.X, tile.Min.Y+face.Ascent)
			drawer.DrawString(string(c.Glyph))
		}
	}
	return img
}

// WritePNG encodes the buffer snapshot as PNG
func (b *FrameBuffer) WritePNG(w io.Writer) error {
	if err := png.Encode(w, b.Snapshot()); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return nil
}

func paletteRGBA(c terminal.Color) color.RGBA {
	r, g, b := c.RGB()
	return color.RGBA{R: r, G: g, B: b, A: 0xFF}
}

// isBlockGlyph reports full-block style glyphs basicfont has no shape for
func isBlockGlyph(r rune) bool {
	switch r {
	case terminal.GlyphFull, '▓', '■':
		return true
	}
	return false
}
