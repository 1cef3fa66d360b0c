package terminal

import (
	"fmt"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"
)

// tcellPalette maps console palette order onto tcell's named colors
var tcellPalette = [PaletteSize]tcell.Color{
	ColorBlack:       tcell.ColorBlack,
	ColorDarkBlue:    tcell.ColorNavy,
	ColorDarkGreen:   tcell.ColorGreen,
	ColorDarkCyan:    tcell.ColorTeal,
	ColorDarkRed:     tcell.ColorMaroon,
	ColorDarkMagenta: tcell.ColorPurple,
	ColorDarkYellow:  tcell.ColorOlive,
	ColorGrey:        tcell.ColorSilver,
	ColorDarkGrey:    tcell.ColorGray,
	ColorBlue:        tcell.ColorBlue,
	ColorGreen:       tcell.ColorLime,
	ColorCyan:        tcell.ColorAqua,
	ColorRed:         tcell.ColorRed,
	ColorMagenta:     tcell.ColorFuchsia,
	ColorYellow:      tcell.ColorYellow,
	ColorWhite:       tcell.ColorWhite,
}

// TcellSurface presents frames through a tcell.Screen
type TcellSurface struct {
	screen tcell.Screen
	mode   ColorMode
	styles [256]tcell.Style // One per packed Attr
	closed atomic.Bool
	inited bool
}

// NewTcellSurface creates a surface on the process terminal
func NewTcellSurface(mode ColorMode) (*TcellSurface, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	return NewTcellSurfaceFromScreen(screen, mode), nil
}

// NewTcellSurfaceFromScreen wraps an existing, uninitialized screen
// Tests pass tcell.NewSimulationScreen here
func NewTcellSurfaceFromScreen(screen tcell.Screen, mode ColorMode) *TcellSurface {
	s := &TcellSurface{
		screen: screen,
		mode:   mode,
	}
	for i := range s.styles {
		s.styles[i] = s.styleFor(Attr(i))
	}
	return s
}

// Init enters the alternate screen and hides the cursor
func (s *TcellSurface) Init() error {
	if s.closed.Load() {
		return ErrSurfaceClosed
	}
	if s.inited {
		return nil
	}
	if err := s.screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	s.inited = true
	s.screen.HideCursor()
	s.screen.SetStyle(s.styles[AttrDefault])
	s.screen.Clear()
	return nil
}

// Fini restores terminal state. Safe to call multiple times
func (s *TcellSurface) Fini() {
	if !s.closed.CompareAndSwap(false, true) {
		return
	}
	if s.inited {
		s.screen.Fini()
	}
}

// Size returns current screen dimensions
func (s *TcellSurface) Size() (width, height int) {
	return s.screen.Size()
}

// ColorMode returns the active color output mode
func (s *TcellSurface) ColorMode() ColorMode {
	return s.mode
}

// Present writes cells into tcell's back buffer and shows them in one flush
// Cells beyond the current screen size are clipped by tcell
func (s *TcellSurface) Present(cells []Cell, width, height int) error {
	if s.closed.Load() || !s.inited {
		return ErrSurfaceClosed
	}
	if err := CheckCells(cells, width, height); err != nil {
		return err
	}

	for row := 0; row < height; row++ {
		base := row * width
		for col := 0; col < width; col++ {
			c := cells[base+col]
			s.screen.SetContent(col, row, c.Glyph, nil, s.styles[c.Attr])
		}
	}
	s.screen.Show()
	return nil
}

// SetTitle updates the terminal window title
func (s *TcellSurface) SetTitle(title string) {
	if s.closed.Load() || !s.inited {
		return
	}
	s.screen.SetTitle(title)
}

// PollEvent blocks until the next terminal event; returns nil after Fini
func (s *TcellSurface) PollEvent() tcell.Event {
	return s.screen.PollEvent()
}

// Style returns the tcell style a packed attribute is rendered with
func (s *TcellSurface) Style(a Attr) tcell.Style {
	return s.styles[a]
}

func (s *TcellSurface) styleFor(a Attr) tcell.Style {
	return tcell.StyleDefault.
		Foreground(s.color(a.Fg())).
		Background(s.color(a.Bg()))
}

func (s *TcellSurface) color(c Color) tcell.Color {
	if s.mode == ColorModeTrueColor {
		r, g, b := c.RGB()
		return tcell.NewRGBColor(int32(r), int32(g), int32(b))
	}
	return tcellPalette[c&0x0F]
}
