package engine

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/lixenwraith/circle-art/terminal"
)

// fakeSurface records every present and lifecycle call
type fakeSurface struct {
	width, height int
	initErr       error
	failAfter     int // Present fails once this many frames were accepted, <0 never
	inits, finis  int
	frames        [][]terminal.Cell
	titles        []string
}

func newFakeSurface(width, height int) *fakeSurface {
	return &fakeSurface{width: width, height: height, failAfter: -1}
}

func (s *fakeSurface) Init() error {
	s.inits++
	return s.initErr
}

func (s *fakeSurface) Fini() { s.finis++ }

func (s *fakeSurface) Size() (int, int) { return s.width, s.height }

func (s *fakeSurface) SetTitle(title string) { s.titles = append(s.titles, title) }

func (s *fakeSurface) Present(cells []terminal.Cell, width, height int) error {
	if s.finis > 0 {
		return terminal.ErrSurfaceClosed
	}
	if s.failAfter >= 0 && len(s.frames) >= s.failAfter {
		return errors.New("write rejected")
	}
	if err := terminal.CheckCells(cells, width, height); err != nil {
		return err
	}
	s.frames = append(s.frames, append([]terminal.Cell(nil), cells...))
	return nil
}

func (s *fakeSurface) lastFrame() []terminal.Cell {
	if len(s.frames) == 0 {
		return nil
	}
	return s.frames[len(s.frames)-1]
}

func TestNewUsesSurfaceSize(t *testing.T) {
	surface := newFakeSurface(40, 20)
	e, err := New(surface, Config{Title: "test", Clock: NewMockClock(epoch)})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer e.Close()

	if e.Width() != 40 || e.Height() != 20 {
		t.Errorf("Expected 40x20, got %dx%d", e.Width(), e.Height())
	}
	if surface.inits != 1 {
		t.Errorf("Expected surface acquired once, got %d", surface.inits)
	}
	if len(surface.titles) == 0 || surface.titles[0] != "test" {
		t.Errorf("Expected initial title, got %v", surface.titles)
	}
	if e.State() != StateUninitialized {
		t.Errorf("Expected uninitialized, got %v", e.State())
	}
}

func TestNewExplicitSize(t *testing.T) {
	surface := newFakeSurface(40, 20)
	e, err := New(surface, Config{Width: 21, Height: 21, Clock: NewMockClock(epoch)})
	if err == nil {
		e.Close()
		t.Fatal("Expected 21 rows on a 20-row surface to fail")
	}
	if !errors.Is(err, ErrSurfaceTooSmall) {
		t.Errorf("Expected ErrSurfaceTooSmall, got %v", err)
	}
	if surface.finis != 1 {
		t.Errorf("Expected surface released on failed construction, got %d", surface.finis)
	}

	surface = newFakeSurface(40, 20)
	e, err = New(surface, Config{Width: 21, Height: 11})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer e.Close()
	if e.Width() != 21 || e.Height() != 11 {
		t.Errorf("Expected 21x11, got %dx%d", e.Width(), e.Height())
	}
}

func TestNewConstructionFailures(t *testing.T) {
	tests := []struct {
		name    string
		surface *fakeSurface
		cfg     Config
		want    error
	}{
		{"negative width", newFakeSurface(10, 10), Config{Width: -1}, ErrInvalidDimensions},
		{"negative height", newFakeSurface(10, 10), Config{Height: -5}, ErrInvalidDimensions},
		{"empty surface", newFakeSurface(0, 0), Config{}, ErrInvalidDimensions},
		{"too small", newFakeSurface(10, 10), Config{Width: 11, Height: 5}, ErrSurfaceTooSmall},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.surface, tt.cfg); !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
		})
	}

	failing := newFakeSurface(10, 10)
	failing.initErr = errors.New("no tty")
	if _, err := New(failing, Config{}); err == nil || !strings.Contains(err.Error(), "no tty") {
		t.Errorf("Expected wrapped init error, got %v", err)
	}
}

func TestRunLifecycle(t *testing.T) {
	surface := newFakeSurface(21, 21)
	e, err := New(surface, Config{Title: "circles", FrameInterval: 10 * time.Millisecond, Clock: NewMockClock(epoch)})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	starts := 0
	var canvas Canvas
	scene := SceneFuncs{
		StartFunc: func(c Canvas) bool {
			starts++
			canvas = c
			return true
		},
		UpdateFunc: func(dt float64) bool {
			canvas.ClearScreen(terminal.GlyphEmpty, terminal.AttrDefault)
			canvas.DrawEllipse(4, 4, 10, 10, '#', terminal.ColorWhite.Attr())
			if err := canvas.Render(); err != nil {
				t.Errorf("Render: %v", err)
			}
			return canvas.Elapsed() < 0.05
		},
	}

	if err := e.Run(scene); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if starts != 1 {
		t.Errorf("Expected one start, got %d", starts)
	}
	if e.State() != StateStopped {
		t.Errorf("Expected stopped, got %v", e.State())
	}
	// Frames at 0, 10, ... 50ms
	if len(surface.frames) != 6 {
		t.Errorf("Expected 6 presented frames, got %d", len(surface.frames))
	}
	if surface.finis != 1 {
		t.Errorf("Expected surface released once, got %d", surface.finis)
	}

	e.Close()
	if surface.finis != 1 {
		t.Errorf("Close after Run must not release twice, got %d", surface.finis)
	}

	// Idempotent redraw: every frame identical
	for i := 1; i < len(surface.frames); i++ {
		for j := range surface.frames[i] {
			if surface.frames[i][j] != surface.frames[0][j] {
				t.Fatalf("Frame %d differs from frame 0 at cell %d", i, j)
			}
		}
	}

	if err := e.Run(scene); !errors.Is(err, ErrAlreadyStarted) {
		t.Errorf("Expected ErrAlreadyStarted on second run, got %v", err)
	}
}

func TestRunSceneStartDeclined(t *testing.T) {
	surface := newFakeSurface(10, 10)
	e, _ := New(surface, Config{Clock: NewMockClock(epoch)})

	updated := false
	err := e.Run(SceneFuncs{
		StartFunc:  func(Canvas) bool { return false },
		UpdateFunc: func(float64) bool { updated = true; return false },
	})
	if !errors.Is(err, ErrSceneStart) {
		t.Errorf("Expected ErrSceneStart, got %v", err)
	}
	if updated {
		t.Error("Update must not run after declined start")
	}
	if len(surface.frames) != 0 {
		t.Errorf("Expected no frames, got %d", len(surface.frames))
	}
	if surface.finis != 1 {
		t.Errorf("Expected surface released, got %d", surface.finis)
	}
}

func TestRunPresentFailureIsFatal(t *testing.T) {
	surface := newFakeSurface(10, 10)
	surface.failAfter = 2
	e, _ := New(surface, Config{Clock: NewMockClock(epoch)})

	var canvas Canvas
	updates := 0
	renderErrs := 0
	err := e.Run(SceneFuncs{
		StartFunc: func(c Canvas) bool { canvas = c; return true },
		UpdateFunc: func(float64) bool {
			updates++
			canvas.SetPixel(0, 0, 'x', terminal.AttrDefault)
			if canvas.Render() != nil {
				renderErrs++
			}
			// A second render in the same frame must not reach the surface
			if canvas.Render() != nil {
				renderErrs++
			}
			return true
		},
	})

	if err == nil || !strings.Contains(err.Error(), "write rejected") {
		t.Fatalf("Expected present error from Run, got %v", err)
	}
	if updates != 2 {
		t.Errorf("Expected loop to stop on the failing frame (2 updates), got %d", updates)
	}
	if len(surface.frames) != 2 {
		t.Errorf("Expected 2 accepted frames, got %d", len(surface.frames))
	}
	if renderErrs != 2 {
		t.Errorf("Expected both renders of the failing frame to error, got %d", renderErrs)
	}
	if surface.finis != 1 {
		t.Errorf("Expected surface released, got %d", surface.finis)
	}
}

func TestRunReleasesSurfaceOnPanic(t *testing.T) {
	surface := newFakeSurface(10, 10)
	e, _ := New(surface, Config{Clock: NewMockClock(epoch)})

	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Error("Expected panic to propagate")
			}
		}()
		e.Run(SceneFuncs{
			StartFunc:  func(Canvas) bool { return true },
			UpdateFunc: func(float64) bool { panic("scene bug") },
		})
	}()

	if surface.finis != 1 {
		t.Errorf("Expected surface released after panic, got %d", surface.finis)
	}
}

func TestRunFPSTitle(t *testing.T) {
	surface := newFakeSurface(10, 10)
	e, _ := New(surface, Config{Title: "CircleArt", ShowFPS: true, FrameInterval: 20 * time.Millisecond, Clock: NewMockClock(epoch)})

	n := 0
	e.Run(SceneFuncs{UpdateFunc: func(float64) bool { n++; return n < 3 }})

	// Initial title, then one per frame with dt > 0
	want := []string{"CircleArt", "CircleArt FPS: 50.00", "CircleArt FPS: 50.00"}
	if len(surface.titles) != len(want) {
		t.Fatalf("Expected titles %v, got %v", want, surface.titles)
	}
	for i := range want {
		if surface.titles[i] != want[i] {
			t.Errorf("Title %d = %q, want %q", i, surface.titles[i], want[i])
		}
	}
}

func TestCanvasPrimitives(t *testing.T) {
	surface := newFakeSurface(5, 4)
	e, _ := New(surface, Config{Clock: NewMockClock(epoch)})
	defer e.Close()

	e.ClearScreen('.', terminal.ColorGrey.Attr())
	e.SetPixel(3, 4, 'a', terminal.ColorRed.Attr())
	e.SetPixelClipped(4, 0, 'b', terminal.ColorRed.Attr()) // row out of range
	e.SetPixelClipped(0, -1, 'c', terminal.ColorRed.Attr())
	if err := e.Render(); err != nil {
		t.Fatalf("Render: %v", err)
	}

	frame := surface.lastFrame()
	for i, c := range frame {
		switch {
		case i == 3*5+4:
			if c.Glyph != 'a' {
				t.Errorf("Expected 'a' at last cell, got %q", c.Glyph)
			}
		case c.Glyph != '.' || c.Attr != terminal.ColorGrey.Attr():
			t.Errorf("Cell %d = %+v, expected cleared", i, c)
		}
	}
}

// phaseScene draws a ball whose position depends only on elapsed time
type phaseScene struct {
	canvas Canvas
	until  time.Duration
	clock  func() time.Duration
}

func (s *phaseScene) Start(c Canvas) bool {
	s.canvas = c
	return true
}

func (s *phaseScene) Update(float64) bool {
	t := s.canvas.Elapsed()
	col := 20 + int(math.Sin(t*4)*10)
	row := 10 + int(math.Cos(t*3)*5)
	s.canvas.ClearScreen(terminal.GlyphEmpty, terminal.AttrDefault)
	s.canvas.DrawEllipse(3, 2, row, col, terminal.GlyphFull, terminal.Color(int(t*7)%terminal.PaletteSize).Attr())
	s.canvas.Render()
	return s.clock() < s.until
}

func TestFrameRateIndependence(t *testing.T) {
	run := func(interval time.Duration) ([]terminal.Cell, time.Duration, int) {
		surface := newFakeSurface(40, 20)
		e, err := New(surface, Config{FrameInterval: interval, Clock: NewMockClock(epoch)})
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		scene := &phaseScene{until: time.Second, clock: e.TotalElapsed}
		if err := e.Run(scene); err != nil {
			t.Fatalf("Run: %v", err)
		}
		return surface.lastFrame(), e.TotalElapsed(), len(surface.frames)
	}

	fine, fineTotal, fineFrames := run(10 * time.Millisecond)
	coarse, coarseTotal, coarseFrames := run(25 * time.Millisecond)

	if fineTotal != time.Second || coarseTotal != time.Second {
		t.Fatalf("Expected both runs to end at 1s, got %v and %v", fineTotal, coarseTotal)
	}
	if fineFrames == coarseFrames {
		t.Fatalf("Expected different frame counts, both %d", fineFrames)
	}
	for i := range fine {
		if fine[i] != coarse[i] {
			t.Fatalf("Final frames differ at cell %d: %+v vs %+v", i, fine[i], coarse[i])
		}
	}
}
