package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/circle-art/config"
	"github.com/lixenwraith/circle-art/engine"
	"github.com/lixenwraith/circle-art/scene"
	"github.com/lixenwraith/circle-art/terminal"
)

const defaultConfigPath = "circle-art.toml"

var (
	configPath    = flag.String("config", defaultConfigPath, "Config file (.toml, .yaml, .yml)")
	colorModeFlag = flag.String("color", "", "Color mode: auto, palette, truecolor")
	backendFlag   = flag.String("backend", "", "Output backend: tcell, ansi")
	widthFlag     = flag.Int("width", 0, "Buffer width in cells (0 = terminal width)")
	heightFlag    = flag.Int("height", 0, "Buffer height in cells (0 = terminal height)")
	fpsFlag       = flag.Int("fps", 0, "Frame cap (0 = uncapped)")
	durationFlag  = flag.Duration("duration", 0, "Stop after this long (0 = until quit)")
	snapshotPath  = flag.String("snapshot", "", "Write the last frame as PNG to this path on exit")
	printConfig   = flag.Bool("print-config", false, "Print the effective configuration as TOML and exit")
	debugFlag     = flag.Bool("debug", false, "Write debug log to logs/")
)

func main() {
	os.Exit(run())
}

func run() (code int) {
	// Panic Recovery: Ensure terminal is reset even if the scene crashes
	defer func() {
		if r := recover(); r != nil {
			terminal.EmergencyReset(os.Stdout)
			fmt.Fprintf(os.Stderr, "\n\x1b[31mCIRCLE-ART CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			code = 2
		}
	}()

	flag.Parse()

	if logFile := setupLogging(*debugFlag); logFile != nil {
		defer logFile.Close()
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}

	if *printConfig {
		data, err := cfg.Marshal()
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			return 1
		}
		os.Stdout.Write(data)
		return 0
	}

	colorMode, err := terminal.ParseColorMode(cfg.Engine.ColorMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid color mode: %v\n", err)
		return 1
	}

	var (
		surface      terminal.Surface
		tcellSurface *terminal.TcellSurface
	)
	switch cfg.Engine.Backend {
	case config.BackendANSI:
		surface, err = terminal.NewAnsiTTY(colorMode)
	default:
		tcellSurface, err = terminal.NewTcellSurface(colorMode)
		surface = tcellSurface
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open terminal: %v\n", err)
		return 1
	}

	e, err := engine.New(surface, engineConfig(cfg))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize engine: %v\n", err)
		return 1
	}
	// Normal exit terminal cleanup; Run also releases on its way out
	defer e.Close()

	var quit atomic.Bool
	// The ansi backend reads no input; Ctrl-C arrives as SIGINT
	if tcellSurface != nil {
		watchQuitKeys(tcellSurface, &quit)
	}
	watchSignals(&quit)

	err = e.Run(&scene.Bounded{
		Scene: scene.NewCircleArt(sceneOptions(cfg)),
		Limit: time.Duration(cfg.Scene.Duration),
		Stop:  quit.Load,
	})

	if *snapshotPath != "" {
		if serr := writeSnapshot(e, *snapshotPath); serr != nil {
			fmt.Fprintf(os.Stderr, "Snapshot failed: %v\n", serr)
		}
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Run failed: %v\n", err)
		return 1
	}
	return 0
}

// loadConfig reads the config file and applies explicitly set flags on top
// The default path is optional; an explicit -config must exist
func loadConfig() (*config.Config, error) {
	explicit := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	var (
		cfg *config.Config
		err error
	)
	if explicit["config"] {
		cfg, err = config.Load(*configPath)
	} else {
		cfg, err = config.LoadOptional(*configPath)
	}
	if err != nil {
		return nil, err
	}

	applyFlags(cfg, explicit)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyFlags overrides config fields whose flag was given on the command line
func applyFlags(cfg *config.Config, explicit map[string]bool) {
	if explicit["color"] {
		cfg.Engine.ColorMode = *colorModeFlag
	}
	if explicit["backend"] {
		cfg.Engine.Backend = *backendFlag
	}
	if explicit["width"] {
		cfg.Engine.Width = *widthFlag
	}
	if explicit["height"] {
		cfg.Engine.Height = *heightFlag
	}
	if explicit["fps"] {
		cfg.Engine.FPS = *fpsFlag
	}
	if explicit["duration"] {
		cfg.Scene.Duration = config.Duration(*durationFlag)
	}
}

func engineConfig(cfg *config.Config) engine.Config {
	return engine.Config{
		Title:         cfg.Engine.Title,
		Width:         cfg.Engine.Width,
		Height:        cfg.Engine.Height,
		FrameInterval: cfg.Engine.FrameInterval(),
		ShowFPS:       cfg.Engine.ShowFPS,
	}
}

func sceneOptions(cfg *config.Config) scene.Options {
	opts := scene.Options{
		Rings:         cfg.Scene.Rings,
		Period:        cfg.Scene.Period,
		Scale:         cfg.Scene.Scale,
		PhaseStep:     cfg.Scene.PhaseStep,
		ColorDuration: cfg.Scene.ColorDuration,
		Glyph:         cfg.Engine.GlyphRune(),
		Background:    terminal.NewAttr(terminal.ColorWhite, cfg.Scene.BackgroundColor()),
	}
	for _, b := range cfg.Scene.Balls {
		opts.Balls = append(opts.Balls, scene.Ball{
			Period: b.Period,
			Scale:  b.Scale,
			Offset: b.Offset,
			Radius: b.Radius,
		})
	}
	return opts
}

// watchQuitKeys polls terminal input on its own goroutine; the frame loop only reads the flag
// Polling ends when the surface is released and PollEvent returns nil
func watchQuitKeys(surface *terminal.TcellSurface, quit *atomic.Bool) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("event poller crashed: %v\n%s", r, debug.Stack())
				quit.Store(true)
			}
		}()

		for {
			ev := surface.PollEvent()
			if ev == nil {
				return
			}
			if key, ok := ev.(*tcell.EventKey); ok && isQuitKey(key) {
				log.Printf("quit key %q", key.Name())
				quit.Store(true)
				return
			}
		}
	}()
}

func isQuitKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q' || ev.Rune() == 'Q'
	}
	return false
}

func watchSignals(quit *atomic.Bool) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Printf("signal %v, stopping", sig)
		quit.Store(true)
	}()
}

func writeSnapshot(e *engine.Engine, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := e.Buffer().WritePNG(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
