package constants

import "time"

// Frame Loop Timing Constants
const (
	// DefaultFPS is the default frame cap; 0 runs uncapped
	DefaultFPS = 60

	// DefaultBallPeriod and DefaultBallScale describe the orbiting balls
	DefaultBallPeriod = 6.0
	DefaultBallScale  = 25.0

	// DefaultDuration of 0 runs until quit
	DefaultDuration = 0 * time.Second
)

// Window Constants
const (
	// DefaultTitle is shown in the window title bar
	DefaultTitle = "CircleArt"

	// DefaultColorMode defers to environment detection
	DefaultColorMode = "auto"

	// DefaultBackend presents through tcell
	DefaultBackend = "tcell"

	// DefaultGlyph fills ellipse outlines
	DefaultGlyph = "█"
)

// Scene Constants
const (
	DefaultRings         = 7
	DefaultPeriod        = 4.0
	DefaultScale         = 4.5
	DefaultPhaseStep     = 0.06
	DefaultColorDuration = 0.55
)

// Logging Constants
const (
	// LogDir holds debug logs relative to the working directory
	LogDir = "logs"

	// LogFileName is the active debug log
	LogFileName = "circle-art.log"

	// MaxLogSize triggers rotation of the debug log on startup
	MaxLogSize = 10 * 1024 * 1024
)
