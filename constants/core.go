package constants

import "time"

// Game Loop Timing
const (
	// FrameUpdateInterval is the fixed frame interval (~60 FPS)
	// One Controller.Update runs per frame; all gameplay timing counts frames, not wall time
	FrameUpdateInterval = 16 * time.Millisecond

	// FramesPerSecond is the nominal frame rate the tick-based timers are tuned for
	FramesPerSecond = 60
)

// Event Queue Limits
const (
	// EventQueueSize is the fixed capacity of the event ring buffer
	EventQueueSize = 256

	// EventBufferMask is the bitmask for fast modulo operations (256 - 1)
	EventBufferMask = 255
)

// Logging
const (
	// LogDir is the directory debug logs are written to
	LogDir = "logs"

	// LogFileName is the active log file inside LogDir
	LogFileName = "panic-burger.log"

	// MaxLogSize triggers rotation of the active log file at startup (10MB)
	MaxLogSize = 10 * 1024 * 1024
)
