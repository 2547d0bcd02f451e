package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/panic-burger/constants"
)

const (
	logDir      = constants.LogDir
	logFileName = constants.LogFileName
	maxLogSize  = constants.MaxLogSize
)

// setupLogging routes logs to logs/panic-burger.log when debug is set
// The terminal belongs to tcell, so nothing is ever written to stdout or stderr
// Returns a disabled logger and nil file otherwise
func setupLogging(debug bool, level zerolog.Level) (zerolog.Logger, *os.File) {
	if !debug {
		log.SetOutput(io.Discard)
		return zerolog.Nop(), nil
	}

	if err := os.MkdirAll(logDir, 0o755); err != nil {
		log.SetOutput(io.Discard)
		return zerolog.Nop(), nil
	}

	logPath := filepath.Join(logDir, logFileName)
	rotateLog(logPath)

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.SetOutput(io.Discard)
		return zerolog.Nop(), nil
	}

	// Stray stdlib log output from dependencies lands in the same file
	log.SetOutput(f)
	logger := zerolog.New(f).Level(level).With().Timestamp().Logger()
	return logger, f
}

// rotateLog renames an oversized log to a timestamped sibling
func rotateLog(path string) {
	info, err := os.Stat(path)
	if err != nil || info.Size() <= maxLogSize {
		return
	}
	stamp := time.Now().Format("20060102-150405")
	rotated := filepath.Join(filepath.Dir(path), fmt.Sprintf("panic-burger-%s.log", stamp))
	_ = os.Rename(path, rotated)
}
