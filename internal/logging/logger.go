// Package logging wraps charmbracelet/log with the small amount of
// configuration the viewer needs.
package logging

import (
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

var (
	defaultLogger     *log.Logger
	defaultLoggerOnce sync.Once
)

// New creates a logger writing to stderr at the given level.
// Valid levels: "debug", "info", "warn", "error".
func New(level string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
		ReportCaller:    false,
	})
	setLevel(logger, level)
	return logger
}

func setLevel(logger *log.Logger, level string) {
	switch strings.ToLower(level) {
	case "debug":
		logger.SetLevel(log.DebugLevel)
	case "warn", "warning":
		logger.SetLevel(log.WarnLevel)
	case "error":
		logger.SetLevel(log.ErrorLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}
}

// Default returns the package-level logger, creating it on first use.
func Default() *log.Logger {
	defaultLoggerOnce.Do(func() {
		defaultLogger = New("info")
	})
	return defaultLogger
}

// SetLevel updates the level of the default logger.
func SetLevel(level string) {
	setLevel(Default(), level)
}

// Field name constants for structured logging.
const (
	FieldError  = "error"
	FieldFile   = "file"
	FieldOffset = "offset"
	FieldLength = "length"
	FieldChunk  = "chunk"
	FieldChunks = "chunks"
	FieldSize   = "size"
	FieldBucket = "bucket"
	FieldKey    = "key"
)
