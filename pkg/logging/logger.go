// Package logging builds the hclog loggers shared by the launcher and
// clockctl, and the per-line prefix decoration for non-JSON output.
package logging

import (
	"io"
	"os"
	"runtime"
	"time"

	"github.com/hashicorp/go-hclog"
)

const timeFormat = "2006-01-02T15:04:05Z" // UTC ISO, no timezone suffix

// NewLogger returns a named logger writing to output, or stderr when
// output is nil. CHESSCLOCK_JSON_LOG=1 switches to JSON records; plain
// output gets the per-platform line marker instead.
func NewLogger(name string, level string, output io.Writer) hclog.Logger {
	if output == nil {
		output = os.Stderr
	}

	jsonFormat := os.Getenv("CHESSCLOCK_JSON_LOG") == "1"
	if !jsonFormat {
		output = NewPrefixWriter(LinePrefix(), output)
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:       name,
		Level:      hclog.LevelFromString(level),
		JSONFormat: jsonFormat,
		Output:     output,
		TimeFormat: timeFormat,
		TimeFn:     func() time.Time { return time.Now().UTC() },
	})
}

// LinePrefix returns the marker prepended to each non-JSON log line
// (ASCII on Windows, emoji on Unix).
func LinePrefix() string {
	if runtime.GOOS == "windows" {
		return "[CLOCK] "
	}
	return "♟️ "
}

// GetLogLevel reads CHESSCLOCK_LOG_LEVEL, defaulting to warn: the shell
// script this launcher replaces ran silently.
func GetLogLevel() string {
	if level := os.Getenv("CHESSCLOCK_LOG_LEVEL"); level != "" {
		return level
	}
	return "warn"
}
