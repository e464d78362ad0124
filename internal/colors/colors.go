// Package colors provides color console output utilities.
package colors

import (
	"fmt"
	"os"
	"strings"
	"sync"
)

// Color constants
const (
	Red    = "\033[0;31m"
	Green  = "\033[0;32m"
	Yellow = "\033[1;33m"
	Blue   = "\033[0;34m"
	Cyan   = "\033[0;36m"
	Reset  = "\033[0m"
)

const checkmark = "✓"

// Logger defines the interface for structured logging.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

var (
	debugEnabled = false
	logger       Logger
	loggerMu     sync.RWMutex
)

func init() {
	if val := os.Getenv("ORDER_EXPLORER_DEBUG"); val == "true" || val == "1" {
		debugEnabled = true
	}
}

// SetDebug enables or disables debug output.
func SetDebug(enabled bool) {
	debugEnabled = enabled
}

// SetLogger sets the structured logger to mirror console output.
func SetLogger(l Logger) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	logger = l
}

func mirrored() Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return logger
}

// Error outputs an error message to stderr.
func Error(msgs ...string) {
	msg := strings.Join(msgs, " ")
	if l := mirrored(); l != nil {
		l.Error(msg)
	}
	fmt.Fprintf(os.Stderr, "%sError:%s %s\n", Red, Reset, msg)
}

// Warning outputs a warning message to stderr.
func Warning(msgs ...string) {
	msg := strings.Join(msgs, " ")
	if l := mirrored(); l != nil {
		l.Warn(msg)
	}
	fmt.Fprintf(os.Stderr, "%sWarning:%s %s\n", Yellow, Reset, msg)
}

// Info outputs an informational message to stdout.
func Info(msgs ...string) {
	msg := strings.Join(msgs, " ")
	if l := mirrored(); l != nil {
		l.Info(msg)
	}
	fmt.Fprintf(os.Stdout, "%s%s%s\n", Blue, msg, Reset)
}

// Success outputs a success message to stdout.
func Success(msgs ...string) {
	msg := strings.Join(msgs, " ")
	if l := mirrored(); l != nil {
		l.Info(msg, "type", "success")
	}
	fmt.Fprintf(os.Stdout, "%s%s%s %s\n", Green, checkmark, Reset, msg)
}

// Debug outputs a debug message to stderr when debug mode is on.
func Debug(msgs ...string) {
	msg := strings.Join(msgs, " ")
	if l := mirrored(); l != nil {
		l.Debug(msg)
	}
	if !debugEnabled {
		return
	}
	fmt.Fprintf(os.Stderr, "%sDebug:%s %s\n", Cyan, Reset, msg)
}
