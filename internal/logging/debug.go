package logging

import (
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/log"
)

// DebugEnv enables store-level debug output when set to any non-empty value.
const DebugEnv = "TODOS_DEBUG"

var (
	debugMu     sync.Mutex
	debugLogger = log.NewWithOptions(os.Stderr, log.Options{
		Level:  log.DebugLevel,
		Prefix: Prefix,
	})
)

// DebugEnabled returns true if debug mode is enabled via TODOS_DEBUG environment variable
func DebugEnabled() bool {
	return os.Getenv(DebugEnv) != ""
}

// SetDebugOutput redirects debug output, returning a function that restores the previous writer.
func SetDebugOutput(w io.Writer) func() {
	debugMu.Lock()
	defer debugMu.Unlock()

	previous := debugLogger
	debugLogger = log.NewWithOptions(w, log.Options{
		Level:     log.DebugLevel,
		Formatter: log.LogfmtFormatter,
		Prefix:    Prefix,
	})

	return func() {
		debugMu.Lock()
		defer debugMu.Unlock()
		debugLogger = previous
	}
}

// Debugf logs a formatted debug message only if debug mode is enabled
func Debugf(format string, args ...interface{}) {
	if !DebugEnabled() {
		return
	}
	debugMu.Lock()
	logger := debugLogger
	debugMu.Unlock()
	logger.Debugf(format, args...)
}

// Debug logs a debug message with key/value pairs only if debug mode is enabled
func Debug(msg string, keyvals ...interface{}) {
	if !DebugEnabled() {
		return
	}
	debugMu.Lock()
	logger := debugLogger
	debugMu.Unlock()
	logger.Debug(msg, keyvals...)
}
