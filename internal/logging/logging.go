// Package logging appends error records and optional JSON trace entries to a
// single log file.
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

const defaultLogFile = "nmpick.log"

var (
	mu    sync.Mutex
	trace bool
	path  = defaultLogFile
)

type traceEntry struct {
	Time    time.Time   `json:"time"`
	Event   string      `json:"event"`
	Payload interface{} `json:"payload,omitempty"`
}

// Configure sets the log file. An empty path restores the default; missing
// parent directories are created.
func Configure(p string) {
	mu.Lock()
	defer mu.Unlock()
	path = defaultLogFile
	if strings.TrimSpace(p) == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "unable to create log directory: %v\n", err)
		return
	}
	path = p
}

// Path returns the current log file.
func Path() string {
	mu.Lock()
	defer mu.Unlock()
	return path
}

// SetTraceEnabled toggles Trace output.
func SetTraceEnabled(enabled bool) {
	mu.Lock()
	trace = enabled
	mu.Unlock()
}

// TraceEnabled reports whether Trace writes anything.
func TraceEnabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return trace
}

// Error records err as a timestamped error line. Nil errors are ignored.
func Error(err error) {
	if err == nil {
		return
	}
	write("logging", func(w io.Writer) error {
		log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      time.RFC3339,
			Prefix:          "nmpick",
		}).Error(err.Error())
		return nil
	})
}

// Trace appends one JSON line for event when tracing is enabled.
func Trace(event string, payload interface{}) {
	if !TraceEnabled() {
		return
	}
	write("trace logging", func(w io.Writer) error {
		return json.NewEncoder(w).Encode(traceEntry{Time: time.Now().UTC(), Event: event, Payload: payload})
	})
}

// write opens the log file for appending and hands it to fn. Failures go to
// stderr.
func write(what string, fn func(io.Writer) error) {
	f, err := os.OpenFile(Path(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s failed: %v\n", what, err)
		return
	}
	defer f.Close()
	if err := fn(f); err != nil {
		fmt.Fprintf(os.Stderr, "%s failed: %v\n", what, err)
	}
}
