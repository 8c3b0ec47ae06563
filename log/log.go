/*
 * mvm - an educational bytecode virtual machine
 * Licensed under the Mozilla Public License 2.0 (MPL-2.0)
 */

// Package log provides the leveled diagnostic output used across the
// interpreter. It mirrors the call shape of other parts of this codebase
// family: callers pick a level constant and call Log, rather than reaching
// for a structured logging library this project has no other use for.
package log

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
)

// Severity levels, most severe first. A message is emitted only if its
// level is at or below the current threshold.
const (
	SEVERE = iota
	WARNING
	INFO
	FINEST
	TRACE_INST
)

var (
	mu    sync.Mutex
	level = WARNING
)

// SetLevel changes the current logging threshold. Safe to call between
// execution steps.
func SetLevel(l int) {
	mu.Lock()
	defer mu.Unlock()
	level = l
}

// Level returns the current logging threshold.
func Level() int {
	mu.Lock()
	defer mu.Unlock()
	return level
}

func levelName(l int) string {
	switch l {
	case SEVERE:
		return "SEVERE"
	case WARNING:
		return "WARNING"
	case INFO:
		return "INFO"
	case FINEST:
		return "FINEST"
	case TRACE_INST:
		return "TRACE_INST"
	default:
		return "UNKNOWN"
	}
}

// Log writes msg to stderr, prefixed with a timestamp and the level name,
// if level is at or below the current threshold. The error from the
// underlying write is returned to the caller rather than swallowed.
func Log(msg string, l int) error {
	mu.Lock()
	threshold := level
	mu.Unlock()

	if l > threshold {
		return nil
	}

	_, err := fmt.Fprintf(os.Stderr, "%s [%s] %s\n",
		time.Now().Format("15:04:05.000"), levelName(l), msg)
	return err
}

// LogElapsed is Log with the elapsed time since since appended to msg, in
// the same relative-time phrasing humanize uses everywhere else in this
// codebase (e.g. "3 seconds ago"). Useful for reporting how long a run or
// a class load took relative to when it started.
func LogElapsed(msg string, since time.Time, l int) error {
	return Log(fmt.Sprintf("%s (started %s)", msg, humanize.Time(since)), l)
}
