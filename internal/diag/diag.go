// Package diag holds the logging helpers used inside the frame loop, where
// failures are reported and then ignored.
package diag

import (
	"fmt"
	"log"
	"runtime/debug"
	"sync"
)

var (
	onceMu   sync.Mutex
	onceSeen = map[string]bool{}
)

// Warnf logs a warning with a subsystem prefix, e.g. Warnf("Chase", "no npc").
func Warnf(subsystem, format string, args ...any) {
	log.Printf("%s: %s", subsystem, fmt.Sprintf(format, args...))
}

// WarnOnce logs only the first warning for key. It reports whether the
// message was written.
func WarnOnce(key, subsystem, format string, args ...any) bool {
	onceMu.Lock()
	seen := onceSeen[key]
	onceSeen[key] = true
	onceMu.Unlock()
	if seen {
		return false
	}
	Warnf(subsystem, format, args...)
	return true
}

// ResetOnce forgets every WarnOnce key.
func ResetOnce() {
	onceMu.Lock()
	onceSeen = map[string]bool{}
	onceMu.Unlock()
}

// Guard runs fn and recovers a panic from it, logging the value and stack.
// It reports whether fn completed normally.
func Guard(name string, fn func()) (ok bool) {
	if fn == nil {
		return true
	}
	defer func() {
		if r := recover(); r != nil {
			log.Printf("%s: recovered from panic: %v\n%s", name, r, debug.Stack())
			ok = false
		}
	}()
	fn()
	return true
}
