// Package obslog is a minimal, swappable diagnostic logger, used by the
// monitor for construction and warm-up diagnostics. It is deliberately not a
// structured logging framework — just a package-level function var a
// host can redirect, adapted from the teacher's
// internal/monitoring/logger.go.
package obslog

import "log"

// Logf logs a formatted diagnostic message. It defaults to log.Printf and
// can be redirected with SetLogger.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces Logf. Passing nil installs a no-op logger, silencing
// diagnostics entirely.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}
