// Package monitoring holds the diagnostic logger shared by the periodogram
// packages.
package monitoring

import (
	"fmt"
	"log"
	"os"
)

var std = log.New(os.Stderr, "fip: ", log.LstdFlags)

// Logf is the package-level diagnostic logger. Notices such as a clamped peak
// count go through it. It defaults to a stderr logger prefixed "fip: " and
// may be replaced by SetLogger.
var Logf func(format string, v ...interface{}) = std.Printf

// SetLogger replaces the package logger. Passing nil will set a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

// Capture redirects Logf into a slice of formatted lines until the returned
// restore function is called.
func Capture(lines *[]string) (restore func()) {
	prev := Logf
	Logf = func(format string, v ...interface{}) {
		*lines = append(*lines, fmt.Sprintf(format, v...))
	}
	return func() { Logf = prev }
}
