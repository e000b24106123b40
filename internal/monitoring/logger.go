// Package monitoring carries the datalogger's diagnostic trace output.
//
// The sampling loop emits one trace record per frame; on hardware builds the
// same records went to the debug console. Logf is pluggable so tests can
// capture or mute the stream.
package monitoring

import (
	"fmt"
	"log"
)

// Logf is the package-level diagnostic logger. It defaults to log.Printf but
// may be replaced by SetLogger. Tests or production code can redirect or mute
// it.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces the package logger. Passing nil installs a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

// Capture redirects Logf into the returned slice and returns a restore
// function. Intended for tests asserting on trace records.
func Capture() (*[]string, func()) {
	prev := Logf
	records := &[]string{}
	Logf = func(format string, v ...interface{}) {
		*records = append(*records, fmt.Sprintf(format, v...))
	}
	return records, func() { Logf = prev }
}
