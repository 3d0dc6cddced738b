//go:build debug

package common

import "fmt"

// DebugAssertions is true when the module is built with the debug tag.
const DebugAssertions = true

// Assert panics with the formatted message when cond is false.
// Only debug builds check; release builds compile it to nothing.
//
// Parameters:
//   - cond: the condition expected to hold
//   - format: fmt-style message format
//   - args: message arguments
func Assert(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf("assertion failed: "+format, args...))
	}
}
