//go:build !debug

package common

// DebugAssertions is true when the module is built with the debug tag.
const DebugAssertions = false

// Assert is a no-op outside debug builds.
func Assert(cond bool, format string, args ...any) {}
