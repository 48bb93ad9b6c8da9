//go:build !debug

// Package debug provides assertions that are compiled in with the debug build
// tag and compile to no-ops otherwise.
//
// Not exactly idiomatic Go, but catching programmer errors early is worth a
// lot when the failure mode is a silent hang on bare metal.
package debug

// Enabled reports whether assertions are compiled in. Guard assertions that
// need any setup of their own with `if debug.Enabled {...}`, otherwise the
// setup survives in release builds.
const Enabled = false

// Assert panics if b is false.
func Assert(b bool, message string) {}

// AssertErrNil panics if err is not nil.
func AssertErrNil(err error) {}
