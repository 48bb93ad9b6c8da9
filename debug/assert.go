//go:build debug

package debug

// Enabled reports whether assertions are compiled in. Guard assertions that
// need any setup of their own with `if debug.Enabled {...}`, otherwise the
// setup survives in release builds.
const Enabled = true

func Assert(b bool, message string) {
	if !b {
		panic(message)
	}
}

func AssertErrNil(err error) {
	if err != nil {
		panic(err)
	}
}
