//go:build !noos

package testing

import (
	"os"
	"testing"
)

// TestMain should be used as TestMain for Raspberry Pi specific tests. On a
// hosted platform there is no console to bring up, tests run against the
// simulated firmware instead.
func TestMain(m *testing.M) {
	os.Exit(m.Run())
}
