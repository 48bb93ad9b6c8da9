//go:build !noos

package cpu

// On hosted platforms the OS keeps caches coherent, the cache ops reduce to
// no-ops there. They are only reachable from tests in that case.

// Writeback causes the cache to be written back to RAM. Call this before
// requesting the VideoCore to read from this address range.
func Writeback(addr uintptr, length int) {}

// Invalidate causes the cache to be read from RAM before the next access.
// Call this after the address range was written by the VideoCore.
func Invalidate(addr uintptr, length int) {}
