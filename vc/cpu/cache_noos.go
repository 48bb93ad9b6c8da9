//go:build noos

package cpu

// Writeback causes the cache to be written back to RAM. Call this before
// requesting the VideoCore to read from this address range. If the specified
// address is currently not cached, this is a no-op.
func Writeback(addr uintptr, length int)

// Invalidate causes the cache to be read from RAM before the next access.
// Call this after the address range was written by the VideoCore. If the
// specified address is currently not cached, this is a no-op.
func Invalidate(addr uintptr, length int)
