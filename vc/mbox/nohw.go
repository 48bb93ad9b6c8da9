//go:build !noos

package mbox

import "fmt"

// Hosted platforms have no mailbox registers to bind. Tests construct their
// own [Mailbox] over a simulated register file instead.
func hwGuard() (*Guard, error) {
	return nil, fmt.Errorf("no mailbox hardware on this platform: %w", ErrAccessDenied)
}
