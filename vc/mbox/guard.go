package mbox

import (
	"fmt"
	"sync"
)

// A Guard owns a mailbox and grants callers exclusive, scoped access to it.
//
// If a callback panics, the transaction may have left the hardware with a
// request in flight. The guard stays poisoned in that case and refuses all
// further access.
type Guard struct {
	mtx      sync.Mutex
	mbox     *Mailbox
	poisoned bool
}

func NewGuard(m *Mailbox) *Guard {
	return &Guard{mbox: m}
}

// Do runs fn with exclusive access to the guarded mailbox. It blocks while
// another holder is active and returns fn's error, or [ErrAccessDenied] if
// access cannot be granted. fn must not retain the mailbox past its return.
func (g *Guard) Do(fn func(*Mailbox) error) error {
	g.mtx.Lock()
	defer g.mtx.Unlock()

	if g.poisoned {
		return fmt.Errorf("guard poisoned by earlier panic: %w", ErrAccessDenied)
	}

	// Poisoned until fn returns. A panic unwinds past the reset, keeping
	// the guard locked out for good.
	g.poisoned = true
	err := fn(g.mbox)
	g.poisoned = false
	return err
}

// Do grants scoped access to the board's mailbox, creating it on first use.
func Do(fn func(*Mailbox) error) error {
	g, err := hwGuard()
	if err != nil {
		return err
	}
	return g.Do(fn)
}
