// Package mbox implements the mailbox connecting the ARM cores with the
// VideoCore firmware.
//
// The firmware offers most of its services via the property channel: board
// information, clocks, power domains, temperature, the framebuffer. A caller
// encodes one or more property tags into a [Batch], submits it with
// [Mailbox.Exchange] and reads the results back per tag. The prop package
// provides typed wrappers for the known tags.
//
// The mailbox is a single hardware resource shared by everything on the
// board. All access goes through [Do] or a [Guard], which serialize
// transactions:
//
//	err := mbox.Do(func(m *mbox.Mailbox) error {
//		v, err := m.Query(prop.TagGetClockRate, 8, uint32(prop.ClockARM))
//		if err != nil {
//			return err
//		}
//		rate = v.Uint32(1)
//		return nil
//	})
package mbox

import (
	"errors"
	"fmt"
	"runtime"
	"unsafe"

	"github.com/bitkis/ruspiro-mailbox/vc/cpu"
)

var (
	ErrTimeout          = errors.New("mailbox timeout")
	ErrAlignment        = errors.New("message not 16 byte aligned")
	ErrRequestFailed    = errors.New("firmware rejected request")
	ErrTagNotProcessed  = errors.New("tag not processed")
	ErrResponseOverflow = errors.New("response exceeds value buffer")
	ErrMalformed        = errors.New("malformed message")
	ErrAccessDenied     = errors.New("mailbox access denied")
	ErrBatchConsumed    = errors.New("batch already exchanged")
)

// DefaultPollBudget bounds the number of status polls in a single wait. The
// firmware answers within microseconds, a budget this size only runs out if
// the VideoCore stopped servicing the mailbox altogether.
const DefaultPollBudget = 1 << 20

// A Mailbox drives property transactions over a register file.
//
// Its methods must not be called concurrently. [Guard.Do] and the package
// level [Do] provide the necessary exclusivity.
type Mailbox struct {
	regs RegisterFile

	// PollBudget bounds each busy wait on a status register. Zero means
	// [DefaultPollBudget].
	PollBudget int
}

func New(regs RegisterFile) *Mailbox {
	return &Mailbox{regs: regs}
}

// Exchange submits a batch on the property channel and blocks until the
// firmware handed it back and its results were validated. On error the
// batch provides no results, partial success is reported as an error. A
// batch can be exchanged only once.
func (m *Mailbox) Exchange(b *Batch) error {
	if b.sent {
		return ErrBatchConsumed
	}

	addr := uintptr(unsafe.Pointer(unsafe.SliceData(b.words)))
	if addr%BufferAlign != 0 {
		return fmt.Errorf("message at %#x: %w", addr, ErrAlignment)
	}

	b.sent = true
	cpu.WritebackSlice(b.words)
	if err := m.write(ChannelProperties, addr); err != nil {
		return err
	}
	if _, err := m.read(ChannelProperties); err != nil {
		return err
	}
	cpu.InvalidateSlice(b.words)

	return b.decode()
}

// Query submits a single property and returns its response. It is the
// convenience path for everything that doesn't need batching. See [Request]
// for the meaning of resp and args.
func (m *Mailbox) Query(tag Tag, resp int, args ...uint32) (Value, error) {
	b, err := NewBatch(Request{Tag: tag, Args: args, Resp: resp})
	if err != nil {
		return Value{}, err
	}
	if err := m.Exchange(b); err != nil {
		return Value{}, err
	}
	return b.Value(0), nil
}

// write posts a word to the given channel once the mailbox has space.
func (m *Mailbox) write(ch Channel, addr uintptr) error {
	for range m.budget() {
		if m.regs.WriteStatus()&StatusFull == 0 {
			m.regs.WriteData(addr&^channelMask | uintptr(ch))
			return nil
		}
		runtime.Gosched()
	}
	return fmt.Errorf("write mailbox stuck full: %w", ErrTimeout)
}

// read pops words until one addressed to the given channel arrives. Words
// for other channels are discarded, popping is the only way past them.
func (m *Mailbox) read(ch Channel) (uintptr, error) {
	for range m.budget() {
		if m.regs.ReadStatus()&StatusEmpty != 0 {
			runtime.Gosched()
			continue
		}
		if data := m.regs.ReadData(); Channel(data&channelMask) == ch {
			return data &^ channelMask, nil
		}
	}
	return 0, fmt.Errorf("no response on channel %d: %w", ch, ErrTimeout)
}

func (m *Mailbox) budget() int {
	if m.PollBudget > 0 {
		return m.PollBudget
	}
	return DefaultPollBudget
}
