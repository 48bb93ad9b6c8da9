// Package vcsim simulates the VideoCore's side of the mailbox for tests.
//
// It implements mbox.RegisterFile with a small model of the property
// firmware behind it: a submitted message is rewritten in place as a
// response and the submit word is echoed back on the same channel. Knobs
// on [Firmware] introduce the failure modes the driver must handle.
package vcsim

import (
	"sync"
	"unsafe"

	"github.com/bitkis/ruspiro-mailbox/vc/mbox"
)

type Firmware struct {
	mu sync.Mutex

	// Handler rewrites a submitted message in place. Nil uses the default
	// handler, which answers every tag successfully with the values set
	// via [Firmware.Respond].
	Handler func(words []uint32)

	// FullPolls makes the write mailbox report full for the next n polls.
	FullPolls int
	// EmptyPolls makes the read mailbox report empty for the next n polls
	// even with words pending.
	EmptyPolls int
	// Mute drops submitted messages instead of answering them.
	Mute bool

	// Reads and Writes count data register accesses.
	Reads, Writes int
	// Interleaved counts submissions that arrived while an earlier
	// response was still unread. The guard must keep this at zero.
	Interleaved int

	values   map[mbox.Tag]canned
	pending  []uintptr
	inflight bool
}

type canned struct {
	n     int
	words []uint32
}

func New() *Firmware {
	return &Firmware{values: make(map[mbox.Tag]canned)}
}

// Respond sets the canned response value for a tag.
func (f *Firmware) Respond(tag mbox.Tag, words ...uint32) {
	f.RespondN(tag, 4*len(words), words...)
}

// RespondN is [Firmware.Respond] with an explicit response byte count, for
// responses that aren't a multiple of four bytes or that claim more than
// the submitted value buffer holds.
func (f *Firmware) RespondN(tag mbox.Tag, n int, words ...uint32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[tag] = canned{n: n, words: words}
}

// Inject queues a raw word in the read mailbox, simulating traffic for
// other channels.
func (f *Firmware) Inject(word uintptr) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pending = append(f.pending, word)
}

func (f *Firmware) ReadData() uintptr {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Reads++
	if len(f.pending) == 0 {
		return 0
	}
	v := f.pending[0]
	f.pending = f.pending[1:]
	if v&0xf == uintptr(mbox.ChannelProperties) {
		f.inflight = false
	}
	return v
}

func (f *Firmware) ReadStatus() mbox.Status {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.EmptyPolls > 0 {
		f.EmptyPolls--
		return mbox.StatusEmpty
	}
	if len(f.pending) == 0 {
		return mbox.StatusEmpty
	}
	return 0
}

func (f *Firmware) WriteData(v uintptr) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Writes++
	if f.inflight {
		f.Interleaved++
	}
	if f.Mute {
		return
	}

	words := mapMessage(v &^ 0xf)
	if f.Handler != nil {
		f.Handler(words)
	} else {
		f.answer(words)
	}
	f.pending = append(f.pending, v)
	f.inflight = true
}

func (f *Firmware) WriteStatus() mbox.Status {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.FullPolls > 0 {
		f.FullPolls--
		return mbox.StatusFull
	}
	return 0
}

// mapMessage recovers the submitted message from its address. The header
// word declares the total size.
func mapMessage(addr uintptr) []uint32 {
	size := *(*uint32)(unsafe.Pointer(addr))
	return unsafe.Slice((*uint32)(unsafe.Pointer(addr)), size/4)
}

// answer rewrites a request as a fully successful response.
func (f *Firmware) answer(words []uint32) {
	words[1] = 0x8000_0000
	i := 2
	for i < len(words) && words[i] != 0 {
		tag := mbox.Tag(words[i])
		size := int(words[i+1]) / 4
		if v, ok := f.values[tag]; ok {
			copy(words[i+3:i+3+size], v.words)
			words[i+2] = 0x8000_0000 | uint32(v.n)
		} else {
			words[i+2] = 0x8000_0000 | uint32(size*4)
		}
		i += 3 + size
	}
}
