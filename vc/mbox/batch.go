package mbox

import (
	"fmt"

	"github.com/bitkis/ruspiro-mailbox/debug"
	"github.com/bitkis/ruspiro-mailbox/vc/cpu"
)

// Tag identifies a property and the direction it travels. Known values are
// collected in the prop package, but any tag the firmware understands can be
// submitted.
type Tag uint32

// TagEnd terminates the tag stream of a message.
const TagEnd Tag = 0

// Message codes. The firmware replaces the request code with one of the
// response codes when it hands the buffer back.
const (
	codeRequest     = 0x0000_0000
	codeResponseOk  = 0x8000_0000
	codeResponseErr = 0x8000_0001
)

// Per tag code word, written by the firmware.
const (
	respBit     = 0x8000_0000
	respLenMask = 0x7fff_ffff
)

// BufferAlign is the alignment the firmware requires of message buffers. The
// low 4 bits of the submitted word carry the channel, only aligned addresses
// survive the round trip.
const BufferAlign = 16

// A Request describes a single property in a message. Args are the request
// parameters, Resp is the response capacity in bytes. The tag's value buffer
// is sized to hold whichever of the two is larger.
type Request struct {
	Tag  Tag
	Args []uint32
	Resp int
}

// span locates one tag inside the encoded message.
type span struct {
	code int // index of the tag's request/response code word
	cap  int // value buffer size in bytes
}

// A Batch is an encoded message holding any number of property requests. It
// is created with [NewBatch], submitted with [Mailbox.Exchange] and read out
// with [Batch.Value]. A batch is single use, the firmware rewrites the
// buffer in place.
type Batch struct {
	words []uint32
	spans []span
	sent  bool
	ok    bool
}

// NewBatch encodes requests in order into a message ready for submission.
// The message is backed by a freshly allocated, cache padded buffer that
// satisfies [BufferAlign].
func NewBatch(reqs ...Request) (*Batch, error) {
	words := 3 // size, code and end tag
	for _, req := range reqs {
		if req.Resp < 0 {
			return nil, fmt.Errorf("tag %#x: response capacity %v: %w",
				uint32(req.Tag), req.Resp, ErrMalformed)
		}
		words += 3 + valueWords(req)
	}

	b := &Batch{
		words: cpu.MakePaddedSliceAligned[uint32](words, BufferAlign),
		spans: make([]span, 0, len(reqs)),
	}
	b.words[0] = uint32(words * 4)
	b.words[1] = codeRequest
	i := 2
	for _, req := range reqs {
		vw := valueWords(req)
		b.words[i] = uint32(req.Tag)
		b.words[i+1] = uint32(vw * 4)
		b.words[i+2] = codeRequest
		copy(b.words[i+3:i+3+vw], req.Args)
		b.spans = append(b.spans, span{code: i + 2, cap: vw * 4})
		i += 3 + vw
	}
	b.words[i] = uint32(TagEnd)

	return b, nil
}

// valueWords returns the size of a request's value buffer in words.
func valueWords(req Request) int {
	n := len(req.Args) * 4
	if req.Resp > n {
		n = req.Resp
	}
	return (n + 3) / 4
}

// Words exposes the raw message. Mutating it invalidates the batch's
// bookkeeping.
func (b *Batch) Words() []uint32 { return b.words }

// decode validates the message after the firmware rewrote it. Sizes coming
// back from the firmware are checked against the local bookkeeping, never
// the other way around.
func (b *Batch) decode() error {
	if b.words[0] != uint32(len(b.words)*4) {
		return fmt.Errorf("message size changed to %v: %w", b.words[0], ErrMalformed)
	}
	switch code := b.words[1]; code {
	case codeResponseOk:
	case codeResponseErr:
		return ErrRequestFailed
	default:
		return fmt.Errorf("response code %#x: %w", code, ErrRequestFailed)
	}
	for _, s := range b.spans {
		code := b.words[s.code]
		if code&respBit == 0 {
			return fmt.Errorf("tag %#x: %w", b.words[s.code-2], ErrTagNotProcessed)
		}
		if n := int(code & respLenMask); n > s.cap {
			return fmt.Errorf("tag %#x: %v bytes in a %v byte buffer: %w",
				b.words[s.code-2], n, s.cap, ErrResponseOverflow)
		}
	}
	if last := b.words[len(b.words)-1]; last != uint32(TagEnd) {
		return fmt.Errorf("end tag %#x: %w", last, ErrMalformed)
	}

	b.ok = true
	return nil
}

// Value returns the i-th request's response. It returns the zero Value if
// the batch wasn't exchanged successfully.
func (b *Batch) Value(i int) Value {
	debug.Assert(b.ok, "read from unexchanged batch")
	if !b.ok {
		return Value{}
	}
	s := b.spans[i]
	n := int(b.words[s.code] & respLenMask)
	return Value{n: n, words: b.words[s.code+1 : s.code+1+s.cap/4]}
}

// A Value is a single property's response. It stays valid as long as the
// batch it came from.
type Value struct {
	n     int
	words []uint32
}

// Len returns the number of bytes the firmware wrote.
func (v Value) Len() int { return v.n }

// Uint32 returns the i-th word of the response.
func (v Value) Uint32(i int) uint32 {
	debug.Assert((i+1)*4 <= v.n, "read past response")
	return v.words[i]
}

// Uint64 returns the i-th doubleword of the response.
func (v Value) Uint64(i int) uint64 {
	return uint64(v.Uint32(2*i)) | uint64(v.Uint32(2*i+1))<<32
}

// Bytes returns a copy of the response's bytes.
func (v Value) Bytes() []byte {
	buf := make([]byte, v.n)
	for i := range buf {
		buf[i] = byte(v.words[i/4] >> (8 * (i % 4)))
	}
	return buf
}
