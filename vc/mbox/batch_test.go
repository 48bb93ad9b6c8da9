package mbox_test

import (
	"errors"
	"slices"
	"testing"
	"unsafe"

	rpitesting "github.com/bitkis/ruspiro-mailbox/testing"
	"github.com/bitkis/ruspiro-mailbox/vc/cpu"
	"github.com/bitkis/ruspiro-mailbox/vc/mbox"
)

func TestMain(m *testing.M) { rpitesting.TestMain(m) }

func TestEncodeSingle(t *testing.T) {
	// Get clock rate of the core clock (id 4): 8 byte value buffer, one
	// argument word, 32 bytes total.
	b, err := mbox.NewBatch(mbox.Request{Tag: 0x0003_0002, Args: []uint32{4}, Resp: 8})
	if err != nil {
		t.Fatal(err)
	}

	want := []uint32{
		32, 0, // header
		0x0003_0002, 8, 0, // tag header
		4, 0, // value buffer
		0, // end tag
	}
	if !slices.Equal(b.Words(), want) {
		t.Errorf("got words %#v", b.Words())
	}

	addr := uintptr(unsafe.Pointer(unsafe.SliceData(b.Words())))
	if addr%mbox.BufferAlign != 0 {
		t.Errorf("message at %#x", addr)
	}
	if !cpu.IsPadded(b.Words()) {
		t.Error("message not cache padded")
	}
}

func TestEncodeMulti(t *testing.T) {
	b, err := mbox.NewBatch(
		mbox.Request{Tag: 0x0001_0005, Resp: 8},                    // ARM memory
		mbox.Request{Tag: 0x0003_0002, Args: []uint32{3}, Resp: 8}, // clock rate
		mbox.Request{Tag: 0x0002_8001, Args: []uint32{0, 3}},       // set power state
	)
	if err != nil {
		t.Fatal(err)
	}

	want := []uint32{
		18 * 4, 0,
		0x0001_0005, 8, 0, 0, 0,
		0x0003_0002, 8, 0, 3, 0,
		0x0002_8001, 8, 0, 0, 3,
		0,
	}
	if !slices.Equal(b.Words(), want) {
		t.Errorf("got words %#v", b.Words())
	}
}

func TestValueBufferSizing(t *testing.T) {
	for _, tc := range []struct {
		req   mbox.Request
		words int
	}{
		{mbox.Request{Tag: 1}, 3},                             // no value buffer
		{mbox.Request{Tag: 1, Args: []uint32{0, 0}}, 5},       // sized by args
		{mbox.Request{Tag: 1, Args: []uint32{0}, Resp: 8}, 5}, // sized by resp
		{mbox.Request{Tag: 1, Resp: 6}, 5},                    // rounded up
	} {
		b, err := mbox.NewBatch(tc.req)
		if err != nil {
			t.Fatal(err)
		}
		if got := len(b.Words()); got != tc.words+3 {
			t.Errorf("%+v: got %v words", tc.req, got)
		}
	}
}

func TestEncodeInvalid(t *testing.T) {
	_, err := mbox.NewBatch(mbox.Request{Tag: 1, Resp: -4})
	if !errors.Is(err, mbox.ErrMalformed) {
		t.Errorf("got %v", err)
	}
}
