package cpu_test

import (
	"testing"
	"unsafe"

	rpitesting "github.com/bitkis/ruspiro-mailbox/testing"
	"github.com/bitkis/ruspiro-mailbox/vc/cpu"
)

func TestMain(m *testing.M) { rpitesting.TestMain(m) }

func TestMakePaddedSlice(t *testing.T) {
	for _, size := range []int{1, 3, 64, 100} {
		buf := cpu.MakePaddedSlice[byte](size)
		if len(buf) != size {
			t.Errorf("size %v: got len %v", size, len(buf))
		}
		if !cpu.IsPadded(buf) {
			t.Errorf("size %v: not padded", size)
		}
	}

	words := cpu.MakePaddedSlice[uint32](5)
	if len(words) != 5 || !cpu.IsPadded(words) {
		t.Errorf("uint32 slice: len %v, padded %v", len(words), cpu.IsPadded(words))
	}
}

func TestMakePaddedSliceAligned(t *testing.T) {
	for _, align := range []uintptr{4, 16, 128, 256} {
		buf := cpu.MakePaddedSliceAligned[uint32](8, align)
		addr := uintptr(unsafe.Pointer(unsafe.SliceData(buf)))
		if addr%align != 0 {
			t.Errorf("align %v: got address %#x", align, addr)
		}
		if len(buf) != 8 || !cpu.IsPadded(buf) {
			t.Errorf("align %v: len %v, padded %v", align, len(buf), cpu.IsPadded(buf))
		}
	}
}

func TestPaddedSlice(t *testing.T) {
	orig := cpu.MakePaddedSlice[byte](8)
	for i := range orig {
		orig[i] = byte(i)
	}

	sub := orig[1:5]
	if cpu.IsPadded(sub) {
		t.Fatal("subslice reported as padded")
	}

	padded := cpu.PaddedSlice(sub)
	if !cpu.IsPadded(padded) {
		t.Fatal("copy not padded")
	}
	for i := range padded {
		if padded[i] != sub[i] {
			t.Fatalf("content mismatch at %v", i)
		}
	}

	same := cpu.PaddedSlice(orig)
	if unsafe.SliceData(same) != unsafe.SliceData(orig) {
		t.Error("already padded slice was copied")
	}
}

func TestBusAddress(t *testing.T) {
	bus := cpu.BusAddress(0x0012_3400)
	if bus != 0xc012_3400 {
		t.Errorf("got %#x", bus)
	}
	if phys := cpu.PhysicalAddress(bus); phys != 0x0012_3400 {
		t.Errorf("got %#x", phys)
	}
}
