package prop_test

import (
	"errors"
	"slices"
	"testing"

	"github.com/bitkis/ruspiro-mailbox/internal/vcsim"
	rpitesting "github.com/bitkis/ruspiro-mailbox/testing"
	"github.com/bitkis/ruspiro-mailbox/vc/mbox"
	"github.com/bitkis/ruspiro-mailbox/vc/mbox/prop"
)

func TestMain(m *testing.M) { rpitesting.TestMain(m) }

// pack encodes a string the way the firmware does, little endian bytes in
// consecutive words.
func pack(s string) []uint32 {
	words := make([]uint32, (len(s)+3)/4)
	for i := 0; i < len(s); i++ {
		words[i/4] |= uint32(s[i]) << (8 * (i % 4))
	}
	return words
}

func TestGetters(t *testing.T) {
	sim := vcsim.New()
	sim.Respond(prop.TagGetFirmwareRevision, 0x5f08_3d9c)
	sim.Respond(prop.TagGetBoardModel, 0xa02082)
	sim.Respond(prop.TagGetBoardRevision, 0xa22082)
	sim.Respond(prop.TagGetBoardSerial, 0x9abc_def0, 0x1234_5678)
	sim.Respond(prop.TagGetARMMemory, 0, 0x3b40_0000)
	sim.Respond(prop.TagGetVCMemory, 0x3b40_0000, 0x04c0_0000)
	sim.Respond(prop.TagGetClockRate, uint32(prop.ClockCore), 250_000_000)
	sim.Respond(prop.TagGetMaxClockRate, uint32(prop.ClockARM), 1_200_000_000)
	sim.Respond(prop.TagGetTemperature, 0, 48_234)
	sim.Respond(prop.TagGetVoltage, uint32(prop.VoltageCore), 1_200_000)
	sim.Respond(prop.TagGetTurbo, 0, 1)
	m := mbox.New(sim)

	t.Run("firmware revision", func(t *testing.T) {
		got, err := prop.FirmwareRevision(m)
		check(t, err, got, uint32(0x5f08_3d9c))
	})
	t.Run("board model", func(t *testing.T) {
		got, err := prop.BoardModel(m)
		check(t, err, got, uint32(0xa02082))
	})
	t.Run("board revision", func(t *testing.T) {
		got, err := prop.BoardRevision(m)
		check(t, err, got, uint32(0xa22082))
	})
	t.Run("serial", func(t *testing.T) {
		got, err := prop.Serial(m)
		check(t, err, got, uint64(0x1234_5678_9abc_def0))
	})
	t.Run("arm memory", func(t *testing.T) {
		got, err := prop.ARMMemory(m)
		check(t, err, got, prop.MemoryRange{Base: 0, Size: 0x3b40_0000})
	})
	t.Run("vc memory", func(t *testing.T) {
		got, err := prop.VCMemory(m)
		check(t, err, got, prop.MemoryRange{Base: 0x3b40_0000, Size: 0x04c0_0000})
	})
	t.Run("clock rate", func(t *testing.T) {
		got, err := prop.ClockRate(m, prop.ClockCore)
		check(t, err, got, uint32(250_000_000))
	})
	t.Run("max clock rate", func(t *testing.T) {
		got, err := prop.MaxClockRate(m, prop.ClockARM)
		check(t, err, got, uint32(1_200_000_000))
	})
	t.Run("temperature", func(t *testing.T) {
		got, err := prop.Temperature(m)
		check(t, err, got, uint32(48_234))
	})
	t.Run("voltage", func(t *testing.T) {
		got, err := prop.Voltage(m, prop.VoltageCore)
		check(t, err, got, uint32(1_200_000))
	})
	t.Run("turbo", func(t *testing.T) {
		got, err := prop.Turbo(m)
		check(t, err, got, true)
	})
}

func check[T comparable](t *testing.T, err error, got, want T) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestMACAddress(t *testing.T) {
	sim := vcsim.New()
	sim.RespondN(prop.TagGetMACAddress, 6, 0x12eb_27b8, 0x5634)

	mac, err := prop.MACAddress(mbox.New(sim))
	if err != nil {
		t.Fatal(err)
	}
	if want := [6]byte{0xb8, 0x27, 0xeb, 0x12, 0x34, 0x56}; mac != want {
		t.Errorf("got %x", mac)
	}
}

func TestCommandLine(t *testing.T) {
	const cmdline = "console=serial0,115200 root=/dev/mmcblk0p2"

	sim := vcsim.New()
	sim.RespondN(prop.TagGetCommandLine, len(cmdline), pack(cmdline)...)

	got, err := prop.CommandLine(mbox.New(sim))
	if err != nil {
		t.Fatal(err)
	}
	if got != cmdline {
		t.Errorf("got %q", got)
	}
}

func TestSetClockRate(t *testing.T) {
	sim := vcsim.New()
	var request []uint32
	sim.Handler = func(w []uint32) {
		request = slices.Clone(w)
		w[1] = 0x8000_0000
		w[4] = 0x8000_0008
		w[6] = 1_400_000_000 // firmware clamps the requested rate
	}

	got, err := prop.SetClockRate(mbox.New(sim), prop.ClockARM, 1_500_000_000, true)
	if err != nil {
		t.Fatal(err)
	}
	if got != 1_400_000_000 {
		t.Errorf("got rate %v", got)
	}

	wantArgs := []uint32{uint32(prop.ClockARM), 1_500_000_000, 1}
	if !slices.Equal(request[5:8], wantArgs) {
		t.Errorf("submitted args %v", request[5:8])
	}
	if request[3] != 12 {
		t.Errorf("submitted buffer size %v", request[3])
	}
}

func TestPowerState(t *testing.T) {
	sim := vcsim.New()
	sim.Respond(prop.TagGetPowerState, uint32(prop.PowerSDCard), uint32(prop.PowerOn))
	sim.Respond(prop.TagSetPowerState, uint32(prop.PowerUART0), uint32(prop.PowerOn))
	m := mbox.New(sim)

	state, err := prop.PowerState(m, prop.PowerSDCard)
	if err != nil {
		t.Fatal(err)
	}
	if state&prop.PowerOn == 0 || state&prop.PowerAbsent != 0 {
		t.Errorf("got state %#x", state)
	}

	state, err = prop.SetPowerState(m, prop.PowerUART0, prop.PowerOn|prop.PowerWait)
	if err != nil {
		t.Fatal(err)
	}
	if state&prop.PowerOn == 0 {
		t.Errorf("got state %#x", state)
	}
}

func TestMemLifecycle(t *testing.T) {
	sim := vcsim.New()
	sim.Respond(prop.TagMemAlloc, 7)
	sim.Respond(prop.TagMemLock, 0xc010_0000)
	sim.Respond(prop.TagMemUnlock, 0)
	sim.Respond(prop.TagMemRelease, 0)
	m := mbox.New(sim)

	handle, err := prop.MemAlloc(m, 4096, 16, prop.MemZero|prop.MemDirect)
	if err != nil {
		t.Fatal(err)
	}
	if handle != 7 {
		t.Errorf("got handle %v", handle)
	}

	addr, err := prop.MemLock(m, handle)
	if err != nil {
		t.Fatal(err)
	}
	if addr != 0xc010_0000 {
		t.Errorf("got address %#x", addr)
	}

	if err := prop.MemUnlock(m, handle); err != nil {
		t.Error(err)
	}
	if err := prop.MemFree(m, handle); err != nil {
		t.Error(err)
	}

	sim.Respond(prop.TagMemUnlock, 1)
	if err := prop.MemUnlock(m, handle); !errors.Is(err, mbox.ErrRequestFailed) {
		t.Errorf("got %v", err)
	}
}

func TestSize(t *testing.T) {
	req, resp, ok := prop.Size(prop.TagGetClockRate)
	if !ok || req != 4 || resp != 8 {
		t.Errorf("got %v, %v, %v", req, resp, ok)
	}
	if _, _, ok := prop.Size(0xdead_beef); ok {
		t.Error("unknown tag reported in catalog")
	}
}
