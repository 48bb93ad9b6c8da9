// Package prop provides typed access to the properties served by the
// VideoCore firmware over the mailbox.
//
// All functions take the mailbox they operate on, obtain one via mbox.Do:
//
//	var rev uint32
//	err := mbox.Do(func(m *mbox.Mailbox) error {
//		var err error
//		rev, err = prop.FirmwareRevision(m)
//		return err
//	})
package prop

import (
	"fmt"
	"strings"

	"github.com/bitkis/ruspiro-mailbox/debug"
	"github.com/bitkis/ruspiro-mailbox/vc/cpu"
	"github.com/bitkis/ruspiro-mailbox/vc/mbox"
)

// query submits a single catalogued tag, sizing the value buffer from the
// catalog.
func query(m *mbox.Mailbox, tag mbox.Tag, args ...uint32) (mbox.Value, error) {
	_, resp, ok := Size(tag)
	debug.Assert(ok, "tag missing from catalog")
	return m.Query(tag, resp, args...)
}

// FirmwareRevision returns the revision of the running firmware.
func FirmwareRevision(m *mbox.Mailbox) (uint32, error) {
	v, err := query(m, TagGetFirmwareRevision)
	if err != nil {
		return 0, err
	}
	return v.Uint32(0), nil
}

// BoardModel returns the board's model number.
func BoardModel(m *mbox.Mailbox) (uint32, error) {
	v, err := query(m, TagGetBoardModel)
	if err != nil {
		return 0, err
	}
	return v.Uint32(0), nil
}

// BoardRevision returns the board's revision code.
func BoardRevision(m *mbox.Mailbox) (uint32, error) {
	v, err := query(m, TagGetBoardRevision)
	if err != nil {
		return 0, err
	}
	return v.Uint32(0), nil
}

// MACAddress returns the board's ethernet MAC address.
func MACAddress(m *mbox.Mailbox) ([6]byte, error) {
	var mac [6]byte
	v, err := query(m, TagGetMACAddress)
	if err != nil {
		return mac, err
	}
	copy(mac[:], v.Bytes())
	return mac, nil
}

// Serial returns the board's serial number.
func Serial(m *mbox.Mailbox) (uint64, error) {
	v, err := query(m, TagGetBoardSerial)
	if err != nil {
		return 0, err
	}
	return v.Uint64(0), nil
}

// A MemoryRange describes a contiguous region of physical memory.
type MemoryRange struct {
	Base uint32
	Size uint32
}

// ARMMemory returns the memory assigned to the ARM cores.
func ARMMemory(m *mbox.Mailbox) (MemoryRange, error) {
	return memory(m, TagGetARMMemory)
}

// VCMemory returns the memory kept by the VideoCore.
func VCMemory(m *mbox.Mailbox) (MemoryRange, error) {
	return memory(m, TagGetVCMemory)
}

func memory(m *mbox.Mailbox, tag mbox.Tag) (MemoryRange, error) {
	v, err := query(m, tag)
	if err != nil {
		return MemoryRange{}, err
	}
	return MemoryRange{Base: v.Uint32(0), Size: v.Uint32(1)}, nil
}

// CommandLine returns the kernel command line assembled by the firmware.
func CommandLine(m *mbox.Mailbox) (string, error) {
	v, err := query(m, TagGetCommandLine)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(v.Bytes()), "\x00"), nil
}

// PowerFlags describe the state of a power domain.
type PowerFlags uint32

const (
	PowerOn     PowerFlags = 1 << 0
	PowerWait   PowerFlags = 1 << 1 // in requests: wait for the state to settle
	PowerAbsent PowerFlags = 1 << 1 // in responses: device does not exist
)

// PowerState returns the state of a power domain.
func PowerState(m *mbox.Mailbox, d PowerDomain) (PowerFlags, error) {
	v, err := query(m, TagGetPowerState, uint32(d))
	if err != nil {
		return 0, err
	}
	return PowerFlags(v.Uint32(1)), nil
}

// SetPowerState changes the state of a power domain and returns the state
// the firmware settled on.
func SetPowerState(m *mbox.Mailbox, d PowerDomain, flags PowerFlags) (PowerFlags, error) {
	v, err := query(m, TagSetPowerState, uint32(d), uint32(flags))
	if err != nil {
		return 0, err
	}
	return PowerFlags(v.Uint32(1)), nil
}

// ClockRate returns the configured rate of a clock in Hz.
func ClockRate(m *mbox.Mailbox, id ClockID) (uint32, error) {
	return clock(m, TagGetClockRate, id)
}

// ClockRateMeasured returns the measured rate of a clock in Hz.
func ClockRateMeasured(m *mbox.Mailbox, id ClockID) (uint32, error) {
	return clock(m, TagGetClockRateMeasured, id)
}

// MaxClockRate returns the highest supported rate of a clock in Hz.
func MaxClockRate(m *mbox.Mailbox, id ClockID) (uint32, error) {
	return clock(m, TagGetMaxClockRate, id)
}

// MinClockRate returns the lowest supported rate of a clock in Hz.
func MinClockRate(m *mbox.Mailbox, id ClockID) (uint32, error) {
	return clock(m, TagGetMinClockRate, id)
}

func clock(m *mbox.Mailbox, tag mbox.Tag, id ClockID) (uint32, error) {
	v, err := query(m, tag, uint32(id))
	if err != nil {
		return 0, err
	}
	return v.Uint32(1), nil
}

// SetClockRate requests a new rate for a clock and returns the rate the
// firmware chose. With skipTurbo set the firmware won't interpret setting
// the ARM clock as a request for turbo mode.
func SetClockRate(m *mbox.Mailbox, id ClockID, hz uint32, skipTurbo bool) (uint32, error) {
	skip := uint32(0)
	if skipTurbo {
		skip = 1
	}
	v, err := query(m, TagSetClockRate, uint32(id), hz, skip)
	if err != nil {
		return 0, err
	}
	return v.Uint32(1), nil
}

// Turbo reports whether turbo mode is active.
func Turbo(m *mbox.Mailbox) (bool, error) {
	v, err := query(m, TagGetTurbo, 0)
	if err != nil {
		return false, err
	}
	return v.Uint32(1) != 0, nil
}

// SetTurbo switches turbo mode and reports the resulting state.
func SetTurbo(m *mbox.Mailbox, on bool) (bool, error) {
	level := uint32(0)
	if on {
		level = 1
	}
	v, err := query(m, TagSetTurbo, 0, level)
	if err != nil {
		return false, err
	}
	return v.Uint32(1) != 0, nil
}

// Voltage returns the voltage of a rail in microvolts.
func Voltage(m *mbox.Mailbox, id VoltageID) (uint32, error) {
	v, err := query(m, TagGetVoltage, uint32(id))
	if err != nil {
		return 0, err
	}
	return v.Uint32(1), nil
}

// Temperature returns the SoC temperature in millidegrees celsius.
func Temperature(m *mbox.Mailbox) (uint32, error) {
	v, err := query(m, TagGetTemperature, 0)
	if err != nil {
		return 0, err
	}
	return v.Uint32(1), nil
}

// MaxTemperature returns the throttling threshold in millidegrees celsius.
func MaxTemperature(m *mbox.Mailbox) (uint32, error) {
	v, err := query(m, TagGetMaxTemperature, 0)
	if err != nil {
		return 0, err
	}
	return v.Uint32(1), nil
}

// MemFlags configure a VideoCore memory allocation.
type MemFlags uint32

const (
	MemDiscardable MemFlags = 1 << 0 // can be resized to 0 at any time
	MemDirect      MemFlags = 1 << 2 // uncached on the VideoCore
	MemCoherent    MemFlags = 1 << 3 // non allocating on the VideoCore
	MemZero        MemFlags = 1 << 4 // initialise to zero
	MemNoInit      MemFlags = 1 << 5 // don't initialise
	MemPermalock   MemFlags = 1 << 6 // likely to be locked for long periods
)

// MemAlloc allocates VideoCore memory and returns its handle. The memory is
// addressable only after [MemLock].
func MemAlloc(m *mbox.Mailbox, size, align uint32, flags MemFlags) (uint32, error) {
	v, err := query(m, TagMemAlloc, size, align, uint32(flags))
	if err != nil {
		return 0, err
	}
	return v.Uint32(0), nil
}

// MemLock pins an allocation and returns its bus address.
func MemLock(m *mbox.Mailbox, handle uint32) (cpu.Addr, error) {
	v, err := query(m, TagMemLock, handle)
	if err != nil {
		return 0, err
	}
	return cpu.Addr(v.Uint32(0)), nil
}

// MemUnlock unpins an allocation, keeping it allocated.
func MemUnlock(m *mbox.Mailbox, handle uint32) error {
	return memStatus(m, TagMemUnlock, handle)
}

// MemFree releases an allocation.
func MemFree(m *mbox.Mailbox, handle uint32) error {
	return memStatus(m, TagMemRelease, handle)
}

func memStatus(m *mbox.Mailbox, tag mbox.Tag, handle uint32) error {
	v, err := query(m, tag, handle)
	if err != nil {
		return err
	}
	if status := v.Uint32(0); status != 0 {
		return fmt.Errorf("handle %#x: status %v: %w", handle, status, mbox.ErrRequestFailed)
	}
	return nil
}
