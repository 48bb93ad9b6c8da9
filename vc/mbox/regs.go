//go:build noos

package mbox

import (
	"embedded/mmio"
	"sync"
	"unsafe"

	"github.com/bitkis/ruspiro-mailbox/vc"
	"github.com/bitkis/ruspiro-mailbox/vc/cpu"
)

var regs *registers = (*registers)(unsafe.Pointer(baseAddr))

const baseAddr = vc.PeripheralBase + 0xb880

type registers struct {
	read    mmio.U32 // mailbox 0, VC -> ARM
	_       [3]uint32
	peek0   mmio.U32
	sender0 mmio.U32
	status0 mmio.R32[Status]
	config0 mmio.U32
	write   mmio.U32 // mailbox 1, ARM -> VC
	_       [3]uint32
	peek1   mmio.U32
	sender1 mmio.U32
	status1 mmio.R32[Status]
	config1 mmio.U32
}

// hw is the register file of the real mailbox. Addresses are translated
// into the VideoCore's uncached bus view right at the register boundary.
type hw struct{}

func (hw) ReadData() uintptr   { return uintptr(regs.read.Load()) }
func (hw) ReadStatus() Status  { return regs.status0.Load() }
func (hw) WriteData(v uintptr) { regs.write.Store(uint32(cpu.BusAddress(v))) }
func (hw) WriteStatus() Status { return regs.status1.Load() }

var (
	once  sync.Once
	board *Guard
)

func hwGuard() (*Guard, error) {
	once.Do(func() {
		board = NewGuard(New(hw{}))
	})
	return board, nil
}
