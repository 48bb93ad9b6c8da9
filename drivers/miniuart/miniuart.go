//go:build noos

package miniuart

import (
	"embedded/mmio"
	"unsafe"

	"github.com/bitkis/ruspiro-mailbox/vc"
)

const (
	gpioAddr = vc.PeripheralBase + 0x20_0000
	auxAddr  = vc.PeripheralBase + 0x21_5000

	coreClock = 250_000_000
)

var (
	gpio = (*gpioRegs)(unsafe.Pointer(gpioAddr))
	aux  = (*auxRegs)(unsafe.Pointer(auxAddr))
)

type gpioRegs struct {
	fsel   [6]mmio.U32
	_      [31]uint32
	pud    mmio.U32
	pudclk [2]mmio.U32
}

type auxRegs struct {
	irq     mmio.U32
	enables mmio.U32
	_       [14]uint32
	io      mmio.U32
	ier     mmio.U32
	iir     mmio.U32
	lcr     mmio.U32
	mcr     mmio.U32
	lsr     mmio.R32[lineStatus]
	msr     mmio.U32
	_       uint32
	cntl    mmio.U32
	stat    mmio.U32
	baud    mmio.U32
}

type lineStatus uint32

const (
	rxReady lineStatus = 1 << 0
	txEmpty lineStatus = 1 << 5
)

// A UART is a configured mini UART. Methods may be called concurrently with
// [DefaultWrite], bytes from both sources interleave on the wire.
type UART struct{}

// Setup enables the mini UART at the given baud rate with 8N1 framing and
// routes it to GPIO 14 and 15.
func Setup(baud int) *UART {
	aux.enables.Store(aux.enables.Load() | 1)
	aux.cntl.Store(0)
	aux.ier.Store(0)
	aux.lcr.Store(3)
	aux.mcr.Store(0)
	aux.iir.Store(0xc6)
	aux.baud.Store(uint32(coreClock/(8*baud) - 1))

	// GPIO 14 and 15 to alt5 (TXD1, RXD1)
	fsel := gpio.fsel[1].Load()
	fsel &^= 0b111_111 << 12
	fsel |= 0b010<<12 | 0b010<<15
	gpio.fsel[1].Store(fsel)

	// Detach the pull resistors from both pins. The sequence needs two
	// 150 cycle waits, see BCM2835 ARM Peripherals 6.1.
	gpio.pud.Store(0)
	settle()
	gpio.pudclk[0].Store(1<<14 | 1<<15)
	settle()
	gpio.pudclk[0].Store(0)

	aux.cntl.Store(3) // receiver and transmitter on

	return &UART{}
}

func settle() {
	for range 150 {
		gpio.pud.Load()
	}
}

// Write sends p over the wire. It busy waits for FIFO space and never
// fails.
func (u *UART) Write(p []byte) (int, error) {
	for _, c := range p {
		putByte(c)
	}
	return len(p), nil
}

// ReadByte blocks until a byte arrives.
func (u *UART) ReadByte() byte {
	for aux.lsr.Load()&rxReady == 0 {
	}
	return byte(aux.io.Load())
}

//go:nosplit
func putByte(c byte) {
	for aux.lsr.Load()&txEmpty == 0 {
	}
	aux.io.Store(uint32(c))
}
