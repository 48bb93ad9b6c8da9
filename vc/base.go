//go:build !rpi4

package vc

// PeripheralBase is the start of the memory mapped peripherals as seen by the
// ARM cores. The BCM2837 maps them at 0x3f00_0000, the BCM2835 at 0x2000_0000
// and the BCM2711 at 0xfe00_0000. Offsets of the individual peripheral blocks
// are the same on all of them.
const PeripheralBase uintptr = 0x3f00_0000
