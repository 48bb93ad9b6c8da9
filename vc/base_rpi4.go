//go:build rpi4

package vc

// PeripheralBase is the start of the memory mapped peripherals as seen by the
// ARM cores, here for the BCM2711.
const PeripheralBase uintptr = 0xfe00_0000
