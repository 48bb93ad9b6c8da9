package cpu

// The VideoCore addresses SDRAM through bus aliases in the upper address
// bits. Alias 0xc bypasses both VC caches, which is what the firmware
// expects for pointers handed over via mailbox.
const busAlias = 0xc000_0000

// Addr represents a bus address as seen by the VideoCore.
type Addr uint32

// BusAddress returns the bus address of a physical ARM address.
func BusAddress(addr uintptr) Addr {
	return Addr(addr) | busAlias
}

// PhysicalAddress returns the physical ARM address aliased by a bus address.
func PhysicalAddress(addr Addr) uintptr {
	return uintptr(addr &^ busAlias)
}
