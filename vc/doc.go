// The vc package provides low-level access to the interface between the ARM
// cores and the VideoCore on Raspberry Pi SoCs.
//
// It exposes the hardware directly and is in general unsafe. Use the higher
// level packages like mbox/prop and fb to talk to the firmware instead.
package vc

// VideoCore IV/VI
// https://github.com/raspberrypi/firmware/wiki/Mailboxes
