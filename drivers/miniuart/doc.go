// Package miniuart drives the BCM283x auxiliary mini UART on GPIO 14 and
// 15, the usual debug console of the Raspberry Pi.
//
// The mini UART divides the core clock. Fix it in config.txt with
// core_freq=250, otherwise the baud rate drifts with frequency scaling.
package miniuart
