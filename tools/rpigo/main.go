package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/bitkis/ruspiro-mailbox/tools/kernel"
	"github.com/bitkis/ruspiro-mailbox/tools/sdcard"
)

const usageString = `rpigo is a tool for development of bare metal Raspberry Pi kernels.

Usage:

	%s <command> [arguments]

The commands are:

	kernel   convert and execute elf as raw kernel images
	sdcard   build bootable sd card images
`

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), usageString, os.Args[0])
	flag.PrintDefaults()
}

func main() {
	log.Default().SetFlags(0)
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	switch flag.Arg(0) {
	case "kernel":
		kernel.Main(flag.Args())
	case "sdcard":
		sdcard.Main(flag.Args())
	default:
		fmt.Fprintf(flag.CommandLine.Output(), "unknown command: %s\n", flag.Arg(0))
		flag.Usage()
		os.Exit(1)
	}
}
