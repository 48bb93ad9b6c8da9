// Copyright 2024 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kernel

import (
	"debug/elf"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

const usageString = `ELF to raw kernel image converter.

Usage: %s [flags] <elffile>

Flattens a GOOS=noos elf into the raw image format the videocore
bootloader expects, i.e. what goes on the sd card as kernel8.img.

`

var (
	flags = flag.NewFlagSet("kernel", flag.ExitOnError)

	infile string
	run    = flags.String("run", "", "Run the image with command, "+
		"e.g. 'qemu-system-aarch64 -M raspi3b -nographic -kernel'")
)

func usage() {
	fmt.Fprintf(flags.Output(), usageString, "kernel")
	flags.PrintDefaults()
}

func objcopy(dst io.WriterAt, src *elf.File) error {
	for _, s := range src.Sections {
		if s.Type != elf.SHT_PROGBITS || s.Flags&elf.SHF_ALLOC == 0 {
			continue
		}
		data, err := s.Data()
		if err != nil {
			return err
		}

		if s.Addr < src.Entry {
			return errors.New("data before entry point")
		}

		_, err = dst.WriteAt(data, int64(s.Addr-src.Entry))
		if err != nil {
			return err
		}
	}

	return nil
}

func Main(args []string) {
	flags.Usage = usage
	flags.Parse(args[1:])

	if flags.NArg() == 1 {
		infile = flags.Arg(0)
	} else {
		flags.Usage()
		os.Exit(1)
	}

	outfile, _ := strings.CutSuffix(infile, ".elf")
	outfile += ".img"

	elffile, err := elf.Open(infile)
	if err != nil {
		log.Fatalln(err)
	}
	defer elffile.Close()

	out, err := os.Create(outfile)
	if err != nil {
		log.Fatalln(err)
	}
	defer out.Close()

	err = objcopy(out, elffile)
	if err != nil {
		log.Fatalln("objcopy:", err)
	}

	if *run != "" {
		runKernel(*run, outfile)
	}
}
