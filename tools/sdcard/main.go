package sdcard

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/diskfs/go-diskfs"
	"github.com/diskfs/go-diskfs/disk"
	"github.com/diskfs/go-diskfs/filesystem"
	"github.com/diskfs/go-diskfs/partition/mbr"
)

const usageString = `Bootable sd card image builder.

Usage: %s [flags] <kernelimg>

Builds an mbr partitioned image with a single fat32 boot partition holding
the kernel as kernel8.img along with config.txt and cmdline.txt. The
closed firmware blobs (bootcode.bin, start.elf, fixup.dat) are not
distributable with this tool, point -firmware at a checkout of them.

`

// Keeps the core clock fixed so the mini UART baud rate doesn't drift, see
// the miniuart package.
const configTxt = `arm_64bit=1
enable_uart=1
core_freq=250
`

var (
	flags = flag.NewFlagSet("sdcard", flag.ExitOnError)

	infile   string
	out      = flags.String("o", "sdcard.img", "Output image path")
	size     = flags.Int64("size", 64, "Image size in MiB")
	firmware = flags.String("firmware", "", "Directory with the videocore boot blobs")
	cmdline  = flags.String("cmdline", "console=serial0,115200", "Kernel command line")
)

func usage() {
	fmt.Fprintf(flags.Output(), usageString, "sdcard")
	flags.PrintDefaults()
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

	err := build()
	if err != nil {
		log.Fatalln(err)
	}
}

func build() error {
	const sector = 512
	sectors := uint32(*size << 20 / sector)

	// diskfs refuses to clobber an existing image
	os.Remove(*out)

	img, err := diskfs.Create(*out, int64(sectors)*sector, diskfs.Raw, diskfs.SectorSizeDefault)
	if err != nil {
		return err
	}

	table := &mbr.Table{
		LogicalSectorSize: sector,
		Partitions: []*mbr.Partition{{
			Bootable: true,
			Type:     mbr.Fat32LBA,
			Start:    2048,
			Size:     sectors - 2048,
		}},
	}
	err = img.Partition(table)
	if err != nil {
		return err
	}

	fs, err := img.CreateFilesystem(disk.FilesystemSpec{
		Partition:   1,
		FSType:      filesystem.TypeFat32,
		VolumeLabel: "boot",
	})
	if err != nil {
		return err
	}

	err = copyFile(fs, "/kernel8.img", infile)
	if err != nil {
		return err
	}
	err = writeFile(fs, "/config.txt", []byte(configTxt))
	if err != nil {
		return err
	}
	err = writeFile(fs, "/cmdline.txt", []byte(*cmdline+"\n"))
	if err != nil {
		return err
	}

	if *firmware != "" {
		entries, err := os.ReadDir(*firmware)
		if err != nil {
			return err
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			err = copyFile(fs, "/"+e.Name(), filepath.Join(*firmware, e.Name()))
			if err != nil {
				return err
			}
		}
	}

	return nil
}

func writeFile(fs filesystem.FileSystem, name string, p []byte) error {
	f, err := fs.OpenFile(name, os.O_CREATE|os.O_RDWR)
	if err != nil {
		return err
	}
	_, err = f.Write(p)
	return err
}

func copyFile(fs filesystem.FileSystem, name, src string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	f, err := fs.OpenFile(name, os.O_CREATE|os.O_RDWR)
	if err != nil {
		return err
	}
	_, err = io.Copy(f, in)
	return err
}
