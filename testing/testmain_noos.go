//go:build noos

package testing

import (
	"embedded/rtos"
	"os"
	"syscall"
	"testing"

	"github.com/bitkis/ruspiro-mailbox/drivers/miniuart"

	"github.com/embeddedgo/fs/termfs"
)

// TestMain should be used as TestMain for Raspberry Pi specific tests. It
// brings up the mini UART console before handing over to the test driver,
// so test output reaches the host over serial.
func TestMain(m *testing.M) {
	var err error

	uart := miniuart.Setup(115200)

	fs := termfs.NewLight("termfs", nil, uart)
	rtos.Mount(fs, "/dev/console")
	os.Stdout, err = os.OpenFile("/dev/console", syscall.O_WRONLY, 0)
	if err != nil {
		panic(err)
	}
	os.Stderr = os.Stdout

	// TODO find a way to pass these from the 'go test' command
	os.Args = append(os.Args, "-test.v")

	os.Exit(m.Run())
}
