// test-runner boots a test kernel in an emulator and scans the serial
// output for passed or failed tests. If a verdict is found, the emulator's
// process group is sent a SIGINT after a short delay. The exit code will
// be 0 if all tests passed, otherwise 1.
package main

import (
	"bufio"
	"flag"
	"log"
	"os"
	"os/exec"
	"strings"
	"syscall"
	"time"
)

var timeout = flag.Duration("timeout", 5*time.Minute,
	"Kill the emulator if no verdict was seen in time")

func main() {
	log.Default().SetFlags(0)
	flag.Parse()
	if flag.NArg() < 1 {
		log.Fatal("usage: test-runner [flags] <command> [arguments]")
	}

	cmd := exec.Command(flag.Arg(0), flag.Args()[1:]...)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		log.Fatal("open stdout:", err)
	}

	err = cmd.Start()
	if err != nil {
		log.Fatal("start command:", err)
	}

	// A hung kernel prints no verdict at all.
	watchdog := time.AfterFunc(*timeout, func() {
		log.Println("timeout waiting for verdict")
		syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
		os.Exit(124)
	})

	scanner := bufio.NewScanner(stdout)
	exiting := false
	code := 0
	for scanner.Scan() {
		log.Println(scanner.Text())
		if exiting {
			continue
		}
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "fatal error:"), strings.HasPrefix(line, "panic:"):
			fallthrough
		case line == "FAIL":
			exiting = true
			code = 1
			go exitCmd(cmd)
		case line == "PASS":
			exiting = true
			go exitCmd(cmd)
		}
	}
	watchdog.Stop()
	cmd.Wait()
	os.Exit(code)
}

func exitCmd(cmd *exec.Cmd) {
	// give panic() time to print the stacktrace
	time.Sleep(500 * time.Millisecond)
	syscall.Kill(-cmd.Process.Pid, syscall.SIGINT)
}
