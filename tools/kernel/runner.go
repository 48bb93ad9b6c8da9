// Copyright 2024 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kernel

import (
	"bufio"
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/aymanbagabas/go-pty"
	"github.com/buildkite/shellwords"
)

// runKernel boots the image with the given command, typically an emulator,
// and scans the serial output for a test verdict. The command runs on a
// pty so its stdio serial behaves like a real terminal and keystrokes
// reach the kernel.
func runKernel(cmdline, imgpath string) {
	args, err := shellwords.Split(cmdline)
	if err != nil {
		log.Fatal("run:", err)
	}
	args = append(args, imgpath)

	ptmx, err := pty.New()
	if err != nil {
		log.Fatal("open pty:", err)
	}
	defer ptmx.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cmd := ptmx.CommandContext(ctx, args[0], args[1:]...)
	err = cmd.Start()
	if err != nil {
		log.Fatal("start command:", err)
	}

	sigintr := make(chan os.Signal, 1)
	signal.Notify(sigintr, os.Interrupt)
	go func() {
		<-sigintr
		cancel()
	}()

	go io.Copy(ptmx, os.Stdin)

	scanner := bufio.NewScanner(ptmx)
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
			code = 1
			fallthrough
		case line == "PASS":
			exiting = true
			go func() {
				// give panic() time to print the stacktrace
				time.Sleep(500 * time.Millisecond)
				cancel()
			}()
		}
	}
	cmd.Wait()
	os.Exit(code)
}
