// Copyright (c) The armv8m-mpu authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// mpusim drives the mpu package against a software modeled register bank,
// allowing protection layouts to be exercised and inspected interactively
// before they are flashed on a target.
package main

import (
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"runtime"

	"github.com/coretrust/armv8m-mpu/emulator"
	"github.com/coretrust/armv8m-mpu/mem"
	"github.com/coretrust/armv8m-mpu/mpu"
	"github.com/coretrust/armv8m-mpu/mpusim/cmd"
	"github.com/coretrust/armv8m-mpu/util"
)

const (
	listenAddr = "127.0.0.1:2222"
	regions    = 8
)

type console struct {
	io.Reader
	io.Writer
}

func init() {
	log.SetFlags(log.Ltime)
	log.SetOutput(os.Stdout)

	cmd.Banner = fmt.Sprintf("%s/%s (%s) • ARMv8-M MPU simulator",
		runtime.GOOS, runtime.GOARCH, runtime.Version())
}

func main() {
	bank := emulator.NewBank(regions)
	bank.Trace = func(off uint32, val uint32) {
		log.Printf("bank write off:0x%.2x val:0x%.8x", off, val)
	}

	cmd.Target = &mpu.MPU{Regs: bank}
	cmd.Regions = bank.Regions()

	// example layout, default-deny for everything it does not cover
	mem.Apply(cmd.Target)
	cmd.Target.Enable(0)

	log.Printf("%s", cmd.Banner)

	listener, err := net.Listen("tcp", listenAddr)

	if err != nil {
		log.Fatalf("listener error, %v", err)
	}

	ssh := &util.Console{
		Banner:  cmd.Banner,
		Help:    "type `help` for a list of commands",
		Handler: cmd.Handle,
	}

	if err = ssh.Start(listener); err != nil {
		log.Fatalf("ssh console error, %v", err)
	}

	log.Printf("ssh console at %s", listenAddr)

	cmd.SerialConsole(&console{os.Stdin, os.Stdout})
}
