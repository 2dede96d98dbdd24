// Copyright (c) The armv8m-mpu authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package cmd

import (
	"fmt"
	"regexp"
	"strconv"

	"golang.org/x/term"
)

func init() {
	Add(Cmd{
		Name:    "peek",
		Args:    1,
		Pattern: regexp.MustCompile(`^peek ([[:xdigit:]]+)$`),
		Syntax:  "<hex offset>",
		Help:    "bank register display",
		Fn:      regReadCmd,
	})

	Add(Cmd{
		Name:    "poke",
		Args:    2,
		Pattern: regexp.MustCompile(`^poke ([[:xdigit:]]+) ([[:xdigit:]]+)$`),
		Syntax:  "<hex offset> <hex value>",
		Help:    "bank register write (use with caution)",
		Fn:      regWriteCmd,
	})
}

func regReadCmd(_ *term.Terminal, arg []string) (res string, err error) {
	off, err := strconv.ParseUint(arg[0], 16, 32)

	if err != nil {
		return "", fmt.Errorf("invalid offset, %v", err)
	}

	if (off % 4) != 0 {
		return "", fmt.Errorf("only 32-bit aligned accesses are supported")
	}

	return fmt.Sprintf("0x%.8x", Target.Regs.Read(uint32(off))), nil
}

func regWriteCmd(_ *term.Terminal, arg []string) (res string, err error) {
	off, err := strconv.ParseUint(arg[0], 16, 32)

	if err != nil {
		return "", fmt.Errorf("invalid offset, %v", err)
	}

	val, err := strconv.ParseUint(arg[1], 16, 32)

	if err != nil {
		return "", fmt.Errorf("invalid data, %v", err)
	}

	if (off % 4) != 0 {
		return "", fmt.Errorf("only 32-bit aligned accesses are supported")
	}

	Target.Regs.Write(uint32(off), uint32(val))

	return
}
