// Copyright (c) The armv8m-mpu authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package cmd

import (
	"bytes"
	"io"
	"regexp"
	"runtime/debug"
	"runtime/pprof"

	"golang.org/x/term"
)

func init() {
	Add(Cmd{
		Name: "help",
		Help: "this help",
		Fn:   helpCmd,
	})

	Add(Cmd{
		Name:    "exit, quit",
		Args:    1,
		Pattern: regexp.MustCompile(`^(exit|quit)$`),
		Help:    "close console session",
		Fn:      exitCmd,
	})

	Add(Cmd{
		Name:    "stack",
		Args:    1,
		Pattern: regexp.MustCompile(`^stack ?(all)?$`),
		Syntax:  "(all)?",
		Help:    "goroutine stack trace (current or all)",
		Fn:      stackCmd,
	})
}

func helpCmd(term *term.Terminal, _ []string) (string, error) {
	return Help(term), nil
}

func exitCmd(_ *term.Terminal, _ []string) (string, error) {
	return "logout", io.EOF
}

func stackCmd(_ *term.Terminal, arg []string) (string, error) {
	if arg[0] == "all" {
		buf := new(bytes.Buffer)
		_ = pprof.Lookup("goroutine").WriteTo(buf, 1)

		return buf.String(), nil
	}

	return string(debug.Stack()), nil
}
