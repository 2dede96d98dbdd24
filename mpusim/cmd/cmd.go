// Copyright (c) The armv8m-mpu authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"regexp"
	"sort"
	"strings"
	"text/tabwriter"

	"golang.org/x/term"

	"github.com/coretrust/armv8m-mpu/mpu"
)

// Banner is the console welcome banner.
var Banner string

// Target is the MPU bank operated on by the console commands.
var Target *mpu.MPU

// Regions is the number of regions implemented by the target bank.
var Regions int

// CmdFn represents a console command handler.
type CmdFn func(term *term.Terminal, arg []string) (res string, err error)

// Cmd represents a console command.
type Cmd struct {
	// Name is the command name.
	Name string
	// Args defines the number of command arguments, meant to be in the
	// Pattern capturing brackets.
	Args int
	// Pattern defines the command syntax and arguments.
	Pattern *regexp.Regexp
	// Syntax defines the Help() command syntax field.
	Syntax string
	// Help defines the Help() command description field.
	Help string
	// Fn defines the command handler.
	Fn CmdFn
}

var cmds = make(map[string]*Cmd)

// Add registers a terminal interface command.
func Add(cmd Cmd) {
	cmds[cmd.Name] = &cmd
}

// Help returns a formatted string with instructions for all registered
// commands.
func Help(term *term.Terminal) string {
	var help bytes.Buffer
	var names []string

	t := tabwriter.NewWriter(&help, 0, 8, 1, ' ', 0)

	for name := range cmds {
		names = append(names, name)
	}

	sort.Strings(names)

	for _, name := range names {
		cmd := cmds[name]
		fmt.Fprintf(t, "%s\t%s\t # %s\n", cmd.Name, cmd.Syntax, cmd.Help)
	}

	_ = t.Flush()

	return string(term.Escape.Cyan) + help.String() + string(term.Escape.Reset)
}

// Handle parses a console command line against all registered commands
// and runs the matching one.
func Handle(term *term.Terminal, line string) (err error) {
	var match *Cmd
	var arg []string
	var res string

	line = strings.TrimSpace(line)

	if len(line) == 0 {
		return
	}

	for _, cmd := range cmds {
		if cmd.Pattern == nil {
			if line == cmd.Name {
				match = cmd
				break
			}
		} else if m := cmd.Pattern.FindStringSubmatch(line); len(m) == cmd.Args+1 {
			match = cmd
			arg = m[1:]
			break
		}
	}

	if match == nil {
		return errors.New("unknown command, type `help`")
	}

	if res, err = match.Fn(term, arg); err != nil {
		return
	}

	fmt.Fprintln(term, res)

	return
}

// SerialConsole runs the command interpreter on the argument terminal
// until EOF.
func SerialConsole(rw io.ReadWriter) {
	t := term.NewTerminal(rw, "")
	t.SetPrompt(string(t.Escape.Red) + "> " + string(t.Escape.Reset))

	fmt.Fprintf(t, "%s\n", Banner)
	fmt.Fprintf(t, "%s\n", Help(t))

	for {
		line, err := t.ReadLine()

		if err == io.EOF {
			break
		}

		if err != nil {
			log.Printf("readline error: %v", err)
			continue
		}

		err = Handle(t, line)

		if err == io.EOF {
			break
		}

		if err != nil {
			fmt.Fprintf(t, "error: %v\n", err)
		}
	}
}
