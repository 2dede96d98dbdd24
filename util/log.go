// Copyright (c) The armv8m-mpu authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package util

import (
	"golang.org/x/term"
)

// ColorWriter colorizes everything written through it on an attached
// terminal, so that register write traces can be told apart from command
// output.
type ColorWriter struct {
	// Term is the terminal instance
	Term *term.Terminal
	// Color is the escape sequence applied to each write (e.g.
	// Term.Escape.Green)
	Color []byte
}

func (c *ColorWriter) Write(p []byte) (n int, err error) {
	_, _ = c.Term.Write(c.Color)

	if n, err = c.Term.Write(p); err != nil {
		return
	}

	_, _ = c.Term.Write(c.Term.Escape.Reset)

	return
}
