// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package portview

import (
	"bytes"
	"io"
	"os"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// Terminal writes snapshots on a single, continuously refreshed line.
type Terminal struct {
	w       io.Writer
	palette *ansi256.Palette
	color   bool

	buf bytes.Buffer
}

// NewTerminal returns a Terminal writing to stdout. Colors are only used
// when stdout is a terminal.
func NewTerminal() *Terminal {
	fd := os.Stdout.Fd()
	tty := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	return NewTerminalWriter(colorable.NewColorableStdout(), tty, nil)
}

// NewTerminalWriter returns a Terminal writing to w. If p is nil,
// ansi256.Default is used.
func NewTerminalWriter(w io.Writer, color bool, p *ansi256.Palette) *Terminal {
	if p == nil {
		p = ansi256.Default
	}
	return &Terminal{w: w, palette: p, color: color}
}

// Write draws s, overwriting the previous line.
func (t *Terminal) Write(s Snapshot) error {
	t.buf.Reset()
	if !t.color {
		_, _ = t.buf.WriteString(s.String())
		_ = t.buf.WriteByte('\n')
		_, err := t.buf.WriteTo(t.w)
		return err
	}
	_, _ = t.buf.WriteString("\r\033[0m")
	for pin := range NumPins {
		_, _ = t.buf.WriteString(t.palette.Block(s.PinColor(pin)))
	}
	_, _ = t.buf.WriteString("\033[0m ")
	_, _ = t.buf.WriteString(s.String())
	_, err := t.buf.WriteTo(t.w)
	return err
}

// Halt resets the terminal attributes and ends the line.
func (t *Terminal) Halt() error {
	if !t.color {
		return nil
	}
	_, err := t.w.Write([]byte("\n\033[0m"))
	return err
}
