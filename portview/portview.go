// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package portview renders the state of an 8-bit GPIO port, either to a
// terminal using ANSI colors or to an image.Image suitable for a display or
// a PNG file.
//
// Useful to watch an expander while wiring it up.
package portview

import (
	"image/color"
	"strconv"
)

// NumPins is the width of the rendered port.
const NumPins = 8

// Port is the subset of mcp23008.Dev needed to take a snapshot.
type Port interface {
	PinModes() (uint8, error)
	ReadPort() (uint8, error)
	PullUpMask() (uint8, error)
	PolarityMask() (uint8, error)
}

// Snapshot is the state of the port at one point in time. Bit n of every
// field describes pin n.
type Snapshot struct {
	Inputs   uint8 // Set for inputs, cleared for outputs
	Levels   uint8 // Pin levels, after polarity inversion
	PullUps  uint8 // Set when the pull-up is enabled
	Inverted uint8 // Set when polarity is inverted
}

// Read takes a snapshot of p.
func Read(p Port) (Snapshot, error) {
	var s Snapshot
	var err error
	if s.Inputs, err = p.PinModes(); err != nil {
		return s, err
	}
	if s.Levels, err = p.ReadPort(); err != nil {
		return s, err
	}
	if s.PullUps, err = p.PullUpMask(); err != nil {
		return s, err
	}
	s.Inverted, err = p.PolarityMask()
	return s, err
}

// Input returns true if pin is an input.
func (s Snapshot) Input(pin int) bool {
	return s.Inputs&(1<<pin) != 0
}

// High returns true if pin reads high.
func (s Snapshot) High(pin int) bool {
	return s.Levels&(1<<pin) != 0
}

// String returns one token per pin, e.g. "0:o1" for an output driven high or
// "3:i0^" for a low input with its pull-up enabled. "~" marks inversion.
func (s Snapshot) String() string {
	b := make([]byte, 0, NumPins*7)
	for pin := range NumPins {
		if pin != 0 {
			b = append(b, ' ')
		}
		b = strconv.AppendInt(b, int64(pin), 10)
		b = append(b, ':')
		if s.Input(pin) {
			b = append(b, 'i')
		} else {
			b = append(b, 'o')
		}
		if s.High(pin) {
			b = append(b, '1')
		} else {
			b = append(b, '0')
		}
		if s.PullUps&(1<<pin) != 0 {
			b = append(b, '^')
		}
		if s.Inverted&(1<<pin) != 0 {
			b = append(b, '~')
		}
	}
	return string(b)
}

// Colors used for the pins.
var (
	OutputHigh = color.NRGBA{0x00, 0xFF, 0x00, 0xFF}
	OutputLow  = color.NRGBA{0x00, 0x40, 0x00, 0xFF}
	InputHigh  = color.NRGBA{0x00, 0x80, 0xFF, 0xFF}
	InputLow   = color.NRGBA{0x00, 0x00, 0x40, 0xFF}
)

// PinColor returns the color used to draw pin.
func (s Snapshot) PinColor(pin int) color.NRGBA {
	switch {
	case s.Input(pin) && s.High(pin):
		return InputHigh
	case s.Input(pin):
		return InputLow
	case s.High(pin):
		return OutputHigh
	default:
		return OutputLow
	}
}
