// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package mcp23008

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"periph.io/x/conn/v3/gpio"
)

// ErrNoEdgePin is returned when waiting for an interrupt without a host pin
// connected to INT.
var ErrNoEdgePin = errors.New("mcp23008: no edge pin, call SetEdgePin first")

// IntPolarity is the electrical behavior of the INT output.
type IntPolarity uint8

const (
	ActiveLow  IntPolarity = 0 // Push-pull, active low. Power on default.
	ActiveHigh IntPolarity = 1 // Push-pull, active high.
	OpenDrain  IntPolarity = 2 // Open-drain, needs an external pull-up.
)

func (p IntPolarity) String() string {
	switch p {
	case ActiveLow:
		return "ActiveLow"
	case ActiveHigh:
		return "ActiveHigh"
	case OpenDrain:
		return "OpenDrain"
	default:
		return "IntPolarity(" + strconv.Itoa(int(p)) + ")"
	}
}

// Interrupt is the state read after INT was asserted.
type Interrupt struct {
	// Flags has a bit set for every pin that caused the interrupt (INTF).
	Flags uint8
	// Captured is the port value at the time of the interrupt (INTCAP).
	Captured uint8
}

// SetInterrupt enables interrupt-on-change for a pin.
//
// gpio.BothEdges compares the pin against its previous value. gpio.RisingEdge
// and gpio.FallingEdge compare it against DEFVAL, set to 0 and 1
// respectively. The chip then keeps INT asserted for as long as the pin
// differs from DEFVAL, so it behaves as a level trigger until INTCAP is read
// with the pin back at its default.
func (d *Dev) SetInterrupt(pin uint8, edge gpio.Edge) error {
	if err := checkPin(pin); err != nil {
		return err
	}
	switch edge {
	case gpio.RisingEdge, gpio.FallingEdge, gpio.BothEdges:
	default:
		return fmt.Errorf("%w: edge %s", ErrInvalidValue, edge)
	}
	mask := uint8(1) << pin
	intcon, err := d.intcon.read()
	if err != nil {
		return err
	}
	if edge == gpio.BothEdges {
		intcon &^= mask
	} else {
		intcon |= mask
		err = d.defval.update(func(v uint8) uint8 {
			if edge == gpio.RisingEdge {
				return v &^ mask
			}
			return v | mask
		}, false)
		if err != nil {
			return err
		}
	}
	if err := d.intcon.write(intcon); err != nil {
		return err
	}
	return d.gpinten.setBit(pin, true, false)
}

// DisableInterrupt disables interrupt-on-change for a pin.
func (d *Dev) DisableInterrupt(pin uint8) error {
	if err := checkPin(pin); err != nil {
		return err
	}
	return d.gpinten.setBit(pin, false, false)
}

// InterruptFlags reads INTF.
func (d *Dev) InterruptFlags() (uint8, error) {
	return d.intf.read()
}

// InterruptCapture reads INTCAP. The read clears the pending interrupt, it
// must be done to re-arm INT.
func (d *Dev) InterruptCapture() (uint8, error) {
	return d.intcap.read()
}

// SetInterruptPolarity configures the INT output.
func (d *Dev) SetInterruptPolarity(p IntPolarity) error {
	if p > OpenDrain {
		return fmt.Errorf("%w: interrupt polarity %s", ErrInvalidValue, p)
	}
	return d.iocon.update(func(v uint8) uint8 {
		v &^= ODR | INTPOL
		switch p {
		case ActiveHigh:
			v |= INTPOL
		case OpenDrain:
			v |= ODR
		}
		return v
	}, false)
}

// InterruptPolarity returns the INT output configuration. ODR takes
// precedence over INTPOL, as on the chip.
func (d *Dev) InterruptPolarity() (IntPolarity, error) {
	v, err := d.iocon.read()
	if err != nil {
		return ActiveLow, err
	}
	switch {
	case v&ODR != 0:
		return OpenDrain, nil
	case v&INTPOL != 0:
		return ActiveHigh, nil
	default:
		return ActiveLow, nil
	}
}

// SetEdgePin binds a host GPIO connected to the INT output of the chip.
//
// The host pin is configured according to the current interrupt polarity:
// falling edge with pull-up for ActiveLow and OpenDrain, rising edge with
// pull-down for ActiveHigh. Call it again after SetInterruptPolarity.
func (d *Dev) SetEdgePin(p gpio.PinIn) error {
	pol, err := d.InterruptPolarity()
	if err != nil {
		return err
	}
	pull, edge := gpio.PullUp, gpio.FallingEdge
	if pol == ActiveHigh {
		pull, edge = gpio.PullDown, gpio.RisingEdge
	}
	if err := p.In(pull, edge); err != nil {
		return fmt.Errorf("mcp23008: edge pin %s: %w", p, err)
	}
	d.edgePin = p
	return nil
}

// WaitForInterrupt blocks until INT is asserted or timeout expires. A
// negative timeout waits forever. It returns false on timeout.
//
// On assertion INTF then INTCAP are read, which re-arms the interrupt.
func (d *Dev) WaitForInterrupt(timeout time.Duration) (Interrupt, bool, error) {
	if d.edgePin == nil {
		return Interrupt{}, false, ErrNoEdgePin
	}
	if !d.edgePin.WaitForEdge(timeout) {
		return Interrupt{}, false, nil
	}
	flags, err := d.intf.read()
	if err != nil {
		return Interrupt{}, false, err
	}
	captured, err := d.intcap.read()
	if err != nil {
		return Interrupt{Flags: flags}, false, err
	}
	return Interrupt{Flags: flags, Captured: captured}, true, nil
}
