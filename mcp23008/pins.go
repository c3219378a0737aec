// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package mcp23008

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/pin"
)

// Pin extends gpio.PinIO interface with features supported by the MCP23008.
type Pin interface {
	gpio.PinIO
	pin.PinFunc
	// SetPolarityInverted if set to true, GPIO register bit reflects the
	// inverted logic state of the pin.
	SetPolarityInverted(p bool) error
	// IsPolarityInverted returns true if the value of the input pin reflects
	// inverted logic state.
	IsPolarityInverted() (bool, error)
}

type portpin struct {
	dev    *Dev
	pinbit uint8
}

func (p *portpin) String() string {
	return p.Name()
}

// Halt turns the pin into an input and disables its interrupt, so it stops
// driving the line.
func (p *portpin) Halt() error {
	return p.In(gpio.PullNoChange, gpio.NoEdge)
}

func (p *portpin) Name() string {
	return p.dev.name + "_GP" + strconv.Itoa(int(p.pinbit))
}

func (p *portpin) Number() int {
	return int(p.pinbit)
}

func (p *portpin) Function() string {
	return string(p.Func())
}

// In configures the pin as an input.
//
// gpio.PullUp and gpio.Float control the internal pull-up, gpio.PullDown is
// not supported by the chip. Any edge other than gpio.NoEdge enables
// interrupt-on-change for the pin, see Dev.SetInterrupt.
func (p *portpin) In(pull gpio.Pull, edge gpio.Edge) error {
	switch pull {
	case gpio.PullDown:
		return errors.New("mcp23008: PullDown is not supported")
	case gpio.PullUp:
		if err := p.dev.SetPullUp(p.pinbit, true); err != nil {
			return err
		}
	case gpio.Float:
		if err := p.dev.SetPullUp(p.pinbit, false); err != nil {
			return err
		}
	case gpio.PullNoChange:
	}
	if err := p.dev.iodir.setBit(p.pinbit, true, true); err != nil {
		return err
	}
	if edge == gpio.NoEdge {
		return p.dev.DisableInterrupt(p.pinbit)
	}
	return p.dev.SetInterrupt(p.pinbit, edge)
}

func (p *portpin) Read() gpio.Level {
	l, _ := p.dev.ReadPin(p.pinbit)
	return l
}

// WaitForEdge waits for INT to be asserted with this pin flagged in INTF. It
// requires Dev.SetEdgePin. Interrupts raised by other pins are consumed, so
// callers waiting on several pins or groups should use Dev.WaitForInterrupt
// instead.
func (p *portpin) WaitForEdge(timeout time.Duration) bool {
	var deadline time.Time
	if timeout >= 0 {
		deadline = time.Now().Add(timeout)
	}
	for {
		intr, ok, err := p.dev.WaitForInterrupt(timeout)
		if err != nil || !ok {
			return false
		}
		if intr.Flags&(1<<p.pinbit) != 0 {
			return true
		}
		if timeout >= 0 {
			if timeout = time.Until(deadline); timeout <= 0 {
				return false
			}
		}
	}
}

func (p *portpin) Pull() gpio.Pull {
	v, err := p.dev.PullUp(p.pinbit)
	if err != nil {
		return gpio.PullNoChange
	}
	if v {
		return gpio.PullUp
	}
	return gpio.Float
}

func (p *portpin) DefaultPull() gpio.Pull {
	return gpio.Float
}

// Out sets the latch then makes the pin an output. The latch is written
// first so the pin starts driving the requested level.
func (p *portpin) Out(l gpio.Level) error {
	if err := p.dev.WritePin(p.pinbit, l); err != nil {
		return err
	}
	return p.dev.iodir.setBit(p.pinbit, false, true)
}

func (p *portpin) PWM(duty gpio.Duty, f physic.Frequency) error {
	return errors.New("mcp23008: PWM is not supported")
}

func (p *portpin) Func() pin.Func {
	v, err := p.dev.iodir.getBit(p.pinbit)
	if err != nil {
		return pin.FuncNone
	}
	if v {
		return gpio.IN
	}
	return gpio.OUT
}

func (p *portpin) SupportedFuncs() []pin.Func {
	return supportedFuncs[:]
}

func (p *portpin) SetFunc(f pin.Func) error {
	var v bool
	switch f {
	case gpio.IN:
		v = true
	case gpio.OUT:
		v = false
	default:
		return errors.New("mcp23008: Function not supported: " + string(f))
	}
	return p.dev.iodir.setBit(p.pinbit, v, true)
}

func (p *portpin) SetPolarityInverted(pol bool) error {
	return p.dev.SetPolarity(p.pinbit, pol)
}

func (p *portpin) IsPolarityInverted() (bool, error) {
	return p.dev.Polarity(p.pinbit)
}

var supportedFuncs = [...]pin.Func{gpio.IN, gpio.OUT}

// port exposes the whole port as a half duplex conn.Conn.
type port struct {
	dev *Dev
}

// Port returns the eight pins as a conn.Conn. Each written byte goes to the
// output latches, each read byte is a sample of the pins. Directions are not
// changed.
func (d *Dev) Port() conn.Conn {
	return &port{dev: d}
}

// Tx takes bytes to either read or write. Only half duplex is supported so
// it is an error to pass 2 buffers at once. The bytes are written or read
// from the port sequentially.
func (p *port) Tx(w, r []byte) error {
	switch {
	case len(w) > 0 && len(r) > 0:
		return fmt.Errorf("mcp23008: only conn.Half duplex is supported")
	case len(w) > 0:
		for _, b := range w {
			if err := p.dev.WritePort(b); err != nil {
				return err
			}
		}
	case len(r) > 0:
		for i := range r {
			b, err := p.dev.ReadPort()
			if err != nil {
				return err
			}
			r[i] = b
		}
	}
	return nil
}

// Duplex returns that this is a half duplex connection.
func (p *port) Duplex() conn.Duplex {
	return conn.Half
}

// String provides the name of this connection.
func (p *port) String() string {
	return p.dev.name + "_GP"
}

var _ Pin = &portpin{}
var _ conn.Conn = &port{}
