// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package mcp23008

import (
	"errors"
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/pin"
)

// ErrPinNotInGroup is returned by a group's WaitForEdge when the pin that
// raised the interrupt isn't part of the group.
var ErrPinNotInGroup = errors.New("mcp23008: interrupt raised by a pin outside the group")

// The internal structure for a group of pins.
type pinGroup struct {
	dev         *Dev
	pins        []*portpin
	defaultMask gpio.GPIOValue
}

// Group returns a gpio.Group made up of the specified pin numbers. Bit 0 of
// the group values maps to the first pin, bit 1 to the second and so on.
func (d *Dev) Group(pins ...int) (gpio.Group, error) {
	if len(pins) == 0 {
		return nil, errors.New("mcp23008: empty group")
	}
	grouppins := make([]*portpin, len(pins))
	for ix, number := range pins {
		if number < 0 || number >= NumPins {
			return nil, fmt.Errorf("%w %d", ErrInvalidPin, number)
		}
		grouppins[ix] = d.Pins[number].(*portpin)
	}
	return &pinGroup{
		dev:         d,
		pins:        grouppins,
		defaultMask: gpio.GPIOValue((1 << len(pins)) - 1),
	}, nil
}

// Pins returns the set of pin.Pin that make up that group.
func (pg *pinGroup) Pins() []pin.Pin {
	pins := make([]pin.Pin, len(pg.pins))
	for ix, p := range pg.pins {
		pins[ix] = p
	}
	return pins
}

// Given the offset within the group, return the corresponding GPIO pin.
func (pg *pinGroup) ByOffset(offset int) pin.Pin {
	if offset < 0 || offset >= len(pg.pins) {
		return nil
	}
	return pg.pins[offset]
}

// Given the specific name of a pin, return it. If it can't be found, nil is
// returned.
func (pg *pinGroup) ByName(name string) pin.Pin {
	for _, p := range pg.pins {
		if p.Name() == name {
			return p
		}
	}
	return nil
}

// Given the GPIO pin number, return that pin from the set.
func (pg *pinGroup) ByNumber(number int) pin.Pin {
	for _, p := range pg.pins {
		if p.Number() == number {
			return p
		}
	}
	return nil
}

// portMask converts a value relative to the group into the port bits. mask
// selects the group bits to convert.
func (pg *pinGroup) portMask(value, mask gpio.GPIOValue) (bits, sel uint8) {
	for ix, p := range pg.pins {
		if mask&(1<<ix) == 0 {
			continue
		}
		sel |= 1 << p.pinbit
		if value&(1<<ix) != 0 {
			bits |= 1 << p.pinbit
		}
	}
	return bits, sel
}

func (pg *pinGroup) effectiveMask(mask gpio.GPIOValue) gpio.GPIOValue {
	if mask == 0 {
		return pg.defaultMask
	}
	return mask & pg.defaultMask
}

// Out writes value to the specified pins of the group. If mask is 0, all
// pins of the group are written. Pins that are not outputs yet are
// switched to output after their latch is set.
func (pg *pinGroup) Out(value, mask gpio.GPIOValue) error {
	wr, wrMask := pg.portMask(value, pg.effectiveMask(mask))
	err := pg.dev.olat.update(func(v uint8) uint8 { return v&^wrMask | wr }, true)
	if err != nil {
		return err
	}
	return pg.dev.iodir.update(func(v uint8) uint8 { return v &^ wrMask }, true)
}

// Read returns the state of the pins in the group selected by mask. Pins
// not configured as inputs are transparently re-configured.
func (pg *pinGroup) Read(mask gpio.GPIOValue) (gpio.GPIOValue, error) {
	_, rmask := pg.portMask(0, pg.effectiveMask(mask))
	if err := pg.dev.iodir.update(func(v uint8) uint8 { return v | rmask }, true); err != nil {
		return 0, err
	}
	v, err := pg.dev.ReadPort()
	if err != nil {
		return 0, err
	}
	var result gpio.GPIOValue
	for ix, p := range pg.pins {
		if rmask&(1<<p.pinbit) != 0 && v&(1<<p.pinbit) != 0 {
			result |= 1 << ix
		}
	}
	return result, nil
}

// WaitForEdge waits for INT to be asserted and returns the offset in the
// group of the pin that caused it. It requires Dev.SetEdgePin and pins
// configured with Dev.SetInterrupt.
//
// The edge is deduced from the captured port value: a pin captured high rose,
// a pin captured low fell.
//
// On timeout, -1 and gpio.NoEdge are returned with a nil error. If the
// interrupt was raised by a pin outside the group, its pin number is returned
// with ErrPinNotInGroup.
func (pg *pinGroup) WaitForEdge(timeout time.Duration) (number int, edge gpio.Edge, err error) {
	intr, ok, err := pg.dev.WaitForInterrupt(timeout)
	if err != nil || !ok {
		return -1, gpio.NoEdge, err
	}
	for bit := range uint8(NumPins) {
		if intr.Flags&(1<<bit) == 0 {
			continue
		}
		edge = gpio.FallingEdge
		if intr.Captured&(1<<bit) != 0 {
			edge = gpio.RisingEdge
		}
		for ix, p := range pg.pins {
			if p.pinbit == bit {
				return ix, edge, nil
			}
		}
		return int(bit), edge, ErrPinNotInGroup
	}
	return -1, gpio.NoEdge, nil
}

// Halt interrupts a pending WaitForEdge() call if one is in process.
func (pg *pinGroup) Halt() error {
	return pg.dev.Halt()
}

// String returns the device name and configured pins for the group.
func (pg *pinGroup) String() string {
	s := fmt.Sprintf("%s - [ ", pg.dev)
	for _, p := range pg.pins {
		s += fmt.Sprintf("%d ", p.Number())
	}
	s += "]"
	return s
}

var _ gpio.Group = &pinGroup{}
