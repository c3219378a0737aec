// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package tinygoi2c adapts a TinyGo I²C bus to periph's i2c.Bus so periph
// device drivers can run on microcontrollers.
//
// Any value implementing drivers.I2C is accepted, notably *machine.I2C.
package tinygoi2c

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
	"tinygo.org/x/drivers"
)

// Bus is a periph i2c.Bus backed by a TinyGo bus.
type Bus struct {
	bus  drivers.I2C
	name string
}

// New returns a Bus using b for transactions. name is what String returns;
// it defaults to "TinyGoI2C".
func New(b drivers.I2C, name string) *Bus {
	if name == "" {
		name = "TinyGoI2C"
	}
	return &Bus{bus: b, name: name}
}

// String implements i2c.Bus.
func (b *Bus) String() string {
	return b.name
}

// Tx implements i2c.Bus.
func (b *Bus) Tx(addr uint16, w, r []byte) error {
	if err := b.bus.Tx(addr, w, r); err != nil {
		return fmt.Errorf("tinygoi2c: tx 0x%02X: %w", addr, err)
	}
	return nil
}

// baudRateSetter is implemented by machine.I2C on most targets.
type baudRateSetter interface {
	SetBaudRate(br uint32) error
}

// SetSpeed implements i2c.Bus.
//
// It is only supported when the underlying bus exposes SetBaudRate.
func (b *Bus) SetSpeed(f physic.Frequency) error {
	s, ok := b.bus.(baudRateSetter)
	if !ok {
		return errors.New("tinygoi2c: SetSpeed is not supported by " + b.name)
	}
	if f < physic.Hertz {
		return fmt.Errorf("tinygoi2c: invalid speed %s", f)
	}
	if err := s.SetBaudRate(uint32(f / physic.Hertz)); err != nil {
		return fmt.Errorf("tinygoi2c: %w", err)
	}
	return nil
}

var _ i2c.Bus = &Bus{}
