// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package mcp23008

import (
	"fmt"

	"periph.io/x/conn/v3/i2c"
)

// Register is the address of one of the 8-bit MCP23008 registers.
type Register uint8

// Register map. IOCON.BANK does not exist on the 8-bit part so the layout is
// fixed.
const (
	IODIR   Register = 0x00 // I/O direction: 1=input, 0=output
	IPOL    Register = 0x01 // Input polarity inversion
	GPINTEN Register = 0x02 // Interrupt-on-change enable
	DEFVAL  Register = 0x03 // Default compare value for interrupt-on-change
	INTCON  Register = 0x04 // 1=compare against DEFVAL, 0=compare against previous value
	IOCON   Register = 0x05 // Configuration
	GPPU    Register = 0x06 // 100kΩ pull-up enable
	INTF    Register = 0x07 // Interrupt flags, read only
	INTCAP  Register = 0x08 // Port value captured at interrupt time, reading clears the interrupt
	GPIO    Register = 0x09 // Port value
	OLAT    Register = 0x0A // Output latch
)

// IOCON bits.
const (
	// SEQOP disables the address pointer auto increment.
	SEQOP uint8 = 0x20
	// DISSLW disables the slew rate control on SDA.
	DISSLW uint8 = 0x10
	// ODR configures INT as an open-drain output. Overrides INTPOL.
	ODR uint8 = 0x04
	// INTPOL sets INT active high when ODR is cleared.
	INTPOL uint8 = 0x02
)

var registerNames = [...]string{
	IODIR:   "IODIR",
	IPOL:    "IPOL",
	GPINTEN: "GPINTEN",
	DEFVAL:  "DEFVAL",
	INTCON:  "INTCON",
	IOCON:   "IOCON",
	GPPU:    "GPPU",
	INTF:    "INTF",
	INTCAP:  "INTCAP",
	GPIO:    "GPIO",
	OLAT:    "OLAT",
}

func (r Register) String() string {
	if int(r) < len(registerNames) {
		return registerNames[r]
	}
	return fmt.Sprintf("Register(0x%02X)", uint8(r))
}

// register binds a Register to the bus. It holds no state: every call goes
// to the chip.
type register struct {
	i2c  *i2c.Dev
	addr Register
}

func (r register) read() (uint8, error) {
	rx := [1]byte{}
	if err := r.i2c.Tx([]byte{byte(r.addr)}, rx[:]); err != nil {
		return 0, fmt.Errorf("mcp23008: read %s: %w: %w", r.addr, ErrBus, err)
	}
	return rx[0], nil
}

func (r register) write(value uint8) error {
	if err := r.i2c.Tx([]byte{byte(r.addr), value}, nil); err != nil {
		return fmt.Errorf("mcp23008: write %s: %w: %w", r.addr, ErrBus, err)
	}
	return nil
}

// update reads the register, applies f and writes the result back. When
// skipUnchanged is set, the write is omitted if f didn't change the value.
func (r register) update(f func(uint8) uint8, skipUnchanged bool) error {
	v, err := r.read()
	if err != nil {
		return err
	}
	n := f(v)
	if skipUnchanged && n == v {
		return nil
	}
	return r.write(n)
}

func (r register) setBit(bit uint8, value bool, skipUnchanged bool) error {
	return r.update(func(v uint8) uint8 {
		if value {
			return v | 1<<bit
		}
		return v &^ (1 << bit)
	}, skipUnchanged)
}

func (r register) getBit(bit uint8) (bool, error) {
	v, err := r.read()
	return v&(1<<bit) != 0, err
}
