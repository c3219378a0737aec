// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package mcp23008

import (
	"errors"
	"fmt"
	"sync"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
)

var (
	errNack  = errors.New("fakeChip: nack")
	errWrite = errors.New("fakeChip: write failed")
)

// fakeChip is an i2c.Bus emulating the register file of an MCP23008. Input
// pins read the levels in ext.
type fakeChip struct {
	sync.Mutex
	addr uint16
	regs [OLAT + 1]byte
	ext  uint8

	// err fails every transaction when set.
	err error
	// failWrites fails register writes with errWrite.
	failWrites bool

	txs    int
	writes int
}

func newFakeChip() *fakeChip {
	c := &fakeChip{addr: DefaultAddress}
	// Power on reset state.
	c.regs[IODIR] = 0xFF
	return c
}

func (c *fakeChip) String() string {
	return "fakeChip"
}

func (c *fakeChip) SetSpeed(f physic.Frequency) error {
	return nil
}

func (c *fakeChip) Tx(addr uint16, w, r []byte) error {
	c.Lock()
	defer c.Unlock()
	c.txs++
	if c.err != nil {
		return c.err
	}
	if addr != c.addr {
		return errNack
	}
	switch {
	case len(w) == 0 && len(r) == 1:
		// Receive byte returns the register at the address pointer, which is
		// not tracked.
		r[0] = 0
		return nil
	case len(w) == 1 && len(r) == 1:
		reg := Register(w[0])
		if reg > OLAT {
			return fmt.Errorf("fakeChip: read of %s", reg)
		}
		r[0] = c.value(reg)
		if reg == INTCAP || reg == GPIO {
			c.regs[INTF] = 0
		}
		return nil
	case len(w) == 2 && len(r) == 0:
		reg := Register(w[0])
		if reg > OLAT {
			return fmt.Errorf("fakeChip: write of %s", reg)
		}
		if c.failWrites {
			return errWrite
		}
		c.writes++
		switch reg {
		case INTF, INTCAP:
		case GPIO:
			c.regs[OLAT] = w[1]
		default:
			c.regs[reg] = w[1]
		}
		return nil
	default:
		return fmt.Errorf("fakeChip: unsupported transaction w=%#v r=%d", w, len(r))
	}
}

func (c *fakeChip) value(reg Register) byte {
	if reg == GPIO {
		dir := c.regs[IODIR]
		return (c.regs[OLAT]&^dir | c.ext&dir) ^ c.regs[IPOL]
	}
	return c.regs[reg]
}

// raise latches an interrupt for the pins in flags, capturing the port.
func (c *fakeChip) raise(flags uint8) {
	c.Lock()
	defer c.Unlock()
	c.regs[INTF] = flags
	c.regs[INTCAP] = c.value(GPIO)
}

func (c *fakeChip) reg(r Register) byte {
	c.Lock()
	defer c.Unlock()
	return c.regs[r]
}

func (c *fakeChip) counts() (txs, writes int) {
	c.Lock()
	defer c.Unlock()
	return c.txs, c.writes
}

var _ i2c.Bus = &fakeChip{}
