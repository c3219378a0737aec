// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

//go:build linux

package smbus

import (
	"errors"
	"fmt"
	"strconv"
	"sync"

	smb "github.com/platinasystems/i2c"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
)

// Bus is an SMBus adapter exposed as an i2c.Bus.
type Bus struct {
	mu    sync.Mutex
	index int
	bus   smb.Bus
	// addr is the slave address last selected on the file descriptor, -1
	// when none.
	addr int
}

// Open opens /dev/i2c-<index>.
func Open(index int) (*Bus, error) {
	b := &Bus{index: index, addr: -1}
	if err := b.bus.Open(index); err != nil {
		return nil, fmt.Errorf("smbus: %w", err)
	}
	return b, nil
}

// Close closes the device file.
func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.addr = -1
	if err := b.bus.Close(); err != nil {
		return fmt.Errorf("smbus: %w", err)
	}
	return nil
}

// String implements i2c.Bus.
func (b *Bus) String() string {
	return "SMBus-" + strconv.Itoa(b.index)
}

// SetSpeed implements i2c.Bus. The SMBus interface has no way to change the
// clock, it is set by the kernel driver.
func (b *Bus) SetSpeed(f physic.Frequency) error {
	return errors.New("smbus: SetSpeed is not supported")
}

// Tx implements i2c.Bus.
func (b *Bus) Tx(addr uint16, w, r []byte) error {
	o, err := transfer(w, r)
	if err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if int(addr) != b.addr {
		if err := b.bus.ForceSlaveAddress(int(addr)); err != nil {
			return fmt.Errorf("smbus: 0x%02X: %w", addr, err)
		}
		b.addr = int(addr)
	}
	if err := b.bus.Do(o.rw, o.cmd, o.size, &o.data); err != nil {
		return fmt.Errorf("smbus: 0x%02X: %w", addr, err)
	}
	if len(r) == 1 {
		r[0] = o.data[0]
	}
	return nil
}

// op is a single SMBus transfer.
type op struct {
	rw   smb.RW
	cmd  uint8
	size smb.SMBusSize
	data smb.SMBusData
}

// transfer maps an I²C transaction to an SMBus transfer.
func transfer(w, r []byte) (op, error) {
	var o op
	switch {
	case len(w) == 0 && len(r) == 0:
		o.rw, o.size = smb.Write, smb.Quick
	case len(w) == 1 && len(r) == 0:
		o.rw, o.cmd, o.size = smb.Write, w[0], smb.Byte
	case len(w) == 0 && len(r) == 1:
		o.rw, o.size = smb.Read, smb.Byte
	case len(w) == 1 && len(r) == 1:
		o.rw, o.cmd, o.size = smb.Read, w[0], smb.ByteData
	case len(w) == 2 && len(r) == 0:
		o.rw, o.cmd, o.size = smb.Write, w[0], smb.ByteData
		o.data[0] = w[1]
	default:
		return o, fmt.Errorf("smbus: unsupported transaction, %d bytes written and %d read", len(w), len(r))
	}
	return o, nil
}

var _ i2c.Bus = &Bus{}
