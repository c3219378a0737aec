// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package mcp23008

import (
	"errors"
	"testing"
	"time"

	"periph.io/x/conn/v3/gpio"
)

func TestGroup_invalid(t *testing.T) {
	dev := newChipDev(t, newFakeChip())
	if _, err := dev.Group(); err == nil {
		t.Error("empty group should return an error")
	}
	if _, err := dev.Group(0, 8); !errors.Is(err, ErrInvalidPin) {
		t.Errorf("Group(0, 8) = %v, want ErrInvalidPin", err)
	}
}

func TestGroup_lookup(t *testing.T) {
	dev := newChipDev(t, newFakeChip())
	g, err := dev.Group(6, 2, 4)
	if err != nil {
		t.Fatal(err)
	}
	if n := len(g.Pins()); n != 3 {
		t.Fatalf("Pins() has %d pins", n)
	}
	if p := g.ByOffset(0); p.Number() != 6 {
		t.Errorf("ByOffset(0) = %s", p)
	}
	if p := g.ByOffset(3); p != nil {
		t.Errorf("ByOffset(3) = %s", p)
	}
	if p := g.ByNumber(4); p == nil || p.Name() != "MCP23008_20_GP4" {
		t.Errorf("ByNumber(4) = %v", p)
	}
	if p := g.ByNumber(5); p != nil {
		t.Errorf("ByNumber(5) = %s", p)
	}
	if p := g.ByName("MCP23008_20_GP2"); p == nil || p.Number() != 2 {
		t.Errorf("ByName() = %v", p)
	}
	if s := g.String(); s != "MCP23008_20 - [ 6 2 4 ]" {
		t.Errorf("String() = %q", s)
	}
	if err := g.Halt(); err != nil {
		t.Error(err)
	}
}

// TestGroup_readWrite wires pin 0 to pin 4, pin 1 to pin 5, and so on.
func TestGroup_readWrite(t *testing.T) {
	chip := newFakeChip()
	dev := newChipDev(t, chip)
	gOut, err := dev.Group(0, 1, 2, 3)
	if err != nil {
		t.Fatal(err)
	}
	gRead, err := dev.Group(4, 5, 6, 7)
	if err != nil {
		t.Fatal(err)
	}
	for i := range gpio.GPIOValue(16) {
		if err := gOut.Out(i, 0); err != nil {
			t.Fatal(err)
		}
		chip.Lock()
		chip.ext = chip.regs[OLAT] << 4
		chip.Unlock()
		r, err := gRead.Read(0)
		if err != nil {
			t.Fatal(err)
		}
		if r != i {
			t.Errorf("wrote 0x%x read 0x%x", i, r)
		}
	}
	if v := chip.reg(IODIR); v != 0xF0 {
		t.Errorf("IODIR = 0x%02X, want 0xF0", v)
	}
}

func TestGroup_mask(t *testing.T) {
	chip := newFakeChip()
	chip.regs[OLAT] = 0x80
	dev := newChipDev(t, chip)
	g, err := dev.Group(3, 1)
	if err != nil {
		t.Fatal(err)
	}
	// Only offset 1 (pin 1) is written.
	if err := g.Out(0x3, 0x2); err != nil {
		t.Fatal(err)
	}
	if v := chip.reg(OLAT); v != 0x82 {
		t.Errorf("OLAT = 0x%02X, want 0x82", v)
	}
	if v := chip.reg(IODIR); v != 0xFD {
		t.Errorf("IODIR = 0x%02X, want 0xFD", v)
	}
	// Out with the same value doesn't touch the bus again beyond the reads.
	_, before := chip.counts()
	if err := g.Out(0x3, 0x2); err != nil {
		t.Fatal(err)
	}
	if _, after := chip.counts(); after != before {
		t.Errorf("did %d writes", after-before)
	}
}

func TestGroup_waitForEdge(t *testing.T) {
	chip := newFakeChip()
	dev := newChipDev(t, chip)
	edge := newEdgePin()
	if err := dev.SetEdgePin(edge); err != nil {
		t.Fatal(err)
	}
	g, err := dev.Group(5, 6)
	if err != nil {
		t.Fatal(err)
	}

	if n, e, err := g.WaitForEdge(time.Millisecond); n != -1 || e != gpio.NoEdge || err != nil {
		t.Fatalf("WaitForEdge() = %d, %s, %v, want a timeout", n, e, err)
	}

	chip.ext = 0x40
	chip.raise(0x40)
	edge.EdgesChan <- gpio.Low
	n, e, err := g.WaitForEdge(time.Second)
	if err != nil || n != 1 || e != gpio.RisingEdge {
		t.Errorf("WaitForEdge() = %d, %s, %v", n, e, err)
	}

	chip.ext = 0x00
	chip.raise(0x20)
	edge.EdgesChan <- gpio.Low
	n, e, err = g.WaitForEdge(time.Second)
	if err != nil || n != 0 || e != gpio.FallingEdge {
		t.Errorf("WaitForEdge() = %d, %s, %v", n, e, err)
	}

	chip.raise(0x01)
	edge.EdgesChan <- gpio.Low
	if n, _, err := g.WaitForEdge(time.Second); !errors.Is(err, ErrPinNotInGroup) || n != 0 {
		t.Errorf("WaitForEdge() = %d, %v, want ErrPinNotInGroup", n, err)
	}
}
