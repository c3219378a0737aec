// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package mcp23008 provides a driver for the Microchip MCP23008 8-bit I²C
// GPIO expander.
//
// The chip is driven through its eleven 8-bit registers. Dev offers per-pin
// methods (SetPinMode, WritePin, ReadPin, ...) that validate the pin number
// and do a read-modify-write of the relevant register, and per-port methods
// (SetPinModes, WritePort, ReadPort, ...) that read or write the whole byte.
// Each pin is also exposed as a gpio.PinIO in Dev.Pins and registered in
// gpioreg, the port as a conn.Conn and any subset of pins as a gpio.Group.
//
// No register value is cached. Read-modify-write sequences are not atomic
// with respect to other goroutines or other bus masters.
//
// # Interrupts
//
// SetInterrupt configures interrupt-on-change per pin. To wait for an
// interrupt, connect INT to a host GPIO and pass it to Dev.SetEdgePin, then
// use Dev.WaitForInterrupt, Pin.WaitForEdge or a group's WaitForEdge.
//
// # Errors
//
// Failures wrap one of ErrInvalidPin, ErrInvalidValue or ErrBus and are
// meant to be tested with errors.Is. After an ErrBus the register content is
// unknown and should be re-read.
//
// # Datasheet
//
// https://ww1.microchip.com/downloads/en/DeviceDoc/MCP23008-MCP23S08-Data-Sheet-20001919F.pdf
package mcp23008
