// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package mcp23008

import (
	"errors"
	"fmt"
	"strconv"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c"
)

// DefaultAddress is the address of the chip with A2, A1 and A0 tied low.
const DefaultAddress uint16 = 0x20

// NumPins is the width of the port.
const NumPins = 8

var (
	// ErrInvalidPin is returned when a pin number is outside 0-7.
	ErrInvalidPin = errors.New("mcp23008: invalid pin")

	// ErrInvalidValue is returned when a mode, edge or polarity argument is
	// not one of its allowed values.
	ErrInvalidValue = errors.New("mcp23008: invalid value")

	// ErrBus is returned when the underlying bus reported a failure. The
	// bus error is wrapped along with it.
	ErrBus = errors.New("mcp23008: bus error")

	// ErrInvalidAddress is returned by New for addresses the chip can't be
	// strapped to.
	ErrInvalidAddress = errors.New("mcp23008: invalid address")
)

// PinMode is the direction of a single pin.
type PinMode uint8

const (
	Input       PinMode = iota // High impedance input
	InputPullUp                // Input, see the note on SetPinMode
	Output                     // Push-pull output
)

func (m PinMode) String() string {
	switch m {
	case Input:
		return "Input"
	case InputPullUp:
		return "InputPullUp"
	case Output:
		return "Output"
	default:
		return "PinMode(" + strconv.Itoa(int(m)) + ")"
	}
}

// Dev is a handle to an MCP23008.
//
// The driver holds no copy of the register contents, every operation reads
// what it needs from the chip. Read-modify-write sequences are not atomic:
// Dev does no locking and concurrent use must be serialized by the caller.
type Dev struct {
	// Pins exposes every pin as a gpio.PinIO.
	Pins [NumPins]Pin

	d       *i2c.Dev
	name    string
	edgePin gpio.PinIn

	iodir   register
	ipol    register
	gpinten register
	defval  register
	intcon  register
	iocon   register
	gppu    register
	intf    register
	intcap  register
	gpio    register
	olat    register
}

// New returns a handle to an MCP23008 at addr on bus.
//
// No bus traffic is generated; use Init to probe the chip. The bus is not
// owned by Dev and must outlive it. The pins are registered in gpioreg as
// "MCP23008_<addr>_GP<n>".
func New(bus i2c.Bus, addr uint16) (*Dev, error) {
	if addr < DefaultAddress || addr > DefaultAddress+7 {
		return nil, fmt.Errorf("%w 0x%02X, must be 0x20-0x27", ErrInvalidAddress, addr)
	}
	d := &Dev{
		d:    &i2c.Dev{Bus: bus, Addr: addr},
		name: "MCP23008_" + strconv.FormatUint(uint64(addr), 16),
	}
	d.iodir = register{d.d, IODIR}
	d.ipol = register{d.d, IPOL}
	d.gpinten = register{d.d, GPINTEN}
	d.defval = register{d.d, DEFVAL}
	d.intcon = register{d.d, INTCON}
	d.iocon = register{d.d, IOCON}
	d.gppu = register{d.d, GPPU}
	d.intf = register{d.d, INTF}
	d.intcap = register{d.d, INTCAP}
	d.gpio = register{d.d, GPIO}
	d.olat = register{d.d, OLAT}
	for i := range d.Pins {
		d.Pins[i] = &portpin{dev: d, pinbit: uint8(i)}
		// Ignore registration failure.
		_ = gpioreg.Register(d.Pins[i])
	}
	return d, nil
}

// Close removes the pins from gpioreg. The chip keeps its state.
func (d *Dev) Close() error {
	for _, p := range d.Pins {
		if gpioreg.ByName(p.Name()) != p {
			continue
		}
		if err := gpioreg.Unregister(p.Name()); err != nil {
			return err
		}
	}
	return nil
}

// Address returns the I²C address of the device.
func (d *Dev) Address() uint16 {
	return d.d.Addr
}

// String implements conn.Resource.
func (d *Dev) String() string {
	return d.name
}

// Halt implements conn.Resource.
//
// It interrupts a pending WaitForInterrupt if the edge pin supports it. The
// chip configuration is left untouched.
func (d *Dev) Halt() error {
	if r, ok := d.edgePin.(conn.Resource); ok {
		return r.Halt()
	}
	return nil
}

// IsConnected probes the address with a single byte read, an SMBus receive
// byte. It returns nil if the chip acknowledged.
//
// An empty transaction is not used since some buses, periph's sysfs driver
// among them, complete it without touching the wire.
func (d *Dev) IsConnected() error {
	var rx [1]byte
	if err := d.d.Tx(nil, rx[:]); err != nil {
		return fmt.Errorf("mcp23008: probe 0x%02X: %w: %w", d.d.Addr, ErrBus, err)
	}
	return nil
}

// Init probes the chip and, if forceInputPullUp is set, enables the pull-up
// on all eight pins.
//
// IODIR is not modified: enabling the pull-ups doesn't turn outputs into
// inputs, the resistors only take effect on pins already configured as
// inputs.
func (d *Dev) Init(forceInputPullUp bool) error {
	if err := d.IsConnected(); err != nil {
		return err
	}
	if forceInputPullUp {
		return d.gppu.write(0xFF)
	}
	return nil
}

func checkPin(pin uint8) error {
	if pin >= NumPins {
		return fmt.Errorf("%w %d", ErrInvalidPin, pin)
	}
	return nil
}

// SetPinMode sets the direction of a single pin.
//
// InputPullUp configures the direction only, exactly like Input. Use
// SetPullUp to control the resistor.
func (d *Dev) SetPinMode(pin uint8, mode PinMode) error {
	if err := checkPin(pin); err != nil {
		return err
	}
	switch mode {
	case Input, InputPullUp:
		return d.iodir.setBit(pin, true, false)
	case Output:
		return d.iodir.setBit(pin, false, false)
	default:
		return fmt.Errorf("%w: pin mode %s", ErrInvalidValue, mode)
	}
}

// WritePin sets the output latch of a single pin.
//
// The latch is read from OLAT rather than GPIO so input pins driven
// externally aren't copied into the latch. OLAT is only written when the
// value changes.
func (d *Dev) WritePin(pin uint8, l gpio.Level) error {
	if err := checkPin(pin); err != nil {
		return err
	}
	return d.olat.setBit(pin, bool(l), true)
}

// ReadPin returns the level of a single pin, after polarity inversion.
func (d *Dev) ReadPin(pin uint8) (gpio.Level, error) {
	if err := checkPin(pin); err != nil {
		return gpio.Low, err
	}
	v, err := d.gpio.getBit(pin)
	if err != nil {
		return gpio.Low, err
	}
	return gpio.Level(v), nil
}

// SetPolarity sets whether GPIO reports the inverted value of the pin.
func (d *Dev) SetPolarity(pin uint8, inverted bool) error {
	if err := checkPin(pin); err != nil {
		return err
	}
	return d.ipol.setBit(pin, inverted, false)
}

// Polarity returns true if the pin is inverted.
func (d *Dev) Polarity(pin uint8) (bool, error) {
	if err := checkPin(pin); err != nil {
		return false, err
	}
	return d.ipol.getBit(pin)
}

// SetPullUp enables or disables the pull-up resistor of a pin. The resistor
// is only effective while the pin is an input.
func (d *Dev) SetPullUp(pin uint8, enabled bool) error {
	if err := checkPin(pin); err != nil {
		return err
	}
	return d.gppu.setBit(pin, enabled, false)
}

// PullUp returns true if the pull-up resistor of the pin is enabled.
func (d *Dev) PullUp(pin uint8) (bool, error) {
	if err := checkPin(pin); err != nil {
		return false, err
	}
	return d.gppu.getBit(pin)
}

// SetPinModes writes IODIR. A set bit makes the pin an input.
func (d *Dev) SetPinModes(mask uint8) error {
	return d.iodir.write(mask)
}

// PinModes reads IODIR.
func (d *Dev) PinModes() (uint8, error) {
	return d.iodir.read()
}

// WritePort writes all eight output latches at once.
func (d *Dev) WritePort(value uint8) error {
	return d.olat.write(value)
}

// ReadPort reads the level of all eight pins.
func (d *Dev) ReadPort() (uint8, error) {
	return d.gpio.read()
}

// ReadLatch reads the output latches, as opposed to the pins.
func (d *Dev) ReadLatch() (uint8, error) {
	return d.olat.read()
}

// SetPolarityMask writes IPOL. A set bit inverts the pin.
func (d *Dev) SetPolarityMask(mask uint8) error {
	return d.ipol.write(mask)
}

// PolarityMask reads IPOL.
func (d *Dev) PolarityMask() (uint8, error) {
	return d.ipol.read()
}

// SetPullUpMask writes GPPU. A set bit enables the pull-up.
func (d *Dev) SetPullUpMask(mask uint8) error {
	return d.gppu.write(mask)
}

// PullUpMask reads GPPU.
func (d *Dev) PullUpMask() (uint8, error) {
	return d.gppu.read()
}

// SetControl sets the given bits in IOCON, e.g. SEQOP|DISSLW.
func (d *Dev) SetControl(mask uint8) error {
	return d.iocon.update(func(v uint8) uint8 { return v | mask }, false)
}

// ClearControl clears the given bits in IOCON.
func (d *Dev) ClearControl(mask uint8) error {
	return d.iocon.update(func(v uint8) uint8 { return v &^ mask }, false)
}

// Control reads IOCON.
func (d *Dev) Control() (uint8, error) {
	return d.iocon.read()
}

var _ conn.Resource = &Dev{}
