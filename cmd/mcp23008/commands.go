// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/GermanBionicSystems/expander/mcp23008"
	"github.com/GermanBionicSystems/expander/portview"
	"github.com/fogleman/gg"
	"periph.io/x/conn/v3/gpio"
)

var errUsage = errors.New("invalid usage")

type cli struct {
	dev  *mcp23008.Dev
	out  io.Writer
	term *portview.Terminal
	// Number of interrupts handled by watch, 0 means forever.
	watchCount int
}

func (c *cli) run(args []string) error {
	cmd, args := args[0], args[1:]
	switch cmd {
	case "probe":
		if err := c.dev.IsConnected(); err != nil {
			return err
		}
		_, err := fmt.Fprintf(c.out, "%s: found\n", c.dev)
		return err
	case "init":
		pullUp := false
		if len(args) == 1 && args[0] == "pullup" {
			pullUp = true
		} else if len(args) != 0 {
			return fmt.Errorf("%w: init [pullup]", errUsage)
		}
		return c.dev.Init(pullUp)
	case "mode":
		if len(args) != 2 {
			return fmt.Errorf("%w: mode PIN in|pullup|out", errUsage)
		}
		pin, err := parsePin(args[0])
		if err != nil {
			return err
		}
		m, err := parseMode(args[1])
		if err != nil {
			return err
		}
		return c.dev.SetPinMode(pin, m)
	case "write":
		if len(args) != 2 {
			return fmt.Errorf("%w: write PIN 0|1", errUsage)
		}
		pin, err := parsePin(args[0])
		if err != nil {
			return err
		}
		l, err := parseLevel(args[1])
		if err != nil {
			return err
		}
		return c.dev.WritePin(pin, l)
	case "read":
		if len(args) != 1 {
			return fmt.Errorf("%w: read PIN", errUsage)
		}
		pin, err := parsePin(args[0])
		if err != nil {
			return err
		}
		l, err := c.dev.ReadPin(pin)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(c.out, "GP%d: %s\n", pin, l)
		return err
	case "port":
		return c.port(args)
	case "irq":
		if len(args) != 2 {
			return fmt.Errorf("%w: irq PIN rising|falling|change|off", errUsage)
		}
		pin, err := parsePin(args[0])
		if err != nil {
			return err
		}
		if args[1] == "off" {
			return c.dev.DisableInterrupt(pin)
		}
		e, err := parseEdge(args[1])
		if err != nil {
			return err
		}
		return c.dev.SetInterrupt(pin, e)
	case "polarity":
		return c.polarity(args)
	case "show":
		return c.show(args)
	case "watch":
		return c.watch()
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}
}

func (c *cli) port(args []string) error {
	switch len(args) {
	case 0:
		v, err := c.dev.ReadPort()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(c.out, "0x%02X\n", v)
		return err
	case 1:
		v, err := strconv.ParseUint(args[0], 0, 8)
		if err != nil {
			return fmt.Errorf("%w: port value %q", errUsage, args[0])
		}
		return c.dev.WritePort(uint8(v))
	default:
		return fmt.Errorf("%w: port [VALUE]", errUsage)
	}
}

func (c *cli) polarity(args []string) error {
	switch len(args) {
	case 0:
		p, err := c.dev.InterruptPolarity()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(c.out, p)
		return err
	case 1:
		var p mcp23008.IntPolarity
		switch args[0] {
		case "low":
			p = mcp23008.ActiveLow
		case "high":
			p = mcp23008.ActiveHigh
		case "opendrain":
			p = mcp23008.OpenDrain
		default:
			return fmt.Errorf("%w: polarity %q", errUsage, args[0])
		}
		return c.dev.SetInterruptPolarity(p)
	default:
		return fmt.Errorf("%w: polarity [low|high|opendrain]", errUsage)
	}
}

func (c *cli) show(args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("%w: show [FILE.png]", errUsage)
	}
	s, err := portview.Read(c.dev)
	if err != nil {
		return err
	}
	if len(args) == 1 {
		img, err := portview.Render(s, 400, 80)
		if err != nil {
			return err
		}
		return gg.SavePNG(args[0], img)
	}
	return c.term.Write(s)
}

func (c *cli) watch() error {
	defer c.term.Halt()
	for i := 0; c.watchCount == 0 || i < c.watchCount; {
		intr, ok, err := c.dev.WaitForInterrupt(time.Second)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		i++
		s, err := portview.Read(c.dev)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(c.out, "INTF=%08b INTCAP=%08b\n", intr.Flags, intr.Captured); err != nil {
			return err
		}
		if err := c.term.Write(s); err != nil {
			return err
		}
	}
	return nil
}

func parsePin(s string) (uint8, error) {
	v, err := strconv.ParseUint(s, 10, 8)
	if err != nil || v >= mcp23008.NumPins {
		return 0, fmt.Errorf("%w: pin %q", mcp23008.ErrInvalidPin, s)
	}
	return uint8(v), nil
}

func parseMode(s string) (mcp23008.PinMode, error) {
	switch s {
	case "in":
		return mcp23008.Input, nil
	case "pullup":
		return mcp23008.InputPullUp, nil
	case "out":
		return mcp23008.Output, nil
	}
	return 0, fmt.Errorf("%w: mode %q", errUsage, s)
}

func parseLevel(s string) (gpio.Level, error) {
	switch s {
	case "0", "low":
		return gpio.Low, nil
	case "1", "high":
		return gpio.High, nil
	}
	return gpio.Low, fmt.Errorf("%w: level %q", errUsage, s)
}

func parseEdge(s string) (gpio.Edge, error) {
	switch s {
	case "rising":
		return gpio.RisingEdge, nil
	case "falling":
		return gpio.FallingEdge, nil
	case "change":
		return gpio.BothEdges, nil
	}
	return gpio.NoEdge, fmt.Errorf("%w: edge %q", errUsage, s)
}
