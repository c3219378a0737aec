// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// mcp23008 reads and configures an MCP23008 I²C GPIO expander.
//
// Usage:
//
//	mcp23008 [flags] probe
//	mcp23008 [flags] init [pullup]
//	mcp23008 [flags] mode PIN in|pullup|out
//	mcp23008 [flags] write PIN 0|1
//	mcp23008 [flags] read PIN
//	mcp23008 [flags] port [VALUE]
//	mcp23008 [flags] irq PIN rising|falling|change|off
//	mcp23008 [flags] polarity [low|high|opendrain]
//	mcp23008 [flags] show [FILE.png]
//	mcp23008 -int GPIO17 watch
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/GermanBionicSystems/expander/mcp23008"
	"github.com/GermanBionicSystems/expander/portview"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

func mainImpl() error {
	busName := flag.String("bus", "", "I²C bus to use")
	smbusIndex := flag.Int("smbus", -1, "use /dev/i2c-N through the SMBus interface instead of periph's host drivers")
	addr := flag.String("addr", "0x20", "I²C address of the chip")
	intPin := flag.String("int", "", "host GPIO connected to INT, required by watch")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] command [args]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		return fmt.Errorf("missing command")
	}
	a, err := strconv.ParseUint(*addr, 0, 16)
	if err != nil {
		return fmt.Errorf("invalid address %q: %w", *addr, err)
	}

	if _, err := host.Init(); err != nil {
		return err
	}
	var bus i2c.BusCloser
	if *smbusIndex >= 0 {
		bus, err = openSMBus(*smbusIndex)
	} else {
		bus, err = i2creg.Open(*busName)
	}
	if err != nil {
		return err
	}
	defer bus.Close()

	dev, err := mcp23008.New(bus, uint16(a))
	if err != nil {
		return err
	}
	defer dev.Close()

	c := &cli{dev: dev, out: os.Stdout, term: portview.NewTerminal()}
	if *intPin != "" {
		p := gpioreg.ByName(*intPin)
		if p == nil {
			return fmt.Errorf("no GPIO named %q", *intPin)
		}
		if err := dev.SetEdgePin(p); err != nil {
			return err
		}
	}
	return c.run(flag.Args())
}

func main() {
	if err := mainImpl(); err != nil {
		log.Fatal(err)
	}
}
