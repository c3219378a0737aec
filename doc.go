// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package expander is a container for the MCP23008 I²C GPIO expander driver
// and the glue needed to use it from periph, TinyGo and plain Linux SMBus.
//
// The driver lives in the mcp23008 package. tinygoi2c adapts a TinyGo I²C
// bus to periph's i2c.Bus, smbus does the same for /dev/i2c-N through SMBus
// transfers. portview renders the port state to a terminal or an image.
package expander
