// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package smbus implements periph's i2c.Bus on top of the Linux SMBus ioctl
// interface (/dev/i2c-N).
//
// Only the transactions used by register based devices are supported:
//
//   - an empty transaction, sent as an SMBus quick write
//   - one byte written, sent as an SMBus send byte
//   - one byte read, sent as an SMBus receive byte (probe)
//   - one byte written then one byte read, sent as an SMBus read byte data
//   - two bytes written, sent as an SMBus write byte data
//
// This is useful on adapters that only implement SMBus, where plain I²C
// combined transfers are rejected by the kernel.
package smbus
