// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

//go:build !linux

package main

import (
	"errors"

	"periph.io/x/conn/v3/i2c"
)

func openSMBus(index int) (i2c.BusCloser, error) {
	return nil, errors.New("SMBus is only supported on linux")
}
