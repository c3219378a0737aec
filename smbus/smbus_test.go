// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

//go:build linux

package smbus

import (
	"testing"

	smb "github.com/platinasystems/i2c"
)

func TestTransfer(t *testing.T) {
	tests := []struct {
		description string
		w           []byte
		r           int
		rw          smb.RW
		cmd         uint8
		size        smb.SMBusSize
		data        byte
	}{
		{description: "probe", rw: smb.Write, size: smb.Quick},
		{description: "send byte", w: []byte{0x09}, rw: smb.Write, cmd: 0x09, size: smb.Byte},
		{description: "receive byte", r: 1, rw: smb.Read, size: smb.Byte},
		{description: "read register", w: []byte{0x09}, r: 1, rw: smb.Read, cmd: 0x09, size: smb.ByteData},
		{description: "write register", w: []byte{0x06, 0xFF}, rw: smb.Write, cmd: 0x06, size: smb.ByteData, data: 0xFF},
	}
	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			o, err := transfer(tc.w, make([]byte, tc.r))
			if err != nil {
				t.Fatal(err)
			}
			if o.rw != tc.rw || o.cmd != tc.cmd || o.size != tc.size || o.data[0] != tc.data {
				t.Errorf("transfer() = %+v", o)
			}
		})
	}
}

func TestTransfer_unsupported(t *testing.T) {
	for _, tc := range []struct {
		w []byte
		r int
	}{
		{w: []byte{1, 2, 3}},
		{w: []byte{1}, r: 2},
		{r: 4},
	} {
		if _, err := transfer(tc.w, make([]byte, tc.r)); err == nil {
			t.Errorf("transfer(%d bytes, %d bytes) should fail", len(tc.w), tc.r)
		}
	}
}

func TestOpen_missing(t *testing.T) {
	if _, err := Open(1 << 20); err == nil {
		t.Fatal("Open() of a missing adapter should fail")
	}
}
