// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lis3dh

import (
	"fmt"

	"periph.io/x/conn/v3"
	"tinygo.org/x/drivers"
)

// Pin is a chip select output. machine.Pin implements it.
type Pin interface {
	High()
	Low()
}

// NewTinyGoSPITransport returns a transport over a TinyGo SPI bus.
//
// cs is pulled low for every transaction and released after it, including
// on failure. It is released once here.
func NewTinyGoSPITransport(s drivers.SPI, cs Pin) *Transport {
	cs.High()
	return newTransport(&tinygoSPI{s: s, cs: cs}, framingSPI)
}

// NewTinyGoI2CTransport returns a transport to the device at addr over a
// TinyGo I²C bus.
func NewTinyGoI2CTransport(b drivers.I2C, addr uint16) *Transport {
	return newTransport(&tinygoI2C{b: b, addr: addr}, framingI2C)
}

// tinygoSPI adapts drivers.SPI to conn.Conn.
type tinygoSPI struct {
	s  drivers.SPI
	cs Pin
}

func (t *tinygoSPI) String() string {
	return "tinygo-spi"
}

func (t *tinygoSPI) Duplex() conn.Duplex {
	return conn.Full
}

func (t *tinygoSPI) Tx(w, r []byte) error {
	t.cs.Low()
	defer t.cs.High()
	return t.s.Tx(w, r)
}

// tinygoI2C adapts drivers.I2C to conn.Conn for a single device address.
type tinygoI2C struct {
	b    drivers.I2C
	addr uint16
}

func (t *tinygoI2C) String() string {
	return fmt.Sprintf("tinygo-i2c(%#x)", t.addr)
}

func (t *tinygoI2C) Duplex() conn.Duplex {
	return conn.Half
}

func (t *tinygoI2C) Tx(w, r []byte) error {
	return t.b.Tx(t.addr, w, r)
}

var _ conn.Conn = &tinygoSPI{}
var _ conn.Conn = &tinygoI2C{}
