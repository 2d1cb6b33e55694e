// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lis3dh

import (
	"errors"
	"testing"

	"github.com/GermanBionicSystems/accel/lis3dh/lis3dhtest"
	"github.com/google/go-cmp/cmp"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
	"tinygo.org/x/drivers"
)

// tinySPI exposes a conn.Conn as a TinyGo SPI bus. When events is set, every
// transfer is logged with the chip select edges of csPin.
type tinySPI struct {
	c      conn.Conn
	events *[]string
	err    error
}

func (s *tinySPI) Tx(w, r []byte) error {
	if s.events != nil {
		*s.events = append(*s.events, "tx")
	}
	if s.err != nil {
		return s.err
	}
	return s.c.Tx(w, r)
}

func (s *tinySPI) Transfer(b byte) (byte, error) {
	var r [1]byte
	err := s.c.Tx([]byte{b}, r[:])
	return r[0], err
}

var _ drivers.SPI = &tinySPI{}

type csPin struct {
	events *[]string
}

func (p *csPin) High() { *p.events = append(*p.events, "high") }
func (p *csPin) Low() { *p.events = append(*p.events, "low") }

var _ Pin = &csPin{}

type tinyI2C struct {
	b i2c.Bus
}

func (t *tinyI2C) Tx(addr uint16, w, r []byte) error {
	return t.b.Tx(addr, w, r)
}

var _ drivers.I2C = &tinyI2C{}

func TestTinyGoTransports(t *testing.T) {
	sim := lis3dhtest.New()
	data := []*Transport{
		NewTinyGoSPITransport(&tinySPI{c: sim.SPI()}, &csPin{events: new([]string)}),
		NewTinyGoI2CTransport(&tinyI2C{b: sim.I2C(I2CAddrAlt)}, I2CAddrAlt),
	}
	for _, tr := range data {
		d, err := New(tr, &Config{DataRate: Rate25Hz, Axes: AllAxes})
		if err != nil {
			t.Fatalf("%s: %v", tr, err)
		}
		if v := sim.Register(uint8(CtrlReg1)); v != 0x37 {
			t.Errorf("%s: CTRL_REG1 = %#x", tr, v)
		}
		if ok, err := d.Detect(); err != nil || !ok {
			t.Errorf("%s: got %t, %v", tr, ok, err)
		}
		if err := d.Halt(); err != nil {
			t.Fatalf("%s: %v", tr, err)
		}
	}
	if s := data[1].String(); s != "tinygo-i2c(0x19)" {
		t.Errorf("got %q", s)
	}
}

func TestTinyGoSPIChipSelect(t *testing.T) {
	var events []string
	sim := lis3dhtest.New()
	spi := &tinySPI{c: sim.SPI(), events: &events}
	d, err := New(NewTinyGoSPITransport(spi, &csPin{events: &events}), nil)
	if err != nil {
		t.Fatal(err)
	}
	if v := sim.Register(uint8(CtrlReg4)); v != 0x00 {
		t.Errorf("CTRL_REG4 = %#x", v)
	}
	if _, err := d.ReadAcceleration(); err != nil {
		t.Fatal(err)
	}
	// Released at construction, then one low/high pair around each of the
	// two configuration writes and the sample read.
	want := []string{"high", "low", "tx", "high", "low", "tx", "high", "low", "tx", "high"}
	if diff := cmp.Diff(want, events); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}

	events = events[:0]
	spi.err = errors.New("boom")
	if _, err := d.ReadAcceleration(); err == nil {
		t.Fatal("expected error")
	}
	if diff := cmp.Diff([]string{"low", "tx", "high"}, events); diff != "" {
		t.Errorf("chip select not released on failure (-want +got)\n%s", diff)
	}
}
