// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lis3dh

import (
	"fmt"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// Bus performs addressed register transfers with a LIS3DH.
//
// Multiple-register operations rely on the device incrementing the address
// after every byte. Neither the writability of every touched register nor
// the length of the buffers is checked.
type Bus interface {
	// Write writes a single register.
	Write(r ReadWriteRegister, value byte) error
	// WriteMultiple writes values to start, start+1, ... in one transaction.
	WriteMultiple(start ReadWriteRegister, values []byte) error
	// Read reads a single register.
	Read(r Register) (byte, error)
	// ReadMultiple fills buf from start, start+1, ... in one transaction.
	ReadMultiple(start Register, buf []byte) error
	// ReadAndVerify reads r and reports whether it holds expected.
	ReadAndVerify(r Register, expected byte) (bool, error)
}

// DebugF the debug function type.
type DebugF func(string, ...interface{})

// I²C addresses, selected by the SDO/SA0 pin.
const (
	I2CAddr    uint16 = 0x18 // SA0 low.
	I2CAddrAlt uint16 = 0x19 // SA0 high.
)

// SPI connection parameters used by NewSPITransport. The device supports
// clocks up to 10MHz.
var (
	SPIFrequency = 5 * physic.MegaHertz
	SPIMode      = spi.Mode3
	SPIBits      = 8
)

// SPI control byte operations, in the two most significant bits.
const (
	opSingleWrite byte = 0b00 << 6
	opMultiWrite  byte = 0b01 << 6
	opSingleRead  byte = 0b10 << 6
	opMultiRead   byte = 0b11 << 6
)

// i2cAutoIncrement is the sub-address bit enabling address auto increment.
const i2cAutoIncrement byte = 0x80

type framing uint8

const (
	framingSPI framing = iota
	framingI2C
)

// Transport encapsulates a connection to the device and the framing of its
// register transactions.
type Transport struct {
	c       conn.Conn
	framing framing
	debug   DebugF
}

// NewSPITransport connects to the device on an SPI port.
//
// Each transaction starts with a control byte [op:2][address:6].
func NewSPITransport(p spi.Port) (*Transport, error) {
	c, err := p.Connect(SPIFrequency, SPIMode, SPIBits)
	if err != nil {
		return nil, fmt.Errorf("lis3dh: can't initialize SPI: %w", err)
	}
	return newTransport(c, framingSPI), nil
}

// NewI2CTransport returns a transport to the device at addr on an I²C bus.
//
// Each transaction starts with the register sub-address, with bit 7 set for
// multiple register transfers.
func NewI2CTransport(b i2c.Bus, addr uint16) *Transport {
	return newTransport(&i2c.Dev{Bus: b, Addr: addr}, framingI2C)
}

func newTransport(c conn.Conn, f framing) *Transport {
	return &Transport{c: c, framing: f, debug: noop}
}

// EnableDebug sets the function used to trace every transaction.
func (t *Transport) EnableDebug(f DebugF) {
	if f == nil {
		f = noop
	}
	t.debug = f
}

func (t *Transport) String() string {
	return t.c.String()
}

// Write implements Bus.
func (t *Transport) Write(r ReadWriteRegister, value byte) error {
	t.debug("write %s value %#02x", r, value)
	w := [...]byte{t.header(opSingleWrite, r.Address()), value}
	return transportError("write", r, t.c.Tx(w[:], nil))
}

// WriteMultiple implements Bus.
func (t *Transport) WriteMultiple(start ReadWriteRegister, values []byte) error {
	t.debug("write from %s values % x", start, values)
	w := make([]byte, 1+len(values))
	w[0] = t.header(opMultiWrite, start.Address())
	copy(w[1:], values)
	return transportError("write", start, t.c.Tx(w, nil))
}

// Read implements Bus.
func (t *Transport) Read(r Register) (byte, error) {
	var b [1]byte
	if err := t.read(opSingleRead, r, b[:]); err != nil {
		return 0, err
	}
	t.debug("read %s value %#02x", r, b[0])
	return b[0], nil
}

// ReadMultiple implements Bus.
func (t *Transport) ReadMultiple(start Register, buf []byte) error {
	if err := t.read(opMultiRead, start, buf); err != nil {
		return err
	}
	t.debug("read from %s values % x", start, buf)
	return nil
}

// ReadAndVerify implements Bus.
func (t *Transport) ReadAndVerify(r Register, expected byte) (bool, error) {
	v, err := t.Read(r)
	if err != nil {
		return false, err
	}
	return v == expected, nil
}

func (t *Transport) read(op byte, r Register, buf []byte) error {
	h := t.header(op, r.Address())
	if t.framing == framingI2C {
		return transportError("read", r, t.c.Tx([]byte{h}, buf))
	}
	// Full duplex: the data is clocked out after the control byte.
	w := make([]byte, 1+len(buf))
	rx := make([]byte, len(w))
	w[0] = h
	if err := t.c.Tx(w, rx); err != nil {
		return transportError("read", r, err)
	}
	copy(buf, rx[1:])
	return nil
}

// header returns the first byte of a transaction.
func (t *Transport) header(op byte, addr uint8) byte {
	if t.framing == framingI2C {
		if op == opMultiWrite || op == opMultiRead {
			return addr | i2cAutoIncrement
		}
		return addr
	}
	return op | addr
}

func noop(string, ...interface{}) {}

var _ Bus = &Transport{}
