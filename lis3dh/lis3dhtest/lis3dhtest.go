// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package lis3dhtest is meant to be used to test drivers and tools talking
// to a LIS3DH without the hardware.
//
// Sim models the register file of the device: reset values, read-only
// registers and address auto increment, behind either the SPI or the I²C
// framing.
package lis3dhtest

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// Register reset values.
var resetValues = map[uint8]byte{
	0x0F: 0x33, // WHO_AM_I
	0x1E: 0x10, // CTRL_REG0
	0x20: 0x07, // CTRL_REG1
}

// writable registers; writes anywhere else are ignored.
var writable = func() (w [64]bool) {
	for a := 0x1E; a <= 0x25; a++ {
		w[a] = true
	}
	for _, a := range []uint8{0x2E, 0x30, 0x32, 0x33, 0x34, 0x36, 0x37, 0x38, 0x3A, 0x3B, 0x3C, 0x3D, 0x3E, 0x3F} {
		w[a] = true
	}
	return w
}()

// Sim is a simulated LIS3DH register file.
type Sim struct {
	mu   sync.Mutex
	regs [64]byte
	txs  int
	// Err, when set, is returned by the next transaction instead of
	// performing it.
	Err error
}

// New returns a Sim holding the power-on reset values.
func New() *Sim {
	s := &Sim{}
	for a, v := range resetValues {
		s.regs[a] = v
	}
	return s
}

// Register returns the content of a register.
func (s *Sim) Register(addr uint8) byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.regs[addr&0x3F]
}

// SetRegister sets a register, including read-only ones.
func (s *Sim) SetRegister(addr uint8, v byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.regs[addr&0x3F] = v
}

// SetAcceleration stores left justified samples in OUT_X_L to OUT_Z_H, low
// byte first.
func (s *Sim) SetAcceleration(x, y, z int16) {
	s.mu.Lock()
	defer s.mu.Unlock()
	binary.LittleEndian.PutUint16(s.regs[0x28:], uint16(x))
	binary.LittleEndian.PutUint16(s.regs[0x2A:], uint16(y))
	binary.LittleEndian.PutUint16(s.regs[0x2C:], uint16(z))
}

// Transactions returns the number of transactions served.
func (s *Sim) Transactions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.txs
}

// SPI returns a full duplex connection using the SPI control byte
// [op:2][address:6].
func (s *Sim) SPI() conn.Conn {
	return &spiConn{s: s}
}

// SPIPort returns a port whose connections are served by the Sim. Connect
// only accepts what the device supports: mode 3, 8 bits words and a clock up
// to 10MHz.
func (s *Sim) SPIPort() spi.Port {
	return &spiPort{s: s}
}

// I2C returns a bus on which the Sim answers at addr.
func (s *Sim) I2C(addr uint16) i2c.Bus {
	return &i2cBus{s: s, addr: addr}
}

// transfer runs one transaction starting at addr. Received bytes are written
// to the registers, then len(r) bytes are read back.
func (s *Sim) transfer(addr uint8, increment bool, w, r []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		err := s.Err
		s.Err = nil
		return err
	}
	s.txs++
	addr &= 0x3F
	for _, v := range w {
		if writable[addr] {
			s.regs[addr] = v
		}
		if increment {
			addr = (addr + 1) & 0x3F
		}
	}
	for i := range r {
		r[i] = s.regs[addr]
		if increment {
			addr = (addr + 1) & 0x3F
		}
	}
	return nil
}

type spiConn struct {
	s *Sim
}

func (c *spiConn) String() string {
	return "lis3dhtest.SPI"
}

func (c *spiConn) Duplex() conn.Duplex {
	return conn.Full
}

func (c *spiConn) Tx(w, r []byte) error {
	if len(w) == 0 {
		return errors.New("lis3dhtest: missing control byte")
	}
	ctrl := w[0]
	read := ctrl&0x80 != 0
	increment := ctrl&0x40 != 0
	if !read {
		return c.s.transfer(ctrl, increment, w[1:], nil)
	}
	if len(r) != len(w) {
		return fmt.Errorf("lis3dhtest: full duplex read needs len(r) == len(w), got %d and %d", len(r), len(w))
	}
	r[0] = 0
	return c.s.transfer(ctrl, increment, nil, r[1:])
}

func (c *spiConn) TxPackets(p []spi.Packet) error {
	for i := range p {
		if err := c.Tx(p[i].W, p[i].R); err != nil {
			return err
		}
	}
	return nil
}

type spiPort struct {
	s *Sim
}

func (p *spiPort) String() string {
	return "lis3dhtest.SPI"
}

func (p *spiPort) LimitSpeed(f physic.Frequency) error {
	return nil
}

func (p *spiPort) Connect(f physic.Frequency, mode spi.Mode, bits int) (spi.Conn, error) {
	if f > 10*physic.MegaHertz {
		return nil, fmt.Errorf("lis3dhtest: clock %s too fast", f)
	}
	if mode != spi.Mode3 {
		return nil, fmt.Errorf("lis3dhtest: unsupported mode %v", mode)
	}
	if bits != 8 {
		return nil, fmt.Errorf("lis3dhtest: unsupported word size %d", bits)
	}
	return &spiConn{s: p.s}, nil
}

type i2cBus struct {
	s    *Sim
	addr uint16
}

func (b *i2cBus) String() string {
	return fmt.Sprintf("lis3dhtest.I2C(%#x)", b.addr)
}

func (b *i2cBus) SetSpeed(f physic.Frequency) error {
	return nil
}

func (b *i2cBus) Tx(addr uint16, w, r []byte) error {
	if addr != b.addr {
		return fmt.Errorf("lis3dhtest: no device at %#x", addr)
	}
	if len(w) == 0 {
		return errors.New("lis3dhtest: missing sub-address")
	}
	return b.s.transfer(w[0], w[0]&0x80 != 0, w[1:], r)
}

var _ spi.Conn = &spiConn{}
var _ spi.Port = &spiPort{}
var _ i2c.Bus = &i2cBus{}
