// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lis3dh

import (
	"fmt"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/spi"
)

// Dev is a handle to an initialized LIS3DH.
//
// It owns its Bus. Dev is not safe for concurrent use.
type Dev struct {
	b Bus
	s Settings
}

// New validates c, writes it to the device and returns a handle bound to it.
//
// The configuration registers are written in address order, contiguous
// registers in a single transaction: CTRL_REG0 to CTRL_REG1 then CTRL_REG4.
// An invalid configuration is reported before anything is written.
func New(b Bus, c *Config) (*Dev, error) {
	if c == nil {
		c = &DefaultConfig
	}
	s, err := c.Compile()
	if err != nil {
		return nil, err
	}
	if err := apply(b, s); err != nil {
		return nil, err
	}
	return &Dev{b: b, s: s}, nil
}

// NewSPI returns a Dev on an SPI port. A nil c means DefaultConfig.
func NewSPI(p spi.Port, c *Config) (*Dev, error) {
	t, err := NewSPITransport(p)
	if err != nil {
		return nil, err
	}
	return New(t, c)
}

// NewI2C returns a Dev at addr on an I²C bus. A nil c means DefaultConfig.
func NewI2C(b i2c.Bus, addr uint16, c *Config) (*Dev, error) {
	return New(NewI2CTransport(b, addr), c)
}

type registerValue struct {
	r ReadWriteRegister
	v byte
}

// apply writes the rendered configuration registers, grouping runs of
// consecutive addresses into multiple-register writes.
func apply(b Bus, s Settings) error {
	regs := make([]registerValue, 0, len(configRegisters))
	for _, r := range configRegisters {
		v, _ := s.Register(r)
		regs = append(regs, registerValue{r, v})
	}
	for start := 0; start < len(regs); {
		end := start + 1
		for end < len(regs) && regs[end].r == regs[end-1].r+1 {
			end++
		}
		if end-start == 1 {
			if err := b.Write(regs[start].r, regs[start].v); err != nil {
				return transportError("write", regs[start].r, err)
			}
		} else {
			values := make([]byte, 0, end-start)
			for _, rv := range regs[start:end] {
				values = append(values, rv.v)
			}
			if err := b.WriteMultiple(regs[start].r, values); err != nil {
				return transportError("write", regs[start].r, err)
			}
		}
		start = end
	}
	return nil
}

// Reconfigure replaces the whole configuration. Every configuration register
// is rewritten, even when unchanged.
//
// A nil c means DefaultConfig. When c is invalid nothing is written and the
// current configuration stays in effect.
//
// After a TransportError some registers may already hold the new values
// while Settings still reports the old configuration. Reconfigure should be
// retried.
func (d *Dev) Reconfigure(c *Config) error {
	if c == nil {
		c = &DefaultConfig
	}
	s, err := c.Compile()
	if err != nil {
		return err
	}
	if err := apply(d.b, s); err != nil {
		return err
	}
	d.s = s
	return nil
}

// Settings returns the active configuration.
func (d *Dev) Settings() Settings {
	return d.s
}

// WhoAmI returns the device identification byte, WhoAmIValue for a LIS3DH.
func (d *Dev) WhoAmI() (byte, error) {
	v, err := d.b.Read(WhoAmI)
	return v, transportError("read", WhoAmI, err)
}

// Detect reports whether the device identifies itself as a LIS3DH.
func (d *Dev) Detect() (bool, error) {
	ok, err := d.b.ReadAndVerify(WhoAmI, WhoAmIValue)
	return ok, transportError("read", WhoAmI, err)
}

// ReadAccelerationBytes returns OUT_X_L to OUT_Z_H as read from the device.
func (d *Dev) ReadAccelerationBytes() ([6]byte, error) {
	var b [6]byte
	err := d.b.ReadMultiple(OutXL, b[:])
	return b, transportError("read", OutXL, err)
}

// ReadAcceleration reads the three axes in one transaction and returns them
// adjusted to the configured resolution.
func (d *Dev) ReadAcceleration() (AccelerationVector, error) {
	b, err := d.ReadAccelerationBytes()
	if err != nil {
		return AccelerationVector{}, err
	}
	return decodeVector(&b, d.s.Resolution(), d.s.Config().BigEndian), nil
}

// ReadADC returns the three auxiliary ADC channels. Channel 3 holds the
// temperature delta when Config.Temperature is set.
func (d *Dev) ReadADC() ([3]int16, error) {
	var b [6]byte
	var out [3]int16
	if err := d.b.ReadMultiple(OutADC1L, b[:]); err != nil {
		return out, transportError("read", OutADC1L, err)
	}
	res := d.s.adcResolution()
	be := d.s.Config().BigEndian
	for i := range out {
		out[i] = decodeSample(b[2*i], b[2*i+1], res, be)
	}
	return out, nil
}

// ReadRegister reads any register.
func (d *Dev) ReadRegister(r Register) (byte, error) {
	v, err := d.b.Read(r)
	return v, transportError("read", r, err)
}

// ReadRegisters fills buf from consecutive registers starting at start.
// Reading past the register map is undefined.
func (d *Dev) ReadRegisters(start Register, buf []byte) error {
	return transportError("read", start, d.b.ReadMultiple(start, buf))
}

// WriteRegister writes value without any check. The Settings of d are not
// updated and may no longer describe the device.
func (d *Dev) WriteRegister(r ReadWriteRegister, value byte) error {
	return transportError("write", r, d.b.Write(r, value))
}

// WriteRegisters writes values to consecutive registers starting at start.
// The caller must guarantee every touched register is writable; the Settings
// of d are not updated.
func (d *Dev) WriteRegisters(start ReadWriteRegister, values []byte) error {
	return transportError("write", start, d.b.WriteMultiple(start, values))
}

// Halt powers the sensor down by reconfiguring it with PowerDown. Implements
// conn.Resource.
func (d *Dev) Halt() error {
	c := d.s.Config()
	c.DataRate = PowerDown
	return d.Reconfigure(&c)
}

func (d *Dev) String() string {
	return fmt.Sprintf("LIS3DH{%s}", d.s)
}

var _ conn.Resource = &Dev{}
