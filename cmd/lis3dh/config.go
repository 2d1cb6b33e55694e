// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/GermanBionicSystems/accel/lis3dh"
	"github.com/GermanBionicSystems/accel/lis3dh/lis3dhtest"
	"gopkg.in/yaml.v3"
)

// fileConfig is the content of the -config file, for example:
//
//	i2c: "1"
//	addr: 0x19
//	sensor:
//	  data_rate: 400Hz
//	  axes: XYZ
//	  full_scale: 4g
//	  resolution_mode: High
type fileConfig struct {
	SPI    string        `yaml:"spi,omitempty"`
	I2C    string        `yaml:"i2c,omitempty"`
	Addr   uint16        `yaml:"addr"`
	Sensor lis3dh.Config `yaml:"sensor"`
}

func defaultFileConfig() fileConfig {
	return fileConfig{Addr: lis3dh.I2CAddr, Sensor: lis3dh.DefaultConfig}
}

// loadConfig reads a YAML file. Keys it omits keep their default value.
func loadConfig(path string) (fileConfig, error) {
	c := defaultFileConfig()
	f, err := os.Open(path)
	if err != nil {
		return c, err
	}
	defer f.Close()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return c, fmt.Errorf("%s: %w", path, err)
	}
	if _, err := c.Sensor.Compile(); err != nil {
		return c, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// fullScaleG returns the measurement range in g.
func fullScaleG(fs lis3dh.FullScale) float64 {
	return float64(int(2) << fs)
}

// samplePeriod returns the time between two samples at rate dr, or 100ms when
// the sensor is powered down.
func samplePeriod(dr lis3dh.DataRate) time.Duration {
	f := dr.Frequency()
	if f == 0 {
		return 100 * time.Millisecond
	}
	return f.Period()
}

// simulateGravity makes the simulated device report 1g on the Z axis in the
// format c selects.
func simulateGravity(sim *lis3dhtest.Sim, c *lis3dh.Config) error {
	s, err := c.Compile()
	if err != nil {
		return err
	}
	r := s.Resolution()
	digits := math.Min(math.Round(1/s.GravityCoefficient()), float64(int(1)<<(r-1)-1))
	v := lis3dh.AccelerationVector{Z: lis3dh.Acceleration(int16(digits) << (16 - r))}
	b := v.ToBEBytes()
	if !c.BigEndian {
		for i := 0; i < len(b); i += 2 {
			b[i], b[i+1] = b[i+1], b[i]
		}
	}
	for i, x := range b {
		sim.SetRegister(uint8(lis3dh.OutXL)+uint8(i), x)
	}
	return nil
}
