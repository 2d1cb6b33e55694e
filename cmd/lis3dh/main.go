// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// lis3dh configures a LIS3DH accelerometer and prints its samples.
//
// The sensor is reached through the first SPI port unless -i2c is given.
// -sim runs against an in-memory device.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/GermanBionicSystems/accel/lis3dh"
	"github.com/GermanBionicSystems/accel/lis3dh/lis3dhtest"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

type options struct {
	cfg      fileConfig
	sim      bool
	n        int
	interval time.Duration
	plot     string
	verbose  bool
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("lis3dh", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "YAML configuration file")
	spiName := fs.String("spi", "", "SPI port to use")
	i2cName := fs.String("i2c", "", "I²C bus to use")
	addr := fs.Uint("addr", uint(lis3dh.I2CAddr), "I²C address")
	sim := fs.Bool("sim", false, "use a simulated device")
	n := fs.Int("n", 10, "number of samples to read")
	interval := fs.Duration("interval", 0, "delay between samples (default one output data period)")
	plot := fs.String("plot", "", "write a PNG plot of the samples to this file")
	verbose := fs.Bool("v", false, "trace every bus transaction")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, errors.New("unexpected arguments")
	}
	o := &options{
		cfg:      defaultFileConfig(),
		sim:      *sim,
		n:        *n,
		interval: *interval,
		plot:     *plot,
		verbose:  *verbose,
	}
	if *configPath != "" {
		c, err := loadConfig(*configPath)
		if err != nil {
			return nil, err
		}
		o.cfg = c
	}
	intervalSet := false
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "interval":
			intervalSet = true
		case "spi":
			o.cfg.SPI = *spiName
		case "i2c":
			o.cfg.I2C = *i2cName
		case "addr":
			o.cfg.Addr = uint16(*addr)
		}
	})
	if !intervalSet {
		o.interval = samplePeriod(o.cfg.Sensor.DataRate)
	}
	if o.cfg.SPI != "" && o.cfg.I2C != "" {
		return nil, errors.New("use only one of -spi and -i2c")
	}
	if o.n < 0 {
		return nil, errors.New("-n must not be negative")
	}
	return o, nil
}

// open initializes the sensor on the selected bus. The returned function
// releases the bus.
func open(o *options) (*lis3dh.Dev, func() error, error) {
	var t *lis3dh.Transport
	closer := func() error { return nil }
	switch {
	case o.sim:
		sim := lis3dhtest.New()
		if o.cfg.I2C != "" {
			t = lis3dh.NewI2CTransport(sim.I2C(o.cfg.Addr), o.cfg.Addr)
		} else {
			var err error
			if t, err = lis3dh.NewSPITransport(sim.SPIPort()); err != nil {
				return nil, nil, err
			}
		}
		if err := simulateGravity(sim, &o.cfg.Sensor); err != nil {
			return nil, nil, err
		}
	default:
		if _, err := host.Init(); err != nil {
			return nil, nil, err
		}
		if o.cfg.I2C != "" {
			b, err := i2creg.Open(o.cfg.I2C)
			if err != nil {
				return nil, nil, err
			}
			t = lis3dh.NewI2CTransport(b, o.cfg.Addr)
			closer = b.Close
		} else {
			p, err := spireg.Open(o.cfg.SPI)
			if err != nil {
				return nil, nil, err
			}
			if t, err = lis3dh.NewSPITransport(p); err != nil {
				p.Close()
				return nil, nil, err
			}
			closer = p.Close
		}
	}
	if o.verbose {
		t.EnableDebug(log.Printf)
	}
	d, err := lis3dh.New(t, &o.cfg.Sensor)
	if err != nil {
		closer()
		return nil, nil, err
	}
	return d, closer, nil
}

// verify reads the configuration registers back and checks they decode to
// the active settings.
func verify(d *lis3dh.Dev) error {
	ok, err := d.Detect()
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("WHO_AM_I mismatch, not a LIS3DH")
	}
	var b [3]byte
	if err := d.ReadRegisters(lis3dh.CtrlReg0, b[:]); err != nil {
		return err
	}
	r4, err := d.ReadRegister(lis3dh.CtrlReg4)
	if err != nil {
		return err
	}
	s, err := lis3dh.Decode(lis3dh.RegisterBytes{CtrlReg0: b[0], TempCfgReg: b[1], CtrlReg1: b[2], CtrlReg4: r4})
	if err != nil {
		return fmt.Errorf("read back: %w", err)
	}
	if s != d.Settings() {
		return fmt.Errorf("read back %s, wrote %s", s, d.Settings())
	}
	return nil
}

func run(o *options, w io.Writer, color bool) error {
	d, closer, err := open(o)
	if err != nil {
		return err
	}
	defer closer()
	if err := verify(d); err != nil {
		d.Halt()
		return err
	}
	s := d.Settings()
	fmt.Fprintf(w, "%s %s\n", d, s.Resolution())
	g := newGauge(w, 21, fullScaleG(s.Config().FullScale), color)
	samples := make([][3]float64, 0, o.n)
	for i := 0; i < o.n; i++ {
		if i != 0 && o.interval > 0 {
			time.Sleep(o.interval)
		}
		v, err := d.ReadAcceleration()
		if err != nil {
			d.Halt()
			return err
		}
		x, y, z := s.VectorToG(v)
		samples = append(samples, [3]float64{x, y, z})
		if err := g.render(x, y, z); err != nil {
			d.Halt()
			return err
		}
	}
	if err := g.Halt(); err != nil {
		d.Halt()
		return err
	}
	if o.plot != "" {
		if err := plotSamples(o.plot, samples, s); err != nil {
			d.Halt()
			return err
		}
	}
	return d.Halt()
}

func mainImpl() error {
	o, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		return err
	}
	if !o.verbose {
		log.SetOutput(io.Discard)
	}
	color := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	var w io.Writer
	if color {
		w = colorable.NewColorableStdout()
	} else {
		w = colorable.NewNonColorable(os.Stdout)
	}
	return run(o, w, color)
}

func main() {
	if err := mainImpl(); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "lis3dh: %s.\n", err)
		os.Exit(1)
	}
}
