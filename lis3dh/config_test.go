// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lis3dh

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"periph.io/x/conn/v3/physic"
)

func TestRender(t *testing.T) {
	data := []struct {
		name string
		c    Config
		want RegisterBytes
	}{
		{"default", DefaultConfig, RegisterBytes{0x10, 0x00, 0x57, 0x00}},
		{"zero", Config{}, RegisterBytes{0x10, 0x00, 0x00, 0x00}},
		{"sdo", Config{DisconnectSDOPullUp: true}, RegisterBytes{0x90, 0x00, 0x00, 0x00}},
		{"adc", Config{ADC: true}, RegisterBytes{0x10, 0x80, 0x00, 0x00}},
		{"temperature", Config{ADC: true, Temperature: true, BlockDataUpdate: true}, RegisterBytes{0x10, 0xC0, 0x00, 0x80}},
		{"1Hz", Config{DataRate: Rate1Hz, Axes: AllAxes}, RegisterBytes{0x10, 0x00, 0x17, 0x00}},
		{"10Hz", Config{DataRate: Rate10Hz, Axes: AllAxes}, RegisterBytes{0x10, 0x00, 0x27, 0x00}},
		{"25Hz", Config{DataRate: Rate25Hz, Axes: AllAxes}, RegisterBytes{0x10, 0x00, 0x37, 0x00}},
		{"50Hz", Config{DataRate: Rate50Hz, Axes: AllAxes}, RegisterBytes{0x10, 0x00, 0x47, 0x00}},
		{"200Hz", Config{DataRate: Rate200Hz, Axes: AllAxes}, RegisterBytes{0x10, 0x00, 0x67, 0x00}},
		{"400Hz", Config{DataRate: Rate400Hz, Axes: AllAxes}, RegisterBytes{0x10, 0x00, 0x77, 0x00}},
		{"1.6kHz", Config{DataRate: Rate1600Hz, PowerMode: LowPower, Axes: AllAxes}, RegisterBytes{0x10, 0x00, 0x8F, 0x00}},
		{"1.344kHz", Config{DataRate: Rate1344Hz, Axes: AllAxes}, RegisterBytes{0x10, 0x00, 0x97, 0x00}},
		{"5.376kHz", Config{DataRate: Rate5376Hz, PowerMode: LowPower, Axes: AllAxes}, RegisterBytes{0x10, 0x00, 0x9F, 0x00}},
		{"x", Config{DataRate: Rate100Hz, Axes: AxisX}, RegisterBytes{0x10, 0x00, 0x51, 0x00}},
		{"yz", Config{DataRate: Rate100Hz, Axes: AxisY | AxisZ}, RegisterBytes{0x10, 0x00, 0x56, 0x00}},
		{"4g", Config{FullScale: Range4G}, RegisterBytes{0x10, 0x00, 0x00, 0x10}},
		{"8g", Config{FullScale: Range8G}, RegisterBytes{0x10, 0x00, 0x00, 0x20}},
		{"16g", Config{FullScale: Range16G}, RegisterBytes{0x10, 0x00, 0x00, 0x30}},
		{"hr", Config{ResolutionMode: HighResolution}, RegisterBytes{0x10, 0x00, 0x00, 0x08}},
		{"bdu", Config{BlockDataUpdate: true}, RegisterBytes{0x10, 0x00, 0x00, 0x80}},
		{"big endian", Config{BigEndian: true, ResolutionMode: HighResolution}, RegisterBytes{0x10, 0x00, 0x00, 0x48}},
		{"all", Config{
			DataRate: Rate400Hz, Axes: AllAxes, FullScale: Range16G, ResolutionMode: HighResolution,
			BlockDataUpdate: true, BigEndian: true, ADC: true, Temperature: true, DisconnectSDOPullUp: true,
		}, RegisterBytes{0x90, 0xC0, 0x77, 0xF8}},
	}
	for _, line := range data {
		s, err := line.c.Compile()
		if err != nil {
			t.Errorf("%s: %v", line.name, err)
			continue
		}
		if diff := cmp.Diff(line.want, s.Render()); diff != "" {
			t.Errorf("%s: (-want +got)\n%s", line.name, diff)
		}
	}
}

func TestCompileRejects(t *testing.T) {
	data := []struct {
		name       string
		c          Config
		field      FieldID
		dependency FieldID
		path       []FieldID
	}{
		{"low power high resolution", Config{PowerMode: LowPower, ResolutionMode: HighResolution}, FieldResolutionMode, FieldPowerMode, nil},
		{"1.6kHz normal", Config{DataRate: Rate1600Hz}, FieldDataRate, FieldPowerMode, nil},
		{"1.344kHz low power", Config{DataRate: Rate1344Hz, PowerMode: LowPower}, FieldDataRate, FieldPowerMode, nil},
		{"5.376kHz normal", Config{DataRate: Rate5376Hz}, FieldDataRate, FieldPowerMode, nil},
		{"big endian normal resolution", Config{BigEndian: true}, FieldEndianness, FieldResolutionMode, nil},
		{"big endian low power", Config{BigEndian: true, ResolutionMode: HighResolution, PowerMode: LowPower}, FieldResolutionMode, FieldPowerMode, []FieldID{FieldEndianness}},
		{"temperature without adc", Config{Temperature: true, BlockDataUpdate: true}, FieldTemperature, FieldADC, nil},
		{"temperature without bdu", Config{Temperature: true, ADC: true}, FieldTemperature, FieldBlockDataUpdate, nil},
	}
	for _, line := range data {
		_, err := line.c.Compile()
		if !errors.Is(err, ErrInvalidConfiguration) {
			t.Errorf("%s: got %v", line.name, err)
			continue
		}
		var ce *ConfigError
		if !errors.As(err, &ce) {
			t.Errorf("%s: %T is not a *ConfigError", line.name, err)
			continue
		}
		if ce.Field != line.field || ce.Dependency != line.dependency || ce.Reason != "" {
			t.Errorf("%s: got %s/%s %q", line.name, ce.Field, ce.Dependency, ce.Reason)
		}
		if diff := cmp.Diff(line.path, ce.Path); diff != "" {
			t.Errorf("%s: path (-want +got)\n%s", line.name, diff)
		}
	}
}

func TestCompileUnknownValue(t *testing.T) {
	data := []Config{
		{DataRate: Rate5376Hz + 1},
		{PowerMode: 2},
		{Axes: 8},
		{FullScale: 4},
		{ResolutionMode: 2},
	}
	for i, c := range data {
		_, err := c.Compile()
		var ce *ConfigError
		if !errors.As(err, &ce) || ce.Reason != "unknown value" {
			t.Errorf("#%d: got %v", i, err)
		}
	}
}

func TestCompileErrorMessage(t *testing.T) {
	_, err := Config{BigEndian: true, ResolutionMode: HighResolution, PowerMode: LowPower}.Compile()
	want := "lis3dh: invalid configuration: resolution_mode=High requires power_mode in {Normal}, got LowPower (required via endianness)"
	if err == nil || err.Error() != want {
		t.Errorf("got %v\nwant %s", err, want)
	}
}

func TestMustCompile(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	Config{DataRate: Rate1600Hz}.MustCompile()
}

func TestResolution(t *testing.T) {
	data := []struct {
		p    PowerMode
		m    ResolutionMode
		want Resolution
	}{
		{LowPower, NormalResolution, Resolution8Bit},
		{NormalPower, NormalResolution, Resolution10Bit},
		{NormalPower, HighResolution, Resolution12Bit},
	}
	for _, line := range data {
		s := Config{PowerMode: line.p, ResolutionMode: line.m}.MustCompile()
		if got := s.Resolution(); got != line.want {
			t.Errorf("%s/%s: got %s want %s", line.p, line.m, got, line.want)
		}
	}
}

func TestGravityCoefficient(t *testing.T) {
	modes := []struct {
		p PowerMode
		m ResolutionMode
	}{
		{LowPower, NormalResolution},
		{NormalPower, NormalResolution},
		{NormalPower, HighResolution},
	}
	want := map[FullScale][3]float64{
		Range2G:  {0.016, 0.004, 0.001},
		Range4G:  {0.032, 0.008, 0.002},
		Range8G:  {0.064, 0.016, 0.004},
		Range16G: {0.192, 0.048, 0.012},
	}
	for fs, row := range want {
		for i, mode := range modes {
			s := Config{FullScale: fs, PowerMode: mode.p, ResolutionMode: mode.m}.MustCompile()
			if got := s.GravityCoefficient(); got != row[i] {
				t.Errorf("%s %s: got %v want %v", fs, s.Resolution(), got, row[i])
			}
		}
	}
	s := Config{FullScale: Range4G}.MustCompile()
	if s.Resolution() != Resolution10Bit || s.GravityCoefficient() != 0.008 {
		t.Errorf("±4g 10-bit: got %v", s.GravityCoefficient())
	}
}

// TestRoundTrip renders every legal configuration and decodes it back.
func TestRoundTrip(t *testing.T) {
	legal := 0
	for dr := PowerDown; dr <= Rate5376Hz; dr++ {
		for pm := NormalPower; pm <= LowPower; pm++ {
			for ax := Axes(0); ax <= AllAxes; ax++ {
				for fs := Range2G; fs <= Range16G; fs++ {
					for rm := NormalResolution; rm <= HighResolution; rm++ {
						for flags := 0; flags < 32; flags++ {
							c := Config{
								DataRate: dr, PowerMode: pm, Axes: ax, FullScale: fs, ResolutionMode: rm,
								BlockDataUpdate:     flags&1 != 0,
								BigEndian:           flags&2 != 0,
								ADC:                 flags&4 != 0,
								Temperature:         flags&8 != 0,
								DisconnectSDOPullUp: flags&16 != 0,
							}
							s, err := c.Compile()
							if err != nil {
								continue
							}
							legal++
							got, err := Decode(s.Render())
							if err != nil {
								t.Fatalf("%+v: %v", c, err)
							}
							if got != s {
								t.Fatalf("%+v: decoded %s want %s", c, got, s)
							}
							if got.Config() != c {
								t.Fatalf("got %+v want %+v", got.Config(), c)
							}
						}
					}
				}
			}
		}
	}
	if legal == 0 {
		t.Fatal("no legal configuration")
	}
}

func TestDecodeOverloadedDataRate(t *testing.T) {
	s, err := Decode(RegisterBytes{0x10, 0x00, 0x97, 0x00})
	if err != nil {
		t.Fatal(err)
	}
	if dr := s.Config().DataRate; dr != Rate1344Hz {
		t.Errorf("normal power: got %s", dr)
	}
	s, err = Decode(RegisterBytes{0x10, 0x00, 0x9F, 0x00})
	if err != nil {
		t.Fatal(err)
	}
	if dr := s.Config().DataRate; dr != Rate5376Hz {
		t.Errorf("low power: got %s", dr)
	}
}

func TestDecodeRejects(t *testing.T) {
	data := []struct {
		name string
		b    RegisterBytes
	}{
		{"reserved bits", RegisterBytes{0x00, 0x00, 0x57, 0x00}},
		{"undefined data rate", RegisterBytes{0x10, 0x00, 0xA7, 0x00}},
		{"undefined self test", RegisterBytes{0x10, 0x00, 0x57, 0x06}},
		{"self test", RegisterBytes{0x10, 0x00, 0x57, 0x02}},
		{"3-wire spi", RegisterBytes{0x10, 0x00, 0x57, 0x01}},
		{"1.6kHz normal", RegisterBytes{0x10, 0x00, 0x87, 0x00}},
		{"low power high resolution", RegisterBytes{0x10, 0x00, 0x5F, 0x08}},
	}
	for _, line := range data {
		if _, err := Decode(line.b); !errors.Is(err, ErrInvalidConfiguration) {
			t.Errorf("%s: got %v", line.name, err)
		}
	}
}

func TestText(t *testing.T) {
	var dr DataRate
	if err := dr.UnmarshalText([]byte("1.344kHz")); err != nil || dr != Rate1344Hz {
		t.Errorf("got %s, %v", dr, err)
	}
	if err := dr.UnmarshalText([]byte("3Hz")); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("got %v", err)
	}
	b, err := Rate5376Hz.MarshalText()
	if err != nil || string(b) != "5.376kHz" {
		t.Errorf("got %q, %v", b, err)
	}
	var ax Axes
	if err := ax.UnmarshalText([]byte("XZ")); err != nil || ax != AxisX|AxisZ {
		t.Errorf("got %s, %v", ax, err)
	}
	var fs FullScale
	if err := fs.UnmarshalText([]byte("16g")); err != nil || fs != Range16G {
		t.Errorf("got %s, %v", fs, err)
	}
	var pm PowerMode
	if err := pm.UnmarshalText([]byte("LowPower")); err != nil || pm != LowPower {
		t.Errorf("got %s, %v", pm, err)
	}
	var rm ResolutionMode
	if err := rm.UnmarshalText([]byte("High")); err != nil || rm != HighResolution {
		t.Errorf("got %s, %v", rm, err)
	}
	if _, err := FullScale(9).MarshalText(); err == nil {
		t.Error("expected error")
	}
}

func TestDataRateFrequency(t *testing.T) {
	if f := Rate1344Hz.Frequency(); f != 1344*physic.Hertz {
		t.Errorf("got %s", f)
	}
	if f := Rate5376Hz.Frequency(); f != 5376*physic.Hertz {
		t.Errorf("got %s", f)
	}
	if f := PowerDown.Frequency(); f != 0 {
		t.Errorf("got %s", f)
	}
	if f := DataRate(42).Frequency(); f != 0 {
		t.Errorf("got %s", f)
	}
}

func TestSettingsString(t *testing.T) {
	want := "{sdo_pull_up:Connected adc:Disabled temperature:Disabled data_rate:100Hz power_mode:Normal axes:XYZ block_data_update:Continuous endianness:LittleEndian full_scale:2g resolution_mode:Normal}"
	if s := DefaultConfig.MustCompile().String(); s != want {
		t.Errorf("got %s", s)
	}
	if v := DefaultConfig.MustCompile().Variant(FieldFullScale); v.Name != "2g" {
		t.Errorf("got %s", v.Name)
	}
}
