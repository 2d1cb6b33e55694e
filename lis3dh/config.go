// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lis3dh

import (
	"fmt"
	"strconv"
	"strings"

	"periph.io/x/conn/v3/physic"
)

// DataRate is the output data rate selected in CTRL_REG1.
type DataRate uint8

// Output data rates. Rate1600Hz and Rate5376Hz require LowPower, Rate1344Hz
// requires NormalPower.
const (
	PowerDown DataRate = iota
	Rate1Hz
	Rate10Hz
	Rate25Hz
	Rate50Hz
	Rate100Hz
	Rate200Hz
	Rate400Hz
	Rate1600Hz
	Rate1344Hz
	Rate5376Hz
)

// PowerMode is the LPen bit of CTRL_REG1.
type PowerMode uint8

const (
	NormalPower PowerMode = iota
	LowPower
)

// Axes is a set of enabled axes.
type Axes uint8

const (
	AxisX Axes = 1 << iota
	AxisY
	AxisZ

	AllAxes = AxisX | AxisY | AxisZ
)

// FullScale is the measurement range selected in CTRL_REG4.
type FullScale uint8

const (
	Range2G  FullScale = iota // ±2 g
	Range4G                   // ±4 g
	Range8G                   // ±8 g
	Range16G                  // ±16 g
)

// ResolutionMode is the HR bit of CTRL_REG4.
type ResolutionMode uint8

const (
	NormalResolution ResolutionMode = iota
	HighResolution
)

// Resolution is the number of significant bits of an acceleration sample.
type Resolution uint8

const (
	Resolution8Bit  Resolution = 8  // Low-power mode.
	Resolution10Bit Resolution = 10 // Normal mode.
	Resolution12Bit Resolution = 12 // High-resolution mode.
)

// Config is a candidate configuration. It has to be compiled into Settings
// before it can be written to the device.
//
// The zero value is the power-on state except for the axes, which reset to
// AllAxes.
type Config struct {
	DataRate       DataRate       `yaml:"data_rate"`
	PowerMode      PowerMode      `yaml:"power_mode"`
	Axes           Axes           `yaml:"axes"`
	FullScale      FullScale      `yaml:"full_scale"`
	ResolutionMode ResolutionMode `yaml:"resolution_mode"`
	// BlockDataUpdate holds the output registers until both bytes of a sample
	// were read.
	BlockDataUpdate bool `yaml:"block_data_update"`
	// BigEndian puts the high byte at the lower address. Only legal with
	// HighResolution.
	BigEndian bool `yaml:"big_endian"`
	ADC       bool `yaml:"adc"`
	// Temperature routes the temperature sensor to ADC channel 3. It
	// requires ADC and BlockDataUpdate.
	Temperature         bool `yaml:"temperature"`
	DisconnectSDOPullUp bool `yaml:"disconnect_sdo_pull_up"`
}

// DefaultConfig samples all axes at 100Hz with 10 bits and a ±2 g range.
var DefaultConfig = Config{
	DataRate:       Rate100Hz,
	PowerMode:      NormalPower,
	Axes:           AllAxes,
	FullScale:      Range2G,
	ResolutionMode: NormalResolution,
}

// Settings is a validated configuration. It is immutable and is the only
// value that renders to register bytes.
//
// The zero value is the power-down state.
type Settings struct {
	choice [numFields]int
}

// RegisterBytes holds the rendered content of the configuration registers.
type RegisterBytes struct {
	CtrlReg0   byte
	TempCfgReg byte
	CtrlReg1   byte
	CtrlReg4   byte
}

// Compile checks every entitlement of c, following chains of requirements,
// and returns the resulting Settings.
//
// The returned error is a *ConfigError matching ErrInvalidConfiguration.
func (c Config) Compile() (Settings, error) {
	ch, err := c.choices()
	if err != nil {
		return Settings{}, err
	}
	if err := validate(&ch); err != nil {
		return Settings{}, err
	}
	return Settings{choice: ch}, nil
}

// MustCompile is like Compile but panics on an invalid configuration.
func (c Config) MustCompile() Settings {
	s, err := c.Compile()
	if err != nil {
		panic(err)
	}
	return s
}

func (c *Config) choices() ([numFields]int, error) {
	var ch [numFields]int
	for i := range fields {
		ch[i] = fields[i].Default
	}
	ch[FieldSDOPullUp] = boolIndex(c.DisconnectSDOPullUp)
	ch[FieldADC] = boolIndex(c.ADC)
	ch[FieldTemperature] = boolIndex(c.Temperature)
	ch[FieldDataRate] = int(c.DataRate)
	ch[FieldPowerMode] = int(c.PowerMode)
	ch[FieldAxes] = int(c.Axes)
	ch[FieldBlockDataUpdate] = boolIndex(c.BlockDataUpdate)
	ch[FieldEndianness] = boolIndex(c.BigEndian)
	ch[FieldFullScale] = int(c.FullScale)
	ch[FieldResolutionMode] = int(c.ResolutionMode)
	for i := range fields {
		if ch[i] >= len(fields[i].Variants) {
			return ch, &ConfigError{Field: FieldID(i), Variant: strconv.Itoa(ch[i]), Reason: "unknown value"}
		}
	}
	return ch, nil
}

func boolIndex(b bool) int {
	if b {
		return on
	}
	return off
}

// validate walks the requirement graph from every field. A field reached
// through a requirement gets its own requirements checked too, so a chain
// like endianness -> resolution_mode -> power_mode is verified end to end.
func validate(ch *[numFields]int) error {
	var visited [numFields]bool
	var visit func(id FieldID, path []FieldID) error
	visit = func(id FieldID, path []FieldID) error {
		if visited[id] {
			return nil
		}
		visited[id] = true
		v := &fields[id].Variants[ch[id]]
		for i := range v.Requires {
			r := &v.Requires[i]
			if !r.accepts(ch[r.Field]) {
				e := &ConfigError{
					Field:      id,
					Variant:    v.Name,
					Dependency: r.Field,
					Got:        variantName(r.Field, ch[r.Field]),
					Path:       path,
				}
				for _, a := range r.Accepts {
					e.Accepts = append(e.Accepts, variantName(r.Field, a))
				}
				return e
			}
		}
		next := append(path[:len(path):len(path)], id)
		for i := range v.Requires {
			if err := visit(v.Requires[i].Field, next); err != nil {
				return err
			}
		}
		return nil
	}
	for id := FieldID(0); id < numFields; id++ {
		if err := visit(id, nil); err != nil {
			return err
		}
	}
	return nil
}

// Decode recovers Settings from register content, for example as read back
// from a device.
//
// The data rate code shared by 1.344kHz and 5.376kHz is resolved with the
// power mode. Undefined raw values, unmanaged fields away from their reset
// value and violated entitlements are reported as *ConfigError.
func Decode(b RegisterBytes) (Settings, error) {
	var ch [numFields]int
	var raw [numFields]uint8
	var ambiguous []FieldID
	for i := range fields {
		f := &fields[i]
		r, _ := b.Get(f.Register)
		raw[i] = (r >> f.Offset) & f.mask()
		n := 0
		for j, v := range f.Variants {
			if v.Raw == raw[i] {
				if n == 0 {
					ch[i] = j
				}
				n++
			}
		}
		switch {
		case n == 0:
			return Settings{}, &ConfigError{Field: f.ID, Variant: fmt.Sprintf("0b%0*b", int(f.Width), raw[i]), Reason: "undefined raw value"}
		case n > 1:
			ambiguous = append(ambiguous, f.ID)
		}
		if !f.Managed && ch[i] != f.Default {
			return Settings{}, &ConfigError{Field: f.ID, Variant: f.Variants[ch[i]].Name, Reason: "not managed by this driver"}
		}
	}
	for _, id := range ambiguous {
		f := &fields[id]
	candidates:
		for j, v := range f.Variants {
			if v.Raw != raw[id] {
				continue
			}
			for k := range v.Requires {
				if !v.Requires[k].accepts(ch[v.Requires[k].Field]) {
					continue candidates
				}
			}
			ch[id] = j
			break
		}
	}
	if err := validate(&ch); err != nil {
		return Settings{}, err
	}
	return Settings{choice: ch}, nil
}

// Config returns the configuration s was compiled from.
func (s Settings) Config() Config {
	return Config{
		DataRate:            DataRate(s.choice[FieldDataRate]),
		PowerMode:           PowerMode(s.choice[FieldPowerMode]),
		Axes:                Axes(s.choice[FieldAxes]),
		FullScale:           FullScale(s.choice[FieldFullScale]),
		ResolutionMode:      ResolutionMode(s.choice[FieldResolutionMode]),
		BlockDataUpdate:     s.choice[FieldBlockDataUpdate] == on,
		BigEndian:           s.choice[FieldEndianness] == on,
		ADC:                 s.choice[FieldADC] == on,
		Temperature:         s.choice[FieldTemperature] == on,
		DisconnectSDOPullUp: s.choice[FieldSDOPullUp] == on,
	}
}

// Variant returns the variant selected for a field.
func (s Settings) Variant(id FieldID) Variant {
	return fields[id].Variants[s.choice[id]]
}

// Register renders the content of one configuration register. It returns
// false for a register not covered by Settings.
func (s Settings) Register(r ReadWriteRegister) (byte, bool) {
	var b byte
	found := false
	for i := range fields {
		f := &fields[i]
		if f.Register != r {
			continue
		}
		found = true
		b |= f.Variants[s.choice[i]].Raw << f.Offset
	}
	return b, found
}

// Render returns the bytes to write to the configuration registers.
func (s Settings) Render() RegisterBytes {
	var rb RegisterBytes
	rb.CtrlReg0, _ = s.Register(CtrlReg0)
	rb.TempCfgReg, _ = s.Register(TempCfgReg)
	rb.CtrlReg1, _ = s.Register(CtrlReg1)
	rb.CtrlReg4, _ = s.Register(CtrlReg4)
	return rb
}

// Resolution returns the bit width of acceleration samples.
func (s Settings) Resolution() Resolution {
	if PowerMode(s.choice[FieldPowerMode]) == LowPower {
		// LowPower with HighResolution never compiles.
		return Resolution8Bit
	}
	if ResolutionMode(s.choice[FieldResolutionMode]) == HighResolution {
		return Resolution12Bit
	}
	return Resolution10Bit
}

// adcResolution is the bit width of the auxiliary ADC channels, which never
// use the high resolution mode.
func (s Settings) adcResolution() Resolution {
	if PowerMode(s.choice[FieldPowerMode]) == LowPower {
		return Resolution8Bit
	}
	return Resolution10Bit
}

// gravityCoefficients in g/digit, indexed by full scale then resolution
// 8, 10 and 12 bits.
var gravityCoefficients = [...][3]float64{
	Range2G:  {0.016, 0.004, 0.001},
	Range4G:  {0.032, 0.008, 0.002},
	Range8G:  {0.064, 0.016, 0.004},
	Range16G: {0.192, 0.048, 0.012},
}

// GravityCoefficient returns the weight in g of one digit of a resolution
// adjusted sample.
func (s Settings) GravityCoefficient() float64 {
	return gravityCoefficient(FullScale(s.choice[FieldFullScale]), s.Resolution())
}

func gravityCoefficient(fs FullScale, r Resolution) float64 {
	i := 0
	switch r {
	case Resolution10Bit:
		i = 1
	case Resolution12Bit:
		i = 2
	}
	return gravityCoefficients[fs][i]
}

// ToG converts a sample to units of g.
func (s Settings) ToG(a Acceleration) float64 {
	return a.G(s.GravityCoefficient())
}

func (s Settings) String() string {
	var b strings.Builder
	b.WriteString("{")
	for i := range fields {
		if !fields[i].Managed {
			continue
		}
		if b.Len() > 1 {
			b.WriteString(" ")
		}
		fmt.Fprintf(&b, "%s:%s", fields[i].Name, fields[i].Variants[s.choice[i]].Name)
	}
	b.WriteString("}")
	return b.String()
}

// Get returns the byte of a configuration register.
func (b RegisterBytes) Get(r ReadWriteRegister) (byte, bool) {
	switch r {
	case CtrlReg0:
		return b.CtrlReg0, true
	case TempCfgReg:
		return b.TempCfgReg, true
	case CtrlReg1:
		return b.CtrlReg1, true
	case CtrlReg4:
		return b.CtrlReg4, true
	}
	return 0, false
}

var dataRateFrequencies = [...]physic.Frequency{
	PowerDown:  0,
	Rate1Hz:    physic.Hertz,
	Rate10Hz:   10 * physic.Hertz,
	Rate25Hz:   25 * physic.Hertz,
	Rate50Hz:   50 * physic.Hertz,
	Rate100Hz:  100 * physic.Hertz,
	Rate200Hz:  200 * physic.Hertz,
	Rate400Hz:  400 * physic.Hertz,
	Rate1600Hz: 1600 * physic.Hertz,
	Rate1344Hz: 1344 * physic.Hertz,
	Rate5376Hz: 5376 * physic.Hertz,
}

// Frequency returns the output data rate. It is 0 for PowerDown and for
// unknown values.
func (d DataRate) Frequency() physic.Frequency {
	if int(d) >= len(dataRateFrequencies) {
		return 0
	}
	return dataRateFrequencies[d]
}

func (d DataRate) String() string { return variantName(FieldDataRate, int(d)) }

// MarshalText implements encoding.TextMarshaler.
func (d DataRate) MarshalText() ([]byte, error) { return marshalVariant(FieldDataRate, int(d)) }

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *DataRate) UnmarshalText(text []byte) error {
	v, err := unmarshalVariant(FieldDataRate, text)
	*d = DataRate(v)
	return err
}

func (p PowerMode) String() string { return variantName(FieldPowerMode, int(p)) }

// MarshalText implements encoding.TextMarshaler.
func (p PowerMode) MarshalText() ([]byte, error) { return marshalVariant(FieldPowerMode, int(p)) }

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *PowerMode) UnmarshalText(text []byte) error {
	v, err := unmarshalVariant(FieldPowerMode, text)
	*p = PowerMode(v)
	return err
}

func (a Axes) String() string { return variantName(FieldAxes, int(a)) }

// MarshalText implements encoding.TextMarshaler.
func (a Axes) MarshalText() ([]byte, error) { return marshalVariant(FieldAxes, int(a)) }

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Axes) UnmarshalText(text []byte) error {
	v, err := unmarshalVariant(FieldAxes, text)
	*a = Axes(v)
	return err
}

func (f FullScale) String() string { return variantName(FieldFullScale, int(f)) }

// MarshalText implements encoding.TextMarshaler.
func (f FullScale) MarshalText() ([]byte, error) { return marshalVariant(FieldFullScale, int(f)) }

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *FullScale) UnmarshalText(text []byte) error {
	v, err := unmarshalVariant(FieldFullScale, text)
	*f = FullScale(v)
	return err
}

func (m ResolutionMode) String() string { return variantName(FieldResolutionMode, int(m)) }

// MarshalText implements encoding.TextMarshaler.
func (m ResolutionMode) MarshalText() ([]byte, error) {
	return marshalVariant(FieldResolutionMode, int(m))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *ResolutionMode) UnmarshalText(text []byte) error {
	v, err := unmarshalVariant(FieldResolutionMode, text)
	*m = ResolutionMode(v)
	return err
}

func (r Resolution) String() string {
	return strconv.Itoa(int(r)) + "-bit"
}

func marshalVariant(id FieldID, v int) ([]byte, error) {
	if v >= len(fields[id].Variants) {
		return nil, &ConfigError{Field: id, Variant: strconv.Itoa(v), Reason: "unknown value"}
	}
	return []byte(fields[id].Variants[v].Name), nil
}

func unmarshalVariant(id FieldID, text []byte) (int, error) {
	v, ok := variantIndex(id, string(text))
	if !ok {
		return 0, &ConfigError{Field: id, Variant: string(text), Reason: "unknown value"}
	}
	return v, nil
}
