// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lis3dh

import "fmt"

// FieldID identifies a bit-field of a LIS3DH control register.
type FieldID int

// Fields of CTRL_REG0, TEMP_CFG_REG, CTRL_REG1 and CTRL_REG4, in register and
// bit order.
const (
	FieldSDOPullUp FieldID = iota
	FieldCtrlReg0Reserved
	FieldADC
	FieldTemperature
	FieldDataRate
	FieldPowerMode
	FieldAxes
	FieldBlockDataUpdate
	FieldEndianness
	FieldFullScale
	FieldResolutionMode
	FieldSelfTest
	FieldSPIMode
	numFields
)

// Variant is one legal value of a Field.
type Variant struct {
	Name string
	// Raw is the value stored in the field's bits. Two variants of the same
	// field may share a raw value; see DataRate.
	Raw uint8
	// Requires lists the states other fields must be in for this variant to
	// be legal.
	Requires []Requirement
}

// Requirement states that a variant is only legal when Field holds one of the
// variants at the indexes in Accepts. A nil Accepts means any value of Field.
type Requirement struct {
	Field   FieldID
	Accepts []int
}

// Field describes the geometry and the legal values of a register bit-field.
type Field struct {
	ID       FieldID
	Name     string
	Register ReadWriteRegister
	Offset   uint8
	Width    uint8
	Variants []Variant
	// Default is the index of the variant held after power-on reset.
	Default int
	// Managed is false for fields Config does not expose. They are always
	// rendered at Default.
	Managed bool
}

func (f *Field) mask() uint8 {
	return uint8(1)<<f.Width - 1
}

// accepts reports whether variant index v satisfies r.
func (r *Requirement) accepts(v int) bool {
	if r.Accepts == nil {
		return true
	}
	for _, a := range r.Accepts {
		if a == v {
			return true
		}
	}
	return false
}

const (
	off = 0
	on  = 1
)

// fields is the register map. Indexes match FieldID.
var fields = [numFields]Field{
	// CTRL_REG0 (1Eh)
	FieldSDOPullUp: {
		Name: "sdo_pull_up", Register: CtrlReg0, Offset: 7, Width: 1, Managed: true,
		Variants: []Variant{
			{Name: "Connected", Raw: 0b0},
			{Name: "Disconnected", Raw: 0b1},
		},
	},
	// The lower seven bits of CTRL_REG0 must hold 0b0010000 for correct
	// operation (datasheet p. 34).
	FieldCtrlReg0Reserved: {
		Name: "ctrl_reg0_reserved", Register: CtrlReg0, Offset: 0, Width: 7,
		Variants: []Variant{
			{Name: "Required", Raw: 0b0010000},
		},
	},

	// TEMP_CFG_REG (1Fh)
	FieldADC: {
		Name: "adc", Register: TempCfgReg, Offset: 7, Width: 1, Managed: true,
		Variants: []Variant{
			{Name: "Disabled", Raw: 0b0},
			{Name: "Enabled", Raw: 0b1},
		},
	},
	// The temperature sensor is sampled through ADC channel 3 and its output
	// is only coherent with block data update.
	FieldTemperature: {
		Name: "temperature", Register: TempCfgReg, Offset: 6, Width: 1, Managed: true,
		Variants: []Variant{
			{Name: "Disabled", Raw: 0b0},
			{Name: "Enabled", Raw: 0b1, Requires: []Requirement{
				{Field: FieldADC, Accepts: []int{on}},
				{Field: FieldBlockDataUpdate, Accepts: []int{on}},
			}},
		},
	},

	// CTRL_REG1 (20h)
	FieldDataRate: {
		Name: "data_rate", Register: CtrlReg1, Offset: 4, Width: 4, Managed: true,
		Variants: []Variant{
			PowerDown:  {Name: "PowerDown", Raw: 0b0000},
			Rate1Hz:    {Name: "1Hz", Raw: 0b0001},
			Rate10Hz:   {Name: "10Hz", Raw: 0b0010},
			Rate25Hz:   {Name: "25Hz", Raw: 0b0011},
			Rate50Hz:   {Name: "50Hz", Raw: 0b0100},
			Rate100Hz:  {Name: "100Hz", Raw: 0b0101},
			Rate200Hz:  {Name: "200Hz", Raw: 0b0110},
			Rate400Hz:  {Name: "400Hz", Raw: 0b0111},
			Rate1600Hz: {Name: "1.6kHz", Raw: 0b1000, Requires: lowPowerOnly},
			Rate1344Hz: {Name: "1.344kHz", Raw: 0b1001, Requires: normalPowerOnly},
			// Same raw code as Rate1344Hz; the device interprets it by power mode.
			Rate5376Hz: {Name: "5.376kHz", Raw: 0b1001, Requires: lowPowerOnly},
		},
	},
	FieldPowerMode: {
		Name: "power_mode", Register: CtrlReg1, Offset: 3, Width: 1, Managed: true,
		Variants: []Variant{
			NormalPower: {Name: "Normal", Raw: 0b0},
			LowPower:    {Name: "LowPower", Raw: 0b1},
		},
	},
	FieldAxes: {
		Name: "axes", Register: CtrlReg1, Offset: 0, Width: 3, Managed: true,
		Default: int(AxisX | AxisY | AxisZ),
		Variants: []Variant{
			{Name: "None", Raw: 0b000},
			{Name: "X", Raw: 0b001},
			{Name: "Y", Raw: 0b010},
			{Name: "XY", Raw: 0b011},
			{Name: "Z", Raw: 0b100},
			{Name: "XZ", Raw: 0b101},
			{Name: "YZ", Raw: 0b110},
			{Name: "XYZ", Raw: 0b111},
		},
	},

	// CTRL_REG4 (23h)
	FieldBlockDataUpdate: {
		Name: "block_data_update", Register: CtrlReg4, Offset: 7, Width: 1, Managed: true,
		Variants: []Variant{
			{Name: "Continuous", Raw: 0b0},
			{Name: "Block", Raw: 0b1},
		},
	},
	FieldEndianness: {
		Name: "endianness", Register: CtrlReg4, Offset: 6, Width: 1, Managed: true,
		Variants: []Variant{
			{Name: "LittleEndian", Raw: 0b0},
			{Name: "BigEndian", Raw: 0b1, Requires: []Requirement{
				{Field: FieldResolutionMode, Accepts: []int{int(HighResolution)}},
			}},
		},
	},
	FieldFullScale: {
		Name: "full_scale", Register: CtrlReg4, Offset: 4, Width: 2, Managed: true,
		Variants: []Variant{
			Range2G:  {Name: "2g", Raw: 0b00},
			Range4G:  {Name: "4g", Raw: 0b01},
			Range8G:  {Name: "8g", Raw: 0b10},
			Range16G: {Name: "16g", Raw: 0b11},
		},
	},
	FieldResolutionMode: {
		Name: "resolution_mode", Register: CtrlReg4, Offset: 3, Width: 1, Managed: true,
		Variants: []Variant{
			// 8 bits in low-power mode, 10 bits otherwise.
			NormalResolution: {Name: "Normal", Raw: 0b0, Requires: []Requirement{
				{Field: FieldPowerMode},
			}},
			HighResolution: {Name: "High", Raw: 0b1, Requires: normalPowerOnly},
		},
	},
	FieldSelfTest: {
		Name: "self_test", Register: CtrlReg4, Offset: 1, Width: 2,
		Variants: []Variant{
			{Name: "Normal", Raw: 0b00},
			{Name: "SelfTest0", Raw: 0b01},
			{Name: "SelfTest1", Raw: 0b10},
		},
	},
	FieldSPIMode: {
		Name: "spi_mode", Register: CtrlReg4, Offset: 0, Width: 1,
		Variants: []Variant{
			{Name: "4Wire", Raw: 0b0},
			{Name: "3Wire", Raw: 0b1},
		},
	},
}

var (
	lowPowerOnly    = []Requirement{{Field: FieldPowerMode, Accepts: []int{int(LowPower)}}}
	normalPowerOnly = []Requirement{{Field: FieldPowerMode, Accepts: []int{int(NormalPower)}}}
)

// configRegisters are the registers rendered from Settings, in address order.
var configRegisters = []ReadWriteRegister{CtrlReg0, TempCfgReg, CtrlReg1, CtrlReg4}

func init() {
	for i := range fields {
		fields[i].ID = FieldID(i)
	}
}

// Fields returns a copy of the register map.
func Fields() []Field {
	out := make([]Field, len(fields))
	copy(out, fields[:])
	return out
}

// Field returns the description of the field.
func (id FieldID) Field() Field {
	return fields[id]
}

func (id FieldID) String() string {
	if id < 0 || id >= numFields {
		return fmt.Sprintf("FieldID(%d)", int(id))
	}
	return fields[id].Name
}

// variantName returns the name of variant v of field id.
func variantName(id FieldID, v int) string {
	f := &fields[id]
	if v < 0 || v >= len(f.Variants) {
		return fmt.Sprintf("%s(%d)", f.Name, v)
	}
	return f.Variants[v].Name
}

// variantIndex looks a variant of field id up by name.
func variantIndex(id FieldID, name string) (int, bool) {
	for i, v := range fields[id].Variants {
		if v.Name == name {
			return i, true
		}
	}
	return 0, false
}
