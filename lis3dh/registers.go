// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lis3dh

import "fmt"

// Register is a 6-bit register address of the LIS3DH.
//
// Both ReadOnlyRegister and ReadWriteRegister implement it. Reads accept any
// Register, writes only a ReadWriteRegister.
type Register interface {
	Address() uint8
	String() string
}

// ReadOnlyRegister is the address of a register that must not be written.
type ReadOnlyRegister uint8

// ReadWriteRegister is the address of a writable register.
type ReadWriteRegister uint8

// Read-only registers.
const (
	StatusRegAux ReadOnlyRegister = 0x07
	OutADC1L     ReadOnlyRegister = 0x08
	OutADC1H     ReadOnlyRegister = 0x09
	OutADC2L     ReadOnlyRegister = 0x0A
	OutADC2H     ReadOnlyRegister = 0x0B
	OutADC3L     ReadOnlyRegister = 0x0C
	OutADC3H     ReadOnlyRegister = 0x0D
	WhoAmI       ReadOnlyRegister = 0x0F // Device identification, reads WhoAmIValue.
	Reference    ReadOnlyRegister = 0x26
	StatusReg    ReadOnlyRegister = 0x27
	OutXL        ReadOnlyRegister = 0x28 // X-axis acceleration, low byte.
	OutXH        ReadOnlyRegister = 0x29
	OutYL        ReadOnlyRegister = 0x2A
	OutYH        ReadOnlyRegister = 0x2B
	OutZL        ReadOnlyRegister = 0x2C
	OutZH        ReadOnlyRegister = 0x2D
	FifoSrcReg   ReadOnlyRegister = 0x2F
	Int1Src      ReadOnlyRegister = 0x31
	Int2Src      ReadOnlyRegister = 0x35
	ClickSrc     ReadOnlyRegister = 0x39
)

// Read-write registers.
const (
	CtrlReg0     ReadWriteRegister = 0x1E
	TempCfgReg   ReadWriteRegister = 0x1F
	CtrlReg1     ReadWriteRegister = 0x20
	CtrlReg2     ReadWriteRegister = 0x21
	CtrlReg3     ReadWriteRegister = 0x22
	CtrlReg4     ReadWriteRegister = 0x23
	CtrlReg5     ReadWriteRegister = 0x24
	CtrlReg6     ReadWriteRegister = 0x25
	FifoCtrlReg  ReadWriteRegister = 0x2E
	Int1Cfg      ReadWriteRegister = 0x30
	Int1Ths      ReadWriteRegister = 0x32
	Int1Duration ReadWriteRegister = 0x33
	Int2Cfg      ReadWriteRegister = 0x34
	Int2Ths      ReadWriteRegister = 0x36
	Int2Duration ReadWriteRegister = 0x37
	ClickCfg     ReadWriteRegister = 0x38
	ClickThs     ReadWriteRegister = 0x3A
	TimeLimit    ReadWriteRegister = 0x3B
	TimeLatency  ReadWriteRegister = 0x3C
	TimeWindow   ReadWriteRegister = 0x3D
	ActThs       ReadWriteRegister = 0x3E
	ActDur       ReadWriteRegister = 0x3F
)

// WhoAmIValue is the constant content of the WhoAmI register.
const WhoAmIValue = 0x33

// addressMask keeps the 6 address bits of a control or sub-address byte.
const addressMask = 0x3F

var readOnlyNames = map[ReadOnlyRegister]string{
	StatusRegAux: "STATUS_REG_AUX",
	OutADC1L:     "OUT_ADC1_L",
	OutADC1H:     "OUT_ADC1_H",
	OutADC2L:     "OUT_ADC2_L",
	OutADC2H:     "OUT_ADC2_H",
	OutADC3L:     "OUT_ADC3_L",
	OutADC3H:     "OUT_ADC3_H",
	WhoAmI:       "WHO_AM_I",
	Reference:    "REFERENCE",
	StatusReg:    "STATUS_REG",
	OutXL:        "OUT_X_L",
	OutXH:        "OUT_X_H",
	OutYL:        "OUT_Y_L",
	OutYH:        "OUT_Y_H",
	OutZL:        "OUT_Z_L",
	OutZH:        "OUT_Z_H",
	FifoSrcReg:   "FIFO_SRC_REG",
	Int1Src:      "INT1_SRC",
	Int2Src:      "INT2_SRC",
	ClickSrc:     "CLICK_SRC",
}

var readWriteNames = map[ReadWriteRegister]string{
	CtrlReg0:     "CTRL_REG0",
	TempCfgReg:   "TEMP_CFG_REG",
	CtrlReg1:     "CTRL_REG1",
	CtrlReg2:     "CTRL_REG2",
	CtrlReg3:     "CTRL_REG3",
	CtrlReg4:     "CTRL_REG4",
	CtrlReg5:     "CTRL_REG5",
	CtrlReg6:     "CTRL_REG6",
	FifoCtrlReg:  "FIFO_CTRL_REG",
	Int1Cfg:      "INT1_CFG",
	Int1Ths:      "INT1_THS",
	Int1Duration: "INT1_DURATION",
	Int2Cfg:      "INT2_CFG",
	Int2Ths:      "INT2_THS",
	Int2Duration: "INT2_DURATION",
	ClickCfg:     "CLICK_CFG",
	ClickThs:     "CLICK_THS",
	TimeLimit:    "TIME_LIMIT",
	TimeLatency:  "TIME_LATENCY",
	TimeWindow:   "TIME_WINDOW",
	ActThs:       "ACT_THS",
	ActDur:       "ACT_DUR",
}

// Address implements Register.
func (r ReadOnlyRegister) Address() uint8 {
	return uint8(r) & addressMask
}

func (r ReadOnlyRegister) String() string {
	if n, ok := readOnlyNames[r]; ok {
		return n
	}
	return fmt.Sprintf("ReadOnlyRegister(0x%02x)", uint8(r))
}

// Address implements Register.
func (r ReadWriteRegister) Address() uint8 {
	return uint8(r) & addressMask
}

func (r ReadWriteRegister) String() string {
	if n, ok := readWriteNames[r]; ok {
		return n
	}
	return fmt.Sprintf("ReadWriteRegister(0x%02x)", uint8(r))
}

var _ Register = ReadOnlyRegister(0)
var _ Register = ReadWriteRegister(0)
