// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lis3dh

import (
	"encoding/binary"
	"fmt"
)

// Acceleration is a resolution adjusted two's complement sample of one axis.
type Acceleration int16

// G converts a to units of g using a coefficient from
// Settings.GravityCoefficient.
func (a Acceleration) G(coefficient float64) float64 {
	return float64(a) * coefficient
}

// AccelerationVector holds one sample of the three axes.
type AccelerationVector struct {
	X Acceleration
	Y Acceleration
	Z Acceleration
}

func (v AccelerationVector) String() string {
	return fmt.Sprintf("X:%d Y:%d Z:%d", v.X, v.Y, v.Z)
}

// ToBEBytes returns the vector as [x_hi, x_lo, y_hi, y_lo, z_hi, z_lo].
func (v AccelerationVector) ToBEBytes() [6]byte {
	var b [6]byte
	binary.BigEndian.PutUint16(b[0:], uint16(v.X))
	binary.BigEndian.PutUint16(b[2:], uint16(v.Y))
	binary.BigEndian.PutUint16(b[4:], uint16(v.Z))
	return b
}

// VectorToG converts the three axes of v to units of g.
func (s Settings) VectorToG(v AccelerationVector) (x, y, z float64) {
	c := s.GravityCoefficient()
	return v.X.G(c), v.Y.G(c), v.Z.G(c)
}

// decodeSample combines the two bytes of an output register pair, lower
// address first, and drops the padding bits below the resolution. The shift
// is arithmetic so the sign is kept.
func decodeSample(b0, b1 byte, r Resolution, bigEndian bool) int16 {
	var v int16
	if bigEndian {
		v = int16(uint16(b0)<<8 | uint16(b1))
	} else {
		v = int16(uint16(b1)<<8 | uint16(b0))
	}
	return v >> (16 - r)
}

// decodeVector decodes OUT_X_L to OUT_Z_H.
func decodeVector(b *[6]byte, r Resolution, bigEndian bool) AccelerationVector {
	return AccelerationVector{
		X: Acceleration(decodeSample(b[0], b[1], r, bigEndian)),
		Y: Acceleration(decodeSample(b[2], b[3], r, bigEndian)),
		Z: Acceleration(decodeSample(b[4], b[5], r, bigEndian)),
	}
}
