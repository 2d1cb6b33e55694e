// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package lis3dh controls an ST LIS3DH 3-axis accelerometer over SPI or I²C.
//
// A Config is compiled into Settings before anything reaches the device.
// Compile checks the entitlements between register fields, for example that
// high resolution output is only available in normal power mode, and rejects
// combinations the datasheet marks as not allowed. Only Settings can be
// rendered to register bytes, so an illegal byte pattern is never written by
// New or Reconfigure.
//
// Samples are read with a single auto-incrementing transaction over the six
// output registers and decoded to the resolution (8, 10 or 12 bits) of the
// active configuration. Settings.GravityCoefficient converts them to g.
//
// Dev performs no locking. Share it between goroutines only behind your own
// mutex.
//
// # Datasheet
//
// https://www.st.com/resource/en/datasheet/lis3dh.pdf
package lis3dh
