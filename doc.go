// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package accel is a container for accelerometer drivers.
//
// See lis3dh for the ST LIS3DH and cmd/lis3dh for a tool to configure and
// sample it.
package accel
