// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lis3dh

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidConfiguration is matched by every *ConfigError.
var ErrInvalidConfiguration = errors.New("lis3dh: invalid configuration")

// ConfigError reports a field value that is unknown or whose entitlements are
// not met. Nothing is written to the device when it is returned.
type ConfigError struct {
	Field   FieldID
	Variant string
	// Reason is set when the value itself is unusable. Otherwise Dependency
	// holds Got while Field=Variant requires one of Accepts.
	Reason     string
	Dependency FieldID
	Got        string
	Accepts    []string
	// Path lists the fields whose requirements led to Field, outermost first.
	Path []FieldID
}

func (e *ConfigError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("lis3dh: invalid configuration: %s=%s: %s", e.Field, e.Variant, e.Reason)
	}
	s := fmt.Sprintf("lis3dh: invalid configuration: %s=%s requires %s in {%s}, got %s",
		e.Field, e.Variant, e.Dependency, strings.Join(e.Accepts, ", "), e.Got)
	if len(e.Path) != 0 {
		via := make([]string, len(e.Path))
		for i, id := range e.Path {
			via[i] = id.String()
		}
		s += " (required via " + strings.Join(via, " -> ") + ")"
	}
	return s
}

// Is makes errors.Is(err, ErrInvalidConfiguration) true.
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfiguration
}

// TransportError wraps a failure of the underlying bus. It is never retried.
type TransportError struct {
	Op       string // "read", "write", ...
	Register uint8
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("lis3dh: %s 0x%02x: %v", e.Op, e.Register, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// transportError wraps err unless it already is a *TransportError.
func transportError(op string, r Register, err error) error {
	if err == nil {
		return nil
	}
	var te *TransportError
	if errors.As(err, &te) {
		return err
	}
	return &TransportError{Op: op, Register: r.Address(), Err: err}
}
