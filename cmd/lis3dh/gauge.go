// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"math"

	"github.com/maruel/ansi256"
)

var (
	axisColors = [3]color.NRGBA{
		{R: 255, G: 64, B: 64, A: 255},
		{R: 64, G: 255, B: 64, A: 255},
		{R: 64, G: 128, B: 255, A: 255},
	}
	unlit = color.NRGBA{R: 40, G: 40, B: 40, A: 255}
)

// gauge prints one line per sample with a bar per axis centered on 0g. With
// color the bars are drawn as ANSI blocks, otherwise with '#' and '.'.
type gauge struct {
	w       io.Writer
	cells   int
	scale   float64
	color   bool
	palette *ansi256.Palette

	buf bytes.Buffer
}

func newGauge(w io.Writer, cells int, scale float64, color bool) *gauge {
	return &gauge{w: w, cells: cells, scale: scale, color: color, palette: ansi256.Default}
}

func (g *gauge) render(x, y, z float64) error {
	// This code is designed to minimize the amount of memory allocated per call.
	g.buf.Reset()
	for i, v := range [3]float64{x, y, z} {
		if i != 0 {
			_, _ = g.buf.WriteString("  ")
		}
		_, _ = fmt.Fprintf(&g.buf, "%c%+7.3fg ", "XYZ"[i], v)
		g.bar(v, axisColors[i])
	}
	_ = g.buf.WriteByte('\n')
	_, err := g.buf.WriteTo(g.w)
	return err
}

// bar lights the cells between the center and v.
func (g *gauge) bar(v float64, c color.NRGBA) {
	mid := g.cells / 2
	pos := mid + int(math.Round(v/g.scale*float64(mid)))
	if pos < 0 {
		pos = 0
	} else if pos >= g.cells {
		pos = g.cells - 1
	}
	lo, hi := mid, pos
	if pos < mid {
		lo, hi = pos, mid
	}
	for i := 0; i < g.cells; i++ {
		lit := i >= lo && i <= hi
		switch {
		case g.color && lit:
			_, _ = g.buf.WriteString(g.palette.Block(c))
		case g.color:
			_, _ = g.buf.WriteString(g.palette.Block(unlit))
		case lit:
			_ = g.buf.WriteByte('#')
		default:
			_ = g.buf.WriteByte('.')
		}
	}
	if g.color {
		_, _ = g.buf.WriteString("\033[0m")
	}
}

// Halt resets the terminal attributes.
func (g *gauge) Halt() error {
	if !g.color {
		return nil
	}
	_, err := io.WriteString(g.w, "\033[0m")
	return err
}
