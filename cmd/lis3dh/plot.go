// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"fmt"
	"image"
	"math"

	"github.com/GermanBionicSystems/accel/lis3dh"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	plotWidth  = 800
	plotHeight = 400
	plotMargin = 40.0
)

var plotColors = [3][3]float64{
	{0.85, 0.2, 0.2},
	{0.2, 0.7, 0.2},
	{0.2, 0.35, 0.85},
}

// drawPlot draws the three axes of samples, in g, over the full scale of s.
func drawPlot(samples [][3]float64, s lis3dh.Settings) (image.Image, error) {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, err
	}
	scale := fullScaleG(s.Config().FullScale)
	yOf := func(v float64) float64 {
		return plotHeight/2 - v/scale*(plotHeight/2-plotMargin)
	}

	dc := gg.NewContext(plotWidth, plotHeight)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetFontFace(truetype.NewFace(f, &truetype.Options{Size: 14}))

	dc.SetRGB(0.75, 0.75, 0.75)
	dc.SetLineWidth(1)
	for _, v := range []float64{-scale, 0, scale} {
		dc.DrawLine(plotMargin, yOf(v), plotWidth-plotMargin, yOf(v))
		dc.Stroke()
	}
	dc.SetRGB(0, 0, 0)
	dc.DrawStringAnchored(fmt.Sprintf("+%gg", scale), plotMargin/2, yOf(scale), 0.5, 0.5)
	dc.DrawStringAnchored("0", plotMargin/2, yOf(0), 0.5, 0.5)
	dc.DrawStringAnchored(fmt.Sprintf("-%gg", scale), plotMargin/2, yOf(-scale), 0.5, 0.5)
	title := fmt.Sprintf("LIS3DH %s %s ±%gg, %d samples", s.Config().DataRate, s.Resolution(), scale, len(samples))
	dc.DrawStringAnchored(title, plotWidth/2, plotMargin/2, 0.5, 0.5)

	if len(samples) != 0 {
		step := (plotWidth - 2*plotMargin) / math.Max(1, float64(len(samples)-1))
		dc.SetLineWidth(2)
		for axis, c := range plotColors {
			dc.SetRGB(c[0], c[1], c[2])
			for i, smp := range samples {
				x, y := plotMargin+float64(i)*step, yOf(smp[axis])
				if i == 0 {
					dc.MoveTo(x, y)
				} else {
					dc.LineTo(x, y)
				}
			}
			dc.Stroke()
			last := samples[len(samples)-1][axis]
			dc.DrawStringAnchored("XYZ"[axis:axis+1], plotWidth-plotMargin/2, yOf(last), 0.5, 0.5)
		}
	}
	return dc.Image(), nil
}

// plotSamples writes the plot of samples to a PNG file.
func plotSamples(path string, samples [][3]float64, s lis3dh.Settings) error {
	img, err := drawPlot(samples, s)
	if err != nil {
		return err
	}
	return gg.SavePNG(path, img)
}
