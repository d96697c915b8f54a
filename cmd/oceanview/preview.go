// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"os"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/tiff"

	"github.com/gogpu/ocean"
)

const (
	panelMargin = 16
	titleHeight = 28
	labelSize   = 14
)

// labeler draws captions with the Go regular font.
type labeler struct {
	source *text.FontSource
	face   text.Face
}

func newLabeler() (*labeler, error) {
	source, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("load label font: %w", err)
	}
	return &labeler{source: source, face: source.Face(labelSize)}, nil
}

func (l *labeler) Close() {
	_ = l.source.Close()
}

// writePreview renders the height map and the normal map side by side
// with a caption and saves them as PNG.
func writePreview(path string, disp, normal *ocean.Map, caption string, labels *labeler) error {
	n := disp.Width
	width := 3*panelMargin + 2*n
	height := titleHeight + 2*panelMargin + n + titleHeight

	dc := gg.NewContext(width, height)
	defer func() { _ = dc.Close() }()
	dc.ClearWithColor(gg.RGB(0.08, 0.09, 0.12))

	top := titleHeight + panelMargin
	drawHeightPanel(dc, disp, panelMargin, top)
	drawNormalPanel(dc, normal, 2*panelMargin+n, top)

	dc.SetRGB(0.3, 0.35, 0.45)
	dc.SetLineWidth(1)
	dc.DrawRectangle(panelMargin-0.5, float64(top)-0.5, float64(n)+1, float64(n)+1)
	dc.DrawRectangle(float64(2*panelMargin+n)-0.5, float64(top)-0.5, float64(n)+1, float64(n)+1)
	_ = dc.Stroke()

	dc.SetFont(labels.face)
	dc.SetColor(color.White)
	dc.DrawString("height", panelMargin, titleHeight-8)
	dc.DrawString("normal", float64(2*panelMargin+n), titleHeight-8)
	dc.SetRGB(0.7, 0.75, 0.8)
	dc.DrawString(caption, panelMargin, float64(height-10))

	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("save preview %s: %w", path, err)
	}
	return nil
}

// drawHeightPanel maps heights to a deep-to-foam color ramp.
func drawHeightPanel(dc *gg.Context, disp *ocean.Map, x0, y0 int) {
	lo, hi := disp.Range(1)
	span := float64(hi - lo)
	if span == 0 {
		span = 1
	}
	for z := 0; z < disp.Height; z++ {
		for x := 0; x < disp.Width; x++ {
			v := float64(disp.Elevation(x, z)-lo) / span
			dc.SetPixel(x0+x, y0+z, gg.RGB(
				0.02+0.75*v*v,
				0.12+0.70*v,
				0.25+0.70*math.Sqrt(v),
			))
		}
	}
}

// drawNormalPanel encodes normals as RGB = (n + 1) / 2.
func drawNormalPanel(dc *gg.Context, normal *ocean.Map, x0, y0 int) {
	for z := 0; z < normal.Height; z++ {
		for x := 0; x < normal.Width; x++ {
			nv := normal.Normal(x, z)
			dc.SetPixel(x0+x, y0+z, gg.RGB(
				float64(nv[0]+1)/2,
				float64(nv[1]+1)/2,
				float64(nv[2]+1)/2,
			))
		}
	}
}

// writeHeightTIFF stores the height map as a 16-bit grayscale TIFF with
// the height range stretched to the full gray scale.
func writeHeightTIFF(path string, disp *ocean.Map) error {
	lo, hi := disp.Range(1)
	span := float64(hi - lo)
	if span == 0 {
		span = 1
	}
	img := image.NewGray16(image.Rect(0, 0, disp.Width, disp.Height))
	for z := 0; z < disp.Height; z++ {
		for x := 0; x < disp.Width; x++ {
			v := float64(disp.Elevation(x, z)-lo) / span
			img.SetGray16(x, z, color.Gray16{Y: uint16(math.Round(v * math.MaxUint16))})
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create heightmap: %w", err)
	}
	if err := tiff.Encode(f, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true}); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode heightmap %s: %w", path, err)
	}
	return f.Close()
}
