// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"context"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/tiff"

	"github.com/gogpu/ocean"
)

func TestFramePath(t *testing.T) {
	tests := []struct {
		path string
		i, n int
		want string
	}{
		{"ocean.png", 0, 1, "ocean.png"},
		{"ocean.png", 3, 10, "ocean_003.png"},
		{"out/height.tif", 12, 20, "out/height_012.tif"},
		{"noext", 1, 2, "noext_001"},
	}
	for _, tt := range tests {
		if got := framePath(tt.path, tt.i, tt.n); got != tt.want {
			t.Errorf("framePath(%q, %d, %d) = %q, want %q", tt.path, tt.i, tt.n, got, tt.want)
		}
	}
}

func TestRunWritesOutputs(t *testing.T) {
	dir := t.TempDir()
	opts := options{
		size:    32,
		domain:  100,
		seed:    7,
		wind:    10,
		frames:  2,
		dt:      0.5,
		backend: "cpu",
		output:  filepath.Join(dir, "ocean.png"),
		tiff:    filepath.Join(dir, "height.tif"),
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if err := run(context.Background(), opts, logger); err != nil {
		t.Fatal(err)
	}

	for i := range 2 {
		f, err := os.Open(framePath(opts.output, i, 2))
		if err != nil {
			t.Fatal(err)
		}
		img, err := png.Decode(f)
		_ = f.Close()
		if err != nil {
			t.Fatalf("frame %d: %v", i, err)
		}
		if b := img.Bounds(); b.Dx() != 3*panelMargin+2*32 {
			t.Errorf("frame %d: preview width %d", i, b.Dx())
		}

		f, err = os.Open(framePath(opts.tiff, i, 2))
		if err != nil {
			t.Fatal(err)
		}
		hm, err := tiff.Decode(f)
		_ = f.Close()
		if err != nil {
			t.Fatalf("frame %d heightmap: %v", i, err)
		}
		if b := hm.Bounds(); b.Dx() != 32 || b.Dy() != 32 {
			t.Errorf("frame %d: heightmap %v", i, b)
		}
	}
}

func TestRunRejectsBadOptions(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	base := options{size: 8, domain: 10, wind: 10, frames: 1, backend: "cpu", output: filepath.Join(t.TempDir(), "x.png")}

	bad := base
	bad.frames = 0
	if err := run(context.Background(), bad, logger); err == nil {
		t.Error("frames=0 accepted")
	}
	bad = base
	bad.backend = "tpu"
	if err := run(context.Background(), bad, logger); err == nil {
		t.Error("unknown backend accepted")
	}
	bad = base
	bad.size = 24
	if err := run(context.Background(), bad, logger); err == nil {
		t.Error("size 24 accepted")
	}
}

func TestWriteHeightTIFFFlatMap(t *testing.T) {
	m := &ocean.Map{Width: 2, Height: 1, Channels: 4, Data: []float32{0, 1, 0, 1, 0, 1, 0, 1}}
	if err := writeHeightTIFF(filepath.Join(t.TempDir(), "flat.tif"), m); err != nil {
		t.Fatal(err)
	}
}
