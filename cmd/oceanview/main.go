// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Command oceanview steps an ocean simulation and writes preview images
// of its height and normal maps.
//
// Usage:
//
//	oceanview -size 256 -time 3 -frames 4 -dt 0.5 -output ocean.png -tiff height.tif
//
// With more than one frame, a frame index is inserted before the file
// extension of every output: ocean_000.png, ocean_001.png, ...
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/gogpu/ocean"
	_ "github.com/gogpu/ocean/gpu" // enable the GPU device
)

type options struct {
	size    int
	domain  int
	seed    uint
	wind    float64
	start   float64
	frames  int
	dt      float64
	backend string
	output  string
	tiff    string
	verbose bool
}

func main() {
	var opts options
	flag.IntVar(&opts.size, "size", 512, "grid resolution, a power of two")
	flag.IntVar(&opts.domain, "domain", 2000, "patch side length in meters")
	flag.UintVar(&opts.seed, "seed", 1, "random seed of the initial spectrum")
	flag.Float64Var(&opts.wind, "wind", 30, "wind speed in meters per second")
	flag.Float64Var(&opts.start, "time", 0, "simulation time of the first frame in seconds")
	flag.IntVar(&opts.frames, "frames", 1, "number of frames to compute")
	flag.Float64Var(&opts.dt, "dt", 0.1, "time step between frames in seconds")
	flag.StringVar(&opts.backend, "backend", "auto", "compute device: auto, cpu or gpu")
	flag.StringVar(&opts.output, "output", "ocean.png", "preview PNG file")
	flag.StringVar(&opts.tiff, "tiff", "", "optional 16-bit TIFF heightmap file")
	flag.BoolVar(&opts.verbose, "v", false, "enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	ocean.SetLogger(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, opts, logger); err != nil {
		logger.Error("oceanview failed", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options, logger *slog.Logger) error {
	if opts.frames < 1 {
		return fmt.Errorf("-frames must be at least 1, got %d", opts.frames)
	}
	backend, err := ocean.ParseBackend(opts.backend)
	if err != nil {
		return err
	}

	cfg := ocean.DefaultConfig()
	cfg.Size = opts.size
	cfg.Domain = opts.domain
	cfg.Seed = uint32(opts.seed) //nolint:gosec // seeds wrap
	cfg.WindSpeed = opts.wind
	cfg.Backend = backend

	sim, err := ocean.Initialize(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = sim.Close() }()

	labels, err := newLabeler()
	if err != nil {
		return err
	}
	defer labels.Close()

	for i := 0; i < opts.frames; i++ {
		t := opts.start + float64(i)*opts.dt
		start := time.Now()
		frame, err := sim.Step(ctx, t)
		if err != nil {
			return err
		}
		disp, err := sim.Read(ctx, frame.Displacement)
		if err != nil {
			return err
		}
		normal, err := sim.Read(ctx, frame.Normal)
		if err != nil {
			return err
		}
		elapsed := time.Since(start)

		caption := fmt.Sprintf("t=%.2fs  N=%d  L=%dm  wind=%.1fm/s  %s",
			t, cfg.Size, cfg.Domain, cfg.WindSpeed, sim.Device().Name())
		path := framePath(opts.output, i, opts.frames)
		if err := writePreview(path, disp, normal, caption, labels); err != nil {
			return err
		}
		lo, hi := disp.Range(1)
		logger.Info("frame written",
			"path", path, "time", t, "min_height", lo, "max_height", hi, "elapsed", elapsed)

		if opts.tiff != "" {
			tpath := framePath(opts.tiff, i, opts.frames)
			if err := writeHeightTIFF(tpath, disp); err != nil {
				return err
			}
			logger.Info("heightmap written", "path", tpath)
		}
	}
	return nil
}

// framePath inserts the frame index before the extension when more than
// one frame is written.
func framePath(path string, i, frames int) string {
	if frames <= 1 {
		return path
	}
	ext := filepath.Ext(path)
	return fmt.Sprintf("%s_%03d%s", strings.TrimSuffix(path, ext), i, ext)
}
