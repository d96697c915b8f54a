// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ocean

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gogpu/ocean/compute"
)

// Frame describes the output of one Step. The texture handles belong to
// the State and stay valid until it is closed; callers must not write
// them.
type Frame struct {
	// Time is the simulation time of the frame in seconds.
	Time float64

	// Displacement holds (0, height, 0, 1) per texel.
	Displacement compute.TextureID

	// Normal holds the unit surface normal (nx, ny, nz, 1) per texel.
	Normal compute.TextureID

	// Spectrum holds the spatial height field before sign correction.
	Spectrum compute.TextureID

	// Slope holds the spatial slope field before sign correction.
	Slope compute.TextureID

	// Stages lists the stages the frame ran, in order.
	Stages []Stage
}

// State is a running ocean simulation.
//
// Thread safety: State is safe for concurrent use. Concurrent Step calls
// run one after another.
type State struct {
	mu sync.Mutex

	cfg        Config
	dev        compute.Device
	ownsDevice bool

	table *ButterflyTable
	fft   *InverseFFT

	initial      compute.TextureID
	spectrum     compute.TextureID
	slope        compute.TextureID
	displacement compute.TextureID
	normal       compute.TextureID

	stages   stageMachine
	lastTime float64
	frames   int
	closed   bool
}

// Initialize validates cfg, opens a device, allocates every texture and
// builds the initial spectrum and the butterfly table.
//
// All textures are allocated before the first dispatch. If an allocation
// fails, everything allocated so far is released and no work reaches
// the device.
func Initialize(ctx context.Context, cfg Config) (*State, error) {
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	dev, owned, err := openDevice(&cfg)
	if err != nil {
		return nil, err
	}
	if lim := dev.Limits().MaxTextureDimension; lim > 0 && cfg.Size > lim {
		if owned {
			_ = dev.Close()
		}
		return nil, fmt.Errorf("%w: %d exceeds device limit %d", ErrInvalidSize, cfg.Size, lim)
	}

	s := &State{cfg: cfg, dev: dev, ownsDevice: owned}
	if err := s.allocate(); err != nil {
		s.release()
		return nil, err
	}
	trackDevice(dev)

	start := time.Now()
	if err := generateSpectrum(ctx, dev, &s.cfg, s.initial); err != nil {
		_ = s.Close()
		return nil, err
	}
	if _, err := s.table.Ensure(ctx, cfg.Size); err != nil {
		_ = s.Close()
		return nil, err
	}

	slogger().Info("ocean: initialized",
		"device", dev.Name(),
		"size", cfg.Size,
		"domain", cfg.Domain,
		"seed", cfg.Seed,
		"elapsed", time.Since(start))
	return s, nil
}

// allocate creates every texture of the simulation.
func (s *State) allocate() error {
	n := s.cfg.Size
	for _, t := range []struct {
		id     *compute.TextureID
		label  string
		format compute.Format
	}{
		{&s.initial, "initial_spectrum", compute.SpectralFormat},
		{&s.spectrum, "spectrum", compute.SpectralFormat},
		{&s.slope, "slope", compute.SpectralFormat},
		{&s.displacement, "displacement", compute.FormatRGBA16Float},
		{&s.normal, "normal", compute.FormatRGBA16Float},
	} {
		id, err := s.dev.CreateTexture(compute.TextureDesc{
			Label: t.label, Width: n, Height: n, Format: t.format,
		})
		if err != nil {
			return fmt.Errorf("ocean: allocate %s: %w", t.label, err)
		}
		*t.id = id
	}

	table, err := NewButterflyTable(s.dev, n)
	if err != nil {
		return err
	}
	s.table = table

	fft, err := NewInverseFFT(s.dev, table, n)
	if err != nil {
		return err
	}
	s.fft = fft

	slogger().Debug("ocean: textures allocated",
		"device", s.dev.Name(), "bytes", s.dev.Stats().TextureBytes)
	return nil
}

// release destroys every texture and, when owned, the device.
func (s *State) release() {
	if s.fft != nil {
		s.fft.Close()
	}
	if s.table != nil {
		s.table.Close()
	}
	for _, id := range []*compute.TextureID{&s.initial, &s.spectrum, &s.slope, &s.displacement, &s.normal} {
		if *id != compute.InvalidTexture {
			s.dev.DestroyTexture(*id)
			*id = compute.InvalidTexture
		}
	}
	if s.ownsDevice {
		if err := s.dev.Close(); err != nil {
			slogger().Warn("ocean: close device", "err", err)
		}
	}
}

// Step computes the frame at time t seconds. All dispatches of the frame
// are submitted as one ordered batch. Time may move in either direction.
//
// If ctx is cancelled or the device fails, the frame is abandoned and
// the next Step starts from the initial spectrum again.
func (s *State) Step(ctx context.Context, t float64) (Frame, error) {
	if err := checkTime(t); err != nil {
		return Frame{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return Frame{}, ErrClosed
	}
	if s.frames > 0 && t < s.lastTime {
		slogger().Debug("ocean: time moved backwards", "from", s.lastTime, "to", t)
	}
	if _, err := s.table.Ensure(ctx, s.cfg.Size); err != nil {
		return Frame{}, err
	}

	start := time.Now()
	cmds, err := s.frameCommands(t)
	if err != nil {
		s.stages.abort()
		return Frame{}, err
	}
	if err := s.dev.Submit(ctx, cmds); err != nil {
		s.stages.abort()
		return Frame{}, fmt.Errorf("ocean: step %v: %w", t, err)
	}

	s.lastTime = t
	s.frames++
	slogger().Debug("ocean: frame complete",
		"time", t, "dispatches", len(cmds), "elapsed", time.Since(start))

	return Frame{
		Time:         t,
		Displacement: s.displacement,
		Normal:       s.normal,
		Spectrum:     s.spectrum,
		Slope:        s.slope,
		Stages:       s.stages.stages(),
	}, nil
}

// frameCommands walks the stage machine through one frame and collects
// its dispatches. It leaves the machine idle.
func (s *State) frameCommands(t float64) ([]compute.Command, error) {
	if err := s.stages.begin(); err != nil {
		return nil, err
	}

	spectrumPlan := s.fft.Plan(s.spectrum)
	slopePlan := s.fft.Plan(s.slope)

	steps := []struct {
		stage Stage
		cmds  func() []compute.Command
	}{
		{StageTimeEvolve, func() []compute.Command {
			return []compute.Command{evolvePass(&s.cfg, s.initial, s.spectrum, s.slope, t)}
		}},
		{StageRowFFTSpectrum, func() []compute.Command { return passes(spectrumPlan.Sweep(0)) }},
		{StageColFFTSpectrum, func() []compute.Command { return passes(spectrumPlan.Sweep(1)) }},
		{StageRowFFTSlope, func() []compute.Command { return passes(slopePlan.Sweep(0)) }},
		{StageColFFTSlope, func() []compute.Command { return passes(slopePlan.Sweep(1)) }},
		{StageAssemble, func() []compute.Command {
			return []compute.Command{assemblePass(&s.cfg, s.spectrum, s.slope, s.displacement, s.normal)}
		}},
	}

	cmds := make([]compute.Command, 0, 2+4*s.cfg.LogSize())
	for _, step := range steps {
		if err := s.stages.advance(step.stage); err != nil {
			return nil, err
		}
		cmds = append(cmds, step.cmds()...)
	}
	if err := s.stages.advance(StageIdle); err != nil {
		return nil, err
	}
	return cmds, nil
}

func passes(ps []compute.FFTPass) []compute.Command {
	cmds := make([]compute.Command, len(ps))
	for i, p := range ps {
		cmds[i] = p
	}
	return cmds
}

// Read copies a texture of the simulation device to the host.
func (s *State) Read(ctx context.Context, id compute.TextureID) (*Map, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrClosed
	}
	desc, ok := s.dev.Describe(id)
	if !ok {
		return nil, fmt.Errorf("ocean: read: %w: %d", compute.ErrUnknownTexture, id)
	}
	data, err := s.dev.ReadTexture(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("ocean: read %q: %w", desc.Label, err)
	}
	return &Map{
		Width:    desc.Width,
		Height:   desc.Height,
		Channels: desc.Format.Channels(),
		Format:   desc.Format,
		Data:     data,
	}, nil
}

// ReadInitialSpectrum copies the time-invariant spectrum to the host.
func (s *State) ReadInitialSpectrum(ctx context.Context) (*Map, error) {
	return s.Read(ctx, s.initial)
}

// Config returns the configuration with defaults applied.
func (s *State) Config() Config { return s.cfg }

// Device returns the device the simulation runs on.
func (s *State) Device() compute.Device { return s.dev }

// Frames returns the number of completed frames.
func (s *State) Frames() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames
}

// Close releases every texture, and the device unless it was supplied
// through Config.Device. Close is safe to call multiple times.
func (s *State) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	untrackDevice(s.dev)
	s.release()
	return nil
}

// IsClosed reports whether err means the simulation or its device was
// closed.
func IsClosed(err error) bool {
	return errors.Is(err, ErrClosed) || errors.Is(err, compute.ErrDeviceClosed)
}
