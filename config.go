// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ocean

import (
	"fmt"
	"math"
	"strings"

	"github.com/gogpu/ocean/compute"
)

// Backend selects the compute device Initialize opens.
type Backend int

const (
	// BackendAuto uses the registered GPU device when it opens and the CPU
	// device otherwise.
	BackendAuto Backend = iota

	// BackendCPU always uses the CPU device.
	BackendCPU

	// BackendGPU requires the registered GPU device.
	BackendGPU
)

// String returns the backend name.
func (b Backend) String() string {
	switch b {
	case BackendAuto:
		return "auto"
	case BackendCPU:
		return "cpu"
	case BackendGPU:
		return "gpu"
	default:
		return fmt.Sprintf("Backend(%d)", int(b))
	}
}

// ParseBackend parses "auto", "cpu" or "gpu".
func ParseBackend(s string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return BackendAuto, nil
	case "cpu":
		return BackendCPU, nil
	case "gpu":
		return BackendGPU, nil
	default:
		return BackendAuto, fmt.Errorf("ocean: unknown backend %q", s)
	}
}

// Config holds the simulation parameters.
type Config struct {
	// Size is the grid resolution N (width = height).
	// Must be a power of two, at least 2.
	// Default: 512
	Size int

	// Domain is the side length L of the simulated patch in meters.
	// Default: 2000
	Domain int

	// Seed selects the random phases of the initial spectrum. The same
	// seed always produces the same ocean. Zero is a valid seed.
	// Default: 1
	Seed uint32

	// WindSpeed in meters per second.
	// Default: 30
	WindSpeed float64

	// WindDirection in the (x, z) plane. Any non-zero length works; the
	// vector is normalized before use.
	// Default: {1, 0}
	WindDirection [2]float64

	// Amplitude is the Phillips spectrum constant A.
	// Default: 4
	Amplitude float64

	// Gravity in meters per second squared.
	// Default: 9.81
	Gravity float64

	// SmallWaveCutoff suppresses waves shorter than about this many meters.
	// Zero selects the default; set NoSmallWaveCutoff to turn the
	// suppression off.
	// Default: 0.5
	SmallWaveCutoff float64

	// NoSmallWaveCutoff disables small-wave suppression. SmallWaveCutoff
	// is ignored when it is set.
	NoSmallWaveCutoff bool

	// HeightScale multiplies heights and slopes in the output maps.
	// Zero selects the default, since a zero scale flattens the surface.
	// Negative values mirror it.
	// Default: 1
	HeightScale float64

	// PatchSize is the world size of one rendered tile. The compute path
	// does not use it.
	// Default: 100
	PatchSize float64

	// PlaneResolution is the vertex count per side of the rendered tile.
	// The compute path does not use it.
	// Default: 256
	PlaneResolution int

	// Backend selects the device when Device is nil.
	// Default: BackendAuto
	Backend Backend

	// Device, when set, is used instead of opening one. The caller keeps
	// ownership: Close does not close it.
	Device compute.Device

	// Workers is the goroutine count of the CPU device. Zero uses
	// GOMAXPROCS.
	Workers int
}

// DefaultConfig returns the default simulation parameters.
func DefaultConfig() Config {
	return Config{
		Size:            512,
		Domain:          2000,
		Seed:            1,
		WindSpeed:       30,
		WindDirection:   [2]float64{1, 0},
		Amplitude:       4,
		Gravity:         9.81,
		SmallWaveCutoff: 0.5,
		HeightScale:     1,
		PatchSize:       100,
		PlaneResolution: 256,
	}
}

// applyDefaults replaces zero values with the defaults. Seed is left
// alone because zero is a valid seed, and SmallWaveCutoff is left alone
// when NoSmallWaveCutoff is set.
func (c *Config) applyDefaults() {
	d := DefaultConfig()
	if c.Size == 0 {
		c.Size = d.Size
	}
	if c.Domain == 0 {
		c.Domain = d.Domain
	}
	if c.WindSpeed == 0 {
		c.WindSpeed = d.WindSpeed
	}
	if c.WindDirection == [2]float64{} {
		c.WindDirection = d.WindDirection
	}
	if c.Amplitude == 0 {
		c.Amplitude = d.Amplitude
	}
	if c.Gravity == 0 {
		c.Gravity = d.Gravity
	}
	if c.SmallWaveCutoff == 0 && !c.NoSmallWaveCutoff {
		c.SmallWaveCutoff = d.SmallWaveCutoff
	}
	if c.HeightScale == 0 {
		c.HeightScale = d.HeightScale
	}
	if c.PatchSize == 0 {
		c.PatchSize = d.PatchSize
	}
	if c.PlaneResolution == 0 {
		c.PlaneResolution = d.PlaneResolution
	}
}

// Validate checks the configuration. Errors wrap the sentinel errors of
// this package.
//
// Once the fields are valid, Validate evaluates the initial spectrum on
// the host and fails with ErrInvalidWind when its values or the heights
// derived from it would overflow the half-float textures.
func (c *Config) Validate() error {
	if c.Size < 2 || !compute.IsPowerOfTwo(c.Size) {
		return fmt.Errorf("%w: %d is not a power of two >= 2", ErrInvalidSize, c.Size)
	}
	if c.Domain <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidDomain, c.Domain)
	}
	if !positive(c.WindSpeed) {
		return fmt.Errorf("%w: wind speed %v", ErrInvalidWind, c.WindSpeed)
	}
	if l := math.Hypot(c.WindDirection[0], c.WindDirection[1]); l == 0 || !finite(l) {
		return fmt.Errorf("%w: wind direction %v", ErrInvalidWind, c.WindDirection)
	}
	if !positive(c.Amplitude) {
		return fmt.Errorf("%w: amplitude %v", ErrInvalidWind, c.Amplitude)
	}
	if !positive(c.Gravity) {
		return fmt.Errorf("%w: gravity %v", ErrInvalidWind, c.Gravity)
	}
	if c.SmallWaveCutoff < 0 || !finite(c.SmallWaveCutoff) {
		return fmt.Errorf("%w: small wave cutoff %v", ErrInvalidWind, c.SmallWaveCutoff)
	}
	if !finite(c.HeightScale) {
		return fmt.Errorf("%w: height scale %v", ErrInvalidWind, c.HeightScale)
	}
	if !positive(c.PatchSize) || c.PlaneResolution <= 0 {
		return fmt.Errorf("%w: patch %v, resolution %d", ErrInvalidPatch, c.PatchSize, c.PlaneResolution)
	}
	switch c.Backend {
	case BackendAuto, BackendCPU, BackendGPU:
	default:
		return fmt.Errorf("ocean: unknown backend %v", c.Backend)
	}
	return checkSpectrumRange(c)
}

// LogSize returns log2 of the grid size.
func (c *Config) LogSize() int { return compute.Log2(c.Size) }

// wave returns the wave model parameters with a unit wind direction.
func (c *Config) wave() compute.Wave {
	l := math.Hypot(c.WindDirection[0], c.WindDirection[1])
	cutoff := c.SmallWaveCutoff
	if c.NoSmallWaveCutoff {
		cutoff = 0
	}
	return compute.Wave{
		Amplitude:       c.Amplitude,
		WindSpeed:       c.WindSpeed,
		WindDirection:   [2]float64{c.WindDirection[0] / l, c.WindDirection[1] / l},
		Gravity:         c.Gravity,
		SmallWaveCutoff: cutoff,
	}
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func positive(v float64) bool { return v > 0 && finite(v) }
