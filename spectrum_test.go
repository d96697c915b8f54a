// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ocean

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/gogpu/ocean/backend/cpu"
)

func TestStrongWindRejected(t *testing.T) {
	dev := cpu.New()
	defer dev.Close()

	cfg := DefaultConfig()
	cfg.WindSpeed = 40
	cfg.Device = dev

	if err := cfg.Validate(); !errors.Is(err, ErrInvalidWind) {
		t.Errorf("Validate() = %v, want ErrInvalidWind", err)
	}
	if _, err := Initialize(context.Background(), cfg); !errors.Is(err, ErrInvalidWind) {
		t.Fatalf("Initialize() = %v, want ErrInvalidWind", err)
	}
	if st := dev.Stats(); st.Submits != 0 || st.Textures != 0 {
		t.Errorf("work reached the device: %+v", st)
	}
}

func TestDefaultSpectrumFitsHalfFloat(t *testing.T) {
	cfg := DefaultConfig()
	peak, height := spectrumBounds(&cfg)
	if peak <= 0 || peak > spectralLimit {
		t.Errorf("peak = %v, want in (0, %v]", peak, float64(spectralLimit))
	}
	if height <= 0 || height > spectralLimit {
		t.Errorf("height bound = %v", height)
	}
}

func TestSpectrumBoundsMatchStoredSpectrum(t *testing.T) {
	s := mustInitialize(t, testConfig(16))
	m, err := s.ReadInitialSpectrum(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	var stored float64
	for z := range m.Height {
		for x := range m.Width {
			stored = max(stored, math.Hypot(float64(m.At(x, z, 0)), float64(m.At(x, z, 1))))
		}
	}

	cfg := s.Config()
	peak, _ := spectrumBounds(&cfg)
	if stored == 0 {
		t.Fatal("stored spectrum is zero")
	}
	if stored > peak*(1+2e-3) {
		t.Errorf("stored peak %v above bound %v", stored, peak)
	}
	if stored < peak*(1-2e-3) {
		t.Errorf("stored peak %v below bound %v", stored, peak)
	}
}

func TestHeightsWithinBound(t *testing.T) {
	s := mustInitialize(t, testConfig(16))
	cfg := s.Config()
	_, bound := spectrumBounds(&cfg)

	for _, tm := range []float64{0, 1.3, 7} {
		f, err := s.Step(context.Background(), tm)
		if err != nil {
			t.Fatal(err)
		}
		m := mustRead(t, s, f.Displacement)
		for z := range m.Height {
			for x := range m.Width {
				if h := math.Abs(float64(m.Elevation(x, z))); h > bound*1.01 {
					t.Fatalf("t=%v: |h(%d,%d)| = %v above bound %v", tm, x, z, h, bound)
				}
			}
		}
	}
}
