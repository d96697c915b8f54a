// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ocean

import (
	"fmt"
	"math"

	"github.com/gogpu/ocean/compute"
)

// evolvePass advances the initial spectrum to time t.
//
// Waves in the downwind half-plane rotate by e^{+iωt} and their partners
// by e^{−iωt}, with ω = sqrt(g·|k|). Both outputs stay Hermitian. The
// slope spectrum packs ∂h/∂x into the real part and ∂h/∂z into the
// imaginary part of one complex texture.
func evolvePass(cfg *Config, initial, spectrum, slope compute.TextureID, t float64) compute.EvolvePass {
	return compute.EvolvePass{
		Initial:  initial,
		Spectrum: spectrum,
		Slope:    slope,
		Size:     cfg.Size,
		Domain:   float64(cfg.Domain),
		Time:     t,
		Wave:     cfg.wave(),
	}
}

func checkTime(t float64) error {
	if math.IsNaN(t) || math.IsInf(t, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidTime, t)
	}
	return nil
}
