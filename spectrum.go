// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ocean

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/gogpu/ocean/compute"
	"github.com/gogpu/ocean/internal/kernels"
	"github.com/gogpu/ocean/internal/parallel"
)

// spectralLimit is the largest modulus a stored spectral value may have.
// It sits below the half-float maximum of 65504 to absorb the rounding
// of each FFT stage.
const spectralLimit = 0.9 * 65504

// spectrumPass fills target with the initial height spectrum
//
//	G(k) = h0(k) + conj(h0(−k)),  h0(k) = ξ·sqrt(P(k)/2)
//
// where P is the Phillips spectrum and ξ a complex Gaussian pair drawn
// per texel from the seed. G is Hermitian, so every inverse transform of
// it is real.
func spectrumPass(cfg *Config, target compute.TextureID) compute.SpectrumPass {
	return compute.SpectrumPass{
		Target: target,
		Size:   cfg.Size,
		Domain: float64(cfg.Domain),
		Seed:   cfg.Seed,
		Wave:   cfg.wave(),
	}
}

// generateSpectrum runs the spectrum generator once.
func generateSpectrum(ctx context.Context, dev compute.Device, cfg *Config, target compute.TextureID) error {
	if err := dev.Submit(ctx, []compute.Command{spectrumPass(cfg, target)}); err != nil {
		return fmt.Errorf("ocean: generate spectrum: %w", err)
	}
	return nil
}

// spectrumBounds returns the largest modulus of the initial height and
// slope spectra of cfg, and a bound on the output height.
//
// Evolution only rotates each texel and every FFT stage writes the mean
// of two values, so no texture of a frame holds a larger modulus than
// peak. The height is at most Σ|G|/N² times the height scale at any time.
func spectrumBounds(cfg *Config) (peak, height float64) {
	p := kernels.ParamsFor(spectrumPass(cfg, compute.InvalidTexture))
	n := cfg.Size

	pool := parallel.NewWorkerPool(cfg.Workers)
	defer pool.Close()

	var mu sync.Mutex
	var sum float64
	pool.Bands(n, func(z0, z1 int) {
		var bandPeak, bandSum float64
		for z := z0; z < z1; z++ {
			kz := kernels.WaveNumber(z, p)
			for x := range n {
				g := kernels.InitialSpectrum(x, z, p)
				m := math.Hypot(float64(g[0]), float64(g[1]))
				k := math.Hypot(kernels.WaveNumber(x, p), kz)
				bandPeak = max(bandPeak, m, m*k)
				bandSum += m
			}
		}
		mu.Lock()
		peak = max(peak, bandPeak)
		sum += bandSum
		mu.Unlock()
	})
	return peak, sum / float64(n*n) * math.Abs(cfg.HeightScale)
}

// checkSpectrumRange rejects configurations whose spectrum or output
// height does not fit the half-float textures.
func checkSpectrumRange(cfg *Config) error {
	peak, height := spectrumBounds(cfg)
	if !(peak <= spectralLimit) {
		return fmt.Errorf("%w: spectrum peaks at %.4g, above %.4g (wind speed %v, amplitude %v)",
			ErrInvalidWind, peak, float64(spectralLimit), cfg.WindSpeed, cfg.Amplitude)
	}
	if !(height <= spectralLimit) {
		return fmt.Errorf("%w: heights reach %.4g, above %.4g (height scale %v)",
			ErrInvalidWind, height, float64(spectralLimit), cfg.HeightScale)
	}
	return nil
}
