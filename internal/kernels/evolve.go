// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package kernels

import "math"

// Forward reports whether wave vector k lies in the half-plane of waves
// that travel downwind. Exactly one of k and -k is forward for k != 0;
// ties on the wind axis are broken by the perpendicular axis.
func Forward(kx, kz float64, p Params) bool {
	wx, wz := float64(p.WindX), float64(p.WindZ)
	if d := kx*wx + kz*wz; d != 0 {
		return d < 0
	}
	return kz*wx-kx*wz < 0
}

// Dispersion returns the angular frequency ω = sqrt(g|k|) of deep water waves.
func Dispersion(kx, kz float64, p Params) float64 {
	return math.Sqrt(float64(p.Gravity) * math.Hypot(kx, kz))
}

// Evolve advances the initial spectrum texel h0 to time p.Time and
// returns the height spectrum h and the packed slope spectrum.
//
// Forward texels rotate by e^{iωt} and their partners by the conjugate
// e^{-iωt}, so h stays Hermitian. The slope spectrum is i·kx·h + i·(i·kz·h):
// its inverse transform carries ∂h/∂x in the real part and ∂h/∂z in the
// imaginary part.
func Evolve(x, z int, h0 [2]float32, p Params) (h, slope [2]float32) {
	kx := WaveNumber(x, p)
	kz := WaveNumber(z, p)

	phase := Dispersion(kx, kz, p) * float64(p.Time)
	s, c := math.Sincos(phase)
	if !Forward(kx, kz, p) {
		s = -s
	}

	re, im := float64(h0[0]), float64(h0[1])
	hr := re*c - im*s
	hi := re*s + im*c

	h = [2]float32{float32(hr), float32(hi)}
	slope = [2]float32{float32(-kx*hi - kz*hr), float32(kx*hr - kz*hi)}
	return h, slope
}
