// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package kernels

import "math"

// WaveNumber maps a texel coordinate to its wave number component,
// k = 2π(coord - N/2)/L. The spectrum is stored centered: texel N/2 is
// the zero frequency.
func WaveNumber(coord int, p Params) float64 {
	m := coord - int(p.Size/2)
	return 2 * math.Pi * float64(m) / float64(p.Domain)
}

// Partner returns the texel holding the wave vector -k of texel (x, z).
func Partner(x, z int, p Params) (int, int) {
	n := int(p.Size)
	return (n - x) % n, (n - z) % n
}

// Phillips evaluates the Phillips spectrum at wave vector (kx, kz):
//
//	P(k) = A exp(-1/(kL)²) / k⁴ (k̂·ŵ)² exp(-k²ℓ²)
//
// where L = V²/g is the largest wave the wind speed V can raise and ℓ is
// the small-wave cutoff.
func Phillips(kx, kz float64, p Params) float64 {
	k2 := kx*kx + kz*kz
	if k2 < 1e-12 {
		return 0
	}
	g := float64(p.Gravity)
	v := float64(p.WindSpeed)
	largest := v * v / g
	kw := kx*float64(p.WindX) + kz*float64(p.WindZ)
	cutoff := float64(p.Cutoff)
	return float64(p.Amplitude) *
		math.Exp(-1/(k2*largest*largest)) / (k2 * k2) *
		(kw * kw / k2) *
		math.Exp(-k2*cutoff*cutoff)
}

// amplitude is the Gaussian-weighted Fourier amplitude h0 of texel (x, z).
func amplitude(x, z int, p Params) (float64, float64) {
	kx := WaveNumber(x, p)
	kz := WaveNumber(z, p)
	scale := math.Sqrt(Phillips(kx, kz, p) * 0.5)
	gr, gi := Gaussian(p.Seed, x, z)
	return gr * scale, gi * scale
}

// InitialSpectrum computes the t=0 height spectrum of texel (x, z):
//
//	G(k) = h0(k) + conj(h0(-k))
//
// G is Hermitian by construction, so its inverse transform is a real
// height field. The Nyquist row and column are zero: their partner texel
// does not hold -k.
func InitialSpectrum(x, z int, p Params) [2]float32 {
	if x == 0 || z == 0 {
		return [2]float32{}
	}
	ar, ai := amplitude(x, z, p)
	px, pz := Partner(x, z, p)
	br, bi := amplitude(px, pz, p)
	return [2]float32{float32(ar + br), float32(ai - bi)}
}
