// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package kernels

import "math"

// pcg is the PCG-RXS-M-XS hash. It is stateless, so every texel derives
// its random numbers from its own coordinates and the run seed, and the
// result does not depend on the order texels are computed in.
func pcg(v uint32) uint32 {
	state := v*747796405 + 2891336453
	word := ((state >> ((state >> 28) + 4)) ^ state) * 277803737
	return (word >> 22) ^ word
}

func texelHash(seed uint32, x, z int) uint32 {
	return pcg(seed ^ pcg(uint32(x)+pcg(uint32(z)))) //nolint:gosec // texel coordinates are non-negative
}

// unit maps a hash to (0, 1), never returning 0.
func unit(h uint32) float64 {
	return (float64(h>>8) + 0.5) / (1 << 24)
}

// Gaussian returns two independent standard normal samples for texel
// (x, z) using the Box-Muller transform.
func Gaussian(seed uint32, x, z int) (float64, float64) {
	h1 := texelHash(seed, x, z)
	h2 := pcg(h1)
	r := math.Sqrt(-2 * math.Log(unit(h1)))
	theta := 2 * math.Pi * unit(h2)
	return r * math.Cos(theta), r * math.Sin(theta)
}
