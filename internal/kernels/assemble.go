// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package kernels

import "math"

// CheckerSign returns (-1)^(x+z). The spectrum is stored centered, which
// leaves every spatial texel of its inverse transform multiplied by this
// sign.
func CheckerSign(x, z int) float32 {
	if (x+z)&1 == 1 {
		return -1
	}
	return 1
}

// Assemble turns the spatial height and slope of texel (x, z) into a
// displacement (0, height, 0, 1) and a unit normal (nx, ny, nz, 1).
func Assemble(x, z int, spectrum, slope [2]float32, p Params) (displacement, normal [4]float32) {
	sign := CheckerSign(x, z) * p.HeightScale
	height := spectrum[0] * sign
	sx := float64(slope[0] * sign)
	sz := float64(slope[1] * sign)

	inv := 1 / math.Sqrt(sx*sx+1+sz*sz)
	displacement = [4]float32{0, height, 0, 1}
	normal = [4]float32{float32(-sx * inv), float32(inv), float32(-sz * inv), 1}
	return displacement, normal
}
