// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ocean

import (
	"math"

	"github.com/gogpu/ocean/compute"
)

// Map is a host copy of a device texture.
type Map struct {
	// Width and Height in texels.
	Width, Height int

	// Channels is the number of floats per texel.
	Channels int

	// Format of the texture the map was read from.
	Format compute.Format

	// Data holds Channels floats per texel, row by row.
	Data []float32
}

// At returns channel c of texel (x, y).
func (m *Map) At(x, y, c int) float32 {
	return m.Data[(y*m.Width+x)*m.Channels+c]
}

// Elevation returns the height at texel (x, z) of a displacement map.
func (m *Map) Elevation(x, z int) float32 {
	return m.At(x, z, 1)
}

// Normal returns the normal at texel (x, z) of a normal map.
func (m *Map) Normal(x, z int) [3]float32 {
	i := (z*m.Width + x) * m.Channels
	return [3]float32{m.Data[i], m.Data[i+1], m.Data[i+2]}
}

// Range returns the smallest and largest value of channel c.
func (m *Map) Range(c int) (lo, hi float32) {
	lo, hi = float32(math.Inf(1)), float32(math.Inf(-1))
	for i := c; i < len(m.Data); i += m.Channels {
		v := m.Data[i]
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return lo, hi
}
