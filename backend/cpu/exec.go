// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package cpu

import (
	"github.com/gogpu/ocean/compute"
	"github.com/gogpu/ocean/internal/kernels"
)

// run executes one validated command. Every texel of a dispatch is
// independent, so rows are split across the pool freely.
func (d *Device) run(cmd compute.Command) {
	p := kernels.ParamsFor(cmd)
	n := int(p.Size)

	switch c := cmd.(type) {
	case compute.SpectrumPass:
		dst := d.textures[c.Target]
		d.pool.Bands(n, func(z0, z1 int) {
			for z := z0; z < z1; z++ {
				for x := 0; x < n; x++ {
					v := kernels.InitialSpectrum(x, z, p)
					dst.store(z*n+x, v[:])
				}
			}
		})

	case compute.ButterflyPass:
		dst := d.textures[c.Target]
		logN := int(p.LogSize)
		d.pool.Bands(n, func(i0, i1 int) {
			for i := i0; i < i1; i++ {
				for s := 0; s < logN; s++ {
					v := kernels.Butterfly(s, i, p)
					dst.store(i*logN+s, v[:])
				}
			}
		})

	case compute.EvolvePass:
		src := d.textures[c.Initial]
		spec := d.textures[c.Spectrum]
		slope := d.textures[c.Slope]
		d.pool.Bands(n, func(z0, z1 int) {
			for z := z0; z < z1; z++ {
				for x := 0; x < n; x++ {
					i := z*n + x
					h, s := kernels.Evolve(x, z, src.rg(i), p)
					spec.store(i, h[:])
					slope.store(i, s[:])
				}
			}
		})

	case compute.FFTPass:
		d.runFFT(c, p)

	case compute.AssemblePass:
		spec := d.textures[c.Spectrum]
		slope := d.textures[c.Slope]
		disp := d.textures[c.Displacement]
		normal := d.textures[c.Normal]
		d.pool.Bands(n, func(z0, z1 int) {
			for z := z0; z < z1; z++ {
				for x := 0; x < n; x++ {
					i := z*n + x
					dv, nv := kernels.Assemble(x, z, spec.rg(i), slope.rg(i), p)
					disp.store(i, dv[:])
					normal.store(i, nv[:])
				}
			}
		})

	case compute.CopyPass:
		copy(d.textures[c.Target].data, d.textures[c.Source].data)
	}
}

func (d *Device) runFFT(c compute.FFTPass, p kernels.Params) {
	n := int(p.Size)
	logN := int(p.LogSize)
	stage := int(p.Stage)
	table := d.textures[c.Butterfly]
	src := d.textures[c.Source]
	dst := d.textures[c.Target]

	d.pool.Bands(n, func(z0, z1 int) {
		for z := z0; z < z1; z++ {
			for x := 0; x < n; x++ {
				var tw [4]float32
				var a, b int
				if c.Direction == compute.Vertical {
					tw = table.rgba(z*logN + stage)
					a, b = int(tw[2])*n+x, int(tw[3])*n+x
				} else {
					tw = table.rgba(x*logN + stage)
					a, b = z*n+int(tw[2]), z*n+int(tw[3])
				}
				v := kernels.Combine(tw, src.rg(a), src.rg(b))
				dst.store(z*n+x, v[:])
			}
		}
	})
}
