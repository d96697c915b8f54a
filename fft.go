// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ocean

import (
	"context"
	"fmt"

	"github.com/gogpu/ocean/compute"
)

// Plan is the dispatch sequence of an inverse FFT over a ping-pong pair.
//
// Stage j of the whole transform reads pair[j%2] and writes
// pair[(j+1)%2], where pair[0] is the canonical texture. The counter runs
// across sweeps, so a 2D transform of 2·log2(N) stages ends in the
// canonical texture. A plan whose stage count is odd ends in scratch and
// carries a copy back.
//
// Both textures of the pair have compute.SpectralFormat, the format every
// FFT pass binds, so the copy back uses it too.
type Plan struct {
	// Passes are the FFT dispatches in order, log2(N) per sweep.
	Passes []compute.FFTPass

	// CopyBack moves the result from scratch to the canonical texture.
	// It is nil when the last pass already writes the canonical texture.
	CopyBack *compute.CopyPass

	sweeps []compute.Direction
	logN   int
}

// NewPlan returns the 2D plan: a row sweep followed by a column sweep.
func NewPlan(n int, butterfly, canonical, scratch compute.TextureID) Plan {
	return PlanSweeps(n, butterfly, canonical, scratch, compute.Horizontal, compute.Vertical)
}

// PlanSweeps returns the plan of the given sweeps in order. It does no
// device work.
func PlanSweeps(n int, butterfly, canonical, scratch compute.TextureID, sweeps ...compute.Direction) Plan {
	logN := compute.Log2(n)
	pair := [2]compute.TextureID{canonical, scratch}
	p := Plan{
		Passes: make([]compute.FFTPass, 0, logN*len(sweeps)),
		sweeps: append([]compute.Direction(nil), sweeps...),
		logN:   logN,
	}

	j := 0
	for _, dir := range sweeps {
		for stage := 0; stage < logN; stage++ {
			p.Passes = append(p.Passes, compute.FFTPass{
				Butterfly: butterfly,
				Source:    pair[j%2],
				Target:    pair[(j+1)%2],
				Size:      n,
				Stage:     stage,
				Direction: dir,
			})
			j++
		}
	}
	if j%2 == 1 {
		p.CopyBack = &compute.CopyPass{
			Source: scratch,
			Target: canonical,
			Size:   n,
			Format: compute.SpectralFormat,
		}
	}
	return p
}

// Stages returns the number of passes of each sweep.
func (p Plan) Stages() []int {
	out := make([]int, len(p.sweeps))
	for i := range out {
		out[i] = len(p.Sweep(i))
	}
	return out
}

// Sweep returns the passes of sweep i.
func (p Plan) Sweep(i int) []compute.FFTPass {
	return p.Passes[i*p.logN : (i+1)*p.logN]
}

// Result returns the texture the last pass writes.
func (p Plan) Result() compute.TextureID {
	if len(p.Passes) == 0 {
		return compute.InvalidTexture
	}
	return p.Passes[len(p.Passes)-1].Target
}

// Commands returns the passes followed by the copy back, if any.
func (p Plan) Commands() []compute.Command {
	cmds := make([]compute.Command, 0, len(p.Passes)+1)
	for _, pass := range p.Passes {
		cmds = append(cmds, pass)
	}
	if p.CopyBack != nil {
		cmds = append(cmds, *p.CopyBack)
	}
	return cmds
}

// InverseFFT transforms N×N complex textures in place, using a scratch
// texture it owns as the second half of the ping-pong pair.
//
// The transform computes
//
//	out(x, z) = 1/N² · Σ in(u, v) · e^{+2πi(u·x + v·z)/N}
//
// with each butterfly stage scaling by ½.
type InverseFFT struct {
	dev     compute.Device
	table   *ButterflyTable
	size    int
	scratch compute.TextureID
}

// NewInverseFFT allocates the scratch texture of a transform of size n.
// The table must have been allocated for the same size; a mismatch
// fails with ErrButterflySizeMismatch.
func NewInverseFFT(dev compute.Device, table *ButterflyTable, n int) (*InverseFFT, error) {
	if table == nil {
		return nil, fmt.Errorf("%w: nil table", ErrButterflySizeMismatch)
	}
	desc, ok := dev.Describe(table.Texture())
	if !ok || table.Size() != n || desc.Width != compute.Log2(n) || desc.Height != n {
		return nil, fmt.Errorf("%w: table for %d (%dx%d), transform of %d",
			ErrButterflySizeMismatch, table.Size(), desc.Width, desc.Height, n)
	}

	scratch, err := dev.CreateTexture(compute.TextureDesc{
		Label:  "fft_scratch",
		Width:  n,
		Height: n,
		Format: compute.SpectralFormat,
	})
	if err != nil {
		return nil, fmt.Errorf("ocean: allocate fft scratch: %w", err)
	}
	return &InverseFFT{dev: dev, table: table, size: n, scratch: scratch}, nil
}

// Size returns the transform size.
func (f *InverseFFT) Size() int { return f.size }

// Plan returns the 2D plan for canonical.
func (f *InverseFFT) Plan(canonical compute.TextureID) Plan {
	return NewPlan(f.size, f.table.Texture(), canonical, f.scratch)
}

// Commands returns the dispatches that transform canonical in place.
func (f *InverseFFT) Commands(canonical compute.TextureID) []compute.Command {
	return f.Plan(canonical).Commands()
}

// Transform runs the 2D inverse FFT of canonical in place.
func (f *InverseFFT) Transform(ctx context.Context, canonical compute.TextureID) error {
	if !f.table.Built() {
		if _, err := f.table.Ensure(ctx, f.size); err != nil {
			return err
		}
	}
	if err := f.dev.Submit(ctx, f.Commands(canonical)); err != nil {
		return fmt.Errorf("ocean: inverse fft: %w", err)
	}
	return nil
}

// Close releases the scratch texture. The butterfly table is not owned
// by the transform.
func (f *InverseFFT) Close() {
	if f.scratch != compute.InvalidTexture {
		f.dev.DestroyTexture(f.scratch)
		f.scratch = compute.InvalidTexture
	}
}
