// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ocean

import (
	"context"
	"fmt"

	"github.com/gogpu/ocean/compute"
)

// ButterflyTable owns the twiddle and index lookup texture of the inverse
// FFT. The texture is log2(N) texels wide and N texels high; texel
// (stage, i) holds (w.re, w.im, indexA, indexB).
//
// The table is immutable once built and is rebuilt only when the grid
// size changes.
type ButterflyTable struct {
	dev     compute.Device
	size    int
	texture compute.TextureID
	built   bool
}

// NewButterflyTable allocates the table texture for grid size n. The
// table is filled by the first Ensure call.
func NewButterflyTable(dev compute.Device, n int) (*ButterflyTable, error) {
	b := &ButterflyTable{dev: dev}
	if err := b.allocate(n); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *ButterflyTable) allocate(n int) error {
	if n < 2 || !compute.IsPowerOfTwo(n) {
		return fmt.Errorf("%w: butterfly table for %d", ErrInvalidSize, n)
	}
	id, err := b.dev.CreateTexture(compute.TextureDesc{
		Label:  "butterfly",
		Width:  compute.Log2(n),
		Height: n,
		Format: compute.FormatRGBA32Float,
	})
	if err != nil {
		return fmt.Errorf("ocean: allocate butterfly table: %w", err)
	}
	b.size = n
	b.texture = id
	b.built = false
	return nil
}

// Ensure makes the table valid for grid size n. It builds the table on
// first use and rebuilds it after a size change. It reports whether a
// build was submitted.
func (b *ButterflyTable) Ensure(ctx context.Context, n int) (bool, error) {
	if b.built && n == b.size {
		return false, nil
	}
	if n != b.size {
		if n < 2 || !compute.IsPowerOfTwo(n) {
			return false, fmt.Errorf("%w: butterfly table for %d", ErrInvalidSize, n)
		}
		b.Close()
		if err := b.allocate(n); err != nil {
			return false, err
		}
	}
	if err := b.dev.Submit(ctx, []compute.Command{b.command()}); err != nil {
		return false, fmt.Errorf("ocean: build butterfly table: %w", err)
	}
	b.built = true
	slogger().Debug("ocean: butterfly table built", "size", n, "stages", compute.Log2(n))
	return true, nil
}

func (b *ButterflyTable) command() compute.ButterflyPass {
	return compute.ButterflyPass{Target: b.texture, Size: b.size}
}

// Size returns the grid size the table serves.
func (b *ButterflyTable) Size() int { return b.size }

// LogSize returns the number of butterfly stages.
func (b *ButterflyTable) LogSize() int { return compute.Log2(b.size) }

// Texture returns the table texture.
func (b *ButterflyTable) Texture() compute.TextureID { return b.texture }

// Built reports whether the table holds valid data.
func (b *ButterflyTable) Built() bool { return b.built }

// Close releases the table texture.
func (b *ButterflyTable) Close() {
	if b.texture != compute.InvalidTexture {
		b.dev.DestroyTexture(b.texture)
		b.texture = compute.InvalidTexture
	}
	b.built = false
}
