// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package compute

import "context"

// Device is a parallel compute device holding textures and running
// ordered batches of commands on one logical queue.
//
// Implementations validate every command with [Validate] before running
// any command of the batch.
type Device interface {
	// Name identifies the device in logs, e.g. "cpu" or the GPU adapter name.
	Name() string

	// Limits returns the allocation limits of the device.
	Limits() Limits

	// CreateTexture allocates a zero-filled texture.
	CreateTexture(desc TextureDesc) (TextureID, error)

	// DestroyTexture releases a texture. Unknown handles are ignored.
	DestroyTexture(id TextureID)

	// Describe returns the descriptor a live texture was created with.
	Describe(id TextureID) (TextureDesc, bool)

	// WriteTexture uploads texel data, Channels() floats per texel in row
	// order. Half formats are rounded to half precision.
	WriteTexture(id TextureID, data []float32) error

	// ReadTexture downloads texel data in the layout WriteTexture takes.
	ReadTexture(ctx context.Context, id TextureID) ([]float32, error)

	// Submit runs cmds in order. Each command completes before the next
	// one starts.
	Submit(ctx context.Context, cmds []Command) error

	// Stats returns counters accumulated since the device was created.
	Stats() Stats

	// Close releases every texture and the device itself.
	Close() error
}

// Limits are the allocation limits of a device. Zero means unlimited.
type Limits struct {
	// MaxTextureDimension is the largest allowed width or height.
	MaxTextureDimension int

	// MaxTextureBytes is the largest allowed texture size in bytes.
	MaxTextureBytes uint64

	// MaxTotalBytes bounds the memory of all live textures.
	MaxTotalBytes uint64
}

// Stats counts the work a device has done.
type Stats struct {
	// Submits is the number of Submit calls that ran.
	Submits int

	// Dispatches counts dispatched commands per kernel, copies included.
	Dispatches [KernelCount + 1]int

	// Textures is the number of live textures.
	Textures int

	// TextureBytes is the memory held by live textures.
	TextureBytes uint64
}

// TotalDispatches returns the number of compute dispatches, copies excluded.
func (s Stats) TotalDispatches() int {
	n := 0
	for k := Kernel(0); k < KernelCount; k++ {
		n += s.Dispatches[k]
	}
	return n
}
