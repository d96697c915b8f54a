// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package compute

import "fmt"

// Kernel identifies the program a command runs on the device.
type Kernel uint8

// Kernels of the ocean pipeline, in dependency order.
const (
	// KernelInitialSpectrum fills the initial Phillips spectrum.
	KernelInitialSpectrum Kernel = iota

	// KernelButterfly builds the FFT butterfly table.
	KernelButterfly

	// KernelTimeEvolution advances the spectrum and derives the slope spectrum.
	KernelTimeEvolution

	// KernelFFTHorizontal runs one butterfly stage along rows.
	KernelFFTHorizontal

	// KernelFFTVertical runs one butterfly stage along columns.
	KernelFFTVertical

	// KernelAssemble writes displacement and normal maps.
	KernelAssemble

	// KernelCount is the number of compute kernels.
	KernelCount

	// KernelCopy is a texture-to-texture copy. It is not a compute program.
	KernelCopy = KernelCount
)

// String returns the kernel name used for shader files and debug labels.
func (k Kernel) String() string {
	switch k {
	case KernelInitialSpectrum:
		return "initial_spectrum"
	case KernelButterfly:
		return "butterfly"
	case KernelTimeEvolution:
		return "time_evolution"
	case KernelFFTHorizontal:
		return "fft_horizontal"
	case KernelFFTVertical:
		return "fft_vertical"
	case KernelAssemble:
		return "assemble"
	case KernelCopy:
		return "copy"
	default:
		return fmt.Sprintf("Kernel(%d)", k)
	}
}

// WorkgroupSize is the edge length of the square workgroups every kernel
// is dispatched with.
const WorkgroupSize = 8

// WorkgroupCount returns the number of workgroups covering n texels along one axis.
func WorkgroupCount(n int) uint32 {
	if n <= 0 {
		return 0
	}
	return uint32((n + WorkgroupSize - 1) / WorkgroupSize) //nolint:gosec // n bounded by texture limits
}
