// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package kernels

import (
	_ "embed"
	"fmt"

	"github.com/gogpu/ocean/compute"
)

//go:embed shaders/initial_spectrum.wgsl
var initialSpectrumWGSL string

//go:embed shaders/butterfly.wgsl
var butterflyWGSL string

//go:embed shaders/time_evolution.wgsl
var timeEvolutionWGSL string

//go:embed shaders/fft_horizontal.wgsl
var fftHorizontalWGSL string

//go:embed shaders/fft_vertical.wgsl
var fftVerticalWGSL string

//go:embed shaders/assemble.wgsl
var assembleWGSL string

// Shader returns the WGSL source of a compute kernel. Every shader has a
// single entry point "main" with an 8x8 workgroup.
func Shader(k compute.Kernel) (string, error) {
	switch k {
	case compute.KernelInitialSpectrum:
		return initialSpectrumWGSL, nil
	case compute.KernelButterfly:
		return butterflyWGSL, nil
	case compute.KernelTimeEvolution:
		return timeEvolutionWGSL, nil
	case compute.KernelFFTHorizontal:
		return fftHorizontalWGSL, nil
	case compute.KernelFFTVertical:
		return fftVerticalWGSL, nil
	case compute.KernelAssemble:
		return assembleWGSL, nil
	default:
		return "", fmt.Errorf("kernels: no shader for %s", k)
	}
}

// EntryPoint is the name of the compute entry point of every shader.
const EntryPoint = "main"
