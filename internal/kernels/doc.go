// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package kernels holds the per-texel programs of the ocean pipeline.
//
// Each kernel exists twice: as WGSL under shaders/, dispatched by the GPU
// device, and as a Go function here, run by the CPU device and used as the
// reference in tests. Both read the same [Params] block and follow the
// same texel addressing (row-major, index z*size+x), so a texel computed
// on either device agrees up to floating-point rounding.
package kernels
