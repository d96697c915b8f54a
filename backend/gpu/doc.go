// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package gpu implements a compute device on the gogpu/wgpu HAL.
//
// Textures are storage buffers in the layout the WGSL kernels expect.
// A Submit records every command of the batch into one command buffer,
// one compute pass per dispatch, and waits on a fence, so dispatches run
// in submission order on a single queue.
//
// Build with the nogpu tag to compile the package without GPU support;
// [Open] then always returns [ErrNoGPU].
package gpu
