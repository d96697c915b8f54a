// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package compute defines the device abstraction the ocean pipeline is
// dispatched on.
//
// A [Device] owns textures identified by opaque [TextureID] handles and
// executes ordered batches of [Command] values. Every command names the
// textures it reads and writes through explicit bindings, so no texture
// slot is ever shared implicitly between dispatches:
//
//	cmds := []compute.Command{
//	    compute.EvolvePass{Initial: h0, Spectrum: spec, Slope: slope, Size: 512, Time: t},
//	    compute.FFTPass{Butterfly: table, Source: spec, Target: scratch, Size: 512},
//	}
//	err := dev.Submit(ctx, cmds)
//
// Commands submitted in one batch run strictly in order; each dispatch
// completes before the next one reads its output.
//
// Two implementations live under backend/: a CPU device that runs the
// kernels on a goroutine pool and a GPU device built on gogpu/wgpu HAL.
package compute
