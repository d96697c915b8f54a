// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package ocean computes a spectral ocean surface on a parallel compute
// device.
//
// # Overview
//
// Every frame the simulation advances a statistical wave spectrum to a
// point in time, turns it into a height field with a 2D inverse FFT and
// packs the result into a displacement map and a normal map. The maps
// are device textures that a renderer samples directly, or reads back
// with [State.Read].
//
// # Quick Start
//
//	cfg := ocean.DefaultConfig()
//	cfg.Size = 256
//
//	s, err := ocean.Initialize(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//
//	frame, err := s.Step(ctx, 1.5)
//	if err != nil {
//	    return err
//	}
//	heights, err := s.Read(ctx, frame.Displacement)
//
// # Pipeline
//
// A frame runs six stages in a fixed order:
//
//	time evolution -> row FFT (spectrum) -> column FFT (spectrum)
//	               -> row FFT (slope)    -> column FFT (slope) -> assembly
//
// All dispatches of a frame are submitted as one ordered batch. The
// initial spectrum and the butterfly table are built once by
// [Initialize].
//
// # Devices
//
// The CPU device in backend/cpu is always available. The GPU device in
// backend/gpu is enabled with a blank import:
//
//	import _ "github.com/gogpu/ocean/gpu"
//
// With [BackendAuto] the simulation uses the GPU when one is registered
// and opens, and the CPU device otherwise.
//
// # Coordinate System
//
// Texel (x, z) of an N×N map covers a square patch of Config.Domain
// meters. Frequency texel (x, z) holds wave number
// k = 2π·(x − N/2, z − N/2)/L, so the zero frequency sits at the center.
// Heights grow along +y.
package ocean
