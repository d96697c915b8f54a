// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/ocean/compute"
	"github.com/gogpu/ocean/internal/kernels"
)

// Textures are storage buffers. Half formats hold two channels per u32
// (pack2x16float); RGBA32Float holds one f32 per channel.

// encodeTexels converts channel data into the buffer layout of format.
func encodeTexels(format compute.Format, data []float32) []byte {
	le := binary.LittleEndian
	if format.Half() {
		out := make([]byte, len(data)*2)
		for i := 0; i+1 < len(data); i += 2 {
			le.PutUint32(out[i*2:], kernels.PackHalf2(data[i], data[i+1]))
		}
		return out
	}
	out := make([]byte, len(data)*4)
	for i, f := range data {
		le.PutUint32(out[i*4:], math.Float32bits(f))
	}
	return out
}

// decodeTexels reverses encodeTexels.
func decodeTexels(format compute.Format, raw []byte) []float32 {
	le := binary.LittleEndian
	if format.Half() {
		out := make([]float32, len(raw)/2)
		for i := 0; i+1 < len(out); i += 2 {
			out[i], out[i+1] = kernels.UnpackHalf2(le.Uint32(raw[i*2:]))
		}
		return out
	}
	out := make([]float32, len(raw)/4)
	for i := range out {
		out[i] = math.Float32frombits(le.Uint32(raw[i*4:]))
	}
	return out
}
