// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package kernels

import "github.com/x448/float16"

// Quantize rounds v to the nearest half-precision value.
func Quantize(v float32) float32 {
	return float16.Fromfloat32(v).Float32()
}

// PackHalf2 packs two values the way WGSL pack2x16float does: a in the
// low 16 bits, b in the high 16 bits.
func PackHalf2(a, b float32) uint32 {
	return uint32(float16.Fromfloat32(a).Bits()) | uint32(float16.Fromfloat32(b).Bits())<<16
}

// UnpackHalf2 reverses PackHalf2.
func UnpackHalf2(v uint32) (float32, float32) {
	return float16.Frombits(uint16(v)).Float32(), float16.Frombits(uint16(v >> 16)).Float32()
}
