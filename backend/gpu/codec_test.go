// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"encoding/binary"
	"testing"

	"github.com/gogpu/ocean/compute"
)

func TestTexelCodecHalf(t *testing.T) {
	in := []float32{1, -2, 0.5, 0}
	raw := encodeTexels(compute.FormatRG16Float, in)
	if len(raw) != 8 {
		t.Fatalf("len = %d, want 8", len(raw))
	}
	if w := binary.LittleEndian.Uint32(raw); w != 0xC0003C00 {
		t.Errorf("first word = %#x, want pack2x16float(1, -2) = 0xc0003c00", w)
	}
	out := decodeTexels(compute.FormatRG16Float, raw)
	for i := range in {
		if out[i] != in[i] {
			t.Errorf("out[%d] = %v, want %v", i, out[i], in[i])
		}
	}
}

func TestTexelCodecFull(t *testing.T) {
	in := []float32{0.1, 2, 3.25, -7, 1e-9, 1e9, 0, 1}
	out := decodeTexels(compute.FormatRGBA32Float, encodeTexels(compute.FormatRGBA32Float, in))
	for i := range in {
		if out[i] != in[i] {
			t.Errorf("out[%d] = %v, want %v", i, out[i], in[i])
		}
	}
}

func TestTexelCodecSizeMatchesFormat(t *testing.T) {
	for _, f := range []compute.Format{compute.FormatRG16Float, compute.FormatRGBA16Float, compute.FormatRGBA32Float} {
		desc := compute.TextureDesc{Width: 4, Height: 4, Format: f}
		data := make([]float32, 16*f.Channels())
		if got := uint64(len(encodeTexels(f, data))); got != desc.Size() {
			t.Errorf("%s: encoded %d bytes, want %d", f, got, desc.Size())
		}
	}
}
