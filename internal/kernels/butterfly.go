// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package kernels

import (
	"math"
	"math/bits"
)

// BitReverse reverses the low logN bits of i.
func BitReverse(i, logN int) int {
	if logN == 0 {
		return 0
	}
	return int(bits.Reverse32(uint32(i)) >> (32 - logN)) //nolint:gosec // i < 2^logN
}

// Butterfly computes the butterfly table texel for the given stage and
// element of a size-N inverse transform.
//
// The texel is (twiddle.re, twiddle.im, a, b); the FFT stage computes
// out[i] = ½(in[a] + w·in[b]). This is the decimation-in-time network:
// at stage s, with m = 2^(s+1) and span = 2^s, element i is the top wing
// of its pair when i mod m < span, reading (i, i+span), and the bottom
// wing otherwise, reading (i-span, i). The twiddle is e^{2πik/N} with
// k = i·N/m mod N, which is negated for the bottom wing. Stage 0 reads
// through the bit-reversal permutation so the input needs no reordering.
func Butterfly(stage, i int, p Params) [4]float32 {
	n := int(p.Size)
	logN := int(p.LogSize)
	m := 1 << (stage + 1)
	span := 1 << stage

	k := (i * (n / m)) % n
	angle := 2 * math.Pi * float64(k) / float64(n)

	var a, b int
	if i%m < span {
		a, b = i, i+span
	} else {
		a, b = i-span, i
	}
	if stage == 0 {
		a = BitReverse(a, logN)
		b = BitReverse(b, logN)
	}
	return [4]float32{float32(math.Cos(angle)), float32(math.Sin(angle)), float32(a), float32(b)}
}

// Combine applies one butterfly: ½(p + w·q) with w = (tw[0], tw[1]).
func Combine(tw [4]float32, p, q [2]float32) [2]float32 {
	wr, wi := tw[0], tw[1]
	qr := wr*q[0] - wi*q[1]
	qi := wr*q[1] + wi*q[0]
	return [2]float32{0.5 * (p[0] + qr), 0.5 * (p[1] + qi)}
}
