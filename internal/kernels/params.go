// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package kernels

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/ocean/compute"
)

// ParamsSize is the size of the uniform block in bytes.
const ParamsSize = 64

// Params is the uniform block shared by all kernels.
//
// Memory layout (64 bytes, matches struct Params in every shader):
//
//	offset  0: size         u32
//	offset  4: log_size     u32
//	offset  8: stage        u32
//	offset 12: seed         u32
//	offset 16: domain       f32
//	offset 20: time         f32
//	offset 24: gravity      f32
//	offset 28: amplitude    f32
//	offset 32: wind_speed   f32
//	offset 36: wind_x       f32
//	offset 40: wind_z       f32
//	offset 44: cutoff       f32
//	offset 48: height_scale f32
//	offset 52: padding      12 bytes
type Params struct {
	Size        uint32
	LogSize     uint32
	Stage       uint32
	Seed        uint32
	Domain      float32
	Time        float32
	Gravity     float32
	Amplitude   float32
	WindSpeed   float32
	WindX       float32
	WindZ       float32
	Cutoff      float32
	HeightScale float32
}

// Bytes serializes the block for upload.
func (p Params) Bytes() []byte {
	buf := make([]byte, ParamsSize)
	le := binary.LittleEndian
	le.PutUint32(buf[0:], p.Size)
	le.PutUint32(buf[4:], p.LogSize)
	le.PutUint32(buf[8:], p.Stage)
	le.PutUint32(buf[12:], p.Seed)
	for i, f := range [...]float32{
		p.Domain, p.Time, p.Gravity, p.Amplitude, p.WindSpeed,
		p.WindX, p.WindZ, p.Cutoff, p.HeightScale,
	} {
		le.PutUint32(buf[16+4*i:], math.Float32bits(f))
	}
	return buf
}

// ParamsFor builds the uniform block a command is dispatched with.
func ParamsFor(cmd compute.Command) Params {
	switch c := cmd.(type) {
	case compute.SpectrumPass:
		p := sized(c.Size)
		p.Seed = c.Seed
		p.Domain = float32(c.Domain)
		withWave(&p, c.Wave)
		return p
	case compute.ButterflyPass:
		return sized(c.Size)
	case compute.EvolvePass:
		p := sized(c.Size)
		p.Domain = float32(c.Domain)
		p.Time = float32(c.Time)
		withWave(&p, c.Wave)
		return p
	case compute.FFTPass:
		p := sized(c.Size)
		p.Stage = uint32(c.Stage) //nolint:gosec // validated against log2(size)
		return p
	case compute.AssemblePass:
		p := sized(c.Size)
		p.HeightScale = float32(c.HeightScale)
		return p
	case compute.CopyPass:
		return sized(c.Size)
	default:
		return Params{}
	}
}

func sized(n int) Params {
	return Params{
		Size:    uint32(n),               //nolint:gosec // bounded by texture limits
		LogSize: uint32(compute.Log2(n)), //nolint:gosec // at most 31
	}
}

func withWave(p *Params, w compute.Wave) {
	p.Gravity = float32(w.Gravity)
	p.Amplitude = float32(w.Amplitude)
	p.WindSpeed = float32(w.WindSpeed)
	p.WindX = float32(w.WindDirection[0])
	p.WindZ = float32(w.WindDirection[1])
	p.Cutoff = float32(w.SmallWaveCutoff)
}
