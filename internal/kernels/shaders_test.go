// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package kernels

import (
	"encoding/binary"
	"strings"
	"testing"

	"github.com/gogpu/naga"

	"github.com/gogpu/ocean/compute"
)

func TestShaderSourcesEmbedded(t *testing.T) {
	for k := compute.Kernel(0); k < compute.KernelCount; k++ {
		t.Run(k.String(), func(t *testing.T) {
			src, err := Shader(k)
			if err != nil {
				t.Fatal(err)
			}
			for _, want := range []string{"@compute", "@workgroup_size(8, 8, 1)", "fn main", "struct Params"} {
				if !strings.Contains(src, want) {
					t.Errorf("shader missing %q", want)
				}
			}
		})
	}
	if _, err := Shader(compute.KernelCopy); err == nil {
		t.Error("copy has no shader, want error")
	}
}

func TestShadersCompile(t *testing.T) {
	for k := compute.Kernel(0); k < compute.KernelCount; k++ {
		t.Run(k.String(), func(t *testing.T) {
			src, err := Shader(k)
			if err != nil {
				t.Fatal(err)
			}
			spirv, err := naga.Compile(src)
			if err != nil {
				if strings.Contains(err.Error(), "not yet implemented") {
					t.Skipf("naga limitation: %v", err)
				}
				t.Fatalf("compile %s: %v", k, err)
			}
			if len(spirv) < 20 || len(spirv)%4 != 0 {
				t.Fatalf("SPIR-V output malformed: %d bytes", len(spirv))
			}
			if magic := binary.LittleEndian.Uint32(spirv); magic != 0x07230203 {
				t.Errorf("SPIR-V magic = %#x", magic)
			}
		})
	}
}

func TestParamsBytesLayout(t *testing.T) {
	p := Params{Size: 512, LogSize: 9, Stage: 3, Seed: 7, Domain: 2000, HeightScale: 2}
	b := p.Bytes()
	if len(b) != ParamsSize {
		t.Fatalf("len = %d, want %d", len(b), ParamsSize)
	}
	le := binary.LittleEndian
	if le.Uint32(b[0:]) != 512 || le.Uint32(b[4:]) != 9 || le.Uint32(b[8:]) != 3 || le.Uint32(b[12:]) != 7 {
		t.Errorf("integer header = % x", b[:16])
	}
	if le.Uint32(b[16:]) != 0x44fa0000 { // 2000.0
		t.Errorf("domain bits = %#x", le.Uint32(b[16:]))
	}
	if le.Uint32(b[48:]) != 0x40000000 { // 2.0
		t.Errorf("height scale bits = %#x", le.Uint32(b[48:]))
	}
}

func TestParamsFor(t *testing.T) {
	p := ParamsFor(compute.FFTPass{Size: 256, Stage: 5})
	if p.Size != 256 || p.LogSize != 8 || p.Stage != 5 {
		t.Errorf("FFTPass params = %+v", p)
	}
	p = ParamsFor(compute.EvolvePass{Size: 8, Domain: 10, Time: 1.5, Wave: compute.Wave{Gravity: 9.81, WindDirection: [2]float64{0, 1}}})
	if p.Domain != 10 || p.Time != 1.5 || p.Gravity != float32(9.81) || p.WindZ != 1 {
		t.Errorf("EvolvePass params = %+v", p)
	}
}
