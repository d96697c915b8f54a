// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package compute

import (
	"errors"
	"testing"
)

func testLookup(descs map[TextureID]TextureDesc) TextureLookup {
	return func(id TextureID) (TextureDesc, bool) {
		d, ok := descs[id]
		return d, ok
	}
}

func spectral(n int) TextureDesc {
	return TextureDesc{Width: n, Height: n, Format: FormatRG16Float}
}

func TestValidate(t *testing.T) {
	descs := map[TextureID]TextureDesc{
		1: {Width: 3, Height: 8, Format: FormatRGBA32Float},
		2: spectral(8),
		3: spectral(8),
		4: spectral(16),
		5: {Width: 8, Height: 8, Format: FormatRGBA16Float},
	}
	lookup := testLookup(descs)

	tests := []struct {
		name string
		cmd  Command
		want error
	}{
		{"fft ok", FFTPass{Butterfly: 1, Source: 2, Target: 3, Size: 8, Stage: 2}, nil},
		{"fft aliased", FFTPass{Butterfly: 1, Source: 2, Target: 2, Size: 8}, ErrAliasedBinding},
		{"fft stage out of range", FFTPass{Butterfly: 1, Source: 2, Target: 3, Size: 8, Stage: 3}, ErrInvalidCommand},
		{"fft size not power of two", FFTPass{Butterfly: 1, Source: 2, Target: 3, Size: 6}, ErrInvalidCommand},
		{"fft unknown texture", FFTPass{Butterfly: 1, Source: 2, Target: 99, Size: 8}, ErrUnknownTexture},
		{"fft wrong size", FFTPass{Butterfly: 1, Source: 2, Target: 4, Size: 8}, ErrSizeMismatch},
		{"fft butterfly wrong format", FFTPass{Butterfly: 5, Source: 2, Target: 3, Size: 8}, ErrFormatMismatch},
		{"evolve writes twice", EvolvePass{Initial: 2, Spectrum: 3, Slope: 3, Size: 8, Domain: 10}, ErrAliasedBinding},
		{"evolve zero domain", EvolvePass{Initial: 2, Spectrum: 3, Slope: 4, Size: 8}, ErrInvalidCommand},
		{"copy ok", CopyPass{Source: 3, Target: 2, Size: 8, Format: FormatRG16Float}, nil},
		{"copy format mismatch", CopyPass{Source: 3, Target: 2, Size: 8, Format: FormatRGBA16Float}, ErrFormatMismatch},
		{"assemble reads output", AssemblePass{Spectrum: 2, Slope: 3, Displacement: 5, Normal: 5, Size: 8}, ErrAliasedBinding},
		{"butterfly ok", ButterflyPass{Target: 1, Size: 8}, nil},
		{"butterfly bad size", ButterflyPass{Target: 1, Size: 1}, ErrInvalidCommand},
		{"spectrum empty", SpectrumPass{Target: 2, Domain: 10}, ErrInvalidCommand},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.cmd, lookup)
			if tt.want == nil {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestReadBindingsMayShareTexture(t *testing.T) {
	lookup := testLookup(map[TextureID]TextureDesc{
		2: spectral(8),
		5: {Width: 8, Height: 8, Format: FormatRGBA16Float},
		6: {Width: 8, Height: 8, Format: FormatRGBA16Float},
	})
	cmd := AssemblePass{Spectrum: 2, Slope: 2, Displacement: 5, Normal: 6, Size: 8}
	if err := Validate(cmd, lookup); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}
}

func TestFFTPassKernel(t *testing.T) {
	if k := (FFTPass{Direction: Horizontal}).Kernel(); k != KernelFFTHorizontal {
		t.Errorf("horizontal kernel = %s", k)
	}
	if k := (FFTPass{Direction: Vertical}).Kernel(); k != KernelFFTVertical {
		t.Errorf("vertical kernel = %s", k)
	}
}

func TestKernelString(t *testing.T) {
	tests := []struct {
		k    Kernel
		want string
	}{
		{KernelInitialSpectrum, "initial_spectrum"},
		{KernelButterfly, "butterfly"},
		{KernelTimeEvolution, "time_evolution"},
		{KernelFFTHorizontal, "fft_horizontal"},
		{KernelFFTVertical, "fft_vertical"},
		{KernelAssemble, "assemble"},
		{KernelCopy, "copy"},
		{Kernel(42), "Kernel(42)"},
	}
	for _, tt := range tests {
		if got := tt.k.String(); got != tt.want {
			t.Errorf("Kernel(%d).String() = %q, want %q", tt.k, got, tt.want)
		}
	}
}

func TestLog2(t *testing.T) {
	for logN := 0; logN <= 12; logN++ {
		if got := Log2(1 << logN); got != logN {
			t.Errorf("Log2(%d) = %d, want %d", 1<<logN, got, logN)
		}
	}
	for _, n := range []int{0, -4, 3, 6, 100, 513} {
		if IsPowerOfTwo(n) {
			t.Errorf("IsPowerOfTwo(%d) = true", n)
		}
		if Log2(n) != 0 {
			t.Errorf("Log2(%d) = %d, want 0", n, Log2(n))
		}
	}
}

func TestWorkgroupCount(t *testing.T) {
	tests := []struct {
		n    int
		want uint32
	}{
		{0, 0}, {1, 1}, {8, 1}, {9, 2}, {512, 64}, {1000, 125},
	}
	for _, tt := range tests {
		if got := WorkgroupCount(tt.n); got != tt.want {
			t.Errorf("WorkgroupCount(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}

func TestTextureDescValidate(t *testing.T) {
	limits := Limits{MaxTextureDimension: 256, MaxTextureBytes: 256 * 256 * 4}

	if err := (TextureDesc{Width: 256, Height: 256, Format: FormatRG16Float}).Validate(limits); err != nil {
		t.Errorf("256x256 RG16Float: %v", err)
	}
	if err := (TextureDesc{Width: 512, Height: 512, Format: FormatRG16Float}).Validate(limits); !errors.Is(err, ErrTextureTooLarge) {
		t.Errorf("512x512: err = %v, want ErrTextureTooLarge", err)
	}
	if err := (TextureDesc{Width: 256, Height: 256, Format: FormatRGBA32Float}).Validate(limits); !errors.Is(err, ErrTextureTooLarge) {
		t.Errorf("256x256 RGBA32Float: err = %v, want ErrTextureTooLarge", err)
	}
	if err := (TextureDesc{Width: 8, Height: 8}).Validate(limits); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("no format: err = %v, want ErrUnsupportedFormat", err)
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		f        Format
		channels int
		bytes    int
		half     bool
	}{
		{FormatRG16Float, 2, 4, true},
		{FormatRGBA16Float, 4, 8, true},
		{FormatRGBA32Float, 4, 16, false},
	}
	for _, tt := range tests {
		if tt.f.Channels() != tt.channels || tt.f.BytesPerTexel() != tt.bytes || tt.f.Half() != tt.half {
			t.Errorf("%s: channels=%d bytes=%d half=%v", tt.f, tt.f.Channels(), tt.f.BytesPerTexel(), tt.f.Half())
		}
	}
}
