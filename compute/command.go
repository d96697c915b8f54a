// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package compute

import (
	"fmt"
	"math/bits"
)

// Access describes how a dispatch uses a bound texture.
type Access uint8

const (
	// Read binds a texture as read-only input.
	Read Access = iota + 1
	// Write binds a texture as output.
	Write
)

// String returns "read" or "write".
func (a Access) String() string {
	switch a {
	case Read:
		return "read"
	case Write:
		return "write"
	default:
		return fmt.Sprintf("Access(%d)", a)
	}
}

// Binding is one named texture slot of a command. Width, Height and
// Format describe what the kernel expects; devices check them against
// the texture actually bound.
type Binding struct {
	Name    string
	Texture TextureID
	Access  Access
	Format  Format
	Width   int
	Height  int
}

// Command is one unit of device work. The set of commands is closed:
// every type implementing Command is declared in this package.
type Command interface {
	// Kernel returns the program the command runs.
	Kernel() Kernel

	// Bindings returns the textures the command reads and writes.
	Bindings() []Binding

	// Extent returns the dispatch domain in texels.
	Extent() (width, height int)

	command()
}

// Direction is the axis an FFT stage runs along.
type Direction uint8

const (
	// Horizontal transforms each row.
	Horizontal Direction = iota
	// Vertical transforms each column.
	Vertical
)

// String returns "horizontal" or "vertical".
func (d Direction) String() string {
	if d == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// Wave holds the physical parameters of the wave model.
type Wave struct {
	// Amplitude is the Phillips spectrum constant A.
	Amplitude float64

	// WindSpeed in meters per second.
	WindSpeed float64

	// WindDirection is a unit vector in the (x, z) plane.
	WindDirection [2]float64

	// Gravity in meters per second squared.
	Gravity float64

	// SmallWaveCutoff in meters suppresses waves shorter than it.
	SmallWaveCutoff float64
}

// SpectrumPass fills Target with the initial height spectrum.
type SpectrumPass struct {
	Target TextureID
	Size   int
	Domain float64
	Seed   uint32
	Wave   Wave
}

// Kernel implements Command.
func (SpectrumPass) Kernel() Kernel { return KernelInitialSpectrum }

// Extent implements Command.
func (p SpectrumPass) Extent() (int, int) { return p.Size, p.Size }

// Bindings implements Command.
func (p SpectrumPass) Bindings() []Binding {
	return []Binding{
		{Name: "initial", Texture: p.Target, Access: Write, Format: SpectralFormat, Width: p.Size, Height: p.Size},
	}
}

func (SpectrumPass) command() {}

// ButterflyPass fills Target with the butterfly table for transforms of
// length Size. The table is log2(Size) texels wide and Size texels high.
type ButterflyPass struct {
	Target TextureID
	Size   int
}

// Kernel implements Command.
func (ButterflyPass) Kernel() Kernel { return KernelButterfly }

// Extent implements Command.
func (p ButterflyPass) Extent() (int, int) { return Log2(p.Size), p.Size }

// Bindings implements Command.
func (p ButterflyPass) Bindings() []Binding {
	return []Binding{
		{Name: "butterfly", Texture: p.Target, Access: Write, Format: FormatRGBA32Float, Width: Log2(p.Size), Height: p.Size},
	}
}

func (ButterflyPass) command() {}

// EvolvePass advances Initial to Time and writes the height spectrum to
// Spectrum and the packed slope spectrum to Slope.
type EvolvePass struct {
	Initial  TextureID
	Spectrum TextureID
	Slope    TextureID
	Size     int
	Domain   float64
	Time     float64
	Wave     Wave
}

// Kernel implements Command.
func (EvolvePass) Kernel() Kernel { return KernelTimeEvolution }

// Extent implements Command.
func (p EvolvePass) Extent() (int, int) { return p.Size, p.Size }

// Bindings implements Command.
func (p EvolvePass) Bindings() []Binding {
	return []Binding{
		{Name: "initial", Texture: p.Initial, Access: Read, Format: SpectralFormat, Width: p.Size, Height: p.Size},
		{Name: "spectrum", Texture: p.Spectrum, Access: Write, Format: SpectralFormat, Width: p.Size, Height: p.Size},
		{Name: "slope", Texture: p.Slope, Access: Write, Format: SpectralFormat, Width: p.Size, Height: p.Size},
	}
}

func (EvolvePass) command() {}

// FFTPass runs butterfly stage Stage along Direction, reading Source and
// writing Target.
type FFTPass struct {
	Butterfly TextureID
	Source    TextureID
	Target    TextureID
	Size      int
	Stage     int
	Direction Direction
}

// Kernel implements Command.
func (p FFTPass) Kernel() Kernel {
	if p.Direction == Vertical {
		return KernelFFTVertical
	}
	return KernelFFTHorizontal
}

// Extent implements Command.
func (p FFTPass) Extent() (int, int) { return p.Size, p.Size }

// Bindings implements Command.
func (p FFTPass) Bindings() []Binding {
	return []Binding{
		{Name: "butterfly", Texture: p.Butterfly, Access: Read, Format: FormatRGBA32Float, Width: Log2(p.Size), Height: p.Size},
		{Name: "source", Texture: p.Source, Access: Read, Format: SpectralFormat, Width: p.Size, Height: p.Size},
		{Name: "target", Texture: p.Target, Access: Write, Format: SpectralFormat, Width: p.Size, Height: p.Size},
	}
}

func (FFTPass) command() {}

// AssemblePass turns the spatial spectrum and slope into displacement
// and normal maps.
type AssemblePass struct {
	Spectrum     TextureID
	Slope        TextureID
	Displacement TextureID
	Normal       TextureID
	Size         int
	HeightScale  float64
}

// Kernel implements Command.
func (AssemblePass) Kernel() Kernel { return KernelAssemble }

// Extent implements Command.
func (p AssemblePass) Extent() (int, int) { return p.Size, p.Size }

// Bindings implements Command.
func (p AssemblePass) Bindings() []Binding {
	return []Binding{
		{Name: "spectrum", Texture: p.Spectrum, Access: Read, Format: SpectralFormat, Width: p.Size, Height: p.Size},
		{Name: "slope", Texture: p.Slope, Access: Read, Format: SpectralFormat, Width: p.Size, Height: p.Size},
		{Name: "displacement", Texture: p.Displacement, Access: Write, Format: FormatRGBA16Float, Width: p.Size, Height: p.Size},
		{Name: "normal", Texture: p.Normal, Access: Write, Format: FormatRGBA16Float, Width: p.Size, Height: p.Size},
	}
}

func (AssemblePass) command() {}

// CopyPass copies Source into Target. Both must share Format and Size.
type CopyPass struct {
	Source TextureID
	Target TextureID
	Size   int
	Format Format
}

// Kernel implements Command.
func (CopyPass) Kernel() Kernel { return KernelCopy }

// Extent implements Command.
func (p CopyPass) Extent() (int, int) { return p.Size, p.Size }

// Bindings implements Command.
func (p CopyPass) Bindings() []Binding {
	return []Binding{
		{Name: "source", Texture: p.Source, Access: Read, Format: p.Format, Width: p.Size, Height: p.Size},
		{Name: "target", Texture: p.Target, Access: Write, Format: p.Format, Width: p.Size, Height: p.Size},
	}
}

func (CopyPass) command() {}

// IsPowerOfTwo reports whether n is a positive power of two.
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// Log2 returns log2(n) for a power of two n, and 0 otherwise.
func Log2(n int) int {
	if !IsPowerOfTwo(n) {
		return 0
	}
	return bits.TrailingZeros(uint(n))
}
