// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package compute

import "fmt"

// TextureID is an opaque handle to a device texture.
type TextureID uint64

// InvalidTexture is the zero value, representing no texture.
const InvalidTexture TextureID = 0

// Format specifies the texel format of a texture.
type Format uint8

// Texture formats.
const (
	// FormatRG16Float holds one complex value per texel as two
	// half-precision floats (real, imaginary).
	FormatRG16Float Format = iota + 1

	// FormatRGBA16Float holds four half-precision floats per texel.
	FormatRGBA16Float

	// FormatRGBA32Float holds four single-precision floats per texel.
	FormatRGBA32Float
)

// SpectralFormat is the format of every complex spectrum texture: the
// initial, evolved and slope spectra, and both halves of an FFT
// ping-pong pair.
const SpectralFormat = FormatRG16Float

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatRG16Float:
		return "RG16Float"
	case FormatRGBA16Float:
		return "RGBA16Float"
	case FormatRGBA32Float:
		return "RGBA32Float"
	default:
		return fmt.Sprintf("Format(%d)", f)
	}
}

// Channels returns the number of float channels per texel.
func (f Format) Channels() int {
	switch f {
	case FormatRG16Float:
		return 2
	case FormatRGBA16Float, FormatRGBA32Float:
		return 4
	default:
		return 0
	}
}

// Half reports whether the format stores half-precision channels.
func (f Format) Half() bool {
	return f == FormatRG16Float || f == FormatRGBA16Float
}

// BytesPerTexel returns the storage size of one texel.
func (f Format) BytesPerTexel() int {
	if f.Half() {
		return f.Channels() * 2
	}
	return f.Channels() * 4
}

// TextureDesc describes a texture to create.
type TextureDesc struct {
	// Label is a debug name shown in logs and GPU tooling.
	Label string

	Width  int
	Height int
	Format Format
}

// Size returns the storage size of the texture in bytes.
func (d TextureDesc) Size() uint64 {
	return uint64(d.Width) * uint64(d.Height) * uint64(d.Format.BytesPerTexel()) //nolint:gosec // dimensions validated positive
}

// Validate checks the descriptor against the device limits.
func (d TextureDesc) Validate(limits Limits) error {
	if d.Format.Channels() == 0 {
		return fmt.Errorf("compute: texture %q: %w: %s", d.Label, ErrUnsupportedFormat, d.Format)
	}
	if d.Width <= 0 || d.Height <= 0 {
		return fmt.Errorf("compute: texture %q: %w: %dx%d", d.Label, ErrSizeMismatch, d.Width, d.Height)
	}
	if limits.MaxTextureDimension > 0 &&
		(d.Width > limits.MaxTextureDimension || d.Height > limits.MaxTextureDimension) {
		return fmt.Errorf("compute: texture %q %dx%d exceeds %d: %w",
			d.Label, d.Width, d.Height, limits.MaxTextureDimension, ErrTextureTooLarge)
	}
	if limits.MaxTextureBytes > 0 && d.Size() > limits.MaxTextureBytes {
		return fmt.Errorf("compute: texture %q needs %d bytes, limit %d: %w",
			d.Label, d.Size(), limits.MaxTextureBytes, ErrTextureTooLarge)
	}
	return nil
}
