// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package compute

import "errors"

// Resource allocation errors.
var (
	// ErrTextureTooLarge is returned when a texture exceeds the device limits.
	ErrTextureTooLarge = errors.New("texture exceeds device limits")

	// ErrOutOfMemory is returned when the device cannot hold another texture.
	ErrOutOfMemory = errors.New("device out of texture memory")

	// ErrUnsupportedFormat is returned for a texture format the device cannot store.
	ErrUnsupportedFormat = errors.New("unsupported texture format")
)

// Dispatch contract errors.
var (
	// ErrUnknownTexture is returned when a binding names a texture the
	// device does not own.
	ErrUnknownTexture = errors.New("unknown texture")

	// ErrAliasedBinding is returned when one dispatch reads and writes the
	// same texture, or writes it through two bindings.
	ErrAliasedBinding = errors.New("texture bound for read and write in one dispatch")

	// ErrFormatMismatch is returned when a bound texture has the wrong format.
	ErrFormatMismatch = errors.New("texture format mismatch")

	// ErrSizeMismatch is returned when a bound texture has the wrong dimensions.
	ErrSizeMismatch = errors.New("texture size mismatch")

	// ErrInvalidCommand is returned for commands with out-of-range parameters.
	ErrInvalidCommand = errors.New("invalid command")
)

// Device state errors.
var (
	// ErrDeviceClosed is returned when a closed device is used.
	ErrDeviceClosed = errors.New("device closed")

	// ErrDeviceLost is returned when the device stops responding.
	ErrDeviceLost = errors.New("device lost")
)
