// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package compute

import "fmt"

// TextureLookup resolves a handle to the descriptor it was created with.
type TextureLookup func(TextureID) (TextureDesc, bool)

// Validate checks a command against the textures a device owns.
//
// It verifies that every binding refers to a live texture of the expected
// format and size, that no texture is both read and written, and that no
// texture is written through two bindings.
func Validate(cmd Command, lookup TextureLookup) error {
	if err := validateParams(cmd); err != nil {
		return err
	}

	bindings := cmd.Bindings()
	for i, b := range bindings {
		desc, ok := lookup(b.Texture)
		if !ok {
			return fmt.Errorf("compute: %s binding %q: %w: %d", cmd.Kernel(), b.Name, ErrUnknownTexture, b.Texture)
		}
		if desc.Format != b.Format {
			return fmt.Errorf("compute: %s binding %q: %w: have %s, want %s",
				cmd.Kernel(), b.Name, ErrFormatMismatch, desc.Format, b.Format)
		}
		if desc.Width != b.Width || desc.Height != b.Height {
			return fmt.Errorf("compute: %s binding %q: %w: have %dx%d, want %dx%d",
				cmd.Kernel(), b.Name, ErrSizeMismatch, desc.Width, desc.Height, b.Width, b.Height)
		}
		for _, other := range bindings[:i] {
			if other.Texture != b.Texture {
				continue
			}
			if other.Access == Write || b.Access == Write {
				return fmt.Errorf("compute: %s bindings %q and %q: %w",
					cmd.Kernel(), other.Name, b.Name, ErrAliasedBinding)
			}
		}
	}
	return nil
}

func validateParams(cmd Command) error {
	w, h := cmd.Extent()
	if w <= 0 || h <= 0 {
		return fmt.Errorf("compute: %s: %w: empty extent %dx%d", cmd.Kernel(), ErrInvalidCommand, w, h)
	}
	switch c := cmd.(type) {
	case SpectrumPass:
		if c.Domain <= 0 {
			return fmt.Errorf("compute: %s: %w: domain %v", cmd.Kernel(), ErrInvalidCommand, c.Domain)
		}
	case ButterflyPass:
		if !IsPowerOfTwo(c.Size) || c.Size < 2 {
			return fmt.Errorf("compute: %s: %w: size %d", cmd.Kernel(), ErrInvalidCommand, c.Size)
		}
	case EvolvePass:
		if c.Domain <= 0 {
			return fmt.Errorf("compute: %s: %w: domain %v", cmd.Kernel(), ErrInvalidCommand, c.Domain)
		}
	case FFTPass:
		if !IsPowerOfTwo(c.Size) || c.Size < 2 {
			return fmt.Errorf("compute: %s: %w: size %d", cmd.Kernel(), ErrInvalidCommand, c.Size)
		}
		if c.Stage < 0 || c.Stage >= Log2(c.Size) {
			return fmt.Errorf("compute: %s: %w: stage %d of %d", cmd.Kernel(), ErrInvalidCommand, c.Stage, Log2(c.Size))
		}
	}
	return nil
}
