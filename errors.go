// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ocean

import "errors"

// Configuration errors. They are returned by Config.Validate and
// Initialize.
var (
	// ErrInvalidSize is returned when the grid size is not a power of two
	// or exceeds the device limits.
	ErrInvalidSize = errors.New("ocean: invalid grid size")

	// ErrInvalidDomain is returned when the patch length is not positive.
	ErrInvalidDomain = errors.New("ocean: invalid domain size")

	// ErrInvalidWind is returned for unusable wind or wave parameters.
	ErrInvalidWind = errors.New("ocean: invalid wind parameters")

	// ErrInvalidPatch is returned for a non-positive patch size or plane
	// resolution.
	ErrInvalidPatch = errors.New("ocean: invalid patch geometry")

	// ErrButterflySizeMismatch is returned when a butterfly table built
	// for one grid size is used with another.
	ErrButterflySizeMismatch = errors.New("ocean: butterfly table size mismatch")

	// ErrGPUUnavailable is returned for BackendGPU when no GPU device is
	// registered or it cannot be opened.
	ErrGPUUnavailable = errors.New("ocean: gpu device unavailable")
)

// Runtime errors.
var (
	// ErrClosed is returned when a closed State is used.
	ErrClosed = errors.New("ocean: state closed")

	// ErrInvalidTime is returned for a NaN or infinite simulation time.
	ErrInvalidTime = errors.New("ocean: invalid time")

	// ErrStageOrder is returned when a frame stage runs out of order.
	ErrStageOrder = errors.New("ocean: stage out of order")
)
