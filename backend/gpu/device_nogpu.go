// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build nogpu

package gpu

import "github.com/gogpu/ocean/compute"

// Open reports ErrNoGPU: the package was built without GPU support.
func Open() (compute.Device, error) {
	return nil, ErrNoGPU
}
