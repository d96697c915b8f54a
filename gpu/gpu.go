// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

// Package gpu registers the GPU compute device with ocean.
//
// Import this package to run the simulation on the GPU. The device is
// opened by ocean.Initialize; if no adapter is available, BackendAuto
// falls back to the CPU device.
//
// Usage:
//
//	import _ "github.com/gogpu/ocean/gpu" // enable the GPU device
package gpu

import (
	"github.com/gogpu/gpucontext"

	"github.com/gogpu/ocean"
	gpudev "github.com/gogpu/ocean/backend/gpu"
	"github.com/gogpu/ocean/compute"
)

func init() {
	ocean.RegisterGPU(gpudev.Open)
}

// SetDeviceProvider makes later simulations share the device of a host
// application, e.g. a gogpu window, instead of opening their own.
//
// The provider must also implement HalDevice() any and HalQueue() any
// returning wgpu/hal types. The shared device is never closed by ocean.
func SetDeviceProvider(provider gpucontext.DeviceProvider) {
	ocean.RegisterGPU(func() (compute.Device, error) {
		d, err := gpudev.NewFromProvider(provider)
		if err != nil {
			return nil, err
		}
		return d, nil
	})
}
