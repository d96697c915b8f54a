// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ocean

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/ocean/backend/cpu"
	"github.com/gogpu/ocean/compute"
)

// DeviceOpener opens a new compute device.
type DeviceOpener func() (compute.Device, error)

var (
	gpuMu     sync.RWMutex
	gpuOpener DeviceOpener
)

// RegisterGPU sets the opener used for BackendGPU and BackendAuto.
//
// Implementations are provided by GPU backend packages. Users opt in
// via blank import:
//
//	import _ "github.com/gogpu/ocean/gpu" // enables the GPU device
//
// Passing nil removes the registration.
func RegisterGPU(open DeviceOpener) {
	gpuMu.Lock()
	gpuOpener = open
	gpuMu.Unlock()
}

// GPURegistered reports whether a GPU opener is registered.
func GPURegistered() bool {
	gpuMu.RLock()
	defer gpuMu.RUnlock()
	return gpuOpener != nil
}

// openDevice returns the device a simulation runs on and whether the
// simulation owns it.
func openDevice(cfg *Config) (compute.Device, bool, error) {
	if cfg.Device != nil {
		return cfg.Device, false, nil
	}
	switch cfg.Backend {
	case BackendCPU:
		return newCPUDevice(cfg), true, nil
	case BackendGPU:
		dev, err := openGPU()
		if err != nil {
			return nil, false, err
		}
		return dev, true, nil
	default:
		dev, err := openGPU()
		if err == nil {
			return dev, true, nil
		}
		if GPURegistered() {
			slogger().Warn("ocean: gpu unavailable, falling back to cpu", "err", err)
		} else {
			slogger().Debug("ocean: no gpu registered, using cpu")
		}
		return newCPUDevice(cfg), true, nil
	}
}

func openGPU() (compute.Device, error) {
	gpuMu.RLock()
	open := gpuOpener
	gpuMu.RUnlock()
	if open == nil {
		return nil, fmt.Errorf("%w: no gpu device registered", ErrGPUUnavailable)
	}
	dev, err := open()
	if err != nil {
		return nil, errors.Join(ErrGPUUnavailable, err)
	}
	return dev, nil
}

func newCPUDevice(cfg *Config) compute.Device {
	return cpu.New(cpu.WithWorkers(cfg.Workers))
}
