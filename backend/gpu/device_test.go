// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package gpu

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"

	"github.com/gogpu/ocean/compute"
)

// createNoopDevice creates a noop device and queue for testing.
// Returns the device, queue, and a cleanup function.
func createNoopDevice(t *testing.T) (hal.Device, hal.Queue, func()) {
	t.Helper()
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		t.Fatalf("Open failed: %v", err)
	}
	cleanup := func() {
		openDev.Device.Destroy()
		instance.Destroy()
	}
	return openDev.Device, openDev.Queue, cleanup
}

// newNoopComputeDevice wraps a noop HAL device, skipping when naga cannot
// compile the kernels yet.
func newNoopComputeDevice(t *testing.T) (*Device, func()) {
	t.Helper()
	device, queue, cleanup := createNoopDevice(t)
	d, err := NewFromHAL(device, queue)
	if err != nil {
		cleanup()
		if strings.Contains(err.Error(), "not yet implemented") {
			t.Skipf("naga limitation: %v", err)
		}
		t.Fatalf("NewFromHAL: %v", err)
	}
	return d, func() {
		_ = d.Close()
		cleanup()
	}
}

func TestKernelLayoutEntries(t *testing.T) {
	tests := []struct {
		kernel compute.Kernel
		want   []gputypes.BufferBindingType
	}{
		{compute.KernelInitialSpectrum, []gputypes.BufferBindingType{
			gputypes.BufferBindingTypeUniform, gputypes.BufferBindingTypeStorage,
		}},
		{compute.KernelButterfly, []gputypes.BufferBindingType{
			gputypes.BufferBindingTypeUniform, gputypes.BufferBindingTypeStorage,
		}},
		{compute.KernelTimeEvolution, []gputypes.BufferBindingType{
			gputypes.BufferBindingTypeUniform, gputypes.BufferBindingTypeReadOnlyStorage,
			gputypes.BufferBindingTypeStorage, gputypes.BufferBindingTypeStorage,
		}},
		{compute.KernelFFTHorizontal, []gputypes.BufferBindingType{
			gputypes.BufferBindingTypeUniform, gputypes.BufferBindingTypeReadOnlyStorage,
			gputypes.BufferBindingTypeReadOnlyStorage, gputypes.BufferBindingTypeStorage,
		}},
		{compute.KernelFFTVertical, []gputypes.BufferBindingType{
			gputypes.BufferBindingTypeUniform, gputypes.BufferBindingTypeReadOnlyStorage,
			gputypes.BufferBindingTypeReadOnlyStorage, gputypes.BufferBindingTypeStorage,
		}},
		{compute.KernelAssemble, []gputypes.BufferBindingType{
			gputypes.BufferBindingTypeUniform, gputypes.BufferBindingTypeReadOnlyStorage,
			gputypes.BufferBindingTypeReadOnlyStorage, gputypes.BufferBindingTypeStorage,
			gputypes.BufferBindingTypeStorage,
		}},
	}
	for _, tt := range tests {
		t.Run(tt.kernel.String(), func(t *testing.T) {
			entries := kernelLayoutEntries(tt.kernel)
			if len(entries) != len(tt.want) {
				t.Fatalf("got %d entries, want %d", len(entries), len(tt.want))
			}
			for i, e := range entries {
				if e.Binding != uint32(i) {
					t.Errorf("entry %d binding = %d", i, e.Binding)
				}
				if e.Buffer == nil || e.Buffer.Type != tt.want[i] {
					t.Errorf("entry %d type mismatch", i)
				}
				if e.Visibility != gputypes.ShaderStageCompute {
					t.Errorf("entry %d not visible to compute", i)
				}
			}
		})
	}
}

func TestNewFromHALCreatesPipelines(t *testing.T) {
	d, cleanup := newNoopComputeDevice(t)
	defer cleanup()

	for k := compute.Kernel(0); k < compute.KernelCount; k++ {
		if d.pipelines.pipelines[k] == nil {
			t.Errorf("%s: nil pipeline", k)
		}
		if d.pipelines.bgLayouts[k] == nil {
			t.Errorf("%s: nil bind group layout", k)
		}
	}
	if d.Limits().MaxTextureDimension <= 0 {
		t.Errorf("limits = %+v", d.Limits())
	}
}

func TestNewFromHALNil(t *testing.T) {
	if _, err := NewFromHAL(nil, nil); err == nil {
		t.Error("NewFromHAL(nil, nil) succeeded")
	}
}

func TestDeviceTextures(t *testing.T) {
	d, cleanup := newNoopComputeDevice(t)
	defer cleanup()

	id, err := d.CreateTexture(compute.TextureDesc{Label: "spectrum", Width: 16, Height: 16, Format: compute.FormatRG16Float})
	if err != nil {
		t.Fatal(err)
	}
	if s := d.Stats(); s.Textures != 1 || s.TextureBytes != 16*16*4 {
		t.Errorf("stats = %+v", s)
	}
	if err := d.WriteTexture(id, make([]float32, 16*16*2)); err != nil {
		t.Errorf("WriteTexture: %v", err)
	}
	if err := d.WriteTexture(id, make([]float32, 3)); !errors.Is(err, compute.ErrSizeMismatch) {
		t.Errorf("short write: err = %v, want ErrSizeMismatch", err)
	}

	d.DestroyTexture(id)
	if _, ok := d.Describe(id); ok {
		t.Error("texture survives DestroyTexture")
	}

	huge := d.Limits().MaxTextureDimension * 2
	_, err = d.CreateTexture(compute.TextureDesc{Label: "huge", Width: huge, Height: huge, Format: compute.FormatRG16Float})
	if !errors.Is(err, compute.ErrTextureTooLarge) {
		t.Errorf("oversized texture: err = %v, want ErrTextureTooLarge", err)
	}
}

func TestSubmitRejectsAliasingBeforeEncoding(t *testing.T) {
	d, cleanup := newNoopComputeDevice(t)
	defer cleanup()

	a, _ := d.CreateTexture(compute.TextureDesc{Label: "a", Width: 8, Height: 8, Format: compute.FormatRG16Float})
	table, _ := d.CreateTexture(compute.TextureDesc{Label: "table", Width: 3, Height: 8, Format: compute.FormatRGBA32Float})

	err := d.Submit(context.Background(), []compute.Command{
		compute.FFTPass{Butterfly: table, Source: a, Target: a, Size: 8},
	})
	if !errors.Is(err, compute.ErrAliasedBinding) {
		t.Fatalf("err = %v, want ErrAliasedBinding", err)
	}
	if s := d.Stats(); s.Submits != 0 || s.TotalDispatches() != 0 {
		t.Errorf("stats = %+v, want nothing submitted", s)
	}
}

func TestDeviceClose(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	d, err := NewFromHAL(device, queue)
	if err != nil {
		if strings.Contains(err.Error(), "not yet implemented") {
			t.Skipf("naga limitation: %v", err)
		}
		t.Fatal(err)
	}
	if _, err := d.CreateTexture(compute.TextureDesc{Label: "a", Width: 8, Height: 8, Format: compute.FormatRG16Float}); err != nil {
		t.Fatal(err)
	}

	if err := d.Close(); err != nil {
		t.Fatal(err)
	}
	if err := d.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	for k := compute.Kernel(0); k < compute.KernelCount; k++ {
		if d.pipelines.pipelines[k] != nil {
			t.Errorf("%s pipeline not released", k)
		}
	}
	if _, err := d.CreateTexture(compute.TextureDesc{Label: "b", Width: 8, Height: 8, Format: compute.FormatRG16Float}); !errors.Is(err, compute.ErrDeviceClosed) {
		t.Errorf("CreateTexture after Close: %v", err)
	}
	if err := d.Submit(context.Background(), nil); !errors.Is(err, compute.ErrDeviceClosed) {
		t.Errorf("Submit after Close: %v", err)
	}
}
