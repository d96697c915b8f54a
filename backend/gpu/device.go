// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package gpu

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	// Register the Vulkan HAL backend.
	_ "github.com/gogpu/wgpu/hal/vulkan"

	"github.com/gogpu/ocean/compute"
	"github.com/gogpu/ocean/internal/kernels"
)

// fenceTimeout bounds the wait for one submitted batch.
const fenceTimeout = 5 * time.Second

// Device is a compute.Device backed by a HAL device and queue.
//
// Thread safety: Device is safe for concurrent use; batches submitted
// from different goroutines are serialized.
type Device struct {
	mu sync.Mutex

	name     string
	instance hal.Instance
	device   hal.Device
	queue    hal.Queue
	external bool

	pipelines pipelineSet
	limits    compute.Limits
	textures  map[compute.TextureID]*texture
	nextID    compute.TextureID
	stats     compute.Stats
	closed    bool
}

var _ compute.Device = (*Device)(nil)

type texture struct {
	desc   compute.TextureDesc
	buffer hal.Buffer
}

// Open opens the first discrete or integrated GPU and returns it as a
// compute device.
func Open() (compute.Device, error) {
	d, err := New()
	if err != nil {
		return nil, err
	}
	return d, nil
}

// New opens the first discrete or integrated GPU through the Vulkan backend.
func New() (*Device, error) {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return nil, fmt.Errorf("%w: vulkan backend not available", ErrNoGPU)
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("%w: create instance: %w", ErrNoGPU, err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, fmt.Errorf("%w: no adapters found", ErrNoGPU)
	}
	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}
	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("%w: open device: %w", ErrNoGPU, err)
	}

	d, err := newDevice(selected.Info.Name, openDev.Device, openDev.Queue, false)
	if err != nil {
		openDev.Device.Destroy()
		instance.Destroy()
		return nil, err
	}
	d.instance = instance
	slogger().Info("gpu ocean: adapter selected", "name", selected.Info.Name)
	return d, nil
}

// NewFromHAL wraps a device and queue owned by the caller. Close releases
// the textures and pipelines but leaves the device open.
func NewFromHAL(device hal.Device, queue hal.Queue) (*Device, error) {
	if device == nil || queue == nil {
		return nil, fmt.Errorf("gpu ocean: nil device or queue")
	}
	return newDevice("hal", device, queue, true)
}

// NewFromProvider shares the device of a host application. The provider
// must also implement HalDevice() any and HalQueue() any returning
// hal.Device and hal.Queue.
func NewFromProvider(provider gpucontext.DeviceProvider) (*Device, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, fmt.Errorf("gpu ocean: provider does not expose HAL types")
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("gpu ocean: provider HalDevice is not hal.Device")
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("gpu ocean: provider HalQueue is not hal.Queue")
	}
	d, err := newDevice("shared", device, queue, true)
	if err != nil {
		return nil, err
	}
	slogger().Info("gpu ocean: using shared device")
	return d, nil
}

func newDevice(name string, device hal.Device, queue hal.Queue, external bool) (*Device, error) {
	limits := gputypes.DefaultLimits()
	d := &Device{
		name:     name,
		device:   device,
		queue:    queue,
		external: external,
		limits: compute.Limits{
			MaxTextureDimension: int(limits.MaxTextureDimension2D),
			MaxTextureBytes:     uint64(limits.MaxStorageBufferBindingSize),
		},
		textures:  make(map[compute.TextureID]*texture),
		pipelines: pipelineSet{device: device},
	}
	if err := d.pipelines.init(); err != nil {
		return nil, err
	}
	slogger().Debug("gpu ocean: device ready",
		"name", name,
		"kernels", int(compute.KernelCount),
		"max_texture_dimension", d.limits.MaxTextureDimension)
	return d, nil
}

// Name implements compute.Device.
func (d *Device) Name() string { return d.name }

// Limits implements compute.Device.
func (d *Device) Limits() compute.Limits { return d.limits }

// SetLogger sets the logger of the gpu package.
func (d *Device) SetLogger(l *slog.Logger) { setLogger(l) }

// CreateTexture implements compute.Device.
func (d *Device) CreateTexture(desc compute.TextureDesc) (compute.TextureID, error) {
	if err := desc.Validate(d.limits); err != nil {
		return compute.InvalidTexture, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return compute.InvalidTexture, compute.ErrDeviceClosed
	}

	buf, err := d.device.CreateBuffer(&hal.BufferDescriptor{
		Label: desc.Label,
		Size:  desc.Size(),
		Usage: gputypes.BufferUsageStorage | gputypes.BufferUsageCopySrc | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return compute.InvalidTexture, fmt.Errorf("gpu ocean: create texture %q (%d bytes): %w: %w",
			desc.Label, desc.Size(), compute.ErrOutOfMemory, err)
	}
	// Storage buffers are not guaranteed to start zeroed.
	d.queue.WriteBuffer(buf, 0, make([]byte, desc.Size()))

	d.nextID++
	id := d.nextID
	d.textures[id] = &texture{desc: desc, buffer: buf}
	d.stats.Textures++
	d.stats.TextureBytes += desc.Size()

	slogger().Debug("gpu ocean: texture created",
		"label", desc.Label, "id", uint64(id),
		"width", desc.Width, "height", desc.Height,
		"format", desc.Format.String(), "bytes", desc.Size())
	return id, nil
}

// DestroyTexture implements compute.Device.
func (d *Device) DestroyTexture(id compute.TextureID) {
	d.mu.Lock()
	defer d.mu.Unlock()

	t, ok := d.textures[id]
	if !ok {
		return
	}
	d.device.DestroyBuffer(t.buffer)
	delete(d.textures, id)
	d.stats.Textures--
	d.stats.TextureBytes -= t.desc.Size()
}

// Describe implements compute.Device.
func (d *Device) Describe(id compute.TextureID) (compute.TextureDesc, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.describe(id)
}

func (d *Device) describe(id compute.TextureID) (compute.TextureDesc, bool) {
	t, ok := d.textures[id]
	if !ok {
		return compute.TextureDesc{}, false
	}
	return t.desc, true
}

// WriteTexture implements compute.Device.
func (d *Device) WriteTexture(id compute.TextureID, data []float32) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return compute.ErrDeviceClosed
	}
	t, ok := d.textures[id]
	if !ok {
		return fmt.Errorf("gpu ocean: write: %w: %d", compute.ErrUnknownTexture, id)
	}
	want := t.desc.Width * t.desc.Height * t.desc.Format.Channels()
	if len(data) != want {
		return fmt.Errorf("gpu ocean: write %q: %w: %d floats, want %d",
			t.desc.Label, compute.ErrSizeMismatch, len(data), want)
	}
	d.queue.WriteBuffer(t.buffer, 0, encodeTexels(t.desc.Format, data))
	return nil
}

// ReadTexture implements compute.Device. It copies the texture into a
// staging buffer and maps it after the copy completes.
func (d *Device) ReadTexture(ctx context.Context, id compute.TextureID) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil, compute.ErrDeviceClosed
	}
	t, ok := d.textures[id]
	if !ok {
		return nil, fmt.Errorf("gpu ocean: read: %w: %d", compute.ErrUnknownTexture, id)
	}

	size := t.desc.Size()
	staging, err := d.device.CreateBuffer(&hal.BufferDescriptor{
		Label: t.desc.Label + "_staging",
		Size:  size,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("gpu ocean: create staging buffer: %w", err)
	}
	defer d.device.DestroyBuffer(staging)

	res := &dispatchResources{device: d.device}
	defer res.cleanup()

	encoder, err := d.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "ocean_readback"})
	if err != nil {
		return nil, fmt.Errorf("gpu ocean: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("ocean_readback"); err != nil {
		return nil, fmt.Errorf("gpu ocean: begin encoding: %w", err)
	}
	encoder.CopyBufferToBuffer(t.buffer, staging, []hal.BufferCopy{
		{SrcOffset: 0, DstOffset: 0, Size: size},
	})
	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return nil, fmt.Errorf("gpu ocean: end encoding: %w", err)
	}
	res.cmdBuf = cmdBuf

	if err := d.submitAndWait(res); err != nil {
		return nil, err
	}

	raw := make([]byte, size)
	if err := d.queue.ReadBuffer(staging, 0, raw); err != nil {
		return nil, fmt.Errorf("gpu ocean: readback %q: %w", t.desc.Label, err)
	}
	return decodeTexels(t.desc.Format, raw), nil
}

// Submit implements compute.Device.
func (d *Device) Submit(ctx context.Context, cmds []compute.Command) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return compute.ErrDeviceClosed
	}
	for _, cmd := range cmds {
		if err := compute.Validate(cmd, d.describe); err != nil {
			return err
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(cmds) == 0 {
		d.stats.Submits++
		return nil
	}

	res := &dispatchResources{device: d.device}
	defer res.cleanup()

	if err := d.encode(res, cmds); err != nil {
		return err
	}
	if err := d.submitAndWait(res); err != nil {
		return err
	}

	for _, cmd := range cmds {
		d.stats.Dispatches[cmd.Kernel()]++
	}
	d.stats.Submits++
	return nil
}

// Stats implements compute.Device.
func (d *Device) Stats() compute.Stats {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stats
}

// Close implements compute.Device. A device passed in by the caller is
// left open. Close is safe to call multiple times.
func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil
	}
	d.closed = true

	for id, t := range d.textures {
		d.device.DestroyBuffer(t.buffer)
		delete(d.textures, id)
	}
	d.stats.Textures = 0
	d.stats.TextureBytes = 0
	d.pipelines.destroy()

	if !d.external {
		d.device.Destroy()
		if d.instance != nil {
			d.instance.Destroy()
		}
	}
	d.device = nil
	d.queue = nil
	d.instance = nil
	return nil
}

// uniform creates the parameter block of one dispatch.
func (d *Device) uniform(cmd compute.Command) (hal.Buffer, error) {
	buf, err := d.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "ocean_" + cmd.Kernel().String() + "_params",
		Size:  kernels.ParamsSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("gpu ocean: create params buffer for %s: %w", cmd.Kernel(), err)
	}
	d.queue.WriteBuffer(buf, 0, kernels.ParamsFor(cmd).Bytes())
	return buf, nil
}
