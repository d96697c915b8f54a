// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package cpu implements a compute device that runs the ocean kernels on
// a goroutine pool.
//
// Textures live in host memory as float32 channels. Half-precision
// formats are rounded to half precision on every store, so the CPU
// device reproduces the precision of the GPU textures. Each dispatch is
// split into row bands across the pool and joined before the next
// command of the batch starts.
package cpu

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gogpu/ocean/compute"
	"github.com/gogpu/ocean/internal/kernels"
	"github.com/gogpu/ocean/internal/parallel"
)

// DefaultMaxTextureDimension matches the 2D texture limit WebGPU guarantees.
const DefaultMaxTextureDimension = 8192

// Option configures a Device.
type Option func(*Device)

// WithWorkers sets the number of worker goroutines. Zero or negative
// uses GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(d *Device) { d.workers = n }
}

// WithLimits replaces the default allocation limits.
func WithLimits(l compute.Limits) Option {
	return func(d *Device) { d.limits = l }
}

// Device is a compute.Device backed by host memory.
//
// Thread safety: Device is safe for concurrent use; batches submitted
// from different goroutines run one after another.
type Device struct {
	mu       sync.Mutex
	workers  int
	pool     *parallel.WorkerPool
	limits   compute.Limits
	textures map[compute.TextureID]*texture
	nextID   compute.TextureID
	stats    compute.Stats
	closed   bool
}

var _ compute.Device = (*Device)(nil)

type texture struct {
	desc compute.TextureDesc
	data []float32
}

// store writes one texel, rounding to the texture's precision.
func (t *texture) store(i int, v []float32) {
	off := i * len(v)
	if t.desc.Format.Half() {
		for j, f := range v {
			t.data[off+j] = kernels.Quantize(f)
		}
		return
	}
	copy(t.data[off:off+len(v)], v)
}

func (t *texture) rg(i int) [2]float32 {
	return [2]float32{t.data[2*i], t.data[2*i+1]}
}

func (t *texture) rgba(i int) [4]float32 {
	return [4]float32{t.data[4*i], t.data[4*i+1], t.data[4*i+2], t.data[4*i+3]}
}

// New creates a CPU device.
func New(opts ...Option) *Device {
	d := &Device{
		limits:   compute.Limits{MaxTextureDimension: DefaultMaxTextureDimension},
		textures: make(map[compute.TextureID]*texture),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.pool = parallel.NewWorkerPool(d.workers)
	slogger().Debug("cpu device: created", "workers", d.pool.Workers())
	return d
}

// Name implements compute.Device.
func (d *Device) Name() string { return "cpu" }

// Limits implements compute.Device.
func (d *Device) Limits() compute.Limits { return d.limits }

// SetLogger sets the logger of the cpu package.
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
	if d.limits.MaxTotalBytes > 0 && d.stats.TextureBytes+desc.Size() > d.limits.MaxTotalBytes {
		return compute.InvalidTexture, fmt.Errorf("cpu device: texture %q needs %d bytes, %d of %d in use: %w",
			desc.Label, desc.Size(), d.stats.TextureBytes, d.limits.MaxTotalBytes, compute.ErrOutOfMemory)
	}

	d.nextID++
	id := d.nextID
	d.textures[id] = &texture{
		desc: desc,
		data: make([]float32, desc.Width*desc.Height*desc.Format.Channels()),
	}
	d.stats.Textures++
	d.stats.TextureBytes += desc.Size()

	slogger().Debug("cpu device: texture created",
		"label", desc.Label, "id", uint64(id),
		"width", desc.Width, "height", desc.Height, "format", desc.Format.String())
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
		return fmt.Errorf("cpu device: write: %w: %d", compute.ErrUnknownTexture, id)
	}
	if len(data) != len(t.data) {
		return fmt.Errorf("cpu device: write %q: %w: %d floats, want %d",
			t.desc.Label, compute.ErrSizeMismatch, len(data), len(t.data))
	}
	if t.desc.Format.Half() {
		for i, f := range data {
			t.data[i] = kernels.Quantize(f)
		}
	} else {
		copy(t.data, data)
	}
	return nil
}

// ReadTexture implements compute.Device.
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
		return nil, fmt.Errorf("cpu device: read: %w: %d", compute.ErrUnknownTexture, id)
	}
	return append([]float32(nil), t.data...), nil
}

// Submit implements compute.Device. The whole batch is validated before
// the first command runs.
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

	start := time.Now()
	for _, cmd := range cmds {
		if err := ctx.Err(); err != nil {
			return err
		}
		d.run(cmd)
		d.stats.Dispatches[cmd.Kernel()]++
	}
	d.stats.Submits++

	slogger().Debug("cpu device: batch complete",
		"commands", len(cmds), "elapsed", time.Since(start))
	return nil
}

// Stats implements compute.Device.
func (d *Device) Stats() compute.Stats {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stats
}

// Close implements compute.Device. Close is safe to call multiple times.
func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil
	}
	d.closed = true
	d.pool.Close()
	d.textures = nil
	d.stats.Textures = 0
	d.stats.TextureBytes = 0
	return nil
}
