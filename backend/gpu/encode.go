// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/ocean/compute"
	"github.com/gogpu/ocean/internal/kernels"
)

// dispatchResources tracks per-batch GPU objects for cleanup.
type dispatchResources struct {
	device     hal.Device
	uniforms   []hal.Buffer
	bindGroups []hal.BindGroup
	cmdBuf     hal.CommandBuffer
	fence      hal.Fence
}

// cleanup destroys all tracked per-batch objects.
func (r *dispatchResources) cleanup() {
	if r.fence != nil {
		r.device.DestroyFence(r.fence)
	}
	if r.cmdBuf != nil {
		r.device.FreeCommandBuffer(r.cmdBuf)
	}
	for _, g := range r.bindGroups {
		r.device.DestroyBindGroup(g)
	}
	for _, b := range r.uniforms {
		r.device.DestroyBuffer(b)
	}
}

// encode records cmds into one command buffer. Each compute command gets
// its own pass, uniform block and bind group; copies are recorded as
// buffer-to-buffer copies between the passes.
func (d *Device) encode(res *dispatchResources, cmds []compute.Command) error {
	encoder, err := d.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "ocean_batch"})
	if err != nil {
		return fmt.Errorf("gpu ocean: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("ocean_batch"); err != nil {
		return fmt.Errorf("gpu ocean: begin encoding: %w", err)
	}

	for i, cmd := range cmds {
		k := cmd.Kernel()

		if c, ok := cmd.(compute.CopyPass); ok {
			src, dst := d.textures[c.Source], d.textures[c.Target]
			encoder.CopyBufferToBuffer(src.buffer, dst.buffer, []hal.BufferCopy{
				{SrcOffset: 0, DstOffset: 0, Size: src.desc.Size()},
			})
			continue
		}

		ub, err := d.uniform(cmd)
		if err != nil {
			encoder.DiscardEncoding()
			return err
		}
		res.uniforms = append(res.uniforms, ub)

		bg, err := d.device.CreateBindGroup(&hal.BindGroupDescriptor{
			Label:   fmt.Sprintf("ocean_%s_%d_bg", k, i),
			Layout:  d.pipelines.bgLayouts[k],
			Entries: d.bindGroupEntries(ub, cmd),
		})
		if err != nil {
			encoder.DiscardEncoding()
			return fmt.Errorf("gpu ocean: create bind group for %s: %w", k, err)
		}
		res.bindGroups = append(res.bindGroups, bg)

		w, h := cmd.Extent()
		pass := encoder.BeginComputePass(&hal.ComputePassDescriptor{
			Label: fmt.Sprintf("ocean_%s_%d", k, i),
		})
		pass.SetPipeline(d.pipelines.pipelines[k])
		pass.SetBindGroup(0, bg, nil)
		pass.Dispatch(compute.WorkgroupCount(w), compute.WorkgroupCount(h), 1)
		pass.End()
	}

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("gpu ocean: end encoding: %w", err)
	}
	res.cmdBuf = cmdBuf

	slogger().Debug("gpu ocean: batch encoded", "commands", len(cmds), "passes", len(res.bindGroups))
	return nil
}

// bindGroupEntries binds the uniform block at 0 and the command's
// textures from binding 1 on, in the order the command declares them.
func (d *Device) bindGroupEntries(ub hal.Buffer, cmd compute.Command) []gputypes.BindGroupEntry {
	bindings := cmd.Bindings()
	entries := make([]gputypes.BindGroupEntry, 0, len(bindings)+1)
	entries = append(entries, gputypes.BindGroupEntry{
		Binding:  0,
		Resource: gputypes.BufferBinding{Buffer: ub.NativeHandle(), Offset: 0, Size: kernels.ParamsSize},
	})
	for i, b := range bindings {
		t := d.textures[b.Texture]
		entries = append(entries, gputypes.BindGroupEntry{
			Binding:  uint32(i + 1), //nolint:gosec // at most five bindings
			Resource: gputypes.BufferBinding{Buffer: t.buffer.NativeHandle(), Offset: 0, Size: t.desc.Size()},
		})
	}
	return entries
}

// submitAndWait submits the recorded command buffer and waits for it.
func (d *Device) submitAndWait(res *dispatchResources) error {
	fence, err := d.device.CreateFence()
	if err != nil {
		return fmt.Errorf("gpu ocean: create fence: %w", err)
	}
	res.fence = fence

	if err := d.queue.Submit([]hal.CommandBuffer{res.cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("gpu ocean: submit: %w", err)
	}

	ok, err := d.device.Wait(fence, 1, fenceTimeout)
	if err != nil {
		return fmt.Errorf("gpu ocean: wait for GPU: %w", err)
	}
	if !ok {
		return fmt.Errorf("gpu ocean: GPU timeout after %v: %w", fenceTimeout, compute.ErrDeviceLost)
	}
	return nil
}
