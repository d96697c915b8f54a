// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/ocean/compute"
	"github.com/gogpu/ocean/internal/kernels"
)

// pipelineSet holds one compute pipeline per kernel.
type pipelineSet struct {
	device          hal.Device
	shaderModules   [compute.KernelCount]hal.ShaderModule
	bgLayouts       [compute.KernelCount]hal.BindGroupLayout
	pipelineLayouts [compute.KernelCount]hal.PipelineLayout
	pipelines       [compute.KernelCount]hal.ComputePipeline
}

// prototype returns a zero command of kernel k. Its bindings describe the
// bind group layout of the kernel.
func prototype(k compute.Kernel) compute.Command {
	switch k {
	case compute.KernelInitialSpectrum:
		return compute.SpectrumPass{}
	case compute.KernelButterfly:
		return compute.ButterflyPass{}
	case compute.KernelTimeEvolution:
		return compute.EvolvePass{}
	case compute.KernelFFTHorizontal:
		return compute.FFTPass{Direction: compute.Horizontal}
	case compute.KernelFFTVertical:
		return compute.FFTPass{Direction: compute.Vertical}
	case compute.KernelAssemble:
		return compute.AssemblePass{}
	default:
		return nil
	}
}

// kernelLayoutEntries returns the bind group layout of kernel k: the
// uniform block at binding 0, then one storage buffer per texture
// binding in declaration order.
func kernelLayoutEntries(k compute.Kernel) []gputypes.BindGroupLayoutEntry {
	entries := []gputypes.BindGroupLayoutEntry{{
		Binding:    0,
		Visibility: gputypes.ShaderStageCompute,
		Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
	}}
	for i, b := range prototype(k).Bindings() {
		typ := gputypes.BufferBindingTypeStorage
		if b.Access == compute.Read {
			typ = gputypes.BufferBindingTypeReadOnlyStorage
		}
		entries = append(entries, gputypes.BindGroupLayoutEntry{
			Binding:    uint32(i + 1), //nolint:gosec // at most five bindings
			Visibility: gputypes.ShaderStageCompute,
			Buffer:     &gputypes.BufferBindingLayout{Type: typ},
		})
	}
	return entries
}

// compileSPIRV compiles WGSL to SPIR-V words with naga.
func compileSPIRV(src string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(src)
	if err != nil {
		return nil, err
	}
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return words, nil
}

// init creates the shader module, layouts and pipeline of every kernel.
// On failure everything created so far is destroyed.
func (ps *pipelineSet) init() error {
	for k := compute.Kernel(0); k < compute.KernelCount; k++ {
		src, err := kernels.Shader(k)
		if err != nil {
			ps.destroy()
			return err
		}
		label := "ocean_" + k.String()

		spirv, err := compileSPIRV(src)
		if err != nil {
			ps.destroy()
			return fmt.Errorf("gpu ocean: compile %s: %w", k, err)
		}

		module, err := ps.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
			Label:  label,
			Source: hal.ShaderSource{SPIRV: spirv},
		})
		if err != nil {
			ps.destroy()
			return fmt.Errorf("gpu ocean: create shader module for %s: %w", k, err)
		}
		ps.shaderModules[k] = module

		entries := kernelLayoutEntries(k)
		bgLayout, err := ps.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
			Label:   label + "_bgl",
			Entries: entries,
		})
		if err != nil {
			ps.destroy()
			return fmt.Errorf("gpu ocean: create bind group layout for %s: %w", k, err)
		}
		ps.bgLayouts[k] = bgLayout

		pipelineLayout, err := ps.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
			Label:            label + "_pl",
			BindGroupLayouts: []hal.BindGroupLayout{bgLayout},
		})
		if err != nil {
			ps.destroy()
			return fmt.Errorf("gpu ocean: create pipeline layout for %s: %w", k, err)
		}
		ps.pipelineLayouts[k] = pipelineLayout

		pipeline, err := ps.device.CreateComputePipeline(&hal.ComputePipelineDescriptor{
			Label:  label,
			Layout: pipelineLayout,
			Compute: hal.ComputeState{
				Module:     module,
				EntryPoint: kernels.EntryPoint,
			},
		})
		if err != nil {
			ps.destroy()
			return fmt.Errorf("gpu ocean: create compute pipeline for %s: %w", k, err)
		}
		ps.pipelines[k] = pipeline

		slogger().Debug("gpu ocean: pipeline created",
			"kernel", k.String(),
			"bindings", len(entries),
			"spirv_words", len(spirv))
	}
	return nil
}

// destroy releases every pipeline object. Safe to call repeatedly.
func (ps *pipelineSet) destroy() {
	for k := compute.Kernel(0); k < compute.KernelCount; k++ {
		if ps.pipelines[k] != nil {
			ps.device.DestroyComputePipeline(ps.pipelines[k])
			ps.pipelines[k] = nil
		}
		if ps.pipelineLayouts[k] != nil {
			ps.device.DestroyPipelineLayout(ps.pipelineLayouts[k])
			ps.pipelineLayouts[k] = nil
		}
		if ps.bgLayouts[k] != nil {
			ps.device.DestroyBindGroupLayout(ps.bgLayouts[k])
			ps.bgLayouts[k] = nil
		}
		if ps.shaderModules[k] != nil {
			ps.device.DestroyShaderModule(ps.shaderModules[k])
			ps.shaderModules[k] = nil
		}
	}
}
