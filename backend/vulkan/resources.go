// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package vulkan

import (
	"slices"

	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/rendersys"
)

// Buffer is a device buffer.
type Buffer struct {
	desc rendersys.BufferDescriptor
	raw  hal.Buffer
}

// ResourceType implements rendersys.Resource.
func (b *Buffer) ResourceType() rendersys.ResourceType { return rendersys.ResourceTypeBuffer }

// Desc returns the descriptor the buffer was created with.
func (b *Buffer) Desc() rendersys.BufferDescriptor { return b.desc }

// Raw returns the HAL buffer.
func (b *Buffer) Raw() hal.Buffer { return b.raw }

// BufferArray is a group of Vulkan buffers.
type BufferArray struct {
	buffers []rendersys.Buffer
}

// ResourceType implements rendersys.Resource.
func (a *BufferArray) ResourceType() rendersys.ResourceType {
	return rendersys.ResourceTypeBufferArray
}

// Buffers returns the grouped buffers.
func (a *BufferArray) Buffers() []rendersys.Buffer { return slices.Clone(a.buffers) }

// Shader is a SPIR-V shader module.
type Shader struct {
	typ        rendersys.ShaderType
	entryPoint string
	module     hal.ShaderModule
}

// ResourceType implements rendersys.Resource.
func (s *Shader) ResourceType() rendersys.ResourceType { return rendersys.ResourceTypeShader }

// Type returns the pipeline stage.
func (s *Shader) Type() rendersys.ShaderType { return s.typ }

// EntryPoint returns the entry function name.
func (s *Shader) EntryPoint() string { return s.entryPoint }

// Module returns the HAL shader module.
func (s *Shader) Module() hal.ShaderModule { return s.module }
