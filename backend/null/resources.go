// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package null

import (
	"fmt"
	"slices"
	"sync"

	"fortio.org/safecast"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/rendersys"
)

// Buffer is a host memory buffer. Storage is allocated on first write.
type Buffer struct {
	desc  rendersys.BufferDescriptor
	usage gputypes.BufferUsage

	mu   sync.Mutex
	data []byte
}

// ResourceType implements rendersys.Resource.
func (b *Buffer) ResourceType() rendersys.ResourceType { return rendersys.ResourceTypeBuffer }

// Desc returns the descriptor the buffer was created with.
func (b *Buffer) Desc() rendersys.BufferDescriptor { return b.desc }

// Usage returns the WebGPU usage derived from the bind flags.
func (b *Buffer) Usage() gputypes.BufferUsage { return b.usage }

// Write copies data into the buffer at offset.
func (b *Buffer) Write(offset uint64, data []byte) error {
	n, err := safecast.Conv[uint64](len(data))
	if err != nil || offset > b.desc.Size || n > b.desc.Size-offset {
		return fmt.Errorf("null: write of %d bytes at %d exceeds buffer size %d", len(data), offset, b.desc.Size)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	end := offset + n
	if uint64(len(b.data)) < end {
		b.data = append(b.data, make([]byte, end-uint64(len(b.data)))...)
	}
	copy(b.data[offset:end], data)
	return nil
}

// Read returns size bytes at offset. Bytes never written read as zero.
func (b *Buffer) Read(offset, size uint64) ([]byte, error) {
	if offset > b.desc.Size || size > b.desc.Size-offset {
		return nil, fmt.Errorf("null: read of %d bytes at %d exceeds buffer size %d", size, offset, b.desc.Size)
	}
	out := make([]byte, size)
	b.mu.Lock()
	defer b.mu.Unlock()
	if offset < uint64(len(b.data)) {
		copy(out, b.data[offset:])
	}
	return out, nil
}

// BufferArray is a group of Null buffers.
type BufferArray struct {
	buffers []rendersys.Buffer
}

// ResourceType implements rendersys.Resource.
func (a *BufferArray) ResourceType() rendersys.ResourceType {
	return rendersys.ResourceTypeBufferArray
}

// Buffers returns the grouped buffers.
func (a *BufferArray) Buffers() []rendersys.Buffer { return slices.Clone(a.buffers) }

// Shader is a validated SPIR-V module.
type Shader struct {
	typ        rendersys.ShaderType
	entryPoint string
	spirv      []uint32
}

// ResourceType implements rendersys.Resource.
func (s *Shader) ResourceType() rendersys.ResourceType { return rendersys.ResourceTypeShader }

// Type returns the pipeline stage.
func (s *Shader) Type() rendersys.ShaderType { return s.typ }

// EntryPoint returns the entry function name.
func (s *Shader) EntryPoint() string { return s.entryPoint }

// SPIRV returns the SPIR-V words.
func (s *Shader) SPIRV() []uint32 { return slices.Clone(s.spirv) }
