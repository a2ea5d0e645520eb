// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rendersys

import "github.com/gogpu/gputypes"

// Renderer ids reported by the bundled and well-known modules.
const (
	RendererIDUndefined  = 0x00000000
	RendererIDNull       = 0x00000001
	RendererIDOpenGL     = 0x00000002
	RendererIDOpenGLES   = 0x00000003
	RendererIDWebGL      = 0x00000004
	RendererIDWebGPU     = 0x00000005
	RendererIDDirect3D9  = 0x00000010
	RendererIDDirect3D10 = 0x00000011
	RendererIDDirect3D11 = 0x00000012
	RendererIDDirect3D12 = 0x00000013
	RendererIDVulkan     = 0x00000020
	RendererIDMetal      = 0x00000030
)

// BindFlags is a bitmask specifying how a resource is bound to the pipeline.
type BindFlags uint32

// Binding flags.
const (
	// BindVertexBuffer binds a buffer as vertex input.
	BindVertexBuffer BindFlags = 1 << iota

	// BindIndexBuffer binds a buffer as index input.
	BindIndexBuffer

	// BindConstantBuffer binds a buffer as a constant (uniform) buffer.
	BindConstantBuffer

	// BindStreamOutputBuffer binds a buffer as stream-output target.
	BindStreamOutputBuffer

	// BindIndirectBuffer binds a buffer as indirect draw/dispatch arguments.
	BindIndirectBuffer

	// BindSampled binds a resource for sampled reads.
	BindSampled

	// BindStorage binds a resource for read-write storage access.
	BindStorage

	// BindColorAttachment binds a texture as color attachment.
	BindColorAttachment

	// BindDepthStencilAttachment binds a texture as depth-stencil attachment.
	BindDepthStencilAttachment

	// BindCombinedSampler binds a texture together with a sampler.
	BindCombinedSampler

	// BindCopySrc allows the resource to be a copy source.
	BindCopySrc

	// BindCopyDst allows the resource to be a copy destination.
	BindCopyDst
)

// ValidBufferBindFlags are the binding flags a buffer may be created with.
const ValidBufferBindFlags = BindVertexBuffer |
	BindIndexBuffer |
	BindConstantBuffer |
	BindSampled |
	BindStorage |
	BindStreamOutputBuffer |
	BindIndirectBuffer |
	BindCopySrc |
	BindCopyDst

// CPUAccessFlags specifies host access to a buffer.
type CPUAccessFlags uint32

// CPU access flags.
const (
	CPUAccessRead CPUAccessFlags = 1 << iota
	CPUAccessWrite
)

// BufferUsage converts buffer binding and CPU access flags to the WebGPU
// buffer usage used by the GPU backends. Stream output has no WebGPU
// equivalent and maps to storage.
func (f BindFlags) BufferUsage(access CPUAccessFlags) gputypes.BufferUsage {
	var result gputypes.BufferUsage

	if f&BindVertexBuffer != 0 {
		result |= gputypes.BufferUsageVertex
	}
	if f&BindIndexBuffer != 0 {
		result |= gputypes.BufferUsageIndex
	}
	if f&BindConstantBuffer != 0 {
		result |= gputypes.BufferUsageUniform
	}
	if f&(BindStorage|BindSampled|BindStreamOutputBuffer) != 0 {
		result |= gputypes.BufferUsageStorage
	}
	if f&BindIndirectBuffer != 0 {
		result |= gputypes.BufferUsageIndirect
	}
	if f&BindCopySrc != 0 {
		result |= gputypes.BufferUsageCopySrc
	}
	if f&BindCopyDst != 0 {
		result |= gputypes.BufferUsageCopyDst
	}
	if access&CPUAccessRead != 0 {
		result |= gputypes.BufferUsageMapRead
	}
	if access&CPUAccessWrite != 0 {
		result |= gputypes.BufferUsageMapWrite
	}

	return result
}

// BufferDescriptor describes a buffer to create.
type BufferDescriptor struct {
	// Label is an optional debug label.
	Label string

	// Size is the buffer size in bytes.
	Size uint64

	// BindFlags must be a subset of ValidBufferBindFlags.
	BindFlags BindFlags

	// CPUAccess specifies mapping access from the host.
	CPUAccess CPUAccessFlags
}

// ShaderType identifies the pipeline stage of a shader.
type ShaderType uint32

// Shader types.
const (
	ShaderTypeUndefined ShaderType = iota
	ShaderTypeVertex
	ShaderTypeFragment
	ShaderTypeCompute
)

// String returns the shader stage name.
func (t ShaderType) String() string {
	switch t {
	case ShaderTypeVertex:
		return "vertex"
	case ShaderTypeFragment:
		return "fragment"
	case ShaderTypeCompute:
		return "compute"
	default:
		return "undefined"
	}
}

// ShaderSourceType specifies how ShaderDescriptor.Source is interpreted.
type ShaderSourceType uint32

// Shader source types.
const (
	// ShaderSourceCode is high level source text.
	ShaderSourceCode ShaderSourceType = iota

	// ShaderSourceBinary is a binary blob (e.g. SPIR-V) of SourceSize bytes.
	ShaderSourceBinary
)

// ShadingLanguage identifies a shader language or binary format.
type ShadingLanguage uint32

// Shading languages.
const (
	ShadingLanguageUndefined ShadingLanguage = iota
	ShadingLanguageWGSL
	ShadingLanguageGLSL
	ShadingLanguageHLSL
	ShadingLanguageMSL
	ShadingLanguageSPIRV
)

// String returns the language name.
func (l ShadingLanguage) String() string {
	switch l {
	case ShadingLanguageWGSL:
		return "WGSL"
	case ShadingLanguageGLSL:
		return "GLSL"
	case ShadingLanguageHLSL:
		return "HLSL"
	case ShadingLanguageMSL:
		return "MSL"
	case ShadingLanguageSPIRV:
		return "SPIR-V"
	default:
		return "undefined"
	}
}

// ShaderDescriptor describes a shader to create.
type ShaderDescriptor struct {
	// Label is an optional debug label.
	Label string

	// Type is the pipeline stage.
	Type ShaderType

	// Source is the shader source. A nil Source is invalid.
	Source []byte

	// SourceSize is the size of a binary source in bytes. It must be
	// non-zero for ShaderSourceBinary and is ignored for source code.
	SourceSize uint64

	// SourceType specifies how Source is interpreted.
	SourceType ShaderSourceType

	// Language is the language of Source.
	Language ShadingLanguage

	// EntryPoint is the entry function name.
	EntryPoint string
}

// RendererInfo describes the renderer behind a RenderSystem.
type RendererInfo struct {
	RendererName        string
	DeviceName          string
	VendorName          string
	ShadingLanguageName string
	ExtensionNames      []string
}

// Features is a bitmask of optional rendering features.
type Features uint32

// Rendering features.
const (
	FeatureComputeShaders Features = 1 << iota
	FeatureStorageBuffers
	FeatureIndirectDraw
	FeatureInstancing
	FeatureMultiSampling
	FeatureStreamOutput
)

// Has reports whether all features in f2 are present.
func (f Features) Has(f2 Features) bool {
	return f&f2 == f2
}

// Limits are the numeric limits of a renderer.
type Limits struct {
	MaxBufferSize           uint64
	MaxConstantBufferSize   uint64
	MaxTextureDimension2D   uint32
	MaxComputeWorkgroupSize [3]uint32
}

// defaultMaxConstantBufferSize is the WebGPU default uniform binding size.
const defaultMaxConstantBufferSize = 64 << 10

// LimitsFromGPU converts WebGPU limits.
func LimitsFromGPU(lim gputypes.Limits) Limits {
	return Limits{
		MaxBufferSize:         lim.MaxBufferSize,
		MaxConstantBufferSize: defaultMaxConstantBufferSize,
		MaxTextureDimension2D: uint32(lim.MaxTextureDimension2D),
		MaxComputeWorkgroupSize: [3]uint32{
			lim.MaxComputeWorkgroupSizeX,
			lim.MaxComputeWorkgroupSizeY,
			lim.MaxComputeWorkgroupSizeZ,
		},
	}
}

// RenderingCapabilities describes what a renderer supports.
type RenderingCapabilities struct {
	ShadingLanguages []ShadingLanguage
	TextureFormats   []gputypes.TextureFormat
	Features         Features
	Limits           Limits
}

// ResourceType identifies the kind of a Resource.
type ResourceType uint32

// Resource types.
const (
	ResourceTypeUndefined ResourceType = iota
	ResourceTypeBuffer
	ResourceTypeBufferArray
	ResourceTypeShader
)

// String returns the resource kind name.
func (t ResourceType) String() string {
	switch t {
	case ResourceTypeBuffer:
		return "buffer"
	case ResourceTypeBufferArray:
		return "buffer array"
	case ResourceTypeShader:
		return "shader"
	default:
		return "resource"
	}
}

// Resource is any object created by a Driver.
type Resource interface {
	ResourceType() ResourceType
}

// Buffer is a driver buffer.
type Buffer interface {
	Resource
	Desc() BufferDescriptor
}

// BufferArray is a fixed group of buffers bound together.
type BufferArray interface {
	Resource
	Buffers() []Buffer
}

// Shader is a driver shader.
type Shader interface {
	Resource
	Type() ShaderType
}
