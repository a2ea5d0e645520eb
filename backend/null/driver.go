// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package null

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"fortio.org/safecast"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/rendersys"
	"github.com/gogpu/rendersys/internal/shader"
)

// Common driver errors.
var (
	// ErrClosed is returned after Close.
	ErrClosed = errors.New("null: driver closed")

	// ErrForeignResource is returned for resources of another driver.
	ErrForeignResource = errors.New("null: resource not created by this driver")
)

// Driver is the Null render system driver.
type Driver struct {
	mu        sync.Mutex
	validator *rendersys.Validator
	limits    rendersys.Limits
	live      map[rendersys.Resource]struct{}
	closed    bool
}

var (
	_ rendersys.Driver          = (*Driver)(nil)
	_ rendersys.ValidatorSetter = (*Driver)(nil)
)

// NewDriver creates a Null driver with the default WebGPU limits.
func NewDriver() *Driver {
	return &Driver{
		limits: rendersys.LimitsFromGPU(gputypes.DefaultLimits()),
		live:   make(map[rendersys.Resource]struct{}),
	}
}

// SetValidator implements rendersys.ValidatorSetter.
func (d *Driver) SetValidator(v *rendersys.Validator) {
	d.mu.Lock()
	d.validator = v
	d.mu.Unlock()
}

// QueryRendererDetails describes the Null renderer.
func (d *Driver) QueryRendererDetails(info *rendersys.RendererInfo, caps *rendersys.RenderingCapabilities) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrClosed
	}
	if info != nil {
		*info = rendersys.RendererInfo{
			RendererName:        Name,
			DeviceName:          "Null Device",
			VendorName:          "gogpu",
			ShadingLanguageName: rendersys.ShadingLanguageWGSL.String(),
		}
	}
	if caps != nil {
		*caps = rendersys.RenderingCapabilities{
			ShadingLanguages: []rendersys.ShadingLanguage{
				rendersys.ShadingLanguageWGSL,
				rendersys.ShadingLanguageSPIRV,
			},
			TextureFormats: []gputypes.TextureFormat{
				gputypes.TextureFormatRGBA8Unorm,
				gputypes.TextureFormatBGRA8Unorm,
				gputypes.TextureFormatR8Unorm,
				gputypes.TextureFormatDepth24PlusStencil8,
			},
			Features: rendersys.FeatureComputeShaders |
				rendersys.FeatureStorageBuffers |
				rendersys.FeatureIndirectDraw |
				rendersys.FeatureInstancing,
			Limits: d.limits,
		}
	}
	return nil
}

// CreateBuffer creates a host memory buffer.
func (d *Driver) CreateBuffer(desc rendersys.BufferDescriptor, initialData []byte) (rendersys.Buffer, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil, ErrClosed
	}
	if err := d.validator.AssertCreateBuffer(desc, d.limits.MaxBufferSize); err != nil {
		return nil, err
	}

	b := &Buffer{desc: desc, usage: desc.BindFlags.BufferUsage(desc.CPUAccess)}
	if initialData != nil {
		n, err := safecast.Conv[uint64](len(initialData))
		if err != nil || n > desc.Size {
			return nil, fmt.Errorf("null: %d bytes of initial data exceed buffer size %d", len(initialData), desc.Size)
		}
		b.data = slices.Clone(initialData)
	}
	d.live[b] = struct{}{}
	return b, nil
}

// CreateBufferArray groups buffers of this driver.
func (d *Driver) CreateBufferArray(buffers []rendersys.Buffer) (rendersys.BufferArray, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil, ErrClosed
	}
	if err := d.validator.AssertCreateBufferArray(len(buffers), buffers); err != nil {
		return nil, err
	}
	for i, b := range buffers {
		nb, ok := b.(*Buffer)
		if !ok {
			return nil, fmt.Errorf("%w: buffer array element [%d] is %T", ErrForeignResource, i, b)
		}
		if _, ok := d.live[nb]; !ok {
			return nil, fmt.Errorf("%w: buffer array element [%d] was released", ErrForeignResource, i)
		}
	}
	a := &BufferArray{buffers: slices.Clone(buffers)}
	d.live[a] = struct{}{}
	return a, nil
}

// CreateShader compiles WGSL or checks a SPIR-V binary.
func (d *Driver) CreateShader(desc rendersys.ShaderDescriptor) (rendersys.Shader, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil, ErrClosed
	}
	if err := d.validator.AssertCreateShader(desc); err != nil {
		return nil, err
	}
	words, err := shader.SPIRV(desc)
	if err != nil {
		return nil, fmt.Errorf("null: %w", err)
	}
	s := &Shader{typ: desc.Type, entryPoint: desc.EntryPoint, spirv: words}
	d.live[s] = struct{}{}
	return s, nil
}

// Release drops a resource.
func (d *Driver) Release(r rendersys.Resource) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrClosed
	}
	if _, ok := d.live[r]; !ok {
		return fmt.Errorf("%w: %T", ErrForeignResource, r)
	}
	delete(d.live, r)
	return nil
}

// Live returns the number of resources not yet released.
func (d *Driver) Live() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.live)
}

// Close releases every resource. Closing twice is a no-op.
func (d *Driver) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil
	}
	d.closed = true
	clear(d.live)
	rendersys.Logger().Debug("null: driver closed")
	return nil
}
