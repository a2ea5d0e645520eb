// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package vulkan

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"fortio.org/safecast"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/rendersys"
	"github.com/gogpu/rendersys/internal/shader"
)

// Common driver errors.
var (
	// ErrClosed is returned after Close.
	ErrClosed = errors.New("vulkan: driver closed")

	// ErrForeignResource is returned for resources of another driver.
	ErrForeignResource = errors.New("vulkan: resource not created by this driver")
)

// Driver is the Vulkan render system driver.
type Driver struct {
	mu        sync.Mutex
	instance  hal.Instance // nil for a shared device
	device    hal.Device
	queue     hal.Queue
	owned     bool
	validator *rendersys.Validator
	limits    rendersys.Limits
	live      map[rendersys.Resource]struct{}
	closed    bool

	adapterName string
	deviceType  string
}

var (
	_ rendersys.Driver          = (*Driver)(nil)
	_ rendersys.ValidatorSetter = (*Driver)(nil)
)

func newDriver(device hal.Device, queue hal.Queue) *Driver {
	return &Driver{
		device: device,
		queue:  queue,
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

// Shared reports whether the device belongs to the platform context.
func (d *Driver) Shared() bool { return !d.owned }

// QueryRendererDetails describes the adapter the device was opened on.
func (d *Driver) QueryRendererDetails(info *rendersys.RendererInfo, caps *rendersys.RenderingCapabilities) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrClosed
	}
	if info != nil {
		*info = rendersys.RendererInfo{
			RendererName:        Name,
			DeviceName:          d.adapterName,
			ShadingLanguageName: rendersys.ShadingLanguageSPIRV.String(),
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
				gputypes.TextureFormatDepth24PlusStencil8,
			},
			Features: rendersys.FeatureComputeShaders |
				rendersys.FeatureStorageBuffers |
				rendersys.FeatureIndirectDraw |
				rendersys.FeatureInstancing |
				rendersys.FeatureMultiSampling,
			Limits: d.limits,
		}
	}
	return nil
}

// CreateBuffer creates a device buffer and uploads initialData through the
// queue.
func (d *Driver) CreateBuffer(desc rendersys.BufferDescriptor, initialData []byte) (rendersys.Buffer, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil, ErrClosed
	}
	if err := d.validator.AssertCreateBuffer(desc, d.limits.MaxBufferSize); err != nil {
		return nil, err
	}
	if initialData != nil {
		n, err := safecast.Conv[uint64](len(initialData))
		if err != nil || n > desc.Size {
			return nil, fmt.Errorf("vulkan: %d bytes of initial data exceed buffer size %d", len(initialData), desc.Size)
		}
	}

	usage := desc.BindFlags.BufferUsage(desc.CPUAccess)
	if initialData != nil {
		usage |= gputypes.BufferUsageCopyDst
	}
	raw, err := d.device.CreateBuffer(&hal.BufferDescriptor{
		Label: desc.Label,
		Size:  desc.Size,
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("vulkan: create buffer: %w", err)
	}
	if len(initialData) > 0 {
		d.queue.WriteBuffer(raw, 0, initialData)
	}

	b := &Buffer{desc: desc, raw: raw}
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
		vb, ok := b.(*Buffer)
		if !ok {
			return nil, fmt.Errorf("%w: buffer array element [%d] is %T", ErrForeignResource, i, b)
		}
		if _, ok := d.live[vb]; !ok {
			return nil, fmt.Errorf("%w: buffer array element [%d] was released", ErrForeignResource, i)
		}
	}
	a := &BufferArray{buffers: slices.Clone(buffers)}
	d.live[a] = struct{}{}
	return a, nil
}

// CreateShader creates a shader module from WGSL or SPIR-V.
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
		return nil, fmt.Errorf("vulkan: %w", err)
	}
	module, err := d.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label: desc.Label,
		Source: hal.ShaderSource{
			SPIRV: words,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("vulkan: create shader module: %w", err)
	}
	s := &Shader{typ: desc.Type, entryPoint: desc.EntryPoint, module: module}
	d.live[s] = struct{}{}
	return s, nil
}

// Release destroys a resource.
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
	d.destroy(r)
	return nil
}

// destroy must be called with d.mu held.
func (d *Driver) destroy(r rendersys.Resource) {
	switch r := r.(type) {
	case *Buffer:
		d.device.DestroyBuffer(r.raw)
	case *Shader:
		d.device.DestroyShaderModule(r.module)
	}
}

// Live returns the number of resources not yet released.
func (d *Driver) Live() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.live)
}

// Close destroys every live resource, then the device and instance when
// they are owned. A shared device is left untouched. Closing twice is a
// no-op.
func (d *Driver) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil
	}
	d.closed = true

	for r := range d.live {
		d.destroy(r)
	}
	clear(d.live)

	if d.owned {
		if d.device != nil {
			d.device.Destroy()
		}
		if d.instance != nil {
			d.instance.Destroy()
		}
	}
	d.device = nil
	d.queue = nil
	d.instance = nil
	rendersys.Logger().Debug("vulkan: driver closed", "shared", !d.owned)
	return nil
}
