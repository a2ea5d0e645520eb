// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build rust

package webgpu

import (
	"fmt"
	"sync"

	"github.com/go-webgpu/webgpu/wgpu"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/rendersys"
)

// Driver is the WebGPU render system driver.
type Driver struct {
	mu sync.Mutex

	// GPU resources (go-webgpu/webgpu)
	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	info      rendersys.RendererInfo
	validator *rendersys.Validator
	closed    bool
}

var (
	_ rendersys.Driver          = (*Driver)(nil)
	_ rendersys.ValidatorSetter = (*Driver)(nil)
)

// Allocate initializes wgpu-native and opens a device on the high
// performance adapter. A platform context in desc is not shared.
func Allocate(desc *rendersys.Descriptor, report *rendersys.Report) (rendersys.Driver, error) {
	if desc != nil && desc.Context != nil {
		report.Printf("webgpu: platform context ignored")
	}

	if err := wgpu.Init(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLibraryNotFound, err)
	}

	instance, err := wgpu.CreateInstance(nil)
	if err != nil {
		return nil, fmt.Errorf("webgpu: instance creation failed: %w", err)
	}
	d := &Driver{instance: instance}

	adapter, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference: wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		d.release()
		return nil, fmt.Errorf("%w: %w", ErrNoGPU, err)
	}
	d.adapter = adapter
	d.info = rendererInfo(adapter)

	device, err := adapter.RequestDevice(nil)
	if err != nil {
		d.release()
		return nil, fmt.Errorf("webgpu: device creation failed: %w", err)
	}
	d.device = device

	queue := device.GetQueue()
	if queue == nil {
		d.release()
		return nil, fmt.Errorf("webgpu: queue retrieval failed")
	}
	d.queue = queue

	report.Printf("webgpu: adapter %s (%s)", d.info.DeviceName, d.info.VendorName)
	rendersys.Logger().Info("webgpu: device opened", "adapter", d.info.DeviceName)
	return d, nil
}

// rendererInfo describes the adapter. Missing adapter info leaves the
// device and vendor names empty.
func rendererInfo(adapter *wgpu.Adapter) rendersys.RendererInfo {
	ri := rendersys.RendererInfo{
		RendererName:        Name,
		ShadingLanguageName: rendersys.ShadingLanguageWGSL.String(),
	}
	info, err := adapter.GetInfo()
	if err != nil {
		return ri
	}
	ri.DeviceName = info.Device
	ri.VendorName = info.Vendor
	ri.ExtensionNames = []string{
		"backend:" + backendTypeToString(info.BackendType),
		"adapter:" + adapterTypeToString(info.AdapterType),
	}
	if info.Description != "" {
		ri.ExtensionNames = append(ri.ExtensionNames, "driver:"+info.Description)
	}
	return ri
}

// SetValidator implements rendersys.ValidatorSetter.
func (d *Driver) SetValidator(v *rendersys.Validator) {
	d.mu.Lock()
	d.validator = v
	d.mu.Unlock()
}

// QueryRendererDetails reports the adapter info and default limits.
func (d *Driver) QueryRendererDetails(info *rendersys.RendererInfo, caps *rendersys.RenderingCapabilities) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrClosed
	}
	if info != nil {
		*info = d.info
		info.ExtensionNames = append([]string(nil), d.info.ExtensionNames...)
	}
	if caps != nil {
		*caps = rendersys.RenderingCapabilities{
			ShadingLanguages: []rendersys.ShadingLanguage{rendersys.ShadingLanguageWGSL},
			TextureFormats: []gputypes.TextureFormat{
				gputypes.TextureFormatRGBA8Unorm,
				gputypes.TextureFormatBGRA8Unorm,
			},
			Features: rendersys.FeatureComputeShaders | rendersys.FeatureStorageBuffers,
			Limits:   rendersys.LimitsFromGPU(gputypes.DefaultLimits()),
		}
	}
	return nil
}

// CreateBuffer validates desc and returns ErrNotImplemented.
func (d *Driver) CreateBuffer(desc rendersys.BufferDescriptor, _ []byte) (rendersys.Buffer, error) {
	if err := d.check(); err != nil {
		return nil, err
	}
	if err := d.validator.AssertCreateBuffer(desc, gputypes.DefaultLimits().MaxBufferSize); err != nil {
		return nil, err
	}
	return nil, ErrNotImplemented
}

// CreateBufferArray validates buffers and returns ErrNotImplemented.
func (d *Driver) CreateBufferArray(buffers []rendersys.Buffer) (rendersys.BufferArray, error) {
	if err := d.check(); err != nil {
		return nil, err
	}
	if err := d.validator.AssertCreateBufferArray(len(buffers), buffers); err != nil {
		return nil, err
	}
	return nil, ErrNotImplemented
}

// CreateShader validates desc and returns ErrNotImplemented.
func (d *Driver) CreateShader(desc rendersys.ShaderDescriptor) (rendersys.Shader, error) {
	if err := d.check(); err != nil {
		return nil, err
	}
	if err := d.validator.AssertCreateShader(desc); err != nil {
		return nil, err
	}
	return nil, ErrNotImplemented
}

// Release returns ErrNotImplemented; the driver never creates resources.
func (d *Driver) Release(rendersys.Resource) error {
	if err := d.check(); err != nil {
		return err
	}
	return ErrNotImplemented
}

// Close releases the device chain. Closing twice is a no-op.
func (d *Driver) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil
	}
	d.closed = true
	d.release()
	rendersys.Logger().Debug("webgpu: driver closed")
	return nil
}

func (d *Driver) check() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrClosed
	}
	return nil
}

// release frees resources in reverse order of creation.
func (d *Driver) release() {
	if d.queue != nil {
		d.queue.Release()
		d.queue = nil
	}
	if d.device != nil {
		d.device.Release()
		d.device = nil
	}
	if d.adapter != nil {
		d.adapter.Release()
		d.adapter = nil
	}
	if d.instance != nil {
		d.instance.Release()
		d.instance = nil
	}
}

// backendTypeToString converts wgpu backend type to string.
func backendTypeToString(bt wgpu.BackendType) string {
	switch bt {
	case wgpu.BackendTypeNull:
		return "Null"
	case wgpu.BackendTypeWebGPU:
		return "WebGPU"
	case wgpu.BackendTypeD3D11:
		return "D3D11"
	case wgpu.BackendTypeD3D12:
		return "D3D12"
	case wgpu.BackendTypeMetal:
		return "Metal"
	case wgpu.BackendTypeVulkan:
		return "Vulkan"
	case wgpu.BackendTypeOpenGL:
		return "OpenGL"
	case wgpu.BackendTypeOpenGLES:
		return "OpenGLES"
	default:
		return "Unknown"
	}
}

// adapterTypeToString converts wgpu adapter type to string.
func adapterTypeToString(at wgpu.AdapterType) string {
	switch at {
	case wgpu.AdapterTypeDiscreteGPU:
		return "DiscreteGPU"
	case wgpu.AdapterTypeIntegratedGPU:
		return "IntegratedGPU"
	case wgpu.AdapterTypeCPU:
		return "CPU"
	default:
		return "Unknown"
	}
}
