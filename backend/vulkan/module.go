// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package vulkan

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	_ "github.com/gogpu/wgpu/hal/vulkan" // registers the Vulkan HAL backend

	"github.com/gogpu/rendersys"
)

// Name is the module name.
const Name = "Vulkan"

// Errors returned while allocating the driver.
var (
	// ErrUnavailable is returned when the Vulkan HAL backend is not
	// registered or no instance can be created.
	ErrUnavailable = errors.New("vulkan: backend not available")

	// ErrNoAdapter is returned when no GPU adapter is found.
	ErrNoAdapter = errors.New("vulkan: no GPU adapters found")

	// ErrContext is returned when Descriptor.Context claims to share HAL
	// types but returns something else.
	ErrContext = errors.New("vulkan: context does not provide a HAL device")
)

// init registers the Vulkan module on package import.
func init() {
	rendersys.RegisterModule(Name, Entry)
}

// Entry holds the module entry points.
var Entry = rendersys.Entry{
	BuildID:      rendersys.BuildID,
	Allocate:     Allocate,
	RendererName: RendererName,
	RendererID:   RendererID,
}

// RendererName returns "Vulkan".
func RendererName() string { return Name }

// RendererID returns rendersys.RendererIDVulkan.
func RendererID() int { return rendersys.RendererIDVulkan }

// halProvider is implemented by contexts that share a HAL device.
type halProvider interface {
	HalDevice() any
	HalQueue() any
}

// Allocate creates a Vulkan driver, sharing the device of desc.Context when
// it exposes one.
func Allocate(desc *rendersys.Descriptor, report *rendersys.Report) (rendersys.Driver, error) {
	if desc != nil && desc.Context != nil {
		if hp, ok := desc.Context.(halProvider); ok {
			d, err := shared(hp)
			if err != nil {
				return nil, err
			}
			report.Printf("vulkan: using shared device")
			return d, nil
		}
		report.Printf("vulkan: context has no HAL device, opening a standalone device")
	}

	d, err := standalone()
	if err != nil {
		return nil, err
	}
	report.Printf("vulkan: adapter %s (%s)", d.adapterName, d.deviceType)
	return d, nil
}

func shared(hp halProvider) (*Driver, error) {
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrContext)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrContext)
	}
	d := newDriver(device, queue)
	d.adapterName = "shared"
	return d, nil
}

// standalone creates an owned device on the preferred adapter.
func standalone() (*Driver, error) {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return nil, ErrUnavailable
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("%w: create instance: %w", ErrUnavailable, err)
	}

	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, ErrNoAdapter
	}
	selected := pickAdapter(adapters)

	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("vulkan: open device: %w", err)
	}

	d := newDriver(openDev.Device, openDev.Queue)
	d.instance = instance
	d.owned = true
	d.adapterName = selected.Info.Name
	d.deviceType = fmt.Sprint(selected.Info.DeviceType)
	rendersys.Logger().Info("vulkan: device opened", "adapter", selected.Info.Name)
	return d, nil
}

// pickAdapter prefers a discrete or integrated GPU over software adapters.
func pickAdapter(adapters []hal.ExposedAdapter) *hal.ExposedAdapter {
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			return &adapters[i]
		}
	}
	return &adapters[0]
}
