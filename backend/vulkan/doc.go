// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package vulkan provides the "Vulkan" render system module.
//
// The module is built on the pure Go Vulkan HAL of gogpu/wgpu and needs no
// CGO. Importing the package registers the module:
//
//	import _ "github.com/gogpu/rendersys/backend/vulkan"
//
// # Devices
//
// When [rendersys.Descriptor.Context] exposes HAL types through
//
//	HalDevice() any // hal.Device
//	HalQueue() any  // hal.Queue
//
// the driver shares that device and never destroys it. Otherwise it opens a
// standalone device on the first discrete or integrated adapter and owns it
// until Close.
//
// Shaders are compiled from WGSL with naga, or passed through as SPIR-V.
//
// Build with the nogpu tag to leave the module out.
package vulkan
