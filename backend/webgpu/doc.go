// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package webgpu provides the "WebGPU" render system module on top of
// wgpu-native through go-webgpu/webgpu.
//
// The module requires the wgpu-native shared library and is only functional
// when built with the rust tag:
//
//	go build -tags rust ./...
//
// Without the tag the module is still registered so that it shows up in
// module listings, but allocation fails with [ErrNotCompiled].
//
// The driver reports adapter details and capabilities. Resource creation
// validates descriptors and returns [ErrNotImplemented].
package webgpu
