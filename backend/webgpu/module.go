// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package webgpu

import "github.com/gogpu/rendersys"

// Name is the module name.
const Name = "WebGPU"

// init registers the WebGPU module on package import.
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

// RendererName returns "WebGPU".
func RendererName() string { return Name }

// RendererID returns rendersys.RendererIDWebGPU.
func RendererID() int { return rendersys.RendererIDWebGPU }
