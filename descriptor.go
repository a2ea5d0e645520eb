// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rendersys

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// Flags are render system creation flags.
type Flags uint32

const (
	// FlagDebugBreakOnError makes the attached Debugger break on the first
	// error posted by the debug layer. It has no effect without a Debugger.
	FlagDebugBreakOnError Flags = 1 << iota
)

// Debugger receives errors and warnings from the debug layer.
//
// A Debugger is owned by the caller and must outlive every RenderSystem
// created with it.
type Debugger interface {
	// SetBreakOnError enables or disables breaking on the next error.
	SetBreakOnError(enable bool)

	// BreakOnError reports whether breaking on error is enabled.
	BreakOnError() bool

	// PostError records an error detected by the debug layer.
	PostError(err error)

	// PostWarning records a non-fatal problem.
	PostWarning(msg string)
}

// Descriptor selects and configures the render system module to load.
//
// Load works on a private copy; the caller's value is never modified.
type Descriptor struct {
	// ModuleName is the exact, case-sensitive module name (e.g. "Vulkan").
	ModuleName string

	// Debugger requests the debug layer when non-nil.
	Debugger Debugger

	// Context is an optional host GPU context. Backends that can share a
	// device (see backend/vulkan) use it instead of opening their own.
	Context gpucontext.DeviceProvider

	// Flags are creation flags.
	Flags Flags
}

// Has reports whether all flags in f2 are set.
func (f Flags) Has(f2 Flags) bool {
	return f&f2 == f2
}

// NullContext is a gpucontext.DeviceProvider without a device.
// Backends treat it the same as a nil Context.
type NullContext struct{}

// Device returns nil.
func (NullContext) Device() gpucontext.Device { return nil }

// Queue returns nil.
func (NullContext) Queue() gpucontext.Queue { return nil }

// Adapter returns nil.
func (NullContext) Adapter() gpucontext.Adapter { return nil }

// AdapterInfo returns an empty gpucontext.AdapterInfo.
func (NullContext) AdapterInfo() gpucontext.AdapterInfo { return gpucontext.AdapterInfo{} }

// SurfaceFormat returns gputypes.TextureFormatUndefined.
func (NullContext) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatUndefined
}

var _ gpucontext.DeviceProvider = NullContext{}
