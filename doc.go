// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package rendersys loads interchangeable render system modules by name.
//
// # Overview
//
// A render system module is an independently built backend (Null, Vulkan,
// WebGPU, ...) that implements the [Driver] interface. The host resolves a
// module through a [Loader], checks that the module was built with the same
// toolchain and configuration as the host, lets the module allocate a
// driver, optionally wraps it in decorator layers (such as the debug layer),
// and hands back a [RenderSystem].
//
// # Quick Start
//
//	import (
//		"github.com/gogpu/rendersys"
//		_ "github.com/gogpu/rendersys/backend/null" // registers "Null"
//	)
//
//	var report rendersys.Report
//	rs, err := rendersys.Load(rendersys.Descriptor{ModuleName: "Null"}, &report)
//	if err != nil {
//		log.Fatal(report.Text())
//	}
//	defer rendersys.Unload(rs)
//
//	info, _ := rs.RendererInfo()
//	fmt.Println(rs.Name(), info.DeviceName)
//
// # Module Sources
//
// Modules come from two places:
//   - Static modules compiled into the binary. Backend packages register
//     them from init() via [RegisterModule]; a blank import enables one.
//   - Go plugins named rendersys_<Name>.so found in the plugin search paths
//     (RENDERSYS_MODULE_PATH and the executable directory).
//
// Both expose the same four entry points ([SymbolBuildID], [SymbolAllocate],
// [SymbolRendererName], [SymbolRendererID]).
//
// # Debug Layer
//
// Setting [Descriptor.Debugger] asks for the debug layer. It is available
// when the debuglayer package is linked into the binary:
//
//	import _ "github.com/gogpu/rendersys/debuglayer"
//
// Without it, Load still succeeds and reports [ErrDegradedCapability] as a
// warning.
//
// # Lifetime
//
// A RenderSystem must be retired with [Unload] (or [Host.Unload]). The
// driver chain is closed first and the owning module is released afterwards.
// Call [Shutdown] when the process exits to report modules that were never
// released.
package rendersys

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// APIVersion is the driver interface revision. Modules built against a
	// different revision have a different build ID.
	APIVersion = 1
)
