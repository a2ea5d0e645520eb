// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package debuglayer provides the rendersys debug layer.
//
// Importing the package registers the layer with rendersys:
//
//	import _ "github.com/gogpu/rendersys/debuglayer"
//
// A RenderSystem loaded with a non-nil Descriptor.Debugger is then wrapped
// in a Layer that validates every resource descriptor, tracks live
// resources, detects double releases and reports leaks when the render
// system is unloaded. Problems are posted to the Debugger and logged through
// rendersys.Logger().
//
// Debugger is a ready-made rendersys.Debugger that records what it receives
// and breaks (panics, or calls OnBreak) on the first error when break on
// error is enabled.
package debuglayer

import "github.com/gogpu/rendersys"

func init() {
	rendersys.RegisterDebugLayer(Wrap)
}
