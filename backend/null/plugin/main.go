// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Command plugin builds the Null module as a Go plugin:
//
//	go build -buildmode=plugin -o rendersys_Null.so ./backend/null/plugin
//
// The plugin must be built with the same toolchain, flags and rendersys
// version as the host, otherwise Load fails with ErrBuildMismatch (or the
// Go runtime refuses to open it).
package main

import (
	"github.com/gogpu/rendersys"
	"github.com/gogpu/rendersys/backend/null"
)

// RenderSystemBuildID returns the build ID of the plugin.
func RenderSystemBuildID() string { return rendersys.BuildID() }

// AllocRenderSystem creates a Null driver.
func AllocRenderSystem(desc *rendersys.Descriptor, report *rendersys.Report) (rendersys.Driver, error) {
	return null.Allocate(desc, report)
}

// RenderSystemName returns the renderer name.
func RenderSystemName() string { return null.RendererName() }

// RenderSystemID returns the renderer id.
func RenderSystemID() int { return null.RendererID() }

func main() {}
