// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package null provides the "Null" render system module.
//
// The Null driver keeps resources in host memory and never touches a GPU.
// It is always available and is used to exercise the module host, the
// debug layer and resource validation:
//
//	import _ "github.com/gogpu/rendersys/backend/null" // registers "Null"
//
// The plugin subdirectory builds the same module as a Go plugin
// (rendersys_Null.so).
package null
