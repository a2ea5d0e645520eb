// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !rust

package webgpu

import "github.com/gogpu/rendersys"

// Allocate always fails without the rust tag.
func Allocate(*rendersys.Descriptor, *rendersys.Report) (rendersys.Driver, error) {
	return nil, ErrNotCompiled
}
