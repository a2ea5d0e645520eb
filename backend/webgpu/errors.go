// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package webgpu

import "errors"

// Package errors for the WebGPU module.
var (
	// ErrNotCompiled is returned by Allocate in builds without the rust tag.
	ErrNotCompiled = errors.New("webgpu: module built without the rust tag")

	// ErrLibraryNotFound is returned when wgpu-native library is not found.
	ErrLibraryNotFound = errors.New("webgpu: wgpu-native library not found")

	// ErrNoGPU is returned when no GPU adapter is available.
	ErrNoGPU = errors.New("webgpu: no GPU adapter available")

	// ErrNotImplemented is returned for operations not yet implemented.
	ErrNotImplemented = errors.New("webgpu: operation not implemented")

	// ErrClosed is returned after Close.
	ErrClosed = errors.New("webgpu: driver closed")
)
