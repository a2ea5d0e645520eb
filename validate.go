// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rendersys

import (
	"fmt"
	"reflect"
	"sync"
)

// Validator checks resource descriptors before a backend creates native
// objects. Every failed check resets the bound report with the failure
// message and returns a *ValidationError. The RenderSystem stays usable.
//
// A nil *Validator checks without reporting.
type Validator struct {
	report *Report
	mu     sync.Locker // guards report when shared with a RenderSystem
}

// NewValidator returns a validator that reports into report.
func NewValidator(report *Report) *Validator {
	return &Validator{report: report}
}

// AssertCreateBuffer checks that desc.Size does not exceed maxSize and that
// desc.BindFlags only contains flags from ValidBufferBindFlags.
func (v *Validator) AssertCreateBuffer(desc BufferDescriptor, maxSize uint64) error {
	if desc.Size > maxSize {
		return v.fail("CreateBuffer", -1,
			"buffer descriptor with size of 0x%016X exceeded limit of 0x%016X", desc.Size, maxSize)
	}
	if desc.BindFlags&^ValidBufferBindFlags != 0 {
		return v.fail("CreateBuffer", -1,
			"buffer descriptor with invalid binding flags 0x%08X", uint32(desc.BindFlags))
	}
	return nil
}

// AssertCreateBufferArray checks the first count elements of buffers.
func (v *Validator) AssertCreateBufferArray(count int, buffers []Buffer) error {
	var resources []Resource
	if buffers != nil {
		resources = make([]Resource, len(buffers))
		for i, b := range buffers {
			if !isNil(b) {
				resources[i] = b
			}
		}
	}
	return v.assertResourceArray("CreateBufferArray", "buffer", count, resources)
}

// AssertCreateResourceArray checks a homogeneous resource array: count must
// be non-zero, resources must be non-nil and hold at least count elements,
// and none of the first count elements may be nil.
func (v *Validator) AssertCreateResourceArray(kind string, count int, resources []Resource) error {
	return v.assertResourceArray("CreateResourceArray", kind, count, resources)
}

func (v *Validator) assertResourceArray(op, kind string, count int, resources []Resource) error {
	if count <= 0 {
		return v.fail(op, -1, "cannot create %s array with zero elements", kind)
	}
	if resources == nil {
		return v.fail(op, -1, "cannot create %s array with null pointer for array", kind)
	}
	if count > len(resources) {
		return v.fail(op, -1, "cannot create %s array of %d elements from %d", kind, count, len(resources))
	}
	for i := range count {
		if isNil(resources[i]) {
			return v.fail(op, i, "cannot create %s array with null pointer for array element [%d]", kind, i)
		}
	}
	return nil
}

// AssertCreateShader checks that desc has a source and that a binary
// source has a non-zero size.
func (v *Validator) AssertCreateShader(desc ShaderDescriptor) error {
	if desc.Source == nil {
		return v.fail("CreateShader", -1, "cannot create shader with <source> being a null pointer")
	}
	if desc.SourceType == ShaderSourceBinary && desc.SourceSize == 0 {
		return v.fail("CreateShader", -1, "cannot create shader from binary buffer with <sourceSize> being zero")
	}
	return nil
}

func (v *Validator) fail(op string, index int, format string, args ...any) error {
	err := &ValidationError{Op: op, Index: index, Msg: fmt.Sprintf(format, args...)}
	if v != nil {
		if v.mu != nil {
			v.mu.Lock()
			defer v.mu.Unlock()
		}
		v.report.Reset(err.Msg, true)
	}
	return err
}

// isNil reports whether x is nil or an interface holding a nil pointer.
func isNil(x any) bool {
	if x == nil {
		return true
	}
	switch rv := reflect.ValueOf(x); rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
