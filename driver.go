// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rendersys

// Driver is the interface every render system module implements.
//
// A Driver is created by the module's allocate entry point and is used
// through a RenderSystem. Decorators such as the debug layer are Drivers
// that own exactly one inner Driver and return it from Unwrap.
type Driver interface {
	// QueryRendererDetails fills the requested details. A nil argument
	// means the caller does not need that part. Implementations must not
	// retain the pointers.
	QueryRendererDetails(info *RendererInfo, caps *RenderingCapabilities) error

	// CreateBuffer creates a buffer. initialData may be nil; otherwise its
	// length must not exceed desc.Size.
	CreateBuffer(desc BufferDescriptor, initialData []byte) (Buffer, error)

	// CreateBufferArray groups existing buffers created by this driver.
	CreateBufferArray(buffers []Buffer) (BufferArray, error)

	// CreateShader creates a shader.
	CreateShader(desc ShaderDescriptor) (Shader, error)

	// Release destroys a resource created by this driver.
	Release(r Resource) error

	// Close destroys the driver. A decorator closes itself and then its
	// inner driver. The driver must not be used after Close.
	Close() error
}

// ValidatorSetter is implemented by drivers that validate descriptors with
// the Validator bound to their RenderSystem. Load calls SetValidator right
// after allocation, before any decorator is applied.
type ValidatorSetter interface {
	SetValidator(v *Validator)
}

// Decorator is implemented by drivers that wrap another driver.
type Decorator interface {
	Driver

	// Unwrap returns the wrapped driver.
	Unwrap() Driver
}

// Innermost follows Unwrap until it reaches the driver allocated by the
// module itself.
func Innermost(d Driver) Driver {
	for {
		dec, ok := d.(Decorator)
		if !ok {
			return d
		}
		inner := dec.Unwrap()
		if inner == nil {
			return d
		}
		d = inner
	}
}
