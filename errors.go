// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rendersys

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Every error returned by Load matches exactly one of them
// with errors.Is.
var (
	// ErrModuleLoad is returned when a module name cannot be resolved to a
	// loadable unit, or the unit lacks a required entry point.
	ErrModuleLoad = errors.New("rendersys: module load failed")

	// ErrBuildMismatch is returned when a module was built with a different
	// toolchain or configuration than the host.
	ErrBuildMismatch = errors.New("rendersys: build ID mismatch")

	// ErrAllocation is returned when a module fails to allocate its driver.
	ErrAllocation = errors.New("rendersys: render system allocation failed")

	// ErrDegradedCapability marks a requested capability that the host does
	// not provide. It is reported as a warning, never returned from Load.
	ErrDegradedCapability = errors.New("rendersys: capability not available")

	// ErrInvalidArgument is returned by descriptor validation.
	ErrInvalidArgument = errors.New("rendersys: invalid argument")

	// ErrLeak is reported for modules still loaded at shutdown.
	ErrLeak = errors.New("rendersys: module still loaded at shutdown")

	// ErrPluginsUnsupported is returned by the plugin loader on builds
	// without Go plugin support.
	ErrPluginsUnsupported = errors.New("rendersys: plugins not supported on this build")

	// ErrSymbolNotFound is returned by a Library when it has no entry point
	// with the requested name.
	ErrSymbolNotFound = errors.New("rendersys: symbol not found")

	// ErrReleased is returned when a retired RenderSystem is used.
	ErrReleased = errors.New("rendersys: render system already unloaded")
)

// ModuleError describes a failure involving one module.
type ModuleError struct {
	Kind   error  // one of the Err* kinds above
	Module string // requested module name
	Detail string // human readable detail
	Err    error  // host-owned cause, may be nil
}

// Error implements the error interface.
func (e *ModuleError) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	if e.Module != "" {
		fmt.Fprintf(&b, " in module %q", e.Module)
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap returns the error kind and the cause.
func (e *ModuleError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func moduleErrorf(kind error, module string, cause error, format string, args ...any) *ModuleError {
	return &ModuleError{
		Kind:   kind,
		Module: module,
		Detail: fmt.Sprintf(format, args...),
		Err:    cause,
	}
}

// ValidationError is returned by the descriptor validation helpers.
type ValidationError struct {
	Op    string // validated operation, e.g. "CreateBuffer"
	Index int    // offending array element, -1 when not applicable
	Msg   string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return "rendersys: " + e.Op + ": " + e.Msg
}

// Is makes ValidationError match ErrInvalidArgument.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// boundaryError re-creates an error raised inside a module as a host-owned
// value that carries only the message text.
func boundaryError(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	if msg == "" {
		msg = unspecifiedError
	}
	return errors.New(msg)
}
