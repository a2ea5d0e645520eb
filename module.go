// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rendersys

import (
	"errors"
	"fmt"
)

// Entry point symbols every module exports.
const (
	// SymbolBuildID is a func() string returning the module's BuildID.
	SymbolBuildID = "RenderSystemBuildID"

	// SymbolAllocate is an AllocateFunc creating the module's Driver.
	SymbolAllocate = "AllocRenderSystem"

	// SymbolRendererName is a func() string returning the renderer name.
	SymbolRendererName = "RenderSystemName"

	// SymbolRendererID is a func() int returning one of the RendererID
	// constants.
	SymbolRendererID = "RenderSystemID"
)

// AllocateFunc creates a module's driver. The descriptor is the host's
// private copy; report receives free-form diagnostics.
type AllocateFunc func(desc *Descriptor, report *Report) (Driver, error)

// module is a resolved module. It is owned by a Registry.
type module struct {
	name string
	lib  Library

	buildID      func() string
	alloc        AllocateFunc
	rendererName func() string
	rendererID   func() int
}

// openModule opens name through loader and binds its entry points.
func openModule(loader Loader, name string) (*module, error) {
	lib, err := loader.Open(name)
	if err != nil {
		return nil, moduleErrorf(ErrModuleLoad, name, err, "cannot open module")
	}

	m := &module{name: name, lib: lib}
	if err := m.bind(); err != nil {
		_ = lib.Close()
		return nil, err
	}
	return m, nil
}

func (m *module) bind() error {
	sym, err := m.lookup(SymbolBuildID)
	if err != nil {
		return err
	}
	if m.buildID, err = stringFunc(m.name, SymbolBuildID, sym); err != nil {
		return err
	}

	if sym, err = m.lookup(SymbolAllocate); err != nil {
		return err
	}
	switch f := sym.(type) {
	case AllocateFunc:
		m.alloc = f
	case func(*Descriptor, *Report) (Driver, error):
		m.alloc = f
	default:
		return badSymbol(m.name, SymbolAllocate, sym)
	}

	if sym, err = m.lookup(SymbolRendererName); err != nil {
		return err
	}
	if m.rendererName, err = stringFunc(m.name, SymbolRendererName, sym); err != nil {
		return err
	}

	if sym, err = m.lookup(SymbolRendererID); err != nil {
		return err
	}
	f, ok := sym.(func() int)
	if !ok {
		return badSymbol(m.name, SymbolRendererID, sym)
	}
	m.rendererID = f
	return nil
}

func (m *module) lookup(symbol string) (any, error) {
	sym, err := m.lib.Lookup(symbol)
	if err != nil {
		return nil, moduleErrorf(ErrModuleLoad, m.name, err, "missing entry point %s", symbol)
	}
	if sym == nil {
		return nil, moduleErrorf(ErrModuleLoad, m.name, ErrSymbolNotFound, "missing entry point %s", symbol)
	}
	return sym, nil
}

func stringFunc(name, symbol string, sym any) (func() string, error) {
	f, ok := sym.(func() string)
	if !ok {
		return nil, badSymbol(name, symbol, sym)
	}
	return f, nil
}

func badSymbol(name, symbol string, sym any) error {
	return moduleErrorf(ErrModuleLoad, name, nil, "entry point %s has unexpected type %T", symbol, sym)
}

// close releases the underlying library.
func (m *module) close() error {
	if m.lib == nil {
		return nil
	}
	err := m.lib.Close()
	m.lib = nil
	return err
}

// moduleBuildID returns the build ID the module was compiled with.
func (m *module) moduleBuildID() (id string, err error) {
	defer recoverAs(&err, ErrModuleLoad, m.name, SymbolBuildID)
	return m.buildID(), nil
}

// identity returns the renderer name and id reported by the module.
func (m *module) identity() (name string, id int, err error) {
	defer recoverAs(&err, ErrAllocation, m.name, SymbolRendererName)
	return m.rendererName(), m.rendererID(), nil
}

// allocate calls the module's allocate entry point. Panics and module
// errors come back as host-owned ErrAllocation errors.
func (m *module) allocate(desc *Descriptor, report *Report) (drv Driver, err error) {
	defer func() {
		if err != nil {
			drv = nil
		}
	}()
	defer recoverAs(&err, ErrAllocation, m.name, SymbolAllocate)

	drv, err = m.alloc(desc, report)
	if err != nil {
		if !isNil(drv) {
			_ = closeDriver(drv, m.name)
		}
		return nil, moduleErrorf(ErrAllocation, m.name, boundaryError(err), "%s failed", SymbolAllocate)
	}
	if isNil(drv) {
		return nil, moduleErrorf(ErrAllocation, m.name, nil, "%s returned no driver", SymbolAllocate)
	}
	return drv, nil
}

// setValidator hands v to drv when the driver accepts one. A panic comes
// back as an ErrAllocation error.
func (m *module) setValidator(drv Driver, v *Validator) (err error) {
	vs, ok := drv.(ValidatorSetter)
	if !ok {
		return nil
	}
	defer recoverAs(&err, ErrAllocation, m.name, "SetValidator")
	vs.SetValidator(v)
	return nil
}

// recoverAs turns a panic raised by a module entry point into a
// ModuleError of the given kind. It must be deferred directly.
func recoverAs(errp *error, kind error, name, symbol string) {
	r := recover()
	if r == nil {
		return
	}
	var cause error
	switch v := r.(type) {
	case error:
		cause = boundaryError(v)
	default:
		cause = errors.New(fmt.Sprint(v))
	}
	*errp = moduleErrorf(kind, name, cause, "%s panicked", symbol)
}

// closeDriver closes a driver chain, turning a panic or module error into a
// host-owned error.
func closeDriver(d Driver, name string) (err error) {
	defer recoverAs(&err, ErrAllocation, name, "Close")
	return boundaryError(d.Close())
}
