// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rendersys

import (
	"fmt"
	"slices"
	"sync"
)

// Entry holds the entry points of a module compiled into the binary.
type Entry struct {
	BuildID      func() string
	Allocate     AllocateFunc
	RendererName func() string
	RendererID   func() int
}

// static module table, in registration order.
var (
	staticMu    sync.RWMutex
	staticNames []string
	staticTable = make(map[string]Entry)
)

// RegisterModule adds a compiled-in module to the static table.
// This is typically called from init() functions in backend packages:
//
//	func init() {
//	    rendersys.RegisterModule("Null", rendersys.Entry{...})
//	}
//
// Registering a name twice replaces the earlier entry and keeps its
// position.
func RegisterModule(name string, e Entry) {
	staticMu.Lock()
	defer staticMu.Unlock()
	if _, ok := staticTable[name]; !ok {
		staticNames = append(staticNames, name)
	}
	staticTable[name] = e
}

// UnregisterModule removes a module from the static table.
// This is useful for testing.
func UnregisterModule(name string) {
	staticMu.Lock()
	defer staticMu.Unlock()
	if _, ok := staticTable[name]; !ok {
		return
	}
	delete(staticTable, name)
	staticNames = slices.DeleteFunc(staticNames, func(n string) bool { return n == name })
}

// StaticModules returns the names in the static table in registration order.
func StaticModules() []string {
	staticMu.RLock()
	defer staticMu.RUnlock()
	return slices.Clone(staticNames)
}

// StaticLoader opens modules from the static table.
type StaticLoader struct{}

// FindModules returns StaticModules.
func (StaticLoader) FindModules() []string {
	return StaticModules()
}

// Open returns the static entry registered under name.
func (StaticLoader) Open(name string) (Library, error) {
	staticMu.RLock()
	e, ok := staticTable[name]
	staticMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q is not compiled in", ErrModuleNotFound, name)
	}
	return staticLibrary(e), nil
}

// staticLibrary exposes an Entry through the Library interface. Unset
// fields behave like missing symbols.
type staticLibrary Entry

func (l staticLibrary) Lookup(symbol string) (any, error) {
	var sym any
	switch symbol {
	case SymbolBuildID:
		if l.BuildID != nil {
			sym = l.BuildID
		}
	case SymbolAllocate:
		if l.Allocate != nil {
			sym = l.Allocate
		}
	case SymbolRendererName:
		if l.RendererName != nil {
			sym = l.RendererName
		}
	case SymbolRendererID:
		if l.RendererID != nil {
			sym = l.RendererID
		}
	}
	if sym == nil {
		return nil, fmt.Errorf("%w: %s", ErrSymbolNotFound, symbol)
	}
	return sym, nil
}

func (staticLibrary) Close() error { return nil }
