// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rendersys

import (
	"errors"
	"fmt"
)

// Library is an opened module unit.
type Library interface {
	// Lookup returns the entry point with the given name. It returns an
	// error wrapping ErrSymbolNotFound when the symbol does not exist.
	Lookup(symbol string) (any, error)

	// Close releases the unit. Entry points must not be called afterwards.
	Close() error
}

// Loader locates module units by name.
type Loader interface {
	// FindModules returns the names of the modules this loader can open.
	FindModules() []string

	// Open opens the module with the exact given name. It returns an error
	// wrapping ErrModuleNotFound if the loader does not know the name.
	Open(name string) (Library, error)
}

// ErrModuleNotFound is returned by a Loader that does not know a module.
var ErrModuleNotFound = errors.New("rendersys: module not found")

// ChainLoader tries loaders in order. The first loader that knows a name
// opens it.
type ChainLoader []Loader

// FindModules merges the module names of all loaders, keeping the first
// occurrence of each name.
func (c ChainLoader) FindModules() []string {
	seen := make(map[string]bool)
	var names []string
	for _, l := range c {
		for _, name := range l.FindModules() {
			if seen[name] {
				continue
			}
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

// Open opens name with the first loader that knows it. Errors other than
// ErrModuleNotFound stop the search.
func (c ChainLoader) Open(name string) (Library, error) {
	var errs []error
	for _, l := range c {
		lib, err := l.Open(name)
		if err == nil {
			return lib, nil
		}
		if !errors.Is(err, ErrModuleNotFound) && !errors.Is(err, ErrPluginsUnsupported) {
			return nil, err
		}
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrModuleNotFound, name)
	}
	return nil, fmt.Errorf("%w: %q: %w", ErrModuleNotFound, name, errors.Join(errs...))
}
