// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build cgo && (linux || darwin || freebsd)

package rendersys

import (
	"errors"
	"fmt"
	"plugin"
)

const pluginsSupported = true

// pluginLibrary is an opened Go plugin.
type pluginLibrary struct {
	path string
	p    *plugin.Plugin
}

func openPlugin(path string) (Library, error) {
	p, err := plugin.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load plugin %s: %w", path, err)
	}
	Logger().Debug("rendersys: plugin opened", "path", path)
	return &pluginLibrary{path: path, p: p}, nil
}

func (l *pluginLibrary) Lookup(symbol string) (any, error) {
	if l.p == nil {
		return nil, errors.New("rendersys: plugin closed")
	}
	sym, err := l.p.Lookup(symbol)
	if err != nil {
		return nil, fmt.Errorf("%w: %s in %s: %w", ErrSymbolNotFound, symbol, l.path, err)
	}
	return sym, nil
}

// Close drops the plugin handle. The runtime keeps the code loaded.
func (l *pluginLibrary) Close() error {
	l.p = nil
	return nil
}
