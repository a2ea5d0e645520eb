// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rendersys

import (
	"log/slog"
	"sync"
)

// LayerFunc wraps a driver in a decorator. The returned driver owns inner
// and must close it from its own Close. Returning inner unchanged is
// allowed.
type LayerFunc func(inner Driver, cfg LayerConfig) Driver

// LayerConfig is passed to a LayerFunc when it is applied.
type LayerConfig struct {
	// Module is the name of the module that allocated the inner driver.
	Module string

	// Debugger is the caller's debugger, nil for always-on layers.
	Debugger Debugger

	// BreakOnError is true when FlagDebugBreakOnError was requested.
	BreakOnError bool

	// Validator is bound to the report of the RenderSystem being built.
	Validator *Validator

	// Logger is the package logger at the time the layer is applied.
	Logger *slog.Logger
}

var (
	debugLayerMu sync.RWMutex
	debugLayer   LayerFunc
)

// RegisterDebugLayer installs the debug layer used by hosts that were not
// given one explicitly. The debuglayer package calls it from init:
//
//	import _ "github.com/gogpu/rendersys/debuglayer"
//
// Only one debug layer can be registered. Subsequent calls replace the
// previous one; nil removes it.
func RegisterDebugLayer(f LayerFunc) {
	debugLayerMu.Lock()
	debugLayer = f
	debugLayerMu.Unlock()
}

// DebugLayer returns the registered debug layer, or nil if none.
func DebugLayer() LayerFunc {
	debugLayerMu.RLock()
	f := debugLayer
	debugLayerMu.RUnlock()
	return f
}

// applyLayer wraps d with f. A nil result keeps d.
func applyLayer(f LayerFunc, d Driver, cfg LayerConfig) Driver {
	if f == nil {
		return d
	}
	if wrapped := f(d, cfg); wrapped != nil {
		return wrapped
	}
	return d
}
