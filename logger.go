// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rendersys

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// Log levels used by rendersys:
//   - [slog.LevelDebug]: load and unload steps (build ID check, allocation)
//   - [slog.LevelInfo]: render systems loaded and unloaded, adapter selected
//   - [slog.LevelWarn]: debug layer unavailable, modules leaked at shutdown
//   - [slog.LevelError]: failed loads, errors caught by the debug layer
//
// Records about one module carry a "module" attribute.

type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var (
	silent    = slog.New(nopHandler{})
	loggerPtr atomic.Pointer[slog.Logger]
)

func init() {
	loggerPtr.Store(silent)
}

// SetLogger sets the logger shared by the host, the debug layer and the
// bundled backends. nil restores the silent default.
//
//	rendersys.SetLogger(slog.New(slog.NewJSONHandler(os.Stderr, nil)))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = silent
	}
	loggerPtr.Store(l)
}

// Logger returns the logger set with SetLogger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// moduleLogger returns Logger() scoped to one module.
func moduleLogger(name string) *slog.Logger {
	return Logger().With("module", name)
}
