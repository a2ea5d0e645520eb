// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rendersys

import "sync"

var (
	defaultHostOnce sync.Once
	defaultHost     *Host
)

// Default returns the process-wide host, created on first use. It loads
// compiled-in modules first and Go plugins from DefaultSearchPaths second,
// and uses the debug layer registered with RegisterDebugLayer.
func Default() *Host {
	defaultHostOnce.Do(func() {
		defaultHost = NewHost()
	})
	return defaultHost
}

// Load creates a RenderSystem with the default host. See Host.Load.
func Load(desc Descriptor, report *Report) (*RenderSystem, error) {
	return Default().Load(desc, report)
}

// Unload retires a RenderSystem created by Load. See Host.Unload.
func Unload(rs *RenderSystem) error {
	return Default().Unload(rs)
}

// FindModules returns the modules the default host can load.
func FindModules() []string {
	return Default().FindModules()
}

// Shutdown tears down the default host's registry. Call it from main,
// typically deferred, after every RenderSystem has been unloaded; modules
// that are still in use are logged and returned as ErrLeak errors.
func Shutdown() error {
	return Default().Shutdown()
}
