// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rendersys

// HostOption configures a Host during creation.
//
// Example:
//
//	// Compiled-in modules only, no debug layer
//	h := rendersys.NewHost(
//		rendersys.WithLoader(rendersys.StaticLoader{}),
//		rendersys.WithDebugLayer(nil),
//	)
type HostOption func(*hostOptions)

// hostOptions holds optional configuration for Host creation.
type hostOptions struct {
	loader        Loader
	registry      *Registry
	buildID       string
	debugLayer    LayerFunc
	debugLayerSet bool
	layers        []LayerFunc
}

// defaultHostOptions returns the default host options.
func defaultHostOptions() hostOptions {
	return hostOptions{
		loader: ChainLoader{StaticLoader{}, PluginLoader{}},
	}
}

// WithLoader sets the loader used to open modules. It is ignored when
// WithRegistry is also given.
func WithLoader(l Loader) HostOption {
	return func(o *hostOptions) {
		o.loader = l
	}
}

// WithRegistry makes the host share an existing registry.
func WithRegistry(r *Registry) HostOption {
	return func(o *hostOptions) {
		o.registry = r
	}
}

// WithBuildID overrides the build ID modules are checked against.
// Defaults to BuildID().
func WithBuildID(id string) HostOption {
	return func(o *hostOptions) {
		o.buildID = id
	}
}

// WithDebugLayer sets the layer applied when a Descriptor carries a
// Debugger. Pass nil to disable the debug layer; by default the layer
// registered with RegisterDebugLayer is used.
func WithDebugLayer(f LayerFunc) HostOption {
	return func(o *hostOptions) {
		o.debugLayer = f
		o.debugLayerSet = true
	}
}

// WithLayer adds a layer applied to every driver, before the debug layer.
// Layers are applied in the order given, so the first one is innermost.
func WithLayer(f LayerFunc) HostOption {
	return func(o *hostOptions) {
		if f != nil {
			o.layers = append(o.layers, f)
		}
	}
}
