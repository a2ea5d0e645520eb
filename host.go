// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rendersys

import (
	"errors"
	"fmt"
)

// Host creates and retires RenderSystems. It owns (or shares) the Registry
// that keeps modules resident while they have live instances.
//
// A Host is safe for concurrent use.
type Host struct {
	registry *Registry
	buildID  string

	debugLayer    LayerFunc
	debugLayerSet bool
	layers        []LayerFunc
}

// NewHost creates a host.
//
// Example:
//
//	h := rendersys.NewHost()
//	rs, err := h.Load(rendersys.Descriptor{ModuleName: "Null"}, nil)
func NewHost(opts ...HostOption) *Host {
	o := defaultHostOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.registry == nil {
		o.registry = NewRegistry(o.loader)
	}
	if o.buildID == "" {
		o.buildID = BuildID()
	}
	return &Host{
		registry:      o.registry,
		buildID:       o.buildID,
		debugLayer:    o.debugLayer,
		debugLayerSet: o.debugLayerSet,
		layers:        o.layers,
	}
}

// Registry returns the host's module registry.
func (h *Host) Registry() *Registry {
	return h.registry
}

// FindModules returns the names of the modules the host can load.
func (h *Host) FindModules() []string {
	return h.registry.FindModules()
}

// Shutdown unloads every module of the host's registry and reports the
// ones that still had live instances. See Registry.Shutdown.
func (h *Host) Shutdown() error {
	return h.registry.Shutdown()
}

// Load creates a RenderSystem from the module named by desc.ModuleName.
//
// The module's build ID must equal the host's, otherwise nothing inside the
// module is called. On failure the message is also appended to report,
// which may be nil, and the returned error matches one of ErrModuleLoad,
// ErrBuildMismatch or ErrAllocation.
//
// A Debugger in desc requests the debug layer. If the host has none, the
// RenderSystem is returned undecorated and a warning mentioning
// ErrDegradedCapability is written to report.
func (h *Host) Load(desc Descriptor, report *Report) (*RenderSystem, error) {
	rs, err := h.load(desc, report)
	if err != nil {
		report.Errorf("%s", err.Error())
		moduleLogger(desc.ModuleName).Error("rendersys: load failed", "error", err)
		return nil, err
	}
	moduleLogger(desc.ModuleName).Info("rendersys: render system loaded", "renderer", rs.name, "id", rs.id)
	return rs, nil
}

func (h *Host) load(desc Descriptor, report *Report) (*RenderSystem, error) {
	if desc.ModuleName == "" {
		return nil, moduleErrorf(ErrModuleLoad, "", nil, "empty module name")
	}

	rs := newRenderSystem()
	ticket, err := h.registry.acquire(desc.ModuleName, func(m *module) error {
		log := moduleLogger(m.name)
		log.Debug("rendersys: checking build ID")
		got, err := m.moduleBuildID()
		if err != nil {
			return err
		}
		if got != h.buildID {
			return moduleErrorf(ErrBuildMismatch, m.name, nil, "expected %s, got %s", h.buildID, got)
		}

		// The module gets a private copy it may modify.
		local := desc
		log.Debug("rendersys: allocating driver")
		drv, err := m.allocate(&local, report)
		if err != nil {
			return err
		}

		name, id, err := m.identity()
		if err != nil {
			_ = closeDriver(drv, m.name)
			return err
		}

		if err := m.setValidator(drv, rs.validator); err != nil {
			_ = closeDriver(drv, m.name)
			return err
		}

		rs.name = name
		rs.id = id
		rs.driver = h.decorate(drv, m.name, desc, rs, report)
		return nil
	})
	if err != nil {
		return nil, err
	}

	rs.ticket = ticket
	rs.owner = h.registry
	return rs, nil
}

// decorate applies the always-on layers and, when requested, the debug
// layer. Layers are innermost first; the debug layer is outermost.
func (h *Host) decorate(d Driver, module string, desc Descriptor, rs *RenderSystem, report *Report) Driver {
	cfg := LayerConfig{
		Module:    module,
		Validator: rs.validator,
		Logger:    Logger(),
	}
	for _, f := range h.layers {
		d = applyLayer(f, d, cfg)
	}

	if desc.Debugger == nil {
		return d
	}

	layer := h.debugLayerFunc()
	if layer == nil {
		msg := fmt.Sprintf("warning: %s: debug layer requested for module %q but not linked into this binary",
			ErrDegradedCapability, module)
		report.Printf("%s", msg)
		rs.report.Printf("%s", msg)
		moduleLogger(module).Warn("rendersys: debug layer unavailable, continuing without it")
		return d
	}

	if desc.Flags.Has(FlagDebugBreakOnError) {
		desc.Debugger.SetBreakOnError(true)
	}
	cfg.Debugger = desc.Debugger
	cfg.BreakOnError = desc.Debugger.BreakOnError()
	moduleLogger(module).Debug("rendersys: applying debug layer", "breakOnError", cfg.BreakOnError)
	return applyLayer(layer, d, cfg)
}

func (h *Host) debugLayerFunc() LayerFunc {
	if h.debugLayerSet {
		return h.debugLayer
	}
	return DebugLayer()
}

// Unload retires rs. The driver chain is closed first, outermost decorator
// first; only then is the instance released from its registry, which may
// unload the module. Unload of nil or of an already retired RenderSystem
// does nothing.
func (h *Host) Unload(rs *RenderSystem) error {
	if rs == nil {
		return nil
	}
	owner := rs.owner
	ticket, cerr := rs.retire()
	if ticket.IsZero() {
		return nil
	}
	if owner == nil {
		owner = h.registry
	}

	uerr := owner.unregister(ticket)
	Logger().Info("rendersys: render system unloaded", "module", rs.name)

	if cerr != nil {
		cerr = fmt.Errorf("rendersys: closing %q: %w", rs.name, cerr)
	}
	return errors.Join(cerr, uerr)
}
