// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rendersys

import (
	"errors"
	"slices"
	"sync"

	"github.com/google/uuid"
)

// Ticket identifies one live RenderSystem in its Registry. Tickets are
// minted at registration and only given back by the instance's teardown.
type Ticket struct {
	id uuid.UUID
}

func newTicket() Ticket {
	return Ticket{id: uuid.New()}
}

// IsZero reports whether t is the zero Ticket.
func (t Ticket) IsZero() bool {
	return t.id == uuid.Nil
}

// String returns the ticket id.
func (t Ticket) String() string {
	return t.id.String()
}

// registryEntry is a resident module and its live instance count.
type registryEntry struct {
	mod  *module
	refs int
}

// Registry maps module names to loaded modules and counts the live
// instances each module has produced. A name is loaded at most once; the
// module is unloaded when its last instance is unregistered.
//
// A Registry is safe for concurrent use.
type Registry struct {
	mu      sync.Mutex
	loader  Loader
	modules map[string]*registryEntry
	tickets map[Ticket]string
}

// NewRegistry creates a registry that opens modules through loader.
func NewRegistry(loader Loader) *Registry {
	return &Registry{
		loader:  loader,
		modules: make(map[string]*registryEntry),
		tickets: make(map[Ticket]string),
	}
}

// resolve returns the resident module for name, loading it on first use.
// The instance count is left unchanged. Callers must hold r.mu.
func (r *Registry) resolve(name string) (*module, error) {
	if e, ok := r.modules[name]; ok {
		return e.mod, nil
	}
	if r.loader == nil {
		return nil, moduleErrorf(ErrModuleLoad, name, ErrModuleNotFound, "no module loader configured")
	}
	m, err := openModule(r.loader, name)
	if err != nil {
		return nil, err
	}
	r.modules[name] = &registryEntry{mod: m}
	moduleLogger(name).Debug("rendersys: module resolved")
	return m, nil
}

// register records a new live instance of m. Callers must hold r.mu.
func (r *Registry) register(t Ticket, m *module) {
	r.modules[m.name].refs++
	r.tickets[t] = m.name
}

// unregister releases the instance identified by t and unloads its module
// if it was the last one. Unknown tickets are ignored.
func (r *Registry) unregister(t Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name, ok := r.tickets[t]
	if !ok {
		return nil
	}
	delete(r.tickets, t)

	e := r.modules[name]
	e.refs--
	if e.refs > 0 {
		return nil
	}
	return r.unload(name)
}

// unload drops a module with no live instances. Callers must hold r.mu.
func (r *Registry) unload(name string) error {
	e, ok := r.modules[name]
	if !ok {
		return nil
	}
	delete(r.modules, name)
	moduleLogger(name).Debug("rendersys: module unloaded")
	if err := e.mod.close(); err != nil {
		return moduleErrorf(ErrModuleLoad, name, err, "closing module failed")
	}
	return nil
}

// acquire resolves name, runs fn with the module and, when fn succeeds,
// registers the new instance under a fresh ticket. All of it happens under
// the registry lock. If fn fails and the module has no live instances it is
// unloaded again.
func (r *Registry) acquire(name string, fn func(m *module) error) (Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, err := r.resolve(name)
	if err != nil {
		return Ticket{}, err
	}
	if err := fn(m); err != nil {
		if r.modules[name].refs == 0 {
			if cerr := r.unload(name); cerr != nil {
				err = errors.Join(err, cerr)
			}
		}
		return Ticket{}, err
	}

	t := newTicket()
	r.register(t, m)
	return t, nil
}

// RefCount returns the number of live instances created from name.
func (r *Registry) RefCount(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.modules[name]; ok {
		return e.refs
	}
	return 0
}

// Loaded returns the names of the resident modules, sorted.
func (r *Registry) Loaded() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.modules))
	for name := range r.modules {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// FindModules returns the modules the registry's loader can open.
func (r *Registry) FindModules() []string {
	if r.loader == nil {
		return nil
	}
	return r.loader.FindModules()
}

// Shutdown unloads every resident module. Modules that still have live
// instances are reported as leaks: each one is logged and contributes an
// ErrLeak error to the joined result. The registry is empty afterwards.
func (r *Registry) Shutdown() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := make([]string, 0, len(r.modules))
	for name := range r.modules {
		names = append(names, name)
	}
	slices.Sort(names)

	var errs []error
	for _, name := range names {
		e := r.modules[name]
		if e.refs > 0 {
			moduleLogger(name).Warn("rendersys: module still loaded at shutdown", "instances", e.refs)
			errs = append(errs, moduleErrorf(ErrLeak, name, nil, "%d live instance(s)", e.refs))
		}
		if err := r.unload(name); err != nil {
			errs = append(errs, err)
		}
	}
	clear(r.tickets)
	return errors.Join(errs...)
}
