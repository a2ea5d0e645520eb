// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rendersys

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

// RenderSystem is a live instance of a render system module.
//
// It is created by Load and must be retired with Unload. Name and
// RendererID always describe the module that allocated the innermost
// driver, regardless of decorators.
type RenderSystem struct {
	name string
	id   int

	mu       sync.Mutex
	driver   Driver // outermost decorator first
	ticket   Ticket
	owner    *Registry
	released bool

	hasInfo bool
	info    RendererInfo
	hasCaps bool
	caps    RenderingCapabilities

	reportMu  sync.Mutex
	report    Report
	validator *Validator
}

func newRenderSystem() *RenderSystem {
	rs := &RenderSystem{}
	rs.validator = &Validator{report: &rs.report, mu: &rs.reportMu}
	return rs
}

// Name returns the renderer name reported by the module.
func (rs *RenderSystem) Name() string {
	return rs.name
}

// RendererID returns the renderer id reported by the module, one of the
// RendererID constants for the bundled backends.
func (rs *RenderSystem) RendererID() int {
	return rs.id
}

// Driver returns the outermost driver of the chain. It is nil after Unload.
func (rs *RenderSystem) Driver() Driver {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return rs.driver
}

// Validator returns the validator bound to this instance's report.
func (rs *RenderSystem) Validator() *Validator {
	return rs.validator
}

// Report returns the instance report, or nil if nothing was ever written
// to it.
func (rs *RenderSystem) Report() *Report {
	rs.reportMu.Lock()
	defer rs.reportMu.Unlock()
	if rs.report.IsEmpty() {
		return nil
	}
	r := rs.report
	return &r
}

// RendererInfo returns the renderer description. The driver is queried on
// the first call; after a successful query the cached value is returned. A
// failed query is not cached and is retried on the next call.
func (rs *RenderSystem) RendererInfo() (RendererInfo, error) {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if !rs.hasInfo {
		if err := rs.checkLive(); err != nil {
			return RendererInfo{}, err
		}
		var info RendererInfo
		if err := rs.driver.QueryRendererDetails(&info, nil); err != nil {
			return RendererInfo{}, rs.recordf(err, "querying renderer info failed: %v", err)
		}
		rs.info = info
		rs.hasInfo = true
	}

	info := rs.info
	info.ExtensionNames = slices.Clone(rs.info.ExtensionNames)
	return info, nil
}

// RenderingCaps returns the rendering capabilities, cached like
// RendererInfo.
func (rs *RenderSystem) RenderingCaps() (RenderingCapabilities, error) {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if !rs.hasCaps {
		if err := rs.checkLive(); err != nil {
			return RenderingCapabilities{}, err
		}
		var caps RenderingCapabilities
		if err := rs.driver.QueryRendererDetails(nil, &caps); err != nil {
			return RenderingCapabilities{}, rs.recordf(err, "querying rendering capabilities failed: %v", err)
		}
		rs.caps = caps
		rs.hasCaps = true
	}

	caps := rs.caps
	caps.ShadingLanguages = slices.Clone(rs.caps.ShadingLanguages)
	caps.TextureFormats = slices.Clone(rs.caps.TextureFormats)
	return caps, nil
}

// CreateBuffer creates a buffer through the driver chain.
func (rs *RenderSystem) CreateBuffer(desc BufferDescriptor, initialData []byte) (Buffer, error) {
	d, err := rs.live()
	if err != nil {
		return nil, err
	}
	b, err := d.CreateBuffer(desc, initialData)
	if err != nil {
		return nil, rs.record(err)
	}
	return b, nil
}

// CreateBufferArray groups buffers created by this instance.
func (rs *RenderSystem) CreateBufferArray(buffers []Buffer) (BufferArray, error) {
	d, err := rs.live()
	if err != nil {
		return nil, err
	}
	a, err := d.CreateBufferArray(buffers)
	if err != nil {
		return nil, rs.record(err)
	}
	return a, nil
}

// CreateShader creates a shader through the driver chain.
func (rs *RenderSystem) CreateShader(desc ShaderDescriptor) (Shader, error) {
	d, err := rs.live()
	if err != nil {
		return nil, err
	}
	s, err := d.CreateShader(desc)
	if err != nil {
		return nil, rs.record(err)
	}
	return s, nil
}

// Release destroys a resource created by this instance.
func (rs *RenderSystem) Release(r Resource) error {
	d, err := rs.live()
	if err != nil {
		return err
	}
	if err := d.Release(r); err != nil {
		return rs.record(err)
	}
	return nil
}

func (rs *RenderSystem) live() (Driver, error) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	if err := rs.checkLive(); err != nil {
		return nil, err
	}
	return rs.driver, nil
}

// checkLive must be called with rs.mu held.
func (rs *RenderSystem) checkLive() error {
	if rs.released || rs.driver == nil {
		return ErrReleased
	}
	return nil
}

// record resets the report with the message of err and returns err.
func (rs *RenderSystem) record(err error) error {
	msg := err.Error()
	var verr *ValidationError
	if errors.As(err, &verr) {
		msg = verr.Msg
	}
	return rs.recordf(err, "%s", msg)
}

// recordf resets the report with a formatted message and returns err.
func (rs *RenderSystem) recordf(err error, format string, args ...any) error {
	rs.reportMu.Lock()
	rs.report.Reset(fmt.Sprintf(format, args...), true)
	rs.reportMu.Unlock()
	return err
}

// retire closes the driver chain, outermost first, and hands back the
// ticket the instance was registered with. Later calls return the zero
// Ticket and no error.
func (rs *RenderSystem) retire() (Ticket, error) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	if rs.released {
		return Ticket{}, nil
	}
	rs.released = true

	var err error
	if rs.driver != nil {
		err = closeDriver(rs.driver, rs.name)
		rs.driver = nil
	}
	t := rs.ticket
	rs.ticket = Ticket{}
	return t, err
}
