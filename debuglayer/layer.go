// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package debuglayer

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"

	"fortio.org/safecast"

	"github.com/gogpu/rendersys"
)

// Errors detected by the layer in addition to descriptor validation.
var (
	// ErrUnknownResource is returned when a resource that was not created
	// through this layer, or was already released, is used.
	ErrUnknownResource = errors.New("debuglayer: unknown or released resource")

	// ErrInitialData is returned when initial data does not fit the buffer.
	ErrInitialData = errors.New("debuglayer: initial data exceeds buffer size")
)

// Stats counts what went through a Layer.
type Stats struct {
	Buffers      int
	BufferArrays int
	Shaders      int
	Released     int
	Errors       int
}

// Layer is the debug decorator around a module driver.
type Layer struct {
	inner rendersys.Driver
	cfg   rendersys.LayerConfig
	log   *slog.Logger

	mu            sync.Mutex
	live          map[rendersys.Resource]string
	stats         Stats
	maxBufferSize uint64
	hasLimits     bool
}

var _ rendersys.Decorator = (*Layer)(nil)

// Wrap is the rendersys.LayerFunc of the debug layer.
func Wrap(inner rendersys.Driver, cfg rendersys.LayerConfig) rendersys.Driver {
	return New(inner, cfg)
}

// New wraps inner in a debug layer.
func New(inner rendersys.Driver, cfg rendersys.LayerConfig) *Layer {
	log := cfg.Logger
	if log == nil {
		log = rendersys.Logger()
	}
	return &Layer{
		inner: inner,
		cfg:   cfg,
		log:   log.With("layer", "debug", "module", cfg.Module),
		live:  make(map[rendersys.Resource]string),
	}
}

// Unwrap returns the wrapped driver.
func (l *Layer) Unwrap() rendersys.Driver { return l.inner }

// Stats returns the current counters.
func (l *Layer) Stats() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.stats
}

// Live returns the number of resources created and not yet released.
func (l *Layer) Live() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.live)
}

// QueryRendererDetails forwards to the inner driver.
func (l *Layer) QueryRendererDetails(info *rendersys.RendererInfo, caps *rendersys.RenderingCapabilities) error {
	if err := l.inner.QueryRendererDetails(info, caps); err != nil {
		return l.fail("QueryRendererDetails", err)
	}
	if caps != nil {
		l.mu.Lock()
		l.setLimits(caps.Limits)
		l.mu.Unlock()
	}
	return nil
}

// CreateBuffer validates desc against the renderer limits before
// forwarding.
func (l *Layer) CreateBuffer(desc rendersys.BufferDescriptor, initialData []byte) (rendersys.Buffer, error) {
	if err := l.cfg.Validator.AssertCreateBuffer(desc, l.bufferLimit()); err != nil {
		return nil, l.fail("CreateBuffer", err)
	}
	if initialData != nil {
		n, err := safecast.Conv[uint64](len(initialData))
		if err != nil || n > desc.Size {
			return nil, l.fail("CreateBuffer", fmt.Errorf("%w: %d > %d bytes", ErrInitialData, len(initialData), desc.Size))
		}
	}

	b, err := l.inner.CreateBuffer(desc, initialData)
	if err != nil {
		return nil, l.fail("CreateBuffer", err)
	}

	l.mu.Lock()
	l.live[b] = label("buffer", desc.Label)
	l.stats.Buffers++
	l.mu.Unlock()
	return b, nil
}

// CreateBufferArray checks that every buffer is live and was created
// through this layer.
func (l *Layer) CreateBufferArray(buffers []rendersys.Buffer) (rendersys.BufferArray, error) {
	if err := l.cfg.Validator.AssertCreateBufferArray(len(buffers), buffers); err != nil {
		return nil, l.fail("CreateBufferArray", err)
	}

	l.mu.Lock()
	for i, b := range buffers {
		if _, ok := l.live[b]; !ok {
			l.mu.Unlock()
			return nil, l.fail("CreateBufferArray", fmt.Errorf("%w: buffer array element [%d]", ErrUnknownResource, i))
		}
	}
	l.mu.Unlock()

	a, err := l.inner.CreateBufferArray(buffers)
	if err != nil {
		return nil, l.fail("CreateBufferArray", err)
	}

	l.mu.Lock()
	l.live[a] = label("buffer array", "")
	l.stats.BufferArrays++
	l.mu.Unlock()
	return a, nil
}

// CreateShader validates desc before forwarding. A shader without a stage
// only produces a warning.
func (l *Layer) CreateShader(desc rendersys.ShaderDescriptor) (rendersys.Shader, error) {
	if err := l.cfg.Validator.AssertCreateShader(desc); err != nil {
		return nil, l.fail("CreateShader", err)
	}
	if desc.Type == rendersys.ShaderTypeUndefined {
		l.warn(fmt.Sprintf("shader %q has no pipeline stage", desc.Label))
	}

	s, err := l.inner.CreateShader(desc)
	if err != nil {
		return nil, l.fail("CreateShader", err)
	}

	l.mu.Lock()
	l.live[s] = label(desc.Type.String()+" shader", desc.Label)
	l.stats.Shaders++
	l.mu.Unlock()
	return s, nil
}

// Release forwards live resources and rejects unknown ones and double
// releases.
func (l *Layer) Release(r rendersys.Resource) error {
	l.mu.Lock()
	_, ok := l.live[r]
	if ok {
		delete(l.live, r)
	}
	l.mu.Unlock()
	if !ok {
		return l.fail("Release", fmt.Errorf("%w: %T", ErrUnknownResource, r))
	}

	if err := l.inner.Release(r); err != nil {
		return l.fail("Release", err)
	}
	l.mu.Lock()
	l.stats.Released++
	l.mu.Unlock()
	return nil
}

// Close reports resources that were never released and closes the inner
// driver.
func (l *Layer) Close() error {
	l.mu.Lock()
	leaked := make([]string, 0, len(l.live))
	for _, name := range l.live {
		leaked = append(leaked, name)
	}
	clear(l.live)
	stats := l.stats
	l.mu.Unlock()

	for _, name := range leaked {
		l.warn("leaked " + name)
	}
	l.log.Debug("debuglayer: closing",
		"buffers", stats.Buffers, "shaders", stats.Shaders, "errors", stats.Errors, "leaked", len(leaked))
	return l.inner.Close()
}

// bufferLimit returns the maximum buffer size of the inner driver, querying
// it on first use.
func (l *Layer) bufferLimit() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.hasLimits {
		return l.maxBufferSize
	}
	var caps rendersys.RenderingCapabilities
	if err := l.inner.QueryRendererDetails(nil, &caps); err != nil {
		return math.MaxUint64
	}
	l.setLimits(caps.Limits)
	return l.maxBufferSize
}

// setLimits must be called with l.mu held.
func (l *Layer) setLimits(lim rendersys.Limits) {
	l.maxBufferSize = lim.MaxBufferSize
	if l.maxBufferSize == 0 {
		l.maxBufferSize = math.MaxUint64
	}
	l.hasLimits = true
}

func (l *Layer) fail(op string, err error) error {
	l.mu.Lock()
	l.stats.Errors++
	l.mu.Unlock()

	l.log.Error("debuglayer: "+op+" failed", "error", err)
	if l.cfg.Debugger != nil {
		l.cfg.Debugger.PostError(err)
	}
	return err
}

func (l *Layer) warn(msg string) {
	l.log.Warn("debuglayer: " + msg)
	if l.cfg.Debugger != nil {
		l.cfg.Debugger.PostWarning(msg)
	}
}

func label(kind, name string) string {
	if name == "" {
		return kind
	}
	return fmt.Sprintf("%s %q", kind, name)
}
