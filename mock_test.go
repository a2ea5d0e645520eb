// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rendersys

import (
	"slices"
	"sync"
)

// mockBuffer implements Buffer for testing.
type mockBuffer struct {
	desc BufferDescriptor
}

func (b *mockBuffer) ResourceType() ResourceType { return ResourceTypeBuffer }
func (b *mockBuffer) Desc() BufferDescriptor     { return b.desc }

// mockBufferArray implements BufferArray for testing.
type mockBufferArray struct {
	buffers []Buffer
}

func (a *mockBufferArray) ResourceType() ResourceType { return ResourceTypeBufferArray }
func (a *mockBufferArray) Buffers() []Buffer          { return a.buffers }

// mockShader implements Shader for testing.
type mockShader struct {
	typ ShaderType
}

func (s *mockShader) ResourceType() ResourceType { return ResourceTypeShader }
func (s *mockShader) Type() ShaderType           { return s.typ }

// mockMaxBufferSize is the buffer limit of mockDriver.
const mockMaxBufferSize = 1024

// mockDriver implements Driver and ValidatorSetter for testing.
type mockDriver struct {
	mu          sync.Mutex
	infoQueries int
	capsQueries int
	queryErr    error
	closed      bool
	closeErr    error
	onClose     func()
	validator   *Validator
}

func (d *mockDriver) QueryRendererDetails(info *RendererInfo, caps *RenderingCapabilities) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if info != nil {
		d.infoQueries++
	}
	if caps != nil {
		d.capsQueries++
	}
	if d.queryErr != nil {
		return d.queryErr
	}
	if info != nil {
		*info = RendererInfo{
			RendererName:   "Mock",
			DeviceName:     "mock device",
			VendorName:     "gogpu",
			ExtensionNames: []string{"mock_ext"},
		}
	}
	if caps != nil {
		*caps = RenderingCapabilities{
			ShadingLanguages: []ShadingLanguage{ShadingLanguageWGSL},
			Features:         FeatureComputeShaders,
			Limits:           Limits{MaxBufferSize: mockMaxBufferSize},
		}
	}
	return nil
}

func (d *mockDriver) CreateBuffer(desc BufferDescriptor, _ []byte) (Buffer, error) {
	if err := d.validator.AssertCreateBuffer(desc, mockMaxBufferSize); err != nil {
		return nil, err
	}
	return &mockBuffer{desc: desc}, nil
}

func (d *mockDriver) CreateBufferArray(buffers []Buffer) (BufferArray, error) {
	if err := d.validator.AssertCreateBufferArray(len(buffers), buffers); err != nil {
		return nil, err
	}
	return &mockBufferArray{buffers: slices.Clone(buffers)}, nil
}

func (d *mockDriver) CreateShader(desc ShaderDescriptor) (Shader, error) {
	if err := d.validator.AssertCreateShader(desc); err != nil {
		return nil, err
	}
	return &mockShader{typ: desc.Type}, nil
}

func (d *mockDriver) Release(Resource) error { return nil }

func (d *mockDriver) Close() error {
	d.mu.Lock()
	d.closed = true
	onClose := d.onClose
	d.mu.Unlock()
	if onClose != nil {
		onClose()
	}
	return d.closeErr
}

func (d *mockDriver) SetValidator(v *Validator) { d.validator = v }

func (d *mockDriver) isClosed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closed
}

// mockModule is a module whose entry points count their calls.
type mockModule struct {
	mu         sync.Mutex
	buildID    string
	allocCalls int
	allocate   func(desc *Descriptor, report *Report) (Driver, error)
	drivers    []*mockDriver
}

func newMockModule() *mockModule {
	return &mockModule{buildID: BuildID()}
}

func (m *mockModule) entry() Entry {
	return Entry{
		BuildID: func() string { return m.buildID },
		Allocate: func(desc *Descriptor, report *Report) (Driver, error) {
			m.mu.Lock()
			m.allocCalls++
			alloc := m.allocate
			m.mu.Unlock()
			if alloc != nil {
				return alloc(desc, report)
			}
			d := &mockDriver{}
			m.mu.Lock()
			m.drivers = append(m.drivers, d)
			m.mu.Unlock()
			return d, nil
		},
		RendererName: func() string { return "Mock" },
		RendererID:   func() int { return RendererIDNull },
	}
}

func (m *mockModule) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.allocCalls
}

// mockLoader serves entries and counts opens and closes per name.
type mockLoader struct {
	mu      sync.Mutex
	entries map[string]Entry
	opens   map[string]int
	closes  map[string]int
}

func newMockLoader() *mockLoader {
	return &mockLoader{
		entries: make(map[string]Entry),
		opens:   make(map[string]int),
		closes:  make(map[string]int),
	}
}

func (l *mockLoader) add(name string, e Entry) {
	l.mu.Lock()
	l.entries[name] = e
	l.mu.Unlock()
}

func (l *mockLoader) FindModules() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	names := make([]string, 0, len(l.entries))
	for name := range l.entries {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func (l *mockLoader) Open(name string) (Library, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.entries[name]
	if !ok {
		return nil, ErrModuleNotFound
	}
	l.opens[name]++
	return &mockLibrary{staticLibrary: staticLibrary(e), loader: l, name: name}, nil
}

func (l *mockLoader) openCount(name string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.opens[name]
}

func (l *mockLoader) closeCount(name string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.closes[name]
}

// mockLibrary serves an Entry and records Close on its loader.
type mockLibrary struct {
	staticLibrary
	loader *mockLoader
	name   string
}

func (l *mockLibrary) Close() error {
	l.loader.mu.Lock()
	l.loader.closes[l.name]++
	l.loader.mu.Unlock()
	return nil
}

// mockDebugger implements Debugger for testing.
type mockDebugger struct {
	mu           sync.Mutex
	breakOnError bool
	errs         []error
	warnings     []string
}

func (d *mockDebugger) SetBreakOnError(enable bool) {
	d.mu.Lock()
	d.breakOnError = enable
	d.mu.Unlock()
}

func (d *mockDebugger) BreakOnError() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.breakOnError
}

func (d *mockDebugger) PostError(err error) {
	d.mu.Lock()
	d.errs = append(d.errs, err)
	d.mu.Unlock()
}

func (d *mockDebugger) PostWarning(msg string) {
	d.mu.Lock()
	d.warnings = append(d.warnings, msg)
	d.mu.Unlock()
}

// mockLayer is a decorator that records when it is closed.
type mockLayer struct {
	Driver
	name string
	cfg  LayerConfig
	log  *closeLog
}

func (l *mockLayer) Close() error {
	l.log.add(l.name)
	return l.Driver.Close()
}

func (l *mockLayer) Unwrap() Driver { return l.Driver }

// closeLog collects names in close order.
type closeLog struct {
	mu    sync.Mutex
	names []string
}

func (c *closeLog) add(name string) {
	c.mu.Lock()
	c.names = append(c.names, name)
	c.mu.Unlock()
}

func (c *closeLog) get() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.names)
}

func mockLayerFunc(name string, log *closeLog) LayerFunc {
	return func(inner Driver, cfg LayerConfig) Driver {
		return &mockLayer{Driver: inner, name: name, cfg: cfg, log: log}
	}
}

// newMockHost returns a host serving one mock module named "Mock" and no
// debug layer.
func newMockHost(opts ...HostOption) (*Host, *mockModule, *mockLoader) {
	mod := newMockModule()
	loader := newMockLoader()
	loader.add("Mock", mod.entry())
	opts = append([]HostOption{WithLoader(loader), WithDebugLayer(nil)}, opts...)
	return NewHost(opts...), mod, loader
}
