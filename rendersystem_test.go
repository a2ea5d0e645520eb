// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rendersys

import (
	"errors"
	"strings"
	"testing"
)

// newTestRenderSystem wires a RenderSystem directly around d.
func newTestRenderSystem(d *mockDriver) *RenderSystem {
	rs := newRenderSystem()
	rs.name = "Mock"
	rs.driver = d
	d.SetValidator(rs.Validator())
	return rs
}

func TestRendererInfoQueriedOnce(t *testing.T) {
	d := &mockDriver{}
	rs := newTestRenderSystem(d)

	for i := range 3 {
		info, err := rs.RendererInfo()
		if err != nil {
			t.Fatalf("RendererInfo() call %d error = %v", i, err)
		}
		if info.DeviceName != "mock device" {
			t.Errorf("DeviceName = %q, want %q", info.DeviceName, "mock device")
		}
	}
	if d.infoQueries != 1 {
		t.Errorf("driver queried %d times, want 1", d.infoQueries)
	}
	if d.capsQueries != 0 {
		t.Errorf("RendererInfo queried capabilities %d times", d.capsQueries)
	}
}

func TestRendererInfoNoNegativeCaching(t *testing.T) {
	queryErr := errors.New("adapter busy")
	d := &mockDriver{queryErr: queryErr}
	rs := newTestRenderSystem(d)

	for range 3 {
		if _, err := rs.RendererInfo(); !errors.Is(err, queryErr) {
			t.Fatalf("RendererInfo() error = %v, want %v", err, queryErr)
		}
	}
	if d.infoQueries != 3 {
		t.Errorf("driver queried %d times after failures, want 3", d.infoQueries)
	}
	r := rs.Report()
	if r == nil || !r.HasErrors() || !strings.Contains(r.Text(), "adapter busy") {
		t.Errorf("Report() = %v, want failed report mentioning the query error", r)
	}

	d.queryErr = nil
	for range 2 {
		if _, err := rs.RendererInfo(); err != nil {
			t.Fatalf("RendererInfo() after recovery error = %v", err)
		}
	}
	if d.infoQueries != 4 {
		t.Errorf("driver queried %d times, want 4", d.infoQueries)
	}
}

func TestRenderingCapsQueriedOnce(t *testing.T) {
	d := &mockDriver{}
	rs := newTestRenderSystem(d)

	for range 3 {
		caps, err := rs.RenderingCaps()
		if err != nil {
			t.Fatalf("RenderingCaps() error = %v", err)
		}
		if !caps.Features.Has(FeatureComputeShaders) {
			t.Errorf("Features = %v, want compute shaders", caps.Features)
		}
	}
	if d.capsQueries != 1 {
		t.Errorf("driver queried %d times, want 1", d.capsQueries)
	}
}

func TestRenderingCapsNoNegativeCaching(t *testing.T) {
	d := &mockDriver{queryErr: errors.New("lost")}
	rs := newTestRenderSystem(d)

	for range 2 {
		if _, err := rs.RenderingCaps(); err == nil {
			t.Fatal("RenderingCaps() succeeded with failing driver")
		}
	}
	d.queryErr = nil
	if _, err := rs.RenderingCaps(); err != nil {
		t.Fatalf("RenderingCaps() error = %v", err)
	}
	if _, err := rs.RenderingCaps(); err != nil {
		t.Fatalf("RenderingCaps() error = %v", err)
	}
	if d.capsQueries != 3 {
		t.Errorf("driver queried %d times, want 3", d.capsQueries)
	}
}

func TestRendererInfoReturnsCopy(t *testing.T) {
	rs := newTestRenderSystem(&mockDriver{})

	info, _ := rs.RendererInfo()
	info.ExtensionNames[0] = "modified"

	again, _ := rs.RendererInfo()
	if again.ExtensionNames[0] != "mock_ext" {
		t.Errorf("cached info was modified through a returned copy: %v", again.ExtensionNames)
	}
}

func TestReportNilUntilWritten(t *testing.T) {
	rs := newTestRenderSystem(&mockDriver{})

	if r := rs.Report(); r != nil {
		t.Errorf("Report() = %v, want nil for a fresh instance", r)
	}
	if _, err := rs.CreateBuffer(BufferDescriptor{Size: 16, BindFlags: BindVertexBuffer}, nil); err != nil {
		t.Fatalf("CreateBuffer() error = %v", err)
	}
	if r := rs.Report(); r != nil {
		t.Errorf("Report() = %v after successful call, want nil", r)
	}
}

func TestCreateBufferValidation(t *testing.T) {
	rs := newTestRenderSystem(&mockDriver{})

	_, err := rs.CreateBuffer(BufferDescriptor{Size: mockMaxBufferSize + 1}, nil)
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("CreateBuffer() error = %v, want ErrInvalidArgument", err)
	}
	r := rs.Report()
	if r == nil || !r.HasErrors() {
		t.Fatal("validation failure not reported")
	}
	if !strings.Contains(r.Text(), "exceeded limit") {
		t.Errorf("report = %q, want size limit message", r.Text())
	}
	if strings.HasPrefix(r.Text(), "rendersys:") {
		t.Errorf("report = %q, want the plain validation message", r.Text())
	}

	// The instance stays usable after a validation failure.
	b, err := rs.CreateBuffer(BufferDescriptor{Size: mockMaxBufferSize}, nil)
	if err != nil {
		t.Fatalf("CreateBuffer() at limit error = %v", err)
	}
	if b.Desc().Size != mockMaxBufferSize {
		t.Errorf("buffer size = %d, want %d", b.Desc().Size, mockMaxBufferSize)
	}
}

func TestCreateBufferArrayAndShader(t *testing.T) {
	rs := newTestRenderSystem(&mockDriver{})

	b1, _ := rs.CreateBuffer(BufferDescriptor{Size: 4}, nil)
	b2, _ := rs.CreateBuffer(BufferDescriptor{Size: 8}, nil)
	arr, err := rs.CreateBufferArray([]Buffer{b1, b2})
	if err != nil {
		t.Fatalf("CreateBufferArray() error = %v", err)
	}
	if len(arr.Buffers()) != 2 {
		t.Errorf("array has %d buffers, want 2", len(arr.Buffers()))
	}

	var nilBuf *mockBuffer
	_, err = rs.CreateBufferArray([]Buffer{b1, nilBuf})
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Index != 1 {
		t.Errorf("CreateBufferArray() with nil element error = %v, want index 1", err)
	}

	if _, err := rs.CreateShader(ShaderDescriptor{Type: ShaderTypeVertex}); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("CreateShader() without source error = %v, want ErrInvalidArgument", err)
	}
	s, err := rs.CreateShader(ShaderDescriptor{Type: ShaderTypeCompute, Source: []byte("@compute fn main() {}")})
	if err != nil {
		t.Fatalf("CreateShader() error = %v", err)
	}
	if s.Type() != ShaderTypeCompute {
		t.Errorf("shader type = %v, want compute", s.Type())
	}
	if err := rs.Release(s); err != nil {
		t.Errorf("Release() error = %v", err)
	}
}

func TestRetire(t *testing.T) {
	d := &mockDriver{}
	rs := newTestRenderSystem(d)
	rs.ticket = newTicket()
	want := rs.ticket

	got, err := rs.retire()
	if err != nil {
		t.Fatalf("retire() error = %v", err)
	}
	if got != want {
		t.Errorf("retire() ticket = %v, want %v", got, want)
	}
	if !d.isClosed() {
		t.Error("retire() did not close the driver")
	}

	got, err = rs.retire()
	if err != nil || !got.IsZero() {
		t.Errorf("second retire() = (%v, %v), want zero ticket", got, err)
	}
	if _, err := rs.RendererInfo(); !errors.Is(err, ErrReleased) {
		t.Errorf("RendererInfo() after retire error = %v, want ErrReleased", err)
	}
}

func TestRetireKeepsCachedInfo(t *testing.T) {
	rs := newTestRenderSystem(&mockDriver{})
	if _, err := rs.RendererInfo(); err != nil {
		t.Fatal(err)
	}
	_, _ = rs.retire()

	info, err := rs.RendererInfo()
	if err != nil {
		t.Fatalf("cached RendererInfo() after retire error = %v", err)
	}
	if info.RendererName != "Mock" {
		t.Errorf("RendererName = %q, want Mock", info.RendererName)
	}
}
