// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package null

import (
	"bytes"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/rendersys"
)

const computeWGSL = `
@compute @workgroup_size(1)
fn main() {
}
`

func loadNull(t *testing.T) (*rendersys.Host, *rendersys.RenderSystem) {
	t.Helper()
	h := rendersys.NewHost(rendersys.WithLoader(rendersys.StaticLoader{}), rendersys.WithDebugLayer(nil))
	rs, err := h.Load(rendersys.Descriptor{ModuleName: Name}, nil)
	if err != nil {
		t.Fatalf("Load(%s) error = %v", Name, err)
	}
	t.Cleanup(func() {
		if err := h.Unload(rs); err != nil {
			t.Errorf("Unload() error = %v", err)
		}
	})
	return h, rs
}

func TestRegistered(t *testing.T) {
	if !slices.Contains(rendersys.StaticModules(), Name) {
		t.Errorf("StaticModules() = %v, want %s", rendersys.StaticModules(), Name)
	}
}

func TestLoadIdentity(t *testing.T) {
	h, rs := loadNull(t)

	if rs.Name() != "Null" || rs.RendererID() != rendersys.RendererIDNull {
		t.Errorf("identity = (%q, %d)", rs.Name(), rs.RendererID())
	}
	if got := h.Registry().RefCount(Name); got != 1 {
		t.Errorf("RefCount = %d, want 1", got)
	}
	info, err := rs.RendererInfo()
	if err != nil {
		t.Fatalf("RendererInfo() error = %v", err)
	}
	if info.DeviceName != "Null Device" || info.ShadingLanguageName != "WGSL" {
		t.Errorf("RendererInfo() = %+v", info)
	}
}

func TestCapabilities(t *testing.T) {
	_, rs := loadNull(t)

	caps, err := rs.RenderingCaps()
	if err != nil {
		t.Fatalf("RenderingCaps() error = %v", err)
	}
	if !caps.Features.Has(rendersys.FeatureComputeShaders | rendersys.FeatureStorageBuffers) {
		t.Errorf("Features = %b", caps.Features)
	}
	if caps.Limits.MaxBufferSize != gputypes.DefaultLimits().MaxBufferSize {
		t.Errorf("MaxBufferSize = %d, want default limit", caps.Limits.MaxBufferSize)
	}
	if !slices.Contains(caps.TextureFormats, gputypes.TextureFormatRGBA8Unorm) {
		t.Errorf("TextureFormats = %v, want RGBA8Unorm", caps.TextureFormats)
	}
}

func TestBufferLifecycle(t *testing.T) {
	_, rs := loadNull(t)
	d := rendersys.Innermost(rs.Driver()).(*Driver)

	desc := rendersys.BufferDescriptor{
		Label:     "vertices",
		Size:      16,
		BindFlags: rendersys.BindVertexBuffer | rendersys.BindCopyDst,
		CPUAccess: rendersys.CPUAccessWrite,
	}
	b, err := rs.CreateBuffer(desc, []byte{1, 2, 3, 4})
	if err != nil {
		t.Fatalf("CreateBuffer() error = %v", err)
	}
	nb := b.(*Buffer)

	wantUsage := gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst | gputypes.BufferUsageMapWrite
	if nb.Usage() != wantUsage {
		t.Errorf("Usage() = %v, want %v", nb.Usage(), wantUsage)
	}
	if err := nb.Write(8, []byte{9, 9}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	got, err := nb.Read(0, 16)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	want := []byte{1, 2, 3, 4, 0, 0, 0, 0, 9, 9, 0, 0, 0, 0, 0, 0}
	if !bytes.Equal(got, want) {
		t.Errorf("Read() = %v, want %v", got, want)
	}
	if err := nb.Write(15, []byte{1, 2}); err == nil {
		t.Error("Write() past the end succeeded")
	}
	if _, err := nb.Read(10, 7); err == nil {
		t.Error("Read() past the end succeeded")
	}

	if d.Live() != 1 {
		t.Errorf("Live() = %d, want 1", d.Live())
	}
	if err := rs.Release(b); err != nil {
		t.Fatalf("Release() error = %v", err)
	}
	if err := rs.Release(b); !errors.Is(err, ErrForeignResource) {
		t.Errorf("second Release() error = %v, want ErrForeignResource", err)
	}
}

func TestCreateBufferValidation(t *testing.T) {
	_, rs := loadNull(t)

	_, err := rs.CreateBuffer(rendersys.BufferDescriptor{Size: 4, BindFlags: rendersys.BindColorAttachment}, nil)
	if !errors.Is(err, rendersys.ErrInvalidArgument) {
		t.Fatalf("CreateBuffer() error = %v, want ErrInvalidArgument", err)
	}
	if r := rs.Report(); r == nil || !strings.Contains(r.Text(), "invalid binding flags 0x00000080") {
		t.Errorf("Report() = %v", r)
	}

	limit := gputypes.DefaultLimits().MaxBufferSize
	if _, err := rs.CreateBuffer(rendersys.BufferDescriptor{Size: limit + 1}, nil); !errors.Is(err, rendersys.ErrInvalidArgument) {
		t.Errorf("CreateBuffer() over limit error = %v, want ErrInvalidArgument", err)
	}
	if _, err := rs.CreateBuffer(rendersys.BufferDescriptor{Size: 2}, []byte{1, 2, 3}); err == nil {
		t.Error("CreateBuffer() with oversized initial data succeeded")
	}
}

func TestBufferArray(t *testing.T) {
	_, rs := loadNull(t)

	b1, _ := rs.CreateBuffer(rendersys.BufferDescriptor{Size: 4}, nil)
	b2, _ := rs.CreateBuffer(rendersys.BufferDescriptor{Size: 4}, nil)
	arr, err := rs.CreateBufferArray([]rendersys.Buffer{b1, b2})
	if err != nil {
		t.Fatalf("CreateBufferArray() error = %v", err)
	}
	if len(arr.Buffers()) != 2 {
		t.Errorf("Buffers() = %d, want 2", len(arr.Buffers()))
	}

	_, err = rs.CreateBufferArray([]rendersys.Buffer{b1, nil, b2})
	var verr *rendersys.ValidationError
	if !errors.As(err, &verr) || verr.Index != 1 {
		t.Errorf("CreateBufferArray() error = %v, want validation failure at index 1", err)
	}
	if _, err := rs.CreateBufferArray(nil); !errors.Is(err, rendersys.ErrInvalidArgument) {
		t.Errorf("CreateBufferArray(nil) error = %v, want ErrInvalidArgument", err)
	}

	_ = rs.Release(b2)
	if _, err := rs.CreateBufferArray([]rendersys.Buffer{b1, b2}); !errors.Is(err, ErrForeignResource) {
		t.Errorf("CreateBufferArray() with released buffer error = %v, want ErrForeignResource", err)
	}
}

func TestCreateShader(t *testing.T) {
	_, rs := loadNull(t)

	s, err := rs.CreateShader(rendersys.ShaderDescriptor{
		Label:      "compute",
		Type:       rendersys.ShaderTypeCompute,
		Source:     []byte(computeWGSL),
		Language:   rendersys.ShadingLanguageWGSL,
		EntryPoint: "main",
	})
	if err != nil {
		t.Fatalf("CreateShader() error = %v", err)
	}
	ns := s.(*Shader)
	if ns.Type() != rendersys.ShaderTypeCompute || ns.EntryPoint() != "main" {
		t.Errorf("shader = (%v, %q)", ns.Type(), ns.EntryPoint())
	}
	if words := ns.SPIRV(); len(words) == 0 || words[0] != 0x07230203 {
		t.Error("shader has no SPIR-V")
	}

	// A SPIR-V binary round-trips through CreateShader.
	bin := make([]byte, 0, 4*len(ns.SPIRV()))
	for _, w := range ns.SPIRV() {
		bin = append(bin, byte(w), byte(w>>8), byte(w>>16), byte(w>>24))
	}
	if _, err := rs.CreateShader(rendersys.ShaderDescriptor{
		Type:       rendersys.ShaderTypeCompute,
		Source:     bin,
		SourceSize: uint64(len(bin)),
		SourceType: rendersys.ShaderSourceBinary,
		Language:   rendersys.ShadingLanguageSPIRV,
	}); err != nil {
		t.Errorf("CreateShader(SPIR-V) error = %v", err)
	}
}

func TestCreateShaderErrors(t *testing.T) {
	_, rs := loadNull(t)

	tests := []struct {
		name string
		desc rendersys.ShaderDescriptor
		kind error
	}{
		{"nil source", rendersys.ShaderDescriptor{}, rendersys.ErrInvalidArgument},
		{"binary without size", rendersys.ShaderDescriptor{Source: []byte{1}, SourceType: rendersys.ShaderSourceBinary}, rendersys.ErrInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := rs.CreateShader(tt.desc); !errors.Is(err, tt.kind) {
				t.Errorf("CreateShader() error = %v, want %v", err, tt.kind)
			}
		})
	}

	if _, err := rs.CreateShader(rendersys.ShaderDescriptor{Source: []byte("void main(){}"), Language: rendersys.ShadingLanguageGLSL}); err == nil {
		t.Error("CreateShader(GLSL) succeeded")
	}
	if r := rs.Report(); r == nil || !r.HasErrors() {
		t.Error("shader failure not reported")
	}
}

func TestDriverClosed(t *testing.T) {
	d := NewDriver()
	if err := d.Close(); err != nil {
		t.Fatal(err)
	}
	if err := d.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if _, err := d.CreateBuffer(rendersys.BufferDescriptor{Size: 1}, nil); !errors.Is(err, ErrClosed) {
		t.Errorf("CreateBuffer() after Close error = %v, want ErrClosed", err)
	}
	if err := d.QueryRendererDetails(&rendersys.RendererInfo{}, nil); !errors.Is(err, ErrClosed) {
		t.Errorf("QueryRendererDetails() after Close error = %v, want ErrClosed", err)
	}
}

func TestAllocateReportsIgnoredContext(t *testing.T) {
	var report rendersys.Report
	d, err := Allocate(&rendersys.Descriptor{ModuleName: Name, Context: rendersys.NullContext{}}, &report)
	if err != nil {
		t.Fatal(err)
	}
	defer d.Close()
	if !strings.Contains(report.Text(), "context ignored") || report.HasErrors() {
		t.Errorf("report = %q", report.Text())
	}
}
