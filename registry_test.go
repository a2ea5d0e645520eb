// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rendersys

import (
	"bytes"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"testing"
)

func TestRegistryResolveLoadsOnce(t *testing.T) {
	loader := newMockLoader()
	loader.add("Mock", newMockModule().entry())
	r := NewRegistry(loader)

	r.mu.Lock()
	m1, err1 := r.resolve("Mock")
	m2, err2 := r.resolve("Mock")
	r.mu.Unlock()

	if err1 != nil || err2 != nil {
		t.Fatalf("resolve() errors = %v, %v", err1, err2)
	}
	if m1 != m2 {
		t.Error("resolve() returned different handles for the same name")
	}
	if got := loader.openCount("Mock"); got != 1 {
		t.Errorf("module opened %d times, want 1", got)
	}
	if got := r.RefCount("Mock"); got != 0 {
		t.Errorf("resolve() changed RefCount to %d", got)
	}
}

func TestRegistryUnknownModule(t *testing.T) {
	r := NewRegistry(newMockLoader())

	r.mu.Lock()
	_, err := r.resolve("Metal")
	r.mu.Unlock()

	if !errors.Is(err, ErrModuleLoad) {
		t.Errorf("resolve() error = %v, want ErrModuleLoad", err)
	}
	if !errors.Is(err, ErrModuleNotFound) {
		t.Errorf("resolve() error = %v, want it to wrap ErrModuleNotFound", err)
	}
	if len(r.Loaded()) != 0 {
		t.Errorf("Loaded() = %v, want empty", r.Loaded())
	}
}

func TestRegistryNilLoader(t *testing.T) {
	r := NewRegistry(nil)
	if _, err := r.acquire("Null", func(*module) error { return nil }); !errors.Is(err, ErrModuleLoad) {
		t.Errorf("acquire() error = %v, want ErrModuleLoad", err)
	}
	if r.FindModules() != nil {
		t.Errorf("FindModules() = %v, want nil", r.FindModules())
	}
}

func TestRegistryAcquireUnregister(t *testing.T) {
	loader := newMockLoader()
	loader.add("Mock", newMockModule().entry())
	r := NewRegistry(loader)

	t1, err := r.acquire("Mock", func(*module) error { return nil })
	if err != nil {
		t.Fatalf("acquire() error = %v", err)
	}
	t2, err := r.acquire("Mock", func(*module) error { return nil })
	if err != nil {
		t.Fatalf("acquire() error = %v", err)
	}
	if t1 == t2 || t1.IsZero() || t2.IsZero() {
		t.Errorf("tickets not unique: %v, %v", t1, t2)
	}
	if got := r.RefCount("Mock"); got != 2 {
		t.Errorf("RefCount = %d, want 2", got)
	}

	if err := r.unregister(t1); err != nil {
		t.Fatalf("unregister() error = %v", err)
	}
	if got := r.RefCount("Mock"); got != 1 {
		t.Errorf("RefCount = %d, want 1", got)
	}
	if err := r.unregister(t1); err != nil {
		t.Errorf("unregister() of a released ticket = %v, want nil", err)
	}
	if got := r.RefCount("Mock"); got != 1 {
		t.Errorf("double unregister changed RefCount to %d", got)
	}

	if err := r.unregister(t2); err != nil {
		t.Fatalf("unregister() error = %v", err)
	}
	if len(r.Loaded()) != 0 || loader.closeCount("Mock") != 1 {
		t.Errorf("module not unloaded: Loaded() = %v, closes = %d", r.Loaded(), loader.closeCount("Mock"))
	}
}

func TestRegistryUnregisterUnknownTicket(t *testing.T) {
	r := NewRegistry(newMockLoader())
	if err := r.unregister(newTicket()); err != nil {
		t.Errorf("unregister() of unknown ticket = %v, want nil", err)
	}
	if err := r.unregister(Ticket{}); err != nil {
		t.Errorf("unregister() of zero ticket = %v, want nil", err)
	}
}

func TestRegistryAcquireFailureKeepsLiveModule(t *testing.T) {
	loader := newMockLoader()
	loader.add("Mock", newMockModule().entry())
	r := NewRegistry(loader)

	live, err := r.acquire("Mock", func(*module) error { return nil })
	if err != nil {
		t.Fatalf("acquire() error = %v", err)
	}
	fnErr := errors.New("allocation failed")
	if _, err := r.acquire("Mock", func(*module) error { return fnErr }); !errors.Is(err, fnErr) {
		t.Fatalf("acquire() error = %v, want %v", err, fnErr)
	}
	if got := r.RefCount("Mock"); got != 1 {
		t.Errorf("RefCount = %d, want 1", got)
	}
	if got := loader.closeCount("Mock"); got != 0 {
		t.Errorf("module with a live instance was closed %d times", got)
	}
	_ = r.unregister(live)
}

func TestRegistryLoadedSorted(t *testing.T) {
	loader := newMockLoader()
	for _, name := range []string{"Vulkan", "Null", "OpenGL"} {
		loader.add(name, newMockModule().entry())
	}
	r := NewRegistry(loader)
	for _, name := range []string{"Vulkan", "Null", "OpenGL"} {
		if _, err := r.acquire(name, func(*module) error { return nil }); err != nil {
			t.Fatalf("acquire(%q) error = %v", name, err)
		}
	}
	if got, want := r.Loaded(), []string{"Null", "OpenGL", "Vulkan"}; !slices.Equal(got, want) {
		t.Errorf("Loaded() = %v, want %v", got, want)
	}
	_ = r.Shutdown()
}

func TestRegistryShutdownReportsLeaks(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))

	loader := newMockLoader()
	loader.add("Mock", newMockModule().entry())
	loader.add("Null", newMockModule().entry())
	r := NewRegistry(loader)

	if _, err := r.acquire("Mock", func(*module) error { return nil }); err != nil {
		t.Fatal(err)
	}
	if _, err := r.acquire("Mock", func(*module) error { return nil }); err != nil {
		t.Fatal(err)
	}

	err := r.Shutdown()
	if !errors.Is(err, ErrLeak) {
		t.Fatalf("Shutdown() error = %v, want ErrLeak", err)
	}
	var merr *ModuleError
	if !errors.As(err, &merr) || merr.Module != "Mock" {
		t.Errorf("Shutdown() error = %v, want a ModuleError for Mock", err)
	}
	if !strings.Contains(err.Error(), "2 live instance(s)") {
		t.Errorf("Shutdown() error = %q, want instance count", err.Error())
	}
	if !strings.Contains(buf.String(), "module still loaded at shutdown") || !strings.Contains(buf.String(), "module=Mock") {
		t.Errorf("leak not logged, got: %s", buf.String())
	}
	if len(r.Loaded()) != 0 {
		t.Errorf("Loaded() after Shutdown = %v, want empty", r.Loaded())
	}
	if got := loader.closeCount("Mock"); got != 1 {
		t.Errorf("library closed %d times at shutdown, want 1", got)
	}
}

func TestRegistryShutdownClean(t *testing.T) {
	r := NewRegistry(newMockLoader())
	if err := r.Shutdown(); err != nil {
		t.Errorf("Shutdown() of an empty registry = %v, want nil", err)
	}
}

func TestTicketString(t *testing.T) {
	tk := newTicket()
	if len(tk.String()) != 36 {
		t.Errorf("Ticket.String() = %q, want a UUID", tk.String())
	}
	if !(Ticket{}).IsZero() || tk.IsZero() {
		t.Error("IsZero() mismatch")
	}
}
