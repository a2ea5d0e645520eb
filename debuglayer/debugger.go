// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package debuglayer

import (
	"slices"
	"sync"
)

// BreakError is the panic value used by Debugger when it breaks on an error
// and no OnBreak function is set.
type BreakError struct {
	Err error
}

func (e *BreakError) Error() string { return "debuglayer: break on error: " + e.Err.Error() }

func (e *BreakError) Unwrap() error { return e.Err }

// Debugger records errors and warnings posted by the debug layer.
//
// The zero value is ready to use.
type Debugger struct {
	// OnBreak is called instead of panicking when break on error is
	// enabled and an error is posted.
	OnBreak func(err error)

	mu           sync.Mutex
	breakOnError bool
	errs         []error
	warnings     []string
}

// NewDebugger returns an empty Debugger.
func NewDebugger() *Debugger {
	return &Debugger{}
}

// SetBreakOnError enables or disables breaking on the next error.
func (d *Debugger) SetBreakOnError(enable bool) {
	d.mu.Lock()
	d.breakOnError = enable
	d.mu.Unlock()
}

// BreakOnError reports whether breaking on error is enabled.
func (d *Debugger) BreakOnError() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.breakOnError
}

// PostError records err. With break on error enabled it then calls OnBreak
// or, if OnBreak is nil, panics with a *BreakError.
func (d *Debugger) PostError(err error) {
	d.mu.Lock()
	d.errs = append(d.errs, err)
	brk, onBreak := d.breakOnError, d.OnBreak
	d.mu.Unlock()

	if !brk {
		return
	}
	if onBreak != nil {
		onBreak(err)
		return
	}
	panic(&BreakError{Err: err})
}

// PostWarning records msg.
func (d *Debugger) PostWarning(msg string) {
	d.mu.Lock()
	d.warnings = append(d.warnings, msg)
	d.mu.Unlock()
}

// Errors returns the errors posted so far.
func (d *Debugger) Errors() []error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Clone(d.errs)
}

// Warnings returns the warnings posted so far.
func (d *Debugger) Warnings() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Clone(d.warnings)
}

// Reset drops everything recorded so far.
func (d *Debugger) Reset() {
	d.mu.Lock()
	d.errs = nil
	d.warnings = nil
	d.mu.Unlock()
}
