// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package null

import "github.com/gogpu/rendersys"

// Name is the module name.
const Name = "Null"

// init registers the Null module on package import.
func init() {
	rendersys.RegisterModule(Name, Entry)
}

// Entry holds the module entry points.
var Entry = rendersys.Entry{
	BuildID:      rendersys.BuildID,
	Allocate:     Allocate,
	RendererName: RendererName,
	RendererID:   RendererID,
}

// Allocate creates a Null driver.
func Allocate(desc *rendersys.Descriptor, report *rendersys.Report) (rendersys.Driver, error) {
	d := NewDriver()
	if desc != nil && desc.Context != nil {
		report.Printf("null: platform context ignored")
	}
	return d, nil
}

// RendererName returns "Null".
func RendererName() string { return Name }

// RendererID returns rendersys.RendererIDNull.
func RendererID() int { return rendersys.RendererIDNull }
