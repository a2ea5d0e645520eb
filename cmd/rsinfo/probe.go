// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/gogpu/rendersys"
	"github.com/gogpu/rendersys/debuglayer"
)

var (
	okColor    = color.New(color.FgGreen, color.Bold)
	failColor  = color.New(color.FgRed, color.Bold)
	warnColor  = color.New(color.FgYellow)
	labelColor = color.New(color.Bold)
)

var (
	probeDebug        bool
	probeBreakOnError bool
)

func init() {
	probeCmd.Flags().BoolVar(&probeDebug, "debug", false, "load the module with the debug layer")
	probeCmd.Flags().BoolVar(&probeBreakOnError, "break-on-error", false, "stop at the first debug layer error (implies --debug)")
}

var probeCmd = &cobra.Command{
	Use:   "probe [module]",
	Short: "Load a module and print its renderer details",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := app.cfg.DefaultModule
		if len(args) == 1 {
			name = args[0]
		}
		opts := app.cfg.Debug
		if cmd.Flags().Changed("debug") {
			opts.Enabled = probeDebug
		}
		if cmd.Flags().Changed("break-on-error") {
			opts.BreakOnError = probeBreakOnError
		}
		if opts.BreakOnError {
			opts.Enabled = true
		}

		res := probe(cmd.Context(), app.host, name, opts)
		renderProbe(cmd.OutOrStdout(), res)
		if res.Err != nil {
			return fmt.Errorf("probe %s: %w", name, res.Err)
		}
		return nil
	},
}

// probeResult is the outcome of loading one module.
type probeResult struct {
	Module   string
	Source   string
	ID       int
	Info     rendersys.RendererInfo
	Caps     rendersys.RenderingCapabilities
	Report   string
	Warnings []string
	Err      error
}

func moduleSource(name string) string {
	if slices.Contains(rendersys.StaticModules(), name) {
		return "static"
	}
	return "plugin"
}

// probe loads name, queries it and unloads it again.
func probe(ctx context.Context, host *rendersys.Host, name string, opts debugConfig) probeResult {
	res := probeResult{Module: name, Source: moduleSource(name)}
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			res.Err = err
			return res
		}
	}

	desc := rendersys.Descriptor{ModuleName: name}
	var dbg *debuglayer.Debugger
	if opts.Enabled {
		dbg = debuglayer.NewDebugger()
		dbg.OnBreak = func(err error) {
			rendersys.Logger().Error("rsinfo: debug layer break", "module", name, "error", err)
		}
		desc.Debugger = dbg
		if opts.BreakOnError {
			desc.Flags |= rendersys.FlagDebugBreakOnError
		}
	}

	var report rendersys.Report
	rs, err := host.Load(desc, &report)
	res.Report = report.Text()
	if err != nil {
		res.Err = err
		return res
	}

	res.ID = rs.RendererID()
	if info, err := rs.RendererInfo(); err == nil {
		res.Info = info
	} else {
		res.Err = err
	}
	if caps, err := rs.RenderingCaps(); err == nil {
		res.Caps = caps
	} else if res.Err == nil {
		res.Err = err
	}

	if err := host.Unload(rs); err != nil && res.Err == nil {
		res.Err = err
	}
	if dbg != nil {
		res.Warnings = dbg.Warnings()
	}
	return res
}

func renderProbe(w io.Writer, res probeResult) {
	field := func(label, value string) {
		if value == "" {
			return
		}
		fmt.Fprintf(w, "%s %s\n", labelColor.Sprintf("%-18s", label+":"), value)
	}

	status := okColor.Sprint("ok")
	if res.Err != nil {
		status = failColor.Sprint("failed")
	}
	field("Module", fmt.Sprintf("%s (%s) %s", res.Module, res.Source, status))
	if res.Err != nil {
		field("Error", res.Err.Error())
		for _, line := range strings.Split(res.Report, "\n") {
			field("Report", line)
		}
		return
	}

	field("Renderer ID", fmt.Sprintf("0x%08X", res.ID))
	field("Renderer", res.Info.RendererName)
	field("Device", res.Info.DeviceName)
	field("Vendor", res.Info.VendorName)
	field("Shading language", res.Info.ShadingLanguageName)
	field("Extensions", strings.Join(res.Info.ExtensionNames, ", "))
	field("Languages", joinValues(res.Caps.ShadingLanguages))
	field("Texture formats", joinValues(res.Caps.TextureFormats))
	field("Features", strings.Join(featureNames(res.Caps.Features), ", "))

	lim := res.Caps.Limits
	field("Max buffer size", fmt.Sprintf("%d", lim.MaxBufferSize))
	field("Max constant buf", fmt.Sprintf("%d", lim.MaxConstantBufferSize))
	field("Max texture 2D", fmt.Sprintf("%d", lim.MaxTextureDimension2D))
	field("Max workgroup", fmt.Sprintf("%d x %d x %d",
		lim.MaxComputeWorkgroupSize[0], lim.MaxComputeWorkgroupSize[1], lim.MaxComputeWorkgroupSize[2]))

	for _, line := range strings.Split(res.Report, "\n") {
		field("Report", line)
	}
	for _, warn := range res.Warnings {
		field("Warning", warnColor.Sprint(warn))
	}
}

func joinValues[T any](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, ", ")
}

var featureTable = []struct {
	f    rendersys.Features
	name string
}{
	{rendersys.FeatureComputeShaders, "compute"},
	{rendersys.FeatureStorageBuffers, "storage-buffers"},
	{rendersys.FeatureIndirectDraw, "indirect-draw"},
	{rendersys.FeatureInstancing, "instancing"},
	{rendersys.FeatureMultiSampling, "multisampling"},
	{rendersys.FeatureStreamOutput, "stream-output"},
}

func featureNames(f rendersys.Features) []string {
	var names []string
	for _, e := range featureTable {
		if f.Has(e.f) {
			names = append(names, e.name)
		}
	}
	return names
}
