// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"context"
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	listProbe bool
	listJobs  int
)

func init() {
	listCmd.Flags().BoolVar(&listProbe, "probe", false, "load every module and report its renderer")
	listCmd.Flags().IntVar(&listJobs, "jobs", 0, "modules probed in parallel (0 = GOMAXPROCS)")
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available render system modules",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		names := app.host.FindModules()
		if len(names) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no render system modules found")
			return nil
		}
		if !listProbe {
			t := &table{header: []string{"MODULE", "SOURCE"}}
			for _, name := range names {
				t.add(name, moduleSource(name))
			}
			return t.render(cmd.OutOrStdout())
		}

		results, err := probeAll(cmd.Context(), names, listJobs, app.cfg.Debug)
		if err != nil {
			return err
		}
		return renderList(cmd.OutOrStdout(), results)
	},
}

// probeAll probes names concurrently and returns results in input order.
func probeAll(ctx context.Context, names []string, jobs int, opts debugConfig) ([]probeResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]probeResult, len(names))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(names)))
	for i, name := range names {
		g.Go(func() error {
			results[i] = probe(gctx, app.host, name, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func renderList(w io.Writer, results []probeResult) error {
	t := &table{header: []string{"MODULE", "SOURCE", "STATUS", "RENDERER", "DEVICE"}}
	for _, r := range results {
		status, device := "ok", truncate(r.Info.DeviceName, 40)
		if r.Err != nil {
			status, device = "failed", truncate(r.Err.Error(), 60)
		}
		t.add(r.Module, r.Source, status, r.Info.RendererName, device)
	}
	t.style = func(row, col int, cell string) string {
		switch {
		case row < 0:
			return labelColor.Sprint(cell)
		case col == 2 && results[row].Err != nil:
			return failColor.Sprint(cell)
		case col == 2:
			return okColor.Sprint(cell)
		default:
			return cell
		}
	}
	return t.render(w)
}
