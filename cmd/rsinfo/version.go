// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gogpu/rendersys"
)

type versionPayload struct {
	Tool       string `json:"tool"`
	Version    string `json:"version"`
	APIVersion int    `json:"api_version"`
	BuildID    string `json:"build_id"`
	GoVersion  string `json:"go_version"`
}

var versionFormat string

func init() {
	versionCmd.Flags().StringVar(&versionFormat, "format", "pretty", "output format (pretty|json)")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the rendersys version and build ID",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		p := versionPayload{
			Tool:       "rsinfo",
			Version:    rendersys.Version,
			APIVersion: rendersys.APIVersion,
			BuildID:    rendersys.BuildID(),
			GoVersion:  runtime.Version(),
		}
		switch strings.ToLower(versionFormat) {
		case "json":
			return renderVersionJSON(cmd.OutOrStdout(), p)
		case "pretty":
			renderVersionPretty(cmd.OutOrStdout(), p)
			return nil
		default:
			return fmt.Errorf("unsupported format %q (must be pretty or json)", versionFormat)
		}
	},
}

func renderVersionJSON(w io.Writer, p versionPayload) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(p)
}

func renderVersionPretty(w io.Writer, p versionPayload) {
	fmt.Fprintf(w, "%s %s (api %d)\n", p.Tool, okColor.Sprint(p.Version), p.APIVersion)
	fmt.Fprintf(w, "%s %s\n", labelColor.Sprint("build id:"), p.BuildID)
	fmt.Fprintf(w, "%s %s\n", labelColor.Sprint("go:      "), p.GoVersion)
}
