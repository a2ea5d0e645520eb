// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Command rsinfo lists and probes render system modules.
//
//	rsinfo list --probe
//	rsinfo probe Vulkan --debug
//	rsinfo version --format json
//
// Modules compiled into rsinfo are always available; plugin modules are
// searched in --module-path, the module_paths of the configuration file,
// RENDERSYS_MODULE_PATH and the executable directory.
package main

import (
	"fmt"
	"os"
	"slices"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/gogpu/rendersys"
	_ "github.com/gogpu/rendersys/backend/null"
	_ "github.com/gogpu/rendersys/backend/vulkan"
	_ "github.com/gogpu/rendersys/backend/webgpu"
	_ "github.com/gogpu/rendersys/debuglayer"
)

// app is the state shared by the commands after flag parsing.
var app struct {
	cfg  config
	host *rendersys.Host
}

var rootCmd = &cobra.Command{
	Use:               "rsinfo",
	Short:             "Inspect render system modules",
	Long:              `rsinfo lists the render system modules available to this binary and probes their renderers`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.Version = rendersys.Version

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(probeCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("config", "", "path to a TOML configuration file")
	rootCmd.PersistentFlags().String("log-level", "warn", "log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().String("log-format", "text", "log format (text|json)")
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().StringSlice("module-path", nil, "additional plugin module directories")
}

func main() {
	os.Exit(run())
}

func run() int {
	defer shutdown()
	if err := rootCmd.Execute(); err != nil {
		return 1
	}
	return 0
}

// setup loads the configuration, applies flag overrides and builds the host.
func setup(cmd *cobra.Command, _ []string) error {
	flags := cmd.Root().PersistentFlags()

	path, err := flags.GetString("config")
	if err != nil {
		return err
	}
	cfg, err := loadConfig(path)
	if err != nil {
		return err
	}
	if err := applyFlags(&cfg, cmd); err != nil {
		return err
	}
	if err := cfg.validate(); err != nil {
		return err
	}

	colorFlag, err := flags.GetString("color")
	if err != nil {
		return err
	}
	useColor, err := colorEnabled(colorFlag, isTerminal(os.Stdout))
	if err != nil {
		return err
	}
	color.NoColor = !useColor

	rendersys.SetLogger(newLogger(cfg.Log.Level, cfg.Log.Format, os.Stderr))

	app.cfg = cfg
	app.host = newHost(cfg)
	return nil
}

// applyFlags overrides configuration values with flags set on the command
// line.
func applyFlags(cfg *config, cmd *cobra.Command) error {
	flags := cmd.Root().PersistentFlags()
	if flags.Changed("log-level") {
		v, err := flags.GetString("log-level")
		if err != nil {
			return err
		}
		cfg.Log.Level = v
	}
	if flags.Changed("log-format") {
		v, err := flags.GetString("log-format")
		if err != nil {
			return err
		}
		cfg.Log.Format = v
	}
	if flags.Changed("module-path") {
		v, err := flags.GetStringSlice("module-path")
		if err != nil {
			return err
		}
		cfg.ModulePaths = append(slices.Clone(v), cfg.ModulePaths...)
	}
	return nil
}

func newHost(cfg config) *rendersys.Host {
	paths := append(slices.Clone(cfg.ModulePaths), rendersys.DefaultSearchPaths()...)
	return rendersys.NewHost(rendersys.WithLoader(rendersys.ChainLoader{
		rendersys.StaticLoader{},
		rendersys.PluginLoader{SearchPaths: paths},
	}))
}

func shutdown() {
	if app.host == nil {
		return
	}
	if err := app.host.Shutdown(); err != nil {
		fmt.Fprintln(os.Stderr, warnColor.Sprint("warning: "), err)
	}
}

func colorEnabled(flag string, tty bool) (bool, error) {
	switch flag {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "auto":
		return tty, nil
	default:
		return false, fmt.Errorf("unsupported color mode %q (must be auto, on or off)", flag)
	}
}

// isTerminal reports whether f is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
