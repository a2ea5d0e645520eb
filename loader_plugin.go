// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rendersys

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ModulePathEnv lists extra plugin directories, separated by the OS path
// list separator.
const ModulePathEnv = "RENDERSYS_MODULE_PATH"

const (
	pluginPrefix = "rendersys_"
	pluginSuffix = ".so"
)

// ModuleFilename returns the plugin file name of a module, e.g.
// "rendersys_Vulkan.so".
func ModuleFilename(name string) string {
	return pluginPrefix + name + pluginSuffix
}

// DefaultSearchPaths returns the directories listed in RENDERSYS_MODULE_PATH
// followed by the directory of the running executable.
func DefaultSearchPaths() []string {
	var paths []string
	if env := os.Getenv(ModulePathEnv); env != "" {
		for _, p := range filepath.SplitList(env) {
			if p != "" {
				paths = append(paths, p)
			}
		}
	}
	if exe, err := os.Executable(); err == nil {
		paths = append(paths, filepath.Dir(exe))
	}
	return paths
}

// PluginLoader opens modules built with -buildmode=plugin.
//
// Go cannot unload a plugin, so closing a plugin Library only drops the
// loader's references; the code stays mapped until the process exits.
type PluginLoader struct {
	// SearchPaths are the directories searched in order. When empty,
	// DefaultSearchPaths is used.
	SearchPaths []string
}

func (l PluginLoader) paths() []string {
	if len(l.SearchPaths) > 0 {
		return l.SearchPaths
	}
	return DefaultSearchPaths()
}

// FindModules lists the module names of the plugin files found in the
// search paths. It returns nil on builds without plugin support.
func (l PluginLoader) FindModules() []string {
	if !pluginsSupported {
		return nil
	}
	seen := make(map[string]bool)
	var names []string
	for _, dir := range l.paths() {
		matches, err := filepath.Glob(filepath.Join(dir, pluginPrefix+"*"+pluginSuffix))
		if err != nil {
			continue
		}
		for _, m := range matches {
			name := strings.TrimSuffix(strings.TrimPrefix(filepath.Base(m), pluginPrefix), pluginSuffix)
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

// Open opens the first plugin file for name found in the search paths.
func (l PluginLoader) Open(name string) (Library, error) {
	file := ModuleFilename(name)
	for _, dir := range l.paths() {
		path := filepath.Join(dir, file)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		return openPlugin(path)
	}
	return nil, fmt.Errorf("%w: %s not found in search paths", ErrModuleNotFound, file)
}
