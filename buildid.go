// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rendersys

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
	"sync"
)

// modulePath is the import path whose version is part of the build ID.
const modulePath = "github.com/gogpu/rendersys"

var (
	buildIDOnce sync.Once
	buildID     string
)

// BuildID returns the token that identifies the toolchain and configuration
// this binary was built with. A module is only allocated when the token it
// reports is equal to the host's.
//
// The token is computed once per process and has the form
//
//	gc/go1.25.0/linux/amd64/release/norace/v0.1.0/api1
func BuildID() string {
	buildIDOnce.Do(func() {
		buildID = composeBuildID(runtime.Compiler, runtime.Version(),
			runtime.GOOS, runtime.GOARCH, buildConfig, raceEnabled, moduleVersion())
	})
	return buildID
}

func composeBuildID(compiler, goVersion, goos, goarch, config string, race bool, version string) string {
	raceTag := "norace"
	if race {
		raceTag = "race"
	}
	return strings.Join([]string{
		compiler,
		goVersion,
		goos,
		goarch,
		config,
		raceTag,
		version,
		fmt.Sprintf("api%d", APIVersion),
	}, "/")
}

// moduleVersion returns the version of this module as recorded in the
// binary's build info, or "devel" when it is unknown.
func moduleVersion() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "devel"
	}
	if info.Main.Path == modulePath {
		return versionOrDevel(info.Main.Version)
	}
	for _, dep := range info.Deps {
		if dep.Path != modulePath {
			continue
		}
		if dep.Replace != nil {
			return versionOrDevel(dep.Replace.Version)
		}
		return versionOrDevel(dep.Version)
	}
	return "devel"
}

func versionOrDevel(v string) string {
	if v == "" || v == "(devel)" {
		return "devel"
	}
	return v
}
