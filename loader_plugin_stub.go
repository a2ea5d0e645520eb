// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !cgo || !(linux || darwin || freebsd)

package rendersys

import "fmt"

const pluginsSupported = false

func openPlugin(path string) (Library, error) {
	return nil, fmt.Errorf("%w: %s", ErrPluginsUnsupported, path)
}
