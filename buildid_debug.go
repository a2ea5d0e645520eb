// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build rsdebug

package rendersys

const buildConfig = "debug"
