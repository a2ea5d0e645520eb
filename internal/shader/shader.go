// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package shader turns rendersys shader descriptors into SPIR-V words for
// the bundled backends.
package shader

import (
	"errors"
	"fmt"

	"github.com/gogpu/naga"

	"github.com/gogpu/rendersys"
)

// spirvMagic is the first word of every SPIR-V module.
const spirvMagic = 0x07230203

var (
	// ErrUnsupportedLanguage is returned for languages the backends cannot
	// consume.
	ErrUnsupportedLanguage = errors.New("shader: unsupported shading language")

	// ErrInvalidSPIRV is returned for binaries that are not SPIR-V.
	ErrInvalidSPIRV = errors.New("shader: invalid SPIR-V binary")
)

// SPIRV returns the SPIR-V words for desc. WGSL source (also assumed when
// the language is undefined) is compiled with naga; SPIR-V binaries are
// checked and converted.
func SPIRV(desc rendersys.ShaderDescriptor) ([]uint32, error) {
	if desc.SourceType == rendersys.ShaderSourceBinary {
		if desc.Language != rendersys.ShadingLanguageSPIRV && desc.Language != rendersys.ShadingLanguageUndefined {
			return nil, fmt.Errorf("%w: %s binary", ErrUnsupportedLanguage, desc.Language)
		}
		src := desc.Source
		if desc.SourceSize > uint64(len(src)) {
			return nil, fmt.Errorf("%w: size %d exceeds source length %d", ErrInvalidSPIRV, desc.SourceSize, len(src))
		}
		return Words(src[:desc.SourceSize])
	}

	switch desc.Language {
	case rendersys.ShadingLanguageWGSL, rendersys.ShadingLanguageUndefined:
		return CompileWGSL(string(desc.Source))
	default:
		return nil, fmt.Errorf("%w: %s source", ErrUnsupportedLanguage, desc.Language)
	}
}

// CompileWGSL compiles WGSL source to SPIR-V words.
func CompileWGSL(source string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(source)
	if err != nil {
		return nil, fmt.Errorf("failed to compile shader: %w", err)
	}
	return Words(spirvBytes)
}

// Words converts a little-endian SPIR-V binary to 32-bit words and checks
// the magic number.
func Words(b []byte) ([]uint32, error) {
	if len(b) == 0 || len(b)%4 != 0 {
		return nil, fmt.Errorf("%w: size %d is not a multiple of 4", ErrInvalidSPIRV, len(b))
	}
	words := make([]uint32, len(b)/4)
	for i := range words {
		words[i] = uint32(b[i*4]) |
			uint32(b[i*4+1])<<8 |
			uint32(b[i*4+2])<<16 |
			uint32(b[i*4+3])<<24
	}
	if words[0] != spirvMagic {
		return nil, fmt.Errorf("%w: bad magic 0x%08X", ErrInvalidSPIRV, words[0])
	}
	return words, nil
}
